// Package tracker exposes the uniform create/read/update/delete operation
// set every front-end programs against, independent of the storage backend.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
)

// Notifier is an optional, failure-tolerant observer of storage mutations.
// Implementations must never block for long or return errors; the facade
// calls it best-effort after each successful mutation.
type Notifier interface {
	TicketCreated(ctx context.Context, ticket *domain.Ticket)
	TicketUpdated(ctx context.Context, ticket *domain.Ticket)
	TicketDeleted(ctx context.Context, id string)
	SprintCreated(ctx context.Context, sprint *domain.Sprint)
	SprintUpdated(ctx context.Context, sprint *domain.Sprint)
	UserCreated(ctx context.Context, user *domain.User)
}

// Service is the query/mutation facade over the configured backend.
//
// Not-found is reported through nil/false sentinels, never through errors;
// a non-nil error always means infrastructure failure (I/O, corrupt data)
// or invalid input.
type Service struct {
	tickets  repository.TicketRepository
	sprints  repository.SprintRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	archives repository.ArchiveRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates the facade. notifier may be nil.
func NewService(
	tickets repository.TicketRepository,
	sprints repository.SprintRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	archives repository.ArchiveRepository,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tickets:  tickets,
		sprints:  sprints,
		users:    users,
		comments: comments,
		archives: archives,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateUserRequest describes a user creation request.
type CreateUserRequest struct {
	Username    string
	DisplayName string
	Email       string
}

// CreateSprintRequest describes a sprint creation request.
type CreateSprintRequest struct {
	Name        string
	Description string
	Goal        string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateTicketRequest describes a ticket creation request.
type CreateTicketRequest struct {
	Type        domain.TicketType
	Title       string
	Description string
	Assignee    string
	Sprint      string
	Estimate    float64
	Labels      []string
	Priority    domain.Priority
}

// UpdateTicketRequest describes a partial ticket update. Nil fields are
// left unchanged; the ticket type is immutable and cannot be patched.
type UpdateTicketRequest struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	Assignee    *string
	Sprint      *string
	Estimate    *float64
	Labels      []string
	Priority    *domain.Priority
}

// CreateUser assigns id and timestamps, persists, and returns the record.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := domain.RequireNonEmpty("username", req.Username); err != nil {
		return nil, err
	}
	if err := domain.RequireNonEmpty("displayName", req.DisplayName); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:          domain.NewID("user"),
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if s.notifier != nil {
		s.notifier.UserCreated(ctx, user)
	}
	return user, nil
}

// CreateSprint assigns id and timestamps, persists, and returns the record.
// New sprints start in planning.
func (s *Service) CreateSprint(ctx context.Context, req CreateSprintRequest) (*domain.Sprint, error) {
	if err := domain.RequireNonEmpty("name", req.Name); err != nil {
		return nil, err
	}

	now := time.Now()
	sprint := &domain.Sprint{
		ID:          domain.NewID("sprint"),
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		Status:      domain.SprintPlanning,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, fmt.Errorf("creating sprint: %w", err)
	}

	if s.notifier != nil {
		s.notifier.SprintCreated(ctx, sprint)
	}
	return sprint, nil
}

// CreateTicket assigns id and timestamps, persists, and returns the record.
// New tickets start in todo. An assignee given by username is resolved to
// the user's id; an unknown assignee or sprint reference is stored as given
// (referential integrity is not enforced at write time).
func (s *Service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*domain.Ticket, error) {
	if err := domain.ValidateTicketType(req.Type); err != nil {
		return nil, err
	}
	if err := domain.RequireNonEmpty("title", req.Title); err != nil {
		return nil, err
	}
	if err := domain.ValidatePriority(req.Priority); err != nil {
		return nil, err
	}

	assignee := req.Assignee
	if assignee != "" {
		if user, err := s.ResolveUser(ctx, assignee); err != nil {
			return nil, err
		} else if user != nil {
			assignee = user.ID
		}
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:          domain.NewID(string(req.Type)),
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.StatusTodo,
		Assignee:    assignee,
		Sprint:      req.Sprint,
		Estimate:    req.Estimate,
		Labels:      req.Labels,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TicketCreated(ctx, ticket)
	}
	return ticket, nil
}

// CreateComment attaches a comment to a ticket. The author may be a user id
// or a username; usernames are resolved to ids when they match.
func (s *Service) CreateComment(ctx context.Context, ticketID, author, content string) (*domain.Comment, error) {
	if err := domain.RequireNonEmpty("ticketId", ticketID); err != nil {
		return nil, err
	}
	if err := domain.RequireNonEmpty("author", author); err != nil {
		return nil, err
	}
	if err := domain.RequireNonEmpty("content", content); err != nil {
		return nil, err
	}

	if user, err := s.ResolveUser(ctx, author); err != nil {
		return nil, err
	} else if user != nil {
		author = user.ID
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        domain.NewID("comment"),
		TicketID:  ticketID,
		Author:    author,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// GetUsers returns all users.
func (s *Service) GetUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetSprints returns all sprints, including completed ones whose dependent
// tickets have been archived.
func (s *Service) GetSprints(ctx context.Context) ([]domain.Sprint, error) {
	return s.sprints.List(ctx)
}

// GetTicketsByType returns active tickets of one type.
func (s *Service) GetTicketsByType(ctx context.Context, ticketType domain.TicketType) ([]domain.Ticket, error) {
	if err := domain.ValidateTicketType(ticketType); err != nil {
		return nil, err
	}
	return s.tickets.List(ctx, repository.ListTicketsOptions{Type: ticketType})
}

// GetAllTickets returns all active tickets.
func (s *Service) GetAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, repository.ListTicketsOptions{})
}

// GetComments returns the comments attached to one ticket.
func (s *Service) GetComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	return s.comments.ListByTicket(ctx, ticketID)
}

// UpdateTicketStatus sets a ticket's status, refreshing updatedAt.
// Returns (nil, nil) when the ticket does not exist.
func (s *Service) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if err := domain.ValidateTicketStatus(status); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading ticket: %w", err)
	}

	ticket.Status = status
	ticket.UpdatedAt = time.Now()

	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, fmt.Errorf("updating ticket status: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TicketUpdated(ctx, ticket)
	}
	return ticket, nil
}

// UpdateTicket applies a partial update, refreshing updatedAt.
// Returns (nil, nil) when the ticket does not exist.
func (s *Service) UpdateTicket(ctx context.Context, id string, req UpdateTicketRequest) (*domain.Ticket, error) {
	if req.Status != nil {
		if err := domain.ValidateTicketStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := domain.ValidatePriority(*req.Priority); err != nil {
			return nil, err
		}
	}

	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading ticket: %w", err)
	}

	if req.Title != nil {
		if err := domain.RequireNonEmpty("title", *req.Title); err != nil {
			return nil, err
		}
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Status != nil {
		ticket.Status = *req.Status
	}
	if req.Assignee != nil {
		assignee := *req.Assignee
		if assignee != "" {
			if user, err := s.ResolveUser(ctx, assignee); err != nil {
				return nil, err
			} else if user != nil {
				assignee = user.ID
			}
		}
		ticket.Assignee = assignee
	}
	if req.Sprint != nil {
		ticket.Sprint = *req.Sprint
	}
	if req.Estimate != nil {
		ticket.Estimate = *req.Estimate
	}
	if req.Labels != nil {
		ticket.Labels = req.Labels
	}
	if req.Priority != nil {
		ticket.Priority = *req.Priority
	}
	ticket.UpdatedAt = time.Now()

	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, fmt.Errorf("updating ticket: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TicketUpdated(ctx, ticket)
	}
	return ticket, nil
}

// DeleteEntity removes one entity by kind and id. Returns false (without
// error) when the entity does not exist. Deleting a ticket this way does NOT
// cascade to its comments; use DeleteTicketCascade for that.
func (s *Service) DeleteEntity(ctx context.Context, kind, id string) (bool, error) {
	collection, ok := domain.CollectionKind(kind)
	if !ok {
		return false, fmt.Errorf("%w: unknown entity kind %q", domain.ErrInvalidInput, kind)
	}

	var err error
	switch collection {
	case domain.KindTickets:
		err = s.tickets.Delete(ctx, id)
	case domain.KindSprints:
		err = s.sprints.Delete(ctx, id)
	case domain.KindUsers:
		err = s.users.Delete(ctx, id)
	case domain.KindComments:
		err = s.comments.Delete(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("deleting %s %s: %w", collection, id, err)
	}

	if collection == domain.KindTickets && s.notifier != nil {
		s.notifier.TicketDeleted(ctx, id)
	}
	return true, nil
}

// DeleteTicketCascade removes a ticket's comments first, then the ticket
// itself, and reports how many comments were removed. This is the cascade
// the CLI delete verb uses; plain DeleteEntity leaves comments dangling.
func (s *Service) DeleteTicketCascade(ctx context.Context, id string) (bool, int, error) {
	comments, err := s.comments.ListByTicket(ctx, id)
	if err != nil {
		return false, 0, fmt.Errorf("listing comments: %w", err)
	}
	for _, c := range comments {
		if err := s.comments.Delete(ctx, c.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return false, 0, fmt.Errorf("deleting comment %s: %w", c.ID, err)
		}
	}

	deleted, err := s.DeleteEntity(ctx, string(domain.KindTickets), id)
	if err != nil {
		return false, len(comments), err
	}
	return deleted, len(comments), nil
}

// DeleteComment removes one comment. Returns false when absent.
func (s *Service) DeleteComment(ctx context.Context, id string) (bool, error) {
	return s.DeleteEntity(ctx, string(domain.KindComments), id)
}

// Match is the result of a cross-collection id lookup. Exactly one of the
// entity pointers is set, matching Kind.
type Match struct {
	Kind   domain.Kind
	Ticket *domain.Ticket
	Sprint *domain.Sprint
	User   *domain.User
}

// FindEntity looks an id up across collections, trying tickets, then
// sprints, then users. Returns (nil, nil) when nothing matches. All
// collections are checked; the id prefix is not trusted.
func (s *Service) FindEntity(ctx context.Context, id string) (*Match, error) {
	ticket, err := s.tickets.Get(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("finding ticket: %w", err)
	}
	if ticket != nil {
		kind := domain.KindTasks
		if ticket.Type == domain.TypeBug {
			kind = domain.KindBugs
		}
		return &Match{Kind: kind, Ticket: ticket}, nil
	}

	sprint, err := s.sprints.Get(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("finding sprint: %w", err)
	}
	if sprint != nil {
		return &Match{Kind: domain.KindSprints, Sprint: sprint}, nil
	}

	user, err := s.users.Get(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if user != nil {
		return &Match{Kind: domain.KindUsers, User: user}, nil
	}

	return nil, nil
}

// FindTicket returns a ticket by id, or (nil, nil) when absent.
func (s *Service) FindTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding ticket: %w", err)
	}
	return ticket, nil
}

// ResolveUser accepts a user id or username and returns the matching user,
// or (nil, nil) when neither matches.
func (s *Service) ResolveUser(ctx context.Context, idOrUsername string) (*domain.User, error) {
	user, err := s.users.Get(ctx, idOrUsername)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	for i := range users {
		if users[i].Username == idOrUsername {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetArchivedSprints enumerates the sprint ids with an archive document.
func (s *Service) GetArchivedSprints(ctx context.Context) ([]string, error) {
	return s.archives.ListSprintIDs(ctx)
}

// GetArchive returns the archive document for a sprint, or (nil, nil) when
// no archive exists.
func (s *Service) GetArchive(ctx context.Context, sprintID string) (*domain.ArchivedSprint, error) {
	archive, err := s.archives.Get(ctx, sprintID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading archive: %w", err)
	}
	return archive, nil
}
