package repository

import (
	"context"

	"github.com/tkxr/tkxr/internal/domain"
)

// UserRepository manages user persistence
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// SprintRepository manages sprint persistence
type SprintRepository interface {
	Create(ctx context.Context, sprint *domain.Sprint) error
	Get(ctx context.Context, id string) (*domain.Sprint, error)
	List(ctx context.Context) ([]domain.Sprint, error)
	Save(ctx context.Context, sprint *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

// TicketRepository manages ticket persistence
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, opts ListTicketsOptions) ([]domain.Ticket, error)
	Save(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	// DeleteBySprint removes every ticket belonging to the sprint and
	// returns the removed records. Used by archival.
	DeleteBySprint(ctx context.Context, sprintID string) ([]domain.Ticket, error)
}

// ListTicketsOptions provides filtering options for listing tickets
type ListTicketsOptions struct {
	Type     domain.TicketType
	Status   domain.TicketStatus
	SprintID string
}

// CommentRepository manages comment persistence
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Get(ctx context.Context, id string) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByTickets removes every comment attached to the given tickets
	// and returns the removed records. Used by archival.
	DeleteByTickets(ctx context.Context, ticketIDs []string) ([]domain.Comment, error)
}

// ArchiveRepository manages immutable sprint archive documents
type ArchiveRepository interface {
	Save(ctx context.Context, archive *domain.ArchivedSprint) error
	Get(ctx context.Context, sprintID string) (*domain.ArchivedSprint, error)
	ListSprintIDs(ctx context.Context) ([]string, error)
}
