package tracker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
	"github.com/tkxr/tkxr/internal/repository/mocks"
	"github.com/tkxr/tkxr/internal/tracker"
)

type repos struct {
	tickets  *mocks.TicketRepository
	sprints  *mocks.SprintRepository
	users    *mocks.UserRepository
	comments *mocks.CommentRepository
	archives *mocks.ArchiveRepository
}

func newRepos() *repos {
	return &repos{
		tickets:  &mocks.TicketRepository{},
		sprints:  &mocks.SprintRepository{},
		users:    &mocks.UserRepository{},
		comments: &mocks.CommentRepository{},
		archives: &mocks.ArchiveRepository{},
	}
}

func (r *repos) service(notifier tracker.Notifier) *tracker.Service {
	return tracker.NewService(r.tickets, r.sprints, r.users, r.comments, r.archives, notifier, nil)
}

// fakeNotifier records which notifications fired.
type fakeNotifier struct {
	ticketCreated []string
	ticketUpdated []string
	ticketDeleted []string
	sprintUpdated []string
	userCreated   []string
}

func (f *fakeNotifier) TicketCreated(_ context.Context, t *domain.Ticket) {
	f.ticketCreated = append(f.ticketCreated, t.ID)
}
func (f *fakeNotifier) TicketUpdated(_ context.Context, t *domain.Ticket) {
	f.ticketUpdated = append(f.ticketUpdated, t.ID)
}
func (f *fakeNotifier) TicketDeleted(_ context.Context, id string) {
	f.ticketDeleted = append(f.ticketDeleted, id)
}
func (f *fakeNotifier) SprintCreated(_ context.Context, s *domain.Sprint) {}
func (f *fakeNotifier) SprintUpdated(_ context.Context, s *domain.Sprint) {
	f.sprintUpdated = append(f.sprintUpdated, s.ID)
}
func (f *fakeNotifier) UserCreated(_ context.Context, u *domain.User) {
	f.userCreated = append(f.userCreated, u.ID)
}

func TestCreateTicket_Defaults(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	notifier := &fakeNotifier{}

	r.tickets.On("Create", ctx, mock.Anything).Return(nil)

	svc := r.service(notifier)
	ticket, err := svc.CreateTicket(ctx, tracker.CreateTicketRequest{
		Type:  domain.TypeTask,
		Title: "Set up CI",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusTodo, ticket.Status)
	require.Regexp(t, `^tas-[0-9A-Za-z]{8}$`, ticket.ID)
	require.False(t, ticket.CreatedAt.IsZero())
	require.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)
	require.Equal(t, []string{ticket.ID}, notifier.ticketCreated)
}

func TestCreateTicket_BugIDPrefix(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.tickets.On("Create", ctx, mock.Anything).Return(nil)

	ticket, err := r.service(nil).CreateTicket(ctx, tracker.CreateTicketRequest{
		Type:  domain.TypeBug,
		Title: "Crash on empty input",
	})
	require.NoError(t, err)
	require.Regexp(t, `^bug-`, ticket.ID)
}

func TestCreateTicket_ResolvesAssigneeUsername(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	alice := domain.User{ID: "use-a1b2c3d4", Username: "alice", DisplayName: "Alice"}
	r.users.On("Get", ctx, "alice").Return(nil, repository.ErrNotFound)
	r.users.On("List", ctx).Return([]domain.User{alice}, nil)
	r.tickets.On("Create", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.Assignee == alice.ID
	})).Return(nil)

	ticket, err := r.service(nil).CreateTicket(ctx, tracker.CreateTicketRequest{
		Type:     domain.TypeTask,
		Title:    "Review PR",
		Assignee: "alice",
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, ticket.Assignee)
	r.tickets.AssertExpectations(t)
}

func TestCreateTicket_UnknownAssigneeStoredAsGiven(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	r.users.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)
	r.users.On("List", ctx).Return([]domain.User{}, nil)
	r.tickets.On("Create", ctx, mock.Anything).Return(nil)

	ticket, err := r.service(nil).CreateTicket(ctx, tracker.CreateTicketRequest{
		Type:     domain.TypeTask,
		Title:    "Orphaned work",
		Assignee: "ghost",
	})
	require.NoError(t, err)
	require.Equal(t, "ghost", ticket.Assignee)
}

func TestCreateTicket_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := newRepos().service(nil)

	_, err := svc.CreateTicket(ctx, tracker.CreateTicketRequest{Type: "epic", Title: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateTicket(ctx, tracker.CreateTicketRequest{Type: domain.TypeTask, Title: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateTicket(ctx, tracker.CreateTicketRequest{Type: domain.TypeTask, Title: "x", Priority: "urgent"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_RequiresFields(t *testing.T) {
	ctx := context.Background()
	svc := newRepos().service(nil)

	_, err := svc.CreateUser(ctx, tracker.CreateUserRequest{DisplayName: "No Handle"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateUser(ctx, tracker.CreateUserRequest{Username: "nohandle"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSprint_StartsInPlanning(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.sprints.On("Create", ctx, mock.Anything).Return(nil)

	sprint, err := r.service(nil).CreateSprint(ctx, tracker.CreateSprintRequest{Name: "Sprint 1"})
	require.NoError(t, err)
	require.Equal(t, domain.SprintPlanning, sprint.Status)
	require.Regexp(t, `^spr-`, sprint.ID)
}

func TestUpdateTicketStatus_NotFoundIsNil(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.tickets.On("Get", ctx, "tas-missing1").Return(nil, repository.ErrNotFound)

	ticket, err := r.service(nil).UpdateTicketStatus(ctx, "tas-missing1", domain.StatusDone)
	require.NoError(t, err)
	require.Nil(t, ticket)
}

func TestUpdateTicketStatus_RefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	notifier := &fakeNotifier{}

	existing := &domain.Ticket{ID: "tas-1", Type: domain.TypeTask, Title: "x", Status: domain.StatusTodo}
	r.tickets.On("Get", ctx, "tas-1").Return(existing, nil)
	r.tickets.On("Save", ctx, mock.Anything).Return(nil)

	ticket, err := r.service(notifier).UpdateTicketStatus(ctx, "tas-1", domain.StatusProgress)
	require.NoError(t, err)
	require.Equal(t, domain.StatusProgress, ticket.Status)
	require.True(t, ticket.UpdatedAt.After(ticket.CreatedAt))
	require.Equal(t, []string{"tas-1"}, notifier.ticketUpdated)
}

func TestUpdateTicket_PartialPatch(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	existing := &domain.Ticket{
		ID:          "tas-1",
		Type:        domain.TypeTask,
		Title:       "old title",
		Description: "keep me",
		Status:      domain.StatusTodo,
	}
	r.tickets.On("Get", ctx, "tas-1").Return(existing, nil)
	r.tickets.On("Save", ctx, mock.Anything).Return(nil)

	title := "new title"
	status := domain.StatusProgress
	ticket, err := r.service(nil).UpdateTicket(ctx, "tas-1", tracker.UpdateTicketRequest{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, "new title", ticket.Title)
	require.Equal(t, domain.StatusProgress, ticket.Status)
	require.Equal(t, "keep me", ticket.Description)
}

func TestDeleteEntity_KindNormalization(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	notifier := &fakeNotifier{}

	r.tickets.On("Delete", ctx, "bug-1").Return(nil)

	// "bugs" addresses the shared tickets collection.
	deleted, err := r.service(notifier).DeleteEntity(ctx, "bugs", "bug-1")
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, []string{"bug-1"}, notifier.ticketDeleted)
	r.tickets.AssertExpectations(t)
}

func TestDeleteEntity_UnknownKind(t *testing.T) {
	ctx := context.Background()
	_, err := newRepos().service(nil).DeleteEntity(ctx, "projects", "x-1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteEntity_MissingIsFalse(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	r.users.On("Delete", ctx, "use-missing1").Return(repository.ErrNotFound)

	deleted, err := r.service(nil).DeleteEntity(ctx, "users", "use-missing1")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestDeleteTicketCascade(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	comments := []domain.Comment{
		{ID: "com-1", TicketID: "tas-1"},
		{ID: "com-2", TicketID: "tas-1"},
	}
	r.comments.On("ListByTicket", ctx, "tas-1").Return(comments, nil)
	r.comments.On("Delete", ctx, "com-1").Return(nil)
	r.comments.On("Delete", ctx, "com-2").Return(nil)
	r.tickets.On("Delete", ctx, "tas-1").Return(nil)

	deleted, removed, err := r.service(nil).DeleteTicketCascade(ctx, "tas-1")
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 2, removed)
	r.comments.AssertExpectations(t)
	r.tickets.AssertExpectations(t)
}

func TestFindEntity_ChecksAllCollections(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	r.tickets.On("Get", ctx, "spr-1").Return(nil, repository.ErrNotFound)
	r.sprints.On("Get", ctx, "spr-1").Return(&domain.Sprint{ID: "spr-1", Name: "S"}, nil)

	match, err := r.service(nil).FindEntity(ctx, "spr-1")
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, domain.KindSprints, match.Kind)
	require.NotNil(t, match.Sprint)
}

func TestFindEntity_BugKind(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	r.tickets.On("Get", ctx, "bug-1").Return(&domain.Ticket{ID: "bug-1", Type: domain.TypeBug}, nil)

	match, err := r.service(nil).FindEntity(ctx, "bug-1")
	require.NoError(t, err)
	require.Equal(t, domain.KindBugs, match.Kind)
}

func TestFindEntity_Missing(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	r.tickets.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)
	r.sprints.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)
	r.users.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)

	match, err := r.service(nil).FindEntity(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, match)
}

func TestCreateComment_ResolvesAuthor(t *testing.T) {
	ctx := context.Background()
	r := newRepos()

	bob := domain.User{ID: "use-b0b0b0b0", Username: "bob"}
	r.users.On("Get", ctx, "bob").Return(nil, repository.ErrNotFound)
	r.users.On("List", ctx).Return([]domain.User{bob}, nil)
	r.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.Author == bob.ID && c.TicketID == "tas-1"
	})).Return(nil)

	comment, err := r.service(nil).CreateComment(ctx, "tas-1", "bob", "looks good")
	require.NoError(t, err)
	require.Equal(t, bob.ID, comment.Author)
	r.comments.AssertExpectations(t)
}
