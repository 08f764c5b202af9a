package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
)

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SprintRepository is a mock for repository.SprintRepository.
type SprintRepository struct {
	mock.Mock
}

func (m *SprintRepository) Create(ctx context.Context, sprint *domain.Sprint) error {
	args := m.Called(ctx, sprint)
	return args.Error(0)
}

func (m *SprintRepository) Get(ctx context.Context, id string) (*domain.Sprint, error) {
	args := m.Called(ctx, id)
	if sprint, ok := args.Get(0).(*domain.Sprint); ok {
		return sprint, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SprintRepository) List(ctx context.Context) ([]domain.Sprint, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.Sprint); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SprintRepository) Save(ctx context.Context, sprint *domain.Sprint) error {
	args := m.Called(ctx, sprint)
	return args.Error(0)
}

func (m *SprintRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TicketRepository is a mock for repository.TicketRepository.
type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if ticket, ok := args.Get(0).(*domain.Ticket); ok {
		return ticket, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) List(ctx context.Context, opts repository.ListTicketsOptions) ([]domain.Ticket, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]domain.Ticket); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepository) DeleteBySprint(ctx context.Context, sprintID string) ([]domain.Ticket, error) {
	args := m.Called(ctx, sprintID)
	if list, ok := args.Get(0).([]domain.Ticket); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CommentRepository is a mock for repository.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) Get(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if comment, ok := args.Get(0).(*domain.Comment); ok {
		return comment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	args := m.Called(ctx, ticketID)
	if list, ok := args.Get(0).([]domain.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) DeleteByTickets(ctx context.Context, ticketIDs []string) ([]domain.Comment, error) {
	args := m.Called(ctx, ticketIDs)
	if list, ok := args.Get(0).([]domain.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ArchiveRepository is a mock for repository.ArchiveRepository.
type ArchiveRepository struct {
	mock.Mock
}

func (m *ArchiveRepository) Save(ctx context.Context, archive *domain.ArchivedSprint) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

func (m *ArchiveRepository) Get(ctx context.Context, sprintID string) (*domain.ArchivedSprint, error) {
	args := m.Called(ctx, sprintID)
	if archive, ok := args.Get(0).(*domain.ArchivedSprint); ok {
		return archive, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ArchiveRepository) ListSprintIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
