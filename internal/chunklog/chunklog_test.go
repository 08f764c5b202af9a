package chunklog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tkxr/tkxr/internal/chunklog"
	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
)

func newStore(t *testing.T) *chunklog.Store {
	t.Helper()
	store, err := chunklog.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestTicketRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewTicketRepository(newStore(t))

	now := time.Now().Truncate(time.Second)
	ticket := &domain.Ticket{
		ID:        "tas-a1b2c3d4",
		Type:      domain.TypeTask,
		Title:     "Wire up the login page",
		Status:    domain.StatusTodo,
		Priority:  domain.PriorityHigh,
		Labels:    []string{"frontend", "auth"},
		Estimate:  3,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, ticket))

	got, err := repo.Get(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, ticket.Title, got.Title)
	require.Equal(t, ticket.Labels, got.Labels)
	require.True(t, got.CreatedAt.Equal(now))

	got.Status = domain.StatusProgress
	require.NoError(t, repo.Save(ctx, got))

	updated, err := repo.Get(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusProgress, updated.Status)

	require.NoError(t, repo.Delete(ctx, ticket.ID))
	_, err = repo.Get(ctx, ticket.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewTicketRepository(newStore(t))

	tickets, err := repo.List(ctx, repository.ListTicketsOptions{})
	require.NoError(t, err)
	require.Empty(t, tickets)

	_, err = repo.Get(ctx, "tas-missing1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, "tas-missing1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewTicketRepository(newStore(t))

	seed := []domain.Ticket{
		{ID: "tas-1", Type: domain.TypeTask, Status: domain.StatusTodo, Sprint: "spr-1"},
		{ID: "tas-2", Type: domain.TypeTask, Status: domain.StatusDone, Sprint: "spr-2"},
		{ID: "bug-1", Type: domain.TypeBug, Status: domain.StatusTodo, Sprint: "spr-1"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	tasks, err := repo.List(ctx, repository.ListTicketsOptions{Type: domain.TypeTask})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	todo, err := repo.List(ctx, repository.ListTicketsOptions{Status: domain.StatusTodo})
	require.NoError(t, err)
	require.Len(t, todo, 2)

	sprint1, err := repo.List(ctx, repository.ListTicketsOptions{SprintID: "spr-1"})
	require.NoError(t, err)
	require.Len(t, sprint1, 2)

	bugsInSprint1, err := repo.List(ctx, repository.ListTicketsOptions{Type: domain.TypeBug, SprintID: "spr-1"})
	require.NoError(t, err)
	require.Len(t, bugsInSprint1, 1)
	require.Equal(t, "bug-1", bugsInSprint1[0].ID)
}

func TestTicketRepository_DeleteBySprint(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewTicketRepository(newStore(t))

	seed := []domain.Ticket{
		{ID: "tas-1", Type: domain.TypeTask, Sprint: "spr-1"},
		{ID: "tas-2", Type: domain.TypeTask, Sprint: "spr-2"},
		{ID: "bug-1", Type: domain.TypeBug, Sprint: "spr-1"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	removed, err := repo.DeleteBySprint(ctx, "spr-1")
	require.NoError(t, err)
	require.Len(t, removed, 2)

	remaining, err := repo.List(ctx, repository.ListTicketsOptions{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "tas-2", remaining[0].ID)

	// No matches is not an error.
	removed, err = repo.DeleteBySprint(ctx, "spr-1")
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestCommentRepository_DeleteByTickets(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewCommentRepository(newStore(t))

	seed := []domain.Comment{
		{ID: "com-1", TicketID: "tas-1", Author: "use-1", Content: "first"},
		{ID: "com-2", TicketID: "tas-1", Author: "use-1", Content: "second"},
		{ID: "com-3", TicketID: "tas-2", Author: "use-1", Content: "other"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	forTicket, err := repo.ListByTicket(ctx, "tas-1")
	require.NoError(t, err)
	require.Len(t, forTicket, 2)

	removed, err := repo.DeleteByTickets(ctx, []string{"tas-1"})
	require.NoError(t, err)
	require.Len(t, removed, 2)

	forTicket, err = repo.ListByTicket(ctx, "tas-1")
	require.NoError(t, err)
	require.Empty(t, forTicket)

	forOther, err := repo.ListByTicket(ctx, "tas-2")
	require.NoError(t, err)
	require.Len(t, forOther, 1)
}

func TestUserRepository_SaveMissing(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewUserRepository(newStore(t))

	err := repo.Save(ctx, &domain.User{ID: "use-missing1"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArchiveRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	repo := chunklog.NewArchiveRepository(store)

	archive := &domain.ArchivedSprint{
		Version: domain.ArchiveVersion,
		Sprint:  domain.Sprint{ID: "spr-a1b2c3d4", Name: "Sprint 1", Status: domain.SprintCompleted},
		Tickets: []domain.Ticket{
			{ID: "tas-1", Type: domain.TypeTask, Title: "done thing", Status: domain.StatusDone},
		},
		Comments: []domain.Comment{
			{ID: "com-1", TicketID: "tas-1", Author: "use-1", Content: "shipped"},
		},
		ArchivedAt: time.Now(),
	}
	require.NoError(t, repo.Save(ctx, archive))

	got, err := repo.Get(ctx, "spr-a1b2c3d4")
	require.NoError(t, err)
	require.Equal(t, domain.ArchiveVersion, got.Version)
	require.Equal(t, "Sprint 1", got.Sprint.Name)
	require.Len(t, got.Tickets, 1)
	require.Len(t, got.Comments, 1)

	// One YAML document per sprint under archives/.
	path := filepath.Join(store.Root(), "archives", "archive-spr-a1b2c3d4.yaml")
	_, err = os.Stat(path)
	require.NoError(t, err)

	ids, err := repo.ListSprintIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"spr-a1b2c3d4"}, ids)
}

func TestArchiveRepository_Missing(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewArchiveRepository(newStore(t))

	_, err := repo.Get(ctx, "spr-nothere1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	ids, err := repo.ListSprintIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestArchiveRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := chunklog.NewArchiveRepository(newStore(t))

	first := &domain.ArchivedSprint{
		Version: domain.ArchiveVersion,
		Sprint:  domain.Sprint{ID: "spr-1", Name: "before"},
	}
	require.NoError(t, repo.Save(ctx, first))

	second := &domain.ArchivedSprint{
		Version: domain.ArchiveVersion,
		Sprint:  domain.Sprint{ID: "spr-1", Name: "after"},
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx, "spr-1")
	require.NoError(t, err)
	require.Equal(t, "after", got.Sprint.Name)

	ids, err := repo.ListSprintIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)
}
