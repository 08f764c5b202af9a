package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
)

// UpdateSprintStatus sets a sprint's status, refreshing updatedAt. Returns
// (nil, nil) when the sprint does not exist.
//
// Transitioning into completed archives the sprint's tickets and comments:
// the archive document is written first, then the records are removed from
// active storage, and only then is the sprint's new status persisted. A
// failure at any step leaves the sprint short of completed, so the call is
// safely retryable; a retry resumes from the already-written document rather
// than snapshotting again. Repeated completion calls are no-ops for the
// archive.
func (s *Service) UpdateSprintStatus(ctx context.Context, id string, status domain.SprintStatus) (*domain.Sprint, error) {
	if err := domain.ValidateSprintStatus(status); err != nil {
		return nil, err
	}

	sprint, err := s.sprints.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading sprint: %w", err)
	}

	completing := status == domain.SprintCompleted && sprint.Status != domain.SprintCompleted

	sprint.Status = status
	sprint.UpdatedAt = time.Now()

	if completing {
		if err := s.archiveSprint(ctx, sprint); err != nil {
			return nil, fmt.Errorf("archiving sprint %s: %w", id, err)
		}
	}

	if err := s.sprints.Save(ctx, sprint); err != nil {
		return nil, fmt.Errorf("updating sprint status: %w", err)
	}

	if s.notifier != nil {
		s.notifier.SprintUpdated(ctx, sprint)
	}
	return sprint, nil
}

// archiveSprint moves the sprint's tickets and comments out of active
// storage into an archive document. Sprints with no tickets produce no
// archive document at all.
func (s *Service) archiveSprint(ctx context.Context, sprint *domain.Sprint) error {
	archive, err := s.archives.Get(ctx, sprint.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("checking archive: %w", err)
	}

	if archive != nil {
		// A document already exists for a sprint that never reached
		// completed: an earlier run was interrupted after the archive write.
		// That document is the snapshot; rebuilding it from active storage
		// would drop whatever the earlier run already removed. Resume the
		// removal from it instead.
		s.logger.Info("resuming interrupted archival", "sprint", sprint.ID)
	} else {
		tickets, err := s.tickets.List(ctx, repository.ListTicketsOptions{SprintID: sprint.ID})
		if err != nil {
			return fmt.Errorf("collecting tickets: %w", err)
		}
		if len(tickets) == 0 {
			s.logger.Debug("sprint completed with no tickets, skipping archive", "sprint", sprint.ID)
			return nil
		}

		var comments []domain.Comment
		for _, t := range tickets {
			tc, err := s.comments.ListByTicket(ctx, t.ID)
			if err != nil {
				return fmt.Errorf("collecting comments: %w", err)
			}
			comments = append(comments, tc...)
		}

		archive = &domain.ArchivedSprint{
			Version:    domain.ArchiveVersion,
			Sprint:     *sprint,
			Tickets:    tickets,
			Comments:   comments,
			ArchivedAt: time.Now(),
		}

		// Archive first: a failure past this point leaves active records in
		// place and the archive recoverable by re-running completion.
		if err := s.archives.Save(ctx, archive); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
	}

	ticketIDs := make([]string, 0, len(archive.Tickets))
	for _, t := range archive.Tickets {
		ticketIDs = append(ticketIDs, t.ID)
	}

	if _, err := s.comments.DeleteByTickets(ctx, ticketIDs); err != nil {
		return fmt.Errorf("removing archived comments: %w", err)
	}
	if _, err := s.tickets.DeleteBySprint(ctx, sprint.ID); err != nil {
		return fmt.Errorf("removing archived tickets: %w", err)
	}

	s.logger.Info("archived sprint",
		"sprint", sprint.ID,
		"tickets", len(archive.Tickets),
		"comments", len(archive.Comments))
	return nil
}
