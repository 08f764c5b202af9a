package chunklog

import (
	"context"

	"github.com/tkxr/tkxr/internal/domain"
)

// CommentRepository implements repository.CommentRepository over NDJSON segments
type CommentRepository struct {
	store *Store
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(store *Store) *CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) dir() string {
	return r.store.collectionDir(domain.KindComments)
}

// Create appends a new comment to the active segment
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return appendRecord(r.dir(), r.store.segmentCap, *comment)
}

// Get retrieves a comment by ID
func (r *CommentRepository) Get(ctx context.Context, id string) (*domain.Comment, error) {
	_, records, idx, err := findInSegments(r.dir(), func(c domain.Comment) bool { return c.ID == id })
	if err != nil {
		return nil, err
	}
	comment := records[idx]
	return &comment, nil
}

// ListByTicket returns the comments attached to one ticket
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	all, err := readAll[domain.Comment](r.dir())
	if err != nil {
		return nil, err
	}

	var out []domain.Comment
	for _, c := range all {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Delete removes the comment from its owning segment
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	path, records, idx, err := findInSegments(r.dir(), func(c domain.Comment) bool { return c.ID == id })
	if err != nil {
		return err
	}
	return writeSegment(path, append(records[:idx], records[idx+1:]...))
}

// DeleteByTickets removes every comment attached to the given tickets,
// returning the removed records.
func (r *CommentRepository) DeleteByTickets(ctx context.Context, ticketIDs []string) ([]domain.Comment, error) {
	ids := make(map[string]bool, len(ticketIDs))
	for _, id := range ticketIDs {
		ids[id] = true
	}

	paths, err := listSegments(r.dir())
	if err != nil {
		return nil, err
	}

	var removed []domain.Comment
	for _, path := range paths {
		records, err := readSegment[domain.Comment](path)
		if err != nil {
			return nil, err
		}
		kept := records[:0:0]
		for _, c := range records {
			if ids[c.TicketID] {
				removed = append(removed, c)
			} else {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(records) {
			continue
		}
		if err := writeSegment(path, kept); err != nil {
			return nil, err
		}
	}
	return removed, nil
}
