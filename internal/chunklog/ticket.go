package chunklog

import (
	"context"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
)

// TicketRepository implements repository.TicketRepository over NDJSON segments
type TicketRepository struct {
	store *Store
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(store *Store) *TicketRepository {
	return &TicketRepository{store: store}
}

func (r *TicketRepository) dir() string {
	return r.store.collectionDir(domain.KindTickets)
}

// Create appends a new ticket to the active segment
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return appendRecord(r.dir(), r.store.segmentCap, *ticket)
}

// Get retrieves a ticket by ID
func (r *TicketRepository) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	_, records, idx, err := findInSegments(r.dir(), func(t domain.Ticket) bool { return t.ID == id })
	if err != nil {
		return nil, err
	}
	ticket := records[idx]
	return &ticket, nil
}

// List returns tickets matching the options, freshly decoded from disk
func (r *TicketRepository) List(ctx context.Context, opts repository.ListTicketsOptions) ([]domain.Ticket, error) {
	all, err := readAll[domain.Ticket](r.dir())
	if err != nil {
		return nil, err
	}

	var out []domain.Ticket
	for _, t := range all {
		if opts.Type != "" && t.Type != opts.Type {
			continue
		}
		if opts.Status != "" && t.Status != opts.Status {
			continue
		}
		if opts.SprintID != "" && t.Sprint != opts.SprintID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Save rewrites the segment owning the ticket with the updated record
func (r *TicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	path, records, idx, err := findInSegments(r.dir(), func(t domain.Ticket) bool { return t.ID == ticket.ID })
	if err != nil {
		return err
	}
	records[idx] = *ticket
	return writeSegment(path, records)
}

// Delete removes the ticket from its owning segment
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	path, records, idx, err := findInSegments(r.dir(), func(t domain.Ticket) bool { return t.ID == id })
	if err != nil {
		return err
	}
	return writeSegment(path, append(records[:idx], records[idx+1:]...))
}

// DeleteBySprint removes every ticket belonging to the sprint, returning the
// removed records. Segments without matches are left untouched.
func (r *TicketRepository) DeleteBySprint(ctx context.Context, sprintID string) ([]domain.Ticket, error) {
	paths, err := listSegments(r.dir())
	if err != nil {
		return nil, err
	}

	var removed []domain.Ticket
	for _, path := range paths {
		records, err := readSegment[domain.Ticket](path)
		if err != nil {
			return nil, err
		}
		kept := records[:0:0]
		for _, t := range records {
			if t.Sprint == sprintID {
				removed = append(removed, t)
			} else {
				kept = append(kept, t)
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
