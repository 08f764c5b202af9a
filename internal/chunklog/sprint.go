package chunklog

import (
	"context"

	"github.com/tkxr/tkxr/internal/domain"
)

// SprintRepository implements repository.SprintRepository over NDJSON segments
type SprintRepository struct {
	store *Store
}

// NewSprintRepository creates a new SprintRepository
func NewSprintRepository(store *Store) *SprintRepository {
	return &SprintRepository{store: store}
}

func (r *SprintRepository) dir() string {
	return r.store.collectionDir(domain.KindSprints)
}

// Create appends a new sprint to the active segment
func (r *SprintRepository) Create(ctx context.Context, sprint *domain.Sprint) error {
	return appendRecord(r.dir(), r.store.segmentCap, *sprint)
}

// Get retrieves a sprint by ID
func (r *SprintRepository) Get(ctx context.Context, id string) (*domain.Sprint, error) {
	_, records, idx, err := findInSegments(r.dir(), func(s domain.Sprint) bool { return s.ID == id })
	if err != nil {
		return nil, err
	}
	sprint := records[idx]
	return &sprint, nil
}

// List returns all sprints, freshly decoded from disk
func (r *SprintRepository) List(ctx context.Context) ([]domain.Sprint, error) {
	return readAll[domain.Sprint](r.dir())
}

// Save rewrites the segment owning the sprint with the updated record
func (r *SprintRepository) Save(ctx context.Context, sprint *domain.Sprint) error {
	path, records, idx, err := findInSegments(r.dir(), func(s domain.Sprint) bool { return s.ID == sprint.ID })
	if err != nil {
		return err
	}
	records[idx] = *sprint
	return writeSegment(path, records)
}

// Delete removes the sprint from its owning segment
func (r *SprintRepository) Delete(ctx context.Context, id string) error {
	path, records, idx, err := findInSegments(r.dir(), func(s domain.Sprint) bool { return s.ID == id })
	if err != nil {
		return err
	}
	return writeSegment(path, append(records[:idx], records[idx+1:]...))
}
