package chunklog

import (
	"context"

	"github.com/tkxr/tkxr/internal/domain"
)

// UserRepository implements repository.UserRepository over NDJSON segments
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) dir() string {
	return r.store.collectionDir(domain.KindUsers)
}

// Create appends a new user to the active segment
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return appendRecord(r.dir(), r.store.segmentCap, *user)
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	_, records, idx, err := findInSegments(r.dir(), func(u domain.User) bool { return u.ID == id })
	if err != nil {
		return nil, err
	}
	user := records[idx]
	return &user, nil
}

// List returns all users, freshly decoded from disk
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return readAll[domain.User](r.dir())
}

// Save rewrites the segment owning the user with the updated record
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	path, records, idx, err := findInSegments(r.dir(), func(u domain.User) bool { return u.ID == user.ID })
	if err != nil {
		return err
	}
	records[idx] = *user
	return writeSegment(path, records)
}

// Delete removes the user from its owning segment
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	path, records, idx, err := findInSegments(r.dir(), func(u domain.User) bool { return u.ID == id })
	if err != nil {
		return err
	}
	return writeSegment(path, append(records[:idx], records[idx+1:]...))
}
