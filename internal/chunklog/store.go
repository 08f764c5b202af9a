// Package chunklog persists entity collections as append-only NDJSON
// segments under a root directory, one subdirectory per collection, with a
// YAML archive document per completed sprint. Segments are capped at a fixed
// record count; creates append to the active segment and updates or deletes
// rewrite the owning segment in place.
package chunklog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tkxr/tkxr/internal/domain"
)

// SegmentCap is the maximum number of records per segment. When the active
// segment is full a new one is opened.
const SegmentCap = 1000

// Store owns a storage root directory. It is safe for a single process; two
// processes writing the same root can lose updates (see package tests).
type Store struct {
	root       string
	segmentCap int
}

// New opens (creating if needed) a store rooted at the given directory.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &Store{root: root, segmentCap: SegmentCap}, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) collectionDir(kind domain.Kind) string {
	return filepath.Join(s.root, string(kind))
}

func (s *Store) archivesDir() string {
	return filepath.Join(s.root, "archives")
}
