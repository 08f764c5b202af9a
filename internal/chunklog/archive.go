package chunklog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/repository"
)

const (
	archivePrefix = "archive-"
	archiveExt    = ".yaml"
)

// ArchiveRepository implements repository.ArchiveRepository as one YAML
// document per completed sprint under <root>/archives.
type ArchiveRepository struct {
	store *Store
}

// NewArchiveRepository creates a new ArchiveRepository
func NewArchiveRepository(store *Store) *ArchiveRepository {
	return &ArchiveRepository{store: store}
}

func (r *ArchiveRepository) path(sprintID string) string {
	return filepath.Join(r.store.archivesDir(), archivePrefix+sprintID+archiveExt)
}

// Save writes the archive document, overwriting any previous document for
// the same sprint. The write is atomic and synced before returning.
func (r *ArchiveRepository) Save(ctx context.Context, archive *domain.ArchivedSprint) error {
	dir := r.store.archivesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating archives directory: %w", err)
	}

	data, err := yaml.Marshal(archive)
	if err != nil {
		return fmt.Errorf("encoding archive: %w", err)
	}

	tmp, err := os.CreateTemp(dir, archivePrefix+"tmp-")
	if err != nil {
		return fmt.Errorf("creating temp archive: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Rename(tmpPath, r.path(archive.Sprint.ID)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing archive: %w", err)
	}
	return nil
}

// Get reads the archive document for a sprint
func (r *ArchiveRepository) Get(ctx context.Context, sprintID string) (*domain.ArchivedSprint, error) {
	data, err := os.ReadFile(r.path(sprintID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	var archive domain.ArchivedSprint
	if err := yaml.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("%w: archive for %s: %v", repository.ErrCorrupt, sprintID, err)
	}
	return &archive, nil
}

// ListSprintIDs enumerates the sprint ids with an archive document present,
// independent of whether the sprint record still exists in active storage.
func (r *ArchiveRepository) ListSprintIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.store.archivesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading archives directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, archiveExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, archivePrefix), archiveExt))
	}
	sort.Strings(ids)
	return ids, nil
}
