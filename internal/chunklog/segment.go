package chunklog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tkxr/tkxr/internal/repository"
)

const (
	segmentPrefix = "chunk-"
	segmentExt    = ".ndjson"
)

func segmentName(n int) string {
	return fmt.Sprintf("%s%06d%s", segmentPrefix, n, segmentExt)
}

// listSegments returns the segment paths in a collection directory in
// ascending order. A missing directory reads as an empty collection.
func listSegments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading collection directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, segmentPrefix) || !strings.HasSuffix(name, segmentExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// readSegment decodes every record in one segment file.
func readSegment[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening segment: %w", err)
	}
	defer file.Close()

	var records []T
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", repository.ErrCorrupt, filepath.Base(path), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning segment: %w", err)
	}
	return records, nil
}

// readAll decodes every record across all segments of a collection.
func readAll[T any](dir string) ([]T, error) {
	paths, err := listSegments(dir)
	if err != nil {
		return nil, err
	}

	var all []T
	for _, path := range paths {
		records, err := readSegment[T](path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// appendRecord appends one record to the active segment, rolling over to a
// fresh segment when the active one has reached the cap. The write is synced
// to disk before returning.
func appendRecord[T any](dir string, cap int, rec T) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating collection directory: %w", err)
	}

	paths, err := listSegments(dir)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, segmentName(1))
	if len(paths) > 0 {
		active := paths[len(paths)-1]
		count, err := countRecords(active)
		if err != nil {
			return err
		}
		if count < cap {
			target = active
		} else {
			target = filepath.Join(dir, segmentName(len(paths)+1))
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	data = append(data, '\n')

	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening segment: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing segment: %w", err)
	}
	return nil
}

// writeSegment replaces a segment's contents atomically: the new records are
// written to a temp file, synced, and renamed over the original.
func writeSegment[T any](path string, records []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("creating temp segment: %w", err)
	}
	tmpPath := tmp.Name()

	var buf bytes.Buffer
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("encoding record: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp segment: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp segment: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp segment: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing segment: %w", err)
	}
	return nil
}

func countRecords(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening segment: %w", err)
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) > 0 {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scanning segment: %w", err)
	}
	return count, nil
}

// findInSegments locates the segment holding the record matched by pred and
// returns the segment path, its decoded records, and the match index.
// Returns repository.ErrNotFound when no segment holds a match.
func findInSegments[T any](dir string, pred func(T) bool) (string, []T, int, error) {
	paths, err := listSegments(dir)
	if err != nil {
		return "", nil, 0, err
	}

	for _, path := range paths {
		records, err := readSegment[T](path)
		if err != nil {
			return "", nil, 0, err
		}
		for i, rec := range records {
			if pred(rec) {
				return path, records, i, nil
			}
		}
	}
	return "", nil, 0, repository.ErrNotFound
}
