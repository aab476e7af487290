package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var ErrNotFound = errors.New("not found")

// CorpusStore reads training corpora from the filesystem. A class is a
// folder; its training instances are the contents of the regular files
// directly inside it. All reads are shallow: nested folders are not followed.
type CorpusStore struct{}

func NewCorpusStore() *CorpusStore {
	return &CorpusStore{}
}

// LoadClasses reads every candidate folder into a class keyed by the folder
// path, with one instance per regular file. A folder with no readable files
// contributes an empty class rather than an error.
func (s *CorpusStore) LoadClasses(folders []string) (map[string][]string, error) {
	classes := make(map[string][]string, len(folders))
	for _, folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("folder %q: %w", folder, ErrNotFound)
			}
			return nil, fmt.Errorf("read folder %q: %w", folder, err)
		}
		instances := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			content, err := os.ReadFile(filepath.Join(folder, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("read file %q: %w", entry.Name(), err)
			}
			instances = append(instances, string(content))
		}
		classes[folder] = instances
	}
	return classes, nil
}

// ReadInstance returns the contents of a single file to be classified.
func (s *CorpusStore) ReadInstance(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file %q: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("read file %q: %w", path, err)
	}
	return string(content), nil
}

// Partition splits a folder's direct children into subfolders and stray
// files, both sorted by name.
func (s *CorpusStore) Partition(dir string) (subfolders, files []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("folder %q: %w", dir, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("read folder %q: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			subfolders = append(subfolders, path)
		} else if entry.Type().IsRegular() {
			files = append(files, path)
		}
	}
	sort.Strings(subfolders)
	sort.Strings(files)
	return subfolders, files, nil
}

// Exists reports whether path exists at all.
func (s *CorpusStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Move renames a file into its destination. The caller decides whether the
// destination is safe; Move refuses to overwrite.
func (s *CorpusStore) Move(src, dst string) error {
	if s.Exists(dst) {
		return fmt.Errorf("destination %q already exists", dst)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %q to %q: %w", src, dst, err)
	}
	return nil
}
