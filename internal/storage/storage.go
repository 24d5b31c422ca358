package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a path-keyed object store backed by a local directory and served
// publicly under /media. It stands in for a hosted storage bucket: the rest
// of the app only ever sees Upload/Remove/PublicURL and path strings.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	abs := root
	if !filepath.IsAbs(abs) {
		a, err := filepath.Abs(abs)
		if err != nil {
			return nil, err
		}
		abs = a
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, err
	}
	return &Store{root: abs}, nil
}

func (s *Store) Root() string { return s.root }

// Upload writes data under the given bucket-relative path, e.g.
// "original/5/uuid_photo.jpg". Rejects traversal and absolute paths.
func (s *Store) Upload(path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

// Remove deletes the given objects; missing paths are not an error.
func (s *Store) Remove(paths ...string) error {
	for _, p := range paths {
		full, err := s.resolve(p)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// PublicURL returns the serving path for a stored object.
func (s *Store) PublicURL(path string) string {
	return "/media/" + strings.TrimPrefix(path, "/")
}

func (s *Store) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if clean == "." || filepath.IsAbs(clean) || strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}
