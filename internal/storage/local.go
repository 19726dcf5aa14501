package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^\w.\-]`)

// LocalStorage writes case attachments to a directory on disk. It is a thin
// collaborator; the intake service only deals in the returned metadata.
type LocalStorage struct {
	dir string
}

// NewLocalStorage ensures the upload directory exists.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes the stream under a sanitized, timestamp-prefixed name and
// returns the stored name and full path.
func (s *LocalStorage) Save(originalName string, r io.Reader) (string, string, error) {
	safe := unsafeChars.ReplaceAllString(filepath.Base(originalName), "_")
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), safe)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", "", err
	}
	return name, path, nil
}

// Open returns a reader for a previously stored file.
func (s *LocalStorage) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(name)))
}

// Remove deletes a stored file.
func (s *LocalStorage) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}
