package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/avasani/KnowledgeAPI/pkg/logger_i"
)

// Storage keeps the raw uploaded files on disk. The knowledge base treats
// a saved file as an opaque resource: Save acquires it, Remove releases it.
type Storage struct {
	dir    string
	logger *logger_i.Logger
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &Storage{
		dir:    dir,
		logger: logger_i.NewLogger("FileStore"),
	}, nil
}

// Save writes the upload under a collision-free name and returns the
// backing path plus the number of bytes written.
func (s *Storage) Save(originalName string, r io.Reader) (string, int64, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("creating backing file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		// half-written file is useless, drop it
		if removeErr := os.Remove(path); removeErr != nil {
			s.logger.Error("failed removing partial file", "path", path, "error", removeErr)
		}
		return "", 0, fmt.Errorf("writing backing file: %w", err)
	}
	return path, written, nil
}

// Remove releases the backing file. A missing file is not an error: the
// release already happened.
func (s *Storage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("failed removing backing file", "path", path, "error", err)
		return err
	}
	return nil
}
