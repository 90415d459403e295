package version

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps the version as a single line of text.
// The file modification time is the check timestamp.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the file. A missing file yields ErrNoRecord.
func (s *FileStore) Load(context.Context) (Record, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNoRecord
		}
		return Record{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, err
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		value = Unknown
	}

	return Record{Value: value, CheckedAt: info.ModTime()}, nil
}

// Save writes rec.Value as one trimmed line and sets the modification time to rec.CheckedAt.
// The file is replaced atomically.
func (s *FileStore) Save(_ context.Context, rec Record) error {
	value, err := Normalize(rec.Value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".version-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if !rec.CheckedAt.IsZero() {
		if err := os.Chtimes(tmpName, rec.CheckedAt, rec.CheckedAt); err != nil {
			_ = os.Remove(tmpName)
			return fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return nil
}

var _ Store = (*FileStore)(nil)
