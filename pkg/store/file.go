package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
)

// FileStore stores each board as a JSON document in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create board dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) boardPath(board string) string {
	return filepath.Join(s.dir, board+".json")
}

func (s *FileStore) Load(ctx context.Context, board string) (*grid.Board, error) {
	if err := errors.ValidateBoardID(board); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.boardPath(board))
	if os.IsNotExist(err) {
		return nil, notFound(board)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read board %q", board)
	}
	return decode(board, data)
}

func (s *FileStore) Save(ctx context.Context, board string, b *grid.Board) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	data, err := encode(board, b)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := sgio.WriteFileAtomic(s.boardPath(board), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write board %q", board)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, board string) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.boardPath(board)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove board %q", board)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read board dir")
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *FileStore) Close() error { return nil }

// Dir returns the directory holding the board files.
func (s *FileStore) Dir() string { return s.dir }

// String describes the store for log lines.
func (s *FileStore) String() string { return fmt.Sprintf("file:%s", s.dir) }

var _ Store = (*FileStore)(nil)
