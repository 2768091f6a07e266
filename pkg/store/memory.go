package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

// MemoryStore keeps encoded boards in memory. Boards are stored encoded so
// callers never share block content maps with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, board string) (*grid.Board, error) {
	if err := errors.ValidateBoardID(board); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.boards[board]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(board)
	}
	return decode(board, data)
}

func (s *MemoryStore) Save(ctx context.Context, board string, b *grid.Board) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	data, err := encode(board, b)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.boards[board] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, board string) error {
	s.mu.Lock()
	delete(s.boards, board)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.boards))
	for id := range s.boards {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
