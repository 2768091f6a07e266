// Package store persists boards as whole documents.
//
// Every commit replaces the complete block list of a board in one write;
// nothing in sectiongrid performs partial updates. Backends:
//   - memory: in-process, for tests and the TUI's scratch mode
//   - file: one JSON document per board, written atomically (CLI default)
//   - redis: one JSON value per board plus a set of board ids
//   - mongo: one BSON document per board, keyed by board id
//
// # Usage
//
//	s, err := store.Open(ctx, cfg.Store)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	b, err := s.Load(ctx, "home")
//	if errors.Is(err, errors.ErrCodeBoardNotFound) {
//	    b = &grid.Board{}
//	}
package store

import (
	"context"
	"time"

	"github.com/matzehuels/sectiongrid/pkg/config"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
	"github.com/matzehuels/sectiongrid/pkg/observability"
)

// Store is the interface for board persistence backends.
type Store interface {
	// Load returns the stored board. A board that was never saved yields an
	// error with code BOARD_NOT_FOUND.
	Load(ctx context.Context, board string) (*grid.Board, error)

	// Save replaces the stored board with b.
	Save(ctx context.Context, board string, b *grid.Board) error

	// Delete removes a board. Deleting a missing board is not an error.
	Delete(ctx context.Context, board string) error

	// List returns the ids of all stored boards, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Open creates the backend selected by cfg and wraps it with store hooks.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		s = NewMemoryStore()
	case config.BackendFile, "":
		dir := cfg.File.Dir
		if dir == "" {
			if dir, err = config.DataDir(); err != nil {
				return nil, err
			}
		}
		s, err = NewFileStore(dir)
	case config.BackendRedis:
		s, err = dial(ctx, func(ctx context.Context) (*RedisStore, error) {
			return NewRedisStore(ctx, cfg.Redis)
		})
	case config.BackendMongo:
		s, err = dial(ctx, func(ctx context.Context) (*MongoStore, error) {
			return NewMongoStore(ctx, cfg.Mongo)
		})
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	name := cfg.Backend
	if name == "" {
		name = config.BackendFile
	}
	return Instrument(name, s), nil
}

// decode turns a stored document into a board. Stored boards may carry a
// fallback overlap from an exhausted placement, so overlaps are accepted.
func decode(board string, data []byte) (*grid.Board, error) {
	d, err := sgio.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode board %q", board)
	}
	return fromDocument(board, d)
}

func fromDocument(board string, d *sgio.Document) (*grid.Board, error) {
	b, err := d.Grid(sgio.Options{AllowOverlap: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "invalid stored board %q", board)
	}
	return b, nil
}

func encode(board string, b *grid.Board) ([]byte, error) {
	data, err := sgio.Marshal(sgio.NewDocument(board, b))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "encode board %q", board)
	}
	return data, nil
}

func notFound(board string) error {
	return errors.New(errors.ErrCodeBoardNotFound, "board %q not found", board)
}

// =============================================================================
// Instrumentation
// =============================================================================

// instrumented reports loads and saves to the registered store hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so that loads and saves are reported to
// [observability.Store] under the given backend name.
func Instrument(backend string, s Store) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Load(ctx context.Context, board string) (*grid.Board, error) {
	start := time.Now()
	b, err := s.Store.Load(ctx, board)
	observability.Store().OnLoad(ctx, s.backend, board, b.Len(), time.Since(start), err)
	return b, err
}

func (s *instrumented) Save(ctx context.Context, board string, b *grid.Board) error {
	start := time.Now()
	err := s.Store.Save(ctx, board, b)
	observability.Store().OnSave(ctx, s.backend, board, b.Len(), time.Since(start), err)
	return err
}
