// Package editor applies layout edits to stored boards.
//
// A [Runner] loads a board from a [store.Store], runs one engine operation
// on it and saves the complete next block list back. The CLI and the HTTP
// API both drive boards through a Runner so they share persistence, logging
// and hook reporting.
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
	"github.com/matzehuels/sectiongrid/pkg/observability"
	"github.com/matzehuels/sectiongrid/pkg/store"
)

// Runner runs engine operations against stored boards.
//
// Each mutating call holds the runner's lock across load, mutate and save,
// so a single Runner is safe for concurrent use and never interleaves two
// commits. Separate processes writing the same board are not coordinated.
type Runner struct {
	Store   store.Store
	Logger  *log.Logger
	Horizon int

	mu sync.Mutex
}

// NewRunner creates a runner over s. A nil logger uses log.Default() and a
// horizon of zero or less uses grid.DefaultHorizon.
func NewRunner(s store.Store, logger *log.Logger, horizon int) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if horizon <= 0 {
		horizon = grid.DefaultHorizon
	}
	return &Runner{Store: s, Logger: logger, Horizon: horizon}
}

// BlockRequest describes a block to create.
type BlockRequest struct {
	ID string `json:"id,omitempty"`

	// Width selects the column span. When empty, ColumnSpan is used.
	Width      grid.Width     `json:"width,omitempty"`
	ColumnSpan int            `json:"columnSpan,omitempty"`
	RowSpan    int            `json:"rowSpan,omitempty"`
	Content    map[string]any `json:"content,omitempty"`
}

// Block converts the request to an unplaced block. RowSpan defaults to 1.
func (r BlockRequest) Block() (grid.Block, error) {
	blk := grid.Block{
		ID:         r.ID,
		RowSpan:    r.RowSpan,
		ColumnSpan: r.ColumnSpan,
		Content:    r.Content,
	}
	if r.Width != "" {
		w, err := grid.ParseWidth(string(r.Width))
		if err != nil {
			return grid.Block{}, err
		}
		blk.ColumnSpan = w.Columns()
	}
	if blk.RowSpan == 0 {
		blk.RowSpan = 1
	}
	return blk, grid.ValidateSpan(blk.RowSpan, blk.ColumnSpan)
}

// Report summarises a board's health.
type Report struct {
	Board    string         `json:"board"`
	Blocks   int            `json:"blocks"`
	Rows     int            `json:"rows"`
	Overlaps []grid.Overlap `json:"overlaps,omitempty"`
}

// OK reports whether the board has no overlapping blocks.
func (r Report) OK() bool { return len(r.Overlaps) == 0 }

// =============================================================================
// Reads
// =============================================================================

// Show returns the stored board. A board that was never saved is empty.
func (r *Runner) Show(ctx context.Context, board string) (*grid.Board, error) {
	b, err := r.Store.Load(ctx, board)
	if errors.Is(err, errors.ErrCodeBoardNotFound) {
		return &grid.Board{}, nil
	}
	return b, err
}

// List returns the ids of all stored boards.
func (r *Runner) List(ctx context.Context) ([]string, error) {
	return r.Store.List(ctx)
}

// Check reports overlapping block pairs, which only an exhausted placement or
// cascade can leave behind.
func (r *Runner) Check(ctx context.Context, board string) (Report, error) {
	b, err := r.Show(ctx, board)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Board: board, Blocks: b.Len(), Rows: b.Rows(), Overlaps: b.Overlaps()}
	if !rep.OK() {
		r.Logger.Warn("board has overlapping blocks", "board", board, "pairs", len(rep.Overlaps))
	}
	return rep, nil
}

// Export returns the board as a document.
func (r *Runner) Export(ctx context.Context, board string) (*sgio.Document, error) {
	b, err := r.Show(ctx, board)
	if err != nil {
		return nil, err
	}
	return sgio.NewDocument(board, b), nil
}

// =============================================================================
// Mutations
// =============================================================================

// Create places a new block on the board.
func (r *Runner) Create(ctx context.Context, board string, req BlockRequest) (grid.Placement, error) {
	blk, err := req.Block()
	if err != nil {
		return grid.Placement{}, err
	}

	var p grid.Placement
	err = r.mutate(ctx, board, func(b *grid.Board) (*grid.Board, error) {
		next, placed, err := b.Add(blk, r.Horizon)
		p = placed
		return next, err
	})
	if err != nil {
		return grid.Placement{}, err
	}

	observability.Engine().OnPlace(ctx, board, p.Block.ID, p.Exhausted)
	r.logPlacement("placed block", board, p)
	return p, nil
}

// Move commits a move of block id to anchor to, cascading colliders.
func (r *Runner) Move(ctx context.Context, board, id string, to grid.Anchor) (grid.Resolution, error) {
	start := time.Now()
	var res grid.Resolution
	err := r.mutate(ctx, board, func(b *grid.Board) (*grid.Board, error) {
		next, resolved, err := b.Move(id, to, r.Horizon)
		res = resolved
		return next, err
	})
	if err != nil {
		return grid.Resolution{}, err
	}

	d := time.Since(start)
	observability.Engine().OnResolve(ctx, board, id, len(res.Collided), len(res.Unresolved), d)
	if len(res.Unresolved) > 0 {
		r.Logger.Warn("cascade exhausted; blocks left at fallback anchor",
			"board", board, "block", id, "unresolved", res.Unresolved)
	}
	r.Logger.Info("moved block",
		"board", board,
		"block", id,
		"to", to,
		"collided", len(res.Collided),
		"moves", len(res.Moves),
		"duration", d)
	return res, nil
}

// Edit changes a block's span or content.
func (r *Runner) Edit(ctx context.Context, board, id string, e grid.Edit) (grid.Placement, error) {
	var p grid.Placement
	err := r.mutate(ctx, board, func(b *grid.Board) (*grid.Board, error) {
		next, placed, err := b.Edit(id, e, r.Horizon)
		p = placed
		return next, err
	})
	if err != nil {
		return grid.Placement{}, err
	}

	if e.RowSpan != 0 || e.ColumnSpan != 0 {
		observability.Engine().OnPlace(ctx, board, id, p.Exhausted)
	}
	r.logPlacement("edited block", board, p)
	return p, nil
}

// Remove deletes block id. Other blocks keep their anchors.
func (r *Runner) Remove(ctx context.Context, board, id string) error {
	err := r.mutate(ctx, board, func(b *grid.Board) (*grid.Board, error) {
		return b.Remove(id)
	})
	if err != nil {
		return err
	}
	observability.Engine().OnRemove(ctx, board, id)
	r.Logger.Info("removed block", "board", board, "block", id)
	return nil
}

// Import replaces the whole board with the blocks of d. Documents with
// overlapping blocks are rejected unless opts allows them.
func (r *Runner) Import(ctx context.Context, board string, d *sgio.Document, opts sgio.Options) (*grid.Board, error) {
	if err := errors.ValidateBoardID(board); err != nil {
		return nil, err
	}
	b, err := d.Grid(opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Store.Save(ctx, board, b); err != nil {
		return nil, err
	}
	r.Logger.Info("imported board", "board", board, "blocks", b.Len())
	return b, nil
}

// Delete removes the whole board.
func (r *Runner) Delete(ctx context.Context, board string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Store.Delete(ctx, board); err != nil {
		return err
	}
	r.Logger.Info("deleted board", "board", board)
	return nil
}

// mutate runs fn on the current board and saves its result. Nothing is saved
// when fn fails.
func (r *Runner) mutate(ctx context.Context, board string, fn func(*grid.Board) (*grid.Board, error)) error {
	if err := errors.ValidateBoardID(board); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.Show(ctx, board)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return r.Store.Save(ctx, board, next)
}

func (r *Runner) logPlacement(msg, board string, p grid.Placement) {
	if p.Exhausted {
		r.Logger.Warn("no free anchor within horizon; block placed at fallback anchor",
			"board", board, "block", p.Block.ID, "horizon", r.Horizon)
	}
	r.Logger.Info(msg,
		"board", board,
		"block", p.Block.ID,
		"anchor", p.Block.Anchor(),
		"span", p.Block.Span())
}
