package grid

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/sectiongrid/pkg/errors"
)

// Board is an id-indexed collection of blocks in a stable order.
//
// A Board is a value: every mutating operation returns a new Board and leaves
// the receiver untouched, so callers can hand the previous state to a
// renderer while computing the next one. The zero value is an empty board.
type Board struct {
	blocks []Block
	index  map[string]int
}

// Placement is the outcome of placing a new or resized block.
type Placement struct {
	Block Block `json:"block"`

	// Exhausted is set when no free anchor was found within the horizon and
	// the block was put at the fallback anchor (1,1).
	Exhausted bool `json:"exhausted,omitempty"`
}

// Edit describes a change to an existing block. Zero spans and a nil Content
// leave the corresponding field unchanged.
type Edit struct {
	RowSpan    int
	ColumnSpan int
	Content    map[string]any
}

// Overlap names two blocks that share at least one cell.
type Overlap struct {
	A, B string
}

// NewBoard builds a board from blocks as stored. Ids must be unique and
// valid, spans and anchors must fit the grid. Overlaps are allowed so a stored
// layout with a pending fallback overlap still loads; see [Board.Overlaps].
func NewBoard(blocks []Block) (*Board, error) {
	b := &Board{
		blocks: slices.Clone(blocks),
		index:  make(map[string]int, len(blocks)),
	}
	for i, blk := range b.blocks {
		if err := errors.ValidateBlockID(blk.ID); err != nil {
			return nil, err
		}
		if _, dup := b.index[blk.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateID, "duplicate block id %q", blk.ID)
		}
		if err := ValidateSpan(blk.RowSpan, blk.ColumnSpan); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "block %q", blk.ID)
		}
		if err := ValidateAnchor(blk.Row, blk.Column, blk.ColumnSpan); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "block %q", blk.ID)
		}
		b.index[blk.ID] = i
	}
	return b, nil
}

// withBlocks returns a board over blocks, which must already be valid.
func withBlocks(blocks []Block) *Board {
	b := &Board{blocks: blocks, index: make(map[string]int, len(blocks))}
	for i, blk := range blocks {
		b.index[blk.ID] = i
	}
	return b
}

// Blocks returns a copy of the blocks in board order.
func (b *Board) Blocks() []Block {
	if b == nil {
		return nil
	}
	return slices.Clone(b.blocks)
}

// Len returns the number of blocks.
func (b *Board) Len() int {
	if b == nil {
		return 0
	}
	return len(b.blocks)
}

// Get returns the block with the given id.
func (b *Board) Get(id string) (Block, bool) {
	if b == nil {
		return Block{}, false
	}
	i, ok := b.index[id]
	if !ok {
		return Block{}, false
	}
	return b.blocks[i], true
}

// Rows returns the last occupied row, or 0 for an empty board.
func (b *Board) Rows() int {
	rows := 0
	for _, blk := range b.Blocks() {
		rows = max(rows, blk.Rect().Bottom()-1)
	}
	return rows
}

// Add places a new block in the first free anchor scanning from row 1 and
// appends it to the board. The block's own Row and Column are ignored. An
// empty id is replaced by a random UUID.
func (b *Board) Add(blk Block, horizon int) (*Board, Placement, error) {
	if blk.ID == "" {
		blk.ID = uuid.NewString()
	}
	if err := errors.ValidateBlockID(blk.ID); err != nil {
		return nil, Placement{}, err
	}
	if _, exists := b.Get(blk.ID); exists {
		return nil, Placement{}, errors.New(errors.ErrCodeDuplicateID, "block %q already exists", blk.ID)
	}
	if err := ValidateSpan(blk.RowSpan, blk.ColumnSpan); err != nil {
		return nil, Placement{}, err
	}

	blocks := b.Blocks()
	a, ok := Place(blocks, "", blk.Span(), 1, horizon)
	blk = blk.At(a)
	return withBlocks(append(blocks, blk)), Placement{Block: blk, Exhausted: !ok}, nil
}

// Move commits a move of block id to anchor, cascading colliding blocks with
// [Resolve].
func (b *Board) Move(id string, to Anchor, horizon int) (*Board, Resolution, error) {
	res, err := Resolve(b.Blocks(), id, to, horizon)
	if err != nil {
		return nil, Resolution{}, err
	}
	return withBlocks(res.Blocks), res, nil
}

// Edit changes a block's span and content. A span change is handled as a
// fresh placement request for that block, scanning from row 1 and ignoring
// the block's previous cells. A content-only edit keeps the anchor.
func (b *Board) Edit(id string, e Edit, horizon int) (*Board, Placement, error) {
	cur, ok := b.Get(id)
	if !ok {
		return nil, Placement{}, errors.New(errors.ErrCodeNotFound, "block %q not found", id)
	}

	next := cur
	if e.RowSpan != 0 {
		next.RowSpan = e.RowSpan
	}
	if e.ColumnSpan != 0 {
		next.ColumnSpan = e.ColumnSpan
	}
	if e.Content != nil {
		next.Content = e.Content
	}
	if err := ValidateSpan(next.RowSpan, next.ColumnSpan); err != nil {
		return nil, Placement{}, err
	}

	blocks := b.Blocks()
	p := Placement{Block: next}
	if next.Span() != cur.Span() {
		a, ok := Place(blocks, id, next.Span(), 1, horizon)
		p.Block = next.At(a)
		p.Exhausted = !ok
	}
	blocks[b.index[id]] = p.Block
	return withBlocks(blocks), p, nil
}

// Remove deletes block id. The freed cells stay empty; nothing is compacted.
func (b *Board) Remove(id string) (*Board, error) {
	if _, ok := b.Get(id); !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "block %q not found", id)
	}
	i := b.index[id]
	return withBlocks(slices.Delete(b.Blocks(), i, i+1)), nil
}

// Overlaps returns every pair of blocks sharing a cell, in board order. A
// board produced only by successful placements and commits has none.
func (b *Board) Overlaps() []Overlap {
	blocks := b.Blocks()
	var out []Overlap
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Rect().Intersects(blocks[j].Rect()) {
				out = append(out, Overlap{A: blocks[i].ID, B: blocks[j].ID})
			}
		}
	}
	return out
}
