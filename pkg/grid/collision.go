package grid

import (
	"slices"

	"github.com/matzehuels/sectiongrid/pkg/errors"
)

// Move records one anchor change made while resolving a commit.
type Move struct {
	ID   string `json:"id"`
	From Anchor `json:"from"`
	To   Anchor `json:"to"`
}

// Resolution is the outcome of [Resolve].
type Resolution struct {
	// Blocks is the complete next block list, in the input order.
	Blocks []Block `json:"blocks"`

	// Collided lists the blocks the mover landed on, in list order.
	Collided []string `json:"collided,omitempty"`

	// Unresolved lists collided blocks for which no free anchor was found.
	// They sit at the fallback anchor and may overlap another block.
	Unresolved []string `json:"unresolved,omitempty"`

	// Moves lists every anchor change: the mover first (when it moved),
	// then each relocated block in relocation order.
	Moves []Move `json:"moves,omitempty"`
}

// Changed reports whether any block changed anchor.
func (r Resolution) Changed() bool { return len(r.Moves) > 0 }

// Collisions returns the ids of blocks whose current cells intersect the cells
// movedID would cover at target, in list order. The mover itself is never
// reported.
func Collisions(blocks []Block, movedID string, target Anchor) ([]string, error) {
	i := slices.IndexFunc(blocks, func(b Block) bool { return b.ID == movedID })
	if i < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "block %q not found", movedID)
	}
	return collisions(blocks, i, target), nil
}

func collisions(blocks []Block, moved int, target Anchor) []string {
	landing := blocks[moved].At(target).Rect()

	var ids []string
	for i, b := range blocks {
		if i == moved {
			continue
		}
		if landing.Intersects(b.Rect()) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Resolve moves block movedID to target and pushes every block it lands on out
// of the way. The input slice is not modified.
//
// Colliding blocks are gathered against their current anchors, in list order.
// The move is applied, then each colliding block in turn is given the first
// free anchor at or below the row just under the mover, against an occupancy
// snapshot of the working list without that block. Blocks displaced by the
// cascade are not checked again. Blocks that do not collide keep their
// anchors.
//
// A target outside the grid is clamped to the nearest anchor that fits. When
// no free anchor exists within horizon for a colliding block it is placed at
// (row below mover, column 1) and listed in [Resolution.Unresolved]; that
// block may overlap another one until a later move.
func Resolve(blocks []Block, movedID string, target Anchor, horizon int) (Resolution, error) {
	moved := slices.IndexFunc(blocks, func(b Block) bool { return b.ID == movedID })
	if moved < 0 {
		return Resolution{}, errors.New(errors.ErrCodeNotFound, "block %q not found", movedID)
	}

	out := slices.Clone(blocks)
	mover := out[moved]
	target = ClampAnchor(target, mover.Span())

	res := Resolution{Collided: collisions(out, moved, target)}

	if target != mover.Anchor() {
		res.Moves = append(res.Moves, Move{ID: mover.ID, From: mover.Anchor(), To: target})
		out[moved] = mover.At(target)
	}

	startRow := out[moved].Rect().Bottom()
	for _, id := range res.Collided {
		i := slices.IndexFunc(out, func(b Block) bool { return b.ID == id })
		b := out[i]

		a, err := FindAnchor(OccupiedSet(out, b.ID), b.Span(), startRow, horizon)
		if err != nil {
			a = fallbackAnchor(startRow)
			res.Unresolved = append(res.Unresolved, b.ID)
		}
		if a != b.Anchor() {
			res.Moves = append(res.Moves, Move{ID: b.ID, From: b.Anchor(), To: a})
		}
		out[i] = b.At(a)
	}

	res.Blocks = out
	return res, nil
}
