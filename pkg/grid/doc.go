// Package grid places section blocks on a 12-column grid and keeps them from
// overlapping.
//
// # Overview
//
// A [Block] covers a rectangle of cells: it is anchored at its top-left cell
// (1-indexed row and column) and spans [Block.RowSpan] rows and
// [Block.ColumnSpan] columns. The grid has exactly [Columns] columns and grows
// downward without bound.
//
// The package is organised leaves first:
//
//   - Geometry: [OccupiedCells] and [Rect] turn an anchor and span into cells.
//   - Occupancy: [OccupiedSet] unions the rectangles of a block list, optionally
//     leaving one block out; [IsFree] tests a candidate rectangle against it.
//   - Placement: [FindAnchor] scans rows top to bottom and columns left to
//     right and returns the first free anchor within a row horizon.
//   - Collisions: [Resolve] applies a move and pushes every block the mover
//     lands on to the first free anchor below the mover, in one pass.
//
// [Board] wraps a block list as an id-indexed arena and exposes the
// operations a caller performs (add, move, edit, remove).
//
// # Cascade
//
// Resolution is a single deterministic pass. Colliding blocks are collected
// in list order and relocated in that order; each relocation sees every
// placement made before it in the same pass. Displaced blocks are never
// re-checked, so the result is predictable and repeatable:
//
//	res, err := grid.Resolve(blocks, "hero", grid.Anchor{Row: 2, Column: 1}, grid.DefaultHorizon)
//	if err != nil {
//	    return err
//	}
//	for _, m := range res.Moves {
//	    fmt.Printf("%s: %v -> %v\n", m.ID, m.From, m.To)
//	}
//
// # Exhaustion
//
// When no free anchor exists within the horizon, [FindAnchor] returns a
// PLACEMENT_EXHAUSTED error. Callers fall back to a fixed anchor and accept a
// temporary overlap that the next move resolves: creation falls back to
// (1,1), cascades fall back to the first column of the row below the mover
// and report the block in [Resolution.Unresolved].
package grid
