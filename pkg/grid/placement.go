package grid

import (
	"github.com/matzehuels/sectiongrid/pkg/errors"
)

// DefaultHorizon is the number of rows [FindAnchor] scans before giving up.
const DefaultHorizon = 200

// FindAnchor returns the first free anchor for span by a row-major raster
// scan: rows from startRow downward, and within each row columns from 1 to
// Columns-span.Columns+1. The first anchor for which [IsFree] holds wins, so
// ties break top-most, then left-most.
//
// A startRow below 1 scans from row 1. A horizon of zero or less uses
// [DefaultHorizon]. Spans are clamped into the grid ([ClampSpan]) rather than
// rejected.
//
// When no anchor in rows [startRow, startRow+horizon) is free, FindAnchor
// returns an error with code PLACEMENT_EXHAUSTED.
func FindAnchor(occ Occupancy, span Span, startRow, horizon int) (Anchor, error) {
	if startRow < 1 {
		startRow = 1
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	span = ClampSpan(span)

	lastColumn := Columns - span.Columns + 1
	for row := startRow; row < startRow+horizon; row++ {
		for col := 1; col <= lastColumn; col++ {
			if IsFree(occ, row, col, span.Rows, span.Columns) {
				return Anchor{Row: row, Column: col}, nil
			}
		}
	}
	return Anchor{}, errors.New(errors.ErrCodePlacementExhausted,
		"no free anchor for span %s in rows %d-%d", span, startRow, startRow+horizon-1)
}

// Place finds a free anchor for span among blocks, ignoring the block with id
// excludeID. It never fails: on exhaustion it returns the fallback anchor
// (startRow, 1) and false, accepting a transient overlap.
func Place(blocks []Block, excludeID string, span Span, startRow, horizon int) (Anchor, bool) {
	a, err := FindAnchor(OccupiedSet(blocks, excludeID), span, startRow, horizon)
	if err != nil {
		return fallbackAnchor(startRow), false
	}
	return a, true
}

func fallbackAnchor(startRow int) Anchor {
	if startRow < 1 {
		startRow = 1
	}
	return Anchor{Row: startRow, Column: 1}
}
