package grid

import (
	"strconv"
	"strings"

	"github.com/matzehuels/sectiongrid/pkg/errors"
)

// Block is a section placed on the grid.
//
// Content carries the section's title, child items and anything else the
// caller stores with it. The engine never reads it and passes it through
// unchanged.
type Block struct {
	ID         string         `json:"id" bson:"id"`
	Row        int            `json:"row" bson:"row"`
	Column     int            `json:"column" bson:"column"`
	RowSpan    int            `json:"rowSpan" bson:"rowSpan"`
	ColumnSpan int            `json:"columnSpan" bson:"columnSpan"`
	Content    map[string]any `json:"content,omitempty" bson:"content,omitempty"`
}

// Anchor returns the block's top-left cell.
func (b Block) Anchor() Anchor { return Anchor{Row: b.Row, Column: b.Column} }

// Span returns the block's size.
func (b Block) Span() Span { return Span{Rows: b.RowSpan, Columns: b.ColumnSpan} }

// Rect returns the rectangle the block covers.
func (b Block) Rect() Rect { return Rect{Anchor: b.Anchor(), Span: b.Span()} }

// Cells returns the cells the block covers.
func (b Block) Cells() []Cell {
	return OccupiedCells(b.Row, b.Column, b.RowSpan, b.ColumnSpan)
}

// At returns a copy of the block anchored at a.
func (b Block) At(a Anchor) Block {
	b.Row, b.Column = a.Row, a.Column
	return b
}

// Width is the width selector offered to editors: thirds, half or full.
type Width string

// Width selectors.
const (
	WidthThird Width = "third"
	WidthHalf  Width = "half"
	WidthFull  Width = "full"
)

// Columns returns the column span of the selector, or 0 if unknown.
func (w Width) Columns() int {
	switch w {
	case WidthThird:
		return 4
	case WidthHalf:
		return 6
	case WidthFull:
		return 12
	}
	return 0
}

// ParseWidth parses a width selector. It accepts the selector names
// ("third", "thirds", "half", "full") and the column counts "4", "6", "12".
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "third", "thirds", "4":
		return WidthThird, nil
	case "half", "6":
		return WidthHalf, nil
	case "full", "12":
		return WidthFull, nil
	}
	return "", errors.New(errors.ErrCodeInvalidWidth, "unknown width %q (want third, half or full)", s)
}

// WidthOf maps a column span back to its selector.
func WidthOf(columnSpan int) (Width, bool) {
	w, err := ParseWidth(strconv.Itoa(columnSpan))
	return w, err == nil
}

// MaxRowSpan is the tallest block the grid accepts.
const MaxRowSpan = DefaultHorizon

// ValidateSpan checks that columnSpan is one of 4, 6 or 12 and rowSpan is
// between 1 and [MaxRowSpan].
func ValidateSpan(rowSpan, columnSpan int) error {
	if _, ok := WidthOf(columnSpan); !ok {
		return errors.New(errors.ErrCodeInvalidSpan, "column span %d not in {4, 6, 12}", columnSpan)
	}
	if rowSpan < 1 {
		return errors.New(errors.ErrCodeInvalidSpan, "row span %d must be at least 1", rowSpan)
	}
	if rowSpan > MaxRowSpan {
		return errors.New(errors.ErrCodeInvalidSpan, "row span %d exceeds %d", rowSpan, MaxRowSpan)
	}
	return nil
}

// ValidateAnchor checks that a block with the given column span anchored at
// (row, column) lies inside the grid.
func ValidateAnchor(row, column, columnSpan int) error {
	if row < 1 {
		return errors.New(errors.ErrCodeInvalidAnchor, "row %d must be at least 1", row)
	}
	if column < 1 || column+columnSpan-1 > Columns {
		return errors.New(errors.ErrCodeInvalidAnchor,
			"column %d with span %d does not fit %d columns", column, columnSpan, Columns)
	}
	return nil
}

// ClampSpan forces a span into the grid: between one and [MaxRowSpan] rows,
// between one and [Columns] columns.
func ClampSpan(s Span) Span {
	s.Rows = min(max(s.Rows, 1), MaxRowSpan)
	s.Columns = min(max(s.Columns, 1), Columns)
	return s
}

// ClampColumn returns the column closest to column at which a block of
// columnSpan still fits the grid.
func ClampColumn(column, columnSpan int) int {
	columnSpan = min(max(columnSpan, 1), Columns)
	return min(max(column, 1), Columns-columnSpan+1)
}

// ClampAnchor moves a to the nearest anchor at which span fits the grid.
func ClampAnchor(a Anchor, span Span) Anchor {
	return Anchor{Row: max(a.Row, 1), Column: ClampColumn(a.Column, span.Columns)}
}
