package grid

import "fmt"

// Columns is the fixed width of the grid.
const Columns = 12

// Cell is a single grid position. Rows and columns are 1-indexed.
type Cell struct {
	Row    int `json:"row" bson:"row"`
	Column int `json:"column" bson:"column"`
}

// String formats the cell as "(row,column)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Column) }

// Anchor is the top-left cell a block occupies.
type Anchor Cell

// String formats the anchor as "(row,column)".
func (a Anchor) String() string { return Cell(a).String() }

// Span is the size of a block in cells.
type Span struct {
	Rows    int `json:"rows" bson:"rows"`
	Columns int `json:"columns" bson:"columns"`
}

// String formats the span as "rows x columns".
func (s Span) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Columns) }

// Rect is an anchored span.
type Rect struct {
	Anchor Anchor
	Span   Span
}

// Cells returns every cell covered by the rectangle, row-major.
func (r Rect) Cells() []Cell {
	return OccupiedCells(r.Anchor.Row, r.Anchor.Column, r.Span.Rows, r.Span.Columns)
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Anchor.Row + r.Span.Rows }

// Right returns the last column covered by the rectangle.
func (r Rect) Right() int { return r.Anchor.Column + r.Span.Columns - 1 }

// InBounds reports whether the rectangle lies within the grid columns and
// starts at or below the first row.
func (r Rect) InBounds() bool {
	return r.Anchor.Row >= 1 && r.Anchor.Column >= 1 && r.Right() <= Columns
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.Span.Rows <= 0 || r.Span.Columns <= 0 }

// Contains reports whether c lies inside the rectangle.
func (r Rect) Contains(c Cell) bool {
	return !r.Empty() &&
		c.Row >= r.Anchor.Row && c.Row < r.Bottom() &&
		c.Column >= r.Anchor.Column && c.Column <= r.Right()
}

// Intersects reports whether the two rectangles share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Anchor.Row < o.Bottom() && o.Anchor.Row < r.Bottom() &&
		r.Anchor.Column <= o.Right() && o.Anchor.Column <= r.Right()
}

// OccupiedCells returns the rectangle of cells covered by a block anchored at
// (anchorRow, anchorColumn) spanning rowSpan rows and columnSpan columns.
// Inputs are not validated; non-positive spans cover no cells. The slice
// holds one entry per cell, so callers on the placement path use [Rect]
// arithmetic instead.
func OccupiedCells(anchorRow, anchorColumn, rowSpan, columnSpan int) []Cell {
	if rowSpan <= 0 || columnSpan <= 0 {
		return nil
	}
	cells := make([]Cell, 0, rowSpan*columnSpan)
	for r := anchorRow; r < anchorRow+rowSpan; r++ {
		for c := anchorColumn; c < anchorColumn+columnSpan; c++ {
			cells = append(cells, Cell{Row: r, Column: c})
		}
	}
	return cells
}
