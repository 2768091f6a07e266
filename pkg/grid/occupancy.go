package grid

// Occupancy is the region covered by a set of blocks, held as rectangles.
// Membership and intersection are computed arithmetically, so the cost of a
// query grows with the number of blocks and not with their size.
type Occupancy struct {
	rects []Rect
}

// OccupiedSet returns the union of the rectangles covered by every block
// except the one whose id equals excludeID. An empty excludeID excludes
// nothing.
//
// Excluding a block lets it be evaluated against its own candidate positions
// without colliding with itself.
func OccupiedSet(blocks []Block, excludeID string) Occupancy {
	occ := Occupancy{rects: make([]Rect, 0, len(blocks))}
	for _, b := range blocks {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		occ.Add(b.Rect())
	}
	return occ
}

// Add marks the rectangles as occupied. Empty rectangles are ignored.
func (o *Occupancy) Add(rects ...Rect) {
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		o.rects = append(o.rects, r)
	}
}

// Has reports whether c is occupied.
func (o Occupancy) Has(c Cell) bool {
	for _, r := range o.rects {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Intersects reports whether r shares a cell with the occupied region.
func (o Occupancy) Intersects(r Rect) bool {
	for _, occ := range o.rects {
		if occ.Intersects(r) {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is occupied.
func (o Occupancy) Empty() bool { return len(o.rects) == 0 }

// IsFree reports whether a block anchored at (anchorRow, anchorColumn) with
// the given span fits inside the grid columns without covering an occupied
// cell. Spans taller than [MaxRowSpan] are never free.
func IsFree(occ Occupancy, anchorRow, anchorColumn, rowSpan, columnSpan int) bool {
	r := Rect{
		Anchor: Anchor{Row: anchorRow, Column: anchorColumn},
		Span:   Span{Rows: rowSpan, Columns: columnSpan},
	}
	if rowSpan > MaxRowSpan || !r.InBounds() {
		return false
	}
	return !occ.Intersects(r)
}
