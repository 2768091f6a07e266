package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/sectiongrid/pkg/errors"
)

func TestFindAnchor(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []Block
		span     Span
		startRow int
		want     Anchor
	}{
		{
			name: "empty grid full width",
			span: Span{Rows: 1, Columns: 12},
			want: Anchor{1, 1},
		},
		{
			name:   "row one full",
			blocks: []Block{{ID: "a", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 12}},
			span:   Span{Rows: 1, Columns: 6},
			want:   Anchor{2, 1},
		},
		{
			name:   "left-most in same row",
			blocks: []Block{{ID: "a", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 4}},
			span:   Span{Rows: 1, Columns: 4},
			want:   Anchor{1, 5},
		},
		{
			name:   "half after third skips to column 5",
			blocks: []Block{{ID: "a", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 4}},
			span:   Span{Rows: 1, Columns: 6},
			want:   Anchor{1, 5},
		},
		{
			name: "tall block needs both rows free",
			blocks: []Block{
				{ID: "a", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 6},
				{ID: "b", Row: 2, Column: 7, RowSpan: 1, ColumnSpan: 6},
			},
			span: Span{Rows: 2, Columns: 6},
			want: Anchor{2, 1},
		},
		{
			name:     "start row honoured",
			span:     Span{Rows: 1, Columns: 4},
			startRow: 5,
			want:     Anchor{5, 1},
		},
		{
			name:     "start row below one",
			span:     Span{Rows: 1, Columns: 4},
			startRow: -3,
			want:     Anchor{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindAnchor(OccupiedSet(tt.blocks, ""), tt.span, tt.startRow, DefaultHorizon)
			if err != nil {
				t.Fatalf("FindAnchor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindAnchor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindAnchorExhausted(t *testing.T) {
	occ := OccupiedSet([]Block{
		{ID: "a", Row: 1, Column: 1, RowSpan: 3, ColumnSpan: 12},
	}, "")

	_, err := FindAnchor(occ, Span{Rows: 1, Columns: 4}, 1, 3)
	if err == nil {
		t.Fatal("FindAnchor() error = nil, want exhaustion")
	}
	if !errors.Is(err, errors.ErrCodePlacementExhausted) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodePlacementExhausted)
	}
	if !errors.Is(err, errors.ErrCodePlacementExhausted) {
		t.Errorf("FindAnchor() error = %v, want exhaustion", err)
	}

	// One more row of horizon is enough.
	got, err := FindAnchor(occ, Span{Rows: 1, Columns: 4}, 1, 4)
	if err != nil {
		t.Fatalf("FindAnchor() error = %v", err)
	}
	if got != (Anchor{4, 1}) {
		t.Errorf("FindAnchor() = %v, want (4,1)", got)
	}
}

func TestFindAnchorTerminates(t *testing.T) {
	// A span wider than the grid is clamped rather than scanned forever.
	if _, err := FindAnchor(Occupancy{}, Span{Rows: 1, Columns: 20}, 1, 10); err != nil {
		t.Errorf("FindAnchor() oversized span error = %v", err)
	}

	// Everything the default horizon can reach is occupied.
	occ := OccupiedSet([]Block{{ID: "wall", Row: 1, Column: 1, RowSpan: DefaultHorizon, ColumnSpan: 12}}, "")
	if _, err := FindAnchor(occ, Span{Rows: 1, Columns: 12}, 1, 0); !errors.Is(err, errors.ErrCodePlacementExhausted) {
		t.Errorf("FindAnchor() error = %v, want exhaustion", err)
	}
}

func TestFindAnchorClampsTallSpan(t *testing.T) {
	got, err := FindAnchor(Occupancy{}, Span{Rows: math.MaxInt, Columns: 12}, 1, DefaultHorizon)
	if err != nil {
		t.Fatalf("FindAnchor() error = %v", err)
	}
	if got != (Anchor{1, 1}) {
		t.Errorf("FindAnchor() = %v, want (1,1)", got)
	}
}

func TestPlaceFallback(t *testing.T) {
	blocks := []Block{{ID: "a", Row: 1, Column: 1, RowSpan: 2, ColumnSpan: 12}}

	got, ok := Place(blocks, "", Span{Rows: 1, Columns: 6}, 1, 2)
	if ok {
		t.Error("Place() ok = true, want false")
	}
	if got != (Anchor{1, 1}) {
		t.Errorf("Place() fallback = %v, want (1,1)", got)
	}

	got, ok = Place(blocks, "a", Span{Rows: 1, Columns: 6}, 1, 2)
	if !ok || got != (Anchor{1, 1}) {
		t.Errorf("Place() excluding a = %v, %v, want (1,1), true", got, ok)
	}
}
