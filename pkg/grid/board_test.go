package grid

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/sectiongrid/pkg/errors"
)

func TestBoardAddScenarios(t *testing.T) {
	board := &Board{}

	board, p, err := board.Add(Block{ID: "a", RowSpan: 1, ColumnSpan: 12}, DefaultHorizon)
	if err != nil {
		t.Fatalf("Add(a) error = %v", err)
	}
	if p.Block.Anchor() != (Anchor{1, 1}) {
		t.Errorf("a anchor = %v, want (1,1)", p.Block.Anchor())
	}

	board, p, err = board.Add(Block{ID: "b", RowSpan: 1, ColumnSpan: 6}, DefaultHorizon)
	if err != nil {
		t.Fatalf("Add(b) error = %v", err)
	}
	if p.Block.Anchor() != (Anchor{2, 1}) {
		t.Errorf("b anchor = %v, want (2,1)", p.Block.Anchor())
	}
	if p.Exhausted {
		t.Error("Exhausted = true, want false")
	}
	if board.Len() != 2 {
		t.Errorf("Len() = %d, want 2", board.Len())
	}
}

func TestBoardAddIgnoresRequestedAnchor(t *testing.T) {
	board, p, err := (&Board{}).Add(Block{ID: "a", Row: 9, Column: 7, RowSpan: 1, ColumnSpan: 4}, DefaultHorizon)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if p.Block.Anchor() != (Anchor{1, 1}) {
		t.Errorf("anchor = %v, want (1,1)", p.Block.Anchor())
	}
	if got, _ := board.Get("a"); got.Anchor() != (Anchor{1, 1}) {
		t.Errorf("stored anchor = %v, want (1,1)", got.Anchor())
	}
}

func TestBoardAddGeneratesID(t *testing.T) {
	_, p, err := (&Board{}).Add(Block{RowSpan: 1, ColumnSpan: 4}, DefaultHorizon)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := uuid.Parse(p.Block.ID); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", p.Block.ID, err)
	}
}

func TestBoardAddErrors(t *testing.T) {
	board, _, _ := (&Board{}).Add(Block{ID: "a", RowSpan: 1, ColumnSpan: 4}, DefaultHorizon)

	tests := []struct {
		name  string
		block Block
		code  errors.Code
	}{
		{"duplicate", Block{ID: "a", RowSpan: 1, ColumnSpan: 4}, errors.ErrCodeDuplicateID},
		{"bad column span", Block{ID: "b", RowSpan: 1, ColumnSpan: 5}, errors.ErrCodeInvalidSpan},
		{"bad row span", Block{ID: "b", RowSpan: 0, ColumnSpan: 4}, errors.ErrCodeInvalidSpan},
		{"row span over max", Block{ID: "b", RowSpan: MaxRowSpan + 1, ColumnSpan: 12}, errors.ErrCodeInvalidSpan},
		{"huge row span", Block{ID: "b", RowSpan: math.MaxInt / 8, ColumnSpan: 12}, errors.ErrCodeInvalidSpan},
		{"bad id", Block{ID: "a/b", RowSpan: 1, ColumnSpan: 4}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := board.Add(tt.block, DefaultHorizon)
			if !errors.Is(err, tt.code) {
				t.Errorf("Add() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestBoardAddExhaustedFallsBack(t *testing.T) {
	board, err := NewBoard([]Block{blk("wall", 1, 1, 3, 12)})
	if err != nil {
		t.Fatalf("NewBoard() error = %v", err)
	}

	next, p, err := board.Add(Block{ID: "x", RowSpan: 1, ColumnSpan: 4}, 3)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !p.Exhausted {
		t.Error("Exhausted = false, want true")
	}
	if p.Block.Anchor() != (Anchor{1, 1}) {
		t.Errorf("anchor = %v, want fallback (1,1)", p.Block.Anchor())
	}
	if got := next.Overlaps(); len(got) != 1 {
		t.Errorf("Overlaps() = %v, want one transient overlap", got)
	}
}

func TestBoardAddTallestBlock(t *testing.T) {
	board, _, _ := (&Board{}).Add(Block{ID: "a", RowSpan: 1, ColumnSpan: 12}, DefaultHorizon)
	next, p, err := board.Add(Block{ID: "tall", RowSpan: MaxRowSpan, ColumnSpan: 12}, DefaultHorizon)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if p.Exhausted || p.Block.Anchor() != (Anchor{2, 1}) {
		t.Errorf("placement = %v exhausted=%v, want (2,1)", p.Block.Anchor(), p.Exhausted)
	}
	if got := next.Rows(); got != MaxRowSpan+1 {
		t.Errorf("Rows() = %d, want %d", got, MaxRowSpan+1)
	}
}

func TestBoardIsImmutable(t *testing.T) {
	board, _, _ := (&Board{}).Add(Block{ID: "a", RowSpan: 1, ColumnSpan: 6}, DefaultHorizon)
	board, _, _ = board.Add(Block{ID: "b", RowSpan: 1, ColumnSpan: 6}, DefaultHorizon)
	before := board.Blocks()

	if _, _, err := board.Move("a", Anchor{1, 7}, DefaultHorizon); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if _, err := board.Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if diff := cmp.Diff(before, board.Blocks()); diff != "" {
		t.Errorf("board mutated (-want +got):\n%s", diff)
	}
}

func TestBoardMove(t *testing.T) {
	board, err := NewBoard([]Block{
		blk("a", 1, 1, 1, 6),
		blk("b", 2, 1, 1, 6),
	})
	if err != nil {
		t.Fatalf("NewBoard() error = %v", err)
	}

	next, res, err := board.Move("a", Anchor{2, 1}, DefaultHorizon)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b"}, res.Collided); diff != "" {
		t.Errorf("Collided mismatch (-want +got):\n%s", diff)
	}
	if b, _ := next.Get("b"); b.Anchor() != (Anchor{3, 1}) {
		t.Errorf("b anchor = %v, want (3,1)", b.Anchor())
	}

	if _, _, err := board.Move("zzz", Anchor{1, 1}, DefaultHorizon); !errors.IsNotFound(err) {
		t.Errorf("Move(unknown) error = %v, want NOT_FOUND", err)
	}
}

func TestBoardEdit(t *testing.T) {
	board, _ := NewBoard([]Block{
		blk("a", 1, 1, 1, 6),
		blk("b", 1, 7, 1, 6),
		blk("c", 3, 1, 1, 4),
	})

	t.Run("content only keeps anchor", func(t *testing.T) {
		next, p, err := board.Edit("c", Edit{Content: map[string]any{"title": "News"}}, DefaultHorizon)
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if p.Block.Anchor() != (Anchor{3, 1}) {
			t.Errorf("anchor = %v, want (3,1)", p.Block.Anchor())
		}
		got, _ := next.Get("c")
		if got.Content["title"] != "News" {
			t.Errorf("content = %v, want title News", got.Content)
		}
	})

	t.Run("span change replaces from row one", func(t *testing.T) {
		next, p, err := board.Edit("c", Edit{ColumnSpan: 12}, DefaultHorizon)
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if p.Block.Anchor() != (Anchor{2, 1}) {
			t.Errorf("anchor = %v, want (2,1)", p.Block.Anchor())
		}
		if len(next.Overlaps()) != 0 {
			t.Errorf("Overlaps() = %v, want none", next.Overlaps())
		}
	})

	t.Run("span change may keep the block in place", func(t *testing.T) {
		_, p, err := board.Edit("a", Edit{RowSpan: 2}, DefaultHorizon)
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if p.Block.Anchor() != (Anchor{1, 1}) {
			t.Errorf("anchor = %v, want (1,1)", p.Block.Anchor())
		}
	})

	t.Run("invalid span", func(t *testing.T) {
		if _, _, err := board.Edit("a", Edit{ColumnSpan: 7}, DefaultHorizon); !errors.Is(err, errors.ErrCodeInvalidSpan) {
			t.Errorf("Edit() error = %v, want INVALID_SPAN", err)
		}
		if _, _, err := board.Edit("a", Edit{RowSpan: math.MaxInt / 8}, DefaultHorizon); !errors.Is(err, errors.ErrCodeInvalidSpan) {
			t.Errorf("Edit() huge row span error = %v, want INVALID_SPAN", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, _, err := board.Edit("zzz", Edit{}, DefaultHorizon); !errors.IsNotFound(err) {
			t.Errorf("Edit() error = %v, want NOT_FOUND", err)
		}
	})
}

func TestBoardRemove(t *testing.T) {
	board, _ := NewBoard([]Block{
		blk("a", 1, 1, 1, 12),
		blk("b", 2, 1, 1, 12),
	})

	next, err := board.Remove("a")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if next.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", next.Len())
	}
	// No compaction: b stays on row 2.
	if b, _ := next.Get("b"); b.Anchor() != (Anchor{2, 1}) {
		t.Errorf("b anchor = %v, want (2,1)", b.Anchor())
	}
	if _, ok := next.Get("a"); ok {
		t.Error("a still present")
	}

	if _, err := next.Remove("a"); !errors.IsNotFound(err) {
		t.Errorf("Remove(missing) error = %v, want NOT_FOUND", err)
	}
	var empty *Board
	if _, err := empty.Remove("a"); !errors.IsNotFound(err) {
		t.Errorf("nil Remove() error = %v, want NOT_FOUND", err)
	}
}

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		code   errors.Code
	}{
		{"duplicate", []Block{blk("a", 1, 1, 1, 4), blk("a", 2, 1, 1, 4)}, errors.ErrCodeDuplicateID},
		{"span", []Block{blk("a", 1, 1, 1, 3)}, errors.ErrCodeInvalidSpan},
		{"column overflow", []Block{blk("a", 1, 8, 1, 6)}, errors.ErrCodeInvalidAnchor},
		{"row zero", []Block{blk("a", 0, 1, 1, 6)}, errors.ErrCodeInvalidAnchor},
		{"empty id", []Block{blk("", 1, 1, 1, 6)}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBoard(tt.blocks); !errors.Is(err, tt.code) {
				t.Errorf("NewBoard() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestBoardOverlapsAndRows(t *testing.T) {
	board, err := NewBoard([]Block{
		blk("a", 1, 1, 2, 6),
		blk("b", 2, 4, 1, 6),
		blk("c", 5, 1, 1, 12),
	})
	if err != nil {
		t.Fatalf("NewBoard() error = %v", err)
	}
	if diff := cmp.Diff([]Overlap{{A: "a", B: "b"}}, board.Overlaps()); diff != "" {
		t.Errorf("Overlaps mismatch (-want +got):\n%s", diff)
	}
	if board.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", board.Rows())
	}
	if (&Board{}).Rows() != 0 {
		t.Error("empty Rows() != 0")
	}
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"third", 4, false},
		{"thirds", 4, false},
		{"Half", 6, false},
		{" full ", 12, false},
		{"12", 12, false},
		{"quarter", 0, true},
		{"3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, err := ParseWidth(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWidth(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if w.Columns() != tt.want {
				t.Errorf("Columns() = %d, want %d", w.Columns(), tt.want)
			}
		})
	}
}

func TestClampColumn(t *testing.T) {
	tests := []struct {
		col, span, want int
	}{
		{1, 12, 1},
		{5, 12, 1},
		{0, 4, 1},
		{9, 4, 9},
		{10, 4, 9},
		{8, 6, 7},
	}
	for _, tt := range tests {
		if got := ClampColumn(tt.col, tt.span); got != tt.want {
			t.Errorf("ClampColumn(%d, %d) = %d, want %d", tt.col, tt.span, got, tt.want)
		}
	}
}
