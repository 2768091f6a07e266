package grid_test

import (
	"fmt"

	"github.com/matzehuels/sectiongrid/pkg/grid"
)

func ExampleFindAnchor() {
	occ := grid.OccupiedSet([]grid.Block{
		{ID: "header", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 12},
	}, "")

	a, err := grid.FindAnchor(occ, grid.Span{Rows: 1, Columns: 6}, 1, grid.DefaultHorizon)
	if err != nil {
		panic(err)
	}
	fmt.Println(a)
	// Output:
	// (2,1)
}

func ExampleResolve() {
	blocks := []grid.Block{
		{ID: "a", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 6},
		{ID: "b", Row: 2, Column: 1, RowSpan: 1, ColumnSpan: 6},
	}

	res, err := grid.Resolve(blocks, "a", grid.Anchor{Row: 2, Column: 1}, grid.DefaultHorizon)
	if err != nil {
		panic(err)
	}
	fmt.Println("collided:", res.Collided)
	for _, m := range res.Moves {
		fmt.Printf("%s %v -> %v\n", m.ID, m.From, m.To)
	}
	// Output:
	// collided: [b]
	// a (1,1) -> (2,1)
	// b (2,1) -> (3,1)
}

func ExampleBoard_Add() {
	board := &grid.Board{}
	for _, w := range []grid.Width{grid.WidthFull, grid.WidthHalf, grid.WidthHalf, grid.WidthThird} {
		var p grid.Placement
		board, p, _ = board.Add(grid.Block{ID: string(w) + fmt.Sprint(board.Len()), RowSpan: 1, ColumnSpan: w.Columns()}, grid.DefaultHorizon)
		fmt.Println(p.Block.ID, p.Block.Anchor())
	}
	// Output:
	// full0 (1,1)
	// half1 (2,1)
	// half2 (2,7)
	// third3 (3,1)
}
