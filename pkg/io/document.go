package io

import (
	"fmt"
	"strings"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

// FormatVersion is the document format written by this package.
const FormatVersion = 1

// Document is the stored form of one board.
type Document struct {
	Version int          `json:"version" bson:"version"`
	Board   string       `json:"board,omitempty" bson:"_id"`
	Blocks  []grid.Block `json:"blocks" bson:"blocks"`
}

// Options controls how a document is turned into a board.
type Options struct {
	// AllowOverlap accepts documents whose blocks share cells, such as a
	// board saved with a pending fallback overlap.
	AllowOverlap bool
}

// NewDocument captures board b under id.
func NewDocument(id string, b *grid.Board) *Document {
	blocks := b.Blocks()
	if blocks == nil {
		blocks = []grid.Block{}
	}
	return &Document{Version: FormatVersion, Board: id, Blocks: blocks}
}

// Grid validates the document and returns its board.
func (d *Document) Grid(opts Options) (*grid.Board, error) {
	if d.Version != 0 && d.Version != FormatVersion {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported document version %d", d.Version)
	}
	b, err := grid.NewBoard(d.Blocks)
	if err != nil {
		return nil, err
	}
	if opts.AllowOverlap {
		return b, nil
	}
	if overlaps := b.Overlaps(); len(overlaps) > 0 {
		pairs := make([]string, len(overlaps))
		for i, o := range overlaps {
			pairs[i] = fmt.Sprintf("%s/%s", o.A, o.B)
		}
		return nil, errors.New(errors.ErrCodeOverlap, "overlapping blocks: %s", strings.Join(pairs, ", "))
	}
	return b, nil
}
