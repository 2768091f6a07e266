// Package io reads and writes board documents as JSON.
//
// # Overview
//
// A board document is the unit the persistence collaborator stores: the whole
// block list of one board, replaced atomically on every commit. The same
// format is used by the file and Redis stores, by the HTTP API and by the
// CLI's import and export commands.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "board": "home",
//	  "blocks": [
//	    {"id": "hero", "row": 1, "column": 1, "rowSpan": 2, "columnSpan": 12,
//	     "content": {"title": "Welcome"}},
//	    {"id": "news", "row": 3, "column": 1, "rowSpan": 1, "columnSpan": 6}
//	  ]
//	}
//
// Block order is significant: it is the stable order in which the collision
// resolver relocates displaced blocks. Content is opaque and round-trips
// unchanged.
//
// # Validation
//
// Decoding only checks the JSON shape and version. [Document.Grid] builds a
// [grid.Board], rejecting duplicate ids, invalid spans and anchors outside the
// 12 columns, and, unless [Options.AllowOverlap] is set, overlapping blocks.
//
// [grid.Board]: github.com/matzehuels/sectiongrid/pkg/grid.Board
package io
