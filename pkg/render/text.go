package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sectiongrid/pkg/grid"
)

// Cell glyphs.
const (
	glyphEmpty   = "·"
	glyphOverlap = "!"
	glyphGhost   = "+"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var (
	palette = []lipgloss.Color{"36", "75", "35", "220", "141", "209", "110", "179"}

	styleEmpty    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleOverlap  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("167"))
	styleGhost    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	styleSelected = lipgloss.NewStyle().Bold(true).Reverse(true)
	styleAxis     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Options controls rendering.
type Options struct {
	// Ghost is the preview rectangle of an in-progress drag, drawn over the
	// board. Nil draws none.
	Ghost *grid.Rect

	// Selected highlights one block.
	Selected string

	// MinRows pads the map to at least this many rows.
	MinRows int

	// Plain disables styling.
	Plain bool
}

// Letter returns the glyph for the i-th block in board order.
func Letter(i int) string {
	if i < 0 || i >= len(letters) {
		return "#"
	}
	return letters[i : i+1]
}

// Text draws b as a character map, one line per row plus a column header.
func Text(b *grid.Board, opts Options) string {
	blocks := b.Blocks()

	owners := make(map[grid.Cell][]int)
	for i, blk := range blocks {
		for _, c := range blk.Cells() {
			owners[c] = append(owners[c], i)
		}
	}
	var ghost grid.Occupancy
	rows := max(b.Rows(), opts.MinRows)
	if opts.Ghost != nil {
		ghost.Add(*opts.Ghost)
		rows = max(rows, opts.Ghost.Bottom()-1)
	}

	style := func(s lipgloss.Style, text string) string {
		if opts.Plain {
			return text
		}
		return s.Render(text)
	}

	gutter := len(fmt.Sprint(max(rows, 1)))
	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", gutter+1))
	for col := 1; col <= grid.Columns; col++ {
		sb.WriteString(style(styleAxis, fmt.Sprintf("%3d", col)))
	}
	sb.WriteString("\n")

	for row := 1; row <= rows; row++ {
		sb.WriteString(style(styleAxis, fmt.Sprintf("%*d", gutter, row)))
		sb.WriteString(" ")
		for col := 1; col <= grid.Columns; col++ {
			c := grid.Cell{Row: row, Column: col}
			own := owners[c]
			var glyph string
			switch {
			case ghost.Has(c):
				glyph = style(styleGhost, "  "+glyphGhost)
			case len(own) > 1:
				glyph = style(styleOverlap, "  "+glyphOverlap)
			case len(own) == 1:
				i := own[0]
				s := lipgloss.NewStyle().Foreground(palette[i%len(palette)])
				if blocks[i].ID == opts.Selected {
					s = styleSelected.Foreground(palette[i%len(palette)])
				}
				glyph = style(s, "  "+Letter(i))
			default:
				glyph = style(styleEmpty, "  "+glyphEmpty)
			}
			sb.WriteString(glyph)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Legend lists each block's letter, id, anchor and span in board order.
func Legend(b *grid.Board, opts Options) string {
	var lines []string
	for i, blk := range b.Blocks() {
		letter := Letter(i)
		if !opts.Plain {
			letter = lipgloss.NewStyle().Bold(true).Foreground(palette[i%len(palette)]).Render(letter)
		}
		width := "-"
		if w, ok := grid.WidthOf(blk.ColumnSpan); ok {
			width = string(w)
		}
		lines = append(lines, fmt.Sprintf("%s  %-16s %-8s %-6s %s",
			letter, blk.ID, blk.Anchor(), blk.Span(), width))
	}
	return strings.Join(lines, "\n")
}
