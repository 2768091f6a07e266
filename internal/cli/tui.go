package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectiongrid/pkg/drag"
	"github.com/matzehuels/sectiongrid/pkg/editor"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
	"github.com/matzehuels/sectiongrid/pkg/render"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	statusErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// edit command
// =============================================================================

func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Drag sections around in an interactive editor",
		Long: `Open the board in an interactive editor.

Select a section with up/down, press enter to pick it up, move it with the
arrow keys and press enter again to drop it. Sections in the way are pushed
down. Every drop is saved immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				b, err := r.Show(cmd.Context(), c.board)
				if err != nil {
					return err
				}
				m := NewEditModel(c.board, b.Blocks(), r.Horizon, boardSaver(cmd.Context(), r, c.board))
				final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return err
				}
				if em, ok := final.(EditModel); ok && em.Commits > 0 {
					printSuccess("saved %d moves to %s", em.Commits, StyleHighlight.Render(c.board))
				}
				return nil
			})
		},
	}
}

// boardSaver stores a complete block list as the board.
func boardSaver(ctx context.Context, r *editor.Runner, board string) func([]grid.Block) error {
	return func(blocks []grid.Block) error {
		d := &sgio.Document{Version: sgio.FormatVersion, Board: board, Blocks: blocks}
		_, err := r.Import(ctx, board, d, sgio.Options{AllowOverlap: true})
		return err
	}
}

// =============================================================================
// EditModel - interactive drag editor
// =============================================================================

// savedMsg reports the outcome of a background save.
type savedMsg struct{ err error }

// EditModel is the bubbletea model for the drag editor.
type EditModel struct {
	Board   string
	Blocks  []grid.Block
	Cursor  int
	Commits int

	session *drag.Session
	pointer grid.Cell
	save    func([]grid.Block) error
	status  string
	failed  bool
}

// NewEditModel creates an editor over blocks. save is called with the full
// block list after each drop; nil disables saving.
func NewEditModel(board string, blocks []grid.Block, horizon int, save func([]grid.Block) error) EditModel {
	return EditModel{
		Board:   board,
		Blocks:  blocks,
		session: drag.New(horizon),
		save:    save,
	}
}

// Dragging reports whether a section is picked up.
func (m EditModel) Dragging() bool { return m.session.State() == drag.Dragging }

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
		return m, nil
	case tea.KeyMsg:
		if m.Dragging() {
			return m.updateDragging(msg)
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

func (m EditModel) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j", "tab":
		if m.Cursor < len(m.Blocks)-1 {
			m.Cursor++
		}
	case "enter", " ":
		if len(m.Blocks) == 0 {
			return m, nil
		}
		blk := m.Blocks[m.Cursor]
		if err := m.session.Begin(m.Blocks, blk.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		if _, err := m.session.Update(grid.Cell(blk.Anchor())); err != nil {
			m.session.Cancel()
			m.setError(err)
			return m, nil
		}
		m.pointer = grid.Cell(blk.Anchor())
		m.setStatus("dragging %s", blk.ID)
	}
	return m, nil
}

func (m EditModel) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.session.Cancel()
		return m, tea.Quit
	case "esc", "q":
		id := m.session.BlockID()
		m.session.Cancel()
		m.setStatus("put %s back", id)
		return m, nil
	case "up", "k":
		m.pointer.Row--
	case "down", "j":
		m.pointer.Row++
	case "left", "h":
		m.pointer.Column--
	case "right", "l":
		m.pointer.Column++
	case "enter", " ":
		return m.drop()
	default:
		return m, nil
	}

	a, err := m.session.Update(m.pointer)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	// Keep the pointer on the clamped anchor so it cannot wander off-grid.
	m.pointer = grid.Cell(a)
	return m, nil
}

func (m EditModel) drop() (tea.Model, tea.Cmd) {
	id := m.session.BlockID()
	res, err := m.session.Commit(m.Blocks)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if !res.Changed() {
		m.setStatus("%s did not move", id)
		return m, nil
	}

	m.Blocks = res.Blocks
	m.Commits++
	m.setStatus("moved %s, pushed %d", id, len(res.Collided))
	if len(res.Unresolved) > 0 {
		m.setError(errors.New(errors.ErrCodePlacementExhausted,
			"no free position for %s", strings.Join(res.Unresolved, ", ")))
	}
	if m.save == nil {
		return m, nil
	}
	save, blocks := m.save, res.Blocks
	return m, func() tea.Msg { return savedMsg{err: save(blocks)} }
}

func (m *EditModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *EditModel) setError(err error) {
	m.status = errors.UserMessage(err)
	m.failed = true
}

func (m EditModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + m.Board))
	b.WriteString("\n")
	if m.Dragging() {
		b.WriteString(listDimStyle.Render("arrows: move  enter: drop  esc: cancel"))
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ select  enter: pick up  q: quit"))
	}
	b.WriteString("\n\n")

	board, err := grid.NewBoard(m.Blocks)
	if err != nil {
		b.WriteString(statusErrorStyle.Render(errors.UserMessage(err)))
		return b.String()
	}

	opts := render.Options{MinRows: 4}
	if len(m.Blocks) > 0 {
		opts.Selected = m.Blocks[m.Cursor].ID
	}
	if ghost, ok := m.session.PreviewRect(); ok {
		opts.Ghost = &ghost
		opts.Selected = m.session.BlockID()
	}
	b.WriteString(render.Text(board, opts))
	b.WriteString("\n\n")

	preview := m.session.PreviewBlocks(m.Blocks)
	for i, blk := range m.Blocks {
		line := fmt.Sprintf("%s %-16s %s", render.Letter(i), blk.ID, blk.Anchor())
		if to := preview[i].Anchor(); to != blk.Anchor() {
			line += " → " + to.String()
		}
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		default:
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if a, ok := m.session.Preview(); ok {
		if hit, err := grid.Collisions(m.Blocks, m.session.BlockID(), a); err == nil && len(hit) > 0 {
			b.WriteString("\n")
			b.WriteString(StyleWarning.Render("drop pushes " + strings.Join(hit, ", ")))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(statusErrorStyle.Render(m.status))
		} else {
			b.WriteString(listDimStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}
