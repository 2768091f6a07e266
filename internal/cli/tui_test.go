package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sectiongrid/pkg/grid"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and runs any returned command that is not a quit.
func press(t *testing.T, m EditModel, keys ...string) EditModel {
	t.Helper()
	var model tea.Model = m
	for _, k := range keys {
		var cmd tea.Cmd
		model, cmd = model.Update(key(k))
		if cmd != nil {
			if msg := cmd(); msg != nil {
				if _, quit := msg.(tea.QuitMsg); !quit {
					model, _ = model.Update(msg)
				}
			}
		}
	}
	return model.(EditModel)
}

func editBlocks() []grid.Block {
	return []grid.Block{
		{ID: "a", Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 6},
		{ID: "b", Row: 1, Column: 7, RowSpan: 1, ColumnSpan: 6},
		{ID: "hero", Row: 2, Column: 1, RowSpan: 2, ColumnSpan: 12},
	}
}

func TestEditModelPreviewWarnsAboutPushes(t *testing.T) {
	m := NewEditModel("home", editBlocks(), 0, nil)

	m = press(t, m, "down", "down", "enter")
	if !m.Dragging() {
		t.Fatal("enter did not pick up the selected block")
	}
	if strings.Contains(m.View(), "drop pushes") {
		t.Errorf("View() at the origin should not warn:\n%s", m.View())
	}
	if strings.Contains(m.View(), "→") {
		t.Errorf("View() at the origin should not show a pending move:\n%s", m.View())
	}

	m = press(t, m, "up")
	if !strings.Contains(m.View(), "drop pushes a, b") {
		t.Errorf("View() missing push warning:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "hero             (2,1) → (1,1)") {
		t.Errorf("View() missing pending move for hero:\n%s", m.View())
	}
}

func TestEditModelCommit(t *testing.T) {
	var saved [][]grid.Block
	m := NewEditModel("home", editBlocks(), 0, func(blocks []grid.Block) error {
		saved = append(saved, blocks)
		return nil
	})

	m = press(t, m, "down", "down", "enter", "up", "enter")
	if m.Dragging() {
		t.Fatal("second enter did not drop the block")
	}
	if m.Commits != 1 {
		t.Errorf("Commits = %d, want 1", m.Commits)
	}

	got := make(map[string]grid.Anchor)
	for _, blk := range m.Blocks {
		got[blk.ID] = blk.Anchor()
	}
	want := map[string]grid.Anchor{
		"a":    {Row: 3, Column: 1},
		"b":    {Row: 3, Column: 7},
		"hero": {Row: 1, Column: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("anchors mismatch (-want +got):\n%s", diff)
	}
	if len(saved) != 1 {
		t.Fatalf("save called %d times, want 1", len(saved))
	}
	if diff := cmp.Diff(m.Blocks, saved[0]); diff != "" {
		t.Errorf("saved blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestEditModelCancel(t *testing.T) {
	saves := 0
	m := NewEditModel("home", editBlocks(), 0, func([]grid.Block) error {
		saves++
		return nil
	})

	m = press(t, m, "enter", "right", "down", "esc")
	if m.Dragging() {
		t.Fatal("esc did not cancel the drag")
	}
	if diff := cmp.Diff(editBlocks(), m.Blocks); diff != "" {
		t.Errorf("cancel changed blocks (-want +got):\n%s", diff)
	}
	if saves != 0 {
		t.Errorf("save called %d times after cancel", saves)
	}
}

func TestEditModelClampsPointer(t *testing.T) {
	m := NewEditModel("home", editBlocks(), 0, nil)
	m = press(t, m, "enter", "right", "right", "right", "up", "up")

	ghost, ok := m.session.PreviewRect()
	if !ok {
		t.Fatal("no preview while dragging")
	}
	if want := (grid.Anchor{Row: 1, Column: 4}); ghost.Anchor != want {
		t.Errorf("preview anchor = %v, want %v", ghost.Anchor, want)
	}

	// a is half width, so its anchor column stops at 7.
	m = press(t, m, "right", "right", "right", "right", "right")
	ghost, _ = m.session.PreviewRect()
	if ghost.Anchor.Column != 7 {
		t.Errorf("preview column = %d, want clamped to 7", ghost.Anchor.Column)
	}
}

func TestEditModelDropInPlace(t *testing.T) {
	m := NewEditModel("home", editBlocks(), 0, nil)
	m = press(t, m, "enter", "enter")
	if m.Commits != 0 {
		t.Errorf("Commits = %d, want 0 for a drop in place", m.Commits)
	}
	if !strings.Contains(m.View(), "did not move") {
		t.Errorf("View() missing status:\n%s", m.View())
	}
}

func TestEditModelQuit(t *testing.T) {
	m := NewEditModel("home", nil, 0, nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
