package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sectiongrid/pkg/editor"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

// contentFlags collects block content from --title and --set.
type contentFlags struct {
	title  string
	fields map[string]string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "section title")
	cmd.Flags().StringToStringVar(&f.fields, "set", nil, "content field (key=value, repeatable)")
}

// content returns the collected content, or nil when no flag was given.
func (f *contentFlags) content() map[string]any {
	if f.title == "" && len(f.fields) == 0 {
		return nil
	}
	m := make(map[string]any, len(f.fields)+1)
	for k, v := range f.fields {
		m[k] = v
	}
	if f.title != "" {
		m["title"] = f.title
	}
	return m
}

// spanFlags collects --width and --rows.
type spanFlags struct {
	width string
	rows  int
}

func (f *spanFlags) register(cmd *cobra.Command, defaultWidth string, defaultRows int) {
	cmd.Flags().StringVarP(&f.width, "width", "w", defaultWidth, "width: third, half or full")
	cmd.Flags().IntVarP(&f.rows, "rows", "r", defaultRows, "height in rows")
}

// columns parses --width, returning 0 when it is empty.
func (f *spanFlags) columns() (int, error) {
	if f.width == "" {
		return 0, nil
	}
	w, err := grid.ParseWidth(f.width)
	if err != nil {
		return 0, err
	}
	return w.Columns(), nil
}

// =============================================================================
// add
// =============================================================================

func (c *CLI) addCommand() *cobra.Command {
	var (
		span    spanFlags
		content contentFlags
	)

	cmd := &cobra.Command{
		Use:   "add [id]",
		Short: "Place a new section in the first free position",
		Long: `Place a new section on the board.

The section goes to the first free position scanning rows top to bottom and
columns left to right. Without an id a random one is generated.`,
		Example: `  sectiongrid add hero --width full --rows 2 --title Welcome
  sectiongrid add --width third --set icon=star`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := editor.BlockRequest{
				Width:   grid.Width(span.width),
				RowSpan: span.rows,
				Content: content.content(),
			}
			if len(args) == 1 {
				req.ID = args[0]
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, err := r.Create(cmd.Context(), c.board, req)
				if err != nil {
					return err
				}
				printPlacement("added", p)
				return nil
			})
		},
	}

	span.register(cmd, string(grid.WidthFull), 1)
	content.register(cmd)
	return cmd
}

// =============================================================================
// move
// =============================================================================

func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <row> <column>",
		Short: "Move a section and push colliding sections down",
		Long: `Move a section so its top-left corner sits at (row, column).

Sections the moved one lands on are pushed to the first free position below
it. Out-of-grid targets are clamped into the grid.`,
		Example: `  sectiongrid move hero 1 1`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseAnchor(args[1], args[2])
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				res, err := r.Move(cmd.Context(), c.board, args[0], to)
				if err != nil {
					return err
				}
				printResolution(args[0], res)
				return nil
			})
		},
	}
}

func parseAnchor(row, column string) (grid.Anchor, error) {
	r, err := strconv.Atoi(row)
	if err != nil {
		return grid.Anchor{}, errors.New(errors.ErrCodeInvalidAnchor, "row %q is not a number", row)
	}
	col, err := strconv.Atoi(column)
	if err != nil {
		return grid.Anchor{}, errors.New(errors.ErrCodeInvalidAnchor, "column %q is not a number", column)
	}
	return grid.Anchor{Row: r, Column: col}, nil
}

// =============================================================================
// resize
// =============================================================================

func (c *CLI) resizeCommand() *cobra.Command {
	var (
		span    spanFlags
		content contentFlags
	)

	cmd := &cobra.Command{
		Use:     "resize <id>",
		Aliases: []string{"update"},
		Short:   "Change a section's width, height or content",
		Long: `Change a section's width, height or content.

A size change re-places the section in the first free position from the top
of the board. A content-only change keeps it where it is.`,
		Example: `  sectiongrid resize news --width half
  sectiongrid resize news --title "Latest news"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := span.columns()
			if err != nil {
				return err
			}
			e := grid.Edit{RowSpan: span.rows, ColumnSpan: columns, Content: content.content()}
			if e.RowSpan == 0 && e.ColumnSpan == 0 && e.Content == nil {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to change; pass --width, --rows, --title or --set")
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				p, err := r.Edit(cmd.Context(), c.board, args[0], e)
				if err != nil {
					return err
				}
				printPlacement("updated", p)
				return nil
			})
		},
	}

	span.register(cmd, "", 0)
	content.register(cmd)
	return cmd
}

// =============================================================================
// remove
// =============================================================================

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a section; other sections stay where they are",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				if err := r.Remove(cmd.Context(), c.board, args[0]); err != nil {
					return err
				}
				printSuccess("removed %s", StyleHighlight.Render(args[0]))
				return nil
			})
		},
	}
}
