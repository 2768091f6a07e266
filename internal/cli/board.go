package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectiongrid/pkg/editor"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
	"github.com/matzehuels/sectiongrid/pkg/render"
)

// =============================================================================
// show
// =============================================================================

func (c *CLI) showCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Draw the board and list its sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				b, err := r.Show(cmd.Context(), c.board)
				if err != nil {
					return err
				}
				fmt.Println(StyleTitle.Render(c.board))
				if b.Len() == 0 {
					printInfo("board is empty")
					printNextStep("Add a section", appName+" add hero --width full")
					return nil
				}
				opts := render.Options{Plain: plain}
				fmt.Println(render.Text(b, opts))
				printNewline()
				fmt.Println(blockTable(b, plain))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}

// blockTable lists the board's sections with their letters.
func blockTable(b *grid.Board, plain bool) string {
	rows := make([][]string, 0, b.Len())
	for i, blk := range b.Blocks() {
		width := "-"
		if w, ok := grid.WidthOf(blk.ColumnSpan); ok {
			width = string(w)
		}
		title, _ := blk.Content["title"].(string)
		rows = append(rows, []string{
			render.Letter(i),
			blk.ID,
			blk.Anchor().String(),
			width,
			strconv.Itoa(blk.RowSpan),
			title,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("", "ID", "Anchor", "Width", "Rows", "Title").
		Rows(rows...)
	if !plain {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if col == 0 {
					return lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
				}
				return lipgloss.NewStyle()
			})
	}
	return t.Render()
}

// =============================================================================
// list
// =============================================================================

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				ids, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("no boards stored")
					return nil
				}
				for _, id := range ids {
					b, err := r.Show(cmd.Context(), id)
					if err != nil {
						return err
					}
					printKeyValue(id, fmt.Sprintf("%d sections, %d rows", b.Len(), b.Rows()))
				}
				return nil
			})
		},
	}
}

// =============================================================================
// check
// =============================================================================

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report sections that overlap",
		Long: `Report sections that share cells.

Overlaps only appear when no free position was found within the search
horizon and a section was put at its fallback position. The command exits
non-zero when any are found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				rep, err := r.Check(cmd.Context(), c.board)
				if err != nil {
					return err
				}
				if rep.OK() {
					printSuccess("%s: %d sections, no overlaps", c.board, rep.Blocks)
					return nil
				}
				for _, o := range rep.Overlaps {
					printError("%s overlaps %s", StyleHighlight.Render(o.A), StyleHighlight.Render(o.B))
				}
				printNextStep("Move one of them", appName+" move <id> <row> <column>")
				return errors.New(errors.ErrCodeOverlap, "%d overlapping pairs on %s", len(rep.Overlaps), c.board)
			})
		},
	}
}

// =============================================================================
// export / import
// =============================================================================

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				prog := newProgress(c.Logger)
				d, err := r.Export(cmd.Context(), c.board)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return sgio.WriteJSON(d, os.Stdout)
				}
				if err := sgio.ExportJSON(d, output); err != nil {
					return err
				}
				prog.done("exported board", "board", c.board, "blocks", len(d.Blocks))
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) importCommand() *cobra.Command {
	var allowOverlap bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with a JSON document",
		Long: `Replace the whole board with the sections of a JSON document.

Documents with overlapping sections are rejected unless --allow-overlap is
given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			d, err := sgio.ImportJSON(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", args[0])
			}
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				b, err := r.Import(cmd.Context(), c.board, d, sgio.Options{AllowOverlap: allowOverlap})
				if err != nil {
					return err
				}
				prog.done("imported board", "board", c.board, "blocks", b.Len())
				printSuccess("imported %d sections into %s", b.Len(), StyleHighlight.Render(c.board))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allowOverlap, "allow-overlap", false, "accept overlapping sections")
	return cmd
}
