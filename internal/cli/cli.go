// Package cli implements the sectiongrid command-line interface.
//
// Commands operate on one board at a time, selected with --board (default
// "home"), stored in the backend chosen by the config file:
//   - add, move, resize, remove: edit blocks
//   - show, list, check: inspect boards
//   - export, import: move boards in and out as JSON documents
//   - edit: drag blocks around in an interactive terminal editor
//   - serve: run the HTTP API
//   - config: print the config path or the effective config
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectiongrid/pkg/buildinfo"
	"github.com/matzehuels/sectiongrid/pkg/config"
	"github.com/matzehuels/sectiongrid/pkg/editor"
	"github.com/matzehuels/sectiongrid/pkg/observability"
	"github.com/matzehuels/sectiongrid/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "sectiongrid"

	// defaultBoard is the board edited when --board is not given.
	defaultBoard = "home"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	board      string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		board:  defaultBoard,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sectiongrid lays out page sections on a 12-column grid",
		Long: `Sectiongrid places page sections on a 12-column grid, pushes colliding
sections out of the way when one is moved, and keeps boards in a file,
Redis or MongoDB store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			observability.SetEngineHooks(observability.NewLogHooks(c.Logger))
			observability.SetStoreHooks(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/sectiongrid/config.toml)")
	root.PersistentFlags().StringVarP(&c.board, "board", "b", defaultBoard, "board to operate on")

	root.AddCommand(c.addCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner opens the configured store and returns a runner over it. The
// returned function closes the store.
func (c *CLI) newRunner(ctx context.Context) (*editor.Runner, func(), error) {
	var spin *Spinner
	if remote := c.cfg.Store.Backend; remote == config.BackendRedis || remote == config.BackendMongo {
		spin = newSpinnerWithContext(ctx, "connecting to "+remote)
		spin.Start()
	}
	s, err := store.Open(ctx, c.cfg.Store)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("opened store", "backend", c.cfg.Store.Backend)

	r := editor.NewRunner(s, c.Logger, c.cfg.Grid.Horizon)
	closeFn := func() {
		if err := s.Close(); err != nil {
			c.Logger.Warn("close store", "error", err)
		}
	}
	return r, closeFn, nil
}

// withRunner runs fn with a runner and closes the store afterwards.
func (c *CLI) withRunner(ctx context.Context, fn func(*editor.Runner) error) error {
	r, closeFn, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(r)
}
