package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectiongrid/pkg/api"
	"github.com/matzehuels/sectiongrid/pkg/editor"
	"github.com/matzehuels/sectiongrid/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		Long: `Serve boards over a JSON HTTP API.

Mutations are serialized inside the process. Run a single server per store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			observability.SetAPIHooks(observability.NewLogHooks(c.Logger))
			return c.withRunner(cmd.Context(), func(r *editor.Runner) error {
				printInfo("serving on %s", StyleHighlight.Render("http://"+addr))
				return api.New(r, loggerFromContext(cmd.Context())).ListenAndServe(cmd.Context(), addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
