package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/robdd/pkg/buildinfo"
	"github.com/matzehuels/robdd/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "robdd builds reduced ordered binary decision diagrams",
		Long: `robdd builds the reduced ordered binary decision diagram (ROBDD) of a
Boolean formula by Shannon decomposition over a variable order, and exports
it as DOT, JSON, SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.NewLogHooks(c.Logger).Register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
