package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/robdd/pkg/api"
	"github.com/matzehuels/robdd/pkg/config"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		b    backend
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API:

  GET  /healthz
  POST /v1/diagrams  {"formula": "...", "order": [...]}
  POST /v1/render    {"formula": "...", "format": "svg"}`,
		Example: `  robdd serve --addr :8080
  robdd serve --cache redis --redis-addr localhost:6379 --prefix robdd:prod:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), b)
			if err != nil {
				return err
			}
			defer runner.Close()

			return api.NewServer(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8080", "listen address")
	flags.StringVar(&b.Cache, "cache", config.CacheFile, "cache backend: file, redis or none")
	flags.StringVar(&b.CacheDir, "cache-dir", "", "file cache directory (default: XDG cache dir)")
	flags.StringVar(&b.RedisAddr, "redis-addr", config.DefaultRedisAddr, "Redis address")
	flags.StringVar(&b.Prefix, "prefix", "", "cache key prefix")
	flags.StringVar(&b.Renderer, "renderer", config.RenderGraphviz, "image backend: graphviz, quickchart or none")
	flags.StringVar(&b.Endpoint, "endpoint", "", "QuickChart endpoint URL")
	flags.DurationVar(&b.Timeout, "timeout", config.DefaultTimeout, "remote render timeout")

	return cmd
}
