package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/robdd/pkg/config"
	bddio "github.com/matzehuels/robdd/pkg/io"
	"github.com/matzehuels/robdd/pkg/pipeline"
)

type renderFlags struct {
	formats  string
	output   string
	name     string
	ranks    bool
	noCache  bool
	renderer string
	endpoint string
}

func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <diagram.json>",
		Short: "Render a diagram exported as JSON",
		Long: `Render a diagram written by "robdd build --format json".

The node table is re-validated on import: it must be reduced, ordered and
free of duplicate nodes.`,
		Example: `  robdd render out/task_a.json --format svg,png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.formats, "format", "f", pipeline.FormatSVG, "comma-separated output formats: dot, svg, png")
	flags.StringVarP(&f.output, "output", "o", "", "output directory (default: next to the input)")
	flags.StringVarP(&f.name, "name", "n", "", "base name of output files (default: input name)")
	flags.BoolVar(&f.ranks, "ranks", false, "place nodes of one variable on one rank")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the local cache")
	flags.StringVar(&f.renderer, "renderer", config.RenderGraphviz, "image backend: graphviz, quickchart or none")
	flags.StringVar(&f.endpoint, "endpoint", "", "QuickChart endpoint URL")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, f renderFlags) error {
	d, src, err := bddio.ImportJSON(path)
	if err != nil {
		return err
	}

	if f.output == "" {
		f.output = filepath.Dir(path)
	}
	if f.name == "" {
		f.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	b := backend{Renderer: f.renderer, Endpoint: f.endpoint}
	if f.noCache {
		b.Cache = config.BackendNone
	}
	runner, err := c.newRunner(ctx, b)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{
		Formula: src,
		Formats: splitList(f.formats),
		Name:    f.name,
		Ranks:   f.ranks,
	}
	artifacts, err := runner.Render(ctx, d, opts)
	if err != nil {
		return err
	}

	printSuccess(c.Out, "Rendered %s", path)
	printStats(c.Out, d, 0, false)
	paths, err := writeArtifacts(f.output, f.name, opts.Formats, artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(c.Out, p)
	}
	return nil
}
