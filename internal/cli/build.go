package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/robdd/pkg/config"
	"github.com/matzehuels/robdd/pkg/errors"
	"github.com/matzehuels/robdd/pkg/pipeline"
)

type buildFlags struct {
	order    string
	strategy string
	formats  string
	output   string
	name     string
	table    bool
	verify   bool
	ranks    bool
	noCache  bool
	refresh  bool
	renderer string
	endpoint string
}

func (c *CLI) buildCommand() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build <formula>",
		Short: "Build the ROBDD of a formula",
		Long: `Build the reduced ordered binary decision diagram of a Boolean formula.

Operators, loosest binding first: <-> (<=>), -> (=>), or (|, ||),
xor (^), and (&, &&), not (!, ~). Constants are true, false, 1 and 0.
Without --order, variables are ordered by first appearance.`,
		Example: `  robdd build "(a and not c) or (b ^ d)" --order a,c,b,d
  robdd build "a ^ b ^ c" --format dot,png --output out --name xor3
  robdd build "x & y | z" --table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.order, "order", "O", "", "comma-separated variable order (default: first appearance)")
	flags.StringVar(&f.strategy, "strategy", pipeline.DefaultStrategy, "traversal: recursive or iterative")
	flags.StringVarP(&f.formats, "format", "f", pipeline.FormatDOT, "comma-separated output formats: dot, json, svg, png")
	flags.StringVarP(&f.output, "output", "o", ".", "output directory")
	flags.StringVarP(&f.name, "name", "n", "robdd", "base name of output files and DOT graph")
	flags.BoolVar(&f.table, "table", false, "print the node table")
	flags.BoolVar(&f.verify, "verify", false, "cross-check against an independent BDD package")
	flags.BoolVar(&f.ranks, "ranks", false, "place nodes of one variable on one rank")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the local cache")
	flags.BoolVar(&f.refresh, "refresh", false, "rebuild even if the diagram is cached")
	flags.StringVar(&f.renderer, "renderer", config.RenderGraphviz, "image backend: graphviz, quickchart or none")
	flags.StringVar(&f.endpoint, "endpoint", "", "QuickChart endpoint URL")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"dot", "json", "svg", "png"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("strategy", cobra.FixedCompletions(
		[]string{"recursive", "iterative"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, src string, f buildFlags) error {
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
		Formula:  src,
		Order:    splitList(f.order),
		Strategy: f.strategy,
		Formats:  splitList(f.formats),
		Verify:   f.verify,
		Name:     f.name,
		Ranks:    f.ranks,
		Refresh:  f.refresh,
	}

	var spin *Spinner
	if needsRenderer(opts.Formats) {
		spin = newSpinner(ctx, c.Err, fmt.Sprintf("Rendering with %s...", f.renderer))
		spin.Start()
	}
	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Execute(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if res == nil {
		return err
	}
	renderErr := err
	prog.done("built " + f.name)

	printSuccess(c.Out, "ROBDD of %s", StyleValue.Render(res.Expr.String()))
	printDetail(c.Out, "order: %v", res.Diagram.Order())
	printStats(c.Out, res.Diagram, res.Stats.Evaluations, res.CacheInfo.DiagramHit)
	if res.Reference != nil {
		printDetail(c.Out, "cross-check: %d nodes, %s satisfying", res.Reference.Nodes, res.Reference.SatCount)
	}
	if f.table {
		fmt.Fprintln(c.Out, nodeTable(res.Diagram))
	}

	paths, err := writeArtifacts(f.output, f.name, opts.Formats, res.Artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(c.Out, p)
	}
	if renderErr != nil {
		printWarning(c.Out, "images not written: %s", errors.UserMessage(renderErr))
	}
	return renderErr
}

func needsRenderer(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatSVG) || slices.Contains(formats, pipeline.FormatPNG)
}
