package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/robdd/pkg/config"
	"github.com/matzehuels/robdd/pkg/errors"
	"github.com/matzehuels/robdd/pkg/pipeline"
)

func (c *CLI) batchCommand() *cobra.Command {
	var (
		output   string
		only     []string
		renderer string
	)

	cmd := &cobra.Command{
		Use:   "batch <manifest.toml>",
		Short: "Build every diagram listed in a manifest",
		Long: `Build every [[diagram]] of a TOML manifest and write its outputs.

Output paths in the manifest are relative to the manifest's directory.
A failing diagram does not stop the others; the command fails at the end
if any diagram failed.`,
		Example: `  robdd batch examples/tasks.toml
  robdd batch tasks.toml --only task_a,task_b --renderer none`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], output, only, renderer)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (overrides the manifest)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "build only the named diagrams")
	cmd.Flags().StringVar(&renderer, "renderer", "", "image backend (overrides the manifest)")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, path, output string, only []string, renderer string) error {
	m, err := config.Load(path)
	if err != nil {
		return err
	}
	if output == "" {
		output = filepath.Join(filepath.Dir(path), m.Output)
	}

	b := backendFromManifest(m)
	if renderer != "" {
		b.Renderer = renderer
	}
	runner, err := c.newRunner(ctx, b)
	if err != nil {
		return err
	}
	defer runner.Close()

	diagrams, err := selectDiagrams(m.Diagrams, only)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	failed := 0
	for _, d := range diagrams {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("building", "diagram", d)

		res, renderErr := runner.Execute(ctx, pipeline.Options{
			Formula:  d.Formula,
			Order:    d.Order,
			Strategy: d.Strategy,
			Formats:  d.Formats,
			Verify:   d.Verify,
			Name:     d.Name,
		})
		if res == nil {
			printError(c.Out, "%s: %v", d.Name, renderErr)
			failed++
			continue
		}

		printSuccess(c.Out, "%s: %d nodes", d.Name, res.Diagram.NodeCount())
		printStats(c.Out, res.Diagram, res.Stats.Evaluations, res.CacheInfo.DiagramHit)
		paths, err := writeArtifacts(output, d.Name, d.Formats, res.Artifacts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(c.Out, p)
		}
		if renderErr != nil {
			printWarning(c.Out, "%s: images not written: %s", d.Name, errors.UserMessage(renderErr))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d diagrams failed", failed, len(diagrams))
	}
	return nil
}

// selectDiagrams keeps the diagrams named in only, in manifest order. An
// empty only keeps all of them.
func selectDiagrams(all []config.Diagram, only []string) ([]config.Diagram, error) {
	if len(only) == 0 {
		return all, nil
	}
	byName := make(map[string]bool, len(all))
	for _, d := range all {
		byName[d.Name] = true
	}
	want := make(map[string]bool, len(only))
	for _, name := range only {
		if !byName[name] {
			return nil, fmt.Errorf("no diagram named %q in manifest", name)
		}
		want[name] = true
	}

	var out []config.Diagram
	for _, d := range all {
		if want[d.Name] {
			out = append(out, d)
		}
	}
	return out, nil
}
