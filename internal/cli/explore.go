package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/robdd/pkg/bdd"
	"github.com/matzehuels/robdd/pkg/config"
	bddio "github.com/matzehuels/robdd/pkg/io"
	"github.com/matzehuels/robdd/pkg/pipeline"
)

func (c *CLI) exploreCommand() *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "explore <formula | diagram.json>",
		Short: "Walk a diagram interactively",
		Long: `Walk a diagram from its root, choosing the 0 or 1 branch of each node
until a terminal is reached. The argument is a formula, or a diagram exported
with "robdd build --format json".`,
		Example: `  robdd explore "(a and not c) or (b ^ d)" --order a,c,b,d
  robdd explore out/task_a.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, title, err := c.loadDiagram(cmd.Context(), args[0], splitList(order))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewExploreModel(d, title), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&order, "order", "O", "", "comma-separated variable order (default: first appearance)")
	return cmd
}

// loadDiagram imports arg when it names a JSON file and builds it as a
// formula otherwise.
func (c *CLI) loadDiagram(ctx context.Context, arg string, order []string) (*bdd.Diagram, string, error) {
	if strings.HasSuffix(arg, ".json") {
		if _, err := os.Stat(arg); err == nil {
			d, src, err := bddio.ImportJSON(arg)
			if err != nil {
				return nil, "", err
			}
			if src == "" {
				src = arg
			}
			return d, src, nil
		}
	}

	runner, err := c.newRunner(ctx, backend{Renderer: config.BackendNone})
	if err != nil {
		return nil, "", err
	}
	defer runner.Close()

	res, err := runner.Build(ctx, pipeline.Options{Formula: arg, Order: order})
	if err != nil {
		return nil, "", err
	}
	return res.Diagram, fmt.Sprintf("%s over %v", res.Expr, res.Diagram.Order()), nil
}
