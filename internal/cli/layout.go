package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/pipeline"
)

// layoutCommand creates the layout command for placing unplaced tiles.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Place tiles that have no size or position",
		Long: `Place tiles that have no size or position.

The layout command runs Graphviz over the diagram's connections and writes a
copy of the diagram in which every tile has a position and a size. Tiles that
are already placed keep their geometry; new tiles are placed below them.

The output keeps the input's format unless -o names another extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			opts.AutoLayout = true
			return c.runLayout(cmd.Context(), args[0], output, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.laid.<ext>)")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "layout engine: dot (default), neato, circo, fdp")
	cmd.Flags().StringVar(&flags.rankDir, "rankdir", "", "layout direction: TB (default), LR")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}
	if !d.NeedsLayout() {
		printInfo("Every tile is already placed")
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	laid, cacheHit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".laid" + filepath.Ext(input)
	}
	if err := graph.WriteDiagramFile(laid, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(runStats{Tiles: len(laid.Nodes), Drawn: len(laid.Connections), Cached: cacheHit})
	printNextStep("Render", appName+" render "+outputPath)
	return nil
}
