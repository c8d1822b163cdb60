package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/pipeline"
)

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "route [diagram.json]",
		Short: "Route the connections of a diagram",
		Long: `Route the connections of a diagram.

The route command binds every connection record to its tiles and writes the
routed scene (waypoints, paths, strokes and arrowheads of each connection) as
JSON. Records whose tiles are missing are skipped and reported.

Diagrams may be JSON or YAML; the format follows the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd.Context(), args[0], output, c.options(cmd, &flags), flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.routes.json)")
	flags.registerRoute(cmd)

	return cmd
}

func (c *CLI) runRoute(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Placing tiles...")
	spinner.Start()
	laid, layoutHit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	spinner.SetMessage("Routing connections...")
	scene, err := runner.Route(ctx, laid, opts)
	if err != nil {
		spinner.StopWithError("Routing failed")
		return fmt.Errorf("route: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Routed %d connections", len(scene.Connections)))

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".routes.json"
	}
	if err := graph.WriteLayoutFile(scene, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Routing complete")
	printFile(outputPath)
	printStats(runStats{
		Tiles:   len(laid.Nodes),
		Drawn:   len(scene.Connections),
		Skipped: len(laid.Connections) - len(scene.Connections),
		Cached:  layoutHit,
	})
	printNextStep("Render", appName+" render "+input)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a known extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, "yaml", "yml":
		return strings.TrimSuffix(output, ext)
	}
	return output
}
