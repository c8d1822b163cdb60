package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [diagram.json]",
		Short: "Render a diagram to SVG, PNG, PDF or JSON",
		Long: `Render a diagram to SVG, PNG, PDF or JSON.

With a single format, -o names the output file. With several formats, -o is
a base path and each file gets its format's extension.

Rendered artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(runStats{
		Tiles:   result.Stats.NodeCount,
		Drawn:   result.Stats.DrawnCount,
		Skipped: result.Stats.SkippedCount(),
		Cached:  result.CacheInfo.RenderHit,
	})
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order. The routed JSON scene gets a .routes.json suffix so it never
// replaces a JSON diagram.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		ext := format
		if format == pipeline.FormatJSON {
			ext = "routes.json"
		}
		path := basePath(output, input) + "." + ext
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
