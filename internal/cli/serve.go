package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilewire/pkg/observability"
	"github.com/matzehuels/tilewire/pkg/pipeline"
	"github.com/matzehuels/tilewire/pkg/server"
	"github.com/matzehuels/tilewire/pkg/store"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		storeDir string
		noCache  bool
		flags    pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing and rendering HTTP API",
		Long: `Serve the routing and rendering HTTP API.

Boards are stored as JSON files under the data directory, or in MongoDB when
store.mongo_uri is set in the config file. Artifacts are cached on disk, or
in redis when cache.redis_addr is set. Prometheus metrics are served at
/metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("store-dir") {
				c.Config.Store.Dir = storeDir
			}
			return c.runServe(cmd.Context(), c.options(cmd, &flags), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "board directory (default: $XDG_DATA_HOME/tilewire/boards)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.selectedColor, "selected-color", "", "color of selected connections")
	cmd.Flags().StringVar(&flags.highlightColor, "highlight-color", "", "color of highlighted connections")
	cmd.Flags().Float64Var(&flags.margin, "margin", 0, "clearance between routed lines and tiles (default 20)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, defaults pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)

	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
	observability.SetConnectionHooks(hooks)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	srv := server.New(server.Config{
		Addr:     c.Config.Server.Addr,
		Runner:   runner,
		Store:    st,
		Defaults: defaults,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logger,
	})
	printInfo("Serving on %s", StyleHighlight.Render(c.Config.Server.Addr))
	return srv.ListenAndServe(ctx)
}

// newStore opens MongoDB when configured, otherwise the board directory.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.MongoURI != "" {
		c.Logger.Debug("using mongo store", "database", cfg.MongoDatabase)
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = dataDir(); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("using file store", "dir", dir)
	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
