package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/observability"
	"github.com/matzehuels/apinav/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the table of contents, graph and inbound views over HTTP.

Configuration comes from the [server] and [cache] sections of the config
file and from APINAV_* environment variables. Prometheus metrics are
exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Server.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			observability.NewMetrics(reg).Register()
			defer observability.Reset()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Info("starting server",
				"addr", addr,
				"cache", c.cacheBackend(),
				"memo_size", c.config.Server.MemoSize)

			srv := server.New(runner, server.Config{
				Addr:            addr,
				ShutdownTimeout: c.config.Server.ShutdownTimeout.Duration,
				Tree:            c.config.Tree,
				Gatherer:        reg,
				Logger:          c.Logger,
			})
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}

func (c *CLI) cacheBackend() string {
	if c.noCache {
		return "none"
	}
	return c.config.Cache.Backend
}
