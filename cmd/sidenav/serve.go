package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/sidenav/pkg/api"
	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/logger"
	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/sidebar"
	"github.com/mchmarny/sidenav/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var (
		port           int
		host           string
		runtimeMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sidebar API",
		Long: `Serve the sidebar state over HTTP.

Besides the /api routes, the server exposes /healthz, /readyz (which pings
the storage backend) and /metrics. Timeouts and TLS are read from the
server section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				o.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				o.cfg.Server.Host = host
			}
			return serve(cmd.Context(), o.cfg, o.logger, runtimeMetrics)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", server.DefaultPort, "port to listen on (overrides the config)")
	cmd.Flags().StringVar(&host, "host", "", "host to listen on (overrides the config)")
	cmd.Flags().BoolVar(&runtimeMetrics, "runtime-metrics", true, "export Go runtime and process metrics")

	return cmd
}

// buildSidebar creates the sidebar described by cfg, persisting to store when it is not nil.
func buildSidebar(cfg *config.Config, store storage.Store, log *slog.Logger, m *metric.SidebarMetrics) (*sidebar.Sidebar, error) {
	opts := cfg.Options()
	opts = append(opts, sidebar.WithLogger(log))
	if m != nil {
		opts = append(opts, sidebar.WithMetrics(m))
	}
	if store != nil {
		opts = append(opts, sidebar.WithStore(store, cfg.Storage.Key))
	}
	return sidebar.New(cfg.NavItems(), opts...)
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, runtimeMetrics bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close storage", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	if runtimeMetrics {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	sb, err := buildSidebar(cfg, store, log, metric.NewSidebarMetrics(reg))
	if err != nil {
		return err
	}
	defer sb.Close()

	a := api.New(sb, cfg.Title, version, log)

	opts := cfg.Server.Options()
	opts = append(opts,
		server.WithRegistry(reg),
		server.WithMetrics(),
		server.WithHealthCheck(a),
		server.WithErrorLog(logger.NewLogLogger(slog.LevelError, false)),
	)
	if store != nil {
		opts = append(opts, server.WithReadinessCheck(server.ReadinessFunc(func(ctx context.Context) error {
			return storage.Check(ctx, store)
		})))
	}

	return a.Run(ctx, opts...)
}
