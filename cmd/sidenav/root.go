package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/logger"
	"github.com/spf13/cobra"
)

// rootOptions carries the global flags and the state they resolve to.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   config.DefaultName,
		Short: "Sidebar navigation state and rendering service",
		Long: `sidenav derives render-ready sidebar navigation from a tree of items.

It tracks collapse, mobile drawer and group expansion state, resolves the
active item for a location, and serves all of it over a small JSON API.

The sidebar is described in a sidenav.yaml (or .toml, .json) file found in
the working directory or $HOME/.config/sidenav. Every setting can be
overridden with a SIDENAV_ prefixed environment variable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (default is ./sidenav.yaml or $HOME/.config/sidenav/sidenav.yaml)")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL and the config)")
	f.StringVar(&o.logFormat, "log-format", "", "log format: json or text (overrides LOG_FORMAT and the config)")

	cmd.AddCommand(
		newServeCmd(o),
		newResolveCmd(o),
		newValidateCmd(o),
	)

	return cmd
}

// init loads the configuration and sets up the default logger.
// Flags win over the environment, which wins over the config file.
func (o *rootOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := firstOf(o.logLevel, os.Getenv(logger.EnvVarLogLevel), cfg.Log.Level)
	format := firstOf(o.logFormat, os.Getenv(logger.EnvVarLogFormat), cfg.Log.Format)

	o.cfg = cfg
	o.logger = logger.NewStructuredLoggerTo(cmd.ErrOrStderr(), config.DefaultName, version, level, format)
	slog.SetDefault(o.logger)

	o.logger.Debug("config loaded",
		"path", o.configPath,
		"items", len(cfg.Items),
		"storage", cfg.Storage.Backend)

	return nil
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
