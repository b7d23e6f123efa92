package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/nav"
	"github.com/mchmarny/sidenav/pkg/sidebar"
	"github.com/mchmarny/sidenav/pkg/storage"
	"github.com/spf13/cobra"
)

type resolveOptions struct {
	path   string
	route  string
	params map[string]string
	state  string
	format string
}

func newResolveCmd(o *rootOptions) *cobra.Command {
	ro := resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the rendered sidebar for a location",
		Long: `Resolve builds the sidebar from the config and prints its render-ready view
as if the browser were at --path. A persisted state, as written by the
server, can be applied with --state.`,
		Example: `  sidenav resolve --path /admin/users
  sidenav resolve --path /users/7 --route user --param id=7 --format yaml
  sidenav resolve --state '{"collapsed":true,"expandedGroups":["admin"]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resolve(cmd.Context(), cmd.OutOrStdout(), o, ro)
		},
	}

	f := cmd.Flags()
	f.StringVar(&ro.path, "path", "", "current location path (default is the configured initial path)")
	f.StringVar(&ro.route, "route", "", "name of the current route")
	f.StringToStringVar(&ro.params, "param", nil, "current route params as key=value")
	f.StringVar(&ro.state, "state", "", "persisted sidebar state as JSON")
	f.StringVarP(&ro.format, "format", "o", formatJSON, "output format: json, yaml or toml")

	return cmd
}

func resolve(ctx context.Context, w io.Writer, o *rootOptions, ro resolveOptions) error {
	cfg := o.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	var store storage.Store
	if ro.state != "" {
		if _, err := sidebar.DecodeSnapshot(ro.state); err != nil {
			return fmt.Errorf("invalid --state: %w", err)
		}
		if cfg.Storage.Key == "" {
			cfg.Storage.Key = config.DefaultStorageKey
		}
		mem := storage.NewMemory()
		if err := mem.Set(ctx, cfg.Storage.Key, ro.state); err != nil {
			return err
		}
		store = mem
	}

	sb, err := buildSidebar(cfg, store, o.logger, nil)
	if err != nil {
		return err
	}
	defer sb.Close()

	path := ro.path
	if path == "" {
		path = sb.CurrentPath()
	}

	var route *nav.RouteInfo
	if ro.route != "" || len(ro.params) > 0 {
		route = &nav.RouteInfo{Name: ro.route, Params: ro.params}
	}

	return encode(w, ro.format, sb.ViewAt(path, route))
}
