package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mchmarny/sidenav/pkg/nav"
	"github.com/mchmarny/sidenav/pkg/storage"
	"github.com/spf13/cobra"
)

func newValidateCmd(o *rootOptions) *cobra.Command {
	var checkStorage bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the sidebar configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return validate(cmd.Context(), cmd.OutOrStdout(), o, checkStorage)
		},
	}

	cmd.Flags().BoolVar(&checkStorage, "check-storage", false, "also connect to the configured storage backend")

	return cmd
}

func validate(ctx context.Context, w io.Writer, o *rootOptions, checkStorage bool) error {
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	tree, err := nav.NewTree(o.cfg.NavItems(), o.logger)
	if err != nil {
		return err
	}

	if checkStorage {
		store, closeStore, err := storage.Open(ctx, o.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", o.cfg.Storage.Backend, err)
		}
		defer func() { _ = closeStore() }()

		if err := storage.Check(ctx, store); err != nil {
			return fmt.Errorf("storage not ready: %w", err)
		}
	}

	_, err = fmt.Fprintf(w, "config is valid: %d items\n", tree.Len())
	return err
}
