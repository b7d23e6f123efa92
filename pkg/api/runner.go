package api

import (
	"context"
	"net/http"

	"github.com/mchmarny/sidenav/pkg/server"
)

// Run serves the API and blocks until the context is canceled or an error occurs.
// Every route is registered on top of the given server options.
func (a *API) Run(ctx context.Context, opt ...server.Option) error {
	a.logger.Info("starting sidebar api",
		"title", a.Title,
		"version", a.Version)

	opts := make([]server.Option, 0, len(opt)+len(a.routes()))
	opts = append(opts, opt...)

	a.RegisterHandlers(func(pattern string, h http.Handler) {
		opts = append(opts, server.WithHandler(pattern, h))
	})

	return server.New(opts...).Serve(ctx)
}
