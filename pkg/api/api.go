// Package api exposes a sidebar over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mchmarny/sidenav/pkg/sidebar"
)

// API serves one shared sidebar.
type API struct {
	// Title is reported by the index endpoint.
	Title string `json:"title"`

	// Version is reported by the index endpoint.
	Version string `json:"version,omitempty"`

	sidebar *sidebar.Sidebar
	logger  *slog.Logger
}

// New creates an API for sb.
func New(sb *sidebar.Sidebar, title, version string, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{Title: title, Version: version, sidebar: sb, logger: logger}
}

// ErrEmptySidebar is reported by Healthy when the sidebar has no items.
var ErrEmptySidebar = errors.New("sidebar has no items")

// Healthy reports whether the API has a sidebar with at least one item.
// It backs the server health endpoint.
func (a *API) Healthy(context.Context) error {
	if a.sidebar == nil {
		return sidebar.ErrNoSidebar
	}
	if a.sidebar.Tree().Len() == 0 {
		return ErrEmptySidebar
	}
	return nil
}

type route struct {
	pattern string
	handler http.HandlerFunc
}

func (a *API) routes() []route {
	return []route{
		{"GET /api", a.handleIndex},
		{"GET /api/sidebar", a.handleView},
		{"GET /api/state", a.handleState},
		{"GET /api/classes", a.handleClasses},
		{"POST /api/location", a.handleLocation},
		{"POST /api/collapse", a.handleCollapse},
		{"POST /api/expand", a.handleExpand},
		{"POST /api/toggle", a.handleToggle},
		{"POST /api/mobile/{action}", a.handleMobile},
		{"POST /api/groups/{id}/toggle", a.handleGroupToggle},
		{"POST /api/items/{id}/activate", a.handleActivate},
	}
}

// RegisterHandlers passes every route to register. Each handler finds the
// sidebar in its request context.
func (a *API) RegisterHandlers(register func(pattern string, handler http.Handler)) {
	for _, r := range a.routes() {
		register(r.pattern, a.withSidebar(r.handler))
	}
}

// Handler returns a mux serving every route.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.RegisterHandlers(mux.Handle)
	return mux
}

func (a *API) withSidebar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.logger.Error("request panicked",
					"method", r.Method,
					"url", r.URL.Path,
					"panic", rec)
				a.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		ctx := r.Context()
		if a.sidebar != nil {
			ctx = sidebar.NewContext(ctx, a.sidebar)
		}

		a.logger.Debug("handling request",
			"method", r.Method,
			"url", r.URL.Path)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
