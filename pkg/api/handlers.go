package api

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/mchmarny/sidenav/pkg/classes"
	"github.com/mchmarny/sidenav/pkg/nav"
	"github.com/mchmarny/sidenav/pkg/sidebar"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// LocationRequest is the body of POST /api/location.
type LocationRequest struct {
	Path  string         `json:"path"`
	Route *nav.RouteInfo `json:"route,omitempty"`
}

// GroupResponse is returned by POST /api/groups/{id}/toggle.
type GroupResponse struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"`
}

// ClassesResponse is returned by GET /api/classes.
type ClassesResponse struct {
	Defaults classes.Overrides `json:"defaults"`
	Global   classes.Overrides `json:"global"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	a.writeJSON(w, http.StatusOK, map[string]any{
		"title":   a.Title,
		"version": a.Version,
		"items":   sb.Tree().Len(),
	})
}

func (a *API) handleView(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	if p := r.URL.Query().Get("path"); p != "" {
		a.writeJSON(w, http.StatusOK, sb.ViewAt(p, nil))
		return
	}
	a.writeJSON(w, http.StatusOK, sb.View())
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, sidebar.MustFromContext(r.Context()).State())
}

func (a *API) handleClasses(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	a.writeJSON(w, http.StatusOK, ClassesResponse{
		Defaults: sb.DefaultClasses(),
		Global:   sb.Classes(),
	})
}

func (a *API) handleLocation(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "error reading request body")
		return
	}

	var req LocationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Path == "" {
		a.writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	sb.SetLocation(req.Path, req.Route)
	a.writeJSON(w, http.StatusOK, sb.State())
}

func (a *API) handleCollapse(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	sb.Collapse()
	a.writeJSON(w, http.StatusOK, sb.State())
}

func (a *API) handleExpand(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	sb.Expand()
	a.writeJSON(w, http.StatusOK, sb.State())
}

func (a *API) handleToggle(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	sb.Toggle()
	a.writeJSON(w, http.StatusOK, sb.State())
}

func (a *API) handleMobile(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())

	switch r.PathValue("action") {
	case "open":
		sb.OpenMobile()
	case "close":
		sb.CloseMobile()
	case "toggle":
		sb.ToggleMobile()
	default:
		a.writeError(w, http.StatusNotFound, "unknown mobile action")
		return
	}

	a.writeJSON(w, http.StatusOK, sb.State())
}

func (a *API) handleGroupToggle(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())
	id := r.PathValue("id")

	item, ok := sb.Tree().Find(id)
	if !ok {
		a.writeError(w, http.StatusNotFound, "unknown item: "+id)
		return
	}
	if !item.HasChildren() {
		a.writeError(w, http.StatusConflict, "item is not a group: "+id)
		return
	}

	a.writeJSON(w, http.StatusOK, GroupResponse{ID: id, Expanded: sb.ToggleGroup(id)})
}

func (a *API) handleActivate(w http.ResponseWriter, r *http.Request) {
	sb := sidebar.MustFromContext(r.Context())

	res, err := sb.Activate(r.PathValue("id"))
	if errors.Is(err, sidebar.ErrUnknownItem) {
		a.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		a.logger.Error("failed to activate item", "error", err)
		a.writeError(w, http.StatusInternalServerError, "error, see logs for details")
		return
	}

	a.writeJSON(w, http.StatusOK, res)
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.logger.Warn("handling error response",
		"status", status,
		"message", message)

	a.writeJSON(w, status, ErrorResponse{Error: message})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		a.logger.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		a.logger.Error("failed to write JSON response", "error", err)
	}
}
