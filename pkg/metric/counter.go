package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric registered by this module.
const Namespace = "sidenav"

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// SidebarMetrics groups the counters reported by a sidebar.
type SidebarMetrics struct {
	// GroupToggles counts group toggles by resulting state (open, closed).
	GroupToggles IncrementalCounter

	// MatchWarnings counts active-match configuration warnings by reason.
	MatchWarnings IncrementalCounter

	// PersistenceErrors counts failed persistence operations by op (load, save, decode).
	PersistenceErrors IncrementalCounter

	// StateChanges counts state change events by kind.
	StateChanges IncrementalCounter

	// LocationErrors counts failed location provider calls by op (read, subscribe, update).
	LocationErrors IncrementalCounter
}

// NewSidebarMetrics registers the sidebar counters with reg.
func NewSidebarMetrics(reg prometheus.Registerer) *SidebarMetrics {
	return &SidebarMetrics{
		GroupToggles: NewCounterWithRegistry(reg, "group_toggles_total",
			"Number of navigation group toggles.", "state"),
		MatchWarnings: NewCounterWithRegistry(reg, "match_warnings_total",
			"Number of active match configuration warnings.", "reason"),
		PersistenceErrors: NewCounterWithRegistry(reg, "persistence_errors_total",
			"Number of failed sidebar state persistence operations.", "op"),
		StateChanges: NewCounterWithRegistry(reg, "state_changes_total",
			"Number of sidebar state change events.", "kind"),
		LocationErrors: NewCounterWithRegistry(reg, "location_errors_total",
			"Number of failed location provider calls.", "op"),
	}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
