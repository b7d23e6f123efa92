package sidebar

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mchmarny/sidenav/pkg/classes"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/location"
	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/storage"
)

const (
	// DefaultWidth is the expanded sidebar width.
	DefaultWidth = "256px"

	// DefaultCollapsedWidth is the collapsed (rail) sidebar width.
	DefaultCollapsedWidth = "64px"

	// DefaultPersistTimeout bounds a single persistence read or write.
	DefaultPersistTimeout = 2 * time.Second
)

// Accordion controls whether opening a group closes other groups.
type Accordion int

const (
	// AccordionOff lets any number of groups stay open.
	AccordionOff Accordion = iota

	// AccordionSiblings closes the sibling groups of an opened group.
	AccordionSiblings

	// AccordionDeep also closes the expanded descendants of those siblings.
	AccordionDeep
)

// ParseAccordion reads the configuration form of the accordion setting:
// "false"/"off", "true"/"siblings" or "deep".
func ParseAccordion(s string) (Accordion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "off", "none":
		return AccordionOff, nil
	case "true", "on", "siblings":
		return AccordionSiblings, nil
	case "deep":
		return AccordionDeep, nil
	default:
		return AccordionOff, fmt.Errorf("unknown accordion mode %q", s)
	}
}

func (a Accordion) String() string {
	switch a {
	case AccordionSiblings:
		return "siblings"
	case AccordionDeep:
		return "deep"
	default:
		return "off"
	}
}

type settings struct {
	collapsed      bool
	mobileOpen     bool
	defaultGroups  []string
	accordion      Accordion
	expandOnHover  bool
	width          string
	collapsedWidth string
	classes        classes.Overrides
	linkMode       link.Mode
	adapter        link.Adapter
	store          storage.Store
	storageKey     string
	location       location.Provider
	initialPath    string
	logger         *slog.Logger
	metrics        *metric.SidebarMetrics
	persistTimeout time.Duration
}

// Option configures a Sidebar.
type Option func(*settings)

// WithCollapsed sets the initial collapsed state.
func WithCollapsed(v bool) Option {
	return func(s *settings) { s.collapsed = v }
}

// WithMobileOpen sets the initial mobile drawer state.
func WithMobileOpen(v bool) Option {
	return func(s *settings) { s.mobileOpen = v }
}

// WithDefaultExpandedGroups seeds the expanded groups.
// Persisted state, when present, replaces them.
func WithDefaultExpandedGroups(ids ...string) Option {
	return func(s *settings) { s.defaultGroups = append(s.defaultGroups, ids...) }
}

// WithAccordion sets the accordion mode.
func WithAccordion(a Accordion) Option {
	return func(s *settings) { s.accordion = a }
}

// WithExpandOnHover lets a collapsed sidebar expand temporarily on hover.
func WithExpandOnHover(v bool) Option {
	return func(s *settings) { s.expandOnHover = v }
}

// WithWidths sets the expanded and collapsed widths. Empty values keep the defaults.
func WithWidths(expanded, collapsed string) Option {
	return func(s *settings) {
		if expanded != "" {
			s.width = expanded
		}
		if collapsed != "" {
			s.collapsedWidth = collapsed
		}
	}
}

// WithClasses sets the global class overrides.
func WithClasses(o classes.Overrides) Option {
	return func(s *settings) { s.classes = o.Clone() }
}

// WithLinkMode selects the link mode used by the default adapter.
func WithLinkMode(m link.Mode) Option {
	return func(s *settings) { s.linkMode = m }
}

// WithLinkAdapter replaces the link adapter.
func WithLinkAdapter(a link.Adapter) Option {
	return func(s *settings) { s.adapter = a }
}

// WithStore persists collapsed and expanded group state under key.
func WithStore(store storage.Store, key string) Option {
	return func(s *settings) {
		s.store = store
		s.storageKey = key
	}
}

// WithLocation subscribes the sidebar to a location provider.
func WithLocation(p location.Provider) Option {
	return func(s *settings) { s.location = p }
}

// WithInitialPath sets the current path when no location provider is used.
func WithInitialPath(p string) Option {
	return func(s *settings) { s.initialPath = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics reports counters to m.
func WithMetrics(m *metric.SidebarMetrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithPersistTimeout bounds each persistence call.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *settings) { s.persistTimeout = d }
}
