// Package sidebar holds the state of a single sidebar instance: collapse,
// mobile drawer, expanded groups and the current location. It derives the
// active state of every item and produces a render-ready view.
package sidebar

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mchmarny/sidenav/pkg/classes"
	"github.com/mchmarny/sidenav/pkg/expansion"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/location"
	"github.com/mchmarny/sidenav/pkg/nav"
)

var (
	// ErrNoSidebar is raised when a sidebar operation is used outside of an
	// established sidebar context.
	ErrNoSidebar = errors.New("sidebar used outside of its context: create one with sidebar.New and attach it with sidebar.NewContext")

	// ErrUnknownItem is returned when an item id is not part of the tree.
	ErrUnknownItem = errors.New("unknown navigation item")
)

// State is the observable state of a sidebar.
type State struct {
	Collapsed      bool     `json:"collapsed" yaml:"collapsed" toml:"collapsed"`
	HoverExpanded  bool     `json:"hoverExpanded" yaml:"hoverExpanded" toml:"hoverExpanded"`
	MobileOpen     bool     `json:"mobileOpen" yaml:"mobileOpen" toml:"mobileOpen"`
	CurrentPath    string   `json:"currentPath" yaml:"currentPath" toml:"currentPath"`
	ExpandedGroups []string `json:"expandedGroups" yaml:"expandedGroups" toml:"expandedGroups"`
}

// Sidebar is a single sidebar context. It is safe for concurrent use.
type Sidebar struct {
	cfg     settings
	tree    *nav.Tree
	matcher *nav.Matcher
	groups  *expansion.Store

	mu            sync.RWMutex
	collapsed     bool
	mobileOpen    bool
	hoverExpanded bool
	path          string
	route         *nav.RouteInfo
	listeners     map[int]Listener
	nextListener  int
	cancels       []func()

	persistMu sync.Mutex
}

// New creates a sidebar for items. Persisted state, when a store is
// configured, is loaded before New returns.
func New(items []*nav.Item, opts ...Option) (*Sidebar, error) {
	cfg := settings{
		width:          DefaultWidth,
		collapsedWidth: DefaultCollapsedWidth,
		linkMode:       link.ModeAnchor,
		persistTimeout: DefaultPersistTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.adapter == nil {
		cfg.adapter = link.ForMode(cfg.linkMode)
	}

	matcherOpts := []nav.MatcherOption{nav.WithLogger(cfg.logger)}
	if cfg.metrics != nil && cfg.metrics.MatchWarnings != nil {
		matcherOpts = append(matcherOpts, nav.WithWarningCounter(cfg.metrics.MatchWarnings))
	}

	tree, err := nav.NewTree(items, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("invalid navigation tree: %w", err)
	}

	s := &Sidebar{
		cfg:        cfg,
		tree:       tree,
		matcher:    nav.NewMatcher(matcherOpts...),
		groups:     expansion.New(cfg.defaultGroups...),
		collapsed:  cfg.collapsed,
		mobileOpen: cfg.mobileOpen,
		path:       "/",
		listeners:  make(map[int]Listener),
	}

	s.load()

	if cfg.initialPath != "" {
		s.path = cfg.initialPath
	}
	if cfg.location != nil {
		s.path, s.route, _ = s.locate(s.path, nil)
		if cancel := s.subscribeLocation(); cancel != nil {
			s.cancels = append(s.cancels, cancel)
		}
	}

	s.cancels = append(s.cancels, s.groups.Subscribe(s.onGroupsChange))

	cfg.logger.Debug("sidebar created",
		"items", tree.Len(),
		"collapsed", s.collapsed,
		"groups", s.groups.Expanded(),
		"path", s.path)

	return s, nil
}

func (s *Sidebar) check() {
	if s == nil {
		panic(ErrNoSidebar)
	}
}

// Close detaches the sidebar from its location provider and stops notifying listeners.
func (s *Sidebar) Close() {
	s.check()
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.listeners = make(map[int]Listener)
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Tree returns the indexed navigation tree.
func (s *Sidebar) Tree() *nav.Tree {
	s.check()
	return s.tree
}

// Matcher returns the matcher used for active state.
func (s *Sidebar) Matcher() *nav.Matcher {
	s.check()
	return s.matcher
}

// State returns a copy of the current state.
func (s *Sidebar) State() State {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Sidebar) stateLocked() State {
	groups := s.groups.Expanded()
	if groups == nil {
		groups = []string{}
	}
	return State{
		Collapsed:      s.collapsed,
		HoverExpanded:  s.hoverExpanded,
		MobileOpen:     s.mobileOpen,
		CurrentPath:    s.path,
		ExpandedGroups: groups,
	}
}

// Toggle flips the collapsed state.
func (s *Sidebar) Toggle() {
	s.check()
	s.setCollapsed(func(v bool) bool { return !v })
}

// Collapse collapses the sidebar.
func (s *Sidebar) Collapse() {
	s.check()
	s.setCollapsed(func(bool) bool { return true })
}

// Expand expands the sidebar.
func (s *Sidebar) Expand() {
	s.check()
	s.setCollapsed(func(bool) bool { return false })
}

// setCollapsed notifies and saves on every call, including when the
// state does not change.
func (s *Sidebar) setCollapsed(next func(bool) bool) {
	s.mu.Lock()
	s.collapsed = next(s.collapsed)
	if !s.collapsed {
		s.hoverExpanded = false
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventCollapsed})
	s.save()
}

// Collapsed reports the stored collapsed state, ignoring hover.
func (s *Sidebar) Collapsed() bool {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapsed
}

// IsCollapsed reports the effective collapsed state. A collapsed sidebar
// that is temporarily expanded by hover is not collapsed.
func (s *Sidebar) IsCollapsed() bool {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapsed && !s.hoverExpanded
}

// SetHoverExpanded records hover over a collapsed sidebar. It has no
// effect unless expand on hover is enabled.
func (s *Sidebar) SetHoverExpanded(v bool) {
	s.check()
	if !s.cfg.expandOnHover {
		return
	}

	s.mu.Lock()
	if !s.collapsed {
		v = false
	}
	changed := s.hoverExpanded != v
	s.hoverExpanded = v
	s.mu.Unlock()

	if changed {
		s.emit(Event{Kind: EventHover})
	}
}

// EffectiveWidth returns the width matching the effective collapsed state.
func (s *Sidebar) EffectiveWidth() string {
	if s.IsCollapsed() {
		return s.cfg.collapsedWidth
	}
	return s.cfg.width
}

// ToggleMobile flips the mobile drawer.
func (s *Sidebar) ToggleMobile() {
	s.check()
	s.setMobile(func(v bool) bool { return !v })
}

// OpenMobile opens the mobile drawer.
func (s *Sidebar) OpenMobile() {
	s.check()
	s.setMobile(func(bool) bool { return true })
}

// CloseMobile closes the mobile drawer.
func (s *Sidebar) CloseMobile() {
	s.check()
	s.setMobile(func(bool) bool { return false })
}

// MobileOpen reports whether the mobile drawer is open.
func (s *Sidebar) MobileOpen() bool {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mobileOpen
}

// setMobile notifies on every call. Mobile state is not persisted.
func (s *Sidebar) setMobile(next func(bool) bool) {
	s.mu.Lock()
	s.mobileOpen = next(s.mobileOpen)
	s.mu.Unlock()

	s.emit(Event{Kind: EventMobile})
}

// ToggleGroup flips the expanded state of the group id and returns the new
// state. With accordion enabled, opening a group closes its siblings.
func (s *Sidebar) ToggleGroup(id string) bool {
	s.check()
	return s.groups.Toggle(id, s.accordionClosing(id)...)
}

func (s *Sidebar) accordionClosing(id string) []string {
	if s.cfg.accordion == AccordionOff {
		return nil
	}

	siblings := s.tree.Siblings(id)
	if s.cfg.accordion != AccordionDeep {
		return siblings
	}

	closing := slices.Clone(siblings)
	for _, sib := range siblings {
		closing = append(closing, s.tree.Descendants(sib)...)
	}
	return closing
}

// IsGroupExpanded reports whether the group id is expanded.
func (s *Sidebar) IsGroupExpanded(id string) bool {
	s.check()
	return s.groups.IsExpanded(id)
}

// ExpandedGroups returns the expanded group ids in the order they were opened.
func (s *Sidebar) ExpandedGroups() []string {
	s.check()
	return s.groups.Expanded()
}

// IsItemExpanded reports whether item is a group that is expanded.
func (s *Sidebar) IsItemExpanded(item *nav.Item) bool {
	s.check()
	return item.HasChildren() && s.groups.IsExpanded(s.itemID(item))
}

func (s *Sidebar) itemID(item *nav.Item) string {
	if id := s.tree.ID(item); id != "" {
		return id
	}
	return item.ID
}

// IsItemActive reports whether item matches the current location.
func (s *Sidebar) IsItemActive(item *nav.Item) bool {
	s.check()
	path, route := s.location()
	return s.matcher.IsActive(item, path, route)
}

// IsAncestorOfActive reports whether a strict descendant of item is active.
func (s *Sidebar) IsAncestorOfActive(item *nav.Item) bool {
	s.check()
	path, route := s.location()
	return s.matcher.IsAncestorOfActive(item, path, route)
}

// ActivePath returns the ids from a root down to the active item.
func (s *Sidebar) ActivePath() []string {
	s.check()
	path, route := s.location()
	return s.tree.ActivePath(s.matcher, path, route)
}

// CurrentPath returns the current path as last set.
func (s *Sidebar) CurrentPath() string {
	s.check()
	path, _ := s.location()
	return path
}

// Route returns the current route details, if any.
func (s *Sidebar) Route() *nav.RouteInfo {
	s.check()
	_, route := s.location()
	return route
}

func (s *Sidebar) location() (string, *nav.RouteInfo) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path, s.route
}

// SetCurrentPath sets the current path and clears route details.
func (s *Sidebar) SetCurrentPath(path string) {
	s.check()
	s.SetLocation(path, nil)
}

// SetLocation sets the current path and route details.
func (s *Sidebar) SetLocation(path string, route *nav.RouteInfo) {
	s.check()
	s.mu.Lock()
	changed := s.path != path || s.route != route
	s.path = path
	s.route = route
	s.mu.Unlock()

	if changed {
		s.emit(Event{Kind: EventPath})
	}
}

// UpdateCurrentPath re-reads the location provider. It is a no-op without
// one. When the provider fails the current location is kept.
func (s *Sidebar) UpdateCurrentPath() {
	s.check()
	if s.cfg.location == nil {
		return
	}
	path, route := s.location()
	path, route, ok := s.locate(path, route)
	if !ok {
		return
	}
	s.SetLocation(path, route)
}

// locate reads the location provider, returning the fallback and false
// when the provider panics.
func (s *Sidebar) locate(fallback string, fallbackRoute *nav.RouteInfo) (path string, route *nav.RouteInfo, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.locationFailed("read", fmt.Errorf("location provider panic: %v", r))
			path, route, ok = fallback, fallbackRoute, false
		}
	}()

	path = s.cfg.location.Path()
	if rp, isRoute := s.cfg.location.(location.RouteProvider); isRoute {
		route = rp.Route()
	}
	return path, route, true
}

// subscribeLocation follows the location provider. It returns nil when
// the provider cannot be subscribed to.
func (s *Sidebar) subscribeLocation() (cancel func()) {
	defer func() {
		if r := recover(); r != nil {
			s.locationFailed("subscribe", fmt.Errorf("location provider panic: %v", r))
			cancel = nil
		}
	}()

	return s.cfg.location.Subscribe(func(string) {
		defer func() {
			if r := recover(); r != nil {
				s.locationFailed("update", fmt.Errorf("location update panic: %v", r))
			}
		}()
		s.UpdateCurrentPath()
	})
}

func (s *Sidebar) locationFailed(op string, err error) {
	s.cfg.logger.Warn("sidebar location update failed", "op", op, "error", err)
	if s.cfg.metrics != nil && s.cfg.metrics.LocationErrors != nil {
		s.cfg.metrics.LocationErrors.Increment(op)
	}
}

// DefaultClasses returns a copy of the built-in classes.
func (s *Sidebar) DefaultClasses() classes.Overrides {
	s.check()
	return classes.Defaults.Clone()
}

// Classes returns a copy of the global class overrides.
func (s *Sidebar) Classes() classes.Overrides {
	s.check()
	return s.cfg.classes.Clone()
}

// ItemClasses returns a copy of the class overrides of the item id.
func (s *Sidebar) ItemClasses(id string) (classes.Overrides, error) {
	s.check()
	item, ok := s.tree.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return item.Classes.Clone(), nil
}

// LinkProps returns the link attributes of item.
func (s *Sidebar) LinkProps(item *nav.Item) link.Props {
	s.check()
	return s.cfg.adapter.Props(item)
}

func (s *Sidebar) onGroupsChange(c expansion.Change) {
	if c.ID != "" && s.cfg.metrics != nil && s.cfg.metrics.GroupToggles != nil {
		state := "closed"
		if c.Expanded {
			state = "open"
		}
		s.cfg.metrics.GroupToggles.Increment(state)
	}

	s.emit(Event{Kind: EventGroups, Group: c.ID, Expanded: c.Expanded, Closed: c.Closed})
	s.save()
}
