// Package location supplies the current path to the sidebar.
package location

import (
	"sync"

	"github.com/mchmarny/sidenav/pkg/nav"
)

// Provider exposes the current path and notifies subscribers when it changes.
type Provider interface {
	// Path returns the current path.
	Path() string

	// Subscribe registers fn for path changes and returns a function that removes it.
	Subscribe(fn func(path string)) (cancel func())
}

// RouteProvider is implemented by providers that know the current route.
type RouteProvider interface {
	Route() *nav.RouteInfo
}

// Static is a settable Provider. It is safe for concurrent use.
type Static struct {
	mu      sync.RWMutex
	path    string
	route   *nav.RouteInfo
	subs    map[int]func(string)
	nextSub int
}

// NewStatic creates a provider positioned at path.
func NewStatic(path string) *Static {
	return &Static{path: path, subs: make(map[int]func(string))}
}

// Path returns the current path.
func (s *Static) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Route returns the route details of the last NavigateRoute, if any.
func (s *Static) Route() *nav.RouteInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.route
}

// Navigate moves to path and notifies subscribers.
func (s *Static) Navigate(path string) {
	s.NavigateRoute(path, nil)
}

// NavigateRoute moves to path with route details and notifies subscribers.
func (s *Static) NavigateRoute(path string, route *nav.RouteInfo) {
	s.mu.Lock()
	s.path = path
	s.route = route
	subs := make([]func(string), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(path)
	}
}

// Subscribe registers fn for path changes and returns a function that removes it.
func (s *Static) Subscribe(fn func(path string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
