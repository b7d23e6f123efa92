package sidebar

import (
	"fmt"

	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/nav"
)

// EventKind names the part of the state that changed.
type EventKind string

const (
	EventCollapsed EventKind = "collapsed"
	EventHover     EventKind = "hover"
	EventMobile    EventKind = "mobile"
	EventGroups    EventKind = "groups"
	EventPath      EventKind = "path"
)

// Event is delivered to listeners after every state change.
type Event struct {
	Kind EventKind `json:"kind"`

	// Group, Expanded and Closed are set for EventGroups.
	Group    string   `json:"group,omitempty"`
	Expanded bool     `json:"expanded,omitempty"`
	Closed   []string `json:"closed,omitempty"`

	// State is the sidebar state after the change.
	State State `json:"state"`
}

// Listener receives state change events. Listeners are called synchronously
// and must not block.
type Listener func(Event)

// Subscribe registers l and returns a function that removes it.
func (s *Sidebar) Subscribe(l Listener) (cancel func()) {
	s.check()
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Sidebar) emit(e Event) {
	s.mu.RLock()
	e.State = s.stateLocked()
	ls := make([]Listener, 0, len(s.listeners))
	for i := 0; i < s.nextListener; i++ {
		if l, ok := s.listeners[i]; ok {
			ls = append(ls, l)
		}
	}
	s.mu.RUnlock()

	if s.cfg.metrics != nil && s.cfg.metrics.StateChanges != nil {
		s.cfg.metrics.StateChanges.Increment(string(e.Kind))
	}

	for _, l := range ls {
		s.notify(l, e)
	}
}

func (s *Sidebar) notify(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			s.cfg.logger.Error("sidebar listener panicked", "event", e.Kind, "panic", r)
		}
	}()
	l(e)
}

// Action is the outcome of activating an item.
type Action string

const (
	// ActionNone means the item is disabled and nothing happened.
	ActionNone Action = "none"

	// ActionToggled means the item is a group and its expanded state flipped.
	ActionToggled Action = "toggled"

	// ActionNavigated means the item is a link and the location moved to it.
	ActionNavigated Action = "navigated"
)

// Activation describes what Activate did.
type Activation struct {
	ID       string     `json:"id"`
	Action   Action     `json:"action"`
	Expanded bool       `json:"expanded,omitempty"`
	Link     link.Props `json:"link"`
}

// Navigator is implemented by location providers that can move to a path.
type Navigator interface {
	Navigate(path string)
}

// Activate performs the click behavior of the item id. Groups toggle,
// links navigate and close the mobile drawer, disabled items do nothing.
// External links only close the mobile drawer; the caller opens them.
func (s *Sidebar) Activate(id string) (Activation, error) {
	s.check()
	item, ok := s.tree.Find(id)
	if !ok {
		return Activation{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}

	a := Activation{ID: id, Link: s.cfg.adapter.Props(item)}

	switch {
	case item.Disabled:
		a.Action = ActionNone
	case item.HasChildren():
		a.Action = ActionToggled
		a.Expanded = s.ToggleGroup(id)
	default:
		a.Action = ActionNavigated
		s.CloseMobile()
		if !item.External {
			if path, ok := nav.ResolvePath(item); ok {
				s.navigate(path)
			}
		}
	}

	s.cfg.logger.Debug("item activated", "id", id, "action", a.Action)
	return a, nil
}

func (s *Sidebar) navigate(path string) {
	if n, ok := s.cfg.location.(Navigator); ok {
		n.Navigate(path)
		return
	}
	s.SetCurrentPath(path)
}
