// Package expansion tracks which navigation groups are expanded.
package expansion

import (
	"slices"
	"sync"
)

// Change describes a single mutation of the store.
type Change struct {
	// Version is the store version after the mutation.
	Version uint64

	// ID is the toggled group, empty for Replace.
	ID string

	// Expanded is the new state of ID.
	Expanded bool

	// Closed lists groups closed as a side effect of opening ID.
	Closed []string

	// Groups is the full expanded set after the mutation.
	Groups []string
}

// Store is an ordered set of expanded group ids with a version counter.
// It is safe for concurrent use. Subscribers are called synchronously after
// every mutation, outside the store lock.
type Store struct {
	mu      sync.RWMutex
	ids     []string
	version uint64
	subs    map[int]func(Change)
	nextSub int
}

// New creates a store seeded with the given ids.
func New(seed ...string) *Store {
	s := &Store{subs: make(map[int]func(Change))}
	s.ids = dedup(seed)
	return s
}

// Toggle flips the state of id and returns the new state. When id is
// opened, the ids in closing are collapsed in the same mutation.
func (s *Store) Toggle(id string, closing ...string) bool {
	s.mu.Lock()

	var (
		expanded bool
		closed   []string
	)

	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	} else {
		for _, c := range closing {
			if c == id {
				continue
			}
			if j := slices.Index(s.ids, c); j >= 0 {
				s.ids = slices.Delete(s.ids, j, j+1)
				closed = append(closed, c)
			}
		}
		s.ids = append(s.ids, id)
		expanded = true
	}

	change := s.commit(id, expanded, closed)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, change)
	return expanded
}

// Replace swaps the expanded set.
func (s *Store) Replace(ids []string) {
	s.mu.Lock()
	s.ids = dedup(ids)
	change := s.commit("", false, nil)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, change)
}

// IsExpanded reports whether id is expanded.
func (s *Store) IsExpanded(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// Expanded returns the expanded ids in the order they were opened.
func (s *Store) Expanded() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Version returns the number of mutations applied so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
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

// commit must be called with the lock held.
func (s *Store) commit(id string, expanded bool, closed []string) Change {
	s.version++
	return Change{
		Version:  s.version,
		ID:       id,
		Expanded: expanded,
		Closed:   closed,
		Groups:   slices.Clone(s.ids),
	}
}

// subscribers must be called with the lock held.
func (s *Store) subscribers() []func(Change) {
	out := make([]func(Change), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(Change), c Change) {
	for _, fn := range subs {
		fn(c)
	}
}

func dedup(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
