package sidebar

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is the persisted part of the sidebar state.
type Snapshot struct {
	Collapsed      bool     `json:"collapsed"`
	ExpandedGroups []string `json:"expandedGroups"`
}

// Snapshot returns the state that would be persisted now.
func (s *Sidebar) Snapshot() Snapshot {
	s.check()
	s.mu.RLock()
	collapsed := s.collapsed
	s.mu.RUnlock()

	groups := s.groups.Expanded()
	if groups == nil {
		groups = []string{}
	}
	return Snapshot{Collapsed: collapsed, ExpandedGroups: groups}
}

// EncodeSnapshot serializes snap as a JSON object.
func EncodeSnapshot(snap Snapshot) (string, error) {
	if snap.ExpandedGroups == nil {
		snap.ExpandedGroups = []string{}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("error encoding sidebar snapshot: %w", err)
	}
	return string(b), nil
}

// SavedState is a decoded snapshot. Fields absent or of the wrong type in
// the stored document are nil.
type SavedState struct {
	Collapsed      *bool
	ExpandedGroups []string
	HasGroups      bool
}

// DecodeSnapshot parses a stored snapshot. Each field is applied only when
// it has the expected type; unknown fields are ignored.
func DecodeSnapshot(data string) (SavedState, error) {
	var saved SavedState

	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return saved, fmt.Errorf("error decoding sidebar snapshot: %w", err)
	}

	if raw, ok := fields["collapsed"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err == nil && string(raw) != "null" {
			saved.Collapsed = &v
		}
	}

	if raw, ok := fields["expandedGroups"]; ok && string(raw) != "null" {
		var v []string
		if err := json.Unmarshal(raw, &v); err == nil {
			if v == nil {
				v = []string{}
			}
			saved.ExpandedGroups = v
			saved.HasGroups = true
		}
	}

	return saved, nil
}

// load applies persisted state. It runs before the sidebar is shared.
func (s *Sidebar) load() {
	if s.cfg.store == nil || s.cfg.storageKey == "" {
		return
	}

	data, ok, err := s.storeGet()
	if err != nil {
		s.persistFailed("load", err)
		return
	}
	if !ok {
		return
	}

	saved, err := DecodeSnapshot(data)
	if err != nil {
		s.persistFailed("decode", err)
		return
	}

	if saved.Collapsed != nil {
		s.collapsed = *saved.Collapsed
	}
	if saved.HasGroups {
		s.groups.Replace(saved.ExpandedGroups)
	}

	s.cfg.logger.Debug("sidebar state loaded", "key", s.cfg.storageKey)
}

// save writes the current snapshot. Failures are logged and never surface.
func (s *Sidebar) save() {
	if s.cfg.store == nil || s.cfg.storageKey == "" {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	data, err := EncodeSnapshot(s.Snapshot())
	if err != nil {
		s.persistFailed("save", err)
		return
	}

	if err := s.storeSet(data); err != nil {
		s.persistFailed("save", err)
	}
}

func (s *Sidebar) storeGet() (data string, ok bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.persistTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("storage panic: %v", r)
		}
	}()
	return s.cfg.store.Get(ctx, s.cfg.storageKey)
}

func (s *Sidebar) storeSet(data string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.persistTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("storage panic: %v", r)
		}
	}()
	return s.cfg.store.Set(ctx, s.cfg.storageKey, data)
}

func (s *Sidebar) persistFailed(op string, err error) {
	s.cfg.logger.Warn("sidebar state persistence failed", "op", op, "key", s.cfg.storageKey, "error", err)
	if s.cfg.metrics != nil && s.cfg.metrics.PersistenceErrors != nil {
		s.cfg.metrics.PersistenceErrors.Increment(op)
	}
}
