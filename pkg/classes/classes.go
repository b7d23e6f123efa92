// Package classes resolves presentation class tokens through a three-tier
// cascade: built-in defaults, global overrides and per-item overrides.
//
// A key that is present in an override map wins even when its value is empty,
// which lets callers suppress a default class without replacing it.
package classes

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Overrides maps class keys to class strings.
type Overrides map[string]string

// Clone returns a copy of o. A nil map clones to an empty map.
func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	maps.Copy(out, o)
	return out
}

// Resolve returns the class string for key. The item map is consulted first,
// then the global map, then Defaults. Missing everywhere yields "".
func Resolve(key string, global, item Overrides) string {
	if v, ok := item[key]; ok {
		return v
	}
	if v, ok := global[key]; ok {
		return v
	}
	return Defaults[key]
}

// Merge joins class lists into a single string. Lists are split on
// whitespace, empty tokens are dropped and duplicates keep their first position.
func Merge(lists ...string) string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(lists))

	for _, list := range lists {
		for _, token := range strings.Fields(list) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}

	return strings.Join(out, " ")
}

// LinkState is the input to Link.
type LinkState struct {
	Active           bool
	AncestorOfActive bool
	Open             bool
	Disabled         bool
	Level            int
	Global           Overrides
	Item             Overrides
}

// Link composes the class string of a link element.
// Hover and focus classes are always present; the browser applies them.
// Disabled suppresses the active and ancestor modifiers, and an active link
// never carries the open modifier.
func Link(s LinkState) string {
	r := func(key string) string { return Resolve(key, s.Global, s.Item) }

	parts := []string{r(KeyLink), r(KeyLinkHover), r(KeyLinkFocus)}

	switch {
	case s.Disabled:
		parts = append(parts, r(KeyLinkDisabled))
	case s.Active:
		parts = append(parts, r(KeyLinkActive))
	case s.AncestorOfActive:
		parts = append(parts, r(KeyLinkGroupActive))
	}

	if s.Open && !s.Active {
		parts = append(parts, r(KeyLinkOpen))
	}

	if s.Level > 0 {
		parts = append(parts, r(KeyIndent))
	}

	return Merge(parts...)
}

// Item composes the class string of a list item element.
func Item(global, item Overrides, extra string) string {
	return Merge(Resolve(KeyItem, global, item), extra)
}

// Dropdown composes the class string of a group's dropdown arrow.
func Dropdown(open bool, global, item Overrides) string {
	base := Resolve(KeyDropdown, global, item)
	if !open {
		return Merge(base)
	}
	return Merge(base, Resolve(KeyDropdownOpen, global, item))
}

// Root composes the class string of the sidebar container.
func Root(collapsed bool, global Overrides) string {
	mod := KeyRootExpanded
	if collapsed {
		mod = KeyRootCollapsed
	}
	return Merge(Resolve(KeyRoot, global, nil), Resolve(mod, global, nil))
}

// Element resolves a single key and normalizes its whitespace.
func Element(key string, global, item Overrides) string {
	return Merge(Resolve(key, global, item))
}

// Style renders CSS custom properties as an inline style, sorted by name.
func Style(vars map[string]string) string {
	names := slices.Sorted(maps.Keys(vars))
	decls := make([]string, 0, len(names))
	for _, name := range names {
		decls = append(decls, fmt.Sprintf("%s: %s", name, vars[name]))
	}
	return strings.Join(decls, "; ")
}

// LevelStyle renders the nesting level custom property used by the indent class.
func LevelStyle(level int) string {
	return fmt.Sprintf("--level: %d", level)
}
