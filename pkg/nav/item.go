package nav

import "github.com/mchmarny/sidenav/pkg/classes"

// Item represents a single navigation entry, which may contain child entries.
// Items are owned by the caller and are never modified by this module.
type Item struct {
	// ID is the unique identifier of the item within its tree.
	ID string `json:"id"`

	// Label is the display text of the item.
	Label string `json:"label"`

	// Icon is an optional icon reference passed through to the rendering layer.
	Icon string `json:"icon,omitempty"`

	// Badge is optional badge text passed through to the rendering layer.
	Badge string `json:"badge,omitempty"`

	// Class is an extra class appended to the list item element.
	Class string `json:"class,omitempty"`

	// Href is a relative path or an absolute http(s) URL.
	Href string `json:"href,omitempty"`

	// To is a structured route target, used when Href is empty.
	To *Route `json:"to,omitempty"`

	// Children are the nested items of this item. Empty means leaf.
	Children []*Item `json:"children,omitempty"`

	// Disabled items are never active and cannot be activated.
	Disabled bool `json:"disabled,omitempty"`

	// External items leave the application and are never active.
	External bool `json:"external,omitempty"`

	// HiddenOnCollapse hides the item while the sidebar is collapsed.
	HiddenOnCollapse bool `json:"hiddenOnCollapse,omitempty"`

	// Hidden hides the item unless VisibleIf is set.
	Hidden bool `json:"hidden,omitempty"`

	// VisibleIf decides visibility at evaluation time and takes precedence over Hidden.
	VisibleIf func(item *Item) bool `json:"-"`

	// ActiveMatch overrides the default matching strategy.
	ActiveMatch Strategy `json:"-"`

	// Classes are per-item class overrides.
	Classes classes.Overrides `json:"classes,omitempty"`

	// LinkMode overrides the sidebar link mode for this item.
	LinkMode string `json:"linkMode,omitempty"`

	// Attrs are extra link attributes merged by the link adapter.
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Route is a structured navigation target.
type Route struct {
	Path   string            `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" mapstructure:"path"`
	Name   string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty" mapstructure:"params"`
}

// RouteInfo carries route details supplied by the current location provider.
type RouteInfo struct {
	Name    string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	PageURL string            `json:"pageUrl,omitempty" yaml:"pageUrl,omitempty" toml:"pageUrl,omitempty"`
}

// MatchContext is passed to custom match predicates.
type MatchContext struct {
	Item        *Item
	CurrentPath string
	Route       *RouteInfo
}

// HasChildren reports whether the item is a group.
func (i *Item) HasChildren() bool {
	return i != nil && len(i.Children) > 0
}

// IsVisible evaluates the item's visibility.
func (i *Item) IsVisible() bool {
	if i == nil {
		return false
	}
	if i.VisibleIf != nil {
		return i.VisibleIf(i)
	}
	return !i.Hidden
}
