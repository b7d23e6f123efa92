// Package link turns navigation items into link targets for the rendering layer.
package link

import (
	"maps"
	"strings"

	"github.com/mchmarny/sidenav/pkg/nav"
)

// Mode selects how links are rendered.
type Mode string

const (
	// ModeAnchor renders plain anchors with an href.
	ModeAnchor Mode = "a"

	// ModeRouter renders client-side router links with a route target.
	ModeRouter Mode = "router"

	// ModeInertia renders server-driven SPA links with an href.
	ModeInertia Mode = "inertia"
)

// ParseMode reads a mode name. Unknown and empty names select ModeAnchor.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRouter:
		return ModeRouter
	case ModeInertia:
		return ModeInertia
	default:
		return ModeAnchor
	}
}

// Props are the attributes of a rendered link.
type Props struct {
	Href     string            `json:"href,omitempty" yaml:"href,omitempty" toml:"href,omitempty"`
	To       *nav.Route        `json:"to,omitempty" yaml:"to,omitempty" toml:"to,omitempty"`
	Target   string            `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Rel      string            `json:"rel,omitempty" yaml:"rel,omitempty" toml:"rel,omitempty"`
	Disabled bool              `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" toml:"attrs,omitempty"`
}

// Adapter resolves the link props of an item.
type Adapter interface {
	Props(item *nav.Item) Props
}

// AdapterFunc adapts a function to Adapter.
type AdapterFunc func(item *nav.Item) Props

func (f AdapterFunc) Props(item *nav.Item) Props { return f(item) }

// Anchor is the default adapter. Items may switch to another mode with LinkMode.
type Anchor struct{}

func (Anchor) Props(item *nav.Item) Props {
	return Resolve(item, ModeAnchor)
}

// ForMode returns an adapter that renders links in mode.
func ForMode(mode Mode) Adapter {
	if mode == ModeAnchor || mode == "" {
		return Anchor{}
	}
	return AdapterFunc(func(item *nav.Item) Props { return Resolve(item, mode) })
}

// Resolve computes the link props of item in mode. Disabled items get no
// target and external items open in a new tab.
func Resolve(item *nav.Item, mode Mode) Props {
	var p Props
	if item == nil {
		return p
	}

	switch {
	case item.Disabled:
		p.Disabled = true
	case item.External:
		p.Href = item.Href
		p.Target = "_blank"
		p.Rel = "noopener noreferrer"
	default:
		if item.LinkMode != "" {
			mode = ParseMode(item.LinkMode)
		}
		switch mode {
		case ModeRouter:
			p.To = item.To
			if p.To == nil && item.Href != "" {
				p.To = &nav.Route{Path: item.Href}
			}
		default:
			p.Href = item.Href
			if p.Href == "" && item.To != nil {
				p.Href = item.To.Path
			}
		}
	}

	if len(item.Attrs) > 0 {
		p.Attrs = maps.Clone(item.Attrs)
	}

	return p
}
