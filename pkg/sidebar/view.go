package sidebar

import (
	"maps"

	"github.com/mchmarny/sidenav/pkg/classes"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/nav"
)

// RootView is the render-ready description of the whole sidebar.
type RootView struct {
	Collapsed     bool        `json:"collapsed" yaml:"collapsed" toml:"collapsed"`
	HoverExpanded bool        `json:"hoverExpanded" yaml:"hoverExpanded" toml:"hoverExpanded"`
	MobileOpen    bool        `json:"mobileOpen" yaml:"mobileOpen" toml:"mobileOpen"`
	Width         string      `json:"width" yaml:"width" toml:"width"`
	CurrentPath   string      `json:"currentPath" yaml:"currentPath" toml:"currentPath"`
	ActivePath    []string    `json:"activePath,omitempty" yaml:"activePath,omitempty" toml:"activePath,omitempty"`
	Style         string      `json:"style" yaml:"style" toml:"style"`
	Classes       RootClasses `json:"classes" yaml:"classes" toml:"classes"`
	Items         []ItemView  `json:"items" yaml:"items" toml:"items"`
}

// RootClasses are the resolved classes of the container elements.
type RootClasses struct {
	Root    string `json:"root" yaml:"root" toml:"root"`
	Wrapper string `json:"wrapper" yaml:"wrapper" toml:"wrapper"`
	Nav     string `json:"nav" yaml:"nav" toml:"nav"`
	Menu    string `json:"menu" yaml:"menu" toml:"menu"`
	Header  string `json:"header" yaml:"header" toml:"header"`
	Footer  string `json:"footer" yaml:"footer" toml:"footer"`
	Overlay string `json:"overlay" yaml:"overlay" toml:"overlay"`
	Drawer  string `json:"drawer" yaml:"drawer" toml:"drawer"`
	Toggle  string `json:"toggle" yaml:"toggle" toml:"toggle"`
}

// ItemView is the render-ready description of one item.
type ItemView struct {
	ID               string      `json:"id" yaml:"id" toml:"id"`
	Label            string      `json:"label" yaml:"label" toml:"label"`
	Icon             string      `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Badge            string      `json:"badge,omitempty" yaml:"badge,omitempty" toml:"badge,omitempty"`
	Level            int         `json:"level" yaml:"level" toml:"level"`
	Active           bool        `json:"active" yaml:"active" toml:"active"`
	AncestorOfActive bool        `json:"ancestorOfActive" yaml:"ancestorOfActive" toml:"ancestorOfActive"`
	Expanded         bool        `json:"expanded" yaml:"expanded" toml:"expanded"`
	Disabled         bool        `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	External         bool        `json:"external,omitempty" yaml:"external,omitempty" toml:"external,omitempty"`
	HasChildren      bool        `json:"hasChildren" yaml:"hasChildren" toml:"hasChildren"`
	Style            string      `json:"style" yaml:"style" toml:"style"`
	Link             link.Props  `json:"link" yaml:"link" toml:"link"`
	Classes          ItemClasses `json:"classes" yaml:"classes" toml:"classes"`
	Children         []ItemView  `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// ItemClasses are the resolved classes of an item's elements.
type ItemClasses struct {
	Item         string `json:"item" yaml:"item" toml:"item"`
	Link         string `json:"link" yaml:"link" toml:"link"`
	Icon         string `json:"icon" yaml:"icon" toml:"icon"`
	Label        string `json:"label" yaml:"label" toml:"label"`
	Badge        string `json:"badge" yaml:"badge" toml:"badge"`
	Tooltip      string `json:"tooltip" yaml:"tooltip" toml:"tooltip"`
	Dropdown     string `json:"dropdown,omitempty" yaml:"dropdown,omitempty" toml:"dropdown,omitempty"`
	Group        string `json:"group,omitempty" yaml:"group,omitempty" toml:"group,omitempty"`
	GroupContent string `json:"groupContent,omitempty" yaml:"groupContent,omitempty" toml:"groupContent,omitempty"`
}

// View renders the sidebar at the current location.
func (s *Sidebar) View() RootView {
	s.check()
	path, route := s.location()
	return s.ViewAt(path, route)
}

// ViewAt renders the sidebar as if the location were path and route.
// The sidebar state is not changed.
func (s *Sidebar) ViewAt(path string, route *nav.RouteInfo) RootView {
	s.check()
	st := s.State()
	collapsed := st.Collapsed && !st.HoverExpanded
	global := s.cfg.classes

	vars := maps.Clone(classes.DefaultCSSVars)
	vars["--sidebar-width"] = s.cfg.width
	vars["--sidebar-collapsed-width"] = s.cfg.collapsedWidth

	b := viewBuilder{s: s, path: path, route: route, collapsed: collapsed}

	return RootView{
		Collapsed:     collapsed,
		HoverExpanded: st.HoverExpanded,
		MobileOpen:    st.MobileOpen,
		Width:         s.EffectiveWidth(),
		CurrentPath:   path,
		ActivePath:    s.tree.ActivePath(s.matcher, path, route),
		Style:         classes.Style(vars),
		Classes: RootClasses{
			Root:    classes.Root(collapsed, global),
			Wrapper: classes.Element(classes.KeyWrapper, global, nil),
			Nav:     classes.Element(classes.KeyNav, global, nil),
			Menu:    classes.Element(classes.KeyMenu, global, nil),
			Header:  classes.Element(classes.KeyHeader, global, nil),
			Footer:  classes.Element(classes.KeyFooter, global, nil),
			Overlay: classes.Element(classes.KeyOverlay, global, nil),
			Drawer:  classes.Element(classes.KeyDrawer, global, nil),
			Toggle:  classes.Element(classes.KeyToggle, global, nil),
		},
		Items: b.items(s.tree.Roots(), 0),
	}
}

type viewBuilder struct {
	s         *Sidebar
	path      string
	route     *nav.RouteInfo
	collapsed bool
}

func (b viewBuilder) items(items []*nav.Item, level int) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		if item == nil || !item.IsVisible() {
			continue
		}
		if b.collapsed && item.HiddenOnCollapse {
			continue
		}
		out = append(out, b.item(item, level))
	}
	return out
}

func (b viewBuilder) item(item *nav.Item, level int) ItemView {
	s := b.s
	id := s.itemID(item)
	global := s.cfg.classes

	active := s.matcher.IsActive(item, b.path, b.route)
	ancestor := s.matcher.IsAncestorOfActive(item, b.path, b.route)
	group := item.HasChildren()
	open := group && s.groups.IsExpanded(id)

	v := ItemView{
		ID:               id,
		Label:            item.Label,
		Icon:             item.Icon,
		Badge:            item.Badge,
		Level:            level,
		Active:           active,
		AncestorOfActive: ancestor,
		Expanded:         open,
		Disabled:         item.Disabled,
		External:         item.External,
		HasChildren:      group,
		Style:            classes.LevelStyle(level),
		Link:             s.cfg.adapter.Props(item),
		Classes: ItemClasses{
			Item: classes.Item(global, item.Classes, item.Class),
			Link: classes.Link(classes.LinkState{
				Active:           active,
				AncestorOfActive: ancestor,
				Open:             open,
				Disabled:         item.Disabled,
				Level:            level,
				Global:           global,
				Item:             item.Classes,
			}),
			Icon:    classes.Element(classes.KeyIcon, global, item.Classes),
			Label:   classes.Element(classes.KeyLabel, global, item.Classes),
			Badge:   classes.Element(classes.KeyBadge, global, item.Classes),
			Tooltip: classes.Element(classes.KeyTooltip, global, item.Classes),
		},
	}

	if group {
		v.Classes.Dropdown = classes.Dropdown(open, global, item.Classes)
		v.Classes.Group = classes.Element(classes.KeyGroup, global, item.Classes)
		v.Classes.GroupContent = classes.Element(classes.KeyGroupContent, global, item.Classes)
		v.Children = b.items(item.Children, level+1)
	}

	return v
}
