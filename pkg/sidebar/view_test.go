package sidebar

import (
	"testing"

	"github.com/mchmarny/sidenav/pkg/classes"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findView(items []ItemView, id string) (ItemView, bool) {
	for _, v := range items {
		if v.ID == id {
			return v, true
		}
		if found, ok := findView(v.Children, id); ok {
			return found, true
		}
	}
	return ItemView{}, false
}

func viewIDs(items []ItemView) []string {
	ids := make([]string, 0, len(items))
	for _, v := range items {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestView(t *testing.T) {
	s := newTestSidebar(t, WithInitialPath("/admin/users"), WithDefaultExpandedGroups("admin"))

	v := s.View()
	assert.False(t, v.Collapsed)
	assert.Equal(t, DefaultWidth, v.Width)
	assert.Equal(t, "/admin/users", v.CurrentPath)
	assert.Equal(t, []string{"admin", "users"}, v.ActivePath)
	assert.Contains(t, v.Classes.Root, "w-64")
	assert.Contains(t, v.Style, "--sidebar-width: 256px")
	assert.Equal(t, []string{"home", "admin", "reports", "docs", "compact"}, viewIDs(v.Items))

	admin, ok := findView(v.Items, "admin")
	require.True(t, ok)
	assert.True(t, admin.HasChildren)
	assert.True(t, admin.Expanded)
	assert.True(t, admin.AncestorOfActive)
	assert.False(t, admin.Active)
	assert.Contains(t, admin.Classes.Link, classes.Defaults[classes.KeyLinkGroupActive])
	assert.Contains(t, admin.Classes.Dropdown, "rotate-180")
	assert.NotEmpty(t, admin.Classes.GroupContent)
	require.Len(t, admin.Children, 2)

	users, ok := findView(v.Items, "users")
	require.True(t, ok)
	assert.True(t, users.Active)
	assert.Equal(t, 1, users.Level)
	assert.Equal(t, "--level: 1", users.Style)
	assert.Contains(t, users.Classes.Link, "bg-blue-600")
	assert.Contains(t, users.Classes.Link, classes.Defaults[classes.KeyIndent])
	assert.Empty(t, users.Classes.Dropdown)
	assert.Equal(t, "/admin/users", users.Link.Href)

	settings, ok := findView(v.Items, "settings")
	require.True(t, ok)
	assert.True(t, settings.Disabled)
	assert.Contains(t, settings.Classes.Link, "opacity-50")
	assert.True(t, settings.Link.Disabled)

	docs, ok := findView(v.Items, "docs")
	require.True(t, ok)
	assert.False(t, docs.Active)
	assert.Equal(t, "_blank", docs.Link.Target)

	reports, ok := findView(v.Items, "reports")
	require.True(t, ok)
	assert.False(t, reports.Expanded)
	assert.NotContains(t, reports.Classes.Dropdown, "rotate-180")
}

func TestViewCollapsed(t *testing.T) {
	s := newTestSidebar(t, WithCollapsed(true), WithExpandOnHover(true))

	v := s.View()
	assert.True(t, v.Collapsed)
	assert.Equal(t, DefaultCollapsedWidth, v.Width)
	assert.Contains(t, v.Classes.Root, "w-16")
	assert.NotContains(t, viewIDs(v.Items), "compact")

	s.SetHoverExpanded(true)
	v = s.View()
	assert.False(t, v.Collapsed)
	assert.True(t, v.HoverExpanded)
	assert.Contains(t, viewIDs(v.Items), "compact")
}

func TestViewAt(t *testing.T) {
	s := newTestSidebar(t, WithInitialPath("/admin/users"))

	v := s.ViewAt("/reports/daily", nil)
	assert.Equal(t, []string{"reports", "daily"}, v.ActivePath)
	assert.Equal(t, "/admin/users", s.CurrentPath())

	reports, ok := findView(v.Items, "reports")
	require.True(t, ok)
	assert.True(t, reports.AncestorOfActive)
}

func TestViewOverrides(t *testing.T) {
	s := newTestSidebar(t,
		WithInitialPath("/admin/users"),
		WithClasses(classes.Overrides{classes.KeyLinkActive: "is-active", classes.KeyRoot: "sidebar"}),
		WithLinkMode(link.ModeRouter))

	v := s.View()
	assert.Equal(t, "sidebar w-64", v.Classes.Root)

	users, ok := findView(v.Items, "users")
	require.True(t, ok)
	assert.Contains(t, users.Classes.Link, "is-active")
	assert.NotContains(t, users.Classes.Link, "bg-blue-600")
	require.NotNil(t, users.Link.To)
	assert.Equal(t, "/admin/users", users.Link.To.Path)
	assert.Empty(t, users.Link.Href)
}
