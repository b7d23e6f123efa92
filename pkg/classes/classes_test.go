package classes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsHaveRequiredKeys(t *testing.T) {
	for _, key := range []string{
		KeyRoot, KeyRootExpanded, KeyRootCollapsed,
		KeyLink, KeyLinkActive, KeyLinkHover, KeyLinkDisabled,
		KeyIcon, KeyLabel, KeyBadge, KeyDropdown,
		KeyHeader, KeyFooter, KeyOverlay, KeyDrawer, KeyTooltip,
	} {
		_, ok := Defaults[key]
		assert.True(t, ok, "missing default for %q", key)
	}
	assert.NotEmpty(t, Defaults[KeyRoot])
	assert.NotEmpty(t, Defaults[KeyLink])
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		global Overrides
		item   Overrides
		want   string
	}{
		{"default", KeyLink, Overrides{}, Overrides{}, Defaults[KeyLink]},
		{"nil maps", KeyLink, nil, nil, Defaults[KeyLink]},
		{"global", KeyLink, Overrides{KeyLink: "g"}, Overrides{}, "g"},
		{"item wins", KeyLink, Overrides{KeyLink: "g"}, Overrides{KeyLink: "i"}, "i"},
		{"explicit global blank", KeyLink, Overrides{KeyLink: ""}, Overrides{}, ""},
		{"explicit item blank beats global", KeyLink, Overrides{KeyLink: "g"}, Overrides{KeyLink: ""}, ""},
		{"unknown key", "nonexistent", Overrides{}, Overrides{}, ""},
		{"unknown key from global", "custom", Overrides{"custom": "c"}, nil, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.key, tt.global, tt.item))
		})
	}
}

func TestMerge(t *testing.T) {
	assert.Equal(t, "a b c", Merge("a b", "b c", ""))
	assert.Equal(t, "class-a class-b", Merge("class-a", "", "class-b"))
	assert.Equal(t, "class-a class-b class-c", Merge("class-a class-b", "class-a class-c"))
	assert.Equal(t, "x y", Merge("  x\t\ny  "))
	assert.Equal(t, "", Merge())
	assert.Equal(t, "", Merge("", "   "))
}

func TestLink(t *testing.T) {
	t.Run("base", func(t *testing.T) {
		got := Link(LinkState{})
		assert.Contains(t, got, Defaults[KeyLink])
		assert.Contains(t, got, Defaults[KeyLinkHover])
		assert.Contains(t, got, Defaults[KeyLinkFocus])
		assert.NotContains(t, got, Defaults[KeyLinkActive])
		assert.NotContains(t, got, "pl-[calc")
	})

	t.Run("disabled beats active", func(t *testing.T) {
		got := Link(LinkState{Disabled: true, Active: true, AncestorOfActive: true})
		assert.Contains(t, got, Defaults[KeyLinkDisabled])
		assert.NotContains(t, got, Defaults[KeyLinkActive])
		assert.NotContains(t, got, Defaults[KeyLinkGroupActive])
	})

	t.Run("active beats ancestor", func(t *testing.T) {
		got := Link(LinkState{Active: true, AncestorOfActive: true})
		assert.Contains(t, got, Defaults[KeyLinkActive])
		assert.NotContains(t, got, Defaults[KeyLinkGroupActive])
	})

	t.Run("ancestor and open", func(t *testing.T) {
		got := Link(LinkState{AncestorOfActive: true, Open: true})
		assert.Contains(t, got, Defaults[KeyLinkGroupActive])
		assert.Contains(t, got, Defaults[KeyLinkOpen])
	})

	t.Run("active suppresses open", func(t *testing.T) {
		got := Link(LinkState{Active: true, Open: true, Global: Overrides{KeyLinkOpen: "is-open"}})
		assert.NotContains(t, got, "is-open")
	})

	t.Run("indent for nested levels", func(t *testing.T) {
		got := Link(LinkState{Level: 1})
		assert.True(t, strings.HasSuffix(got, Defaults[KeyIndent]))
	})

	t.Run("overrides", func(t *testing.T) {
		got := Link(LinkState{
			Active: true,
			Global: Overrides{KeyLink: "my-link", KeyLinkActive: "my-active", KeyLinkHover: "", KeyLinkFocus: ""},
		})
		assert.Equal(t, "my-link my-active", got)
	})

	t.Run("item overrides global", func(t *testing.T) {
		got := Link(LinkState{
			Global: Overrides{KeyLink: "g", KeyLinkHover: "", KeyLinkFocus: ""},
			Item:   Overrides{KeyLink: "i"},
		})
		assert.Equal(t, "i", got)
	})
}

func TestElementHelpers(t *testing.T) {
	assert.Equal(t, "relative extra", Item(nil, nil, "extra"))
	assert.Equal(t, Defaults[KeyDropdown], Dropdown(false, nil, nil))
	assert.Equal(t, Defaults[KeyDropdown]+" rotate-180", Dropdown(true, nil, nil))
	assert.True(t, strings.HasSuffix(Root(true, nil), "w-16"))
	assert.True(t, strings.HasSuffix(Root(false, nil), "w-64"))
	assert.Equal(t, "", Element(KeyHeader, nil, nil))
}

func TestStyle(t *testing.T) {
	assert.Equal(t, "--a: 1; --level: 2", Style(map[string]string{"--level": "2", "--a": "1"}))
	assert.Equal(t, "--level: 3", LevelStyle(3))
	assert.Contains(t, Style(DefaultCSSVars), "--sidebar-width: 256px")
}

func TestClone(t *testing.T) {
	o := Overrides{"a": "b"}
	c := o.Clone()
	c["a"] = "z"
	assert.Equal(t, "b", o["a"])
	assert.NotNil(t, Overrides(nil).Clone())
}
