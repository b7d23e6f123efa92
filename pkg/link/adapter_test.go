package link

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mchmarny/sidenav/pkg/nav"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		item *nav.Item
		mode Mode
		want Props
	}{
		{"anchor href", &nav.Item{Href: "/"}, ModeAnchor, Props{Href: "/"}},
		{"anchor from route", &nav.Item{To: &nav.Route{Path: "/users"}}, ModeAnchor, Props{Href: "/users"}},
		{"router route", &nav.Item{To: &nav.Route{Name: "users"}}, ModeRouter, Props{To: &nav.Route{Name: "users"}}},
		{"router from href", &nav.Item{Href: "/users"}, ModeRouter, Props{To: &nav.Route{Path: "/users"}}},
		{"inertia href", &nav.Item{Href: "/users"}, ModeInertia, Props{Href: "/users"}},
		{"item mode wins", &nav.Item{Href: "/users", LinkMode: "router"}, ModeAnchor, Props{To: &nav.Route{Path: "/users"}}},
		{
			"external",
			&nav.Item{Href: "https://docs.example.com", External: true},
			ModeRouter,
			Props{Href: "https://docs.example.com", Target: "_blank", Rel: "noopener noreferrer"},
		},
		{"disabled", &nav.Item{Href: "/soon", Disabled: true}, ModeAnchor, Props{Disabled: true}},
		{
			"attrs",
			&nav.Item{Href: "/a", Attrs: map[string]string{"data-id": "a"}},
			ModeAnchor,
			Props{Href: "/a", Attrs: map[string]string{"data-id": "a"}},
		},
		{"nil", nil, ModeAnchor, Props{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.item, tt.mode))
		})
	}
}

func TestForMode(t *testing.T) {
	assert.IsType(t, Anchor{}, ForMode(ModeAnchor))
	assert.Equal(t, Props{To: &nav.Route{Path: "/x"}}, ForMode(ModeRouter).Props(&nav.Item{Href: "/x"}))
	assert.Equal(t, ModeRouter, ParseMode(" Router "))
	assert.Equal(t, ModeAnchor, ParseMode("unknown"))
}
