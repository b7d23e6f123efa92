package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/sidebar"
	"github.com/mchmarny/sidenav/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
title: Admin
sidebar:
  collapsed: true
  showOneChild: deep
  defaultExpandedGroups: [admin]
  width: 280px
classes:
  linkActive: is-active
items:
  - id: home
    label: Home
    href: /
  - id: admin
    label: Admin
    children:
      - id: users
        label: Users
        to: /admin/users
        activeMatch: startsWith
      - id: user
        label: User
        to:
          path: /admin/user
          name: user
          params:
            id: 7
        activeMatch:
          pattern: "^/admin/user/\\d+$"
      - id: beta
        label: Beta
        href: /beta
        visible: false
        classes:
          linkActive: beta-active
storage:
  backend: file
  dir: /tmp/sidenav-test
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "sidenav.yaml", sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Admin", cfg.Title)
	assert.True(t, cfg.Sidebar.Collapsed)
	assert.Equal(t, []string{"admin"}, cfg.Sidebar.DefaultExpandedGroups)
	assert.Equal(t, "is-active", cfg.Classes["linkActive"])
	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/sidenav-test", cfg.Storage.Dir)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, server.DefaultPort, cfg.Server.Port)

	accordion, err := cfg.Sidebar.Accordion()
	require.NoError(t, err)
	assert.Equal(t, sidebar.AccordionDeep, accordion)

	items := cfg.NavItems()
	require.Len(t, items, 2)
	admin := items[1]
	require.Len(t, admin.Children, 3)

	users := admin.Children[0]
	require.NotNil(t, users.To)
	assert.Equal(t, "/admin/users", users.To.Path)
	assert.Equal(t, "startsWith", users.ActiveMatch.String())

	user := admin.Children[1]
	require.NotNil(t, user.To)
	assert.Equal(t, "user", user.To.Name)
	assert.Equal(t, "7", user.To.Params["id"])
	src, ok := user.ActiveMatch.PatternSource()
	require.True(t, ok)
	assert.Equal(t, `^/admin/user/\d+$`, src)

	beta := admin.Children[2]
	assert.True(t, beta.Hidden)
	assert.Equal(t, "beta-active", beta.Classes["linkActive"])
}

func TestOptionsBuildSidebar(t *testing.T) {
	cfg, err := Load(writeFile(t, "sidenav.yaml", sampleYAML))
	require.NoError(t, err)

	opts := append(cfg.Options(), sidebar.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	sb, err := sidebar.New(cfg.NavItems(), opts...)
	require.NoError(t, err)
	t.Cleanup(sb.Close)

	assert.True(t, sb.IsCollapsed())
	assert.Equal(t, []string{"admin"}, sb.ExpandedGroups())
	assert.Equal(t, sidebar.DefaultCollapsedWidth, sb.EffectiveWidth())
	assert.Equal(t, "is-active", sb.Classes()["linkActive"])

	sb.Expand()
	assert.Equal(t, "280px", sb.EffectiveWidth())

	sb.SetCurrentPath("/admin/user/42")
	user, _ := sb.Tree().Find("user")
	assert.True(t, sb.IsItemActive(user))
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "sidenav.toml", `
title = "Docs"

[sidebar]
showOneChild = true

[[items]]
id = "intro"
label = "Intro"
href = "/intro"

[[items]]
id = "guides"
label = "Guides"

[[items.children]]
id = "setup"
label = "Setup"
href = "/guides/setup"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Docs", cfg.Title)
	accordion, err := cfg.Sidebar.Accordion()
	require.NoError(t, err)
	assert.Equal(t, sidebar.AccordionSiblings, accordion)

	items := cfg.NavItems()
	require.Len(t, items, 2)
	require.Len(t, items[1].Children, 1)
	assert.Equal(t, "setup", items[1].Children[0].ID)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SIDENAV_SERVER_PORT", "8181")
	t.Setenv("SIDENAV_STORAGE_BACKEND", "sqlite")
	t.Setenv("SIDENAV_SIDEBAR_SHOWONECHILD", "true")

	cfg, err := Load(writeFile(t, "sidenav.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, storage.BackendSQLite, cfg.Storage.Backend)
	accordion, err := cfg.Sidebar.Accordion()
	require.NoError(t, err)
	assert.Equal(t, sidebar.AccordionSiblings, accordion)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, server.DefaultPort, cfg.Server.Port)
	assert.Equal(t, server.DefaultReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.Server.MaxHeaderBytes)
	assert.False(t, cfg.Server.TLS.Enabled())
	assert.Equal(t, storage.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Items)
	assert.ErrorIs(t, cfg.Validate(), ErrNoItems)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown strategy",
			yaml: "items:\n  - {id: a, href: /a, activeMatch: fuzzy}\n",
			want: `unknown match strategy "fuzzy"`,
		},
		{
			name: "invalid pattern",
			yaml: "items:\n  - id: a\n    href: /a\n    activeMatch: {pattern: \"[\"}\n",
			want: `invalid pattern "["`,
		},
		{
			name: "duplicate ids",
			yaml: "items:\n  - {id: a, href: /a}\n  - {id: a, href: /b}\n",
			want: "duplicate item id",
		},
		{
			name: "bad accordion",
			yaml: "sidebar: {showOneChild: sometimes}\nitems:\n  - {id: a, href: /a}\n",
			want: "unknown accordion mode",
		},
		{
			name: "bad storage",
			yaml: "storage: {backend: etcd}\nitems:\n  - {id: a, href: /a}\n",
			want: "unknown storage backend",
		},
		{
			name: "bad visible",
			yaml: "items:\n  - {id: a, href: /a, visible: maybe}\n",
			want: "must be a boolean",
		},
		{
			name: "partial tls",
			yaml: "server: {tls: {certFile: cert.pem}}\nitems:\n  - {id: a, href: /a}\n",
			want: "needs both certFile and keyFile",
		},
		{
			name: "negative timeout",
			yaml: "server: {readTimeout: -1s}\nitems:\n  - {id: a, href: /a}\n",
			want: "server.readTimeout must not be negative",
		},
		{
			name: "bad route",
			yaml: "items:\n  - {id: a, to: [1, 2]}\n",
			want: "must be a path or a route table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, "sidenav.yaml", tt.yaml))
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInvalidPatternIsKept(t *testing.T) {
	cfg, err := Load(writeFile(t, "sidenav.yaml", "items:\n  - id: a\n    href: /a\n    activeMatch: {pattern: \"[\"}\n"))
	require.NoError(t, err)

	items := cfg.NavItems()
	require.Len(t, items, 1)
	src, ok := items[0].ActiveMatch.PatternSource()
	assert.True(t, ok)
	assert.Equal(t, "[", src)
}

func TestServerConfig(t *testing.T) {
	cfg, err := Load(writeFile(t, "sidenav.yaml", `
server:
  host: 127.0.0.1
  port: 8443
  readTimeout: 3s
  writeTimeout: 4s
  shutdownTimeout: 1m
  maxHeaderBytes: 4096
  tls:
    certFile: /etc/sidenav/cert.pem
    keyFile: /etc/sidenav/key.pem
items:
  - {id: a, href: /a}
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.Server
	assert.Equal(t, "127.0.0.1", s.Host)
	assert.Equal(t, 8443, s.Port)
	assert.Equal(t, 3*time.Second, s.ReadTimeout)
	assert.Equal(t, 4*time.Second, s.WriteTimeout)
	assert.Equal(t, server.DefaultIdleTimeout, s.IdleTimeout)
	assert.Equal(t, time.Minute, s.ShutdownTimeout)
	assert.Equal(t, 4096, s.MaxHeaderBytes)
	assert.True(t, s.TLS.Enabled())
	assert.Equal(t, "/etc/sidenav/key.pem", s.TLS.KeyFile)
	assert.Len(t, s.Options(), 8)

	s.TLS = TLSConfig{}
	assert.False(t, s.TLS.Enabled())
	assert.Len(t, s.Options(), 7)
}
