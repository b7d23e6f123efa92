// Package config loads a sidebar definition and service settings from a
// YAML, TOML or JSON file with SIDENAV_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/mchmarny/sidenav/pkg/classes"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/nav"
	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/sidebar"
	"github.com/mchmarny/sidenav/pkg/storage"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. SIDENAV_SERVER_PORT.
	EnvPrefix = "SIDENAV"

	// DefaultName is the config file name searched for when no path is given.
	DefaultName = "sidenav"

	// DefaultStorageKey is the key sidebar state is persisted under.
	DefaultStorageKey = "sidenav-state"
)

var (
	// ErrNoItems is returned by Validate when the sidebar has no items.
	ErrNoItems = errors.New("sidebar has no items")

	// ErrInvalid wraps every other validation failure.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the root of a sidebar configuration file.
type Config struct {
	Title   string            `mapstructure:"title"`
	Sidebar SidebarConfig     `mapstructure:"sidebar"`
	Classes map[string]string `mapstructure:"classes"`
	Items   []ItemConfig      `mapstructure:"items"`
	Storage storage.Config    `mapstructure:"storage"`
	Server  ServerConfig      `mapstructure:"server"`
	Log     LogConfig         `mapstructure:"log"`
}

// SidebarConfig holds the sidebar behavior settings.
type SidebarConfig struct {
	Collapsed             bool     `mapstructure:"collapsed"`
	MobileOpen            bool     `mapstructure:"mobileOpen"`
	DefaultExpandedGroups []string `mapstructure:"defaultExpandedGroups"`
	ExpandOnHover         bool     `mapstructure:"expandOnHover"`
	Width                 string   `mapstructure:"width"`
	CollapsedWidth        string   `mapstructure:"collapsedWidth"`
	LinkMode              string   `mapstructure:"linkMode"`
	InitialPath           string   `mapstructure:"initialPath"`

	// ShowOneChild is false, true (siblings) or "deep".
	ShowOneChild any `mapstructure:"showOneChild"`
}

// ItemConfig is the file form of a navigation item.
type ItemConfig struct {
	ID               string            `mapstructure:"id"`
	Label            string            `mapstructure:"label"`
	Icon             string            `mapstructure:"icon"`
	Badge            string            `mapstructure:"badge"`
	Class            string            `mapstructure:"class"`
	Href             string            `mapstructure:"href"`
	Disabled         bool              `mapstructure:"disabled"`
	External         bool              `mapstructure:"external"`
	HiddenOnCollapse bool              `mapstructure:"hiddenOnCollapse"`
	Classes          map[string]string `mapstructure:"classes"`
	LinkMode         string            `mapstructure:"linkMode"`
	Attrs            map[string]string `mapstructure:"attrs"`
	Children         []ItemConfig      `mapstructure:"children"`

	// To is a path string or a {path, name, params} table.
	To any `mapstructure:"to"`

	// ActiveMatch is "exact", "startsWith" or a {pattern: "..."} table.
	ActiveMatch any `mapstructure:"activeMatch"`

	// Visible is a boolean; absent means visible.
	Visible any `mapstructure:"visible"`
}

// ServerConfig holds the API server settings. Timeouts accept duration
// strings such as "10s".
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout     time.Duration `mapstructure:"idleTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	MaxHeaderBytes  int           `mapstructure:"maxHeaderBytes"`
	TLS             TLSConfig     `mapstructure:"tls"`
}

// TLSConfig enables HTTPS when both files are set.
type TLSConfig struct {
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// Enabled reports whether both the certificate and the key are configured.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// Options returns the server options described by the file.
func (s ServerConfig) Options() []server.Option {
	opts := []server.Option{
		server.WithHost(s.Host),
		server.WithPort(s.Port),
		server.WithReadTimeout(s.ReadTimeout),
		server.WithWriteTimeout(s.WriteTimeout),
		server.WithIdleTimeout(s.IdleTimeout),
		server.WithShutdownTimeout(s.ShutdownTimeout),
		server.WithMaxHeaderBytes(s.MaxHeaderBytes),
	}
	if s.TLS.Enabled() {
		opts = append(opts, server.WithTLS(server.TLSConfig{
			CertFile: s.TLS.CertFile,
			KeyFile:  s.TLS.KeyFile,
		}))
	}
	return opts
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Sidebar")
	v.SetDefault("sidebar.collapsed", false)
	v.SetDefault("sidebar.mobileOpen", false)
	v.SetDefault("sidebar.expandOnHover", false)
	v.SetDefault("sidebar.width", sidebar.DefaultWidth)
	v.SetDefault("sidebar.collapsedWidth", sidebar.DefaultCollapsedWidth)
	v.SetDefault("sidebar.linkMode", string(link.ModeAnchor))
	v.SetDefault("sidebar.initialPath", "/")
	v.SetDefault("sidebar.showOneChild", false)
	v.SetDefault("storage.backend", storage.BackendMemory)
	v.SetDefault("storage.key", DefaultStorageKey)
	v.SetDefault("storage.dir", storage.DefaultDir)
	v.SetDefault("storage.path", storage.DefaultSQLitePath)
	v.SetDefault("storage.addr", "localhost:6379")
	v.SetDefault("storage.password", "")
	v.SetDefault("storage.db", 0)
	v.SetDefault("storage.prefix", storage.DefaultRedisPrefix)
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", server.DefaultPort)
	v.SetDefault("server.readTimeout", server.DefaultReadTimeout)
	v.SetDefault("server.writeTimeout", server.DefaultWriteTimeout)
	v.SetDefault("server.idleTimeout", server.DefaultIdleTimeout)
	v.SetDefault("server.shutdownTimeout", server.DefaultShutdownTimeout)
	v.SetDefault("server.maxHeaderBytes", server.DefaultMaxHeaderBytes)
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads the config file at path. With an empty path, a file named
// sidenav.{yaml,toml,json} is searched in the working directory and in
// $HOME/.config/sidenav; when none exists the defaults are returned.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sidenav")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	cfg.Classes = canonicalClasses(cfg.Classes)

	return &cfg, nil
}

// classKeys maps lower-cased class keys back to their canonical names.
// Config keys are case-insensitive.
var classKeys = func() map[string]string {
	m := make(map[string]string, len(classes.Defaults))
	for k := range classes.Defaults {
		m[strings.ToLower(k)] = k
	}
	return m
}()

func canonicalClasses(in map[string]string) classes.Overrides {
	if len(in) == 0 {
		return nil
	}
	out := make(classes.Overrides, len(in))
	for k, v := range in {
		if canon, ok := classKeys[strings.ToLower(k)]; ok {
			k = canon
		}
		out[k] = v
	}
	return out
}

// Accordion returns the parsed showOneChild setting.
func (s SidebarConfig) Accordion() (sidebar.Accordion, error) {
	switch v := s.ShowOneChild.(type) {
	case nil:
		return sidebar.AccordionOff, nil
	case bool:
		if v {
			return sidebar.AccordionSiblings, nil
		}
		return sidebar.AccordionOff, nil
	case string:
		return sidebar.ParseAccordion(v)
	default:
		return sidebar.AccordionOff, fmt.Errorf("showOneChild must be a boolean or \"deep\", got %T", v)
	}
}

// Options returns the sidebar options described by the file. Invalid
// values are logged and replaced by defaults.
func (c *Config) Options() []sidebar.Option {
	s := c.Sidebar

	accordion, err := s.Accordion()
	if err != nil {
		slog.Warn("ignoring showOneChild", "error", err)
	}

	return []sidebar.Option{
		sidebar.WithCollapsed(s.Collapsed),
		sidebar.WithMobileOpen(s.MobileOpen),
		sidebar.WithDefaultExpandedGroups(s.DefaultExpandedGroups...),
		sidebar.WithAccordion(accordion),
		sidebar.WithExpandOnHover(s.ExpandOnHover),
		sidebar.WithWidths(s.Width, s.CollapsedWidth),
		sidebar.WithClasses(c.Classes),
		sidebar.WithLinkMode(link.ParseMode(s.LinkMode)),
		sidebar.WithInitialPath(s.InitialPath),
	}
}

// NavItems converts the configured items. Invalid fields are logged and
// replaced by defaults, except invalid patterns, which are kept and never
// match. Validate reports all of them as errors.
func (c *Config) NavItems() []*nav.Item {
	items, errs := convertItems(c.Items)
	for _, err := range errs {
		slog.Warn("ignoring invalid item setting", "error", err)
	}
	return items
}

// Validate checks the whole configuration, including the item tree.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Items) == 0 {
		errs = append(errs, ErrNoItems)
	}

	if _, err := c.Sidebar.Accordion(); err != nil {
		errs = append(errs, fmt.Errorf("%w: sidebar.showOneChild: %w", ErrInvalid, err))
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "", storage.BackendNone, storage.BackendMemory, storage.BackendFile,
		storage.BackendSQLite, storage.BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("%w: storage.backend: %w: %q", ErrInvalid, storage.ErrUnknownBackend, c.Storage.Backend))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: server.port %d out of range", ErrInvalid, c.Server.Port))
	}

	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"readTimeout", c.Server.ReadTimeout},
		{"writeTimeout", c.Server.WriteTimeout},
		{"idleTimeout", c.Server.IdleTimeout},
		{"shutdownTimeout", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.d < 0 {
			errs = append(errs, fmt.Errorf("%w: server.%s must not be negative", ErrInvalid, t.name))
		}
	}

	if c.Server.MaxHeaderBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: server.maxHeaderBytes must not be negative", ErrInvalid))
	}

	if (c.Server.TLS.CertFile == "") != (c.Server.TLS.KeyFile == "") {
		errs = append(errs, fmt.Errorf("%w: server.tls needs both certFile and keyFile", ErrInvalid))
	}

	items, itemErrs := convertItems(c.Items)
	for _, err := range itemErrs {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}

	if _, err := nav.NewTree(items, slog.Default()); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

func convertItems(in []ItemConfig) ([]*nav.Item, []error) {
	if len(in) == 0 {
		return nil, nil
	}

	var errs []error
	out := make([]*nav.Item, 0, len(in))
	for _, ic := range in {
		item, itemErrs := ic.toItem()
		out = append(out, item)
		errs = append(errs, itemErrs...)
	}
	return out, errs
}

func (ic ItemConfig) toItem() (*nav.Item, []error) {
	item := &nav.Item{
		ID:               ic.ID,
		Label:            ic.Label,
		Icon:             ic.Icon,
		Badge:            ic.Badge,
		Class:            ic.Class,
		Href:             ic.Href,
		Disabled:         ic.Disabled,
		External:         ic.External,
		HiddenOnCollapse: ic.HiddenOnCollapse,
		Classes:          canonicalClasses(ic.Classes),
		LinkMode:         ic.LinkMode,
		Attrs:            ic.Attrs,
	}

	name := ic.ID
	if name == "" {
		name = ic.Label
	}

	var errs []error
	fail := func(field string, err error) {
		errs = append(errs, fmt.Errorf("item %q: %s: %w", name, field, err))
	}

	route, err := parseRoute(ic.To)
	if err != nil {
		fail("to", err)
	}
	item.To = route

	strategy, err := parseStrategy(ic.ActiveMatch)
	if err != nil {
		fail("activeMatch", err)
	}
	item.ActiveMatch = strategy

	visible, err := parseBool(ic.Visible, true)
	if err != nil {
		fail("visible", err)
	}
	item.Hidden = !visible

	children, childErrs := convertItems(ic.Children)
	item.Children = children
	errs = append(errs, childErrs...)

	return item, errs
}

func parseRoute(v any) (*nav.Route, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if t == "" {
			return nil, nil
		}
		return &nav.Route{Path: t}, nil
	case map[string]any:
		r := &nav.Route{}
		for k, val := range t {
			switch strings.ToLower(k) {
			case "path":
				r.Path = fmt.Sprint(val)
			case "name":
				r.Name = fmt.Sprint(val)
			case "params":
				params, ok := val.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("params must be a table, got %T", val)
				}
				r.Params = make(map[string]string, len(params))
				for pk, pv := range params {
					r.Params[pk] = fmt.Sprint(pv)
				}
			}
		}
		return r, nil
	default:
		return nil, fmt.Errorf("must be a path or a route table, got %T", v)
	}
}

func parseStrategy(v any) (nav.Strategy, error) {
	switch t := v.(type) {
	case nil:
		return nav.Strategy{}, nil
	case string:
		return nav.ParseStrategy(t)
	case map[string]any:
		for k, val := range t {
			if strings.ToLower(k) != "pattern" {
				continue
			}
			src, ok := val.(string)
			if !ok {
				return nav.Strategy{}, fmt.Errorf("pattern must be a string, got %T", val)
			}
			if _, err := regexp2.Compile(src, regexp2.ECMAScript); err != nil {
				return nav.Pattern(src), fmt.Errorf("invalid pattern %q: %w", src, err)
			}
			return nav.Pattern(src), nil
		}
		return nav.Strategy{}, errors.New("table form requires a pattern")
	default:
		return nav.Strategy{}, fmt.Errorf("must be a strategy name or a pattern table, got %T", v)
	}
}

func parseBool(v any, def bool) (bool, error) {
	switch t := v.(type) {
	case nil:
		return def, nil
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return def, fmt.Errorf("must be a boolean, got %q", t)
		}
		return b, nil
	default:
		return def, fmt.Errorf("must be a boolean, got %T", v)
	}
}
