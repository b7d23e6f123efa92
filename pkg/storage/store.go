// Package storage provides key-value backends for persisted sidebar state.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Open for unsupported backend names.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a best-effort key-value store.
// Get reports false when the key has no value.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by stores backed by a connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check verifies the store connection. Stores without a connection are always ready.
func Check(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of the Backend* names. Empty means BackendMemory.
	Backend string `mapstructure:"backend" json:"backend" yaml:"backend"`

	// Key is the key the sidebar state is stored under.
	Key string `mapstructure:"key" json:"key" yaml:"key"`

	// Dir is the directory used by the file backend.
	Dir string `mapstructure:"dir" json:"dir,omitempty" yaml:"dir,omitempty"`

	// Path is the database file used by the sqlite backend.
	Path string `mapstructure:"path" json:"path,omitempty" yaml:"path,omitempty"`

	// Addr is the server address used by the redis backend.
	Addr string `mapstructure:"addr" json:"addr,omitempty" yaml:"addr,omitempty"`

	// Password is the redis password.
	Password string `mapstructure:"password" json:"-" yaml:"-"`

	// DB is the redis database number.
	DB int `mapstructure:"db" json:"db,omitempty" yaml:"db,omitempty"`

	// Prefix namespaces redis keys.
	Prefix string `mapstructure:"prefix" json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Open creates the configured backend. The returned close function releases
// any underlying connection and is never nil. BackendNone returns a nil Store.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendNone:
		return nil, noop, nil
	case "", BackendMemory:
		return NewMemory(), noop, nil
	case BackendFile:
		fs, err := NewFile(nil, cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendRedis:
		r, err := OpenRedis(ctx, cfg.Addr, cfg.Password, cfg.DB, cfg.Prefix)
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
