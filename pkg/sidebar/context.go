package sidebar

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Sidebar) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the sidebar carried by ctx.
func FromContext(ctx context.Context) (*Sidebar, bool) {
	s, ok := ctx.Value(contextKey{}).(*Sidebar)
	return s, ok && s != nil
}

// MustFromContext returns the sidebar carried by ctx and panics with
// ErrNoSidebar when there is none.
func MustFromContext(ctx context.Context) *Sidebar {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoSidebar)
	}
	return s
}
