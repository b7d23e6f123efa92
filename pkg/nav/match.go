package nav

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/mchmarny/sidenav/pkg/metric"
)

const (
	// DefaultPatternTimeout bounds a single pattern evaluation.
	DefaultPatternTimeout = 100 * time.Millisecond

	// Warning reasons reported to the warning counter.
	WarnInvalidPattern = "invalid_pattern"
	WarnPatternTimeout = "pattern_timeout"
	WarnPredicatePanic = "predicate_panic"
)

// Matcher decides whether items are active for a given location.
// It is safe for concurrent use.
type Matcher struct {
	logger         *slog.Logger
	warnings       metric.IncrementalCounter
	patternTimeout time.Duration
	patterns       sync.Map // pattern source -> compiledPattern
}

type compiledPattern struct {
	re  *regexp2.Regexp
	err error
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l *slog.Logger) MatcherOption {
	return func(m *Matcher) { m.logger = l }
}

// WithWarningCounter counts configuration warnings by reason.
func WithWarningCounter(c metric.IncrementalCounter) MatcherOption {
	return func(m *Matcher) { m.warnings = c }
}

// WithPatternTimeout bounds the evaluation of a single pattern.
func WithPatternTimeout(d time.Duration) MatcherOption {
	return func(m *Matcher) { m.patternTimeout = d }
}

// NewMatcher creates a Matcher with the provided options.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{patternTimeout: DefaultPatternTimeout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = NewMatcher()

// IsActive reports whether item is active for currentPath using the default matcher.
func IsActive(item *Item, currentPath string, route *RouteInfo) bool {
	return defaultMatcher.IsActive(item, currentPath, route)
}

// IsAncestorOfActive reports whether any descendant of item is active using the default matcher.
func IsAncestorOfActive(item *Item, currentPath string, route *RouteInfo) bool {
	return defaultMatcher.IsAncestorOfActive(item, currentPath, route)
}

// IsActive reports whether item is active for currentPath.
// Disabled, external and non-navigable items are never active.
// Route is optional and only passed through to custom predicates.
func (m *Matcher) IsActive(item *Item, currentPath string, route *RouteInfo) bool {
	if item == nil || item.Disabled || item.External {
		return false
	}

	itemPath, ok := ResolvePath(item)
	if !ok {
		return false
	}

	itemPath = NormalizePath(itemPath)
	currentPath = NormalizePath(currentPath)

	strategy := item.ActiveMatch
	if strategy.IsDefault() {
		if item.HasChildren() {
			strategy = StartsWith
		} else {
			strategy = Exact
		}
	}

	switch strategy.kind {
	case strategyFunc:
		return m.callPredicate(strategy.predicate, MatchContext{
			Item:        item,
			CurrentPath: currentPath,
			Route:       route,
		})
	case strategyPattern:
		if strategy.pattern != "" {
			return m.matchPattern(item, strategy.pattern, currentPath)
		}
	case strategyStartsWith:
		if itemPath == "/" {
			return currentPath == "/"
		}
		return strings.HasPrefix(currentPath, itemPath)
	}

	return currentPath == itemPath
}

func (m *Matcher) matchPattern(item *Item, src, currentPath string) bool {
	cp := m.compile(src)
	if cp.err != nil {
		m.warn(WarnInvalidPattern, "invalid active match pattern",
			"pattern", src,
			"item", item.ID,
			"error", cp.err)
		return false
	}

	ok, err := cp.re.MatchString(currentPath)
	if err != nil {
		m.warn(WarnPatternTimeout, "active match pattern evaluation failed",
			"pattern", src,
			"item", item.ID,
			"error", err)
		return false
	}

	return ok
}

func (m *Matcher) compile(src string) compiledPattern {
	if v, ok := m.patterns.Load(src); ok {
		return v.(compiledPattern)
	}

	re, err := regexp2.Compile(src, regexp2.ECMAScript)
	if err == nil {
		re.MatchTimeout = m.patternTimeout
	}

	v, _ := m.patterns.LoadOrStore(src, compiledPattern{re: re, err: err})
	return v.(compiledPattern)
}

func (m *Matcher) callPredicate(fn Predicate, ctx MatchContext) (active bool) {
	defer func() {
		if r := recover(); r != nil {
			m.warn(WarnPredicatePanic, "active match predicate panicked",
				"item", ctx.Item.ID,
				"panic", r)
			active = false
		}
	}()
	return fn(ctx)
}

func (m *Matcher) warn(reason, msg string, args ...any) {
	m.log().Warn(msg, args...)
	if m.warnings != nil {
		m.warnings.Increment(reason)
	}
}

func (m *Matcher) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return slog.Default()
}
