package nav

import (
	"fmt"
	"strings"
)

type strategyKind int

const (
	strategyDefault strategyKind = iota
	strategyExact
	strategyStartsWith
	strategyPattern
	strategyFunc
)

// Predicate decides activeness for the Func strategy.
type Predicate func(ctx MatchContext) bool

// Strategy is the rule used to decide whether an item is active.
// The zero value selects the default: StartsWith for groups, Exact for leaves.
type Strategy struct {
	kind      strategyKind
	pattern   string
	predicate Predicate
}

var (
	// Exact requires the normalized paths to be equal.
	Exact = Strategy{kind: strategyExact}

	// StartsWith requires the current path to begin with the item path.
	StartsWith = Strategy{kind: strategyStartsWith}
)

// Pattern matches the normalized current path against a regular expression.
func Pattern(src string) Strategy {
	return Strategy{kind: strategyPattern, pattern: src}
}

// Func delegates the decision to fn.
func Func(fn Predicate) Strategy {
	if fn == nil {
		return Strategy{}
	}
	return Strategy{kind: strategyFunc, predicate: fn}
}

// ParseStrategy reads the textual strategy names used in configuration files.
// An empty name selects the default strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "auto":
		return Strategy{}, nil
	case "exact":
		return Exact, nil
	case "startswith", "starts-with", "prefix":
		return StartsWith, nil
	default:
		return Strategy{}, fmt.Errorf("unknown match strategy %q", name)
	}
}

// IsDefault reports whether the strategy defers to the item's shape.
func (s Strategy) IsDefault() bool {
	return s.kind == strategyDefault
}

// PatternSource returns the pattern of a Pattern strategy.
func (s Strategy) PatternSource() (string, bool) {
	return s.pattern, s.kind == strategyPattern
}

func (s Strategy) String() string {
	switch s.kind {
	case strategyExact:
		return "exact"
	case strategyStartsWith:
		return "startsWith"
	case strategyPattern:
		return "pattern(" + s.pattern + ")"
	case strategyFunc:
		return "func"
	default:
		return "default"
	}
}
