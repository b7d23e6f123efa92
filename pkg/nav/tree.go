package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrDuplicateID is returned when two items in a tree share an id.
var ErrDuplicateID = errors.New("duplicate item id")

// idNamespace scopes ids derived for items that have none.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mchmarny/sidenav/item"))

// CycleError reports an item that is its own ancestor.
type CycleError struct {
	ID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("navigation tree cycle at item %q", e.ID)
}

// IsAncestorOfActive reports whether any descendant of item is active.
// It panics with *CycleError when item reaches itself; trees built with
// NewTree are checked for cycles up front.
func (m *Matcher) IsAncestorOfActive(item *Item, currentPath string, route *RouteInfo) bool {
	if !item.HasChildren() {
		return false
	}
	return m.ancestorOfActive(item, currentPath, route, map[*Item]struct{}{item: {}})
}

func (m *Matcher) ancestorOfActive(item *Item, currentPath string, route *RouteInfo, onPath map[*Item]struct{}) bool {
	for _, child := range item.Children {
		if child == nil {
			continue
		}
		if _, seen := onPath[child]; seen {
			panic(&CycleError{ID: child.ID})
		}
		if m.IsActive(child, currentPath, route) {
			return true
		}
		if !child.HasChildren() {
			continue
		}

		onPath[child] = struct{}{}
		found := m.ancestorOfActive(child, currentPath, route, onPath)
		delete(onPath, child)

		if found {
			return true
		}
	}
	return false
}

// Tree is a validated index over a navigation forest.
// It is read-only after construction and safe for concurrent use.
type Tree struct {
	roots  []*Item
	ids    map[*Item]string
	byID   map[string]*Item
	parent map[string]string
	levels map[string]int
}

// NewTree indexes items. It fails on duplicate ids and cycles. Items without
// an id get a stable derived id and a warning is logged.
func NewTree(items []*Item, logger *slog.Logger) (*Tree, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tree{
		ids:    make(map[*Item]string),
		byID:   make(map[string]*Item),
		parent: make(map[string]string),
		levels: make(map[string]int),
	}

	b := &treeBuilder{tree: t, logger: logger, onPath: make(map[*Item]struct{})}
	for i, item := range items {
		if item == nil {
			continue
		}
		t.roots = append(t.roots, item)
		b.add(item, "", strconv.Itoa(i), 0)
	}

	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	return t, nil
}

type treeBuilder struct {
	tree   *Tree
	logger *slog.Logger
	onPath map[*Item]struct{}
	errs   []error
}

func (b *treeBuilder) add(item *Item, parentID, position string, level int) {
	if _, seen := b.onPath[item]; seen {
		b.errs = append(b.errs, &CycleError{ID: item.ID})
		return
	}

	id := item.ID
	if id == "" {
		id = uuid.NewSHA1(idNamespace, []byte(position+"|"+item.Label)).String()
		b.logger.Warn("navigation item has no id, using derived id",
			"label", item.Label,
			"position", position,
			"id", id)
	}

	if _, dup := b.tree.byID[id]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateID, id))
		return
	}

	b.tree.ids[item] = id
	b.tree.byID[id] = item
	b.tree.parent[id] = parentID
	b.tree.levels[id] = level

	b.onPath[item] = struct{}{}
	for i, child := range item.Children {
		if child == nil {
			continue
		}
		b.add(child, id, position+"."+strconv.Itoa(i), level+1)
	}
	delete(b.onPath, item)
}

// Roots returns the top-level items.
func (t *Tree) Roots() []*Item {
	return t.roots
}

// Len returns the number of indexed items.
func (t *Tree) Len() int {
	return len(t.byID)
}

// ID returns the effective id of item, or "" when item is not in the tree.
func (t *Tree) ID(item *Item) string {
	return t.ids[item]
}

// Find returns the item with the given id.
func (t *Tree) Find(id string) (*Item, bool) {
	item, ok := t.byID[id]
	return item, ok
}

// Parent returns the parent id of id. Roots have an empty parent id.
func (t *Tree) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Level returns the 0-based depth of id.
func (t *Tree) Level(id string) int {
	return t.levels[id]
}

// Siblings returns the ids of the items sharing id's parent, excluding id.
func (t *Tree) Siblings(id string) []string {
	parentID, ok := t.parent[id]
	if !ok {
		return nil
	}

	var peers []*Item
	if parentID == "" {
		peers = t.roots
	} else {
		peers = t.byID[parentID].Children
	}

	out := make([]string, 0, len(peers))
	for _, p := range peers {
		if p == nil {
			continue
		}
		if pid := t.ids[p]; pid != id {
			out = append(out, pid)
		}
	}
	return out
}

// Descendants returns the ids of all items below id, depth first.
func (t *Tree) Descendants(id string) []string {
	item, ok := t.byID[id]
	if !ok {
		return nil
	}

	var out []string
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, c := range items {
			if c == nil {
				continue
			}
			out = append(out, t.ids[c])
			walk(c.Children)
		}
	}
	walk(item.Children)
	return out
}

// Walk visits every item depth first with its level. Returning false from fn
// skips the item's children.
func (t *Tree) Walk(fn func(item *Item, level int) bool) {
	var walk func(items []*Item, level int)
	walk = func(items []*Item, level int) {
		for _, item := range items {
			if item == nil {
				continue
			}
			if fn(item, level) {
				walk(item.Children, level+1)
			}
		}
	}
	walk(t.roots, 0)
}

// ActivePath returns the ids from a root down to the first active item,
// or nil when nothing is active.
func (t *Tree) ActivePath(m *Matcher, currentPath string, route *RouteInfo) []string {
	var find func(items []*Item, trail []string) []string
	find = func(items []*Item, trail []string) []string {
		for _, item := range items {
			if item == nil {
				continue
			}
			next := append(trail[:len(trail):len(trail)], t.ids[item])
			if m.IsActive(item, currentPath, route) {
				return next
			}
			if found := find(item.Children, next); found != nil {
				return found
			}
		}
		return nil
	}
	return find(t.roots, nil)
}

// String renders the tree ids as an indented outline.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Walk(func(item *Item, level int) bool {
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString(t.ids[item])
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
