package expansion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	s := New()

	assert.True(t, s.Toggle("g1"))
	assert.True(t, s.IsExpanded("g1"))

	assert.False(t, s.Toggle("g1"))
	assert.False(t, s.IsExpanded("g1"))
	assert.Equal(t, uint64(2), s.Version())
}

func TestSeedAndOrder(t *testing.T) {
	s := New("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, s.Expanded())

	s.Toggle("a")
	s.Toggle("a")
	assert.Equal(t, []string{"b", "a"}, s.Expanded(), "reopened group moves to the end")
	assert.Equal(t, uint64(2), s.Version())
}

func TestToggleClosesOthersWhenOpening(t *testing.T) {
	s := New("sib1", "other")

	assert.True(t, s.Toggle("g", "sib1", "sib2", "g"))
	assert.Equal(t, []string{"other", "g"}, s.Expanded())

	assert.False(t, s.Toggle("g", "other"), "closing ignores the closing list")
	assert.Equal(t, []string{"other"}, s.Expanded())
}

func TestSubscribe(t *testing.T) {
	s := New()

	var changes []Change
	cancel := s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Toggle("x")
	s.Replace([]string{"y", "z"})

	require.Len(t, changes, 2)
	assert.Equal(t, Change{Version: 1, ID: "x", Expanded: true, Groups: []string{"x"}}, changes[0])
	assert.Equal(t, []string{"y", "z"}, changes[1].Groups)
	assert.Empty(t, changes[1].ID)

	cancel()
	s.Toggle("x")
	assert.Len(t, changes, 2)
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := New()
	var seen bool
	s.Subscribe(func(c Change) { seen = s.IsExpanded(c.ID) })

	s.Toggle("g")
	assert.True(t, seen)
}

func TestConcurrentToggles(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle("g")
			_ = s.IsExpanded("g")
		}()
	}
	wg.Wait()

	assert.False(t, s.IsExpanded("g"), "an even number of toggles leaves the group closed")
	assert.Equal(t, uint64(50), s.Version())
}
