package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyotindersingh/goctok/lang/gc"
	"github.com/jyotindersingh/goctok/lang/object"
)

func TestInternReturnsSameStringForEqualBytes(t *testing.T) {
	c := gc.New()
	a := c.Intern([]byte("hello"))
	b := c.Intern([]byte("hello"))
	assert.Same(t, a, b)
}

func TestInternDistinctForDifferentBytes(t *testing.T) {
	c := gc.New()
	a := c.Intern([]byte("hello"))
	b := c.Intern([]byte("world"))
	assert.NotSame(t, a, b)
}

// fakeRoot lets tests control exactly which Values are reachable.
type fakeRoot struct{ values []object.Value }

func (r *fakeRoot) GCRoots() []object.Value { return r.values }

func TestCollectFreesUnreachableAndKeepsReachable(t *testing.T) {
	c := gc.New()
	kept := c.Intern([]byte("kept"))
	root := &fakeRoot{values: []object.Value{object.FromObj(kept)}}
	handle := c.Register(root)
	defer c.Unregister(handle)

	c.Intern([]byte("discarded"))
	c.Collect()

	var seen []string
	c.Walk(func(o object.Obj) {
		if s, ok := o.(*object.String); ok {
			seen = append(seen, s.String())
		}
	})
	assert.Contains(t, seen, "kept")
	assert.NotContains(t, seen, "discarded")
}

func TestCollectIsIdempotentWhenNothingChanges(t *testing.T) {
	c := gc.New()
	kept := c.Intern([]byte("kept"))
	root := &fakeRoot{values: []object.Value{object.FromObj(kept)}}
	handle := c.Register(root)
	defer c.Unregister(handle)

	c.Collect()
	stats1 := c.Stats()
	c.Collect()
	stats2 := c.Stats()

	assert.Equal(t, stats1.BytesAllocated, stats2.BytesAllocated)
}

func TestUnregisterStopsRooting(t *testing.T) {
	c := gc.New()
	s := c.Intern([]byte("temp"))
	root := &fakeRoot{values: []object.Value{object.FromObj(s)}}
	handle := c.Register(root)
	c.Unregister(handle)

	c.Collect()

	var found bool
	c.Walk(func(o object.Obj) {
		if str, ok := o.(*object.String); ok && str.String() == "temp" {
			found = true
		}
	})
	assert.False(t, found)
}

func TestEveryLiveObjectIsUnmarkedAfterCollect(t *testing.T) {
	c := gc.New()
	s := c.Intern([]byte("x"))
	root := &fakeRoot{values: []object.Value{object.FromObj(s)}}
	handle := c.Register(root)
	defer c.Unregister(handle)

	c.Collect()

	c.Walk(func(o object.Obj) {
		assert.False(t, o.Marked())
	})
}

func TestNewFunctionIsTrackedAndCollectable(t *testing.T) {
	c := gc.New()
	fn := c.NewFunction()
	require.NotNil(t, fn)

	c.Collect() // no roots registered: fn should be freed

	var found bool
	c.Walk(func(o object.Obj) {
		if o == fn {
			found = true
		}
	})
	assert.False(t, found)
}
