package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jyotindersingh/goctok/lang/table"
)

func TestSetGetDelete(t *testing.T) {
	tbl := table.New[string, int](4)

	isNew := tbl.Set("a", 1)
	assert.True(t, isNew)

	isNew = tbl.Set("a", 2)
	assert.False(t, isNew)

	v, ok := tbl.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	assert.True(t, tbl.Delete("a"))
	_, ok = tbl.Get("a")
	assert.False(t, ok)
}

func TestEachVisitsAllEntries(t *testing.T) {
	tbl := table.New[string, int](4)
	tbl.Set("a", 1)
	tbl.Set("b", 2)

	seen := map[string]int{}
	tbl.Each(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)
}

func TestAddAllCopiesEntries(t *testing.T) {
	src := table.New[string, int](4)
	src.Set("a", 1)
	src.Set("b", 2)

	dst := table.New[string, int](4)
	dst.Set("b", 99)
	dst.AddAll(src)

	va, _ := dst.Get("a")
	vb, _ := dst.Get("b")
	assert.Equal(t, 1, va)
	assert.Equal(t, 2, vb)
	assert.Equal(t, 2, dst.Len())
}
