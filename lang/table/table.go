// Package table provides the open-addressed hash table used everywhere Tok
// needs a name→value mapping: the string intern set, the globals table,
// every class's method table, and every instance's field table.
//
// It is a thin, type-parameterized wrapper over github.com/dolthub/swiss, a
// SIMD-friendly open-addressed ("swiss table") hash map. Keeping one generic
// wrapper rather than importing swiss.Map directly at each call site gives
// the gc package a single place (Table.Delete/Table.Each) to prune entries
// during the intern table's weak-set sweep (see gc.pruneIntern).
package table

import "github.com/dolthub/swiss"

// Table is a generic open-addressed hash table keyed by any comparable type.
// Instantiated with K = string for the intern table (lookup by raw byte
// content, before an *object.String even exists) and K = *object.String
// everywhere identity-keyed lookup suffices (globals, methods, fields).
type Table[K comparable, V any] struct {
	m *swiss.Map[K, V]
}

// New returns a table with initial capacity for at least size entries.
func New[K comparable, V any](size int) *Table[K, V] {
	if size < 0 {
		size = 0
	}
	return &Table[K, V]{m: swiss.NewMap[K, V](uint32(size))}
}

// Get looks up key, returning its value and whether it was present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	return t.m.Get(key)
}

// Set inserts or overwrites the entry for key. It reports whether the key
// was newly inserted (false means an existing entry was overwritten), which
// the VM's SET_GLOBAL assignment-to-undeclared-global check relies on.
func (t *Table[K, V]) Set(key K, val V) (isNew bool) {
	_, existed := t.m.Get(key)
	t.m.Put(key, val)
	return !existed
}

// Delete removes key, reporting whether it was present.
func (t *Table[K, V]) Delete(key K) bool {
	return t.m.Delete(key)
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	return t.m.Count()
}

// Each calls fn once per entry, stopping early if fn returns false. fn must
// not mutate the table while iterating; callers that need to delete while
// iterating should collect keys first (see gc's weak-interning sweep).
//
// Note the inversion: swiss.Map.Iter's callback returns whether to stop, the
// opposite of Each's own "return true to keep going" contract. Every caller
// in this codebase is written against Each's contract, so the negation is
// applied once here rather than at each call site.
func (t *Table[K, V]) Each(fn func(key K, val V) bool) {
	t.m.Iter(func(k K, v V) bool {
		return !fn(k, v)
	})
}

// AddAll copies every entry of src into t, overwriting any existing entries
// of the same key. Used by the VM's INHERIT instruction to bulk-copy a
// superclass's method table into a subclass at class-definition time.
func (t *Table[K, V]) AddAll(src *Table[K, V]) {
	src.Each(func(k K, v V) bool {
		t.m.Put(k, v)
		return true
	})
}
