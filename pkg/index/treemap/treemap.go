package treemap

import "github.com/google/btree"

const degree = 32

// Entry represents a key value pair for the ordered map
type Entry[V any] struct {
	Key   string
	Value V
}

// Less orders entries by key, bytewise
func (e Entry[V]) Less(than btree.Item) bool {
	return e.Key < than.(Entry[V]).Key
}

// Map is a sorted map over string keys with in-order traversal and
// nearest-key lookup. The balancing itself is delegated to a B-tree; this
// package only owns the map semantics layered on top. Like the hash maps in
// this module it is not safe for concurrent use.
type Map[V any] struct {
	tree *btree.BTree
}

// NewMap returns an empty ordered map
func NewMap[V any]() *Map[V] {
	return &Map[V]{tree: btree.New(degree)}
}

// Put inserts or replaces the value for key and returns the previous value,
// or false if there was none
func (m *Map[V]) Put(key string, value V) (V, bool) {
	prev := m.tree.ReplaceOrInsert(Entry[V]{Key: key, Value: value})
	if prev == nil {
		var zero V
		return zero, false
	}
	return prev.(Entry[V]).Value, true
}

// Get returns the value for key, or false if none could be found
func (m *Map[V]) Get(key string) (V, bool) {
	item := m.tree.Get(Entry[V]{Key: key})
	if item == nil {
		var zero V
		return zero, false
	}
	return item.(Entry[V]).Value, true
}

// Has reports whether key is present
func (m *Map[V]) Has(key string) bool {
	return m.tree.Has(Entry[V]{Key: key})
}

// Del removes key and returns the removed value, or false
func (m *Map[V]) Del(key string) (V, bool) {
	item := m.tree.Delete(Entry[V]{Key: key})
	if item == nil {
		var zero V
		return zero, false
	}
	return item.(Entry[V]).Value, true
}

// Min returns the smallest key and its value, or false when empty
func (m *Map[V]) Min() (string, V, bool) {
	return unpack[V](m.tree.Min())
}

// Max returns the largest key and its value, or false when empty
func (m *Map[V]) Max() (string, V, bool) {
	return unpack[V](m.tree.Max())
}

// Floor returns the largest entry with a key not greater than key
func (m *Map[V]) Floor(key string) (string, V, bool) {
	var found btree.Item
	m.tree.DescendLessOrEqual(Entry[V]{Key: key}, func(item btree.Item) bool {
		found = item
		return false
	})
	return unpack[V](found)
}

// Ceil returns the smallest entry with a key not less than key
func (m *Map[V]) Ceil(key string) (string, V, bool) {
	var found btree.Item
	m.tree.AscendGreaterOrEqual(Entry[V]{Key: key}, func(item btree.Item) bool {
		found = item
		return false
	})
	return unpack[V](found)
}

// Range visits every entry in ascending key order while fn returns true
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	m.tree.Ascend(func(item btree.Item) bool {
		e := item.(Entry[V])
		return fn(e.Key, e.Value)
	})
}

// RangeReverse visits every entry in descending key order while fn returns
// true
func (m *Map[V]) RangeReverse(fn func(key string, value V) bool) {
	m.tree.Descend(func(item btree.Item) bool {
		e := item.(Entry[V])
		return fn(e.Key, e.Value)
	})
}

// Scan visits entries with lo <= key < hi in ascending order while fn
// returns true
func (m *Map[V]) Scan(lo, hi string, fn func(key string, value V) bool) {
	m.tree.AscendRange(Entry[V]{Key: lo}, Entry[V]{Key: hi}, func(item btree.Item) bool {
		e := item.(Entry[V])
		return fn(e.Key, e.Value)
	})
}

// Copy returns an independent copy of the map. The underlying tree is
// cloned copy-on-write, so this is cheap until one side mutates.
func (m *Map[V]) Copy() *Map[V] {
	return &Map[V]{tree: m.tree.Clone()}
}

// Len returns the number of entries
func (m *Map[V]) Len() int {
	return m.tree.Len()
}

func unpack[V any](item btree.Item) (string, V, bool) {
	if item == nil {
		var zero V
		return "", zero, false
	}
	e := item.(Entry[V])
	return e.Key, e.Value, true
}
