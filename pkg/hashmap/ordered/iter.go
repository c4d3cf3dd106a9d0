package ordered

// Iter is a cursor over the insertion-order list. It follows node identity
// rather than bucket position, so it survives resizes and erases of other
// entries; erasing the entry it points at invalidates it.
type Iter[K comparable, V any] struct {
	m *Map[K, V]
	h uint32
}

// Valid reports whether the cursor points at a live entry
func (it *Iter[K, V]) Valid() bool {
	return it.h != 0
}

// Next moves the cursor one entry toward the tail and reports whether it
// still points at a live entry
func (it *Iter[K, V]) Next() bool {
	if it.h != 0 {
		it.h = it.m.nodes.at(it.h).next
	}
	return it.h != 0
}

// Prev moves the cursor one entry toward the head and reports whether it
// still points at a live entry
func (it *Iter[K, V]) Prev() bool {
	if it.h != 0 {
		it.h = it.m.nodes.at(it.h).prev
	}
	return it.h != 0
}

// Key returns the key under the cursor
func (it *Iter[K, V]) Key() K {
	return it.m.nodes.at(it.h).key
}

// Value returns the value under the cursor
func (it *Iter[K, V]) Value() V {
	return it.m.nodes.at(it.h).val
}

// SetValue overwrites the value under the cursor
func (it *Iter[K, V]) SetValue(value V) {
	it.m.nodes.at(it.h).val = value
}

// First returns a cursor at the oldest entry
func (m *Map[K, V]) First() Iter[K, V] {
	return Iter[K, V]{m: m, h: m.head}
}

// Last returns a cursor at the newest entry
func (m *Map[K, V]) Last() Iter[K, V] {
	return Iter[K, V]{m: m, h: m.tail}
}

// Find returns a cursor at the entry for key, invalid if absent
func (m *Map[K, V]) Find(key K) Iter[K, V] {
	pos, ok := m.lookupPos(key)
	if !ok {
		return Iter[K, V]{m: m}
	}
	return Iter[K, V]{m: m, h: m.slots[pos]}
}

// Remove erases the entry under the cursor and reports whether anything was
// removed. The cursor is left invalid.
func (m *Map[K, V]) Remove(it Iter[K, V]) bool {
	if !it.Valid() {
		return false
	}
	return m.Erase(it.Key())
}

// Iterator is an iterator function type
type Iterator[K comparable, V any] func(key K, value V) bool

// Range walks the entries head to tail, calling it for each one for as long
// as it keeps returning true. Range is not safe to perform an insert or
// remove operation while ranging!
func (m *Map[K, V]) Range(it Iterator[K, V]) {
	for h := m.head; h != 0; {
		nd := m.nodes.at(h)
		if !it(nd.key, nd.val) {
			return
		}
		h = nd.next
	}
}

// RangeReverse walks the entries tail to head, calling it for each one for
// as long as it keeps returning true. The same mutation caveat as Range
// applies.
func (m *Map[K, V]) RangeReverse(it Iterator[K, V]) {
	for h := m.tail; h != 0; {
		nd := m.nodes.at(h)
		if !it(nd.key, nd.val) {
			return
		}
		h = nd.prev
	}
}

// Keys returns the keys in iteration order
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.count)
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
