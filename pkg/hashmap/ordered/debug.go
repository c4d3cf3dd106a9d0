package ordered

// BucketHash exposes the stored hash at a raw bucket index for inspection.
// An out of range index or an unallocated table yields the empty sentinel.
func (m *Map[K, V]) BucketHash(i uint32) uint32 {
	if m.slots == nil || m.count == 0 || i >= m.capacity() {
		return emptyHash
	}
	return m.hashes[i]
}

// BucketIter exposes the entry at a raw bucket index as a cursor. An out of
// range index, an unallocated table or a vacant bucket yields an invalid
// cursor.
func (m *Map[K, V]) BucketIter(i uint32) Iter[K, V] {
	if m.slots == nil || m.count == 0 || i >= m.capacity() {
		return Iter[K, V]{m: m}
	}
	return Iter[K, V]{m: m, h: m.slots[i]}
}
