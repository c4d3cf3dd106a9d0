package ordered

// Position is the explicit result of probing for one key: the key's
// canonicalized hash, the bucket the probe ended at and whether the key was
// found there. It lets the common "check, read, insert if absent" sequence
// hash and probe only once instead of once per call. A Position is a plain
// value; it is pinned to the map state it was probed against and goes stale
// on any mutation other than through itself.
type Position struct {
	hash uint32
	pos  uint32
	ok   bool
}

// Exists reports whether the probed key was present
func (p Position) Exists() bool {
	return p.ok
}

// Probe hashes key once and locates its bucket. On an unallocated or empty
// map it returns a blank Position without hashing at all; InsertAt handles
// that case by hashing lazily.
func (m *Map[K, V]) Probe(key K) Position {
	if m.slots == nil || m.count == 0 {
		return Position{}
	}
	hash := m.hashKey(key)
	start := fastmod(hash, m.capInv(), m.capacity())
	pos, ok := m.lookupPosUnchecked(key, hash, start)
	return Position{hash: hash, pos: pos, ok: ok}
}

// ValueAt reads the value behind p without re-probing
func (m *Map[K, V]) ValueAt(p Position) (V, bool) {
	if !p.ok {
		var zero V
		return zero, false
	}
	return m.nodes.at(m.slots[p.pos]).val, true
}

// PtrAt returns a pointer to the value behind p, or nil when the probe
// missed. The pointer lifetime rules of GetPtr apply.
func (m *Map[K, V]) PtrAt(p Position) *V {
	if !p.ok {
		return nil
	}
	return &m.nodes.at(m.slots[p.pos]).val
}

// SetAt overwrites the value behind p in place, reporting false when the
// probe missed
func (m *Map[K, V]) SetAt(p Position, value V) bool {
	if !p.ok {
		return false
	}
	m.nodes.at(m.slots[p.pos]).val = value
	return true
}

// InsertAt completes a probe with an insert. key must be the key p was
// probed for, with no map mutation in between. When the probe hit, the
// value is overwritten in place; otherwise the entry is inserted at the
// tail reusing the cached hash. Returns a Position for the live entry.
func (m *Map[K, V]) InsertAt(p Position, key K, value V) Position {
	if p.ok {
		m.nodes.at(m.slots[p.pos]).val = value
		return p
	}
	hash := p.hash
	if hash == emptyHash {
		// probed while empty, hash was deferred
		hash = m.hashKey(key)
	}
	pos := m.insert(key, value, hash, false)
	return Position{hash: hash, pos: pos, ok: true}
}
