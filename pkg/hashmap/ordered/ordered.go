package ordered

import (
	"github.com/pkg/errors"

	"github.com/scottcagno/containers/pkg/hash/hasher"
)

// Map is an open addressing hash map using robin hood hashing with backward
// shift deletion, threaded by a doubly linked list so iteration always runs
// in insertion order. A zero-size Map performs no allocation until the
// first insert. Not safe for concurrent use; callers that share a Map
// across goroutines must supply their own synchronization.
type Map[K comparable, V any] struct {
	hash   hasher.Func[K]
	nodes  arena[K, V]
	hashes []uint32 // emptyHash marks a vacant bucket
	slots  []uint32 // node handles, parallel to hashes
	head   uint32
	tail   uint32
	capIdx int
	count  uint32
}

// New returns an empty Map keyed with the default hash function for K.
// It panics if K has no default; use NewWith for such key types.
func New[K comparable, V any]() *Map[K, V] {
	return NewWith[K, V](hasher.For[K](), 0)
}

// NewWith returns an empty Map using the supplied hash function, pre-sized
// to hold at least size buckets once allocated. A nil hash falls back to
// the default for K. A size above the largest supported capacity clamps
// to it.
func NewWith[K comparable, V any](hash hasher.Func[K], size uint32) *Map[K, V] {
	if hash == nil {
		hash = hasher.For[K]()
	}
	m := &Map[K, V]{
		hash:   hash,
		capIdx: minCapacityIndex,
	}
	if size > 0 {
		// sizing a fresh map never allocates, it only picks the rung
		if err := m.Reserve(size); err != nil {
			m.capIdx = maxCapacityIndex
		}
	}
	return m
}

// hashKey canonicalizes the key hash so it can never equal emptyHash
func (m *Map[K, V]) hashKey(key K) uint32 {
	h := m.hash(key)
	if h == emptyHash {
		h = emptyHash + 1
	}
	return h
}

func (m *Map[K, V]) capacity() uint32 { return capacityPrimes[m.capIdx] }
func (m *Map[K, V]) capInv() uint64   { return capacityInverse[m.capIdx] }

// lookupPos finds the bucket holding key. When the key is absent it reports
// false; the map is left untouched and nothing is allocated.
func (m *Map[K, V]) lookupPos(key K) (uint32, bool) {
	if m.slots == nil || m.count == 0 {
		return 0, false
	}
	hash := m.hashKey(key)
	pos := fastmod(hash, m.capInv(), m.capacity())
	return m.lookupPosUnchecked(key, hash, pos)
}

// lookupPosUnchecked probes forward from pos for key. It assumes the bucket
// arrays are allocated. On a miss the returned position is the exact bucket
// an insert of this key would start from, so callers can reuse it. The walk
// stops at an empty bucket, or as soon as the search distance exceeds the
// resident's own probe length: the robin hood invariant guarantees the key
// cannot live any further along.
func (m *Map[K, V]) lookupPosUnchecked(key K, hash, pos uint32) (uint32, bool) {
	capacity := m.capacity()
	inv := m.capInv()
	distance := uint32(0)
	for {
		if m.hashes[pos] == emptyHash {
			return pos, false
		}
		if distance > probeLength(pos, m.hashes[pos], capacity, inv) {
			return pos, false
		}
		if m.hashes[pos] == hash && m.nodes.at(m.slots[pos]).key == key {
			return pos, true
		}
		pos = nextIndex(pos, capacity)
		distance++
	}
}

// insertSlot places (hash, handle) into the bucket arrays starting at pos,
// swapping out any resident with a shorter probe length and carrying that
// resident forward. Returns the bucket the original handle settled in, even
// when later swaps kept the walk going.
func (m *Map[K, V]) insertSlot(hash, handle, pos uint32) uint32 {
	capacity := m.capacity()
	inv := m.capInv()
	carried := handle
	final := pos
	distance := uint32(0)
	for {
		if m.hashes[pos] == emptyHash {
			if carried == handle {
				final = pos
			}
			m.hashes[pos] = hash
			m.slots[pos] = carried
			m.count++
			return final
		}
		resident := probeLength(pos, m.hashes[pos], capacity, inv)
		if resident < distance {
			if carried == handle {
				final = pos
			}
			hash, m.hashes[pos] = m.hashes[pos], hash
			carried, m.slots[pos] = m.slots[pos], carried
			distance = resident
		}
		pos = nextIndex(pos, capacity)
		distance++
	}
}

// resize reallocates the bucket arrays at the prime for newIdx and replays
// every live (hash, handle) pair into them. Nodes are not touched: handles,
// list links and cursors all survive, only bucket positions change.
func (m *Map[K, V]) resize(newIdx int) {
	oldCapacity := uint32(0)
	if m.slots != nil {
		oldCapacity = m.capacity()
	}
	if newIdx < minCapacityIndex {
		newIdx = minCapacityIndex
	}
	m.capIdx = newIdx

	capacity := m.capacity()
	inv := m.capInv()
	oldHashes, oldSlots := m.hashes, m.slots
	m.hashes = make([]uint32, capacity)
	m.slots = make([]uint32, capacity)
	m.count = 0

	for i := uint32(0); i < oldCapacity; i++ {
		if oldHashes[i] == emptyHash {
			continue
		}
		pos := fastmod(oldHashes[i], inv, capacity)
		m.insertSlot(oldHashes[i], oldSlots[i], pos)
	}
}

// insert allocates a node for a key known to be absent, splices it into the
// insertion-order list at the tail (or head when front is set) and places
// it in the bucket arrays. Returns the bucket it landed in.
func (m *Map[K, V]) insert(key K, value V, hash uint32, front bool) uint32 {
	if m.slots == nil {
		// allocate on demand so empty maps stay free
		capacity := m.capacity()
		m.hashes = make([]uint32, capacity)
		m.slots = make([]uint32, capacity)
	}
	if float64(m.count+1) > maxOccupancy*float64(m.capacity()) {
		if m.capIdx == maxCapacityIndex {
			panic(ErrCapacityOverflow)
		}
		m.resize(m.capIdx + 1)
	}

	h := m.nodes.alloc(key, value)
	switch {
	case m.tail == 0:
		m.head, m.tail = h, h
	case front:
		m.nodes.at(m.head).prev = h
		m.nodes.at(h).next = m.head
		m.head = h
	default:
		m.nodes.at(m.tail).next = h
		m.nodes.at(h).prev = m.tail
		m.tail = h
	}

	pos := fastmod(hash, m.capInv(), m.capacity())
	return m.insertSlot(hash, h, pos)
}

func (m *Map[K, V]) insertKey(key K, value V, front bool) Iter[K, V] {
	hash := m.hashKey(key)
	if m.slots != nil && m.count > 0 {
		start := fastmod(hash, m.capInv(), m.capacity())
		if pos, ok := m.lookupPosUnchecked(key, hash, start); ok {
			// duplicate key: overwrite in place, list position unchanged
			m.nodes.at(m.slots[pos]).val = value
			return Iter[K, V]{m: m, h: m.slots[pos]}
		}
	}
	pos := m.insert(key, value, hash, front)
	return Iter[K, V]{m: m, h: m.slots[pos]}
}

// Insert adds or overwrites the value for key and returns a cursor at its
// entry. A new key lands at the tail of the iteration order; an existing
// key keeps its position.
func (m *Map[K, V]) Insert(key K, value V) Iter[K, V] {
	return m.insertKey(key, value, false)
}

// InsertFront behaves like Insert but places a new key at the head of the
// iteration order instead of the tail.
func (m *Map[K, V]) InsertFront(key K, value V) Iter[K, V] {
	return m.insertKey(key, value, true)
}

// Get returns the value stored for key, or false if there is none
func (m *Map[K, V]) Get(key K) (V, bool) {
	pos, ok := m.lookupPos(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.nodes.at(m.slots[pos]).val, true
}

// GetPtr returns a pointer to the stored value for key, or nil. The pointer
// stays valid until the entry is erased or the map is cleared; it must not
// be held across inserts, which may move the node store.
func (m *Map[K, V]) GetPtr(key K) *V {
	pos, ok := m.lookupPos(key)
	if !ok {
		return nil
	}
	return &m.nodes.at(m.slots[pos]).val
}

// Has reports whether key is present
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.lookupPos(key)
	return ok
}

// Erase removes key and reports whether it was present. Deletion shifts the
// displaced run behind the vacated bucket backward instead of leaving a
// tombstone: entries keep moving down while the next bucket is occupied and
// not already sitting in its home bucket.
func (m *Map[K, V]) Erase(key K) bool {
	pos, ok := m.lookupPos(key)
	if !ok {
		return false
	}

	capacity := m.capacity()
	inv := m.capInv()
	next := nextIndex(pos, capacity)
	for m.hashes[next] != emptyHash && probeLength(next, m.hashes[next], capacity, inv) != 0 {
		m.hashes[pos], m.hashes[next] = m.hashes[next], m.hashes[pos]
		m.slots[pos], m.slots[next] = m.slots[next], m.slots[pos]
		pos = next
		next = nextIndex(next, capacity)
	}
	m.hashes[pos] = emptyHash

	h := m.slots[pos]
	m.slots[pos] = 0
	m.unlink(h)
	m.nodes.release(h)
	m.count--
	return true
}

// unlink removes the node behind h from the insertion-order list
func (m *Map[K, V]) unlink(h uint32) {
	nd := m.nodes.at(h)
	if m.head == h {
		m.head = nd.next
	}
	if m.tail == h {
		m.tail = nd.prev
	}
	if nd.prev != 0 {
		m.nodes.at(nd.prev).next = nd.next
	}
	if nd.next != 0 {
		m.nodes.at(nd.next).prev = nd.prev
	}
}

// ReplaceKey rekeys a live entry in place, keeping its node identity and
// its position in the iteration order, so cursors at the entry stay valid.
// It reports false and leaves the map unchanged when oldKey is absent or
// newKey already belongs to a different entry. oldKey == newKey is a no-op
// that reports true before any presence check.
func (m *Map[K, V]) ReplaceKey(oldKey, newKey K) bool {
	if m.slots == nil || m.count == 0 {
		return false
	}
	if oldKey == newKey {
		return true
	}

	capacity := m.capacity()
	inv := m.capInv()
	newHash := m.hashKey(newKey)
	newStart := fastmod(newHash, inv, capacity)
	if _, exists := m.lookupPosUnchecked(newKey, newHash, newStart); exists {
		return false
	}
	pos, ok := m.lookupPos(oldKey)
	if !ok {
		return false
	}
	handle := m.slots[pos]

	// vacate the old bucket with the same backward shift erase uses,
	// without touching the list links
	next := nextIndex(pos, capacity)
	for m.hashes[next] != emptyHash && probeLength(next, m.hashes[next], capacity, inv) != 0 {
		m.hashes[pos], m.hashes[next] = m.hashes[next], m.hashes[pos]
		m.slots[pos], m.slots[next] = m.slots[next], m.slots[pos]
		pos = next
		next = nextIndex(next, capacity)
	}
	m.hashes[pos] = emptyHash
	m.slots[pos] = 0
	// insertSlot increments this again
	m.count--

	m.nodes.at(handle).key = newKey
	m.insertSlot(newHash, handle, newStart)
	return true
}

// Reserve grows the bucket arrays to the first prime holding at least
// capacity buckets. On an unallocated map it only records the size, keeping
// the map allocation free. Shrinking below the live count is refused.
func (m *Map[K, V]) Reserve(capacity uint32) error {
	if capacity < m.count {
		return errors.Wrapf(ErrReserveTooSmall, "reserve %d with %d live entries", capacity, m.count)
	}
	newIdx := m.capIdx
	for capacityPrimes[newIdx] < capacity {
		if newIdx == maxCapacityIndex {
			return errors.Wrapf(ErrCapacityOverflow, "reserve %d", capacity)
		}
		newIdx++
	}
	if newIdx == m.capIdx {
		return nil
	}
	if m.slots == nil {
		m.capIdx = newIdx
		return nil
	}
	m.resize(newIdx)
	return nil
}

// Clear destroys every entry but keeps the bucket arrays at their current
// capacity for reuse
func (m *Map[K, V]) Clear() {
	if m.slots == nil || m.count == 0 {
		return
	}
	for i := range m.hashes {
		m.hashes[i] = emptyHash
		m.slots[i] = 0
	}
	m.nodes.reset()
	m.head, m.tail = 0, 0
	m.count = 0
}

// Copy returns a deep copy of the map: a fresh table with every live entry
// re-inserted in iteration order. The copy shares no node storage with the
// original.
func (m *Map[K, V]) Copy() *Map[K, V] {
	out := NewWith[K, V](m.hash, 0)
	out.capIdx = m.capIdx
	for h := m.head; h != 0; {
		nd := m.nodes.at(h)
		next := nd.next
		out.Insert(nd.key, nd.val)
		h = next
	}
	return out
}

// Len returns the number of live entries
func (m *Map[K, V]) Len() int {
	return int(m.count)
}

// IsEmpty reports whether the map holds no entries
func (m *Map[K, V]) IsEmpty() bool {
	return m.count == 0
}

// Cap returns the physical bucket count the map currently sizes itself to
func (m *Map[K, V]) Cap() uint32 {
	return m.capacity()
}

// Load returns the current load factor of the table
func (m *Map[K, V]) Load() float64 {
	return float64(m.count) / float64(m.capacity())
}

// MaxProbeLength returns the longest probe distance of any occupied bucket.
// Robin hood balancing keeps it small at any load below the growth
// threshold, which makes it a useful health check in tests.
func (m *Map[K, V]) MaxProbeLength() uint32 {
	if m.slots == nil {
		return 0
	}
	capacity := m.capacity()
	inv := m.capInv()
	longest := uint32(0)
	for i := uint32(0); i < capacity; i++ {
		if m.hashes[i] == emptyHash {
			continue
		}
		if d := probeLength(i, m.hashes[i], capacity, inv); d > longest {
			longest = d
		}
	}
	return longest
}
