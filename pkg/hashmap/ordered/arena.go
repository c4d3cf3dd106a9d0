package ordered

// node carries one live key/value pair along with its insertion-order list
// links. Links are arena handles, not pointers, so they stay valid across
// arena growth and table resizes alike.
type node[K comparable, V any] struct {
	key  K
	val  V
	prev uint32
	next uint32
}

// arena is the node store backing a Map. Handles are 1-based indexes into
// the nodes slice; handle 0 means "none". Released slots are recycled
// through a free list, so a handle uniquely identifies one live node for
// that node's whole lifetime.
type arena[K comparable, V any] struct {
	nodes []node[K, V]
	free  []uint32
}

// alloc constructs a node in place and returns its handle
func (a *arena[K, V]) alloc(key K, val V) uint32 {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		nd := &a.nodes[h-1]
		nd.key, nd.val = key, val
		nd.prev, nd.next = 0, 0
		return h
	}
	a.nodes = append(a.nodes, node[K, V]{key: key, val: val})
	return uint32(len(a.nodes))
}

// release destroys the node behind h and recycles its slot. The node is
// zeroed so key/value references are dropped for the collector.
func (a *arena[K, V]) release(h uint32) {
	a.nodes[h-1] = node[K, V]{}
	a.free = append(a.free, h)
}

// at resolves a handle. The returned pointer is only good until the next
// alloc, which may move the backing slice.
func (a *arena[K, V]) at(h uint32) *node[K, V] {
	return &a.nodes[h-1]
}

// reset destroys every node but keeps the backing storage for reuse
func (a *arena[K, V]) reset() {
	for i := range a.nodes {
		a.nodes[i] = node[K, V]{}
	}
	a.nodes = a.nodes[:0]
	a.free = a.free[:0]
}
