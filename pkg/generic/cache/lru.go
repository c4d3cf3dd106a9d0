package cache

import (
	"log"
	"sync"

	"github.com/scottcagno/containers/pkg/hashmap/ordered"
)

// DefaultSize is the max size of the cache before
// the older items automatically get evicted
const DefaultSize = 256

// LRU is an LRU cache built on the insertion-ordered hash map: the most
// recently used item sits at the front of the map's iteration order and
// eviction takes the tail. Unlike the containers underneath it, the cache
// carries its own lock and is safe for concurrent use.
type LRU[K comparable, V any] struct {
	size  int // max num of items
	items *ordered.Map[K, V]
	mu    sync.RWMutex
}

func NewLRU[K comparable, V any](size int) *LRU[K, V] {
	if size < 1 {
		size = DefaultSize
	}
	return &LRU[K, V]{
		size:  size,
		items: ordered.New[K, V](),
	}
}

// touch moves an existing key to the front of the iteration order
func (l *LRU[K, V]) touch(key K, value V) {
	l.items.Erase(key)
	l.items.InsertFront(key, value)
}

// evict removes and returns the least recently used item
func (l *LRU[K, V]) evict() (K, V) {
	it := l.items.Last()
	key, value := it.Key(), it.Value()
	l.items.Erase(key)
	return key, value
}

// Resize sets the max size of the LRU cache and returns the evicted items.
// It will panic if the size is less than one item. If the value is less
// than the number of items in the cache, then items will be evicted.
func (l *LRU[K, V]) Resize(size int) (ekeys []K, evals []V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if size < 1 {
		log.Panicln("invalid size")
	}
	for size < l.items.Len() {
		k, v := l.evict()
		ekeys, evals = append(ekeys, k), append(evals, v)
	}
	l.size = size
	return ekeys, evals
}

// Len returns the current length of the cache
func (l *LRU[K, V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items.Len()
}

// SetEvicted inserts or replaces a value for a given key.
// The item is returned if this operation causes an eviction.
func (l *LRU[K, V]) SetEvicted(key K, value V) (prev V, replaced bool, ekey K, eval V, evicted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p := l.items.GetPtr(key); p != nil {
		prev, replaced = *p, true
		l.touch(key, value)
		return prev, replaced, ekey, eval, evicted
	}
	if l.items.Len() == l.size {
		ekey, eval = l.evict()
		evicted = true
	}
	l.items.InsertFront(key, value)
	return prev, replaced, ekey, eval, evicted
}

// Set inserts or replaces a value for the given key
func (l *LRU[K, V]) Set(key K, value V) (V, bool) {
	prev, replaced, _, _, _ := l.SetEvicted(key, value)
	return prev, replaced
}

// Get returns a value for the given key (if it exists) and
// refreshes its recency
func (l *LRU[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	value, ok := l.items.Get(key)
	if !ok {
		return value, false
	}
	l.touch(key, value)
	return value, true
}

// Peek returns a value for the given key (if it exists) without
// refreshing its recency
func (l *LRU[K, V]) Peek(key K) (V, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items.Get(key)
}

// Del removes and returns the value for the given key (if it exists)
func (l *LRU[K, V]) Del(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	value, ok := l.items.Get(key)
	if !ok {
		return value, false
	}
	l.items.Erase(key)
	return value, true
}

// Range iterates over all keys and values in the order of most
// recently used to least recently used items.
func (l *LRU[K, V]) Range(iter func(key K, value V) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.items.Range(ordered.Iterator[K, V](iter))
}

// Reverse iterates over all keys and values in the order of least
// recently used to most recently used items.
func (l *LRU[K, V]) Reverse(iter func(key K, value V) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.items.RangeReverse(ordered.Iterator[K, V](iter))
}
