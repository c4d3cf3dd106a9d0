// Package containers provides embeddable associative containers: an
// insertion-ordered hash map using robin hood hashing (pkg/hashmap/ordered),
// tree-backed sorted maps and sets (pkg/index/treemap, pkg/index/treeset),
// the key hashing strategies they share (pkg/hash/hasher) and an LRU cache
// built on top of the ordered map (pkg/generic/cache).
//
// Except where a package documents otherwise, the containers assume
// single-writer, non-concurrent access; callers sharing one across
// goroutines must bring their own synchronization.
package containers
