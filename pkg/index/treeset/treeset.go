package treeset

import "github.com/google/btree"

const degree = 32

type member string

func (m member) Less(than btree.Item) bool {
	return m < than.(member)
}

// Set is a sorted set of string keys with in-order traversal and nearest-key
// lookup, the set counterpart of treemap.Map. Not safe for concurrent use.
type Set struct {
	tree *btree.BTree
}

// NewSet returns an empty ordered set
func NewSet() *Set {
	return &Set{tree: btree.New(degree)}
}

// Add inserts key and reports whether it was newly added
func (s *Set) Add(key string) bool {
	return s.tree.ReplaceOrInsert(member(key)) == nil
}

// Has reports whether key is present
func (s *Set) Has(key string) bool {
	return s.tree.Has(member(key))
}

// Del removes key and reports whether it was present
func (s *Set) Del(key string) bool {
	return s.tree.Delete(member(key)) != nil
}

// Min returns the smallest key, or false when empty
func (s *Set) Min() (string, bool) {
	return unpack(s.tree.Min())
}

// Max returns the largest key, or false when empty
func (s *Set) Max() (string, bool) {
	return unpack(s.tree.Max())
}

// Floor returns the largest key not greater than key
func (s *Set) Floor(key string) (string, bool) {
	var found btree.Item
	s.tree.DescendLessOrEqual(member(key), func(item btree.Item) bool {
		found = item
		return false
	})
	return unpack(found)
}

// Ceil returns the smallest key not less than key
func (s *Set) Ceil(key string) (string, bool) {
	var found btree.Item
	s.tree.AscendGreaterOrEqual(member(key), func(item btree.Item) bool {
		found = item
		return false
	})
	return unpack(found)
}

// Range visits every key in ascending order while fn returns true
func (s *Set) Range(fn func(key string) bool) {
	s.tree.Ascend(func(item btree.Item) bool {
		return fn(string(item.(member)))
	})
}

// RangeReverse visits every key in descending order while fn returns true
func (s *Set) RangeReverse(fn func(key string) bool) {
	s.tree.Descend(func(item btree.Item) bool {
		return fn(string(item.(member)))
	})
}

// Copy returns an independent copy of the set
func (s *Set) Copy() *Set {
	return &Set{tree: s.tree.Clone()}
}

// Len returns the number of keys
func (s *Set) Len() int {
	return s.tree.Len()
}

func unpack(item btree.Item) (string, bool) {
	if item == nil {
		return "", false
	}
	return string(item.(member)), true
}
