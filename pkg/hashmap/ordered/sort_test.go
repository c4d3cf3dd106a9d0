package ordered

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Map_Sort(t *testing.T) {
	m := New[string, int]()
	m.Insert("pear", 1)
	m.Insert("apple", 2)
	m.Insert("quince", 3)
	m.Insert("fig", 4)

	m.Sort(func(a, b string) bool { return a < b })
	require.Equal(t, []string{"apple", "fig", "pear", "quince"}, m.Keys())

	// list links must be symmetric after relinking
	var reversed []string
	m.RangeReverse(func(k string, _ int) bool {
		reversed = append(reversed, k)
		return true
	})
	require.Equal(t, []string{"quince", "pear", "fig", "apple"}, reversed)

	// values travel with their keys
	v, ok := m.Get("apple")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func Test_Map_SortNearlySorted(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 100; i++ {
		m.Insert(i, i)
	}
	// two out-of-place entries, the intended workload
	m.Erase(3)
	m.Erase(60)
	m.Insert(3, 3)
	m.Insert(60, 60)

	m.Sort(func(a, b int) bool { return a < b })
	keys := m.Keys()
	require.True(t, sort.IntsAreSorted(keys))
	require.Len(t, keys, 100)
}

func Test_Map_SortShuffled(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := New[int, int]()
	for _, k := range rng.Perm(500) {
		m.Insert(k, k)
	}
	m.Sort(func(a, b int) bool { return a < b })
	keys := m.Keys()
	require.True(t, sort.IntsAreSorted(keys))

	// bucket state is untouched by sorting, lookups still work
	for i := 0; i < 500; i++ {
		v, ok := m.Get(i)
		require.True(t, ok, i)
		require.Equal(t, i, v)
	}
}

func Test_Map_SortSmall(t *testing.T) {
	m := New[string, int]()
	m.Sort(func(a, b string) bool { return a < b })
	require.Equal(t, 0, m.Len())

	m.Insert("only", 1)
	m.Sort(func(a, b string) bool { return a < b })
	require.Equal(t, []string{"only"}, m.Keys())
}
