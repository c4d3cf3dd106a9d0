package ordered

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 25 words
var words = []string{
	"reproducibility",
	"eruct",
	"acids",
	"flyspecks",
	"driveshafts",
	"volcanically",
	"discouraging",
	"acapnia",
	"phenazines",
	"hoarser",
	"abusing",
	"samara",
	"thromboses",
	"impolite",
	"drivennesses",
	"tenancy",
	"counterreaction",
	"kilted",
	"linty",
	"kistful",
	"biomarkers",
	"infusiblenesses",
	"capsulate",
	"reflowering",
	"heterophyllies",
}

func Test_Map_InsertGet(t *testing.T) {
	m := New[string, int]()
	for i, word := range words {
		m.Insert(word, i)
	}
	require.Equal(t, len(words), m.Len())
	for i, word := range words {
		v, ok := m.Get(word)
		require.True(t, ok, word)
		require.Equal(t, i, v)
	}
	_, ok := m.Get("missing")
	require.False(t, ok)
}

func Test_Map_DuplicateInsert(t *testing.T) {
	m := New[string, int]()
	m.Insert("k", 1)
	m.Insert("other", 7)
	m.Insert("k", 2)
	require.Equal(t, 2, m.Len())
	v, ok := m.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
	// overwriting must not move the entry
	require.Equal(t, []string{"k", "other"}, m.Keys())
}

func Test_Map_EmptyLookup(t *testing.T) {
	m := New[string, int]()
	_, ok := m.Get("anything")
	require.False(t, ok)
	require.False(t, m.Has("anything"))
	require.Nil(t, m.GetPtr("anything"))
	require.False(t, m.Erase("anything"))
	require.True(t, m.IsEmpty())
	// a fresh map must not have allocated its bucket arrays yet
	require.Nil(t, m.slots)
	require.Nil(t, m.hashes)
}

func Test_Map_InsertionOrderScenario(t *testing.T) {
	m := New[string, int]()
	m.Insert("A", 1)
	m.Insert("B", 2)
	m.Insert("C", 3)
	require.Equal(t, []string{"A", "B", "C"}, m.Keys())

	m.InsertFront("D", 4)
	require.Equal(t, []string{"D", "A", "B", "C"}, m.Keys())

	require.True(t, m.Erase("B"))
	require.Equal(t, []string{"D", "A", "C"}, m.Keys())
	_, ok := m.Get("B")
	require.False(t, ok)

	require.True(t, m.ReplaceKey("A", "E"))
	require.Equal(t, []string{"D", "E", "C"}, m.Keys())
	v, ok := m.Get("E")
	require.True(t, ok)
	require.Equal(t, 1, v)

	m.Insert("A", 5)
	require.Equal(t, []string{"D", "E", "C", "A"}, m.Keys())
}

func Test_Map_EraseAbsent(t *testing.T) {
	m := New[string, int]()
	for i, word := range words {
		m.Insert(word, i)
	}
	before := m.Keys()
	require.False(t, m.Erase("not-a-word"))
	require.Equal(t, len(words), m.Len())
	require.Equal(t, before, m.Keys())
}

func Test_Map_EraseReinsertMovesToTail(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)
	require.True(t, m.Erase("a"))
	m.Insert("a", 4)
	require.Equal(t, []string{"b", "c", "a"}, m.Keys())
}

func Test_Map_ResizeTransparency(t *testing.T) {
	const n = 1000
	m := New[int, int]()
	startCap := m.Cap()
	for i := 0; i < n; i++ {
		m.Insert(i, i*i)
	}
	require.Equal(t, n, m.Len())
	require.Greater(t, m.Cap(), startCap)
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		require.True(t, ok, i)
		require.Equal(t, i*i, v)
	}
	// insertion order rides through every rehash untouched
	keys := m.Keys()
	for i := 0; i < n; i++ {
		require.Equal(t, i, keys[i])
	}
}

func Test_Map_Uniqueness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := New[int, int]()
	for i := 0; i < 5000; i++ {
		k := rng.Intn(500)
		switch rng.Intn(3) {
		case 0, 1:
			m.Insert(k, i)
		case 2:
			m.Erase(k)
		}
	}
	seen := make(map[int]bool, m.Len())
	m.Range(func(key, _ int) bool {
		require.False(t, seen[key], "duplicate key %d in iteration", key)
		seen[key] = true
		return true
	})
	require.Equal(t, m.Len(), len(seen))
}

func Test_Map_RobinHoodBound(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 50000; i++ {
		m.Insert(i, i)
	}
	// probe lengths stay balanced at any load below the growth threshold
	longest := m.MaxProbeLength()
	assert.Less(t, longest, uint32(48), "max probe length %d", longest)
}

// constant hash function, every key collides and the cluster sits at the
// last bucket so every probe walk wraps around the array end
func collidingHash(int) uint32 { return 22 }

func Test_Map_WraparoundCluster(t *testing.T) {
	m := NewWith[int, int](collidingHash, 0)
	for i := 0; i < 10; i++ {
		m.Insert(i, i*10)
	}
	require.Equal(t, 10, m.Len())
	for i := 0; i < 10; i++ {
		v, ok := m.Get(i)
		require.True(t, ok, i)
		require.Equal(t, i*10, v)
	}
	// backward shift across the wrap point
	for _, k := range []int{5, 0, 9} {
		require.True(t, m.Erase(k))
	}
	require.Equal(t, 7, m.Len())
	for _, k := range []int{5, 0, 9} {
		require.False(t, m.Has(k))
	}
	for _, k := range []int{1, 2, 3, 4, 6, 7, 8} {
		v, ok := m.Get(k)
		require.True(t, ok, k)
		require.Equal(t, k*10, v)
	}
	require.Equal(t, []int{1, 2, 3, 4, 6, 7, 8}, m.Keys())
}

func Test_Map_ReplaceKey(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	// target already present and different: refused, nothing changes
	require.False(t, m.ReplaceKey("a", "b"))
	require.Equal(t, []string{"a", "b", "c"}, m.Keys())

	// source absent: refused
	require.False(t, m.ReplaceKey("zzz", "y"))

	// same key: allowed no-op, even for an absent key
	require.True(t, m.ReplaceKey("b", "b"))
	require.True(t, m.ReplaceKey("zzz", "zzz"))
	require.Equal(t, []string{"a", "b", "c"}, m.Keys())

	// the normal case keeps value and list position
	require.True(t, m.ReplaceKey("b", "x"))
	require.Equal(t, []string{"a", "x", "c"}, m.Keys())
	v, ok := m.Get("x")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.False(t, m.Has("b"))
	require.Equal(t, 3, m.Len())
}

func Test_Map_ReplaceKeyEmpty(t *testing.T) {
	m := New[string, int]()
	require.False(t, m.ReplaceKey("a", "b"))
}

func Test_Map_Clear(t *testing.T) {
	m := New[string, int]()
	for i, word := range words {
		m.Insert(word, i)
	}
	capacity := m.Cap()
	m.Clear()
	require.Equal(t, 0, m.Len())
	require.True(t, m.IsEmpty())
	require.Equal(t, capacity, m.Cap())
	require.False(t, m.Has(words[0]))
	// reusable after clearing
	m.Insert("again", 1)
	require.Equal(t, 1, m.Len())
	require.Equal(t, []string{"again"}, m.Keys())
}

func Test_Map_Copy(t *testing.T) {
	m := New[string, int]()
	for i, word := range words {
		m.Insert(word, i)
	}
	cp := m.Copy()
	require.Equal(t, m.Len(), cp.Len())
	require.Equal(t, m.Keys(), cp.Keys())

	// copies share no storage
	cp.Insert("extra", 99)
	cp.Erase(words[0])
	require.True(t, m.Has(words[0]))
	require.False(t, m.Has("extra"))
	require.Equal(t, len(words), m.Len())
}

func Test_Map_Reserve(t *testing.T) {
	m := New[int, int]()
	require.NoError(t, m.Reserve(10000))
	// still unallocated, only the rung was recorded
	require.Nil(t, m.slots)
	m.Insert(1, 1)
	require.GreaterOrEqual(t, m.Cap(), uint32(10000))

	// a big reserve must not disturb live entries
	for i := 0; i < 100; i++ {
		m.Insert(i, i)
	}
	require.NoError(t, m.Reserve(100000))
	require.Equal(t, 100, m.Len())
	for i := 0; i < 100; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		require.Equal(t, i, v)
	}

	err := m.Reserve(10)
	require.ErrorIs(t, err, ErrReserveTooSmall)

	err = m.Reserve(4_000_000_000)
	require.ErrorIs(t, err, ErrCapacityOverflow)
}

func Test_Map_NewWithOversizedHint(t *testing.T) {
	// a hint past the largest prime clamps to the top rung instead of
	// leaving the map at minimum capacity
	m := NewWith[int, int](nil, 4_000_000_000)
	require.Nil(t, m.slots)
	require.Equal(t, capacityPrimes[maxCapacityIndex], m.Cap())
}

func Test_Map_Load(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 1000; i++ {
		m.Insert(i, i)
	}
	load := m.Load()
	assert.Greater(t, load, 0.0)
	assert.LessOrEqual(t, load, maxOccupancy)
}

func Test_Map_EraseAll(t *testing.T) {
	m := New[string, int]()
	for i, word := range words {
		m.Insert(word, i)
	}
	for _, word := range words {
		require.True(t, m.Erase(word))
	}
	require.True(t, m.IsEmpty())
	require.Empty(t, m.Keys())
	it := m.First()
	require.False(t, it.Valid())
}

func Test_Map_Stress(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := New[string, int]()
	ref := make(map[string]int)
	for i := 0; i < 20000; i++ {
		k := fmt.Sprintf("key-%d", rng.Intn(3000))
		switch rng.Intn(4) {
		case 0, 1, 2:
			m.Insert(k, i)
			ref[k] = i
		case 3:
			_, inRef := ref[k]
			require.Equal(t, inRef, m.Erase(k))
			delete(ref, k)
		}
	}
	require.Equal(t, len(ref), m.Len())
	for k, v := range ref {
		got, ok := m.Get(k)
		require.True(t, ok, k)
		require.Equal(t, v, got)
	}
}

func Benchmark_Map_Insert(b *testing.B) {
	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}
	m := New[string, int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Insert(keys[i], i)
	}
}

func Benchmark_Map_Get(b *testing.B) {
	const n = 1 << 16
	m := New[int, int]()
	for i := 0; i < n; i++ {
		m.Insert(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(i & (n - 1))
	}
}
