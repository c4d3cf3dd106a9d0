package hasher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_String(t *testing.T) {
	require.Equal(t, String("hello"), String("hello"))
	require.NotEqual(t, String("hello"), String("world"))
}

func Test_Uint64(t *testing.T) {
	require.Equal(t, Uint64(42), Uint64(42))
	require.NotEqual(t, Uint64(42), Uint64(43))
}

func Test_For_Kinds(t *testing.T) {
	require.Equal(t, String("k"), For[string]()("k"))
	require.Equal(t, Uint64(42), For[uint64]()(42))
	require.Equal(t, Uint64(7), For[int]()(7))
	neg := int64(-7)
	require.Equal(t, Uint64(uint64(neg)), For[int]()(-7))
	require.Equal(t, Uint64(1), For[bool]()(true))
	require.Equal(t, Uint64(0), For[bool]()(false))
}

func Test_For_Unsupported(t *testing.T) {
	type pair struct{ a, b int }
	require.Panics(t, func() { For[pair]() })
}

func Test_Distribution(t *testing.T) {
	// a crude spread check: distinct small integers should not pile into a
	// handful of hash values
	hash := For[int]()
	seen := make(map[uint32]bool)
	const n = 10000
	for i := 0; i < n; i++ {
		seen[hash(i)] = true
	}
	require.Greater(t, len(seen), n*99/100)
}

func Test_Collisions(t *testing.T) {
	hash := For[string]()
	seen := make(map[uint32]string)
	var collisions int
	for i := 0; i < 5000; i++ {
		key := fmt.Sprintf("key-%d", i)
		h := hash(key)
		if _, ok := seen[h]; ok {
			collisions++
		}
		seen[h] = key
	}
	// birthday bound for 5000 keys over 2^32 is ~3 expected collisions
	require.Less(t, collisions, 10)
}
