package hasher

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Func is a type definition for what a key hash function should look like.
// Implementations must be deterministic for the lifetime of the container
// that uses them.
type Func[K comparable] func(key K) uint32

// String hashes a string key
func String(key string) uint32 {
	return fold(xxhash.Sum64String(key))
}

// Bytes hashes a byte slice key
func Bytes(key []byte) uint32 {
	return fold(xxhash.Sum64(key))
}

// Uint64 hashes an unsigned integer key
func Uint64(key uint64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return fold(xxhash.Sum64(buf[:]))
}

// fold collapses a 64 bit hash down to the 32 bits the containers store
func fold(h uint64) uint32 {
	return uint32(h ^ h>>32)
}

// For returns a default hash function for the key type K. It covers the
// scalar and string kinds; any other key type must come with its own Func.
func For[K comparable]() Func[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint32 { return String(any(k).(string)) }
	case int:
		return func(k K) uint32 { return Uint64(uint64(any(k).(int))) }
	case int8:
		return func(k K) uint32 { return Uint64(uint64(any(k).(int8))) }
	case int16:
		return func(k K) uint32 { return Uint64(uint64(any(k).(int16))) }
	case int32:
		return func(k K) uint32 { return Uint64(uint64(any(k).(int32))) }
	case int64:
		return func(k K) uint32 { return Uint64(uint64(any(k).(int64))) }
	case uint:
		return func(k K) uint32 { return Uint64(uint64(any(k).(uint))) }
	case uint8:
		return func(k K) uint32 { return Uint64(uint64(any(k).(uint8))) }
	case uint16:
		return func(k K) uint32 { return Uint64(uint64(any(k).(uint16))) }
	case uint32:
		return func(k K) uint32 { return Uint64(uint64(any(k).(uint32))) }
	case uint64:
		return func(k K) uint32 { return Uint64(any(k).(uint64)) }
	case uintptr:
		return func(k K) uint32 { return Uint64(uint64(any(k).(uintptr))) }
	case float32:
		return func(k K) uint32 { return Uint64(uint64(math.Float32bits(any(k).(float32)))) }
	case float64:
		return func(k K) uint32 { return Uint64(math.Float64bits(any(k).(float64))) }
	case bool:
		return func(k K) uint32 {
			if any(k).(bool) {
				return Uint64(1)
			}
			return Uint64(0)
		}
	default:
		panic(fmt.Sprintf("hasher: no default hash function for key type %T, supply a custom one", zero))
	}
}
