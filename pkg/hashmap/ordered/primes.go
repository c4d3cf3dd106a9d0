package ordered

import "math/bits"

// capacityPrimes is the fixed ladder of physical bucket counts. Growth walks
// this table one step at a time; the last entry is the hard capacity ceiling.
var capacityPrimes = [...]uint32{
	5,
	13,
	23,
	47,
	97,
	193,
	389,
	769,
	1543,
	3079,
	6151,
	12289,
	24593,
	49157,
	98317,
	196613,
	393241,
	786433,
	1572869,
	3145739,
	6291469,
	12582917,
	25165843,
	50331653,
	100663319,
	201326611,
	402653189,
	805306457,
	1610612741,
}

// capacityInverse holds the precomputed reciprocal of each prime for the
// fastmod reduction below, ceil(2^64 / p).
var capacityInverse [len(capacityPrimes)]uint64

func init() {
	for i, p := range capacityPrimes {
		capacityInverse[i] = ^uint64(0)/uint64(p) + 1
	}
}

const (
	minCapacityIndex = 2
	maxCapacityIndex = len(capacityPrimes) - 1

	// maxOccupancy is the load factor ceiling; an insert that would push the
	// live count past it grows the table first.
	maxOccupancy = 0.75

	// emptyHash marks an unoccupied bucket. Real key hashes are canonicalized
	// so they never collide with it.
	emptyHash = uint32(0)
)

// fastmod computes n % d given c = ceil(2^64 / d), avoiding the hardware
// divide on the hot path. See Lemire, "Faster remainders when the divisor
// is a constant".
func fastmod(n uint32, c uint64, d uint32) uint32 {
	lowbits := c * uint64(n)
	hi, _ := bits.Mul64(lowbits, uint64(d))
	return uint32(hi)
}

// probeLength is the circular distance from the home bucket of hash to pos.
// The walk wraps at most once, so one conditional subtract replaces a
// second modulo.
func probeLength(pos, hash, capacity uint32, inv uint64) uint32 {
	home := fastmod(hash, inv, capacity)
	distance := pos + capacity - home
	if distance >= capacity {
		distance -= capacity
	}
	return distance
}

// nextIndex advances a bucket position by one with wraparound
func nextIndex(pos, capacity uint32) uint32 {
	pos++
	if pos == capacity {
		pos = 0
	}
	return pos
}
