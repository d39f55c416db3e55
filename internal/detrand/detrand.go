// Package detrand provides a stateless, deterministic scalar generator.
//
// Every value is a pure function of (seed, key): the same pair yields the
// same float on any platform, in any call order. Callers derive independent
// streams by offsetting keys from a base, not by advancing hidden state, so
// individual decisions stay reproducible even when other decisions are
// skipped or reordered.
package detrand

import "math"

// mix64 is the splitmix64 finalizer. It scrambles the full 64-bit state so
// that adjacent inputs produce unrelated outputs.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Bits returns the raw 64-bit hash for (seed, key).
func Bits(seed, key int64) uint64 {
	return mix64(uint64(seed) ^ uint64(key)*0x9e3779b97f4a7c15)
}

// Value returns a float in [0, 1) for (seed, key).
func Value(seed, key int64) float64 {
	// Top 53 bits, the full precision of a float64 mantissa.
	return float64(Bits(seed, key)>>11) / (1 << 53)
}

// Range returns a float in [lo, hi) for (seed, key).
func Range(seed, key int64, lo, hi float64) float64 {
	return lo + Value(seed, key)*(hi-lo)
}

// IntN returns an int in [0, n) for (seed, key). n must be positive.
func IntN(seed, key int64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Bits(seed, key) % uint64(n))
}

// Angle returns a float in [0, 2π) for (seed, key).
func Angle(seed, key int64) float64 {
	return Value(seed, key) * 2 * math.Pi
}

// TileSeed composes a session seed and tile coordinates into a batch seed.
// Adjacent tiles must not correlate, so the coordinates pass through the
// same mixer as everything else.
func TileSeed(sessionSeed int64, tx, ty int) int64 {
	ux := uint64(uint32(int32(tx)))
	uy := uint64(uint32(int32(ty)))
	return int64(mix64(uint64(sessionSeed) ^ ux*0x9e3779b97f4a7c15 ^ uy*0xbf58476d1ce4e5b9))
}
