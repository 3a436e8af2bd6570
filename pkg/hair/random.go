package hair

import "math"

// defaultSeed replaces a zero seed, which would make xorshift emit zeros forever.
const defaultSeed uint64 = 0x9E3779B97F4A7C15

// XorShift64 is a small deterministic generator. The same seed always
// produces the same sequence, so strand sampling is reproducible.
// It is not safe for concurrent use.
type XorShift64 struct {
	state uint64
}

// NewXorShift64 returns a generator seeded with seed.
func NewXorShift64(seed uint64) *XorShift64 {
	if seed == 0 {
		seed = defaultSeed
	}
	return &XorShift64{state: seed}
}

// Uint64 advances the state and returns it.
func (x *XorShift64) Uint64() uint64 {
	v := x.state
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	x.state = v
	return v
}

// Float64 returns a value in [0, 1].
func (x *XorShift64) Float64() float64 {
	return float64(x.Uint64()) / float64(math.MaxUint64)
}

// Float32 returns a value in [0, 1].
func (x *XorShift64) Float32() float32 {
	return float32(x.Float64())
}

// Intn returns a value in [0, n).
func (x *XorShift64) Intn(n int) int {
	i := int(x.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
