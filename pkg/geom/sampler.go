package geom

import "math/rand"

// Sampler draws the canonical [0,1) uniforms a path needs. Each pixel
// seeds a local stream from (pixelIndex, sampleIndex); draws within a
// sample advance monotonically and streams across pixels/samples never
// share state.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler seeds an independent stream for one (pixel, sample) pair.
// The mixing step is SplitMix64-style so adjacent (pixel, sample) pairs do
// not produce correlated low-order bits in the seed.
func NewSampler(pixelIndex, sampleIndex int64) Sampler {
	seed := mix64(uint64(pixelIndex)*0x9E3779B97F4A7C15 + uint64(sampleIndex)*0xBF58476D1CE4E5B9)
	return Sampler{rng: rand.New(rand.NewSource(int64(seed)))}
}

func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

func (s Sampler) Get1D() float64 {
	return s.rng.Float64()
}

func (s Sampler) Get2D() Vec2 {
	return Vec2{X: s.rng.Float64(), Y: s.rng.Float64()}
}
