// Package wavefront implements the data-parallel ray-queue pipeline:
// per-bounce kernels read one queue of path states and atomically
// append survivors to the next, rather than a shape where each goroutine
// owns one path end-to-end.
package wavefront

import (
	"sync/atomic"

	"github.com/wavepath/tracer/pkg/geom"
)

// PathState is one in-flight path's mutable state between bounces:
// which pixel it contributes to, its own RNG, accumulated throughput,
// and the info needed to MIS-weight a BSDF-sampled light hit found at
// the next bounce. Radiance is not carried here; kernels add it to the
// film directly.
type PathState struct {
	PixelX, PixelY int
	SampleIndex    int64
	Sampler        geom.Sampler

	Origin, Direction geom.Vec3
	Throughput        geom.Vec3

	// LastBSDFPdf is the solid-angle PDF the previous bounce's
	// SampleBSDF produced for Direction; LastSpecular is true if that
	// bounce was a delta-distribution sample (never true for the matte
	// material, carried for when a specular material is added).
	LastBSDFPdf  float64
	LastSpecular bool

	Depth int
}

// ShadowState is a pending shadow-ray test produced by NEE: if the ray
// from Origin toward the light is unoccluded, Contribution is added to
// the film at (PixelX, PixelY).
type ShadowState struct {
	PixelX, PixelY int
	Origin         geom.Vec3
	Direction      geom.Vec3
	TMax           float64
	Contribution   geom.Vec3
}

// Queue is a fixed-capacity, concurrency-safe append buffer for one
// kernel stage's output. Capacity is sized once per Context (at most one
// entry per path per bounce) so Append never needs to grow the backing
// array; count is the only point of contention, via atomic fetch-add.
type Queue[T any] struct {
	items []T
	count int32
}

// NewQueue allocates a queue able to hold up to capacity items.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, capacity)}
}

// Append reserves the next slot and stores item, returning the slot
// index. Safe for concurrent use by many goroutines; panics if the
// queue's capacity is exceeded, since that indicates a path-count
// invariant was violated upstream.
func (q *Queue[T]) Append(item T) int {
	idx := atomic.AddInt32(&q.count, 1) - 1
	if int(idx) >= len(q.items) {
		panic("wavefront: queue capacity exceeded")
	}
	q.items[idx] = item
	return int(idx)
}

// Len returns the number of items currently appended.
func (q *Queue[T]) Len() int { return int(atomic.LoadInt32(&q.count)) }

// Items returns the slice of appended items (valid up to Len()).
func (q *Queue[T]) Items() []T { return q.items[:q.Len()] }

// Reset empties the queue for reuse on the next bounce, keeping its
// backing array.
func (q *Queue[T]) Reset() {
	atomic.StoreInt32(&q.count, 0)
}
