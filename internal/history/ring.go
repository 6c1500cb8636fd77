// Package history provides the fixed-capacity sample history shared by the
// FIR, downmix and LMS style engines.
package history

import "github.com/tphakala/go-streamdsp/internal/simdops"

// Ring is a circular history buffer holding the most recent Capacity() input
// samples. It is owned by exactly one filter instance and is not safe for
// concurrent use.
//
// Every sample is written twice, at head and head+capacity, so that any run of
// up to capacity most recent samples is contiguous in memory and can be handed
// to a vector dot product without unwrapping.
type Ring[F simdops.Float] struct {
	data     []F
	capacity int
	head     int // slot of the most recently inserted sample
}

// NewRing creates a zero-filled ring with the given capacity.
// Capacities below one are raised to one.
func NewRing[F simdops.Float](capacity int) *Ring[F] {
	if capacity < 1 {
		capacity = 1
	}

	return &Ring[F]{
		data:     make([]F, mirrorFactor*capacity),
		capacity: capacity,
		head:     capacity - 1,
	}
}

// Insert advances the cursor by one slot (mod capacity) and stores x there.
func (r *Ring[F]) Insert(x F) {
	r.head++
	if r.head == r.capacity {
		r.head = 0
	}
	r.data[r.head] = x
	r.data[r.head+r.capacity] = x
}

// At returns the sample inserted offsetBack insertions ago; At(0) is the
// newest sample. offsetBack must be in [0, Capacity()).
func (r *Ring[F]) At(offsetBack int) F {
	return r.data[r.head+r.capacity-offsetBack]
}

// Window returns the n most recent samples, oldest first, as a contiguous
// slice aliasing the ring storage. The slice is valid until the next Insert.
// n must be in [1, Capacity()].
func (r *Ring[F]) Window(n int) []F {
	end := r.head + r.capacity + 1
	return r.data[end-n : end]
}

// Cursor returns the slot index of the most recently inserted sample.
func (r *Ring[F]) Cursor() int {
	return r.head
}

// Capacity returns the number of samples the ring retains.
func (r *Ring[F]) Capacity() int {
	return r.capacity
}

// Reset zeroes the history and rewinds the cursor.
func (r *Ring[F]) Reset() {
	clear(r.data)
	r.head = r.capacity - 1
}
