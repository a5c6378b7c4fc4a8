// Package sampling provides the random sources and warping functions used to
// draw directions and surface points.
package sampling

import "math/rand/v2"

// RandGen is a side-effecting source of uniform samples in [0, 1). Every call
// advances the generator state, so a RandGen must be owned by a single
// estimator invocation at a time.
type RandGen interface {
	Float32() float32
}

// Rand is the default RandGen backed by a PCG generator. It is not safe for
// concurrent use.
type Rand struct {
	src *rand.Rand
}

// Create a new random source. Sources created with the same seed produce the
// same sequence.
func NewRand(seed uint64) *Rand {
	return &Rand{
		src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Get next sample in [0, 1).
func (r *Rand) Float32() float32 {
	return r.src.Float32()
}

// Replay is a RandGen that cycles through a fixed list of samples. It is
// useful for driving the samplers through known directions.
type Replay struct {
	values []float32
	next   int
}

// Create a replaying source. At least one value must be specified.
func NewReplay(values ...float32) *Replay {
	if len(values) == 0 {
		values = []float32{0}
	}
	return &Replay{values: values}
}

// Get next sample in the list, wrapping around at the end.
func (r *Replay) Float32() float32 {
	v := r.values[r.next]
	r.next = (r.next + 1) % len(r.values)
	return v
}

// Get the number of samples drawn so far modulo the list length.
func (r *Replay) Position() int {
	return r.next
}
