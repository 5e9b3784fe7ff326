// Package params carries the gain and filter parameters across the
// real-time boundary: the control loop is the single writer, the render
// callback the single reader, and neither side ever takes a lock.
package params

import "sync/atomic"

// GainParameters is one consistent set of render parameters, derived from a
// pose snapshot by the control loop.
type GainParameters struct {
	// Overall amplitude: distance attenuation times the room wall factor.
	// The renderer smooths this before applying it.
	Amplitude float32

	// Per-ear panning gains. LeftGain + RightGain == 1.
	LeftGain  float32
	RightGain float32

	// Target low-pass cutoff in Hz. The renderer transitions toward it
	// smoothly rather than stepping.
	FilterCutoff float32
}

// Publisher publishes GainParameters snapshots from the control loop to the
// render path. Publication is an atomic pointer swap, so the reader always
// sees one complete parameter set, never a partial update, and Load is
// wait-free and allocation-free as the render hot path requires.
type Publisher struct {
	current atomic.Pointer[GainParameters]
}

// NewPublisher creates a publisher holding the given initial parameters.
func NewPublisher(initial GainParameters) *Publisher {
	p := &Publisher{}
	p.current.Store(&initial)
	return p
}

// Publish commits a new parameter set wholesale. Control loop only.
func (p *Publisher) Publish(g GainParameters) {
	p.current.Store(&g)
}

// Load returns the most recently published parameters. Wait-free; safe to
// call from the audio callback.
func (p *Publisher) Load() GainParameters {
	return *p.current.Load()
}
