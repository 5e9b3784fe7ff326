// Package dsp holds the one-pole primitives the render pipeline composes:
// a parameter follower for click-free control changes, and a low-pass
// filter for tonal shaping. Both are single float32 state machines with no
// allocation per sample, safe to tick from an audio callback.
package dsp

import (
	"math"
	"time"
)

// Follower smooths a control parameter toward its target with a one-pole
// exponential response. A step in the target reaches ~63% of its final
// value after one time constant, which keeps control-rate parameter jumps
// from producing audible clicks at sample rate.
type Follower struct {
	alpha float32
	value float32
}

// NewFollower creates a follower ticking at sampleRate with the given time
// constant, starting from initial.
func NewFollower(sampleRate float64, timeConstant time.Duration, initial float32) Follower {
	return Follower{
		alpha: onePoleAlpha(sampleRate, timeConstant),
		value: initial,
	}
}

// Process advances the follower one sample toward target and returns the
// smoothed value.
func (f *Follower) Process(target float32) float32 {
	f.value += f.alpha * (target - f.value)
	return f.value
}

// Value returns the current smoothed value without advancing.
func (f *Follower) Value() float32 {
	return f.value
}

// Reset snaps the follower to v, skipping the transition.
func (f *Follower) Reset(v float32) {
	f.value = v
}

func onePoleAlpha(sampleRate float64, timeConstant time.Duration) float32 {
	tau := timeConstant.Seconds()
	if tau <= 0 || sampleRate <= 0 {
		return 1
	}
	return float32(1 - math.Exp(-1/(tau*sampleRate)))
}
