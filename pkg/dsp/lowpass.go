package dsp

import "math"

// LowPass is a one-pole low-pass filter with a settable cutoff.
// y[n] = y[n-1] + a * (x[n] - y[n-1]), a derived from the cutoff.
type LowPass struct {
	sampleRate float64
	cutoff     float32
	alpha      float32
	state      float32
}

// NewLowPass creates a filter ticking at sampleRate with an initial cutoff
// in Hz.
func NewLowPass(sampleRate float64, cutoff float32) LowPass {
	l := LowPass{sampleRate: sampleRate}
	l.SetCutoff(cutoff)
	return l
}

// SetCutoff moves the cutoff frequency. Cutoffs at or above the Nyquist
// frequency make the filter transparent. Safe to call per sample; no
// allocation.
func (l *LowPass) SetCutoff(cutoff float32) {
	if cutoff == l.cutoff {
		return
	}
	l.cutoff = cutoff
	if float64(cutoff) >= l.sampleRate/2 {
		l.alpha = 1
		return
	}
	l.alpha = float32(1 - math.Exp(-2*math.Pi*float64(cutoff)/l.sampleRate))
}

// Cutoff returns the current cutoff frequency in Hz.
func (l *LowPass) Cutoff() float32 {
	return l.cutoff
}

// Process filters one sample.
func (l *LowPass) Process(x float32) float32 {
	l.state += l.alpha * (x - l.state)
	return l.state
}
