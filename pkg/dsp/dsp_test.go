package dsp

import (
	"math"
	"testing"
	"time"
)

func TestFollower_StepResponse(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000.0
	tau := 100 * time.Millisecond
	f := NewFollower(sampleRate, tau, 0)

	// After one time constant the follower should sit near 1 - 1/e of the
	// step, after five it should have effectively converged.
	samplesPerTau := int(sampleRate * tau.Seconds())
	for i := 0; i < samplesPerTau; i++ {
		f.Process(1)
	}
	want := 1 - 1/math.E
	if got := float64(f.Value()); math.Abs(got-want) > 0.01 {
		t.Errorf("value after one time constant = %v, want ~%v", got, want)
	}

	for i := 0; i < 4*samplesPerTau; i++ {
		f.Process(1)
	}
	if got := f.Value(); got < 0.99 {
		t.Errorf("value after five time constants = %v, want > 0.99", got)
	}
}

func TestFollower_MonotoneTowardTarget(t *testing.T) {
	t.Parallel()

	f := NewFollower(48000, 50*time.Millisecond, 1)
	prev := f.Value()
	for i := 0; i < 10000; i++ {
		v := f.Process(0)
		if v > prev {
			t.Fatalf("follower moved away from target: %v -> %v", prev, v)
		}
		prev = v
	}
}

func TestFollower_Reset(t *testing.T) {
	t.Parallel()

	f := NewFollower(48000, 100*time.Millisecond, 0)
	f.Reset(0.75)
	if f.Value() != 0.75 {
		t.Errorf("value after reset = %v, want 0.75", f.Value())
	}
}

func TestLowPass_PassesDC(t *testing.T) {
	t.Parallel()

	l := NewLowPass(48000, 1000)
	var out float32
	for i := 0; i < 48000; i++ {
		out = l.Process(0.5)
	}
	if math.Abs(float64(out)-0.5) > 1e-3 {
		t.Errorf("DC output = %v, want 0.5", out)
	}
}

func TestLowPass_AttenuatesAboveCutoff(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000.0
	l := NewLowPass(sampleRate, 200)

	// A 8 kHz tone through a 200 Hz one-pole should lose most of its energy.
	var inPower, outPower float64
	for i := 0; i < 48000; i++ {
		x := float32(math.Sin(2 * math.Pi * 8000 * float64(i) / sampleRate))
		y := l.Process(x)
		inPower += float64(x * x)
		outPower += float64(y * y)
	}
	if outPower > inPower/10 {
		t.Errorf("output power %v not attenuated against input power %v", outPower, inPower)
	}
}

func TestLowPass_NyquistCutoffIsTransparent(t *testing.T) {
	t.Parallel()

	l := NewLowPass(48000, 24000)
	if got := l.Process(0.25); got != 0.25 {
		t.Errorf("sample through transparent filter = %v, want 0.25", got)
	}
}
