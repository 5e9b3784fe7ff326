package render

import (
	"math"
	"testing"
	"time"

	"github.com/earshot-audio/earshot/internal/params"
	"github.com/earshot-audio/earshot/internal/source"
	"github.com/earshot-audio/earshot/pkg/frame"
)

const sampleRate = 48000.0

// constSource always produces the same frame, like a held oscillator.
type constSource struct {
	s frame.StereoSample
}

func (c *constSource) Next() frame.StereoSample { return c.s }

// transparentConfig keeps the filter at Nyquist so only the stage under
// inspection shapes the signal.
func transparentConfig() Config {
	return Config{
		SampleRate:            sampleRate,
		AmplitudeTimeConstant: 100 * time.Millisecond,
		CutoffTimeConstant:    100 * time.Millisecond,
		InitialCutoff:         sampleRate / 2,
	}
}

func transparentParams() params.GainParameters {
	return params.GainParameters{
		Amplitude:    1,
		LeftGain:     0.5,
		RightGain:    0.5,
		FilterCutoff: sampleRate / 2,
	}
}

func TestRenderer_StageOrder(t *testing.T) {
	t.Parallel()

	r := NewRenderer(&constSource{}, params.NewPublisher(transparentParams()), transparentConfig())
	want := []string{"amplitude", "filter", "pan"}
	got := r.StageNames()
	if len(got) != len(want) {
		t.Fatalf("stage names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRenderer_PanSplit(t *testing.T) {
	t.Parallel()

	p := transparentParams()
	p.LeftGain = 0.25
	p.RightGain = 0.75
	r := NewRenderer(&constSource{s: frame.StereoSample{Left: 1, Right: 1}},
		params.NewPublisher(p), transparentConfig())

	// Amplitude follower starts at 1 and the filter is transparent, so the
	// very first frame already carries the pan split.
	got := r.Next()
	if math.Abs(float64(got.Left)-0.25) > 1e-6 || math.Abs(float64(got.Right)-0.75) > 1e-6 {
		t.Errorf("frame = %+v, want (0.25, 0.75)", got)
	}
}

func TestRenderer_AmplitudeStepIsSmoothed(t *testing.T) {
	t.Parallel()

	// Hard-left pan keeps the left channel at the smoothed amplitude.
	initial := transparentParams()
	initial.LeftGain = 1
	initial.RightGain = 0
	pub := params.NewPublisher(initial)
	r := NewRenderer(&constSource{s: frame.StereoSample{Left: 1, Right: 1}},
		pub, transparentConfig())
	r.Next()

	// Drop the published amplitude to zero; the rendered level must ramp
	// down, not step.
	p := initial
	p.Amplitude = 0
	pub.Publish(p)

	first := r.Next()
	if first.Left < 0.9 {
		t.Errorf("first frame after amplitude drop = %v, want a gradual decay from ~1", first.Left)
	}

	prev := first.Left
	for i := 0; i < int(sampleRate); i++ { // one second, ten time constants
		s := r.Next()
		if s.Left > prev+1e-6 {
			t.Fatalf("amplitude decay not monotone: %v -> %v", prev, s.Left)
		}
		prev = s.Left
	}
	if prev > 0.01 {
		t.Errorf("level after one second = %v, want near 0", prev)
	}
}

func TestRenderer_CutoffTransitionsSmoothly(t *testing.T) {
	t.Parallel()

	pub := params.NewPublisher(transparentParams())
	cfg := transparentConfig()
	r := NewRenderer(&constSource{s: frame.StereoSample{Left: 1, Right: 1}}, pub, cfg)
	r.Next()

	// Publish a much lower cutoff. DC still passes a one-pole low-pass, so
	// the steady-state level is unchanged; this checks the transition does
	// not glitch the signal outside [0, 1].
	p := transparentParams()
	p.FilterCutoff = 100
	pub.Publish(p)

	for i := 0; i < int(sampleRate/2); i++ {
		s := r.Next()
		if s.Left < -1e-6 || s.Left > 1+1e-6 {
			t.Fatalf("sample %d = %v outside [0,1] during cutoff sweep", i, s.Left)
		}
	}
}

func TestRenderer_InterleavedFill(t *testing.T) {
	t.Parallel()

	p := transparentParams()
	p.LeftGain = 1
	p.RightGain = 0
	r := NewRenderer(&constSource{s: frame.StereoSample{Left: 0.5, Right: 0.5}},
		params.NewPublisher(p), transparentConfig())

	out := make(frame.PCMFrame, 8)
	r.Render(out, 2)
	for i := 0; i < len(out); i += 2 {
		if math.Abs(float64(out[i])-0.5) > 1e-6 {
			t.Errorf("out[%d] = %v, want 0.5 (left)", i, out[i])
		}
		if math.Abs(float64(out[i+1])) > 1e-6 {
			t.Errorf("out[%d] = %v, want 0 (right)", i+1, out[i+1])
		}
	}

	// Mono layout receives the left channel.
	mono := make(frame.PCMFrame, 4)
	r.Render(mono, 1)
	for i, v := range mono {
		if math.Abs(float64(v)-0.5) > 1e-6 {
			t.Errorf("mono[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestRenderer_HotPathDoesNotAllocate(t *testing.T) {
	buf := make([]frame.StereoSample, 64)
	for i := range buf {
		buf[i] = frame.StereoSample{Left: 0.1, Right: 0.1}
	}
	pub := params.NewPublisher(transparentParams())

	cases := map[string]source.FrameSource{
		"playback":    source.NewPlayback(buf, 0, source.EndLoop),
		"livecapture": source.NewLiveCapture(source.NewFrameQueue(64)),
	}
	out := make(frame.PCMFrame, 128)

	for name, src := range cases {
		r := NewRenderer(src, pub, transparentConfig())
		allocs := testing.AllocsPerRun(100, func() {
			r.Render(out, 2)
		})
		if allocs != 0 {
			t.Errorf("%s: %v allocations per render pass, want 0", name, allocs)
		}
	}
}
