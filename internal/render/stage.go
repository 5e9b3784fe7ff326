package render

import (
	"time"

	"github.com/earshot-audio/earshot/internal/params"
	"github.com/earshot-audio/earshot/pkg/dsp"
	"github.com/earshot-audio/earshot/pkg/frame"
)

// A Stage is one named transform in the render pipeline. Stages are pure
// functions of a sample pair plus the current parameters, apart from their
// own smoothing state, so each one can be unit-tested in isolation.
//
// Process runs inside the audio callback: no blocking, no allocation.
type Stage interface {
	Name() string
	Process(s frame.StereoSample, p params.GainParameters) frame.StereoSample
}

// --------------------------------------------------------------------------------

// AmplitudeStage applies the published amplitude through a one-pole
// follower, so control-rate amplitude jumps never step audibly.
type AmplitudeStage struct {
	follower dsp.Follower
}

func NewAmplitudeStage(sampleRate float64, timeConstant time.Duration) *AmplitudeStage {
	return &AmplitudeStage{
		follower: dsp.NewFollower(sampleRate, timeConstant, 1),
	}
}

func (st *AmplitudeStage) Name() string { return "amplitude" }

func (st *AmplitudeStage) Process(s frame.StereoSample, p params.GainParameters) frame.StereoSample {
	return s.Scale(st.follower.Process(p.Amplitude))
}

// --------------------------------------------------------------------------------

// FilterStage low-passes both channels at the published cutoff. The cutoff
// itself transitions through a follower rather than stepping, so entering a
// room sweeps the tone instead of snapping it.
type FilterStage struct {
	cutoff dsp.Follower
	left   dsp.LowPass
	right  dsp.LowPass
}

func NewFilterStage(sampleRate float64, timeConstant time.Duration, initialCutoff float32) *FilterStage {
	return &FilterStage{
		cutoff: dsp.NewFollower(sampleRate, timeConstant, initialCutoff),
		left:   dsp.NewLowPass(sampleRate, initialCutoff),
		right:  dsp.NewLowPass(sampleRate, initialCutoff),
	}
}

func (st *FilterStage) Name() string { return "filter" }

func (st *FilterStage) Process(s frame.StereoSample, p params.GainParameters) frame.StereoSample {
	cutoff := st.cutoff.Process(p.FilterCutoff)
	st.left.SetCutoff(cutoff)
	st.right.SetCutoff(cutoff)
	return frame.StereoSample{
		Left:  st.left.Process(s.Left),
		Right: st.right.Process(s.Right),
	}
}

// --------------------------------------------------------------------------------

// PanStage applies the per-ear gains. The gains already sum to 1, so this
// stage redistributes energy without changing the overall level. Sources
// that carry independent channels keep them: each channel is scaled by its
// own gain.
type PanStage struct{}

func NewPanStage() *PanStage { return &PanStage{} }

func (st *PanStage) Name() string { return "pan" }

func (st *PanStage) Process(s frame.StereoSample, p params.GainParameters) frame.StereoSample {
	return frame.StereoSample{
		Left:  s.Left * p.LeftGain,
		Right: s.Right * p.RightGain,
	}
}
