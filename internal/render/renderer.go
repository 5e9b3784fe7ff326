// Package render is the hard-real-time half of the pipeline: the Renderer
// runs once per output sample inside the device callback, pulling a frame
// from its source and pushing it through an ordered list of stages
// (amplitude, filter, pan) under the most recently published parameters.
package render

import (
	"time"

	"github.com/earshot-audio/earshot/internal/params"
	"github.com/earshot-audio/earshot/internal/source"
	"github.com/earshot-audio/earshot/pkg/frame"
)

// Config fixes the renderer's smoothing behavior at startup.
type Config struct {
	SampleRate float64

	// Time constant for amplitude smoothing. Reference value 100ms.
	AmplitudeTimeConstant time.Duration

	// Time constant for cutoff transitions.
	CutoffTimeConstant time.Duration

	// Cutoff the filter starts at, normally the open-air default.
	InitialCutoff float32
}

// Renderer drives the per-sample pipeline. It holds no state beyond its
// stages' smoothing filters, performs no allocation and takes no locks:
// parameters arrive through the publisher's wait-free Load.
type Renderer struct {
	source    source.FrameSource
	publisher *params.Publisher
	stages    []Stage
}

// NewRenderer builds the standard amplitude -> filter -> pan pipeline over
// the given source.
func NewRenderer(src source.FrameSource, publisher *params.Publisher, cfg Config) *Renderer {
	return &Renderer{
		source:    src,
		publisher: publisher,
		stages: []Stage{
			NewAmplitudeStage(cfg.SampleRate, cfg.AmplitudeTimeConstant),
			NewFilterStage(cfg.SampleRate, cfg.CutoffTimeConstant, cfg.InitialCutoff),
			NewPanStage(),
		},
	}
}

// Next produces one rendered stereo frame.
func (r *Renderer) Next() frame.StereoSample {
	s := r.source.Next()
	p := r.publisher.Load()
	for _, st := range r.stages {
		s = st.Process(s, p)
	}
	return s
}

// Render fills an interleaved device buffer with rendered frames. Even
// channels carry the left sample and odd channels the right, so a mono
// buffer receives the left channel and layouts beyond stereo duplicate the
// pair across channel pairs.
func (r *Renderer) Render(out frame.PCMFrame, channels int) {
	if channels <= 0 {
		return
	}
	for i := 0; i+channels <= len(out); i += channels {
		s := r.Next()
		for c := 0; c < channels; c++ {
			if c&1 == 0 {
				out[i+c] = s.Left
			} else {
				out[i+c] = s.Right
			}
		}
	}
}

// StageNames lists the pipeline order, for logging and tests.
func (r *Renderer) StageNames() []string {
	names := make([]string, len(r.stages))
	for i, st := range r.stages {
		names[i] = st.Name()
	}
	return names
}
