package frame

// A PCMFrame is a chunk of interleaved float32 PCM samples, in the layout
// the audio device works with. For a stereo device, even indices are the
// left channel and odd indices are the right channel.
type PCMFrame []float32

// A StereoSample is a single left/right sample pair, the unit of work for
// every stage of the render pipeline.
type StereoSample struct {
	Left  float32
	Right float32
}

// Silence is the zero sample pair, emitted whenever a source underruns.
var Silence = StereoSample{}

// Scale multiplies both channels by the given gain.
func (s StereoSample) Scale(gain float32) StereoSample {
	return StereoSample{
		Left:  s.Left * gain,
		Right: s.Right * gain,
	}
}
