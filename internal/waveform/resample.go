package waveform

import (
	"github.com/oov/audio/resampler"

	"github.com/earshot-audio/earshot/pkg/frame"
)

const resampleQuality = 10

// Resample converts the buffer to targetRate, returning a new buffer. The
// original is untouched. A matching rate returns the receiver unchanged.
//
// The resampler works on planar channels, so the stereo frames are split,
// converted per channel, and interleaved again.
func (b *Buffer) Resample(targetRate int) *Buffer {
	if targetRate <= 0 || targetRate == b.sampleRate || len(b.frames) == 0 {
		return b
	}

	left := make([]float32, len(b.frames))
	right := make([]float32, len(b.frames))
	for i, f := range b.frames {
		left[i] = f.Left
		right[i] = f.Right
	}

	r := resampler.New(2, b.sampleRate, targetRate, resampleQuality)
	left = resampleChannel(r, 0, left, b.sampleRate, targetRate)
	right = resampleChannel(r, 1, right, b.sampleRate, targetRate)

	n := min(len(left), len(right))
	frames := make([]frame.StereoSample, n)
	for i := 0; i < n; i++ {
		frames[i] = frame.StereoSample{Left: left[i], Right: right[i]}
	}
	return &Buffer{frames: frames, sampleRate: targetRate}
}

func resampleChannel(r *resampler.Resampler, channel int, in []float32, fromRate, toRate int) []float32 {
	// Output sizing: the converted length plus slack for filter tails.
	estimate := int(float64(len(in))*float64(toRate)/float64(fromRate)) + 512
	out := make([]float32, 0, estimate)
	chunk := make([]float32, 4096)

	pos := 0
	for pos < len(in) {
		read, written := r.ProcessFloat32(channel, in[pos:], chunk)
		if read == 0 && written == 0 {
			break
		}
		pos += read
		out = append(out, chunk[:written]...)
	}
	return out
}
