package source

import "github.com/earshot-audio/earshot/pkg/frame"

// EndPolicy says what a Playback source does when it runs past the end of
// its buffer. The choice must be explicit; there is no implicit default
// behavior beyond the zero value.
type EndPolicy int

const (
	// EndSilence stops playback and emits silence from then on.
	EndSilence EndPolicy = iota

	// EndLoop wraps back to the start of the buffer.
	EndLoop
)

// Playback is the prerecorded FrameSource: it reads sequentially from a
// preloaded stereo buffer, starting at a configured offset. The buffer is
// fixed at construction, so Next touches nothing but an index.
type Playback struct {
	frames []frame.StereoSample
	pos    int
	policy EndPolicy
	done   bool
}

// NewPlayback creates a playback source over frames, starting at offset.
// Offsets outside the buffer are treated as an immediate end of buffer.
func NewPlayback(frames []frame.StereoSample, offset int, policy EndPolicy) *Playback {
	if offset < 0 {
		offset = 0
	}
	return &Playback{
		frames: frames,
		pos:    offset,
		policy: policy,
	}
}

// Next returns the next buffered frame, honoring the end-of-buffer policy.
func (s *Playback) Next() frame.StereoSample {
	if s.done {
		return frame.Silence
	}
	if s.pos >= len(s.frames) {
		if s.policy == EndLoop && len(s.frames) > 0 {
			s.pos = 0
		} else {
			s.done = true
			return frame.Silence
		}
	}
	f := s.frames[s.pos]
	s.pos++
	return f
}

// Done reports whether a silence-terminated playback has run out.
func (s *Playback) Done() bool {
	return s.done
}
