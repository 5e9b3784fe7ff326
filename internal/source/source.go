package source

import "github.com/earshot-audio/earshot/pkg/frame"

// A FrameSource produces exactly one stereo frame per renderer tick.
//
// Next is called from the audio output callback: it must never block,
// never allocate, and never apply gain or filtering of its own. A source
// that has nothing to offer returns silence.
type FrameSource interface {
	Next() frame.StereoSample
}
