package source

import "github.com/earshot-audio/earshot/pkg/frame"

// LiveCapture is the microphone-fed FrameSource. It pulls from the bounded
// queue the capture callback pushes into; on underrun it emits silence
// rather than waiting, so a stalled or absent capture device degrades to a
// silent source without disturbing the render path.
type LiveCapture struct {
	queue *FrameQueue
}

// NewLiveCapture creates a live capture source reading from queue.
func NewLiveCapture(queue *FrameQueue) *LiveCapture {
	return &LiveCapture{queue: queue}
}

// Next returns the oldest captured frame, or silence on underrun.
func (s *LiveCapture) Next() frame.StereoSample {
	if f, ok := s.queue.TryPop(); ok {
		return f
	}
	return frame.Silence
}
