// Package source provides the input side of the render pipeline: the
// bounded queue fed by the capture callback, and the two FrameSource
// variants (live capture and prerecorded playback) the renderer pulls from.
package source

import "github.com/earshot-audio/earshot/pkg/frame"

// FrameQueue is the bounded handoff between the capture callback and the
// live capture source. Both ends are non-blocking: a push against a full
// queue is refused (the frame is dropped, the producer keeps its real-time
// contract), and a pop from an empty queue reports underrun instead of
// waiting.
//
// Single producer (the capture callback), single consumer (the renderer).
type FrameQueue struct {
	frames chan frame.StereoSample
}

// NewFrameQueue creates a queue holding at most capacity frames.
func NewFrameQueue(capacity int) *FrameQueue {
	return &FrameQueue{
		frames: make(chan frame.StereoSample, capacity),
	}
}

// TryPush offers one frame. Returns false without blocking when the queue
// is full.
func (q *FrameQueue) TryPush(s frame.StereoSample) bool {
	select {
	case q.frames <- s:
		return true
	default:
		return false
	}
}

// TryPop takes the oldest frame. Returns false without blocking when the
// queue is empty.
func (q *FrameQueue) TryPop() (frame.StereoSample, bool) {
	select {
	case s := <-q.frames:
		return s, true
	default:
		return frame.StereoSample{}, false
	}
}

// Len returns the number of frames currently buffered.
func (q *FrameQueue) Len() int {
	return len(q.frames)
}

// Cap returns the queue capacity.
func (q *FrameQueue) Cap() int {
	return cap(q.frames)
}
