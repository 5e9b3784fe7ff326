package source

import (
	"testing"
	"time"

	"github.com/earshot-audio/earshot/pkg/frame"
)

func TestFrameQueue_FullQueueRefusesPush(t *testing.T) {
	t.Parallel()

	q := NewFrameQueue(4)

	// Five rapid pushes against capacity 4: exactly one refused, and the
	// producer never blocks.
	accepted := 0
	for i := 0; i < 5; i++ {
		if q.TryPush(frame.StereoSample{Left: float32(i)}) {
			accepted++
		}
	}
	if accepted != 4 {
		t.Errorf("accepted %d pushes, want 4", accepted)
	}
	if q.Len() != 4 {
		t.Errorf("queue length = %d, want 4", q.Len())
	}
}

func TestFrameQueue_PushNeverBlocks(t *testing.T) {
	t.Parallel()

	q := NewFrameQueue(2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			q.TryPush(frame.StereoSample{Left: 1})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked on a full queue")
	}
}

func TestFrameQueue_FIFO(t *testing.T) {
	t.Parallel()

	q := NewFrameQueue(8)
	for i := 0; i < 3; i++ {
		q.TryPush(frame.StereoSample{Left: float32(i)})
	}
	for i := 0; i < 3; i++ {
		f, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop %d failed on non-empty queue", i)
		}
		if f.Left != float32(i) {
			t.Errorf("pop %d = %v, want %v", i, f.Left, float32(i))
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("pop on empty queue reported a frame")
	}
}

func TestLiveCapture_UnderrunReturnsSilence(t *testing.T) {
	t.Parallel()

	q := NewFrameQueue(4)
	src := NewLiveCapture(q)

	if got := src.Next(); got != frame.Silence {
		t.Errorf("Next on empty queue = %+v, want silence", got)
	}

	q.TryPush(frame.StereoSample{Left: 0.1, Right: 0.2})
	if got := src.Next(); got.Left != 0.1 || got.Right != 0.2 {
		t.Errorf("Next = %+v, want queued frame", got)
	}
	if got := src.Next(); got != frame.Silence {
		t.Errorf("Next after drain = %+v, want silence", got)
	}
}

func TestPlayback_SilencePolicy(t *testing.T) {
	t.Parallel()

	frames := []frame.StereoSample{
		{Left: 0.1, Right: 0.1},
		{Left: 0.2, Right: 0.2},
	}
	src := NewPlayback(frames, 0, EndSilence)

	if got := src.Next(); got.Left != 0.1 {
		t.Errorf("first frame = %+v", got)
	}
	if got := src.Next(); got.Left != 0.2 {
		t.Errorf("second frame = %+v", got)
	}
	for i := 0; i < 3; i++ {
		if got := src.Next(); got != frame.Silence {
			t.Errorf("frame past end = %+v, want silence", got)
		}
	}
	if !src.Done() {
		t.Error("Done() = false after running out")
	}
}

func TestPlayback_LoopPolicy(t *testing.T) {
	t.Parallel()

	frames := []frame.StereoSample{
		{Left: 0.1},
		{Left: 0.2},
	}
	src := NewPlayback(frames, 0, EndLoop)

	want := []float32{0.1, 0.2, 0.1, 0.2, 0.1}
	for i, w := range want {
		if got := src.Next(); got.Left != w {
			t.Errorf("frame %d = %v, want %v", i, got.Left, w)
		}
	}
	if src.Done() {
		t.Error("looping playback reported done")
	}
}

func TestPlayback_Offset(t *testing.T) {
	t.Parallel()

	frames := []frame.StereoSample{
		{Left: 0.1},
		{Left: 0.2},
		{Left: 0.3},
	}
	src := NewPlayback(frames, 2, EndSilence)

	if got := src.Next(); got.Left != 0.3 {
		t.Errorf("first frame from offset 2 = %v, want 0.3", got.Left)
	}
	if got := src.Next(); got != frame.Silence {
		t.Errorf("frame past end = %+v, want silence", got)
	}

	// Offset past the buffer is an immediate end.
	past := NewPlayback(frames, 10, EndSilence)
	if got := past.Next(); got != frame.Silence {
		t.Errorf("frame with out-of-range offset = %+v, want silence", got)
	}
}

func TestPlayback_EmptyBufferLoop(t *testing.T) {
	t.Parallel()

	src := NewPlayback(nil, 0, EndLoop)
	if got := src.Next(); got != frame.Silence {
		t.Errorf("frame from empty loop = %+v, want silence", got)
	}
}
