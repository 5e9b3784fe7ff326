package device

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"

	"github.com/earshot-audio/earshot/internal/source"
	"github.com/earshot-audio/earshot/pkg/frame"
)

// CaptureDevice captures audio from the default input device and pushes
// stereo frames into the bounded queue the live capture source reads from.
//
// The capture callback runs on the audio driver's schedule: it converts
// interleaved samples (even channels to the left ear, odd to the right) and
// try-pushes each frame. A full queue drops the frame and bumps a counter;
// the callback never blocks and never logs.
type CaptureDevice struct {
	logger *slog.Logger
	uuid   uuid.UUID

	stream      *portaudio.Stream
	sampleRate  int
	numChannels int
	dropped     atomic.Uint64

	shutdownOnce sync.Once
}

// NewCaptureDevice opens a capture stream on the default input device,
// feeding queue. framesPerBuffer determines the size of the hardware chunks
// (typically 256 or 512).
func NewCaptureDevice(queue *source.FrameQueue, framesPerBuffer int) (*CaptureDevice, error) {
	uuid := uuid.New()
	logger := slog.Default().With(
		"capture device uuid", uuid,
	)

	defaultIn, err := portaudio.DefaultInputDevice()
	if err != nil {
		logger.Error("failed to get default input device", "err", err)
		return nil, fmt.Errorf("failed to get default input device: %w", err)
	}

	numChannels := deviceChannels(defaultIn.MaxInputChannels)
	if numChannels == 0 {
		return nil, fmt.Errorf("default device %q has no input channels", defaultIn.Name)
	}
	sampleRate := int(defaultIn.DefaultSampleRate)

	device := &CaptureDevice{
		logger:      logger,
		uuid:        uuid,
		sampleRate:  sampleRate,
		numChannels: numChannels,
	}

	streamParams := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   defaultIn,
			Channels: numChannels,
			Latency:  defaultIn.DefaultLowInputLatency,
		},
		SampleRate:      float64(sampleRate),
		FramesPerBuffer: framesPerBuffer,
	}

	cb := func(in []float32) {
		for i := 0; i+numChannels <= len(in); i += numChannels {
			s := frame.StereoSample{Left: in[i]}
			if numChannels > 1 {
				s.Right = in[i+1]
			} else {
				s.Right = s.Left
			}
			if !queue.TryPush(s) {
				device.dropped.Add(1)
			}
		}
	}

	stream, err := portaudio.OpenStream(streamParams, cb)
	if err != nil {
		logger.Error("failed to open capture stream", "err", err)
		return nil, fmt.Errorf("failed to open capture stream: %w", err)
	}
	device.stream = stream

	logger.Debug(
		"initialized capture device",
		"device", defaultIn.Name,
		"sampleRate", sampleRate,
		"channels", numChannels,
		"framesPerBuffer", framesPerBuffer,
	)

	return device, nil
}

// Start begins capture.
func (d *CaptureDevice) Start() error {
	if err := d.stream.Start(); err != nil {
		d.logger.Error("failed to start capture stream", "err", err)
		return fmt.Errorf("failed to start capture stream: %w", err)
	}
	d.logger.Info("capture device started")
	return nil
}

// DroppedFrames reports how many frames were discarded against a full
// queue since the device started.
func (d *CaptureDevice) DroppedFrames() uint64 {
	return d.dropped.Load()
}

// Close stops the capture stream and cleans up resources.
func (d *CaptureDevice) Close() {
	d.logger.Debug("shutdown called")
	d.shutdownOnce.Do(func() {
		if err := d.stream.Stop(); err != nil {
			d.logger.Error("error stopping capture stream", "err", err)
		}
		d.stream.Close()
		d.logger.Info("capture device closed", "droppedFrames", d.dropped.Load())
	})
}

// Properties returns the negotiated format of the capture stream.
func (d *CaptureDevice) Properties() Properties {
	return Properties{
		SampleRate:  d.sampleRate,
		NumChannels: d.numChannels,
	}
}
