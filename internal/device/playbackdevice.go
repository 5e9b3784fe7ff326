package device

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"

	"github.com/earshot-audio/earshot/internal/render"
	"github.com/earshot-audio/earshot/pkg/frame"
)

// PlaybackDevice drives the renderer from the default output device's
// callback: every time the hardware asks for a buffer, the renderer fills
// it frame by frame. Format negotiation happens at construction so the
// renderer can be built against the device's actual sample rate; Start
// opens the stream once a renderer is attached.
type PlaybackDevice struct {
	logger *slog.Logger
	uuid   uuid.UUID

	info        *portaudio.DeviceInfo
	stream      *portaudio.Stream
	sampleRate  int
	numChannels int
	bufferSize  int

	shutdownOnce sync.Once
}

// NewPlaybackDevice negotiates an output format with the default output
// device. requestedRate of 0 accepts the device's preferred rate.
// framesPerBuffer determines the size of the hardware chunks.
func NewPlaybackDevice(requestedRate, framesPerBuffer int) (*PlaybackDevice, error) {
	uuid := uuid.New()
	logger := slog.Default().With(
		"playback device uuid", uuid,
	)

	defaultOut, err := portaudio.DefaultOutputDevice()
	if err != nil {
		logger.Error("failed to get default output device", "err", err)
		return nil, fmt.Errorf("failed to get default output device: %w", err)
	}

	numChannels := deviceChannels(defaultOut.MaxOutputChannels)
	if numChannels == 0 {
		return nil, fmt.Errorf("default device %q has no output channels", defaultOut.Name)
	}
	sampleRate := requestedRate
	if sampleRate <= 0 {
		sampleRate = int(defaultOut.DefaultSampleRate)
	}

	logger.Debug(
		"initialized playback device",
		"device", defaultOut.Name,
		"sampleRate", sampleRate,
		"channels", numChannels,
		"framesPerBuffer", framesPerBuffer,
	)

	return &PlaybackDevice{
		logger:      logger,
		uuid:        uuid,
		info:        defaultOut,
		sampleRate:  sampleRate,
		numChannels: numChannels,
		bufferSize:  framesPerBuffer,
	}, nil
}

// Start opens the output stream and begins pulling rendered frames. The
// callback only ever calls the renderer's allocation-free render path.
func (d *PlaybackDevice) Start(r *render.Renderer) error {
	numChannels := d.numChannels
	cb := func(out []float32) {
		r.Render(frame.PCMFrame(out), numChannels)
	}

	streamParams := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   d.info,
			Channels: numChannels,
			Latency:  d.info.DefaultLowOutputLatency,
		},
		SampleRate:      float64(d.sampleRate),
		FramesPerBuffer: d.bufferSize,
	}

	stream, err := portaudio.OpenStream(streamParams, cb)
	if err != nil {
		d.logger.Error("failed to open playback stream", "err", err)
		return fmt.Errorf("failed to open playback stream: %w", err)
	}
	d.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		d.logger.Error("failed to start playback stream", "err", err)
		return fmt.Errorf("failed to start playback stream: %w", err)
	}

	d.logger.Info("playback device started")
	return nil
}

// Close stops the playback stream and cleans up resources.
func (d *PlaybackDevice) Close() {
	d.logger.Debug("shutdown called")
	d.shutdownOnce.Do(func() {
		if d.stream != nil {
			if err := d.stream.Stop(); err != nil {
				d.logger.Error("error stopping playback stream", "err", err)
			}
			d.stream.Close()
		}
		d.logger.Info("playback device closed")
	})
}

// Properties returns the negotiated format of the playback stream.
func (d *PlaybackDevice) Properties() Properties {
	return Properties{
		SampleRate:  d.sampleRate,
		NumChannels: d.numChannels,
	}
}
