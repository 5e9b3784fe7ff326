// Package engine assembles the full pipeline: pose store, control loop,
// render pipeline and device bridges, owned together so a caller can start
// and stop the whole renderer as one unit.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/earshot-audio/earshot/internal/control"
	"github.com/earshot-audio/earshot/internal/device"
	"github.com/earshot-audio/earshot/internal/params"
	"github.com/earshot-audio/earshot/internal/render"
	"github.com/earshot-audio/earshot/internal/source"
	"github.com/earshot-audio/earshot/internal/waveform"
	"github.com/earshot-audio/earshot/pkg/spatial"
)

// Config fixes the whole pipeline's parameters at startup. Nothing here is
// renegotiated at runtime.
type Config struct {
	// Output sample rate; 0 accepts the device's preferred rate.
	SampleRate int

	// Hardware chunk size for both streams.
	FramesPerBuffer int

	// Reference distance D0 controlling attenuation falloff.
	ReferenceDistance float32

	// Whether orientation panning is applied.
	Panning bool

	// Smoothing time constants for the renderer.
	AmplitudeTimeConstant time.Duration
	CutoffTimeConstant    time.Duration

	// Low-pass cutoff defaults, in Hz.
	OpenAirCutoff float32
	RoomCutoff    float32

	// Capacity of the capture queue, in frames.
	CaptureQueueCapacity int

	// Control loop cadence.
	ControlInterval time.Duration

	// Prerecorded asset to play instead of live capture. Nil selects the
	// live microphone source.
	Playback       *waveform.Buffer
	PlaybackOffset int
	PlaybackLoop   bool
}

// Engine owns one complete render pipeline. External pose writers feed the
// store returned by Store; everything else runs on the engine's own
// goroutines and device callbacks.
type Engine struct {
	logger *slog.Logger

	store     *spatial.Store
	publisher *params.Publisher

	controller *control.Controller
	renderer   *render.Renderer
	playback   *device.PlaybackDevice
	capture    *device.CaptureDevice

	ctxCancelFunc context.CancelFunc
	controlWg     sync.WaitGroup
	shutdownOnce  sync.Once
}

// New builds a pipeline from the given configuration.
//
// An unusable output device is fatal and returned as an error. An unusable
// input device is not: live capture degrades to silence, and the error is
// only logged.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	playbackDevice, err := device.NewPlaybackDevice(cfg.SampleRate, cfg.FramesPerBuffer)
	if err != nil {
		return nil, fmt.Errorf("audio rendering cannot proceed: %w", err)
	}
	outputProperties := playbackDevice.Properties()

	engine := &Engine{
		logger: logger.With("component", "engine"),
		store:  spatial.NewStore(),
		publisher: params.NewPublisher(params.GainParameters{
			Amplitude:    1,
			LeftGain:     0.5,
			RightGain:    0.5,
			FilterCutoff: cfg.OpenAirCutoff,
		}),
		playback: playbackDevice,
	}

	var frameSource source.FrameSource
	if cfg.Playback != nil {
		buffer := cfg.Playback.Resample(outputProperties.SampleRate)
		policy := source.EndSilence
		if cfg.PlaybackLoop {
			policy = source.EndLoop
		}
		frameSource = source.NewPlayback(buffer.Frames(), cfg.PlaybackOffset, policy)
		engine.logger.Info(
			"using prerecorded source",
			"frames", len(buffer.Frames()),
			"duration", buffer.Duration(),
			"loop", cfg.PlaybackLoop,
		)
	} else {
		queue := source.NewFrameQueue(cfg.CaptureQueueCapacity)
		frameSource = source.NewLiveCapture(queue)

		captureDevice, err := device.NewCaptureDevice(queue, cfg.FramesPerBuffer)
		if err != nil {
			// Degrade to silence: the queue is simply never fed.
			engine.logger.Error("capture unavailable, live source degrades to silence", "err", err)
		} else {
			engine.capture = captureDevice
		}
	}

	engine.renderer = render.NewRenderer(frameSource, engine.publisher, render.Config{
		SampleRate:            float64(outputProperties.SampleRate),
		AmplitudeTimeConstant: cfg.AmplitudeTimeConstant,
		CutoffTimeConstant:    cfg.CutoffTimeConstant,
		InitialCutoff:         cfg.OpenAirCutoff,
	})

	engine.controller = control.NewController(engine.store, engine.publisher, control.Config{
		Interval:          cfg.ControlInterval,
		ReferenceDistance: cfg.ReferenceDistance,
		Panning:           cfg.Panning,
		OpenAirCutoff:     cfg.OpenAirCutoff,
		RoomCutoff:        cfg.RoomCutoff,
	}, logger)

	return engine, nil
}

// Store returns the pose store external writers update. Writes are
// non-blocking and may come from any goroutine.
func (e *Engine) Store() *spatial.Store {
	return e.store
}

// Start launches the control loop and opens the device streams. The engine
// runs until Close.
func (e *Engine) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	e.ctxCancelFunc = cancel

	e.controlWg.Add(1)
	go func() {
		defer e.controlWg.Done()
		e.controller.Run(ctx)
	}()

	if err := e.playback.Start(e.renderer); err != nil {
		cancel()
		return fmt.Errorf("audio rendering cannot proceed: %w", err)
	}

	if e.capture != nil {
		if err := e.capture.Start(); err != nil {
			// Same degradation as construction-time capture failure.
			e.logger.Error("capture failed to start, live source degrades to silence", "err", err)
			e.capture = nil
		}
	}

	e.logger.Info("engine started", "stages", e.renderer.StageNames())
	return nil
}

// Close stops the control loop and both device streams.
func (e *Engine) Close() {
	e.shutdownOnce.Do(func() {
		if e.ctxCancelFunc != nil {
			e.ctxCancelFunc()
		}
		e.controlWg.Wait()

		if e.capture != nil {
			e.capture.Close()
		}
		e.playback.Close()

		e.logger.Info("engine closed")
	})
}
