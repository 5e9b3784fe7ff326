package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/earshot-audio/earshot/cmd/earshot/config"
	"github.com/earshot-audio/earshot/internal/device"
	"github.com/earshot-audio/earshot/internal/engine"
	"github.com/earshot-audio/earshot/internal/utils"
	"github.com/earshot-audio/earshot/internal/waveform"
)

func main() {
	configFilePath := flag.String("configFilePath", "config.yaml", "Set the file path to the config file.")
	audioFilePath := flag.String("audioFilePath", "", "Play a prerecorded asset (.wav or .mp3) instead of the microphone.")
	flag.Parse()

	config.LoadConfig(*configFilePath)
	logFilePointer, err := utils.ConfigureDefaultLogger(
		viper.GetString("loglevel"),
		viper.GetString("logfile"),
		slog.HandlerOptions{},
	)
	if err != nil {
		slog.Error("error while configuring default logger", "err", err)
		panic(err)
	}
	if logFilePointer != nil {
		defer logFilePointer.Close()
	}

	// --------------------------------------------------------------------------------

	var playbackBuffer *waveform.Buffer
	if *audioFilePath != "" {
		playbackBuffer, err = waveform.Load(*audioFilePath)
		if err != nil {
			slog.Error("could not load audio asset", "audioFile", *audioFilePath, "err", err)
			os.Exit(1)
		}
	}

	if err := device.Initialize(); err != nil {
		slog.Error("could not initialize audio host", "err", err)
		os.Exit(1)
	}
	defer device.Terminate()

	audioEngine, err := engine.New(engine.Config{
		SampleRate:            viper.GetInt("samplerate"),
		FramesPerBuffer:       viper.GetInt("framesperbuffer"),
		ReferenceDistance:     float32(viper.GetFloat64("referencedistance")),
		Panning:               viper.GetBool("panning"),
		AmplitudeTimeConstant: viper.GetDuration("amplitudetimeconstant"),
		CutoffTimeConstant:    viper.GetDuration("cutofftimeconstant"),
		OpenAirCutoff:         float32(viper.GetFloat64("openaircutoff")),
		RoomCutoff:            float32(viper.GetFloat64("roomcutoff")),
		CaptureQueueCapacity:  viper.GetInt("capturequeuecapacity"),
		ControlInterval:       viper.GetDuration("controlinterval"),
		Playback:              playbackBuffer,
		PlaybackOffset:        viper.GetInt("playbackoffset"),
		PlaybackLoop:          viper.GetBool("playbackloop"),
	}, slog.Default())
	if err != nil {
		slog.Error("could not build audio engine", "err", err)
		os.Exit(1)
	}
	defer audioEngine.Close()

	if err := audioEngine.Start(); err != nil {
		slog.Error("could not start audio engine", "err", err)
		os.Exit(1)
	}

	// The pose store is fed by an external writer (a visual frame loop,
	// examples/orbitinglistener, ...). Without one the listener sits at the
	// default pose and the render runs unmodulated until interrupted.
	slog.Info("rendering, interrupt to stop")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	slog.Info("interrupted, shutting down")
}
