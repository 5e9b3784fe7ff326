// Package device bridges the render pipeline to the audio hardware through
// PortAudio: a capture device feeding the bounded frame queue, and a
// playback device driving the renderer from the output callback.
package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Properties describes the negotiated format of an open device stream.
type Properties struct {
	SampleRate  int
	NumChannels int
}

// Initialize prepares the PortAudio host layer. Must be called once before
// any device is created; pair with Terminate.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return nil
}

// Terminate releases the PortAudio host layer.
func Terminate() {
	portaudio.Terminate()
}

// deviceChannels clamps a device's channel count to the stereo layout the
// pipeline works with.
func deviceChannels(maxChannels int) int {
	if maxChannels >= 2 {
		return 2
	}
	return maxChannels
}
