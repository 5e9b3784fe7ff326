// Package waveform loads audio assets into in-memory stereo sample buffers
// for the prerecorded playback source. WAV and MP3 assets are supported;
// buffers can be resampled to the output device's rate before playback.
package waveform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/earshot-audio/earshot/pkg/frame"
)

// Buffer is a fully decoded audio asset: stereo frames at a known sample
// rate. Mono assets are duplicated onto both channels during decoding, so a
// Buffer always carries independent left/right samples.
type Buffer struct {
	frames     []frame.StereoSample
	sampleRate int
}

// NewBuffer wraps already-decoded (or synthesized) stereo frames at the
// given sample rate.
func NewBuffer(frames []frame.StereoSample, sampleRate int) *Buffer {
	return &Buffer{frames: frames, sampleRate: sampleRate}
}

// Frames returns the decoded stereo frames. The slice is owned by the
// buffer; callers must not mutate it while a playback source reads it.
func (b *Buffer) Frames() []frame.StereoSample {
	return b.frames
}

// SampleRate returns the buffer's sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.frames)) / float64(b.sampleRate) * float64(time.Second))
}

// Load decodes the asset at path, dispatching on the file extension.
// Supported: .wav, .mp3.
func Load(path string) (*Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return LoadWAV(path)
	case ".mp3":
		return LoadMP3(path)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}

// LoadWAV decodes a .WAV file into a stereo buffer.
func LoadWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open audio file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, errors.New("error while decoding audio file: not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not get full PCM buffer from audio file: %w", err)
	}

	b := &Buffer{
		frames:     framesFromIntBuffer(buf, int(decoder.BitDepth)),
		sampleRate: int(decoder.SampleRate),
	}
	slog.Debug(
		"loaded wav asset",
		"audioFile", path,
		"sampleRate", b.sampleRate,
		"channels", decoder.NumChans,
		"frames", len(b.frames),
	)
	return b, nil
}

// LoadMP3 decodes a .MP3 file into a stereo buffer. The decoder always
// emits 16-bit little-endian stereo at the file's sample rate.
func LoadMP3(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open audio file: %w", err)
	}
	defer f.Close()

	decoder, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("error while decoding audio file: %w", err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("could not read decoded samples: %w", err)
	}

	const bytesPerFrame = 4 // two int16 samples
	nFrames := len(raw) / bytesPerFrame
	frames := make([]frame.StereoSample, nFrames)
	for i := 0; i < nFrames; i++ {
		left := int16(uint16(raw[i*4]) | uint16(raw[i*4+1])<<8)
		right := int16(uint16(raw[i*4+2]) | uint16(raw[i*4+3])<<8)
		frames[i] = frame.StereoSample{
			Left:  float32(left) / maxInt16,
			Right: float32(right) / maxInt16,
		}
	}

	b := &Buffer{
		frames:     frames,
		sampleRate: decoder.SampleRate(),
	}
	slog.Debug(
		"loaded mp3 asset",
		"audioFile", path,
		"sampleRate", b.sampleRate,
		"frames", len(b.frames),
	)
	return b, nil
}

const maxInt16 = float32(32767)

// framesFromIntBuffer converts an interleaved integer PCM buffer to stereo
// float frames, normalizing by the source bit depth. Mono sources are
// duplicated onto both channels; sources with more than two channels keep
// only the first pair.
func framesFromIntBuffer(buf *goaudio.IntBuffer, bitDepth int) []frame.StereoSample {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	channels := buf.Format.NumChannels
	nFrames := len(buf.Data) / channels
	frames := make([]frame.StereoSample, nFrames)
	for i := 0; i < nFrames; i++ {
		left := float32(buf.Data[i*channels]) / scale
		right := left
		if channels > 1 {
			right = float32(buf.Data[i*channels+1]) / scale
		}
		frames[i] = frame.StereoSample{Left: left, Right: right}
	}
	return frames
}
