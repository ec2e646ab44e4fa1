package resampler

import (
	"fmt"

	"github.com/wind0ws/go-pcm-resampler/internal/mixer"
	"github.com/wind0ws/go-pcm-resampler/internal/pcm"
)

// Format describes interleaved little-endian signed integer PCM.
type Format struct {
	// SampleRate is the sample rate in Hz (e.g., 8000, 16000, 48000).
	SampleRate int

	// Channels is 1 (mono) or 2 (stereo).
	Channels int

	// BitsPerSample is 8, 16, 24 or 32.
	BitsPerSample int
}

// Validate reports the first unsupported field of f.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: %d Hz", ErrInvalidRate, f.SampleRate)
	}
	if !mixer.Supported(f.Channels) {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, f.Channels)
	}
	if !pcm.Supported(f.BitsPerSample) {
		return fmt.Errorf("%w: %d bits per sample", ErrFormat, f.BitsPerSample)
	}
	return nil
}

// FrameSize returns the size in bytes of one frame: one sample per channel.
func (f Format) FrameSize() int {
	return f.Channels * pcm.BytesPerSample(f.BitsPerSample)
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%dbit", f.SampleRate, f.Channels, f.BitsPerSample)
}
