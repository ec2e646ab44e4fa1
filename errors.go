package resampler

import (
	"errors"

	"github.com/wind0ws/go-pcm-resampler/internal/engine"
	"github.com/wind0ws/go-pcm-resampler/internal/mixer"
	"github.com/wind0ws/go-pcm-resampler/internal/pcm"
)

// Errors returned by the resampler. Each is wrapped with detail, so test for
// them with errors.Is.
var (
	// ErrNotInitialized indicates a conversion on a Registry that has not been
	// initialized, or has been deinitialized since.
	ErrNotInitialized = errors.New("resampler not initialized")

	// ErrFormat indicates an unsupported bit depth or a malformed buffer.
	ErrFormat = pcm.ErrFormat

	// ErrUnsupportedLayout indicates a channel count other than 1 or 2.
	ErrUnsupportedLayout = mixer.ErrUnsupportedLayout

	// ErrInvalidRate indicates a zero or negative sample rate.
	ErrInvalidRate = engine.ErrInvalidRate

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")
)
