package resampler

import (
	"fmt"
	"log/slog"

	"github.com/wind0ws/go-pcm-resampler/internal/engine"
	"github.com/wind0ws/go-pcm-resampler/internal/mathutil"
)

// Config holds resampling configuration shared by every session a Registry
// creates.
type Config struct {
	// Quality selects the anti-alias filter and the default interpolation.
	Quality QualityPreset

	// Interpolation overrides the preset's interpolation kernel unless it is
	// InterpolationAuto.
	Interpolation Interpolation

	// MaxFilterTaps caps the anti-alias filter length. Set to 0 to let the
	// preset decide.
	MaxFilterTaps int

	// Logger receives debug records about session lifecycle. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{Quality: QualityMedium}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Quality < QualityQuick || c.Quality > QualityHigh {
		return fmt.Errorf("%w: unknown quality preset %d", ErrInvalidConfig, int(c.Quality))
	}

	if c.Interpolation < InterpolationAuto || c.Interpolation > InterpolationHold {
		return fmt.Errorf("%w: unknown interpolation %d", ErrInvalidConfig, int(c.Interpolation))
	}

	if c.MaxFilterTaps != 0 &&
		(c.MaxFilterTaps < mathutil.MinFilterTaps || c.MaxFilterTaps > mathutil.MaxFilterTaps) {
		return fmt.Errorf("%w: max filter taps must be 0 or %d-%d",
			ErrInvalidConfig, mathutil.MinFilterTaps, mathutil.MaxFilterTaps)
	}

	return nil
}

// spec resolves the preset and the interpolation override.
func (c *Config) spec() QualitySpec {
	spec := GetPresetSpec(c.Quality)
	if c.Interpolation != InterpolationAuto {
		spec.Interpolation = c.Interpolation
	}
	return spec
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// QualitySpec defines the filter and interpolation used by a quality level.
type QualitySpec struct {
	// Attenuation is the anti-alias stopband attenuation in dB.
	Attenuation float64

	// Bandwidth is the -6 dB point of the anti-alias filter as a fraction
	// of the target Nyquist frequency, in (0, 1).
	Bandwidth float64

	// Interpolation is the kernel of the rate converter.
	Interpolation Interpolation
}

// QualityPreset enumerates predefined quality levels.
type QualityPreset int

const (
	// QualityQuick uses a short filter and linear interpolation. Fastest but
	// lowest quality.
	QualityQuick QualityPreset = iota

	// QualityLow is enough for telephony speech.
	QualityLow

	// QualityMedium suits wideband speech and most music. It is the default.
	QualityMedium

	// QualityHigh pushes aliasing below 16-bit noise at the cost of a long
	// filter.
	QualityHigh
)

var qualityNames = [...]string{"quick", "low", "medium", "high"}

func (q QualityPreset) String() string {
	if q < QualityQuick || q > QualityHigh {
		return fmt.Sprintf("QualityPreset(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality maps a preset name ("quick", "low", "medium", "high") to its
// value.
func ParseQuality(s string) (QualityPreset, error) {
	for i, name := range qualityNames {
		if name == s {
			return QualityPreset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (q QualityPreset) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *QualityPreset) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// GetPresetSpec returns the quality specification for a preset. Unknown
// presets map to QualityMedium.
func GetPresetSpec(preset QualityPreset) QualitySpec {
	switch preset {
	case QualityQuick:
		return QualitySpec{
			Attenuation:   quickAttenuation,
			Bandwidth:     quickBandwidth,
			Interpolation: InterpolationLinear,
		}

	case QualityLow:
		return QualitySpec{
			Attenuation:   lowAttenuation,
			Bandwidth:     lowBandwidth,
			Interpolation: InterpolationCubic,
		}

	case QualityHigh:
		return QualitySpec{
			Attenuation:   highAttenuation,
			Bandwidth:     highBandwidth,
			Interpolation: InterpolationCubic,
		}

	default:
		return QualitySpec{
			Attenuation:   mediumAttenuation,
			Bandwidth:     mediumBandwidth,
			Interpolation: InterpolationCubic,
		}
	}
}

// Interpolation selects the rate converter kernel.
type Interpolation int

const (
	// InterpolationAuto uses the kernel of the quality preset.
	InterpolationAuto Interpolation = iota

	// InterpolationLinear interpolates between the two neighbouring samples.
	InterpolationLinear

	// InterpolationCubic uses a 4-point Hermite spline.
	InterpolationCubic

	// InterpolationHold repeats the previous input sample.
	InterpolationHold
)

func (i Interpolation) engine() engine.Interpolation {
	switch i {
	case InterpolationLinear:
		return engine.InterpolationLinear
	case InterpolationHold:
		return engine.InterpolationHold
	default:
		return engine.InterpolationCubic
	}
}

func (i Interpolation) String() string {
	switch i {
	case InterpolationAuto:
		return "auto"
	case InterpolationLinear, InterpolationCubic, InterpolationHold:
		return i.engine().String()
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation maps "auto", "linear", "cubic" or "hold" to its value.
func ParseInterpolation(s string) (Interpolation, error) {
	for i := InterpolationAuto; i <= InterpolationHold; i++ {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interpolation) UnmarshalText(text []byte) error {
	v, err := ParseInterpolation(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
