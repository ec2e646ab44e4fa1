package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	resampler "github.com/wind0ws/go-pcm-resampler"
)

// Profile defaults mirror a 16 kHz capture converted for 8 kHz telephony.
const (
	defaultChunk    = 4096
	defaultInRate   = resampler.RateVoIP
	defaultOutRate  = resampler.RateTelephony
	defaultChannels = 1
	defaultBits     = 16
)

// formatSpec is a Format as written in a profile.
type formatSpec struct {
	Rate     int `yaml:"rate"`
	Channels int `yaml:"channels"`
	Bits     int `yaml:"bits"`
}

func (f formatSpec) format() resampler.Format {
	return resampler.Format{SampleRate: f.Rate, Channels: f.Channels, BitsPerSample: f.Bits}
}

// profile holds the settings a --config file may provide.
type profile struct {
	Quality       string     `yaml:"quality"`
	Interpolation string     `yaml:"interpolation"`
	MaxFilterTaps int        `yaml:"max_filter_taps"`
	Chunk         int        `yaml:"chunk"`
	In            formatSpec `yaml:"in"`
	Out           formatSpec `yaml:"out"`
}

func defaultProfile() *profile {
	return &profile{
		Quality:       resampler.QualityMedium.String(),
		Interpolation: resampler.InterpolationAuto.String(),
		Chunk:         defaultChunk,
		In:            formatSpec{Rate: defaultInRate, Channels: defaultChannels, Bits: defaultBits},
		Out:           formatSpec{Rate: defaultOutRate, Channels: defaultChannels, Bits: defaultBits},
	}
}

// loadProfile reads path over the defaults. An empty path yields the
// defaults.
func loadProfile(path string) (*profile, error) {
	p := defaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Chunk <= 0 {
		return nil, fmt.Errorf("profile %s: chunk must be positive, got %d", path, p.Chunk)
	}
	return p, nil
}

// config builds the library configuration of the profile.
func (p *profile) config(l *slog.Logger) (*resampler.Config, error) {
	quality, err := resampler.ParseQuality(p.Quality)
	if err != nil {
		return nil, err
	}
	interp, err := resampler.ParseInterpolation(p.Interpolation)
	if err != nil {
		return nil, err
	}

	cfg := &resampler.Config{
		Quality:       quality,
		Interpolation: interp,
		MaxFilterTaps: p.MaxFilterTaps,
		Logger:        l,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrideString copies a flag into dst when it was set on the command line.
func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if flags.Changed(name) {
		*dst, _ = flags.GetString(name)
	}
}

// overrideInt copies a flag into dst when it was set on the command line.
func overrideInt(flags *pflag.FlagSet, name string, dst *int) {
	if flags.Changed(name) {
		*dst, _ = flags.GetInt(name)
	}
}
