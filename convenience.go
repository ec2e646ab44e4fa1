package resampler

import (
	"slices"

	"github.com/wind0ws/go-pcm-resampler/internal/pcm"
)

// Common sample rates for convenience functions.
const (
	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate, common for speech capture.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)

// ResampleBytes is a convenience function for one-shot PCM conversion.
// It opens a Registry, converts the input, flushes, and returns the result.
// A nil cfg means DefaultConfig.
func ResampleBytes(input []byte, in, out Format, cfg *Config) ([]byte, error) {
	r, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	head, err := r.Convert(input, in, out)
	if err != nil {
		return nil, err
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}

// ResampleMono is a convenience function for one-shot resampling of
// normalized mono samples. No quantization takes place.
func ResampleMono(input []float64, rateIn, rateOut int, quality QualityPreset) ([]float64, error) {
	cfg := &Config{Quality: quality}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// the bit depth only matters to the byte codec, which is not used here
	in := Format{SampleRate: rateIn, Channels: 1, BitsPerSample: pcm.Bits16}
	out := Format{SampleRate: rateOut, Channels: 1, BitsPerSample: pcm.Bits16}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	s, err := newSession(in, out, cfg)
	if err != nil {
		return nil, err
	}
	chain := s.chains[0]

	output := slices.Clone(chain.Process(input))
	return append(output, chain.Flush()...), nil
}
