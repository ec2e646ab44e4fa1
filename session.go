package resampler

import (
	"fmt"

	"github.com/wind0ws/go-pcm-resampler/internal/engine"
	"github.com/wind0ws/go-pcm-resampler/internal/filter"
	"github.com/wind0ws/go-pcm-resampler/internal/mixer"
	"github.com/wind0ws/go-pcm-resampler/internal/pcm"
	"github.com/wind0ws/go-pcm-resampler/internal/pipeline"
)

// session holds the streaming state of one format pair: a stage chain per
// output channel plus the bytes of an incomplete input frame.
type session struct {
	in, out Format
	chains  []pipeline.Chain
	taps    int

	// leftover is always shorter than one input frame.
	leftover []byte

	// scratch buffers reused across calls
	raw     []byte
	samples []float64
	mixed   []float64
	planes  [][]float64
	outs    [][]float64
	frames  []float64
}

// newSession builds the stage chains for in -> out. Both formats must
// already be valid.
func newSession(in, out Format, cfg *Config) (*session, error) {
	spec := cfg.spec()

	var coeffs []float64
	if out.SampleRate < in.SampleRate {
		var err error
		coeffs, err = filter.DesignAntiAlias(in.SampleRate, out.SampleRate, filter.Spec{
			Attenuation: spec.Attenuation,
			Bandwidth:   spec.Bandwidth,
			MaxTaps:     cfg.MaxFilterTaps,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to design anti-alias filter: %w", err)
		}
	}

	s := &session{
		in:     in,
		out:    out,
		chains: make([]pipeline.Chain, out.Channels),
		taps:   len(coeffs),
	}

	for ch := range s.chains {
		for _, st := range pipeline.Plan(in.SampleRate, out.SampleRate) {
			switch st {
			case pipeline.StagePassthrough:
				s.chains[ch] = append(s.chains[ch], pipeline.Passthrough{})
			case pipeline.StageAntiAlias:
				s.chains[ch] = append(s.chains[ch], filter.NewAntiAlias(coeffs))
			case pipeline.StageRate:
				rc, err := engine.NewRateConverter(in.SampleRate, out.SampleRate, spec.Interpolation.engine())
				if err != nil {
					return nil, fmt.Errorf("failed to create %s stage: %w", st, err)
				}
				s.chains[ch] = append(s.chains[ch], rc)
			}
		}
	}
	return s, nil
}

// process converts one chunk and reports how many whole input frames it
// consumed. Every check that can fail runs before any stage sees the data, so
// an error leaves the session untouched.
func (s *session) process(input []byte) ([]byte, int, error) {
	frameSize := s.in.FrameSize()

	s.raw = append(append(s.raw[:0], s.leftover...), input...)
	aligned := len(s.raw) - len(s.raw)%frameSize

	var err error
	s.samples, err = pcm.Decode(s.samples[:0], s.raw[:aligned], s.in.BitsPerSample)
	if err != nil {
		return nil, 0, err
	}
	s.mixed, err = mixer.Mix(s.mixed[:0], s.samples, s.in.Channels, s.out.Channels)
	if err != nil {
		return nil, 0, err
	}

	s.planes = mixer.Deinterleave(s.planes, s.mixed, s.out.Channels)
	s.outs = s.outs[:0]
	for ch, chain := range s.chains {
		s.outs = append(s.outs, chain.Process(s.planes[ch]))
	}

	s.leftover = append(s.leftover[:0], s.raw[aligned:]...)
	out, err := s.encode(s.outs)
	return out, aligned / frameSize, err
}

// flush drains every chain and resets the session for a new stream. A
// trailing partial frame is discarded. It returns the output and the number
// of leftover bytes dropped.
func (s *session) flush() ([]byte, int, error) {
	s.outs = s.outs[:0]
	for _, chain := range s.chains {
		s.outs = append(s.outs, chain.Flush())
	}
	out, err := s.encode(s.outs)

	dropped := len(s.leftover)
	s.leftover = s.leftover[:0]
	return out, dropped, err
}

// encode interleaves planes into a newly allocated byte slice.
func (s *session) encode(planes [][]float64) ([]byte, error) {
	s.frames = mixer.Interleave(s.frames[:0], planes)
	n := len(s.frames) / s.out.Channels
	return pcm.Encode(make([]byte, 0, n*s.out.FrameSize()), s.frames, s.out.BitsPerSample)
}

// latency returns the output frames held back by the chains.
func (s *session) latency() int {
	return s.chains[0].Latency()
}

// release drops every buffer so the memory can be reclaimed.
func (s *session) release() {
	for _, chain := range s.chains {
		chain.Reset()
	}
	*s = session{in: s.in, out: s.out}
}
