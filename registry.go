package resampler

import (
	"fmt"
	"log/slog"
	"sync"
)

// Stats counts the work done by a Registry since Init.
type Stats struct {
	// Calls is the number of successful conversions.
	Calls int64

	// FramesIn is the number of whole input frames consumed.
	FramesIn int64

	// FramesOut is the number of output frames produced, flushes included.
	FramesOut int64

	// Sessions is the number of sessions created, one per format change.
	Sessions int64
}

// Registry owns at most one active resampling session and serialises every
// operation on it.
//
// A Registry starts uninitialized. Init makes it ready; the first
// conversion then creates a session for its format pair, and every later
// conversion with the same pair continues that stream. A conversion with a
// different pair discards the session and starts a fresh one, exactly as if
// Deinit and Init had been called in between. Deinit releases the session
// and makes the Registry reject conversions until the next Init.
//
// All methods are safe for concurrent use.
type Registry struct {
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	ready bool
	sess  *session
	stats Stats
}

// NewRegistry creates an uninitialized Registry. A nil cfg means
// DefaultConfig.
func NewRegistry(cfg *Config) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Registry{
		cfg:    *cfg,
		logger: cfg.logger(),
	}, nil
}

// Open creates a Registry and initializes it. Release it with Close.
func Open(cfg *Config) (*Registry, error) {
	r, err := NewRegistry(cfg)
	if err != nil {
		return nil, err
	}
	r.Init()
	return r, nil
}

// Init makes the Registry ready for conversions. It allocates no session
// and is a no-op when the Registry is already ready.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return
	}
	r.ready = true
	r.logger.Debug("resampler initialized", "quality", r.cfg.Quality, "interpolation", r.cfg.Interpolation)
}

// Deinit releases the active session and makes the Registry reject
// conversions with ErrNotInitialized until the next Init. It is safe to call
// mid-stream and on an uninitialized Registry.
func (r *Registry) Deinit() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return
	}
	r.dropSessionLocked()
	r.ready = false
	r.stats = Stats{}
	r.logger.Debug("resampler deinitialized")
}

// Close deinitializes the Registry. It always returns nil.
func (r *Registry) Close() error {
	r.Deinit()
	return nil
}

// Initialized reports whether the Registry accepts conversions.
func (r *Registry) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Resample converts inputLength bytes of input from channelsIn channels at
// rateIn Hz to channelsOut channels at rateOut Hz, both with bitsPerSample
// bits. It returns the converted bytes, possibly none, and continues the
// stream of the previous call when the formats match.
func (r *Registry) Resample(input []byte, inputLength, channelsIn, rateIn, rateOut, channelsOut, bitsPerSample int) ([]byte, error) {
	in := Format{SampleRate: rateIn, Channels: channelsIn, BitsPerSample: bitsPerSample}
	out := Format{SampleRate: rateOut, Channels: channelsOut, BitsPerSample: bitsPerSample}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return nil, ErrNotInitialized
	}
	if inputLength < 0 || inputLength > len(input) {
		return nil, fmt.Errorf("%w: input length %d outside buffer of %d bytes", ErrFormat, inputLength, len(input))
	}
	return r.convertLocked(input[:inputLength], in, out)
}

// Convert converts input from format in to format out. Unlike Resample it
// allows the bit depth to change.
//
// Bytes that do not complete an input frame are kept and prepended to the
// next call. On error the Registry state is left exactly as before the call.
func (r *Registry) Convert(input []byte, in, out Format) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return nil, ErrNotInitialized
	}
	return r.convertLocked(input, in, out)
}

func (r *Registry) convertLocked(input []byte, in, out Format) ([]byte, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("input format: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("output format: %w", err)
	}

	s := r.sess
	fresh := s == nil || s.in != in || s.out != out
	if fresh {
		var err error
		if s, err = newSession(in, out, &r.cfg); err != nil {
			return nil, err
		}
	}

	result, consumed, err := s.process(input)
	if err != nil {
		return nil, err
	}

	if fresh {
		if r.sess != nil {
			r.logger.Debug("format changed, session replaced",
				"from_in", r.sess.in, "from_out", r.sess.out, "in", in, "out", out)
			r.dropSessionLocked()
		} else {
			r.logger.Debug("session created", "in", in, "out", out, "filter_taps", s.taps)
		}
		r.sess = s
		r.stats.Sessions++
	}

	r.stats.Calls++
	r.stats.FramesIn += int64(consumed)
	r.stats.FramesOut += int64(len(result) / out.FrameSize())
	return result, nil
}

// Flush releases the output the active session still holds back and
// restarts the session for a new stream with the same formats. After Flush
// the stream has produced ⌈framesIn·rateOut/rateIn⌉ frames in total. A
// trailing partial input frame is dropped.
//
// Flush with no active session returns no bytes and a nil error.
func (r *Registry) Flush() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return nil, ErrNotInitialized
	}
	if r.sess == nil {
		return []byte{}, nil
	}

	out, dropped, err := r.sess.flush()
	if err != nil {
		return nil, err
	}
	r.stats.FramesOut += int64(len(out) / r.sess.out.FrameSize())
	r.logger.Debug("session flushed", "in", r.sess.in, "out", r.sess.out,
		"bytes", len(out), "dropped_bytes", dropped)
	return out, nil
}

// ActiveFormats returns the format pair of the active session. ok is false
// when no session exists.
func (r *Registry) ActiveFormats() (in, out Format, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil {
		return Format{}, Format{}, false
	}
	return r.sess.in, r.sess.out, true
}

// Latency returns the number of output frames the active session holds back
// until Flush, or 0 without a session.
func (r *Registry) Latency() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sess == nil {
		return 0
	}
	return r.sess.latency()
}

// Stats returns the counters accumulated since Init.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Registry) dropSessionLocked() {
	if r.sess == nil {
		return
	}
	r.sess.release()
	r.sess = nil
}
