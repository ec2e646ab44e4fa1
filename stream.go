package resampler

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Reader wraps an io.Reader of PCM in one format and yields the same audio in
// another. It reads the source in fixed chunks, keeps converted bytes that do
// not fit the caller's buffer for the next Read, and flushes the converter
// when the source reports io.EOF.
type Reader struct {
	src     io.Reader
	in, out Format
	reg     *Registry
	chunk   []byte

	mu      sync.Mutex
	pending []byte
	err     error
	closed  bool
}

// NewReader creates a Reader converting src from in to out. A nil cfg means
// DefaultConfig. The Reader must be closed with Close.
func NewReader(src io.Reader, in, out Format, cfg *Config) (*Reader, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("input format: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("output format: %w", err)
	}

	reg, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &Reader{
		src:   src,
		in:    in,
		out:   out,
		reg:   reg,
		chunk: make([]byte, defaultChunkSize),
	}, nil
}

// Read copies converted audio into p. It returns io.EOF once the source is
// exhausted and every converted byte has been returned.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fillLocked()
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// fillLocked reads one chunk from the source and converts it. Errors are
// recorded in r.err.
func (r *Reader) fillLocked() {
	n, readErr := r.src.Read(r.chunk)
	if n > 0 {
		out, err := r.reg.Convert(r.chunk[:n], r.in, r.out)
		if err != nil {
			r.err = err
			return
		}
		r.pending = append(r.pending, out...)
	}

	switch {
	case readErr == nil:
	case errors.Is(readErr, io.EOF):
		tail, err := r.reg.Flush()
		if err != nil {
			r.err = err
			return
		}
		r.pending = append(r.pending, tail...)
		r.err = io.EOF
	default:
		r.err = readErr
	}
}

// Stats returns the conversion counters of the underlying Registry.
func (r *Reader) Stats() Stats {
	return r.reg.Stats()
}

// Close releases the converter. Subsequent Read calls return
// io.ErrClosedPipe.
func (r *Reader) Close() error {
	return r.CloseWithError(fmt.Errorf("resampler: %w", io.ErrClosedPipe))
}

// CloseWithError releases the converter. Subsequent Read calls return err.
func (r *Reader) CloseWithError(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.pending = nil
	r.err = err
	return r.reg.Close()
}
