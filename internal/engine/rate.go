// Package engine implements the fractional-phase rate conversion stage.
package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/wind0ws/go-pcm-resampler/internal/mathutil"
	"github.com/wind0ws/go-pcm-resampler/internal/pipeline"
)

// ErrInvalidRate indicates a non-positive sample rate.
var ErrInvalidRate = errors.New("invalid sample rate")

// RateConverter converts one channel from rateIn to rateOut with a phase
// accumulator and a short interpolation kernel.
//
// The read position is kept as exact rational state: an integer index into
// the retained input plus a numerator over den = rateOut/gcd(rateIn, rateOut).
// Every output advances it by the step rateIn/rateOut, split into an integer
// part and a remainder, so no rounding error accumulates and feeding a stream
// in pieces yields exactly the samples of feeding it at once.
type RateConverter struct {
	rateIn, rateOut int
	kernel          kernel

	// step = stepInt + stepNum/den input samples per output sample
	stepInt int
	stepNum int64
	den     int64

	// hist holds the retained input; pos indexes the left neighbour of the
	// next output and num/den is its fractional offset, 0 <= num < den.
	hist []float64
	pos  int
	num  int64

	out []float64

	framesIn  int64
	framesOut int64
}

// NewRateConverter creates a converter for one channel.
func NewRateConverter(rateIn, rateOut int, interp Interpolation) (*RateConverter, error) {
	if rateIn <= 0 || rateOut <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d Hz", ErrInvalidRate, rateIn, rateOut)
	}
	k, err := kernelFor(interp)
	if err != nil {
		return nil, err
	}

	num, den := mathutil.ReduceRatio(int64(rateIn), int64(rateOut))
	r := &RateConverter{
		rateIn:  rateIn,
		rateOut: rateOut,
		kernel:  k,
		stepInt: int(num / den),
		stepNum: num % den,
		den:     den,
	}
	r.Reset()
	return r, nil
}

// Process consumes input and returns every output whose interpolation window
// is complete. The returned slice is reused by the next call.
func (r *RateConverter) Process(input []float64) []float64 {
	r.hist = append(r.hist, input...)
	r.framesIn += int64(len(input))
	r.out = r.emit(r.out[:0], len(r.hist))
	r.compact()
	return r.out
}

// Flush releases the outputs still waiting for look-ahead samples, treating
// the samples after the end of the stream as silence, then resets the
// converter. With Flush the stream yields ⌈framesIn·rateOut/rateIn⌉ outputs.
func (r *RateConverter) Flush() []float64 {
	end := len(r.hist)
	r.hist = append(r.hist, make([]float64, r.kernel.after)...)
	out := r.emit(nil, end)
	r.Reset()
	return out
}

// emit appends outputs while the left neighbour lies before limit and the
// whole kernel window lies inside hist.
func (r *RateConverter) emit(dst []float64, limit int) []float64 {
	after := r.kernel.after
	den := float64(r.den)
	for r.pos < limit && r.pos+after < len(r.hist) {
		if r.num == 0 {
			dst = append(dst, r.hist[r.pos])
		} else {
			dst = append(dst, r.kernel.interpolate(r.hist, r.pos, float64(r.num)/den))
		}
		r.framesOut++

		r.num += r.stepNum
		r.pos += r.stepInt
		if r.num >= r.den {
			r.num -= r.den
			r.pos++
		}
	}
	return dst
}

// compact drops input no future output can reach. When decimating, pos may
// run past the end of hist; the overshoot is kept in pos so the next input
// is skipped accordingly.
func (r *RateConverter) compact() {
	drop := min(r.pos-r.kernel.before, len(r.hist))
	if drop <= 0 {
		return
	}
	n := copy(r.hist, r.hist[drop:])
	r.hist = r.hist[:n]
	r.pos -= drop
}

// Reset restores the initial state: silence before the stream and phase 0.
func (r *RateConverter) Reset() {
	r.hist = slices.Grow(r.hist[:0], r.kernel.before)[:r.kernel.before]
	clear(r.hist)
	r.pos = r.kernel.before
	r.num = 0
	r.framesIn = 0
	r.framesOut = 0
}

// Ratio returns rateOut/rateIn.
func (r *RateConverter) Ratio() float64 {
	return float64(r.rateOut) / float64(r.rateIn)
}

// Latency returns how many outputs wait for look-ahead input, at most.
func (r *RateConverter) Latency() int {
	return int(mathutil.CeilDiv(int64(r.kernel.after)*int64(r.rateOut), int64(r.rateIn)))
}

// Phase returns the fractional read position num/den, 0 <= num < den.
func (r *RateConverter) Phase() (num, den int64) {
	return r.num, r.den
}

// Frames returns the input consumed and output produced since the last reset.
func (r *RateConverter) Frames() (in, out int64) {
	return r.framesIn, r.framesOut
}

var _ pipeline.Stage = (*RateConverter)(nil)
