package filter

import (
	"slices"

	"github.com/tphakala/simd/f64"
	"github.com/wind0ws/go-pcm-resampler/internal/pipeline"
)

// AntiAlias is a streaming FIR low-pass stage for one channel.
//
// The taps-1 most recent input samples live in a DelayLine, so a stream fed
// in pieces is filtered exactly as if it were fed at once. The linear-phase
// group delay is compensated: the first (taps-1)/2 outputs are withheld and
// Flush releases the matching tail, so output sample n lines up with input
// sample n and the total output count equals the total input count.
type AntiAlias struct {
	kernel     []float64 // coefficients reversed for a forward dot product
	delay      *pipeline.DelayLine
	groupDelay int
	skip       int

	work []float64
	out  []float64
}

// NewAntiAlias creates a stage that filters with coeffs.
func NewAntiAlias(coeffs []float64) *AntiAlias {
	kernel := slices.Clone(coeffs)
	slices.Reverse(kernel)

	groupDelay := (len(kernel) - 1) / 2
	return &AntiAlias{
		kernel:     kernel,
		delay:      pipeline.NewDelayLine(len(kernel) - 1),
		groupDelay: groupDelay,
		skip:       groupDelay,
	}
}

// Process filters input and returns the aligned output available so far.
func (a *AntiAlias) Process(input []float64) []float64 {
	a.out = a.out[:0]
	if len(input) == 0 {
		return a.out
	}

	taps := len(a.kernel)
	a.work = a.delay.Snapshot(a.work[:0])
	a.work = append(a.work, input...)

	a.out = slices.Grow(a.out, len(input))
	for i := range input {
		a.out = append(a.out, f64.DotProductUnsafe(a.work[i:i+taps], a.kernel))
	}
	a.delay.Push(input...)

	if a.skip > 0 {
		d := min(a.skip, len(a.out))
		a.skip -= d
		return a.out[d:]
	}
	return a.out
}

// Flush pushes zeros through the filter to release the withheld tail, then
// resets the stage.
func (a *AntiAlias) Flush() []float64 {
	tail := slices.Clone(a.Process(make([]float64, a.groupDelay)))
	a.Reset()
	return tail
}

// Reset zeroes the delay line and restores the group delay compensation.
func (a *AntiAlias) Reset() {
	a.delay.Reset()
	a.skip = a.groupDelay
}

// Ratio returns 1: the filter does not change the rate.
func (a *AntiAlias) Ratio() float64 { return 1 }

// Latency returns the number of samples withheld until Flush.
func (a *AntiAlias) Latency() int { return a.groupDelay }

// Taps returns the filter length.
func (a *AntiAlias) Taps() int { return len(a.kernel) }

var _ pipeline.Stage = (*AntiAlias)(nil)
