// Package pipeline defines the per-channel processing stages of a resampling
// session and the chain that runs them in order.
package pipeline

// Stage is one per-channel processing step. Stages keep whatever history they
// need between calls, so feeding a stream in pieces produces the same samples
// as feeding it at once.
type Stage interface {
	// Process consumes input and returns the samples it can produce so far.
	// The returned slice is owned by the stage and valid until the next call.
	Process(input []float64) []float64

	// Flush returns the samples still held back by the stage and resets it.
	Flush() []float64

	// Reset discards all history.
	Reset()

	// Ratio returns output samples per input sample.
	Ratio() float64

	// Latency returns the stage delay in output samples.
	Latency() int
}

// StageType identifies a processing stage.
type StageType int

const (
	// StagePassthrough copies samples when no conversion is needed.
	StagePassthrough StageType = iota

	// StageAntiAlias low-pass filters ahead of decimation.
	StageAntiAlias

	// StageRate performs the fractional rate conversion.
	StageRate
)

func (s StageType) String() string {
	switch s {
	case StagePassthrough:
		return "passthrough"
	case StageAntiAlias:
		return "antialias"
	case StageRate:
		return "rate"
	default:
		return "unknown"
	}
}

// Plan returns the stage sequence for converting rateIn to rateOut.
// Downsampling filters before converting; upsampling relies on the
// interpolation kernel alone; equal rates pass samples through.
func Plan(rateIn, rateOut int) []StageType {
	switch {
	case rateIn == rateOut:
		return []StageType{StagePassthrough}
	case rateOut < rateIn:
		return []StageType{StageAntiAlias, StageRate}
	default:
		return []StageType{StageRate}
	}
}

// Chain runs stages in order.
type Chain []Stage

// Process feeds input through every stage.
func (c Chain) Process(input []float64) []float64 {
	out := input
	for _, s := range c {
		out = s.Process(out)
	}
	return out
}

// Flush drains the chain front to back: whatever an earlier stage still holds
// is pushed through the later ones before they are flushed in turn.
func (c Chain) Flush() []float64 {
	var out []float64
	for i, s := range c {
		if i == 0 {
			out = s.Flush()
			continue
		}
		head := append([]float64(nil), s.Process(out)...)
		out = append(head, s.Flush()...)
	}
	return out
}

// Reset clears every stage.
func (c Chain) Reset() {
	for _, s := range c {
		s.Reset()
	}
}

// Ratio returns the combined output/input ratio.
func (c Chain) Ratio() float64 {
	r := 1.0
	for _, s := range c {
		r *= s.Ratio()
	}
	return r
}

// Latency returns the combined delay in output samples of the last stage.
func (c Chain) Latency() int {
	total := 0.0
	for i, s := range c {
		after := 1.0
		for _, later := range c[i+1:] {
			after *= later.Ratio()
		}
		total += float64(s.Latency()) * after
	}
	return int(total + 0.5)
}

// Passthrough is a Stage that returns its input unchanged.
type Passthrough struct{}

// Process returns input.
func (Passthrough) Process(input []float64) []float64 { return input }

// Flush returns nothing; Passthrough holds no samples.
func (Passthrough) Flush() []float64 { return nil }

// Reset is a no-op.
func (Passthrough) Reset() {}

// Ratio returns 1.
func (Passthrough) Ratio() float64 { return 1 }

// Latency returns 0.
func (Passthrough) Latency() int { return 0 }

var _ Stage = Passthrough{}
