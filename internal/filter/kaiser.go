// Package filter designs and runs the anti-aliasing low-pass filter that
// precedes decimation.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"github.com/wind0ws/go-pcm-resampler/internal/mathutil"
)

// ErrInvalidParams indicates filter design parameters that cannot produce a
// usable filter.
var ErrInvalidParams = errors.New("invalid filter parameters")

const (
	// sincZeroThreshold treats |x| below it as the sinc center tap.
	sincZeroThreshold = 1e-10

	// nyquist is the normalized Nyquist frequency in cycles per sample.
	nyquist = 0.5
)

// KaiserWindow generates a symmetric Kaiser window of the given length:
//
//	w[n] = I₀(β·√(1 − ((n − α)/α)²)) / I₀(β),  α = (length − 1)/2
//
// The center sample is 1.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)
	for n := range window {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(max(0, 1-x*x))) / i0Beta
	}
	return window
}

// LowPassParams describes a windowed-sinc low-pass filter.
type LowPassParams struct {
	// NumTaps is the filter length. It must be odd so the filter has an
	// integer group delay of (NumTaps-1)/2 samples.
	NumTaps int

	// Cutoff is the -6 dB frequency in cycles per sample, in (0, 0.5).
	Cutoff float64

	// Attenuation is the stopband attenuation in dB; it selects the Kaiser β.
	Attenuation float64

	// Gain is the DC gain, usually 1.
	Gain float64
}

// Validate checks the parameters.
func (p *LowPassParams) Validate() error {
	if p.NumTaps < mathutil.MinFilterTaps || p.NumTaps > mathutil.MaxFilterTaps {
		return fmt.Errorf("%w: %d taps outside [%d, %d]",
			ErrInvalidParams, p.NumTaps, mathutil.MinFilterTaps, mathutil.MaxFilterTaps)
	}
	if p.NumTaps%2 == 0 {
		return fmt.Errorf("%w: %d taps is even", ErrInvalidParams, p.NumTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff >= nyquist {
		return fmt.Errorf("%w: cutoff %g outside (0, 0.5)", ErrInvalidParams, p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("%w: negative attenuation %g dB", ErrInvalidParams, p.Attenuation)
	}
	if p.Gain <= 0 {
		return fmt.Errorf("%w: gain %g must be positive", ErrInvalidParams, p.Gain)
	}
	return nil
}

// DesignLowPass designs a Kaiser-windowed sinc low-pass FIR. The result is
// symmetric (linear phase) and scaled so its coefficients sum to Gain.
func DesignLowPass(p LowPassParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation))
	coeffs := make([]float64, p.NumTaps)
	center := float64(p.NumTaps-1) / 2

	for n := range coeffs {
		x := float64(n) - center
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = 2 * p.Cutoff
		} else {
			sinc = math.Sin(2*math.Pi*p.Cutoff*x) / (math.Pi * x)
		}
		coeffs[n] = sinc * window[n]
	}

	if sum := f64.Sum(coeffs); math.Abs(sum) > sincZeroThreshold {
		f64.Scale(coeffs, coeffs, p.Gain/sum)
	}
	return coeffs, nil
}

// Spec holds the quality knobs of an anti-alias filter.
type Spec struct {
	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Bandwidth places the -6 dB point as a fraction of the target Nyquist
	// frequency, in (0, 1). The stopband starts at the target Nyquist.
	Bandwidth float64

	// MaxTaps caps the filter length; 0 means mathutil.MaxFilterTaps.
	MaxTaps int
}

// DesignAntiAlias designs the low-pass filter applied at rateIn before
// converting down to rateOut. The transition band ends exactly at the target
// Nyquist frequency rateOut/2, so nothing that would fold back into the output
// band survives with more than Spec.Attenuation dB of gain.
func DesignAntiAlias(rateIn, rateOut int, spec Spec) ([]float64, error) {
	if rateIn <= 0 || rateOut <= 0 || rateOut >= rateIn {
		return nil, fmt.Errorf("%w: anti-alias filter needs 0 < rateOut < rateIn, got %d -> %d",
			ErrInvalidParams, rateIn, rateOut)
	}
	if spec.Bandwidth <= 0 || spec.Bandwidth >= 1 {
		return nil, fmt.Errorf("%w: bandwidth %g outside (0, 1)", ErrInvalidParams, spec.Bandwidth)
	}

	stop := nyquist * float64(rateOut) / float64(rateIn)
	cutoff := stop * spec.Bandwidth
	transition := 2 * (stop - cutoff)

	taps := mathutil.EstimateFilterLength(spec.Attenuation, transition)
	if limit := spec.MaxTaps; limit > 0 && taps > limit {
		taps = limit
		if taps%2 == 0 {
			taps--
		}
	}

	return DesignLowPass(LowPassParams{
		NumTaps:     taps,
		Cutoff:      cutoff,
		Attenuation: spec.Attenuation,
		Gain:        1,
	})
}
