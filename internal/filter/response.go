package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// minResponseSize is the smallest FFT used for a frequency response.
	minResponseSize = 1024

	// minMagnitude keeps MagnitudeDB finite.
	minMagnitude = 1e-15
)

// Response is the magnitude response of an FIR filter sampled on a uniform
// grid from DC to Nyquist.
type Response struct {
	// Frequencies in cycles per sample, from 0 to 0.5.
	Frequencies []float64

	// Magnitude is the linear gain at each frequency.
	Magnitude []float64
}

// ComputeResponse evaluates the response of coeffs with a zero-padded real
// FFT of at least points·2 bins.
func ComputeResponse(coeffs []float64, points int) Response {
	size := minResponseSize
	for size < 2*points || size < len(coeffs) {
		size *= 2
	}

	padded := make([]float64, size)
	copy(padded, coeffs)

	fft := fourier.NewFFT(size)
	spectrum := fft.Coefficients(nil, padded)

	r := Response{
		Frequencies: make([]float64, len(spectrum)),
		Magnitude:   make([]float64, len(spectrum)),
	}
	for k, c := range spectrum {
		r.Frequencies[k] = fft.Freq(k)
		r.Magnitude[k] = cmplx.Abs(c)
	}
	return r
}

// At returns the magnitude at the bin nearest to freq (cycles per sample).
func (r Response) At(freq float64) float64 {
	if len(r.Frequencies) < 2 {
		return 0
	}
	step := r.Frequencies[1]
	k := int(math.Round(freq / step))
	k = min(max(k, 0), len(r.Magnitude)-1)
	return r.Magnitude[k]
}

// PeakDB returns the largest gain in dB over [from, to].
func (r Response) PeakDB(from, to float64) float64 {
	peak := 0.0
	for k, f := range r.Frequencies {
		if f >= from && f <= to {
			peak = max(peak, r.Magnitude[k])
		}
	}
	return MagnitudeDB(peak)
}

// MagnitudeDB converts a linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	return 20 * math.Log10(max(magnitude, minMagnitude))
}
