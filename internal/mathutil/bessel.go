// Package mathutil provides the numeric helpers used by the filter designer
// and the rate converter.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero: I₀(x).
//
// The power series Σ ((x/2)ᵏ / k!)² converges for every x and all terms are
// positive, so summing until the next term no longer changes the result gives
// full float64 precision for the β range used by Kaiser windows (β < 40).
func BesselI0(x float64) float64 {
	half := math.Abs(x) / halfDivisor
	sum := 1.0
	term := 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselEpsilon {
			break
		}
	}
	return sum
}

// KaiserBeta computes the Kaiser window β parameter for the desired stopband
// attenuation in dB, using Kaiser's empirical formula:
//
//	att > 50 dB:        β = 0.1102 (att − 8.7)
//	21 dB ≤ att ≤ 50 dB: β = 0.5842 (att − 21)^0.4 + 0.07886 (att − 21)
//	att < 21 dB:        β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0
	}
}

// EstimateFilterLength estimates the number of taps a Kaiser-windowed FIR
// needs to reach attenuation dB with the given transition width.
//
// transitionBW is expressed in cycles per sample (0 to 0.5). The result is odd
// so the filter has an integer group delay, and is clamped to
// [MinFilterTaps, MaxFilterTaps].
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	// N ≈ (att − 7.95) / (2.285 · 2π · Δf)
	n := (attenuation - kaiserLengthOffset) / (kaiserLengthMultiplier * 2 * math.Pi * transitionBW)

	taps := int(math.Ceil(n)) + 1
	if taps%2 == 0 {
		taps++
	}
	return min(max(taps, MinFilterTaps), MaxFilterTaps)
}
