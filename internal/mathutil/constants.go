package mathutil

// Bessel series limits.
const (
	besselMaxTerms = 500
	besselEpsilon  = 1e-17
	halfDivisor    = 2.0
)

// Kaiser window formula constants (Kaiser & Schafer).
const (
	kaiserAttHigh   = 50.0
	kaiserAttMedium = 21.0

	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886
)

// Filter length estimation.
const (
	kaiserLengthOffset     = 7.95
	kaiserLengthMultiplier = 2.285

	// defaultTransitionBW keeps the estimate finite for a zero-width band.
	defaultTransitionBW = 0.01

	// MinFilterTaps is the shortest filter EstimateFilterLength returns.
	MinFilterTaps = 7

	// MaxFilterTaps bounds the per-sample cost of the anti-alias stage.
	MaxFilterTaps = 2047
)
