package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidInterpolation indicates an unknown Interpolation value.
var ErrInvalidInterpolation = errors.New("invalid interpolation")

// Interpolation selects the kernel used between input samples.
type Interpolation int

const (
	// InterpolationCubic uses 4-point, 3rd-order Hermite (Catmull-Rom)
	// interpolation. It is continuous in the first derivative, which keeps
	// the images left by upsampling lower than linear interpolation does.
	InterpolationCubic Interpolation = iota

	// InterpolationLinear uses 2-point linear interpolation.
	InterpolationLinear

	// InterpolationHold repeats the input sample at or before each output
	// position (zero-order hold). It reproduces the plain drop/duplicate
	// conversion some telephony stacks perform.
	InterpolationHold
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationCubic:
		return "cubic"
	case InterpolationLinear:
		return "linear"
	case InterpolationHold:
		return "hold"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation maps a name produced by String back to its value.
func ParseInterpolation(s string) (Interpolation, error) {
	for _, i := range []Interpolation{InterpolationCubic, InterpolationLinear, InterpolationHold} {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInterpolation, s)
}

// Hermite interpolation coefficients:
//
//	y = ((a·x + b)·x + c)·x + d
//	a = -0.5·y0 + 1.5·y1 - 1.5·y2 + 0.5·y3
//	b = y0 - 2.5·y1 + 2·y2 - 0.5·y3
//	c = -0.5·y0 + 0.5·y2
//	d = y1
const (
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// kernel describes an interpolator by how many samples it reads before and
// after the left neighbour at index i.
type kernel struct {
	before, after int
	interpolate   func(h []float64, i int, x float64) float64
}

func kernelFor(interp Interpolation) (kernel, error) {
	switch interp {
	case InterpolationCubic:
		return kernel{before: 1, after: 2, interpolate: cubic}, nil
	case InterpolationLinear:
		return kernel{before: 0, after: 1, interpolate: linear}, nil
	case InterpolationHold:
		return kernel{before: 0, after: 0, interpolate: hold}, nil
	default:
		return kernel{}, fmt.Errorf("%w: %d", ErrInvalidInterpolation, int(interp))
	}
}

func cubic(h []float64, i int, x float64) float64 {
	y0, y1, y2, y3 := h[i-1], h[i], h[i+1], h[i+2]

	a := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	b := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	c := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2

	return ((a*x+b)*x+c)*x + y1
}

func linear(h []float64, i int, x float64) float64 {
	return (1-x)*h[i] + x*h[i+1]
}

func hold(h []float64, i int, _ float64) float64 {
	return h[i]
}
