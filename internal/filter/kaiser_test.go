package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wind0ws/go-pcm-resampler/internal/testutil"
)

const (
	windowTolerance = 1e-12
	gainTolerance   = 1e-12
)

// TestKaiserWindow_Symmetry verifies that the Kaiser window is symmetric.
func TestKaiserWindow_Symmetry(t *testing.T) {
	tests := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_11_beta_5", 11, 5},
		{"length_21_beta_8", 21, 8.653728},
		{"length_101_beta_8", 101, 7.857},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := KaiserWindow(tt.length, tt.beta)

			assert.Len(t, window, tt.length)
			testutil.AssertSymmetric(t, window, windowTolerance)
			testutil.AssertCenterIsMax(t, window)
			assert.InDelta(t, 1.0, window[tt.length/2], windowTolerance)
		})
	}
}

func TestKaiserWindow_EdgeCases(t *testing.T) {
	assert.Empty(t, KaiserWindow(0, 5))
	assert.Equal(t, []float64{1}, KaiserWindow(1, 5))

	// β = 0 is a rectangular window
	for _, w := range KaiserWindow(9, 0) {
		assert.InDelta(t, 1.0, w, windowTolerance)
	}
}

func TestDesignLowPass(t *testing.T) {
	coeffs, err := DesignLowPass(LowPassParams{NumTaps: 63, Cutoff: 0.2, Attenuation: 80, Gain: 1})
	require.NoError(t, err)

	testutil.AssertOddLength(t, coeffs)
	testutil.AssertSymmetric(t, coeffs, windowTolerance)
	testutil.AssertCenterIsMax(t, coeffs)
	testutil.AssertDCGain(t, coeffs, 1.0, gainTolerance)
	testutil.AssertNoNaNOrInf(t, coeffs)
}

func TestDesignLowPass_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params LowPassParams
	}{
		{"too short", LowPassParams{NumTaps: 3, Cutoff: 0.2, Attenuation: 60, Gain: 1}},
		{"even", LowPassParams{NumTaps: 64, Cutoff: 0.2, Attenuation: 60, Gain: 1}},
		{"cutoff at nyquist", LowPassParams{NumTaps: 63, Cutoff: 0.5, Attenuation: 60, Gain: 1}},
		{"zero cutoff", LowPassParams{NumTaps: 63, Cutoff: 0, Attenuation: 60, Gain: 1}},
		{"negative attenuation", LowPassParams{NumTaps: 63, Cutoff: 0.2, Attenuation: -1, Gain: 1}},
		{"zero gain", LowPassParams{NumTaps: 63, Cutoff: 0.2, Attenuation: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DesignLowPass(tt.params)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

// TestDesignAntiAlias_Response verifies the passband is flat and everything
// above the target Nyquist is attenuated.
func TestDesignAntiAlias_Response(t *testing.T) {
	tests := []struct {
		name        string
		rateIn      int
		rateOut     int
		attenuation float64
		bandwidth   float64
	}{
		{"16k_to_8k", 16000, 8000, 80, 0.9},
		{"48k_to_16k", 48000, 16000, 100, 0.9},
		{"44k1_to_22k05", 44100, 22050, 60, 0.85},
		{"48k_to_44k1", 48000, 44100, 80, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs, err := DesignAntiAlias(tt.rateIn, tt.rateOut, Spec{Attenuation: tt.attenuation, Bandwidth: tt.bandwidth})
			require.NoError(t, err)
			testutil.AssertDCGain(t, coeffs, 1.0, gainTolerance)

			stop := 0.5 * float64(tt.rateOut) / float64(tt.rateIn)
			pass := 0.5 * stop * tt.bandwidth

			resp := ComputeResponse(coeffs, 4096)
			assert.Less(t, resp.PeakDB(stop, 0.5), -(tt.attenuation - 6),
				"stopband above %g not attenuated", stop)
			assert.InDelta(t, 0.0, MagnitudeDB(resp.At(pass)), 0.05, "passband not flat")
		})
	}
}

func TestDesignAntiAlias_Invalid(t *testing.T) {
	_, err := DesignAntiAlias(8000, 16000, Spec{Attenuation: 80, Bandwidth: 0.9})
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = DesignAntiAlias(16000, 8000, Spec{Attenuation: 80, Bandwidth: 1})
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = DesignAntiAlias(0, 8000, Spec{Attenuation: 80, Bandwidth: 0.9})
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestDesignAntiAlias_MaxTaps(t *testing.T) {
	coeffs, err := DesignAntiAlias(48000, 8000, Spec{Attenuation: 100, Bandwidth: 0.95, MaxTaps: 64})
	require.NoError(t, err)
	assert.Len(t, coeffs, 63)
}
