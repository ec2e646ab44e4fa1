package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wind0ws/go-pcm-resampler/internal/mathutil"
	"github.com/wind0ws/go-pcm-resampler/internal/testutil"
)

var allInterpolations = []Interpolation{InterpolationCubic, InterpolationLinear, InterpolationHold}

// runAll feeds input in chunks of the given sizes (cycled) and flushes.
func runAll(t *testing.T, r *RateConverter, input []float64, chunks ...int) []float64 {
	t.Helper()
	var out []float64
	for i, c := 0, 0; i < len(input); c++ {
		n := min(chunks[c%len(chunks)], len(input)-i)
		out = append(out, r.Process(input[i:i+n])...)
		i += n
	}
	return append(out, r.Flush()...)
}

// =============================================================================
// Construction
// =============================================================================

func TestNewRateConverter_InvalidRate(t *testing.T) {
	tests := []struct {
		name            string
		rateIn, rateOut int
	}{
		{"zero input", 0, 8000},
		{"zero output", 16000, 0},
		{"negative", -16000, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRateConverter(tt.rateIn, tt.rateOut, InterpolationCubic)
			require.ErrorIs(t, err, ErrInvalidRate)
		})
	}
}

func TestNewRateConverter_InvalidInterpolation(t *testing.T) {
	_, err := NewRateConverter(16000, 8000, Interpolation(42))
	require.ErrorIs(t, err, ErrInvalidInterpolation)
}

func TestParseInterpolation(t *testing.T) {
	for _, interp := range allInterpolations {
		got, err := ParseInterpolation(interp.String())
		require.NoError(t, err)
		assert.Equal(t, interp, got)
	}

	_, err := ParseInterpolation("sinc")
	require.ErrorIs(t, err, ErrInvalidInterpolation)
	assert.Equal(t, "Interpolation(9)", Interpolation(9).String())
}

// =============================================================================
// Stream properties
// =============================================================================

// TestRateConverter_FlushLength verifies a flushed stream of N frames yields
// exactly ⌈N·rateOut/rateIn⌉ frames.
func TestRateConverter_FlushLength(t *testing.T) {
	rates := [][2]int{
		{16000, 8000}, {8000, 16000}, {44100, 48000}, {48000, 44100},
		{22050, 16000}, {8000, 48000}, {48000, 8000}, {11025, 96000},
	}

	for _, interp := range allInterpolations {
		for _, rr := range rates {
			for _, n := range []int{0, 1, 2, 7, 160, 1001} {
				r, err := NewRateConverter(rr[0], rr[1], interp)
				require.NoError(t, err)

				out := runAll(t, r, testutil.Sine(n, float64(rr[0]), 440), 64)
				want := mathutil.CeilDiv(int64(n)*int64(rr[1]), int64(rr[0]))
				assert.Equal(t, int(want), len(out), "%v %d->%d n=%d", interp, rr[0], rr[1], n)
			}
		}
	}
}

// TestRateConverter_ChunkingInvariance verifies the output does not depend on
// how the input is split.
func TestRateConverter_ChunkingInvariance(t *testing.T) {
	input := testutil.MultiTone(3000, 44100, []float64{300, 1200, 5000})

	for _, interp := range allInterpolations {
		t.Run(interp.String(), func(t *testing.T) {
			whole, err := NewRateConverter(44100, 16000, interp)
			require.NoError(t, err)
			want := runAll(t, whole, input, len(input))

			for _, chunks := range [][]int{{1}, {3, 17}, {1024, 1}, {441}} {
				r, err := NewRateConverter(44100, 16000, interp)
				require.NoError(t, err)
				got := runAll(t, r, input, chunks...)
				assert.Equal(t, want, got, "chunks %v", chunks)
			}
		})
	}
}

func TestRateConverter_Silence(t *testing.T) {
	r, err := NewRateConverter(16000, 8000, InterpolationCubic)
	require.NoError(t, err)

	out := runAll(t, r, make([]float64, 2048), 512)
	require.Len(t, out, 1024)
	for i, v := range out {
		require.Zero(t, v, "sample %d", i)
	}
}

// TestRateConverter_Decimate2 verifies exact 2:1 decimation picks every other
// input sample, since every output lands on an integer position.
func TestRateConverter_Decimate2(t *testing.T) {
	input := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	for _, interp := range allInterpolations {
		r, err := NewRateConverter(16000, 8000, interp)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.3, 0.5, 0.7}, runAll(t, r, input, 2), interp.String())
	}
}

func TestRateConverter_SameRateIsIdentity(t *testing.T) {
	input := testutil.Sine(500, 8000, 1000)
	r, err := NewRateConverter(8000, 8000, InterpolationCubic)
	require.NoError(t, err)
	assert.Equal(t, input, runAll(t, r, input, 33))
}

func TestRateConverter_Upsample2Linear(t *testing.T) {
	r, err := NewRateConverter(8000, 16000, InterpolationLinear)
	require.NoError(t, err)

	out := runAll(t, r, []float64{0, 1, 0}, 1)
	// the final midpoint interpolates towards the silence after the stream
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5, 0, 0}, out, 1e-15)
}

func TestRateConverter_SinePreserved(t *testing.T) {
	const freq = 440.0
	input := testutil.Sine(8000, 16000, freq)

	r, err := NewRateConverter(16000, 44100, InterpolationCubic)
	require.NoError(t, err)
	out := runAll(t, r, input, 1000)

	want := testutil.Sine(len(out), 44100, freq)
	// skip the edges that see silence outside the stream
	for i := 4; i < len(out)-8; i++ {
		assert.InDelta(t, want[i], out[i], 1e-3, "sample %d", i)
	}
}

func TestRateConverter_PhaseInvariant(t *testing.T) {
	r, err := NewRateConverter(44100, 48000, InterpolationCubic)
	require.NoError(t, err)

	input := testutil.Sine(97, 44100, 1000)
	for range 50 {
		r.Process(input)
		num, den := r.Phase()
		assert.Equal(t, int64(160), den)
		assert.GreaterOrEqual(t, num, int64(0))
		assert.Less(t, num, den)
	}

	in, out := r.Frames()
	assert.Equal(t, int64(97*50), in)
	assert.Positive(t, out)
}

func TestRateConverter_Reset(t *testing.T) {
	input := testutil.Sine(1000, 48000, 1000)

	r, err := NewRateConverter(48000, 44100, InterpolationCubic)
	require.NoError(t, err)
	first := append([]float64(nil), r.Process(input)...)

	r.Process(testutil.Sine(333, 48000, 3000))
	r.Reset()
	num, _ := r.Phase()
	assert.Zero(t, num)

	assert.Equal(t, first, r.Process(input), "output after Reset must match a fresh converter")
}

func TestRateConverter_RatioAndLatency(t *testing.T) {
	r, err := NewRateConverter(8000, 48000, InterpolationCubic)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, r.Ratio(), 1e-15)
	assert.Equal(t, 12, r.Latency())

	r, err = NewRateConverter(48000, 8000, InterpolationHold)
	require.NoError(t, err)
	assert.Zero(t, r.Latency())
}

func TestRateConverter_NoNaN(t *testing.T) {
	input := testutil.MultiTone(4096, 48000, []float64{100, 7000, 23000})
	r, err := NewRateConverter(48000, 22050, InterpolationCubic)
	require.NoError(t, err)
	out := runAll(t, r, input, 4096)
	testutil.AssertNoNaNOrInf(t, out)
	for _, v := range out {
		assert.Less(t, math.Abs(v), 3.0)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkRateConverter_44100To48000(b *testing.B) {
	input := testutil.Sine(4096, 44100, 1000)
	r, err := NewRateConverter(44100, 48000, InterpolationCubic)
	require.NoError(b, err)

	b.SetBytes(int64(len(input) * 8))
	for b.Loop() {
		_ = r.Process(input)
	}
}
