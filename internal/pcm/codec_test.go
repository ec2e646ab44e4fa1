package pcm

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		bits int
		raw  []byte
		want []float64
	}{
		{"8-bit", Bits8, []byte{0x00, 0x40, 0x80, 0x7f}, []float64{0, 0.5, -1, 127.0 / 128}},
		{"16-bit", Bits16, []byte{0x00, 0x40, 0x00, 0x80, 0xff, 0xff}, []float64{0.5, -1, -1.0 / 32768}},
		{"24-bit", Bits24, []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0x80, 0x01, 0x00, 0x00}, []float64{0.5, -1, 1.0 / 8388608}},
		{"32-bit", Bits32, []byte{0x00, 0x00, 0x00, 0xc0, 0xff, 0xff, 0xff, 0x7f}, []float64{-0.5, 2147483647.0 / 2147483648}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(nil, tt.raw, tt.bits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_AppendsToDst(t *testing.T) {
	dst := []float64{0.25}
	got, err := Decode(dst, []byte{0x00, 0x40}, Bits16)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5}, got)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil, []byte{1, 2, 3}, Bits16)
	require.ErrorIs(t, err, ErrFormat)

	_, err = Decode(nil, []byte{1, 2, 3, 4}, Bits24)
	require.ErrorIs(t, err, ErrFormat)

	_, err = Decode(nil, []byte{1, 2}, 12)
	require.ErrorIs(t, err, ErrFormat)

	_, err = Encode(nil, []float64{0}, 20)
	require.ErrorIs(t, err, ErrFormat)
}

// TestRoundTrip verifies decode followed by encode reproduces every byte.
func TestRoundTrip(t *testing.T) {
	for _, bits := range []int{Bits8, Bits16, Bits24, Bits32} {
		t.Run(fmt.Sprintf("%dbit", bits), func(t *testing.T) {
			width := BytesPerSample(bits)
			raw := make([]byte, 256*width)
			for i := range raw {
				raw[i] = byte(i*37 + 11)
			}

			samples, err := Decode(nil, raw, bits)
			require.NoError(t, err)
			require.Len(t, samples, 256)

			back, err := Encode(nil, samples, bits)
			require.NoError(t, err)
			assert.Equal(t, raw, back)
		})
	}
}

func TestEncode_Saturates(t *testing.T) {
	tests := []struct {
		bits int
		want []byte
	}{
		{Bits8, []byte{0x7f, 0x80, 0x7f, 0x80, 0x00}},
		{Bits16, []byte{0xff, 0x7f, 0x00, 0x80, 0xff, 0x7f, 0x00, 0x80, 0x00, 0x00}},
		{Bits24, []byte{
			0xff, 0xff, 0x7f, 0x00, 0x00, 0x80,
			0xff, 0xff, 0x7f, 0x00, 0x00, 0x80,
			0x00, 0x00, 0x00,
		}},
		{Bits32, []byte{
			0xff, 0xff, 0xff, 0x7f, 0x00, 0x00, 0x00, 0x80,
			0xff, 0xff, 0xff, 0x7f, 0x00, 0x00, 0x00, 0x80,
			0x00, 0x00, 0x00, 0x00,
		}},
	}

	in := []float64{1.0, -1.5, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, tt := range tests {
		got, err := Encode(nil, in, tt.bits)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "bits=%d", tt.bits)
	}
}

func TestEncode_Rounds(t *testing.T) {
	got, err := Encode(nil, []float64{0.4 / 32768, 0.6 / 32768, -0.6 / 32768}, Bits16)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0xff, 0xff}, got)
}

func TestBytesPerSample(t *testing.T) {
	assert.Equal(t, 1, BytesPerSample(8))
	assert.Equal(t, 3, BytesPerSample(24))
	assert.Zero(t, BytesPerSample(0))
	assert.False(t, Supported(64))
}

func BenchmarkDecode16(b *testing.B) {
	raw := make([]byte, 4096)
	dst := make([]float64, 0, 2048)
	for b.Loop() {
		dst, _ = Decode(dst[:0], raw, Bits16)
	}
}

func BenchmarkEncode16(b *testing.B) {
	samples := make([]float64, 2048)
	dst := make([]byte, 0, 4096)
	for b.Loop() {
		dst, _ = Encode(dst[:0], samples, Bits16)
	}
}
