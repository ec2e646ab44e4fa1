// Package pcm converts little-endian signed integer PCM bytes to and from
// normalized float64 samples in [-1.0, 1.0).
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrFormat indicates an unsupported bit depth or a byte length that does not
// hold a whole number of samples.
var ErrFormat = errors.New("invalid PCM format")

// Supported bit depths.
const (
	Bits8  = 8
	Bits16 = 16
	Bits24 = 24
	Bits32 = 32
)

const bitsPerByte = 8

// Supported reports whether bits is a bit depth the codec handles.
func Supported(bits int) bool {
	switch bits {
	case Bits8, Bits16, Bits24, Bits32:
		return true
	default:
		return false
	}
}

// BytesPerSample returns the width of one sample, or 0 for unsupported depths.
func BytesPerSample(bits int) int {
	if !Supported(bits) {
		return 0
	}
	return bits / bitsPerByte
}

// fullScale is 2^(bits-1), the magnitude that maps to 1.0.
func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

// Decode appends the samples held in raw to dst and returns the extended
// slice. raw must contain a whole number of bits-wide samples.
func Decode(dst []float64, raw []byte, bits int) ([]float64, error) {
	width := BytesPerSample(bits)
	if width == 0 {
		return dst, fmt.Errorf("%w: unsupported bit depth %d", ErrFormat, bits)
	}
	if len(raw)%width != 0 {
		return dst, fmt.Errorf("%w: %d bytes is not a multiple of %d-byte samples", ErrFormat, len(raw), width)
	}

	n := len(raw) / width
	dst = slices.Grow(dst, n)[:len(dst)+n]
	out := dst[len(dst)-n:]
	inv := 1.0 / fullScale(bits)

	switch bits {
	case Bits8:
		for i := range out {
			out[i] = float64(int8(raw[i])) * inv
		}
	case Bits16:
		for i := range out {
			out[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) * inv
		}
	case Bits24:
		for i := range out {
			b := raw[3*i:]
			// sign-extend through the top byte of an int32
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			out[i] = float64(v) * inv
		}
	case Bits32:
		for i := range out {
			out[i] = float64(int32(binary.LittleEndian.Uint32(raw[4*i:]))) * inv
		}
	}
	return dst, nil
}

// Encode appends samples to dst as bits-wide little-endian integers and
// returns the extended slice. Values outside the representable range saturate
// at the extremes instead of wrapping; NaN encodes as zero.
func Encode(dst []byte, samples []float64, bits int) ([]byte, error) {
	width := BytesPerSample(bits)
	if width == 0 {
		return dst, fmt.Errorf("%w: unsupported bit depth %d", ErrFormat, bits)
	}

	start := len(dst)
	dst = slices.Grow(dst, len(samples)*width)[:start+len(samples)*width]
	out := dst[start:]
	scale := fullScale(bits)
	lo, hi := -scale, scale-1

	for i, s := range samples {
		v := quantize(s, scale, lo, hi)
		switch bits {
		case Bits8:
			out[i] = byte(int8(v))
		case Bits16:
			binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
		case Bits24:
			u := uint32(int32(v))
			out[3*i] = byte(u)
			out[3*i+1] = byte(u >> 8)
			out[3*i+2] = byte(u >> 16)
		case Bits32:
			binary.LittleEndian.PutUint32(out[4*i:], uint32(int32(v)))
		}
	}
	return dst, nil
}

// quantize scales s to the integer grid and clamps it to [lo, hi].
func quantize(s, scale, lo, hi float64) int64 {
	if math.IsNaN(s) {
		return 0
	}
	v := math.Round(s * scale)
	if v > hi {
		v = hi
	} else if v < lo {
		v = lo
	}
	return int64(v)
}
