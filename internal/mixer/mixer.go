// Package mixer remixes interleaved normalized frames between mono and stereo
// and converts between interleaved and planar layouts.
package mixer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tphakala/simd/f64"
)

// ErrUnsupportedLayout indicates a channel count or channel pair the mixer
// does not handle.
var ErrUnsupportedLayout = errors.New("unsupported channel layout")

const (
	// Mono is a single channel layout.
	Mono = 1
	// Stereo is an interleaved left/right layout.
	Stereo = 2
)

// Supported reports whether channels is a layout the mixer handles.
func Supported(channels int) bool {
	return channels == Mono || channels == Stereo
}

// Mix converts interleaved frames in src from channelsIn to channelsOut,
// appending the result to dst.
//
// Mono to stereo duplicates the sample into both channels. Stereo to mono
// takes the arithmetic mean of left and right.
func Mix(dst, src []float64, channelsIn, channelsOut int) ([]float64, error) {
	if !Supported(channelsIn) || !Supported(channelsOut) {
		return dst, fmt.Errorf("%w: %d to %d channels", ErrUnsupportedLayout, channelsIn, channelsOut)
	}
	if len(src)%channelsIn != 0 {
		return dst, fmt.Errorf("%w: %d samples do not form whole %d-channel frames",
			ErrUnsupportedLayout, len(src), channelsIn)
	}

	frames := len(src) / channelsIn
	start := len(dst)
	dst = slices.Grow(dst, frames*channelsOut)[:start+frames*channelsOut]
	out := dst[start:]

	switch {
	case channelsIn == channelsOut:
		copy(out, src)
	case channelsIn == Mono:
		f64.Interleave2(out, src, src)
	default:
		for i := range frames {
			out[i] = (src[2*i] + src[2*i+1]) / 2
		}
	}
	return dst, nil
}

// Deinterleave splits interleaved frames into one plane per channel, reusing
// the capacity of dst. It returns the planes.
func Deinterleave(dst [][]float64, src []float64, channels int) [][]float64 {
	frames := len(src) / channels
	dst = slices.Grow(dst[:0], channels)[:channels]
	for ch := range channels {
		dst[ch] = slices.Grow(dst[ch][:0], frames)[:frames]
	}

	if channels == Mono {
		copy(dst[0], src)
		return dst
	}
	for i := range frames {
		for ch := range channels {
			dst[ch][i] = src[i*channels+ch]
		}
	}
	return dst
}

// Interleave merges equally long planes into interleaved frames appended to
// dst. Planes longer than the first are truncated to its length.
func Interleave(dst []float64, planes [][]float64) []float64 {
	if len(planes) == 0 {
		return dst
	}
	frames := len(planes[0])
	channels := len(planes)
	start := len(dst)
	dst = slices.Grow(dst, frames*channels)[:start+frames*channels]
	out := dst[start:]

	switch channels {
	case Mono:
		copy(out, planes[0])
	case Stereo:
		f64.Interleave2(out, planes[0], planes[1][:frames])
	default:
		for i := range frames {
			for ch := range channels {
				out[i*channels+ch] = planes[ch][i]
			}
		}
	}
	return dst
}
