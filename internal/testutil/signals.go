package testutil

import (
	"encoding/binary"
	"math"
)

// Sine returns n samples of a unit-amplitude sine at freq Hz.
func Sine(n int, rate, freq float64) []float64 {
	return MultiTone(n, rate, []float64{freq})
}

// MultiTone returns n samples of equal-amplitude sines whose sum peaks
// below 1.0.
func MultiTone(n int, rate float64, freqs []float64) []float64 {
	out := make([]float64, n)
	if len(freqs) == 0 {
		return out
	}
	amp := 1.0 / float64(len(freqs))
	if len(freqs) == 1 {
		amp = 1
	}
	for i := range out {
		for _, f := range freqs {
			out[i] += amp * math.Sin(2*math.Pi*f*float64(i)/rate)
		}
	}
	return out
}

// RMS returns the root mean square of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

// SinePCM16 returns frames of interleaved 16-bit little-endian PCM carrying
// a sine at freq Hz scaled by amp, duplicated across channels.
func SinePCM16(frames, channels int, rate, freq, amp float64) []byte {
	out := make([]byte, frames*channels*2)
	for i := range frames {
		v := int16(math.Round(amp * 32767 * math.Sin(2*math.Pi*freq*float64(i)/rate)))
		for ch := range channels {
			binary.LittleEndian.PutUint16(out[(i*channels+ch)*2:], uint16(v))
		}
	}
	return out
}

// PCM16 decodes 16-bit little-endian PCM into int16 samples.
func PCM16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}
