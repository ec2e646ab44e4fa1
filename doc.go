// Package resampler converts streams of raw PCM audio between sample rates,
// channel layouts and bit depths in pure Go.
//
// Audio arrives as little-endian signed integer PCM in arbitrarily sized
// chunks, typically the 4096-byte buffers a capture device or file reader
// delivers. Each chunk is converted as soon as it arrives, and the state
// carried between chunks makes the concatenated output identical to
// converting the whole stream at once.
//
// # Features
//
//   - 8, 16, 24 and 32-bit samples, mono and stereo, any positive sample rate
//   - Exact rational phase tracking, so chunk boundaries never drift or click
//   - Kaiser-windowed FIR anti-alias filter ahead of every rate reduction
//   - Linear, cubic Hermite or sample-and-hold interpolation
//   - Saturating sample encoding: out of range values clamp, never wrap
//   - SIMD dot products via github.com/tphakala/simd
//
// # Quick Start
//
// A [Registry] owns one conversion session at a time:
//
//	r, err := resampler.Open(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	buf := make([]byte, 4096)
//	for {
//	    n, err := src.Read(buf)
//	    if n > 0 {
//	        out, err := r.Resample(buf, n, 1, 16000, 8000, 1, 16)
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        dst.Write(out)
//	    }
//	    if err != nil {
//	        break
//	    }
//	}
//
//	// release the samples still held back by the filters
//	tail, _ := r.Flush()
//	dst.Write(tail)
//
// [Registry.Convert] takes [Format] values instead and may change the bit
// depth. [NewReader] wraps the same loop in an io.Reader, and
// [ResampleBytes] converts a complete buffer in one call.
//
// # Sessions
//
// The first conversion after [Registry.Init] creates a session for its
// format pair. Later conversions with the same pair continue that stream.
// A conversion with a different pair discards the session and starts over,
// exactly as if [Registry.Deinit] and [Registry.Init] had been called in
// between. Input bytes that do not complete a frame are kept for the next
// call. A failed call leaves the session as it was.
//
// # Quality Presets
//
//   - [QualityQuick]: 40 dB anti-alias filter, linear interpolation.
//   - [QualityLow]: 60 dB, good enough for telephony.
//   - [QualityMedium]: 80 dB, the default.
//   - [QualityHigh]: 100 dB with a narrower transition band.
//
// # Architecture
//
// Each output channel runs its own stage chain:
//
//	decode -> mix -> [anti-alias FIR] -> rate converter -> encode
//	                  (downsampling)
//
// The anti-alias filter has its stopband edge at the target Nyquist
// frequency and compensates its own group delay. The rate converter walks
// the input with a phase accumulator held as an exact fraction of the two
// rates. Equal rates skip both stages.
//
// # Thread Safety
//
// All [Registry] methods are safe for concurrent use; they are serialised by
// a single mutex. Interleaving two streams on one Registry restarts the
// session at every switch, so give each stream its own Registry.
package resampler
