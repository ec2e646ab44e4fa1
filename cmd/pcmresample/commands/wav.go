package commands

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	resampler "github.com/wind0ws/go-pcm-resampler"
)

const (
	// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
	wavFormatPCM = 1

	// wavBufferSamples is the number of samples decoded per read.
	wavBufferSamples = 4096
)

var wavCmd = &cobra.Command{
	Use:   "wav <input.wav> <output.wav>",
	Short: "Convert a WAV file",
	Long: `Convert a 16, 24 or 32-bit PCM WAV file.

The input format is taken from the WAV header. --rate, --channels and --bits
select the output; each defaults to the input's value.`,
	Args: cobra.ExactArgs(2),
	RunE: runWAV,
}

func init() {
	f := wavCmd.Flags()
	f.Int("rate", 0, "output sample rate in Hz (default: input rate)")
	f.Int("channels", 0, "output channels, 1 or 2 (default: input channels)")
	f.Int("bits", 0, "output bits per sample, 16, 24 or 32 (default: input bits)")
	f.String("quality", "medium", "quality preset: quick, low, medium, high")
	f.String("interp", "auto", "interpolation: auto, linear, cubic, hold")
}

func runWAV(cmd *cobra.Command, args []string) error {
	p := *globalProfile
	flags := cmd.Flags()
	overrideString(flags, "quality", &p.Quality)
	overrideString(flags, "interp", &p.Interpolation)

	cfg, err := p.config(logger)
	if err != nil {
		return err
	}

	var target formatSpec
	target.Rate, _ = flags.GetInt("rate")
	target.Channels, _ = flags.GetInt("channels")
	target.Bits, _ = flags.GetInt("bits")

	in, out, err := convertWAV(args[0], args[1], target, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n  %s -> %s\n", args[0], args[1], in, out)
	return nil
}

// convertWAV converts inPath to outPath. Zero fields of target keep the
// input's value.
func convertWAV(inPath, outPath string, target formatSpec, cfg *resampler.Config) (in, out resampler.Format, err error) {
	src, err := os.Open(inPath)
	if err != nil {
		return in, out, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dec := wav.NewDecoder(src)
	if !dec.IsValidFile() {
		return in, out, fmt.Errorf("invalid WAV file: %s", inPath)
	}

	format := dec.Format()
	in = resampler.Format{
		SampleRate:    format.SampleRate,
		Channels:      format.NumChannels,
		BitsPerSample: int(dec.BitDepth),
	}
	out = in
	if target.Rate != 0 {
		out.SampleRate = target.Rate
	}
	if target.Channels != 0 {
		out.Channels = target.Channels
	}
	if target.Bits != 0 {
		out.BitsPerSample = target.Bits
	}
	// 8-bit WAV samples are unsigned
	if in.BitsPerSample == 8 || out.BitsPerSample == 8 {
		return in, out, fmt.Errorf("%w: 8-bit WAV is not supported", resampler.ErrFormat)
	}
	if err := in.Validate(); err != nil {
		return in, out, fmt.Errorf("input: %w", err)
	}
	if err := out.Validate(); err != nil {
		return in, out, fmt.Errorf("output: %w", err)
	}

	r, err := resampler.Open(cfg)
	if err != nil {
		return in, out, err
	}
	defer func() { _ = r.Close() }()

	dst, err := os.Create(outPath)
	if err != nil {
		return in, out, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(dst, out.SampleRate, out.BitsPerSample, out.Channels, wavFormatPCM)
	outBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: out.Channels, SampleRate: out.SampleRate},
		SourceBitDepth: out.BitsPerSample,
	}
	write := func(b []byte) error {
		if len(b) == 0 {
			return nil
		}
		outBuf.Data = unpackInts(outBuf.Data[:0], b, out.BitsPerSample)
		return enc.Write(outBuf)
	}

	inBuf := &audio.IntBuffer{Format: format, Data: make([]int, wavBufferSamples*in.Channels)}
	var raw []byte
	for {
		n, err := dec.PCMBuffer(inBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return in, out, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		raw = packInts(raw[:0], inBuf.Data[:n], in.BitsPerSample)
		converted, err := r.Convert(raw, in, out)
		if err != nil {
			return in, out, fmt.Errorf("convert: %w", err)
		}
		if err := write(converted); err != nil {
			return in, out, fmt.Errorf("failed to write audio data: %w", err)
		}
	}

	tail, err := r.Flush()
	if err != nil {
		return in, out, err
	}
	if err := write(tail); err != nil {
		return in, out, fmt.Errorf("failed to write flushed data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return in, out, fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return in, out, nil
}

// packInts appends samples as little-endian signed integers of the given
// width.
func packInts(dst []byte, samples []int, bits int) []byte {
	for _, s := range samples {
		switch bits {
		case 16:
			dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(s)))
		case 24:
			u := uint32(int32(s))
			dst = append(dst, byte(u), byte(u>>8), byte(u>>16))
		case 32:
			dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(s)))
		}
	}
	return dst
}

// unpackInts appends the little-endian signed integers held in b.
func unpackInts(dst []int, b []byte, bits int) []int {
	switch bits {
	case 16:
		for i := 0; i+2 <= len(b); i += 2 {
			dst = append(dst, int(int16(binary.LittleEndian.Uint16(b[i:]))))
		}
	case 24:
		for i := 0; i+3 <= len(b); i += 3 {
			v := int32(uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16)
			dst = append(dst, int(v<<8>>8))
		}
	case 32:
		for i := 0; i+4 <= len(b); i += 4 {
			dst = append(dst, int(int32(binary.LittleEndian.Uint32(b[i:]))))
		}
	}
	return dst
}
