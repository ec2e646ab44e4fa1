package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	resampler "github.com/wind0ws/go-pcm-resampler"
)

var rawCmd = &cobra.Command{
	Use:   "raw <input.pcm> <output.pcm>",
	Short: "Convert a headerless PCM file",
	Long: `Convert little-endian signed PCM without a header.

The input is read in fixed-size chunks (--chunk, 4096 bytes by default) and
each chunk is passed to the converter as it is read. Formats default to
16 kHz mono 16-bit in and 8 kHz mono 16-bit out.`,
	Args: cobra.ExactArgs(2),
	RunE: runRaw,
}

func init() {
	f := rawCmd.Flags()
	f.Int("in-rate", defaultInRate, "input sample rate in Hz")
	f.Int("in-channels", defaultChannels, "input channels (1 or 2)")
	f.Int("out-rate", defaultOutRate, "output sample rate in Hz")
	f.Int("out-channels", defaultChannels, "output channels (1 or 2)")
	f.Int("bits", defaultBits, "input bits per sample (8, 16, 24, 32)")
	f.Int("out-bits", 0, "output bits per sample (default: same as --bits)")
	f.Int("chunk", defaultChunk, "read size in bytes")
	f.String("quality", "medium", "quality preset: quick, low, medium, high")
	f.String("interp", "auto", "interpolation: auto, linear, cubic, hold")
}

func runRaw(cmd *cobra.Command, args []string) error {
	p := *globalProfile
	flags := cmd.Flags()
	overrideInt(flags, "in-rate", &p.In.Rate)
	overrideInt(flags, "in-channels", &p.In.Channels)
	overrideInt(flags, "out-rate", &p.Out.Rate)
	overrideInt(flags, "out-channels", &p.Out.Channels)
	overrideInt(flags, "bits", &p.In.Bits)
	overrideInt(flags, "chunk", &p.Chunk)
	overrideString(flags, "quality", &p.Quality)
	overrideString(flags, "interp", &p.Interpolation)

	// without --out-bits a changed input depth carries over to the output
	if flags.Changed("out-bits") {
		p.Out.Bits, _ = flags.GetInt("out-bits")
	} else if flags.Changed("bits") || p.Out.Bits == 0 {
		p.Out.Bits = p.In.Bits
	}
	if p.Chunk <= 0 {
		return fmt.Errorf("chunk must be positive, got %d", p.Chunk)
	}

	cfg, err := p.config(logger)
	if err != nil {
		return err
	}

	start := time.Now()
	st, err := convertRaw(args[0], args[1], p.In.format(), p.Out.format(), p.Chunk, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted %s -> %s\n", args[0], args[1])
	fmt.Fprintf(out, "  %s -> %s\n", p.In.format(), p.Out.format())
	fmt.Fprintf(out, "  %d frames -> %d frames in %d calls\n", st.FramesIn, st.FramesOut, st.Calls)
	fmt.Fprintf(out, "  Duration: %.3fs\n", elapsed.Seconds())
	return nil
}

// convertRaw streams inPath to outPath through one Registry, chunk bytes at a
// time, and flushes at the end of the input.
func convertRaw(inPath, outPath string, in, out resampler.Format, chunk int, cfg *resampler.Config) (st resampler.Stats, err error) {
	src, err := os.Open(inPath)
	if err != nil {
		return st, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(outPath)
	if err != nil {
		return st, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
	}()

	r, err := resampler.Open(cfg)
	if err != nil {
		return st, err
	}
	defer func() { _ = r.Close() }()

	buf := make([]byte, chunk)
	for {
		n, readErr := io.ReadFull(src, buf)
		if n > 0 {
			converted, err := r.Convert(buf[:n], in, out)
			if err != nil {
				return st, fmt.Errorf("convert: %w", err)
			}
			if _, err := dst.Write(converted); err != nil {
				return st, fmt.Errorf("failed to write output: %w", err)
			}
		}
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return st, fmt.Errorf("failed to read input: %w", readErr)
		}
	}

	tail, err := r.Flush()
	if err != nil {
		return st, err
	}
	if _, err := dst.Write(tail); err != nil {
		return st, fmt.Errorf("failed to write output: %w", err)
	}
	return r.Stats(), nil
}
