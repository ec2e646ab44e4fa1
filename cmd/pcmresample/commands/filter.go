package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	resampler "github.com/wind0ws/go-pcm-resampler"
	"github.com/wind0ws/go-pcm-resampler/internal/filter"
)

// responsePoints is the resolution of the printed frequency response.
const responsePoints = 8192

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Print the anti-alias filter of a conversion",
	Long: `Design the anti-alias filter used when converting --in-rate down to
--out-rate and print its length, delay and magnitude response.`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	f := filterCmd.Flags()
	f.Int("in-rate", defaultInRate, "input sample rate in Hz")
	f.Int("out-rate", defaultOutRate, "output sample rate in Hz")
	f.String("quality", "medium", "quality preset: quick, low, medium, high")
	f.Int("max-taps", 0, "filter length cap (default: preset)")
}

// filterReport describes a designed anti-alias filter.
type filterReport struct {
	Taps       int
	GroupDelay int

	// Gain in dB at the named frequencies in Hz
	Points []responsePoint

	// StopbandPeak is the highest gain in dB from the target Nyquist up.
	StopbandPeak float64
}

type responsePoint struct {
	Label string
	Hz    float64
	DB    float64
}

func runFilter(cmd *cobra.Command, _ []string) error {
	p := *globalProfile
	flags := cmd.Flags()
	overrideInt(flags, "in-rate", &p.In.Rate)
	overrideInt(flags, "out-rate", &p.Out.Rate)
	overrideString(flags, "quality", &p.Quality)
	overrideInt(flags, "max-taps", &p.MaxFilterTaps)

	cfg, err := p.config(logger)
	if err != nil {
		return err
	}

	rep, err := designReport(p.In.Rate, p.Out.Rate, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Anti-alias filter %d Hz -> %d Hz (%s)\n", p.In.Rate, p.Out.Rate, cfg.Quality)
	fmt.Fprintf(out, "  Taps: %d\n", rep.Taps)
	fmt.Fprintf(out, "  Group delay: %d samples\n", rep.GroupDelay)
	for _, pt := range rep.Points {
		fmt.Fprintf(out, "  %-16s %8.1f Hz  %8.2f dB\n", pt.Label+":", pt.Hz, pt.DB)
	}
	fmt.Fprintf(out, "  Stopband peak: %.2f dB\n", rep.StopbandPeak)
	return nil
}

// designReport designs the filter a session would use for rateIn -> rateOut.
func designReport(rateIn, rateOut int, cfg *resampler.Config) (*filterReport, error) {
	if rateOut >= rateIn {
		return nil, fmt.Errorf("no anti-alias filter: %d Hz -> %d Hz does not reduce the rate", rateIn, rateOut)
	}

	spec := resampler.GetPresetSpec(cfg.Quality)
	coeffs, err := filter.DesignAntiAlias(rateIn, rateOut, filter.Spec{
		Attenuation: spec.Attenuation,
		Bandwidth:   spec.Bandwidth,
		MaxTaps:     cfg.MaxFilterTaps,
	})
	if err != nil {
		return nil, err
	}

	resp := filter.ComputeResponse(coeffs, responsePoints)
	nyquist := float64(rateOut) / 2
	norm := func(hz float64) float64 { return hz / float64(rateIn) }
	point := func(label string, hz float64) responsePoint {
		return responsePoint{Label: label, Hz: hz, DB: filter.MagnitudeDB(resp.At(norm(hz)))}
	}

	return &filterReport{
		Taps:       len(coeffs),
		GroupDelay: (len(coeffs) - 1) / 2,
		Points: []responsePoint{
			point("DC", 0),
			point("Passband edge", nyquist*(2*spec.Bandwidth-1)),
			point("Cutoff", nyquist*spec.Bandwidth),
			point("Target Nyquist", nyquist),
		},
		StopbandPeak: resp.PeakDB(norm(nyquist), 0.5),
	}, nil
}
