// Package commands implements the pcmresample command tree.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Loaded by the root PersistentPreRunE
	globalProfile *profile
	logger        *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pcmresample",
	Short: "Streaming PCM sample rate converter",
	Long: `pcmresample converts PCM audio between sample rates, mono and stereo,
and 8/16/24/32-bit samples. Input is processed in fixed-size chunks exactly as
a capture loop would feed it, so the output of a file matches what a live
stream produces.

Examples:
  # 16 kHz mono speech to 8 kHz telephony, 4096-byte chunks
  pcmresample raw --in-rate 16000 --out-rate 8000 speech.pcm speech_8k.pcm

  # Resample a WAV file to 48 kHz stereo
  pcmresample wav --rate 48000 --channels 2 input.wav output.wav

  # Inspect the anti-alias filter of a 48 kHz to 16 kHz conversion
  pcmresample filter --in-rate 48000 --out-rate 16000 --quality high

  # Use the settings of a profile
  pcmresample --config telephony.yaml raw in.pcm out.pcm
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		p, err := loadProfile(cfgFile)
		if err != nil {
			return err
		}
		globalProfile = p
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetErr(os.Stderr)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "profile file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(wavCmd)
	rootCmd.AddCommand(filterCmd)
}
