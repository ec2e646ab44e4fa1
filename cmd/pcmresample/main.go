// Command pcmresample converts raw PCM and WAV files between sample rates,
// channel layouts and bit depths.
//
// Usage:
//
//	pcmresample [flags] <command> [args]
//
// Commands:
//
//	raw     - convert a headerless PCM file chunk by chunk
//	wav     - convert a WAV file
//	filter  - print the anti-alias filter of a conversion
//
// Settings may be collected in a YAML profile passed with --config; flags
// given on the command line take precedence.
package main

import (
	"fmt"
	"os"

	"github.com/wind0ws/go-pcm-resampler/cmd/pcmresample/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
