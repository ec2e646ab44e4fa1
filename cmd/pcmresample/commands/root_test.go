package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Filter(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--verbose", "filter", "--in-rate", "16000", "--out-rate", "8000", "--quality", "low"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())
	assert.Contains(t, out.String(), "Anti-alias filter 16000 Hz -> 8000 Hz (low)")
	assert.Contains(t, out.String(), "Taps:")
	assert.NotNil(t, globalProfile)
}
