package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayLine_StartsZeroed(t *testing.T) {
	d := NewDelayLine(4)
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []float64{0, 0, 0, 0}, d.Snapshot(nil))
}

func TestDelayLine_KeepsNewest(t *testing.T) {
	d := NewDelayLine(4)

	d.Push(1, 2)
	assert.Equal(t, []float64{0, 0, 1, 2}, d.Snapshot(nil))

	d.Push(3, 4, 5)
	assert.Equal(t, []float64{2, 3, 4, 5}, d.Snapshot(nil))
	assert.InDelta(t, 2.0, d.At(0), 0)
	assert.InDelta(t, 5.0, d.At(3), 0)

	d.Push(6, 7, 8, 9, 10, 11)
	assert.Equal(t, []float64{8, 9, 10, 11}, d.Snapshot(nil))
}

// TestDelayLine_ChunkingInvariant verifies the held samples do not depend on
// how the stream was split.
func TestDelayLine_ChunkingInvariant(t *testing.T) {
	stream := make([]float64, 37)
	for i := range stream {
		stream[i] = float64(i + 1)
	}

	whole := NewDelayLine(5)
	whole.Push(stream...)

	for _, chunk := range []int{1, 2, 3, 4, 5, 6, 11} {
		d := NewDelayLine(5)
		for i := 0; i < len(stream); i += chunk {
			d.Push(stream[i:min(i+chunk, len(stream))]...)
		}
		assert.Equal(t, whole.Snapshot(nil), d.Snapshot(nil), "chunk=%d", chunk)
	}
}

func TestDelayLine_ZeroLength(t *testing.T) {
	d := NewDelayLine(0)
	d.Push(1, 2, 3)
	assert.Empty(t, d.Snapshot(nil))
}

func TestDelayLine_Reset(t *testing.T) {
	d := NewDelayLine(3)
	d.Push(1, 2)
	d.Reset()
	assert.Equal(t, []float64{0, 0, 0}, d.Snapshot(nil))
}
