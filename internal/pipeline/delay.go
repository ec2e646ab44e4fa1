package pipeline

// DelayLine is a fixed-length ring holding the most recent samples of one
// channel. It starts filled with zeros; every push overwrites the oldest
// samples, so it always holds exactly the last Len() samples consumed.
type DelayLine struct {
	data []float64
	pos  int // index of the oldest sample
}

// NewDelayLine creates a zeroed delay line of n samples. n may be zero.
func NewDelayLine(n int) *DelayLine {
	return &DelayLine{data: make([]float64, max(n, 0))}
}

// Len returns the number of samples held.
func (d *DelayLine) Len() int {
	return len(d.data)
}

// Push appends samples, discarding the oldest ones to keep the length fixed.
func (d *DelayLine) Push(samples ...float64) {
	n := len(d.data)
	if n == 0 {
		return
	}

	// only the newest n samples can survive
	if len(samples) >= n {
		copy(d.data, samples[len(samples)-n:])
		d.pos = 0
		return
	}

	for len(samples) > 0 {
		c := copy(d.data[d.pos:], samples)
		samples = samples[c:]
		d.pos = (d.pos + c) % n
	}
}

// Snapshot appends the held samples, oldest first, to dst and returns it.
func (d *DelayLine) Snapshot(dst []float64) []float64 {
	dst = append(dst, d.data[d.pos:]...)
	return append(dst, d.data[:d.pos]...)
}

// At returns the i-th held sample, 0 being the oldest.
func (d *DelayLine) At(i int) float64 {
	return d.data[(d.pos+i)%len(d.data)]
}

// Reset zeroes the line.
func (d *DelayLine) Reset() {
	clear(d.data)
	d.pos = 0
}
