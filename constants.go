package resampler

// Quality preset parameters
const (
	// Quick: about 8-bit alias rejection
	quickAttenuation = 40.0
	quickBandwidth   = 0.80

	// Low: telephony
	lowAttenuation = 60.0
	lowBandwidth   = 0.85

	// Medium: about 13-bit alias rejection
	mediumAttenuation = 80.0
	mediumBandwidth   = 0.90

	// High: below 16-bit noise
	highAttenuation = 100.0
	highBandwidth   = 0.95
)

// Stream constants
const (
	// defaultChunkSize is the source read size of Reader, matching the
	// 4096-byte buffers capture pipelines typically deliver.
	defaultChunkSize = 4096
)
