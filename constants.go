package streamdsp

// DefaultChunkSize is used when a config leaves ChunkSize at zero.
const DefaultChunkSize = 1024

const (
	minTaps        = 1
	minDecimation  = 1
	maxChunkSize   = 1 << 24
	nyquistDivisor = 2
)
