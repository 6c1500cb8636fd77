package sampleio

const (
	float32Bits = 32
	float64Bits = 64

	formatBufSize = 32
	pcmFormat     = 1

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	monoChannels = 1
)
