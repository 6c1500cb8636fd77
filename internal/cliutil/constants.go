package cliutil

const (
	defaultLogLevel = "info"
	defaultBitDepth = 16

	wavExtension = ".wav"
)
