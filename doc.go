// Package streamdsp provides chunked streaming DSP filters in pure Go.
//
// Every filter consumes a stream in caller-sized chunks and keeps its state
// between calls, so splitting a signal into chunks of any size produces the
// same output as processing it in one piece. The filters are:
//
//   - [FIR]: direct-form FIR convolution over a circular history.
//   - [BiquadCascade]: a chain of direct form I second-order sections.
//   - [Downmixer]: mix with a local oscillator, low-pass, decimate by M.
//   - [LMSCanceller]: adaptive cancellation of a sinusoidal interferer.
//   - [InstFreqEstimator]: instantaneous frequency of a complex signal.
//
// Filters are generic over float32 and float64. Dot products go through
// SIMD kernels from github.com/tphakala/simd when the CPU supports them.
//
// # Quick Start
//
//	fir, err := streamdsp.NewFIR[float64](streamdsp.FIRConfig{
//	    Taps:      taps,
//	    ChunkSize: 1024,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out := make([]float64, fir.MaxOutputLen(1024))
//	for chunk := range chunks {
//	    n := fir.Process(out, chunk)
//	    write(out[:n])
//	}
//
// # Output Lengths
//
// [FIR], [BiquadCascade] and [LMSCanceller] emit one sample per input
// sample. [Downmixer] emits at most ⌈n/M⌉ samples per n-sample chunk, keeping
// every M-th sample of the whole stream. [InstFreqEstimator] drops the very
// first sample of a stream, so its first chunk is one sample short.
//
// # Thread Safety
//
// Filters are not safe for concurrent use. Chunks of one stream must be
// processed in order by a single goroutine; independent streams need
// independent filters.
package streamdsp
