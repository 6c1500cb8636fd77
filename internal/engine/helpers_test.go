package engine

import (
	"math/rand/v2"
)

// noise returns n uniformly distributed samples in [-1, 1) from a fixed seed.
func noise(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*rng.Float64() - 1
	}
	return out
}

// chunkPatterns are the chunk-size cycles used by the equivalence tests.
var chunkPatterns = []struct {
	name  string
	sizes []int
}{
	{"single_samples", []int{1}},
	{"size_7", []int{7}},
	{"size_64", []int{64}},
	{"irregular", []int{3, 17, 1, 250, 2}},
}
