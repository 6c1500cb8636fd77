package engine

// Export internal state for testing.
// This file uses the _test.go suffix so it's only included in test builds.

// DecimationIndex returns the running sample index modulo the factor.
func (d *Downmixer[F]) DecimationIndex() int {
	return d.index
}

// HistoryCursor returns the FIR ring cursor.
func (f *FIR[F]) HistoryCursor() int {
	return f.ring.Cursor()
}
