package coeffs

const (
	sosFields     = 7
	formatBufSize = 32
)
