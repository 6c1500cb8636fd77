package engine

import "errors"

// ErrInvalidParameter is returned when an engine is constructed with
// parameters it cannot operate on.
var ErrInvalidParameter = errors.New("invalid engine parameter")
