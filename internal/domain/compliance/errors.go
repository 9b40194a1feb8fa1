package compliance

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidWeights = errors.New("invalid dimension weights")
	ErrInvalidInput   = errors.New("invalid scoring input")
)
