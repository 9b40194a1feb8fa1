package staterules

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotFound     = errors.New("state rules not found")
	ErrInvalidState = errors.New("invalid state code")
)
