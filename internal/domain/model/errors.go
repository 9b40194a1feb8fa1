package model

import "errors"

// Sentinel error kinds for input-invariant violations. These allow
// errors.Is/As from callers; they are never silently coerced.
var (
	ErrNegativeCompensation = errors.New("compensation must be non-negative")
	ErrMissingAthleteID     = errors.New("athlete id must not be empty")
)
