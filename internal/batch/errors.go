package batch

import "errors"

var (
	// ErrBatchTooLarge is returned when a batch exceeds the configured
	// maximum number of items.
	ErrBatchTooLarge = errors.New("batch exceeds maximum item count")

	// ErrEmptyBatch is returned when a batch contains no items.
	ErrEmptyBatch = errors.New("batch contains no items")

	// ErrNilProcessor is returned when a runner is constructed without
	// a process function.
	ErrNilProcessor = errors.New("process function is required")
)
