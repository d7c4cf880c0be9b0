package analyzer

import "errors"

// Configuration errors, rejected at construction before any analysis runs.
var (
	ErrMinRepetitionsTooSmall = errors.New("min_repetitions must be at least 2")
	ErrMaxWindowSizeTooSmall  = errors.New("max_window_size must be at least 1")
	ErrWorkersTooSmall        = errors.New("workers must be at least 1")
)

// Input validation errors.
var (
	ErrInvalidSequence = errors.New("invalid operation sequence")
)
