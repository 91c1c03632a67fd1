package trace

import "errors"

var (
	// ErrUnexpectedValue is returned when a recorded value has a shape
	// differing from the one produced by the instrumentation.
	ErrUnexpectedValue = errors.New("unexpected trace value")

	// ErrDuplicateTime is returned when two observations share the same time.
	ErrDuplicateTime = errors.New("duplicate observation time")

	// ErrUnorderedTrace is returned when observations are not ordered by time.
	ErrUnorderedTrace = errors.New("observations are not ordered by time")
)
