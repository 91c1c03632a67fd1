package tracing

import "errors"

// ErrChainMismatch means an evaluation result does not match the pipeline it
// was supposedly built for.
var ErrChainMismatch = errors.New("evaluation result does not match the pipeline")
