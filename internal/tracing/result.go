package tracing

import (
	"fmt"
	"time"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/ops"
	"github.com/sirkon/streamtrace/internal/trace"
)

// TracingResult is a decoded evaluation of a trace expression.
type TracingResult struct {
	Chain *chain.Chain

	// Infos holds a trace of each call in the pipeline order.
	Infos []*trace.Info

	// Result is a value produced by the terminal call. It is a default
	// value of the result type when an exception was thrown.
	Result trace.Value

	// Exception is an exception thrown by the pipeline, it is trace.Null
	// when there was none.
	Exception trace.Value
	Elapsed   time.Duration
}

// ExceptionThrown checks if the pipeline evaluation ended with an exception.
func (r *TracingResult) ExceptionThrown() bool {
	_, ok := r.Exception.(trace.Null)
	return !ok
}

// Interpret decodes an evaluation result of a trace expression built for the chain.
func Interpret(c *chain.Chain, v trace.Value) (*TracingResult, error) {
	parts, err := itemsOf(v, 4, "evaluation result")
	if err != nil {
		return nil, err
	}

	infos, ok := parts[0].(*trace.Array)
	if !ok {
		return nil, fmt.Errorf("%w: calls trace must be an array, got %s", trace.ErrUnexpectedValue, parts[0])
	}
	if infos.Len() != c.Length() {
		return nil, fmt.Errorf("%w: got traces of %d calls for %d calls", ErrChainMismatch, infos.Len(), c.Length())
	}

	res := &TracingResult{Chain: c}
	for i, item := range infos.Items {
		var interpret trace.Interpreter
		if i < len(c.Intermediate) {
			interpret = ops.IntermediateInterpreter(c.Intermediate[i])
		} else {
			interpret = ops.TerminalInterpreter(c.Terminal)
		}

		info, err := interpret(c.Call(i), item)
		if err != nil {
			return nil, fmt.Errorf("interpret trace of call %d %s: %w", i, c.Call(i).Name, err)
		}
		res.Infos = append(res.Infos, info)
	}

	result, err := itemsOf(parts[1], 1, "pipeline result")
	if err != nil {
		return nil, err
	}
	res.Result = result[0]

	exception, err := itemsOf(parts[2], 1, "pipeline exception")
	if err != nil {
		return nil, err
	}
	res.Exception = exception[0]

	elapsed, err := itemsOf(parts[3], 1, "elapsed time")
	if err != nil {
		return nil, err
	}
	switch x := elapsed[0].(type) {
	case trace.Long:
		res.Elapsed = time.Duration(x)
	case trace.Int:
		res.Elapsed = time.Duration(x)
	default:
		return nil, fmt.Errorf("%w: elapsed time must be an integer, got %s", trace.ErrUnexpectedValue, elapsed[0])
	}

	return res, nil
}

func itemsOf(v trace.Value, n int, what string) ([]trace.Value, error) {
	arr, ok := v.(*trace.Array)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array, got %s", trace.ErrUnexpectedValue, what, v)
	}
	if arr.Len() != n {
		return nil, fmt.Errorf("%w: %s must have %d items, got %d", trace.ErrUnexpectedValue, what, n, arr.Len())
	}

	return arr.Items, nil
}
