package trace

import (
	"github.com/sirkon/streamtrace/internal/chain"
)

// Info is a trace of a single call.
type Info struct {
	Call   *chain.Call
	Before *Order
	After  *Order

	// Direct maps times of observations before the call to times of
	// observations after it when the instrumentation computed the
	// correspondence itself. Reverse is its mirror. Both are nil otherwise.
	Direct  map[int][]int
	Reverse map[int][]int
}

// Interpreter decodes a value recorded for the call.
type Interpreter func(call *chain.Call, v Value) (*Info, error)
