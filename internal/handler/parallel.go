package handler

import (
	"github.com/sirkon/streamtrace/internal/chain"
)

// Parallel instruments a call switching a pipeline into parallel mode. The
// pipeline is switched back right after it, before values are recorded.
type Parallel struct {
	*Peek
	call *chain.Call
}

// NewParallel creates a handler for a parallel call.
func NewParallel(num int, call *chain.Call) *Parallel {
	return &Parallel{
		Peek: NewCallPeek(num, call),
		call: call,
	}
}

func (h *Parallel) CallsAfter() []*chain.Call {
	return append(
		[]*chain.Call{sequentialCall(h.call.TypeBefore, h.call.Package)},
		h.Peek.CallsAfter()...,
	)
}

// Sequential forces sequential evaluation before a call which may be evaluated
// in parallel. Handlers of other calls are returned as is.
func Sequential(h Intermediate, call *chain.Call) Intermediate {
	if !call.Parallel {
		return h
	}

	return &sequentialGuard{
		Intermediate: h,
		call:         call,
	}
}

// SequentialTerminal is [Sequential] for terminal calls.
func SequentialTerminal(h Terminal, call *chain.Call) Terminal {
	if !call.Parallel {
		return h
	}

	return &sequentialTerminalGuard{
		Terminal: h,
		call:     call,
	}
}

type sequentialGuard struct {
	Intermediate
	call *chain.Call
}

func (g *sequentialGuard) CallsBefore() []*chain.Call {
	return withSequential(g.Intermediate.CallsBefore(), g.call)
}

type sequentialTerminalGuard struct {
	Terminal
	call *chain.Call
}

func (g *sequentialTerminalGuard) CallsBefore() []*chain.Call {
	return withSequential(g.Terminal.CallsBefore(), g.call)
}

// withSequential puts exactly one sequential call at the head of calls.
func withSequential(calls []*chain.Call, call *chain.Call) []*chain.Call {
	res := []*chain.Call{sequentialCall(call.TypeBefore, call.Package)}
	for _, c := range calls {
		if c.Kind == chain.KindSequential {
			continue
		}
		res = append(res, c)
	}

	return res
}
