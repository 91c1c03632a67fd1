package handler

import (
	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Terminator records values consumed by a terminal call. There is nothing
// to record after the terminal call, so the after part stays empty.
type Terminator struct {
	peek *Peek
}

// NewTerminator creates a handler for a terminal call producing no value.
func NewTerminator(num int, call *chain.TerminalCall) *Terminator {
	return &Terminator{
		peek: NewPeek(num, "terminator", call.TypeBefore, gentype.Any, call.Package),
	}
}

func (h *Terminator) Variables() []*dsl.Declaration { return h.peek.Variables() }
func (h *Terminator) CallsBefore() []*chain.Call    { return h.peek.CallsBefore() }

func (h *Terminator) TransformCall(call *chain.TerminalCall) *chain.TerminalCall { return call }

func (h *Terminator) PrepareResult() *dsl.Block       { return h.peek.PrepareResult() }
func (h *Terminator) ResultExpression() dsl.Expression { return h.peek.ResultExpression() }

// ResultTerminator records values consumed by a terminal call and the value
// it produced.
//
//	[peekResult, [result]]
type ResultTerminator struct {
	peek   *Peek
	call   *chain.TerminalCall
	result dsl.Expression
}

// NewResultTerminator creates a handler for a terminal call whose value is stored into result.
func NewResultTerminator(num int, call *chain.TerminalCall, result dsl.Expression) *ResultTerminator {
	return &ResultTerminator{
		peek:   NewPeek(num, "terminator", call.TypeBefore, gentype.Any, call.Package),
		call:   call,
		result: result,
	}
}

func (h *ResultTerminator) Variables() []*dsl.Declaration { return h.peek.Variables() }
func (h *ResultTerminator) CallsBefore() []*chain.Call    { return h.peek.CallsBefore() }

func (h *ResultTerminator) TransformCall(call *chain.TerminalCall) *chain.TerminalCall { return call }

func (h *ResultTerminator) PrepareResult() *dsl.Block {
	return dsl.NewBlock(h.peek.storeResult)
}

func (h *ResultTerminator) ResultExpression() dsl.Expression {
	return dsl.NewArray(gentype.Any, h.peek.result, dsl.NewArray(h.call.ResultType, h.result))
}

// Optional records values consumed by a terminal call producing an optional
// value. The optional is stored as a presence flag and a value, the value
// is the default of its type when the optional is empty.
//
//	[peekResult, [[isPresent], [value]]]
type Optional struct {
	peek   *Peek
	elem   *gentype.Type
	result dsl.Expression
}

// NewOptional creates a handler for a terminal call with an optional result.
// It panics if the call result is not an optional.
func NewOptional(num int, call *chain.TerminalCall, result dsl.Expression) *Optional {
	return &Optional{
		peek:   NewPeek(num, "terminator", call.TypeBefore, gentype.Any, call.Package),
		elem:   gentype.UnwrapOptional(call.ResultType),
		result: result,
	}
}

func (h *Optional) Variables() []*dsl.Declaration { return h.peek.Variables() }
func (h *Optional) CallsBefore() []*chain.Call    { return h.peek.CallsBefore() }

func (h *Optional) TransformCall(call *chain.TerminalCall) *chain.TerminalCall { return call }

func (h *Optional) PrepareResult() *dsl.Block {
	return dsl.NewBlock(h.peek.storeResult)
}

func (h *Optional) ResultExpression() dsl.Expression {
	present := dsl.Call(h.result, "isPresent")
	value := dsl.Cond(present, dsl.Call(h.result, optionalGetter(h.elem)), dsl.Default(h.elem))

	return dsl.NewArray(
		gentype.Any,
		h.peek.result,
		dsl.NewArray(
			gentype.Any,
			dsl.NewArray(gentype.Boolean, present),
			dsl.NewArray(h.elem, value),
		),
	)
}

func optionalGetter(t *gentype.Type) string {
	switch t.Kind() {
	case gentype.KindInt:
		return "getAsInt"
	case gentype.KindLong:
		return "getAsLong"
	case gentype.KindDouble:
		return "getAsDouble"
	default:
		return "get"
	}
}
