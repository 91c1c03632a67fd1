package handler

import (
	"strconv"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Peek records values passing a call into two insertion ordered maps keyed by
// observation time: values entering the call and values leaving it.
//
// Its result is an array of two items, each of them is an array of keys
// and an array of values:
//
//	[[beforeTimes, beforeValues], [afterTimes, afterValues]]
type Peek struct {
	before     *dsl.MapVariable
	after      *dsl.MapVariable
	typeBefore *gentype.Type
	typeAfter  *gentype.Type
	pkg        string

	beforeArray *dsl.ArrayVariable
	afterArray  *dsl.ArrayVariable
	result      *dsl.Variable
}

// NewPeek creates a peek handler. Names of recording variables are made of the name and the number.
func NewPeek(num int, name string, typeBefore, typeAfter *gentype.Type, pkg string) *Peek {
	prefix := name + strconv.Itoa(num)
	return &Peek{
		before:      dsl.NewMapVariable(gentype.Int, typeBefore, prefix+"Before", true),
		after:       dsl.NewMapVariable(gentype.Int, typeAfter, prefix+"After", true),
		typeBefore:  typeBefore,
		typeAfter:   typeAfter,
		pkg:         pkg,
		beforeArray: dsl.NewArrayVariable(gentype.Any, "beforeArray"),
		afterArray:  dsl.NewArrayVariable(gentype.Any, "afterArray"),
		result:      dsl.NewVariable(gentype.Any, "peekResult"),
	}
}

// NewCallPeek creates a peek handler for the given call.
func NewCallPeek(num int, call *chain.Call) *Peek {
	return NewPeek(num, call.Name, call.TypeBefore, call.TypeAfter, call.Package)
}

// Before returns the map of values entering the call.
func (h *Peek) Before() *dsl.MapVariable { return h.before }

// After returns the map of values leaving the call.
func (h *Peek) After() *dsl.MapVariable { return h.after }

func (h *Peek) Variables() []*dsl.Declaration {
	return []*dsl.Declaration{
		h.before.DefaultDeclaration(),
		h.after.DefaultDeclaration(),
	}
}

func (h *Peek) CallsBefore() []*chain.Call {
	return []*chain.Call{peekCall(h.before, h.typeBefore, h.pkg)}
}

func (h *Peek) CallsAfter() []*chain.Call {
	return []*chain.Call{peekCall(h.after, h.typeAfter, h.pkg)}
}

func (h *Peek) PrepareResult() *dsl.Block {
	return dsl.NewBlock(func(b *dsl.Block) {
		b.Add(h.before.ConvertToArray(h.beforeArray.Name))
		b.Add(h.after.ConvertToArray(h.afterArray.Name))
	})
}

func (h *Peek) ResultExpression() dsl.Expression {
	return dsl.NewArray(gentype.Any, h.beforeArray, h.afterArray)
}

// storeResult prepares the result of the handler and stores it into a variable.
func (h *Peek) storeResult(b *dsl.Block) {
	b.Add(h.PrepareResult())
	b.Declare(h.result, h.ResultExpression(), false)
}
