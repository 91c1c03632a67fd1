package handler

import (
	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Distinct records values like [Peek] does and also computes which
// observations before the call were collapsed into each observation after it.
// Equal values are grouped into classes keyed by value, then every
// observation of the class is mapped onto the time of the value passed
// through.
//
//	[peekResult, [beforeTimes, afterTimes]]
type Distinct struct {
	peek    *Peek
	call    *chain.Call
	resolve *dsl.ArrayVariable
}

// NewDistinct creates a handler for a distinct call.
func NewDistinct(num int, call *chain.Call) *Distinct {
	return &Distinct{
		peek:    NewPeek(num, "distinct", call.TypeBefore, call.TypeAfter, call.Package),
		call:    call,
		resolve: dsl.NewArrayVariable(gentype.Any, "resolve"),
	}
}

func (h *Distinct) Variables() []*dsl.Declaration { return h.peek.Variables() }
func (h *Distinct) CallsBefore() []*chain.Call    { return h.peek.CallsBefore() }
func (h *Distinct) CallsAfter() []*chain.Call     { return h.peek.CallsAfter() }

func (h *Distinct) PrepareResult() *dsl.Block {
	before := h.peek.Before()
	after := h.peek.After()
	classType := gentype.MapOf(gentype.Int, h.call.TypeBefore)

	mapping := dsl.NewMapVariable(gentype.Int, gentype.Int, "mapping", true)
	eqClasses := dsl.NewMapVariable(h.call.TypeBefore, classType, "eqClasses", false)

	return dsl.NewBlock(func(b *dsl.Block) {
		b.Statement(mapping.DefaultDeclaration())
		b.Statement(eqClasses.DefaultDeclaration())

		beforeTime := dsl.NewVariable(gentype.Int, "beforeTime")
		b.ForEachLoop(beforeTime, before.Keys(), func(b *dsl.Block) {
			value := b.Declare(dsl.NewVariable(h.call.TypeBefore, "beforeValue"), before.Get(beforeTime), false)
			newClass := dsl.Lambda("key", func(body *dsl.Block, _ dsl.Expression) {
				body.Return(dsl.Default(classType))
			})
			items := dsl.NewMapVariable(gentype.Int, h.call.TypeBefore, "classItems", false)
			b.Declare(items, eqClasses.ComputeIfAbsent(value, newClass), false)
			b.Statement(items.Set(beforeTime, value))
		})

		afterTime := dsl.NewVariable(gentype.Int, "afterTime")
		b.ForEachLoop(afterTime, after.Keys(), func(b *dsl.Block) {
			value := b.Declare(dsl.NewVariable(h.call.TypeAfter, "afterValue"), after.Get(afterTime), false)
			classes := dsl.NewMapVariable(gentype.Int, h.call.TypeBefore, "classes", false)
			b.Declare(classes, eqClasses.Get(value), false)

			classTime := dsl.NewVariable(gentype.Int, "classElementTime")
			b.ForEachLoop(classTime, classes.Keys(), func(b *dsl.Block) {
				b.Statement(mapping.Set(classTime, afterTime))
			})
		})

		b.Add(mapping.ConvertToArray(h.resolve.Name))
		h.peek.storeResult(b)
	})
}

func (h *Distinct) ResultExpression() dsl.Expression {
	return dsl.NewArray(gentype.Any, h.peek.result, h.resolve)
}
