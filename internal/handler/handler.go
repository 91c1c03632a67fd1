package handler

import (
	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Intermediate instruments an intermediate call.
type Intermediate interface {
	// Variables returns declarations to be put before the pipeline.
	Variables() []*dsl.Declaration

	// CallsBefore returns calls to be spliced right before the call.
	CallsBefore() []*chain.Call

	// CallsAfter returns calls to be spliced right after the call.
	CallsAfter() []*chain.Call

	// PrepareResult returns code which is run after the pipeline is evaluated.
	PrepareResult() *dsl.Block

	// ResultExpression returns an expression with recorded data. It may refer
	// variables declared by PrepareResult.
	ResultExpression() dsl.Expression
}

// Terminal instruments a terminal call.
type Terminal interface {
	Variables() []*dsl.Declaration
	CallsBefore() []*chain.Call

	// TransformCall returns a terminal call which must replace the original one.
	TransformCall(call *chain.TerminalCall) *chain.TerminalCall

	PrepareResult() *dsl.Block
	ResultExpression() dsl.Expression
}

// Time is a counter of observations shared by all handlers of an expression.
// Its increments make a global order of recorded values.
var Time = dsl.NewVariable(gentype.Time, "time")

func peekCall(m *dsl.MapVariable, elem *gentype.Type, pkg string) *chain.Call {
	record := dsl.Lambda("x", func(b *dsl.Block, x dsl.Expression) {
		b.Statement(m.Set(Time.Call("incrementAndGet"), x))
	})

	return &chain.Call{
		Name:       "peek",
		Args:       []dsl.Expression{record},
		Kind:       chain.KindPeek,
		TypeBefore: elem,
		TypeAfter:  elem,
		Package:    pkg,
	}
}

func sequentialCall(elem *gentype.Type, pkg string) *chain.Call {
	return &chain.Call{
		Name:       "sequential",
		Kind:       chain.KindSequential,
		TypeBefore: elem,
		TypeAfter:  elem,
		Package:    pkg,
	}
}
