package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// ErrNoPredicate is returned for match calls having no predicate argument.
var ErrNoPredicate = errors.New("match call has no predicate")

// Match instruments anyMatch, allMatch and noneMatch calls. The predicate is
// moved into a filter spliced before the call, values are recorded around
// that filter. The call itself gets a constant predicate which stops on the
// first element passed the filter, so short circuiting is kept intact.
//
//	[peekResult, [result]]
type Match struct {
	peek      *Peek
	call      *chain.TerminalCall
	predicate *dsl.Variable
	result    dsl.Expression
}

// NewMatch creates a handler for a match call whose result is stored into result.
func NewMatch(num int, call *chain.TerminalCall, result dsl.Expression) (*Match, error) {
	if len(call.Args) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPredicate, call.Name)
	}

	return &Match{
		peek:      NewPeek(num, "filterMatch", call.TypeBefore, call.TypeBefore, call.Package),
		call:      call,
		predicate: dsl.NewVariable(gentype.PredicateOf(call.TypeBefore), "predicate"+strconv.Itoa(num)),
		result:    result,
	}, nil
}

func (h *Match) Variables() []*dsl.Declaration {
	return append(h.peek.Variables(), &dsl.Declaration{
		Var:  h.predicate,
		Init: dsl.Convert(h.predicate.Type, h.call.Args[0]),
	})
}

func (h *Match) CallsBefore() []*chain.Call {
	negate := h.call.Kind == chain.KindAllMatch
	test := dsl.Lambda("x", func(b *dsl.Block, x dsl.Expression) {
		cond := h.predicate.Call("test", x)
		if negate {
			cond = dsl.Not(cond)
		}
		b.Return(cond)
	})

	calls := h.peek.CallsBefore()
	calls = append(calls, &chain.Call{
		Name:       "filter",
		Args:       []dsl.Expression{test},
		Kind:       chain.KindFilter,
		TypeBefore: h.call.TypeBefore,
		TypeAfter:  h.call.TypeBefore,
		Package:    h.call.Package,
	})

	return append(calls, h.peek.CallsAfter()...)
}

func (h *Match) TransformCall(call *chain.TerminalCall) *chain.TerminalCall {
	value := "true"
	if call.Kind == chain.KindAllMatch {
		value = "false"
	}
	stop := dsl.Lambda("x", func(b *dsl.Block, _ dsl.Expression) {
		b.Return(dsl.Code(value))
	})

	res := *call
	res.Args = []dsl.Expression{stop}
	return &res
}

func (h *Match) PrepareResult() *dsl.Block {
	return dsl.NewBlock(h.peek.storeResult)
}

func (h *Match) ResultExpression() dsl.Expression {
	return dsl.NewArray(gentype.Any, h.peek.result, dsl.NewArray(gentype.Boolean, h.result))
}
