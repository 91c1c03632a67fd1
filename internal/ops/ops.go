package ops

import (
	"fmt"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
	"github.com/sirkon/streamtrace/internal/handler"
	"github.com/sirkon/streamtrace/internal/resolve"
	"github.com/sirkon/streamtrace/internal/trace"
)

// Intermediate returns a handler of the num-th call of a pipeline.
func Intermediate(num int, call *chain.Call) handler.Intermediate {
	var h handler.Intermediate
	switch call.Kind {
	case chain.KindDistinct:
		h = handler.NewDistinct(num, call)
	case chain.KindParallel:
		h = handler.NewParallel(num, call)
	case chain.KindFilter,
		chain.KindMap,
		chain.KindFlatMap,
		chain.KindSorted,
		chain.KindPeek,
		chain.KindLimit,
		chain.KindSkip,
		chain.KindSequential,
		chain.KindPassThrough,
		chain.KindIntermediate:
		h = handler.NewCallPeek(num, call)
	default:
		panic(fmt.Errorf("%s is not an intermediate call kind", call.Kind))
	}

	return handler.Sequential(h, call)
}

// Terminal returns a handler of the terminal call which is the num-th one in
// its pipeline. The result refers to the value produced by the call.
func Terminal(num int, call *chain.TerminalCall, result dsl.Expression) (handler.Terminal, error) {
	var h handler.Terminal
	switch terminalShape(call) {
	case shapeMatch:
		m, err := handler.NewMatch(num, call, result)
		if err != nil {
			return nil, err
		}
		h = m
	case shapeOptional:
		h = handler.NewOptional(num, call, result)
	case shapeVoid:
		h = handler.NewTerminator(num, call)
	case shapeValue:
		h = handler.NewResultTerminator(num, call, result)
	}

	return handler.SequentialTerminal(h, &call.Call), nil
}

// IntermediateInterpreter returns a decoder of traces of an intermediate call.
func IntermediateInterpreter(call *chain.Call) trace.Interpreter {
	switch call.Kind {
	case chain.KindDistinct:
		return trace.Distinct
	case chain.KindFilter,
		chain.KindMap,
		chain.KindFlatMap,
		chain.KindSorted,
		chain.KindPeek,
		chain.KindLimit,
		chain.KindSkip,
		chain.KindParallel,
		chain.KindSequential,
		chain.KindPassThrough,
		chain.KindIntermediate:
		return trace.Peek
	default:
		panic(fmt.Errorf("%s is not an intermediate call kind", call.Kind))
	}
}

// TerminalInterpreter returns a decoder of traces of a terminal call.
func TerminalInterpreter(call *chain.TerminalCall) trace.Interpreter {
	switch terminalShape(call) {
	case shapeMatch:
		return trace.Match
	case shapeOptional:
		return trace.Optional
	case shapeVoid:
		return trace.Peek
	default:
		return trace.ResultTerminal
	}
}

// IntermediateResolver returns a resolver of an intermediate call.
func IntermediateResolver(call *chain.Call) resolve.Resolver {
	switch call.Kind {
	case chain.KindMap, chain.KindPeek, chain.KindParallel, chain.KindSequential, chain.KindPassThrough:
		return resolve.PairMap
	case chain.KindFilter, chain.KindFlatMap, chain.KindLimit, chain.KindSkip:
		return resolve.NearestPreceding
	case chain.KindDistinct:
		return resolve.Distinct
	case chain.KindSorted:
		return resolve.Identity
	case chain.KindIntermediate:
		return resolve.Empty
	default:
		panic(fmt.Errorf("%s is not an intermediate call kind", call.Kind))
	}
}

// TerminalResolver returns a resolver of a terminal call.
func TerminalResolver(call *chain.TerminalCall) resolve.Resolver {
	switch terminalShape(call) {
	case shapeMatch:
		return resolve.Recorded
	case shapeOptional:
		return resolve.OptionalResult(call.Kind)
	case shapeVoid:
		return resolve.Empty
	default:
		return resolve.AllToResult
	}
}

type shape int

const (
	shapeValue shape = iota
	shapeVoid
	shapeOptional
	shapeMatch
)

func terminalShape(call *chain.TerminalCall) shape {
	switch call.Kind {
	case chain.KindAnyMatch, chain.KindAllMatch, chain.KindNoneMatch:
		return shapeMatch
	case chain.KindForEach,
		chain.KindCollect,
		chain.KindReduce,
		chain.KindCount,
		chain.KindSum,
		chain.KindAverage,
		chain.KindToArray,
		chain.KindMin,
		chain.KindMax,
		chain.KindFindFirst,
		chain.KindFindAny,
		chain.KindTerminal:
	default:
		panic(fmt.Errorf("%s is not a terminal call kind", call.Kind))
	}

	switch {
	case gentype.IsOptional(call.ResultType):
		return shapeOptional
	case call.ResultType.Kind() == gentype.KindVoid:
		return shapeVoid
	default:
		return shapeValue
	}
}
