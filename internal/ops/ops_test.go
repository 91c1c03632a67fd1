package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
	"github.com/sirkon/streamtrace/internal/handler"
	"github.com/sirkon/streamtrace/internal/resolve"
)

func call(kind chain.Kind) *chain.Call {
	return &chain.Call{
		Name:       kind.String(),
		Args:       []dsl.Expression{dsl.Code("x -> true")},
		Kind:       kind,
		TypeBefore: gentype.Int,
		TypeAfter:  gentype.Int,
		Package:    "java.util.stream",
	}
}

func TestCatalogueIsExhaustive(t *testing.T) {
	result := dsl.NewVariable(gentype.Any, "streamResult")
	for _, kind := range chain.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			c := call(kind)
			if !kind.IsTerminal() {
				require.NotNil(t, Intermediate(0, c))
				require.NotNil(t, IntermediateInterpreter(c))
				require.NotNil(t, IntermediateResolver(c))
				return
			}

			term := &chain.TerminalCall{Call: *c, ResultType: gentype.Long}
			h, err := Terminal(1, term, result)
			require.NoError(t, err)
			require.NotNil(t, h)
			require.NotNil(t, TerminalInterpreter(term))
			require.NotNil(t, TerminalResolver(term))
		})
	}

	require.Panics(t, func() {
		Intermediate(0, call(chain.KindCount))
	})
	require.Panics(t, func() {
		TerminalResolver(&chain.TerminalCall{Call: *call(chain.KindMap), ResultType: gentype.Void})
	})
}

func TestTerminalShapes(t *testing.T) {
	result := dsl.NewVariable(gentype.Any, "streamResult")

	forEach := &chain.TerminalCall{Call: *call(chain.KindForEach), ResultType: gentype.Void}
	h, err := Terminal(1, forEach, result)
	require.NoError(t, err)
	require.IsType(t, &handler.Terminator{}, h)
	require.Equal(t, resolve.Empty, TerminalResolver(forEach))

	first := &chain.TerminalCall{Call: *call(chain.KindFindFirst), ResultType: gentype.Class("java.util.OptionalInt")}
	h, err = Terminal(1, first, result)
	require.NoError(t, err)
	require.IsType(t, &handler.Optional{}, h)

	count := &chain.TerminalCall{Call: *call(chain.KindCount), ResultType: gentype.Long}
	h, err = Terminal(1, count, result)
	require.NoError(t, err)
	require.IsType(t, &handler.ResultTerminator{}, h)
	require.Equal(t, resolve.AllToResult, TerminalResolver(count))

	match := &chain.TerminalCall{Call: *call(chain.KindAllMatch), ResultType: gentype.Boolean}
	h, err = Terminal(1, match, result)
	require.NoError(t, err)
	require.IsType(t, &handler.Match{}, h)
	require.Equal(t, resolve.Recorded, TerminalResolver(match))

	match.Args = nil
	_, err = Terminal(1, match, result)
	require.ErrorIs(t, err, handler.ErrNoPredicate)
}

func TestParallelCallsAreSequential(t *testing.T) {
	c := call(chain.KindMap)
	c.Parallel = true

	calls := Intermediate(0, c).CallsBefore()
	require.Equal(t, chain.KindSequential, calls[0].Kind)
	for _, c := range calls[1:] {
		require.NotEqual(t, chain.KindSequential, c.Kind)
	}
}

func TestIntermediateResolvers(t *testing.T) {
	require.Equal(t, resolve.PairMap, IntermediateResolver(call(chain.KindMap)))
	require.Equal(t, resolve.NearestPreceding, IntermediateResolver(call(chain.KindFilter)))
	require.Equal(t, resolve.Distinct, IntermediateResolver(call(chain.KindDistinct)))
	require.Equal(t, resolve.Identity, IntermediateResolver(call(chain.KindSorted)))
}
