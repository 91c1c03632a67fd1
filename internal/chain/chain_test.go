package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirkon/streamtrace/internal/emit"
	"github.com/sirkon/streamtrace/internal/gentype"
)

const sampleChain = `
qualifier: {text: "java.util.stream.IntStream.of(1, 2, 3)", type: "java.util.stream.IntStream", range: [0, 37]}
intermediate:
  - {name: filter, args: ["x -> x > 1"], range: [38, 57]}
  - {name: mapToObj, args: ["Integer::toString"], after: java.lang.String, range: [58, 87]}
  - {name: peek, kind: peek, args: ["System.out::println"]}
terminal: {name: findFirst, result: java.util.Optional, range: [88, 99]}
`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleChain))
	require.NoError(t, err)

	require.Equal(t, 4, c.Length())
	require.Same(t, gentype.Int, c.Qualifier.Type)

	filter := c.Call(0)
	require.Equal(t, KindFilter, filter.Kind)
	require.Same(t, gentype.Int, filter.TypeBefore)
	require.Same(t, gentype.Int, filter.TypeAfter)
	require.Equal(t, "java.util.stream", filter.Package)
	require.Equal(t, Range{Start: 38, End: 57}, filter.Range)

	mapper := c.Call(1)
	require.Equal(t, KindMap, mapper.Kind)
	require.Same(t, gentype.Int, mapper.TypeBefore)
	require.Same(t, gentype.String, mapper.TypeAfter)

	require.Same(t, gentype.String, c.Call(2).TypeBefore)

	term := c.Call(3)
	require.Equal(t, KindFindFirst, term.Kind)
	require.Same(t, gentype.String, term.TypeBefore)
	require.True(t, gentype.IsOptional(c.Terminal.ResultType))
	require.False(t, term.Parallel)

	require.Panics(t, func() {
		c.Call(4)
	})

	require.Equal(t, "java.util.stream.IntStream.of(1,2,3) -> filter -> mapToObj -> peek -> findFirst", c.CompactText())

	r, err := emit.New(emit.LanguageJava)
	require.NoError(t, err)
	require.Equal(t,
		"java.util.stream.IntStream.of(1, 2, 3)\n.filter(x -> x > 1)\n.mapToObj(Integer::toString)\n.peek(System.out::println)\n.findFirst()",
		c.Text(r),
	)
}

func TestDecodeParallelQualifier(t *testing.T) {
	c, err := Decode(strings.NewReader(`
qualifier: {text: "list.parallelStream()", parallel: true}
terminal: {name: forEach, args: ["System.out::println"]}
`))
	require.NoError(t, err)

	require.Equal(t, 1, c.Length())
	require.True(t, c.Call(0).Parallel)
	require.Equal(t, KindForEach, c.Call(0).Kind)
	require.Same(t, gentype.Void, c.Terminal.ResultType)
	require.Same(t, gentype.Any, c.Terminal.TypeBefore)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{
			name: "no terminal",
			text: `{qualifier: {text: "s"}, intermediate: [{name: filter}]}`,
			err:  ErrEmptyChain,
		},
		{
			name: "unknown kind",
			text: `{qualifier: {text: "s"}, terminal: {name: count, kind: counting}}`,
			err:  ErrUnknownKind,
		},
		{
			name: "terminal kind in the middle",
			text: `{qualifier: {text: "s"}, intermediate: [{name: x, kind: count}], terminal: {name: count}}`,
			err:  ErrUnknownKind,
		},
		{
			name: "bad range",
			text: `{qualifier: {text: "s", range: [1]}, terminal: {name: count}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.text))
			require.Error(t, err)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			var got Kind
			require.NoError(t, got.UnmarshalText([]byte(k.String())))
			require.Equal(t, k, got)
			require.NotEqual(t, "Unknown kind.", k.Description())
		})
	}

	require.False(t, KindSequential.IsTerminal())
	require.False(t, KindIntermediate.IsTerminal())
	require.True(t, KindForEach.IsTerminal())
	require.True(t, KindTerminal.IsTerminal())

	require.Equal(t, KindIntermediate, ClassifyIntermediate("window"))
	require.Equal(t, KindTerminal, ClassifyTerminal("iterator"))
	require.Equal(t, KindFlatMap, ClassifyIntermediate("flatMapToInt"))
	require.Equal(t, KindToArray, ClassifyTerminal("toList"))
}
