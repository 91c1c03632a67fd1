package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/emit"
	"github.com/sirkon/streamtrace/internal/handler"
)

func decodeChain(t *testing.T, text string) *chain.Chain {
	t.Helper()

	c, err := chain.Decode(strings.NewReader(text))
	require.NoError(t, err)
	return c
}

const countChain = `
qualifier: {text: "java.util.stream.IntStream.of(1, 2, 3)", type: "java.util.stream.IntStream"}
intermediate:
  - {name: filter, args: ["x -> x > 1"]}
terminal: {name: count, result: long}
`

func TestExpressionBuilderJava(t *testing.T) {
	code, err := NewExpressionBuilder(emit.LanguageJava).Build(decodeChain(t, countChain))
	require.NoError(t, err)

	for _, line := range []string{
		"final java.util.concurrent.atomic.AtomicInteger time = new java.util.concurrent.atomic.AtomicInteger();",
		"final java.util.Map<java.lang.Integer, java.lang.Integer> filter0Before = new java.util.LinkedHashMap<java.lang.Integer, java.lang.Integer>();",
		"long streamResult = 0L;",
		"java.lang.Throwable exception = null;",
		"final long startTime = java.lang.System.nanoTime();",
		"try {\n  streamResult = java.util.stream.IntStream.of(1, 2, 3)" +
			".peek(x -> filter0Before.put(time.incrementAndGet(), x))" +
			".filter(x -> x > 1)" +
			".peek(x -> filter0After.put(time.incrementAndGet(), x))" +
			".peek(x -> terminator1Before.put(time.incrementAndGet(), x))" +
			".count();\n} catch (java.lang.Throwable t) {\n  exception = t;\n}",
		"final long elapsedTime = java.lang.System.nanoTime() - startTime;",
		"final java.lang.Object[] info = new java.lang.Object[2];",
		"  info[0] = new java.lang.Object[] {beforeArray, afterArray};",
		"  info[1] = new java.lang.Object[] {peekResult, new long[] {streamResult}};",
		"final java.lang.Object[] result = new java.lang.Object[] {info, new long[] {streamResult}, " +
			"new java.lang.Throwable[] {exception}, new long[] {elapsedTime}};",
	} {
		require.Contains(t, code, line)
	}
	require.True(t, strings.HasPrefix(code, "final java.util.concurrent.atomic.AtomicInteger time"))
	require.True(t, strings.HasSuffix(code, "\nresult;"))

	// Handler results are prepared in scopes of their own.
	require.Equal(t, 2, strings.Count(code, "\n{\n"))
}

func TestExpressionBuilderKotlin(t *testing.T) {
	code, err := NewExpressionBuilder(emit.LanguageKotlin).Build(decodeChain(t, countChain))
	require.NoError(t, err)

	for _, line := range []string{
		"val time: java.util.concurrent.atomic.AtomicInteger = java.util.concurrent.atomic.AtomicInteger()",
		"var streamResult: kotlin.Long = 0L",
		"var exception: kotlin.Throwable? = null",
		"val startTime: kotlin.Long = java.lang.System.nanoTime()",
		".peek({ x -> filter0Before[time.incrementAndGet()] = x })",
		"} catch (t: kotlin.Throwable) {\n  exception = t\n}",
		"val info: kotlin.Array<kotlin.Any?> = kotlin.Array<kotlin.Any?>(2) { null }",
		"run {",
		"kotlin.longArrayOf(elapsedTime)",
	} {
		require.Contains(t, code, line)
	}
	require.True(t, strings.HasSuffix(code, "\nresult"))
}

func TestExpressionBuilderVoid(t *testing.T) {
	code, err := NewExpressionBuilder(emit.LanguageJava).Build(decodeChain(t, `
qualifier: {text: "list.stream()", type: "java.util.stream.Stream"}
terminal: {name: forEach, before: java.lang.String, args: ["System.out::println"]}
`))
	require.NoError(t, err)

	require.Contains(t, code, "java.lang.Object streamResult = new java.lang.Object();")
	require.Contains(t, code,
		"try {\n  list.stream().peek(x -> terminator0Before.put(time.incrementAndGet(), x)).forEach(System.out::println);\n}",
	)
	require.Contains(t, code, "  info[0] = new java.lang.Object[] {beforeArray, afterArray};")
}

func TestExpressionBuilderParallel(t *testing.T) {
	code, err := NewExpressionBuilder(emit.LanguageJava).Build(decodeChain(t, `
qualifier: {text: "list.parallelStream()", type: "java.util.stream.Stream", parallel: true}
intermediate:
  - {name: map, before: java.lang.String, after: int, args: ["String::length"]}
terminal: {name: count, result: long}
`))
	require.NoError(t, err)

	require.Contains(t, code, "list.parallelStream().sequential().peek(x -> map0Before.put(time.incrementAndGet(), x)).map(String::length)")
}

func TestExpressionBuilderErrors(t *testing.T) {
	_, err := NewExpressionBuilder(emit.LanguageJava).Build(decodeChain(t, `
qualifier: {text: "list.stream()"}
terminal: {name: anyMatch, result: boolean}
`))
	require.ErrorIs(t, err, handler.ErrNoPredicate)

	_, err = NewExpressionBuilder(emit.Language(100)).Build(decodeChain(t, countChain))
	require.Error(t, err)
}
