package tracing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sirkon/streamtrace/internal/emit"
	"github.com/sirkon/streamtrace/internal/trace"
)

const mapFilterCountChain = `
qualifier: {text: "java.util.stream.IntStream.of(1, 2, 3)", type: "java.util.stream.IntStream"}
intermediate:
  - {name: map, args: ["x -> x * 10"]}
  - {name: filter, args: ["x -> x > 10"]}
terminal: {name: count, result: long}
`

// Element 1 is dropped by the filter, 2 and 3 reach the terminal call.
const mapFilterCountResult = `
- - - - !int [1, 4, 9]
      - !int [1, 2, 3]
    - - !int [2, 5, 10]
      - !int [10, 20, 30]
  - - - !int [3, 6, 11]
      - !int [10, 20, 30]
    - - !int [7, 12]
      - !int [20, 30]
  - - - - !int [8, 13]
        - !int [20, 30]
      - [[], []]
    - [!long 2]
- [!long 2]
- [~]
- [!long 1500]
`

func staticEvaluator(t *testing.T, text string) *StaticEvaluator {
	t.Helper()

	e, err := NewStaticEvaluator(strings.NewReader(text))
	require.NoError(t, err)
	return e
}

func times(elements []*trace.Element) []int {
	res := make([]int, 0, len(elements))
	for _, e := range elements {
		res = append(res, e.Time)
	}
	return res
}

func TestInterpret(t *testing.T) {
	c := decodeChain(t, mapFilterCountChain)
	e := staticEvaluator(t, mapFilterCountResult)

	res, err := Interpret(c, e.Value)
	require.NoError(t, err)

	require.Len(t, res.Infos, 3)
	require.Equal(t, trace.Long(2), res.Result)
	require.False(t, res.ExceptionThrown())
	require.Equal(t, 1500*time.Nanosecond, res.Elapsed)
	require.Equal(t, []int{7, 12}, res.Infos[1].After.Times())
	require.Equal(t, []int{trace.ResultTime}, res.Infos[2].After.Times())

	t.Run("calls mismatch", func(t *testing.T) {
		_, err := Interpret(decodeChain(t, countChain), e.Value)
		require.ErrorIs(t, err, ErrChainMismatch)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := Interpret(c, trace.Int(1))
		require.ErrorIs(t, err, trace.ErrUnexpectedValue)
	})

	t.Run("exception", func(t *testing.T) {
		v := staticEvaluator(t, `
- - [[[], []], [[], []]]
  - [[[], []], [[], []]]
  - [[[[], []], [[], []]], [!long 0]]
- [!long 0]
- [{type: java.lang.IllegalStateException, id: 12, text: boom}]
- [!long 10]
`)
		res, err := Interpret(c, v.Value)
		require.NoError(t, err)
		require.True(t, res.ExceptionThrown())
		require.Equal(t, &trace.Object{Type: "java.lang.IllegalStateException", ID: 12, Text: "boom"}, res.Exception)
	})
}

func TestResolve(t *testing.T) {
	c := decodeChain(t, mapFilterCountChain)
	res, err := Interpret(c, staticEvaluator(t, mapFilterCountResult).Value)
	require.NoError(t, err)

	r := Resolve(res)
	require.Equal(t, 3, r.Len())
	require.Equal(t, 4, r.States())
	require.Equal(t, []int{1, 4, 9}, times(r.State(0)))
	require.Equal(t, []int{2, 5, 10}, times(r.State(1)))
	require.Equal(t, []int{7, 12}, times(r.State(2)))
	require.Equal(t, []int{trace.ResultTime}, times(r.State(3)))
	require.Nil(t, r.State(4))
	require.Equal(t, 2, r.CallResult(1).Links())

	state1 := r.State(1)
	state2 := r.State(2)
	result := r.State(3)[0]

	// filter dropped 10, kept 20 and 30.
	require.Empty(t, r.NextValues(1, state1[0]))
	require.Equal(t, []int{7}, times(r.NextValues(1, state1[1])))
	require.Equal(t, []int{12}, times(r.NextValues(1, state1[2])))
	require.Equal(t, []int{5}, times(r.PrevValues(2, state2[0])))
	require.Equal(t, []int{10}, times(r.PrevValues(2, state2[1])))

	// Everything reaching count makes the result.
	require.Equal(t, []int{trace.ResultTime}, times(r.NextValues(2, state2[0])))
	require.Equal(t, []int{7, 12}, times(r.PrevValues(3, result)))

	// map links values in lock-step, the first state is not bridged.
	require.Equal(t, []int{2}, times(r.NextValues(0, r.State(0)[0])))
	require.Equal(t, []int{1, 4}, times(r.PrevValues(1, state1[0])))

	require.Nil(t, r.NextValues(3, result))
	require.Nil(t, r.PrevValues(0, r.State(0)[0]))

	// Direct and reverse links of a state agree.
	for i := 0; i < r.Len(); i++ {
		for _, e := range r.State(i) {
			for _, next := range r.NextValues(i, e) {
				require.Contains(t, r.PrevValues(i+1, next), e)
			}
		}
	}
}

func TestTracer(t *testing.T) {
	c := decodeChain(t, mapFilterCountChain)

	t.Run("success", func(t *testing.T) {
		var rep Reporter
		e := staticEvaluator(t, mapFilterCountResult)
		tr := NewTracer(NewExpressionBuilder(emit.LanguageJava), e, &rep, zerolog.Nop())

		r, err := tr.Trace(context.Background(), c)
		require.NoError(t, err)
		require.Equal(t, 3, r.Len())
		require.Contains(t, e.Code, "streamResult = java.util.stream.IntStream.of(1, 2, 3)")
		require.Empty(t, rep.Reports())
	})

	t.Run("runtime failure", func(t *testing.T) {
		var rep Reporter
		e := staticEvaluator(t, `error: {kind: runtime, message: "java.lang.OutOfMemoryError"}`)
		tr := NewTracer(NewExpressionBuilder(emit.LanguageKotlin), e, &rep, zerolog.Nop())

		_, err := tr.Trace(context.Background(), c)
		var evalErr *EvaluationError
		require.True(t, errors.As(err, &evalErr))
		require.Equal(t, EvaluationRuntime, evalErr.Kind)
		require.Equal(t, e.Code, evalErr.Expression)
		require.EqualError(t, evalErr.Err, "java.lang.OutOfMemoryError")

		reps := rep.Reports()
		require.Len(t, reps, 1)
		require.Equal(t, ReportEvaluate, reps[0].Phase)
	})

	t.Run("compilation failure", func(t *testing.T) {
		var rep Reporter
		e := staticEvaluator(t, `error: {kind: compilation, message: "cannot find symbol"}`)
		_, err := NewTracer(NewExpressionBuilder(emit.LanguageJava), e, &rep, zerolog.Nop()).Trace(context.Background(), c)
		var evalErr *EvaluationError
		require.True(t, errors.As(err, &evalErr))
		require.Equal(t, EvaluationCompilation, evalErr.Kind)
	})

	t.Run("interpretation failure", func(t *testing.T) {
		var rep Reporter
		e := staticEvaluator(t, "[[], [1], [~], [1]]")
		_, err := NewTracer(NewExpressionBuilder(emit.LanguageJava), e, &rep, zerolog.Nop()).Trace(context.Background(), c)
		require.ErrorIs(t, err, ErrChainMismatch)
		require.Equal(t, ReportInterpret, rep.Reports()[0].Phase)
	})

	t.Run("lost values", func(t *testing.T) {
		var rep Reporter
		text := strings.Replace(mapFilterCountResult, "!int [8, 13]", "!int [8, 14]", 1)
		e := staticEvaluator(t, text)
		r, err := NewTracer(NewExpressionBuilder(emit.LanguageJava), e, &rep, zerolog.Nop()).Trace(context.Background(), c)
		require.NoError(t, err)
		require.Empty(t, r.NextValues(2, r.State(2)[1]))

		reps := rep.Reports()
		require.Len(t, reps, 1)
		require.Equal(t, ReportResolve, reps[0].Phase)
		require.Equal(t, 2, reps[0].Call)
		require.ErrorIs(t, reps[0].Err, ErrChainMismatch)
	})

	t.Run("canceled", func(t *testing.T) {
		var rep Reporter
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewTracer(NewExpressionBuilder(emit.LanguageJava), staticEvaluator(t, mapFilterCountResult), &rep, zerolog.Nop()).Trace(ctx, c)
		require.ErrorIs(t, err, context.Canceled)
	})
}

const mapAnyMatchChain = `
qualifier: {text: "java.util.stream.IntStream.of(1, 2)", type: "java.util.stream.IntStream"}
intermediate:
  - {name: map, args: ["x -> x * 10"]}
terminal: {name: anyMatch, args: ["x -> x > 15"], result: boolean}
`

// 10 fails the predicate, 20 passes it and stops the evaluation.
const mapAnyMatchResult = `
- - - - !int [1, 4]
      - !int [1, 2]
    - - !int [2, 5]
      - !int [10, 20]
  - - - - !int [3, 6]
        - !int [10, 20]
      - - !int [7]
        - !int [20]
    - [true]
- [true]
- [~]
- [!long 2000]
`

func TestTracerMatch(t *testing.T) {
	t.Run("stopped by a value", func(t *testing.T) {
		var rep Reporter
		e := staticEvaluator(t, mapAnyMatchResult)
		r, err := NewTracer(NewExpressionBuilder(emit.LanguageJava), e, &rep, zerolog.Nop()).Trace(context.Background(), decodeChain(t, mapAnyMatchChain))
		require.NoError(t, err)
		require.Empty(t, rep.Reports())

		state1 := r.State(1)
		result := r.State(2)[0]
		require.Equal(t, []int{2, 5}, times(state1))
		require.Equal(t, trace.Bool(true), result.Value)

		require.Empty(t, r.NextValues(1, state1[0]))
		require.Equal(t, []*trace.Element{result}, r.NextValues(1, state1[1]))
		require.Equal(t, []*trace.Element{state1[1]}, r.PrevValues(2, result))
	})

	t.Run("every value checked", func(t *testing.T) {
		var rep Reporter
		e := staticEvaluator(t, `
- - - - !int [1, 4]
      - !int [1, 2]
    - - !int [2, 5]
      - !int [10, 20]
  - - - - !int [3, 6]
        - !int [10, 20]
      - [[], []]
    - [false]
- [false]
- [~]
- [!long 2000]
`)
		r, err := NewTracer(NewExpressionBuilder(emit.LanguageJava), e, &rep, zerolog.Nop()).Trace(context.Background(), decodeChain(t, mapAnyMatchChain))
		require.NoError(t, err)
		require.Empty(t, rep.Reports())

		result := r.State(2)[0]
		for _, e := range r.State(1) {
			require.Equal(t, []*trace.Element{result}, r.NextValues(1, e))
		}
		require.Equal(t, []int{2, 5}, times(r.PrevValues(2, result)))
	})
}
