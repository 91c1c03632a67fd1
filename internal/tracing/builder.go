package tracing

import (
	"fmt"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/emit"
	"github.com/sirkon/streamtrace/internal/gentype"
	"github.com/sirkon/streamtrace/internal/handler"
	"github.com/sirkon/streamtrace/internal/ops"
)

// ExpressionBuilder builds code which evaluates an instrumented pipeline in
// the debuggee and returns everything recorded by trace handlers.
//
// The value of the code is an array
//
//	[info, streamResult[], exception[], elapsed long[]]
//
// where info holds a result of each call handler in the pipeline order.
type ExpressionBuilder struct {
	lang emit.Language
}

// NewExpressionBuilder creates a builder for the given target language.
func NewExpressionBuilder(lang emit.Language) *ExpressionBuilder {
	return &ExpressionBuilder{lang: lang}
}

// Language returns the target language of the builder.
func (eb *ExpressionBuilder) Language() emit.Language {
	return eb.lang
}

// Build returns the trace expression code of the pipeline.
func (eb *ExpressionBuilder) Build(c *chain.Chain) (string, error) {
	r, err := emit.New(eb.lang)
	if err != nil {
		return "", fmt.Errorf("setup renderer: %w", err)
	}

	d := dsl.New(r)
	if err := buildExpression(d, c); err != nil {
		return "", err
	}

	return d.Code(), nil
}

type callHandler interface {
	Variables() []*dsl.Declaration
	PrepareResult() *dsl.Block
	ResultExpression() dsl.Expression
}

func buildExpression(d *dsl.Dsl, c *chain.Chain) error {
	resultType := c.Terminal.ResultType
	void := resultType.Kind() == gentype.KindVoid
	if void {
		resultType = gentype.Any
	}

	streamResult := dsl.NewVariable(resultType, "streamResult")
	exception := dsl.NewVariable(gentype.Exception, "exception")
	startTime := dsl.NewVariable(gentype.Long, "startTime")
	elapsed := dsl.NewVariable(gentype.Long, "elapsedTime")
	info := dsl.NewArrayVariable(gentype.Any, "info")
	result := dsl.NewArrayVariable(gentype.Any, "result")

	intermediates := make([]handler.Intermediate, len(c.Intermediate))
	for i, call := range c.Intermediate {
		intermediates[i] = ops.Intermediate(i, call)
	}
	terminal, err := ops.Terminal(len(c.Intermediate), c.Terminal, streamResult)
	if err != nil {
		return fmt.Errorf("setup handler of %s: %w", c.Terminal.Name, err)
	}

	handlers := make([]callHandler, 0, c.Length())
	for _, h := range intermediates {
		handlers = append(handlers, h)
	}
	handlers = append(handlers, terminal)

	d.Declare(handler.Time, dsl.Default(gentype.Time), false)
	for _, h := range handlers {
		for _, decl := range h.Variables() {
			d.Statement(decl)
		}
	}
	d.Declare(streamResult, dsl.Default(resultType), true)
	d.Declare(exception, dsl.Default(gentype.Exception), true)
	d.Declare(startTime, dsl.Func("java.lang.System.nanoTime"), false)

	var expr dsl.Expression = dsl.Code(c.Qualifier.Text)
	for i, h := range intermediates {
		expr = spliceCalls(expr, h.CallsBefore())
		expr = c.Intermediate[i].Expression(expr)
		expr = spliceCalls(expr, h.CallsAfter())
	}
	expr = spliceCalls(expr, terminal.CallsBefore())
	expr = terminal.TransformCall(c.Terminal).Expression(expr)

	t := dsl.ExceptionVariable("t")
	d.TryBlock(func(b *dsl.Block) {
		if void {
			b.Statement(expr)
			return
		}
		b.Assign(streamResult, expr)
	}).Catch(t, func(b *dsl.Block) {
		b.Assign(exception, t)
	})

	d.Declare(elapsed, dsl.Binary(dsl.OpMinus, dsl.Func("java.lang.System.nanoTime"), startTime), false)
	d.Statement(info.DefaultDeclaration(dsl.Int(len(handlers))))
	for i, h := range handlers {
		d.Scope(func(b *dsl.Block) {
			b.Add(h.PrepareResult())
			b.Statement(info.Set(dsl.Int(i), h.ResultExpression()))
		})
	}

	d.Declare(result, dsl.NewArray(
		gentype.Any,
		info,
		dsl.NewArray(resultType, streamResult),
		dsl.NewArray(gentype.Exception, exception),
		dsl.NewArray(gentype.Long, elapsed),
	), false)

	// The value of a code fragment is its last expression.
	d.Statement(result)

	return nil
}

func spliceCalls(expr dsl.Expression, calls []*chain.Call) dsl.Expression {
	for _, call := range calls {
		expr = call.Expression(expr)
	}

	return expr
}
