package chain

import (
	"fmt"
	"strings"

	"github.com/sirkon/streamtrace/internal/dsl"
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Range is a span of a call in the source text.
type Range struct {
	Start int
	End   int
}

// Call is a pipeline call as reported by the source analysis. Synthetic calls
// spliced by trace handlers use the same type.
type Call struct {
	Name       string
	Args       []dsl.Expression
	Kind       Kind
	TypeBefore *gentype.Type
	TypeAfter  *gentype.Type
	Package    string
	Range      Range

	// Parallel is set for calls which may be evaluated in parallel mode.
	Parallel bool
}

// Expression builds a call of this method on the receiver.
func (c *Call) Expression(receiver dsl.Expression) dsl.Expression {
	return dsl.Call(receiver, c.Name, c.Args...)
}

// TerminalCall is a call ending a pipeline.
type TerminalCall struct {
	Call
	ResultType *gentype.Type
}

// Qualifier is an expression producing a stream.
type Qualifier struct {
	Text     string
	Type     *gentype.Type
	Range    Range
	Parallel bool
}

// Chain is a pipeline: a qualifier, zero or more intermediate calls and the terminal call.
type Chain struct {
	Qualifier    Qualifier
	Intermediate []*Call
	Terminal     *TerminalCall
}

// Length returns the number of calls including the terminal one.
func (c *Chain) Length() int {
	return len(c.Intermediate) + 1
}

// Call returns the i-th call, the terminal call is the last one.
func (c *Chain) Call(i int) *Call {
	if i < 0 || i >= c.Length() {
		panic(fmt.Errorf("call index %d is out of bounds [0, %d)", i, c.Length()))
	}

	if i < len(c.Intermediate) {
		return c.Intermediate[i]
	}

	return &c.Terminal.Call
}

// Text returns the pipeline code with each call on its own line.
func (c *Chain) Text(r dsl.Renderer) string {
	var b strings.Builder
	b.WriteString(c.Qualifier.Text)
	for i := 0; i < c.Length(); i++ {
		call := c.Call(i)
		b.WriteString("\n.")
		b.WriteString(call.Name)
		b.WriteByte('(')
		for j, arg := range call.Args {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.Render(arg))
		}
		b.WriteByte(')')
	}

	return b.String()
}

// CompactText returns a short description of the pipeline.
//
//	list.stream() -> filter -> count
func (c *Chain) CompactText() string {
	var b strings.Builder
	b.WriteString(strings.Join(strings.Fields(c.Qualifier.Text), ""))
	for i := 0; i < c.Length(); i++ {
		b.WriteString(" -> ")
		b.WriteString(c.Call(i).Name)
	}

	return b.String()
}
