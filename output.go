package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirkon/streamtrace/internal/trace"
	"github.com/sirkon/streamtrace/internal/tracing"
)

// printResolved prints links of the given calls or of every call if none is
// given, values the call consumed first and values it produced then:
//
//	call 0 filter
//	  1@1 -> []
//	  2@3 -> [2@4]
//	  2@4 <- [2@3]
func printResolved(w io.Writer, r *tracing.ResolvedChain, calls []int) error {
	if len(calls) == 0 {
		for i := 0; i < r.Len(); i++ {
			calls = append(calls, i)
		}
	}

	pw := &printer{w: w}
	for _, i := range calls {
		pw.printf("call %d %s\n", i, r.Chain.Call(i).Name)
		for _, e := range r.State(i) {
			pw.printf("  %s -> %s\n", element(e), elements(r.NextValues(i, e)))
		}
		for _, e := range r.State(i + 1) {
			pw.printf("  %s <- %s\n", element(e), elements(r.PrevValues(i+1, e)))
		}
	}

	if r.ExceptionThrown() {
		pw.printf("exception: %s\n", r.Exception)
	} else {
		pw.printf("result: %s\n", r.Result)
	}
	pw.printf("elapsed: %s\n", r.Elapsed)

	return pw.err
}

func element(e *trace.Element) string {
	if e.Time == trace.ResultTime {
		return e.Value.String() + "@result"
	}

	return e.String()
}

func elements(list []*trace.Element) string {
	items := make([]string, len(list))
	for i, e := range list {
		items[i] = element(e)
	}

	return "[" + strings.Join(items, ", ") + "]"
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...any) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, format, a...)
}
