package resolve

import (
	"github.com/sirkon/streamtrace/internal/trace"
)

// Result is a correspondence between observations before a call and after it.
//
// Links are always added in pairs, so an after element is in the direct
// list of a before element if and only if the before element is in the
// reverse list of the after one.
type Result struct {
	direct  map[*trace.Element][]*trace.Element
	reverse map[*trace.Element][]*trace.Element
}

func newResult() *Result {
	return &Result{
		direct:  map[*trace.Element][]*trace.Element{},
		reverse: map[*trace.Element][]*trace.Element{},
	}
}

func (r *Result) link(before, after *trace.Element) {
	r.direct[before] = append(r.direct[before], after)
	r.reverse[after] = append(r.reverse[after], before)
}

// Direct returns elements after the call the given one contributed to. It is
// empty for elements which had no observed output.
func (r *Result) Direct(before *trace.Element) []*trace.Element {
	return r.direct[before]
}

// Reverse returns elements before the call the given one was derived from. It
// is empty for elements having no recorded origin.
func (r *Result) Reverse(after *trace.Element) []*trace.Element {
	return r.reverse[after]
}

// Links returns the number of links.
func (r *Result) Links() int {
	var res int
	for _, after := range r.direct {
		res += len(after)
	}

	return res
}
