package tracing

import (
	"github.com/sirkon/streamtrace/internal/ops"
	"github.com/sirkon/streamtrace/internal/resolve"
	"github.com/sirkon/streamtrace/internal/trace"
)

// ResolvedChain is a correspondence of values along the whole pipeline.
//
// Values flowing between calls make states. State 0 holds values consumed by
// the first call, state i holds values produced by the call i-1 and the last
// state holds the pipeline result.
type ResolvedChain struct {
	*TracingResult

	results []*resolve.Result
	states  []*state
}

// state is values between two calls. Values produced by a call and consumed
// by the next one are recorded by adjacent peeks of different handlers, so
// the next call observes a value right after the previous one produced it.
type state struct {
	elements []*trace.Element
	toNext   map[*trace.Element]*trace.Element
	fromNext map[*trace.Element]*trace.Element
}

// Resolve computes the correspondence of each call in the pipeline.
func Resolve(r *TracingResult) *ResolvedChain {
	c := r.Chain
	res := &ResolvedChain{
		TracingResult: r,
		results:       make([]*resolve.Result, len(r.Infos)),
		states:        make([]*state, len(r.Infos)+1),
	}

	for i, info := range r.Infos {
		var resolver resolve.Resolver
		if i < len(c.Intermediate) {
			resolver = ops.IntermediateResolver(c.Intermediate[i])
		} else {
			resolver = ops.TerminalResolver(c.Terminal)
		}
		res.results[i] = resolver.Resolve(info)
	}

	res.states[0] = &state{elements: r.Infos[0].Before.Elements()}
	for i := 1; i <= len(r.Infos); i++ {
		s := &state{elements: r.Infos[i-1].After.Elements()}
		if i < len(r.Infos) {
			s.bridge(r.Infos[i].Before)
		}
		res.states[i] = s
	}

	return res
}

func (s *state) bridge(next *trace.Order) {
	s.toNext = make(map[*trace.Element]*trace.Element, next.Len())
	s.fromNext = make(map[*trace.Element]*trace.Element, next.Len())
	for _, e := range s.elements {
		n := next.At(e.Time + 1)
		if n == nil {
			continue
		}
		s.toNext[e] = n
		s.fromNext[n] = e
	}
}

// Len returns the number of calls.
func (c *ResolvedChain) Len() int {
	return len(c.results)
}

// CallResult returns the correspondence of the i-th call.
func (c *ResolvedChain) CallResult(i int) *resolve.Result {
	return c.results[i]
}

// States returns the number of states, which is one more than the number of calls.
func (c *ResolvedChain) States() int {
	return len(c.states)
}

// State returns values of the i-th state in the order of observation.
func (c *ResolvedChain) State(i int) []*trace.Element {
	if i < 0 || i >= len(c.states) {
		return nil
	}

	return c.states[i].elements
}

// NextValues returns values of the next state the element of the given
// state was turned into.
func (c *ResolvedChain) NextValues(i int, e *trace.Element) []*trace.Element {
	if i < 0 || i >= len(c.results) {
		return nil
	}

	if i > 0 {
		e = c.states[i].toNext[e]
		if e == nil {
			return nil
		}
	}

	return c.results[i].Direct(e)
}

// PrevValues returns values of the previous state the element of the given
// state was made of.
func (c *ResolvedChain) PrevValues(i int, e *trace.Element) []*trace.Element {
	if i <= 0 || i >= len(c.states) {
		return nil
	}

	prev := c.results[i-1].Reverse(e)
	if i == 1 {
		return prev
	}

	res := make([]*trace.Element, 0, len(prev))
	for _, p := range prev {
		if x := c.states[i-1].fromNext[p]; x != nil {
			res = append(res, x)
		}
	}

	return res
}

// unbridged returns the number of values of the state which were not
// observed by the next call.
func (c *ResolvedChain) unbridged(i int) int {
	s := c.states[i]
	if s.toNext == nil {
		return 0
	}

	return len(s.elements) - len(s.toNext)
}
