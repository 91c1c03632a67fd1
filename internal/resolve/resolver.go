package resolve

import (
	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/trace"
)

// Resolver computes correspondence for a call trace.
type Resolver interface {
	Resolve(info *trace.Info) *Result
}

var (
	// PairMap walks observations before and after the call in lock-step
	// and links each element before the call with the current element
	// after the call and the next one.
	PairMap Resolver = pairMap{}

	// NearestPreceding links each element after the call with the last
	// element observed before it.
	NearestPreceding Resolver = nearestPreceding{}

	// Recorded links elements by the correspondence decoded from the trace.
	Recorded Resolver = recorded{}

	// Distinct uses the correspondence computed by the instrumented code.
	// Without one every element is linked with the first equal element
	// after the call.
	Distinct Resolver = distinct{}

	// Identity links elements after the call with equal elements before it
	// one to one.
	Identity Resolver = identity{}

	// AllToResult links every element before the call with the result.
	AllToResult Resolver = allToResult{}

	// Empty links nothing.
	Empty Resolver = empty{}
)

// OptionalResult returns a resolver for terminal calls producing optional
// values. Search calls are bound to the last element they have consumed,
// reductions like min and max are bound to elements equal to the result.
func OptionalResult(kind chain.Kind) Resolver {
	switch kind {
	case chain.KindFindFirst, chain.KindFindAny:
		return lastToResult{}
	default:
		return equalToResult{}
	}
}

type (
	pairMap          struct{}
	nearestPreceding struct{}
	distinct         struct{}
	identity         struct{}
	allToResult      struct{}
	lastToResult     struct{}
	equalToResult    struct{}
	empty            struct{}
)

func (empty) Resolve(*trace.Info) *Result {
	return newResult()
}

func (pairMap) Resolve(info *trace.Info) *Result {
	res := newResult()
	afters := info.After.Elements()

	var current *trace.Element
	var next int
	for _, before := range info.Before.Elements() {
		if current != nil {
			res.link(before, current)
		}
		if next < len(afters) {
			current = afters[next]
			next++
			res.link(before, current)
		}
	}

	return res
}

func (nearestPreceding) Resolve(info *trace.Info) *Result {
	res := newResult()
	befores := info.Before.Elements()

	var i int
	var last *trace.Element
	for _, after := range info.After.Elements() {
		for i < len(befores) && befores[i].Time < after.Time {
			last = befores[i]
			i++
		}
		if last != nil {
			res.link(last, after)
		}
	}

	return res
}

func (recorded) Resolve(info *trace.Info) *Result {
	res := newResult()
	for _, before := range info.Before.Elements() {
		for _, time := range info.Direct[before.Time] {
			if after := info.After.At(time); after != nil {
				res.link(before, after)
			}
		}
	}

	return res
}

func (distinct) Resolve(info *trace.Info) *Result {
	if info.Direct != nil {
		return recorded{}.Resolve(info)
	}

	res := newResult()
	for _, before := range info.Before.Elements() {
		for _, after := range info.After.Elements() {
			if trace.Equal(before.Value, after.Value) {
				res.link(before, after)
				break
			}
		}
	}

	return res
}

func (identity) Resolve(info *trace.Info) *Result {
	res := newResult()
	used := map[*trace.Element]struct{}{}
	for _, after := range info.After.Elements() {
		for _, before := range info.Before.Elements() {
			if _, ok := used[before]; ok {
				continue
			}
			if trace.Equal(before.Value, after.Value) {
				used[before] = struct{}{}
				res.link(before, after)
				break
			}
		}
	}

	return res
}

func (allToResult) Resolve(info *trace.Info) *Result {
	res := newResult()
	for _, before := range info.Before.Elements() {
		for _, after := range info.After.Elements() {
			res.link(before, after)
		}
	}

	return res
}

func (lastToResult) Resolve(info *trace.Info) *Result {
	res := newResult()
	befores := info.Before.Elements()
	if len(befores) == 0 {
		return res
	}

	for _, after := range info.After.Elements() {
		res.link(befores[len(befores)-1], after)
	}

	return res
}

func (equalToResult) Resolve(info *trace.Info) *Result {
	res := newResult()
	for _, after := range info.After.Elements() {
		for _, before := range info.Before.Elements() {
			if trace.Equal(before.Value, after.Value) {
				res.link(before, after)
			}
		}
	}

	return res
}
