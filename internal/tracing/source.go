package tracing

import (
	"slices"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/streamtrace/internal/chain"
)

// Location points to a part of a pipeline. Call is an index of the call in
// the pipeline or -1 for the qualifier.
type Location struct {
	Chain *chain.Chain
	Call  int
}

// SourceIndex looks up pipeline parts by source positions. Pipelines may be
// nested into arguments of other pipelines, the innermost part wins then.
type SourceIndex struct {
	tree *rbtree.Tree[*sourceSpan]
}

// NewSourceIndex creates an index of the given pipelines. Parts without
// a source range are skipped.
func NewSourceIndex(chains ...*chain.Chain) *SourceIndex {
	var spans []*sourceSpan
	for _, c := range chains {
		spans = appendSpan(spans, c.Qualifier.Range, Location{Chain: c, Call: -1})
		for i := 0; i < c.Length(); i++ {
			spans = appendSpan(spans, c.Call(i).Range, Location{Chain: c, Call: i})
		}
	}

	// Outer spans go first, so every span is attached into an existing container.
	slices.SortStableFunc(spans, func(a, b *sourceSpan) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return b.end - a.end
	})

	idx := &SourceIndex{tree: rbtree.New[*sourceSpan]()}
	for _, s := range spans {
		attachInto(idx.tree, s)
	}

	return idx
}

// At returns the innermost part covering the position.
func (idx *SourceIndex) At(pos int) (Location, bool) {
	res := searchSpan(idx.tree, pos)
	if res == nil {
		return Location{}, false
	}

	return descendSearch(res, pos).loc, true
}

func appendSpan(spans []*sourceSpan, r chain.Range, loc Location) []*sourceSpan {
	if r == (chain.Range{}) {
		return spans
	}

	return append(spans, &sourceSpan{
		start: r.Start,
		end:   r.End,
		loc:   loc,
	})
}
