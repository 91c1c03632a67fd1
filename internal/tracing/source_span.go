package tracing

import (
	"fmt"

	"github.com/sirkon/rbtree"
)

// sourceSpan stores a [start,end] span of a pipeline part and a nested tree
// of spans it contains.
type sourceSpan struct {
	start int
	end   int

	loc      Location
	children *rbtree.Tree[*sourceSpan]
}

// Cmp orders disjoint spans by position. Overlapping spans are equal: they
// must be in containment relation and attachInto resolves which one is
// the container.
func (n *sourceSpan) Cmp(other *sourceSpan) int {
	if n.end < other.start {
		return -1
	}
	if n.start > other.end {
		return 1
	}
	return 0
}

func contains(a, b *sourceSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// attachInto inserts s into t:
//   - a span disjoint with everything becomes a new entry of t
//   - a span containing the overlapping entry r takes its place and r moves into its children
//   - a span contained in r goes into r children
func attachInto(t *rbtree.Tree[*sourceSpan], s *sourceSpan) {
	r := t.InsertReturn(s)
	if r == s {
		return
	}

	if contains(r, s) {
		if r.children == nil {
			r.children = rbtree.New[*sourceSpan]()
		}
		attachInto(r.children, s)
		return
	}

	if contains(s, r) {
		old := *r
		*r = *s
		r.children = rbtree.New[*sourceSpan]()
		attachInto(r.children, &old)
		return
	}

	panic(fmt.Errorf("span [%d, %d] partially overlaps [%d, %d]", s.start, s.end, r.start, r.end))
}

func descendSearch(n *sourceSpan, pos int) *sourceSpan {
	if n.children == nil {
		return n
	}

	child := searchSpan(n.children, pos)
	if child == nil {
		return n
	}

	return descendSearch(child, pos)
}

// searchSpan returns the span of t covering pos. Spans of a single tree are
// disjoint and they are iterated in ascending order.
func searchSpan(t *rbtree.Tree[*sourceSpan], pos int) *sourceSpan {
	probe := &sourceSpan{start: pos, end: pos}
	for s := range t.Iter() {
		switch s.Cmp(probe) {
		case 0:
			return s
		case 1:
			return nil
		}
	}

	return nil
}
