package chain

import (
	"fmt"
)

// Kind is a variety of a pipeline call. The set is closed and every place
// which depends on a kind must handle all of them.
type Kind int

const (
	kindInvalid Kind = iota

	KindFilter
	KindMap
	KindFlatMap
	KindDistinct
	KindSorted
	KindPeek
	KindLimit
	KindSkip
	KindParallel
	KindSequential
	KindPassThrough
	KindIntermediate

	KindForEach
	KindCollect
	KindReduce
	KindCount
	KindSum
	KindAverage
	KindToArray
	KindMin
	KindMax
	KindFindFirst
	KindFindAny
	KindAnyMatch
	KindAllMatch
	KindNoneMatch
	KindTerminal
)

// Kinds returns all valid kinds.
func Kinds() []Kind {
	res := make([]Kind, 0, KindTerminal)
	for k := KindFilter; k <= KindTerminal; k++ {
		res = append(res, k)
	}

	return res
}

// String returns a short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindMap:
		return "map"
	case KindFlatMap:
		return "flat-map"
	case KindDistinct:
		return "distinct"
	case KindSorted:
		return "sorted"
	case KindPeek:
		return "peek"
	case KindLimit:
		return "limit"
	case KindSkip:
		return "skip"
	case KindParallel:
		return "parallel"
	case KindSequential:
		return "sequential"
	case KindPassThrough:
		return "pass-through"
	case KindIntermediate:
		return "intermediate"
	case KindForEach:
		return "for-each"
	case KindCollect:
		return "collect"
	case KindReduce:
		return "reduce"
	case KindCount:
		return "count"
	case KindSum:
		return "sum"
	case KindAverage:
		return "average"
	case KindToArray:
		return "to-array"
	case KindMin:
		return "min"
	case KindMax:
		return "max"
	case KindFindFirst:
		return "find-first"
	case KindFindAny:
		return "find-any"
	case KindAnyMatch:
		return "any-match"
	case KindAllMatch:
		return "all-match"
	case KindNoneMatch:
		return "none-match"
	case KindTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("kind-unknown(%d)", k)
	}
}

// Description returns the human-readable explanation of the kind.
func (k Kind) Description() string {
	switch k {
	case KindFilter:
		return "Passes some of elements through keeping their order."
	case KindMap:
		return "Produces exactly one element for every element."
	case KindFlatMap:
		return "Produces any number of elements for every element."
	case KindDistinct:
		return "Passes only the first one of equal elements."
	case KindSorted:
		return "Consumes all elements, then emits them in another order."
	case KindPeek:
		return "Passes elements as is calling an action on each."
	case KindLimit:
		return "Passes at most given number of first elements."
	case KindSkip:
		return "Drops given number of first elements."
	case KindParallel:
		return "Switches the stream into parallel mode."
	case KindSequential:
		return "Switches the stream into sequential mode."
	case KindPassThrough:
		return "Passes elements as is changing stream properties."
	case KindIntermediate:
		return "Intermediate call of unknown semantics."
	case KindForEach:
		return "Consumes elements producing no value."
	case KindCollect:
		return "Accumulates elements into a container."
	case KindReduce:
		return "Folds elements into a single value."
	case KindCount:
		return "Counts elements."
	case KindSum:
		return "Sums numeric elements."
	case KindAverage:
		return "Averages numeric elements, the result is optional."
	case KindToArray:
		return "Collects elements into an array or a list."
	case KindMin:
		return "Picks the least element, the result is optional."
	case KindMax:
		return "Picks the greatest element, the result is optional."
	case KindFindFirst:
		return "Picks the first element, the result is optional."
	case KindFindAny:
		return "Picks some element, the result is optional."
	case KindAnyMatch:
		return "Checks if any element satisfies a predicate."
	case KindAllMatch:
		return "Checks if all elements satisfy a predicate."
	case KindNoneMatch:
		return "Checks if no element satisfies a predicate."
	case KindTerminal:
		return "Terminal call of unknown semantics."
	default:
		return "Unknown kind."
	}
}

// IsTerminal tells if the kind ends a pipeline.
func (k Kind) IsTerminal() bool {
	return k >= KindForEach && k <= KindTerminal
}

// UnmarshalText for setting values with configs.
func (k *Kind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for _, v := range Kinds() {
		if v.String() == text {
			*k = v
			return nil
		}
	}

	return fmt.Errorf("%w %q", ErrUnknownKind, text)
}

// MarshalText to keep kinds as text.
func (k Kind) MarshalText() ([]byte, error) {
	if k <= kindInvalid || k > KindTerminal {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, k)
	}

	return []byte(k.String()), nil
}

var intermediateNames = map[string]Kind{
	"filter":          KindFilter,
	"takeWhile":       KindFilter,
	"dropWhile":       KindFilter,
	"map":             KindMap,
	"mapToInt":        KindMap,
	"mapToLong":       KindMap,
	"mapToDouble":     KindMap,
	"mapToObj":        KindMap,
	"asLongStream":    KindMap,
	"asDoubleStream":  KindMap,
	"flatMap":         KindFlatMap,
	"flatMapToInt":    KindFlatMap,
	"flatMapToLong":   KindFlatMap,
	"flatMapToDouble": KindFlatMap,
	"flatMapToObj":    KindFlatMap,
	"mapMulti":        KindFlatMap,
	"distinct":        KindDistinct,
	"sorted":          KindSorted,
	"peek":            KindPeek,
	"limit":           KindLimit,
	"skip":            KindSkip,
	"parallel":        KindParallel,
	"sequential":      KindSequential,
	"boxed":           KindPassThrough,
	"unordered":       KindPassThrough,
	"onClose":         KindPassThrough,
}

var terminalNames = map[string]Kind{
	"forEach":        KindForEach,
	"forEachOrdered": KindForEach,
	"collect":        KindCollect,
	"reduce":         KindReduce,
	"count":          KindCount,
	"sum":            KindSum,
	"average":        KindAverage,
	"toArray":        KindToArray,
	"toList":         KindToArray,
	"min":            KindMin,
	"max":            KindMax,
	"findFirst":      KindFindFirst,
	"findAny":        KindFindAny,
	"anyMatch":       KindAnyMatch,
	"allMatch":       KindAllMatch,
	"noneMatch":      KindNoneMatch,
}

// ClassifyIntermediate returns a kind of intermediate call by its name.
// Unknown names are [KindIntermediate].
func ClassifyIntermediate(name string) Kind {
	if k, ok := intermediateNames[name]; ok {
		return k
	}

	return KindIntermediate
}

// ClassifyTerminal returns a kind of terminal call by its name.
// Unknown names are [KindTerminal].
func ClassifyTerminal(name string) Kind {
	if k, ok := terminalNames[name]; ok {
		return k
	}

	return KindTerminal
}
