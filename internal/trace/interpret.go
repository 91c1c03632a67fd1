package trace

import (
	"fmt"

	"github.com/sirkon/streamtrace/internal/chain"
)

// Peek decodes values recorded around a call:
//
//	[[beforeTimes, beforeValues], [afterTimes, afterValues]]
func Peek(call *chain.Call, v Value) (*Info, error) {
	items, err := arrayItems(v, 2, "peek trace")
	if err != nil {
		return nil, err
	}

	before, err := decodeOrder(items[0])
	if err != nil {
		return nil, fmt.Errorf("decode values before %s: %w", call.Name, err)
	}
	after, err := decodeOrder(items[1])
	if err != nil {
		return nil, fmt.Errorf("decode values after %s: %w", call.Name, err)
	}

	return &Info{
		Call:   call,
		Before: before,
		After:  after,
	}, nil
}

// Distinct decodes a distinct call trace, which is a peek trace with a
// mapping of times before the call onto times after it:
//
//	[peekTrace, [beforeTimes, afterTimes]]
func Distinct(call *chain.Call, v Value) (*Info, error) {
	items, err := arrayItems(v, 2, "distinct trace")
	if err != nil {
		return nil, err
	}

	info, err := Peek(call, items[0])
	if err != nil {
		return nil, err
	}

	pairs, err := arrayItems(items[1], 2, "distinct mapping")
	if err != nil {
		return nil, err
	}
	from, err := decodeTimes(pairs[0])
	if err != nil {
		return nil, fmt.Errorf("decode mapping keys: %w", err)
	}
	to, err := decodeTimes(pairs[1])
	if err != nil {
		return nil, fmt.Errorf("decode mapping values: %w", err)
	}
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: distinct mapping has %d keys and %d values", ErrUnexpectedValue, len(from), len(to))
	}

	info.Direct = map[int][]int{}
	info.Reverse = map[int][]int{}
	for i, b := range from {
		a := to[i]
		info.Direct[b] = append(info.Direct[b], a)
		info.Reverse[a] = append(info.Reverse[a], b)
	}

	return info, nil
}

// ResultTerminal decodes a trace of a terminal call producing a value:
//
//	[peekTrace, [result]]
//
// Values after the call are replaced with the result.
func ResultTerminal(call *chain.Call, v Value) (*Info, error) {
	items, err := arrayItems(v, 2, "terminal trace")
	if err != nil {
		return nil, err
	}

	info, err := Peek(call, items[0])
	if err != nil {
		return nil, err
	}

	result, err := arrayItems(items[1], 1, "terminal result")
	if err != nil {
		return nil, err
	}
	info.After, err = NewOrder(NewResultElement(result[0]))
	if err != nil {
		return nil, err
	}

	return info, nil
}

// Optional decodes a trace of a terminal call producing an optional value:
//
//	[peekTrace, [[isPresent], [value]]]
//
// Values after the call are replaced with the value if it is present.
func Optional(call *chain.Call, v Value) (*Info, error) {
	items, err := arrayItems(v, 2, "optional terminal trace")
	if err != nil {
		return nil, err
	}

	info, err := Peek(call, items[0])
	if err != nil {
		return nil, err
	}

	opt, err := arrayItems(items[1], 2, "optional result")
	if err != nil {
		return nil, err
	}
	present, err := arrayItems(opt[0], 1, "optional presence")
	if err != nil {
		return nil, err
	}
	isPresent, ok := present[0].(Bool)
	if !ok {
		return nil, fmt.Errorf("%w: optional presence must be a boolean, got %s", ErrUnexpectedValue, present[0])
	}
	value, err := arrayItems(opt[1], 1, "optional value")
	if err != nil {
		return nil, err
	}

	info.After, _ = NewOrder()
	if isPresent {
		info.After, err = NewOrder(NewResultElement(value[0]))
		if err != nil {
			return nil, err
		}
	}

	return info, nil
}

// Match decodes a trace of anyMatch, allMatch or noneMatch calls:
//
//	[peekTrace, [result]]
//
// where the peek trace holds values before and after the filter made of the
// match predicate. Values before the filter are the ones the call consumed.
// When some value passed the filter it stopped the evaluation and it is the
// only one bound to the result. Otherwise every consumed value contributed
// to the result.
func Match(call *chain.Call, v Value) (*Info, error) {
	items, err := arrayItems(v, 2, "match trace")
	if err != nil {
		return nil, err
	}

	filter, err := Peek(call, items[0])
	if err != nil {
		return nil, err
	}
	result, err := arrayItems(items[1], 1, "match result")
	if err != nil {
		return nil, err
	}
	if _, ok := result[0].(Bool); !ok {
		return nil, fmt.Errorf("%w: match result must be a boolean, got %s", ErrUnexpectedValue, result[0])
	}

	// A value passed the filter is observed right after it was observed before the filter.
	stoppers := filter.Before.Elements()
	if filter.After.Len() > 0 {
		stoppers = make([]*Element, 0, filter.After.Len())
		for _, e := range filter.After.Elements() {
			src := filter.Before.At(e.Time - 1)
			if src == nil {
				return nil, fmt.Errorf("%w: value %s passed the match filter was not observed before it", ErrUnexpectedValue, e)
			}
			stoppers = append(stoppers, src)
		}
	}

	after, err := NewOrder(NewResultElement(result[0]))
	if err != nil {
		return nil, err
	}

	info := &Info{
		Call:    call,
		Before:  filter.Before,
		After:   after,
		Direct:  map[int][]int{},
		Reverse: map[int][]int{},
	}
	for _, e := range stoppers {
		info.Direct[e.Time] = []int{ResultTime}
		info.Reverse[ResultTime] = append(info.Reverse[ResultTime], e.Time)
	}

	return info, nil
}

func arrayItems(v Value, n int, what string) ([]Value, error) {
	arr, ok := v.(*Array)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array, got %s", ErrUnexpectedValue, what, v)
	}
	if arr.Len() != n {
		return nil, fmt.Errorf("%w: %s must have %d items, got %d", ErrUnexpectedValue, what, n, arr.Len())
	}

	return arr.Items, nil
}

func decodeOrder(v Value) (*Order, error) {
	items, err := arrayItems(v, 2, "recorded values")
	if err != nil {
		return nil, err
	}

	times, err := decodeTimes(items[0])
	if err != nil {
		return nil, err
	}
	values, ok := items[1].(*Array)
	if !ok {
		return nil, fmt.Errorf("%w: values must be an array, got %s", ErrUnexpectedValue, items[1])
	}
	if len(times) != values.Len() {
		return nil, fmt.Errorf("%w: got %d times and %d values", ErrUnexpectedValue, len(times), values.Len())
	}

	res, _ := NewOrder()
	for i, time := range times {
		if err := res.Add(NewElement(time, values.Items[i])); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func decodeTimes(v Value) ([]int, error) {
	arr, ok := v.(*Array)
	if !ok {
		return nil, fmt.Errorf("%w: times must be an array, got %s", ErrUnexpectedValue, v)
	}

	res := make([]int, arr.Len())
	for i, item := range arr.Items {
		t, ok := item.(Int)
		if !ok {
			return nil, fmt.Errorf("%w: time must be an int, got %s", ErrUnexpectedValue, item)
		}
		res[i] = int(t)
	}

	return res, nil
}
