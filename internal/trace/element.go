package trace

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// ResultTime is a time of elements standing for a pipeline result. It is
// after any observation.
const ResultTime = math.MaxInt32

var elementSpace = uuid.MustParse("6f1c7a52-4d3e-4b8a-9c67-0d2f5b1e8a90")

// Element is a single observation of a value.
//
// Elements are identified by their ID, so equal values observed at
// different times are different elements.
type Element struct {
	ID    uuid.UUID
	Time  int
	Value Value
}

// NewElement creates an element observed at the given time. IDs are derived
// from times, so they are stable across decodings of the same trace.
func NewElement(time int, v Value) *Element {
	return &Element{
		ID:    uuid.NewSHA1(elementSpace, []byte(strconv.Itoa(time))),
		Time:  time,
		Value: v,
	}
}

// NewResultElement creates an element for a value produced by a terminal call.
func NewResultElement(v Value) *Element {
	return NewElement(ResultTime, v)
}

// Cmp orders elements by time.
func (e *Element) Cmp(other *Element) int {
	switch {
	case e.Time < other.Time:
		return -1
	case e.Time > other.Time:
		return 1
	default:
		return 0
	}
}

func (e *Element) String() string {
	return fmt.Sprintf("%s@%d", e.Value, e.Time)
}

// Order is a sequence of observations ordered by time.
type Order struct {
	elements []*Element
}

// NewOrder creates an order from the given elements.
func NewOrder(elements ...*Element) (*Order, error) {
	o := &Order{}
	for _, e := range elements {
		if err := o.Add(e); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Add appends an observation. Its time must be after times of observations
// added before.
func (o *Order) Add(e *Element) error {
	if n := len(o.elements); n > 0 {
		last := o.elements[n-1]
		switch {
		case last.Time == e.Time:
			return fmt.Errorf("%w: %d", ErrDuplicateTime, e.Time)
		case last.Time > e.Time:
			return fmt.Errorf("%w: %d goes after %d", ErrUnorderedTrace, e.Time, last.Time)
		}
	}

	o.elements = append(o.elements, e)
	return nil
}

// At returns an observation made at the given time or nil if there is no one.
func (o *Order) At(time int) *Element {
	i, found := slices.BinarySearchFunc(o.elements, time, func(e *Element, t int) int {
		return e.Cmp(&Element{Time: t})
	})
	if !found {
		return nil
	}

	return o.elements[i]
}

// Elements returns observations ordered by time.
func (o *Order) Elements() []*Element {
	return o.elements
}

// Times returns times of observations in order.
func (o *Order) Times() []int {
	res := make([]int, len(o.elements))
	for i, e := range o.elements {
		res[i] = e.Time
	}

	return res
}

// Len returns the number of observations.
func (o *Order) Len() int {
	return len(o.elements)
}
