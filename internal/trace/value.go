package trace

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is a runtime value recorded by the instrumented code.
type Value interface {
	isValue()
	String() string
}

// Null is a null reference.
type Null struct{}

// Int is a 32 bit integer.
type Int int32

// Long is a 64 bit integer.
type Long int64

// Double is a floating point number.
type Double float64

// Bool is a boolean.
type Bool bool

// String is a string.
type String string

// Object is a reference to an object living in the debuggee. Objects are equal
// when they are the same object.
type Object struct {
	Type string `yaml:"type"`
	ID   int64  `yaml:"id"`
	Text string `yaml:"text"`
}

// Array is an array with its element type name.
type Array struct {
	Elem  string
	Items []Value
}

func (Null) isValue()    {}
func (Int) isValue()     {}
func (Long) isValue()    {}
func (Double) isValue()  {}
func (Bool) isValue()    {}
func (String) isValue()  {}
func (*Object) isValue() {}
func (*Array) isValue()  {}

func (Null) String() string     { return "null" }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Long) String() string   { return strconv.FormatInt(int64(v), 10) + "L" }
func (v Double) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v String) String() string { return strconv.Quote(string(v)) }

func (v *Object) String() string {
	if v.Text != "" {
		return v.Text
	}
	return fmt.Sprintf("%s@%d", v.Type, v.ID)
}

func (v *Array) String() string {
	items := make([]string, len(v.Items))
	for i, item := range v.Items {
		items[i] = item.String()
	}

	return v.Elem + "[" + strings.Join(items, ", ") + "]"
}

// Len returns the number of items in the array.
func (v *Array) Len() int { return len(v.Items) }

// Equal checks if values are equal the way the debuggee sees them: primitives
// and strings by content, objects by identity, arrays item by item.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		return ok && x.ID == y.ID && x.Type == y.Type
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// DecodeValue decodes a value from its YAML representation:
//
//	~                               # null
//	12                              # int
//	!long 12                        # long
//	1.5                             # double
//	true                            # boolean
//	"text"                          # string
//	{type: Person, id: 7, text: ..} # object reference
//	!int [1, 2, 3]                  # array with the element type in the tag
func DecodeValue(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("%w: empty document", ErrUnexpectedValue)
		}
		return DecodeValue(n.Content[0])
	case yaml.AliasNode:
		return DecodeValue(n.Alias)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		var obj Object
		if err := n.Decode(&obj); err != nil {
			return nil, fmt.Errorf("decode object reference at line %d: %w", n.Line, err)
		}
		return &obj, nil
	case yaml.SequenceNode:
		res := &Array{Elem: "any"}
		if tag := n.ShortTag(); strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
			res.Elem = tag[1:]
		}
		for i, item := range n.Content {
			v, err := DecodeValue(item)
			if err != nil {
				return nil, fmt.Errorf("decode array item %d: %w", i, err)
			}
			res.Items = append(res.Items, v)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: unsupported yaml node kind %d at line %d", ErrUnexpectedValue, n.Kind, n.Line)
	}
}

func decodeScalar(n *yaml.Node) (Value, error) {
	switch tag := n.ShortTag(); tag {
	case "!!null":
		return Null{}, nil
	case "!!int", "!int":
		v, err := strconv.ParseInt(n.Value, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("decode int at line %d: %w", n.Line, err)
		}
		return Int(v), nil
	case "!long":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("decode long at line %d: %w", n.Line, err)
		}
		return Long(v), nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode double at line %d: %w", n.Line, err)
		}
		return Double(v), nil
	case "!double":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("decode double at line %d: %w", n.Line, err)
		}
		return Double(v), nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode boolean at line %d: %w", n.Line, err)
		}
		return Bool(v), nil
	case "!!str", "!string":
		return String(n.Value), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scalar tag %s at line %d", ErrUnexpectedValue, tag, n.Line)
	}
}
