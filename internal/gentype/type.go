package gentype

import (
	"fmt"
	"strings"
)

// Kind enumerates varieties of type descriptors.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindLong
	KindDouble
	KindBoolean
	KindString
	KindVoid
	KindAny
	KindClass
	KindArray
	KindList
	KindMap
	KindPredicate
	KindTime
	KindException
)

var kindNames = map[Kind]string{
	KindInt:       "int",
	KindLong:      "long",
	KindDouble:    "double",
	KindBoolean:   "boolean",
	KindString:    "string",
	KindVoid:      "void",
	KindAny:       "any",
	KindClass:     "class",
	KindArray:     "array",
	KindList:      "list",
	KindMap:       "map",
	KindPredicate: "predicate",
	KindTime:      "time",
	KindException: "exception",
}

func (k Kind) String() string {
	v, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// Type is a language neutral type descriptor. Spelling of a type is a business of a [Dialect].
//
// Values are immutable once constructed, thus can be shared freely.
type Type struct {
	kind   Kind
	class  string
	elem   *Type
	key    *Type
	value  *Type
	linked bool
	params int
}

// Registry of basic types. These are never mutated.
var (
	Int       = &Type{kind: KindInt}
	Long      = &Type{kind: KindLong}
	Double    = &Type{kind: KindDouble}
	Boolean   = &Type{kind: KindBoolean}
	String    = &Type{kind: KindString}
	Void      = &Type{kind: KindVoid}
	Any       = &Type{kind: KindAny}
	Time      = &Type{kind: KindTime}
	Exception = &Type{kind: KindException}
)

// Class creates a descriptor for a class type with the given fully qualified name.
func Class(name string) *Type {
	return &Type{kind: KindClass, class: name}
}

// GenericClass creates a descriptor for a generic class type. Type arguments
// themselves are not tracked, only their number.
func GenericClass(name string, params int) *Type {
	return &Type{kind: KindClass, class: name, params: params}
}

// ArrayOf creates an array type with the given element type.
func ArrayOf(elem *Type) *Type {
	return &Type{kind: KindArray, elem: elem}
}

// ListOf creates a list type with the given element type.
func ListOf(elem *Type) *Type {
	return &Type{kind: KindList, elem: elem}
}

// MapOf creates a hash map type.
func MapOf(key, value *Type) *Type {
	return &Type{kind: KindMap, key: key, value: value}
}

// LinkedMapOf creates an insertion ordered map type.
func LinkedMapOf(key, value *Type) *Type {
	return &Type{kind: KindMap, key: key, value: value, linked: true}
}

// PredicateOf creates a type of a filtering function over elements of the given type.
func PredicateOf(elem *Type) *Type {
	return &Type{kind: KindPredicate, elem: elem}
}

// Kind returns the variety of the type.
func (t *Type) Kind() Kind { return t.kind }

// ClassName returns a fully qualified name for class types and an empty string otherwise.
func (t *Type) ClassName() string { return t.class }

// Elem returns element type of arrays, lists and predicates.
func (t *Type) Elem() *Type { return t.elem }

// Key returns key type of a map.
func (t *Type) Key() *Type { return t.key }

// Value returns value type of a map.
func (t *Type) Value() *Type { return t.value }

// Params returns the number of type parameters of a generic class.
func (t *Type) Params() int { return t.params }

// Linked tells if a map keeps insertion order.
func (t *Type) Linked() bool { return t.linked }

// IsPrimitive tells if values of this type are not boxed by default.
func (t *Type) IsPrimitive() bool {
	switch t.kind {
	case KindInt, KindLong, KindDouble, KindBoolean:
		return true
	default:
		return false
	}
}

// Equal checks structural equality of two type descriptors.
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || a.class != b.class || a.linked != b.linked || a.params != b.params {
		return false
	}

	return Equal(a.elem, b.elem) && Equal(a.key, b.key) && Equal(a.value, b.value)
}

// String returns a language neutral representation for diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.kind {
	case KindClass:
		return t.class
	case KindArray:
		return t.elem.String() + "[]"
	case KindList:
		return "list<" + t.elem.String() + ">"
	case KindPredicate:
		return "predicate<" + t.elem.String() + ">"
	case KindMap:
		var b strings.Builder
		if t.linked {
			b.WriteString("linked")
		}
		b.WriteString("map<")
		b.WriteString(t.key.String())
		b.WriteString(", ")
		b.WriteString(t.value.String())
		b.WriteByte('>')
		return b.String()
	default:
		return t.kind.String()
	}
}
