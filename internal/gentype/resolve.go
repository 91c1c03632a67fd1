package gentype

import (
	"fmt"
	"strings"
)

var knownNames = map[string]*Type{
	"int":               Int,
	"java.lang.Integer": Int,
	"kotlin.Int":        Int,
	"long":              Long,
	"java.lang.Long":    Long,
	"kotlin.Long":       Long,
	"double":            Double,
	"java.lang.Double":  Double,
	"kotlin.Double":     Double,
	"boolean":           Boolean,
	"java.lang.Boolean": Boolean,
	"kotlin.Boolean":    Boolean,
	"String":            String,
	"java.lang.String":  String,
	"kotlin.String":     String,
	"void":              Void,
	"java.lang.Void":    Void,
	"kotlin.Unit":       Void,
	"any":               Any,
	"Object":            Any,
	"java.lang.Object":  Any,
	"kotlin.Any":        Any,
	"kotlin.Any?":       Any,
}

const (
	optionalClass       = "java.util.Optional"
	optionalIntClass    = "java.util.OptionalInt"
	optionalLongClass   = "java.util.OptionalLong"
	optionalDoubleClass = "java.util.OptionalDouble"
)

// Resolve maps a type name reported by the source analysis into a descriptor.
// Unrecognized names degrade to [Any].
func Resolve(name string) *Type {
	name = strings.TrimSpace(name)
	var params int
	if i := strings.IndexByte(name, '<'); i >= 0 {
		params = countTypeArgs(name[i:])
		name = name[:i]
	}

	if t, ok := knownNames[name]; ok {
		return t
	}
	if !isQualifiedName(name) {
		return Any
	}

	if name == optionalClass {
		params = 1
	}
	if params > 0 {
		return GenericClass(name, params)
	}

	return Class(name)
}

// countTypeArgs counts top level arguments in a "<A, B<C, D>>" list.
func countTypeArgs(args string) int {
	var depth int
	count := 1
	for _, r := range args {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 1 {
				count++
			}
		}
	}

	return count
}

// ResolveStream maps a stream type name into its element type. Numeric stream
// specializations are recognized first, everything else is [Any].
func ResolveStream(name string) *Type {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	if name == "void" || name == "kotlin.Unit" {
		return Void
	}

	switch name[strings.LastIndexByte(name, '.')+1:] {
	case "IntStream":
		return Int
	case "LongStream":
		return Long
	case "DoubleStream":
		return Double
	default:
		return Any
	}
}

// IsOptional checks if the type is one of optional wrappers.
func IsOptional(t *Type) bool {
	if t.kind != KindClass {
		return false
	}

	switch t.class {
	case optionalClass, optionalIntClass, optionalLongClass, optionalDoubleClass:
		return true
	default:
		return false
	}
}

// UnwrapOptional returns the type wrapped by an optional. It panics for types
// which are not optional wrappers.
func UnwrapOptional(t *Type) *Type {
	switch {
	case !IsOptional(t):
		panic(fmt.Errorf("type %s is not an optional", t))
	case t.class == optionalIntClass:
		return Int
	case t.class == optionalLongClass:
		return Long
	case t.class == optionalDoubleClass:
		return Double
	default:
		return Any
	}
}

func isQualifiedName(name string) bool {
	if name == "" {
		return false
	}

	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r == '_' || r == '$':
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9' && i > 0:
			default:
				return false
			}
		}
	}

	return true
}
