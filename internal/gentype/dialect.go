package gentype

import (
	"fmt"
	"strings"
)

// Dialect spells type descriptors in a certain source language.
type Dialect struct {
	name   string
	kotlin bool
	basic  map[Kind]spelling
}

type spelling struct {
	variable string
	generic  string
	def      string
}

// Java spells types the way java sources do.
var Java = &Dialect{
	name: "java",
	basic: map[Kind]spelling{
		KindInt:       {"int", "java.lang.Integer", "0"},
		KindLong:      {"long", "java.lang.Long", "0L"},
		KindDouble:    {"double", "java.lang.Double", "0."},
		KindBoolean:   {"boolean", "java.lang.Boolean", "false"},
		KindString:    {"java.lang.String", "java.lang.String", `""`},
		KindVoid:      {"void", "java.lang.Void", "null"},
		KindAny:       {"java.lang.Object", "java.lang.Object", "new java.lang.Object()"},
		KindTime:      {timeClass, timeClass, "new " + timeClass + "()"},
		KindException: {"java.lang.Throwable", "java.lang.Throwable", "null"},
	},
}

// Kotlin spells types the way kotlin sources do.
var Kotlin = &Dialect{
	name:   "kotlin",
	kotlin: true,
	basic: map[Kind]spelling{
		KindInt:       {"kotlin.Int", "kotlin.Int", "0"},
		KindLong:      {"kotlin.Long", "kotlin.Long", "0L"},
		KindDouble:    {"kotlin.Double", "kotlin.Double", "0.0"},
		KindBoolean:   {"kotlin.Boolean", "kotlin.Boolean", "false"},
		KindString:    {"kotlin.String", "kotlin.String", `""`},
		KindVoid:      {"kotlin.Unit", "kotlin.Unit", "kotlin.Unit"},
		KindAny:       {"kotlin.Any?", "kotlin.Any?", "null"},
		KindTime:      {timeClass, timeClass, timeClass + "()"},
		KindException: {"kotlin.Throwable?", "kotlin.Throwable?", "null"},
	},
}

const timeClass = "java.util.concurrent.atomic.AtomicInteger"

// Name returns dialect name.
func (d *Dialect) Name() string { return d.name }

// VariableTypeName returns a name to be used in variable declarations.
func (d *Dialect) VariableTypeName(t *Type) string {
	if s, ok := d.basic[t.kind]; ok {
		return s.variable
	}

	switch t.kind {
	case KindClass:
		if !d.kotlin {
			return t.class
		}
		if t.params == 0 {
			return t.class + "?"
		}
		return t.class + "<" + strings.Repeat("*, ", t.params-1) + "*>?"
	case KindArray:
		return d.arrayName(t.elem)
	case KindList:
		if d.kotlin {
			return "kotlin.collections.MutableList<" + d.GenericTypeName(t.elem) + ">"
		}
		return "java.util.List<" + d.GenericTypeName(t.elem) + ">"
	case KindMap:
		kv := d.GenericTypeName(t.key) + ", " + d.GenericTypeName(t.value)
		if d.kotlin {
			return "kotlin.collections.MutableMap<" + kv + ">"
		}
		return "java.util.Map<" + kv + ">"
	case KindPredicate:
		return d.predicateName(t.elem)
	default:
		panic(fmt.Errorf("%s dialect cannot spell type of kind %s", d.name, t.kind))
	}
}

// GenericTypeName returns a name to be used as a type parameter. It differs from
// the variable type name for primitive types only.
func (d *Dialect) GenericTypeName(t *Type) string {
	if s, ok := d.basic[t.kind]; ok {
		return s.generic
	}

	return d.VariableTypeName(t)
}

// DefaultValue returns an expression producing a value assignable to a variable of the type.
func (d *Dialect) DefaultValue(t *Type) string {
	if s, ok := d.basic[t.kind]; ok {
		return s.def
	}

	switch t.kind {
	case KindClass:
		return "null"
	case KindArray:
		return d.NewArray(t.elem, nil)
	case KindList:
		if d.kotlin {
			return "kotlin.collections.mutableListOf<" + d.GenericTypeName(t.elem) + ">()"
		}
		return "new java.util.ArrayList<" + d.GenericTypeName(t.elem) + ">()"
	case KindMap:
		kv := d.GenericTypeName(t.key) + ", " + d.GenericTypeName(t.value)
		switch {
		case d.kotlin && t.linked:
			return "kotlin.collections.linkedMapOf<" + kv + ">()"
		case d.kotlin:
			return "kotlin.collections.mutableMapOf<" + kv + ">()"
		case t.linked:
			return "new java.util.LinkedHashMap<" + kv + ">()"
		default:
			return "new java.util.HashMap<" + kv + ">()"
		}
	case KindPredicate:
		if d.kotlin {
			return d.predicateName(t.elem) + " { true }"
		}
		return "x -> true"
	default:
		panic(fmt.Errorf("%s dialect has no default value for type of kind %s", d.name, t.kind))
	}
}

// NewArray returns an expression creating an array with the given items.
func (d *Dialect) NewArray(elem *Type, items []string) string {
	list := strings.Join(items, ", ")
	if !d.kotlin {
		return "new " + d.VariableTypeName(elem) + "[] {" + list + "}"
	}

	if prefix := kotlinPrimitivePrefix(elem); prefix != "" {
		return "kotlin." + strings.ToLower(prefix) + "ArrayOf(" + list + ")"
	}
	return "kotlin.arrayOf<" + d.GenericTypeName(elem) + ">(" + list + ")"
}

// NewSizedArray returns an expression creating an array of the given size filled with defaults.
func (d *Dialect) NewSizedArray(elem *Type, size string) string {
	if !d.kotlin {
		name := d.VariableTypeName(elem)
		// Dimensions of nested arrays go after the sized one.
		if i := strings.Index(name, "[]"); i >= 0 {
			return "new " + name[:i] + "[" + size + "]" + name[i:]
		}
		return "new " + name + "[" + size + "]"
	}

	if prefix := kotlinPrimitivePrefix(elem); prefix != "" {
		return "kotlin." + prefix + "Array(" + size + ")"
	}
	return "kotlin.Array<" + d.GenericTypeName(elem) + ">(" + size + ") { " + d.DefaultValue(elem) + " }"
}

func (d *Dialect) arrayName(elem *Type) string {
	if !d.kotlin {
		return d.VariableTypeName(elem) + "[]"
	}

	if prefix := kotlinPrimitivePrefix(elem); prefix != "" {
		return "kotlin." + prefix + "Array"
	}
	return "kotlin.Array<" + d.GenericTypeName(elem) + ">"
}

func (d *Dialect) predicateName(elem *Type) string {
	switch elem.kind {
	case KindInt:
		return "java.util.function.IntPredicate"
	case KindLong:
		return "java.util.function.LongPredicate"
	case KindDouble:
		return "java.util.function.DoublePredicate"
	default:
		return "java.util.function.Predicate<" + d.GenericTypeName(elem) + ">"
	}
}

func kotlinPrimitivePrefix(t *Type) string {
	switch t.kind {
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindBoolean:
		return "Boolean"
	default:
		return ""
	}
}
