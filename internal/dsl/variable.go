package dsl

import (
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Var is implemented by all kinds of variables.
type Var interface {
	Expression
	Base() *Variable
}

// Variable is a named and typed storage. Its identity is the pointer, which is
// used to track declarations.
type Variable struct {
	Name string
	Type *gentype.Type
}

// NewVariable creates a scalar variable.
func NewVariable(t *gentype.Type, name string) *Variable {
	return &Variable{
		Name: name,
		Type: t,
	}
}

// Base returns the variable itself.
func (v *Variable) Base() *Variable { return v }

// Call builds a call of the variable method.
func (v *Variable) Call(name string, args ...Expression) Expression {
	return Call(v, name, args...)
}

// Assign builds an assignment to the variable.
func (v *Variable) Assign(x Expression) Statement {
	return &AssignStmt{
		Var: v,
		X:   x,
	}
}

func (*Variable) isNode()       {}
func (*Variable) isStatement()  {}
func (*Variable) isExpression() {}

// ArrayVariable is an array typed variable.
type ArrayVariable struct {
	Variable
}

// NewArrayVariable creates an array variable with the given element type.
func NewArrayVariable(elem *gentype.Type, name string) *ArrayVariable {
	return &ArrayVariable{
		Variable: Variable{
			Name: name,
			Type: gentype.ArrayOf(elem),
		},
	}
}

// Elem returns the type of array items.
func (a *ArrayVariable) Elem() *gentype.Type { return a.Type.Elem() }

// Get builds an access to the item.
func (a *ArrayVariable) Get(index Expression) Expression {
	return &ArrayGetExpr{
		Array: a,
		Index: index,
	}
}

// Set builds an assignment of the item.
func (a *ArrayVariable) Set(index, value Expression) Statement {
	return &ArraySetStmt{
		Array: a,
		Index: index,
		Value: value,
	}
}

// DefaultDeclaration declares the array with the given size.
func (a *ArrayVariable) DefaultDeclaration(size Expression) *Declaration {
	return &Declaration{
		Var:  a,
		Init: NewSizedArray(a.Elem(), size),
	}
}

// MapVariable is a map typed variable.
type MapVariable struct {
	Variable
}

// NewMapVariable creates a map variable. Linked maps keep insertion order.
func NewMapVariable(key, value *gentype.Type, name string, linked bool) *MapVariable {
	t := gentype.MapOf(key, value)
	if linked {
		t = gentype.LinkedMapOf(key, value)
	}

	return &MapVariable{
		Variable: Variable{
			Name: name,
			Type: t,
		},
	}
}

// Key returns the type of keys.
func (m *MapVariable) Key() *gentype.Type { return m.Type.Key() }

// Value returns the type of values.
func (m *MapVariable) Value() *gentype.Type { return m.Type.Value() }

// Get builds a lookup by the key.
func (m *MapVariable) Get(key Expression) Expression {
	return &MapGetExpr{
		Map: m,
		Key: key,
	}
}

// Set builds a put of the value by the key.
func (m *MapVariable) Set(key, value Expression) Statement {
	return &MapSetStmt{
		Map:   m,
		Key:   key,
		Value: value,
	}
}

// Contains builds a check for the key.
func (m *MapVariable) Contains(key Expression) Expression {
	return &MapContainsExpr{
		Map: m,
		Key: key,
	}
}

// Size builds a number of map entries.
func (m *MapVariable) Size() Expression {
	return &MapSizeExpr{Map: m}
}

// Keys builds a collection of map keys.
func (m *MapVariable) Keys() Expression {
	return &MapKeysExpr{Map: m}
}

// ComputeIfAbsent builds a lookup which puts the supplied value when there is no one.
func (m *MapVariable) ComputeIfAbsent(key Expression, supplier *LambdaExpr) Expression {
	return &MapComputeIfAbsentExpr{
		Map:      m,
		Key:      key,
		Supplier: supplier,
	}
}

// DefaultDeclaration declares the map with an empty map of its type.
func (m *MapVariable) DefaultDeclaration() *Declaration {
	return &Declaration{
		Var:  m,
		Init: Default(m.Type),
	}
}

// ConvertToArray builds a block which declares an array variable with the
// given name and stores there an array of two arrays: map keys and map values,
// both in the order of iteration.
func (m *MapVariable) ConvertToArray(name string) *Block {
	result := NewArrayVariable(gentype.Any, name)
	size := NewVariable(gentype.Int, "size")
	keys := NewArrayVariable(m.Key(), "keys")
	values := NewArrayVariable(m.Value(), "values")
	i := NewVariable(gentype.Int, "i")
	key := NewVariable(m.Key(), "key")

	return NewBlock(func(b *Block) {
		b.Declare(result, Default(result.Type), true)
		b.Scope(func(b *Block) {
			b.Declare(size, m.Size(), false)
			b.Statement(keys.DefaultDeclaration(size))
			b.Statement(values.DefaultDeclaration(size))
			b.Declare(i, Int(0), true)
			b.ForEachLoop(key, m.Keys(), func(b *Block) {
				b.Statement(keys.Set(i, key))
				b.Statement(values.Set(i, m.Get(key)))
				b.Statement(Increment(i))
			})
			b.Statement(result.Assign(NewArray(gentype.Any, keys, values)))
		})
	})
}
