package dsl

import (
	"strconv"

	"github.com/sirkon/streamtrace/internal/gentype"
)

// Text is a verbatim piece of code.
//
//	x -> x > 1 // Code: "x -> x > 1"
type Text struct {
	Code string
}

// Empty is an expression which renders to nothing. Calls and property
// accesses on it are empty as well.
type Empty struct{}

// EmptyExpr is the only value of [Empty] which should be used.
var EmptyExpr Expression = Empty{}

// NullExpr is a null literal, the same in all supported languages.
var NullExpr Expression = &Text{Code: "null"}

// CallExpr is a method call on a receiver or a free function call when there is no receiver.
//
//	time.incrementAndGet() // Receiver: <VarRef>(time), Name: "incrementAndGet"
//	java.lang.System.nanoTime() // Receiver: nil, Name: "java.lang.System.nanoTime"
type CallExpr struct {
	Receiver Expression
	Name     string
	Args     []Expression
}

// PropertyExpr is an access to a property of the receiver.
type PropertyExpr struct {
	Receiver Expression
	Name     string
}

// LambdaExpr is an anonymous function of at most one argument.
type LambdaExpr struct {
	Arg  string
	Body *Block
}

// NewArrayExpr creates an array from the given items.
type NewArrayExpr struct {
	Elem  *gentype.Type
	Items []Expression
}

// NewSizedArrayExpr creates an array of the given size filled with default values.
type NewSizedArrayExpr struct {
	Elem *gentype.Type
	Size Expression
}

// DefaultExpr is a default value of a type.
type DefaultExpr struct {
	Type *gentype.Type
}

// NotExpr is a logical negation.
type NotExpr struct {
	X Expression
}

// BinaryOp enumerates binary operators.
type BinaryOp string

const (
	OpLess  BinaryOp = "<"
	OpEqual BinaryOp = "=="
	OpPlus  BinaryOp = "+"
	OpMinus BinaryOp = "-"
	OpAnd   BinaryOp = "&&"
)

// BinaryExpr is an infix operation.
type BinaryExpr struct {
	Op BinaryOp
	X  Expression
	Y  Expression
}

// IncrementExpr is a postfix increment.
type IncrementExpr struct {
	X Expression
}

// ConvertExpr is a conversion of a value into the given type.
//
//	(java.util.function.IntPredicate) (x -> x > 1) // Java
//	java.util.function.IntPredicate({ x -> x > 1 }) // Kotlin
type ConvertExpr struct {
	To *gentype.Type
	X  Expression
}

// CondExpr is a conditional expression.
//
//	x > 0 ? x : 0 // Java
//	if (x > 0) x else 0 // Kotlin
type CondExpr struct {
	Cond Expression
	Then Expression
	Else Expression
}

// MapGetExpr is a lookup of a value by the key.
type MapGetExpr struct {
	Map *MapVariable
	Key Expression
}

// MapContainsExpr checks if the map has the key.
type MapContainsExpr struct {
	Map *MapVariable
	Key Expression
}

// MapSizeExpr is a number of entries in the map.
type MapSizeExpr struct {
	Map *MapVariable
}

// MapKeysExpr is a collection of the map keys.
type MapKeysExpr struct {
	Map *MapVariable
}

// MapComputeIfAbsentExpr returns a value by the key, putting a value built by
// the supplier before if there was no value yet. The supplier argument is not
// used by the supplier body.
type MapComputeIfAbsentExpr struct {
	Map      *MapVariable
	Key      Expression
	Supplier *LambdaExpr
}

// ArrayGetExpr is an indexed access to an array item.
type ArrayGetExpr struct {
	Array Expression
	Index Expression
}

// Call builds a method call. A call on [EmptyExpr] is empty. Arguments and
// their types are not validated.
func Call(receiver Expression, name string, args ...Expression) Expression {
	if _, ok := receiver.(Empty); ok {
		return EmptyExpr
	}

	return &CallExpr{
		Receiver: receiver,
		Name:     name,
		Args:     args,
	}
}

// Func builds a free function call.
func Func(name string, args ...Expression) Expression {
	return &CallExpr{
		Name: name,
		Args: args,
	}
}

// Property builds a property access. A property of [EmptyExpr] is empty.
func Property(receiver Expression, name string) Expression {
	if _, ok := receiver.(Empty); ok {
		return EmptyExpr
	}

	return &PropertyExpr{
		Receiver: receiver,
		Name:     name,
	}
}

// Code builds a verbatim expression.
func Code(code string) Expression {
	return &Text{Code: code}
}

// Int builds an integer literal.
func Int(v int) Expression {
	return &Text{Code: strconv.Itoa(v)}
}

// Lambda builds an anonymous function. The body is filled by fn, which gets
// a reference to the argument.
func Lambda(arg string, fn func(body *Block, arg Expression)) *LambdaExpr {
	body := newBlock()
	fn(body, Code(arg))
	body.seal()

	return &LambdaExpr{
		Arg:  arg,
		Body: body,
	}
}

// NewArray builds an array literal.
func NewArray(elem *gentype.Type, items ...Expression) Expression {
	return &NewArrayExpr{
		Elem:  elem,
		Items: items,
	}
}

// NewSizedArray builds an array of the given size.
func NewSizedArray(elem *gentype.Type, size Expression) Expression {
	return &NewSizedArrayExpr{
		Elem: elem,
		Size: size,
	}
}

// Default builds a default value of the type.
func Default(t *gentype.Type) Expression {
	return &DefaultExpr{Type: t}
}

// Not negates a boolean expression.
func Not(x Expression) Expression {
	return &NotExpr{X: x}
}

// Binary builds an infix operation.
func Binary(op BinaryOp, x, y Expression) Expression {
	return &BinaryExpr{
		Op: op,
		X:  x,
		Y:  y,
	}
}

// Increment builds a postfix increment.
func Increment(x Expression) Expression {
	return &IncrementExpr{X: x}
}

// Cond builds a conditional expression.
func Cond(cond, then, els Expression) Expression {
	return &CondExpr{
		Cond: cond,
		Then: then,
		Else: els,
	}
}

// Convert builds a conversion into the type.
func Convert(to *gentype.Type, x Expression) Expression {
	return &ConvertExpr{
		To: to,
		X:  x,
	}
}

func (*Text) isNode() {}
func (*Text) isStatement() {}
func (*Text) isExpression() {}
func (Empty) isNode() {}
func (Empty) isStatement() {}
func (Empty) isExpression() {}
func (*CallExpr) isNode() {}
func (*CallExpr) isStatement() {}
func (*CallExpr) isExpression() {}
func (*PropertyExpr) isNode() {}
func (*PropertyExpr) isStatement() {}
func (*PropertyExpr) isExpression() {}
func (*LambdaExpr) isNode() {}
func (*LambdaExpr) isStatement() {}
func (*LambdaExpr) isExpression() {}
func (*NewArrayExpr) isNode() {}
func (*NewArrayExpr) isStatement() {}
func (*NewArrayExpr) isExpression() {}
func (*NewSizedArrayExpr) isNode() {}
func (*NewSizedArrayExpr) isStatement() {}
func (*NewSizedArrayExpr) isExpression() {}
func (*DefaultExpr) isNode() {}
func (*DefaultExpr) isStatement() {}
func (*DefaultExpr) isExpression() {}
func (*NotExpr) isNode() {}
func (*NotExpr) isStatement() {}
func (*NotExpr) isExpression() {}
func (*BinaryExpr) isNode() {}
func (*BinaryExpr) isStatement() {}
func (*BinaryExpr) isExpression() {}
func (*IncrementExpr) isNode() {}
func (*IncrementExpr) isStatement() {}
func (*IncrementExpr) isExpression() {}
func (*ConvertExpr) isNode() {}
func (*ConvertExpr) isStatement() {}
func (*ConvertExpr) isExpression() {}
func (*CondExpr) isNode() {}
func (*CondExpr) isStatement() {}
func (*CondExpr) isExpression() {}
func (*MapGetExpr) isNode() {}
func (*MapGetExpr) isStatement() {}
func (*MapGetExpr) isExpression() {}
func (*MapContainsExpr) isNode() {}
func (*MapContainsExpr) isStatement() {}
func (*MapContainsExpr) isExpression() {}
func (*MapSizeExpr) isNode() {}
func (*MapSizeExpr) isStatement() {}
func (*MapSizeExpr) isExpression() {}
func (*MapKeysExpr) isNode() {}
func (*MapKeysExpr) isStatement() {}
func (*MapKeysExpr) isExpression() {}
func (*MapComputeIfAbsentExpr) isNode() {}
func (*MapComputeIfAbsentExpr) isStatement() {}
func (*MapComputeIfAbsentExpr) isExpression() {}
func (*ArrayGetExpr) isNode() {}
func (*ArrayGetExpr) isStatement() {}
func (*ArrayGetExpr) isExpression() {}
