package dsl

import (
	"fmt"

	"github.com/sirkon/streamtrace/internal/gentype"
)

// Block is an append only sequence of statements. Nested blocks are sealed
// as soon as their configuration callback returns and any later append is
// a programming error.
type Block struct {
	statements []Statement
	declared   map[*Variable]struct{}
	sealed     bool
}

// NewBlock creates a standalone sealed block filled by fn.
func NewBlock(fn func(b *Block)) *Block {
	b := newBlock()
	fn(b)
	b.seal()
	return b
}

func newBlock() *Block {
	return &Block{
		declared: map[*Variable]struct{}{},
	}
}

func (b *Block) seal() { b.sealed = true }

// Statements returns statements of the block.
func (b *Block) Statements() []Statement {
	return b.statements
}

// Len returns the number of statements in the block.
func (b *Block) Len() int {
	return len(b.statements)
}

// Declare registers the variable in this block and returns it back for further references.
// Declaring the same variable twice in a block panics.
func (b *Block) Declare(v Var, init Expression, mutable bool) Var {
	b.Statement(&Declaration{
		Var:     v,
		Init:    init,
		Mutable: mutable,
	})
	return v
}

// Statement appends a statement to the block.
func (b *Block) Statement(s Statement) {
	if d, ok := s.(*Declaration); ok {
		base := d.Var.Base()
		if _, ok := b.declared[base]; ok {
			panic(fmt.Errorf("variable %s has already been declared in this block", base.Name))
		}
		b.declared[base] = struct{}{}
	}

	b.append(s)
}

// Assign appends an assignment.
func (b *Block) Assign(v Var, x Expression) {
	b.append(&AssignStmt{
		Var: v,
		X:   x,
	})
}

// Return appends a return of the value.
func (b *Block) Return(x Expression) {
	b.append(&ReturnStmt{X: x})
}

// Add appends all statements of another block.
func (b *Block) Add(other *Block) {
	for _, s := range other.statements {
		b.Statement(s)
	}
}

// Call builds a method call. It is a shortcut for the package level [Call]
// and does not append anything.
func (b *Block) Call(receiver Expression, name string, args ...Expression) Expression {
	return Call(receiver, name, args...)
}

// ForEachLoop appends a loop over the collection with the body filled by fn.
func (b *Block) ForEachLoop(v Var, collection Expression, fn func(b *Block)) {
	body := newBlock()
	fn(body)
	body.seal()

	b.append(&ForEachStmt{
		Var:        v,
		Collection: collection,
		Body:       body,
	})
}

// ForLoop appends a counted loop with the body filled by fn.
func (b *Block) ForLoop(init *Declaration, cond, after Expression, fn func(b *Block)) {
	body := newBlock()
	fn(body)
	body.seal()

	b.append(&ForStmt{
		Init:  init,
		Cond:  cond,
		After: after,
		Body:  body,
	})
}

// Scope appends a nested block filled by fn.
func (b *Block) Scope(fn func(b *Block)) {
	body := newBlock()
	fn(body)
	body.seal()

	b.append(&ScopeStmt{Body: body})
}

// IfBranch appends a conditional and returns a handle to add alternatives.
func (b *Block) IfBranch(cond Expression, fn func(b *Block)) *IfBranch {
	body := newBlock()
	fn(body)
	body.seal()

	stmt := &IfStmt{
		Cond: cond,
		Body: body,
	}
	b.append(stmt)

	return &IfBranch{
		outer: b,
		stmt:  stmt,
	}
}

// TryBlock appends an exception guarded region filled by fn. The handler must be
// set with [TryBlock.Catch] before rendering.
func (b *Block) TryBlock(fn func(b *Block)) *TryBlock {
	body := newBlock()
	fn(body)
	body.seal()

	stmt := &TryCatchStmt{Body: body}
	b.append(stmt)

	return &TryBlock{stmt: stmt}
}

func (b *Block) append(s Statement) {
	if b.sealed {
		panic(fmt.Errorf("append %T to a sealed block", s))
	}

	b.statements = append(b.statements, s)
}

// IfBranch is a handle of an appended conditional.
//
// Alternatives are appended to the block the conditional itself belongs to, not
// to the conditional statement, and [IfBranch.ElseIfBranch] returns a handle
// bound to that block too. Every handle accepts a single alternative.
type IfBranch struct {
	outer *Block
	stmt  *IfStmt
	used  bool
}

// Statement returns the conditional statement.
func (h *IfBranch) Statement() *IfStmt {
	return h.stmt
}

// ElseIfBranch appends an alternative conditional.
func (h *IfBranch) ElseIfBranch(cond Expression, fn func(b *Block)) *IfBranch {
	h.use()

	body := newBlock()
	fn(body)
	body.seal()
	h.outer.append(&ElseIfStmt{
		Cond: cond,
		Body: body,
	})

	return &IfBranch{
		outer: h.outer,
		stmt:  h.stmt,
	}
}

// ElseBranch appends the last alternative.
func (h *IfBranch) ElseBranch(fn func(b *Block)) {
	h.use()

	body := newBlock()
	fn(body)
	body.seal()
	h.outer.append(&ElseStmt{Body: body})
}

func (h *IfBranch) use() {
	if h.used {
		panic(fmt.Errorf("alternative has already been added to this branch"))
	}
	h.used = true
}

// TryBlock is a handle of an appended exception guarded region.
type TryBlock struct {
	stmt *TryCatchStmt
}

// Catch sets the exception handler. The handler gets the caught exception in v.
func (t *TryBlock) Catch(v *Variable, fn func(b *Block)) {
	if t.stmt.Handler != nil {
		panic(fmt.Errorf("exception handler has already been set"))
	}

	body := newBlock()
	fn(body)
	body.seal()

	t.stmt.Catch = v
	t.stmt.Handler = body
}

// ExceptionVariable creates a variable for a caught exception.
func ExceptionVariable(name string) *Variable {
	return NewVariable(gentype.Exception, name)
}

func (*Block) isNode()      {}
func (*Block) isStatement() {}
