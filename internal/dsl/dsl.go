package dsl

import (
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Dsl combines a renderer of the target language with the root block of
// the code being built. Block operations are forwarded to the root block.
type Dsl struct {
	renderer Renderer
	body     *Block
}

// New creates a Dsl with an empty root block.
func New(r Renderer) *Dsl {
	return &Dsl{
		renderer: r,
		body:     newBlock(),
	}
}

// Types returns the dialect of the renderer.
func (d *Dsl) Types() *gentype.Dialect {
	return d.renderer.Types()
}

// Body returns the root block.
func (d *Dsl) Body() *Block {
	return d.body
}

// Declare forwards to [Block.Declare] of the root block.
func (d *Dsl) Declare(v Var, init Expression, mutable bool) Var {
	return d.body.Declare(v, init, mutable)
}

// Statement forwards to [Block.Statement] of the root block.
func (d *Dsl) Statement(s Statement) {
	d.body.Statement(s)
}

// Add forwards to [Block.Add] of the root block.
func (d *Dsl) Add(other *Block) {
	d.body.Add(other)
}

// Assign forwards to [Block.Assign] of the root block.
func (d *Dsl) Assign(v Var, x Expression) {
	d.body.Assign(v, x)
}

// ForEachLoop forwards to [Block.ForEachLoop] of the root block.
func (d *Dsl) ForEachLoop(v Var, collection Expression, fn func(b *Block)) {
	d.body.ForEachLoop(v, collection, fn)
}

// ForLoop forwards to [Block.ForLoop] of the root block.
func (d *Dsl) ForLoop(init *Declaration, cond, after Expression, fn func(b *Block)) {
	d.body.ForLoop(init, cond, after, fn)
}

// Scope forwards to [Block.Scope] of the root block.
func (d *Dsl) Scope(fn func(b *Block)) {
	d.body.Scope(fn)
}

// IfBranch forwards to [Block.IfBranch] of the root block.
func (d *Dsl) IfBranch(cond Expression, fn func(b *Block)) *IfBranch {
	return d.body.IfBranch(cond, fn)
}

// TryBlock forwards to [Block.TryBlock] of the root block.
func (d *Dsl) TryBlock(fn func(b *Block)) *TryBlock {
	return d.body.TryBlock(fn)
}

// Block builds a standalone block which is not attached to the root.
func (d *Dsl) Block(fn func(b *Block)) *Block {
	return NewBlock(fn)
}

// Render renders any node with the renderer.
func (d *Dsl) Render(n Node) string {
	return d.renderer.Render(n)
}

// Code renders the root block. It must only be called once the block is
// completely built.
func (d *Dsl) Code() string {
	return d.renderer.Render(d.body)
}
