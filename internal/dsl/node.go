package dsl

import (
	"github.com/sirkon/streamtrace/internal/gentype"
)

// Node is the base interface implemented by all instrumentation AST nodes.
// The set of nodes is closed: renderers switch over concrete types and panic
// on anything they do not know.
type Node interface {
	isNode()
}

// Statement marks nodes which can be rendered as a standalone statement.
type Statement interface {
	Node
	isStatement()
}

// Expression marks nodes producing a value. Every expression can be used as a
// statement as well.
type Expression interface {
	Statement
	isExpression()
}

// Renderer turns nodes into a source code of a certain language.
type Renderer interface {
	// Render returns a code for the node. Rendering is pure: the same node
	// always produces the same text.
	Render(n Node) string

	// Types returns a dialect used to spell types.
	Types() *gentype.Dialect
}
