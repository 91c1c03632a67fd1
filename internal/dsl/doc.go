// Package dsl defines a language neutral AST for the instrumentation code.
//
// The tree is built once through [Block] methods and rendered afterwards by
// a [Renderer] of the target language.
package dsl
