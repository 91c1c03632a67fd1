// Package chain describes a stream pipeline as reported by the source
// analysis: a qualifier expression, intermediate calls and a terminal call.
package chain
