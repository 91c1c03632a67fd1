// Package trace decodes values recorded by instrumented pipelines into
// per call traces: ordered observations of values entering and leaving a call.
package trace
