// Package handler builds instrumentation for pipeline calls: recording
// variables, calls spliced around the original call and expressions that
// pack recorded data into a result.
package handler
