// Package tracing runs pipeline tracing end to end.
//
// A pipeline is instrumented with trace handlers of its calls and the
// resulting code is evaluated in the debuggee by an external [Evaluator].
// The evaluation result is decoded into per call traces and each trace is
// resolved into a correspondence of values before and after the call.
//
// Core components:
//
//   - ExpressionBuilder
//     Builds the trace expression in the target language.
//
//   - Interpret and Resolve
//     Decode the evaluation result and link values across the whole
//     pipeline, call by call.
//
//   - Tracer
//     Drives the round trip and records failures of each phase into
//     a Reporter.
//
//   - SourceIndex
//     Finds the innermost pipeline part at a source position.
package tracing
