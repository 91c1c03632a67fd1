// Package emit renders instrumentation AST into Java or Kotlin source code.
package emit
