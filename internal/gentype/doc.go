// Package gentype provides language neutral type descriptors for the generated
// instrumentation code together with their spelling in supported dialects.
//
// Basic descriptors are singletons created once. Parametric descriptors are
// built with constructors and must be compared with [Equal].
package gentype
