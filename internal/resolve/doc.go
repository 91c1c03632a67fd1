// Package resolve computes correspondence between values entering a call
// and values leaving it.
package resolve
