// Package ops is a catalogue of call kinds: it tells how a call of each kind is
// instrumented, how its trace is decoded and how its values are linked.
package ops
