// Package loom is the reactive core of a retained-mode widget toolkit.
//
// Application state flows through a tree of Pods in a fixed five-phase
// protocol: event, lifecycle, update, layout, paint. Lenses project outer
// state onto inner widgets, Scopes own private derived state, Content sets
// manage data-driven child collections, and Bindings keep widget-internal
// state and application data converged.
package loom

// Data is the capability every value threaded through the tree must
// satisfy: a cheap equality check and a cheap clone.
//
// Same may be conservative: it can report two equal values as different,
// but must never report structurally different values as equal. Clone must
// produce a value that can be mutated independently afterward.
type Data[T any] interface {
	Same(other T) bool
	Clone() T
}

// Str is a string with Data semantics.
type Str string

// Same reports exact equality.
func (s Str) Same(other Str) bool { return s == other }

// Clone returns a copy.
func (s Str) Clone() Str { return s }

// F64 is a float64 with Data semantics. Same compares exactly; there is no
// epsilon, matching the rest of the toolkit's "conservative is fine" rule.
type F64 float64

// Same reports exact equality.
func (f F64) Same(other F64) bool { return f == other }

// Clone returns a copy.
func (f F64) Clone() F64 { return f }

// Unit is the empty data value, for widgets that own their whole state.
type Unit struct{}

// Same always reports true; there is nothing to differ on.
func (Unit) Same(Unit) bool { return true }

// Clone returns the unit value.
func (Unit) Clone() Unit { return Unit{} }

// Opaque wraps a value that cannot be cheaply compared. Same always reports
// false, so every round is treated as a change. This is a performance
// concession, not a correctness one: extra updates run, nothing is missed.
type Opaque[T any] struct {
	Value T
}

// Same always reports false.
func (Opaque[T]) Same(Opaque[T]) bool { return false }

// Clone copies the wrapper; the value itself is copied shallowly.
func (o Opaque[T]) Clone() Opaque[T] { return o }
