// Package arena provides the append-only node storage behind every IR handle.
//
// Nodes are never removed or updated, so a Ref stays valid for the lifetime of
// the Arena that produced it. Ref 0 is reserved and means "no node".
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

// Ref is a 1-based index into an Arena.
type Ref uint32

// NoRef marks the absence of a node.
const NoRef Ref = 0

func (r Ref) IsValid() bool { return r != NoRef }

// BorrowError is the panic value raised when an arena is mutated while one of
// its nodes is borrowed through Inspect.
type BorrowError struct {
	Arena string
	Ref   Ref
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("arena %s: push while node %d is borrowed", e.Arena, e.Ref)
}

type Arena[T any] struct {
	name     string
	data     []T
	borrowed Ref
}

// New creates an arena. capHint sizes the initial backing slice; zero is allowed.
func New[T any](name string, capHint uint) *Arena[T] {
	return &Arena[T]{
		name: name,
		data: make([]T, 0, capHint),
	}
}

// Push appends value and returns its reference.
func (a *Arena[T]) Push(value T) Ref {
	if a.borrowed != NoRef {
		panic(&BorrowError{Arena: a.name, Ref: a.borrowed})
	}
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena %s overflow: %w", a.name, err))
	}
	return Ref(n)
}

// Get returns a copy of the node behind ref. It panics on an invalid ref.
func (a *Arena[T]) Get(ref Ref) T {
	return *a.slot(ref)
}

// Lookup is the non-panicking form of Get.
func (a *Arena[T]) Lookup(ref Ref) (T, bool) {
	if !a.Has(ref) {
		var zero T
		return zero, false
	}
	return a.data[ref-1], true
}

// Inspect runs fn with a pointer to the stored node. The pointer must not
// escape fn. Pushing into the same arena from fn panics with *BorrowError.
func (a *Arena[T]) Inspect(ref Ref, fn func(*T)) {
	node := a.slot(ref)
	if a.borrowed != NoRef {
		// nested read borrows are fine, only the outermost one is tracked
		fn(node)
		return
	}
	a.borrowed = ref
	defer func() { a.borrowed = NoRef }()
	fn(node)
}

func (a *Arena[T]) Has(ref Ref) bool {
	return ref != NoRef && int(ref) <= len(a.data)
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena %s overflow: %w", a.name, err))
	}
	return n
}

func (a *Arena[T]) Name() string { return a.name }

// All returns the stored nodes in push order. READONLY.
func (a *Arena[T]) All() []T {
	return a.data
}

func (a *Arena[T]) slot(ref Ref) *T {
	if !a.Has(ref) {
		panic(fmt.Sprintf("arena %s: invalid ref %d", a.name, ref))
	}
	return &a.data[ref-1]
}
