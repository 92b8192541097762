package arena

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestArenaPushGet(t *testing.T) {
	a := New[string]("names", 0)
	first := a.Push("a")
	second := a.Push("b")
	if first == NoRef || second == NoRef {
		t.Fatalf("refs must be valid")
	}
	if first == second {
		t.Fatalf("refs must differ")
	}
	if got := a.Get(second); got != "b" {
		t.Fatalf("get: got %q", got)
	}
	if a.Len() != 2 {
		t.Fatalf("len: got %d", a.Len())
	}
	if _, ok := a.Lookup(NoRef); ok {
		t.Fatalf("NoRef must not resolve")
	}
	if _, ok := a.Lookup(Ref(3)); ok {
		t.Fatalf("out of range ref must not resolve")
	}
}

func TestArenaPushDuringInspectPanics(t *testing.T) {
	a := New[int]("values", 4)
	ref := a.Push(1)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic on re-entrant push")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value is not an error: %v", r)
		}
		var be *BorrowError
		if !errors.As(err, &be) || be.Ref != ref {
			t.Fatalf("unexpected panic: %v", err)
		}
		// the guard is released even when fn panics
		if got := a.Push(2); got != Ref(2) {
			t.Fatalf("push after failed borrow: got %d", got)
		}
	}()

	a.Inspect(ref, func(*int) {
		a.Push(2)
	})
}

func TestArenaNestedInspect(t *testing.T) {
	a := New[int]("values", 0)
	x := a.Push(1)
	y := a.Push(2)
	sum := 0
	a.Inspect(x, func(v *int) {
		a.Inspect(y, func(w *int) {
			sum = *v + *w
		})
	})
	if sum != 3 {
		t.Fatalf("sum: got %d", sum)
	}
	if got := a.Push(3); got != Ref(3) {
		t.Fatalf("push after inspect: got %d", got)
	}
}

func TestCounterMonotonic(t *testing.T) {
	c := NewCounter("lifetimes")
	if c.Peek() != 0 {
		t.Fatalf("fresh counter should start at 0")
	}
	prev := uint32(0)
	for range 100 {
		n := c.Next()
		if n <= prev {
			t.Fatalf("counter went backwards: %d after %d", n, prev)
		}
		prev = n
	}
}

func TestArenaMonotonicityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every pushed node resolves through its unique ref", prop.ForAll(
		func(values []int) bool {
			a := New[int]("prop", 0)
			refs := make([]Ref, len(values))
			seen := make(map[Ref]bool, len(values))
			for i, v := range values {
				refs[i] = a.Push(v)
				if seen[refs[i]] {
					return false
				}
				seen[refs[i]] = true
			}
			for i, ref := range refs {
				if a.Get(ref) != values[i] {
					return false
				}
			}
			return int(a.Len()) == len(values)
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
