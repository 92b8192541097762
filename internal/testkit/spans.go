// Package testkit holds invariant checks shared by parser, fuzz and IR tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"irkit/internal/source"
	"irkit/internal/syntax"
)

// CheckTypeSpans verifies that every node of a parsed type has a non-empty
// span inside f and inside the span of its parent.
func CheckTypeSpans(ty *syntax.Type, f *source.File) error {
	if ty == nil || f == nil {
		return fmt.Errorf("nil type or fragment")
	}
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := source.Span{File: f.ID, Start: 0, End: limit}
	c := &spanChecker{file: f.ID}
	c.typ(ty, root)
	return c.err
}

// CheckGenericsSpans does the same for a parameter list and its where-clause.
func CheckGenericsSpans(g syntax.Generics, f *source.File) error {
	if f == nil {
		return fmt.Errorf("nil fragment")
	}
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := source.Span{File: f.ID, Start: 0, End: limit}
	c := &spanChecker{file: f.ID}
	for i := range g.Params {
		p := &g.Params[i]
		if !c.span("param "+p.Name, p.Span, root) {
			break
		}
		c.bounds(p.Bounds, p.Span)
		c.lifetimes(p.LifetimeBounds, p.Span)
		if p.ConstType != nil {
			c.typ(p.ConstType, p.Span)
		}
		if p.Default != nil {
			c.typ(p.Default, p.Span)
		}
	}
	for i := range g.Where {
		w := &g.Where[i]
		if !c.span("where predicate", w.Span, root) {
			break
		}
		c.lifetimes(w.Lifetimes, w.Span)
		if w.Bounded != nil {
			c.typ(w.Bounded, w.Span)
		}
		c.bounds(w.Bounds, w.Span)
		if w.Lifetime != nil {
			c.span("lifetime", w.Lifetime.Span, w.Span)
		}
		c.lifetimes(w.LifetimeBounds, w.Span)
		if w.Rhs != nil {
			c.typ(w.Rhs, w.Span)
		}
	}
	return c.err
}

type spanChecker struct {
	file source.FileID
	err  error
}

// span records the first violation and reports whether checking may go on.
func (c *spanChecker) span(what string, sp, parent source.Span) bool {
	if c.err != nil {
		return false
	}
	switch {
	case sp.File != c.file:
		c.err = fmt.Errorf("%s span points to fragment %d, want %d", what, sp.File, c.file)
	case sp.End <= sp.Start:
		c.err = fmt.Errorf("%s span is empty: %v", what, sp)
	case sp.Start < parent.Start || sp.End > parent.End:
		c.err = fmt.Errorf("%s span %v is outside its parent %v", what, sp, parent)
	}
	return c.err == nil
}

func (c *spanChecker) typ(ty *syntax.Type, parent source.Span) {
	if !c.span("type "+ty.Kind.String(), ty.Span, parent) {
		return
	}
	if ty.QSelf != nil && c.span("qualified self", ty.QSelf.Span, ty.Span) {
		c.typ(ty.QSelf.Type, ty.QSelf.Span)
	}
	if ty.Path != nil {
		c.path(ty.Path, ty.Span)
	}
	if ty.Lifetime != nil {
		c.span("lifetime", ty.Lifetime.Span, ty.Span)
	}
	if ty.Elem != nil {
		c.typ(ty.Elem, ty.Span)
	}
	c.bounds(ty.Bounds, ty.Span)
	for _, e := range ty.Elems {
		c.typ(e, ty.Span)
	}
	if ty.Fn != nil {
		c.fn(ty.Fn, ty.Span)
	}
}

func (c *spanChecker) path(p *syntax.Path, parent source.Span) {
	if !c.span("path", p.Span, parent) {
		return
	}
	for i := range p.Segments {
		seg := &p.Segments[i]
		if !c.span("segment "+seg.Ident, seg.Span, p.Span) || seg.Args == nil {
			continue
		}
		if !c.span("arguments", seg.Args.Span, seg.Span) {
			return
		}
		for j := range seg.Args.Args {
			c.arg(&seg.Args.Args[j], seg.Args.Span)
		}
		if seg.Args.Fn != nil {
			c.fn(seg.Args.Fn, seg.Args.Span)
		}
	}
}

func (c *spanChecker) arg(a *syntax.GenericArg, parent source.Span) {
	if !c.span("argument "+a.Kind.String(), a.Span, parent) {
		return
	}
	if a.Type != nil {
		c.typ(a.Type, a.Span)
	}
	if a.Lifetime != nil {
		c.span("lifetime", a.Lifetime.Span, a.Span)
	}
	c.bounds(a.Bounds, a.Span)
}

func (c *spanChecker) fn(sig *syntax.FnSig, parent source.Span) {
	if !c.span("fn signature", sig.Span, parent) {
		return
	}
	for _, in := range sig.Inputs {
		c.typ(in, sig.Span)
	}
	if sig.Output != nil {
		c.typ(sig.Output, sig.Span)
	}
}

func (c *spanChecker) bounds(bs []syntax.Bound, parent source.Span) {
	for i := range bs {
		b := &bs[i]
		if !c.span("bound", b.Span, parent) {
			return
		}
		c.lifetimes(b.Lifetimes, b.Span)
		if b.Path != nil {
			c.path(b.Path, b.Span)
		}
		if b.Lifetime != nil {
			c.span("lifetime", b.Lifetime.Span, b.Span)
		}
	}
}

func (c *spanChecker) lifetimes(ls []syntax.Lifetime, parent source.Span) {
	for _, l := range ls {
		if !c.span("lifetime "+l.Name, l.Span, parent) {
			return
		}
	}
}
