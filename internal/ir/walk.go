package ir

import (
	"irkit/internal/diag"
	"irkit/internal/shape"
)

// symbolWalker reports the symbols mentioned by types, paths, bounds and
// constraints. Symbols bound inside a data structure (its parameters and
// binders) are not reported for the data type that owns them.
type symbolWalker struct {
	ctx    *Context
	param  func(Param)
	binder func(Lifetime)
	seen   map[TypeID]bool
}

func (c *Context) newWalker(param func(Param), binder func(Lifetime)) *symbolWalker {
	if param == nil {
		param = func(Param) {}
	}
	if binder == nil {
		binder = func(Lifetime) {}
	}
	return &symbolWalker{ctx: c, param: param, binder: binder, seen: make(map[TypeID]bool)}
}

func (c *Context) walkType(t Type, fn func(Param)) {
	c.newWalker(fn, nil).typ(t)
}

func (c *Context) walkConstraint(cons Constraint, fn func(Param)) {
	c.newWalker(fn, nil).constraint(cons)
}

// walkBinders reports every for<...> lifetime introduced in cons.
func (c *Context) walkBinders(cons Constraint, fn func(Lifetime)) {
	c.newWalker(nil, fn).constraint(cons)
}

// TypeSymbols lists the free symbols of t.
func (c *Context) TypeSymbols(t Type) []Param {
	var out []Param
	seen := make(map[Param]bool)
	c.walkType(t, func(p Param) {
		if !seen[p] && !p.IsStatic() {
			seen[p] = true
			out = append(out, p)
		}
	})
	return out
}

func (w *symbolWalker) typ(t Type) {
	if w.seen[t.ID] {
		return
	}
	w.seen[t.ID] = true
	d := w.ctx.desc(t)
	switch d.Kind {
	case KindInfer, KindStr:
	case KindTuple:
		for _, e := range w.ctx.types.tuples[d.Payload] {
			w.typ(Type{ctx: w.ctx, ID: e})
		}
	case KindReference:
		if d.HasLifetime {
			w.param(d.Lifetime.Param())
		}
		w.typ(Type{ctx: w.ctx, ID: d.Elem})
	case KindDereference:
		w.typ(Type{ctx: w.ctx, ID: d.Elem})
	case KindTraitObject:
		for _, b := range w.ctx.types.objects[d.Payload] {
			w.bound(b)
		}
	case KindPath:
		w.path(w.ctx.types.paths[d.Payload])
	case KindTypeParam:
		w.param(TypeParam(d.Payload).Param())
	case KindData:
		w.data(w.ctx.types.datas[d.Payload])
	default:
		diag.Fail(diag.IntUnhandledKind, "walk: unhandled kind %s", d.Kind)
	}
}

func (w *symbolWalker) data(ds *DataStructure) {
	bound := make(map[Param]bool)
	for _, p := range ds.Generics.Params {
		bound[p] = true
	}
	var free []Param
	inner := w.ctx.newWalker(
		func(p Param) { free = append(free, p) },
		func(l Lifetime) { bound[l.Param()] = true },
	)
	for _, cons := range ds.Generics.Constraints {
		inner.constraint(cons)
	}
	for _, t := range shapeTypes(ds.Data) {
		inner.typ(t)
	}
	for _, p := range free {
		if !bound[p] {
			w.param(p)
		}
	}
}

func (w *symbolWalker) path(p Path) {
	for _, seg := range p.Segments {
		if seg.Args == nil {
			continue
		}
		for _, in := range seg.Args.Inputs {
			w.typ(in)
		}
		if seg.Args.Output.IsValid() {
			w.typ(seg.Args.Output)
		}
		for _, arg := range seg.Args.Args {
			switch arg.Kind {
			case ArgType, ArgBinding:
				w.typ(arg.Type)
			case ArgLifetime:
				w.param(arg.Lifetime.Param())
			case ArgConstraint:
				for _, b := range arg.Bounds {
					w.bound(b)
				}
			}
		}
	}
}

func (w *symbolWalker) bound(b Bound) {
	if b.Kind == BoundLifetime {
		w.param(b.Lifetime.Param())
		return
	}
	for _, l := range b.Lifetimes {
		w.binder(l)
		w.param(l.Param())
	}
	w.path(b.Path)
}

func (w *symbolWalker) constraint(cons Constraint) {
	switch cons := cons.(type) {
	case *TypePredicate:
		for _, l := range cons.Lifetimes {
			w.binder(l)
			w.param(l.Param())
		}
		w.typ(cons.Bounded)
		for _, b := range cons.Bounds {
			w.bound(b)
		}
	case *LifetimePredicate:
		w.param(cons.Lifetime.Param())
		for _, l := range cons.Bounds {
			w.param(l.Param())
		}
	default:
		diag.Fail(diag.IntUnhandledKind, "walk: unhandled constraint %T", cons)
	}
}

// shapeTypes lists every field type of a shape, variants in order.
func shapeTypes(d Shape) []Type {
	var out []Type
	switch d := d.(type) {
	case *shape.Struct[Type]:
		out = append(out, d.Elements()...)
	case *shape.Enum[Type]:
		for i := range d.Variants {
			out = append(out, d.Variants[i].Elements()...)
		}
	}
	return out
}
