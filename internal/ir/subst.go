package ir

import (
	"slices"
	"strconv"

	"irkit/internal/diag"
	"irkit/internal/shape"
	"irkit/internal/trace"
)

// Subst maps old symbols to new ones of the same kind. Symbols outside its
// domain, 'static included, map to themselves.
type Subst struct {
	ctx    *Context
	pairs  map[Param]Param
	order  []Param
	types  map[TypeID]Type
	values map[ValueID]Value
}

// SubstPair is one entry of a substitution.
type SubstPair struct {
	From, To Param
}

func (c *Context) newSubst() *Subst {
	return &Subst{
		ctx:    c,
		pairs:  make(map[Param]Param),
		types:  make(map[TypeID]Type),
		values: make(map[ValueID]Value),
	}
}

func (s *Subst) add(from, to Param) {
	if from.Kind != to.Kind {
		diag.Fail(diag.IntUnknownSymbol, "cannot substitute %s with %s", from, to)
	}
	if _, ok := s.pairs[from]; !ok {
		s.order = append(s.order, from)
	}
	s.pairs[from] = to
}

// freshen maps from to a newly minted symbol that inherits its name.
func (s *Subst) freshen(from Param) {
	if from.IsStatic() {
		return
	}
	if _, done := s.pairs[from]; done {
		return
	}
	if from.Kind != ParamLifetime && from.Kind != ParamType {
		panic(diag.Unsupportedf(diag.UnsConstParam, "cannot clone a %s parameter", from.Kind))
	}
	s.add(from, s.ctx.mint(from.Kind, s.ctx.paramNames[from]))
}

// with returns a copy of s extended by other's pairs.
func (s *Subst) with(other *Subst) *Subst {
	out := s.ctx.newSubst()
	for _, p := range s.order {
		out.add(p, s.pairs[p])
	}
	for _, p := range other.order {
		out.add(p, other.pairs[p])
	}
	return out
}

func (s *Subst) Len() int { return len(s.order) }

func (s *Subst) Pairs() []SubstPair {
	out := make([]SubstPair, len(s.order))
	for i, p := range s.order {
		out[i] = SubstPair{From: p, To: s.pairs[p]}
	}
	return out
}

func (s *Subst) Param(p Param) Param {
	if q, ok := s.pairs[p]; ok {
		return q
	}
	return p
}

func (s *Subst) Lifetime(l Lifetime) Lifetime {
	q, _ := s.Param(l.Param()).Lifetime()
	return q
}

func (s *Subst) TypeParam(tp TypeParam) TypeParam {
	q, _ := s.Param(tp.Param()).TypeParam()
	return q
}

func (s *Subst) lifetimes(ls []Lifetime) []Lifetime {
	if ls == nil {
		return nil
	}
	out := make([]Lifetime, len(ls))
	for i, l := range ls {
		out[i] = s.Lifetime(l)
	}
	return out
}

// touches reports whether t mentions a symbol in the domain of s.
func (s *Subst) touches(t Type) bool {
	found := false
	s.ctx.walkType(t, func(p Param) {
		if _, ok := s.pairs[p]; ok {
			found = true
		}
	})
	return found
}

// Type applies s to t. A data structure that mentions a substituted symbol
// is registered anew with freshly cloned generics of its own.
func (s *Subst) Type(t Type) Type {
	c := s.ctx
	c.own(t)
	if out, ok := s.types[t.ID]; ok {
		return out
	}
	if !s.touches(t) {
		s.types[t.ID] = t
		return t
	}
	d := c.desc(t)
	var out Type
	switch d.Kind {
	case KindInfer, KindStr:
		out = t
	case KindTuple:
		elems := t.Elems()
		for i, e := range elems {
			elems[i] = s.Type(e)
		}
		out = c.Tuple(elems...)
	case KindReference:
		elem := s.Type(Type{ctx: c, ID: d.Elem})
		if d.HasLifetime {
			lt := s.Lifetime(d.Lifetime)
			out = c.reference(elem, d.Mutable, &lt)
		} else {
			out = c.reference(elem, d.Mutable, nil)
		}
	case KindDereference:
		out = c.dereferenceNode(s.Type(Type{ctx: c, ID: d.Elem}))
	case KindTraitObject:
		bounds, _ := t.Bounds()
		mapped := make([]Bound, len(bounds))
		for i, b := range bounds {
			mapped[i] = s.Bound(b)
		}
		out = c.TraitObjectOf(mapped...)
	case KindPath:
		p, _ := t.Path()
		out = c.PathType(s.Path(p))
	case KindTypeParam:
		tp, _ := t.TypeParam()
		out = c.TypeParamType(s.TypeParam(tp))
	case KindData:
		ds, _ := t.DataStructure()
		fresh, inner := ds.Generics.cloneFresh(s)
		out = c.DataStructure(ds.Name, fresh, shape.MapElements(ds.Data, inner.Type))
	default:
		diag.Fail(diag.IntUnhandledKind, "Subst.Type: unhandled kind %s", d.Kind)
	}
	s.types[t.ID] = out
	return out
}

func (s *Subst) Path(p Path) Path {
	out := Path{ctx: p.ctx, Global: p.Global, Segments: make([]PathSegment, len(p.Segments))}
	for i, seg := range p.Segments {
		out.Segments[i] = PathSegment{Ident: seg.Ident, Args: s.args(seg.Args)}
	}
	return out
}

func (s *Subst) args(a *GenericArgs) *GenericArgs {
	if a == nil {
		return nil
	}
	if a.Paren {
		out := &GenericArgs{Paren: true, Inputs: make([]Type, len(a.Inputs))}
		for i, in := range a.Inputs {
			out.Inputs[i] = s.Type(in)
		}
		if a.Output.IsValid() {
			out.Output = s.Type(a.Output)
		}
		return out
	}
	out := &GenericArgs{Args: make([]GenericArg, len(a.Args))}
	for i, arg := range a.Args {
		mapped := arg
		switch arg.Kind {
		case ArgType, ArgBinding:
			mapped.Type = s.Type(arg.Type)
		case ArgLifetime:
			mapped.Lifetime = s.Lifetime(arg.Lifetime)
		case ArgConstraint:
			mapped.Bounds = make([]Bound, len(arg.Bounds))
			for j, b := range arg.Bounds {
				mapped.Bounds[j] = s.Bound(b)
			}
		default:
			diag.Fail(diag.IntUnhandledKind, "Subst.Path: unhandled argument %s", arg.Kind)
		}
		out.Args[i] = mapped
	}
	return out
}

func (s *Subst) Bound(b Bound) Bound {
	switch b.Kind {
	case BoundLifetime:
		return LifetimeBound(s.Lifetime(b.Lifetime))
	case BoundTrait:
		return Bound{Kind: BoundTrait, Lifetimes: s.lifetimes(b.Lifetimes), Maybe: b.Maybe, Path: s.Path(b.Path)}
	default:
		diag.Fail(diag.IntUnhandledKind, "Subst.Bound: unhandled kind %d", b.Kind)
		return Bound{}
	}
}

func (s *Subst) Constraint(cons Constraint) Constraint {
	switch cons := cons.(type) {
	case *TypePredicate:
		bounds := make([]Bound, len(cons.Bounds))
		for i, b := range cons.Bounds {
			bounds[i] = s.Bound(b)
		}
		return &TypePredicate{Lifetimes: s.lifetimes(cons.Lifetimes), Bounded: s.Type(cons.Bounded), Bounds: bounds}
	case *LifetimePredicate:
		return &LifetimePredicate{Lifetime: s.Lifetime(cons.Lifetime), Bounds: s.lifetimes(cons.Bounds)}
	default:
		diag.Fail(diag.IntUnhandledKind, "Subst.Constraint: unhandled %T", cons)
		return nil
	}
}

// Value applies s to every type inside the value graph rooted at v.
// Recorded function invocations are shared, not copied.
func (s *Subst) Value(v Value) Value {
	c := s.ctx
	c.ownValue(v)
	if out, ok := s.values[v.ID]; ok {
		return out
	}
	var out Value
	switch d := v.Node().Data.(type) {
	case TupleData:
		out = c.TupleValue(s.valueList(d.Elems)...)
	case StrData, InvokeData:
		out = v
	case ReferenceData:
		out = c.pushValue(ValueReference, ReferenceData{Mutable: d.Mutable, Elem: s.Value(c.value(d.Elem)).ID})
	case DereferenceData:
		out = c.pushValue(ValueDereference, DereferenceData{Elem: s.Value(c.value(d.Elem)).ID})
	case BindingData:
		out = c.pushValue(ValueBinding, BindingData{Name: d.Name, Type: s.Type(d.Type)})
	case DataLitData:
		out = c.DataValue(d.Name, shape.MapElements(d.Data, func(id ValueID) Value {
			return s.Value(c.value(id))
		}))
	case DestructureData:
		out = c.destructure(s.Value(c.value(d.Parent)), d.Accessor, s.Type(d.Type))
	case MacroData:
		mi := c.MacroInvocation(d.Macro)
		id := c.macros.Push(MacroInvocation{Path: s.Path(mi.Path), Args: c.valueIDs(s.valueList(mi.Args))})
		out = c.pushValue(ValueMacro, MacroData{Macro: id})
	default:
		diag.Fail(diag.IntUnhandledKind, "Subst.Value: unhandled kind %s", v.Kind())
	}
	s.values[v.ID] = out
	return out
}

func (s *Subst) valueList(ids []ValueID) []Value {
	out := make([]Value, len(ids))
	for i, id := range ids {
		out[i] = s.Value(s.ctx.value(id))
	}
	return out
}

// CloneFresh returns a copy of g in which every declared parameter and
// every for<...> binder lifetime is a newly minted symbol, together with
// the substitution that maps the old symbols to the new ones. Names and
// display names carry over. Symbols declared outside g are kept.
func (g *Generics) CloneFresh() (out *Generics, s *Subst, err error) {
	defer diag.Recover(&err)
	out, s = g.cloneFresh(nil)
	return out, s, nil
}

// cloneFresh renames g's own symbols; outer supplies substitutions for
// symbols g merely refers to. The returned Subst combines both.
func (g *Generics) cloneFresh(outer *Subst) (*Generics, *Subst) {
	c := g.ctx
	own := c.newSubst()
	for _, p := range g.Params {
		own.freshen(p)
	}
	for _, cons := range g.Constraints {
		c.walkBinders(cons, func(l Lifetime) { own.freshen(l.Param()) })
	}
	s := own
	if outer != nil {
		s = outer.with(own)
	}

	out := &Generics{
		ctx:         c,
		Params:      make([]Param, len(g.Params)),
		Constraints: make([]Constraint, len(g.Constraints)),
		Names:       NewNameMap(),
	}
	for i, p := range g.Params {
		out.Params[i] = s.Param(p)
	}
	for i, cons := range g.Constraints {
		out.Constraints[i] = s.Constraint(cons)
	}
	for _, name := range g.Names.Names() {
		p, _ := g.Names.Get(name)
		out.Names.insert(name, s.Param(p))
	}
	c.point(trace.ScopeStep, "fresh-generics", out.ParamList(),
		"renamed", strconv.Itoa(own.Len()))
	return out, s
}

// Disjoint reports whether no symbol of a appears in b.
func Disjoint(a, b *Generics) bool {
	syms := a.Symbols()
	return !slices.ContainsFunc(b.Symbols(), func(p Param) bool {
		return slices.Contains(syms, p)
	})
}
