package ir

import (
	"errors"

	"irkit/internal/diag"
	"irkit/internal/parser"
	"irkit/internal/shape"
	"irkit/internal/syntax"
)

// TranslateType converts a parsed type against names. A bare identifier
// naming a type parameter becomes that parameter; any other name becomes a
// path. `(T)` is T, `()` is unit and `(T,)` is a one-tuple.
func (c *Context) TranslateType(st *syntax.Type, names *NameMap) (Type, error) {
	if st == nil {
		return Type{}, diag.Invalidf(diag.SynExpectType, "missing type")
	}
	switch st.Kind {
	case syntax.TypePath:
		if st.QSelf != nil {
			return Type{}, diag.Unsupportedf(diag.UnsQualifiedSelf, "qualified self paths are not supported").WithSpan(st.Span)
		}
		if ident, ok := st.Ident(); ok {
			if p, known := names.Get(ident); known {
				tp, isType := p.TypeParam()
				if !isType {
					return Type{}, diag.Invalidf(diag.IRNotATypeParam, "%s is a %s parameter", ident, p.Kind).WithSpan(st.Span)
				}
				return c.TypeParamType(tp), nil
			}
		}
		p, err := c.translatePath(st.Path, names)
		if err != nil {
			return Type{}, err
		}
		return c.PathType(p), nil

	case syntax.TypeReference:
		elem, err := c.TranslateType(st.Elem, names)
		if err != nil {
			return Type{}, err
		}
		if st.Lifetime == nil {
			return c.reference(elem, st.Mutable, nil), nil
		}
		lt, err := c.resolveLifetime(*st.Lifetime, names)
		if err != nil {
			return Type{}, err
		}
		return c.reference(elem, st.Mutable, &lt), nil

	case syntax.TypeTraitObject:
		bounds, err := c.translateBounds(st.Bounds, names)
		if err != nil {
			return Type{}, err
		}
		return c.TraitObjectOf(bounds...), nil

	case syntax.TypeTuple:
		if len(st.Elems) == 1 && !st.Trailing {
			return c.TranslateType(st.Elems[0], names)
		}
		elems := make([]Type, len(st.Elems))
		for i, e := range st.Elems {
			t, err := c.TranslateType(e, names)
			if err != nil {
				return Type{}, err
			}
			elems[i] = t
		}
		return c.Tuple(elems...), nil

	case syntax.TypeInfer:
		return c.Infer(), nil

	case syntax.TypeArray, syntax.TypeSlice, syntax.TypePtr, syntax.TypeBareFn, syntax.TypeNever:
		return Type{}, diag.Unsupportedf(diag.UnsTypeShape, "%s types are not supported", st.Kind).WithSpan(st.Span)

	default:
		return Type{}, diag.Invalidf(diag.SynExpectType, "invalid %s type", st.Kind).WithSpan(st.Span)
	}
}

// ParseType parses and translates a type written as text.
func (c *Context) ParseType(text string, names *NameMap) (Type, error) {
	st, err := parser.ParseType(c.addFragment("type", text))
	if err != nil {
		return Type{}, err
	}
	return c.TranslateType(st, names)
}

// TypeParamFromName returns the type of the type parameter called name.
func (c *Context) TypeParamFromName(name string, names *NameMap) (Type, error) {
	tp, err := names.TypeParam(name)
	if err != nil {
		return Type{}, err
	}
	return c.TypeParamType(tp), nil
}

// TraitObject builds `dyn A + B` from bound texts such as "Debug",
// "Iterator<Item = T>" or "'a".
func (c *Context) TraitObject(names *NameMap, bounds ...string) (Type, error) {
	out := make([]Bound, 0, len(bounds))
	for _, text := range bounds {
		sb, err := parser.ParseBound(c.addFragment("bound", text))
		if err != nil {
			return Type{}, err
		}
		b, err := c.translateBound(sb, names)
		if err != nil {
			return Type{}, err
		}
		out = append(out, b)
	}
	return c.TraitObjectOf(out...), nil
}

func (c *Context) translatePath(sp *syntax.Path, names *NameMap) (Path, error) {
	if sp == nil {
		return Path{}, diag.Invalidf(diag.SynExpectIdentifier, "missing path")
	}
	p := Path{ctx: c, Global: sp.Global, Segments: make([]PathSegment, len(sp.Segments))}
	for i, seg := range sp.Segments {
		args, err := c.translateArgs(seg.Args, names)
		if err != nil {
			return Path{}, err
		}
		p.Segments[i] = PathSegment{Ident: c.intern(seg.Ident), Args: args}
	}
	return p, nil
}

func (c *Context) translateArgs(sa *syntax.PathArgs, names *NameMap) (*GenericArgs, error) {
	if sa == nil {
		return nil, nil
	}
	if sa.Kind == syntax.ArgsParen {
		out := &GenericArgs{Paren: true, Inputs: make([]Type, len(sa.Fn.Inputs))}
		for i, in := range sa.Fn.Inputs {
			t, err := c.TranslateType(in, names)
			if err != nil {
				return nil, err
			}
			out.Inputs[i] = t
		}
		if sa.Fn.Output != nil {
			t, err := c.TranslateType(sa.Fn.Output, names)
			if err != nil {
				return nil, err
			}
			out.Output = t
		}
		return out, nil
	}

	out := &GenericArgs{Args: make([]GenericArg, 0, len(sa.Args))}
	for _, arg := range sa.Args {
		var ga GenericArg
		switch arg.Kind {
		case syntax.ArgType:
			t, err := c.TranslateType(arg.Type, names)
			if err != nil {
				return nil, err
			}
			ga = GenericArg{Kind: ArgType, Type: t}
		case syntax.ArgLifetime:
			lt, err := c.resolveLifetime(*arg.Lifetime, names)
			if err != nil {
				return nil, err
			}
			ga = GenericArg{Kind: ArgLifetime, Lifetime: lt}
		case syntax.ArgBinding:
			t, err := c.TranslateType(arg.Type, names)
			if err != nil {
				return nil, err
			}
			ga = GenericArg{Kind: ArgBinding, Ident: c.intern(arg.Ident), Type: t}
		case syntax.ArgConstraint:
			bounds, err := c.translateBounds(arg.Bounds, names)
			if err != nil {
				return nil, err
			}
			ga = GenericArg{Kind: ArgConstraint, Ident: c.intern(arg.Ident), Bounds: bounds}
		case syntax.ArgConst:
			return nil, diag.Unsupportedf(diag.UnsConstArgument, "const argument %s", arg.Const).WithSpan(arg.Span)
		default:
			return nil, diag.Invalidf(diag.SynUnexpectedToken, "invalid %s argument", arg.Kind).WithSpan(arg.Span)
		}
		out.Args = append(out.Args, ga)
	}
	return out, nil
}

func (c *Context) translateBounds(sbs []syntax.Bound, names *NameMap) ([]Bound, error) {
	out := make([]Bound, len(sbs))
	for i, sb := range sbs {
		b, err := c.translateBound(sb, names)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// translateBound resolves a trait or lifetime bound. Lifetimes introduced
// by a for<...> binder are fresh symbols visible only inside the bound.
func (c *Context) translateBound(sb syntax.Bound, names *NameMap) (Bound, error) {
	if sb.Kind == syntax.BoundLifetime {
		lt, err := c.resolveLifetime(*sb.Lifetime, names)
		if err != nil {
			return Bound{}, err
		}
		return LifetimeBound(lt), nil
	}
	binder, scope := c.bindLifetimes(sb.Lifetimes, names)
	p, err := c.translatePath(sb.Path, scope)
	if err != nil {
		return Bound{}, err
	}
	return Bound{Kind: BoundTrait, Lifetimes: binder, Maybe: sb.Maybe, Path: p}, nil
}

func (c *Context) translatePredicate(sp syntax.WherePredicate, names *NameMap) (Constraint, error) {
	switch sp.Kind {
	case syntax.PredType:
		binder, scope := c.bindLifetimes(sp.Lifetimes, names)
		bounded, err := c.TranslateType(sp.Bounded, scope)
		if err != nil {
			return nil, err
		}
		bounds, err := c.translateBounds(sp.Bounds, scope)
		if err != nil {
			return nil, err
		}
		return &TypePredicate{Lifetimes: binder, Bounded: bounded, Bounds: bounds}, nil
	case syntax.PredLifetime:
		lt, err := c.resolveLifetime(*sp.Lifetime, names)
		if err != nil {
			return nil, err
		}
		bounds, err := c.resolveLifetimes(sp.LifetimeBounds, names)
		if err != nil {
			return nil, err
		}
		return &LifetimePredicate{Lifetime: lt, Bounds: bounds}, nil
	case syntax.PredEq:
		return nil, diag.Unsupportedf(diag.UnsEqPredicate, "equality predicates are not supported").WithSpan(sp.Span)
	default:
		return nil, diag.Invalidf(diag.SynUnexpectedToken, "invalid where predicate").WithSpan(sp.Span)
	}
}

// bindLifetimes mints one lifetime per binder name and returns the scope in
// which they resolve. Without a binder the scope is names itself.
func (c *Context) bindLifetimes(lts []syntax.Lifetime, names *NameMap) ([]Lifetime, *NameMap) {
	if len(lts) == 0 {
		return nil, names
	}
	scope := names.Clone()
	out := make([]Lifetime, len(lts))
	for i, l := range lts {
		p := c.mint(ParamLifetime, l.Name)
		scope.insert(c.intern(l.Name), p)
		out[i], _ = p.Lifetime()
	}
	return out, scope
}

func (c *Context) resolveLifetime(l syntax.Lifetime, names *NameMap) (Lifetime, error) {
	lt, err := names.Lifetime(l.Name)
	if err != nil {
		var de *diag.Error
		if errors.As(err, &de) {
			return 0, de.WithSpan(l.Span)
		}
		return 0, err
	}
	return lt, nil
}

func (c *Context) resolveLifetimes(ls []syntax.Lifetime, names *NameMap) ([]Lifetime, error) {
	out := make([]Lifetime, len(ls))
	for i, l := range ls {
		lt, err := c.resolveLifetime(l, names)
		if err != nil {
			return nil, err
		}
		out[i] = lt
	}
	return out, nil
}

// TranslateDataDecl registers the struct or enum declared by decl as a new
// data-structure type. Field types resolve against the declaration's own
// generics.
func (c *Context) TranslateDataDecl(decl *syntax.DataDecl) (Type, error) {
	if decl == nil {
		return Type{}, diag.Invalidf(diag.SynExpectDataDecl, "missing declaration")
	}
	g, err := c.TranslateGenerics(decl.Generics)
	if err != nil {
		return Type{}, err
	}
	var data Shape
	switch decl.Kind {
	case syntax.DataStruct:
		kind, fields, err := c.translateFields(decl.Fields, g.Names)
		if err != nil {
			return Type{}, err
		}
		data = &shape.Struct[Type]{Kind: kind, Fields: fields, Attributes: decl.Attrs}
	case syntax.DataEnum:
		variants := make([]shape.Variant[Type], len(decl.Variants))
		for i, v := range decl.Variants {
			kind, fields, err := c.translateFields(v.Fields, g.Names)
			if err != nil {
				return Type{}, err
			}
			variants[i] = shape.Variant[Type]{Name: c.intern(v.Name), Kind: kind, Fields: fields, Attributes: v.Attrs}
		}
		data = shape.NewEnum(variants, decl.Attrs...)
	default:
		return Type{}, diag.Invalidf(diag.SynExpectDataDecl, "invalid declaration kind").WithSpan(decl.Span)
	}
	return c.DataStructure(decl.Name, g, data), nil
}

// ParseDataDecl parses and registers a struct or enum declaration.
func (c *Context) ParseDataDecl(text string) (Type, error) {
	decl, err := parser.ParseDataDecl(c.addFragment("data", text))
	if err != nil {
		return Type{}, err
	}
	return c.TranslateDataDecl(decl)
}

func (c *Context) translateFields(sf syntax.Fields, names *NameMap) (shape.Kind, []shape.Field[Type], error) {
	var kind shape.Kind
	switch sf.Kind {
	case syntax.FieldsUnit:
		return shape.KindUnit, nil, nil
	case syntax.FieldsTuple:
		kind = shape.KindTuple
	case syntax.FieldsNamed:
		kind = shape.KindNamed
	}
	fields := make([]shape.Field[Type], len(sf.List))
	for i, fd := range sf.List {
		t, err := c.TranslateType(fd.Type, names)
		if err != nil {
			return 0, nil, err
		}
		acc := shape.Index(i)
		if kind == shape.KindNamed {
			acc = shape.Named(c.intern(fd.Name))
		}
		fields[i] = shape.Field[Type]{Accessor: acc, Element: t}
	}
	return kind, fields, nil
}
