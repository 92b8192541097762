package ir

import (
	"slices"
	"strings"

	"irkit/internal/diag"
	"irkit/internal/parser"
	"irkit/internal/syntax"
)

// Generics is a declared parameter list with its where clause and the name
// table used to resolve both.
type Generics struct {
	ctx         *Context
	Params      []Param
	Constraints []Constraint
	Names       *NameMap
}

func (c *Context) NewGenerics() *Generics {
	return &Generics{ctx: c, Names: NewNameMap()}
}

func (g *Generics) Context() *Context { return g.ctx }

func (g *Generics) Empty() bool {
	return len(g.Params) == 0 && len(g.Constraints) == 0
}

// SetParams declares parameters from their source text, e.g. "T",
// "T: Clone + 'a" or "'a: 'b". Bounds are hoisted into Constraints. On
// error g is left unchanged.
func (g *Generics) SetParams(decls ...string) error {
	params := make([]syntax.GenericParam, 0, len(decls))
	for _, decl := range decls {
		p, err := parser.ParseGenericParam(g.ctx.addFragment("generic-param", decl))
		if err != nil {
			return err
		}
		params = append(params, p)
	}
	return g.declare(params, nil)
}

// SetConstraints adds where-clause predicates, e.g. "T: Clone". Names are
// resolved against the parameters declared so far. On error g is left
// unchanged.
func (g *Generics) SetConstraints(clauses ...string) error {
	preds := make([]syntax.WherePredicate, 0, len(clauses))
	for _, clause := range clauses {
		p, err := parser.ParseWherePredicate(g.ctx.addFragment("where-predicate", clause))
		if err != nil {
			return err
		}
		preds = append(preds, p)
	}
	return g.declare(nil, preds)
}

// TranslateGenerics builds a Generics from a parsed parameter list. Every
// parameter is registered before any bound is translated, so bounds may
// refer to parameters declared later in the list.
func (c *Context) TranslateGenerics(sg syntax.Generics) (*Generics, error) {
	g := c.NewGenerics()
	if err := g.declare(sg.Params, sg.Where); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseGenerics parses `<...> where ...` text.
func (c *Context) ParseGenerics(text string) (*Generics, error) {
	sg, err := parser.ParseGenerics(c.addFragment("generics", text))
	if err != nil {
		return nil, err
	}
	return c.TranslateGenerics(sg)
}

func (g *Generics) declare(params []syntax.GenericParam, preds []syntax.WherePredicate) error {
	c := g.ctx
	names := g.Names.Clone()
	declared := slices.Clone(g.Params)
	constraints := slices.Clone(g.Constraints)

	minted := make([]Param, len(params))
	for i, sp := range params {
		if sp.Kind == syntax.ParamConst {
			return diag.Unsupportedf(diag.UnsConstParam, "const parameter %s", sp.Name).WithSpan(sp.Span)
		}
		if _, ok := names.Get(sp.Name); ok {
			return diag.Invalidf(diag.IRDuplicateParam, "parameter %s is declared twice", sp.Name).WithSpan(sp.Span)
		}
		kind := ParamType
		if sp.Kind == syntax.ParamLifetime {
			kind = ParamLifetime
		}
		p := c.mint(kind, sp.Name)
		names.insert(c.intern(sp.Name), p)
		declared = append(declared, p)
		minted[i] = p
	}

	for i, sp := range params {
		p := minted[i]
		switch sp.Kind {
		case syntax.ParamType:
			if len(sp.Bounds) == 0 {
				continue
			}
			bounds, err := c.translateBounds(sp.Bounds, names)
			if err != nil {
				return err
			}
			tp, _ := p.TypeParam()
			constraints = append(constraints, &TypePredicate{Bounded: c.TypeParamType(tp), Bounds: bounds})
		case syntax.ParamLifetime:
			if len(sp.LifetimeBounds) == 0 {
				continue
			}
			lts, err := c.resolveLifetimes(sp.LifetimeBounds, names)
			if err != nil {
				return err
			}
			lt, _ := p.Lifetime()
			constraints = append(constraints, &LifetimePredicate{Lifetime: lt, Bounds: lts})
		}
	}

	for _, pred := range preds {
		cons, err := c.translatePredicate(pred, names)
		if err != nil {
			return err
		}
		constraints = append(constraints, cons)
	}

	g.Params = declared
	g.Constraints = constraints
	g.Names = names
	return nil
}

// Merge appends other's parameters, constraints and names to g, as when
// method generics are combined with the generics of the enclosing impl.
func (g *Generics) Merge(other *Generics) error {
	if other == nil {
		return nil
	}
	if other.ctx != g.ctx {
		return diag.Invalidf(diag.IRForeignContext, "cannot merge generics of another context")
	}
	names := g.Names.Clone()
	for _, name := range other.Names.Names() {
		p, _ := other.Names.Get(name)
		if prev, ok := names.Get(name); ok && prev != p {
			return diag.Invalidf(diag.IRDuplicateParam, "parameter %s is declared twice", name)
		}
		names.insert(name, p)
	}
	for _, p := range other.Params {
		if !slices.Contains(g.Params, p) {
			g.Params = append(g.Params, p)
		}
	}
	g.Constraints = append(g.Constraints, other.Constraints...)
	g.Names = names
	return nil
}

// Clone copies g without renaming anything.
func (g *Generics) Clone() *Generics {
	return &Generics{
		ctx:         g.ctx,
		Params:      slices.Clone(g.Params),
		Constraints: slices.Clone(g.Constraints),
		Names:       g.Names.Clone(),
	}
}

// Symbols lists every symbol g mentions: parameters first, then whatever
// the constraints reference, each once. 'static is omitted.
func (g *Generics) Symbols() []Param {
	seen := make(map[Param]bool)
	var out []Param
	visit := func(p Param) {
		if p.IsStatic() || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, p := range g.Params {
		visit(p)
	}
	for _, cons := range g.Constraints {
		g.ctx.walkConstraint(cons, visit)
	}
	return out
}

// String renders `<T, 'a> where T: Clone` with the context printer.
func (g *Generics) String() string {
	if g.Empty() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(g.ParamList())
	if len(g.Constraints) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("where ")
		sb.WriteString(g.WhereClause())
	}
	return sb.String()
}

// WhereClause renders only the constraints, comma separated.
func (g *Generics) WhereClause() string {
	parts := make([]string, len(g.Constraints))
	for i, cons := range g.Constraints {
		parts[i] = g.ctx.constraintString(cons)
	}
	return strings.Join(parts, ", ")
}

// ParamList renders only the parameter list, `<T, 'a>`, or "" when empty.
func (g *Generics) ParamList() string {
	if len(g.Params) == 0 {
		return ""
	}
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = g.ctx.paramString(p)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (c *Context) paramString(p Param) string {
	if lt, ok := p.Lifetime(); ok {
		return c.printer.PrintLifetime(c, lt)
	}
	if tp, ok := p.TypeParam(); ok {
		return c.printer.PrintTypeParam(c, tp)
	}
	return c.ParamName(p)
}

func (c *Context) constraintString(cons Constraint) string {
	var sb strings.Builder
	switch cons := cons.(type) {
	case *TypePredicate:
		writeBinder(&sb, c, cons.Lifetimes)
		sb.WriteString(c.printer.PrintType(cons.Bounded))
		sb.WriteString(": ")
		for i, b := range cons.Bounds {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(c.printer.PrintBound(c, b))
		}
	case *LifetimePredicate:
		sb.WriteString(c.printer.PrintLifetime(c, cons.Lifetime))
		sb.WriteString(": ")
		for i, l := range cons.Bounds {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(c.printer.PrintLifetime(c, l))
		}
	default:
		diag.Fail(diag.IntUnhandledKind, "unhandled constraint %T", cons)
	}
	return sb.String()
}

func writeBinder(sb *strings.Builder, c *Context, lts []Lifetime) {
	if len(lts) == 0 {
		return
	}
	sb.WriteString("for<")
	for i, l := range lts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.printer.PrintLifetime(c, l))
	}
	sb.WriteString("> ")
}
