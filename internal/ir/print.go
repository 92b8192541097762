package ir

import (
	"strings"

	"irkit/internal/diag"
)

// Printer renders IR back to target-language text. Type.String, Path.String
// and Type.Name go through the Context's printer, so a caller can swap in
// its own rendering with SetPrinter.
type Printer interface {
	PrintType(t Type) string
	PrintPath(p Path) string
	PrintTypeParam(ctx *Context, tp TypeParam) string
	PrintLifetime(ctx *Context, l Lifetime) string
	PrintBound(ctx *Context, b Bound) string
}

// SourcePrinter prints types the way they are written in source.
type SourcePrinter struct{}

var _ Printer = SourcePrinter{}

func (sp SourcePrinter) PrintType(t Type) string {
	var sb strings.Builder
	sp.writeType(&sb, t)
	return sb.String()
}

func (sp SourcePrinter) writeType(sb *strings.Builder, t Type) {
	c := t.ctx
	d := c.desc(t)
	switch d.Kind {
	case KindInfer:
		sb.WriteByte('_')
	case KindTuple:
		elems := c.types.tuples[d.Payload]
		sb.WriteByte('(')
		for i, e := range elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sp.writeType(sb, Type{ctx: c, ID: e})
		}
		if len(elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case KindStr:
		sb.WriteString("str")
	case KindReference:
		sb.WriteByte('&')
		if d.HasLifetime {
			sb.WriteString(sp.PrintLifetime(c, d.Lifetime))
			sb.WriteByte(' ')
		}
		if d.Mutable {
			sb.WriteString("mut ")
		}
		sp.writeType(sb, Type{ctx: c, ID: d.Elem})
	case KindDereference:
		sb.WriteByte('<')
		sp.writeType(sb, Type{ctx: c, ID: d.Elem})
		sb.WriteString(" as ::core::ops::Deref>::Target")
	case KindTraitObject:
		sb.WriteString("dyn ")
		for i, b := range c.types.objects[d.Payload] {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(sp.PrintBound(c, b))
		}
	case KindData:
		ds := c.types.datas[d.Payload]
		sb.WriteString(ds.Name)
		sb.WriteString(ds.Generics.ParamList())
	case KindPath:
		sp.writePath(sb, c.types.paths[d.Payload])
	case KindTypeParam:
		sb.WriteString(sp.PrintTypeParam(c, TypeParam(d.Payload)))
	default:
		diag.Fail(diag.IntUnhandledKind, "PrintType: unhandled kind %s", d.Kind)
	}
}

func (sp SourcePrinter) PrintPath(p Path) string {
	var sb strings.Builder
	sp.writePath(&sb, p)
	return sb.String()
}

func (sp SourcePrinter) writePath(sb *strings.Builder, p Path) {
	if p.Global {
		sb.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Ident)
		if seg.Args != nil {
			sp.writeArgs(sb, p.ctx, seg.Args)
		}
	}
}

func (sp SourcePrinter) writeArgs(sb *strings.Builder, c *Context, a *GenericArgs) {
	if a.Paren {
		sb.WriteByte('(')
		for i, in := range a.Inputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sp.writeType(sb, in)
		}
		sb.WriteByte(')')
		if a.Output.IsValid() {
			sb.WriteString(" -> ")
			sp.writeType(sb, a.Output)
		}
		return
	}
	sb.WriteByte('<')
	for i, arg := range a.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch arg.Kind {
		case ArgType:
			sp.writeType(sb, arg.Type)
		case ArgLifetime:
			sb.WriteString(sp.PrintLifetime(c, arg.Lifetime))
		case ArgBinding:
			sb.WriteString(arg.Ident)
			sb.WriteString(" = ")
			sp.writeType(sb, arg.Type)
		case ArgConstraint:
			sb.WriteString(arg.Ident)
			sb.WriteString(": ")
			for j, b := range arg.Bounds {
				if j > 0 {
					sb.WriteString(" + ")
				}
				sb.WriteString(sp.PrintBound(c, b))
			}
		}
	}
	sb.WriteByte('>')
}

func (SourcePrinter) PrintTypeParam(ctx *Context, tp TypeParam) string {
	return ctx.ParamName(tp.Param())
}

func (SourcePrinter) PrintLifetime(ctx *Context, l Lifetime) string {
	return ctx.ParamName(l.Param())
}

func (sp SourcePrinter) PrintBound(ctx *Context, b Bound) string {
	if b.Kind == BoundLifetime {
		return sp.PrintLifetime(ctx, b.Lifetime)
	}
	var sb strings.Builder
	if len(b.Lifetimes) > 0 {
		sb.WriteString("for<")
		for i, l := range b.Lifetimes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(sp.PrintLifetime(ctx, l))
		}
		sb.WriteString("> ")
	}
	if b.Maybe {
		sb.WriteByte('?')
	}
	sp.writePath(&sb, b.Path)
	return sb.String()
}
