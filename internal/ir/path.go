package ir

import (
	"slices"
	"strconv"
	"strings"
)

// Path is a module-qualified name whose segments may carry generic
// arguments. It is a value; a Path becomes a type through PathType.
type Path struct {
	ctx      *Context
	Global   bool
	Segments []PathSegment
}

type PathSegment struct {
	Ident string
	Args  *GenericArgs // nil when the segment has no arguments
}

// GenericArgs holds either angle-bracketed arguments or the parenthesized
// Fn sugar `(A, B) -> C`.
type GenericArgs struct {
	Paren  bool
	Args   []GenericArg // angle form
	Inputs []Type       // paren form
	Output Type         // paren form; zero Type when there is no `-> T`
}

type ArgKind uint8

const (
	ArgType       ArgKind = iota // T
	ArgLifetime                  // 'a
	ArgBinding                   // Item = T
	ArgConstraint                // Item: Bound
)

func (k ArgKind) String() string {
	switch k {
	case ArgType:
		return "type"
	case ArgLifetime:
		return "lifetime"
	case ArgBinding:
		return "binding"
	case ArgConstraint:
		return "constraint"
	default:
		return "ArgKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type GenericArg struct {
	Kind     ArgKind
	Type     Type     // ArgType, ArgBinding
	Lifetime Lifetime // ArgLifetime
	Ident    string   // ArgBinding, ArgConstraint
	Bounds   []Bound  // ArgConstraint
}

func (p Path) Context() *Context { return p.ctx }

// Ident returns the last segment's identifier.
func (p Path) Ident() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Ident
}

// ResolveType makes a Path usable wherever a TypeResolver is accepted.
func (p Path) ResolveType(ctx *Context) Type {
	return ctx.PathType(p)
}

func (p Path) String() string {
	if p.ctx == nil {
		return SourcePrinter{}.PrintPath(p)
	}
	return p.ctx.printer.PrintPath(p)
}

// pathKey is the deduplication key of a path inside the type table.
func (c *Context) pathKey(p Path) string {
	var sb strings.Builder
	c.writePathKey(&sb, p)
	return sb.String()
}

func (c *Context) writePathKey(sb *strings.Builder, p Path) {
	if p.Global {
		sb.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Ident)
		if seg.Args == nil {
			continue
		}
		if seg.Args.Paren {
			sb.WriteByte('(')
			writeIDs(sb, c.typeIDs(seg.Args.Inputs))
			sb.WriteString(")->")
			if seg.Args.Output.IsValid() {
				c.own(seg.Args.Output)
				sb.WriteString(strconv.FormatUint(uint64(seg.Args.Output.ID), 10))
			}
			continue
		}
		sb.WriteByte('<')
		for j, arg := range seg.Args.Args {
			if j > 0 {
				sb.WriteByte(',')
			}
			switch arg.Kind {
			case ArgType:
				c.own(arg.Type)
				sb.WriteString("t" + strconv.FormatUint(uint64(arg.Type.ID), 10))
			case ArgLifetime:
				sb.WriteString("l" + strconv.FormatUint(uint64(arg.Lifetime), 10))
			case ArgBinding:
				c.own(arg.Type)
				sb.WriteString("b" + arg.Ident + "=" + strconv.FormatUint(uint64(arg.Type.ID), 10))
			case ArgConstraint:
				sb.WriteString("c" + arg.Ident + ":")
				for k, b := range arg.Bounds {
					if k > 0 {
						sb.WriteByte('+')
					}
					c.writeBoundKey(sb, b)
				}
			}
		}
		sb.WriteByte('>')
	}
}

func writeIDs(sb *strings.Builder, ids []TypeID) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
}

// clone copies every slice reachable from p so interned paths cannot be
// changed through a caller's copy.
func (p Path) clone() Path {
	p.Segments = slices.Clone(p.Segments)
	for i, seg := range p.Segments {
		if seg.Args == nil {
			continue
		}
		args := *seg.Args
		args.Args = slices.Clone(args.Args)
		for j := range args.Args {
			args.Args[j].Bounds = cloneBounds(args.Args[j].Bounds)
		}
		args.Inputs = slices.Clone(args.Inputs)
		p.Segments[i].Args = &args
	}
	return p
}
