package ir

import (
	"slices"
	"strings"

	"irkit/internal/diag"
	"irkit/internal/parser"
)

// Module is a qualified-name prefix such as `::std::fmt`.
type Module struct {
	ctx      *Context
	global   bool
	segments []string
}

// RootModule is the global root, `::`.
func (c *Context) RootModule() Module {
	return Module{ctx: c, global: true}
}

// RelativeModule starts a path relative to the current scope.
func (c *Context) RelativeModule(segments ...string) Module {
	m := Module{ctx: c}
	for _, s := range segments {
		m = m.Module(s)
	}
	return m
}

// Module returns the child module name.
func (m Module) Module(name string) Module {
	segs := slices.Clone(m.segments)
	return Module{ctx: m.ctx, global: m.global, segments: append(segs, m.ctx.intern(name))}
}

func (m Module) Segments() []string { return slices.Clone(m.segments) }

func (m Module) Global() bool { return m.global }

func (m Module) String() string {
	s := strings.Join(m.segments, "::")
	if m.global {
		return "::" + s
	}
	return s
}

// Path appends a final segment, which may carry generic arguments resolved
// against names: m.Path("Vec<T>", g.Names).
func (m Module) Path(segment string, names *NameMap) (Path, error) {
	sp, err := parser.ParsePath(m.ctx.addFragment("path-segment", segment))
	if err != nil {
		return Path{}, err
	}
	if sp.Global || len(sp.Segments) != 1 {
		return Path{}, diag.Invalidf(diag.SynUnexpectedToken, "%q is not a single path segment", segment).WithSpan(sp.Span)
	}
	leaf, err := m.ctx.translatePath(sp, names)
	if err != nil {
		return Path{}, err
	}
	return m.leaf(leaf.Segments[0]), nil
}

// PathType is Path followed by PathType on the context.
func (m Module) PathType(segment string, names *NameMap) (Type, error) {
	p, err := m.Path(segment, names)
	if err != nil {
		return Type{}, err
	}
	return m.ctx.PathType(p), nil
}

// InvokeMacro records `name!(values...)` and returns the call expression.
func (m Module) InvokeMacro(name string, values ...Value) Value {
	p := m.leaf(PathSegment{Ident: m.ctx.intern(name)})
	id := m.ctx.macros.Push(MacroInvocation{Path: p, Args: m.ctx.valueIDs(values)})
	return m.ctx.pushValue(ValueMacro, MacroData{Macro: id})
}

func (m Module) leaf(seg PathSegment) Path {
	segs := make([]PathSegment, 0, len(m.segments)+1)
	for _, s := range m.segments {
		segs = append(segs, PathSegment{Ident: s})
	}
	return Path{ctx: m.ctx, Global: m.global, Segments: append(segs, seg)}
}

// MacroInvocation is a recorded `path!(args)` call.
type MacroInvocation struct {
	Path Path
	Args []ValueID
}

func (c *Context) MacroInvocation(id MacroID) MacroInvocation {
	mi, ok := c.macros.Lookup(id)
	if !ok {
		diag.Fail(diag.IntBadHandle, "unknown macro invocation %d", id)
	}
	return mi
}

// Macro returns the invocation behind a macro value.
func (v Value) Macro() (MacroInvocation, bool) {
	d, ok := v.Node().Data.(MacroData)
	if !ok {
		return MacroInvocation{}, false
	}
	return v.ctx.MacroInvocation(d.Macro), true
}
