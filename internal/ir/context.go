package ir

import (
	"github.com/google/uuid"

	"irkit/internal/arena"
	"irkit/internal/diag"
	"irkit/internal/source"
	"irkit/internal/trace"
)

// Context owns every node of one generation pass. A Context is not safe for
// concurrent use; independent contexts are.
type Context struct {
	id uuid.UUID

	types  typeTable
	values *arena.Arena[ValueNode]
	calls  *arena.Arena[Invocation]
	macros *arena.Arena[MacroInvocation]

	lifetimes  arena.Counter
	typeParams arena.Counter
	paramNames map[Param]string

	strings   *source.Interner
	fragments *source.FragmentSet

	printer Printer
	tracer  trace.Tracer
}

type Option func(*Context)

// WithTracer routes node and step events to t.
func WithTracer(t trace.Tracer) Option {
	return func(c *Context) {
		if t != nil {
			c.tracer = t
		}
	}
}

func WithPrinter(p Printer) Option {
	return func(c *Context) {
		if p != nil {
			c.printer = p
		}
	}
}

func NewContext(opts ...Option) *Context {
	c := &Context{
		id:         uuid.New(),
		types:      newTypeTable(),
		values:     arena.New[ValueNode]("values", 64),
		calls:      arena.New[Invocation]("invocations", 8),
		macros:     arena.New[MacroInvocation]("macros", 8),
		lifetimes:  arena.NewCounter("lifetimes"),
		typeParams: arena.NewCounter("type-params"),
		paramNames: map[Param]string{StaticParam: "'static"},
		strings:    source.NewInterner(),
		fragments:  source.NewFragmentSet(),
		printer:    SourcePrinter{},
		tracer:     trace.Nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID identifies the pass in snapshots and trace output.
func (c *Context) ID() uuid.UUID { return c.id }

func (c *Context) SetPrinter(p Printer) {
	if p == nil {
		p = SourcePrinter{}
	}
	c.printer = p
}

func (c *Context) Printer() Printer { return c.printer }

func (c *Context) Tracer() trace.Tracer { return c.tracer }

// Fragments holds the text of every fragment parsed through this context, so
// error spans can be resolved to line and column.
func (c *Context) Fragments() *source.FragmentSet { return c.fragments }

// Strings exposes the identifier interner.
func (c *Context) Strings() *source.Interner { return c.strings }

// Run executes fn as one generation step. Internal IR failures raised while
// fn runs are returned as errors instead of unwinding further.
func (c *Context) Run(name string, fn func() error) (err error) {
	span := trace.Begin(c.tracer, trace.ScopePass, name, 0).WithExtra("ctx", c.id.String())
	defer func() {
		if err != nil {
			span.End(err.Error())
		} else {
			span.End("")
		}
	}()
	defer diag.Recover(&err)
	return fn()
}

// Types returns a handle for every interned type in creation order.
func (c *Context) Types() []Type {
	n := c.types.len()
	out := make([]Type, 0, n)
	for id := TypeID(1); id <= TypeID(n); id++ {
		out = append(out, Type{ctx: c, ID: id})
	}
	return out
}

// Values returns a handle for every value node in creation order.
func (c *Context) Values() []Value {
	n := c.values.Len()
	out := make([]Value, 0, n)
	for id := ValueID(1); id <= ValueID(n); id++ {
		out = append(out, Value{ctx: c, ID: id})
	}
	return out
}

// intern returns the canonical copy of an identifier.
func (c *Context) intern(s string) string {
	return c.strings.MustLookup(c.strings.Intern(s))
}

func (c *Context) addFragment(kind, text string) *source.File {
	id := c.fragments.AddVirtual(kind, text)
	return c.fragments.Get(id)
}

func (c *Context) own(t Type) {
	if t.ctx != c {
		if t.ctx == nil {
			diag.Fail(diag.IntBadHandle, "zero Type handle")
		}
		diag.Fail(diag.IRForeignContext, "type %d belongs to another context", t.ID)
	}
}

func (c *Context) ownValue(v Value) {
	if v.ctx != c {
		if v.ctx == nil {
			diag.Fail(diag.IntBadHandle, "zero Value handle")
		}
		diag.Fail(diag.IRForeignContext, "value %d belongs to another context", v.ID)
	}
}

func (c *Context) point(scope trace.Scope, name, detail string, extra ...string) {
	trace.Point(c.tracer, scope, name, detail, extra...)
}

// Stats reports arena sizes and minted symbol counts.
type Stats struct {
	Types       uint32
	Values      uint32
	Invocations uint32
	Macros      uint32
	Lifetimes   uint32
	TypeParams  uint32
	Fragments   int
}

func (c *Context) Stats() Stats {
	return Stats{
		Types:       c.types.len(),
		Values:      c.values.Len(),
		Invocations: c.calls.Len(),
		Macros:      c.macros.Len(),
		Lifetimes:   c.lifetimes.Peek(),
		TypeParams:  c.typeParams.Peek(),
		Fragments:   c.fragments.Len(),
	}
}
