package ir

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"irkit/internal/arena"
	"irkit/internal/diag"
	"irkit/internal/trace"
)

// TypeID identifies a type inside a Context.
type TypeID = arena.Ref

// NoType marks the absence of a type.
const NoType TypeID = arena.NoRef

// Kind enumerates type node kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInfer
	KindTuple // the empty tuple is unit
	KindStr
	KindReference
	KindDereference
	KindTraitObject
	KindData
	KindPath
	KindTypeParam
)

// typeKinds lists every valid kind; tests use it to check switches.
var typeKinds = []Kind{
	KindInfer, KindTuple, KindStr, KindReference, KindDereference,
	KindTraitObject, KindData, KindPath, KindTypeParam,
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInfer:
		return "infer"
	case KindTuple:
		return "tuple"
	case KindStr:
		return "str"
	case KindReference:
		return "reference"
	case KindDereference:
		return "dereference"
	case KindTraitObject:
		return "trait-object"
	case KindData:
		return "data"
	case KindPath:
		return "path"
	case KindTypeParam:
		return "type-param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// typeDesc is the compact descriptor stored per TypeID. It doubles as the
// hash-consing key: Payload points into a side table whose slots are
// themselves deduplicated, so equal structure yields equal descriptors.
type typeDesc struct {
	Kind        Kind
	Elem        TypeID // reference, dereference
	Mutable     bool   // reference
	HasLifetime bool   // reference
	Lifetime    Lifetime
	Payload     uint32 // tuple/path/bounds/data slot, or the type param
}

type typeTable struct {
	descs *arena.Arena[typeDesc]
	index map[typeDesc]TypeID

	tuples     [][]TypeID
	tupleIndex map[string]uint32
	paths      []Path
	pathIndex  map[string]uint32
	objects    [][]Bound
	objectIdx  map[string]uint32
	datas      []*DataStructure // nominal: never deduplicated
}

func newTypeTable() typeTable {
	return typeTable{
		descs:      arena.New[typeDesc]("types", 64),
		index:      make(map[typeDesc]TypeID, 64),
		tuples:     [][]TypeID{nil}, // slot 0 is the unit tuple
		tupleIndex: map[string]uint32{"": 0},
		paths:      []Path{{}},
		pathIndex:  map[string]uint32{},
		objects:    [][]Bound{nil},
		objectIdx:  map[string]uint32{},
		datas:      []*DataStructure{nil},
	}
}

func (tt *typeTable) len() uint32 { return tt.descs.Len() }

func slot(n int) uint32 {
	s, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("type side table overflow: %w", err))
	}
	return s
}

// internType returns the TypeID for desc, creating it on first use.
func (c *Context) internType(desc typeDesc) Type {
	if id, ok := c.types.index[desc]; ok {
		return Type{ctx: c, ID: id}
	}
	id := c.types.descs.Push(desc)
	c.types.index[desc] = id
	c.point(trace.ScopeNode, "push:type", desc.Kind.String(), "id", strconv.FormatUint(uint64(id), 10))
	return Type{ctx: c, ID: id}
}

func (c *Context) desc(t Type) typeDesc {
	c.own(t)
	d, ok := c.types.descs.Lookup(t.ID)
	if !ok {
		diag.Fail(diag.IntBadHandle, "unknown type %d", t.ID)
	}
	return d
}

// Type is a handle to an interned type node.
type Type struct {
	ctx *Context
	ID  TypeID
}

// IsValid reports whether t refers to a node.
func (t Type) IsValid() bool { return t.ctx != nil && t.ID != NoType }

func (t Type) Context() *Context { return t.ctx }

// ResolveType makes every Type a TypeResolver.
func (t Type) ResolveType(ctx *Context) Type {
	ctx.own(t)
	return t
}

func (t Type) Kind() Kind {
	if !t.IsValid() {
		return KindInvalid
	}
	return t.ctx.desc(t).Kind
}

func (t Type) String() string {
	if !t.IsValid() {
		return "<invalid>"
	}
	return t.ctx.printer.PrintType(t)
}

// Constructors -------------------------------------------------------------

func (c *Context) Unit() Type {
	return c.Tuple()
}

// Tuple builds a tuple type; Tuple() is unit.
func (c *Context) Tuple(elems ...Type) Type {
	ids := make([]TypeID, len(elems))
	var key strings.Builder
	for i, e := range elems {
		c.own(e)
		ids[i] = e.ID
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(e.ID), 10))
	}
	s, ok := c.types.tupleIndex[key.String()]
	if !ok {
		s = slot(len(c.types.tuples))
		c.types.tuples = append(c.types.tuples, ids)
		c.types.tupleIndex[key.String()] = s
	}
	return c.internType(typeDesc{Kind: KindTuple, Payload: s})
}

// Str is the primitive text type.
func (c *Context) Str() Type {
	return c.internType(typeDesc{Kind: KindStr})
}

// Infer is the placeholder for a type left to the target compiler.
func (c *Context) Infer() Type {
	return c.internType(typeDesc{Kind: KindInfer})
}

// Reference wraps t in `&t`. References of references keep both layers.
func (t Type) Reference() Type {
	return t.ctx.reference(t, false, nil)
}

func (t Type) ReferenceMut() Type {
	return t.ctx.reference(t, true, nil)
}

// ReferenceWithLifetime builds `&'name t`, resolving name against names.
func (t Type) ReferenceWithLifetime(name string, names *NameMap) (Type, error) {
	lt, err := names.Lifetime(name)
	if err != nil {
		return Type{}, err
	}
	return t.ctx.reference(t, false, &lt), nil
}

func (t Type) ReferenceMutWithLifetime(name string, names *NameMap) (Type, error) {
	lt, err := names.Lifetime(name)
	if err != nil {
		return Type{}, err
	}
	return t.ctx.reference(t, true, &lt), nil
}

func (c *Context) reference(elem Type, mutable bool, lt *Lifetime) Type {
	if c == nil {
		diag.Fail(diag.IntBadHandle, "reference of a zero Type handle")
	}
	c.own(elem)
	d := typeDesc{Kind: KindReference, Elem: elem.ID, Mutable: mutable}
	if lt != nil {
		d.HasLifetime = true
		d.Lifetime = *lt
	}
	return c.internType(d)
}

func (c *Context) dereferenceNode(elem Type) Type {
	c.own(elem)
	return c.internType(typeDesc{Kind: KindDereference, Elem: elem.ID})
}

// TypeParamType returns the type that refers to tp.
func (c *Context) TypeParamType(tp TypeParam) Type {
	return c.internType(typeDesc{Kind: KindTypeParam, Payload: uint32(tp)})
}

// PathType returns the type named by p.
func (c *Context) PathType(p Path) Type {
	if p.ctx != nil && p.ctx != c {
		diag.Fail(diag.IRForeignContext, "path %s belongs to another context", p)
	}
	p.ctx = c
	key := c.pathKey(p)
	s, ok := c.types.pathIndex[key]
	if !ok {
		s = slot(len(c.types.paths))
		c.types.paths = append(c.types.paths, p.clone())
		c.types.pathIndex[key] = s
	}
	return c.internType(typeDesc{Kind: KindPath, Payload: s})
}

// TraitObjectOf builds a trait object from already translated bounds.
func (c *Context) TraitObjectOf(bounds ...Bound) Type {
	var key strings.Builder
	for i, b := range bounds {
		if i > 0 {
			key.WriteByte('+')
		}
		c.writeBoundKey(&key, b)
	}
	s, ok := c.types.objectIdx[key.String()]
	if !ok {
		s = slot(len(c.types.objects))
		c.types.objects = append(c.types.objects, cloneBounds(bounds))
		c.types.objectIdx[key.String()] = s
	}
	return c.internType(typeDesc{Kind: KindTraitObject, Payload: s})
}

// DataStructure registers a named struct or enum type. Every call creates a
// distinct type even for identical arguments. A nil g means no generics.
func (c *Context) DataStructure(name string, g *Generics, data Shape) Type {
	if g == nil {
		g = c.NewGenerics()
	} else if g.ctx != c {
		diag.Fail(diag.IRForeignContext, "generics of %s belong to another context", name)
	}
	if data == nil {
		diag.Fail(diag.IntNotData, "data structure %s has no shape", name)
	}
	s := slot(len(c.types.datas))
	c.types.datas = append(c.types.datas, &DataStructure{
		Name:     c.intern(name),
		Generics: g,
		Data:     data,
	})
	t := c.types.descs.Push(typeDesc{Kind: KindData, Payload: s})
	c.point(trace.ScopeNode, "push:type", KindData.String(), "name", name)
	return Type{ctx: c, ID: t}
}
