package ir

import (
	"slices"

	"irkit/internal/diag"
)

// NameMap resolves parameter names (`T`, `'a`) to symbols. It is seeded
// with 'static and is the single source of truth for name resolution while
// translating syntax against a Generics.
type NameMap struct {
	byName map[string]Param
	order  []string
}

func NewNameMap() *NameMap {
	return &NameMap{
		byName: map[string]Param{"'static": StaticParam},
		order:  []string{"'static"},
	}
}

func (m *NameMap) Get(name string) (Param, bool) {
	if m == nil {
		if name == "'static" {
			return StaticParam, true
		}
		return Param{}, false
	}
	p, ok := m.byName[name]
	return p, ok
}

// Lifetime resolves a quoted lifetime name.
func (m *NameMap) Lifetime(name string) (Lifetime, error) {
	p, ok := m.Get(name)
	if !ok {
		return 0, diag.Invalidf(diag.IRUnknownName, "unknown lifetime %s", name)
	}
	lt, ok := p.Lifetime()
	if !ok {
		return 0, diag.Invalidf(diag.IRNotALifetime, "%s is a %s parameter, not a lifetime", name, p.Kind)
	}
	return lt, nil
}

func (m *NameMap) TypeParam(name string) (TypeParam, error) {
	p, ok := m.Get(name)
	if !ok {
		return 0, diag.Invalidf(diag.IRUnknownName, "unknown type parameter %s", name)
	}
	tp, ok := p.TypeParam()
	if !ok {
		return 0, diag.Invalidf(diag.IRNotATypeParam, "%s is a %s parameter, not a type parameter", name, p.Kind)
	}
	return tp, nil
}

// Names lists the registered names in insertion order, 'static first.
func (m *NameMap) Names() []string {
	if m == nil {
		return []string{"'static"}
	}
	return slices.Clone(m.order)
}

func (m *NameMap) Len() int {
	if m == nil {
		return 1
	}
	return len(m.order)
}

// Has reports whether p is bound to some name.
func (m *NameMap) Has(p Param) bool {
	if m == nil {
		return p == StaticParam
	}
	for _, name := range m.order {
		if m.byName[name] == p {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (m *NameMap) Clone() *NameMap {
	if m == nil {
		return NewNameMap()
	}
	out := &NameMap{
		byName: make(map[string]Param, len(m.byName)),
		order:  slices.Clone(m.order),
	}
	for k, v := range m.byName {
		out.byName[k] = v
	}
	return out
}

// insert binds name to p. A later binding of the same name shadows the
// earlier one but keeps its position.
func (m *NameMap) insert(name string, p Param) {
	if _, ok := m.byName[name]; !ok {
		m.order = append(m.order, name)
	}
	m.byName[name] = p
}
