// Package snapshot records an inventory of an ir.Context: its stats, every
// interned type and every value node. Snapshots feed the CLI and golden tests
// and can be encoded as text, JSON, YAML or msgpack.
package snapshot

import (
	"irkit/internal/ir"
)

// Schema is bumped when the encoded layout changes.
const Schema uint16 = 1

type Snapshot struct {
	Schema   uint16          `json:"schema" yaml:"schema" msgpack:"schema"`
	Context  string          `json:"context" yaml:"context" msgpack:"context"`
	Label    string          `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Stats    Stats           `json:"stats" yaml:"stats" msgpack:"stats"`
	Generics []GenericsEntry `json:"generics,omitempty" yaml:"generics,omitempty" msgpack:"generics,omitempty"`
	Types    []TypeEntry     `json:"types" yaml:"types" msgpack:"types"`
	Values   []ValueEntry    `json:"values" yaml:"values" msgpack:"values"`
}

type Stats struct {
	Types       uint32 `json:"types" yaml:"types" msgpack:"types"`
	Values      uint32 `json:"values" yaml:"values" msgpack:"values"`
	Invocations uint32 `json:"invocations" yaml:"invocations" msgpack:"invocations"`
	Macros      uint32 `json:"macros" yaml:"macros" msgpack:"macros"`
	Lifetimes   uint32 `json:"lifetimes" yaml:"lifetimes" msgpack:"lifetimes"`
	TypeParams  uint32 `json:"type_params" yaml:"type_params" msgpack:"type_params"`
	Fragments   int    `json:"fragments" yaml:"fragments" msgpack:"fragments"`
}

type GenericsEntry struct {
	Name    string   `json:"name" yaml:"name" msgpack:"name"`
	Text    string   `json:"text" yaml:"text" msgpack:"text"`
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty" msgpack:"symbols,omitempty"`
}

type TypeEntry struct {
	ID      uint32   `json:"id" yaml:"id" msgpack:"id"`
	Kind    string   `json:"kind" yaml:"kind" msgpack:"kind"`
	Text    string   `json:"text" yaml:"text" msgpack:"text"`
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty" msgpack:"symbols,omitempty"`
}

type ValueEntry struct {
	ID   uint32 `json:"id" yaml:"id" msgpack:"id"`
	Kind string `json:"kind" yaml:"kind" msgpack:"kind"`
	// Type is empty for data literals and macro invocations.
	Type string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
}

// Named pairs a Generics with the label it is reported under.
type Named struct {
	Name     string
	Generics *ir.Generics
}

// Take inventories ctx. The snapshot is a copy; later changes to ctx are not
// reflected in it.
func Take(ctx *ir.Context, label string, generics ...Named) *Snapshot {
	// Typing values may intern new types, so values go first.
	values := ctx.Values()
	ventries := make([]ValueEntry, 0, len(values))
	for _, v := range values {
		e := ValueEntry{ID: uint32(v.ID), Kind: v.Kind().String()}
		if t, ok := v.LookupType(); ok {
			e.Type = t.String()
		}
		ventries = append(ventries, e)
	}

	s := &Snapshot{
		Schema:  Schema,
		Context: ctx.ID().String(),
		Label:   label,
		Values:  ventries,
	}
	for _, ng := range generics {
		s.Generics = append(s.Generics, GenericsEntry{
			Name:    ng.Name,
			Text:    ng.Generics.String(),
			Symbols: paramNames(ctx, ng.Generics.Symbols()),
		})
	}
	types := ctx.Types()
	s.Types = make([]TypeEntry, 0, len(types))
	for _, t := range types {
		s.Types = append(s.Types, TypeEntry{
			ID:      uint32(t.ID),
			Kind:    t.Kind().String(),
			Text:    t.String(),
			Symbols: paramNames(ctx, ctx.TypeSymbols(t)),
		})
	}
	st := ctx.Stats()
	s.Stats = Stats{
		Types:       st.Types,
		Values:      st.Values,
		Invocations: st.Invocations,
		Macros:      st.Macros,
		Lifetimes:   st.Lifetimes,
		TypeParams:  st.TypeParams,
		Fragments:   st.Fragments,
	}
	return s
}

func paramNames(ctx *ir.Context, ps []ir.Param) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = ctx.ParamName(p)
	}
	return out
}
