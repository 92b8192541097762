package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"irkit/internal/diag"
)

// Fragments is one batch file. Every file is translated in its own context.
//
//	label = "iterators"
//
//	[[generics]]
//	name = "impl"
//	params = "<'a, T: Clone>"
//	where = ["T: Iterator<Item = &'a str>"]
//	fresh = true
//
//	[[types]]
//	scope = "impl"
//	text = "&'a mut T"
//
//	[[data]]
//	text = "struct Wrapper<'a, T>(&'a T);"
type Fragments struct {
	Path     string         `toml:"-"`
	Label    string         `toml:"label"`
	Generics []GenericsDecl `toml:"generics"`
	Types    []TypeDecl     `toml:"types"`
	Data     []DataDecl     `toml:"data"`
}

type GenericsDecl struct {
	Name   string   `toml:"name"`
	Params string   `toml:"params"`
	Where  []string `toml:"where"`
	// Fresh also reports a fresh clone of the declaration.
	Fresh bool `toml:"fresh"`
}

type TypeDecl struct {
	// Scope names the generics whose parameters the type may mention.
	Scope string `toml:"scope"`
	Text  string `toml:"text"`
	// Expect, when set, is compared with the printed type.
	Expect string `toml:"expect"`
}

type DataDecl struct {
	Text string `toml:"text"`
}

func LoadFragments(path string) (*Fragments, error) {
	var f Fragments
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, diag.Invalidf(diag.IOLoadFileError, "%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, diag.Invalidf(diag.IOLoadFileError, "%s: unknown key %s", path, undecoded[0].String())
	}
	f.Path = path
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Validate checks names and references; fragment text is checked when it is
// translated.
func (f *Fragments) Validate() error {
	names := make(map[string]bool, len(f.Generics))
	for i, g := range f.Generics {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return diag.Invalidf(diag.IOConfigError, "generics[%d]: missing name", i)
		}
		if names[name] {
			return diag.Invalidf(diag.IOConfigError, "generics[%d]: duplicate name %q", i, name)
		}
		names[name] = true
	}
	for i, t := range f.Types {
		if strings.TrimSpace(t.Text) == "" {
			return diag.Invalidf(diag.IOConfigError, "types[%d]: missing text", i)
		}
		if t.Scope != "" && !names[t.Scope] {
			return diag.Invalidf(diag.IOConfigError, "types[%d]: unknown scope %q", i, t.Scope)
		}
	}
	for i, d := range f.Data {
		if strings.TrimSpace(d.Text) == "" {
			return diag.Invalidf(diag.IOConfigError, "data[%d]: missing text", i)
		}
	}
	return nil
}

// Count is the number of fragments in the file.
func (f *Fragments) Count() int {
	return len(f.Generics) + len(f.Types) + len(f.Data)
}
