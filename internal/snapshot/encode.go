package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"irkit/internal/diag"
	"irkit/internal/ui"
)

type Format uint8

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
	FormatMsgpack
)

var formatNames = [...]string{
	FormatText:    "text",
	FormatJSON:    "json",
	FormatYAML:    "yaml",
	FormatMsgpack: "msgpack",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat accepts the names printed by Format.String; "" means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return 0, diag.Invalidf(diag.IOConfigError, "unknown output format %q", s)
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool { return f == FormatMsgpack }

type EncodeOptions struct {
	Format Format
	Color  bool
}

func Encode(w io.Writer, s *Snapshot, opts EncodeOptions) error {
	if opts.Format == FormatText {
		return Report(s, opts.Color).Render(w)
	}
	return Marshal(w, s, opts.Format)
}

// Marshal writes v in one of the structured formats.
func Marshal(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(v)
	}
	return diag.Invalidf(diag.IOConfigError, "format %s is not a structured format", f)
}

// Decode reads a snapshot written by Encode. Text output is not decodable.
func Decode(r io.Reader, f Format) (*Snapshot, error) {
	var s Snapshot
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&s)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&s)
	default:
		return nil, diag.Unsupportedf(diag.IOConfigError, "format %s cannot be decoded", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", f, err)
	}
	if s.Schema != Schema {
		return nil, diag.Invalidf(diag.IOConfigError, "snapshot schema %d, want %d", s.Schema, Schema)
	}
	return &s, nil
}

// Report lays the snapshot out as a ui.Report.
func Report(s *Snapshot, color bool) *ui.Report {
	title := "context " + s.Context
	if s.Label != "" {
		title = s.Label + " (" + title + ")"
	}
	r := &ui.Report{Title: title, Color: color}

	st := r.Section("stats")
	st.Row("types", strconv.FormatUint(uint64(s.Stats.Types), 10))
	st.Row("values", strconv.FormatUint(uint64(s.Stats.Values), 10))
	st.Row("invocations", strconv.FormatUint(uint64(s.Stats.Invocations), 10))
	st.Row("macros", strconv.FormatUint(uint64(s.Stats.Macros), 10))
	st.Row("lifetimes", strconv.FormatUint(uint64(s.Stats.Lifetimes), 10))
	st.Row("type params", strconv.FormatUint(uint64(s.Stats.TypeParams), 10))
	st.Row("fragments", strconv.Itoa(s.Stats.Fragments))

	if len(s.Generics) > 0 {
		gs := r.Section("generics")
		for _, g := range s.Generics {
			gs.Row(g.Name, g.Text, strings.Join(g.Symbols, " "))
		}
	}
	if len(s.Types) > 0 {
		ts := r.Section("types")
		for _, t := range s.Types {
			ts.Row("#"+strconv.FormatUint(uint64(t.ID), 10), t.Kind, t.Text)
		}
	}
	if len(s.Values) > 0 {
		vs := r.Section("values")
		for _, v := range s.Values {
			ty := v.Type
			if ty == "" {
				ty = "-"
			}
			vs.Row("#"+strconv.FormatUint(uint64(v.ID), 10), v.Kind, ty)
		}
	}
	return r
}
