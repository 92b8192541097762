package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Report renders titled sections of aligned rows for terminal output.
type Report struct {
	Title    string
	Sections []Section
	// Color enables ANSI styling of headers and status cells.
	Color bool
	// Width caps each cell; zero means unlimited.
	Width int
}

type Section struct {
	Name string
	Rows [][]string
}

func (r *Report) Section(name string) *Section {
	r.Sections = append(r.Sections, Section{Name: name})
	return &r.Sections[len(r.Sections)-1]
}

func (s *Section) Row(cells ...string) {
	s.Rows = append(s.Rows, cells)
}

// Render writes the report to w.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder
	if r.Title != "" {
		b.WriteString(r.style(titleStyle(), r.Title))
		b.WriteString("\n")
	}
	for i, sec := range r.Sections {
		if i > 0 || r.Title != "" {
			b.WriteString("\n")
		}
		b.WriteString(r.style(sectionStyle(), sec.Name))
		b.WriteString("\n")
		widths := columnWidths(sec.Rows, r.Width)
		for _, row := range sec.Rows {
			b.WriteString("  ")
			for j, cell := range row {
				cell = truncate(cell, r.Width)
				if j > 0 {
					b.WriteString("  ")
				}
				if j < len(row)-1 {
					cell = runewidth.FillRight(cell, widths[j])
				}
				if j == 0 {
					cell = r.style(styleStatus(strings.TrimSpace(cell)), cell)
				}
				b.WriteString(cell)
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) style(st lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return st.Render(text)
}

func columnWidths(rows [][]string, limit int) []int {
	var widths []int
	for _, row := range rows {
		for j, cell := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			w := runewidth.StringWidth(truncate(cell, limit))
			if w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
}

func sectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "ok":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "unsupported":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// Status formats a batch result line.
func Status(status, name, detail string) []string {
	if detail == "" {
		return []string{status, name}
	}
	return []string{status, name, fmt.Sprintf("(%s)", detail)}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// width already includes the tail.
	return runewidth.Truncate(value, width, "...")
}
