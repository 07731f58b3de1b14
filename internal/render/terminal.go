// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/pathfinder/internal/highlight"
	"github.com/pdiddy/pathfinder/pkg/types"
)

// PlainMarker wraps matches when styling is off, so emphasis survives a
// pipe or a log file.
const PlainMarker = "*"

// Terminal writes cards as styled text.
type Terminal struct {
	// Plain disables ANSI styling and marks matches with PlainMarker.
	Plain bool

	// Width wraps descriptions; 0 leaves them unwrapped.
	Width int

	match    lipgloss.Style
	heading  lipgloss.Style
	label    lipgloss.Style
	link     lipgloss.Style
	faint    lipgloss.Style
	errStyle lipgloss.Style
}

// NewTerminal builds a Terminal whose styles are resolved against w.
func NewTerminal(w io.Writer, plain bool) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		Plain:    plain,
		match:    r.NewStyle().Bold(true),
		heading:  r.NewStyle().Foreground(lipgloss.Color("235")),
		label:    r.NewStyle().Bold(true),
		link:     r.NewStyle().Foreground(lipgloss.Color("30")).Underline(true),
		faint:    r.NewStyle().Faint(true),
		errStyle: r.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	}
}

// Chunks renders highlighted text; matches are bold.
func (t *Terminal) Chunks(chunks []highlight.Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		switch {
		case !c.Match:
			b.WriteString(c.Text)
		case t.Plain:
			b.WriteString(PlainMarker + c.Text + PlainMarker)
		default:
			b.WriteString(t.match.Render(c.Text))
		}
	}
	return b.String()
}

// Card renders one course card.
func (t *Terminal) Card(c Card) string {
	var b strings.Builder
	b.WriteString(t.style(t.heading, t.Chunks(c.Heading)))
	b.WriteString("\n")
	b.WriteString(t.style(t.link, c.URL))
	b.WriteString("\n")
	if len(c.Description) > 0 {
		desc := t.Chunks(c.Description)
		if t.Width > 0 && !t.Plain {
			desc = lipgloss.NewStyle().Width(t.Width).Render(desc)
		}
		b.WriteString(desc)
		b.WriteString("\n")
	}
	for _, f := range c.Fields {
		fmt.Fprintf(&b, "  %s %s\n", t.style(t.label, f.Label+":"), t.Chunks(f.Chunks))
	}
	return b.String()
}

// WriteCards writes all cards separated by blank lines, followed by a
// count. An empty list writes EmptyMessage.
func (t *Terminal) WriteCards(w io.Writer, cards []Card) {
	if len(cards) == 0 {
		t.WriteEmpty(w)
		return
	}
	for i, c := range cards {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, t.Card(c))
	}
	fmt.Fprintf(w, "\n%d results\n", len(cards))
}

// Skeleton returns the loading placeholder: a faint title bar and a
// shorter body bar.
func (t *Terminal) Skeleton(width int) string {
	if width <= 0 {
		width = 60
	}
	bar := strings.Repeat("░", width)
	body := strings.Repeat("░", width*2/3)
	return t.style(t.faint, bar) + "\n" + t.style(t.faint, body) + "\n"
}

// WriteEmpty writes the empty-state message.
func (t *Terminal) WriteEmpty(w io.Writer) {
	fmt.Fprintln(w, EmptyMessage)
}

// Error renders a failure line.
func (t *Terminal) Error(err error) string {
	return t.style(t.errStyle, "error: "+err.Error())
}

func (t *Terminal) style(s lipgloss.Style, text string) string {
	if t.Plain {
		return text
	}
	return s.Render(text)
}

// FormatJSON writes the raw courses as indented JSON to w.
func FormatJSON(courses []types.Course, w io.Writer) error {
	if courses == nil {
		courses = []types.Course{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(courses)
}
