// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Results is the data behind the results region of the page.
type Results struct {
	Phase        string
	Loading      bool
	Cards        []Card
	Error        string
	ShowEmpty    bool
	EmptyMessage string
}

// Page is the data behind the full search page.
type Page struct {
	Title       string
	Placeholder string
	Term        string
	Input       string
	Results     Results
}

// HTML renders the search page and its fragments. Every text passes
// through html/template escaping; only the match spans are markup.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded templates.
func NewHTML() (*HTML, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &HTML{tmpl: tmpl}, nil
}

// WritePage writes the whole document.
func (h *HTML) WritePage(w io.Writer, p Page) error {
	if p.Results.EmptyMessage == "" {
		p.Results.EmptyMessage = EmptyMessage
	}
	return h.tmpl.ExecuteTemplate(w, "page", p)
}

// WriteResults writes only the results region, for in-place updates.
func (h *HTML) WriteResults(w io.Writer, r Results) error {
	if r.EmptyMessage == "" {
		r.EmptyMessage = EmptyMessage
	}
	return h.tmpl.ExecuteTemplate(w, "results", r)
}

// WriteSkeleton writes the loading placeholder.
func (h *HTML) WriteSkeleton(w io.Writer) error {
	return h.tmpl.ExecuteTemplate(w, "skeleton", nil)
}
