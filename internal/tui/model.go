// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal client: a search box, a loading
// skeleton, and a scrollable list of highlighted course cards.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/history"
	"github.com/pdiddy/pathfinder/internal/render"
	"github.com/pdiddy/pathfinder/internal/session"
	"github.com/pdiddy/pathfinder/pkg/types"
)

const (
	defaultPlaceholder = "3 credit programming course taught by Gries that fulfills MRQ requirement"
	chromeHeight       = 6
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235"))
	taglineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Options configures a Model.
type Options struct {
	Searcher backend.Searcher
	Catalog  types.CatalogConfig

	// History is optional.
	History history.Recorder

	// Warn receives recoverable failures. Nil discards.
	Warn io.Writer

	Placeholder string
}

// resultMsg carries the answer to one submission back into Update.
type resultMsg struct {
	req     session.Request
	courses []types.Course
	err     error
}

// Model is the bubbletea model of the search screen.
type Model struct {
	opts     Options
	state    *session.State
	input    textinput.Model
	viewport viewport.Model
	term     *render.Terminal
	ctx      context.Context
	notice   string
	width    int
	height   int
}

// New builds the search screen. ctx bounds every search it starts.
func New(ctx context.Context, opts Options) Model {
	if opts.Placeholder == "" {
		opts.Placeholder = defaultPlaceholder
	}
	if opts.Warn == nil {
		opts.Warn = io.Discard
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 500
	ti.Width = 70
	ti.Focus()

	return Model{
		opts:     opts,
		state:    session.New(),
		input:    ti,
		viewport: viewport.New(80, 20),
		term:     render.NewTerminal(os.Stdout, false),
		ctx:      ctx,
		width:    80,
		height:   20 + chromeHeight,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes and search results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.refresh()
		return m, nil

	case resultMsg:
		var applied bool
		if msg.err != nil {
			applied = m.state.Fail(msg.req, msg.err)
		} else {
			applied = m.state.Resolve(msg.req, msg.courses)
		}
		if applied {
			m.refresh()
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.state.SetInput(m.input.Value())
			req, err := m.state.Submit()
			if err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.notice = ""
			return m, m.search(req)
		case "up", "down", "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetInput(m.input.Value())
	return m, cmd
}

// search runs req off the event loop and reports back with a resultMsg.
func (m Model) search(req session.Request) tea.Cmd {
	ctx := m.ctx
	searcher := m.opts.Searcher
	rec := m.opts.History
	warn := m.opts.Warn
	return func() tea.Msg {
		courses, err := searcher.Search(ctx, req.Query)
		if rec != nil {
			e := history.Entry{Query: req.Query, Results: len(courses), Source: history.SourceTUI}
			if err != nil {
				e.Error = err.Error()
			}
			if recErr := rec.Record(ctx, e); recErr != nil {
				fmt.Fprintf(warn, "warning: recording history: %v\n", recErr)
			}
		}
		return resultMsg{req: req, courses: courses, err: err}
	}
}

// refresh re-renders the result cards into the viewport.
func (m *Model) refresh() {
	if !m.state.ShowResults() {
		m.viewport.SetContent("")
		return
	}
	m.term.Width = m.width - 2
	cards := m.state.Cards(render.Options{Catalog: m.opts.Catalog})
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = m.term.Card(c)
	}
	m.viewport.SetContent(strings.Join(parts, "\n"))
}

// View draws the screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pathfinder"))
	b.WriteString("  ")
	b.WriteString(taglineStyle.Render("Find courses simply by searching exactly what you want"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")

	switch {
	case m.state.ShowSkeleton():
		b.WriteString(m.term.Skeleton(m.width - 2))
	case m.state.ShowResults():
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	if err := m.state.Err(); err != nil && !m.state.Loading() {
		b.WriteString(m.term.Error(err))
		b.WriteString("\n")
	}
	if m.state.ShowEmptyMessage() {
		b.WriteString(render.EmptyMessage)
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter search • ↑/↓ scroll • esc quit"))
	return b.String()
}

// State exposes the underlying session, mainly for tests.
func (m Model) State() *session.State { return m.state }

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
