// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session tracks one search box through its request lifecycle:
// idle, loading, success, empty, and error. Both the web page and the
// terminal client drive their rendering from a State.
//
// Every submission is tagged with a sequence number. Only the answer to the
// latest submission is applied, so a slow response to an earlier query can
// never overwrite the results of a later one.
package session

import (
	"errors"
	"strings"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/render"
	"github.com/pdiddy/pathfinder/pkg/types"
)

// ErrEmptyQuery is returned by Submit for blank input.
var ErrEmptyQuery = backend.ErrEmptyQuery

// Phase is the rendering state derived from a State.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Empty
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Request identifies one submission.
type Request struct {
	Seq   uint64
	Query string
}

// State is the search box model. The zero value is an idle, empty box.
// State is not safe for concurrent use; UIs apply results from their own
// event loop.
type State struct {
	input   string
	query   string
	results []types.Course
	loading bool
	err     error
	seq     uint64
}

// New returns an idle State.
func New() *State {
	return &State{}
}

// SetInput records the text currently typed in the box.
func (s *State) SetInput(text string) {
	s.input = text
}

// Input returns the text currently typed in the box.
func (s *State) Input() string { return s.input }

// Query returns the query whose results are on display. It changes only
// when a search succeeds.
func (s *State) Query() string { return s.query }

// Results returns the courses on display.
func (s *State) Results() []types.Course { return s.results }

// Loading reports whether a submission is awaiting its answer.
func (s *State) Loading() bool { return s.loading }

// Err returns the failure of the latest submission, if any.
func (s *State) Err() error { return s.err }

// Submit starts a search for the current input. Blank input is rejected
// and leaves the state untouched.
func (s *State) Submit() (Request, error) {
	if strings.TrimSpace(s.input) == "" {
		return Request{}, ErrEmptyQuery
	}
	s.seq++
	s.loading = true
	s.err = nil
	return Request{Seq: s.seq, Query: s.input}, nil
}

// Current reports whether req is the latest submission.
func (s *State) Current(req Request) bool {
	return req.Seq != 0 && req.Seq == s.seq
}

// Resolve applies a successful answer. It returns false and changes
// nothing when req has been superseded.
func (s *State) Resolve(req Request, results []types.Course) bool {
	if !s.Current(req) || !s.loading {
		return false
	}
	s.query = req.Query
	s.results = results
	s.loading = false
	return true
}

// Fail applies a failed answer. The previous query and results stay on
// display. It returns false and changes nothing when req has been
// superseded.
func (s *State) Fail(req Request, err error) bool {
	if !s.Current(req) || !s.loading {
		return false
	}
	if err == nil {
		err = errors.New("search failed")
	}
	s.loading = false
	s.err = err
	return true
}

// Phase derives the rendering state.
func (s *State) Phase() Phase {
	switch {
	case s.loading:
		return Loading
	case s.err != nil:
		return Error
	case s.query != "" && len(s.results) == 0:
		return Empty
	case len(s.results) > 0:
		return Success
	default:
		return Idle
	}
}

// ShowSkeleton reports whether the loading placeholder replaces the list.
func (s *State) ShowSkeleton() bool { return s.loading }

// ShowResults reports whether the course list is rendered.
func (s *State) ShowResults() bool { return !s.loading && len(s.results) > 0 }

// ShowEmptyMessage reports whether "No results found" is rendered: a
// query has been answered, nothing is loading, and the answer was empty.
func (s *State) ShowEmptyMessage() bool {
	return s.query != "" && !s.loading && len(s.results) == 0
}

// Cards builds the highlighted cards for the results on display.
func (s *State) Cards(opts render.Options) []render.Card {
	return render.Cards(s.query, s.results, opts)
}
