// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/history"
	"github.com/pdiddy/pathfinder/pkg/types"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]types.Course, error) {
	args := m.Called(ctx, query)
	courses, _ := args.Get(0).([]types.Course)
	return courses, args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, e history.Entry) error {
	return m.Called(ctx, e).Error(0)
}

var cs2110 = types.Course{
	Subject:     "CS",
	CatalogNbr:  "2110",
	Title:       "Object-Oriented Programming and Data Structures",
	Description: "Intermediate programming.",
	Credits:     "3",
	Offered:     "Fall",
	Instructors: "Gries",
	Grading:     "Letter",
}

func newTestServer(t *testing.T, s backend.Searcher, rec history.Recorder) (*Server, *bytes.Buffer) {
	t.Helper()
	var logBuf bytes.Buffer
	srv, err := NewServer(Options{
		Searcher: s,
		History:  rec,
		Catalog:  types.CatalogConfig{Term: "SP22"},
		Log:      &logBuf,
	})
	require.NoError(t, err)
	return srv, &logBuf
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServerRequiresSearcher(t *testing.T) {
	_, err := NewServer(Options{})
	assert.Error(t, err)
}

func TestIndexWithoutQuery(t *testing.T) {
	s := &mockSearcher{}
	srv, _ := newTestServer(t, s, nil)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Pathfinder</title>")
	assert.Contains(t, body, `data-phase="idle"`)
	assert.Contains(t, body, "SP22")
	assert.NotContains(t, body, "No results found")
	s.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestIndexWithQueryRendersResults(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "gries").Return([]types.Course{cs2110}, nil)
	srv, _ := newTestServer(t, s, nil)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/?q=gries", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-phase="success"`)
	assert.Contains(t, body, `<span class="font-bold">Gries</span>`)
	assert.Contains(t, body, "/browse/roster/SP22/class/CS/2110")
	s.AssertExpectations(t)
}

func TestSearchJSONBody(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "data structures").Return([]types.Course{cs2110}, nil)
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e history.Entry) bool {
		return e.Query == "data structures" && e.Results == 1 && e.Source == history.SourceWeb && e.Error == ""
	})).Return(nil)
	srv, _ := newTestServer(t, s, rec)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"data structures"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := do(srv, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), `<div id="results"`))
	assert.Contains(t, body, `<span class="font-bold">Data</span>`)
	assert.NotContains(t, body, "<html")
	s.AssertExpectations(t)
	rec.AssertExpectations(t)
}

func TestSearchFormBody(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "nothing matches").Return([]types.Course{}, nil)
	srv, _ := newTestServer(t, s, nil)

	form := url.Values{"query": {"nothing matches"}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := do(srv, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `data-phase="empty"`)
	assert.Contains(t, resp.Body.String(), "No results found")
}

func TestSearchBlankQuery(t *testing.T) {
	s := &mockSearcher{}
	srv, _ := newTestServer(t, s, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	resp := do(srv, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "query is empty")
	s.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchInvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t, &mockSearcher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp := do(srv, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid request body")
}

func TestSearchBackendFailure(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "biology").Return(nil, &backend.APIError{Message: "index offline"})
	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e history.Entry) bool {
		return e.Error == "search backend: index offline"
	})).Return(errors.New("disk full"))
	srv, logBuf := newTestServer(t, s, rec)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"biology"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := do(srv, req)

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `data-phase="error"`)
	assert.Contains(t, body, "search backend: index offline")
	assert.Contains(t, logBuf.String(), "warning: search \"biology\" failed")
	assert.Contains(t, logBuf.String(), "warning: recording history: disk full")
	assert.Contains(t, logBuf.String(), "POST /search 502")
}

func TestFailureAfterResultsSendsOnlyTheAlert(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "gries").Return([]types.Course{cs2110}, nil)
	s.On("Search", mock.Anything, "gries fall").Return(nil, &backend.StatusError{Code: http.StatusServiceUnavailable})
	srv, _ := newTestServer(t, s, nil)

	post := func(q string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query":"`+q+`"}`))
		req.Header.Set("Content-Type", "application/json")
		return do(srv, req)
	}

	first := post("gries")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), `class="card"`)

	// The page keeps the cards it already shows and only adds this alert.
	failed := post("gries fall")
	assert.Equal(t, http.StatusBadGateway, failed.Code)
	body := failed.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.NotContains(t, body, `class="card"`)
	assert.NotContains(t, body, "No results found")

	script := do(srv, httptest.NewRequest(http.MethodGet, "/static/js/pathfinder.js", nil)).Body.String()
	assert.Contains(t, script, "skeleton-template")
	assert.Contains(t, script, "!reply.ok")
	assert.Contains(t, script, ".catch(")
	assert.NotContains(t, script, `fetch("/skeleton")`)
	s.AssertExpectations(t)
}

func TestSkeletonHealthAndStatic(t *testing.T) {
	srv, _ := newTestServer(t, &mockSearcher{}, nil)

	resp := do(srv, httptest.NewRequest(http.MethodGet, "/skeleton", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "skeleton-title")

	resp = do(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())

	resp = do(srv, httptest.NewRequest(http.MethodGet, "/static/js/pathfinder.js", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/search")

	resp = do(srv, httptest.NewRequest(http.MethodGet, "/static/css/pathfinder.css", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), ".font-bold")
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t, &mockSearcher{}, nil)
	resp := do(srv, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
