// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the search page. The page works without scripting
// (GET /?q= renders results server-side); the bundled script upgrades
// Enter-to-search into an in-place update with a loading skeleton.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/pdiddy/pathfinder/internal/backend"
	"github.com/pdiddy/pathfinder/internal/history"
	"github.com/pdiddy/pathfinder/internal/render"
	"github.com/pdiddy/pathfinder/internal/session"
	"github.com/pdiddy/pathfinder/pkg/types"
)

//go:embed static/css/*.css static/js/*.js
var staticFiles embed.FS

const (
	defaultAddr        = "localhost:8080"
	defaultPlaceholder = "3 credit programming course taught by Gries that fulfills MRQ requirement"
	pageTitle          = "Pathfinder"
	maxQueryBody       = 16 << 10
)

// Options configures a Server.
type Options struct {
	Config  types.ServerConfig
	Catalog types.CatalogConfig

	Searcher backend.Searcher

	// History is optional.
	History history.Recorder

	// Log receives one line per request and warnings. Nil discards.
	Log io.Writer
}

// Server provides the HTTP interface for the search page.
type Server struct {
	opts   Options
	html   *render.HTML
	router *httprouter.Router
	server *http.Server
	log    io.Writer
}

// NewServer creates a server and registers its routes.
func NewServer(opts Options) (*Server, error) {
	if opts.Searcher == nil {
		return nil, errors.New("web: no searcher configured")
	}
	if opts.Config.Addr == "" {
		opts.Config.Addr = defaultAddr
	}
	if opts.Config.Placeholder == "" {
		opts.Config.Placeholder = defaultPlaceholder
	}
	if opts.Catalog.Term == "" {
		opts.Catalog.Term = render.DefaultCatalog.Term
	}
	logw := opts.Log
	if logw == nil {
		logw = io.Discard
	}

	html, err := render.NewHTML()
	if err != nil {
		return nil, err
	}

	if err := mime.AddExtensionType(".js", "application/javascript"); err != nil {
		fmt.Fprintf(logw, "warning: registering .js MIME type: %v\n", err)
	}

	s := &Server{
		opts:   opts,
		html:   html,
		router: httprouter.New(),
		log:    logw,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the request handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.router)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.opts.Config.Addr }

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.opts.Config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(s.log, "Serving on http://%s\n", s.opts.Config.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() error {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	s.router.ServeFiles("/static/*filepath", http.FS(static))

	s.router.GET("/", s.handleIndex)
	s.router.POST("/search", s.handleSearch)
	s.router.GET("/skeleton", s.handleSkeleton)
	s.router.GET("/health", s.handleHealth)
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	input := r.URL.Query().Get("q")
	page := render.Page{
		Title:       pageTitle,
		Placeholder: s.opts.Config.Placeholder,
		Term:        s.opts.Catalog.Term,
		Input:       input,
		Results:     render.Results{Phase: session.Idle.String()},
	}

	status := http.StatusOK
	if strings.TrimSpace(input) != "" {
		page.Results, status = s.runSearch(r.Context(), input)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.html.WritePage(w, page); err != nil {
		fmt.Fprintf(s.log, "warning: rendering page: %v\n", err)
	}
}

type searchBody struct {
	Query string `json:"query"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, err := readQuery(r)
	var results render.Results
	status := http.StatusBadRequest
	if err != nil {
		results = render.Results{Phase: session.Error.String(), Error: err.Error()}
	} else {
		results, status = s.runSearch(r.Context(), query)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.html.WriteResults(w, results); err != nil {
		fmt.Fprintf(s.log, "warning: rendering results: %v\n", err)
	}
}

// readQuery accepts a JSON body {"query": ...} or a form field named
// query (or q).
func readQuery(r *http.Request) (string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var body searchBody
		if err := json.NewDecoder(io.LimitReader(r.Body, maxQueryBody)).Decode(&body); err != nil {
			return "", fmt.Errorf("invalid request body: %w", err)
		}
		return body.Query, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("invalid form: %w", err)
	}
	if q := r.PostForm.Get("query"); q != "" {
		return q, nil
	}
	return r.PostForm.Get("q"), nil
}

// runSearch drives one request through the session lifecycle and returns
// the results region plus the HTTP status to send with it.
func (s *Server) runSearch(ctx context.Context, query string) (render.Results, int) {
	st := session.New()
	st.SetInput(query)
	req, err := st.Submit()
	if err != nil {
		return render.Results{Phase: session.Idle.String(), Error: err.Error()}, http.StatusBadRequest
	}

	courses, err := s.opts.Searcher.Search(ctx, req.Query)
	status := http.StatusOK
	if err != nil {
		st.Fail(req, err)
		status = http.StatusBadGateway
		fmt.Fprintf(s.log, "warning: search %q failed: %v\n", req.Query, err)
	} else {
		st.Resolve(req, courses)
	}
	s.record(ctx, req.Query, len(courses), err)

	results := render.Results{
		Phase:     st.Phase().String(),
		Loading:   st.ShowSkeleton(),
		Cards:     st.Cards(render.Options{Catalog: s.opts.Catalog}),
		ShowEmpty: st.ShowEmptyMessage(),
	}
	if st.Err() != nil {
		results.Error = st.Err().Error()
	}
	return results, status
}

func (s *Server) record(ctx context.Context, query string, n int, searchErr error) {
	if s.opts.History == nil {
		return
	}
	e := history.Entry{Query: query, Results: n, Source: history.SourceWeb}
	if searchErr != nil {
		e.Results = 0
		e.Error = searchErr.Error()
	}
	if err := s.opts.History.Record(ctx, e); err != nil {
		fmt.Fprintf(s.log, "warning: recording history: %v\n", err)
	}
}

func (s *Server) handleSkeleton(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.html.WriteSkeleton(w); err != nil {
		fmt.Fprintf(s.log, "warning: rendering skeleton: %v\n", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		fmt.Fprintf(s.log, "%s %s %d %s\n", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
