// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend talks to the remote course-search service. A search is a
// single POST of the raw query text; ranking happens entirely on the
// server and the client takes the results in the order they arrive.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/pathfinder/internal/httputil"
	"github.com/pdiddy/pathfinder/pkg/types"
)

// DefaultURL is the production search service.
const DefaultURL = "https://cupathfinder-backend.herokuapp.com"

const (
	searchPath       = "/api/search"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pathfinder/0.1"
	maxErrorBody     = 512
)

// ErrEmptyQuery is returned when the query has no non-space characters.
var ErrEmptyQuery = errors.New("query is empty: type what you are looking for")

// Searcher runs one query against a search service.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Course, error)
}

// APIError is a search the backend reported as unsuccessful.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "search backend reported failure"
	}
	return "search backend: " + e.Message
}

// StatusError is a non-2xx HTTP response from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search backend returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("search backend returned HTTP %d: %s", e.Code, e.Body)
}

// Client is the HTTP implementation of Searcher.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	Token      string
	UserAgent  string
	MaxRetries int
}

// NewClient builds a Client from cfg, filling defaults for empty fields.
func NewClient(cfg types.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	base := cfg.URL
	if base == "" {
		base = DefaultURL
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(base, "/"),
		Token:      cfg.Token,
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Results []types.Course `json:"results"`
	Error   string         `json:"error"`
}

// Search posts query to /api/search and returns the courses in backend
// order. The query is sent as typed; only a blank query is rejected
// locally.
func (c *Client) Search(ctx context.Context, query string) ([]types.Course, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	if !sr.Success {
		return nil, &APIError{Message: sr.Error}
	}
	if sr.Results == nil {
		return []types.Course{}, nil
	}
	return sr.Results, nil
}
