// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package highlight splits free text into chunks and marks the chunks that
// match a search query, so renderers can set the matches in bold.
//
// The query is broken into whitespace-separated terms. Terms are matched
// literally and case-insensitively; at any position the leftmost match
// wins, and among terms starting at the same position the one that appears
// first in the query wins.
package highlight

import (
	"regexp"
	"strconv"
	"strings"
)

// Ellipsis marks text removed by clipping.
const Ellipsis = "…"

// Chunk is one contiguous piece of the input text.
type Chunk struct {
	// Key identifies the chunk within one Chunks call (its ordinal).
	Key string `json:"key"`

	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Options tunes how Chunks treats the query and long unmatched runs.
type Options struct {
	// MatchExactly treats the whole trimmed query as a single term.
	MatchExactly bool

	// ClipBy, when positive, shortens unmatched chunks that hold more than
	// ClipBy words (see Clip).
	ClipBy int
}

// Terms returns the terms a query is matched with. It returns nil for a
// blank query.
func Terms(query string, exact bool) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	if exact {
		return []string{q}
	}
	return strings.Fields(q)
}

// Pattern compiles the case-insensitive alternation of the query terms, or
// returns nil for a blank query.
func Pattern(query string, exact bool) *regexp.Regexp {
	terms := Terms(query, exact)
	if len(terms) == 0 {
		return nil
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")
}

// Chunks splits text at every query match. Empty text yields nil; a blank
// query yields the whole text as one unmatched chunk.
func Chunks(text, query string, opts Options) []Chunk {
	if text == "" {
		return nil
	}
	return Split(text, Pattern(query, opts.MatchExactly), opts.ClipBy)
}

// Split is Chunks with a precompiled pattern, for callers that highlight
// many fields with the same query. A nil pattern matches nothing.
func Split(text string, pattern *regexp.Regexp, clipBy int) []Chunk {
	if text == "" {
		return nil
	}
	if pattern == nil {
		return []Chunk{{Key: "0", Text: text}}
	}

	var pieces []Chunk
	last := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			pieces = append(pieces, Chunk{Text: text[last:loc[0]]})
		}
		pieces = append(pieces, Chunk{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		pieces = append(pieces, Chunk{Text: text[last:]})
	}

	if clipBy > 0 {
		for i := range pieces {
			if pieces[i].Match {
				continue
			}
			pieces[i].Text = Clip(pieces[i].Text, clipBy, position(i, len(pieces)))
		}
	}
	for i := range pieces {
		pieces[i].Key = strconv.Itoa(i)
	}
	return pieces
}

// HasMatch reports whether any chunk matched.
func HasMatch(chunks []Chunk) bool {
	for _, c := range chunks {
		if c.Match {
			return true
		}
	}
	return false
}

// Join concatenates the chunk texts.
func Join(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}
