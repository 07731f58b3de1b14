// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns course results into highlighted cards and writes
// them for a terminal or as HTML.
package render

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/pathfinder/internal/highlight"
	"github.com/pdiddy/pathfinder/pkg/types"
)

// DefaultCatalog links cards to the Fall 2021 class roster.
var DefaultCatalog = types.CatalogConfig{
	Term:    "FA21",
	BaseURL: "https://classes.cornell.edu/browse/roster",
}

// EmptyMessage is shown when an answered query returned no courses.
const EmptyMessage = "No results found"

// Field is one labelled detail line of a card.
type Field struct {
	Label  string
	Chunks []highlight.Chunk
}

// Card is the view model of one course.
type Card struct {
	Heading     []highlight.Chunk
	URL         string
	Description []highlight.Chunk
	Fields      []Field
}

// Options tunes card construction.
type Options struct {
	Catalog types.CatalogConfig

	// Exact matches the whole query as one phrase.
	Exact bool

	// ClipBy shortens long unmatched runs in descriptions.
	ClipBy int
}

// Cards builds one card per course, highlighting every text with query.
func Cards(query string, courses []types.Course, opts Options) []Card {
	pattern := highlight.Pattern(query, opts.Exact)
	cards := make([]Card, 0, len(courses))
	for _, c := range courses {
		cards = append(cards, buildCard(c, pattern, opts))
	}
	return cards
}

type fieldSpec struct {
	label    string
	value    func(types.Course) string
	optional bool
}

// cardFields lists the detail lines in display order. Optional lines are
// dropped when their value is empty.
var cardFields = []fieldSpec{
	{"Co/Prerequisites", func(c types.Course) string { return c.Requisites }, true},
	{"Credits", func(c types.Course) string { return c.Credits }, false},
	{"Offered In", func(c types.Course) string { return c.Offered }, false},
	{"Distribution", func(c types.Course) string { return c.Distribution }, true},
	{"Acad Group", func(c types.Course) string { return c.AcadGroup }, true},
	{"Instructors", func(c types.Course) string { return c.Instructors }, true},
	{"Grading", func(c types.Course) string { return c.Grading }, false},
}

func buildCard(c types.Course, pattern *regexp.Regexp, opts Options) Card {
	card := Card{
		Heading:     highlight.Split(c.Heading(), pattern, 0),
		URL:         CatalogURL(opts.Catalog, c),
		Description: highlight.Split(c.Description, pattern, opts.ClipBy),
	}
	for _, f := range cardFields {
		v := f.value(c)
		if f.optional && v == "" {
			continue
		}
		card.Fields = append(card.Fields, Field{Label: f.label, Chunks: highlight.Split(v, pattern, 0)})
	}
	return card
}

// CatalogURL links a course to its roster page:
// {base}/{term}/class/{subject}/{catalogNbr}.
func CatalogURL(cat types.CatalogConfig, c types.Course) string {
	if cat.BaseURL == "" {
		cat.BaseURL = DefaultCatalog.BaseURL
	}
	if cat.Term == "" {
		cat.Term = DefaultCatalog.Term
	}
	return fmt.Sprintf("%s/%s/class/%s/%s",
		strings.TrimRight(cat.BaseURL, "/"),
		url.PathEscape(cat.Term),
		url.PathEscape(c.Subject),
		url.PathEscape(string(c.CatalogNbr)))
}
