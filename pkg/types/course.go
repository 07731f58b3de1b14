// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pathfinder clients.
// Course mirrors the record shape returned by the search backend; the
// config types group the settings each client surface needs.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// Course is one course record returned by the search backend. Field names
// follow the backend's JSON exactly.
type Course struct {
	// Subject is the department code (e.g. "CS").
	Subject string `json:"subject" yaml:"subject"`

	// CatalogNbr is the course number within the subject (e.g. 2110).
	CatalogNbr CatalogNumber `json:"catalogNbr" yaml:"catalog_nbr"`

	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Credits     string `json:"credits" yaml:"credits"`

	// Offered lists the terms the course runs in (e.g. "Fall, Spring").
	Offered string `json:"offered" yaml:"offered"`

	// Requisites holds co- and prerequisites as free text. Empty when none.
	Requisites   string `json:"requisites" yaml:"requisites"`
	Distribution string `json:"distribution" yaml:"distribution"`
	Instructors  string `json:"instructors" yaml:"instructors"`
	Grading      string `json:"grading" yaml:"grading"`
	AcadGroup    string `json:"acadGroup" yaml:"acad_group"`
}

// Heading returns the "{subject} {catalogNbr}: {title}" line shown as the
// course card title.
func (c Course) Heading() string {
	return fmt.Sprintf("%s %s: %s", c.Subject, c.CatalogNbr, c.Title)
}

// CatalogNumber is a course number. The backend sends it as a JSON number
// but strings are accepted as well.
type CatalogNumber string

// UnmarshalJSON accepts 2110, "2110" or null.
func (n *CatalogNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("catalog number: %w", err)
		}
		*n = CatalogNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("catalog number: %w", err)
	}
	*n = CatalogNumber(num.String())
	return nil
}

// jsonInteger matches the integers JSON can carry unquoted; "0100" and
// "+5" stay strings.
var jsonInteger = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// MarshalJSON writes the number back as a JSON number when it is numeric.
func (n CatalogNumber) MarshalJSON() ([]byte, error) {
	if jsonInteger.MatchString(string(n)) {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}
