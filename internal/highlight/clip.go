// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package highlight

import (
	"strings"
	"unicode"
)

// Position locates an unmatched chunk relative to its neighbouring matches.
type Position int

const (
	// Only is a chunk with no match on either side.
	Only Position = iota
	// First is followed by a match.
	First
	// Middle sits between two matches.
	Middle
	// Last is preceded by a match.
	Last
)

func position(i, n int) Position {
	switch {
	case n == 1:
		return Only
	case i == 0:
		return First
	case i == n-1:
		return Last
	default:
		return Middle
	}
}

// Clip shortens s to the n words nearest the neighbouring matches. A first
// chunk keeps its last n words, a last chunk its first n, a middle chunk
// both ends, and a lone chunk its opening words. Whitespace that touches a
// match is kept so the result still reads as prose.
func Clip(s string, n int, pos Position) string {
	words := strings.Fields(s)
	if n <= 0 || len(words) <= n {
		return s
	}
	lead := s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
	trail := s[len(strings.TrimRightFunc(s, unicode.IsSpace)):]

	switch pos {
	case First:
		return Ellipsis + strings.Join(words[len(words)-n:], " ") + trail
	case Last:
		return lead + strings.Join(words[:n], " ") + Ellipsis
	case Middle:
		if len(words) <= 2*n {
			return s
		}
		return lead + strings.Join(words[:n], " ") + " " + Ellipsis + " " +
			strings.Join(words[len(words)-n:], " ") + trail
	default:
		return lead + strings.Join(words[:n], " ") + Ellipsis
	}
}
