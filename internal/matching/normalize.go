// Package matching scores knowledge-base cases against free-text problem
// descriptions and routes caller classifications to a matching policy.
//
// Everything in this package is stateless and safe for concurrent use. The
// only I/O happens through a CaseSource handed in by the caller.
package matching

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize canonicalizes text for keyword comparison: Unicode lowercase,
// trimmed, with internal whitespace runs collapsed to a single space.
// Stored keywords and query text must both pass through it.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	// A Caser is stateful; build one per call.
	lowered := cases.Lower(language.Und).String(text)
	return strings.Join(strings.Fields(lowered), " ")
}

// NormalizeAll normalizes each keyword, dropping entries that end up empty.
func NormalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if n := Normalize(kw); n != "" {
			out = append(out, n)
		}
	}
	return out
}
