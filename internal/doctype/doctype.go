// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doctype owns the document-label vocabulary: the fixed list of
// article-type banners journals print above titles ("Original Article",
// "Case Report", ...). It provides the heuristic document-type guess and
// the label test used to reject banner lines during author extraction.
package doctype

import "strings"

// label pairs a lowercase banner phrase with the canonical type it implies.
// Order matters: more specific phrases come before their prefixes so the
// first match is the most precise one.
type label struct {
	phrase    string
	canonical string
}

// labels is the ordered banner table. Evaluated top to bottom.
var labels = []label{
	{"systematic review and meta-analysis", "Systematic Review"},
	{"systematic review", "Systematic Review"},
	{"meta-analysis", "Meta-Analysis"},
	{"randomized controlled trial", "Clinical Trial"},
	{"randomised controlled trial", "Clinical Trial"},
	{"clinical trial", "Clinical Trial"},
	{"scoping review", "Review"},
	{"narrative review", "Review"},
	{"literature review", "Review"},
	{"review article", "Review"},
	{"original research article", "Original Article"},
	{"original research", "Original Article"},
	{"original article", "Original Article"},
	{"research article", "Original Article"},
	{"original investigation", "Original Article"},
	{"case report", "Case Report"},
	{"case series", "Case Report"},
	{"short communication", "Short Communication"},
	{"brief communication", "Short Communication"},
	{"brief report", "Brief Report"},
	{"rapid communication", "Short Communication"},
	{"technical note", "Technical Note"},
	{"study protocol", "Protocol"},
	{"letter to the editor", "Letter"},
	{"editorial", "Editorial"},
	{"commentary", "Commentary"},
	{"perspective", "Perspective"},
	{"viewpoint", "Perspective"},
	{"working paper", "Preprint"},
	{"preprint", "Preprint"},
}

// Guess scans the header text for a document-type banner and returns the
// canonical type of the first table entry found, or "" when none matches.
func Guess(header string) string {
	lower := strings.ToLower(header)
	for _, l := range labels {
		if strings.Contains(lower, l.phrase) {
			return l.canonical
		}
	}
	return ""
}

// IsLabel reports whether s, once trimmed and lowercased, is a document
// banner rather than content. Used to keep lines like "Original Article"
// out of author lists.
func IsLabel(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ".:;")
	if s == "" {
		return false
	}
	for _, l := range labels {
		if s == l.phrase {
			return true
		}
	}
	// Banner lines sometimes carry a trailing qualifier ("Case Report: ...").
	for _, l := range labels {
		if strings.HasPrefix(s, l.phrase+":") || strings.HasPrefix(s, l.phrase+" -") {
			return true
		}
	}
	return false
}

// Labels returns the canonical type for every known banner phrase, keyed by
// phrase. Exposed for tests and for callers that need the vocabulary.
func Labels() map[string]string {
	out := make(map[string]string, len(labels))
	for _, l := range labels {
		out[l.phrase] = l.canonical
	}
	return out
}
