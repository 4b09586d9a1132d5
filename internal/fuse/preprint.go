// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fuse

import (
	"regexp"

	"github.com/pdiddy/paper-meta/internal/doctype"
)

// preprintCueThreshold is how many distinct cue patterns must match before
// the document type is forced to "Preprint". The value is load-bearing for
// existing behavior; tune it here, do not re-derive it.
var preprintCueThreshold = 2

// preprintCues are the textual signals of a preprint server or an
// unrefereed manuscript. Each pattern counts at most once.
var preprintCues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpreprint\b`),
	regexp.MustCompile(`(?i)has not been peer[- ]reviewed`),
	regexp.MustCompile(`(?i)not certified by peer review`),
	regexp.MustCompile(`(?i)\bssrn\b`),
	regexp.MustCompile(`(?i)\barxiv\b`),
	regexp.MustCompile(`(?i)\bmedrxiv\b`),
	regexp.MustCompile(`(?i)\bbiorxiv\b`),
	regexp.MustCompile(`(?i)research square`),
	regexp.MustCompile(`(?i)electronic copy available at:?\s*(?:https?://)?ssrn`),
	regexp.MustCompile(`(?i)this version posted`),
	regexp.MustCompile(`(?i)first posted`),
	regexp.MustCompile(`(?i)posted:\s*[a-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`(?i)\bworking paper\b`),
}

// countPreprintCues counts how many cue patterns match anywhere in text.
func countPreprintCues(text string) int {
	count := 0
	for _, re := range preprintCues {
		if re.MatchString(text) {
			count++
		}
	}
	return count
}

// guessType is the heuristic document-type candidate.
func guessType(header string) string {
	return doctype.Guess(header)
}
