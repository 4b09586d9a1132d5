// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authority reconciles in-document heuristics with externally
// sourced bibliographic metadata keyed by DOI. A lookup result is trusted
// only when its title plausibly matches the document, which guards against
// resolving a DOI that belongs to a cited reference rather than the
// document itself.
package authority

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// doiRe is the standard DOI pattern.
var doiRe = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:A-Z0-9]+`)

// titleTokenMinLen ignores short stop-word-ish title tokens during matching.
const titleTokenMinLen = 3

// titleMatchThreshold is the share of title tokens that must appear in the
// header text before the authority record is accepted.
const titleMatchThreshold = 0.65

// Lookup fetches authority metadata for a DOI. Implementations own all
// network concerns; the resolver only consumes the result or its absence.
type Lookup interface {
	Resolve(ctx context.Context, doi string) (*types.AuthorityRecord, error)
}

// ExtractDOI returns the first DOI-shaped substring in the header text,
// with trailing punctuation stripped, or "".
func ExtractDOI(header string) string {
	doi := doiRe.FindString(header)
	return strings.TrimRight(doi, ".,;:)")
}

// Resolve extracts a DOI from the header, performs the lookup, and returns
// the record only when its title check passes. Every failure mode (no DOI,
// lookup error, empty record, title mismatch) degrades to nil.
func Resolve(ctx context.Context, header string, lookup Lookup) *types.AuthorityRecord {
	if lookup == nil {
		return nil
	}
	doi := ExtractDOI(header)
	if doi == "" {
		return nil
	}

	rec, err := lookup.Resolve(ctx, doi)
	if err != nil || rec == nil {
		return nil
	}
	if !titleMatches(rec.Title, header) {
		return nil
	}
	return rec
}

// titleMatches accepts an empty authority title outright; otherwise it
// requires titleMatchThreshold of the title's significant tokens to appear
// as substrings of the header, case-insensitively and in any order.
func titleMatches(title, header string) bool {
	if title == "" {
		return true
	}

	lowerHeader := strings.ToLower(header)
	total, matched := 0, 0
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		tok = strings.Trim(tok, ".,;:()[]\"'")
		if len(tok) < titleTokenMinLen {
			continue
		}
		total++
		if strings.Contains(lowerHeader, tok) {
			matched++
		}
	}
	if total == 0 {
		return true
	}
	return float64(matched)/float64(total) >= titleMatchThreshold
}
