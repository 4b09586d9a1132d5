// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm adapts raw language-model ensemble output into the typed
// candidate the fusion stage consumes. Models return whatever they like;
// this package never fails on a missing or malformed field.
package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// authorJoinRe splits a joined author string on list punctuation and the
// "and" connector, treating the Oxford-comma form ", and" as one separator.
var authorJoinRe = regexp.MustCompile(`(?i)\s*[,;]\s*(?:and\s+|&\s*)?|\s+and\s+|\s*&\s*`)

// rawCandidate defers decoding of every field so one malformed field never
// poisons the rest.
type rawCandidate struct {
	DocumentType    json.RawMessage `json:"document_type"`
	Authors         json.RawMessage `json:"authors"`
	DocumentDate    json.RawMessage `json:"document_date"`
	Summary         json.RawMessage `json:"summary"`
	MethodsSummary  json.RawMessage `json:"methods_summary"`
	FindingsSummary json.RawMessage `json:"findings_summary"`
}

// Parse turns raw ensemble JSON into an LLMCandidate. Absent, null, and
// malformed fields come back empty; a completely unparseable payload comes
// back nil. Parse never returns an error.
func Parse(raw []byte) *types.LLMCandidate {
	if len(raw) == 0 {
		return nil
	}

	var rc rawCandidate
	if err := json.Unmarshal(raw, &rc); err != nil {
		return nil
	}

	return &types.LLMCandidate{
		DocumentType:    coerceString(rc.DocumentType),
		Authors:         coerceAuthors(rc.Authors),
		DocumentDate:    coerceString(rc.DocumentDate),
		Summary:         coerceString(rc.Summary),
		MethodsSummary:  coerceString(rc.MethodsSummary),
		FindingsSummary: coerceString(rc.FindingsSummary),
	}
}

// coerceString accepts a JSON string and ignores anything else.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceAuthors accepts an array of strings, an array of mixed values, or
// a single comma/semicolon/"and"-joined string.
func coerceAuthors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list)
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return trimAll(authorJoinRe.Split(joined, -1))
	}

	// Mixed array: keep the string elements, drop the rest.
	var mixed []json.RawMessage
	if err := json.Unmarshal(raw, &mixed); err == nil {
		var out []string
		for _, el := range mixed {
			var s string
			if json.Unmarshal(el, &s) == nil {
				out = append(out, s)
			}
		}
		return trimAll(out)
	}

	return nil
}

func trimAll(list []string) []string {
	var out []string
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
