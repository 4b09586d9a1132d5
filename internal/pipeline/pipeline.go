// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the extraction stages together: section the text,
// locate and extract authors, rank dates, overlay accepted authority
// metadata, and fuse with the language-model candidate. All network-backed
// collaborators are optional; parsing alone is pure text processing and is
// safe to run concurrently across documents.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/paper-meta/internal/authority"
	"github.com/pdiddy/paper-meta/internal/authors"
	"github.com/pdiddy/paper-meta/internal/dates"
	"github.com/pdiddy/paper-meta/internal/fuse"
	"github.com/pdiddy/paper-meta/internal/llm"
	"github.com/pdiddy/paper-meta/internal/sections"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// Parse runs the local heuristics over raw document text and returns the
// parsed candidates. It never fails; unmatched fields stay empty.
func Parse(text string) types.ParsedDocument {
	secs := sections.Build(text)
	header := secs.Header()

	return types.ParsedDocument{
		Sections: secs,
		Method:   types.MethodHeuristic,
		Candidates: types.Candidates{
			Authors:      authors.ExtractNames(authors.ZoneText(header)),
			DocumentDate: dates.Rank(header, secs.Body()),
		},
		Meta: types.ParseMeta{
			DateFromHeader: dates.HeaderHasDayDate(header),
		},
	}
}

// ApplyAuthority overlays an accepted authority record onto the parsed
// candidates. A nil lookup, a missing DOI, a failed lookup, or a rejected
// title all leave the document unchanged.
func ApplyAuthority(ctx context.Context, parsed types.ParsedDocument, lookup authority.Lookup) types.ParsedDocument {
	rec := authority.Resolve(ctx, parsed.Sections.Header(), lookup)
	if rec == nil {
		return parsed
	}

	overlaid := false
	if len(rec.Authors) > 0 {
		parsed.Candidates.Authors = rec.Authors
		overlaid = true
	}
	if rec.Date != "" {
		parsed.Candidates.DocumentDate = rec.Date
		overlaid = true
	}
	if overlaid {
		parsed.Method = types.MethodAuthority
	}
	return parsed
}

// Run executes the full flow for one document: parse, authority overlay,
// language-model inference, fusion. Progress and warnings go to w. Run
// never fails; a missing or failed collaborator degrades the result, not
// the call.
func Run(ctx context.Context, text string, lookup authority.Lookup, backend llm.Backend, w io.Writer) types.FusedMetadata {
	if w == nil {
		w = io.Discard
	}

	parsed := Parse(text)
	parsed = ApplyAuthority(ctx, parsed, lookup)

	var cand *types.LLMCandidate
	if backend != nil {
		c, err := backend.Infer(ctx, parsed.Sections)
		if err != nil {
			fmt.Fprintf(w, "warning: language-model backend failed: %v\n", err)
		} else {
			cand = c
		}
	}

	return fuse.Fuse(parsed, cand)
}
