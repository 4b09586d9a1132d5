// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fuse arbitrates per-field candidates from the heuristic or
// authority parsing path and the language-model ensemble into one final
// record, and demotes date precision that lacks supporting evidence.
// Fusion never fails: the worst case is every field null at minimum
// confidence.
package fuse

import (
	"strings"
	"unicode"

	"github.com/pdiddy/paper-meta/internal/authors"
	"github.com/pdiddy/paper-meta/internal/dates"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// Candidate confidence levels. Heuristic values reflect how selective the
// local extraction rules are; language-model values reflect the ensemble's
// tendency to fill gaps with plausible-looking text.
const (
	docTypeLLMConfidence  = 0.7
	docTypeHeurConfidence = 0.6
	preprintConfidence    = 0.9

	authorsHeurPresent = 0.96
	authorsHeurAbsent  = 0.2
	authorsLLMPresent  = 0.72
	authorsLLMAbsent   = 0.3

	dateHeurPresent = 0.92
	dateHeurAbsent  = 0.2
	dateLLMPresent  = 0.7
	dateLLMAbsent   = 0.3
	dateDemotedConf = 0.2

	summaryBaseConfidence = 0.5
	summaryGoodConfidence = 0.85
	summaryLongConfidence = 0.9
	summaryMaxLength      = 1200
	summaryGoodLength     = 30
)

// Fuse combines one parsed-document candidate set with one language-model
// candidate into the final per-field record. llmCand may be nil.
func Fuse(parsed types.ParsedDocument, llmCand *types.LLMCandidate) types.FusedMetadata {
	if llmCand == nil {
		llmCand = &types.LLMCandidate{}
	}

	header := parsed.Sections.Header()
	body := parsed.Sections.Body()
	pathProv := types.Provenance(parsed.Method)
	if pathProv == "" {
		pathProv = types.ProvenanceHeuristic
	}

	return types.FusedMetadata{
		DocumentType:    fuseDocumentType(llmCand.DocumentType, header, body),
		Authors:         fuseAuthors(parsed.Candidates.Authors, llmCand.Authors, pathProv),
		DocumentDate:    fuseDate(parsed, llmCand.DocumentDate, pathProv),
		Summary:         summaryField(llmCand.Summary),
		MethodsSummary:  summaryField(llmCand.MethodsSummary),
		FindingsSummary: summaryField(llmCand.FindingsSummary),
	}
}

// chooseField keeps the first candidate as best and replaces it only on
// strictly greater fitness, or equal fitness with strictly greater stated
// confidence. On an exact tie the first-listed candidate wins regardless
// of source; callers rely on that ordering.
func chooseField[T any](cands []types.Field[T], fitness func(*T) float64) types.Field[T] {
	best := cands[0]
	bestFit := fitness(best.Value)

	for _, c := range cands[1:] {
		fit := fitness(c.Value)
		if fit > bestFit || (fit == bestFit && c.Confidence > best.Confidence) {
			best, bestFit = c, fit
		}
	}
	return best
}

// --- document type ---

func fuseDocumentType(llmType, header, body string) types.Field[string] {
	cands := []types.Field[string]{
		types.NewField(nonEmpty(normalizeType(llmType)), docTypeLLMConfidence, types.ProvenanceLLM),
		types.NewField(nonEmpty(guessType(header)), docTypeHeurConfidence, types.ProvenanceHeuristic),
	}
	best := chooseField(cands, presence[string])

	if countPreprintCues(header+"\n"+body) >= preprintCueThreshold && !isPreprint(best.Value) {
		conf := best.Confidence
		if conf < preprintConfidence {
			conf = preprintConfidence
		}
		v := "Preprint"
		best = types.NewField(&v, conf, types.ProvenanceHeuristic)
	}
	return best
}

func isPreprint(v *string) bool {
	return v != nil && strings.EqualFold(*v, "Preprint")
}

// normalizeType collapses whitespace and title-cases a model-supplied type
// so "systematic review" and "Systematic Review" arbitrate as equals.
func normalizeType(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}

// --- authors ---

func fuseAuthors(heurList, llmList []string, pathProv types.Provenance) types.Field[[]string] {
	heur := authors.Sanitize(heurList)
	model := authors.Sanitize(llmList)

	cands := []types.Field[[]string]{
		authorCandidate(heur, authorsHeurPresent, authorsHeurAbsent, pathProv),
		authorCandidate(model, authorsLLMPresent, authorsLLMAbsent, types.ProvenanceLLM),
	}
	return chooseField(cands, func(v *[]string) float64 {
		if v != nil && len(*v) > 0 {
			return 1
		}
		return 0
	})
}

func authorCandidate(list []string, present, absent float64, prov types.Provenance) types.Field[[]string] {
	if len(list) == 0 {
		return types.NewField[[]string](nil, absent, prov)
	}
	return types.NewField(&list, present, prov)
}

// --- document date ---

func fuseDate(parsed types.ParsedDocument, llmDate string, pathProv types.Provenance) types.Field[string] {
	s := parsed.Sections
	force := parsed.Meta.DateFromHeader

	heur := sanitizeDocumentDate(parsed.Candidates.DocumentDate, s, force)
	model := sanitizeDocumentDate(llmDate, s, force)

	cands := []types.Field[string]{
		dateCandidate(heur, dateHeurPresent, dateHeurAbsent, pathProv),
		dateCandidate(model, dateLLMPresent, dateLLMAbsent, types.ProvenanceLLM),
	}
	best := chooseField(cands, datePrecisionFitness)

	// Idempotent safety pass over the winner.
	if best.Value != nil {
		final := sanitizeDocumentDate(*best.Value, s, force)
		if final == "" {
			best.Value = nil
			best.Confidence = dateDemotedConf
		} else {
			best.Value = &final
		}
	}
	return best
}

func dateCandidate(iso string, present, absent float64, prov types.Provenance) types.Field[string] {
	if iso == "" {
		return types.NewField[string](nil, absent, prov)
	}
	return types.NewField(&iso, present, prov)
}

// datePrecisionFitness ranks candidates by the precision they carry.
func datePrecisionFitness(v *string) float64 {
	if v == nil {
		return 0
	}
	switch len(*v) {
	case 10:
		return 1.0
	case 7:
		return 0.8
	case 4:
		return 0.6
	default:
		return 0.4
	}
}

// sanitizeDocumentDate normalizes a raw date to the ISO shape, rejects
// out-of-bounds years, and keeps day precision only when forceAcceptDay is
// set or the document carries posted-date evidence. The year is never
// discarded once a value is in bounds. The function is idempotent.
func sanitizeDocumentDate(raw string, s types.Sections, forceAcceptDay bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	v := raw
	if !dates.ISOShape(v) {
		v = dates.NormalizeToISO(v)
		if !dates.ISOShape(v) {
			return ""
		}
	}

	year := 0
	for _, r := range v[:4] {
		year = year*10 + int(r-'0')
	}
	if !dates.YearInBounds(year) {
		return ""
	}

	if len(v) == 10 && !forceAcceptDay && !dates.HasPostedDateEvidence(s.Header(), s.Body()) {
		v = v[:7]
	}
	return v
}

// --- summaries ---

// summaryField scores a language-model summary: longer, letter-bearing
// text earns more confidence, and everything is capped at summaryMaxLength.
func summaryField(text string) types.Field[string] {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return types.NewField[string](nil, summaryBaseConfidence, types.ProvenanceLLM)
	}

	conf := summaryBaseConfidence
	if hasLetter(text) && len(text) >= summaryGoodLength {
		conf = summaryGoodConfidence
	}
	if len(text) > summaryMaxLength {
		conf = summaryLongConfidence
		text = truncate(text, summaryMaxLength)
	}
	return types.NewField(&text, conf, types.ProvenanceLLM)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// truncate cuts s at limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xc0 == 0x80 {
		cut--
	}
	return s[:cut]
}

// --- shared helpers ---

// presence is the non-null fitness function.
func presence[T any](v *T) float64 {
	if v == nil {
		return 0
	}
	return 1
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
