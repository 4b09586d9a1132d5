package pipeline

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/paper-meta/internal/llm"
	"github.com/pdiddy/paper-meta/pkg/types"
)

const sampleDoc = `Original Article

Deep Learning Approaches for Protein Structure Prediction in Mammals

Jane Q. Doe¹, John Smith²

¹Department of Biology, Example University
doi:10.1234/jproteo.2020.001

This version posted June 5, 2020.

Abstract
We present a deep learning method for protein structure prediction.

Methods
We trained a model on a large corpus of structures.

Results
The model performed well on held-out data.`

// fakeLookup implements authority.Lookup.
type fakeLookup struct {
	rec *types.AuthorityRecord
	err error
	doi string
}

func (f *fakeLookup) Resolve(_ context.Context, doi string) (*types.AuthorityRecord, error) {
	f.doi = doi
	return f.rec, f.err
}

func TestParse(t *testing.T) {
	parsed := Parse(sampleDoc)

	wantAuthors := []string{"Jane Q. Doe", "John Smith"}
	if !reflect.DeepEqual(parsed.Candidates.Authors, wantAuthors) {
		t.Errorf("authors = %v, want %v", parsed.Candidates.Authors, wantAuthors)
	}
	if parsed.Candidates.DocumentDate != "2020-06-05" {
		t.Errorf("date = %q, want 2020-06-05", parsed.Candidates.DocumentDate)
	}
	if !parsed.Meta.DateFromHeader {
		t.Error("DateFromHeader should be set: header carries a day-precision date")
	}
	if parsed.Method != types.MethodHeuristic {
		t.Errorf("method = %q, want heuristic", parsed.Method)
	}
	if !strings.Contains(parsed.Sections["methods"], "trained a model") {
		t.Errorf("methods section = %q", parsed.Sections["methods"])
	}
}

func TestParseEmptyDocument(t *testing.T) {
	parsed := Parse("")
	if len(parsed.Candidates.Authors) != 0 {
		t.Errorf("authors = %v, want none", parsed.Candidates.Authors)
	}
	if parsed.Candidates.DocumentDate != "" {
		t.Errorf("date = %q, want empty", parsed.Candidates.DocumentDate)
	}
}

func TestApplyAuthority(t *testing.T) {
	parsed := Parse(sampleDoc)

	rec := &types.AuthorityRecord{
		Title:   "Deep Learning Approaches for Protein Structure Prediction in Mammals",
		Authors: []string{"Jane Quinn Doe", "John A. Smith"},
		Date:    "2020-06-04",
	}
	lookup := &fakeLookup{rec: rec}

	got := ApplyAuthority(context.Background(), parsed, lookup)

	if lookup.doi != "10.1234/jproteo.2020.001" {
		t.Errorf("lookup DOI = %q", lookup.doi)
	}
	if !reflect.DeepEqual(got.Candidates.Authors, rec.Authors) {
		t.Errorf("authors = %v, want authority list", got.Candidates.Authors)
	}
	if got.Candidates.DocumentDate != "2020-06-04" {
		t.Errorf("date = %q, want authority date", got.Candidates.DocumentDate)
	}
	if got.Method != types.MethodAuthority {
		t.Errorf("method = %q, want authority", got.Method)
	}
}

func TestApplyAuthorityRejectedTitle(t *testing.T) {
	parsed := Parse(sampleDoc)
	lookup := &fakeLookup{rec: &types.AuthorityRecord{
		Title: "An Entirely Unrelated Manuscript Concerning Different Matters",
	}}

	got := ApplyAuthority(context.Background(), parsed, lookup)
	if got.Method != types.MethodHeuristic {
		t.Error("rejected title must leave the heuristic candidates in place")
	}
	if !reflect.DeepEqual(got.Candidates, parsed.Candidates) {
		t.Error("candidates should be unchanged")
	}
}

func TestApplyAuthorityLookupFailure(t *testing.T) {
	parsed := Parse(sampleDoc)
	lookup := &fakeLookup{err: errors.New("network down")}

	got := ApplyAuthority(context.Background(), parsed, lookup)
	if !reflect.DeepEqual(got, parsed) {
		t.Error("failed lookup must leave the document unchanged")
	}
}

func TestRun(t *testing.T) {
	backend := llm.Static{Candidate: &types.LLMCandidate{
		DocumentType: "Original Article",
		Summary:      "A deep learning method for protein structure prediction is presented.",
	}}

	meta := Run(context.Background(), sampleDoc, nil, backend, nil)

	if meta.Authors.Value == nil || !reflect.DeepEqual(*meta.Authors.Value, []string{"Jane Q. Doe", "John Smith"}) {
		t.Errorf("authors = %v", meta.Authors.Value)
	}
	if meta.DocumentDate.Value == nil || *meta.DocumentDate.Value != "2020-06-05" {
		t.Errorf("date = %v, want day precision retained", meta.DocumentDate.Value)
	}
	if meta.DocumentType.Value == nil || *meta.DocumentType.Value != "Original Article" {
		t.Errorf("type = %v", meta.DocumentType.Value)
	}
	if meta.Summary.Value == nil {
		t.Fatal("summary missing")
	}
	if meta.Summary.Provenance != types.ProvenanceLLM {
		t.Errorf("summary provenance = %q", meta.Summary.Provenance)
	}
}

func TestRunBackendFailure(t *testing.T) {
	backend := llm.Static{Err: errors.New("model unavailable")}
	var buf bytes.Buffer

	meta := Run(context.Background(), sampleDoc, nil, backend, &buf)

	if meta.Authors.Value == nil {
		t.Error("heuristic fields must survive a backend failure")
	}
	if meta.Summary.Value != nil {
		t.Error("summary should be null when the backend fails")
	}
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("expected a warning on w, got %q", buf.String())
	}
}

func TestRunNoCollaborators(t *testing.T) {
	meta := Run(context.Background(), sampleDoc, nil, nil, nil)
	if meta.Authors.Value == nil || meta.DocumentDate.Value == nil {
		t.Error("parsing alone should fill authors and date")
	}
}
