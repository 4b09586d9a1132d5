// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authority

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// fakeLookup returns a canned record or error and remembers the DOI asked.
type fakeLookup struct {
	rec *types.AuthorityRecord
	err error
	doi string
}

func (f *fakeLookup) Resolve(_ context.Context, doi string) (*types.AuthorityRecord, error) {
	f.doi = doi
	return f.rec, f.err
}

func TestExtractDOI(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "plain DOI",
			header: "doi:10.1234/jproteo.2020.001\nsome text",
			want:   "10.1234/jproteo.2020.001",
		},
		{
			name:   "DOI in URL",
			header: "https://doi.org/10.1101/2020.06.05.137083",
			want:   "10.1101/2020.06.05.137083",
		},
		{
			name:   "trailing punctuation stripped",
			header: "(doi: 10.1234/abc.def).",
			want:   "10.1234/abc.def",
		},
		{
			name:   "case insensitive",
			header: "DOI 10.5555/EXAMPLE",
			want:   "10.5555/EXAMPLE",
		},
		{
			name:   "registrant too short",
			header: "10.123/short",
			want:   "",
		},
		{
			name:   "no DOI",
			header: "A title\nJane Doe",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDOI(tt.header); got != tt.want {
				t.Errorf("ExtractDOI(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestTitleMatches(t *testing.T) {
	header := "Deep Learning Approaches for Protein Structure Prediction\nJane Doe\nExample University"

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"exact title", "Deep Learning Approaches for Protein Structure Prediction", true},
		{"empty title accepts", "", true},
		{"partial overlap above threshold", "Deep Learning Approaches for Structure Prediction", true},
		{"unrelated title", "Economic Growth in Emerging Markets since 1990", false},
		{"short tokens ignored", "of in an it", true},
		{"punctuation trimmed", "deep learning, approaches: protein (structure) prediction.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titleMatches(tt.title, header); got != tt.want {
				t.Errorf("titleMatches(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	header := "A Study of Interesting Things\ndoi:10.1234/example.2020"
	rec := &types.AuthorityRecord{
		Title:   "A Study of Interesting Things",
		Authors: []string{"Jane Doe"},
		Date:    "2020-06-05",
	}

	tests := []struct {
		name   string
		header string
		lookup Lookup
		want   *types.AuthorityRecord
	}{
		{
			name:   "accepted record",
			header: header,
			lookup: &fakeLookup{rec: rec},
			want:   rec,
		},
		{
			name:   "nil lookup",
			header: header,
			lookup: nil,
			want:   nil,
		},
		{
			name:   "no DOI in header",
			header: "A Study of Interesting Things",
			lookup: &fakeLookup{rec: rec},
			want:   nil,
		},
		{
			name:   "lookup error",
			header: header,
			lookup: &fakeLookup{err: errors.New("boom")},
			want:   nil,
		},
		{
			name:   "lookup returns nothing",
			header: header,
			lookup: &fakeLookup{},
			want:   nil,
		},
		{
			name:   "title mismatch rejected",
			header: header,
			lookup: &fakeLookup{rec: &types.AuthorityRecord{Title: "Completely Different Manuscript About Other Topics"}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(context.Background(), tt.header, tt.lookup)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolvePassesExtractedDOI(t *testing.T) {
	f := &fakeLookup{rec: &types.AuthorityRecord{}}
	Resolve(context.Background(), "text doi:10.1234/example.2020, more", f)
	if f.doi != "10.1234/example.2020" {
		t.Errorf("lookup received DOI %q, want %q", f.doi, "10.1234/example.2020")
	}
}
