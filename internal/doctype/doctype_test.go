// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doctype

import "testing"

func TestGuess(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "banner above title",
			header: "Original Article\n\nA Study of Things\nJane Doe",
			want:   "Original Article",
		},
		{
			name:   "specific phrase beats its prefix",
			header: "Systematic Review and Meta-Analysis\nEffects of X on Y",
			want:   "Systematic Review",
		},
		{
			name:   "case insensitive",
			header: "CASE REPORT: an unusual presentation",
			want:   "Case Report",
		},
		{
			name:   "randomised spelling",
			header: "A Randomised Controlled Trial of Z",
			want:   "Clinical Trial",
		},
		{
			name:   "working paper maps to preprint",
			header: "NBER Working Paper Series",
			want:   "Preprint",
		},
		{
			name:   "no banner",
			header: "Deep Learning for Protein Folding\nJane Doe",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guess(tt.header); got != tt.want {
				t.Errorf("Guess(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestIsLabel(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"Original Article", true},
		{"  original article  ", true},
		{"ORIGINAL ARTICLE.", true},
		{"Case Report: a rare condition", true},
		{"Review Article - invited", true},
		{"Jane Doe", false},
		{"Original Article by Jane Doe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := IsLabel(tt.s); got != tt.want {
				t.Errorf("IsLabel(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestLabelsCoversEveryPhrase(t *testing.T) {
	m := Labels()
	if len(m) != len(labels) {
		t.Fatalf("Labels() has %d entries, want %d", len(m), len(labels))
	}
	for _, l := range labels {
		if m[l.phrase] != l.canonical {
			t.Errorf("Labels()[%q] = %q, want %q", l.phrase, m[l.phrase], l.canonical)
		}
	}
}
