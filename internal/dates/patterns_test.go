// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import (
	"os"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	// Pin the clock so the year upper bound is stable.
	now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	os.Exit(m.Run())
}

func TestYearInBounds(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1899, false},
		{1900, true},
		{2026, true},
		{2027, true}, // one year ahead is allowed
		{2028, false},
	}
	for _, tt := range tests {
		if got := YearInBounds(tt.year); got != tt.want {
			t.Errorf("YearInBounds(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestISOShape(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"2020", true},
		{"2020-06", true},
		{"2020-06-05", true},
		{"2020-6-5", false},
		{"June 2020", false},
		{"2020-06-05T00:00:00Z", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ISOShape(tt.s); got != tt.want {
			t.Errorf("ISOShape(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestDisambiguateNumeric(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		year    int
		want    string
	}{
		{"first exceeds 12 means day first", 25, 12, 2020, "2020-12-25"},
		{"second exceeds 12 means month first", 12, 25, 2020, "2020-12-25"},
		{"both ambiguous keeps only year-month", 5, 6, 2023, "2023-05"},
		{"ambiguous day never guessed", 1, 2, 2020, "2020-01"},
		{"first too large to be a day", 32, 13, 2020, ""},
		{"neither fits", 0, 0, 2020, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := disambiguateNumeric(tt.a, tt.b, tt.year); got != tt.want {
				t.Errorf("disambiguateNumeric(%d, %d, %d) = %q, want %q", tt.a, tt.b, tt.year, got, tt.want)
			}
		})
	}
}

func TestValidDay(t *testing.T) {
	tests := []struct {
		year, month, day int
		want             bool
	}{
		{2020, 2, 29, true},  // leap year
		{2021, 2, 29, false},
		{2000, 2, 29, true},  // divisible by 400
		{1900, 2, 29, false}, // divisible by 100, not 400
		{2020, 4, 31, false},
		{2020, 6, 30, true},
		{2020, 13, 1, false},
		{2020, 1, 0, false},
	}
	for _, tt := range tests {
		if got := validDay(tt.year, tt.month, tt.day); got != tt.want {
			t.Errorf("validDay(%d, %d, %d) = %v, want %v", tt.year, tt.month, tt.day, got, tt.want)
		}
	}
}

func TestNormalizeToISO(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already ISO day", "2020-06-05", "2020-06-05"},
		{"already ISO month", "2020-06", "2020-06"},
		{"bare year", "2020", "2020"},
		{"ISO with out-of-bounds year", "1850-01-01", ""},
		{"month day year", "June 5, 2020", "2020-06-05"},
		{"day month year", "5 June 2020", "2020-06-05"},
		{"ordinal day", "June 5th, 2020", "2020-06-05"},
		{"day of month", "3rd of September, 2021", "2021-09-03"},
		{"abbreviated month", "Sept. 3, 2021", "2021-09-03"},
		{"month year", "June 2020", "2020-06"},
		{"slash ISO", "2020/6/5", "2020-06-05"},
		{"ambiguous numeric", "05/06/2023", "2023-05"},
		{"unambiguous numeric", "25/12/2020", "2020-12-25"},
		{"invalid calendar day falls back to year", "February 30, 2020", "2020"},
		{"year out of bounds", "June 5, 1850", ""},
		{"nothing date-like", "no dates here", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeToISO(tt.raw); got != tt.want {
				t.Errorf("NormalizeToISO(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"January", 1},
		{"sept", 9},
		{"Sept.", 9},
		{"SEP", 9},
		{"may", 5},
		{"smarch", 0},
	}
	for _, tt := range tests {
		if got := monthNumber(tt.name); got != tt.want {
			t.Errorf("monthNumber(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestHasPostedDateEvidence(t *testing.T) {
	tests := []struct {
		name   string
		header string
		body   string
		want   bool
	}{
		{
			name:   "cue immediately followed by day date",
			header: "this version posted June 5, 2020",
			want:   true,
		},
		{
			name: "cue with colon and ISO date",
			body: "Published online: 2020-06-05",
			want: true,
		},
		{
			name:   "cue with day month year",
			header: "Accepted 3 September 2021",
			want:   true,
		},
		{
			name:   "cue without a nearby date",
			header: "this version posted by the server",
			want:   false,
		},
		{
			name:   "date without a cue",
			header: "June 5, 2020",
			want:   false,
		},
		{
			name:   "cue with month-only date",
			header: "published June 2020",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPostedDateEvidence(tt.header, tt.body); got != tt.want {
				t.Errorf("HasPostedDateEvidence() = %v, want %v", got, tt.want)
			}
		})
	}
}
