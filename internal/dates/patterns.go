// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates locates and ranks date-like substrings in noisy document
// text, anchored to publication-lifecycle cues, and normalizes the winner
// into an ISO-shaped value with explicit precision. Precision never
// exceeds what the match justifies: an ambiguous numeric day is dropped,
// never guessed.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// now is the clock used for the year upper bound. Tests override it.
var now = time.Now

// months maps every accepted month name and abbreviation to its number.
var months = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
	"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
	"november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

// monthAlternation lists month names longest-first for use inside the
// compiled patterns.
const monthAlternation = `january|february|march|april|august|september|october|november|december|sept|june|july|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

// cueAlternation lists the publication-lifecycle cue verbs, longest-first
// so compound cues win over their suffixes.
const cueAlternation = `this version posted|published online|available online|published|posted|accepted|received`

// Date shape patterns. Compiled once; the cue alternation is baked in
// rather than rebuilt per call.
var (
	cueRe = regexp.MustCompile(`(?i)\b(?:` + cueAlternation + `)\b`)

	// mdyRe: "June 5, 2020", "Sept. 3rd 2021".
	mdyRe = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*,?\s*(\d{4})\b`)

	// dmyRe: "5 June 2020", "3rd of Sept., 2021".
	dmyRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlternation + `)\.?,?\s*(\d{4})\b`)

	// monthYearRe: "June 2020", "Sept., 2021".
	monthYearRe = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?,?\s+(\d{4})\b`)

	// isoDayRe: "2020-06-05", "2020/6/5".
	isoDayRe = regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\b`)

	// isoMonthRe: "2020-06".
	isoMonthRe = regexp.MustCompile(`\b(\d{4})-(\d{1,2})\b`)

	// numericRe: "05/06/2020", "5-6-2020". Inherently ambiguous; resolved
	// by disambiguateNumeric.
	numericRe = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})\b`)

	// bareYearRe: a lone 4-digit year, the lowest-precision fallback.
	bareYearRe = regexp.MustCompile(`\b(\d{4})\b`)

	// isoShapeRe is the output contract for every date this package emits.
	isoShapeRe = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`)

	// evidenceRe requires a cue verb immediately followed by an explicit
	// day-precision date. Presence anywhere in the text licenses keeping
	// day precision through sanitization.
	evidenceRe = regexp.MustCompile(`(?i)\b(?:` + cueAlternation + `)\s*[:\x{2013}-]?\s*(?:(?:` + monthAlternation + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?\s*,?\s*\d{4}|\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?(?:` + monthAlternation + `)\.?,?\s*\d{4}|\d{4}-\d{2}-\d{2})`)

	// referenceLikeRe marks citation lines whose dates must not be scored.
	referenceLikeRe = regexp.MustCompile(`(?i)doi:|\bvol\.|\bissue\b|\bpp\.|\[\d+\]|\(\d{4}\)|\d{4};\d|\bkeywords\b|\babstract\b|\breferences\b|\bbibliography\b`)
)

// ISOShape reports whether s already has one of the three emitted shapes:
// YYYY, YYYY-MM, or YYYY-MM-DD.
func ISOShape(s string) bool {
	return isoShapeRe.MatchString(s)
}

// YearInBounds reports whether a year is plausible for a scientific
// document: not before 1900 and at most one year in the future.
func YearInBounds(year int) bool {
	return year >= 1900 && year <= now().Year()+1
}

// daysIn returns the number of days in a month, accounting for leap years.
func daysIn(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// validDay reports whether year-month-day is a real calendar date.
func validDay(year, month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= daysIn(month, year)
}

func isoDay(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func isoMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// disambiguateNumeric resolves an "A-sep-B-sep-Year" shape. When the first
// number exceeds 12 it must be the day; when the second does, the first is
// the month. When both could be months the day is never guessed: only the
// year-month survives.
func disambiguateNumeric(a, b, year int) string {
	switch {
	case a > 12 && validDay(year, b, a):
		return isoDay(year, b, a)
	case b > 12 && validDay(year, a, b):
		return isoDay(year, a, b)
	case a >= 1 && a <= 12:
		return isoMonth(year, a)
	default:
		return ""
	}
}

// shape classifies a date candidate for scoring.
type shape int

const (
	shapeMDY shape = iota
	shapeDMY
	shapeMonthYear
	shapeNumeric
)

// found is one normalized date located in a piece of text.
type found struct {
	iso  string
	kind shape
}

// atoi is strconv.Atoi for digit-only regex captures.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// monthNumber resolves a matched month name, tolerating case and a
// trailing period.
func monthNumber(name string) int {
	return months[strings.ToLower(strings.TrimSuffix(name, "."))]
}

// findShapes locates every valid date shape in text, in pattern-priority
// order: explicit day-precision forms first, then month precision, then
// the ambiguous numeric forms, then a bare year. Matches outside the year
// bounds are rejected outright.
func findShapes(text string) []found {
	var out []found

	for _, m := range mdyRe.FindAllStringSubmatch(text, -1) {
		month, day, year := monthNumber(m[1]), atoi(m[2]), atoi(m[3])
		if YearInBounds(year) && validDay(year, month, day) {
			out = append(out, found{isoDay(year, month, day), shapeMDY})
		}
	}
	for _, m := range dmyRe.FindAllStringSubmatch(text, -1) {
		day, month, year := atoi(m[1]), monthNumber(m[2]), atoi(m[3])
		if YearInBounds(year) && validDay(year, month, day) {
			out = append(out, found{isoDay(year, month, day), shapeDMY})
		}
	}
	for _, m := range isoDayRe.FindAllStringSubmatch(text, -1) {
		year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if YearInBounds(year) && validDay(year, month, day) {
			out = append(out, found{isoDay(year, month, day), shapeNumeric})
		}
	}
	for _, m := range isoMonthRe.FindAllStringSubmatch(text, -1) {
		year, month := atoi(m[1]), atoi(m[2])
		if YearInBounds(year) && month >= 1 && month <= 12 {
			out = append(out, found{isoMonth(year, month), shapeNumeric})
		}
	}
	for _, m := range monthYearRe.FindAllStringSubmatch(text, -1) {
		month, year := monthNumber(m[1]), atoi(m[2])
		if YearInBounds(year) && month >= 1 {
			out = append(out, found{isoMonth(year, month), shapeMonthYear})
		}
	}
	for _, m := range numericRe.FindAllStringSubmatch(text, -1) {
		a, b, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if !YearInBounds(year) {
			continue
		}
		if iso := disambiguateNumeric(a, b, year); iso != "" {
			out = append(out, found{iso, shapeNumeric})
		}
	}
	for _, m := range bareYearRe.FindAllStringSubmatch(text, -1) {
		year := atoi(m[1])
		if YearInBounds(year) {
			out = append(out, found{fmt.Sprintf("%04d", year), shapeNumeric})
		}
	}

	return out
}

// firstDate returns the highest-priority valid date in text, or "".
func firstDate(text string) string {
	shapes := findShapes(text)
	if len(shapes) == 0 {
		return ""
	}
	return shapes[0].iso
}

// NormalizeToISO attempts a generic string-to-ISO normalization of a raw
// date value from any source. It returns "" when nothing date-like and
// in-bounds is found.
func NormalizeToISO(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if ISOShape(raw) {
		year := atoi(raw[:4])
		if !YearInBounds(year) {
			return ""
		}
		return raw
	}
	return firstDate(raw)
}

// HasPostedDateEvidence reports whether header or body contains a cue verb
// immediately followed by an explicit day-precision date.
func HasPostedDateEvidence(header, body string) bool {
	return evidenceRe.MatchString(header) || evidenceRe.MatchString(body)
}
