// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"strings"
	"unicode"
)

// Zone bounds the author block: line indices [Start, End) into the header's
// line array.
type Zone struct {
	Start int
	End   int
}

const (
	// titleScanLimit is how many non-empty lines are considered when
	// looking for the title.
	titleScanLimit = 20

	// maxContinuations is how many wrapped-title lines may follow the
	// title before the author block begins.
	maxContinuations = 3

	// zoneSpan caps the author zone length in lines.
	zoneSpan = 12

	// stopSearchSpan is how far past the zone start a stop cue is sought.
	stopSearchSpan = 40

	minTitleLength   = 20
	minLetterRatio   = 0.6
	maxTitleCommas   = 3
	minContinuation  = 2
	maxContinuation  = 15
)

// Locate finds the author zone in the header's line array. It picks the
// longest qualifying line among the first titleScanLimit non-empty lines as
// the title, absorbs wrapped-title continuation lines, and bounds the zone
// at the first section stop cue. With no title the zone starts at line 0.
func Locate(lines []string) Zone {
	title := findTitle(lines)

	start := 0
	if title >= 0 {
		start = title + 1
		for skipped := 0; skipped < maxContinuations && start < len(lines); skipped++ {
			if !isTitleContinuation(lines[start]) {
				break
			}
			start++
		}
	}

	end := start + zoneSpan
	for i := start; i < len(lines) && i < start+stopSearchSpan; i++ {
		if stopCueRe.MatchString(lines[i]) {
			if i < end {
				end = i
			}
			break
		}
	}
	if end > len(lines) {
		end = len(lines)
	}
	if end < start {
		end = start
	}

	return Zone{Start: start, End: end}
}

// ZoneText splits header text into lines, locates the author zone, and
// returns the joined zone lines.
func ZoneText(header string) string {
	lines := strings.Split(header, "\n")
	z := Locate(lines)
	return strings.Join(lines[z.Start:z.End], "\n")
}

// findTitle returns the index of the longest candidate-title line among the
// first titleScanLimit non-empty lines, or -1.
func findTitle(lines []string) int {
	best := -1
	bestLen := 0
	seen := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		seen++
		if seen > titleScanLimit {
			break
		}
		if isCandidateTitle(trimmed) && len(trimmed) > bestLen {
			best = i
			bestLen = len(trimmed)
		}
	}

	return best
}

// isCandidateTitle reports whether a trimmed line could be the title: not
// boilerplate, not affiliation-like, no digits, few commas, long enough,
// and mostly letters.
func isCandidateTitle(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range titleIgnoreList {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	if affiliationRe.MatchString(line) {
		return false
	}
	if containsDigit(line) {
		return false
	}
	if strings.Count(line, ",") >= maxTitleCommas {
		return false
	}
	if len(line) < minTitleLength {
		return false
	}
	return letterRatio(line) >= minLetterRatio
}

// isTitleContinuation reports whether a line looks like the tail of a title
// wrapped across lines rather than the start of the author block.
func isTitleContinuation(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	tokens := strings.Fields(trimmed)
	if len(tokens) < minContinuation || len(tokens) > maxContinuation {
		return false
	}
	if containsDigit(trimmed) {
		return false
	}
	if strings.ContainsAny(trimmed, "@,;") || footnoteMarkRe.MatchString(trimmed) {
		return false
	}
	if affiliationRe.MatchString(trimmed) || stopCueRe.MatchString(trimmed) {
		return false
	}
	return letterRatio(trimmed) >= minLetterRatio
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// letterRatio is the share of letter runes in s.
func letterRatio(s string) float64 {
	letters, total := 0, 0
	for _, r := range s {
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}
