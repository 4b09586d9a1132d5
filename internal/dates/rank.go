// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import "strings"

const (
	// headerLimit and bodyLimit bound how much text the ranker inspects.
	headerLimit = 12000
	bodyLimit   = 20000

	// cueWindow is how far past a cue verb a date is sought.
	cueWindow = 180

	// fallbackBodyLines is how many body lines join the header lines in
	// the line-scoring fallback.
	fallbackBodyLines = 80

	// headerDayScanLines is how many header lines the day-precision flag
	// scan inspects.
	headerDayScanLines = 120
)

// lineRule scores the date shapes found on one line. Rules are evaluated
// in order; the first applicable rule decides the per-shape weights, and a
// line no rule applies to is discarded.
type lineRule struct {
	name    string
	applies func(line string) bool
	// weights indexed by shape: MDY, DMY, MonthYear, Numeric.
	weights [4]float64
}

// lineRules: dates on a cue line score at full weight regardless of
// reference-like shape; dates on other lines score lower and only when
// the line does not look like a citation.
var lineRules = []lineRule{
	{
		name:    "cue",
		applies: func(line string) bool { return cueRe.MatchString(line) },
		weights: [4]float64{1.0, 0.95, 0.85, 0.8},
	},
	{
		name:    "plain",
		applies: func(line string) bool { return !referenceLikeRe.MatchString(line) },
		weights: [4]float64{0.75, 0.72, 0.65, 0.55},
	},
}

// positionBonus favors candidates on earlier lines.
func positionBonus(lineIdx int) float64 {
	bonus := 0.15 - 0.002*float64(lineIdx)
	if bonus < 0 {
		return 0
	}
	return bonus
}

// Rank scans header then body for the document date. Phase A anchors the
// search to cue-verb windows and short-circuits on the first hit; phase B
// falls back to scoring every date shape per line. The result is an
// ISO-shaped value or "".
func Rank(header, body string) string {
	header = clip(header, headerLimit)
	body = clip(body, bodyLimit)

	if iso := cueWindowScan(header); iso != "" {
		return iso
	}
	if iso := cueWindowScan(body); iso != "" {
		return iso
	}

	return scoreLines(header, body)
}

// cueWindowScan inspects the text after each cue occurrence, left to
// right, and returns the first valid date found in any window.
func cueWindowScan(text string) string {
	for _, loc := range cueRe.FindAllStringIndex(text, -1) {
		end := loc[1] + cueWindow
		if end > len(text) {
			end = len(text)
		}
		if iso := firstDate(text[loc[1]:end]); iso != "" {
			return iso
		}
	}
	return ""
}

// scoreLines is the phase B fallback: header lines plus the first
// fallbackBodyLines body lines, each scored by the lineRules table with a
// positional bonus. Highest score wins; ties break by earliest line.
func scoreLines(header, body string) string {
	lines := strings.Split(header, "\n")
	bodyLines := strings.Split(body, "\n")
	if len(bodyLines) > fallbackBodyLines {
		bodyLines = bodyLines[:fallbackBodyLines]
	}
	lines = append(lines, bodyLines...)

	bestISO := ""
	bestScore := 0.0

	for idx, line := range lines {
		rule := applicableRule(line)
		if rule == nil {
			continue
		}
		for _, f := range findShapes(line) {
			score := rule.weights[f.kind] + positionBonus(idx)
			// Strict inequality: on a tie the earlier line, and within a
			// line the higher-priority shape, already holds the slot.
			if score > bestScore {
				bestISO, bestScore = f.iso, score
			}
		}
	}

	return bestISO
}

func applicableRule(line string) *lineRule {
	for i := range lineRules {
		if lineRules[i].applies(line) {
			return &lineRules[i]
		}
	}
	return nil
}

// HeaderHasDayDate reports whether the header's first headerDayScanLines
// non-reference lines contain an explicit, calendar-valid day-precision
// date. The result feeds ParseMeta.DateFromHeader, which lets fusion keep
// day precision even when the ranked value differs in form.
func HeaderHasDayDate(header string) bool {
	lines := strings.Split(clip(header, headerLimit), "\n")
	if len(lines) > headerDayScanLines {
		lines = lines[:headerDayScanLines]
	}

	for _, line := range lines {
		if referenceLikeRe.MatchString(line) {
			continue
		}
		if m := mdyRe.FindStringSubmatch(line); m != nil {
			if YearInBounds(atoi(m[3])) && validDay(atoi(m[3]), monthNumber(m[1]), atoi(m[2])) {
				return true
			}
		}
		if m := dmyRe.FindStringSubmatch(line); m != nil {
			if YearInBounds(atoi(m[3])) && validDay(atoi(m[3]), monthNumber(m[2]), atoi(m[1])) {
				return true
			}
		}
		if m := isoDayRe.FindStringSubmatch(line); m != nil {
			if YearInBounds(atoi(m[1])) && validDay(atoi(m[1]), atoi(m[2]), atoi(m[3])) {
				return true
			}
		}
	}
	return false
}

// clip bounds text at limit bytes without splitting a rune.
func clip(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && text[cut]&0xc0 == 0x80 {
		cut--
	}
	return text[:cut]
}
