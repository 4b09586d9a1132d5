// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-meta/internal/doctype"
)

const (
	// zoneCharLimit and zoneLineLimit bound how much zone text is parsed.
	zoneCharLimit = 4000
	zoneLineLimit = 60

	// maxAuthors caps the extracted list.
	maxAuthors = 24

	minNameTokens = 2
	maxNameTokens = 5
)

var clauseSplitRe = regexp.MustCompile(`[.;]`)

// ExtractNames turns an author-zone text block into a cleaned, deduplicated
// list of person names. It never guesses: a segment that does not look like
// a person name is dropped, and an empty result is a valid outcome.
func ExtractNames(zone string) []string {
	bounded := boundZone(zone)

	var cleaned []string
	for _, line := range strings.Split(bounded, "\n") {
		line = cleanLine(line)
		if line == "" || dropLine(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	cleaned = mergeWrappedNames(cleaned)

	var names []string
	seen := make(map[string]bool)
	for _, line := range cleaned {
		for _, seg := range segmentSplitRe.Split(line, -1) {
			name, ok := acceptSegment(seg)
			if !ok {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, name)
			if len(names) >= maxAuthors {
				return names
			}
		}
	}

	if len(names) == 0 {
		return creditFallback(zone)
	}
	return names
}

// boundZone truncates the zone at the first section opener, then caps the
// text at zoneCharLimit characters and zoneLineLimit lines.
func boundZone(zone string) string {
	if loc := zoneTruncateRe.FindStringIndex(zone); loc != nil {
		zone = zone[:loc[0]]
	}
	if len(zone) > zoneCharLimit {
		cut := zoneCharLimit
		for cut > 0 && !isRuneStart(zone[cut]) {
			cut--
		}
		zone = zone[:cut]
	}
	lines := strings.Split(zone, "\n")
	if len(lines) > zoneLineLimit {
		lines = lines[:zoneLineLimit]
	}
	return strings.Join(lines, "\n")
}

func isRuneStart(b byte) bool {
	return b&0xc0 != 0x80
}

// cleanLine strips byline noise from a single zone line: the leading "by",
// superscript and digit footnote marks, and credential tokens.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = byPrefixRe.ReplaceAllString(line, "")
	line = footnoteMarkRe.ReplaceAllString(line, "")
	line = digitFootnoteRe.ReplaceAllString(line, "")
	line = credentialRe.ReplaceAllString(line, "")
	line = strings.Join(strings.Fields(line), " ")
	return strings.Trim(line, " ,;")
}

// dropLine reports whether a cleaned line cannot contain author names.
func dropLine(line string) bool {
	return referenceMarkerRe.MatchString(line) ||
		stopWordRe.MatchString(line) ||
		affiliationRe.MatchString(line) ||
		doctype.IsLabel(line)
}

// mergeWrappedNames joins two consecutive lines that each hold a single
// capitalized word, handling a given name and surname wrapped onto
// separate lines.
func mergeWrappedNames(lines []string) []string {
	var out []string
	for i := 0; i < len(lines); i++ {
		if i+1 < len(lines) && capWordRe.MatchString(lines[i]) && capWordRe.MatchString(lines[i+1]) {
			out = append(out, lines[i]+" "+lines[i+1])
			i++
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

// acceptSegment validates one comma/semicolon/"and"-separated segment as a
// person name. ALL-CAPS segments are re-cased to title case first.
func acceptSegment(seg string) (string, bool) {
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return "", false
	}
	seg = recaseAllCaps(seg)

	tokens := strings.Fields(seg)
	if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
		return "", false
	}
	for _, tok := range tokens {
		if !nameToken(tok) {
			return "", false
		}
	}
	return strings.Join(tokens, " "), true
}

// recaseAllCaps converts an all-uppercase segment to title case, keeping
// hyphen and apostrophe boundaries ("O'BRIEN" becomes "O'Brien").
func recaseAllCaps(seg string) string {
	hasLetter := false
	for _, r := range seg {
		if unicode.IsLower(r) {
			return seg
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return seg
	}

	var b strings.Builder
	startOfWord := true
	for _, r := range seg {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			startOfWord = r == ' ' || r == '-' || r == '\'' || r == '’'
		case startOfWord:
			b.WriteRune(r)
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// creditFallback searches the full zone for a CRediT authorship statement
// and parses the clause after the marker as a last-resort author list.
func creditFallback(zone string) []string {
	loc := creditStatementRe.FindStringIndex(zone)
	if loc == nil {
		return nil
	}

	rest := zone[loc[1]:]

	var names []string
	seen := make(map[string]bool)
	for _, clause := range clauseSplitRe.Split(rest, -1) {
		seg := clause
		// CRediT clauses pair names with roles: "Jane Doe: Conceptualization".
		if idx := strings.Index(seg, ":"); idx >= 0 {
			seg = seg[:idx]
		}
		seg = strings.TrimSpace(seg)
		if len(strings.Fields(seg)) < minNameTokens {
			continue
		}
		key := strings.ToLower(seg)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, seg)
		if len(names) >= maxAuthors {
			break
		}
	}
	return names
}

// Sanitize applies the fusion-stage author cleaning to a candidate list
// from any source: credentials and a leading "By" stripped, document-label
// banners rejected, and the person-name token rule enforced with at most
// one irregular token tolerated. Order is preserved; duplicates collapse
// case-insensitively.
func Sanitize(list []string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, raw := range list {
		name := cleanLine(raw)
		if len(name) < 3 || doctype.IsLabel(name) {
			continue
		}
		if affiliationRe.MatchString(name) || stopWordRe.MatchString(name) {
			continue
		}
		name = recaseAllCaps(name)

		tokens := strings.Fields(name)
		if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
			continue
		}
		matching := 0
		for _, tok := range tokens {
			if nameToken(tok) {
				matching++
			}
		}
		required := len(tokens) - 1
		if required < 2 {
			required = 2
		}
		if matching < required {
			continue
		}

		name = strings.Join(tokens, " ")
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
		if len(out) >= maxAuthors {
			break
		}
	}
	return out
}
