// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections turns raw extracted document text into the immutable
// Sections map consumed by the rest of the pipeline: a bounded header
// prefix, the full normalized body, and best-effort named sections split
// on common scientific headings.
package sections

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-meta/pkg/types"
)

// headerLimit bounds the header prefix. Front matter (title, authors,
// submission dates, DOI) sits well within the first pages of text.
const headerLimit = 12000

// headingRe matches a line that is itself a scientific section heading,
// optionally numbered ("2. Methods", "III. Results").
var headingRe = regexp.MustCompile(
	`(?i)^\s*(?:[0-9ivx]+[.)]?\s+)?(abstract|methods?|materials and methods|results|discussion|conclusions?)\s*:?\s*$`,
)

// canonicalSection maps a matched heading word to its Sections key.
var canonicalSection = map[string]string{
	"abstract":              types.SectionAbstract,
	"method":                types.SectionMethods,
	"methods":               types.SectionMethods,
	"materials and methods": types.SectionMethods,
	"results":               types.SectionResults,
	"discussion":            types.SectionDiscussion,
	"conclusion":            types.SectionConclusion,
	"conclusions":           types.SectionConclusion,
}

// Build normalizes raw text and produces the Sections map. headerText is
// the first headerLimit characters of the normalized text; body is the
// whole of it. Named sections are added when their headings are found.
func Build(raw string) types.Sections {
	text := Normalize(raw)

	s := types.Sections{
		types.SectionHeader: prefix(text, headerLimit),
		types.SectionBody:   text,
	}

	for name, block := range splitHeadings(text) {
		s[name] = block
	}

	return s
}

// Normalize unifies line endings, strips control characters and NUL bytes
// that PDF extractors leak, and collapses runs of blank lines.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = strings.ReplaceAll(raw, " ", " ")

	var b strings.Builder
	b.Grow(len(raw))
	for _, ch := range raw {
		if ch == '\n' || ch == '\t' {
			b.WriteRune(ch)
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		b.WriteRune(ch)
	}

	text := b.String()
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

// prefix returns the first limit bytes of text without splitting a rune.
func prefix(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xc0 != 0x80
}

// splitHeadings walks the text line by line and collects the block under
// each recognized section heading, up to the next recognized heading.
func splitHeadings(text string) map[string]string {
	lines := strings.Split(text, "\n")
	found := make(map[string]string)

	current := ""
	var block []string

	flush := func() {
		if current == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(block, "\n"))
		// First occurrence wins; later matches are usually references
		// back to the section.
		if _, ok := found[current]; !ok && body != "" {
			found[current] = body
		}
		block = nil
	}

	for _, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			current = canonicalSection[strings.ToLower(m[1])]
			continue
		}
		if current != "" {
			block = append(block, line)
		}
	}
	flush()

	return found
}
