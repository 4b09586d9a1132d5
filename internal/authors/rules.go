// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors locates the author block in noisy header text and
// extracts cleaned person names from it. The matching rules live here as
// named, immutable tables so each rule is independently testable and the
// evaluation order stays auditable.
package authors

import "regexp"

// titleIgnoreList holds boilerplate phrases that disqualify a line from
// being the title. Matched as lowercase substrings.
var titleIgnoreList = []string{
	"electronic copy available",
	"this preprint",
	"posted",
	"ssrn",
	"open access",
	"downloaded from",
	"all rights reserved",
	"creative commons",
	"license",
	"peer review",
	"working paper",
}

// affiliationRe marks lines carrying institution, address, or contact cues.
// A title or author line never contains these.
var affiliationRe = regexp.MustCompile(`(?i)\b(universit|college|institut|department|dept\b|school of|faculty|hospital|clinic|laborator|centre|center for|academy|ministry|p\.?o\.? box|street|avenue|suite|email|e-mail|phone|tel[.:]|fax|corresponding author|correspondence)|@`)

// stopCueRe matches section openers that terminate the author zone.
var stopCueRe = regexp.MustCompile(`(?i)^\s*(abstract|summary|keywords?|jel\b|article\s+(info|information|history)|references|bibliography|introduction)\b`)

// zoneTruncateRe cuts the extracted zone at the first in-line occurrence of
// a section opener, for the common case where the abstract starts on the
// same joined block.
var zoneTruncateRe = regexp.MustCompile(`(?i)\b(abstract|summary|keywords|introduction)\b`)

// referenceMarkerRe flags lines that belong to citations, not bylines.
var referenceMarkerRe = regexp.MustCompile(`(?i)^\s*\[\d+\]|doi:`)

// stopWordRe flags affiliation, organization, and editorial-process lines
// that survive the affiliation cue check.
var stopWordRe = regexp.MustCompile(`(?i)\b(received|accepted|revised|published|submitted|copyright|funding|grant|acknowledg|conflicts? of interest|disclosure|ethics|consent|society|association|foundation|journal|editor|volume|issue|supplement|appendix|available online|this version|affiliation)`)

// credentialRe strips degree and credential tokens that trail names. The
// trailing delimiter class keeps the pattern from eating into the next
// word; one- and two-letter degrees are required in dotted form so that
// surnames like "Do" or "Ma" survive.
var credentialRe = regexp.MustCompile(`(?i)\b(?:ph\.?\s?d|m\.?sc|b\.?sc|m\.?p\.?h|m\.?b\.?a|m\.?b\.?b\.?s|pharm\.?d|dr\.?p\.?h|sc\.?d|ed\.?d|d\.?phil|f\.?r\.?c\.?p\.?c?|facs|facc|faan|frcs|mrcp|crna|r\.?n|m\.?d|d\.?d\.?s|d\.?v\.?m|j\.?d|d\.o|m\.a|b\.a|n\.p|p\.a)\.?(?:[,;\s]|$)`)

// footnoteMarkRe removes superscript footnote marks and similar symbols
// stuck to names ("Jane Doe¹²*†").
var footnoteMarkRe = regexp.MustCompile("[¹²³⁰⁴-⁹⁺⁻*†‡§¶#]+")

// digitFootnoteRe removes plain digit footnotes attached to or between
// names ("Doe1,2" or a bare "1,2" run).
var digitFootnoteRe = regexp.MustCompile(`\d+(?:\s*,\s*\d+)*`)

// byPrefixRe strips a leading "by " from a byline.
var byPrefixRe = regexp.MustCompile(`(?i)^by\s+`)

// Name token shapes. A segment is a person name only when every token
// matches one of these.
var (
	capWordRe        = regexp.MustCompile(`^\p{Lu}[\p{Ll}'’-]+$`)
	initialRe        = regexp.MustCompile(`^\p{Lu}\.$`)
	hyphenatedPairRe = regexp.MustCompile(`^\p{Lu}\p{Ll}+-\p{Lu}\p{Ll}+$`)
	apostropheRe     = regexp.MustCompile(`^\p{Lu}['’]\p{Lu}\p{Ll}+$`)
)

// segmentSplitRe splits a byline into name segments on list punctuation
// and the "and" connector. The Oxford-comma form ", and" is one separator,
// not two.
var segmentSplitRe = regexp.MustCompile(`(?i)\s*[,;/]\s*(?:and\s+|&\s*)?|\s+and\s+|\s*&\s*`)

// creditStatementRe anchors the last-resort CRediT fallback parse.
var creditStatementRe = regexp.MustCompile(`(?i)credit\s+author(?:ship)?\s+statement\s*:?`)

// nameToken reports whether tok has one of the accepted person-name shapes.
func nameToken(tok string) bool {
	return capWordRe.MatchString(tok) || initialRe.MatchString(tok) ||
		hyphenatedPairRe.MatchString(tok) || apostropheRe.MatchString(tok)
}
