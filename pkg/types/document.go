// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Section names used as keys in Sections. HeaderText and Body are always
// present; the rest are populated only when the corresponding heading was
// found in the document.
const (
	SectionHeader     = "headerText"
	SectionBody       = "body"
	SectionAbstract   = "abstract"
	SectionMethods    = "methods"
	SectionResults    = "results"
	SectionDiscussion = "discussion"
	SectionConclusion = "conclusion"
)

// Sections maps a logical region name to its text slice. Built once per
// document and treated as immutable thereafter.
type Sections map[string]string

// Header returns the bounded header prefix of the document text.
func (s Sections) Header() string { return s[SectionHeader] }

// Body returns the full normalized document text.
func (s Sections) Body() string { return s[SectionBody] }

// ParseMethod identifies the parsing strategy that produced a ParsedDocument.
type ParseMethod string

const (
	MethodHeuristic    ParseMethod = "heuristic"
	MethodAuthority    ParseMethod = "authority"
	MethodGrobid       ParseMethod = "grobid"
	MethodUnstructured ParseMethod = "unstructured"
)

// Candidates holds the best-effort per-field values a single parsing
// strategy extracted. Nil slice / empty string mean the strategy found
// nothing for that field.
type Candidates struct {
	Authors      []string `json:"authors" yaml:"authors"`
	DocumentDate string   `json:"document_date" yaml:"document_date"`
}

// ParseMeta carries authoritative hints from parsing to fusion.
type ParseMeta struct {
	// DateFromHeader is set only when the header text was independently
	// confirmed to contain an explicit day-precision date. Fusion uses it
	// to retain day precision that would otherwise be demoted.
	DateFromHeader bool `json:"date_from_header" yaml:"date_from_header"`
}

// ParsedDocument is the parser-to-fusion contract: the sectioned text plus
// the candidates one parsing strategy produced.
type ParsedDocument struct {
	Sections   Sections    `json:"sections" yaml:"sections"`
	Candidates Candidates  `json:"candidates" yaml:"candidates"`
	Method     ParseMethod `json:"method" yaml:"method"`
	Meta       ParseMeta   `json:"meta" yaml:"meta"`
}
