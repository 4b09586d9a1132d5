// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared domain types for the metadata pipeline:
// document sections, parse candidates, per-field fused results, and stage
// configuration.
package types

// Provenance identifies which extractor produced a field's value.
type Provenance string

const (
	ProvenanceHeuristic    Provenance = "heuristic"
	ProvenanceAuthority    Provenance = "authority"
	ProvenanceLLM          Provenance = "llm"
	ProvenanceGrobid       Provenance = "grobid"
	ProvenanceUnstructured Provenance = "unstructured"
)

// Field is the unit of arbitration: one candidate (or final) value for a
// single metadata attribute. A nil Value means the attribute could not be
// determined. Confidence is a [0,1] score used to break fitness ties during
// fusion; it is not a probability.
type Field[T any] struct {
	Value      *T         `json:"value" yaml:"value"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
	Provenance Provenance `json:"provenance" yaml:"provenance"`
}

// NewField builds a Field from a possibly-nil value.
func NewField[T any](value *T, confidence float64, provenance Provenance) Field[T] {
	return Field[T]{Value: value, Confidence: confidence, Provenance: provenance}
}

// IsNull reports whether the field carries no value.
func (f Field[T]) IsNull() bool {
	return f.Value == nil
}

// FusedMetadata is the pipeline output: one arbitrated field per semantic
// attribute. Callers typically unwrap to .Value for serialization.
type FusedMetadata struct {
	DocumentType    Field[string]   `json:"document_type" yaml:"document_type"`
	Authors         Field[[]string] `json:"authors" yaml:"authors"`
	DocumentDate    Field[string]   `json:"document_date" yaml:"document_date"`
	Summary         Field[string]   `json:"summary" yaml:"summary"`
	MethodsSummary  Field[string]   `json:"methods_summary" yaml:"methods_summary"`
	FindingsSummary Field[string]   `json:"findings_summary" yaml:"findings_summary"`
}

// AuthorityRecord is bibliographic metadata returned by an external DOI
// lookup. Any field may be absent.
type AuthorityRecord struct {
	Authors []string `json:"authors" yaml:"authors"`
	Date    string   `json:"date" yaml:"date"`
	Title   string   `json:"title" yaml:"title"`
}

// LLMCandidate holds the per-attribute values proposed by the language-model
// ensemble. Every field is optional; absent fields are empty. Consumers must
// tolerate a missing or partial candidate.
type LLMCandidate struct {
	DocumentType    string   `json:"document_type" yaml:"document_type"`
	Authors         []string `json:"authors" yaml:"authors"`
	DocumentDate    string   `json:"document_date" yaml:"document_date"`
	Summary         string   `json:"summary" yaml:"summary"`
	MethodsSummary  string   `json:"methods_summary" yaml:"methods_summary"`
	FindingsSummary string   `json:"findings_summary" yaml:"findings_summary"`
}
