// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists fused metadata records in SQLite and serves
// full-text search over the summaries. One row per paper plus a per-field
// audit trail of confidence and provenance.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-meta/pkg/types"
)

const dbFile = "paper-meta.db"

// Store manages the metadata SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Record is one stored paper's fused metadata.
type Record struct {
	ID        string              `json:"id" yaml:"id"`
	DOI       string              `json:"doi,omitempty" yaml:"doi,omitempty"`
	Meta      types.FusedMetadata `json:"metadata" yaml:"metadata"`
	CreatedAt time.Time           `json:"created_at" yaml:"created_at"`
}

// SearchHit is one full-text search result.
type SearchHit struct {
	ID           string `json:"id" yaml:"id"`
	DocumentType string `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	DocumentDate string `json:"document_date,omitempty" yaml:"document_date,omitempty"`
	Snippet      string `json:"snippet" yaml:"snippet"`
}

// New opens or creates the metadata database under cfg.IndexDir and
// creates the schema if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.IndexDir
	if dir == "" {
		dir = "index"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			doi TEXT,
			document_type TEXT,
			authors TEXT,
			document_date TEXT,
			summary TEXT,
			methods_summary TEXT,
			findings_summary TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS fields (
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			value TEXT,
			confidence REAL,
			provenance TEXT,
			PRIMARY KEY (paper_id, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(summary, methods_summary, findings_summary, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, summary, methods_summary, findings_summary)
				VALUES (new.rowid, new.summary, new.methods_summary, new.findings_summary);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, summary, methods_summary, findings_summary)
				VALUES('delete', old.rowid, old.summary, old.methods_summary, old.findings_summary);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, summary, methods_summary, findings_summary)
				VALUES('delete', old.rowid, old.summary, old.methods_summary, old.findings_summary);
				INSERT INTO papers_fts(rowid, summary, methods_summary, findings_summary)
				VALUES (new.rowid, new.summary, new.methods_summary, new.findings_summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save upserts one paper's fused metadata and its per-field audit rows.
func (s *Store) Save(id, doi string, meta types.FusedMetadata) error {
	if id == "" {
		return fmt.Errorf("paper id is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM papers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("clearing previous record: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO papers (id, doi, document_type, authors, document_date, summary, methods_summary, findings_summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, doi,
		strValue(meta.DocumentType),
		strings.Join(listValue(meta.Authors), "; "),
		strValue(meta.DocumentDate),
		strValue(meta.Summary),
		strValue(meta.MethodsSummary),
		strValue(meta.FindingsSummary),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting paper %s: %w", id, err)
	}

	for name, f := range auditRows(meta) {
		if _, err := tx.Exec(
			`INSERT INTO fields (paper_id, name, value, confidence, provenance) VALUES (?, ?, ?, ?, ?)`,
			id, name, f.value, f.confidence, f.provenance,
		); err != nil {
			return fmt.Errorf("inserting field %s for %s: %w", name, id, err)
		}
	}

	return tx.Commit()
}

// Get returns the stored record for a paper id, or nil when absent. The
// reconstructed FusedMetadata carries the audited confidence and
// provenance per field.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, doi, document_type, authors, document_date, summary, methods_summary, findings_summary, created_at
		 FROM papers WHERE id = ?`, id)

	var rec Record
	var docType, authors, docDate, summary, methods, findings, createdAt string
	err := row.Scan(&rec.ID, &rec.DOI, &docType, &authors, &docDate, &summary, &methods, &findings, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading paper %s: %w", id, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rec.Meta = types.FusedMetadata{
		DocumentType:    strField(docType),
		Authors:         listField(authors),
		DocumentDate:    strField(docDate),
		Summary:         strField(summary),
		MethodsSummary:  strField(methods),
		FindingsSummary: strField(findings),
	}

	rows, err := s.db.Query(`SELECT name, confidence, provenance FROM fields WHERE paper_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("reading fields for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, provenance string
		var confidence float64
		if err := rows.Scan(&name, &confidence, &provenance); err != nil {
			return nil, fmt.Errorf("scanning field row: %w", err)
		}
		applyAudit(&rec.Meta, name, confidence, types.Provenance(provenance))
	}
	return &rec, rows.Err()
}

// Search runs a full-text query over the stored summaries.
func (s *Store) Search(query string) ([]SearchHit, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.document_type, p.document_date,
		        snippet(papers_fts, 0, '[', ']', '...', 12)
		 FROM papers_fts
		 JOIN papers p ON p.rowid = papers_fts.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.ID, &h.DocumentType, &h.DocumentDate, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// --- field flattening ---

type auditRow struct {
	value      string
	confidence float64
	provenance string
}

func auditRows(meta types.FusedMetadata) map[string]auditRow {
	return map[string]auditRow{
		"document_type":    {strValue(meta.DocumentType), meta.DocumentType.Confidence, string(meta.DocumentType.Provenance)},
		"authors":          {strings.Join(listValue(meta.Authors), "; "), meta.Authors.Confidence, string(meta.Authors.Provenance)},
		"document_date":    {strValue(meta.DocumentDate), meta.DocumentDate.Confidence, string(meta.DocumentDate.Provenance)},
		"summary":          {strValue(meta.Summary), meta.Summary.Confidence, string(meta.Summary.Provenance)},
		"methods_summary":  {strValue(meta.MethodsSummary), meta.MethodsSummary.Confidence, string(meta.MethodsSummary.Provenance)},
		"findings_summary": {strValue(meta.FindingsSummary), meta.FindingsSummary.Confidence, string(meta.FindingsSummary.Provenance)},
	}
}

func applyAudit(meta *types.FusedMetadata, name string, confidence float64, prov types.Provenance) {
	switch name {
	case "document_type":
		meta.DocumentType.Confidence, meta.DocumentType.Provenance = confidence, prov
	case "authors":
		meta.Authors.Confidence, meta.Authors.Provenance = confidence, prov
	case "document_date":
		meta.DocumentDate.Confidence, meta.DocumentDate.Provenance = confidence, prov
	case "summary":
		meta.Summary.Confidence, meta.Summary.Provenance = confidence, prov
	case "methods_summary":
		meta.MethodsSummary.Confidence, meta.MethodsSummary.Provenance = confidence, prov
	case "findings_summary":
		meta.FindingsSummary.Confidence, meta.FindingsSummary.Provenance = confidence, prov
	}
}

func strValue(f types.Field[string]) string {
	if f.Value == nil {
		return ""
	}
	return *f.Value
}

func listValue(f types.Field[[]string]) []string {
	if f.Value == nil {
		return nil
	}
	return *f.Value
}

func strField(v string) types.Field[string] {
	if v == "" {
		return types.Field[string]{}
	}
	return types.Field[string]{Value: &v}
}

func listField(joined string) types.Field[[]string] {
	if joined == "" {
		return types.Field[[]string]{}
	}
	list := strings.Split(joined, "; ")
	return types.Field[[]string]{Value: &list}
}
