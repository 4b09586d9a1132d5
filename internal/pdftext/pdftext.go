// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext is the PDF input adapter for the CLI: best-effort plain
// text from the first pages of a file. Layout-aware parsing and OCR are
// out of scope; downstream heuristics are built for exactly this kind of
// noisy output.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const defaultMaxPages = 8

// Extract returns the plain text of the first maxPages pages of a PDF.
// Pages that fail to decode are skipped; only opening the file is fatal.
func Extract(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if n := r.NumPage(); maxPages > n {
		maxPages = n
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
