// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-meta/internal/httputil"
	"github.com/pdiddy/paper-meta/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// CrossrefClient implements Lookup against the Crossref REST API.
type CrossrefClient struct {
	client *http.Client
	cfg    types.AuthorityConfig
}

// NewCrossrefClient builds a Lookup backed by Crossref.
func NewCrossrefClient(cfg types.AuthorityConfig) *CrossrefClient {
	return &CrossrefClient{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// crossrefResponse captures the fields we need from a Crossref work record.
type crossrefResponse struct {
	Message struct {
		Title  []string `json:"title"`
		Author []struct {
			Given  string `json:"given"`
			Family string `json:"family"`
			Name   string `json:"name"`
		} `json:"author"`
		Issued struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
	} `json:"message"`
}

// Resolve fetches the Crossref record for a DOI and maps it to an
// AuthorityRecord. Missing fields stay empty.
func (c *CrossrefClient) Resolve(ctx context.Context, doi string) (*types.AuthorityRecord, error) {
	apiURL := crossrefAPIBase + url.PathEscape(doi)
	if c.cfg.MailTo != "" {
		apiURL += "?mailto=" + url.QueryEscape(c.cfg.MailTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating Crossref request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	rec := &types.AuthorityRecord{}
	if len(cr.Message.Title) > 0 {
		rec.Title = cr.Message.Title[0]
	}
	for _, a := range cr.Message.Author {
		name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if name == "" {
			name = strings.TrimSpace(a.Name)
		}
		if name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}
	if len(cr.Message.Issued.DateParts) > 0 {
		rec.Date = dateFromParts(cr.Message.Issued.DateParts[0])
	}

	return rec, nil
}

// dateFromParts renders a CSL date-parts triple at whatever precision it
// actually carries.
func dateFromParts(parts []int) string {
	switch {
	case len(parts) >= 3:
		return fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2])
	case len(parts) == 2:
		return fmt.Sprintf("%04d-%02d", parts[0], parts[1])
	case len(parts) == 1:
		return fmt.Sprintf("%04d", parts[0])
	default:
		return ""
	}
}
