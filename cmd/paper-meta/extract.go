package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-meta/internal/authority"
	"github.com/pdiddy/paper-meta/internal/llm"
	"github.com/pdiddy/paper-meta/internal/pdftext"
	"github.com/pdiddy/paper-meta/internal/pipeline"
	"github.com/pdiddy/paper-meta/internal/secrets"
	"github.com/pdiddy/paper-meta/internal/store"
	"github.com/pdiddy/paper-meta/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract fused metadata from a paper's text or PDF",
	Long: `Extract reads one document (PDF or plain text), runs the heuristic
parser over its front matter, optionally resolves its DOI against
Crossref and merges a language-model candidate file, and writes the
fused metadata record to stdout as YAML.

Provide a pre-computed language-model response with --llm-json; without
it the heuristic and authority paths alone decide every field.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	text, err := readDocument(cmd, path)
	if err != nil {
		return err
	}

	lookup, err := authorityLookup(cmd)
	if err != nil {
		return err
	}

	backend, err := llmBackend(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	meta := pipeline.Run(ctx, text, lookup, backend, os.Stderr)

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRecord(cmd, path, text, meta); err != nil {
			return err
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	out, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// readDocument loads the input as text, converting PDFs first.
func readDocument(cmd *cobra.Command, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, _ := cmd.Flags().GetInt("pages")
		text, err := pdftext.Extract(path, pages)
		if err != nil {
			return "", fmt.Errorf("converting %s: %w", path, err)
		}
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// authorityLookup builds the Crossref client, or nil when lookups are off.
func authorityLookup(cmd *cobra.Command) (authority.Lookup, error) {
	if off, _ := cmd.Flags().GetBool("no-authority"); off {
		return nil, nil
	}

	mailto, _ := cmd.Flags().GetString("mailto")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	cfg := types.AuthorityConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "paper-meta/" + version,
		},
		Enabled: true,
		MailTo:  secrets.Value(loadedSecrets, "crossref-mailto", mailto),
	}
	return authority.NewCrossrefClient(cfg), nil
}

// llmBackend wraps a pre-computed model response file, or returns nil
// when none was provided.
func llmBackend(cmd *cobra.Command) (llm.Backend, error) {
	llmJSON, _ := cmd.Flags().GetString("llm-json")
	if llmJSON == "" {
		return nil, nil
	}

	data, err := os.ReadFile(llmJSON)
	if err != nil {
		return nil, fmt.Errorf("reading LLM response %s: %w", llmJSON, err)
	}
	cand := llm.Parse(data)
	if cand == nil {
		fmt.Fprintf(os.Stderr, "Warning: no usable candidate in %s\n", llmJSON)
	}
	return llm.Static{Candidate: cand}, nil
}

func saveRecord(cmd *cobra.Command, path, text string, meta types.FusedMetadata) error {
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	doi := authority.ExtractDOI(pipeline.Parse(text).Sections.Header())

	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(id, doi, meta); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %s\n", id)
	return nil
}

func init() {
	extractCmd.Flags().Int("pages", 0, "maximum PDF pages to convert (0 = default)")
	extractCmd.Flags().String("llm-json", "", "path to a pre-computed language-model response (JSON)")
	extractCmd.Flags().Bool("no-authority", false, "skip the DOI authority lookup")
	extractCmd.Flags().String("mailto", "", "contact address for the Crossref polite pool (falls back to the crossref-mailto secret)")
	extractCmd.Flags().Duration("timeout", 30*time.Second, "HTTP timeout for authority lookups")
	extractCmd.Flags().Bool("save", false, "save the fused record into the metadata store")
	extractCmd.Flags().String("id", "", "record ID for --save (default: input filename stem)")
	extractCmd.Flags().Bool("json", false, "output the record as JSON instead of YAML")

	rootCmd.AddCommand(extractCmd)
}
