package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-meta/internal/store"
	"github.com/pdiddy/paper-meta/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local metadata store",
	Long: `Store manages a local SQLite database of fused metadata records.
Use subcommands to retrieve a record by ID or search the indexed
summaries with full-text queries.`,
}

var storeGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Print one stored record as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreGet,
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no record for %q", args[0])
	}

	out, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over stored summaries",
	Long: `Search runs an FTS5 query over the summary, methods, and findings
text of every stored record and prints the top matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := store.New(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	hits, err := s.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-24s  %-12s  %s\n", "Rank", "ID", "Date", "Snippet")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for i, h := range hits {
		id := h.ID
		if len(id) > 24 {
			id = id[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-24s  %-12s  %s\n", i+1, id, h.DocumentDate, h.Snippet)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
	return nil
}

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.StoreConfig{IndexDir: indexDir, MaxResults: maxResults}
}

func init() {
	for _, c := range []*cobra.Command{extractCmd, storeGetCmd, searchCmd} {
		c.Flags().String("index-dir", "index", "directory holding the metadata database")
		c.Flags().Int("max-results", 20, "maximum number of search results")
	}

	storeCmd.AddCommand(storeGetCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(searchCmd)
}
