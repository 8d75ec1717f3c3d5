package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litfetch/internal/httputil"
	"github.com/pdiddy/litfetch/internal/pubmed"
	"github.com/pdiddy/litfetch/pkg/types"
)

const defaultMaxResults = 20

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search PubMed and list matching PMIDs",
	Long: `Search queries the PubMed esearch API and prints matching identifiers,
one per line. Write them to a file with -o to feed them to litfetch fetch.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("max", "m", defaultMaxResults, "maximum number of results")
	searchCmd.Flags().StringP("output", "o", "", "write PMIDs to this file instead of stdout")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	maxResults, _ := cmd.Flags().GetInt("max")
	outFile, _ := cmd.Flags().GetString("output")

	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: defaultUserAgent,
		},
		MaxResults: maxResults,
		APIKey:     ncbiAPIKey(),
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	pmids, err := pubmed.Search(client, args[0], cfg)
	if err != nil {
		return err
	}
	if len(pmids) == 0 {
		fmt.Fprintln(os.Stderr, "no results")
		return nil
	}

	list := strings.Join(pmids, "\n") + "\n"
	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(list), 0o644); err != nil {
			return fmt.Errorf("writing PMID list: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Wrote %d PMIDs to %s\n", len(pmids), outFile)
		return nil
	}
	fmt.Fprint(os.Stdout, list)
	return nil
}
