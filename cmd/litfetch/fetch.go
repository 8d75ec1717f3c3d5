package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litfetch/internal/convert"
	"github.com/pdiddy/litfetch/internal/fetch"
	"github.com/pdiddy/litfetch/internal/httputil"
	"github.com/pdiddy/litfetch/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 500 * time.Millisecond
	defaultOutputDir = "pubmed_articles"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <pmid-file>",
	Short: "Fetch articles for a file of PubMed IDs",
	Long: `Fetch reads a file of PubMed identifiers (one per line, blank lines
ignored) and writes one text document per identifier to the output directory.
Each document carries the article metadata plus the full text when PubMed
Central or DOI resolution yields it, else the abstract.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", defaultOutputDir, "output directory for article documents")
	fetchCmd.Flags().DurationP("delay", "d", defaultDelay, "delay between consecutive identifiers")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	apiKey := ncbiAPIKey()

	// NCBI allows 3 req/s without an API key, 10 req/s with one.
	rps := 3.0
	if apiKey != "" {
		rps = 10.0
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:           timeout,
			UserAgent:         defaultUserAgent,
			RequestsPerSecond: rps,
		},
		OutputDir:    outputDir,
		RequestDelay: delay,
		APIKey:       apiKey,
	}

	pmids, err := fetch.ReadIDList(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Found %d PubMed IDs to process\n\n", len(pmids))

	var conv convert.Converter
	if p, err := convert.NewPdftotextConverter(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: PDF conversion disabled: %v\n", err)
	} else {
		conv = p
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	fetch.FetchBatch(client, conv, pmids, cfg, os.Stdout)
	return nil
}
