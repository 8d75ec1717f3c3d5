// Package fetch drives the per-identifier pipeline: metadata retrieval,
// the full-text fallback chain, and document output.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/litfetch/internal/convert"
	"github.com/pdiddy/litfetch/internal/fulltext"
	"github.com/pdiddy/litfetch/internal/pubmed"
	"github.com/pdiddy/litfetch/pkg/types"
)

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Total returns the total number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any identifiers failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchArticle processes one PMID: fetch and parse metadata, attempt the
// full-text strategies in priority order, and write the output document.
// Metadata failure is the only failure; an exhausted full-text chain
// still produces a metadata-only document and counts as success.
func FetchArticle(client *http.Client, conv convert.Converter, pmid string, cfg types.FetchConfig, w io.Writer) error {
	rawXML, err := pubmed.FetchArticleXML(client, pmid, cfg.APIKey)
	if err != nil {
		return err
	}
	art, err := pubmed.ParseArticle(rawXML)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  title: %.80s\n", art.Title)

	result := fulltext.NotAttempted
	if art.PMCID != "" {
		fmt.Fprintf(w, "  trying PMC (%s)\n", art.PMCID)
		result = fulltext.FromPMC(client, art.PMCID, cfg.APIKey)
		if !result.OK() {
			fmt.Fprintf(w, "  no text from PMC: %s\n", result.Reason)
		}
	}
	if !result.OK() && art.DOI != "" {
		fmt.Fprintf(w, "  trying DOI (%s)\n", art.DOI)
		result = fulltext.FromDOI(client, conv, art.DOI)
		if !result.OK() {
			fmt.Fprintf(w, "  no text via DOI: %s\n", result.Reason)
		}
	}
	if !result.OK() {
		fmt.Fprintf(w, "  full text not available, saving abstract only\n")
	}

	path, err := SaveArticle(pmid, art, result.Text, cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  saved: %s\n", filepath.Base(path))
	return nil
}

// FetchBatch processes identifiers strictly sequentially, printing
// per-item progress to w and pausing cfg.RequestDelay between
// consecutive items. Individual failures are counted but never abort
// the batch.
func FetchBatch(client *http.Client, conv convert.Converter, pmids []string, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, pmid := range pmids {
		if i > 0 && cfg.RequestDelay > 0 {
			time.Sleep(cfg.RequestDelay)
		}
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(pmids), pmid)
		if err := FetchArticle(client, conv, pmid, cfg, w); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", pmid, err)
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	fmt.Fprintf(w, "\nBatch summary: %d succeeded, %d failed (total: %d)\n",
		result.Succeeded, result.Failed, result.Total())
	fmt.Fprintf(w, "Output directory: %s\n", cfg.OutputDir)
	return result
}

// ReadIDList reads a file of identifiers, one per line, ignoring blank
// lines. An unreadable file is fatal to the whole run.
func ReadIDList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading identifier list %s: %w", path, err)
	}
	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
