// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to the NCBI E-utilities API: metadata retrieval
// (efetch) and PMID search (esearch), plus parsing of the efetch XML
// into the shared Article model.
//
// The E-utilities API is documented at
// https://www.ncbi.nlm.nih.gov/books/NBK25499/.
package pubmed

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/litfetch/pkg/types"
)

// eutilsBase is the NCBI E-utilities endpoint prefix. Declared as a var
// so tests can substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// FetchArticleXML retrieves the raw efetch XML record for one PMID.
func FetchArticleXML(client *http.Client, pmid string, apiKey string) (string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"xml"},
	}
	if apiKey != "" {
		params.Set("api_key", apiKey)
	}

	resp, err := client.Get(eutilsBase + "efetch.fcgi?" + params.Encode())
	if err != nil {
		return "", fmt.Errorf("efetch request for PMID %s: %w", pmid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("efetch returned HTTP %d for PMID %s", resp.StatusCode, pmid)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading efetch response for PMID %s: %w", pmid, err)
	}
	return string(data), nil
}

// esearchResult mirrors the esearch.fcgi XML response.
type esearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   int      `xml:"Count"`
	IDs     []string `xml:"IdList>Id"`
}

// Search queries esearch for PMIDs matching query, up to cfg.MaxResults.
func Search(client *http.Client, query string, cfg types.SearchConfig) ([]string, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{
		"db":     {"pubmed"},
		"term":   {query},
		"retmax": {fmt.Sprint(maxResults)},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}

	resp, err := client.Get(eutilsBase + "esearch.fcgi?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var result esearchResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return result.IDs, nil
}
