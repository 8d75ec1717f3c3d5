// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// pmcAPIBase is the E-utilities efetch endpoint used for PubMed Central
// records. Declared as a var so tests can substitute an httptest server.
var pmcAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// FromPMC fetches the structured full-text record for a PMC identifier
// and flattens it to plain text. The "PMC" prefix is stripped before the
// request. Network and parse faults are reported as failed results, not
// errors; the fallback chain continues past them.
func FromPMC(client *http.Client, pmcID string, apiKey string) Result {
	id := strings.TrimPrefix(pmcID, "PMC")

	params := url.Values{
		"db":      {"pmc"},
		"id":      {id},
		"retmode": {"xml"},
	}
	if apiKey != "" {
		params.Set("api_key", apiKey)
	}

	resp, err := client.Get(pmcAPIBase + "?" + params.Encode())
	if err != nil {
		return Failed(fmt.Sprintf("PMC request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Failed(fmt.Sprintf("PMC returned HTTP %d", resp.StatusCode))
	}

	text, err := flattenXML(resp.Body)
	if err != nil {
		return Failed(fmt.Sprintf("parsing PMC record: %v", err))
	}
	return thresholded(text)
}

// flattenXML walks the entire XML token stream in document order and
// collects every non-blank character-data fragment (element text and
// trailing tails alike), joined by single spaces with whitespace runs
// collapsed.
func flattenXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var parts []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if cd, ok := tok.(xml.CharData); ok {
			if s := strings.TrimSpace(string(cd)); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return whitespaceRun.ReplaceAllString(strings.Join(parts, " "), " "), nil
}
