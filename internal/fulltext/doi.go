// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/litfetch/internal/convert"
)

// DOI resolution targets, tried in order. The second URL queries a
// PMID-shaped path with a DOI value; it is a best-effort lookup carried
// over from long-standing practice, not a documented API.
var (
	doiResolverBase = "https://doi.org/"
	pmcLookupBase   = "https://www.ncbi.nlm.nih.gov/pmc/articles/pmid/"
)

// maxBodySize caps how much of a publisher response is read.
const maxBodySize = 20 << 20

// FromDOI resolves a DOI to a publisher page and extracts its text. The
// first target that answers HTTP 200 decides the outcome: PDF responses
// go through the converter (when one is available), anything else
// through the HTML extractor, and a below-threshold body ends the chain
// rather than falling through to the next target. Only fetch failures
// (network fault, non-success status) narrow the chain.
func FromDOI(client *http.Client, conv convert.Converter, doi string) Result {
	targets := []string{
		doiResolverBase + doi,
		pmcLookupBase + doi + "/",
	}

	for _, target := range targets {
		resp, err := client.Get(target)
		if err != nil {
			continue
		}
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || readErr != nil {
			continue
		}

		if isPDF(resp.Header.Get("Content-Type"), body) {
			if conv == nil {
				return Failed("PDF response with no converter available")
			}
			text, convErr := conv.Convert(body)
			if convErr != nil {
				return Failed(fmt.Sprintf("converting PDF: %v", convErr))
			}
			return thresholded(text)
		}

		return FromHTML(string(body))
	}

	return Failed("no DOI target yielded content")
}

func isPDF(contentType string, body []byte) bool {
	return strings.Contains(contentType, "application/pdf") ||
		bytes.HasPrefix(body, []byte("%PDF"))
}
