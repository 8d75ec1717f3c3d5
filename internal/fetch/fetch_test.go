// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Integration tests: identifier list → metadata → full-text chain →
// rendered documents, against mock E-utilities endpoints.

package fetch

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/litfetch/pkg/types"
)

// rewriteTransport redirects every request to the test server while
// preserving path and query, so the production base URLs can stay
// untouched across packages.
type rewriteTransport struct {
	serverURL *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.serverURL.Scheme
	req.URL.Host = t.serverURL.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newPipelineClient(t *testing.T, ts *httptest.Server) *http.Client {
	t.Helper()
	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Transport: rewriteTransport{serverURL: u}}
}

const fullTextEfetchXML = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <Article>
        <ArticleTitle>Full Text Available Study</ArticleTitle>
        <Abstract><AbstractText>Short abstract.</AbstractText></Abstract>
      </Article>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pmc">PMC555</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

const metadataOnlyEfetchXML = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <Article>
        <ArticleTitle>Metadata Only Study</ArticleTitle>
        <Abstract><AbstractText>Only the abstract.</AbstractText></Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

// newEutilsServer mocks efetch for both the pubmed and pmc databases.
func newEutilsServer(t *testing.T) *httptest.Server {
	t.Helper()
	pmcBody := strings.Repeat("Full text sentence from the structured record. ", 20)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entrez/eutils/efetch.fcgi" {
			http.NotFound(w, r)
			return
		}
		db := r.URL.Query().Get("db")
		id := r.URL.Query().Get("id")
		w.Header().Set("Content-Type", "application/xml")
		switch {
		case db == "pubmed" && id == "111":
			fmt.Fprint(w, fullTextEfetchXML)
		case db == "pubmed" && id == "222":
			fmt.Fprint(w, metadataOnlyEfetchXML)
		case db == "pmc" && id == "555":
			fmt.Fprintf(w, "<pmc-articleset><article><body>%s</body></article></pmc-articleset>", pmcBody)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func TestFetchBatchEndToEnd(t *testing.T) {
	ts := newEutilsServer(t)
	defer ts.Close()

	outputDir := t.TempDir()
	cfg := types.FetchConfig{OutputDir: outputDir}
	var buf bytes.Buffer

	result := FetchBatch(newPipelineClient(t, ts), nil, []string{"111", "222"}, cfg, &buf)

	if result.Total() != 2 || result.Succeeded != 2 || result.Failed != 0 {
		t.Fatalf("BatchResult = %+v, want total=2 succeeded=2 failed=0\n%s", result, buf.String())
	}

	fullDoc := readDocument(t, outputDir, "PMID_111_")
	if !strings.Contains(fullDoc, "FULL TEXT:") {
		t.Error("first document should carry a FULL TEXT heading")
	}

	metaDoc := readDocument(t, outputDir, "PMID_222_")
	if !strings.Contains(metaDoc, "ABSTRACT:") {
		t.Error("second document should carry an ABSTRACT heading")
	}
	if strings.Contains(metaDoc, "FULL TEXT:") {
		t.Error("second document should not claim full text")
	}

	if !strings.Contains(buf.String(), "Batch summary: 2 succeeded, 0 failed (total: 2)") {
		t.Errorf("summary line missing:\n%s", buf.String())
	}
}

func TestFetchBatchCountsMetadataFailures(t *testing.T) {
	ts := newEutilsServer(t)
	defer ts.Close()

	cfg := types.FetchConfig{OutputDir: t.TempDir()}
	var buf bytes.Buffer

	// "999" gets HTTP 500 from the mock; the batch continues past it.
	result := FetchBatch(newPipelineClient(t, ts), nil, []string{"999", "222"}, cfg, &buf)

	if result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("BatchResult = %+v, want succeeded=1 failed=1\n%s", result, buf.String())
	}
	if !strings.Contains(buf.String(), "failed:  999") {
		t.Errorf("per-item failure line missing:\n%s", buf.String())
	}
}

// readDocument finds the single output document whose name starts with
// prefix and returns its contents.
func readDocument(t *testing.T, dir, prefix string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			return string(data)
		}
	}
	t.Fatalf("no document with prefix %s in %s", prefix, dir)
	return ""
}

func TestReadIDList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmids.txt")
	if err := os.WriteFile(path, []byte("111\n\n  222  \n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := ReadIDList(path)
	if err != nil {
		t.Fatalf("ReadIDList() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "111" || ids[1] != "222" {
		t.Errorf("ReadIDList() = %v", ids)
	}
}

func TestReadIDListMissingFile(t *testing.T) {
	if _, err := ReadIDList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing identifier list")
	}
}
