// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// overrideDOIBases points the DOI targets at a test server and returns a
// cleanup function that restores the originals.
func overrideDOIBases(tsURL string) func() {
	origResolver := doiResolverBase
	origLookup := pmcLookupBase
	doiResolverBase = tsURL + "/doi/"
	pmcLookupBase = tsURL + "/pmc-lookup/"
	return func() {
		doiResolverBase = origResolver
		pmcLookupBase = origLookup
	}
}

// fakeConverter returns canned text for any document.
type fakeConverter struct {
	text string
	err  error
}

func (f fakeConverter) Convert([]byte) (string, error) {
	return f.text, f.err
}

func TestFromDOIFirstTargetWins(t *testing.T) {
	page := fmt.Sprintf("<html><body><article>%s</article></body></html>", longParagraph())
	var lookupCalled atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/doi/"):
			fmt.Fprint(w, page)
		case strings.HasPrefix(r.URL.Path, "/pmc-lookup/"):
			lookupCalled.Store(true)
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()
	defer overrideDOIBases(ts.URL)()

	r := FromDOI(ts.Client(), nil, "10.1000/test")
	if !r.OK() {
		t.Fatalf("FromDOI() = %+v, want success", r)
	}
	if lookupCalled.Load() {
		t.Error("secondary lookup attempted after primary succeeded")
	}
}

func TestFromDOIShortPrimaryEndsChain(t *testing.T) {
	page := fmt.Sprintf("<html><body><main>%s</main></body></html>", longParagraph())
	var lookupCalled atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/doi/"):
			fmt.Fprint(w, "<html><body><article>Access denied.</article></body></html>")
		case strings.HasPrefix(r.URL.Path, "/pmc-lookup/"):
			lookupCalled.Store(true)
			fmt.Fprint(w, page)
		}
	}))
	defer ts.Close()
	defer overrideDOIBases(ts.URL)()

	r := FromDOI(ts.Client(), nil, "10.1000/test")
	if r.Status != StatusFailed {
		t.Errorf("FromDOI() = %+v, want failed when the first answering target is too short", r)
	}
	if lookupCalled.Load() {
		t.Error("secondary lookup attempted after primary answered")
	}
}

func TestFromDOIFallsBackToSecondTarget(t *testing.T) {
	page := fmt.Sprintf("<html><body><main>%s</main></body></html>", longParagraph())
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/doi/"):
			w.WriteHeader(http.StatusForbidden)
		case strings.HasPrefix(r.URL.Path, "/pmc-lookup/"):
			fmt.Fprint(w, page)
		}
	}))
	defer ts.Close()
	defer overrideDOIBases(ts.URL)()

	if r := FromDOI(ts.Client(), nil, "10.1000/test"); !r.OK() {
		t.Fatalf("FromDOI() = %+v, want success from second target", r)
	}
}

func TestFromDOIRoutesPDFThroughConverter(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4 fake")
	}))
	defer ts.Close()
	defer overrideDOIBases(ts.URL)()

	text := strings.Repeat("extracted pdf text ", 30)
	r := FromDOI(ts.Client(), fakeConverter{text: text}, "10.1000/test")
	if !r.OK() {
		t.Fatalf("FromDOI() = %+v, want success via converter", r)
	}
	if r.Text != text {
		t.Error("converter output not used")
	}
}

func TestFromDOIPDFWithoutConverter(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4 fake")
	}))
	defer ts.Close()
	defer overrideDOIBases(ts.URL)()

	if r := FromDOI(ts.Client(), nil, "10.1000/test"); r.Status != StatusFailed {
		t.Errorf("FromDOI() = %+v, want failed when no converter available", r)
	}
}

func TestFromDOINoTargetSucceeds(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	defer overrideDOIBases(ts.URL)()

	if r := FromDOI(ts.Client(), nil, "10.1000/test"); r.Status != StatusFailed {
		t.Errorf("FromDOI() = %+v, want failed", r)
	}
}
