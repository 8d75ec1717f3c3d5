// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fulltext implements the full-text acquisition strategies:
// PubMed Central structured records, DOI resolution to publisher pages,
// and generic HTML content extraction. Extraction never fails the
// pipeline; each strategy reports its outcome as a Result and the
// orchestrator falls through to the next one.
package fulltext

import (
	"regexp"
	"unicode/utf8"
)

// MinContentLength is the minimum number of characters extracted text
// must reach to be trusted as article content rather than boilerplate
// or an error page. The value is an inherited heuristic; no further
// meaning should be read into it. Declared as a var so tests can
// substitute a small threshold.
var MinContentLength = 500

// Status classifies the outcome of one extraction attempt.
type Status int

const (
	// StatusNotAttempted means the strategy had no input to work with
	// (no PMCID, no DOI) and was skipped.
	StatusNotAttempted Status = iota

	// StatusSuccess means usable text was extracted.
	StatusSuccess

	// StatusFailed means the strategy ran but produced no usable text.
	StatusFailed
)

// Result is the outcome of one full-text extraction attempt.
type Result struct {
	Status Status
	Text   string
	Reason string
}

// OK reports whether the attempt produced usable text.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// NotAttempted is the result of a strategy that was skipped.
var NotAttempted = Result{Status: StatusNotAttempted}

// Success wraps extracted text in a successful Result.
func Success(text string) Result {
	return Result{Status: StatusSuccess, Text: text}
}

// Failed records why a strategy produced nothing.
func Failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}

// thresholded gates extracted text on MinContentLength: text at or above
// the threshold is a success, anything shorter is rejected outright
// (never returned as a short string). The threshold counts characters,
// not bytes, so multibyte scripts are not over-counted.
func thresholded(text string) Result {
	if utf8.RuneCountInString(text) >= MinContentLength {
		return Success(text)
	}
	return Failed("content below minimum length")
}

var whitespaceRun = regexp.MustCompile(`\s+`)
