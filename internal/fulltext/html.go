// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in priority order to locate the article
// body region of a publisher page. The first match wins; when none
// match, the whole document's text is used.
var contentSelectors = []string{
	"article",
	"main",
	".article-content",
	".article-body",
	"#article-content",
	".content",
}

var blankLineRun = regexp.MustCompile(`\n\n+`)

// FromHTML extracts readable text from a raw HTML page. Script, style,
// and page-chrome elements are removed before extraction. The result is
// gated on MinContentLength like every other strategy.
func FromHTML(raw string) Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Failed(fmt.Sprintf("parsing HTML: %v", err))
	}

	doc.Find("script, style, nav, header, footer").Remove()

	var text string
	for _, sel := range contentSelectors {
		if region := doc.Find(sel).First(); region.Length() > 0 {
			text = region.Text()
			break
		}
	}
	if text == "" {
		text = doc.Text()
	}

	return thresholded(cleanLines(text))
}

// cleanLines trims every line, drops blank ones, rejoins with blank-line
// separators, and collapses any remaining runs of blank lines to one.
func cleanLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return blankLineRun.ReplaceAllString(strings.Join(lines, "\n\n"), "\n\n")
}
