// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litfetch/pkg/types"
)

const (
	metadataDir     = "metadata"
	ruleWidth       = 80
	maxFilenameStem = 100
)

// Render produces the output document for one article. Field order is
// fixed; empty authors, journal, and DOI lines are omitted. The body is
// the full text when present, else the abstract, else a notice.
func Render(pmid string, art types.Article, fullText string) string {
	parts := []string{
		"PubMed ID: " + pmid,
		"Title: " + art.Title,
	}

	if len(art.Authors) > 0 {
		parts = append(parts, "Authors: "+strings.Join(art.Authors, ", "))
	}
	if art.Journal != "" {
		journal := art.Journal
		if art.Year != "" {
			journal += " (" + art.Year + ")"
		}
		parts = append(parts, "Journal: "+journal)
	}
	if art.DOI != "" {
		parts = append(parts, "DOI: "+art.DOI)
	}

	parts = append(parts, "\n"+strings.Repeat("=", ruleWidth)+"\n")

	switch {
	case fullText != "":
		parts = append(parts, "FULL TEXT:\n", fullText)
	case art.Abstract != "":
		parts = append(parts, "ABSTRACT:\n", art.Abstract)
	default:
		parts = append(parts, "No full text or abstract available.")
	}

	return strings.Join(parts, "\n\n")
}

var (
	nonWordChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// CleanFilename reduces a title to a filesystem-safe fragment: non-word
// characters stripped (letters and digits in any script survive),
// whitespace runs collapsed to single underscores, truncated to 100
// characters.
func CleanFilename(text string) string {
	text = nonWordChars.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, "_")
	if runes := []rune(text); len(runes) > maxFilenameStem {
		text = string(runes[:maxFilenameStem])
	}
	return text
}

// DocumentName returns the output filename for one article.
func DocumentName(pmid string, art types.Article) string {
	return fmt.Sprintf("PMID_%s_%s.txt", pmid, CleanFilename(art.Title))
}

// articleSidecar is the YAML metadata record written next to each
// output document.
type articleSidecar struct {
	PMID        string        `yaml:"pmid"`
	Article     types.Article `yaml:"article"`
	HasFullText bool          `yaml:"has_full_text"`
	RetrievedAt string        `yaml:"retrieved_at"`
}

// SaveArticle renders the article and writes it, fully formed, to the
// output directory, plus a YAML metadata sidecar under metadata/.
// It returns the document path.
func SaveArticle(pmid string, art types.Article, fullText string, outputDir string) (string, error) {
	metaDir := filepath.Join(outputDir, metadataDir)
	for _, dir := range []string{outputDir, metaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(outputDir, DocumentName(pmid, art))
	if err := os.WriteFile(path, []byte(Render(pmid, art, fullText)), 0o644); err != nil {
		return "", fmt.Errorf("writing document for PMID %s: %w", pmid, err)
	}

	sidecar := articleSidecar{
		PMID:        pmid,
		Article:     art,
		HasFullText: fullText != "",
		RetrievedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(sidecar)
	if err != nil {
		return "", fmt.Errorf("marshaling metadata for PMID %s: %w", pmid, err)
	}
	metaPath := filepath.Join(metaDir, "PMID_"+pmid+".yaml")
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing metadata for PMID %s: %w", pmid, err)
	}

	return path, nil
}
