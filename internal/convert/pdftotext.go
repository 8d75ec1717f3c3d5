// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// pdftotextTimeout bounds one external tool invocation.
const pdftotextTimeout = 60 * time.Second

// PdftotextConverter extracts text from PDFs by invoking the pdftotext
// command-line tool in layout-preserving mode.
type PdftotextConverter struct {
	// Timeout overrides the default tool timeout when non-zero.
	Timeout time.Duration
}

// NewPdftotextConverter verifies that pdftotext is on PATH and returns
// a converter that uses it.
func NewPdftotextConverter() (*PdftotextConverter, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}
	return &PdftotextConverter{}, nil
}

// Convert writes the PDF to a transient file, runs pdftotext against it,
// and reads back the extracted text. Both transient files are removed
// before returning, on success and failure alike. Invalid UTF-8 in the
// tool output is dropped rather than propagated.
func (c *PdftotextConverter) Convert(doc []byte) (string, error) {
	pdfFile, err := os.CreateTemp("", "litfetch-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp PDF: %w", err)
	}
	pdfPath := pdfFile.Name()
	defer os.Remove(pdfPath)

	_, writeErr := pdfFile.Write(doc)
	closeErr := pdfFile.Close()
	if writeErr != nil {
		return "", fmt.Errorf("writing temp PDF: %w", writeErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("closing temp PDF: %w", closeErr)
	}

	txtPath := pdfPath + ".txt"
	defer os.Remove(txtPath)

	timeout := c.Timeout
	if timeout == 0 {
		timeout = pdftotextTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", pdfPath, txtPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("reading pdftotext output: %w", err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
