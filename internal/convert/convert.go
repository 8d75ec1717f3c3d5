// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns binary documents into plain text with pluggable
// backends. The only backend currently shipped is pdftotext.
package convert

// Converter transforms raw document bytes into plain text.
type Converter interface {
	// Convert extracts text from the document. It returns an error on
	// tool failure; callers treat that as "no result from this source".
	Convert(doc []byte) (string, error)
}
