// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the litfetch pipeline.
package types

// Article holds the bibliographic metadata parsed from a PubMed record.
// Absent fields are empty strings (never null) so downstream formatting
// is uniform; Title is never empty and defaults to "Unknown".
type Article struct {
	// Title is the article title with inline markup flattened.
	Title string `json:"title" yaml:"title"`

	// Abstract joins the labeled abstract segments with blank lines.
	// Empty when the record carries no abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors lists authors in source order as "Forename Lastname" or
	// "Lastname". Entries without a last name are not included.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Journal is the journal title.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Year is the publication year as given by the record, unvalidated.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// DOI is the Digital Object Identifier, when the record carries one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PMCID links the record to PubMed Central full text, when available.
	PMCID string `json:"pmc_id,omitempty" yaml:"pmc_id,omitempty"`
}
