// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/litfetch/pkg/types"
)

// ErrNoArticle is returned when the efetch response contains no Article
// record (unknown PMID, or an error page from the API).
var ErrNoArticle = errors.New("no article record in response")

// efetch XML structures. Only the fields the pipeline consumes are
// modeled; titles and abstract sections use flatText because they may
// carry inline markup (<i>, <sup>) whose text must be preserved.
type articleSet struct {
	Records []articleRecord `xml:"PubmedArticle"`
}

type articleRecord struct {
	Article    *articleXML `xml:"MedlineCitation>Article"`
	ArticleIDs []articleID `xml:"PubmedData>ArticleIdList>ArticleId"`
}

type articleXML struct {
	Title        *flatText         `xml:"ArticleTitle"`
	Abstract     []abstractSection `xml:"Abstract>AbstractText"`
	Authors      []authorXML       `xml:"AuthorList>Author"`
	JournalTitle string            `xml:"Journal>Title"`
	Year         string            `xml:"Journal>JournalIssue>PubDate>Year"`
}

type authorXML struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

// flatText collects every character-data fragment inside an element, in
// document order, ignoring the markup itself.
type flatText struct {
	Value string
}

func (f *flatText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	text, err := flatten(d)
	if err != nil {
		return err
	}
	f.Value = text
	return nil
}

// abstractSection is one AbstractText element with its optional Label
// attribute (e.g. BACKGROUND, METHODS in structured abstracts).
type abstractSection struct {
	Label string
	Text  string
}

func (a *abstractSection) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "Label" {
			a.Label = attr.Value
		}
	}
	text, err := flatten(d)
	if err != nil {
		return err
	}
	a.Text = text
	return nil
}

// flatten consumes tokens up to the end of the current element,
// concatenating all character data encountered on the way.
func flatten(d *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		}
	}
}

// ParseArticle parses a raw efetch XML record into an Article. It returns
// ErrNoArticle when the document has no Article sub-tree and a wrapped
// decode error when the document is not well-formed. Missing individual
// fields are not errors: Title defaults to "Unknown", everything else
// to empty.
func ParseArticle(rawXML string) (types.Article, error) {
	var set articleSet
	if err := xml.Unmarshal([]byte(rawXML), &set); err != nil {
		return types.Article{}, fmt.Errorf("malformed efetch record: %w", err)
	}

	var rec *articleRecord
	for i := range set.Records {
		if set.Records[i].Article != nil {
			rec = &set.Records[i]
			break
		}
	}
	if rec == nil {
		return types.Article{}, ErrNoArticle
	}
	src := rec.Article

	art := types.Article{
		Title:   "Unknown",
		Journal: src.JournalTitle,
		Year:    src.Year,
	}
	if src.Title != nil {
		art.Title = src.Title.Value
	}

	var sections []string
	for _, s := range src.Abstract {
		if s.Label != "" {
			sections = append(sections, s.Label+": "+s.Text)
		} else {
			sections = append(sections, s.Text)
		}
	}
	art.Abstract = strings.Join(sections, "\n\n")

	for _, a := range src.Authors {
		// Entries without a last name (e.g. collective names) are skipped.
		if a.LastName == "" {
			continue
		}
		if a.ForeName != "" {
			art.Authors = append(art.Authors, a.ForeName+" "+a.LastName)
		} else {
			art.Authors = append(art.Authors, a.LastName)
		}
	}

	for _, id := range rec.ArticleIDs {
		switch id.IDType {
		case "doi":
			if art.DOI == "" {
				art.DOI = id.Value
			}
		case "pmc":
			if art.PMCID == "" {
				art.PMCID = id.Value
			}
		}
	}

	return art, nil
}
