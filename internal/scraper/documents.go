package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// naSentinel marks a sub-field that is not available in the UI. It is
// deliberately distinct from "" so downstream consumers can tell "no
// value rendered" from "element carried empty text".
const naSentinel = "N/A"

// extractDocuments activates the documents-and-reports tab, waits for its
// container and parses the entries.
func (e *Extractor) extractDocuments(ctx context.Context) SectionResult[[]types.Document] {
	n, err := e.page.Count(ctx, selDocumentsTab)
	if err != nil {
		return TimedOut[[]types.Document]()
	}
	if n == 0 {
		return Absent[[]types.Document]()
	}
	if err := e.page.Click(ctx, selDocumentsTab); err != nil {
		return TimedOut[[]types.Document]()
	}
	if err := e.page.WaitVisible(ctx, selDocumentsContainer, e.waitTimeout); err != nil {
		return TimedOut[[]types.Document]()
	}
	if err := clickSeeAllAndWait(ctx, e.page, selDocumentsSeeAll, e.waitTimeout); err != nil {
		return TimedOut[[]types.Document]()
	}

	doc, err := e.pageDocument(ctx)
	if err != nil {
		return TimedOut[[]types.Document]()
	}
	return Present(parseDocuments(doc))
}

// parseDocuments extracts document entries. Unlike the list sections,
// entries here are kept with "N/A" placeholders for missing sub-fields;
// the document id is derived from the link's trailing path segment.
func parseDocuments(doc *goquery.Document) []types.Document {
	var out []types.Document
	doc.Find(selDocumentItems).Each(func(_ int, item *goquery.Selection) {
		date, ok := FieldText(item, ".sf-date")
		if !ok {
			date = naSentinel
		}
		title, ok := FieldText(item, ".sf-title-txt a")
		if !ok {
			title = naSentinel
		}
		link, ok := FieldAttr(item, ".sf-title-txt a", "href")
		if !ok {
			link = naSentinel
		}
		description, ok := FieldText(item, ".sf-doc-des")
		if !ok {
			description = naSentinel
		}

		out = append(out, types.Document{
			ID:          documentID(link),
			Date:        date,
			Title:       title,
			Link:        link,
			Description: description,
		})
	})
	return out
}

// documentID derives the document identifier from the trailing path
// segment of its link, or "N/A" when there is no link.
func documentID(link string) string {
	if link == naSentinel || link == "" {
		return naSentinel
	}
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
