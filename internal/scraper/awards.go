package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// extractAwards parses the awards panel on the main profile view into a
// pipe-delimited summary string plus a count.
func (e *Extractor) extractAwards(ctx context.Context) SectionResult[types.AwardSummary] {
	doc, err := e.pageDocument(ctx)
	if err != nil {
		return TimedOut[types.AwardSummary]()
	}
	if doc.Find(selAwardItems).Length() == 0 {
		return Absent[types.AwardSummary]()
	}
	return Present(parseAwards(doc))
}

// parseAwards joins each complete award as "name|department|date",
// dropping entries missing any of the three parts.
func parseAwards(doc *goquery.Document) types.AwardSummary {
	var awards []string
	doc.Find(selAwardItems).Each(func(_ int, item *goquery.Selection) {
		name, okName := FieldText(item, ".sf-bold")
		dept, okDept := FieldText(item, ".sf-dept")
		date, okDate := FieldText(item, ".sf-date")
		if !okName || !okDept || !okDate {
			return
		}
		awards = append(awards, name+"|"+dept+"|"+date)
	})
	return types.AwardSummary{
		ListOfAwards:        strings.Join(awards, ", "),
		TotalNumberOfAwards: len(awards),
	}
}
