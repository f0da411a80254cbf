package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// extractFormalEducation activates the formal-education tab, expands the
// full listing and parses its entries.
func (e *Extractor) extractFormalEducation(ctx context.Context) SectionResult[[]types.Education] {
	n, err := e.page.Count(ctx, selEducationTab)
	if err != nil {
		return TimedOut[[]types.Education]()
	}
	if n == 0 {
		return Absent[[]types.Education]()
	}
	if err := e.page.Click(ctx, selEducationTab); err != nil {
		return TimedOut[[]types.Education]()
	}
	if err := e.page.WaitIdle(ctx, e.waitTimeout); err != nil {
		return TimedOut[[]types.Education]()
	}
	if err := clickSeeAllAndWait(ctx, e.page, selEducationSeeAll, e.waitTimeout); err != nil {
		return TimedOut[[]types.Education]()
	}

	doc, err := e.pageDocument(ctx)
	if err != nil {
		return TimedOut[[]types.Education]()
	}
	return Present(parseFormalEducation(doc))
}

// parseFormalEducation extracts education entries, dropping any item
// missing degree, institution or year.
func parseFormalEducation(doc *goquery.Document) []types.Education {
	var out []types.Education
	doc.Find(selEducationItems).Each(func(_ int, item *goquery.Selection) {
		degree, okDegree := FieldText(item, ".sf-title-txt")
		institution, okInst := FieldText(item, ".sf-content-txt.sf-text-dark")
		year, okYear := FieldText(item, ".sf-content-txt.mt-1")
		if !okDegree || !okInst || !okYear {
			return
		}
		out = append(out, types.Education{
			Degree:      degree,
			Institution: institution,
			Year:        year,
		})
	})
	return out
}
