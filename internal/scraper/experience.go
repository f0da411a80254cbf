package scraper

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// experienceDateLayout is the start-date format used by the experience
// listing, e.g. "Sep 3, 2019".
const experienceDateLayout = "Jan 2, 2006"

// extractBankExperience parses the bank-experience loop on the main
// profile view and computes the derived tenure metrics.
func (e *Extractor) extractBankExperience(ctx context.Context) SectionResult[types.BankExperienceSummary] {
	doc, err := e.pageDocument(ctx)
	if err != nil {
		return TimedOut[types.BankExperienceSummary]()
	}
	items := doc.Find(selBankExperienceItems)
	if items.Length() == 0 {
		return Absent[types.BankExperienceSummary]()
	}
	return Present(summarizeBankExperience(items, e.now()))
}

// summarizeBankExperience folds the experience entries, which the UI
// renders in reverse-chronological order, into tenure metrics and career
// text. The fold depends on that order: for each entry matching the
// target sub-organization it adds the time between the entry's start and
// the start of the next more-recent position, seeded with now for the
// current one. Entries without a parseable start date are skipped.
func summarizeBankExperience(items *goquery.Selection, now time.Time) types.BankExperienceSummary {
	var (
		bankStart    time.Time
		currentStart time.Time
		lastPosition string
		positions    []string
		fciYears     float64
	)
	nextStart := now

	items.Each(func(_ int, item *goquery.Selection) {
		dateStr, ok := FieldText(item, selExperienceFrom)
		if !ok {
			return
		}
		start, err := time.Parse(experienceDateLayout, dateStr)
		if err != nil {
			return
		}

		designation, _ := FieldText(item, selDesignation)
		unit, _ := FieldText(item, selUnits)

		if bankStart.IsZero() || bankStart.After(start) {
			bankStart = start
		}
		if strings.Contains(unit, fciShortName) || strings.Contains(unit, fciLongName) {
			fciYears += yearsBetween(start, nextStart)
		}
		if currentStart.IsZero() {
			currentStart = start
			lastPosition = designation + " - " + unit
		}
		positions = append(positions, dateStr+": "+designation+" - "+unit)
		nextStart = start
	})

	summary := types.BankExperienceSummary{
		YearsInFCI:   round2(fciYears),
		LastPosition: lastPosition,
		AllPositions: strings.Join(positions, "; "),
	}
	if !currentStart.IsZero() {
		summary.YearsInCurrentPosition = yearsBetween(currentStart, now)
	}
	if !bankStart.IsZero() {
		summary.YearsInBank = yearsBetween(bankStart, now)
	}
	return summary
}

// yearsBetween converts whole elapsed days into fractional years rounded
// to two decimals.
func yearsBetween(start, end time.Time) float64 {
	days := int(end.Sub(start).Hours() / 24)
	return round2(float64(days) / 365.25)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// extractPreBankExperience activates the pre-bank tab, expands the full
// listing and parses its entries. A missing tab is a legitimate absence:
// many staff joined straight from school.
func (e *Extractor) extractPreBankExperience(ctx context.Context) SectionResult[[]types.Experience] {
	n, err := e.page.Count(ctx, selPreBankTab)
	if err != nil {
		return TimedOut[[]types.Experience]()
	}
	if n == 0 {
		return Absent[[]types.Experience]()
	}
	if err := e.page.Click(ctx, selPreBankTab); err != nil {
		return TimedOut[[]types.Experience]()
	}
	if err := clickSeeAllAndWait(ctx, e.page, selPreBankSeeAll, e.waitTimeout); err != nil {
		return TimedOut[[]types.Experience]()
	}

	doc, err := e.pageDocument(ctx)
	if err != nil {
		return TimedOut[[]types.Experience]()
	}
	return Present(parsePreBankExperience(doc))
}

// parsePreBankExperience extracts pre-bank entries, dropping any item
// missing one of its three required sub-fields.
func parsePreBankExperience(doc *goquery.Document) []types.Experience {
	var out []types.Experience
	doc.Find(selPreBankItems).Each(func(_ int, item *goquery.Selection) {
		title, okTitle := FieldText(item, ".sf-title-txt")
		org, okOrg := FieldText(item, "div:not(.sf-title-txt):not(.sf-content-txt)")
		dates, okDates := FieldText(item, ".sf-content-txt.mt-1")
		if !okTitle || !okOrg || !okDates {
			return
		}
		out = append(out, types.Experience{
			Title:        title,
			Organization: org,
			DateRange:    dates,
		})
	})
	return out
}

// pageDocument parses the page's current DOM into a goquery document.
func (e *Extractor) pageDocument(ctx context.Context) (*goquery.Document, error) {
	html, err := e.page.HTML(ctx, "html")
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
