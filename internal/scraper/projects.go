package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// ProjectCategory identifies one tab of the project-experience listing.
type ProjectCategory string

const (
	// CategoryLending is the lending-projects tab.
	CategoryLending ProjectCategory = "lending"
	// CategoryNonLending is the non-lending (advisory) projects tab.
	CategoryNonLending ProjectCategory = "nonlending"
	// CategoryIFC is the IFC-projects tab, whose codes use a different
	// grammar than the other two.
	CategoryIFC ProjectCategory = "ifc"
)

// extractProjects drives the three category listings in their fixed
// aggregation order. Each category is isolated: a failure inside one
// degrades it to an empty bucket and never suppresses the other two.
func (e *Extractor) extractProjects(ctx context.Context) types.ProjectSet {
	if n, err := e.page.Count(ctx, selViewAllProjects); err == nil && n > 0 {
		if err := e.page.Click(ctx, selViewAllProjects); err == nil {
			_ = e.page.WaitIdle(ctx, e.waitTimeout)
		}
	}

	return types.ProjectSet{
		Lending:    e.collectCategory(ctx, CategoryLending),
		NonLending: e.collectCategory(ctx, CategoryNonLending),
		IFC:        e.collectCategory(ctx, CategoryIFC),
	}
}

// collectCategory is the per-category failure boundary.
func (e *Extractor) collectCategory(ctx context.Context, cat ProjectCategory) types.ProjectBucket {
	bucket, err := e.collectCategoryPages(ctx, cat)
	if err != nil {
		e.log.Warn("project category extraction failed",
			"category", string(cat), "rows_discarded", bucket.Len(), "err", err)
		return types.ProjectBucket{}
	}
	return bucket
}

// collectCategoryPages walks a category tab through all of its pages,
// accumulating rows in source order. The current-page-number assertion
// before each parse guards against reading a stale page after a slow
// transition.
func (e *Extractor) collectCategoryPages(ctx context.Context, cat ProjectCategory) (types.ProjectBucket, error) {
	var bucket types.ProjectBucket

	if err := e.page.WaitTextContains(ctx, selProjectsHeading, "Project Experience", e.waitTimeout); err != nil {
		return bucket, fmt.Errorf("project panel heading: %w", err)
	}

	tab := fmt.Sprintf(`span[data-customlink='tb:%sprojects']`, cat)
	if err := e.page.WaitVisible(ctx, tab, tabWaitTimeout); err != nil {
		return bucket, fmt.Errorf("category tab: %w", err)
	}
	if err := e.page.Click(ctx, tab); err != nil {
		return bucket, err
	}
	if err := e.page.WaitVisible(ctx, selProjectGroup, e.waitTimeout); err != nil {
		return bucket, fmt.Errorf("first listing group: %w", err)
	}

	// Largest supported page size keeps the page count down.
	if n, err := e.page.Count(ctx, selPageSizeSelect); err == nil && n > 0 {
		if err := e.page.SelectOption(ctx, selPageSizeSelect, "50"); err != nil {
			return bucket, err
		}
		if err := e.page.WaitVisible(ctx, selProjectGroup, e.waitTimeout); err != nil {
			return bucket, fmt.Errorf("listing group after resize: %w", err)
		}
	}

	for pageNum := 1; ; pageNum++ {
		if err := e.page.WaitVisible(ctx, currentPageLocator(pageNum), e.waitTimeout); err != nil {
			return bucket, fmt.Errorf("page %d indicator: %w", pageNum, err)
		}

		doc, err := e.pageDocument(ctx)
		if err != nil {
			return bucket, err
		}
		parseProjectRows(doc, cat, &bucket)

		n, err := e.page.Count(ctx, selNextPageEnabled)
		if err != nil {
			return bucket, err
		}
		if n == 0 {
			break
		}
		if err := e.page.Click(ctx, selNextPageEnabled); err != nil {
			return bucket, err
		}
	}

	return bucket, nil
}

func currentPageLocator(pageNum int) string {
	return fmt.Sprintf(`//li[contains(@class, 'current') and normalize-space(.)='%d']`, pageNum)
}

// parseProjectRows appends every listing group of the current page to the
// bucket, preserving item order.
func parseProjectRows(doc *goquery.Document, cat ProjectCategory, bucket *types.ProjectBucket) {
	doc.Find(selProjectGroup).Each(func(_ int, row *goquery.Selection) {
		title, _ := FieldText(row, selProjectTitle)
		href, _ := FieldAttr(row, selProjectTitle, "href")
		bucket.Append(title, ParseProjectCode(href, cat), inlineItemValue(row, "Status:"), inlineItemValue(row, "Fiscal Year:"))
	})
}

// inlineItemValue finds the list-inline item labeled with label and
// returns its highlighted value, or "N/A" when the item is missing.
func inlineItemValue(row *goquery.Selection, label string) string {
	value := naSentinel
	row.Find("li.list-inline-item").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if !strings.Contains(li.Text(), label) {
			return true
		}
		if v, ok := FieldText(li, "span.sf-dark"); ok {
			value = v
		}
		return false
	})
	return value
}

// ParseProjectCode derives a project code from a listing hyperlink by
// scanning path segments from the end. IFC links carry purely numeric
// codes of at least five digits; the other categories use "P" followed
// by digits. No matching segment yields an empty code.
func ParseProjectCode(href string, cat ProjectCategory) string {
	if href == "" {
		return ""
	}
	parts := strings.Split(href, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if cat == CategoryIFC {
			if len(part) >= 5 && isDigits(part) {
				return part
			}
			continue
		}
		if len(part) > 1 && part[0] == 'P' && isDigits(part[1:]) {
			return part
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
