package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FieldText returns the trimmed text content of the first element
// matching locator within scope. ok is false when nothing matches;
// absence is a normal outcome for optional UI fields and never an error.
func FieldText(scope *goquery.Selection, locator string) (string, bool) {
	sel := scope.Find(locator).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// FieldAttr returns the trimmed value of attr on the first element
// matching locator within scope, with the same absence semantics as
// FieldText.
func FieldAttr(scope *goquery.Selection, locator, attr string) (string, bool) {
	sel := scope.Find(locator).First()
	if sel.Length() == 0 {
		return "", false
	}
	val, ok := sel.Attr(attr)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(val), true
}
