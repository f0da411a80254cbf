// Package scraper implements the profile extraction engine: it drives a
// rendered staff-profile page through its tabs and paginated listings,
// parses the resulting DOM fragments into typed records, and tolerates
// missing or partially loaded sections without aborting the batch.
package scraper

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Page waits that expired before the expected
// state was reached. It is distinct from "zero matches": a missing
// element is reported through Count/Text results, never as an error.
var ErrTimeout = errors.New("wait timed out")

// ErrProfileNotFound is returned when the top-level identity markers of a
// profile page never appeared. The batch driver records the person as
// not found and moves on; it is not fatal to the batch.
var ErrProfileNotFound = errors.New("profile not found")

// Page is the contract the extraction engine requires from the
// page-automation driver. Locators starting with "//" are XPath
// expressions; everything else is a CSS selector.
//
// All waits are bounded: implementations must return ErrTimeout (possibly
// wrapped) when the timeout elapses.
type Page interface {
	// Navigate loads a URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// Fill sets the value of an input element.
	Fill(ctx context.Context, locator, text string) error
	// Press sends a key event to the focused element.
	Press(ctx context.Context, key string) error
	// Click activates the first element matching the locator.
	Click(ctx context.Context, locator string) error
	// ClickAll activates every currently visible match, ignoring
	// individual failures.
	ClickAll(ctx context.Context, locator string) error
	// WaitVisible blocks until the first match is visible.
	WaitVisible(ctx context.Context, locator string, timeout time.Duration) error
	// WaitTextContains blocks until the first match's text contains want.
	WaitTextContains(ctx context.Context, locator, want string, timeout time.Duration) error
	// WaitIdle gives asynchronously rendered content a bounded settling
	// period after an interaction.
	WaitIdle(ctx context.Context, timeout time.Duration) error
	// Count returns the number of elements matching the locator.
	Count(ctx context.Context, locator string) (int, error)
	// Text returns the trimmed text of the first match. ok is false when
	// nothing matches; absence is not an error.
	Text(ctx context.Context, locator string) (text string, ok bool, err error)
	// HTML returns the outer HTML of the first match.
	HTML(ctx context.Context, locator string) (string, error)
	// SelectOption selects a value on a <select> element.
	SelectOption(ctx context.Context, locator, value string) error
	// ScreenshotElement captures the first match into a PNG file.
	ScreenshotElement(ctx context.Context, locator, path string) error
	// Location returns the page's current URL.
	Location(ctx context.Context) (string, error)
}
