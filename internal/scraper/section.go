package scraper

import (
	"context"
	"errors"
	"strings"
	"time"
)

// SectionStatus describes how a section extraction ended. Absence is an
// expected outcome (some profiles legitimately lack a section); a timeout
// means the section exists but never finished rendering.
type SectionStatus int

const (
	// SectionPresent means the section was found and parsed.
	SectionPresent SectionStatus = iota
	// SectionAbsent means the section's entry point does not exist.
	SectionAbsent
	// SectionTimedOut means the section exists but failed to load in time.
	SectionTimedOut
)

// SectionResult carries a section's parsed data together with how the
// extraction ended. Absent and TimedOut results carry the zero value of
// T; the orchestrator folds them into the record as empty defaults.
type SectionResult[T any] struct {
	Status SectionStatus
	Data   T
}

// Present wraps successfully parsed section data.
func Present[T any](data T) SectionResult[T] {
	return SectionResult[T]{Status: SectionPresent, Data: data}
}

// Absent marks a section whose entry point does not exist.
func Absent[T any]() SectionResult[T] {
	return SectionResult[T]{Status: SectionAbsent}
}

// TimedOut marks a section that failed to render in time.
func TimedOut[T any]() SectionResult[T] {
	return SectionResult[T]{Status: SectionTimedOut}
}

// clickSeeAllAndWait expands a "See All" toggle when present and waits
// for its label to flip to "See Less", the signal that the collapsed list
// has been replaced by the full one. A missing toggle is fine: short
// sections render fully without one.
func clickSeeAllAndWait(ctx context.Context, page Page, toggle string, timeout time.Duration) error {
	n, err := page.Count(ctx, toggle)
	if err != nil || n == 0 {
		return err
	}
	label, ok, err := page.Text(ctx, toggle)
	if err != nil || !ok || !strings.Contains(label, "See All") {
		return err
	}
	if err := page.Click(ctx, toggle); err != nil {
		return err
	}
	return page.WaitTextContains(ctx, toggle, "See Less", timeout)
}

// isTimeout reports whether err is the driver's bounded-wait expiry.
func isTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
