// Package batch walks a staff roster through the people search, clicks
// into each profile, runs the extraction engine, and persists every
// completed record before moving to the next person. Names already
// present in the output are skipped, so an interrupted run resumes
// where it left off.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/scraper"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// DefaultSearchURL is the people-search entry point.
const DefaultSearchURL = "https://intranet.worldbank.org/people/search"

// Search-page locators. The profile pages themselves belong to the
// extraction engine.
const (
	selSearchInput = "input[id='sf_sample__text_id']"
	selFirstResult = ".sf-people-name"
)

// defaultResultTimeout bounds the wait for the first search result.
const defaultResultTimeout = 5 * time.Second

// ProfileExtractor is the extraction engine as the driver sees it.
// *scraper.Extractor satisfies it.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, name string) (*types.ProfileRecord, error)
}

// RecordSink persists one completed record.
type RecordSink interface {
	Append(rec *types.ProfileRecord) error
}

// NameLog records names that produced no usable profile.
type NameLog interface {
	Append(name string) error
}

// Driver runs the scrape over a work list of names.
type Driver struct {
	page      scraper.Page
	extractor ProfileExtractor
	sinks     []RecordSink
	notFound  NameLog
	existing  map[string]struct{}

	searchURL     string
	resultTimeout time.Duration
	log           *slog.Logger
	onRecord      func(rec *types.ProfileRecord)
}

// Options configures a Driver. Zero values fall back to defaults.
type Options struct {
	// SearchURL defaults to DefaultSearchURL.
	SearchURL string
	// Existing is the resume index of names already persisted.
	Existing map[string]struct{}
	// ResultTimeout bounds the wait for the first search result.
	ResultTimeout time.Duration
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// OnRecord, when set, is called with every persisted record.
	OnRecord func(rec *types.ProfileRecord)
}

// NewDriver wires the search page, the extractor, the record sinks
// (each record goes to every sink, in order), and the not-found log.
func NewDriver(page scraper.Page, extractor ProfileExtractor, sinks []RecordSink, notFound NameLog, opts Options) *Driver {
	d := &Driver{
		page:          page,
		extractor:     extractor,
		sinks:         sinks,
		notFound:      notFound,
		existing:      opts.Existing,
		searchURL:     opts.SearchURL,
		resultTimeout: opts.ResultTimeout,
		log:           opts.Logger,
		onRecord:      opts.OnRecord,
	}
	if d.existing == nil {
		d.existing = map[string]struct{}{}
	}
	if d.searchURL == "" {
		d.searchURL = DefaultSearchURL
	}
	if d.resultTimeout == 0 {
		d.resultTimeout = defaultResultTimeout
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	return d
}

// Summary counts the outcomes of one run.
type Summary struct {
	Processed int
	Scraped   int
	Skipped   int
	NotFound  int
	Failed    int
}

// Run processes names in work-list order. Per-person failures are
// recorded and the run continues; only persistence failures and context
// cancellation abort it.
func (d *Driver) Run(ctx context.Context, staffNames []string) (Summary, error) {
	log := d.log.With("run_id", uuid.NewString())
	log.Info("starting batch", "names", len(staffNames), "existing", len(d.existing))

	var sum Summary
	for _, name := range staffNames {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Processed++

		if _, ok := d.existing[name]; ok {
			log.Info("skipping already scraped profile", "name", name)
			sum.Skipped++
			continue
		}

		outcome, err := d.processOne(ctx, log, name)
		if err != nil {
			return sum, err
		}
		switch outcome {
		case outcomeScraped:
			sum.Scraped++
			d.existing[name] = struct{}{}
		case outcomeNotFound:
			sum.NotFound++
		case outcomeFailed:
			sum.Failed++
		}
	}

	log.Info("batch finished",
		"processed", sum.Processed,
		"scraped", sum.Scraped,
		"skipped", sum.Skipped,
		"not_found", sum.NotFound,
		"failed", sum.Failed)
	return sum, nil
}

type outcome int

const (
	outcomeScraped outcome = iota
	outcomeNotFound
	outcomeFailed
)

// processOne searches for one person and, when the first result matches,
// clicks through and extracts the profile. The returned error is fatal
// to the run; per-person failures come back as outcomes.
func (d *Driver) processOne(ctx context.Context, log *slog.Logger, name string) (outcome, error) {
	if err := d.page.Navigate(ctx, d.searchURL); err != nil {
		log.Error("failed to open people search", "name", name, "err", err)
		return outcomeFailed, nil
	}
	if err := d.page.Fill(ctx, selSearchInput, name); err != nil {
		log.Error("failed to fill search input", "name", name, "err", err)
		return outcomeFailed, nil
	}
	if err := d.page.Press(ctx, "Enter"); err != nil {
		log.Error("failed to submit search", "name", name, "err", err)
		return outcomeFailed, nil
	}

	if err := d.page.WaitVisible(ctx, selFirstResult, d.resultTimeout); err != nil {
		if errors.Is(err, scraper.ErrTimeout) {
			return d.recordNotFound(log, name, "no search results")
		}
		log.Error("failed waiting for search results", "name", name, "err", err)
		return outcomeFailed, nil
	}

	resultText, ok, err := d.page.Text(ctx, selFirstResult)
	if err != nil || !ok {
		log.Error("failed to read first search result", "name", name, "err", err)
		return outcomeFailed, nil
	}
	if !strings.Contains(resultText, name) {
		return d.recordNotFound(log, name, fmt.Sprintf("first result is %q", resultText))
	}

	if err := d.page.Click(ctx, selFirstResult); err != nil {
		log.Error("failed to open profile", "name", name, "err", err)
		return outcomeFailed, nil
	}

	rec, err := d.extractor.ExtractProfile(ctx, name)
	switch {
	case err == nil:
	case errors.Is(err, scraper.ErrProfileNotFound):
		return d.recordNotFound(log, name, "profile page never loaded")
	default:
		var violation *types.SchemaViolationError
		if errors.As(err, &violation) {
			log.Error("profile record incomplete, dropping",
				"name", name,
				"missing", violation.Missing,
				"err", err)
			return outcomeFailed, nil
		}
		if ctx.Err() != nil {
			return outcomeFailed, ctx.Err()
		}
		log.Error("profile extraction failed", "name", name, "err", err)
		return outcomeFailed, nil
	}

	for _, s := range d.sinks {
		if err := s.Append(rec); err != nil {
			return outcomeFailed, fmt.Errorf("persisting record for %s: %w", name, err)
		}
	}
	if d.onRecord != nil {
		d.onRecord(rec)
	}
	log.Info("scraped profile", "name", name, "upi", rec.UPI)
	return outcomeScraped, nil
}

// recordNotFound logs the miss and appends the name to the not-found
// log. A failing log is fatal: losing track of misses breaks resume.
func (d *Driver) recordNotFound(log *slog.Logger, name, reason string) (outcome, error) {
	log.Warn("person not found", "name", name, "reason", reason)
	if err := d.notFound.Append(name); err != nil {
		return outcomeFailed, fmt.Errorf("recording not-found name %s: %w", name, err)
	}
	return outcomeNotFound, nil
}
