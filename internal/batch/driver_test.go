package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/scraper"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// personScript describes how the search page behaves for one name.
type personScript struct {
	resultWaitErr error
	resultText    string
}

// fakeSearchPage plays back scripted search results keyed by the name
// last typed into the search box.
type fakeSearchPage struct {
	scripts     map[string]personScript
	current     string
	navigations []string
	clicked     []string
}

func (p *fakeSearchPage) Navigate(_ context.Context, url string) error {
	p.navigations = append(p.navigations, url)
	return nil
}

func (p *fakeSearchPage) Fill(_ context.Context, _, text string) error {
	p.current = text
	return nil
}

func (p *fakeSearchPage) Press(context.Context, string) error { return nil }

func (p *fakeSearchPage) Click(_ context.Context, _ string) error {
	p.clicked = append(p.clicked, p.current)
	return nil
}

func (p *fakeSearchPage) ClickAll(context.Context, string) error { return nil }

func (p *fakeSearchPage) WaitVisible(_ context.Context, _ string, _ time.Duration) error {
	return p.scripts[p.current].resultWaitErr
}

func (p *fakeSearchPage) WaitTextContains(context.Context, string, string, time.Duration) error {
	return nil
}

func (p *fakeSearchPage) WaitIdle(context.Context, time.Duration) error { return nil }

func (p *fakeSearchPage) Count(context.Context, string) (int, error) { return 0, nil }

func (p *fakeSearchPage) Text(context.Context, string) (string, bool, error) {
	s := p.scripts[p.current]
	return s.resultText, s.resultText != "", nil
}

func (p *fakeSearchPage) HTML(context.Context, string) (string, error) { return "", nil }

func (p *fakeSearchPage) SelectOption(context.Context, string, string) error { return nil }

func (p *fakeSearchPage) ScreenshotElement(context.Context, string, string) error { return nil }

func (p *fakeSearchPage) Location(context.Context) (string, error) { return "", nil }

var _ scraper.Page = (*fakeSearchPage)(nil)

// fakeExtractor returns a scripted record or error per name and tracks
// what it was asked to extract.
type fakeExtractor struct {
	errs      map[string]error
	extracted []string
}

func (e *fakeExtractor) ExtractProfile(_ context.Context, name string) (*types.ProfileRecord, error) {
	e.extracted = append(e.extracted, name)
	if err := e.errs[name]; err != nil {
		return nil, err
	}
	return &types.ProfileRecord{Name: name, UPI: "123456"}, nil
}

type memorySink struct {
	records []string
	err     error
}

func (s *memorySink) Append(rec *types.ProfileRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec.Name)
	return nil
}

type memoryNameLog struct {
	names []string
}

func (l *memoryNameLog) Append(name string) error {
	l.names = append(l.names, name)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func foundScript(names ...string) map[string]personScript {
	scripts := map[string]personScript{}
	for _, n := range names {
		scripts[n] = personScript{resultText: n + " (EFNFI)"}
	}
	return scripts
}

func TestRunScrapesAndPersistsEveryName(t *testing.T) {
	page := &fakeSearchPage{scripts: foundScript("Ada Lovelace", "Grace Hopper")}
	ext := &fakeExtractor{}
	csvSink := &memorySink{}
	jsonSink := &memorySink{}
	notFound := &memoryNameLog{}

	d := NewDriver(page, ext, []RecordSink{csvSink, jsonSink}, notFound, Options{Logger: quietLogger()})
	sum, err := d.Run(context.Background(), []string{"Ada Lovelace", "Grace Hopper"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Processed: 2, Scraped: 2}, sum)
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, ext.extracted)
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, csvSink.records)
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, jsonSink.records)
	assert.Empty(t, notFound.names)
	assert.Len(t, page.navigations, 2)
}

func TestRunSkipsAlreadyScrapedNames(t *testing.T) {
	page := &fakeSearchPage{scripts: foundScript("Grace Hopper")}
	ext := &fakeExtractor{}
	sink := &memorySink{}

	d := NewDriver(page, ext, []RecordSink{sink}, &memoryNameLog{}, Options{
		Existing: map[string]struct{}{"Ada Lovelace": {}},
		Logger:   quietLogger(),
	})
	sum, err := d.Run(context.Background(), []string{"Ada Lovelace", "Grace Hopper"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Processed: 2, Scraped: 1, Skipped: 1}, sum)
	assert.Equal(t, []string{"Grace Hopper"}, ext.extracted)
	assert.Empty(t, page.navigations[1:], "skipped names must not hit the search page twice")
}

func TestRunRecordsTimeoutAsNotFound(t *testing.T) {
	page := &fakeSearchPage{scripts: map[string]personScript{
		"Ada Lovelace": {resultWaitErr: scraper.ErrTimeout},
		"Grace Hopper": {resultText: "Grace Hopper (EFNCL)"},
	}}
	ext := &fakeExtractor{}
	notFound := &memoryNameLog{}

	d := NewDriver(page, ext, []RecordSink{&memorySink{}}, notFound, Options{Logger: quietLogger()})
	sum, err := d.Run(context.Background(), []string{"Ada Lovelace", "Grace Hopper"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Processed: 2, Scraped: 1, NotFound: 1}, sum)
	assert.Equal(t, []string{"Ada Lovelace"}, notFound.names)
	assert.Equal(t, []string{"Grace Hopper"}, ext.extracted)
}

func TestRunRejectsMismatchedFirstResult(t *testing.T) {
	page := &fakeSearchPage{scripts: map[string]personScript{
		"Ada Lovelace": {resultText: "Adam Loveless (EFNFI)"},
	}}
	ext := &fakeExtractor{}
	notFound := &memoryNameLog{}

	d := NewDriver(page, ext, []RecordSink{&memorySink{}}, notFound, Options{Logger: quietLogger()})
	sum, err := d.Run(context.Background(), []string{"Ada Lovelace"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Processed: 1, NotFound: 1}, sum)
	assert.Equal(t, []string{"Ada Lovelace"}, notFound.names)
	assert.Empty(t, ext.extracted, "mismatched result must not be clicked into")
	assert.Empty(t, page.clicked)
}

func TestRunContinuesPastIncompleteRecords(t *testing.T) {
	page := &fakeSearchPage{scripts: foundScript("Ada Lovelace", "Grace Hopper")}
	ext := &fakeExtractor{errs: map[string]error{
		"Ada Lovelace": &types.SchemaViolationError{Name: "Ada Lovelace", Missing: []string{"projects"}},
	}}
	sink := &memorySink{}

	d := NewDriver(page, ext, []RecordSink{sink}, &memoryNameLog{}, Options{Logger: quietLogger()})
	sum, err := d.Run(context.Background(), []string{"Ada Lovelace", "Grace Hopper"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Processed: 2, Scraped: 1, Failed: 1}, sum)
	assert.Equal(t, []string{"Grace Hopper"}, sink.records)
}

func TestRunRecordsProfileLoadFailureAsNotFound(t *testing.T) {
	page := &fakeSearchPage{scripts: foundScript("Ada Lovelace")}
	ext := &fakeExtractor{errs: map[string]error{
		"Ada Lovelace": &scraper.ProfileLoadError{Name: "Ada Lovelace", Cause: scraper.ErrTimeout},
	}}
	notFound := &memoryNameLog{}

	d := NewDriver(page, ext, []RecordSink{&memorySink{}}, notFound, Options{Logger: quietLogger()})
	sum, err := d.Run(context.Background(), []string{"Ada Lovelace"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Processed: 1, NotFound: 1}, sum)
	assert.Equal(t, []string{"Ada Lovelace"}, notFound.names)
}

func TestRunAbortsWhenPersistenceFails(t *testing.T) {
	page := &fakeSearchPage{scripts: foundScript("Ada Lovelace", "Grace Hopper")}
	ext := &fakeExtractor{}
	sink := &memorySink{err: errors.New("disk full")}

	d := NewDriver(page, ext, []RecordSink{sink}, &memoryNameLog{}, Options{Logger: quietLogger()})
	_, err := d.Run(context.Background(), []string{"Ada Lovelace", "Grace Hopper"})
	require.Error(t, err)
	assert.Equal(t, []string{"Ada Lovelace"}, ext.extracted, "run must stop once records cannot be persisted")
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := &fakeSearchPage{scripts: foundScript("Ada Lovelace")}
	d := NewDriver(page, &fakeExtractor{}, []RecordSink{&memorySink{}}, &memoryNameLog{}, Options{Logger: quietLogger()})

	_, err := d.Run(ctx, []string{"Ada Lovelace"})
	assert.ErrorIs(t, err, context.Canceled)
}
