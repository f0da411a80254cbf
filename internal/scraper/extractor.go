package scraper

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// DefaultWaitTimeout bounds every element wait issued by the extractor.
const DefaultWaitTimeout = 5 * time.Second

// tabWaitTimeout bounds the shorter wait for a category tab to appear.
const tabWaitTimeout = 2 * time.Second

// Sub-organization the tenure metrics are computed against. Matching is
// by substring against either form, mirroring how unit names appear in
// the experience listing.
const (
	fciShortName = "FCI"
	fciLongName  = "Finance, Competitiveness & Innovation"
)

// Extractor drives one profile page through its sections and listings
// and assembles a ProfileRecord. It is created per batch and reused
// across profiles; all per-profile state lives in the record builder.
type Extractor struct {
	page        Page
	log         *slog.Logger
	photoDir    string
	waitTimeout time.Duration
	now         func() time.Time
}

// Options configures an Extractor. Zero values fall back to defaults.
type Options struct {
	// PhotoDir is where best-effort profile images are written. Empty
	// disables image capture.
	PhotoDir string
	// WaitTimeout bounds element waits; defaults to DefaultWaitTimeout.
	WaitTimeout time.Duration
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// Now overrides the clock used for tenure computation (tests).
	Now func() time.Time
}

// NewExtractor returns an extractor over the given page driver.
func NewExtractor(page Page, opts Options) *Extractor {
	e := &Extractor{
		page:        page,
		log:         opts.Logger,
		photoDir:    opts.PhotoDir,
		waitTimeout: opts.WaitTimeout,
		now:         opts.Now,
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.waitTimeout == 0 {
		e.waitTimeout = DefaultWaitTimeout
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// extractBasicInfo reads the identity fields from the profile header.
// Every field is optional at this stage; the record builder's identity
// validation is the gate that rejects records without a usable URL/UPI.
func (e *Extractor) extractBasicInfo(ctx context.Context, name string) types.BasicInfo {
	url, err := e.page.Location(ctx)
	if err != nil {
		e.log.Warn("failed to read profile url", "name", name, "err", err)
	}

	info := types.BasicInfo{
		Name: name,
		URL:  url,
		UPI:  upiFromURL(url),
	}

	info.OfficialUnitName, _, _ = e.page.Text(ctx, selOfficialUnit)
	info.CurrentUnitName, _, _ = e.page.Text(ctx, selCurrentUnit)
	info.WorkAndDutyLocation, _, _ = e.page.Text(ctx, selWorkLocation)

	unitCode, ok, _ := e.page.Text(ctx, selUnitCode)
	if !ok {
		unitCode = "N/A"
	}
	info.UnitCode = unitCode

	if full, ok, _ := e.page.Text(ctx, selRoomInfoSet); ok {
		info.RoomNumber = strings.TrimSpace(strings.ReplaceAll(full, "Room No", ""))
	}

	return info
}

// upiFromURL derives the unique person identifier from the trailing
// segment of a profile URL: its last six characters.
func upiFromURL(url string) string {
	seg := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		seg = url[i+1:]
	}
	if len(seg) > 6 {
		seg = seg[len(seg)-6:]
	}
	return seg
}

// captureProfileImage screenshots the profile photo into the photo
// directory, named by UPI. Failure is logged only; the record schema does
// not include the image.
func (e *Extractor) captureProfileImage(ctx context.Context, upi string) {
	if e.photoDir == "" || upi == "" {
		return
	}
	n, err := e.page.Count(ctx, selProfileImage)
	if err != nil || n == 0 {
		e.log.Info("no profile image found", "upi", upi)
		return
	}
	path := e.photoDir + "/" + upi + ".png"
	if err := e.page.ScreenshotElement(ctx, selProfileImage, path); err != nil {
		e.log.Warn("failed to capture profile image", "upi", upi, "err", err)
		return
	}
	e.log.Info("saved profile image", "upi", upi, "path", path)
}
