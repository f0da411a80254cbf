package scraper

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// ProfileLoadError reports that a profile page's top-level identity
// markers never appeared. errors.Is(err, ErrProfileNotFound) holds.
type ProfileLoadError struct {
	Name  string
	Cause error
}

func (e *ProfileLoadError) Error() string {
	return fmt.Sprintf("profile for %q never loaded: %v", e.Name, e.Cause)
}

func (e *ProfileLoadError) Unwrap() error {
	return e.Cause
}

// Is makes the error match the ErrProfileNotFound sentinel.
func (e *ProfileLoadError) Is(target error) bool {
	return target == ErrProfileNotFound
}

// ExtractProfile runs every section and listing extractor against the
// currently loaded profile page and assembles one complete record.
//
// Sequencing follows cost and fragility: basic info first (it supplies
// the UPI used to name the profile image), the cheap main-view sections
// next, the best-effort image capture, and the paginated project
// listings last. Absent or timed-out sections degrade to empty defaults;
// the only failure that rejects the profile outright is the record
// builder's completeness gate.
func (e *Extractor) ExtractProfile(ctx context.Context, name string) (*types.ProfileRecord, error) {
	if err := e.waitForProfileLoad(ctx, name); err != nil {
		return nil, &ProfileLoadError{Name: name, Cause: err}
	}

	// Expand every collapsed panel up front so the main-view sections
	// render their full lists.
	if err := e.page.ClickAll(ctx, selSeeAllToggles); err != nil {
		e.log.Warn("failed to expand see-all toggles", "name", name, "err", err)
	}

	rb := types.NewRecordBuilder(name)

	info := e.extractBasicInfo(ctx, name)
	rb.SetBasicInfo(info)

	bank := e.extractBankExperience(ctx)
	e.logSection(name, "bank_experience", bank.Status)
	rb.SetBankExperience(bank.Data)

	preBank := e.extractPreBankExperience(ctx)
	e.logSection(name, "pre_bank_experience", preBank.Status)
	rb.SetPreBankExperience(preBank.Data)

	education := e.extractFormalEducation(ctx)
	e.logSection(name, "formal_education", education.Status)
	rb.SetFormalEducation(education.Data)

	documents := e.extractDocuments(ctx)
	e.logSection(name, "documents_and_reports", documents.Status)
	rb.SetDocuments(documents.Data)

	expertise := e.extractExpertise(ctx)
	e.logSection(name, "expertise_skills_languages", expertise.Status)
	rb.SetExpertise(expertise.Data)

	awards := e.extractAwards(ctx)
	e.logSection(name, "awards", awards.Status)
	rb.SetAwards(awards.Data)

	e.captureProfileImage(ctx, info.UPI)

	rb.SetProjects(e.extractProjects(ctx))

	return rb.Build()
}

// waitForProfileLoad requires the three identity markers of a loaded
// profile concurrently, bounded by the extractor's wait timeout.
func (e *Extractor) waitForProfileLoad(ctx context.Context, name string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.page.WaitTextContains(gctx, selProfileName, name, e.waitTimeout)
	})
	g.Go(func() error {
		return e.page.WaitVisible(gctx, selProfileCompletion, e.waitTimeout)
	})
	g.Go(func() error {
		return e.page.WaitVisible(gctx, selProfileViews, e.waitTimeout)
	})
	return g.Wait()
}

func (e *Extractor) logSection(name, section string, status SectionStatus) {
	switch status {
	case SectionAbsent:
		e.log.Debug("section absent", "name", name, "section", section)
	case SectionTimedOut:
		e.log.Warn("section present but failed to load", "name", name, "section", section)
	}
}
