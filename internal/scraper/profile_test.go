package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// loadedProfilePage scripts a fully loaded profile view for "Jane Smith"
// with bank experience, expertise and awards on the main view and no
// tabbed sections.
func loadedProfilePage() *fakePage {
	page := newFakePage()
	page.location = "https://intranet.example.org/people/profile/00123456"

	page.texts[selProfileName] = "Jane Smith"
	page.visible[selProfileCompletion] = true
	page.visible[selProfileViews] = true

	page.texts[selOfficialUnit] = "Finance, Competitiveness & Innovation"
	page.texts[selCurrentUnit] = "FCI Markets"
	page.texts[selUnitCode] = "EFNFI"
	page.texts[selWorkLocation] = "Washington, DC"
	page.texts[selRoomInfoSet] = "Room No MC 5-123"

	page.html = `<html><body>` +
		bankExperienceHTML(
			expEntry("Jan 1, 2022", "Senior Economist", "FCI Markets"),
			expEntry("Jun 1, 2015", "Analyst", "Governance"),
		) + `
		<div class="sf-skills-section"><div class="sf-area-title">Econometrics</div></div>
		<div class="sf-awards"><ul><li>
			<div class="sf-bold">SPOT Award</div>
			<div class="sf-dept">FCI</div>
			<div class="sf-date">Mar 2021</div>
		</li></ul></div>
		</body></html>`
	return page
}

func TestExtractProfile_CompleteRecord(t *testing.T) {
	page := loadedProfilePage()
	e := NewExtractor(page, Options{Now: func() time.Time { return testNow }})

	rec, err := e.ExtractProfile(context.Background(), "Jane Smith")
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", rec.Name)
	assert.Equal(t, "123456", rec.UPI)
	assert.Equal(t, "https://intranet.example.org/people/profile/00123456", rec.URL)
	assert.Equal(t, "EFNFI", rec.UnitCode)
	assert.Equal(t, "MC 5-123", rec.RoomNumber)
	assert.InDelta(t, 9.17, rec.YearsInBank, 1e-9)
	assert.Equal(t, "Senior Economist - FCI Markets", rec.LastPosition)
	assert.Equal(t, []string{"Econometrics"}, rec.Skills)
	assert.Equal(t, "SPOT Award|FCI|Mar 2021", rec.ListOfAwards)
	assert.Equal(t, 1, rec.TotalNumberOfAwards)

	// absent tabbed sections degrade to empty defaults
	assert.NotNil(t, rec.PreBankExperience)
	assert.Empty(t, rec.PreBankExperience)
	assert.NotNil(t, rec.FormalEducation)
	assert.Empty(t, rec.DocumentsAndReports)

	// project panel absent on this page: empty, but still assigned
	assert.NotNil(t, rec.AllProjects)
	assert.Empty(t, rec.AllProjects)
}

func TestExtractProfile_SectionTimeoutStillCompletes(t *testing.T) {
	page := loadedProfilePage()
	page.counts[selDocumentsTab] = 1
	page.failWaits[selDocumentsContainer] = ErrTimeout

	e := NewExtractor(page, Options{Now: func() time.Time { return testNow }})
	rec, err := e.ExtractProfile(context.Background(), "Jane Smith")
	require.NoError(t, err)

	assert.NotNil(t, rec.DocumentsAndReports)
	assert.Empty(t, rec.DocumentsAndReports)
	assert.Equal(t, []string{}, rec.DocumentIDs)
}

func TestExtractProfile_NotFound(t *testing.T) {
	page := newFakePage()
	// identity markers never appear

	e := NewExtractor(page, Options{})
	rec, err := e.ExtractProfile(context.Background(), "Jane Smith")

	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, ErrProfileNotFound))
}

func TestExtractProfile_MissingIdentityRefused(t *testing.T) {
	page := loadedProfilePage()
	page.location = ""

	e := NewExtractor(page, Options{Now: func() time.Time { return testNow }})
	rec, err := e.ExtractProfile(context.Background(), "Jane Smith")

	assert.Nil(t, rec)
	var sv *types.SchemaViolationError
	require.ErrorAs(t, err, &sv)
}

func TestExtractProfile_CapturesProfileImage(t *testing.T) {
	page := loadedProfilePage()
	page.counts[selProfileImage] = 1

	e := NewExtractor(page, Options{
		PhotoDir: "photos",
		Now:      func() time.Time { return testNow },
	})
	_, err := e.ExtractProfile(context.Background(), "Jane Smith")
	require.NoError(t, err)

	require.Len(t, page.screenshots, 1)
	assert.Equal(t, "photos/123456.png", page.screenshots[0])
}
