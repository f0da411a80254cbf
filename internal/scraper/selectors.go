package scraper

// Locators for the staff-profile UI. These are domain-specific by design
// and are expected to change when the source UI changes. Locators
// starting with "//" are XPath; the rest are CSS.
const (
	selProfileName       = ".sf-profile-name"
	selProfileCompletion = `//div[contains(text(), 'Profile Completion')]`
	selProfileViews      = `//div[contains(text(), 'Profile Views')]`
	selSeeAllToggles     = `//a[contains(text(), 'See All')]`

	selOfficialUnit = `a[data-customlink='nl:officialunit'] span`
	selCurrentUnit  = `a[data-customlink='nl:currentunit'] span`
	selUnitCode     = `p.sf-profile-unit a[data-customlink='nl:unit']`
	selWorkLocation = `//div[contains(text(), 'Work Location')]/following-sibling::div[not(@class='sf-time-zone')]`
	selRoomInfoSet  = `//div[contains(@class, 'sf-info-set')][.//div[contains(@class, 'sf-info-title')][contains(text(), 'Room No')]]`
	selProfileImage = `.sf-profile-img img`

	selBankExperienceItems = ".sf-bank-exp-new-loop .sf-experience-details"
	selExperienceFrom      = ".sf-experience-from"
	selDesignation         = ".sf-designation"
	selUnits               = ".sf-units"

	selPreBankTab    = `span[data-customlink='tb:prebankexperience']`
	selPreBankSeeAll = `a[data-customlink='nl:prebankviewall']`
	selPreBankItems  = "app-pre-bank-experience ul.sf-vertical-list li.sf-details"

	selEducationTab    = `span[data-customlink='tb:formaleducation']`
	selEducationSeeAll = `a[data-customlink='nl:formaleducationviewall']`
	selEducationItems  = "app-formal-education ul.sf-vertical-list li.sf-details"

	selDocumentsTab       = `span[data-customlink='tb:documentreports']`
	selDocumentsContainer = "app-documents-reports"
	selDocumentsSeeAll    = `a[data-customlink='nl:documentsviewall']`
	selDocumentItems      = "app-documents-reports ul.sf-vertical-list.sf-purple-bullet li.sf-details"

	selExpertiseSection = ".sf-areas-expertise-section"
	selSkillsSection    = ".sf-skills-section"
	selAreaTitle        = ".sf-area-title"
	selLanguagesSection = ".sf-languages"
	selLanguageName     = ".sf-language-name"

	selAwardItems = "div.sf-awards ul li"

	selViewAllProjects = `//a[contains(text(), 'View All Projects')]`
	selProjectsHeading = "h4.card-title.sf-title-lg"
	selProjectGroup    = "accordion-group"
	selPageSizeSelect  = `select[name='noOfRows']`
	selProjectTitle    = "a.sf-project-title"
	selNextPageEnabled = "li.pagination-next:not(.disabled) a"
)
