package types

import (
	"github.com/go-playground/validator/v10"
)

// Field groups tracked by RecordBuilder. Every declared ProfileRecord
// field belongs to exactly one group, so "each group set exactly once"
// is equivalent to "each field assigned exactly once".
const (
	groupBasicInfo      = "basic_info"
	groupBankExperience = "bank_experience"
	groupPreBank        = "pre_bank_experience"
	groupEducation      = "formal_education"
	groupDocuments      = "documents_and_reports"
	groupExpertise      = "expertise_skills_languages"
	groupAwards         = "awards"
	groupProjects       = "projects"
)

var allGroups = []string{
	groupBasicInfo,
	groupBankExperience,
	groupPreBank,
	groupEducation,
	groupDocuments,
	groupExpertise,
	groupAwards,
	groupProjects,
}

var validate = validator.New()

// BasicInfo holds the identity fields extracted from the profile header.
type BasicInfo struct {
	Name                string
	OfficialUnitName    string
	CurrentUnitName     string
	UnitCode            string
	WorkAndDutyLocation string
	RoomNumber          string
	URL                 string
	UPI                 string
}

// BankExperienceSummary holds the derived tenure metrics and career text
// computed from the bank-experience section.
type BankExperienceSummary struct {
	YearsInCurrentPosition float64
	YearsInFCI             float64
	YearsInBank            float64
	LastPosition           string
	AllPositions           string
}

// ExpertiseProfile holds the flat expertise, skill and language lists.
type ExpertiseProfile struct {
	AreasOfExpertise []string
	Skills           []string
	Languages        []Language
}

// AwardSummary holds the pipe-delimited award list and its count.
type AwardSummary struct {
	ListOfAwards        string
	TotalNumberOfAwards int
}

// RecordBuilder accumulates extractor outputs and produces an immutable
// ProfileRecord. The schema is closed: each field group must be assigned
// exactly once before Build succeeds, and a second assignment of the same
// group fails immediately. This replaces silent partial records with a
// single integrity gate at construction time.
type RecordBuilder struct {
	record   ProfileRecord
	assigned map[string]bool
	err      *SchemaViolationError
}

// NewRecordBuilder returns a builder for one person's record.
func NewRecordBuilder(name string) *RecordBuilder {
	return &RecordBuilder{
		record:   ProfileRecord{Name: name},
		assigned: map[string]bool{},
	}
}

// mark records an assignment, capturing a duplicate-assignment violation.
// The first violation sticks; later calls keep accumulating normally so
// Build can report it.
func (rb *RecordBuilder) mark(group string) {
	if rb.assigned[group] {
		if rb.err == nil {
			rb.err = &SchemaViolationError{Name: rb.record.Name, Duplicate: group}
		}
		return
	}
	rb.assigned[group] = true
}

// SetBasicInfo assigns the identity fields. The builder's name wins over
// the extracted one so the dedup key always matches the work list.
func (rb *RecordBuilder) SetBasicInfo(info BasicInfo) {
	rb.mark(groupBasicInfo)
	rb.record.OfficialUnitName = info.OfficialUnitName
	rb.record.CurrentUnitName = info.CurrentUnitName
	rb.record.UnitCode = info.UnitCode
	rb.record.WorkAndDutyLocation = info.WorkAndDutyLocation
	rb.record.RoomNumber = info.RoomNumber
	rb.record.URL = info.URL
	rb.record.UPI = info.UPI
}

// SetBankExperience assigns the derived tenure metrics and career text.
func (rb *RecordBuilder) SetBankExperience(s BankExperienceSummary) {
	rb.mark(groupBankExperience)
	rb.record.YearsInCurrentPosition = s.YearsInCurrentPosition
	rb.record.YearsInFCI = s.YearsInFCI
	rb.record.YearsInBank = s.YearsInBank
	rb.record.LastPosition = s.LastPosition
	rb.record.AllPositions = s.AllPositions
}

// SetPreBankExperience assigns the pre-bank experience list.
func (rb *RecordBuilder) SetPreBankExperience(items []Experience) {
	rb.mark(groupPreBank)
	if items == nil {
		items = []Experience{}
	}
	rb.record.PreBankExperience = items
}

// SetFormalEducation assigns the formal education list.
func (rb *RecordBuilder) SetFormalEducation(items []Education) {
	rb.mark(groupEducation)
	if items == nil {
		items = []Education{}
	}
	rb.record.FormalEducation = items
}

// SetDocuments assigns the documents-and-reports list and derives the
// flat id list from it.
func (rb *RecordBuilder) SetDocuments(docs []Document) {
	rb.mark(groupDocuments)
	if docs == nil {
		docs = []Document{}
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	rb.record.DocumentsAndReports = docs
	rb.record.DocumentIDs = ids
}

// SetExpertise assigns the expertise, skill and language lists.
func (rb *RecordBuilder) SetExpertise(p ExpertiseProfile) {
	rb.mark(groupExpertise)
	if p.AreasOfExpertise == nil {
		p.AreasOfExpertise = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Languages == nil {
		p.Languages = []Language{}
	}
	rb.record.AreasOfExpertise = p.AreasOfExpertise
	rb.record.Skills = p.Skills
	rb.record.Languages = p.Languages
}

// SetAwards assigns the award summary.
func (rb *RecordBuilder) SetAwards(a AwardSummary) {
	rb.mark(groupAwards)
	rb.record.ListOfAwards = a.ListOfAwards
	rb.record.TotalNumberOfAwards = a.TotalNumberOfAwards
}

// SetProjects assigns the three category buckets. The aggregate arrays
// are not set here; Build computes them as a fold over the buckets.
func (rb *RecordBuilder) SetProjects(set ProjectSet) {
	rb.mark(groupProjects)
	rb.record.LendingProjects = emptied(set.Lending.Projects)
	rb.record.LendingProjectCodes = emptied(set.Lending.Codes)
	rb.record.LendingProjectStatuses = emptied(set.Lending.Statuses)
	rb.record.LendingProjectYears = emptied(set.Lending.Years)
	rb.record.NonLendingProjects = emptied(set.NonLending.Projects)
	rb.record.NonLendingProjectCodes = emptied(set.NonLending.Codes)
	rb.record.NonLendingProjectStatuses = emptied(set.NonLending.Statuses)
	rb.record.NonLendingProjectYears = emptied(set.NonLending.Years)
	rb.record.IFCProjects = emptied(set.IFC.Projects)
	rb.record.IFCProjectCodes = emptied(set.IFC.Codes)
	rb.record.IFCProjectStatuses = emptied(set.IFC.Statuses)
	rb.record.IFCProjectYears = emptied(set.IFC.Years)

	if !set.Lending.balanced() || !set.NonLending.balanced() || !set.IFC.balanced() {
		if rb.err == nil {
			rb.err = &SchemaViolationError{
				Name:    rb.record.Name,
				Message: "project bucket arrays are not parallel",
			}
		}
	}

	all := concatBuckets(set.Lending, set.NonLending, set.IFC)
	rb.record.AllProjects = emptied(all.Projects)
	rb.record.AllProjectCodes = emptied(all.Codes)
	rb.record.AllProjectStatuses = emptied(all.Statuses)
	rb.record.AllProjectYears = emptied(all.Years)
}

// Build validates completeness and returns the finished record. It fails
// with *SchemaViolationError when any field group was never assigned,
// a group was assigned twice, or the identity fields do not validate.
func (rb *RecordBuilder) Build() (*ProfileRecord, error) {
	if rb.err != nil {
		return nil, rb.err
	}

	var missing []string
	for _, g := range allGroups {
		if !rb.assigned[g] {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaViolationError{Name: rb.record.Name, Missing: missing}
	}

	if err := validate.Struct(rb.record); err != nil {
		return nil, &SchemaViolationError{
			Name:    rb.record.Name,
			Message: "identity fields failed validation",
			Cause:   err,
		}
	}

	rec := rb.record
	return &rec, nil
}

// emptied normalizes a nil slice to an empty one so persisted JSON always
// carries arrays, never null.
func emptied(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
