// Package types provides type definitions for the structured personnel
// records produced by the profile extraction engine.
package types

// Experience represents one pre-bank work experience entry.
type Experience struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	DateRange    string `json:"date_range"`
}

// Education represents one formal education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Document represents one entry of the documents-and-reports section.
// ID is derived from the trailing path segment of the document link and
// is "N/A" when the entry carries no link.
type Document struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Language represents one spoken language with its proficiency level.
type Language struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// ProfileRecord is one extracted personnel profile. The field set is
// closed: records are produced only through RecordBuilder, which refuses
// to finalize until every field group has been assigned exactly once.
// A ProfileRecord is immutable after Build and safe to hand to sinks.
type ProfileRecord struct {
	Name                 string `json:"name" validate:"required"`
	OfficialUnitName     string `json:"official_unit_name"`
	CurrentUnitName      string `json:"current_unit_name"`
	UnitCode             string `json:"unit_code"`
	WorkAndDutyLocation  string `json:"work_and_duty_location"`
	RoomNumber           string `json:"room_number"`
	URL                  string `json:"url" validate:"required,url"`
	UPI                  string `json:"upi" validate:"required"`

	YearsInCurrentPosition float64 `json:"years_in_current_position"`
	YearsInFCI             float64 `json:"years_in_fci"`
	YearsInBank            float64 `json:"years_in_bank"`
	LastPosition           string  `json:"last_position"`
	AllPositions           string  `json:"all_positions"`

	PreBankExperience   []Experience `json:"pre_bank_experience"`
	FormalEducation     []Education  `json:"formal_education"`
	DocumentsAndReports []Document   `json:"documents_and_reports"`
	DocumentIDs         []string     `json:"document_ids"`

	AreasOfExpertise []string   `json:"areas_of_expertise"`
	Skills           []string   `json:"skills"`
	Languages        []Language `json:"languages"`

	ListOfAwards        string `json:"list_of_awards"`
	TotalNumberOfAwards int    `json:"total_number_of_awards"`

	LendingProjects        []string `json:"lending_projects"`
	LendingProjectCodes    []string `json:"lending_project_codes"`
	LendingProjectStatuses []string `json:"lending_project_statuses"`
	LendingProjectYears    []string `json:"lending_project_years"`

	NonLendingProjects        []string `json:"non_lending_projects"`
	NonLendingProjectCodes    []string `json:"non_lending_project_codes"`
	NonLendingProjectStatuses []string `json:"non_lending_project_statuses"`
	NonLendingProjectYears    []string `json:"non_lending_project_years"`

	IFCProjects        []string `json:"ifc_projects"`
	IFCProjectCodes    []string `json:"ifc_project_codes"`
	IFCProjectStatuses []string `json:"ifc_project_statuses"`
	IFCProjectYears    []string `json:"ifc_project_years"`

	AllProjects        []string `json:"all_projects"`
	AllProjectCodes    []string `json:"all_project_codes"`
	AllProjectStatuses []string `json:"all_project_statuses"`
	AllProjectYears    []string `json:"all_project_years"`
}

// CSVColumns is the fixed column order of the CSV sink. It mirrors the
// declaration order of ProfileRecord's JSON field names.
var CSVColumns = []string{
	"name",
	"official_unit_name",
	"current_unit_name",
	"unit_code",
	"work_and_duty_location",
	"room_number",
	"url",
	"upi",
	"years_in_current_position",
	"years_in_fci",
	"years_in_bank",
	"last_position",
	"all_positions",
	"pre_bank_experience",
	"formal_education",
	"documents_and_reports",
	"document_ids",
	"areas_of_expertise",
	"skills",
	"languages",
	"list_of_awards",
	"total_number_of_awards",
	"lending_projects",
	"lending_project_codes",
	"lending_project_statuses",
	"lending_project_years",
	"non_lending_projects",
	"non_lending_project_codes",
	"non_lending_project_statuses",
	"non_lending_project_years",
	"ifc_projects",
	"ifc_project_codes",
	"ifc_project_statuses",
	"ifc_project_years",
	"all_projects",
	"all_project_codes",
	"all_project_statuses",
	"all_project_years",
}
