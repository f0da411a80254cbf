// Package lookup resolves staff names against an external professional
// network directory and flattens the enriched profiles into records
// suitable for tabular analysis alongside the intranet scrape.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL points at the hosted resolve API.
const DefaultBaseURL = "https://nubela.co/proxycurl"

// resolvePath is the person-resolve endpoint under the base URL.
const resolvePath = "/api/linkedin/profile/resolve"

// Experience is one employment entry on a resolved profile.
type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one education entry on a resolved profile.
type EducationEntry struct {
	School       string `json:"school"`
	DegreeName   string `json:"degree_name"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
}

// Profile is the flattened lookup result for one person. An empty
// LinkedInURL marks a person no variation resolved.
type Profile struct {
	FullName                string           `json:"full_name"`
	LinkedInURL             string           `json:"linkedin_url"`
	PublicIdentifier        string           `json:"public_identifier"`
	ProfilePicURL           string           `json:"profile_pic_url"`
	BackgroundCoverImageURL string           `json:"background_cover_image_url"`
	FirstName               string           `json:"first_name"`
	LastName                string           `json:"last_name"`
	Occupation              string           `json:"occupation"`
	Headline                string           `json:"headline"`
	Summary                 string           `json:"summary"`
	Country                 string           `json:"country"`
	CountryFullName         string           `json:"country_full_name"`
	City                    string           `json:"city"`
	State                   string           `json:"state"`
	Experiences             []Experience     `json:"experiences"`
	Education               []EducationEntry `json:"education"`
	Languages               []string         `json:"languages"`
	AccomplishmentProjects  json.RawMessage  `json:"accomplishment_projects,omitempty"`
	Certifications          json.RawMessage  `json:"certifications,omitempty"`
	Connections             int              `json:"connections"`
	Recommendations         []string         `json:"recommendations"`
	Activities              json.RawMessage  `json:"activities,omitempty"`
	SimilarlyNamedProfiles  json.RawMessage  `json:"similarly_named_profiles,omitempty"`
	EducationTitles         []string         `json:"education_titles"`
	NonEmployerExperiences  []Experience     `json:"non_world_bank_experiences"`
}

// resolveResponse mirrors the resolve endpoint's envelope.
type resolveResponse struct {
	URL                 string          `json:"url"`
	NameSimilarityScore *float64        `json:"name_similarity_score"`
	Profile             resolvedProfile `json:"profile"`
}

type resolvedProfile struct {
	PublicIdentifier        string           `json:"public_identifier"`
	ProfilePicURL           string           `json:"profile_pic_url"`
	BackgroundCoverImageURL string           `json:"background_cover_image_url"`
	FirstName               string           `json:"first_name"`
	LastName                string           `json:"last_name"`
	Occupation              string           `json:"occupation"`
	Headline                string           `json:"headline"`
	Summary                 string           `json:"summary"`
	Country                 string           `json:"country"`
	CountryFullName         string           `json:"country_full_name"`
	City                    string           `json:"city"`
	State                   string           `json:"state"`
	Experiences             []Experience     `json:"experiences"`
	Education               []EducationEntry `json:"education"`
	Languages               []string         `json:"languages"`
	AccomplishmentProjects  json.RawMessage  `json:"accomplishment_projects"`
	Certifications          json.RawMessage  `json:"certifications"`
	Connections             int              `json:"connections"`
	Recommendations         []string         `json:"recommendations"`
	Activities              json.RawMessage  `json:"activities"`
	SimilarlyNamedProfiles  json.RawMessage  `json:"similarly_named_profiles"`
}

// Defaults for the employer the roster belongs to.
const (
	DefaultCompanyDomain = "worldbank.org"
	DefaultEmployerName  = "world bank"
)

// Client calls the resolve API.
type Client struct {
	http          *resty.Client
	companyDomain string
	employerName  string
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is sent as a bearer token.
	APIKey string
	// CompanyDomain restricts matches to current or past employees of
	// the domain's organization. Defaults to DefaultCompanyDomain.
	CompanyDomain string
	// EmployerName is the lowercase company-name substring used to
	// separate outside experience entries. Defaults to
	// DefaultEmployerName.
	EmployerName string
	// Timeout defaults to 30s.
	Timeout time.Duration
}

// NewClient returns a resolve-API client.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CompanyDomain == "" {
		opts.CompanyDomain = DefaultCompanyDomain
	}
	if opts.EmployerName == "" {
		opts.EmployerName = DefaultEmployerName
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	c := resty.New()
	c.SetBaseURL(opts.BaseURL)
	c.SetTimeout(opts.Timeout)
	if opts.APIKey != "" {
		c.SetAuthToken(opts.APIKey)
	}
	return &Client{http: c, companyDomain: opts.CompanyDomain, employerName: opts.EmployerName}
}

// Resolve looks up one first/last pair. It returns nil without error
// when the directory has no match; the caller tries the next name
// variation.
func (c *Client) Resolve(ctx context.Context, first, last, fullName string) (*Profile, error) {
	var body resolveResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"first_name":        first,
			"last_name":         last,
			"company_domain":    c.companyDomain,
			"similarity_checks": "skip",
			"enrich_profile":    "enrich",
		}).
		SetResult(&body).
		Get(resolvePath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s %s: %w", first, last, err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("resolving %s %s: status %d", first, last, res.StatusCode())
	}
	if body.URL == "" && body.NameSimilarityScore == nil {
		return nil, nil
	}
	return flatten(fullName, c.employerName, body), nil
}

// flatten maps the API envelope onto the tabular record, deriving the
// degree-title list and the experience entries outside the employer.
func flatten(fullName, employerName string, body resolveResponse) *Profile {
	p := body.Profile

	var educationTitles []string
	for _, edu := range p.Education {
		if edu.DegreeName != "" {
			educationTitles = append(educationTitles, edu.DegreeName)
		}
	}

	var outside []Experience
	for _, exp := range p.Experiences {
		if exp.Company == "" {
			continue
		}
		if employerName != "" && strings.Contains(strings.ToLower(exp.Company), employerName) {
			continue
		}
		outside = append(outside, exp)
	}

	return &Profile{
		FullName:                fullName,
		LinkedInURL:             body.URL,
		PublicIdentifier:        p.PublicIdentifier,
		ProfilePicURL:           p.ProfilePicURL,
		BackgroundCoverImageURL: p.BackgroundCoverImageURL,
		FirstName:               p.FirstName,
		LastName:                p.LastName,
		Occupation:              p.Occupation,
		Headline:                p.Headline,
		Summary:                 p.Summary,
		Country:                 p.Country,
		CountryFullName:         p.CountryFullName,
		City:                    p.City,
		State:                   p.State,
		Experiences:             p.Experiences,
		Education:               p.Education,
		Languages:               p.Languages,
		AccomplishmentProjects:  p.AccomplishmentProjects,
		Certifications:          p.Certifications,
		Connections:             p.Connections,
		Recommendations:         p.Recommendations,
		Activities:              p.Activities,
		SimilarlyNamedProfiles:  p.SimilarlyNamedProfiles,
		EducationTitles:         educationTitles,
		NonEmployerExperiences:  outside,
	}
}
