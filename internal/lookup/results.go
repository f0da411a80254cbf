package lookup

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// resultColumns is the fixed column order of the lookup results file.
var resultColumns = []string{
	"full_name", "linkedin_url", "public_identifier", "profile_pic_url",
	"background_cover_image_url", "first_name", "last_name", "occupation",
	"headline", "summary", "country", "country_full_name", "city", "state",
	"experiences", "education", "languages", "accomplishment_projects",
	"certifications", "connections", "recommendations", "activities",
	"similarly_named_profiles", "education_titles", "non_world_bank_experiences",
}

// Results is the lookup output file. It keeps already written rows in
// memory so each append can rewrite the file as a complete document,
// and exposes the processed-name set for resume.
type Results struct {
	path string
	rows [][]string
	seen map[string]struct{}
}

// OpenResults loads any previous results from path. A missing file
// starts an empty result set.
func OpenResults(path string) (*Results, error) {
	r := &Results{path: path, seen: map[string]struct{}{}}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening lookup results: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	if _, err := cr.Read(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading lookup results header: %w", err)
	}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading lookup results: %w", err)
		}
		r.rows = append(r.rows, row)
		if len(row) > 0 {
			r.seen[row[0]] = struct{}{}
		}
	}
	return r, nil
}

// Has reports whether a full name was already processed.
func (r *Results) Has(fullName string) bool {
	_, ok := r.seen[fullName]
	return ok
}

// Len returns the number of stored results.
func (r *Results) Len() int {
	return len(r.rows)
}

// Append stores one profile and rewrites the results file.
func (r *Results) Append(p *Profile) error {
	r.rows = append(r.rows, profileRow(p))
	r.seen[p.FullName] = struct{}{}

	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("writing lookup results: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(resultColumns); err != nil {
		f.Close()
		return fmt.Errorf("writing lookup results header: %w", err)
	}
	if err := w.WriteAll(r.rows); err != nil {
		f.Close()
		return fmt.Errorf("writing lookup results rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing lookup results: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing lookup results: %w", err)
	}
	return nil
}

// profileRow renders a profile in resultColumns order. Structured
// fields become JSON; the two title lists stay comma separated for
// spreadsheet use.
func profileRow(p *Profile) []string {
	return []string{
		p.FullName,
		p.LinkedInURL,
		p.PublicIdentifier,
		p.ProfilePicURL,
		p.BackgroundCoverImageURL,
		p.FirstName,
		p.LastName,
		p.Occupation,
		p.Headline,
		p.Summary,
		p.Country,
		p.CountryFullName,
		p.City,
		p.State,
		marshalJSON(p.Experiences),
		marshalJSON(p.Education),
		strings.Join(p.Languages, ", "),
		rawJSON(p.AccomplishmentProjects),
		rawJSON(p.Certifications),
		strconv.Itoa(p.Connections),
		marshalJSON(p.Recommendations),
		rawJSON(p.Activities),
		rawJSON(p.SimilarlyNamedProfiles),
		strings.Join(p.EducationTitles, ", "),
		marshalJSON(p.NonEmployerExperiences),
	}
}

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func rawJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "[]"
	}
	return string(raw)
}
