// Package sink provides the append-one-record persistence targets of the
// batch: a CSV file with a fixed column order, a JSON array file, the
// not-found names log, and the existing-records index used for resume.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// maxFieldLen caps any single CSV field; longer values are truncated
// with a visible marker so spreadsheet imports cannot choke on them.
const maxFieldLen = 32000

// truncationMarker flags a capped field.
const truncationMarker = "... (truncated)"

// CSVSink appends profile records to a CSV file, one durable record per
// call. The header row is written once, when the file is created.
type CSVSink struct {
	path string
}

// NewCSVSink returns a sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one record and syncs the file before returning, so an
// interrupted run loses at most the in-flight record.
func (s *CSVSink) Append(rec *types.ProfileRecord) error {
	_, statErr := os.Stat(s.path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening csv sink: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(types.CSVColumns); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}
	if err := w.Write(recordRow(rec)); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing csv sink: %w", err)
	}
	return nil
}

// recordRow renders a record in the fixed column order of
// types.CSVColumns. List and nested fields are JSON-encoded.
func recordRow(rec *types.ProfileRecord) []string {
	fields := []string{
		rec.Name,
		rec.OfficialUnitName,
		rec.CurrentUnitName,
		rec.UnitCode,
		rec.WorkAndDutyLocation,
		rec.RoomNumber,
		rec.URL,
		rec.UPI,
		formatFloat(rec.YearsInCurrentPosition),
		formatFloat(rec.YearsInFCI),
		formatFloat(rec.YearsInBank),
		rec.LastPosition,
		rec.AllPositions,
		jsonField(rec.PreBankExperience),
		jsonField(rec.FormalEducation),
		jsonField(rec.DocumentsAndReports),
		jsonField(rec.DocumentIDs),
		jsonField(rec.AreasOfExpertise),
		jsonField(rec.Skills),
		jsonField(rec.Languages),
		rec.ListOfAwards,
		strconv.Itoa(rec.TotalNumberOfAwards),
		jsonField(rec.LendingProjects),
		jsonField(rec.LendingProjectCodes),
		jsonField(rec.LendingProjectStatuses),
		jsonField(rec.LendingProjectYears),
		jsonField(rec.NonLendingProjects),
		jsonField(rec.NonLendingProjectCodes),
		jsonField(rec.NonLendingProjectStatuses),
		jsonField(rec.NonLendingProjectYears),
		jsonField(rec.IFCProjects),
		jsonField(rec.IFCProjectCodes),
		jsonField(rec.IFCProjectStatuses),
		jsonField(rec.IFCProjectYears),
		jsonField(rec.AllProjects),
		jsonField(rec.AllProjectCodes),
		jsonField(rec.AllProjectStatuses),
		jsonField(rec.AllProjectYears),
	}
	for i, v := range fields {
		fields[i] = sanitizeField(v)
	}
	return fields
}

// sanitizeField escapes embedded line breaks and caps oversized values.
func sanitizeField(v string) string {
	v = strings.ReplaceAll(v, "\r", `\r`)
	v = strings.ReplaceAll(v, "\n", `\n`)
	if len(v) > maxFieldLen {
		v = v[:maxFieldLen] + truncationMarker
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func jsonField(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ReadExistingNames builds the resume index from a previously written
// CSV file, keyed by the "name" column. A missing file yields an empty
// index.
func ReadExistingNames(path string) (map[string]struct{}, error) {
	names := map[string]struct{}{}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening existing records: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading existing records header: %w", err)
	}
	nameCol := -1
	for i, col := range header {
		if col == "name" {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("existing records file %s has no name column", path)
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading existing records: %w", err)
		}
		if nameCol < len(row) {
			names[row[nameCol]] = struct{}{}
		}
	}
	return names, nil
}
