package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

func sampleRecord(name string) *types.ProfileRecord {
	return &types.ProfileRecord{
		Name:                   name,
		OfficialUnitName:       "Finance, Competitiveness & Innovation",
		CurrentUnitName:        "FCI Climate",
		UnitCode:               "EFNFI",
		WorkAndDutyLocation:    "Washington, DC",
		RoomNumber:             "MC 5-123",
		URL:                    "https://intranet.example.org/profiles/123456",
		UPI:                    "123456",
		YearsInCurrentPosition: 2.58,
		YearsInFCI:             5.38,
		YearsInBank:            9.17,
		LastPosition:           "Senior Economist",
		AllPositions:           "Senior Economist; Economist",
		PreBankExperience:      []types.Experience{{Title: "Analyst", Organization: "IMF", DateRange: "2010 - 2014"}},
		FormalEducation:        []types.Education{{Degree: "PhD Economics", Institution: "MIT", Year: "2010"}},
		DocumentsAndReports:    []types.Document{{ID: "DB2019", Date: "2019", Title: "Doing Business", Link: "https://docs.example.org/reports/DB2019"}},
		DocumentIDs:            []string{"DB2019"},
		AreasOfExpertise:       []string{"Private Sector Development"},
		Skills:                 []string{"Econometrics"},
		Languages:              []types.Language{{Language: "English", Level: "Fluent"}, {Language: "Spanish", Level: "Native"}},
		ListOfAwards:           "SPOT Award|FCI|2020",
		TotalNumberOfAwards:    1,
		LendingProjects:        []string{"Jobs DPO"},
		LendingProjectCodes:    []string{"P111111"},
		LendingProjectStatuses: []string{"Active"},
		LendingProjectYears:    []string{"2021"},
		AllProjects:            []string{"Jobs DPO"},
		AllProjectCodes:        []string{"P111111"},
		AllProjectStatuses:     []string{"Active"},
		AllProjectYears:        []string{"2021"},
	}
}

func readAllRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSinkHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	s := NewCSVSink(path)

	require.NoError(t, s.Append(sampleRecord("Ada Lovelace")))
	require.NoError(t, s.Append(sampleRecord("Grace Hopper")))

	rows := readAllRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, types.CSVColumns, rows[0])
	assert.Equal(t, "Ada Lovelace", rows[1][0])
	assert.Equal(t, "Grace Hopper", rows[2][0])
	assert.Len(t, rows[1], len(types.CSVColumns))
}

func TestCSVSinkEscapesLineBreaks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	rec := sampleRecord("Ada Lovelace")
	rec.AllPositions = "Senior Economist;\r\nEconomist"

	require.NoError(t, NewCSVSink(path).Append(rec))

	rows := readAllRows(t, path)
	assert.Equal(t, `Senior Economist;\r\nEconomist`, rows[1][12])
}

func TestCSVSinkTruncatesOversizedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	rec := sampleRecord("Ada Lovelace")
	rec.ListOfAwards = strings.Repeat("x", maxFieldLen+500)

	require.NoError(t, NewCSVSink(path).Append(rec))

	rows := readAllRows(t, path)
	got := rows[1][20]
	assert.Len(t, got, maxFieldLen+len(truncationMarker))
	assert.True(t, strings.HasSuffix(got, truncationMarker))
}

func TestReadExistingNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	s := NewCSVSink(path)
	require.NoError(t, s.Append(sampleRecord("Ada Lovelace")))
	require.NoError(t, s.Append(sampleRecord("Grace Hopper")))

	names, err := ReadExistingNames(path)
	require.NoError(t, err)
	assert.Contains(t, names, "Ada Lovelace")
	assert.Contains(t, names, "Grace Hopper")
	assert.Len(t, names, 2)
}

func TestReadExistingNamesMissingFile(t *testing.T) {
	names, err := ReadExistingNames(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestJSONSinkAccumulatesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	s := NewJSONSink(path)

	require.NoError(t, s.Append(sampleRecord("Ada Lovelace")))
	require.NoError(t, s.Append(sampleRecord("Grace Hopper")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []types.ProfileRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Ada Lovelace", records[0].Name)
	assert.Equal(t, "Grace Hopper", records[1].Name)
	assert.Equal(t, 9.17, records[1].YearsInBank)
}

func TestNotFoundLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_found.txt")
	l := NewNotFoundLog(path)

	require.NoError(t, l.Append("Ada Lovelace"))
	require.NoError(t, l.Append("Grace Hopper"))

	names, err := ReadNotFound(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, names)
}
