package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

func TestPrintProfileRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := &types.ProfileRecord{
		Name:                "Ada Lovelace",
		UPI:                 "123456",
		CurrentUnitName:     "FCI Climate",
		UnitCode:            "EFNFI",
		WorkAndDutyLocation: "Washington, DC",
		LastPosition:        "Senior Economist",
		YearsInBank:         9.17,
		YearsInFCI:          5.38,
		AreasOfExpertise: []string{
			"Private Sector Development", "Trade", "Jobs",
			"Competitiveness", "Innovation", "Climate",
		},
		TotalNumberOfAwards: 2,
		LendingProjects:     []string{"Jobs DPO"},
	}

	p.PrintProfileRecord(rec)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED PROFILE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "123456")
	assert.Contains(t, output, "Senior Economist")
	assert.Contains(t, output, "9.17")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintProfileRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfileRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProjectCodes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := &types.ProfileRecord{
		LendingProjectCodes: []string{"P111111", "P222222"},
		IFCProjectCodes:     []string{"600123"},
		AllProjectCodes:     []string{"P111111", "P222222", "600123"},
	}

	p.PrintProjectCodes(rec)
	output := buf.String()

	assert.Contains(t, output, "PROJECT CODES")
	assert.Contains(t, output, "P111111, P222222")
	assert.Contains(t, output, "600123")
	assert.Contains(t, output, "Total: 3 project codes")
	assert.NotContains(t, output, "Non-lending:", "empty categories are omitted")
}

func TestPrintProjectCodes_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProjectCodes(&types.ProfileRecord{})

	assert.Empty(t, buf.String())
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(RunCounts{
		Label:     "SCRAPE SUMMARY",
		Processed: 10,
		Succeeded: 7,
		Skipped:   1,
		NotFound:  1,
		Failed:    1,
	})
	output := buf.String()

	assert.Contains(t, output, "SCRAPE SUMMARY")
	assert.Contains(t, output, "Processed: 10")
	assert.Contains(t, output, "Succeeded: 7")
	assert.Contains(t, output, "Failed:    1")
}
