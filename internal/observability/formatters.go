// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfileRecord outputs a human-readable summary of one extracted
// profile.
func (p *Printer) PrintProfileRecord(rec *types.ProfileRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", rec.Name))
	sb.WriteString(fmt.Sprintf("UPI:       %s\n", rec.UPI))
	sb.WriteString(fmt.Sprintf("Unit:      %s (%s)\n", rec.CurrentUnitName, rec.UnitCode))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", rec.WorkAndDutyLocation))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Position:  %s\n", rec.LastPosition))
	sb.WriteString(fmt.Sprintf("Tenure:    %.2fy bank / %.2fy FCI / %.2fy current\n",
		rec.YearsInBank, rec.YearsInFCI, rec.YearsInCurrentPosition))
	sb.WriteString("\n")

	if len(rec.AreasOfExpertise) > 0 {
		sb.WriteString("Expertise:\n")
		count := min(len(rec.AreasOfExpertise), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.AreasOfExpertise[i]))
		}
		if len(rec.AreasOfExpertise) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.AreasOfExpertise)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Documents: %d   Awards: %d\n",
		len(rec.DocumentsAndReports), rec.TotalNumberOfAwards))
	sb.WriteString(fmt.Sprintf("Projects:  %d lending / %d non-lending / %d IFC",
		len(rec.LendingProjects), len(rec.NonLendingProjects), len(rec.IFCProjects)))

	p.printBox("EXTRACTED PROFILE", sb.String())
}

// PrintProjectCodes outputs the aggregated project codes of a record,
// capped at maxItemsToShow per category.
func (p *Printer) PrintProjectCodes(rec *types.ProfileRecord) {
	if rec == nil || len(rec.AllProjectCodes) == 0 {
		return
	}

	var sb strings.Builder
	categories := []struct {
		label string
		codes []string
	}{
		{"Lending", rec.LendingProjectCodes},
		{"Non-lending", rec.NonLendingProjectCodes},
		{"IFC", rec.IFCProjectCodes},
	}
	for _, cat := range categories {
		if len(cat.codes) == 0 {
			continue
		}
		codes := strings.Join(cat.codes, ", ")
		if len(codes) > 40 {
			codes = codes[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("%-12s %s\n", cat.label+":", codes))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d project codes", len(rec.AllProjectCodes)))

	p.printBox("PROJECT CODES", sb.String())
}

// RunCounts is the outcome tally a batch or lookup run reports.
type RunCounts struct {
	Label     string
	Processed int
	Succeeded int
	Skipped   int
	NotFound  int
	Failed    int
}

// PrintRunSummary outputs the closing tally of a run.
func (p *Printer) PrintRunSummary(counts RunCounts) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Processed: %d\n", counts.Processed))
	sb.WriteString(fmt.Sprintf("Succeeded: %d\n", counts.Succeeded))
	sb.WriteString(fmt.Sprintf("Skipped:   %d (already in output)\n", counts.Skipped))
	sb.WriteString(fmt.Sprintf("Not found: %d\n", counts.NotFound))
	sb.WriteString(fmt.Sprintf("Failed:    %d", counts.Failed))

	title := counts.Label
	if title == "" {
		title = "RUN SUMMARY"
	}
	p.printBox(title, sb.String())
}
