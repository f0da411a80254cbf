package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/names"
)

// Runner resolves every roster name through the client, trying the
// name variations in order, and appends each outcome to the results
// file as it goes. Names already in the file are skipped.
type Runner struct {
	client  *Client
	results *Results
	log     *slog.Logger
}

// NewRunner wires a client to a results file.
func NewRunner(client *Client, results *Results, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{client: client, results: results, log: log}
}

// RunSummary counts the outcomes of one lookup run.
type RunSummary struct {
	Processed int
	Resolved  int
	Skipped   int
	Unmatched int
}

// Run processes full names in "Last, First" roster form. A person no
// variation resolves still gets a row, with only the full name filled,
// so reruns do not retry them.
func (r *Runner) Run(ctx context.Context, fullNames []string) (RunSummary, error) {
	var sum RunSummary
	for _, fullName := range fullNames {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Processed++

		if r.results.Has(fullName) {
			r.log.Info("skipping already resolved name", "name", fullName)
			sum.Skipped++
			continue
		}

		profile, err := r.lookupOne(ctx, fullName)
		if err != nil {
			return sum, err
		}
		if profile == nil {
			r.log.Warn("no directory match for any name variation", "name", fullName)
			profile = &Profile{FullName: fullName}
			sum.Unmatched++
		} else {
			sum.Resolved++
		}
		if err := r.results.Append(profile); err != nil {
			return sum, err
		}
	}
	r.log.Info("lookup finished",
		"processed", sum.Processed,
		"resolved", sum.Resolved,
		"skipped", sum.Skipped,
		"unmatched", sum.Unmatched)
	return sum, nil
}

// lookupOne tries the name variations in order until one resolves to a
// profile with a URL.
func (r *Runner) lookupOne(ctx context.Context, fullName string) (*Profile, error) {
	first, last, err := names.Split(fullName)
	if err != nil {
		return nil, fmt.Errorf("parsing roster name: %w", err)
	}
	for _, v := range names.Variations(first, last) {
		profile, err := r.client.Resolve(ctx, v.First, v.Last, fullName)
		if err != nil {
			return nil, err
		}
		if profile != nil && profile.LinkedInURL != "" {
			r.log.Info("resolved profile", "name", fullName, "first", v.First, "last", v.Last)
			return profile, nil
		}
	}
	return nil, nil
}
