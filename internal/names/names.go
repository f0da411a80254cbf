// Package names reads staff rosters and normalizes person names for
// profile search and directory lookups. Roster files list names in
// "Last, First" order; searches want "First Last".
package names

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// utf8BOM appears at the start of rosters exported from Excel.
const utf8BOM = "\xef\xbb\xbf"

// ReadStaffNames reads the first column of a roster CSV, skipping the
// header row, and returns the names flipped into "First Last" order.
func ReadStaffNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening staff roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var names []string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading staff roster: %w", err)
		}
		if first {
			first = false
			continue
		}
		if len(row) == 0 {
			continue
		}
		name := strings.TrimPrefix(strings.TrimSpace(row[0]), utf8BOM)
		if name == "" {
			continue
		}
		names = append(names, Flip(name))
	}
	return names, nil
}

// ReadColumn returns the values of the named header column, in file
// order, with blanks dropped. The names are returned as written, not
// flipped.
func ReadColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading roster header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.TrimPrefix(h, utf8BOM) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("roster %s has no %q column", path, column)
	}

	var values []string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster: %w", err)
		}
		if col < len(row) {
			if v := strings.TrimSpace(row[col]); v != "" {
				values = append(values, v)
			}
		}
	}
	return values, nil
}

// Flip turns "Last, First" into "First Last". Names without a comma
// pass through unchanged.
func Flip(name string) string {
	parts := strings.Split(name, ",")
	if len(parts) < 2 {
		return strings.TrimSpace(name)
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

// Split separates a "Last, First" roster name into its first and last
// parts, both trimmed.
func Split(name string) (first, last string, err error) {
	last, first, ok := strings.Cut(name, ",")
	if !ok {
		return "", "", fmt.Errorf("name %q is not in Last, First form", name)
	}
	return strings.TrimSpace(first), strings.TrimSpace(last), nil
}

// Variation is one first/last pair to try against a directory lookup.
type Variation struct {
	First string
	Last  string
}

// Variations returns the lookup attempts for a person, most specific
// first: the full pair, then the pair with multi-token first or last
// names reduced to their leading token. Duplicates are removed while
// keeping the original order.
func Variations(first, last string) []Variation {
	candidates := []Variation{
		{First: first, Last: last},
		{First: firstToken(first), Last: last},
		{First: first, Last: firstToken(last)},
		{First: firstToken(first), Last: firstToken(last)},
	}
	seen := map[Variation]struct{}{}
	var out []Variation
	for _, v := range candidates {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
