package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// JSONSink maintains a JSON array file of profile records. Each append
// rewrites the whole array through a temp file so the target is always
// a complete, parseable document.
type JSONSink struct {
	path string
}

// NewJSONSink returns a sink writing to path.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// Append loads the current array, adds rec, and atomically replaces
// the file.
func (s *JSONSink) Append(rec *types.ProfileRecord) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json records: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing json records: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing json records: %w", err)
	}
	return nil
}

func (s *JSONSink) load() ([]*types.ProfileRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading json records: %w", err)
	}
	var records []*types.ProfileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding json records %s: %w", filepath.Base(s.path), err)
	}
	return records, nil
}
