// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default locations, relative to the working directory.
const (
	DefaultDataDir   = "data"
	DefaultOutputDir = "output"
)

// Output file names inside the output directory.
const (
	recordsCSVName  = "persons_profiles.csv"
	recordsJSONName = "persons_profiles.json"
	notFoundName    = "names_not_found.txt"
	photosDirName   = "photos"
	lookupCSVName   = "linkedin_results.csv"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	StaffList   string `json:"staff_list,omitempty"`    // Roster CSV of staff names
	DataDir     string `json:"data_dir,omitempty"`      // Directory holding input data
	OutputDir   string `json:"output_dir,omitempty"`    // Directory receiving scrape output
	UserDataDir string `json:"user_data_dir,omitempty"` // Browser profile dir carrying the signed-in session

	// Browser
	Headless   bool   `json:"headless,omitempty"`    // Run the browser without a window
	ChromePath string `json:"chrome_path,omitempty"` // Explicit browser binary, empty auto-detects
	SearchURL  string `json:"search_url,omitempty"`  // People-search entry point override

	// Timeouts, in seconds
	WaitTimeout   int `json:"wait_timeout,omitempty"`   // Element waits during extraction
	ResultTimeout int `json:"result_timeout,omitempty"` // Wait for the first search result

	// Lookup
	LookupAPIKey  string `json:"lookup_api_key,omitempty"` // Directory resolve API key
	LookupBaseURL string `json:"lookup_base_url,omitempty"`
	CompanyDomain string `json:"company_domain,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.WaitTimeout < 0 {
		return fmt.Errorf("config error: 'wait_timeout' must be non-negative")
	}
	if c.ResultTimeout < 0 {
		return fmt.Errorf("config error: 'result_timeout' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.StaffList != "" {
		if _, err := os.Stat(c.StaffList); os.IsNotExist(err) {
			return fmt.Errorf("config error: staff list not found: %s", c.StaffList)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: browser binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for
// CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.StaffList == "" {
		result.StaffList = defaults.StaffList
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.UserDataDir == "" {
		result.UserDataDir = defaults.UserDataDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.SearchURL == "" {
		result.SearchURL = defaults.SearchURL
	}
	if result.LookupAPIKey == "" {
		result.LookupAPIKey = defaults.LookupAPIKey
	}
	if result.LookupBaseURL == "" {
		result.LookupBaseURL = defaults.LookupBaseURL
	}
	if result.CompanyDomain == "" {
		result.CompanyDomain = defaults.CompanyDomain
	}

	// Int fields: use default if zero
	if result.WaitTimeout == 0 {
		result.WaitTimeout = defaults.WaitTimeout
	}
	if result.ResultTimeout == 0 {
		result.ResultTimeout = defaults.ResultTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:   DefaultDataDir,
		OutputDir: DefaultOutputDir,
	}
}

// RecordsCSVPath is the profile records CSV inside the output dir.
func (c *Config) RecordsCSVPath() string {
	return filepath.Join(c.OutputDir, recordsCSVName)
}

// RecordsJSONPath is the profile records JSON array inside the output dir.
func (c *Config) RecordsJSONPath() string {
	return filepath.Join(c.OutputDir, recordsJSONName)
}

// NotFoundPath is the log of names the search could not resolve.
func (c *Config) NotFoundPath() string {
	return filepath.Join(c.OutputDir, notFoundName)
}

// PhotosDir is where profile images are captured.
func (c *Config) PhotosDir() string {
	return filepath.Join(c.OutputDir, photosDirName)
}

// LookupResultsPath is the directory-lookup results CSV.
func (c *Config) LookupResultsPath() string {
	return filepath.Join(c.OutputDir, lookupCSVName)
}

// WaitTimeoutDuration converts the wait timeout to a duration; zero
// means use the extractor default.
func (c *Config) WaitTimeoutDuration() time.Duration {
	return time.Duration(c.WaitTimeout) * time.Second
}

// ResultTimeoutDuration converts the search-result timeout to a
// duration; zero means use the driver default.
func (c *Config) ResultTimeoutDuration() time.Duration {
	return time.Duration(c.ResultTimeout) * time.Second
}

// EnsureOutputDirs creates the output and photos directories.
func (c *Config) EnsureOutputDirs() error {
	for _, dir := range []string{c.OutputDir, c.PhotosDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return nil
}
