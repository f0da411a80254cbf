package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/config"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/lookup"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/names"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/observability"
)

// rosterNameColumn is the roster header column holding full names.
const rosterNameColumn = "Name (Full)"

var lookupCommand = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve roster names against the professional-network directory",
	Long: `Reads the staff roster and resolves each person against the external directory lookup API, trying progressively shorter first/last name variations until one matches.

Results are appended to linkedin_results.csv in the output directory after every name, and already resolved names are skipped on rerun.`,
	RunE: runLookupCmd,
}

var (
	lookupConfigPath string
	lookupStaffList  string
	lookupOutputDir  string
	lookupAPIKey     string
	lookupBaseURL    string
	lookupDomain     string
	lookupVerbose    bool
)

func init() {
	lookupCommand.Flags().StringVar(&lookupConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	lookupCommand.Flags().StringVarP(&lookupStaffList, "staff-list", "s", "", "Path to the staff roster CSV")
	lookupCommand.Flags().StringVarP(&lookupOutputDir, "output-dir", "o", "", "Directory receiving the lookup results")
	lookupCommand.Flags().StringVar(&lookupBaseURL, "api-base-url", "", "Lookup API base URL override")
	lookupCommand.Flags().StringVar(&lookupDomain, "company-domain", "", "Employer domain the matches must belong to")
	lookupCommand.Flags().BoolVarP(&lookupVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var LOOKUP_API_KEY
	lookupCommand.Flags().StringVar(&lookupAPIKey, "api-key", "", "Lookup API key (optional, defaults to LOOKUP_API_KEY env var)")

	rootCmd.AddCommand(lookupCommand)
}

func runLookupCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveLookupConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.StaffList == "" {
		return fmt.Errorf("a staff roster is required: set --staff-list or 'staff_list' in the config file")
	}
	if cfg.LookupAPIKey == "" {
		return fmt.Errorf("a lookup API key is required: set --api-key or the LOOKUP_API_KEY env var")
	}
	if err := cfg.EnsureOutputDirs(); err != nil {
		return err
	}

	log := newLogger(lookupVerbose)

	fullNames, err := names.ReadColumn(cfg.StaffList, rosterNameColumn)
	if err != nil {
		return err
	}
	results, err := lookup.OpenResults(cfg.LookupResultsPath())
	if err != nil {
		return err
	}

	client := lookup.NewClient(lookup.ClientOptions{
		BaseURL:       cfg.LookupBaseURL,
		APIKey:        cfg.LookupAPIKey,
		CompanyDomain: cfg.CompanyDomain,
	})

	sum, err := lookup.NewRunner(client, results, log).Run(ctx, fullNames)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintRunSummary(observability.RunCounts{
		Label:     "LOOKUP SUMMARY",
		Processed: sum.Processed,
		Succeeded: sum.Resolved,
		Skipped:   sum.Skipped,
		NotFound:  sum.Unmatched,
	})
	return nil
}

func resolveLookupConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if lookupConfigPath != "" {
		loaded, err := config.LoadConfig(lookupConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("staff-list") {
		cfg.StaffList = lookupStaffList
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = lookupOutputDir
	}
	if cmd.Flags().Changed("api-base-url") {
		cfg.LookupBaseURL = lookupBaseURL
	}
	if cmd.Flags().Changed("company-domain") {
		cfg.CompanyDomain = lookupDomain
	}
	if cmd.Flags().Changed("api-key") {
		cfg.LookupAPIKey = lookupAPIKey
	}
	if cfg.LookupAPIKey == "" {
		cfg.LookupAPIKey = os.Getenv("LOOKUP_API_KEY")
	}

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
