package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/batch"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/browser"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/config"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/names"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/observability"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/scraper"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/sink"
	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every roster profile into CSV and JSON records",
	Long: `Reads the staff roster, searches each person on the intranet people search, extracts the full profile, and appends it to the output CSV and JSON files.

Names already present in the output are skipped, so an interrupted run can simply be restarted. Configuration can be loaded from a JSON file using --config; command-line arguments override config file values.`,
	RunE: runScrapeCmd,
}

var (
	scrapeConfigPath    string
	scrapeStaffList     string
	scrapeOutputDir     string
	scrapeUserDataDir   string
	scrapeSearchURL     string
	scrapeChromePath    string
	scrapeHeadless      bool
	scrapeWaitTimeout   int
	scrapeResultTimeout int
	scrapeVerbose       bool
)

func init() {
	// Config file flag (processed first)
	scrapeCommand.Flags().StringVar(&scrapeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	scrapeCommand.Flags().StringVarP(&scrapeStaffList, "staff-list", "s", "", "Path to the staff roster CSV (names in \"Last, First\" order)")
	scrapeCommand.Flags().StringVarP(&scrapeOutputDir, "output-dir", "o", "", "Directory receiving the scrape output")
	scrapeCommand.Flags().StringVar(&scrapeUserDataDir, "user-data-dir", "", "Browser profile directory carrying the signed-in intranet session")
	scrapeCommand.Flags().StringVar(&scrapeSearchURL, "search-url", "", "People-search entry point override")
	scrapeCommand.Flags().StringVar(&scrapeChromePath, "chrome-path", "", "Explicit browser binary (auto-detected if empty)")
	scrapeCommand.Flags().BoolVar(&scrapeHeadless, "headless", true, "Run the browser without a window (disable for the initial login)")
	scrapeCommand.Flags().IntVar(&scrapeWaitTimeout, "wait-timeout", 0, "Element wait timeout in seconds")
	scrapeCommand.Flags().IntVar(&scrapeResultTimeout, "result-timeout", 0, "Search-result wait timeout in seconds")
	scrapeCommand.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scrapeCommand)
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveScrapeConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.StaffList == "" {
		return fmt.Errorf("a staff roster is required: set --staff-list or 'staff_list' in the config file")
	}
	if err := cfg.EnsureOutputDirs(); err != nil {
		return err
	}

	log := newLogger(scrapeVerbose)

	staffNames, err := names.ReadStaffNames(cfg.StaffList)
	if err != nil {
		return err
	}
	existing, err := sink.ReadExistingNames(cfg.RecordsCSVPath())
	if err != nil {
		return err
	}

	session, err := browser.NewSession(ctx, browser.Options{
		Headless:    cfg.Headless,
		UserDataDir: cfg.UserDataDir,
		ExecPath:    cfg.ChromePath,
	})
	if err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	defer session.Close()

	extractor := scraper.NewExtractor(session, scraper.Options{
		PhotoDir:    cfg.PhotosDir(),
		WaitTimeout: cfg.WaitTimeoutDuration(),
		Logger:      log,
	})

	printer := observability.NewPrinter(os.Stdout)
	var onRecord func(rec *types.ProfileRecord)
	if scrapeVerbose {
		onRecord = func(rec *types.ProfileRecord) {
			printer.PrintProfileRecord(rec)
			printer.PrintProjectCodes(rec)
		}
	}

	driver := batch.NewDriver(
		session,
		extractor,
		[]batch.RecordSink{
			sink.NewCSVSink(cfg.RecordsCSVPath()),
			sink.NewJSONSink(cfg.RecordsJSONPath()),
		},
		sink.NewNotFoundLog(cfg.NotFoundPath()),
		batch.Options{
			SearchURL:     cfg.SearchURL,
			Existing:      existing,
			ResultTimeout: cfg.ResultTimeoutDuration(),
			Logger:        log,
			OnRecord:      onRecord,
		},
	)

	sum, err := driver.Run(ctx, staffNames)
	if err != nil {
		return err
	}
	printer.PrintRunSummary(observability.RunCounts{
		Label:     "SCRAPE SUMMARY",
		Processed: sum.Processed,
		Succeeded: sum.Scraped,
		Skipped:   sum.Skipped,
		NotFound:  sum.NotFound,
		Failed:    sum.Failed,
	})
	return nil
}

// resolveScrapeConfig loads the optional config file and applies CLI
// overrides; flags win only when explicitly set.
func resolveScrapeConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if scrapeConfigPath != "" {
		loaded, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("staff-list") {
		cfg.StaffList = scrapeStaffList
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = scrapeOutputDir
	}
	if cmd.Flags().Changed("user-data-dir") {
		cfg.UserDataDir = scrapeUserDataDir
	}
	if cmd.Flags().Changed("search-url") {
		cfg.SearchURL = scrapeSearchURL
	}
	if cmd.Flags().Changed("chrome-path") {
		cfg.ChromePath = scrapeChromePath
	}
	if cmd.Flags().Changed("wait-timeout") {
		cfg.WaitTimeout = scrapeWaitTimeout
	}
	if cmd.Flags().Changed("result-timeout") {
		cfg.ResultTimeout = scrapeResultTimeout
	}
	// Bool flags always win; the default matches DefaultConfig.
	cfg.Headless = scrapeHeadless

	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
