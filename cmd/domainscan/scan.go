package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/webrecon/domainscan/internal/config"
	"github.com/webrecon/domainscan/internal/database"
	"github.com/webrecon/domainscan/internal/log"
	"github.com/webrecon/domainscan/internal/model"
	"github.com/webrecon/domainscan/internal/pipeline"
	"github.com/webrecon/domainscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [domain-or-url]",
		Short: "Scan a domain and compose a recon report",
		Long: `Scan gathers public information about one or more domains.

For each target it performs, in order:
- A single page fetch with link and text extraction
- A WHOIS registration lookup
- A and MX record resolution
- A reverse DNS lookup of the first resolved address
- A geolocation lookup of the same address
- A Wayback Machine snapshot check

A failed lookup degrades its report section; it never aborts the scan.

Examples:
  # Scan a single domain, writing report.pdf to the current directory
  domainscan scan example.com

  # Scan multiple domains concurrently
  domainscan scan example.com example.org example.net

  # Print a Markdown report to stdout instead
  domainscan scan --markdown example.com

  # Write a JSON report to a file
  domainscan scan --json -o report.json example.com

  # Skip the registration and geolocation stages
  domainscan scan --no-whois --no-geo example.com

Configuration file (.domainscan) example:
  domains:
    intranet.example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      timeout: 30s`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each outbound lookup")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .domainscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report")
	cmd.Flags().Bool("text", false,
		"Output human-readable text report")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (default: report.pdf for PDF, stdout otherwise)")

	// Stage skip flags
	cmd.Flags().Bool("no-whois", false,
		"Skip the WHOIS registration lookup")
	cmd.Flags().Bool("no-geo", false,
		"Skip the geolocation lookup")
	cmd.Flags().Bool("no-wayback", false,
		"Skip the Wayback Machine snapshot check")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-domain configurations from the config file.
	// An explicitly specified path must exist; the default search may
	// come up empty without error.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.DomainConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.DomainConfigs = &config.File{
			Domains: make(map[string]config.DomainConfig),
		}
	}

	if cfg.Format, err = selectFormat(cmd); err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SkipWhois, err = cmd.Flags().GetBool("no-whois")
	if err != nil {
		return nil, err
	}
	cfg.SkipGeo, err = cmd.Flags().GetBool("no-geo")
	if err != nil {
		return nil, err
	}
	cfg.SkipWayback, err = cmd.Flags().GetBool("no-wayback")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Always save history using the XDG data directory
	cfg.DBDir = config.XDGDataDir()

	// Positional arguments (domains or URLs)
	cfg.Targets = args

	return cfg, nil
}

// selectFormat maps the mutually exclusive format flags to a Format.
// PDF is the default when no flag is given.
func selectFormat(cmd *cobra.Command) (config.Format, error) {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return "", err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return "", err
	}
	textOut, err := cmd.Flags().GetBool("text")
	if err != nil {
		return "", err
	}

	count := 0
	format := config.FormatPDF
	if jsonOut {
		count++
		format = config.FormatJSON
	}
	if markdownOut {
		count++
		format = config.FormatMarkdown
	}
	if textOut {
		count++
		format = config.FormatText
	}
	if count > 1 {
		return "", config.ErrConflictingFormats
	}

	return format, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// All output goes through the redacting handler so cookies and auth
// headers never reach the logs.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := log.NewSecureHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", cfg.Targets,
		"batchSize", cfg.BatchSize,
		"format", cfg.Format,
	)

	// Normalize all targets before any network activity. An invalid
	// target aborts the run before any report file is written.
	targets := make([]model.Target, 0, len(cfg.Targets))
	for _, raw := range cfg.Targets {
		target, err := model.NormalizeTarget(raw)
		if err != nil {
			return fmt.Errorf("invalid target %q: %w", raw, err)
		}
		targets = append(targets, target)
	}

	// History persistence is best effort: an unusable database degrades
	// to a scan without history, not a failed run.
	var db *database.ScanDB
	if cfg.DBDir != "" {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("scan history disabled", "error", err)
			db = nil
		} else {
			defer db.Close()
			logger.Info("database opened", "dir", cfg.DBDir)
		}
	}

	if len(targets) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, targets, db, logger)
	}

	return runSequentialScan(ctx, cfg, targets, db, logger)
}

// runSequentialScan scans targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, targets []model.Target, db *database.ScanDB, logger *slog.Logger) error {
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		domainCfg := cfg.DomainConfigs.GetDomainConfig(target.Host)
		p := pipeline.NewDefaultPipeline(cfg, domainCfg, pipeline.WithLogger(logger))

		scanReport := model.NewDomainReport(target)

		fmt.Fprintf(os.Stderr, "Scanning %s...\n", target.Host)
		startTime := time.Now()

		if err := p.Execute(ctx, scanReport); err != nil {
			logger.Error("scan failed", "host", target.Host, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target.Host, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "Scan completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "host", target.Host, "error", err)
			return err
		}

		if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "host", target.Host, "error", err)
		}
	}

	return nil
}

// runBatchScan scans multiple targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, targets []model.Target, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Starting batch scan of %d targets (concurrency: %d)...\n\n",
		len(targets), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func(target model.Target) *pipeline.Pipeline {
			domainCfg := cfg.DomainConfigs.GetDomainConfig(target.Host)
			return pipeline.NewDefaultPipeline(cfg, domainCfg, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, targets)
	if err != nil {
		return err
	}

	for i, scanReport := range reports {
		if scanReport == nil {
			continue
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] Scan completed: %s\n", i+1, len(reports), scanReport.Target.Host)

		if reportErr := outputReport(cfg, scanReport); reportErr != nil {
			logger.Error("report failed", "host", scanReport.Target.Host, "error", reportErr)
			return reportErr
		}
		if saveErr := saveScanReport(ctx, db, scanReport, logger); saveErr != nil {
			logger.Error("failed to save scan report", "host", scanReport.Target.Host, "error", saveErr)
		}
	}

	fmt.Fprintf(os.Stderr, "\nBatch scan completed in %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// outputReport writes the scan report in the requested format.
// PDF defaults to the fixed report file in the working directory; the
// other formats default to stdout. An explicit -o overrides both.
func outputReport(cfg *config.Config, scanReport *model.DomainReport) error {
	reportFile := cfg.ReportFile
	if reportFile == "" && cfg.Format == config.FormatPDF {
		reportFile = config.DefaultReportFile
	}

	var output *os.File
	if reportFile != "" {
		dir := filepath.Dir(reportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may contain sensitive information; owner-only perms.
		f, err := os.OpenFile(reportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch cfg.Format {
	case config.FormatJSON:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case config.FormatMarkdown:
		writer = report.NewMarkdownWriter(output)
	case config.FormatText:
		writer = report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	default:
		writer = report.NewPDFWriter(output)
	}

	if _, err := writer.Write(scanReport); err != nil {
		return err
	}

	if reportFile != "" {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportFile)
	}
	return nil
}

// saveScanReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.ScanDB, scanReport *model.DomainReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveReport(ctx, scanReport)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "host", scanReport.Target.Host, "id", id)
	return nil
}
