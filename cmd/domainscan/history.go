package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webrecon/domainscan/internal/config"
	"github.com/webrecon/domainscan/internal/database"
	"github.com/webrecon/domainscan/internal/model"
	"github.com/webrecon/domainscan/internal/report"
)

// NewHistoryCmd creates the history command.
// This command browses scan results stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [domain]",
		Short: "Browse stored scan history",
		Long: `History lists past scans stored in the database and re-renders them.

Every completed scan is saved automatically. This command shows what was
scanned when, whether the page content changed between scans (via the
body hash), and can re-render any stored report without touching the
network.

Examples:
  # List scan history for a domain
  domainscan history example.com

  # List all scanned domains in the database
  domainscan history --list-domains

  # Re-render a stored report by ID as text
  domainscan history --show-id 5

  # Re-render a stored report by ID as JSON
  domainscan history --show-id 5 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-domains", "L", false,
		"List all scanned domains in the database")
	cmd.Flags().Int64P("show-id", "i", 0,
		"Re-render the stored report with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output the re-rendered report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the re-rendered report in Markdown format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listDomains, err := cmd.Flags().GetBool("list-domains")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show-id")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so validation
	// failures never hold a lock.
	var host string
	if !listDomains && showID == 0 {
		if len(args) == 0 {
			return errors.New("domain is required (use --list-domains to see scanned domains)")
		}
		target, err := model.NormalizeTarget(args[0])
		if err != nil {
			return fmt.Errorf("invalid domain: %w", err)
		}
		host = target.Host
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listDomains {
		return listScannedDomains(ctx, db)
	}
	if showID > 0 {
		return showStoredReport(ctx, cmd, db, showID)
	}
	return listScanHistory(ctx, db, host)
}

// listScannedDomains lists all domains that have scan records.
func listScannedDomains(ctx context.Context, db *database.ScanDB) error {
	domains, err := db.ListDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	if len(domains) == 0 {
		fmt.Println("No scanned domains found in the database.")
		fmt.Println("\nUse 'domainscan scan <domain>' to scan a domain.")
		return nil
	}

	fmt.Printf("Scanned domains (%d):\n\n", len(domains))
	for _, domain := range domains {
		fmt.Printf("  * %s\n", domain)
	}
	fmt.Println("\nUse 'domainscan history <domain>' to see scan history for a domain.")

	return nil
}

// listScanHistory lists all scan records for a specific host.
func listScanHistory(ctx context.Context, db *database.ScanDB, host string) error {
	records, err := db.ListScans(ctx, host)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No scan history found for %s\n", host)
		fmt.Println("\nUse 'domainscan scan' to scan this domain.")
		return nil
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", host, len(records))
	fmt.Printf("  %-6s  %-20s  %-10s  %s\n", "ID", "Date", "Degraded", "Page Hash")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, record := range records {
		hash := record.PageHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		if hash == "" {
			hash = "-"
		}
		fmt.Printf("  %-6d  %-20s  %-10d  %s\n",
			record.ID,
			record.DateScanned.Format("2006-01-02 15:04:05"),
			record.Degraded,
			hash,
		)
	}

	fmt.Println("\nUse 'domainscan history --show-id <id>' to re-render a stored report.")

	return nil
}

// showStoredReport re-renders one stored report to stdout.
func showStoredReport(ctx context.Context, cmd *cobra.Command, db *database.ScanDB, id int64) error {
	stored, err := db.GetReport(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get scan with ID %d: %w", id, err)
	}
	if stored == nil {
		return fmt.Errorf("scan with ID %d not found", id)
	}

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	var writer report.Writer
	switch {
	case jsonOut:
		writer = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	case markdownOut:
		writer = report.NewMarkdownWriter(os.Stdout)
	default:
		writer = report.NewTextWriter(os.Stdout, report.WithVerbose(true))
	}

	_, err = writer.Write(stored)
	return err
}
