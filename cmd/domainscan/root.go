// Package main provides the entry point for the domainscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for domainscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domainscan",
		Short: "Reconnaissance reporting tool for web domains",
		Long: `domainscan gathers public information about a web domain and composes
it into a single report.

For each target it fetches the page, extracts links and text, queries
WHOIS registration data, resolves A and MX records, reverse-resolves
the first address, geolocates it, and checks the Wayback Machine for
an archived snapshot. The default output is a PDF report; text,
Markdown, and JSON formats are also available.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
