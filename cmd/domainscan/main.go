// Package main provides the entry point for the domainscan CLI.
//
// domainscan is a reconnaissance reporting tool for web domains.
// It fetches the target page, queries WHOIS, DNS, reverse DNS,
// geolocation, and the Wayback Machine, and composes the results into
// a single report.
//
// Usage:
//
//	domainscan scan <domain-or-url>
//	domainscan scan --markdown example.com
//
// See --help for all available options.
package main

// main is the entry point for domainscan.
func main() {
	Execute()
}
