// Package pipeline orchestrates the lookup stages of a domain scan.
//
// A scan is a fixed sequence of steps, each filling one section of the
// report: page fetch, WHOIS, forward DNS, reverse DNS, geolocation, and
// Wayback snapshot. Steps fail independently; a failed lookup records a
// degraded note on the report and the scan continues.
//
// The BatchProcessor runs the same pipeline across multiple targets
// concurrently with a bounded worker limit.
package pipeline
