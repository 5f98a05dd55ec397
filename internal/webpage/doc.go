// Package webpage fetches the target's page and extracts its content.
//
// The Fetcher performs the scan's single HTTP GET; the Parser walks the
// resulting HTML and produces the ordered list of anchor hrefs and the
// flattened visible text that feed the report's links and text sections.
//
// A fetch failure is always non-fatal to the scan: the caller records the
// error and the page section renders as unavailable.
package webpage
