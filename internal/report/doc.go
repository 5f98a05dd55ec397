// Package report renders scan results in the supported output formats.
//
// This package contains writers for different output formats:
//   - TextWriter: Human-readable text output for terminal display
//   - MarkdownWriter: Markdown output for documentation and sharing
//   - JSONWriter: Structured JSON output for tool integration
//   - PDFWriter: PDF output, the default report artifact
//
// Writers implement the Writer interface so the command layer can select
// a format without caring about the destination. Every writer renders the
// same fixed section order and shows an explicit placeholder for sections
// whose lookup failed; a degraded scan never drops a section.
package report
