package report

import (
	"io"

	"github.com/webrecon/domainscan/internal/model"
)

// notAvailable is the placeholder rendered for sections whose lookup
// failed or was skipped.
const notAvailable = "not available"

// Writer defines the interface for report output.
// Implementations render scan results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write renders the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.DomainReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
