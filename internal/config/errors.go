package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: package-level sentinel errors rather than fmt.Errorf in
// Validate so callers can use errors.Is while the messages stay readable.
var (
	// ErrNoTarget is returned when no target domain is specified.
	ErrNoTarget = errors.New("no target specified: provide a domain name or URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid report format: must be pdf, text, markdown, or json")

	// ErrConflictingFormats is returned when more than one format flag is set.
	ErrConflictingFormats = errors.New("conflicting report formats: use at most one of --json, --markdown, --text")
)
