// Package wayback queries the Internet Archive's availability API for the
// closest archived snapshot of a target URL.
package wayback
