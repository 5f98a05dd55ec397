// Package log provides logging utilities for domainscan.
//
// The SecureHandler wraps any slog.Handler and redacts sensitive attribute
// values (cookies, auth headers, API keys) so that per-domain fetch
// configuration never leaks into log output.
package log
