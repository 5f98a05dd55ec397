// Package resolver performs the DNS lookups of a scan.
//
// Forward resolution covers A and MX records; reverse resolution covers
// the PTR lookup for the report's shared first address. All lookups go
// through the injected resolver so tests run without network access.
package resolver
