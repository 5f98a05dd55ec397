// Package whois looks up domain registration data.
//
// The lookup queries the registry once per scan and parses the response
// into structured registration fields. When the response resists parsing
// the raw text is kept instead, so the report can still show something.
package whois
