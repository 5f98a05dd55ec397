// Package config provides configuration management for domainscan.
//
// Configuration comes from three layers: built-in defaults, the optional
// .domainscan YAML file (global defaults plus per-domain overrides for
// cookies, headers, and timeouts), and CLI flags. Flags win over the file,
// which wins over defaults.
//
// The Config struct is passed through the application via dependency
// injection rather than global state.
package config
