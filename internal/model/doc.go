// Package model defines the core data structures for domain scanning.
//
// This package contains the report entity that accumulates lookup results,
// the target normalization logic, and the value types produced by each
// pipeline stage (page content, registration data, DNS results, geolocation).
//
// Design decision: All types here are pure data carriers with no external
// dependencies. This keeps the model package importable from anywhere
// without circular dependencies and makes serialization straightforward.
package model
