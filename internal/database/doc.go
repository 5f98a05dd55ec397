// Package database provides SQLite-based storage for scan history.
//
// Every completed scan report is stored as JSON alongside a few indexed
// columns, so past scans can be listed and re-rendered without hitting
// any provider again.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
