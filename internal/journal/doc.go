// Package journal persists the outcome of every probe-select-extract cycle
// in a small SQLite database, so past runs stay inspectable via the history
// command after the console output is gone.
package journal
