// Package logging builds the slog loggers audiolift uses: a console handler
// for interactive runs (colored when stdout is a terminal) and a JSON
// handler for machine consumption, optionally teeing into a log file under
// the configured log directory.
package logging
