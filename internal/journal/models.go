package journal

import "time"

// Status classifies the outcome of one file within a run.
type Status string

const (
	StatusExtracted Status = "extracted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Entry records the outcome of a single probe-select-extract cycle.
type Entry struct {
	ID          int64
	RunID       string
	SourcePath  string
	OutputPath  string
	StreamIndex int
	Language    string
	Status      Status
	Error       string
	Duration    time.Duration
	CreatedAt   time.Time
}
