package models

import "time"

// AnalysisRun is one recorded validation + accounting pass, persisted so
// the History tab can show how a dataset evolved between edits.
type AnalysisRun struct {
	ID              int64
	Timestamp       time.Time
	DatasetPath     string
	NumExamples     int
	NumIssues       int
	TotalTokens     int
	AssistantTokens int
	Truncated       int
	Epochs          int
	BilledTokens    int
}
