package models

// Report is the full output of one token accounting pass over a dataset.
type Report struct {
	NumExamples int

	// PerExample holds the token stats for each example, in dataset order.
	PerExample []TokenStats

	// Total and Assistant summarize the per-example counts.
	Total     Distribution
	Assistant Distribution

	// Advisory tallies: examples lacking a system or user message.
	// These are signals, not validation failures.
	MissingSystem int
	MissingUser   int

	// Truncated counts examples whose total exceeds the maximum context
	// length. They are flagged, not rejected: the training process clips
	// them silently.
	Truncated int

	Cost CostEstimate
}

// TotalValues returns the per-example total token counts in dataset order.
func (r *Report) TotalValues() []int {
	values := make([]int, len(r.PerExample))
	for i, s := range r.PerExample {
		values[i] = s.Total
	}
	return values
}

// AssistantValues returns the per-example assistant token counts.
func (r *Report) AssistantValues() []int {
	values := make([]int, len(r.PerExample))
	for i, s := range r.PerExample {
		values[i] = s.Assistant
	}
	return values
}
