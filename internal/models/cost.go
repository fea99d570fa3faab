package models

// CostEstimate is the projected training volume for a dataset.
type CostEstimate struct {
	// Epochs is the effective epoch count after bounds adjustment.
	Epochs int
	// BillableTokens is the sum of per-example token counts, each capped
	// at the maximum context length.
	BillableTokens int
	// BilledTokens is Epochs * BillableTokens.
	BilledTokens int
}
