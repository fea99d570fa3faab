// Package config contains everything related to configuration
package config

// Defaults for token accounting and cost estimation. These mirror the
// published fine-tuning defaults for chat models; all of them can be
// overridden through the environment.
const (
	// DefaultMaxContextLength is the context window assumed for
	// truncation and billing caps.
	DefaultMaxContextLength = 4096

	// DefaultTargetEpochs is the requested epoch count before bounds
	// adjustment.
	DefaultTargetEpochs = 3

	// DefaultMinTargetExamples and DefaultMaxTargetExamples bound the
	// total trained examples (examples x epochs).
	DefaultMinTargetExamples = 100
	DefaultMaxTargetExamples = 25000

	// DefaultMinEpochs and DefaultMaxEpochs bound the effective epoch
	// count after scaling.
	DefaultMinEpochs = 1
	DefaultMaxEpochs = 25
)

// Limits holds the accounting constants used for truncation flagging and
// cost estimation.
type Limits struct {
	MaxContextLength  int
	TargetEpochs      int
	MinTargetExamples int
	MaxTargetExamples int
	MinDefaultEpochs  int
	MaxDefaultEpochs  int
}

// DefaultLimits returns the stock limits.
func DefaultLimits() Limits {
	return Limits{
		MaxContextLength:  DefaultMaxContextLength,
		TargetEpochs:      DefaultTargetEpochs,
		MinTargetExamples: DefaultMinTargetExamples,
		MaxTargetExamples: DefaultMaxTargetExamples,
		MinDefaultEpochs:  DefaultMinEpochs,
		MaxDefaultEpochs:  DefaultMaxEpochs,
	}
}
