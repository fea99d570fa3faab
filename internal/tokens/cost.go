package tokens

import (
	"github.com/r-maier/finetune-prep-tui/internal/config"
	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// EstimateCost derives the effective epoch count and billed token volume
// for a dataset from its per-example total token counts.
//
// The epoch count starts from the configured target and is scaled so the
// total trained examples (examples x epochs) lands inside the target
// window: scaled up toward MinTargetExamples (capped at MaxDefaultEpochs)
// when the dataset is small, scaled down toward MaxTargetExamples
// (floored at MinDefaultEpochs) when it is large. The arithmetic uses
// integer floor division; the bound is applied to the final epoch count.
//
// Billable tokens cap each example at the maximum context length, since
// the training process truncates anything beyond it.
func EstimateCost(totals []int, limits config.Limits) models.CostEstimate {
	n := len(totals)
	estimate := models.CostEstimate{Epochs: limits.TargetEpochs}
	if n == 0 {
		// Zero examples: zero cost, no epoch scaling to do.
		return estimate
	}

	if n*limits.TargetEpochs < limits.MinTargetExamples {
		estimate.Epochs = min(limits.MaxDefaultEpochs, limits.MinTargetExamples/n)
	} else if n*limits.TargetEpochs > limits.MaxTargetExamples {
		estimate.Epochs = max(limits.MinDefaultEpochs, limits.MaxTargetExamples/n)
	}

	for _, t := range totals {
		estimate.BillableTokens += min(limits.MaxContextLength, t)
	}
	estimate.BilledTokens = estimate.Epochs * estimate.BillableTokens

	return estimate
}
