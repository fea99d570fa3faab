package tokens

import (
	"testing"

	"github.com/r-maier/finetune-prep-tui/internal/config"
)

func totalsOf(n, each int) []int {
	totals := make([]int, n)
	for i := range totals {
		totals[i] = each
	}
	return totals
}

func TestEstimateCost_SmallDatasetScalesEpochsUp(t *testing.T) {
	// 10 examples x 3 target epochs = 30 < 100, so epochs scale up to
	// 100/10 = 10, under the cap of 25.
	est := EstimateCost(totalsOf(10, 200), config.DefaultLimits())

	if est.Epochs != 10 {
		t.Errorf("Epochs = %d, want 10", est.Epochs)
	}
	if est.BillableTokens != 2000 {
		t.Errorf("BillableTokens = %d, want 2000", est.BillableTokens)
	}
	if est.BilledTokens != 20000 {
		t.Errorf("BilledTokens = %d, want 20000", est.BilledTokens)
	}
}

func TestEstimateCost_TinyDatasetHitsEpochCap(t *testing.T) {
	// 2 examples: 100/2 = 50 epochs wanted, capped at 25.
	est := EstimateCost(totalsOf(2, 100), config.DefaultLimits())
	if est.Epochs != 25 {
		t.Errorf("Epochs = %d, want 25", est.Epochs)
	}
}

func TestEstimateCost_LargeDatasetScalesEpochsDown(t *testing.T) {
	// 30000 examples x 3 = 90000 > 25000, so epochs scale down to
	// max(1, 25000/30000) = 1.
	est := EstimateCost(totalsOf(30000, 100), config.DefaultLimits())
	if est.Epochs != 1 {
		t.Errorf("Epochs = %d, want 1", est.Epochs)
	}
}

func TestEstimateCost_InRangeKeepsTargetEpochs(t *testing.T) {
	// 1000 x 3 = 3000, inside [100, 25000].
	est := EstimateCost(totalsOf(1000, 100), config.DefaultLimits())
	if est.Epochs != 3 {
		t.Errorf("Epochs = %d, want 3", est.Epochs)
	}
}

func TestEstimateCost_CapsBillableAtContextLength(t *testing.T) {
	limits := config.DefaultLimits()
	est := EstimateCost([]int{10000, 100}, limits)

	want := limits.MaxContextLength + 100
	if est.BillableTokens != want {
		t.Errorf("BillableTokens = %d, want %d", est.BillableTokens, want)
	}
}

func TestEstimateCost_EmptyDataset(t *testing.T) {
	est := EstimateCost(nil, config.DefaultLimits())
	if est.BillableTokens != 0 || est.BilledTokens != 0 {
		t.Errorf("EstimateCost(nil) = %+v, want zero tokens", est)
	}
}
