package models

import (
	"math"
	"testing"
)

func TestDescribe_Empty(t *testing.T) {
	d := Describe(nil)
	if d.Count != 0 || d.Min != 0 || d.Max != 0 || d.Mean != 0 {
		t.Errorf("Describe(nil) = %+v, want zero distribution", d)
	}
}

func TestDescribe_SingleValue(t *testing.T) {
	d := Describe([]int{42})
	if d.Count != 1 || d.Min != 42 || d.Max != 42 || d.Mean != 42 {
		t.Errorf("Describe([42]) = %+v", d)
	}
	for i, q := range d.Quantiles {
		if q != 42 {
			t.Errorf("Quantiles[%d] = %f, want 42", i, q)
		}
	}
}

func TestDescribe_Basic(t *testing.T) {
	d := Describe([]int{10, 20, 30, 40})

	if d.Count != 4 {
		t.Errorf("Count = %d, want 4", d.Count)
	}
	if d.Min != 10 || d.Max != 40 {
		t.Errorf("Min/Max = %d/%d, want 10/40", d.Min, d.Max)
	}
	if d.Mean != 25 {
		t.Errorf("Mean = %f, want 25", d.Mean)
	}
	if d.Quantiles[0] != 10 || d.Quantiles[4] != 40 {
		t.Errorf("p0/p100 = %f/%f, want 10/40", d.Quantiles[0], d.Quantiles[4])
	}
	// p50 of [10 20 30 40] with linear interpolation is 25.
	if math.Abs(d.Quantiles[2]-25) > 1e-9 {
		t.Errorf("p50 = %f, want 25", d.Quantiles[2])
	}
}

func TestDescribe_UnsortedInput(t *testing.T) {
	d := Describe([]int{30, 10, 40, 20})
	if d.Min != 10 || d.Max != 40 {
		t.Errorf("Min/Max = %d/%d, want 10/40", d.Min, d.Max)
	}
	if d.Quantiles[0] != 10 || d.Quantiles[4] != 40 {
		t.Error("Quantile boundaries should not depend on input order")
	}
}

func TestCountOver(t *testing.T) {
	values := []int{100, 5000, 4096, 4097, 12}
	if got := CountOver(values, 4096); got != 2 {
		t.Errorf("CountOver = %d, want 2", got)
	}
	if got := CountOver(nil, 4096); got != 0 {
		t.Errorf("CountOver(nil) = %d, want 0", got)
	}
}

func TestReport_Values(t *testing.T) {
	r := Report{PerExample: []TokenStats{{Total: 10, Assistant: 4}, {Total: 20, Assistant: 7}}}

	totals := r.TotalValues()
	if len(totals) != 2 || totals[0] != 10 || totals[1] != 20 {
		t.Errorf("TotalValues = %v", totals)
	}
	assistant := r.AssistantValues()
	if len(assistant) != 2 || assistant[0] != 4 || assistant[1] != 7 {
		t.Errorf("AssistantValues = %v", assistant)
	}
}
