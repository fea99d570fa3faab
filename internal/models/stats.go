package models

import "sort"

// TokenStats holds the token accounting for a single example.
type TokenStats struct {
	// Total is the full conversation token count, including per-message
	// and trailing overhead.
	Total int
	// Assistant counts only assistant turns (overhead + content), the
	// portion the model is trained to produce.
	Assistant int
}

// Distribution summarizes the shape of a numeric sequence. Token-count
// distributions are typically skewed, so quantiles are reported alongside
// the mean.
type Distribution struct {
	Count int
	Min   int
	Max   int
	Mean  float64
	// Quantiles are the p0, p10, p50, p90 and p100 boundaries.
	Quantiles [5]float64
}

// quantilePercents are the reported quantile boundaries.
var quantilePercents = [5]float64{0, 10, 50, 90, 100}

// Describe computes the distribution of values. An empty input yields the
// zero Distribution.
func Describe(values []int) Distribution {
	d := Distribution{Count: len(values)}
	if len(values) == 0 {
		return d
	}

	sorted := make([]float64, len(values))
	sum := 0
	d.Min = values[0]
	d.Max = values[0]
	for i, v := range values {
		sorted[i] = float64(v)
		sum += v
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	sort.Float64s(sorted)

	d.Mean = float64(sum) / float64(len(values))
	for i, p := range quantilePercents {
		d.Quantiles[i] = quantile(sorted, p)
	}
	return d
}

// CountOver returns how many values exceed the threshold.
func CountOver(values []int, threshold int) int {
	n := 0
	for _, v := range values {
		if v > threshold {
			n++
		}
	}
	return n
}

// quantile computes the p-th percentile of sorted values using linear
// interpolation between closest ranks.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
