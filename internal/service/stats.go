package service

import (
	"math"
	"sort"

	"github.com/lifelens/backend/internal/models"
)

// =============================================================================
// Statistical Helpers
// =============================================================================

// trendSlope computes the ordinary least-squares slope of values against
// their positional index. Returns 0 for fewer than 2 values or a zero
// denominator (constant index set cannot occur, but guard anyway).
func trendSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	xMean := float64(n-1) / 2
	var yMean float64
	for _, v := range values {
		yMean += v
	}
	yMean /= float64(n)

	var numerator, denominator float64
	for i, v := range values {
		dx := float64(i) - xMean
		numerator += dx * (v - yMean)
		denominator += dx * dx
	}

	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// variability computes the population standard deviation of values.
// Returns 0 for fewer than 2 values.
func variability(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	return math.Sqrt(variance)
}

// pearsonCorrelation computes the Pearson correlation coefficient over
// min(len(x), len(y)) paired samples. Returns 0 when either series has
// zero variance or fewer than 2 samples overlap.
func pearsonCorrelation(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return 0
	}

	var xMean, yMean float64
	for i := 0; i < n; i++ {
		xMean += x[i]
		yMean += y[i]
	}
	xMean /= float64(n)
	yMean /= float64(n)

	var covariance, xVariance, yVariance float64
	for i := 0; i < n; i++ {
		dx := x[i] - xMean
		dy := y[i] - yMean
		covariance += dx * dy
		xVariance += dx * dx
		yVariance += dy * dy
	}

	if xVariance == 0 || yVariance == 0 {
		return 0
	}

	return covariance / math.Sqrt(xVariance*yVariance)
}

// consistency computes normalized entropy of a count distribution
// (1 = perfectly regular, 0 = uniform/random). Used to score how evenly
// prayer completions spread across weekdays.
func consistency(distribution []float64) float64 {
	n := len(distribution)
	if n == 0 {
		return 0
	}

	var total float64
	for _, v := range distribution {
		total += v
	}
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, v := range distribution {
		if v > 0 {
			p := v / total
			entropy -= p * math.Log2(p)
		}
	}

	maxEntropy := math.Log2(float64(n))
	if maxEntropy == 0 {
		return 1
	}

	return 1 - entropy/maxEntropy
}

// rankItems returns the distinct items ordered by descending frequency.
// Ties break lexicographically so ranking is deterministic.
func rankItems(items []string) []models.ItemCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item]++
	}

	ranked := make([]models.ItemCount, 0, len(counts))
	for item, count := range counts {
		ranked = append(ranked, models.ItemCount{Item: item, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Item < ranked[j].Item
	})

	return ranked
}

// clampConfidence bounds a confidence score to [0, 100].
func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
