// Package stats holds numeric helpers for market metrics.
package stats

import "math"

// GeometricMean returns the N-th root of the product of values.
// It reports false for an empty input: the mean of nothing is undefined,
// not zero. A single value is returned unchanged.
func GeometricMean(values []float64) (float64, bool) {
	n := len(values)
	switch n {
	case 0:
		return 0, false
	case 1:
		return values[0], true
	}

	product := 1.0
	for _, v := range values {
		if v == 0 {
			return 0, true
		}
		product *= v
	}
	if !math.IsInf(product, 0) && product != 0 {
		return math.Pow(product, 1/float64(n)), true
	}

	// Product overflowed or underflowed; fall back to the mean of logs.
	var sum float64
	for _, v := range values {
		sum += math.Log(v)
	}
	return math.Exp(sum / float64(n)), true
}
