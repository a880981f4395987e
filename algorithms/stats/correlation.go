package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PearsonCorrelation calculates the Pearson correlation coefficient
// between two equal-length series. Zero-variance input yields 0 rather
// than NaN so callers never see a propagated non-finite value.
func PearsonCorrelation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0.0
	}

	return clampCorrelation(r)
}

// clampCorrelation ensures correlation is in valid range [-1, 1]
func clampCorrelation(correlation float64) float64 {
	if correlation > 1.0 {
		return 1.0
	} else if correlation < -1.0 {
		return -1.0
	}
	return correlation
}
