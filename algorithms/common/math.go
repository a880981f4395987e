package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across algorithms, backed by gonum
// for robustness.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// Max returns the maximum value of a slice using gonum
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// Percentile calculates the p-th percentile (p between 0 and 1)
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 1 {
		return 0.0
	}

	// gonum's quantile requires sorted input
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// MovingAverage calculates a symmetric moving average with the given
// half window. Edge frames average over the samples that exist.
func MovingAverage(data []float64, halfWindow int) []float64 {
	if len(data) == 0 || halfWindow <= 0 {
		return data
	}

	smoothed := make([]float64, len(data))

	for i := range data {
		sum := 0.0
		count := 0

		for j := i - halfWindow; j <= i+halfWindow; j++ {
			if j >= 0 && j < len(data) {
				sum += data[j]
				count++
			}
		}

		if count > 0 {
			smoothed[i] = sum / float64(count)
		}
	}

	return smoothed
}

// FindPeaks finds local maxima at or above minHeight, keeping at least
// minDistance indices between accepted peaks. When two candidates fall
// within minDistance the higher one wins.
func FindPeaks(data []float64, minHeight float64, minDistance int) []int {
	if len(data) < 3 {
		return []int{}
	}

	var peaks []int
	lastPeak := -minDistance

	for i := 1; i < len(data)-1; i++ {
		if data[i] < minHeight || data[i] < data[i-1] || data[i] < data[i+1] {
			continue
		}

		if i-lastPeak < minDistance {
			if len(peaks) > 0 && data[i] > data[peaks[len(peaks)-1]] {
				peaks[len(peaks)-1] = i
				lastPeak = i
			}
			continue
		}

		peaks = append(peaks, i)
		lastPeak = i
	}

	return peaks
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Lerp performs linear interpolation between two values
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
