package temporal

import (
	"math"

	"github.com/soundslam/trackanalysis/algorithms/common"
)

// PeakIntervalEstimator estimates tempo from the spacing of discrete
// onset events: transient peaks are picked off the envelope with an
// adaptive threshold and the histogram mode of the inter-peak BPM
// candidates becomes the estimate.
type PeakIntervalEstimator struct {
	minBPM              float64
	maxBPM              float64
	thresholdPercentile float64 // envelope magnitude percentile for peak candidates
	minPeaks            int     // fewer detected peaks than this yields the neutral default
}

// NewPeakIntervalEstimator creates an estimator over the standard BPM
// range. The 85th-percentile threshold admits the top 15% of envelope
// frames as peak candidates.
func NewPeakIntervalEstimator() *PeakIntervalEstimator {
	return NewPeakIntervalEstimatorWithRange(MinBPM, MaxBPM)
}

// NewPeakIntervalEstimatorWithRange creates an estimator over a custom
// BPM range.
func NewPeakIntervalEstimatorWithRange(minBPM, maxBPM float64) *PeakIntervalEstimator {
	return &PeakIntervalEstimator{
		minBPM:              minBPM,
		maxBPM:              maxBPM,
		thresholdPercentile: 0.85,
		minPeaks:            4,
	}
}

// Estimate returns the histogram-mode tempo of the inter-peak intervals.
// Confidence is the fraction of intervals agreeing with the mode,
// amplified by 1.5x and capped at 100.
func (pe *PeakIntervalEstimator) Estimate(envelope OnsetEnvelope) TempoEstimate {
	flux := envelope.Flux
	if len(flux) == 0 || envelope.FrameRate <= 0 {
		return NeutralEstimate(MethodPeakInterval)
	}

	threshold := common.Percentile(flux, pe.thresholdPercentile)

	// Peaks closer than the beat period of the fastest allowed tempo
	// are echoes of the same onset.
	minSpacing := int(envelope.FrameRate * 60.0 / pe.maxBPM)
	if minSpacing < 1 {
		minSpacing = 1
	}

	peaks := common.FindPeaks(flux, threshold, minSpacing)
	if len(peaks) < pe.minPeaks {
		return NeutralEstimate(MethodPeakInterval)
	}

	histogram := make(map[int]int)
	total := 0

	for i := 1; i < len(peaks); i++ {
		intervalSec := float64(peaks[i]-peaks[i-1]) / envelope.FrameRate
		if intervalSec <= 0 {
			continue
		}

		bpm := pe.foldIntoRange(60.0 / intervalSec)
		histogram[int(math.Round(bpm))]++
		total++
	}

	if total == 0 {
		return NeutralEstimate(MethodPeakInterval)
	}

	modeBPM, modeCount := 0, 0
	for bpm, count := range histogram {
		if count > modeCount || (count == modeCount && bpm < modeBPM) {
			modeBPM = bpm
			modeCount = count
		}
	}

	confidence := int(math.Round(float64(modeCount) / float64(total) * 1.5 * 100.0))
	if confidence > 100 {
		confidence = 100
	}

	return TempoEstimate{
		BPM:        float64(modeBPM),
		Confidence: confidence,
		Method:     MethodPeakInterval,
	}
}

// foldIntoRange folds a BPM candidate into [minBPM, maxBPM] by repeated
// doubling or halving, correcting intervals that span multiple beats or
// subdivide one.
func (pe *PeakIntervalEstimator) foldIntoRange(bpm float64) float64 {
	if bpm <= 0 {
		return DefaultBPM
	}

	for bpm < pe.minBPM {
		bpm *= 2
	}
	for bpm > pe.maxBPM {
		bpm /= 2
	}

	return bpm
}
