package temporal

import (
	"math"

	"github.com/soundslam/trackanalysis/algorithms/common"
)

// AutocorrelationEstimator estimates tempo from the periodicity of the
// onset envelope: the lag of the strongest autocorrelation peak inside
// the searchable BPM band is the beat period.
type AutocorrelationEstimator struct {
	minBPM        float64
	maxBPM        float64
	peakThreshold float64 // relative to the zero-lag correlation
}

// NewAutocorrelationEstimator creates an estimator over the standard
// BPM range with the standard 0.1 relative peak threshold.
func NewAutocorrelationEstimator() *AutocorrelationEstimator {
	return NewAutocorrelationEstimatorWithRange(MinBPM, MaxBPM)
}

// NewAutocorrelationEstimatorWithRange creates an estimator over a
// custom BPM range.
func NewAutocorrelationEstimatorWithRange(minBPM, maxBPM float64) *AutocorrelationEstimator {
	return &AutocorrelationEstimator{
		minBPM:        minBPM,
		maxBPM:        maxBPM,
		peakThreshold: 0.1,
	}
}

// Estimate returns the tempo of the strongest periodicity in the
// envelope. When no autocorrelation peak clears the threshold (or the
// envelope is empty or silent) the neutral default is returned.
func (ae *AutocorrelationEstimator) Estimate(envelope OnsetEnvelope) TempoEstimate {
	flux := envelope.Flux
	if len(flux) == 0 || envelope.FrameRate <= 0 {
		return NeutralEstimate(MethodAutocorrelation)
	}

	// Lag band covering the BPM range: bpm = frameRate * 60 / lag.
	// Rounding inward keeps every candidate BPM inside [minBPM, maxBPM].
	minLag := int(math.Ceil(envelope.FrameRate * 60.0 / ae.maxBPM))
	maxLag := int(math.Floor(envelope.FrameRate * 60.0 / ae.minBPM))

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(flux) {
		maxLag = len(flux) - 1
	}
	if maxLag <= minLag {
		return NeutralEstimate(MethodAutocorrelation)
	}

	autocorr := ae.normalizedAutocorrelation(flux, maxLag+1)
	if autocorr == nil {
		return NeutralEstimate(MethodAutocorrelation)
	}

	bestLag := 0
	bestVal := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		if autocorr[lag] < ae.peakThreshold {
			continue
		}
		if autocorr[lag] < autocorr[lag-1] {
			continue
		}
		if lag+1 < len(autocorr) && autocorr[lag] < autocorr[lag+1] {
			continue
		}

		if autocorr[lag] > bestVal {
			bestVal = autocorr[lag]
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return NeutralEstimate(MethodAutocorrelation)
	}

	bpm := envelope.FrameRate * 60.0 / float64(bestLag)
	confidence := int(math.Round(common.Clamp(bestVal, 0.0, 1.0) * 100.0))

	return TempoEstimate{
		BPM:        bpm,
		Confidence: confidence,
		Method:     MethodAutocorrelation,
	}
}

// normalizedAutocorrelation computes the autocorrelation for lags
// [0, maxLag) normalized by the zero-lag value. A silent envelope has no
// zero-lag energy and yields nil.
func (ae *AutocorrelationEstimator) normalizedAutocorrelation(flux []float64, numLags int) []float64 {
	if numLags > len(flux) {
		numLags = len(flux)
	}

	autocorr := make([]float64, numLags)

	for lag := 0; lag < numLags; lag++ {
		sum := 0.0
		count := 0

		for i := 0; i < len(flux)-lag; i++ {
			sum += flux[i] * flux[i+lag]
			count++
		}

		if count > 0 {
			autocorr[lag] = sum / float64(count)
		}
	}

	zeroLag := autocorr[0]
	if zeroLag <= 0 {
		return nil
	}

	for i := range autocorr {
		autocorr[i] /= zeroLag
	}

	return autocorr
}
