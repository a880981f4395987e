package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// shapedEnvelope builds a synthetic onset envelope with triangular onset
// bumps centered at a fixed frame period. The bump flanks keep the
// adaptive threshold above the silent floor.
func shapedEnvelope(length, period int, frameRate float64) OnsetEnvelope {
	shape := []float64{0.1, 0.3, 0.6, 1.0, 0.6, 0.3, 0.1}
	half := len(shape) / 2

	flux := make([]float64, length)
	for center := period / 2; center < length; center += period {
		for j, v := range shape {
			idx := center - half + j
			if idx >= 0 && idx < length {
				flux[idx] = v
			}
		}
	}

	return OnsetEnvelope{Flux: flux, FrameRate: frameRate}
}

func TestPeakIntervalEstimateRegularOnsets(t *testing.T) {
	estimator := NewPeakIntervalEstimator()

	// Onsets every 40 frames at 100 frames/s: a 0.4 s beat period
	envelope := shapedEnvelope(1000, 40, 100.0)

	estimate := estimator.Estimate(envelope)

	assert.Equal(t, MethodPeakInterval, estimate.Method)
	assert.InDelta(t, 150.0, estimate.BPM, 1.0)
	assert.Equal(t, 100, estimate.Confidence)
}

func TestPeakIntervalFoldsSlowIntervalsIntoRange(t *testing.T) {
	estimator := NewPeakIntervalEstimator()

	// Onsets every 40 frames at 25 frames/s read as 37.5 BPM, below the
	// searchable range; doubling folds them to 75 BPM.
	envelope := shapedEnvelope(1000, 40, 25.0)

	estimate := estimator.Estimate(envelope)

	assert.InDelta(t, 75.0, estimate.BPM, 1.0)
	assert.Greater(t, estimate.Confidence, 0)
}

func TestPeakIntervalEstimateTooFewPeaks(t *testing.T) {
	estimator := NewPeakIntervalEstimator()

	// Only three onsets: below the minimum event count
	envelope := shapedEnvelope(120, 40, 100.0)

	estimate := estimator.Estimate(envelope)

	assert.Equal(t, float64(DefaultBPM), estimate.BPM)
	assert.Zero(t, estimate.Confidence)
}

func TestPeakIntervalEstimateEmptyEnvelope(t *testing.T) {
	estimator := NewPeakIntervalEstimator()

	estimate := estimator.Estimate(OnsetEnvelope{Flux: []float64{}, FrameRate: 100.0})

	assert.Equal(t, NeutralEstimate(MethodPeakInterval), estimate)
}
