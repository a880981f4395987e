package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// impulseEnvelope builds a synthetic onset envelope with unit impulses at
// a fixed frame period.
func impulseEnvelope(length, period int, frameRate float64) OnsetEnvelope {
	flux := make([]float64, length)
	for i := 0; i < length; i += period {
		flux[i] = 1.0
	}

	return OnsetEnvelope{Flux: flux, FrameRate: frameRate}
}

func TestAutocorrelationEstimatePeriodicEnvelope(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	// Impulses every 50 frames at 100 frames/s: a 0.5 s beat period
	envelope := impulseEnvelope(1000, 50, 100.0)

	estimate := estimator.Estimate(envelope)

	assert.Equal(t, MethodAutocorrelation, estimate.Method)
	assert.InDelta(t, 120.0, estimate.BPM, 1.0)
	assert.GreaterOrEqual(t, estimate.Confidence, 50)
}

func TestAutocorrelationEstimateFasterTempo(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	// Impulses every 36 frames at 100 frames/s: 60/0.36 = 166.67 BPM
	envelope := impulseEnvelope(1008, 36, 100.0)

	estimate := estimator.Estimate(envelope)

	assert.InDelta(t, 166.67, estimate.BPM, 1.0)
	assert.Greater(t, estimate.Confidence, 0)
}

func TestNormalizedAutocorrelationUnityAtPeriod(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	envelope := impulseEnvelope(1000, 50, 100.0)
	autocorr := estimator.normalizedAutocorrelation(envelope.Flux, 101)

	// Normalization divides by the zero-lag value, so the zero lag is 1
	// and a perfectly periodic envelope reaches 1 again at its period.
	assert.Equal(t, 1.0, autocorr[0])
	assert.InDelta(t, 1.0, autocorr[50], 1e-12)
}

func TestAutocorrelationEstimateEmptyEnvelope(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	estimate := estimator.Estimate(OnsetEnvelope{Flux: []float64{}, FrameRate: 100.0})

	assert.Equal(t, NeutralEstimate(MethodAutocorrelation), estimate)
	assert.Equal(t, float64(DefaultBPM), estimate.BPM)
	assert.Zero(t, estimate.Confidence)
}

func TestAutocorrelationEstimateSilentEnvelope(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	estimate := estimator.Estimate(OnsetEnvelope{Flux: make([]float64, 500), FrameRate: 100.0})

	assert.Equal(t, float64(DefaultBPM), estimate.BPM)
	assert.Zero(t, estimate.Confidence)
}

func TestAutocorrelationEstimateEnvelopeTooShortForLagBand(t *testing.T) {
	estimator := NewAutocorrelationEstimator()

	// 30 flux frames cannot reach past the shortest searchable lag at
	// 100 frames/s.
	estimate := estimator.Estimate(impulseEnvelope(30, 10, 100.0))

	assert.Equal(t, float64(DefaultBPM), estimate.BPM)
	assert.Zero(t, estimate.Confidence)
}
