package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBPMFixedPointInsideBand(t *testing.T) {
	combiner := NewConsensusCombiner()

	for _, bpm := range []float64{80.0, 100.0, 128.0, 140.0, 160.0} {
		normalized := combiner.NormalizeBPM(bpm)
		assert.Equal(t, bpm, normalized)

		// Normalization is idempotent
		assert.Equal(t, normalized, combiner.NormalizeBPM(normalized))
	}
}

func TestNormalizeBPMFoldsOctaves(t *testing.T) {
	combiner := NewConsensusCombiner()

	assert.Equal(t, 128.0, combiner.NormalizeBPM(64.0))
	assert.Equal(t, 120.0, combiner.NormalizeBPM(60.0))
	assert.Equal(t, 100.0, combiner.NormalizeBPM(200.0))
	assert.Equal(t, 90.0, combiner.NormalizeBPM(180.0))
}

func TestNormalizeBPMInvalid(t *testing.T) {
	combiner := NewConsensusCombiner()

	assert.Equal(t, float64(DefaultBPM), combiner.NormalizeBPM(0))
	assert.Equal(t, float64(DefaultBPM), combiner.NormalizeBPM(-10))
}

func TestCombineFullAgreementPassesThrough(t *testing.T) {
	combiner := NewConsensusCombiner()

	combined := combiner.Combine(
		TempoEstimate{BPM: 128.0, Confidence: 100, Method: MethodAutocorrelation},
		TempoEstimate{BPM: 128.0, Confidence: 100, Method: MethodPeakInterval},
	)

	assert.Equal(t, MethodCombined, combined.Method)
	assert.Equal(t, 128.0, combined.BPM)
	assert.Equal(t, 100, combined.Confidence)
}

func TestCombineOctaveDisagreementLandsInBand(t *testing.T) {
	combiner := NewConsensusCombiner()

	// One method heard half tempo; normalization merges the votes and the
	// harmonic agreement earns the full bonus.
	combined := combiner.Combine(
		TempoEstimate{BPM: 128.0, Confidence: 70, Method: MethodAutocorrelation},
		TempoEstimate{BPM: 64.0, Confidence: 70, Method: MethodPeakInterval},
	)

	assert.Equal(t, 128.0, combined.BPM)
	assert.Equal(t, 100, combined.Confidence)
}

func TestCombineIgnoresDeadEstimator(t *testing.T) {
	combiner := NewConsensusCombiner()

	combined := combiner.Combine(
		NeutralEstimate(MethodAutocorrelation),
		TempoEstimate{BPM: 132.0, Confidence: 80, Method: MethodPeakInterval},
	)

	assert.Equal(t, 132.0, combined.BPM)
	assert.GreaterOrEqual(t, combined.Confidence, 80)
}

func TestCombineAllDeadIsNeutral(t *testing.T) {
	combiner := NewConsensusCombiner()

	combined := combiner.Combine(
		NeutralEstimate(MethodAutocorrelation),
		NeutralEstimate(MethodPeakInterval),
	)

	assert.Equal(t, NeutralEstimate(MethodCombined), combined)
	assert.Equal(t, float64(DefaultBPM), combined.BPM)
	assert.Zero(t, combined.Confidence)
}

func TestCombineNoEstimatesIsNeutral(t *testing.T) {
	combiner := NewConsensusCombiner()

	assert.Equal(t, NeutralEstimate(MethodCombined), combiner.Combine())
}

func TestCombineWeightsDivergentVotes(t *testing.T) {
	combiner := NewConsensusCombiner()

	// Unrelated tempos: the higher-confidence vote wins its bin and the
	// other voter contributes no harmonic bonus share.
	combined := combiner.Combine(
		TempoEstimate{BPM: 128.0, Confidence: 90, Method: MethodAutocorrelation},
		TempoEstimate{BPM: 97.0, Confidence: 40, Method: MethodPeakInterval},
	)

	assert.Equal(t, 128.0, combined.BPM)

	// Base 90 plus half the agreement bonus, capped at 100
	assert.Equal(t, 100, combined.Confidence)
}
