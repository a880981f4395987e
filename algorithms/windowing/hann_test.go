package windowing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHannCoefficients(t *testing.T) {
	hann := NewHann(8, true)
	coeffs := hann.GetCoefficients()

	require.Len(t, coeffs, 8)

	// Symmetric window starts and ends at zero and is mirror-symmetric
	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.InDelta(t, 0.0, coeffs[7], 1e-12)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, coeffs[i], coeffs[7-i], 1e-12)
	}
}

func TestHannApply(t *testing.T) {
	hann := NewHann(4, false)

	signal := []float64{1, 1, 1, 1}
	windowed := hann.Apply(signal)

	require.Len(t, windowed, 4)
	assert.Equal(t, hann.GetCoefficients(), windowed)

	// Original input untouched
	assert.Equal(t, []float64{1, 1, 1, 1}, signal)
}

func TestHannApplySizeMismatch(t *testing.T) {
	hann := NewHann(4, false)

	assert.Nil(t, hann.Apply([]float64{1, 2}))
	assert.Error(t, hann.ApplyInPlace([]float64{1, 2}))
}

func TestHannApplyInPlace(t *testing.T) {
	hann := NewHann(4, false)

	signal := []float64{1, 1, 1, 1}
	require.NoError(t, hann.ApplyInPlace(signal))

	assert.Equal(t, hann.GetCoefficients(), signal)
}

func TestHannMetadata(t *testing.T) {
	hann := NewHann(16, false)

	assert.Equal(t, 16, hann.GetSize())
	assert.Equal(t, "hann", hann.GetType())
}
