package tonal

import (
	"math"

	"github.com/soundslam/trackanalysis/algorithms/chroma"
	"github.com/soundslam/trackanalysis/algorithms/stats"
	"github.com/soundslam/trackanalysis/camelot"
)

// KeyMode represents major or minor mode
type KeyMode int

const (
	KeyModeMajor KeyMode = iota
	KeyModeMinor
)

func (m KeyMode) String() string {
	if m == KeyModeMinor {
		return "minor"
	}
	return "major"
}

// KeyEstimate is the result of key detection on a chroma vector
type KeyEstimate struct {
	Tonic        int     `json:"tonic"` // pitch class (0=C .. 11=B)
	Mode         KeyMode `json:"mode"`
	KeyName      string  `json:"key_name"`     // e.g. "A minor"
	Confidence   int     `json:"confidence"`   // 0-100
	Correlation  float64 `json:"correlation"`  // raw best Pearson correlation
	HarmonicCode string  `json:"harmonic_code"`
}

// Krumhansl-Schmuckler key profiles: expected pitch-class salience for a
// major and a minor key, from listener probe-tone ratings. These are
// fixed reference constants, never runtime state, so detection stays
// deterministic.
var (
	krumhanslMajor = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	krumhanslMinor = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// fallbackTonic is G#, whose minor key carries the fixed default
// harmonic code, keeping tonic, mode and code mutually consistent when
// nothing was detectable.
const fallbackTonic = 8

// KeyEstimator implements Krumhansl-Schmuckler key finding: every cyclic
// rotation of the chroma vector is correlated against the two reference
// profiles (12 rotations x 2 modes = 24 hypotheses) and the best
// correlation wins.
type KeyEstimator struct {
	majorProfile []float64
	minorProfile []float64
}

// NewKeyEstimator creates a key estimator over the Krumhansl profiles
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{
		majorProfile: krumhanslMajor,
		minorProfile: krumhanslMinor,
	}
}

// Estimate detects the key of a chroma vector. The rotation index of
// the winning hypothesis is the tonic pitch class; its profile identity
// is the mode. Confidence maps the Pearson correlation from [-1, 1] to
// [0, 100]. An all-zero chroma vector resolves to the fixed fallback
// key with confidence 0.
func (ke *KeyEstimator) Estimate(cv chroma.ChromaVector) KeyEstimate {
	if cv.IsZero() {
		return ke.fallbackEstimate()
	}

	bestCorr := -2.0
	bestTonic := 0
	bestMode := KeyModeMajor

	for tonic := 0; tonic < chroma.ChromaBins; tonic++ {
		rotated := cv.Rotate(tonic)

		majorCorr := stats.PearsonCorrelation(rotated.Values(), ke.majorProfile)
		if majorCorr > bestCorr {
			bestCorr = majorCorr
			bestTonic = tonic
			bestMode = KeyModeMajor
		}

		minorCorr := stats.PearsonCorrelation(rotated.Values(), ke.minorProfile)
		if minorCorr > bestCorr {
			bestCorr = minorCorr
			bestTonic = tonic
			bestMode = KeyModeMinor
		}
	}

	confidence := int(math.Round((bestCorr + 1.0) * 50.0))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	name := chroma.PitchClassNames[bestTonic]

	return KeyEstimate{
		Tonic:        bestTonic,
		Mode:         bestMode,
		KeyName:      name + " " + bestMode.String(),
		Confidence:   confidence,
		Correlation:  bestCorr,
		HarmonicCode: camelot.CodeForKeyName(name, bestMode == KeyModeMinor),
	}
}

// fallbackEstimate is the neutral result for undetectable input
func (ke *KeyEstimator) fallbackEstimate() KeyEstimate {
	name := chroma.PitchClassNames[fallbackTonic]

	return KeyEstimate{
		Tonic:        fallbackTonic,
		Mode:         KeyModeMinor,
		KeyName:      name + " " + KeyModeMinor.String(),
		Confidence:   0,
		Correlation:  0,
		HarmonicCode: camelot.DefaultCode,
	}
}

// GetKeyName returns a human-readable key name
func GetKeyName(tonic int, mode KeyMode) string {
	return chroma.PitchClassNames[((tonic%chroma.ChromaBins)+chroma.ChromaBins)%chroma.ChromaBins] + " " + mode.String()
}

// GetRelativeKey returns the relative major/minor of a key
func GetRelativeKey(tonic int, mode KeyMode) (int, KeyMode) {
	if mode == KeyModeMajor {
		// Relative minor is 3 semitones down
		return (tonic - 3 + chroma.ChromaBins) % chroma.ChromaBins, KeyModeMinor
	}
	// Relative major is 3 semitones up
	return (tonic + 3) % chroma.ChromaBins, KeyModeMajor
}
