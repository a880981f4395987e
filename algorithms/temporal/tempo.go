package temporal

// Shared tempo-estimation types and bounds. Every estimator in this
// package reports through TempoEstimate; a zero-confidence estimate is
// the documented "no usable detection" signal, never an error.

const (
	// MinBPM and MaxBPM bound the searchable tempo range
	MinBPM = 60.0
	MaxBPM = 200.0

	// DanceBandLow and DanceBandHigh bound the canonical dance-tempo
	// band used for octave normalization
	DanceBandLow  = 80.0
	DanceBandHigh = 160.0

	// DefaultBPM is the neutral fallback when nothing can be detected
	DefaultBPM = 120.0
)

// TempoMethod identifies which estimator produced a TempoEstimate
type TempoMethod int

const (
	MethodAutocorrelation TempoMethod = iota
	MethodPeakInterval
	MethodCombined
)

func (m TempoMethod) String() string {
	switch m {
	case MethodAutocorrelation:
		return "autocorrelation"
	case MethodPeakInterval:
		return "peak_interval"
	case MethodCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// TempoEstimate is a single tempo hypothesis with its confidence.
// Estimates are values; they are never mutated after creation.
type TempoEstimate struct {
	BPM        float64     `json:"bpm"`
	Confidence int         `json:"confidence"` // 0-100
	Method     TempoMethod `json:"method"`
}

// NeutralEstimate returns the default estimate used when an estimator
// cannot produce a usable detection. Downstream combination treats the
// zero confidence as a non-vote.
func NeutralEstimate(method TempoMethod) TempoEstimate {
	return TempoEstimate{
		BPM:        DefaultBPM,
		Confidence: 0,
		Method:     method,
	}
}
