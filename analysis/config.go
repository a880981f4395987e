package analysis

// Config holds the tunable parameters of the analysis pipeline. The
// reference key profiles are deliberately not configurable; they live as
// constants next to the key estimator.
type Config struct {
	// AnalysisSampleRate is the fixed rate every buffer is resampled to
	// before analysis.
	AnalysisSampleRate int `json:"analysis_sample_rate"`

	// MinBPM and MaxBPM bound the searchable tempo range
	MinBPM float64 `json:"min_bpm"`
	MaxBPM float64 `json:"max_bpm"`

	// CueBeats is the beat spacing between generated cue points
	// (64 beats = 16 bars in 4/4).
	CueBeats float64 `json:"cue_beats"`

	// CueTailGuard is how many seconds before the end of the track cue
	// generation stops.
	CueTailGuard float64 `json:"cue_tail_guard"`
}

// DefaultConfig returns the standard analysis configuration
func DefaultConfig() *Config {
	return &Config{
		AnalysisSampleRate: 22050,
		MinBPM:             60.0,
		MaxBPM:             200.0,
		CueBeats:           64.0,
		CueTailGuard:       10.0,
	}
}
