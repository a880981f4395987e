package analysis

import "time"

// DetectionResult is the public output of a full track analysis. It is
// an immutable value with no lifecycle beyond the call that produced it.
type DetectionResult struct {
	BPM           float64 `json:"bpm"`
	BPMConfidence int     `json:"bpm_confidence"` // 0-100

	Key           string `json:"key"`      // tonic pitch-class name, e.g. "A"
	KeyMode       string `json:"key_mode"` // "major" or "minor"
	CamelotCode   string `json:"camelot_code"`
	KeyConfidence int    `json:"key_confidence"` // 0-100

	Duration  time.Duration `json:"duration"`
	CuePoints []int         `json:"cue_points"` // seconds from track start
}
