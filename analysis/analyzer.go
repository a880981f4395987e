// Package analysis is the public facade of the track-analysis engine:
// it estimates a track's tempo and musical key from a decoded audio
// buffer and derives harmonic-mixing metadata from the detected key.
//
// The engine is a pure, synchronous computation: given an immutable
// buffer it produces a result with no observable side effects.
// Degenerate input (empty or too-short buffers) resolves to documented
// neutral defaults with confidence 0, never to an error.
package analysis

import (
	"fmt"
	"sync"

	"github.com/soundslam/trackanalysis/algorithms/chroma"
	"github.com/soundslam/trackanalysis/algorithms/temporal"
	"github.com/soundslam/trackanalysis/algorithms/tonal"
	"github.com/soundslam/trackanalysis/camelot"
	"github.com/soundslam/trackanalysis/logging"
	"github.com/soundslam/trackanalysis/pcm"
)

// Analyzer runs the full detection pipeline. It holds no mutable state
// across runs; a single Analyzer is safe for concurrent use.
type Analyzer struct {
	config       *Config
	preprocessor *pcm.Preprocessor
	envelope     *temporal.EnvelopeExtractor
	autocorr     *temporal.AutocorrelationEstimator
	interval     *temporal.PeakIntervalEstimator
	combiner     *temporal.ConsensusCombiner
	chroma       *chroma.Extractor
	keys         *tonal.KeyEstimator
	logger       logging.Logger
}

// NewAnalyzer creates an analyzer; a nil config selects DefaultConfig
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}

	logger := logging.WithFields(logging.Fields{
		"component": "track_analyzer",
	})

	return &Analyzer{
		config:       config,
		preprocessor: pcm.NewPreprocessor(config.AnalysisSampleRate),
		envelope:     temporal.NewEnvelopeExtractor(),
		autocorr:     temporal.NewAutocorrelationEstimatorWithRange(config.MinBPM, config.MaxBPM),
		interval:     temporal.NewPeakIntervalEstimatorWithRange(config.MinBPM, config.MaxBPM),
		combiner:     temporal.NewConsensusCombiner(),
		chroma:       chroma.NewExtractor(config.AnalysisSampleRate),
		keys:         tonal.NewKeyEstimator(),
		logger:       logger,
	}
}

// Analyze runs tempo and key detection on a decoded buffer and
// assembles the detection result. The tempo and key branches share only
// the read-only preprocessed signal and run concurrently.
func (a *Analyzer) Analyze(audio *pcm.AudioData) (*DetectionResult, error) {
	if audio == nil {
		return nil, fmt.Errorf("audio data cannot be nil")
	}

	logger := a.logger.WithFields(logging.Fields{
		"sample_rate": audio.SampleRate,
		"channels":    audio.Channels,
		"samples":     len(audio.PCM),
	})
	logger.Debug("Starting track analysis")

	signal := a.preprocessor.Process(audio)

	var (
		wg    sync.WaitGroup
		tempo temporal.TempoEstimate
		key   tonal.KeyEstimate
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		tempo = a.detectTempo(signal)
	}()

	go func() {
		defer wg.Done()
		key = a.keys.Estimate(a.chroma.Compute(signal.Samples))
	}()

	wg.Wait()

	duration := audio.Duration()

	result := &DetectionResult{
		BPM:           tempo.BPM,
		BPMConfidence: tempo.Confidence,
		Key:           chroma.PitchClassNames[key.Tonic],
		KeyMode:       key.Mode.String(),
		CamelotCode:   key.HarmonicCode,
		KeyConfidence: key.Confidence,
		Duration:      duration,
		CuePoints:     a.generateCuePoints(duration.Seconds(), tempo.BPM),
	}

	logger.Debug("Track analysis complete", logging.Fields{
		"bpm":            result.BPM,
		"bpm_confidence": result.BPMConfidence,
		"key":            result.Key,
		"key_mode":       result.KeyMode,
		"camelot_code":   result.CamelotCode,
	})

	return result, nil
}

// detectTempo runs both tempo estimators over the shared onset envelope
// and merges them.
func (a *Analyzer) detectTempo(signal pcm.MonoSignal) temporal.TempoEstimate {
	envelope := a.envelope.Compute(signal.Samples, signal.SampleRate)

	autocorrEst := a.autocorr.Estimate(envelope)
	intervalEst := a.interval.Estimate(envelope)

	a.logger.Debug("Tempo estimates", logging.Fields{
		"autocorrelation_bpm":  autocorrEst.BPM,
		"autocorrelation_conf": autocorrEst.Confidence,
		"peak_interval_bpm":    intervalEst.BPM,
		"peak_interval_conf":   intervalEst.Confidence,
	})

	return a.combiner.Combine(autocorrEst, intervalEst)
}

// AnalyzeBatch analyzes several tracks concurrently, one worker per
// track. Results are positionally aligned with the input; a nil buffer
// yields a nil result.
func (a *Analyzer) AnalyzeBatch(buffers []*pcm.AudioData) []*DetectionResult {
	results := make([]*DetectionResult, len(buffers))

	var wg sync.WaitGroup
	for i, buf := range buffers {
		if buf == nil {
			continue
		}

		wg.Add(1)
		go func(idx int, audio *pcm.AudioData) {
			defer wg.Done()
			result, err := a.Analyze(audio)
			if err != nil {
				a.logger.Error(err, "Batch analysis failed", logging.Fields{"index": idx})
				return
			}
			results[idx] = result
		}(i, buf)
	}
	wg.Wait()

	return results
}

// CompatibleCodes returns the harmonically compatible Camelot codes for
// a detected code, ordered per the wheel: the code itself, its numeric
// neighbors, and the relative key. Malformed codes yield an empty list.
func (a *Analyzer) CompatibleCodes(code string) []string {
	return camelot.Compatible(code)
}

// generateCuePoints places cue points every CueBeats beats, starting at
// zero and stopping CueTailGuard seconds before the end of the track.
func (a *Analyzer) generateCuePoints(durationSec, bpm float64) []int {
	cuePoints := []int{0}

	if bpm <= 0 || durationSec <= 0 {
		return cuePoints
	}

	secondsPerBeat := 60.0 / bpm
	step := secondsPerBeat * a.config.CueBeats

	for t := step; t < durationSec-a.config.CueTailGuard; t += step {
		cuePoints = append(cuePoints, int(t))
	}

	return cuePoints
}
