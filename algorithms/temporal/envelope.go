package temporal

import (
	"math"

	"github.com/soundslam/trackanalysis/algorithms/common"
)

// OnsetEnvelope is a fixed-hop series of half-wave-rectified energy flux
// values: the envelope value at frame i is the energy increase (never
// decrease) from frame i-1. FrameRate is the number of envelope frames
// per second of audio.
type OnsetEnvelope struct {
	Flux      []float64 `json:"flux"`
	FrameRate float64   `json:"frame_rate"`
	FrameSize int       `json:"frame_size"`
	HopSize   int       `json:"hop_size"`
}

// EnvelopeExtractor converts a mono signal into the onset envelope shared
// by both tempo estimators.
type EnvelopeExtractor struct {
	frameDuration float64 // seconds
	hopDuration   float64 // seconds
	smoothHalfWin int     // frames on each side for moving-average smoothing
}

// NewEnvelopeExtractor creates an extractor with the standard 40 ms
// frames, 10 ms hops and +/-3 frame smoothing.
func NewEnvelopeExtractor() *EnvelopeExtractor {
	return NewEnvelopeExtractorWithParams(0.040, 0.010, 3)
}

// NewEnvelopeExtractorWithParams creates an extractor with custom frame
// and hop durations (seconds) and smoothing half-window (frames).
func NewEnvelopeExtractorWithParams(frameDuration, hopDuration float64, smoothHalfWin int) *EnvelopeExtractor {
	return &EnvelopeExtractor{
		frameDuration: frameDuration,
		hopDuration:   hopDuration,
		smoothHalfWin: smoothHalfWin,
	}
}

// Compute extracts the onset envelope from a mono signal. A signal
// shorter than one frame yields an empty envelope; downstream estimators
// treat that as "no detection" rather than fault.
func (ee *EnvelopeExtractor) Compute(signal []float64, sampleRate int) OnsetEnvelope {
	frameSize := int(ee.frameDuration * float64(sampleRate))
	hopSize := int(ee.hopDuration * float64(sampleRate))

	if sampleRate <= 0 || frameSize <= 0 || hopSize <= 0 || len(signal) < frameSize {
		return OnsetEnvelope{Flux: []float64{}, FrameSize: frameSize, HopSize: hopSize}
	}

	energy := ee.computeRMSFrames(signal, frameSize, hopSize)

	// Half-wave rectified energy flux: only energy increases count as
	// onset strength.
	flux := make([]float64, len(energy)-1)
	for i := range flux {
		diff := energy[i+1] - energy[i]
		if diff > 0 {
			flux[i] = diff
		}
	}

	flux = common.MovingAverage(flux, ee.smoothHalfWin)

	return OnsetEnvelope{
		Flux:      flux,
		FrameRate: float64(sampleRate) / float64(hopSize),
		FrameSize: frameSize,
		HopSize:   hopSize,
	}
}

// computeRMSFrames computes per-frame RMS energy
func (ee *EnvelopeExtractor) computeRMSFrames(signal []float64, frameSize, hopSize int) []float64 {
	numFrames := (len(signal)-frameSize)/hopSize + 1
	energy := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * hopSize
		endIdx := startIdx + frameSize

		if endIdx > len(signal) {
			break
		}

		sumSquares := 0.0
		for j := startIdx; j < endIdx; j++ {
			sumSquares += signal[j] * signal[j]
		}
		energy[i] = math.Sqrt(sumSquares / float64(frameSize))
	}

	return energy
}
