package chroma

import (
	"math"

	"github.com/soundslam/trackanalysis/algorithms/spectral"
	"github.com/soundslam/trackanalysis/algorithms/windowing"
)

// ChromaBins is the number of pitch classes (C through B)
const ChromaBins = 12

// PitchClassNames are the sharp-spelled pitch class labels, indexed by
// pitch class number (0=C .. 11=B).
var PitchClassNames = [ChromaBins]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// ChromaVector is a 12-bin pitch-class energy histogram normalized to
// sum to 1, or all-zero when no energy was attributable. An all-zero
// vector means "no key detected" by convention, not invalid input.
type ChromaVector [ChromaBins]float64

// IsZero reports whether the vector carries no energy
func (cv ChromaVector) IsZero() bool {
	for _, v := range cv {
		if v > 0 {
			return false
		}
	}
	return true
}

// Rotate returns the vector cyclically shifted so that pitch class k
// lands in bin 0: rotated[i] = cv[(i+k) mod 12].
func (cv ChromaVector) Rotate(k int) ChromaVector {
	var rotated ChromaVector
	for i := range cv {
		rotated[i] = cv[(i+k)%ChromaBins]
	}
	return rotated
}

// Values returns the vector as a slice
func (cv ChromaVector) Values() []float64 {
	return cv[:]
}

// Extractor computes a single octave-folded pitch-class histogram from a
// mono signal via short-time spectral analysis.
//
// Each STFT frame's magnitude spectrum is accumulated into the pitch
// class its bin's center frequency maps to under equal temperament
// (A4 = 440 Hz), restricted to the audible musical range.
type Extractor struct {
	sampleRate int
	windowSize int
	hopSize    int
	tuningFreq float64 // A4 reference
	minFreq    float64 // low end of the mapped range (A0)
	maxFreq    float64 // high end of the mapped range (C8)
	stft       *spectral.STFT
	window     *windowing.Hann
}

// NewExtractor creates a chroma extractor with the standard analysis
// geometry: 4096-sample Hann windows advanced by 512-sample hops,
// mapping 27.5 Hz through 4186 Hz.
func NewExtractor(sampleRate int) *Extractor {
	return NewExtractorWithParams(sampleRate, 4096, 512, 27.5, 4186.0)
}

// NewExtractorWithParams creates a chroma extractor with custom STFT
// geometry and mapped frequency range.
func NewExtractorWithParams(sampleRate, windowSize, hopSize int, minFreq, maxFreq float64) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		windowSize: windowSize,
		hopSize:    hopSize,
		tuningFreq: 440.0,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		stft:       spectral.NewSTFT(),
		window:     windowing.NewHann(windowSize, false),
	}
}

// Compute accumulates the signal's spectral energy into a normalized
// 12-bin chroma vector. A signal shorter than one analysis window, or
// one with no energy in the mapped range, yields the all-zero vector.
func (ex *Extractor) Compute(signal []float64) ChromaVector {
	var accumulated ChromaVector

	if len(signal) < ex.windowSize {
		return accumulated
	}

	stftResult, err := ex.stft.ComputeWithWindow(signal, ex.windowSize, ex.hopSize, ex.sampleRate, ex.window)
	if err != nil {
		return accumulated
	}

	mapping := ex.pitchClassMapping(stftResult.FreqBins, stftResult.FreqResolution)

	for t := 0; t < stftResult.TimeFrames; t++ {
		for f := 0; f < stftResult.FreqBins; f++ {
			bin := mapping[f]
			if bin < 0 {
				continue
			}

			magnitude := stftResult.Magnitude[t][f]
			accumulated[bin] += magnitude * magnitude
		}
	}

	return normalizeUnitSum(accumulated)
}

// pitchClassMapping maps FFT bins to pitch classes, or -1 for bins
// outside the musical range.
func (ex *Extractor) pitchClassMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution

		if frequency < ex.minFreq || frequency > ex.maxFreq {
			mapping[f] = -1
			continue
		}

		// MIDI note number: 69 + 12 * log2(f/440); pitch class is the
		// note number mod 12.
		midiNote := 69.0 + 12.0*math.Log2(frequency/ex.tuningFreq)
		mapping[f] = ((int(math.Round(midiNote)) % ChromaBins) + ChromaBins) % ChromaBins
	}

	return mapping
}

// normalizeUnitSum scales the vector to sum to 1, leaving a zero-energy
// vector untouched.
func normalizeUnitSum(cv ChromaVector) ChromaVector {
	total := 0.0
	for _, v := range cv {
		total += v
	}

	if total <= 1e-12 {
		return ChromaVector{}
	}

	for i := range cv {
		cv[i] /= total
	}

	return cv
}
