// Package pcm holds the decoded audio buffer model and the signal
// preprocessing stages (mono mixdown, analysis-rate resampling) that feed
// the analysis pipeline. Decoding file formats is out of scope; buffers
// arrive already decoded from whatever facility the host provides.
package pcm

import (
	"time"

	"github.com/soundslam/trackanalysis/algorithms/common"
)

// AudioData represents a decoded audio buffer. PCM samples are
// interleaved by channel, in [-1, 1]. The analysis engine only reads it.
type AudioData struct {
	PCM        []float64 `json:"-"` // Interleaved PCM data
	SampleRate int       `json:"sample_rate"`
	Channels   int       `json:"channels"`
}

// Duration returns the play time represented by the buffer
func (a *AudioData) Duration() time.Duration {
	if a.SampleRate <= 0 || a.Channels <= 0 {
		return 0
	}

	frames := len(a.PCM) / a.Channels
	return time.Duration(float64(frames) / float64(a.SampleRate) * float64(time.Second))
}

// MonoSignal is a single-channel view of an AudioData buffer at a known
// sample rate.
type MonoSignal struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// Preprocessor converts raw buffers into the mono, fixed-rate signal the
// analysis stages consume.
type Preprocessor struct {
	targetRate   int
	interpolator *common.Interpolator
}

// NewPreprocessor creates a preprocessor resampling to the given
// analysis rate.
func NewPreprocessor(targetRate int) *Preprocessor {
	return &Preprocessor{
		targetRate:   targetRate,
		interpolator: common.NewInterpolator(),
	}
}

// Process mixes the buffer down to mono and resamples it to the analysis
// rate. A zero-length input produces a zero-length output, not an error.
func (p *Preprocessor) Process(audio *AudioData) MonoSignal {
	mono := MixdownMono(audio)

	if mono.SampleRate == p.targetRate || len(mono.Samples) == 0 {
		return MonoSignal{Samples: mono.Samples, SampleRate: p.targetRate}
	}

	resampled := p.interpolator.ResampleSignal(mono.Samples, mono.SampleRate, p.targetRate)

	return MonoSignal{Samples: resampled, SampleRate: p.targetRate}
}

// MixdownMono averages sample values across channels at each frame
// index. Single-channel input is returned as-is without copying.
func MixdownMono(audio *AudioData) MonoSignal {
	if audio == nil || len(audio.PCM) == 0 {
		return MonoSignal{Samples: []float64{}, SampleRate: sampleRateOrZero(audio)}
	}

	if audio.Channels <= 1 {
		return MonoSignal{Samples: audio.PCM, SampleRate: audio.SampleRate}
	}

	frames := len(audio.PCM) / audio.Channels
	mono := make([]float64, frames)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < audio.Channels; ch++ {
			sum += audio.PCM[i*audio.Channels+ch]
		}
		mono[i] = sum / float64(audio.Channels)
	}

	return MonoSignal{Samples: mono, SampleRate: audio.SampleRate}
}

func sampleRateOrZero(audio *AudioData) int {
	if audio == nil {
		return 0
	}
	return audio.SampleRate
}
