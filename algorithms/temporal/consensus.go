package temporal

import (
	"math"
)

// ConsensusCombiner merges independent tempo estimates into one
// confident value. No single estimation method is reliable alone;
// cross-method agreement is the core accuracy signal, so harmonically
// related votes earn a confidence bonus.
type ConsensusCombiner struct {
	minBPM            float64
	maxBPM            float64
	bandLow           float64
	bandHigh          float64
	harmonicTolerance float64 // BPM tolerance for equal/double/half agreement
	agreementBonus    float64 // max bonus points for full harmonic agreement
}

// NewConsensusCombiner creates a combiner with the standard dance-band
// normalization and a 3-BPM harmonic tolerance worth up to 30 bonus
// points.
func NewConsensusCombiner() *ConsensusCombiner {
	return &ConsensusCombiner{
		minBPM:            MinBPM,
		maxBPM:            MaxBPM,
		bandLow:           DanceBandLow,
		bandHigh:          DanceBandHigh,
		harmonicTolerance: 3.0,
		agreementBonus:    30.0,
	}
}

// NormalizeBPM folds a BPM into the canonical dance-tempo band
// [bandLow, bandHigh] by repeated doubling or halving while staying
// within the overall searchable range. Values already inside the band
// are fixed points.
func (cc *ConsensusCombiner) NormalizeBPM(bpm float64) float64 {
	if bpm <= 0 {
		return DefaultBPM
	}

	for bpm < cc.bandLow && bpm*2 <= cc.maxBPM {
		bpm *= 2
	}
	for bpm > cc.bandHigh && bpm/2 >= cc.minBPM {
		bpm /= 2
	}

	return bpm
}

// Combine merges estimates through a confidence-weighted vote over
// octave-normalized BPMs. Zero-confidence estimates are non-votes; if
// every input is a non-vote the neutral default is returned. The winner
// gains up to agreementBonus extra points scaled by the fraction of
// voters harmonically related to it (equal, double or half tempo within
// tolerance), capped at 100.
func (cc *ConsensusCombiner) Combine(estimates ...TempoEstimate) TempoEstimate {
	type vote struct {
		bpm        float64
		confidence int
	}

	votes := make(map[int]float64)
	var voters []vote

	for _, est := range estimates {
		if est.Confidence <= 0 || est.BPM <= 0 {
			continue
		}

		normalized := cc.NormalizeBPM(est.BPM)
		votes[int(math.Round(normalized))] += float64(est.Confidence)
		voters = append(voters, vote{bpm: normalized, confidence: est.Confidence})
	}

	if len(voters) == 0 {
		return NeutralEstimate(MethodCombined)
	}

	winner, winnerScore := 0, 0.0
	for bpm, score := range votes {
		if score > winnerScore || (score == winnerScore && bpm < winner) {
			winner = bpm
			winnerScore = score
		}
	}

	// The reported BPM is the confidence-weighted mean of the votes in
	// the winning bin, so exact agreement passes through unrounded.
	weightedBPM := 0.0
	weightSum := 0.0
	confidenceSum := 0.0
	winnerVoters := 0

	for _, v := range voters {
		if int(math.Round(v.bpm)) != winner {
			continue
		}
		weightedBPM += v.bpm * float64(v.confidence)
		weightSum += float64(v.confidence)
		confidenceSum += float64(v.confidence)
		winnerVoters++
	}

	if weightSum <= 0 || winnerVoters == 0 {
		return NeutralEstimate(MethodCombined)
	}

	finalBPM := weightedBPM / weightSum
	baseConfidence := confidenceSum / float64(winnerVoters)

	related := 0
	for _, v := range voters {
		if cc.harmonicallyRelated(v.bpm, finalBPM) {
			related++
		}
	}

	bonus := float64(related) / float64(len(voters)) * cc.agreementBonus

	confidence := int(math.Round(baseConfidence + bonus))
	if confidence > 100 {
		confidence = 100
	}

	return TempoEstimate{
		BPM:        finalBPM,
		Confidence: confidence,
		Method:     MethodCombined,
	}
}

// harmonicallyRelated reports whether a BPM is the same, double or half
// of the winner within tolerance.
func (cc *ConsensusCombiner) harmonicallyRelated(bpm, winner float64) bool {
	return math.Abs(bpm-winner) <= cc.harmonicTolerance ||
		math.Abs(bpm*2-winner) <= cc.harmonicTolerance ||
		math.Abs(bpm/2-winner) <= cc.harmonicTolerance
}
