package analysis

import (
	"math"
	"sort"
)

// Frame geometry for short-time energy, chosen for 16 kHz speech.
const (
	frameLength = 2048
	hopLength   = 512

	// Silence threshold is a dynamic percentile of frame energy, so the
	// detector adapts to the recording's noise floor.
	silencePercentile = 15.0

	// Runs shorter than this are articulation gaps, not pauses.
	minPauseSec = 0.25
)

// DetectPauses returns the durations, in seconds, of silent stretches found
// by thresholding short-time RMS energy.
func DetectPauses(samples []float64, sampleRate int) []float64 {
	energy := rmsFrames(samples, frameLength, hopLength)
	if len(energy) == 0 {
		return nil
	}

	minE, maxE := energy[0], energy[0]
	for _, e := range energy {
		minE = math.Min(minE, e)
		maxE = math.Max(maxE, e)
	}
	// A flat signal has no voiced/silent contrast to threshold on.
	if maxE-minE < 1e-9 {
		return nil
	}

	threshold := percentile(energy, silencePercentile)
	frameDuration := float64(hopLength) / float64(sampleRate)

	var pauses []float64
	runStart := -1
	prev := -1
	flush := func(last int) {
		if runStart < 0 {
			return
		}
		duration := float64(last-runStart) * frameDuration
		if duration > minPauseSec {
			pauses = append(pauses, duration)
		}
	}
	for i, e := range energy {
		if e <= threshold {
			if runStart < 0 || i-prev > 1 {
				flush(prev)
				runStart = i
			}
			prev = i
		}
	}
	flush(prev)
	return pauses
}

// rmsFrames computes the root-mean-square energy of overlapping frames.
func rmsFrames(samples []float64, frame, hop int) []float64 {
	if len(samples) < frame {
		if len(samples) == 0 {
			return nil
		}
		frame = len(samples)
	}
	n := (len(samples)-frame)/hop + 1
	out := make([]float64, 0, n)
	for start := 0; start+frame <= len(samples); start += hop {
		var sum float64
		for _, s := range samples[start : start+frame] {
			sum += s * s
		}
		out = append(out, math.Sqrt(sum/float64(frame)))
	}
	return out
}

// percentile computes the p-th percentile with linear interpolation between
// closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
