package analysis

import "math"

// Pitch search band for adult speech, in Hz.
const (
	pitchMinHz = 75.0
	pitchMaxHz = 350.0

	// Minimum normalized autocorrelation to accept a frame as voiced.
	voicingThreshold = 0.5

	// Frames quieter than this RMS are skipped for pitch tracking.
	voicedEnergyFloor = 0.01
)

// Monotony and dynamics bands, matched to the recommendation copy.
const (
	pitchVarLivelyHz   = 60.0
	pitchVarModerateHz = 30.0
	energyVarStrong    = 0.03
	energyVarMedium    = 0.015
)

// AnalyzeProsody extracts pitch statistics and loudness dynamics.
func AnalyzeProsody(samples []float64, sampleRate int) Prosody {
	energy := rmsFrames(samples, frameLength, hopLength)
	energyMean, energyStd := meanStd(energy)

	var pitches []float64
	for start := 0; start+frameLength <= len(samples); start += hopLength {
		frame := samples[start : start+frameLength]
		if rms(frame) < voicedEnergyFloor {
			continue
		}
		if hz, ok := framePitch(frame, sampleRate); ok {
			pitches = append(pitches, hz)
		}
	}
	pitchMean, pitchStd := meanStd(pitches)

	monotony := MonotonyHigh
	switch {
	case pitchStd > pitchVarLivelyHz:
		monotony = MonotonyLow
	case pitchStd > pitchVarModerateHz:
		monotony = MonotonyModerate
	}

	dynamics := DynamicsFlat
	switch {
	case energyStd > energyVarStrong:
		dynamics = DynamicsStrong
	case energyStd > energyVarMedium:
		dynamics = DynamicsMedium
	}

	return Prosody{
		PitchMeanHz: pitchMean,
		PitchStdHz:  pitchStd,
		Monotony:    monotony,
		EnergyMean:  energyMean,
		EnergyStd:   energyStd,
		Dynamics:    dynamics,
	}
}

// framePitch estimates the fundamental frequency of one frame by picking the
// lag with the highest normalized autocorrelation inside the search band.
func framePitch(frame []float64, sampleRate int) (float64, bool) {
	minLag := int(float64(sampleRate) / pitchMaxHz)
	maxLag := int(float64(sampleRate) / pitchMinHz)
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0, false
	}

	var energy0 float64
	for _, s := range frame {
		energy0 += s * s
	}
	if energy0 == 0 {
		return 0, false
	}

	corrs := make([]float64, maxLag+1)
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var num, energyLag float64
		for i := 0; i+lag < len(frame); i++ {
			num += frame[i] * frame[i+lag]
			energyLag += frame[i+lag] * frame[i+lag]
		}
		if energyLag == 0 {
			continue
		}
		corrs[lag] = num / math.Sqrt(energy0*energyLag)
		if corrs[lag] > bestCorr {
			bestCorr = corrs[lag]
		}
	}
	if bestCorr < voicingThreshold {
		return 0, false
	}
	// Integer multiples of the true period correlate almost as well as the
	// period itself; take the smallest lag close to the maximum to stay on
	// the fundamental.
	for lag := minLag; lag <= maxLag; lag++ {
		if corrs[lag] >= bestCorr*0.97 {
			return float64(sampleRate) / float64(lag), true
		}
	}
	return 0, false
}

func rms(frame []float64) float64 {
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}
