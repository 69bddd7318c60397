package analysis

// Rating is a coarse qualitative bucket for a metric. Values double as
// catalogue keys so the transport can localize them.
type Rating string

const (
	TempoOptimal Rating = "tempo_optimal"
	TempoSlow    Rating = "tempo_slow"
	TempoFast    Rating = "tempo_fast"

	MonotonyLow      Rating = "monotony_low"
	MonotonyModerate Rating = "monotony_moderate"
	MonotonyHigh     Rating = "monotony_high"

	DynamicsStrong Rating = "dynamics_strong"
	DynamicsMedium Rating = "dynamics_medium"
	DynamicsFlat   Rating = "dynamics_flat"
)

// Prosody captures pitch and loudness expressiveness features.
type Prosody struct {
	PitchMeanHz float64
	PitchStdHz  float64
	Monotony    Rating
	EnergyMean  float64
	EnergyStd   float64
	Dynamics    Rating
}

// TextQuality captures structural features of the transcript.
type TextQuality struct {
	SentenceCount  int
	AvgSentenceLen float64
	LongSentences  int
	Repetitions    map[string]int
}

// Report is the immutable aggregate produced for one submission.
type Report struct {
	DurationSec    float64
	WordCount      int
	WordsPerMinute float64
	TempoRating    Rating
	ShortPauses    int
	LongPauses     int
	FillerCount    int
	FillerDetails  map[string]int
	Prosody        Prosody
	TextQuality    TextQuality
}
