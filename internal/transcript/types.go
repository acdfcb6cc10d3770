package transcript

// Segment is a single timed span of recognized speech. The transcript and
// final-segment files the operator sees are plain JSON arrays of these.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Group is a run of consecutive segments separated by short pauses, treated
// as one breath/utterance cluster.
type Group []Segment

// SentenceUnit is a punctuation/pause-bounded span intended to become one
// synthesized narration clip.
type SentenceUnit struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
