package model

type Kind string

const (
	PitchKind  Kind = "pitch"
	RhythmKind Kind = "rhythm"
)

type Mode string

const (
	Full       Mode = "full"
	MainMelody Mode = "main_melody"
	GraceUnits Mode = "grace_units"
)

// NgramEntry aggregates every occurrence of one n-gram key.
type NgramEntry struct {
	Gram      []string   `json:"gram"`
	Count     int        `json:"count"`
	Positions []int      `json:"positions"`
	Values    []float64  `json:"values"`
	NoteTypes []NoteType `json:"note_types"`
	HasGrace  bool       `json:"has_grace"`
	AllMain   bool       `json:"all_main"`
}

type PatternResult struct {
	Gram      []string   `json:"ngram"`
	Count     int        `json:"count"`
	Positions []int      `json:"positions"`
	Values    []float64  `json:"values,omitempty"`
	NoteTypes []NoteType `json:"note_types,omitempty"`
	HasGrace  bool       `json:"has_grace"`
	AllMain   bool       `json:"all_main"`
	Mode      Mode       `json:"analysis_mode"`
}

type Variation struct {
	Gram        []string `json:"pattern"`
	Length      int      `json:"length"`
	Count       int      `json:"count"`
	Positions   []int    `json:"positions"`
	Differences int      `json:"differences"`
	Similarity  float64  `json:"similarity"`
}

type Section struct {
	Kind      Kind     `json:"type"`
	Length    int      `json:"length"`
	Gram      []string `json:"pattern"`
	Count     int      `json:"count"`
	Positions []int    `json:"positions"`
	HasGrace  bool     `json:"has_grace"`
	Score     int      `json:"score"`
}
