package model

type Tone string

const (
	Sac   Tone = "sắc"
	Huyen Tone = "huyền"
	Hoi   Tone = "hỏi"
	Nga   Tone = "ngã"
	Nang  Tone = "nặng"
	Ngang Tone = "ngang"
)

var Tones = []Tone{Sac, Huyen, Hoi, Nga, Nang, Ngang}

type PitchRange struct {
	Semitones float64 `json:"semitones"`
	Lowest    string  `json:"lowest,omitempty"`
	Highest   string  `json:"highest,omitempty"`
}

type Syllable struct {
	Text           string     `json:"syllable"`
	Position       int        `json:"position"`
	Notes          []Note     `json:"notes"`
	NotePositions  []int      `json:"note_positions"`
	Pitches        []string   `json:"pitches"`
	Durations      []float64  `json:"durations"`
	TotalDuration  float64    `json:"total_duration"`
	NoteCount      int        `json:"note_count"`
	MainNoteCount  int        `json:"main_note_count"`
	GraceNoteCount int        `json:"grace_note_count"`
	PitchRange     PitchRange `json:"pitch_range"`
	Contour        []string   `json:"melodic_contour"`
	IsMelismatic   bool       `json:"is_melismatic"`
	ToneMark       Tone       `json:"tone_mark"`
}

type Word struct {
	Text                string     `json:"word"`
	Syllables           []Syllable `json:"syllables"`
	SyllableCount       int        `json:"syllable_count"`
	NoteCount           int        `json:"note_count"`
	TotalDuration       float64    `json:"total_duration"`
	Pitches             []string   `json:"pitches"`
	PitchRange          PitchRange `json:"pitch_range"`
	Contour             []string   `json:"melodic_contour"`
	StartsAt            int        `json:"starts_at_position"`
	DurationPerSyllable []float64  `json:"duration_per_syllable"`
}

type Phrase struct {
	Text            string     `json:"phrase"`
	Words           []Word     `json:"words"`
	WordCount       int        `json:"word_count"`
	SyllableCount   int        `json:"syllable_count"`
	NoteCount       int        `json:"note_count"`
	TotalDuration   float64    `json:"total_duration"`
	Pitches         []string   `json:"pitches"`
	PitchRange      PitchRange `json:"pitch_range"`
	Contour         []string   `json:"melodic_contour"`
	DurationPerWord []float64  `json:"duration_per_word"`
}
