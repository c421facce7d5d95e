package sequence

import (
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
)

type PitchElement struct {
	Name  string
	Value float64
	Type  model.NoteType
}

func (e PitchElement) Symbol() string          { return e.Name }
func (e PitchElement) Numeric() float64        { return e.Value }
func (e PitchElement) NoteType() model.NoteType { return e.Type }

type RhythmElement struct {
	Duration float64
	Type     model.NoteType
}

func (e RhythmElement) Symbol() string          { return pitch.FormatDuration(e.Duration) }
func (e RhythmElement) Numeric() float64        { return e.Duration }
func (e RhythmElement) NoteType() model.NoteType { return e.Type }

// Pitches is index-aligned with notes.
func Pitches(notes []model.Note) []PitchElement {
	res := make([]PitchElement, len(notes))
	for i, n := range notes {
		res[i] = PitchElement{Name: n.Pitch, Value: pitch.Value(n.Pitch), Type: n.Type()}
	}
	return res
}

// Rhythms is index-aligned with notes. Grace notes keep their real duration.
func Rhythms(notes []model.Note) []RhythmElement {
	res := make([]RhythmElement, len(notes))
	for i, n := range notes {
		res[i] = RhythmElement{Duration: n.Duration, Type: n.Type()}
	}
	return res
}
