package lyric

import (
	"strings"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
	"github.com/jsphweid/tranhdex/util"
	"golang.org/x/text/unicode/norm"
)

// combining diacritics that carry the tone, checked in this order
var toneMarks = []struct {
	mark rune
	tone model.Tone
}{
	{'\u0301', model.Sac},
	{'\u0300', model.Huyen},
	{'\u0309', model.Hoi},
	{'\u0303', model.Nga},
	{'\u0323', model.Nang},
}

// ClassifyTone finds the tone of a Vietnamese syllable from its diacritics.
// Syllables without a tone mark are ngang.
func ClassifyTone(syllable string) model.Tone {
	decomposed := norm.NFD.String(strings.ToLower(syllable))
	for _, tm := range toneMarks {
		if strings.ContainsRune(decomposed, tm.mark) {
			return tm.tone
		}
	}
	return model.Ngang
}

func hasLyric(n model.Note) bool {
	return strings.TrimSpace(n.Lyric) != ""
}

// Align maps every lyric-bearing main note to the notes it governs: the
// unclaimed grace notes right before it, itself, and the lyric-less main
// notes after it up to the next grace note or lyric.
func Align(notes []model.Note) []model.Syllable {
	res := []model.Syllable{}
	claimed := make(map[int]bool)

	for i, n := range notes {
		if n.IsGrace || !hasLyric(n) {
			continue
		}

		var positions []int
		for j := i - 1; j >= 0 && notes[j].IsGrace && !hasLyric(notes[j]); j-- {
			if !claimed[j] {
				positions = append([]int{j}, positions...)
			}
		}
		positions = append(positions, i)
		for j := i + 1; j < len(notes) && !notes[j].IsGrace && !hasLyric(notes[j]); j++ {
			positions = append(positions, j)
		}

		for _, p := range positions {
			claimed[p] = true
		}
		res = append(res, newSyllable(notes, i, positions))
	}
	return res
}

func newSyllable(notes []model.Note, position int, positions []int) model.Syllable {
	text := strings.TrimSpace(notes[position].Lyric)
	s := model.Syllable{
		Text:          text,
		Position:      position,
		Notes:         make([]model.Note, len(positions)),
		NotePositions: positions,
		Pitches:       make([]string, len(positions)),
		Durations:     make([]float64, len(positions)),
		NoteCount:     len(positions),
		ToneMark:      ClassifyTone(text),
	}
	for k, p := range positions {
		n := notes[p]
		s.Notes[k] = n
		s.Pitches[k] = n.Pitch
		s.Durations[k] = n.Duration
		if n.IsGrace {
			s.GraceNoteCount++
		} else {
			s.MainNoteCount++
		}
	}
	s.TotalDuration = util.Sum(s.Durations)
	s.PitchRange = pitch.Range(s.Pitches)
	s.Contour = pitch.Contour(pitch.Values(s.Pitches))
	s.IsMelismatic = s.MainNoteCount > 1
	return s
}
