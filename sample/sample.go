package sample

import (
	"io"

	"github.com/jsphweid/tranhdex/midi"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/util"
)

// Excerpt returns the notes of one pattern occurrence, starting early
// enough to include the grace notes leading into it.
func Excerpt(notes []model.Note, start, length int) []model.Note {
	if start < 0 || start >= len(notes) || length <= 0 {
		return []model.Note{}
	}
	end := util.Min(start+length, len(notes))
	for start > 0 && notes[start-1].IsGrace {
		start--
	}
	res := make([]model.Note, 0, end-start)
	for _, n := range notes[start:end] {
		res = append(res, n.Clone())
	}
	return res
}

// Occurrences cuts one excerpt per position.
func Occurrences(notes []model.Note, positions []int, length int) [][]model.Note {
	res := make([][]model.Note, 0, len(positions))
	for _, p := range positions {
		res = append(res, Excerpt(notes, p, length))
	}
	return res
}

// Write renders every occurrence back to back as one MIDI file, with a
// quarter rest held on the last note of each excerpt to separate them.
func Write(w io.Writer, notes []model.Note, positions []int, length int, opts midi.Options) error {
	var all []model.Note
	for _, ex := range Occurrences(notes, positions, length) {
		if len(ex) == 0 {
			continue
		}
		ex[len(ex)-1].Duration += 1
		all = append(all, ex...)
	}
	return midi.Write(w, all, opts)
}
