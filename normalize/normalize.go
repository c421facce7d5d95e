package normalize

import (
	"log/slog"

	"github.com/jsphweid/tranhdex/model"
)

const DefaultLookahead = 20

// SlurScan is the outcome of looking ahead from a slur start.
type SlurScan struct {
	// number of source notes covered, including the start note
	Consumed   int
	Terminated bool
	Collected  []model.Note
	// non-nil when every main note in the slur shares one pitch
	Merged *model.Note
	Graces []model.Note
}

// ScanSlur collects notes from notes[start] up to and including the next
// slur stop, looking at most lookahead notes ahead of start.
func ScanSlur(notes []model.Note, start int, lookahead int) SlurScan {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	scan := SlurScan{Collected: []model.Note{notes[start]}}
	end := start
	for j := start + 1; j < len(notes) && j < start+lookahead; j++ {
		scan.Collected = append(scan.Collected, notes[j])
		end = j
		if notes[j].Slur == model.SlurStop {
			scan.Terminated = true
			break
		}
	}
	if !scan.Terminated {
		return SlurScan{Consumed: 1, Collected: []model.Note{notes[start]}}
	}
	scan.Consumed = end - start + 1

	var mains []model.Note
	for _, n := range scan.Collected {
		if n.IsGrace {
			scan.Graces = append(scan.Graces, n)
		} else {
			mains = append(mains, n)
		}
	}
	if len(mains) < 2 || mains[0].Pitch == "" {
		return scan
	}
	for _, n := range mains[1:] {
		if n.Pitch != mains[0].Pitch {
			return scan
		}
	}

	merged := mains[0].Clone()
	merged.Duration = 0
	merged.Lyric = ""
	for _, n := range mains {
		merged.Duration += n.Duration
		if merged.Lyric == "" && n.Lyric != "" {
			merged.Lyric = n.Lyric
		}
	}
	merged.Slur = model.SlurNone
	merged.Tie = model.TieNone
	merged.CombinedFromTie = true
	scan.Merged = &merged
	return scan
}

type Options struct {
	Lookahead int
}

// Normalize collapses slurs written between identical pitches into single
// notes and merges same-pitch continuations that carry no new lyric.
// Malformed notes pass through unchanged.
func Normalize(notes []model.Note, opts Options) []model.Note {
	res := make([]model.Note, 0, len(notes))
	for i := 0; i < len(notes); {
		if notes[i].Slur == model.SlurStart {
			scan := ScanSlur(notes, i, opts.Lookahead)
			switch {
			case !scan.Terminated:
				slog.Debug("unterminated slur", "position", i, "note", notes[i].Pitch)
			case scan.Merged != nil:
				for _, g := range scan.Graces {
					res = append(res, g.Clone())
				}
				res = emit(res, *scan.Merged)
				i += scan.Consumed
				continue
			default:
				for _, n := range scan.Collected {
					res = emit(res, n.Clone())
				}
				i += scan.Consumed
				continue
			}
		}
		res = emit(res, notes[i].Clone())
		i++
	}
	return res
}

// emit appends n, folding it into the previous note when both are main
// notes of the same pitch and n starts no new syllable.
func emit(res []model.Note, n model.Note) []model.Note {
	if len(res) == 0 {
		return append(res, n)
	}
	prev := &res[len(res)-1]
	if prev.IsGrace || n.IsGrace || n.HasLyric() || n.Pitch == "" || prev.Pitch != n.Pitch {
		return append(res, n)
	}
	prev.Duration += n.Duration
	prev.CombinedFromTie = true
	return res
}
