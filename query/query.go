package query

import (
	"sort"

	"github.com/jsphweid/tranhdex/cluster"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/ngram"
	"github.com/jsphweid/tranhdex/pitch"
	"github.com/jsphweid/tranhdex/util"
)

// Engine answers pattern queries over one analysis run. Notes may be nil
// for an engine built from a cached index, in which case the backbone
// modes find nothing.
type Engine struct {
	notes  []model.Note
	pitch  *ngram.Index
	rhythm *ngram.Index
}

func NewEngine(notes []model.Note, pitchIdx, rhythmIdx *ngram.Index) *Engine {
	return &Engine{notes: notes, pitch: pitchIdx, rhythm: rhythmIdx}
}

type Options struct {
	N        int
	MinCount int
	MainOnly bool
	// nil means either
	HasGrace *bool
	Mode     model.Mode
}

func (e *Engine) index(kind model.Kind) *ngram.Index {
	if kind == model.RhythmKind {
		return e.rhythm
	}
	return e.pitch
}

// Query returns the n-grams of size opts.N occurring at least
// opts.MinCount times, most frequent first.
func (e *Engine) Query(kind model.Kind, opts Options) []model.PatternResult {
	res := []model.PatternResult{}
	if opts.N <= 0 {
		return res
	}
	mode := opts.Mode
	if mode == "" {
		mode = model.Full
	}

	if e.index(kind).Table(opts.N) == nil {
		return res
	}

	var table ngram.Table
	switch mode {
	case model.MainMelody, model.GraceUnits:
		backbone := cluster.Backbone(e.notes, mode == model.GraceUnits)
		symbols, positions := cluster.Symbols(backbone, kind)
		table = ngram.Count(symbols, positions, opts.N)
	default:
		table = e.index(kind).Table(opts.N)
	}

	for _, entry := range table {
		if entry.Count < opts.MinCount {
			continue
		}
		if mode == model.Full {
			if opts.MainOnly && !entry.AllMain {
				continue
			}
			if opts.HasGrace != nil && entry.HasGrace != *opts.HasGrace {
				continue
			}
		}
		res = append(res, model.PatternResult{
			Gram:      append([]string(nil), entry.Gram...),
			Count:     entry.Count,
			Positions: append([]int(nil), entry.Positions...),
			Values:    append([]float64(nil), entry.Values...),
			NoteTypes: append([]model.NoteType(nil), entry.NoteTypes...),
			HasGrace:  entry.HasGrace,
			AllMain:   entry.AllMain,
			Mode:      mode,
		})
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		if c := util.CompareGrams(res[i].Gram, res[j].Gram); c != 0 {
			return c < 0
		}
		return firstPosition(res[i].Positions) < firstPosition(res[j].Positions)
	})
	return res
}

// FindVariations compares base against every other indexed n-gram of the
// same length by the overlap of their element sets.
func (e *Engine) FindVariations(base []string, kind model.Kind, threshold float64) []model.Variation {
	res := []model.Variation{}
	table := e.index(kind).Table(len(base))
	baseKey := pitch.Key(base)
	for key, entry := range table {
		if key == baseKey {
			continue
		}
		sim := jaccard(base, entry.Gram)
		if sim < threshold {
			continue
		}
		res = append(res, model.Variation{
			Gram:        append([]string(nil), entry.Gram...),
			Length:      len(entry.Gram),
			Count:       entry.Count,
			Positions:   append([]int(nil), entry.Positions...),
			Differences: differences(base, entry.Gram),
			Similarity:  sim,
		})
	}
	sortVariations(res)
	return res
}

// FindRepeatedSections scans pitch n-grams of every size in
// [minLength, maxLength] and ranks them by count*length. maxLength <= 0
// means half the stream.
func (e *Engine) FindRepeatedSections(minLength, minCount, maxLength int) []model.Section {
	res := []model.Section{}
	if e.pitch == nil {
		return res
	}
	if maxLength <= 0 {
		maxLength = e.pitch.Length / 2
	}
	if minLength < 1 {
		minLength = 1
	}
	for n := minLength; n <= maxLength; n++ {
		for _, entry := range e.pitch.Table(n) {
			if entry.Count < minCount {
				continue
			}
			res = append(res, model.Section{
				Kind:      model.PitchKind,
				Length:    n,
				Gram:      append([]string(nil), entry.Gram...),
				Count:     entry.Count,
				Positions: append([]int(nil), entry.Positions...),
				HasGrace:  entry.HasGrace,
				Score:     entry.Count * n,
			})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		if res[i].Length != res[j].Length {
			return res[i].Length > res[j].Length
		}
		return util.CompareGrams(res[i].Gram, res[j].Gram) < 0
	})
	return res
}

// FindSectionVariations finds pitch n-grams whose length is within
// tolerance of base and that differ from it in at most tolerance places.
func (e *Engine) FindSectionVariations(base []string, tolerance int) []model.Variation {
	res := []model.Variation{}
	if len(base) == 0 || tolerance < 0 {
		return res
	}
	baseKey := pitch.Key(base)
	for n := util.Max(1, len(base)-tolerance); n <= len(base)+tolerance; n++ {
		for key, entry := range e.pitch.Table(n) {
			if key == baseKey {
				continue
			}
			diff := differences(base, entry.Gram)
			if diff > tolerance {
				continue
			}
			res = append(res, model.Variation{
				Gram:        append([]string(nil), entry.Gram...),
				Length:      n,
				Count:       entry.Count,
				Positions:   append([]int(nil), entry.Positions...),
				Differences: diff,
				Similarity:  1 - float64(diff)/float64(util.Max(len(base), n)),
			})
		}
	}
	sortVariations(res)
	return res
}

func sortVariations(res []model.Variation) {
	sort.Slice(res, func(i, j int) bool {
		if res[i].Similarity != res[j].Similarity {
			return res[i].Similarity > res[j].Similarity
		}
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return util.CompareGrams(res[i].Gram, res[j].Gram) < 0
	})
}

func jaccard(a, b []string) float64 {
	set := make(map[string]int)
	for _, s := range a {
		set[s] |= 1
	}
	for _, s := range b {
		set[s] |= 2
	}
	if len(set) == 0 {
		return 0
	}
	var both int
	for _, v := range set {
		if v == 3 {
			both++
		}
	}
	return float64(both) / float64(len(set))
}

// differences counts mismatched positions over the common prefix plus the
// length delta. Not an edit distance.
func differences(a, b []string) int {
	shorter := util.Min(len(a), len(b))
	diff := util.Max(len(a), len(b)) - shorter
	for i := 0; i < shorter; i++ {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}

func firstPosition(positions []int) int {
	if len(positions) == 0 {
		return -1
	}
	return positions[0]
}
