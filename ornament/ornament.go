package ornament

import (
	"strings"

	"github.com/jsphweid/tranhdex/cluster"
	"github.com/jsphweid/tranhdex/model"
	"gonum.org/v1/gonum/stat"
)

type PitchStats struct {
	TotalOccurrences      int      `json:"total_occurrences"`
	OrnamentedOccurrences int      `json:"ornamented_occurrences"`
	GraceNoteCount        int      `json:"grace_note_count"`
	GraceTypes            []string `json:"grace_types"`
	Rate                  float64  `json:"ornamentation_rate"`
}

type SyllableStats struct {
	TotalOccurrences      int      `json:"total_occurrences"`
	OrnamentedOccurrences int      `json:"ornamented_occurrences"`
	GraceNoteCount        int      `json:"grace_note_count"`
	AssociatedPitches     []string `json:"associated_pitches"`
	Rate                  float64  `json:"ornamentation_rate"`
}

type Report struct {
	Pitches            map[string]*PitchStats    `json:"pitch_ornamentation"`
	Syllables          map[string]*SyllableStats `json:"syllable_ornamentation"`
	TotalGraceClusters int                       `json:"total_grace_clusters"`
	TotalMainNotes     int                       `json:"total_main_notes"`
	TotalGraceNotes    int                       `json:"total_grace_notes"`
	// mean number of grace notes per cluster
	MeanClusterSize float64 `json:"mean_cluster_size"`
	// notated ornaments (trill, mordent, slide) by name
	Marks map[string]int `json:"ornament_marks"`
}

// Compute counts, per main pitch and per syllable, how often the note is
// sung plain and how often it closes a grace cluster.
func Compute(notes []model.Note) Report {
	report := Report{
		Pitches:   make(map[string]*PitchStats),
		Syllables: make(map[string]*SyllableStats),
		Marks:     make(map[string]int),
	}

	clusters := cluster.FindClusters(notes)
	report.TotalGraceClusters = len(clusters)
	sizes := make([]float64, 0, len(clusters))
	for _, c := range clusters {
		sizes = append(sizes, float64(len(c.GraceNotes)))
		if c.MainNote == nil {
			continue
		}
		ps := report.pitch(c.MainNote.Pitch)
		ps.OrnamentedOccurrences++
		ps.GraceNoteCount += len(c.GraceNotes)
		for _, g := range c.GraceNotes {
			ps.GraceTypes = appendUnique(ps.GraceTypes, g.Pitch)
		}
		if text := strings.TrimSpace(c.MainNote.Lyric); text != "" {
			ss := report.syllable(text)
			ss.OrnamentedOccurrences++
			ss.GraceNoteCount += len(c.GraceNotes)
			ss.AssociatedPitches = appendUnique(ss.AssociatedPitches, c.MainNote.Pitch)
		}
	}
	if len(sizes) > 0 {
		report.MeanClusterSize = stat.Mean(sizes, nil)
	}

	for _, n := range notes {
		for _, o := range n.Ornaments {
			report.Marks[o]++
		}
		if n.IsGrace {
			report.TotalGraceNotes++
			continue
		}
		report.TotalMainNotes++
		report.pitch(n.Pitch).TotalOccurrences++
		if text := strings.TrimSpace(n.Lyric); text != "" {
			ss := report.syllable(text)
			ss.TotalOccurrences++
			ss.AssociatedPitches = appendUnique(ss.AssociatedPitches, n.Pitch)
		}
	}

	for _, ps := range report.Pitches {
		ps.Rate = rate(ps.OrnamentedOccurrences, ps.TotalOccurrences)
	}
	for _, ss := range report.Syllables {
		ss.Rate = rate(ss.OrnamentedOccurrences, ss.TotalOccurrences)
	}
	return report
}

func (r *Report) pitch(p string) *PitchStats {
	ps, ok := r.Pitches[p]
	if !ok {
		ps = &PitchStats{GraceTypes: []string{}}
		r.Pitches[p] = ps
	}
	return ps
}

func (r *Report) syllable(s string) *SyllableStats {
	ss, ok := r.Syllables[s]
	if !ok {
		ss = &SyllableStats{AssociatedPitches: []string{}}
		r.Syllables[s] = ss
	}
	return ss
}

// rate is a percentage.
func rate(ornamented, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(ornamented) / float64(total) * 100
}

func appendUnique(items []string, s string) []string {
	for _, v := range items {
		if v == s {
			return items
		}
	}
	return append(items, s)
}
