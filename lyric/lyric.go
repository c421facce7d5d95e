package lyric

import (
	"sort"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
	"gonum.org/v1/gonum/stat"
)

type Options struct {
	Boundary    Boundary
	PhraseWords int
}

// Lyrics holds the syllable, word and phrase mappings of one score.
type Lyrics struct {
	Syllables []model.Syllable `json:"syllable_mappings"`
	Words     []model.Word     `json:"word_mappings"`
	Phrases   []model.Phrase   `json:"phrase_mappings"`
}

func Analyze(notes []model.Note, opts Options) *Lyrics {
	syllables := Align(notes)
	words := Words(syllables, opts.Boundary)
	return &Lyrics{
		Syllables: syllables,
		Words:     words,
		Phrases:   Phrases(words, opts.PhraseWords),
	}
}

type ToneStats struct {
	TotalOccurrences int        `json:"total_occurrences"`
	UniqueSyllables  []string   `json:"unique_syllables"`
	UniqueCount      int        `json:"unique_count"`
	PitchPatterns    [][]string `json:"pitch_patterns"`
	AverageDuration  float64    `json:"average_duration"`
	Syllables        []string   `json:"syllable_list"`
}

type ToneReport struct {
	Statistics   map[model.Tone]*ToneStats `json:"tone_statistics"`
	Distribution map[model.Tone]int        `json:"tone_distribution"`
	MostCommon   model.Tone                `json:"most_common_tone,omitempty"`
}

func (l *Lyrics) ToneMarkAnalysis() ToneReport {
	report := ToneReport{
		Statistics:   make(map[model.Tone]*ToneStats, len(model.Tones)),
		Distribution: make(map[model.Tone]int, len(model.Tones)),
	}
	durations := make(map[model.Tone][]float64)
	for _, t := range model.Tones {
		report.Statistics[t] = &ToneStats{UniqueSyllables: []string{}, PitchPatterns: [][]string{}, Syllables: []string{}}
	}
	for _, s := range l.Syllables {
		ts := report.Statistics[s.ToneMark]
		ts.TotalOccurrences++
		ts.Syllables = append(ts.Syllables, s.Text)
		ts.PitchPatterns = append(ts.PitchPatterns, s.Pitches)
		durations[s.ToneMark] = append(durations[s.ToneMark], s.TotalDuration)
	}

	best := 0
	for _, t := range model.Tones {
		ts := report.Statistics[t]
		ts.UniqueSyllables = unique(ts.Syllables)
		ts.UniqueCount = len(ts.UniqueSyllables)
		if len(durations[t]) > 0 {
			ts.AverageDuration = stat.Mean(durations[t], nil)
		}
		report.Distribution[t] = ts.TotalOccurrences
		if ts.TotalOccurrences > best {
			best = ts.TotalOccurrences
			report.MostCommon = t
		}
	}
	return report
}

type MelismaStats struct {
	Occurrences    []int      `json:"occurrences"`
	NoteCounts     []int      `json:"note_counts"`
	TotalDurations []float64  `json:"total_durations"`
	PitchPatterns  [][]string `json:"pitch_patterns"`
}

type SyllabicStats struct {
	Occurrences []int     `json:"occurrences"`
	Pitches     []string  `json:"pitches"`
	Durations   []float64 `json:"durations"`
}

type MelismaReport struct {
	Melismatic       map[string]*MelismaStats  `json:"melismatic_syllables"`
	Syllabic         map[string]*SyllabicStats `json:"syllabic_syllables"`
	TotalMelismatic  int                       `json:"total_melismatic"`
	TotalSyllabic    int                       `json:"total_syllabic"`
	UniqueMelismatic []string                  `json:"unique_melismatic"`
	UniqueSyllabic   []string                  `json:"unique_syllabic"`
}

func (l *Lyrics) MelismaticAnalysis() MelismaReport {
	report := MelismaReport{
		Melismatic: make(map[string]*MelismaStats),
		Syllabic:   make(map[string]*SyllabicStats),
	}
	var melismatic, syllabic []string
	for _, s := range l.Syllables {
		if s.IsMelismatic {
			m, ok := report.Melismatic[s.Text]
			if !ok {
				m = &MelismaStats{}
				report.Melismatic[s.Text] = m
			}
			m.Occurrences = append(m.Occurrences, s.Position)
			m.NoteCounts = append(m.NoteCounts, s.MainNoteCount)
			m.TotalDurations = append(m.TotalDurations, s.TotalDuration)
			m.PitchPatterns = append(m.PitchPatterns, s.Pitches)
			report.TotalMelismatic++
			melismatic = append(melismatic, s.Text)
			continue
		}
		m, ok := report.Syllabic[s.Text]
		if !ok {
			m = &SyllabicStats{}
			report.Syllabic[s.Text] = m
		}
		m.Occurrences = append(m.Occurrences, s.Position)
		if len(s.Pitches) > 0 {
			m.Pitches = append(m.Pitches, s.Pitches[0])
		}
		m.Durations = append(m.Durations, s.TotalDuration)
		report.TotalSyllabic++
		syllabic = append(syllabic, s.Text)
	}
	report.UniqueMelismatic = unique(melismatic)
	report.UniqueSyllabic = unique(syllabic)
	return report
}

type Level string

const (
	SyllableLevel Level = "syllable"
	WordLevel     Level = "word"
	PhraseLevel   Level = "phrase"
)

type Repetition struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
	// start position of each occurrence
	Positions []int `json:"positions"`
	// number of distinct pitch sequences the text is sung to
	MusicalVariety int `json:"musical_variety"`
}

type occurrence struct {
	text     string
	position int
	pitches  []string
}

// Repetitions lists texts occurring more than once at the given level,
// most repeated first.
func (l *Lyrics) Repetitions(level Level) []Repetition {
	var occs []occurrence
	switch level {
	case SyllableLevel:
		for _, s := range l.Syllables {
			occs = append(occs, occurrence{s.Text, s.Position, s.Pitches})
		}
	case WordLevel:
		for _, w := range l.Words {
			occs = append(occs, occurrence{w.Text, w.StartsAt, w.Pitches})
		}
	case PhraseLevel:
		for _, p := range l.Phrases {
			pos := -1
			if len(p.Words) > 0 {
				pos = p.Words[0].StartsAt
			}
			occs = append(occs, occurrence{p.Text, pos, p.Pitches})
		}
	}

	byText := make(map[string]*Repetition)
	variety := make(map[string]map[string]bool)
	var order []string
	for _, o := range occs {
		if o.text == "" {
			continue
		}
		r, ok := byText[o.text]
		if !ok {
			r = &Repetition{Text: o.text}
			byText[o.text] = r
			variety[o.text] = make(map[string]bool)
			order = append(order, o.text)
		}
		r.Count++
		r.Positions = append(r.Positions, o.position)
		variety[o.text][pitch.Key(o.pitches)] = true
	}

	res := []Repetition{}
	for _, text := range order {
		r := byText[text]
		if r.Count < 2 {
			continue
		}
		r.MusicalVariety = len(variety[text])
		res = append(res, *r)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Count > res[j].Count
	})
	return res
}

type SyllableReport struct {
	Syllable         string      `json:"syllable"`
	TotalOccurrences int         `json:"total_occurrences"`
	PitchPatterns    [][]string  `json:"pitch_patterns"`
	DurationPatterns [][]float64 `json:"duration_patterns"`
	TotalDurations   []float64   `json:"total_durations"`
	NoteCounts       []int       `json:"note_counts"`
	AvgDuration      float64     `json:"avg_duration"`
	AvgNotes         float64     `json:"avg_notes_per_occurrence"`
	PitchVariety     int         `json:"pitch_variety"`
	RhythmVariety    int         `json:"rhythm_variety"`
	Positions        []int       `json:"positions"`
}

// SyllableAnalysis aggregates every occurrence of text. ok is false when
// the syllable is never sung.
func (l *Lyrics) SyllableAnalysis(text string) (report SyllableReport, ok bool) {
	report.Syllable = text
	var noteCounts []float64
	pitches := make(map[string]bool)
	rhythms := make(map[string]bool)
	for _, s := range l.Syllables {
		if s.Text != text {
			continue
		}
		report.TotalOccurrences++
		report.PitchPatterns = append(report.PitchPatterns, s.Pitches)
		report.DurationPatterns = append(report.DurationPatterns, s.Durations)
		report.TotalDurations = append(report.TotalDurations, s.TotalDuration)
		report.NoteCounts = append(report.NoteCounts, s.NoteCount)
		report.Positions = append(report.Positions, s.Position)
		noteCounts = append(noteCounts, float64(s.NoteCount))
		pitches[pitch.Key(s.Pitches)] = true
		rhythms[durationKey(s.Durations)] = true
	}
	if report.TotalOccurrences == 0 {
		return report, false
	}
	report.AvgDuration = stat.Mean(report.TotalDurations, nil)
	report.AvgNotes = stat.Mean(noteCounts, nil)
	report.PitchVariety = len(pitches)
	report.RhythmVariety = len(rhythms)
	return report, true
}

type WordReport struct {
	Word             string             `json:"word"`
	TotalOccurrences int                `json:"total_occurrences"`
	SyllableCounts   []int              `json:"syllable_counts"`
	TotalDurations   []float64          `json:"total_durations"`
	NoteCounts       []int              `json:"note_counts"`
	Contours         [][]string         `json:"melodic_contours"`
	PitchRanges      []model.PitchRange `json:"pitch_ranges"`
	AvgDuration      float64            `json:"avg_duration"`
}

func (l *Lyrics) WordAnalysis(text string) (report WordReport, ok bool) {
	report.Word = text
	for _, w := range l.Words {
		if w.Text != text {
			continue
		}
		report.TotalOccurrences++
		report.SyllableCounts = append(report.SyllableCounts, w.SyllableCount)
		report.TotalDurations = append(report.TotalDurations, w.TotalDuration)
		report.NoteCounts = append(report.NoteCounts, w.NoteCount)
		report.Contours = append(report.Contours, w.Contour)
		report.PitchRanges = append(report.PitchRanges, w.PitchRange)
	}
	if report.TotalOccurrences == 0 {
		return report, false
	}
	report.AvgDuration = stat.Mean(report.TotalDurations, nil)
	return report, true
}

func durationKey(durations []float64) string {
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = pitch.FormatDuration(d)
	}
	return pitch.Key(parts)
}

func unique(items []string) []string {
	seen := make(map[string]bool, len(items))
	res := []string{}
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			res = append(res, s)
		}
	}
	sort.Strings(res)
	return res
}
