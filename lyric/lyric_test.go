package lyric

import (
	"fmt"
	"testing"

	"github.com/jsphweid/tranhdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sung(p, lyric string) model.Note { return model.Note{Pitch: p, Duration: 1, Lyric: lyric} }
func grace(p string) model.Note        { return model.Note{Pitch: p, Duration: 0.25, IsGrace: true} }

// Trăng ơi từ đâu.
func verse() []model.Note {
	return []model.Note{
		sung("C5", "Trăng"), sung("D5", ""),
		grace("E5"), grace("F5"), sung("G5", "ơi"),
		grace("A5"), sung("B4", "từ"), sung("C5", ""), sung("D5", ""),
		sung("E5", "đâu."),
	}
}

func TestClassifyTone(t *testing.T) {
	cases := map[string]model.Tone{
		"sắc":   model.Sac,
		"Tiếng": model.Sac,
		"huyền": model.Huyen,
		"TỪ":    model.Huyen,
		"hỏi":   model.Hoi,
		"ngã":   model.Nga,
		"nặng":  model.Nang,
		"ngang": model.Ngang,
		"Trăng": model.Ngang,
		"đâu.":  model.Ngang,
		"":      model.Ngang,
	}
	for text, tone := range cases {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			assert.Equal(t, tone, ClassifyTone(text))
		})
	}
}

func TestAlign(t *testing.T) {
	syllables := Align(verse())
	require.Len(t, syllables, 4)
	assert := assert.New(t)

	assert.Equal("Trăng", syllables[0].Text)
	assert.Equal([]int{0, 1}, syllables[0].NotePositions)
	assert.True(syllables[0].IsMelismatic)
	assert.Equal([]string{"up"}, syllables[0].Contour)

	assert.Equal([]int{2, 3, 4}, syllables[1].NotePositions)
	assert.Equal(2, syllables[1].GraceNoteCount)
	assert.Equal(1, syllables[1].MainNoteCount)
	assert.False(syllables[1].IsMelismatic)
	assert.Equal(1.5, syllables[1].TotalDuration)

	assert.Equal([]int{5, 6, 7, 8}, syllables[2].NotePositions)
	assert.Equal(model.Huyen, syllables[2].ToneMark)
	assert.Equal(3.25, syllables[2].TotalDuration)
	assert.Equal(float64(10), syllables[2].PitchRange.Semitones)
	assert.Equal("B4", syllables[2].PitchRange.Lowest)

	assert.Equal([]int{9}, syllables[3].NotePositions)
}

func TestAlignCoversEveryNoteOnce(t *testing.T) {
	notes := verse()
	claims := make([]int, len(notes))
	for _, s := range Align(notes) {
		for _, p := range s.NotePositions {
			claims[p]++
		}
	}
	for i, c := range claims {
		assert.Equal(t, 1, c, "note %d", i)
	}
}

func TestAlignIgnoresLeadingNotes(t *testing.T) {
	notes := []model.Note{sung("C5", ""), grace("D5"), sung("E5", "la")}
	syllables := Align(notes)

	require.Len(t, syllables, 1)
	assert.Equal(t, []int{1, 2}, syllables[0].NotePositions)
}

func TestWordsAndPhrases(t *testing.T) {
	l := Analyze(verse(), Options{Boundary: DefaultBoundary(2), PhraseWords: 8})

	require.Len(t, l.Words, 3)
	assert := assert.New(t)
	assert.Equal("Trăng ơi", l.Words[0].Text)
	assert.Equal(2, l.Words[0].SyllableCount)
	assert.Equal(0, l.Words[0].StartsAt)
	assert.Equal([]float64{2, 1.5}, l.Words[0].DurationPerSyllable)
	assert.Equal("từ", l.Words[1].Text)
	assert.Equal("đâu.", l.Words[2].Text)

	require.Len(t, l.Phrases, 1)
	assert.Equal("Trăng ơi từ đâu.", l.Phrases[0].Text)
	assert.Equal(4, l.Phrases[0].SyllableCount)
	assert.Equal(10, l.Phrases[0].NoteCount)
}

func TestCustomBoundary(t *testing.T) {
	everySyllable := func(string, []string) bool { return true }
	words := Words(Align(verse()), everySyllable)
	assert.Len(t, words, 4)
}

func TestPhraseCap(t *testing.T) {
	var notes []model.Note
	for i := 0; i < 10; i++ {
		notes = append(notes, sung("C5", "la"))
	}
	l := Analyze(notes, Options{Boundary: func(string, []string) bool { return true }, PhraseWords: 8})

	require.Len(t, l.Phrases, 2)
	assert.Equal(t, 8, l.Phrases[0].WordCount)
	assert.Equal(t, 2, l.Phrases[1].WordCount)
}

func TestToneMarkAnalysis(t *testing.T) {
	report := Analyze(verse(), Options{}).ToneMarkAnalysis()
	assert := assert.New(t)

	assert.Equal(model.Ngang, report.MostCommon)
	assert.Equal(3, report.Distribution[model.Ngang])
	assert.Equal(1, report.Distribution[model.Huyen])
	assert.Equal(0, report.Distribution[model.Sac])
	assert.Equal([]string{"Trăng", "đâu.", "ơi"}, report.Statistics[model.Ngang].UniqueSyllables)
	assert.Equal(3.25, report.Statistics[model.Huyen].AverageDuration)
	assert.Len(report.Statistics, len(model.Tones))
}

func TestMelismaticAnalysis(t *testing.T) {
	report := Analyze(verse(), Options{}).MelismaticAnalysis()
	assert := assert.New(t)

	assert.Equal(2, report.TotalMelismatic)
	assert.Equal(2, report.TotalSyllabic)
	assert.Equal([]string{"Trăng", "từ"}, report.UniqueMelismatic)
	assert.Equal([]int{3}, report.Melismatic["từ"].NoteCounts)
	assert.Equal([]string{"E5"}, report.Syllabic["ơi"].Pitches)
}

func TestRepetitionsAndSyllableAnalysis(t *testing.T) {
	notes := []model.Note{sung("C5", "la"), sung("D5", "la"), sung("C5", "la"), sung("E5", "mi"), sung("E5", "mi")}
	l := Analyze(notes, Options{})

	reps := l.Repetitions(SyllableLevel)
	require.Len(t, reps, 2)
	assert := assert.New(t)
	assert.Equal("la", reps[0].Text)
	assert.Equal(3, reps[0].Count)
	assert.Equal(2, reps[0].MusicalVariety)
	assert.Equal([]int{0, 1, 2}, reps[0].Positions)
	assert.Equal("mi", reps[1].Text)
	assert.Equal(1, reps[1].MusicalVariety)

	assert.Empty(l.Repetitions(WordLevel))
	assert.Empty(l.Repetitions(Level("stanza")))

	report, ok := l.SyllableAnalysis("la")
	require.True(t, ok)
	assert.Equal(3, report.TotalOccurrences)
	assert.Equal(1.0, report.AvgDuration)
	assert.Equal(1.0, report.AvgNotes)
	assert.Equal(2, report.PitchVariety)
	assert.Equal(1, report.RhythmVariety)

	_, ok = l.SyllableAnalysis("xa")
	assert.False(ok)

	word, ok := l.WordAnalysis("la la")
	require.True(t, ok)
	assert.Equal(1, word.TotalOccurrences)
	assert.Equal(2.0, word.AvgDuration)
}
