package lyric

import (
	"strings"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
)

const (
	wordPunctuation   = ",.!?;:"
	phrasePunctuation = ",.!?;"
)

// Boundary decides whether syllable starts a new word, given the syllables
// already collected into the current one.
type Boundary func(syllable string, current []string) bool

// DefaultBoundary splits on punctuation and caps words at maxSyllables.
// Real segmentation needs a lexicon.
func DefaultBoundary(maxSyllables int) Boundary {
	if maxSyllables < 1 {
		maxSyllables = 1
	}
	return func(syllable string, current []string) bool {
		if len(current) == 0 {
			return true
		}
		if strings.ContainsAny(syllable, wordPunctuation) {
			return true
		}
		return len(current) >= maxSyllables
	}
}

// Words greedily groups consecutive syllables until boundary fires.
func Words(syllables []model.Syllable, boundary Boundary) []model.Word {
	if boundary == nil {
		boundary = DefaultBoundary(2)
	}
	res := []model.Word{}
	var texts []string
	var current []model.Syllable
	for _, s := range syllables {
		if boundary(s.Text, texts) && len(current) > 0 {
			res = append(res, newWord(texts, current))
			texts, current = nil, nil
		}
		texts = append(texts, s.Text)
		current = append(current, s)
	}
	if len(current) > 0 {
		res = append(res, newWord(texts, current))
	}
	return res
}

func newWord(texts []string, syllables []model.Syllable) model.Word {
	w := model.Word{
		Text:          strings.TrimSpace(strings.Join(texts, " ")),
		Syllables:     syllables,
		SyllableCount: len(syllables),
		StartsAt:      syllables[0].Position,
		Pitches:       []string{},
	}
	for _, s := range syllables {
		w.NoteCount += s.NoteCount
		w.TotalDuration += s.TotalDuration
		w.Pitches = append(w.Pitches, s.Pitches...)
		w.DurationPerSyllable = append(w.DurationPerSyllable, s.TotalDuration)
	}
	w.PitchRange = pitch.Range(w.Pitches)
	w.Contour = pitch.Contour(pitch.Values(w.Pitches))
	return w
}

// Phrases groups words until one carries terminal punctuation or the
// phrase holds maxWords words.
func Phrases(words []model.Word, maxWords int) []model.Phrase {
	if maxWords < 1 {
		maxWords = 8
	}
	res := []model.Phrase{}
	var current []model.Word
	for _, w := range words {
		current = append(current, w)
		if strings.ContainsAny(w.Text, phrasePunctuation) || len(current) >= maxWords {
			res = append(res, newPhrase(current))
			current = nil
		}
	}
	if len(current) > 0 {
		res = append(res, newPhrase(current))
	}
	return res
}

func newPhrase(words []model.Word) model.Phrase {
	texts := make([]string, len(words))
	p := model.Phrase{
		Words:     words,
		WordCount: len(words),
		Pitches:   []string{},
	}
	for i, w := range words {
		texts[i] = w.Text
		p.SyllableCount += w.SyllableCount
		p.NoteCount += w.NoteCount
		p.TotalDuration += w.TotalDuration
		p.Pitches = append(p.Pitches, w.Pitches...)
		p.DurationPerWord = append(p.DurationPerWord, w.TotalDuration)
	}
	p.Text = strings.Join(texts, " ")
	p.PitchRange = pitch.Range(p.Pitches)
	p.Contour = pitch.Contour(pitch.Values(p.Pitches))
	return p
}
