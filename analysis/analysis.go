package analysis

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/jsphweid/tranhdex/config"
	"github.com/jsphweid/tranhdex/lyric"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/ngram"
	"github.com/jsphweid/tranhdex/normalize"
	"github.com/jsphweid/tranhdex/ornament"
	"github.com/jsphweid/tranhdex/query"
	"github.com/jsphweid/tranhdex/sequence"
	"github.com/jsphweid/tranhdex/store"
	"github.com/pkg/errors"
)

var ErrTooManyNotes = errors.New("score exceeds note ceiling")

type Options struct {
	Source string
	// largest n-gram size to index, 0 for the whole stream
	MaxN          int
	SlurLookahead int
	// 0 disables the ceiling
	NoteCeiling int
	Boundary    lyric.Boundary
	PhraseWords int
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxN:          cfg.MaxN,
		SlurLookahead: cfg.SlurLookahead,
		NoteCeiling:   cfg.NoteCeiling,
		Boundary:      lyric.DefaultBoundary(cfg.WordSyllables),
		PhraseWords:   cfg.PhraseWords,
	}
}

// Analysis is everything derived from one score. Nothing is shared between
// runs.
type Analysis struct {
	ID     uuid.UUID
	Source string
	// nil for analyses restored from the cache
	Raw    []model.Note
	Notes  []model.Note
	Pitch  *ngram.Index
	Rhythm *ngram.Index
	Lyrics *lyric.Lyrics
}

func Run(raw []model.Note, opts Options) (*Analysis, error) {
	if opts.NoteCeiling > 0 && len(raw) > opts.NoteCeiling {
		return nil, errors.Wrapf(ErrTooManyNotes, "%d notes, ceiling is %d", len(raw), opts.NoteCeiling)
	}

	notes := normalize.Normalize(raw, normalize.Options{Lookahead: opts.SlurLookahead})
	a := &Analysis{
		ID:     uuid.New(),
		Source: opts.Source,
		Raw:    raw,
		Notes:  notes,
		Pitch:  ngram.Build(model.PitchKind, sequence.Pitches(notes), opts.MaxN),
		Rhythm: ngram.Build(model.RhythmKind, sequence.Rhythms(notes), opts.MaxN),
		Lyrics: lyric.Analyze(notes, lyric.Options{Boundary: opts.Boundary, PhraseWords: opts.PhraseWords}),
	}
	slog.Debug("analysis complete",
		"id", a.ID,
		"raw_notes", len(raw),
		"notes", len(notes),
		"pitch_entries", a.Pitch.EntryCount(),
		"rhythm_entries", a.Rhythm.EntryCount(),
		"syllables", len(a.Lyrics.Syllables),
	)
	return a, nil
}

// Restore rebuilds an analysis from a cached index. l may be nil.
func Restore(entry model.CatalogEntry, doc *store.Document, l *lyric.Lyrics) (*Analysis, error) {
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "bad analysis id %v", entry.ID)
	}
	if l == nil {
		l = lyric.Analyze(doc.Notes, lyric.Options{})
	}
	pitchIdx, rhythmIdx := doc.Indexes()
	return &Analysis{
		ID:     id,
		Source: entry.Source,
		Notes:  doc.Notes,
		Pitch:  pitchIdx,
		Rhythm: rhythmIdx,
		Lyrics: l,
	}, nil
}

func (a *Analysis) Document() *store.Document {
	return store.NewDocument(a.Notes, a.Pitch, a.Rhythm)
}

func (a *Analysis) Engine() *query.Engine {
	return query.NewEngine(a.Notes, a.Pitch, a.Rhythm)
}

func (a *Analysis) Ornaments() ornament.Report {
	return ornament.Compute(a.Notes)
}

type Summary struct {
	ID              string `json:"id" yaml:"id"`
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	TotalNotes      int    `json:"total_notes" yaml:"total_notes"`
	RawNotes        int    `json:"raw_notes" yaml:"raw_notes"`
	CombinedNotes   int    `json:"combined_notes" yaml:"combined_notes"`
	MainNotes       int    `json:"main_notes" yaml:"main_notes"`
	GraceNotes      int    `json:"grace_notes" yaml:"grace_notes"`
	NotesWithLyrics int    `json:"notes_with_lyrics" yaml:"notes_with_lyrics"`
	Syllables       int    `json:"syllables" yaml:"syllables"`
	Words           int    `json:"words" yaml:"words"`
	Phrases         int    `json:"phrases" yaml:"phrases"`
	PitchEntries    int    `json:"pitch_ngram_entries" yaml:"pitch_ngram_entries"`
	RhythmEntries   int    `json:"rhythm_ngram_entries" yaml:"rhythm_ngram_entries"`
	MaxN            int    `json:"max_n" yaml:"max_n"`
}

func (a *Analysis) Summary() Summary {
	s := Summary{
		ID:            a.ID.String(),
		Source:        a.Source,
		TotalNotes:    len(a.Notes),
		RawNotes:      len(a.Raw),
		PitchEntries:  a.Pitch.EntryCount(),
		RhythmEntries: a.Rhythm.EntryCount(),
		MaxN:          a.Pitch.MaxN(),
	}
	for _, n := range a.Notes {
		if n.CombinedFromTie {
			s.CombinedNotes++
		}
		if n.IsGrace {
			s.GraceNotes++
		} else {
			s.MainNotes++
		}
		if n.HasLyric() {
			s.NotesWithLyrics++
		}
	}
	if a.Lyrics != nil {
		s.Syllables = len(a.Lyrics.Syllables)
		s.Words = len(a.Lyrics.Words)
		s.Phrases = len(a.Lyrics.Phrases)
	}
	return s
}
