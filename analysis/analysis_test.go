package analysis

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/tranhdex/config"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/musicxml"
	"github.com/jsphweid/tranhdex/query"
	"github.com/jsphweid/tranhdex/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScore(t *testing.T) {
	raw, err := musicxml.ParseFile(filepath.Join("..", "musicxml", "testdata", "ly_ngua_o.musicxml"))
	require.NoError(t, err)

	a, err := Run(raw, OptionsFromConfig(config.Default()))
	require.NoError(t, err)

	s := a.Summary()
	assert := assert.New(t)
	assert.Equal(6, s.RawNotes)
	assert.Equal(5, s.TotalNotes)
	assert.Equal(1, s.CombinedNotes)
	assert.Equal(2, s.GraceNotes)
	assert.Equal(3, s.Syllables)
	assert.Equal(5, s.MaxN)
	assert.Equal(a.ID.String(), s.ID)

	merged := a.Notes[0]
	assert.Equal("E5", merged.Pitch)
	assert.Equal(2.0, merged.Duration)
	assert.True(merged.CombinedFromTie)
	assert.Equal("Lý", merged.Lyric)
}

func TestRunsAreIndependent(t *testing.T) {
	raw := []model.Note{{Pitch: "C5", Duration: 1, Lyric: "a"}, {Pitch: "D5", Duration: 1, Lyric: "b"}}
	first, err := Run(raw, Options{})
	require.NoError(t, err)
	second, err := Run(raw[:1], Options{})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 3, first.Pitch.EntryCount())
	assert.Equal(t, 1, second.Pitch.EntryCount())
}

func TestNoteCeiling(t *testing.T) {
	raw := make([]model.Note, 11)
	for i := range raw {
		raw[i] = model.Note{Pitch: "C5", Duration: 1, Lyric: "la"}
	}
	_, err := Run(raw, Options{NoteCeiling: 10})
	assert.ErrorIs(t, err, ErrTooManyNotes)

	_, err = Run(raw, Options{NoteCeiling: 11})
	assert.NoError(t, err)
}

func TestRestore(t *testing.T) {
	raw := []model.Note{
		{Pitch: "C5", Duration: 1, Lyric: "la"}, {Pitch: "D5", Duration: 1, Lyric: "mi"},
		{Pitch: "C5", Duration: 1, Lyric: "la"}, {Pitch: "D5", Duration: 1, Lyric: "mi"},
	}
	a, err := Run(raw, Options{Source: "song.musicxml"})
	require.NoError(t, err)

	c, err := store.OpenCatalog(t.TempDir())
	require.NoError(t, err)
	entry, err := c.Save(a.ID, a.Source, a.Document(), a.Lyrics)
	require.NoError(t, err)

	doc, l, err := c.Load(entry.ID)
	require.NoError(t, err)
	restored, err := Restore(entry, doc, l)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(a.ID, restored.ID)
	assert.Equal("song.musicxml", restored.Source)
	assert.Equal(a.Engine().Query(model.PitchKind, queryOpts()), restored.Engine().Query(model.PitchKind, queryOpts()))
	assert.Equal(a.Ornaments(), restored.Ornaments())
	assert.Equal(0, restored.Summary().RawNotes)
}

func queryOpts() query.Options {
	return query.Options{N: 2, MinCount: 2, Mode: model.MainMelody}
}
