package normalize

import (
	"fmt"
	"testing"

	"github.com/jsphweid/tranhdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(p string, d float64) model.Note {
	return model.Note{Pitch: p, Duration: d}
}

func grace(p string) model.Note {
	return model.Note{Pitch: p, Duration: 0.25, IsGrace: true}
}

func withLyric(n model.Note, l string) model.Note {
	n.Lyric = l
	return n
}

func withSlur(n model.Note, s model.Slur) model.Note {
	n.Slur = s
	return n
}

func TestSlurBetweenIdenticalPitchesBecomesOneNote(t *testing.T) {
	notes := []model.Note{
		withSlur(note("E5", 2), model.SlurStart),
		withLyric(note("E5", 1), "nối"),
		withSlur(note("E5", 1), model.SlurStop),
	}
	res := Normalize(notes, Options{})

	require.Len(t, res, 1)
	assert := assert.New(t)
	assert.Equal("E5", res[0].Pitch)
	assert.Equal(4.0, res[0].Duration)
	assert.Equal("nối", res[0].Lyric)
	assert.True(res[0].CombinedFromTie)
	assert.Equal(model.SlurNone, res[0].Slur)
}

func TestMergedSlurKeepsFirstLyric(t *testing.T) {
	notes := []model.Note{
		withSlur(withLyric(note("A4", 1), "một"), model.SlurStart),
		withSlur(withLyric(note("A4", 1), "hai"), model.SlurStop),
	}
	res := Normalize(notes, Options{})

	require.Len(t, res, 1)
	assert.Equal(t, "một", res[0].Lyric)
	assert.Equal(t, 2.0, res[0].Duration)
}

func TestMergedSlurEmitsGraceNotesFirst(t *testing.T) {
	notes := []model.Note{
		withSlur(note("E5", 1), model.SlurStart),
		grace("G5"),
		grace("F5"),
		withSlur(note("E5", 1), model.SlurStop),
		note("D5", 1),
	}
	res := Normalize(notes, Options{})

	require.Len(t, res, 4)
	assert := assert.New(t)
	assert.True(res[0].IsGrace)
	assert.True(res[1].IsGrace)
	assert.Equal("E5", res[2].Pitch)
	assert.Equal(2.0, res[2].Duration)
	assert.Equal("D5", res[3].Pitch)
}

func TestGenuineSlurIsKept(t *testing.T) {
	notes := []model.Note{
		withSlur(note("E5", 1), model.SlurStart),
		note("D5", 1),
		withSlur(note("C5", 1), model.SlurStop),
	}
	res := Normalize(notes, Options{})

	require.Len(t, res, 3)
	assert.Equal(t, model.SlurStart, res[0].Slur)
	assert.False(t, res[0].CombinedFromTie)
}

func TestUnterminatedSlurIsNotDropped(t *testing.T) {
	notes := []model.Note{
		withSlur(note("E5", 1), model.SlurStart),
		withLyric(note("E5", 1), "a"),
		withLyric(note("D5", 1), "b"),
	}
	res := Normalize(notes, Options{})

	require.Len(t, res, 3)
	assert.Equal(t, model.SlurStart, res[0].Slur)
	assert.Equal(t, 1.0, res[0].Duration)
}

func TestSlurBeyondLookaheadIsUnterminated(t *testing.T) {
	notes := []model.Note{withSlur(note("E5", 1), model.SlurStart)}
	for i := 0; i < 5; i++ {
		notes = append(notes, withLyric(note("E5", 1), fmt.Sprint(i)))
	}
	notes = append(notes, withSlur(note("E5", 1), model.SlurStop))

	scan := ScanSlur(notes, 0, 3)
	assert.False(t, scan.Terminated)
	assert.Equal(t, 1, scan.Consumed)

	scan = ScanSlur(notes, 0, 20)
	assert.True(t, scan.Terminated)
	assert.Equal(t, 7, scan.Consumed)
	assert.NotNil(t, scan.Merged)
}

func TestImplicitContinuationIsMerged(t *testing.T) {
	notes := []model.Note{
		withLyric(note("C5", 1), "la"),
		note("C5", 0.5),
		note("C5", 0.5),
		withLyric(note("C5", 1), "la"),
	}
	res := Normalize(notes, Options{})

	require.Len(t, res, 2)
	assert := assert.New(t)
	assert.Equal(2.0, res[0].Duration)
	assert.True(res[0].CombinedFromTie)
	assert.Equal("la", res[1].Lyric)
}

func TestContinuationDoesNotCrossGraceNotes(t *testing.T) {
	notes := []model.Note{
		note("C5", 1),
		grace("D5"),
		note("C5", 1),
		grace("C5"),
		grace("C5"),
	}
	res := Normalize(notes, Options{})
	assert.Len(t, res, 5)
}

func TestMissingPitchPassesThrough(t *testing.T) {
	notes := []model.Note{note("", 1), note("", 1)}
	res := Normalize(notes, Options{})
	assert.Len(t, res, 2)
}

func TestInputIsNotModified(t *testing.T) {
	notes := []model.Note{note("C5", 1), note("C5", 1)}
	Normalize(notes, Options{})
	assert.Equal(t, 1.0, notes[0].Duration)
	assert.False(t, notes[0].CombinedFromTie)
}

func TestNoAdjacentIdenticalMainNotesWithoutLyricBoundary(t *testing.T) {
	pitches := []string{"C5", "D5", "E5"}
	slurs := []model.Slur{model.SlurNone, model.SlurStart, model.SlurStop, model.SlurContinue}
	// deterministic pseudo-random streams
	seed := uint32(7)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}
	for round := 0; round < 200; round++ {
		var notes []model.Note
		for i := 0; i < 30; i++ {
			n := model.Note{Pitch: pitches[next(len(pitches))], Duration: 1, Slur: slurs[next(len(slurs))]}
			n.IsGrace = next(5) == 0
			if !n.IsGrace && next(3) == 0 {
				n.Lyric = "x"
			}
			notes = append(notes, n)
		}
		res := Normalize(notes, Options{})
		for i := 1; i < len(res); i++ {
			a, b := res[i-1], res[i]
			if a.IsGrace || b.IsGrace {
				continue
			}
			if a.Pitch == b.Pitch && !b.HasLyric() {
				t.Fatalf("round %v: adjacent %v at %v without lyric boundary", round, b.Pitch, i)
			}
		}

		var before, after float64
		for _, n := range notes {
			before += n.Duration
		}
		for _, n := range res {
			after += n.Duration
		}
		assert.Equal(t, before, after)
	}
}
