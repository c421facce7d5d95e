package sequence

import (
	"testing"

	"github.com/jsphweid/tranhdex/model"
	"github.com/stretchr/testify/assert"
)

func TestSequencesAreIndexAligned(t *testing.T) {
	notes := []model.Note{
		{Pitch: "G5", Duration: 0.25, IsGrace: true},
		{Pitch: "E5", Duration: 2},
		{Pitch: "D5", Duration: 1},
	}
	ps := Pitches(notes)
	rs := Rhythms(notes)

	assert := assert.New(t)
	assert.Len(ps, 3)
	assert.Len(rs, 3)
	assert.Equal(PitchElement{Name: "G5", Value: 79, Type: model.Grace}, ps[0])
	assert.Equal(PitchElement{Name: "E5", Value: 76, Type: model.Main}, ps[1])
	assert.Equal(RhythmElement{Duration: 0.25, Type: model.Grace}, rs[0])
	assert.Equal("2", rs[1].Symbol())
	assert.Equal(1.0, rs[2].Numeric())
}
