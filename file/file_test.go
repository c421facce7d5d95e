package file

import (
	"testing"

	"github.com/jsphweid/tranhdex/model"
	"github.com/stretchr/testify/assert"
)

func TestCreateFileNumMap(t *testing.T) {
	m := CreateFileNumMap([]string{"a.musicxml", "b/c.xml"})
	assert.Equal(t, model.FileNumToScorePath{0: "a.musicxml", 1: "b/c.xml"}, m)
	assert.Empty(t, CreateFileNumMap(nil))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "ly_ngua_o", Title("songs/ly_ngua_o.musicxml"))
	assert.Equal(t, "x", Title("x"))
}
