package store

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/tranhdex/lyric"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/ngram"
	"github.com/pkg/errors"
)

type Metadata struct {
	TotalNotes  int   `json:"total_notes"`
	PitchSizes  []int `json:"pitch_ngram_sizes"`
	RhythmSizes []int `json:"rhythm_ngram_sizes"`
}

// Document is the persisted form of one analysis run's indexes.
type Document struct {
	Metadata     Metadata            `json:"metadata"`
	PitchNgrams  map[int]ngram.Table `json:"pitch_ngrams"`
	RhythmNgrams map[int]ngram.Table `json:"rhythm_ngrams"`
	// canonical notes, kept so backbone queries work on a reloaded index
	Notes []model.Note `json:"notes,omitempty"`
}

func NewDocument(notes []model.Note, pitchIdx, rhythmIdx *ngram.Index) *Document {
	doc := &Document{
		Metadata: Metadata{
			TotalNotes:  len(notes),
			PitchSizes:  pitchIdx.Sizes(),
			RhythmSizes: rhythmIdx.Sizes(),
		},
		PitchNgrams:  map[int]ngram.Table{},
		RhythmNgrams: map[int]ngram.Table{},
		Notes:        notes,
	}
	if pitchIdx != nil {
		doc.PitchNgrams = pitchIdx.Tables
	}
	if rhythmIdx != nil {
		doc.RhythmNgrams = rhythmIdx.Tables
	}
	return doc
}

// Indexes rebuilds the pitch and rhythm indexes the document was made from.
func (d *Document) Indexes() (pitchIdx, rhythmIdx *ngram.Index) {
	pitchIdx = &ngram.Index{Kind: model.PitchKind, Tables: d.PitchNgrams, Length: d.Metadata.TotalNotes}
	rhythmIdx = &ngram.Index{Kind: model.RhythmKind, Tables: d.RhythmNgrams, Length: d.Metadata.TotalNotes}
	if pitchIdx.Tables == nil {
		pitchIdx.Tables = map[int]ngram.Table{}
	}
	if rhythmIdx.Tables == nil {
		rhythmIdx.Tables = map[int]ngram.Table{}
	}
	return pitchIdx, rhythmIdx
}

func WriteIndex(path string, doc *Document) error {
	return writeJSON(path, doc)
}

func ReadIndex(path string) (*Document, error) {
	var doc Document
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func WriteLyrics(path string, l *lyric.Lyrics) error {
	return writeJSON(path, l)
}

func ReadLyrics(path string) (*lyric.Lyrics, error) {
	var l lyric.Lyrics
	if err := readJSON(path, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %v", path)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0666), "writing %v", path)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %v", path)
	}
	return errors.Wrapf(json.Unmarshal(data, v), "decoding %v", path)
}
