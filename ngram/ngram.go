package ngram

import (
	"log/slog"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
	"github.com/jsphweid/tranhdex/util"
)

// Element is one position of a sequence fed to the builder.
type Element interface {
	Symbol() string
	Numeric() float64
	NoteType() model.NoteType
}

type Table = map[string]*model.NgramEntry

type Index struct {
	Kind   model.Kind
	Tables map[int]Table
	// length of the sequence the index was built from
	Length int
}

// Build indexes every window of every size from 1 to maxN. maxN <= 0 means
// the full sequence length.
func Build[E Element](kind model.Kind, seq []E, maxN int) *Index {
	if maxN <= 0 || maxN > len(seq) {
		maxN = len(seq)
	}
	idx := &Index{Kind: kind, Tables: make(map[int]Table, maxN), Length: len(seq)}
	for n := 1; n <= maxN; n++ {
		table := make(Table)
		for i := 0; i+n <= len(seq); i++ {
			window := seq[i : i+n]
			gram := make([]string, n)
			for k, e := range window {
				gram[k] = e.Symbol()
			}
			key := pitch.Key(gram)
			entry, ok := table[key]
			if !ok {
				entry = newEntry(gram, window)
				table[key] = entry
			}
			entry.Count++
			entry.Positions = append(entry.Positions, i)
		}
		idx.Tables[n] = table
	}
	slog.Debug("built n-gram index", "kind", kind, "length", len(seq), "max_n", maxN)
	return idx
}

func newEntry[E Element](gram []string, window []E) *model.NgramEntry {
	entry := &model.NgramEntry{
		Gram:      gram,
		Values:    make([]float64, len(window)),
		NoteTypes: make([]model.NoteType, len(window)),
		AllMain:   true,
	}
	for k, e := range window {
		entry.Values[k] = e.Numeric()
		entry.NoteTypes[k] = e.NoteType()
		if e.NoteType() == model.Grace {
			entry.HasGrace = true
			entry.AllMain = false
		}
	}
	return entry
}

// Table returns the entries of size n, or nil when n was not indexed.
func (idx *Index) Table(n int) Table {
	if idx == nil {
		return nil
	}
	return idx.Tables[n]
}

func (idx *Index) Sizes() []int {
	if idx == nil {
		return []int{}
	}
	return util.SortedKeys(idx.Tables)
}

func (idx *Index) MaxN() int {
	sizes := idx.Sizes()
	if len(sizes) == 0 {
		return 0
	}
	return sizes[len(sizes)-1]
}

// EntryCount is the number of distinct keys over all sizes.
func (idx *Index) EntryCount() int {
	var total int
	for _, t := range idx.Tables {
		total += len(t)
	}
	return total
}

func (idx *Index) Lookup(gram []string) (*model.NgramEntry, bool) {
	e, ok := idx.Table(len(gram))[pitch.Key(gram)]
	return e, ok
}

// Count builds a fresh single-size table over symbols, recording for each
// occurrence the position given by positions[i].
func Count(symbols []string, positions []int, n int) Table {
	table := make(Table)
	if n <= 0 {
		return table
	}
	for i := 0; i+n <= len(symbols); i++ {
		gram := append([]string(nil), symbols[i:i+n]...)
		key := pitch.Key(gram)
		entry, ok := table[key]
		if !ok {
			entry = &model.NgramEntry{Gram: gram}
			table[key] = entry
		}
		entry.Count++
		entry.Positions = append(entry.Positions, positions[i])
	}
	return table
}
