package batch

import (
	"log/slog"

	"github.com/jsphweid/tranhdex/analysis"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/musicxml"
	"github.com/jsphweid/tranhdex/store"
	"github.com/jsphweid/tranhdex/util"
)

// Failure records a score that could not be indexed.
type Failure struct {
	Path string
	Err  error
}

// ProcessFile analyzes one score and saves it to the catalog.
func ProcessFile(path string, opts analysis.Options, cat *store.Catalog) (*analysis.Analysis, model.CatalogEntry, error) {
	raw, err := musicxml.ParseFile(path)
	if err != nil {
		return nil, model.CatalogEntry{}, err
	}
	opts.Source = path
	a, err := analysis.Run(raw, opts)
	if err != nil {
		return nil, model.CatalogEntry{}, err
	}
	entry, err := cat.Save(a.ID, path, a.Document(), a.Lyrics)
	return a, entry, err
}

// ProcessAll indexes every score in m in file number order. A score that
// fails is skipped and reported, the rest still get indexed.
func ProcessAll(m model.FileNumToScorePath, opts analysis.Options, cat *store.Catalog) ([]model.CatalogEntry, []Failure) {
	var entries []model.CatalogEntry
	var failures []Failure
	keys := util.SortedKeys(m)
	for i, num := range keys {
		path := m[num]
		slog.Info("processing score", "n", i+1, "of", len(keys), "path", path)
		_, entry, err := ProcessFile(path, opts, cat)
		if err != nil {
			slog.Warn("skipping score", "path", path, "err", err)
			failures = append(failures, Failure{Path: path, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, failures
}
