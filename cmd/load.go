package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jsphweid/tranhdex/analysis"
	"github.com/jsphweid/tranhdex/config"
	"github.com/jsphweid/tranhdex/musicxml"
	"github.com/jsphweid/tranhdex/store"
	"github.com/pkg/errors"
)

func openCatalog() (*store.Catalog, error) {
	return store.OpenCatalog(config.GetCacheDir())
}

func analysisOptions() analysis.Options {
	return analysis.OptionsFromConfig(cfg)
}

// loadAnalysis accepts either a score path, analyzed on the fly, or the id
// of a cached analysis.
func loadAnalysis(arg string) (*analysis.Analysis, error) {
	if _, err := os.Stat(arg); err == nil {
		raw, err := musicxml.ParseFile(arg)
		if err != nil {
			return nil, err
		}
		opts := analysisOptions()
		opts.Source = arg
		return analysis.Run(raw, opts)
	}

	cat, err := openCatalog()
	if err != nil {
		return nil, err
	}
	return restore(cat, arg)
}

func restore(cat *store.Catalog, id string) (*analysis.Analysis, error) {
	entry, err := cat.Get(id)
	if err != nil {
		return nil, err
	}
	doc, l, err := cat.Load(id)
	if err != nil {
		return nil, err
	}
	slog.Debug("restored analysis", "id", id, "source", entry.Source)
	return analysis.Restore(entry, doc, l)
}

// splitPattern reads "C5,D5,E5" or "C5 D5 E5".
func splitPattern(s string) ([]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, errors.New("empty pattern")
	}
	return fields, nil
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
