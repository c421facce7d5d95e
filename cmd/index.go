package cmd

import (
	"log/slog"
	"strconv"

	"github.com/jsphweid/tranhdex/analysis"
	"github.com/jsphweid/tranhdex/batch"
	"github.com/jsphweid/tranhdex/config"
	"github.com/jsphweid/tranhdex/file"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/store"
	"github.com/jsphweid/tranhdex/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var fresh bool

func init() {
	indexCmd.Flags().BoolVar(&fresh, "fresh", false, "clear the cache directory before indexing")
	rootCmd.AddCommand(indexCmd)
}

type indexed []model.CatalogEntry

func (e indexed) header() []string { return []string{"id", "source", "notes"} }

func (e indexed) rows() [][]string {
	res := make([][]string, len(e))
	for i, entry := range e {
		res[i] = []string{entry.ID, entry.Source, itoa(entry.TotalNotes)}
	}
	return res
}

var indexCmd = &cobra.Command{
	Use:   "index [dir] [maxNum]",
	Short: "Analyzes every score under a directory into the cache",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.GetMediaDir()
		if len(args) > 0 {
			dir = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "bad maxNum %q", args[1])
			}
			maxNum = n
		}
		if fresh {
			if err := util.RecreateOutputDir(); err != nil {
				return err
			}
		}
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		entries, failures, err := Index(cat, dir, maxNum, analysisOptions())
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			slog.Warn("some scores were skipped", "failed", len(failures), "indexed", len(entries))
		}
		return render(cmd.OutOrStdout(), indexed(entries))
	},
}

// Index analyzes up to maxNum scores under dir (0 for all) and saves them
// in cat, replacing earlier analyses of the same file.
func Index(cat *store.Catalog, dir string, maxNum int, opts analysis.Options) ([]model.CatalogEntry, []batch.Failure, error) {
	paths, err := util.GatherAllScorePaths(dir, maxNum)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		if old, ok := cat.FindSource(p); ok {
			if err := cat.Remove(old.ID); err != nil {
				return nil, nil, err
			}
		}
	}
	entries, failures := batch.ProcessAll(file.CreateFileNumMap(paths), opts, cat)
	removed, err := cat.Prune()
	if err != nil {
		return entries, failures, err
	}
	slog.Debug("indexed directory", "dir", dir, "scores", len(paths), "pruned", removed)
	return entries, failures, nil
}
