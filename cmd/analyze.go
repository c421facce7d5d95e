package cmd

import (
	"log/slog"

	"github.com/jsphweid/tranhdex/analysis"
	"github.com/jsphweid/tranhdex/musicxml"
	"github.com/spf13/cobra"
)

var (
	analyzeNoCache bool
	analyzeMaxN    int
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "do not save the analysis")
	analyzeCmd.Flags().IntVar(&analyzeMaxN, "max-n", -1, "largest n-gram size (0 = whole score, default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <score.musicxml>",
	Short: "Analyzes a score and caches its indexes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := analyze(args[0], !analyzeNoCache)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), s)
	},
}

func analyze(path string, save bool) (analysis.Summary, error) {
	raw, err := musicxml.ParseFile(path)
	if err != nil {
		return analysis.Summary{}, err
	}
	opts := analysisOptions()
	opts.Source = path
	if analyzeMaxN >= 0 {
		opts.MaxN = analyzeMaxN
	}
	a, err := analysis.Run(raw, opts)
	if err != nil {
		return analysis.Summary{}, err
	}
	if save {
		cat, err := openCatalog()
		if err != nil {
			return analysis.Summary{}, err
		}
		entry, err := cat.Save(a.ID, path, a.Document(), a.Lyrics)
		if err != nil {
			return analysis.Summary{}, err
		}
		slog.Info("saved analysis", "id", entry.ID, "dir", cat.Dir)
	}
	return a.Summary(), nil
}
