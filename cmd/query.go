package cmd

import (
	"strconv"
	"strings"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/query"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type patternResults []model.PatternResult

func (p patternResults) header() []string {
	return []string{"ngram", "count", "positions", "grace", "mode"}
}

func (p patternResults) rows() [][]string {
	res := make([][]string, len(p))
	for i, r := range p {
		res[i] = []string{strings.Join(r.Gram, " "), itoa(r.Count), joinInts(r.Positions), strconv.FormatBool(r.HasGrace), string(r.Mode)}
	}
	return res
}

type sections []model.Section

func (s sections) header() []string {
	return []string{"pattern", "length", "count", "score", "positions"}
}

func (s sections) rows() [][]string {
	res := make([][]string, len(s))
	for i, r := range s {
		res[i] = []string{strings.Join(r.Gram, " "), itoa(r.Length), itoa(r.Count), itoa(r.Score), joinInts(r.Positions)}
	}
	return res
}

type variations []model.Variation

func (v variations) header() []string {
	return []string{"pattern", "similarity", "differences", "count", "positions"}
}

func (v variations) rows() [][]string {
	res := make([][]string, len(v))
	for i, r := range v {
		res[i] = []string{strings.Join(r.Gram, " "), strconv.FormatFloat(r.Similarity, 'f', 3, 64), itoa(r.Differences), itoa(r.Count), joinInts(r.Positions)}
	}
	return res
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = itoa(x)
	}
	return strings.Join(parts, ",")
}

func parseKind(s string) (model.Kind, error) {
	switch k := model.Kind(s); k {
	case model.PitchKind, model.RhythmKind:
		return k, nil
	case "":
		return model.PitchKind, nil
	}
	return "", errors.Errorf("unknown kind %q", s)
}

func parseMode(s string) (model.Mode, error) {
	switch m := model.Mode(s); m {
	case model.Full, model.MainMelody, model.GraceUnits:
		return m, nil
	case "":
		return model.Full, nil
	}
	return "", errors.Errorf("unknown mode %q", s)
}

// parseTriState reads "", "true" or "false" into an optional bool.
func parseTriState(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, errors.Wrapf(err, "bad boolean %q", s)
	}
	return &b, nil
}

var queryFlags struct {
	kind     string
	n        int
	minCount int
	mainOnly bool
	hasGrace string
	mode     string
	limit    int
}

var sectionFlags struct {
	minLength int
	minCount  int
	maxLength int
	limit     int
}

var variationFlags struct {
	pattern    string
	kind       string
	similarity float64
	tolerance  int
	limit      int
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&queryFlags.kind, "kind", "pitch", "pitch or rhythm")
	f.IntVar(&queryFlags.n, "n", 2, "n-gram size")
	f.IntVar(&queryFlags.minCount, "min-count", 0, "minimum occurrences (default from config)")
	f.BoolVar(&queryFlags.mainOnly, "main-only", false, "only n-grams made of main notes")
	f.StringVar(&queryFlags.hasGrace, "has-grace", "", "true or false to filter on grace notes")
	f.StringVar(&queryFlags.mode, "mode", "full", "full, main_melody or grace_units")
	f.IntVar(&queryFlags.limit, "limit", 20, "max results, 0 for all")

	f = sectionsCmd.Flags()
	f.IntVar(&sectionFlags.minLength, "min-length", 2, "shortest section")
	f.IntVar(&sectionFlags.minCount, "min-count", 2, "minimum occurrences")
	f.IntVar(&sectionFlags.maxLength, "max-length", 0, "longest section (0 = half the score)")
	f.IntVar(&sectionFlags.limit, "limit", 20, "max results, 0 for all")

	f = variationsCmd.Flags()
	f.StringVarP(&variationFlags.pattern, "pattern", "p", "", "base pattern, e.g. C5,D5,E5")
	f.StringVar(&variationFlags.kind, "kind", "pitch", "pitch or rhythm")
	f.Float64Var(&variationFlags.similarity, "similarity", 0.5, "minimum set similarity")
	f.IntVar(&variationFlags.tolerance, "tolerance", -1, "search section variations within this many differences instead")
	f.IntVar(&variationFlags.limit, "limit", 20, "max results, 0 for all")
	_ = variationsCmd.MarkFlagRequired("pattern")

	rootCmd.AddCommand(queryCmd, sectionsCmd, variationsCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <score|id>",
	Short: "Lists repeated n-grams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(queryFlags.kind)
		if err != nil {
			return err
		}
		mode, err := parseMode(queryFlags.mode)
		if err != nil {
			return err
		}
		hasGrace, err := parseTriState(queryFlags.hasGrace)
		if err != nil {
			return err
		}
		minCount := queryFlags.minCount
		if minCount <= 0 {
			minCount = cfg.MinCount
		}

		a, err := loadAnalysis(args[0])
		if err != nil {
			return err
		}
		res := a.Engine().Query(kind, query.Options{
			N:        queryFlags.n,
			MinCount: minCount,
			MainOnly: queryFlags.mainOnly,
			HasGrace: hasGrace,
			Mode:     mode,
		})
		return render(cmd.OutOrStdout(), patternResults(limit(res, queryFlags.limit)))
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <score|id>",
	Short: "Ranks repeated sections by count times length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis(args[0])
		if err != nil {
			return err
		}
		res := a.Engine().FindRepeatedSections(sectionFlags.minLength, sectionFlags.minCount, sectionFlags.maxLength)
		return render(cmd.OutOrStdout(), sections(limit(res, sectionFlags.limit)))
	},
}

var variationsCmd = &cobra.Command{
	Use:   "variations <score|id>",
	Short: "Finds n-grams similar to a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, err := splitPattern(variationFlags.pattern)
		if err != nil {
			return err
		}
		kind, err := parseKind(variationFlags.kind)
		if err != nil {
			return err
		}
		a, err := loadAnalysis(args[0])
		if err != nil {
			return err
		}
		var res []model.Variation
		if variationFlags.tolerance >= 0 {
			res = a.Engine().FindSectionVariations(pattern, variationFlags.tolerance)
		} else {
			res = a.Engine().FindVariations(pattern, kind, variationFlags.similarity)
		}
		return render(cmd.OutOrStdout(), variations(limit(res, variationFlags.limit)))
	},
}
