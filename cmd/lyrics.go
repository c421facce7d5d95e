package cmd

import (
	"strings"

	"github.com/jsphweid/tranhdex/lyric"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/ornament"
	"github.com/jsphweid/tranhdex/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type syllables []model.Syllable

func (s syllables) header() []string {
	return []string{"pos", "syllable", "tone", "notes", "duration", "melisma", "pitches"}
}

func (s syllables) rows() [][]string {
	res := make([][]string, len(s))
	for i, syl := range s {
		melisma := ""
		if syl.IsMelismatic {
			melisma = "yes"
		}
		res[i] = []string{itoa(syl.Position), syl.Text, string(syl.ToneMark), itoa(syl.NoteCount), ftoa(syl.TotalDuration), melisma, strings.Join(syl.Pitches, " ")}
	}
	return res
}

type repetitions []lyric.Repetition

func (r repetitions) header() []string {
	return []string{"text", "count", "variety", "positions"}
}

func (r repetitions) rows() [][]string {
	res := make([][]string, len(r))
	for i, rep := range r {
		res[i] = []string{rep.Text, itoa(rep.Count), itoa(rep.MusicalVariety), joinInts(rep.Positions)}
	}
	return res
}

type ornamentTable ornament.Report

func (o ornamentTable) header() []string {
	return []string{"pitch", "total", "ornamented", "grace notes", "rate"}
}

func (o ornamentTable) rows() [][]string {
	var res [][]string
	for _, p := range util.SortedKeys(o.Pitches) {
		ps := o.Pitches[p]
		res = append(res, []string{p, itoa(ps.TotalOccurrences), itoa(ps.OrnamentedOccurrences), itoa(ps.GraceNoteCount), percent(ps.Rate)})
	}
	return res
}

var lyricsFlags struct {
	view  string
	text  string
	level string
}

func init() {
	f := lyricsCmd.Flags()
	f.StringVar(&lyricsFlags.view, "view", "syllables", "syllables, words, phrases, tones, melisma, repetitions, syllable or word")
	f.StringVar(&lyricsFlags.text, "text", "", "syllable or word to look up")
	f.StringVar(&lyricsFlags.level, "level", "syllable", "repetition level: syllable, word or phrase")
	rootCmd.AddCommand(lyricsCmd, ornamentsCmd)
}

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <score|id>",
	Short: "Shows how the lyrics sit on the melody",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis(args[0])
		if err != nil {
			return err
		}
		l := a.Lyrics
		var result any
		switch lyricsFlags.view {
		case "syllables":
			result = syllables(l.Syllables)
		case "words":
			result = l.Words
		case "phrases":
			result = l.Phrases
		case "tones":
			result = l.ToneMarkAnalysis()
		case "melisma":
			result = l.MelismaticAnalysis()
		case "repetitions":
			result = repetitions(l.Repetitions(lyric.Level(lyricsFlags.level)))
		case "syllable":
			report, ok := l.SyllableAnalysis(lyricsFlags.text)
			if !ok {
				return errors.Errorf("syllable %q not found", lyricsFlags.text)
			}
			result = report
		case "word":
			report, ok := l.WordAnalysis(lyricsFlags.text)
			if !ok {
				return errors.Errorf("word %q not found", lyricsFlags.text)
			}
			result = report
		default:
			return errors.Errorf("unknown view %q", lyricsFlags.view)
		}
		return render(cmd.OutOrStdout(), result)
	},
}

var ornamentsCmd = &cobra.Command{
	Use:   "ornaments <score|id>",
	Short: "Grace-note ornamentation statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis(args[0])
		if err != nil {
			return err
		}
		report := a.Ornaments()
		if format == "table" {
			return render(cmd.OutOrStdout(), ornamentTable(report))
		}
		return render(cmd.OutOrStdout(), report)
	},
}
