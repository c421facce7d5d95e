package cmd

import (
	"log/slog"
	"os"

	"github.com/jsphweid/tranhdex/midi"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/sample"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var midiFlags struct {
	out     string
	pattern string
	kind    string
	tempo   float64
}

func init() {
	f := midiCmd.Flags()
	f.StringVar(&midiFlags.out, "out", "out.mid", "file to write")
	f.StringVarP(&midiFlags.pattern, "pattern", "p", "", "only render occurrences of this pattern")
	f.StringVarP(&midiFlags.kind, "kind", "k", "pitch", "pitch or rhythm")
	f.Float64Var(&midiFlags.tempo, "tempo", 80, "beats per minute")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <score|id>",
	Short: "Renders a melody, or every occurrence of a pattern, as a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAnalysis(args[0])
		if err != nil {
			return err
		}
		opts := midi.DefaultOptions()
		opts.Tempo = midiFlags.tempo

		if midiFlags.pattern == "" {
			return midi.WriteFile(midiFlags.out, a.Notes, opts)
		}

		gram, err := splitPattern(midiFlags.pattern)
		if err != nil {
			return err
		}
		kind, err := parseKind(midiFlags.kind)
		if err != nil {
			return err
		}
		idx := a.Pitch
		if kind == model.RhythmKind {
			idx = a.Rhythm
		}
		entry, ok := idx.Lookup(gram)
		if !ok {
			return errors.Errorf("pattern %v does not occur", gram)
		}

		f, err := os.Create(midiFlags.out)
		if err != nil {
			return errors.Wrapf(err, "creating %v", midiFlags.out)
		}
		defer f.Close()
		slog.Debug("writing occurrences", "pattern", gram, "count", entry.Count, "out", midiFlags.out)
		return sample.Write(f, a.Notes, entry.Positions, len(gram), opts)
	},
}
