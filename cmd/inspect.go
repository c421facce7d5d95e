package cmd

import (
	"strings"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/util"
	"github.com/spf13/cobra"
)

var inspectFlags struct {
	kind string
	n    int
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFlags.kind, "kind", "k", "pitch", "pitch or rhythm")
	inspectCmd.Flags().IntVar(&inspectFlags.n, "n", 0, "only print entries of this size")
	rootCmd.AddCommand(inspectCmd)
}

type inspection struct {
	Entry   model.CatalogEntry  `json:"entry" yaml:"entry"`
	Sizes   []int               `json:"sizes" yaml:"sizes"`
	Counts  map[int]int         `json:"entries_per_size" yaml:"entries_per_size"`
	Entries []*model.NgramEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

func (i inspection) header() []string { return []string{"size", "entries"} }

func (i inspection) rows() [][]string {
	var res [][]string
	for _, n := range util.SortedKeys(i.Counts) {
		res = append(res, []string{itoa(n), itoa(i.Counts[n])})
	}
	return res
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Prints what a cached index holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		entry, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		doc, _, err := cat.Load(args[0])
		if err != nil {
			return err
		}
		kind, err := parseKind(inspectFlags.kind)
		if err != nil {
			return err
		}
		pitchIdx, rhythmIdx := doc.Indexes()
		idx := pitchIdx
		if kind == model.RhythmKind {
			idx = rhythmIdx
		}

		res := inspection{Entry: entry, Sizes: idx.Sizes(), Counts: map[int]int{}}
		for n, t := range idx.Tables {
			res.Counts[n] = len(t)
		}
		if inspectFlags.n > 0 {
			t := idx.Table(inspectFlags.n)
			for _, key := range util.SortedKeys(t) {
				res.Entries = append(res.Entries, t[key])
			}
			if format == "table" {
				return render(cmd.OutOrStdout(), ngramEntries(res.Entries))
			}
		}
		return render(cmd.OutOrStdout(), res)
	},
}

type ngramEntries []*model.NgramEntry

func (e ngramEntries) header() []string {
	return []string{"gram", "count", "positions", "all main"}
}

func (e ngramEntries) rows() [][]string {
	res := make([][]string, len(e))
	for i, entry := range e {
		allMain := ""
		if entry.AllMain {
			allMain = "yes"
		}
		res[i] = []string{strings.Join(entry.Gram, " "), itoa(entry.Count), joinInts(entry.Positions), allMain}
	}
	return res
}
