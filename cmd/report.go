package cmd

import (
	"github.com/jsphweid/tranhdex/file"
	"github.com/jsphweid/tranhdex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

type catalogReport struct {
	Analyses   int         `json:"analyses" yaml:"analyses"`
	TotalNotes int         `json:"total_notes" yaml:"total_notes"`
	TotalBytes int64       `json:"total_bytes" yaml:"total_bytes"`
	MeanNotes  float64     `json:"mean_notes" yaml:"mean_notes"`
	Entries    []reportRow `json:"entries" yaml:"entries"`
}

type reportRow struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Source string `json:"source" yaml:"source"`
	Notes  int    `json:"notes" yaml:"notes"`
	Bytes  int64  `json:"bytes" yaml:"bytes"`
}

func (r catalogReport) header() []string { return []string{"id", "title", "notes", "bytes"} }

func (r catalogReport) rows() [][]string {
	res := make([][]string, 0, len(r.Entries)+1)
	for _, e := range r.Entries {
		res = append(res, []string{e.ID, e.Title, itoa(e.Notes), itoa(int(e.Bytes))})
	}
	return append(res, []string{"total", itoa(r.Analyses) + " analyses", itoa(r.TotalNotes), itoa(int(r.TotalBytes))})
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes the analysis cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		var report catalogReport
		var notes []int
		var sizes []int64
		for _, e := range cat.List() {
			size := cat.FileSize(e)
			report.Entries = append(report.Entries, reportRow{ID: e.ID, Title: file.Title(e.Source), Source: e.Source, Notes: e.TotalNotes, Bytes: size})
			notes = append(notes, e.TotalNotes)
			sizes = append(sizes, size)
		}
		report.Analyses = len(report.Entries)
		report.TotalNotes = util.Sum(notes)
		report.TotalBytes = util.Sum(sizes)
		if report.Analyses > 0 {
			report.MeanNotes = float64(report.TotalNotes) / float64(report.Analyses)
		}
		return render(cmd.OutOrStdout(), report)
	},
}
