package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// tabular results can be printed with --format table.
type tabular interface {
	header() []string
	rows() [][]string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

func render(w io.Writer, result any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(result), "encoding output")
	case "table":
		if t, ok := result.(tabular); ok {
			_, err := fmt.Fprintln(w, renderTable(t))
			return err
		}
		fallthrough
	case "yaml", "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return errors.Wrap(err, "encoding output")
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(t tabular) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(t.header()...).
		Rows(t.rows()...).
		String()
}

func itoa(i int) string { return strconv.Itoa(i) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func percent(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) + "%" }
