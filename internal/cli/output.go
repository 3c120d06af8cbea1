package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// view describes one result in every output format. Text is required;
// Rows is used for the table format and falls back to Text when nil.
type view struct {
	Text    string
	Data    any
	Headers []string
	Rows    [][]string
}

// render writes v to w in the requested format.
func render(w io.Writer, format string, v view) error {
	switch strings.ToLower(format) {
	case "", formatText:
		_, err := fmt.Fprintln(w, v.Text)
		return err
	case formatJSON:
		data, err := json.MarshalIndent(v.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(v.Data)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case formatTable:
		if v.Rows == nil {
			_, err := fmt.Fprintln(w, v.Text)
			return err
		}
		_, err := fmt.Fprintln(w, renderTable(v.Headers, v.Rows))
		return err
	default:
		return fmt.Errorf("unsupported output format %q (use text, json, yaml or table)", format)
	}
}

// renderTable draws rows with a rounded lipgloss border.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	return t.String()
}
