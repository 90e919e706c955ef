// Package cli provides table helpers for human-readable output.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

const tablePadding = 2

var styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)

// writeTable aligns rows on tab stops and styles the header line. Styling is
// applied after alignment so escape sequences do not count toward column
// widths. Styled body cells are still measured with their escapes, so body
// columns are only exact when color is disabled.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	var buf bytes.Buffer
	writer := tabwriter.NewWriter(&buf, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	table := buf.String()
	if len(headers) > 0 {
		header, body, _ := strings.Cut(table, "\n")
		table = styleHeader.Render(header) + "\n" + body
	}
	_, err := io.WriteString(out, table)
	return err
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
