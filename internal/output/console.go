package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	noteStyle    = lipgloss.NewStyle().Italic(true)
)

// ConsoleFormatter renders a result as aligned plain text. SummaryOnly
// suppresses the schedule tables.
type ConsoleFormatter struct {
	SummaryOnly bool
}

func (c ConsoleFormatter) Name() string {
	if c.SummaryOnly {
		return "summary"
	}
	return "console"
}

func (c ConsoleFormatter) Format(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	title := strings.ToUpper(res.Kind.Title())
	fmt.Fprintln(&buf, titleStyle.Render(title))
	fmt.Fprintln(&buf, strings.Repeat("=", lipgloss.Width(title)))

	summary := res.Report.Summary()
	labelWidth := 0
	for _, m := range summary {
		if w := lipgloss.Width(m.Label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, m := range summary {
		fmt.Fprintf(&buf, "%s  %s\n", padRight(m.Label+":", labelWidth+1), FormatMetric(m))
	}

	if notes := res.Notes(); len(notes) > 0 {
		fmt.Fprintln(&buf)
		for _, n := range notes {
			fmt.Fprintln(&buf, noteStyle.Render("note: "+n))
		}
	}

	if c.SummaryOnly {
		return buf.Bytes(), nil
	}
	for _, t := range res.Report.Tables() {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render(t.Title))
		cells := make([][]string, 0, len(t.Rows)+1)
		cells = append(cells, t.Header())
		for r := range t.Rows {
			cells = append(cells, t.Cells(r, FormatValue))
		}
		writeColumns(&buf, cells)
	}
	return buf.Bytes(), nil
}

// writeColumns right-aligns every column to its widest cell.
func writeColumns(buf *bytes.Buffer, cells [][]string) {
	if len(cells) == 0 {
		return
	}
	widths := make([]int, len(cells[0]))
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range cells {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = padLeft(cell, widths[i])
		}
		fmt.Fprintln(buf, strings.Join(parts, "  "))
	}
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
