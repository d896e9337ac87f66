package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/output"
	"github.com/rgehrsitz/finwise/internal/tui/components"
	"github.com/rgehrsitz/finwise/internal/tui/tuimsg"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

// visibleRows is how many table rows are shown at once.
const visibleRows = 10

// ResultsModel represents the results display scene
type ResultsModel struct {
	kind        domain.Kind
	report      domain.Report
	tableIndex  int
	rowOffset   int
	showChart   bool
	formats     []string
	formatIndex int
	status      string
	width       int
	height      int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{formats: output.AvailableFormatterNames()}
}

// SetResults updates the results to display
func (m *ResultsModel) SetResults(kind domain.Kind, report domain.Report) {
	m.kind = kind
	m.report = report
	m.tableIndex = 0
	m.rowOffset = 0
	m.status = ""
}

// Report returns the result on display
func (m *ResultsModel) Report() domain.Report {
	return m.report
}

// Format returns the selected export format
func (m *ResultsModel) Format() string {
	if len(m.formats) == 0 {
		return ""
	}
	return m.formats[m.formatIndex]
}

// SetStatus shows a one-line message such as the exported file path
func (m *ResultsModel) SetStatus(status string) {
	m.status = status
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.report == nil {
		return m, nil
	}

	tables := m.report.Tables()
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.tableIndex < len(tables) && m.rowOffset+visibleRows < len(tables[m.tableIndex].Rows) {
			m.rowOffset++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.rowOffset > 0 {
			m.rowOffset--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("n", "tab"))):
		if len(tables) > 0 {
			m.tableIndex = (m.tableIndex + 1) % len(tables)
			m.rowOffset = 0
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("t"))):
		m.showChart = !m.showChart
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("f"))):
		if len(m.formats) > 0 {
			m.formatIndex = (m.formatIndex + 1) % len(m.formats)
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("e"))):
		format := m.Format()
		return m, func() tea.Msg {
			return tuimsg.ExportRequestMsg{Format: format}
		}
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.report == nil {
		return renderNoResultsState()
	}

	sections := []string{
		renderResultsHeader(m.kind),
		"",
		renderKeyMetrics(m.report.Summary(), m.width),
	}

	if notes := (&output.Result{Kind: m.kind, Report: m.report}).Notes(); len(notes) > 0 {
		noteLines := make([]string, len(notes))
		for i, n := range notes {
			noteLines[i] = tuistyles.InfoStyle.Render("note: " + n)
		}
		sections = append(sections, "", strings.Join(noteLines, "\n"))
	}

	if tables := m.report.Tables(); len(tables) > 0 && m.tableIndex < len(tables) {
		table := tables[m.tableIndex]
		if m.showChart {
			sections = append(sections, "", renderTableChart(table))
		} else {
			sections = append(sections, "", renderTable(table, m.rowOffset))
		}
	}

	if m.status != "" {
		sections = append(sections, "", tuistyles.InfoStyle.Render(m.status))
	}
	sections = append(sections, "", renderResultsHelp(m.Format()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNoResultsState renders empty state
func renderNoResultsState() string {
	return `No results to display.

Please calculate first from the Parameters screen (press Enter there).

Press ESC to go back.`
}

// renderResultsHeader renders the header with the calculator name
func renderResultsHeader(kind domain.Kind) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Calculation Results"),
		subtitleStyle.Render("Calculator: "+kind.Title()),
	)
}

// renderKeyMetrics renders the summary metrics as cards
func renderKeyMetrics(metrics []domain.Metric, width int) string {
	if len(metrics) == 0 {
		return "No summary metrics available."
	}
	columns := 3
	if width > 0 && width < 100 {
		columns = 2
	}
	return components.MetricGrid(components.MetricCards(metrics, 30), columns)
}

// renderTable renders a window of a report table with right-aligned cells
func renderTable(table domain.Table, offset int) string {
	end := offset + visibleRows
	if end > len(table.Rows) {
		end = len(table.Rows)
	}
	header := table.Header()
	widths := make([]int, len(header))
	for i, name := range header {
		widths[i] = len([]rune(name))
	}
	cells := make([][]string, 0, end-offset)
	for r := offset; r < end; r++ {
		line := table.Cells(r, output.FormatValue)
		for i, cell := range line {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
		cells = append(cells, line)
	}

	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(table.Title))
	content.WriteString("\n\n")

	total := 0
	for i, name := range header {
		header[i] = fmt.Sprintf("%*s", widths[i], name)
		total += widths[i] + 2
	}
	content.WriteString(tuistyles.TableHeaderStyle.Render(strings.Join(header, "  ")))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", total))
	content.WriteString("\n")

	for _, row := range cells {
		line := make([]string, len(row))
		for i, cell := range row {
			line[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
		content.WriteString(tuistyles.TableCellStyle.Render(strings.Join(line, "  ")))
		content.WriteString("\n")
	}

	if len(table.Rows) > visibleRows {
		moreStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(moreStyle.Render(fmt.Sprintf("rows %d-%d of %d", offset+1, end, len(table.Rows))))
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)
	return tableStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// renderTableChart plots up to two currency columns of a table
func renderTableChart(table domain.Table) string {
	// Unlabelled tables use their first column as the X-axis.
	first := 1
	if table.HasLabels() {
		first = 0
	}
	var columns []int
	for i, c := range table.Columns {
		if i >= first && c.Format == domain.FormatCurrency && len(columns) < 2 {
			columns = append(columns, i)
		}
	}
	if len(columns) == 0 || len(table.Rows) < 2 {
		return tuistyles.InfoStyle.Render("Nothing to chart in " + table.Title)
	}
	return components.TableChart(table, columns...).WithSize(70, 12).Render()
}

// renderResultsHelp renders keyboard shortcuts
func renderResultsHelp(format string) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render(fmt.Sprintf(
		"↑/↓ scroll • n next table • t table/chart • f format (%s) • e export • ESC back", format))
}
