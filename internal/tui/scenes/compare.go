package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/output"
	"github.com/rgehrsitz/finwise/internal/tui/components"
	"github.com/rgehrsitz/finwise/internal/tui/tuimsg"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

var subjectDescriptions = map[compare.Subject]string{
	compare.SubjectCloud: "Price the cloud usage on every provider",
	compare.SubjectCards: "Accrue the monthly spend on every credit card",
}

// CompareModel represents the provider and card comparison scene
type CompareModel struct {
	subjects    []compare.Subject
	cursorIndex int
	comparing   bool
	results     *compare.ComparisonSet
	err         error
	formats     []string
	formatIndex int
	status      string
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{
		subjects: []compare.Subject{compare.SubjectCloud, compare.SubjectCards},
		formats:  output.AvailableFormatterNames(),
	}
}

// SetResults stores comparison results
func (m *CompareModel) SetResults(results *compare.ComparisonSet, err error) {
	m.results = results
	m.err = err
	m.comparing = false
	m.status = ""
}

// Results returns the comparison on display
func (m *CompareModel) Results() *compare.ComparisonSet {
	return m.results
}

// SetStatus shows a one-line message such as the exported file path
func (m *CompareModel) SetStatus(status string) {
	m.status = status
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Format returns the selected export format
func (m *CompareModel) Format() string {
	if len(m.formats) == 0 {
		return ""
	}
	return m.formats[m.formatIndex]
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursorIndex > 0 {
				m.cursorIndex--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursorIndex < len(m.subjects)-1 {
				m.cursorIndex++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			m.comparing = true
			subject := m.subjects[m.cursorIndex]
			return m, func() tea.Msg {
				return tuimsg.ComparisonStartedMsg{Subject: subject}
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
			// Clear results
			m.results = nil
			m.err = nil
			m.status = ""
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("f"))):
			if len(m.formats) > 0 {
				m.formatIndex = (m.formatIndex + 1) % len(m.formats)
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("e"))):
			if m.results == nil {
				return m, nil
			}
			format := m.Format()
			return m, func() tea.Msg {
				return tuimsg.ExportRequestMsg{Format: format, Comparison: true}
			}
		}
	}

	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.comparing {
		return m.renderLoading()
	}

	var content strings.Builder
	content.WriteString(m.renderSelection())

	switch {
	case m.err != nil:
		content.WriteString("\n\n")
		content.WriteString(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	case m.results != nil:
		content.WriteString("\n\n")
		content.WriteString(m.renderComparison())
	}

	if m.status != "" {
		content.WriteString("\n\n")
		content.WriteString(tuistyles.InfoStyle.Render(m.status))
	}

	content.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(helpStyle.Render(fmt.Sprintf(
		"↑/↓ choose • Enter compare • x clear • f format (%s) • e export • ESC back", m.Format())))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderSelection shows the comparison subjects
func (m *CompareModel) renderSelection() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Compare"))
	content.WriteString("\n")
	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
	content.WriteString(subtleStyle.Render("Uses the inputs from the matching calculator when it is open"))
	content.WriteString("\n\n")

	for i, subject := range m.subjects {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.cursorIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		content.WriteString(style.Render(fmt.Sprintf("%s%-6s %s", prefix, subject, subjectDescriptions[subject])))
		if i < len(m.subjects)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// renderLoading shows comparison in progress
func (m *CompareModel) renderLoading() string {
	spinner := components.NewSpinner().WithMessage("Comparing...")
	return tuistyles.BorderStyle.Render(spinner.Render())
}

// renderComparison ranks every alternative with a bar scaled to the largest
// annual figure and the change against the base.
func (m *CompareModel) renderComparison() string {
	set := m.results
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary)
	content.WriteString(titleStyle.Render(set.Title))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("Base: " + set.BaseName + " • " + set.AnnualLabel))
	content.WriteString("\n\n")

	all := set.All()
	largest := decimal.Zero
	for _, r := range all {
		if a := r.Annual.Abs(); a.GreaterThan(largest) {
			largest = a
		}
	}

	nameWidth := 18
	for _, r := range all {
		name := truncate(r.Name, nameWidth)
		line := fmt.Sprintf("#%d %s %14s ", r.Rank, padRight(name, nameWidth), output.FormatCurrency(r.Annual))
		bar := components.NewProgressBar(r.Annual.Abs().InexactFloat64(), largest.InexactFloat64()).WithWidth(20)
		bar.ShowPercent = false
		if r.Annual.IsNegative() {
			bar.WithColor(tuistyles.ColorDanger)
		}
		line += bar.Render()

		if r.Name == set.BaseName {
			line += " " + tuistyles.SubtitleStyle.Render("base")
		} else {
			improves := r.DiffFromBase.IsPositive()
			if set.LowerIsBetter {
				improves = r.DiffFromBase.IsNegative()
			}
			line += " " + components.NewMetricCard("vs base", signedCurrency(r.DiffFromBase)).
				WithTrend(improves, output.FormatPercentage(r.PctFromBase)).
				RenderCompact()
		}
		content.WriteString(line)
		content.WriteString("\n")
		for _, note := range r.Notes {
			content.WriteString(tuistyles.InfoStyle.Render("   note: " + note))
			content.WriteString("\n")
		}
	}

	if len(set.Recommendations) > 0 {
		content.WriteString("\n")
		content.WriteString(tuistyles.TableHeaderStyle.Render("Recommendations"))
		content.WriteString("\n")
		for _, rec := range set.Recommendations {
			content.WriteString("• " + rec + "\n")
		}
	}

	return strings.TrimRight(content.String(), "\n")
}

func signedCurrency(v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + output.FormatCurrency(v)
	}
	return output.FormatCurrency(v)
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
