package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/tui/components"
	"github.com/rgehrsitz/finwise/internal/tui/tuimsg"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

// previewMetrics caps the live summary shown beside the sliders.
const previewMetrics = 6

// ParametersModel edits the inputs of one calculator with live recalculation
type ParametersModel struct {
	kind          domain.Kind
	ranges        []calculation.FieldRange
	sliders       []*components.ParameterSlider
	focusedSlider int
	preview       domain.Report
	previewErr    error
	width         int
	height        int
	modified      bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetKind switches to a calculator and builds its sliders from ranges.
func (m *ParametersModel) SetKind(kind domain.Kind, ranges []calculation.FieldRange) {
	m.kind = kind
	m.ranges = ranges
	m.preview = nil
	m.previewErr = nil
	m.buildSliders()
}

// Kind returns the calculator being edited
func (m *ParametersModel) Kind() domain.Kind {
	return m.kind
}

// buildSliders creates one slider per field range, at its default
func (m *ParametersModel) buildSliders() {
	m.sliders = make([]*components.ParameterSlider, 0, len(m.ranges))
	for _, r := range m.ranges {
		m.sliders = append(m.sliders, sliderFor(r))
	}
	m.focusedSlider = 0
	m.modified = false
	if len(m.sliders) > 0 {
		m.sliders[0].SetFocused(true)
	}
}

func sliderFor(r calculation.FieldRange) *components.ParameterSlider {
	if r.IsChoice() || r.DefaultOption != "" {
		options := r.Options
		if len(options) == 0 {
			options = []string{r.DefaultOption}
		}
		return components.NewChoiceSlider(r.Label, options, r.DefaultOption).
			WithField(r.Field).
			WithWidth(40)
	}

	s := components.NewParameterSlider(r.Label,
		r.Default.InexactFloat64(), r.Min.InexactFloat64(), r.Max.InexactFloat64(), r.Step.InexactFloat64()).
		WithField(r.Field).
		WithWidth(40)
	switch {
	case r.Unit == "", r.Unit == "%":
		s.WithUnit(r.Unit)
	case strings.HasPrefix(r.Unit, "₹"):
		s.WithPrefix("₹").WithUnit(strings.TrimPrefix(r.Unit, "₹"))
	default:
		s.WithUnit(" " + r.Unit)
	}
	return s
}

// Values returns the slider values keyed by input field path.
func (m *ParametersModel) Values() map[string]string {
	values := make(map[string]string, len(m.sliders))
	for _, s := range m.sliders {
		values[s.Field] = s.RawValue()
	}
	return values
}

// Sliders exposes the sliders for rendering and tests
func (m *ParametersModel) Sliders() []*components.ParameterSlider {
	return m.sliders
}

// SetPreview shows the latest live result, or the reason there is none.
func (m *ParametersModel) SetPreview(report domain.Report, err error) {
	m.preview = report
	m.previewErr = err
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "-"))):
		return m, m.adjust(-1)

	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "+", "="))):
		return m, m.adjust(1)

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+left", "pgdown"))):
		return m, m.adjust(-10)

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+right", "pgup"))):
		return m, m.adjust(10)

	case key.Matches(msg, key.NewBinding(key.WithKeys("d"))):
		// Reset to defaults
		m.buildSliders()
		return m, m.inputChanged()

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		kind, values := m.kind, m.Values()
		return m, func() tea.Msg {
			return tuimsg.CalculationStartedMsg{Kind: kind, Values: values}
		}
	}

	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[m.focusedSlider].SetFocused(true)
}

// adjust moves the focused slider n steps and requests a live recalculation
func (m *ParametersModel) adjust(n int) tea.Cmd {
	slider := m.sliders[m.focusedSlider]
	before := slider.RawValue()
	slider.IncrementBy(n)
	if slider.RawValue() == before {
		return nil
	}
	m.modified = true
	return m.inputChanged()
}

func (m *ParametersModel) inputChanged() tea.Cmd {
	kind, values := m.kind, m.Values()
	return func() tea.Msg {
		return tuimsg.InputChangedMsg{Kind: kind, Values: values}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if m.kind == "" {
		return renderNoCalculatorState()
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		Render(m.kind.Title())

	body := renderSliders(m.sliders)
	preview := m.renderPreview()
	if m.width >= 110 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", preview)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", preview)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		"",
		renderParameterStatus(m.modified),
		renderParameterHelp(),
	)
}

// renderNoCalculatorState renders empty state
func renderNoCalculatorState() string {
	return `No calculator selected.

Please pick a calculator on the Home screen (press 'h').

Press ESC to return to home.`
}

// renderSliders shows the focused slider in full and the rest on one line each
func renderSliders(sliders []*components.ParameterSlider) string {
	if len(sliders) == 0 {
		return "This calculator has no adjustable inputs."
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(60)

	rendered := make([]string, 0, len(sliders))
	for _, slider := range sliders {
		if slider.IsFocused {
			rendered = append(rendered, "", slider.Render(), "")
			continue
		}
		rendered = append(rendered, slider.RenderCompact())
	}

	return containerStyle.Render(strings.Trim(strings.Join(rendered, "\n"), "\n"))
}

func (m *ParametersModel) renderPreview() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Width(44)

	title := tuistyles.TableHeaderStyle.Render("Live Result")
	if m.previewErr != nil {
		return style.Render(title + "\n\n" + tuistyles.ErrorStyle.Render(m.previewErr.Error()))
	}
	if m.preview == nil {
		return style.Render(title + "\n\n" + tuistyles.InfoStyle.Render("Calculating..."))
	}

	metrics := m.preview.Summary()
	if len(metrics) > previewMetrics {
		metrics = metrics[:previewMetrics]
	}
	lines := []string{title, ""}
	for _, card := range components.MetricCards(metrics, 0) {
		lines = append(lines, card.RenderCompact())
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderParameterStatus renders modification status
func renderParameterStatus(modified bool) string {
	if !modified {
		return ""
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Bold(true)

	return statusStyle.Render("⚠ Modified - Enter for full results, 'd' to restore defaults")
}

// renderParameterHelp renders keyboard shortcuts
func renderParameterHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("↑/↓ navigate • ←/→ adjust • PgUp/PgDn ×10 • Enter results • d defaults • ESC back")
}
