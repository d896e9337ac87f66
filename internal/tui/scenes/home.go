package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/tui/components"
	"github.com/rgehrsitz/finwise/internal/tui/tuimsg"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

var kindDescriptions = map[domain.Kind]string{
	domain.KindEMI:          "monthly instalment and amortization",
	domain.KindPersonalLoan: "EMI with processing fee",
	domain.KindHousingLoan:  "EMI with yearly schedule",
	domain.KindGoldLoan:     "eligible loan against gold",
	domain.KindSIP:          "monthly investment growth",
	domain.KindInflation:    "future cost of today's rupee",
	domain.KindMarriage:     "wedding corpus and monthly SIP",
	domain.KindSSY:          "girl child savings at maturity",
	domain.KindNPS:          "corpus, lump sum and pension",
	domain.KindPF:           "EPF balance at retirement",
	domain.KindGratuity:     "gratuity under the Act",
	domain.KindTax:          "old vs new regime",
	domain.KindCloudCost:    "AWS, Azure and GCP pricing",
	domain.KindCarbon:       "annual CO2 and trees to offset",
	domain.KindRewards:      "card points and net benefit",
	domain.KindCurrency:     "convert between currencies",
}

// HomeModel is the calculator picker
type HomeModel struct {
	kinds         []domain.Kind
	cards         []*components.CalculatorCard
	selectedIndex int
	width         int
	height        int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetKinds updates the list of calculators
func (m *HomeModel) SetKinds(kinds []domain.Kind) {
	m.kinds = kinds
	m.cards = make([]*components.CalculatorCard, 0, len(kinds))
	for _, k := range kinds {
		m.cards = append(m.cards, components.NewCalculatorCard(k.Title(), string(k)).
			WithDescription(kindDescriptions[k]))
	}
	if m.selectedIndex >= len(kinds) {
		m.selectedIndex = 0
	}
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted calculator, or "" when none are loaded.
func (m *HomeModel) Selected() domain.Kind {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.kinds) {
		return m.kinds[m.selectedIndex]
	}
	return ""
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.kinds) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.kinds)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g", "home"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G", "end"))):
		m.selectedIndex = len(m.kinds) - 1
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		kind := m.Selected()
		return m, func() tea.Msg {
			return tuimsg.KindSelectedMsg{Kind: kind}
		}
	}
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("FinWise - Financial Calculators"))
	content.WriteString("\n\n")

	if len(m.kinds) == 0 {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString(subtleStyle.Render("Loading calculators..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary)
	content.WriteString(sectionStyle.Render(fmt.Sprintf("Calculators (%d)", len(m.kinds))))
	content.WriteString("\n")
	content.WriteString(components.CalculatorListCompact(m.cards, m.selectedIndex))
	content.WriteString("\n\n")

	content.WriteString(m.renderQuickActions())

	return tuistyles.BorderStyle.Render(content.String())
}

// renderQuickActions shows available navigation shortcuts
func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder

	keyStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	actions := []struct {
		key  string
		desc string
	}{
		{"enter", "Open the selected calculator"},
		{"c", "Compare cloud providers or credit cards"},
		{"?", "Show help"},
	}

	for _, action := range actions {
		content.WriteString("  ")
		content.WriteString(keyStyle.Render(action.key))
		content.WriteString(descStyle.Render("  " + action.desc))
		content.WriteString("\n")
	}

	return strings.TrimRight(content.String(), "\n")
}
