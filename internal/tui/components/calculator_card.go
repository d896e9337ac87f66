package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

// CalculatorCard displays a compact calculator overview
type CalculatorCard struct {
	Name        string
	Key         string // calculator kind, e.g. "housing_loan"
	Description string
	Highlights  []string
	IsSelected  bool
	Width       int
}

// NewCalculatorCard creates a new calculator card
func NewCalculatorCard(name, key string) *CalculatorCard {
	return &CalculatorCard{
		Name:       name,
		Key:        key,
		Highlights: []string{},
		Width:      50,
	}
}

// WithDescription adds a description
func (c *CalculatorCard) WithDescription(desc string) *CalculatorCard {
	c.Description = desc
	return c
}

// AddHighlight adds a key input or output
func (c *CalculatorCard) AddHighlight(highlight string) *CalculatorCard {
	c.Highlights = append(c.Highlights, highlight)
	return c
}

// SetSelected marks the card as selected
func (c *CalculatorCard) SetSelected(selected bool) *CalculatorCard {
	c.IsSelected = selected
	return c
}

// WithWidth sets the card width
func (c *CalculatorCard) WithWidth(width int) *CalculatorCard {
	c.Width = width
	return c
}

// Render returns the styled calculator card
func (c *CalculatorCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(c.Name))
	content.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)
	content.WriteString(keyStyle.Render("→ " + c.Key))
	content.WriteString("\n")

	if c.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground)
		content.WriteString(descStyle.Render(c.Description))
		content.WriteString("\n")
	}

	if len(c.Highlights) > 0 {
		content.WriteString("\n")
		highlightStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted)
		for _, h := range c.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if c.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(c.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a compact single-line version
func (c *CalculatorCard) RenderCompact() string {
	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Name),
	}

	mutedStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	if c.Description != "" {
		parts = append(parts, mutedStyle.Render("- "+c.Description))
	}

	// First highlight only
	if len(c.Highlights) > 0 {
		parts = append(parts, mutedStyle.Render("• "+c.Highlights[0]))
	}

	return strings.Join(parts, " ")
}

// CalculatorListCompact renders a compact list for selection menus
func CalculatorListCompact(cards []*CalculatorCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No calculators available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle

		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}

		rendered[i] = style.Render(fmt.Sprintf("%s%s", prefix, card.RenderCompact()))
	}

	return strings.Join(rendered, "\n")
}
