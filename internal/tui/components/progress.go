package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finwise/internal/tui/tuistyles"
)

// ProgressBar shows a part of a whole, such as one provider's cost against
// the most expensive provider or the share of interest in total repayment.
type ProgressBar struct {
	Current     float64
	Total       float64
	Width       int
	Label       string
	Color       lipgloss.Color
	ShowPercent bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total float64) *ProgressBar {
	return &ProgressBar{
		Current:     current,
		Total:       total,
		Width:       40,
		Color:       tuistyles.ColorSuccess,
		ShowPercent: true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// WithColor sets the filled colour
func (p *ProgressBar) WithColor(color lipgloss.Color) *ProgressBar {
	p.Color = color
	return p
}

// Update updates the progress
func (p *ProgressBar) Update(current float64) {
	p.Current = current
}

// Percentage returns the completion percentage, clamped to [0, 100].
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 || p.Current <= 0 {
		return 0
	}
	pct := p.Current / p.Total * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsComplete returns true if progress is at 100%
func (p *ProgressBar) IsComplete() bool {
	return p.Total > 0 && p.Current >= p.Total
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(p.Label))
		content.WriteString("\n")
	}

	percentage := p.Percentage()
	filled := int(float64(p.Width) * percentage / 100)
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	barStyle := lipgloss.NewStyle().Foreground(p.Color)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	if p.ShowPercent {
		percentStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorPrimary).
			Bold(true)
		content.WriteString(" ")
		content.WriteString(percentStyle.Render(fmt.Sprintf("%.1f%%", percentage)))
	}

	return content.String()
}

// Spinner represents an animated spinner for loading states
type Spinner struct {
	Frame   int
	Message string
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// WithMessage sets the spinner message
func (s *Spinner) WithMessage(message string) *Spinner {
	s.Message = message
	return s
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current spinner frame
func (s *Spinner) Render() string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := frames[s.Frame%len(frames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)

	rendered := spinnerStyle.Render(frame)

	if s.Message != "" {
		messageStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
		rendered += " " + messageStyle.Render(s.Message)
	}

	return rendered
}
