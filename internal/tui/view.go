package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	// Render the current scene
	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	// Wrap content with app styling and status bar
	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// Calculate available height for content
	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("FinWise - Financial Calculators")

	breadcrumb := m.currentScene.String()
	if m.kind != "" && m.currentScene != SceneHome && m.currentScene != SceneCompare {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.kind.Title())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("p", "parameters"),
		formatShortcut("r", "results"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	source := "Built-in rates"
	if m.configPath != "" {
		source = "Config: " + m.configPath
	}
	label := SubtitleStyle.Render(source)
	width := m.width - lipgloss.Width(statusText) - lipgloss.Width(label) - 2
	statusText = statusText + strings.Repeat(" ", max(1, width)) + label

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the spinner and loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(m.spinner.WithMessage(message).Render())

	return m.renderApp(content)
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)

	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
FinWise - Financial Calculators

KEYBOARD SHORTCUTS:
  h        Navigate to Home
  p        Navigate to Parameters
  r        Navigate to Results
  c        Navigate to Compare
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

HOME:
  ↑/↓      Choose a calculator
  Enter    Open it with default inputs

PARAMETERS:
  ↑/↓      Move between inputs
  ←/→      Adjust by one step (PgUp/PgDn for ten)
  d        Restore defaults
  Enter    Show full results

RESULTS AND COMPARE:
  f        Cycle export format
  e        Export a report file to the working directory
  n        Next table • t toggle table/chart
`

	return BorderStyle.Render(helpText)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
