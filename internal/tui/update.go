package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/output"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	// Custom messages
	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case EngineLoadedMsg:
		m.engine = msg.Engine
		m.compareEngine = nil
		if m.engine != nil {
			m.compareEngine = compare.NewCompareEngine(m.engine)
			m.homeModel.SetKinds(m.engine.Kinds())
		}
		m.loading = false
		return m, nil

	case KindSelectedMsg:
		if m.engine == nil || msg.Kind == "" {
			return m, nil
		}
		m.kind = msg.Kind
		m.parametersModel.SetKind(msg.Kind, m.engine.Ranges(msg.Kind))
		m.values = m.parametersModel.Values()
		m.navigate(SceneParameters)
		return m, calculateCmd(m.engine, m.kind, m.values, true)

	case InputChangedMsg:
		if m.engine == nil {
			return m, nil
		}
		m.values = msg.Values
		return m, calculateCmd(m.engine, msg.Kind, msg.Values, true)

	case CalculationStartedMsg:
		if m.engine == nil {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Calculating " + msg.Kind.Title() + "..."
		return m, calculateCmd(m.engine, msg.Kind, msg.Values, false)

	case CalculationCompleteMsg:
		if msg.Preview {
			// Drop results for a calculator that is no longer open.
			if msg.Kind == m.parametersModel.Kind() {
				m.parametersModel.SetPreview(msg.Report, msg.Err)
			}
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.parametersModel.SetPreview(nil, msg.Err)
			return m, nil
		}
		m.resultsModel.SetResults(msg.Kind, msg.Report)
		m.navigate(SceneResults)
		return m, nil

	case ComparisonStartedMsg:
		if m.compareEngine == nil {
			return m, nil
		}
		var values map[string]string
		if m.kind == msg.Subject.Kind() {
			values = m.values
		}
		return m, compareCmd(m.compareEngine, msg.Subject, values)

	case ComparisonCompleteMsg:
		m.compareModel.SetResults(msg.Set, msg.Err)
		return m, nil

	case ExportRequestMsg:
		if msg.Comparison {
			set := m.compareModel.Results()
			if set == nil {
				return m, nil
			}
			return m, exportCmd(msg.Format, &output.Result{Kind: set.Subject.Kind(), Report: set})
		}
		report := m.resultsModel.Report()
		if report == nil {
			return m, nil
		}
		return m, exportCmd(msg.Format, &output.Result{Kind: m.kind, Report: report})

	case ExportCompleteMsg:
		status := "Saved " + msg.Path
		if msg.Err != nil {
			status = "Export failed: " + msg.Err.Error()
		}
		if m.currentScene == SceneCompare {
			m.compareModel.SetStatus(status)
		} else {
			m.resultsModel.SetStatus(status)
		}
		return m, nil

	case TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner.Next()
		return m, tickCmd()
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

func (m *Model) navigate(scene Scene) {
	if scene == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// Global keyboard shortcuts
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		return m, navigateCmd(SceneHelp)

	case "esc":
		// Go back to previous scene or home
		if m.currentScene != SceneHome {
			if m.previousScene != m.currentScene {
				return m, navigateCmd(m.previousScene)
			}
			return m, navigateCmd(SceneHome)
		}
		return m, nil

	case "h":
		if m.currentScene != SceneHome {
			return m, navigateCmd(SceneHome)
		}

	case "p":
		if m.currentScene != SceneParameters {
			return m, navigateCmd(SceneParameters)
		}

	case "r":
		if m.currentScene != SceneResults {
			return m, navigateCmd(SceneResults)
		}

	case "c":
		if m.currentScene != SceneCompare {
			return m, navigateCmd(SceneCompare)
		}
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

func navigateCmd(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
