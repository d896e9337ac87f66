package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/config"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/output"
	"github.com/rgehrsitz/finwise/internal/tui/components"
	"github.com/rgehrsitz/finwise/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and engines
	configPath    string
	engine        *calculation.CalculationEngine
	compareEngine *compare.CompareEngine

	// Current selections
	kind   domain.Kind
	values map[string]string

	// Scene-specific models
	homeModel       *scenes.HomeModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
	spinner        *components.Spinner
}

// NewModel creates a model that loads its engine from configPath. An empty
// path uses the built-in rates.
func NewModel(configPath string) Model {
	return Model{
		currentScene:    SceneHome,
		configPath:      configPath,
		homeModel:       scenes.NewHomeModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
		spinner:         components.NewSpinner(),
		loading:         true,
		loadingMessage:  "Loading rates...",
		width:           80,
		height:          24,
	}
}

// NewModelWithEngine creates a model around an engine that is already configured.
func NewModelWithEngine(engine *calculation.CalculationEngine) Model {
	m := NewModel("")
	m.engine = engine
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		engine := m.engine
		return func() tea.Msg {
			return EngineLoadedMsg{Engine: engine}
		}
	}
	return tea.Batch(loadEngineCmd(m.configPath), tickCmd())
}

// loadEngineCmd returns a command that builds the engine from the config file
func loadEngineCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return EngineLoadedMsg{Engine: calculation.NewCalculationEngine()}
		}
		engine, err := config.NewInputParser().LoadEngine(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return EngineLoadedMsg{Engine: engine}
	}
}

// calculateCmd runs a calculator on the slider values
func calculateCmd(engine *calculation.CalculationEngine, kind domain.Kind, values map[string]string, preview bool) tea.Cmd {
	return func() tea.Msg {
		report, err := engine.CalculateFrom(kind, calculation.BuildInputNode(values).Decode)
		return CalculationCompleteMsg{
			Kind:    kind,
			Values:  values,
			Report:  report,
			Preview: preview,
			Err:     err,
		}
	}
}

// compareCmd runs a comparison. Nil values compare the engine defaults.
func compareCmd(ce *compare.CompareEngine, subject compare.Subject, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		var decode calculation.Decoder
		if values != nil {
			decode = calculation.BuildInputNode(values).Decode
		}
		set, err := ce.Compare(context.Background(), subject, decode)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// exportCmd writes a report file into the working directory
func exportCmd(format string, res *output.Result) tea.Cmd {
	return func() tea.Msg {
		formatter := output.GetFormatterByName(format)
		if formatter == nil {
			return ExportCompleteMsg{Err: fmt.Errorf("unknown format %q", format)}
		}
		path, err := output.WriteFormatted(formatter, res, output.Extension(format))
		return ExportCompleteMsg{Path: path, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneParameters:
		return "Parameters"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
