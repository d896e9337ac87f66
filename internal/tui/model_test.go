package tui

import (
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/domain"
)

// loadedModel returns a model whose engine has finished loading.
func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModelWithEngine(calculation.NewCalculationEngine())
	cmd := m.Init()
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run delivers msg and then the message its command produces, once.
func run(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	return update(t, m, out), out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_EngineLoaded(t *testing.T) {
	m := NewModelWithEngine(calculation.NewCalculationEngine())
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading rates...")

	m = loadedModel(t)

	assert.False(t, m.loading)
	assert.NotNil(t, m.compareEngine)
	assert.Equal(t, domain.KindEMI, m.homeModel.Selected())
	assert.Contains(t, m.View(), "Calculators (16)")
}

func TestModel_LoadEngineFromFile(t *testing.T) {
	msg := loadEngineCmd("does-not-exist.yaml")()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", msg)
	assert.Error(t, errMsg.Err)

	msg = loadEngineCmd("")()
	loaded, ok := msg.(EngineLoadedMsg)
	require.True(t, ok)
	assert.NotNil(t, loaded.Engine)
}

func TestModel_SelectCalculatorShowsPreview(t *testing.T) {
	m := loadedModel(t)

	m, out := run(t, m, key("enter"))
	require.IsType(t, KindSelectedMsg{}, out)
	assert.Equal(t, SceneParameters, m.currentScene)
	assert.Equal(t, domain.KindEMI, m.kind)
	assert.Equal(t, "1000000", m.values["principal"])

	// KindSelectedMsg queues the preview calculation.
	next, cmd := m.Update(out)
	m = next.(Model)
	require.NotNil(t, cmd)
	done, ok := cmd().(CalculationCompleteMsg)
	require.True(t, ok)
	assert.True(t, done.Preview)
	require.NoError(t, done.Err)

	m = update(t, m, done)
	view := m.View()
	assert.Contains(t, view, "Live Result")
	assert.Contains(t, view, "Monthly EMI")
	assert.Contains(t, view, "₹12,398.57")
}

func TestModel_SliderChangeRecalculates(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindEMI})

	m, out := run(t, m, key("right"))
	changed, ok := out.(InputChangedMsg)
	require.True(t, ok, "expected InputChangedMsg, got %T", out)
	assert.Equal(t, "1010000", changed.Values["principal"])

	next, cmd := m.Update(changed)
	m = next.(Model)
	assert.Equal(t, "1010000", m.values["principal"])
	require.NotNil(t, cmd)
	done := cmd().(CalculationCompleteMsg)
	require.NoError(t, done.Err)
	assert.True(t, done.Preview)
}

func TestModel_PreviewShowsValidationError(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindMarriage})

	values := m.parametersModel.Values()
	values["child_age"] = "20"
	values["marriage_age"] = "18"
	m, out := run(t, m, InputChangedMsg{Kind: domain.KindMarriage, Values: values})

	done := out.(CalculationCompleteMsg)
	require.Error(t, done.Err)
	assert.True(t, errors.Is(done.Err, domain.ErrInvalidInput))
	assert.Contains(t, m.View(), "marriage_age")
}

func TestModel_StalePreviewIsDropped(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindSIP})

	m = update(t, m, CalculationCompleteMsg{Kind: domain.KindEMI, Preview: true, Err: errors.New("stale")})

	assert.NotContains(t, m.View(), "stale")
}

func TestModel_EnterOpensResults(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindHousingLoan})

	m, out := run(t, m, key("enter"))
	started, ok := out.(CalculationStartedMsg)
	require.True(t, ok, "expected CalculationStartedMsg, got %T", out)
	assert.Equal(t, domain.KindHousingLoan, started.Kind)

	next, cmd := m.Update(started)
	m = next.(Model)
	assert.True(t, m.loading)
	m = update(t, m, cmd())

	assert.False(t, m.loading)
	assert.Equal(t, SceneResults, m.currentScene)
	require.NotNil(t, m.resultsModel.Report())
	view := m.View()
	assert.Contains(t, view, "Calculator: Housing Loan")
	assert.Contains(t, view, "Amortization Schedule")
}

func TestModel_CompareUsesOpenCalculatorInputs(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindRewards})
	m.values["card_id"] = "reward-max-pro"

	m, out := run(t, m, ComparisonStartedMsg{Subject: compare.SubjectCards})
	done, ok := out.(ComparisonCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	set := m.compareModel.Results()
	require.NotNil(t, set)
	assert.Equal(t, "reward-max-pro", set.BaseName)

	m = update(t, m, NavigateMsg{Scene: SceneCompare})
	view := m.View()
	assert.Contains(t, view, "Credit Card Comparison")
	assert.Contains(t, view, "Recommendations")
}

func TestModel_CompareDefaultsWhenAnotherCalculatorIsOpen(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindSIP})

	m, _ = run(t, m, ComparisonStartedMsg{Subject: compare.SubjectCloud})

	set := m.compareModel.Results()
	require.NotNil(t, set)
	assert.Equal(t, domain.ProviderAWS, set.BaseName)
	assert.Len(t, set.All(), 3)
}

func TestModel_Export(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	m := loadedModel(t)
	m = update(t, m, KindSelectedMsg{Kind: domain.KindSIP})
	m, _ = run(t, m, CalculationStartedMsg{Kind: domain.KindSIP, Values: m.values})
	require.Equal(t, SceneResults, m.currentScene)

	m, out := run(t, m, ExportRequestMsg{Format: "csv"})
	done, ok := out.(ExportCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Regexp(t, `^sip_report_\d{8}_\d{6}\.csv$`, done.Path)
	_, err := os.Stat(done.Path)
	assert.NoError(t, err)
	assert.Contains(t, m.View(), "Saved "+done.Path)

	_, out = run(t, m, ExportRequestMsg{Format: "pdf"})
	assert.Error(t, out.(ExportCompleteMsg).Err)
}

func TestModel_ExportWithoutResultsDoesNothing(t *testing.T) {
	m := loadedModel(t)

	_, cmd := m.Update(ExportRequestMsg{Format: "json"})
	assert.Nil(t, cmd)
	_, cmd = m.Update(ExportRequestMsg{Format: "json", Comparison: true})
	assert.Nil(t, cmd)
}

func TestModel_GlobalKeys(t *testing.T) {
	m := loadedModel(t)

	tests := []struct {
		key   string
		scene Scene
	}{
		{"?", SceneHelp},
		{"c", SceneCompare},
		{"p", SceneParameters},
		{"r", SceneResults},
		{"h", SceneHome},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			next, _ := run(t, m, key(tt.key))
			assert.Equal(t, tt.scene, next.currentScene)
		})
	}

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_EscGoesBack(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, NavigateMsg{Scene: SceneCompare})
	m = update(t, m, NavigateMsg{Scene: SceneHelp})

	m, _ = run(t, m, key("esc"))

	assert.Equal(t, SceneCompare, m.currentScene)
}

func TestModel_ErrorIsDismissedByAnyKey(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, ErrorMsg{Err: errors.New("bad rates file")})
	assert.Contains(t, m.View(), "Error: bad rates file")

	m = update(t, m, key("x"))

	assert.Nil(t, m.err)
	assert.Equal(t, SceneHome, m.currentScene)
}

func TestModel_WindowSize(t *testing.T) {
	m := loadedModel(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Home", SceneHome.String())
	assert.Equal(t, "Compare", SceneCompare.String())
	assert.Equal(t, "Unknown", Scene(99).String())
}
