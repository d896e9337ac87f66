package tui

import (
	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneParameters
	SceneResults
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// EngineLoadedMsg signals the calculation engine is configured and ready
type EngineLoadedMsg struct {
	Engine *calculation.CalculationEngine
}

// TickMsg advances the loading spinner
type TickMsg struct{}

// Scene messages are defined in tuimsg so the scenes package can emit them.
type (
	ErrorMsg               = tuimsg.ErrorMsg
	KindSelectedMsg        = tuimsg.KindSelectedMsg
	InputChangedMsg        = tuimsg.InputChangedMsg
	CalculationStartedMsg  = tuimsg.CalculationStartedMsg
	CalculationCompleteMsg = tuimsg.CalculationCompleteMsg
	ComparisonStartedMsg   = tuimsg.ComparisonStartedMsg
	ComparisonCompleteMsg  = tuimsg.ComparisonCompleteMsg
	ExportRequestMsg       = tuimsg.ExportRequestMsg
	ExportCompleteMsg      = tuimsg.ExportCompleteMsg
)
