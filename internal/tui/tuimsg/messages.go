package tuimsg

import (
	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/domain"
)

// KindSelectedMsg signals a calculator has been picked
type KindSelectedMsg struct {
	Kind domain.Kind
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputChangedMsg signals a slider moved; the preview is recalculated
type InputChangedMsg struct {
	Kind   domain.Kind
	Values map[string]string
}

// CalculationStartedMsg asks for a full calculation of the current inputs
type CalculationStartedMsg struct {
	Kind   domain.Kind
	Values map[string]string
}

// CalculationCompleteMsg signals a calculation has finished. Preview results
// update the parameters scene; the others open the results scene.
type CalculationCompleteMsg struct {
	Kind    domain.Kind
	Values  map[string]string
	Report  domain.Report
	Preview bool
	Err     error
}

// ComparisonStartedMsg signals a comparison calculation has begun
type ComparisonStartedMsg struct {
	Subject compare.Subject
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ExportRequestMsg asks for the current result, or the current comparison,
// to be written to a report file
type ExportRequestMsg struct {
	Format     string
	Comparison bool
}

// ExportCompleteMsg signals an export has finished
type ExportCompleteMsg struct {
	Path string
	Err  error
}
