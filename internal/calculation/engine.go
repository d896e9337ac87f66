package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finwise/internal/domain"
)

// Logger is the logging surface of the engine. *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// CalculationEngine routes calculation requests to the calculators. It only
// holds read-only configuration and is safe for concurrent use.
type CalculationEngine struct {
	RetirementCalc *RetirementCalculator
	TaxCalc        *IncomeTaxCalculator
	CloudCalc      *CloudCostCalculator
	CarbonCalc     *CarbonFootprintCalculator
	RewardsEngine  *RewardsEngine
	CurrencyConv   *CurrencyConverter
	Logger         Logger

	ranges   map[domain.Kind][]FieldRange
	registry *Registry
}

// NewCalculationEngine creates an engine with the built-in defaults.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.EngineConfig{})
}

// NewCalculationEngineWithConfig creates an engine whose calculators overlay
// cfg on the built-in defaults.
func NewCalculationEngineWithConfig(cfg domain.EngineConfig) *CalculationEngine {
	ce := &CalculationEngine{
		RetirementCalc: NewRetirementCalculator(cfg.Retirement),
		TaxCalc:        NewIncomeTaxCalculator(cfg.Tax),
		CloudCalc:      NewCloudCostCalculator(cfg.Cloud),
		CarbonCalc:     NewCarbonFootprintCalculator(cfg.Carbon),
		RewardsEngine:  NewRewardsEngine(cfg.Rewards),
		CurrencyConv:   NewCurrencyConverter(cfg.Currency),
		Logger:         NopLogger{},
		registry:       NewRegistry(),
	}
	ce.ranges = ce.buildRanges(cfg.Ranges)
	return ce
}

// SetLogger replaces the logger. Nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = logger
}

// Kinds lists the registered calculators.
func (ce *CalculationEngine) Kinds() []domain.Kind {
	return ce.registry.Kinds()
}

// Calculate runs the calculator for kind on a typed input (value or pointer).
func (ce *CalculationEngine) Calculate(kind domain.Kind, input interface{}) (domain.Report, error) {
	h, err := ce.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return ce.run(h, input)
}

// CalculateFrom starts from the default input of kind, lets decode overlay
// the caller's fields and runs the calculator.
func (ce *CalculationEngine) CalculateFrom(kind domain.Kind, decode Decoder) (domain.Report, error) {
	h, err := ce.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	input, err := ce.defaultInput(h)
	if err != nil {
		return nil, err
	}
	if decode != nil {
		if err := decode(input); err != nil {
			return nil, fmt.Errorf("failed to decode %s input: %w", kind, err)
		}
	}
	return ce.run(h, input)
}

// DefaultInput returns a pointer to the typed input of kind populated from
// the slider defaults.
func (ce *CalculationEngine) DefaultInput(kind domain.Kind) (interface{}, error) {
	h, err := ce.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return ce.defaultInput(h)
}

func (ce *CalculationEngine) defaultInput(h Handler) (interface{}, error) {
	input := h.NewInput()
	node := BuildInputNode(DefaultValues(ce.Ranges(h.Kind())))
	if err := node.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to build default %s input: %w", h.Kind(), err)
	}
	return input, nil
}

func (ce *CalculationEngine) run(h Handler, input interface{}) (domain.Report, error) {
	ce.Logger.Debugf("calculating %s", h.Kind())
	report, err := h.Run(ce, input)
	if err != nil {
		ce.Logger.Debugf("%s rejected: %v", h.Kind(), err)
		return nil, err
	}
	if d, ok := report.(domain.Degradable); ok {
		for _, note := range d.DegradedNotes() {
			ce.Logger.Warnf("%s degraded: %s", h.Kind(), note)
		}
	}
	return report, nil
}
