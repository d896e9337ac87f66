package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finwise/internal/domain"
)

// Decoder fills a typed input, typically yaml.Node.Decode or a JSON decoder.
type Decoder func(v interface{}) error

// Handler binds a calculator kind to its typed input.
type Handler interface {
	Kind() domain.Kind
	// NewInput returns a pointer to a zero input.
	NewInput() interface{}
	Run(ce *CalculationEngine, input interface{}) (domain.Report, error)
}

type handler[In any, Out domain.Report] struct {
	kind domain.Kind
	fn   func(*CalculationEngine, In) (Out, error)
}

// Handle adapts a typed calculator function to a Handler.
func Handle[In any, Out domain.Report](kind domain.Kind, fn func(*CalculationEngine, In) (Out, error)) Handler {
	return handler[In, Out]{kind: kind, fn: fn}
}

func (h handler[In, Out]) Kind() domain.Kind { return h.kind }

func (h handler[In, Out]) NewInput() interface{} { return new(In) }

func (h handler[In, Out]) Run(ce *CalculationEngine, input interface{}) (domain.Report, error) {
	var in In
	switch v := input.(type) {
	case In:
		in = v
	case *In:
		if v == nil {
			return nil, fmt.Errorf("%s: nil input", h.kind)
		}
		in = *v
	default:
		return nil, fmt.Errorf("%s: expected input of type %T, got %T", h.kind, in, input)
	}
	out, err := h.fn(ce, in)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Registry maps calculator kinds to handlers.
type Registry struct {
	handlers map[domain.Kind]Handler
	order    []domain.Kind
}

// NewRegistry creates a registry with every built-in calculator registered.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[domain.Kind]Handler)}

	// Loans
	r.Register(Handle(domain.KindEMI, func(_ *CalculationEngine, in domain.LoanInput) (*domain.LoanResult, error) {
		return CalculateEMI(in)
	}))
	r.Register(Handle(domain.KindPersonalLoan, func(_ *CalculationEngine, in domain.LoanInput) (*domain.LoanResult, error) {
		return CalculatePersonalLoan(in)
	}))
	r.Register(Handle(domain.KindHousingLoan, func(_ *CalculationEngine, in domain.LoanInput) (*domain.LoanResult, error) {
		return CalculateHousingLoan(in)
	}))
	r.Register(Handle(domain.KindGoldLoan, func(_ *CalculationEngine, in domain.GoldLoanInput) (*domain.GoldLoanResult, error) {
		return CalculateGoldLoan(in)
	}))

	// Goals
	r.Register(Handle(domain.KindSIP, func(_ *CalculationEngine, in domain.SIPInput) (*domain.SIPResult, error) {
		return CalculateSIP(in)
	}))
	r.Register(Handle(domain.KindInflation, func(_ *CalculationEngine, in domain.InflationInput) (*domain.InflationResult, error) {
		return CalculateInflation(in)
	}))
	r.Register(Handle(domain.KindMarriage, func(_ *CalculationEngine, in domain.MarriageInput) (*domain.MarriageResult, error) {
		return CalculateMarriage(in)
	}))
	r.Register(Handle(domain.KindSSY, func(_ *CalculationEngine, in domain.SSYInput) (*domain.SSYResult, error) {
		return CalculateSSY(in)
	}))

	// Retirement
	r.Register(Handle(domain.KindNPS, func(ce *CalculationEngine, in domain.NPSInput) (*domain.NPSResult, error) {
		return ce.RetirementCalc.CalculateNPS(in)
	}))
	r.Register(Handle(domain.KindPF, func(ce *CalculationEngine, in domain.PFInput) (*domain.PFResult, error) {
		return ce.RetirementCalc.CalculatePF(in)
	}))
	r.Register(Handle(domain.KindGratuity, func(ce *CalculationEngine, in domain.GratuityInput) (*domain.GratuityResult, error) {
		return ce.RetirementCalc.CalculateGratuity(in)
	}))

	// Everything else
	r.Register(Handle(domain.KindTax, func(ce *CalculationEngine, in domain.TaxInput) (*domain.TaxResult, error) {
		return ce.TaxCalc.Calculate(in)
	}))
	r.Register(Handle(domain.KindCloudCost, func(ce *CalculationEngine, in domain.CloudUsageInput) (*domain.CloudCostResult, error) {
		return ce.CloudCalc.Calculate(in)
	}))
	r.Register(Handle(domain.KindCarbon, func(ce *CalculationEngine, in domain.CarbonFootprintInput) (*domain.CarbonFootprintResult, error) {
		return ce.CarbonCalc.Calculate(in)
	}))
	r.Register(Handle(domain.KindRewards, func(ce *CalculationEngine, in domain.RewardsInput) (*domain.RewardsResult, error) {
		return ce.RewardsEngine.Calculate(in)
	}))
	r.Register(Handle(domain.KindCurrency, func(ce *CalculationEngine, in domain.CurrencyInput) (*domain.CurrencyResult, error) {
		return ce.CurrencyConv.Convert(in)
	}))

	return r
}

// Register adds or replaces a handler.
func (r *Registry) Register(h Handler) {
	if _, exists := r.handlers[h.Kind()]; !exists {
		r.order = append(r.order, h.Kind())
	}
	r.handlers[h.Kind()] = h
}

// Lookup finds the handler for kind.
func (r *Registry) Lookup(kind domain.Kind) (Handler, error) {
	h, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return h, nil
}

// Kinds lists registered kinds in registration order.
func (r *Registry) Kinds() []domain.Kind {
	return append([]domain.Kind(nil), r.order...)
}
