package calculation

import (
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyRates quotes each currency in rupees. They are static
// approximations, not market data.
func DefaultCurrencyRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": dec("83.5"),
		"EUR": dec("90.2"),
		"GBP": dec("105.8"),
		"AED": dec("22.7"),
		"SGD": dec("62.1"),
		"JPY": dec("0.55"),
		"AUD": dec("55.4"),
		"CAD": dec("61.8"),
		"CHF": dec("94.2"),
	}
}

// CurrencyConverter crosses every pair through the base currency.
type CurrencyConverter struct {
	Rates map[string]decimal.Decimal
}

func NewCurrencyConverter(cfg domain.CurrencyConfig) *CurrencyConverter {
	return &CurrencyConverter{Rates: mergeRates(DefaultCurrencyRates(), cfg.Rates)}
}

// Codes lists the supported currencies including the base.
func (cc *CurrencyConverter) Codes() []string {
	return append([]string{domain.BaseCurrency}, domain.SortedKeys(cc.Rates)...)
}

// Rate returns units of to per unit of from.
func (cc *CurrencyConverter) Rate(from, to string) (decimal.Decimal, error) {
	fromBase, err := cc.baseValue("from", from)
	if err != nil {
		return decimal.Zero, err
	}
	toBase, err := cc.baseValue("to", to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return one, nil
	}
	return finmath.Div(fromBase, toBase), nil
}

func (cc *CurrencyConverter) baseValue(field, code string) (decimal.Decimal, error) {
	if code == domain.BaseCurrency {
		return one, nil
	}
	v, ok := cc.Rates[code]
	if !ok || !v.IsPositive() {
		return decimal.Zero, domain.Invalid(field, "unsupported currency %q", code)
	}
	return v, nil
}

func (cc *CurrencyConverter) Convert(in domain.CurrencyInput) (*domain.CurrencyResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	from, to := in.Codes()
	rate, err := cc.Rate(from, to)
	if err != nil {
		return nil, err
	}
	return &domain.CurrencyResult{
		From:      from,
		To:        to,
		Rate:      rate,
		Amount:    in.Amount,
		Converted: in.Amount.Mul(rate),
	}, nil
}
