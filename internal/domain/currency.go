package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency every static rate is quoted against.
const BaseCurrency = "INR"

// CurrencyInput converts Amount from one currency code to another.
type CurrencyInput struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	From   string          `yaml:"from" json:"from"`
	To     string          `yaml:"to" json:"to"`
}

// Codes returns the upper-cased currency codes.
func (in CurrencyInput) Codes() (string, string) {
	return strings.ToUpper(strings.TrimSpace(in.From)), strings.ToUpper(strings.TrimSpace(in.To))
}

func (in CurrencyInput) Validate() error {
	from, to := in.Codes()
	if from == "" {
		return Invalid("from", "is required")
	}
	if to == "" {
		return Invalid("to", "is required")
	}
	return CheckNonNegative("amount", in.Amount)
}

type CurrencyResult struct {
	From      string          `yaml:"from" json:"from"`
	To        string          `yaml:"to" json:"to"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Converted decimal.Decimal `yaml:"converted" json:"converted"`
}

func (r *CurrencyResult) Summary() []Metric {
	return []Metric{
		Label("Pair", r.From+"/"+r.To),
		Number("Rate", r.Rate),
		Number("Amount", r.Amount),
		Number("Converted", r.Converted),
	}
}

func (r *CurrencyResult) Tables() []Table { return nil }
