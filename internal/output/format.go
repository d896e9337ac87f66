package output

import (
	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes rupee amounts.
const CurrencySymbol = "₹"

// FormatCurrency formats a rupee amount with thousands separators and two decimals.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + CurrencySymbol + FormatNumber(amount.Abs())
	}
	return CurrencySymbol + FormatNumber(amount)
}

// FormatPercentage formats a value that is already in percent units.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatNumber formats a plain number with thousands separators and two decimals.
func FormatNumber(amount decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
}

// FormatInteger formats the integer part with thousands separators.
func FormatInteger(amount decimal.Decimal) string {
	return humanize.Comma(amount.IntPart())
}

// FormatValue renders v for display according to f.
func FormatValue(v decimal.Decimal, f domain.ValueFormat) string {
	switch f {
	case domain.FormatCurrency:
		return FormatCurrency(v)
	case domain.FormatPercent:
		return FormatPercentage(v)
	case domain.FormatInteger:
		return FormatInteger(v)
	default:
		return FormatNumber(v)
	}
}

// FormatMetric renders a metric value for display.
func FormatMetric(m domain.Metric) string {
	if m.Format == domain.FormatText {
		return m.Text
	}
	return FormatValue(m.Value, m.Format)
}

// RawValue renders v without separators or symbols for machine-readable output.
func RawValue(v decimal.Decimal, f domain.ValueFormat) string {
	if f == domain.FormatInteger {
		return v.Truncate(0).String()
	}
	return v.StringFixed(2)
}

// RawMetric renders a metric for machine-readable output.
func RawMetric(m domain.Metric) string {
	if m.Format == domain.FormatText {
		return m.Text
	}
	return RawValue(m.Value, m.Format)
}
