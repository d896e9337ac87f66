// Package finmath holds the annuity and compounding primitives shared by every
// calculator. All arithmetic is decimal; powers are exact integer powers
// rounded to PowPrecision places after each multiplication and quotients are
// rounded to DivPrecision places.
package finmath

import "github.com/shopspring/decimal"

const (
	PowPrecision = 28
	DivPrecision = 20
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Pow raises base to a non-negative integer power by repeated squaring.
func Pow(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(PowPrecision)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(PowPrecision)
		}
	}
	return result
}

// Div divides with the package precision.
func Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, DivPrecision)
}

// MonthlyRate converts an annual percentage to a monthly fraction.
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return Div(annualPct, twelve.Mul(hundred))
}

// AnnualRate converts an annual percentage to a fraction.
func AnnualRate(annualPct decimal.Decimal) decimal.Decimal {
	return Div(annualPct, hundred)
}

// Pct returns v × pct / 100.
func Pct(v, pct decimal.Decimal) decimal.Decimal {
	return Div(v.Mul(pct), hundred)
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// WithinTolerance reports |a-b| <= tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
