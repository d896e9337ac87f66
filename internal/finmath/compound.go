package finmath

import "github.com/shopspring/decimal"

// FutureValueOfAnnuity is the annuity-due future value of a payment made at the
// start of each of n periods: P × ((1+r)^n − 1) / r × (1+r). A zero rate
// gives P × n.
func FutureValueOfAnnuity(payment, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(n)))
	}
	growth := Pow(one.Add(rate), n)
	return Div(payment.Mul(growth.Sub(one)), rate).Mul(one.Add(rate))
}

// RequiredAnnuityPayment solves FutureValueOfAnnuity for the payment that
// reaches target. A zero rate gives target / n.
func RequiredAnnuityPayment(target, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return Div(target, decimal.NewFromInt(int64(n)))
	}
	growth := Pow(one.Add(rate), n)
	return Div(target.Mul(rate), growth.Sub(one).Mul(one.Add(rate)))
}

// LumpSumFutureValue grows pv at rate for years: PV × (1+rate)^years.
func LumpSumFutureValue(pv, rate decimal.Decimal, years int) decimal.Decimal {
	return pv.Mul(Pow(one.Add(rate), years))
}

// PresentValue discounts fv at rate over years: FV / (1+rate)^years.
func PresentValue(fv, rate decimal.Decimal, years int) decimal.Decimal {
	return Div(fv, Pow(one.Add(rate), years))
}
