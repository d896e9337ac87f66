package finmath

import (
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
)

// GroupBy selects the aggregation period of an amortization schedule.
type GroupBy int

const (
	GroupByMonth GroupBy = iota
	GroupByYear
)

var settleTolerance = decimal.New(1, -2)

// ComputeEMI returns the equated monthly instalment that fully amortizes
// principal over months at monthlyRate. A zero rate divides the principal
// evenly. Non-positive principal or fewer than one month yields zero.
func ComputeEMI(principal, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if months < 1 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if monthlyRate.IsZero() {
		return Div(principal, n)
	}
	f := Pow(one.Add(monthlyRate), months)
	return Div(principal.Mul(monthlyRate).Mul(f), f.Sub(one))
}

// AmortizationSchedule walks the loan month by month and aggregates the
// principal and interest paid per group. RemainingBalance never goes below
// zero and the last row settles to exactly zero when the drift is under a paisa.
func AmortizationSchedule(principal, monthlyRate, emi decimal.Decimal, months int, group GroupBy) []domain.AmortizationRow {
	if months < 1 || !principal.IsPositive() {
		return nil
	}
	size := 1
	if group == GroupByYear {
		size = 12
	}

	rows := make([]domain.AmortizationRow, 0, (months+size-1)/size)
	balance := principal
	var row domain.AmortizationRow
	for m := 1; m <= months; m++ {
		interest := balance.Mul(monthlyRate).Round(DivPrecision)
		principalPaid := emi.Sub(interest)
		balance = balance.Sub(principalPaid)

		row.InterestPaid = row.InterestPaid.Add(interest)
		row.PrincipalPaid = row.PrincipalPaid.Add(principalPaid)

		if m%size == 0 || m == months {
			row.Period = (m + size - 1) / size
			row.RemainingBalance = Max(balance, decimal.Zero)
			rows = append(rows, row)
			row = domain.AmortizationRow{}
		}
	}

	last := &rows[len(rows)-1]
	if last.RemainingBalance.LessThan(settleTolerance) {
		last.RemainingBalance = decimal.Zero
	}
	return rows
}
