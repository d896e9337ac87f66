package calculation

import (
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

// CalculateCompoundGrowth projects monthly contributions plus an optional
// starting balance, both compounding at the monthly rate.
func CalculateCompoundGrowth(in domain.CompoundGrowthInput) (*domain.CompoundGrowthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return compoundGrowth(in), nil
}

func compoundGrowth(in domain.CompoundGrowthInput) *domain.CompoundGrowthResult {
	r := finmath.MonthlyRate(in.AnnualRatePct)
	fv := finmath.FutureValueOfAnnuity(in.PeriodicContribution, r, in.Periods).
		Add(finmath.LumpSumFutureValue(in.StartingBalance, r, in.Periods))
	contribution := in.PeriodicContribution.Mul(decimal.NewFromInt(int64(in.Periods)))
	return &domain.CompoundGrowthResult{
		FutureValue:       fv,
		TotalContribution: contribution,
		TotalInterest:     fv.Sub(contribution).Sub(in.StartingBalance),
	}
}

// yearlyGrowth samples a monthly annuity at the end of each year.
func yearlyGrowth(payment, annualPct decimal.Decimal, years int) []domain.GrowthPoint {
	points := make([]domain.GrowthPoint, 0, years)
	for y := 1; y <= years; y++ {
		g := compoundGrowth(domain.CompoundGrowthInput{
			PeriodicContribution: payment,
			AnnualRatePct:        annualPct,
			Periods:              y * 12,
		})
		points = append(points, domain.GrowthPoint{
			Year:     y,
			Invested: g.TotalContribution,
			Value:    g.FutureValue,
			Returns:  g.TotalInterest,
		})
	}
	return points
}

// CalculateSIP projects a monthly SIP with a year-end series for charting.
func CalculateSIP(in domain.SIPInput) (*domain.SIPResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	g := compoundGrowth(domain.CompoundGrowthInput{
		PeriodicContribution: in.MonthlyInvestment,
		AnnualRatePct:        in.AnnualReturnPct,
		Periods:              in.Years * 12,
	})
	return &domain.SIPResult{
		Invested:         g.TotalContribution,
		EstimatedReturns: g.TotalInterest,
		FutureValue:      g.FutureValue,
		Yearly:           yearlyGrowth(in.MonthlyInvestment, in.AnnualReturnPct, in.Years),
	}, nil
}

// CalculateInflation inflates today's amount. The series is sampled every
// max(1, years/10) years starting at year zero.
func CalculateInflation(in domain.InflationInput) (*domain.InflationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rate := finmath.AnnualRate(in.AnnualInflationPct)
	future := finmath.LumpSumFutureValue(in.CurrentAmount, rate, in.Years)

	step := in.Years / 10
	if step < 1 {
		step = 1
	}
	var series []domain.InflationPoint
	for y := 0; y <= in.Years; y += step {
		series = append(series, domain.InflationPoint{
			Year:  y,
			Value: finmath.LumpSumFutureValue(in.CurrentAmount, rate, y),
		})
	}

	return &domain.InflationResult{
		FutureCost:          future,
		PurchasingPowerLoss: future.Sub(in.CurrentAmount),
		Series:              series,
	}, nil
}

// CalculateMarriage inflates today's wedding cost to the marriage year and
// solves for the monthly SIP and the lump sum that fund it. The lump sum is
// discounted at the investment return, not at inflation.
func CalculateMarriage(in domain.MarriageInput) (*domain.MarriageResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	yearsLeft := in.MarriageAge - in.ChildAge
	future := finmath.LumpSumFutureValue(in.CurrentCost, finmath.AnnualRate(in.InflationPct), yearsLeft)

	return &domain.MarriageResult{
		YearsLeft:    yearsLeft,
		FutureCost:   future,
		MonthlySIP:   finmath.RequiredAnnuityPayment(future, finmath.MonthlyRate(in.ExpectedReturnPct), yearsLeft*12),
		LumpSumToday: finmath.PresentValue(future, finmath.AnnualRate(in.ExpectedReturnPct), yearsLeft),
	}, nil
}

// CalculateSSY runs the Sukanya Samriddhi schedule: a deposit at the start of
// each of the first 15 years and annual interest on the whole balance for 21
// years.
func CalculateSSY(in domain.SSYInput) (*domain.SSYResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res := &domain.SSYResult{
		MaturityAge: in.GirlAge + domain.SSYMaturityYears,
		Schedule:    make([]domain.SSYRow, 0, domain.SSYMaturityYears),
	}
	if in.StartYear != 0 {
		res.MaturityYear = in.StartYear + domain.SSYMaturityYears
	}

	balance := decimal.Zero
	for y := 1; y <= domain.SSYMaturityYears; y++ {
		deposit := decimal.Zero
		if y <= domain.SSYDepositYears {
			deposit = in.YearlyDeposit
		}
		balance = balance.Add(deposit)
		interest := finmath.Pct(balance, in.AnnualRatePct)
		balance = balance.Add(interest)

		res.TotalDeposit = res.TotalDeposit.Add(deposit)
		row := domain.SSYRow{
			Year:           y,
			Age:            in.GirlAge + y,
			Deposit:        deposit,
			Interest:       interest,
			Balance:        balance,
			TotalDeposited: res.TotalDeposit,
		}
		if in.StartYear != 0 {
			row.CalendarYear = in.StartYear + y
		}
		res.Schedule = append(res.Schedule, row)
	}

	res.MaturityValue = balance
	res.TotalInterest = balance.Sub(res.TotalDeposit)
	return res, nil
}
