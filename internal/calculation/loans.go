package calculation

import (
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

var karatBase = decimal.NewFromInt(24)

// CalculateEMI computes the instalment, interest and total payment of a loan.
func CalculateEMI(in domain.LoanInput) (*domain.LoanResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return amortize(in, false), nil
}

// CalculatePersonalLoan is CalculateEMI for an unsecured loan, with the
// processing fee reported alongside.
func CalculatePersonalLoan(in domain.LoanInput) (*domain.LoanResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return amortize(in, false), nil
}

// CalculateHousingLoan adds a yearly amortization schedule. The processing
// fee is informational and is not added to the principal.
func CalculateHousingLoan(in domain.LoanInput) (*domain.LoanResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return amortize(in, true), nil
}

// CalculateGoldLoan prices the gold at its purity, applies the LTV cap and
// amortizes the maximum loan.
func CalculateGoldLoan(in domain.GoldLoanInput) (*domain.GoldLoanResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	adjusted := finmath.Div(in.RatePerGram.Mul(decimal.NewFromInt(int64(in.PurityKarat))), karatBase)
	goldValue := in.WeightGrams.Mul(adjusted)
	maxLoan := finmath.Pct(goldValue, in.LTVPct)

	loan := amortize(domain.LoanInput{
		Principal:     maxLoan,
		AnnualRatePct: in.AnnualRatePct,
		Tenure:        in.TenureMonths,
		TenureUnit:    domain.TenureMonths,
	}, false)

	return &domain.GoldLoanResult{
		AdjustedRatePerGram: adjusted,
		GoldValue:           goldValue,
		MaxLoan:             maxLoan,
		LoanResult:          *loan,
	}, nil
}

func amortize(in domain.LoanInput, yearly bool) *domain.LoanResult {
	months := in.Months()
	r := finmath.MonthlyRate(in.AnnualRatePct)
	emi := finmath.ComputeEMI(in.Principal, r, months)

	totalPayment := emi.Mul(decimal.NewFromInt(int64(months)))
	if r.IsZero() {
		totalPayment = in.Principal
	}

	res := &domain.LoanResult{
		EMI:           emi,
		Months:        months,
		TotalPayment:  totalPayment,
		TotalInterest: totalPayment.Sub(in.Principal),
		ProcessingFee: finmath.Pct(in.Principal, in.ProcessingFeePct),
	}
	if yearly {
		res.Schedule = finmath.AmortizationSchedule(in.Principal, r, emi, months, finmath.GroupByYear)
	}
	return res
}
