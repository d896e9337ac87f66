package domain

import (
	"github.com/shopspring/decimal"
)

// TenureUnit selects how LoanInput.Tenure is counted.
type TenureUnit string

const (
	TenureYears  TenureUnit = "years"
	TenureMonths TenureUnit = "months"
)

// MaxLoanMonths bounds tenure to a 50 year loan.
const MaxLoanMonths = 600

// LoanInput describes an amortizing loan.
type LoanInput struct {
	Principal        decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePct    decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	Tenure           int             `yaml:"tenure" json:"tenure"`
	TenureUnit       TenureUnit      `yaml:"tenure_unit,omitempty" json:"tenure_unit,omitempty"`
	ProcessingFeePct decimal.Decimal `yaml:"processing_fee_pct,omitempty" json:"processing_fee_pct,omitempty"`
}

// Months returns the tenure in months. An empty unit means years.
func (in LoanInput) Months() int {
	if in.TenureUnit == TenureMonths {
		return in.Tenure
	}
	return in.Tenure * 12
}

// Validate checks every field of the loan.
func (in LoanInput) Validate() error {
	switch in.TenureUnit {
	case "", TenureYears, TenureMonths:
	default:
		return Invalid("tenure_unit", "must be %q or %q, got %q", TenureYears, TenureMonths, in.TenureUnit)
	}
	if in.Tenure < 1 {
		return Invalid("tenure", "must be at least 1, got %d", in.Tenure)
	}
	if in.TenureUnit != TenureMonths && in.Tenure > MaxLoanMonths/12 {
		return Invalid("tenure", "must be at most %d years, got %d", MaxLoanMonths/12, in.Tenure)
	}
	return firstError(
		CheckPositive("principal", in.Principal),
		CheckPercent("annual_rate_pct", in.AnnualRatePct),
		CheckIntRange("tenure", in.Months(), 1, MaxLoanMonths),
		CheckPercent("processing_fee_pct", in.ProcessingFeePct),
	)
}

// AmortizationRow aggregates one period (month or year) of a schedule.
type AmortizationRow struct {
	Period           int             `yaml:"period" json:"period"`
	PrincipalPaid    decimal.Decimal `yaml:"principal_paid" json:"principal_paid"`
	InterestPaid     decimal.Decimal `yaml:"interest_paid" json:"interest_paid"`
	RemainingBalance decimal.Decimal `yaml:"remaining_balance" json:"remaining_balance"`
}

// LoanResult is the output of the EMI, personal and housing loan calculators.
type LoanResult struct {
	EMI           decimal.Decimal   `yaml:"emi" json:"emi"`
	Months        int               `yaml:"months" json:"months"`
	TotalInterest decimal.Decimal   `yaml:"total_interest" json:"total_interest"`
	TotalPayment  decimal.Decimal   `yaml:"total_payment" json:"total_payment"`
	ProcessingFee decimal.Decimal   `yaml:"processing_fee" json:"processing_fee"`
	Schedule      []AmortizationRow `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

func (r *LoanResult) Summary() []Metric {
	m := []Metric{
		Money("Monthly EMI", r.EMI),
		Integer("Months", r.Months),
		Money("Total Interest", r.TotalInterest),
		Money("Total Payment", r.TotalPayment),
	}
	if !r.ProcessingFee.IsZero() {
		m = append(m, Money("Processing Fee", r.ProcessingFee))
	}
	return m
}

func (r *LoanResult) Tables() []Table {
	if len(r.Schedule) == 0 {
		return nil
	}
	return []Table{scheduleTable(r.Schedule)}
}

func scheduleTable(rows []AmortizationRow) Table {
	t := Table{
		Title: "Amortization Schedule",
		Columns: []Column{
			{Name: "Period", Format: FormatInteger},
			{Name: "Principal", Format: FormatCurrency},
			{Name: "Interest", Format: FormatCurrency},
			{Name: "Balance", Format: FormatCurrency},
		},
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []decimal.Decimal{intCell(row.Period), row.PrincipalPaid, row.InterestPaid, row.RemainingBalance})
	}
	return t
}

// GoldLoanInput describes a loan secured against gold.
type GoldLoanInput struct {
	WeightGrams   decimal.Decimal `yaml:"weight_grams" json:"weight_grams"`
	PurityKarat   int             `yaml:"purity_karat" json:"purity_karat"`
	RatePerGram   decimal.Decimal `yaml:"rate_per_gram" json:"rate_per_gram"`
	LTVPct        decimal.Decimal `yaml:"ltv_pct" json:"ltv_pct"`
	AnnualRatePct decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	TenureMonths  int             `yaml:"tenure_months" json:"tenure_months"`
}

// Validate checks the gold loan. LTV policy bounds are a slider concern and
// only the 0-100 range is enforced here.
func (in GoldLoanInput) Validate() error {
	switch in.PurityKarat {
	case 24, 22, 18:
	default:
		return Invalid("purity_karat", "must be 24, 22 or 18, got %d", in.PurityKarat)
	}
	return firstError(
		CheckPositive("weight_grams", in.WeightGrams),
		CheckPositive("rate_per_gram", in.RatePerGram),
		CheckPositive("ltv_pct", in.LTVPct),
		CheckPercent("ltv_pct", in.LTVPct),
		CheckPercent("annual_rate_pct", in.AnnualRatePct),
		CheckIntRange("tenure_months", in.TenureMonths, 1, MaxLoanMonths),
	)
}

// GoldLoanResult embeds the EMI result computed on MaxLoan.
type GoldLoanResult struct {
	AdjustedRatePerGram decimal.Decimal `yaml:"adjusted_rate_per_gram" json:"adjusted_rate_per_gram"`
	GoldValue           decimal.Decimal `yaml:"gold_value" json:"gold_value"`
	MaxLoan             decimal.Decimal `yaml:"max_loan" json:"max_loan"`
	LoanResult          `yaml:",inline"`
}

func (r *GoldLoanResult) Summary() []Metric {
	return append([]Metric{
		Money("Rate per Gram (purity adjusted)", r.AdjustedRatePerGram),
		Money("Gold Value", r.GoldValue),
		Money("Maximum Loan", r.MaxLoan),
	}, r.LoanResult.Summary()...)
}

func (r *GoldLoanResult) Tables() []Table {
	return r.LoanResult.Tables()
}
