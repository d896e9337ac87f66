package domain

import "github.com/shopspring/decimal"

// NPSInput describes monthly contributions to the National Pension System.
type NPSInput struct {
	CurrentAge          int             `yaml:"current_age" json:"current_age"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirement_age"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	ExpectedReturnPct   decimal.Decimal `yaml:"expected_return_pct" json:"expected_return_pct"`
	AnnuityPct          decimal.Decimal `yaml:"annuity_pct" json:"annuity_pct"`
	AnnuityReturnPct    decimal.Decimal `yaml:"annuity_return_pct" json:"annuity_return_pct"`
}

func (in NPSInput) Validate() error {
	if in.RetirementAge <= in.CurrentAge {
		return Invalid("retirement_age", "must be greater than current_age (%d), got %d", in.CurrentAge, in.RetirementAge)
	}
	return firstError(
		CheckIntRange("current_age", in.CurrentAge, 0, MaxHorizonYears),
		CheckIntRange("retirement_age", in.RetirementAge, 1, MaxHorizonYears),
		CheckPositive("monthly_contribution", in.MonthlyContribution),
		CheckPercent("expected_return_pct", in.ExpectedReturnPct),
		CheckPercent("annuity_pct", in.AnnuityPct),
		CheckPercent("annuity_return_pct", in.AnnuityReturnPct),
	)
}

type NPSResult struct {
	TotalContribution decimal.Decimal `yaml:"total_contribution" json:"total_contribution"`
	TotalInterest     decimal.Decimal `yaml:"total_interest" json:"total_interest"`
	Corpus            decimal.Decimal `yaml:"corpus" json:"corpus"`
	LumpSum           decimal.Decimal `yaml:"lump_sum" json:"lump_sum"`
	AnnuityAmount     decimal.Decimal `yaml:"annuity_amount" json:"annuity_amount"`
	MonthlyPension    decimal.Decimal `yaml:"monthly_pension" json:"monthly_pension"`
	Yearly            []GrowthPoint   `yaml:"yearly" json:"yearly"`
}

func (r *NPSResult) Summary() []Metric {
	return []Metric{
		Money("Total Contribution", r.TotalContribution),
		Money("Total Interest", r.TotalInterest),
		Money("Corpus at Retirement", r.Corpus),
		Money("Lump Sum Withdrawal", r.LumpSum),
		Money("Annuity Purchase", r.AnnuityAmount),
		Money("Monthly Pension", r.MonthlyPension),
	}
}

func (r *NPSResult) Tables() []Table {
	return []Table{growthTable("Corpus by Age", r.Yearly, true)}
}

// PFInput describes an EPF member's salary path until retirement.
type PFInput struct {
	// BasicSalary is monthly basic pay plus dearness allowance.
	BasicSalary        decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	CurrentAge         int             `yaml:"current_age" json:"current_age"`
	RetirementAge      int             `yaml:"retirement_age" json:"retirement_age"`
	AnnualIncrementPct decimal.Decimal `yaml:"annual_increment_pct" json:"annual_increment_pct"`
	InterestRatePct    decimal.Decimal `yaml:"interest_rate_pct" json:"interest_rate_pct"`
	// CurrentBalance is an existing PF balance carried into the first year.
	CurrentBalance decimal.Decimal `yaml:"current_balance,omitempty" json:"current_balance,omitempty"`
}

func (in PFInput) Validate() error {
	if in.RetirementAge <= in.CurrentAge {
		return Invalid("retirement_age", "must be greater than current_age (%d), got %d", in.CurrentAge, in.RetirementAge)
	}
	return firstError(
		CheckPositive("basic_salary", in.BasicSalary),
		CheckIntRange("current_age", in.CurrentAge, 0, MaxHorizonYears),
		CheckIntRange("retirement_age", in.RetirementAge, 1, MaxHorizonYears),
		CheckPercent("annual_increment_pct", in.AnnualIncrementPct),
		CheckPercent("interest_rate_pct", in.InterestRatePct),
		CheckNonNegative("current_balance", in.CurrentBalance),
	)
}

// PFRow is the account at the end of the year in which the member turns Age.
type PFRow struct {
	Age                    int             `yaml:"age" json:"age"`
	BasicSalary            decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	Contribution           decimal.Decimal `yaml:"contribution" json:"contribution"`
	Interest               decimal.Decimal `yaml:"interest" json:"interest"`
	Balance                decimal.Decimal `yaml:"balance" json:"balance"`
	CumulativeContribution decimal.Decimal `yaml:"cumulative_contribution" json:"cumulative_contribution"`
	CumulativeInterest     decimal.Decimal `yaml:"cumulative_interest" json:"cumulative_interest"`
}

type PFResult struct {
	Corpus               decimal.Decimal `yaml:"corpus" json:"corpus"`
	EmployeeContribution decimal.Decimal `yaml:"employee_contribution" json:"employee_contribution"`
	EmployerContribution decimal.Decimal `yaml:"employer_contribution" json:"employer_contribution"`
	TotalInterest        decimal.Decimal `yaml:"total_interest" json:"total_interest"`
	Yearly               []PFRow         `yaml:"yearly" json:"yearly"`
}

func (r *PFResult) Summary() []Metric {
	return []Metric{
		Money("Employee Contribution", r.EmployeeContribution),
		Money("Employer Contribution", r.EmployerContribution),
		Money("Total Interest", r.TotalInterest),
		Money("Corpus at Retirement", r.Corpus),
	}
}

func (r *PFResult) Tables() []Table {
	t := Table{
		Title: "Yearly Accrual",
		Columns: []Column{
			{Name: "Age", Format: FormatInteger},
			{Name: "Basic", Format: FormatCurrency},
			{Name: "Contribution", Format: FormatCurrency},
			{Name: "Interest", Format: FormatCurrency},
			{Name: "Balance", Format: FormatCurrency},
		},
	}
	for _, row := range r.Yearly {
		t.Rows = append(t.Rows, []decimal.Decimal{intCell(row.Age), row.BasicSalary, row.Contribution, row.Interest, row.Balance})
	}
	return []Table{t}
}

// GratuityMinServiceYears is the statutory eligibility threshold.
const GratuityMinServiceYears = 5

// GratuityInput describes an employee leaving service.
type GratuityInput struct {
	// BasicSalary is the last drawn monthly basic pay plus dearness allowance.
	BasicSalary    decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	YearsOfService decimal.Decimal `yaml:"years_of_service" json:"years_of_service"`
	// Covered reports whether the employer falls under the Payment of Gratuity Act. Nil means covered.
	Covered *bool `yaml:"covered,omitempty" json:"covered,omitempty"`
}

// IsCovered resolves the optional Covered flag.
func (in GratuityInput) IsCovered() bool {
	return in.Covered == nil || *in.Covered
}

func (in GratuityInput) Validate() error {
	return firstError(
		CheckPositive("basic_salary", in.BasicSalary),
		CheckRange("years_of_service", in.YearsOfService, decimal.Zero, decimal.NewFromInt(MaxHorizonYears)),
	)
}

type GratuityResult struct {
	Eligible bool            `yaml:"eligible" json:"eligible"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Divisor  int             `yaml:"divisor" json:"divisor"`
}

func (r *GratuityResult) Summary() []Metric {
	eligible := "No (less than 5 years of service)"
	if r.Eligible {
		eligible = "Yes"
	}
	return []Metric{
		Label("Eligible", eligible),
		Money("Gratuity Amount", r.Amount),
	}
}

func (r *GratuityResult) Tables() []Table { return nil }
