package domain

import "github.com/shopspring/decimal"

// MaxHorizonYears bounds every multi-year projection.
const MaxHorizonYears = 100

// GrowthPoint is one year-end sample of an accumulating investment.
type GrowthPoint struct {
	Year     int             `yaml:"year" json:"year"`
	Age      int             `yaml:"age,omitempty" json:"age,omitempty"`
	Invested decimal.Decimal `yaml:"invested" json:"invested"`
	Value    decimal.Decimal `yaml:"value" json:"value"`
	Returns  decimal.Decimal `yaml:"returns" json:"returns"`
}

func growthTable(title string, points []GrowthPoint, withAge bool) Table {
	t := Table{Title: title}
	if withAge {
		t.Columns = append(t.Columns, Column{Name: "Age", Format: FormatInteger})
	} else {
		t.Columns = append(t.Columns, Column{Name: "Year", Format: FormatInteger})
	}
	t.Columns = append(t.Columns,
		Column{Name: "Invested", Format: FormatCurrency},
		Column{Name: "Value", Format: FormatCurrency},
		Column{Name: "Returns", Format: FormatCurrency},
	)
	for _, p := range points {
		key := p.Year
		if withAge {
			key = p.Age
		}
		t.Rows = append(t.Rows, []decimal.Decimal{intCell(key), p.Invested, p.Value, p.Returns})
	}
	return t
}

// CompoundGrowthInput describes a series of monthly contributions.
type CompoundGrowthInput struct {
	PeriodicContribution decimal.Decimal `yaml:"periodic_contribution" json:"periodic_contribution"`
	AnnualRatePct        decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	Periods              int             `yaml:"periods" json:"periods"`
	StartingBalance      decimal.Decimal `yaml:"starting_balance,omitempty" json:"starting_balance,omitempty"`
}

func (in CompoundGrowthInput) Validate() error {
	return firstError(
		CheckNonNegative("periodic_contribution", in.PeriodicContribution),
		CheckPercent("annual_rate_pct", in.AnnualRatePct),
		CheckIntRange("periods", in.Periods, 1, MaxHorizonYears*12),
		CheckNonNegative("starting_balance", in.StartingBalance),
	)
}

// CompoundGrowthResult holds FutureValue split into its sources.
type CompoundGrowthResult struct {
	FutureValue       decimal.Decimal `yaml:"future_value" json:"future_value"`
	TotalContribution decimal.Decimal `yaml:"total_contribution" json:"total_contribution"`
	TotalInterest     decimal.Decimal `yaml:"total_interest" json:"total_interest"`
}

// SIPInput is a monthly systematic investment plan.
type SIPInput struct {
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment" json:"monthly_investment"`
	AnnualReturnPct   decimal.Decimal `yaml:"annual_return_pct" json:"annual_return_pct"`
	Years             int             `yaml:"years" json:"years"`
}

func (in SIPInput) Validate() error {
	return firstError(
		CheckPositive("monthly_investment", in.MonthlyInvestment),
		CheckPercent("annual_return_pct", in.AnnualReturnPct),
		CheckIntRange("years", in.Years, 1, MaxHorizonYears),
	)
}

type SIPResult struct {
	Invested         decimal.Decimal `yaml:"invested" json:"invested"`
	EstimatedReturns decimal.Decimal `yaml:"estimated_returns" json:"estimated_returns"`
	FutureValue      decimal.Decimal `yaml:"future_value" json:"future_value"`
	Yearly           []GrowthPoint   `yaml:"yearly" json:"yearly"`
}

func (r *SIPResult) Summary() []Metric {
	return []Metric{
		Money("Invested Amount", r.Invested),
		Money("Estimated Returns", r.EstimatedReturns),
		Money("Total Value", r.FutureValue),
	}
}

func (r *SIPResult) Tables() []Table {
	return []Table{growthTable("Yearly Growth", r.Yearly, false)}
}

// InflationInput projects the cost of something today into the future.
type InflationInput struct {
	CurrentAmount      decimal.Decimal `yaml:"current_amount" json:"current_amount"`
	AnnualInflationPct decimal.Decimal `yaml:"annual_inflation_pct" json:"annual_inflation_pct"`
	Years              int             `yaml:"years" json:"years"`
}

func (in InflationInput) Validate() error {
	return firstError(
		CheckPositive("current_amount", in.CurrentAmount),
		CheckPercent("annual_inflation_pct", in.AnnualInflationPct),
		CheckIntRange("years", in.Years, 1, MaxHorizonYears),
	)
}

// InflationPoint is the inflated cost after Year years.
type InflationPoint struct {
	Year  int             `yaml:"year" json:"year"`
	Value decimal.Decimal `yaml:"value" json:"value"`
}

type InflationResult struct {
	FutureCost          decimal.Decimal  `yaml:"future_cost" json:"future_cost"`
	PurchasingPowerLoss decimal.Decimal  `yaml:"purchasing_power_loss" json:"purchasing_power_loss"`
	Series              []InflationPoint `yaml:"series" json:"series"`
}

func (r *InflationResult) Summary() []Metric {
	return []Metric{
		Money("Future Cost", r.FutureCost),
		Money("Loss of Purchasing Power", r.PurchasingPowerLoss),
	}
}

func (r *InflationResult) Tables() []Table {
	t := Table{
		Title:   "Inflated Cost",
		Columns: []Column{{Name: "Year", Format: FormatInteger}, {Name: "Cost", Format: FormatCurrency}},
	}
	for _, p := range r.Series {
		t.Rows = append(t.Rows, []decimal.Decimal{intCell(p.Year), p.Value})
	}
	return []Table{t}
}

// MarriageInput plans for a child's wedding expenses.
type MarriageInput struct {
	CurrentCost       decimal.Decimal `yaml:"current_cost" json:"current_cost"`
	ChildAge          int             `yaml:"child_age" json:"child_age"`
	MarriageAge       int             `yaml:"marriage_age" json:"marriage_age"`
	InflationPct      decimal.Decimal `yaml:"inflation_pct" json:"inflation_pct"`
	ExpectedReturnPct decimal.Decimal `yaml:"expected_return_pct" json:"expected_return_pct"`
}

func (in MarriageInput) Validate() error {
	if in.MarriageAge <= in.ChildAge {
		return Invalid("marriage_age", "must be greater than child_age (%d), got %d", in.ChildAge, in.MarriageAge)
	}
	return firstError(
		CheckPositive("current_cost", in.CurrentCost),
		CheckIntRange("child_age", in.ChildAge, 0, MaxHorizonYears),
		CheckIntRange("marriage_age", in.MarriageAge, 1, MaxHorizonYears),
		CheckPercent("inflation_pct", in.InflationPct),
		CheckPercent("expected_return_pct", in.ExpectedReturnPct),
	)
}

type MarriageResult struct {
	YearsLeft    int             `yaml:"years_left" json:"years_left"`
	FutureCost   decimal.Decimal `yaml:"future_cost" json:"future_cost"`
	MonthlySIP   decimal.Decimal `yaml:"monthly_sip" json:"monthly_sip"`
	LumpSumToday decimal.Decimal `yaml:"lump_sum_today" json:"lump_sum_today"`
}

func (r *MarriageResult) Summary() []Metric {
	return []Metric{
		Integer("Years Left", r.YearsLeft),
		Money("Future Cost", r.FutureCost),
		Money("Monthly SIP Required", r.MonthlySIP),
		Money("Lump Sum Required Today", r.LumpSumToday),
	}
}

func (r *MarriageResult) Tables() []Table { return nil }

const (
	// SSYDepositYears is how long deposits are accepted.
	SSYDepositYears = 15
	// SSYMaturityYears is the account term from opening.
	SSYMaturityYears = 21
	// SSYMaxOpeningAge is the oldest a girl can be when the account opens.
	SSYMaxOpeningAge = 10
)

// SSYInput opens a Sukanya Samriddhi account.
type SSYInput struct {
	YearlyDeposit decimal.Decimal `yaml:"yearly_deposit" json:"yearly_deposit"`
	GirlAge       int             `yaml:"girl_age" json:"girl_age"`
	AnnualRatePct decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	// StartYear is the calendar year of opening. Zero omits calendar years from the result.
	StartYear int `yaml:"start_year,omitempty" json:"start_year,omitempty"`
}

func (in SSYInput) Validate() error {
	if in.StartYear < 0 {
		return Invalid("start_year", "must not be negative, got %d", in.StartYear)
	}
	return firstError(
		CheckPositive("yearly_deposit", in.YearlyDeposit),
		CheckIntRange("girl_age", in.GirlAge, 0, SSYMaxOpeningAge),
		CheckPercent("annual_rate_pct", in.AnnualRatePct),
	)
}

// SSYRow is the account state at the end of an account year.
type SSYRow struct {
	Year           int             `yaml:"year" json:"year"`
	CalendarYear   int             `yaml:"calendar_year,omitempty" json:"calendar_year,omitempty"`
	Age            int             `yaml:"age" json:"age"`
	Deposit        decimal.Decimal `yaml:"deposit" json:"deposit"`
	Interest       decimal.Decimal `yaml:"interest" json:"interest"`
	Balance        decimal.Decimal `yaml:"balance" json:"balance"`
	TotalDeposited decimal.Decimal `yaml:"total_deposited" json:"total_deposited"`
}

type SSYResult struct {
	MaturityValue decimal.Decimal `yaml:"maturity_value" json:"maturity_value"`
	TotalDeposit  decimal.Decimal `yaml:"total_deposit" json:"total_deposit"`
	TotalInterest decimal.Decimal `yaml:"total_interest" json:"total_interest"`
	MaturityAge   int             `yaml:"maturity_age" json:"maturity_age"`
	MaturityYear  int             `yaml:"maturity_year,omitempty" json:"maturity_year,omitempty"`
	Schedule      []SSYRow        `yaml:"schedule" json:"schedule"`
}

func (r *SSYResult) Summary() []Metric {
	m := []Metric{
		Money("Maturity Value", r.MaturityValue),
		Money("Total Deposit", r.TotalDeposit),
		Money("Total Interest", r.TotalInterest),
		Integer("Maturity Age", r.MaturityAge),
	}
	if r.MaturityYear != 0 {
		m = append(m, Integer("Maturity Year", r.MaturityYear))
	}
	return m
}

func (r *SSYResult) Tables() []Table {
	t := Table{
		Title: "Account Schedule",
		Columns: []Column{
			{Name: "Year", Format: FormatInteger},
			{Name: "Age", Format: FormatInteger},
			{Name: "Deposit", Format: FormatCurrency},
			{Name: "Interest", Format: FormatCurrency},
			{Name: "Balance", Format: FormatCurrency},
		},
	}
	for _, row := range r.Schedule {
		year := row.Year
		if row.CalendarYear != 0 {
			year = row.CalendarYear
		}
		t.Rows = append(t.Rows, []decimal.Decimal{intCell(year), intCell(row.Age), row.Deposit, row.Interest, row.Balance})
	}
	return []Table{t}
}
