package calculation

import (
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

// RetirementCalculator handles NPS, EPF and gratuity.
type RetirementCalculator struct {
	PFEmployeePct            decimal.Decimal
	PFEmployerPct            decimal.Decimal
	GratuityDaysWage         decimal.Decimal
	GratuityDivisorCovered   decimal.Decimal
	GratuityDivisorUncovered decimal.Decimal
}

// NewRetirementCalculatorDefaults uses the statutory EPF split (12% employee,
// 3.67% employer after the 8.33% pension diversion) and the 15/26 gratuity rule.
func NewRetirementCalculatorDefaults() *RetirementCalculator {
	return &RetirementCalculator{
		PFEmployeePct:            decimal.NewFromInt(12),
		PFEmployerPct:            decimal.RequireFromString("3.67"),
		GratuityDaysWage:         decimal.NewFromInt(15),
		GratuityDivisorCovered:   decimal.NewFromInt(26),
		GratuityDivisorUncovered: decimal.NewFromInt(30),
	}
}

// NewRetirementCalculator overlays configured values on the defaults.
func NewRetirementCalculator(cfg domain.RetirementConfig) *RetirementCalculator {
	rc := NewRetirementCalculatorDefaults()
	rc.PFEmployeePct = orDefault(cfg.PFEmployeePct, rc.PFEmployeePct)
	rc.PFEmployerPct = orDefault(cfg.PFEmployerPct, rc.PFEmployerPct)
	rc.GratuityDaysWage = orDefault(cfg.GratuityDaysWage, rc.GratuityDaysWage)
	rc.GratuityDivisorCovered = orDefault(cfg.GratuityDivisorCovered, rc.GratuityDivisorCovered)
	rc.GratuityDivisorUncovered = orDefault(cfg.GratuityDivisorUncovered, rc.GratuityDivisorUncovered)
	return rc
}

// CalculateNPS accumulates monthly contributions until retirement and splits
// the corpus into the annuity purchase and the lump sum. The pension is a
// simple annual yield on the annuity, paid monthly.
func (rc *RetirementCalculator) CalculateNPS(in domain.NPSInput) (*domain.NPSResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	years := in.RetirementAge - in.CurrentAge
	g := compoundGrowth(domain.CompoundGrowthInput{
		PeriodicContribution: in.MonthlyContribution,
		AnnualRatePct:        in.ExpectedReturnPct,
		Periods:              years * 12,
	})

	annuity := finmath.Pct(g.FutureValue, in.AnnuityPct)
	yearly := yearlyGrowth(in.MonthlyContribution, in.ExpectedReturnPct, years)
	for i := range yearly {
		yearly[i].Age = in.CurrentAge + yearly[i].Year
	}

	return &domain.NPSResult{
		TotalContribution: g.TotalContribution,
		TotalInterest:     g.TotalInterest,
		Corpus:            g.FutureValue,
		AnnuityAmount:     annuity,
		LumpSum:           g.FutureValue.Sub(annuity),
		MonthlyPension:    finmath.MonthlyRate(in.AnnuityReturnPct).Mul(annuity),
		Yearly:            yearly,
	}, nil
}

// CalculatePF simulates EPF year by year. Interest is credited on the opening
// balance plus half of the year's contributions, approximating monthly
// crediting.
func (rc *RetirementCalculator) CalculatePF(in domain.PFInput) (*domain.PFResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res := &domain.PFResult{}
	balance := in.CurrentBalance
	basic := in.BasicSalary
	growth := one.Add(finmath.AnnualRate(in.AnnualIncrementPct))
	var contributed decimal.Decimal

	for y := 1; y <= in.RetirementAge-in.CurrentAge; y++ {
		annualBasic := basic.Mul(twelve)
		employee := finmath.Pct(annualBasic, rc.PFEmployeePct)
		employer := finmath.Pct(annualBasic, rc.PFEmployerPct)
		contribution := employee.Add(employer)

		interest := finmath.Pct(balance.Add(contribution.Div(two)), in.InterestRatePct)
		balance = balance.Add(contribution).Add(interest)

		res.EmployeeContribution = res.EmployeeContribution.Add(employee)
		res.EmployerContribution = res.EmployerContribution.Add(employer)
		res.TotalInterest = res.TotalInterest.Add(interest)
		contributed = contributed.Add(contribution)

		res.Yearly = append(res.Yearly, domain.PFRow{
			Age:                    in.CurrentAge + y,
			BasicSalary:            basic,
			Contribution:           contribution,
			Interest:               interest,
			Balance:                balance,
			CumulativeContribution: contributed,
			CumulativeInterest:     res.TotalInterest,
		})

		basic = basic.Mul(growth).Round(finmath.DivPrecision)
	}

	res.Corpus = balance
	return res, nil
}

// CalculateGratuity applies basic × 15 × years / 26 (or / 30 for employers not
// covered by the Act). Fewer than five years of service yields no gratuity.
func (rc *RetirementCalculator) CalculateGratuity(in domain.GratuityInput) (*domain.GratuityResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	divisor := rc.GratuityDivisorUncovered
	if in.IsCovered() {
		divisor = rc.GratuityDivisorCovered
	}
	res := &domain.GratuityResult{Divisor: int(divisor.IntPart())}
	if in.YearsOfService.LessThan(decimal.NewFromInt(domain.GratuityMinServiceYears)) {
		return res, nil
	}
	res.Eligible = true
	res.Amount = finmath.Div(in.BasicSalary.Mul(rc.GratuityDaysWage).Mul(in.YearsOfService), divisor)
	return res, nil
}
