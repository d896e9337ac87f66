package calculation

import (
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slabs are the FY 2024-25 (AY 2025-26) individual slabs for residents
//    below 60. Senior citizen exemption limits are not modelled.
//
// 2. Section 87A rebate is all-or-nothing: taxable income at or below the
//    limit pays no tax. Marginal relief above the limit is not modelled.
//
// 3. Surcharge on incomes above 50 lakh is not applied. Cess is 4% of the
//    post-rebate tax.

// TaxBracket taxes income between Min and Max at Rate. A zero Max leaves the
// bracket open-ended.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// RegimeRules is one regime's deduction, rebate and bracket set.
type RegimeRules struct {
	Regime            domain.Regime
	StandardDeduction decimal.Decimal
	RebateLimit       decimal.Decimal
	Brackets          []TaxBracket
}

// IncomeTaxCalculator compares the old and new regimes.
type IncomeTaxCalculator struct {
	AssessmentYear string
	Old            RegimeRules
	New            RegimeRules
	CessRate       decimal.Decimal
	Caps           domain.DeductionCaps
}

func defaultOldSlabs() []domain.TaxSlab {
	return []domain.TaxSlab{
		{UpTo: decimal.NewFromInt(250000), RatePct: decimal.Zero},
		{UpTo: decimal.NewFromInt(500000), RatePct: decimal.NewFromInt(5)},
		{UpTo: decimal.NewFromInt(1000000), RatePct: decimal.NewFromInt(20)},
		{RatePct: decimal.NewFromInt(30)},
	}
}

func defaultNewSlabs() []domain.TaxSlab {
	return []domain.TaxSlab{
		{UpTo: decimal.NewFromInt(300000), RatePct: decimal.Zero},
		{UpTo: decimal.NewFromInt(700000), RatePct: decimal.NewFromInt(5)},
		{UpTo: decimal.NewFromInt(1000000), RatePct: decimal.NewFromInt(10)},
		{UpTo: decimal.NewFromInt(1200000), RatePct: decimal.NewFromInt(15)},
		{UpTo: decimal.NewFromInt(1500000), RatePct: decimal.NewFromInt(20)},
		{RatePct: decimal.NewFromInt(30)},
	}
}

func defaultDeductionCaps() domain.DeductionCaps {
	return domain.DeductionCaps{
		Section80C:        decimal.NewFromInt(150000),
		Section80D:        decimal.NewFromInt(75000),
		Section80DSelf:    decimal.NewFromInt(25000),
		Section80DParents: decimal.NewFromInt(50000),
		Section24:         decimal.NewFromInt(200000),
		NPS80CCD1B:        decimal.NewFromInt(50000),
	}
}

// NewIncomeTaxCalculatorFY2024 creates a calculator with the FY 2024-25 rules.
func NewIncomeTaxCalculatorFY2024() *IncomeTaxCalculator {
	return NewIncomeTaxCalculator(domain.TaxConfig{})
}

// NewIncomeTaxCalculator creates a calculator from configured rules, falling
// back to FY 2024-25 for anything left unset.
func NewIncomeTaxCalculator(cfg domain.TaxConfig) *IncomeTaxCalculator {
	oldSlabs := cfg.Old.Slabs
	if len(oldSlabs) == 0 { // fallback defaults
		oldSlabs = defaultOldSlabs()
	}
	newSlabs := cfg.New.Slabs
	if len(newSlabs) == 0 {
		newSlabs = defaultNewSlabs()
	}

	caps := defaultDeductionCaps()
	caps.Section80C = orDefault(cfg.Caps.Section80C, caps.Section80C)
	caps.Section80D = orDefault(cfg.Caps.Section80D, caps.Section80D)
	caps.Section80DSelf = orDefault(cfg.Caps.Section80DSelf, caps.Section80DSelf)
	caps.Section80DParents = orDefault(cfg.Caps.Section80DParents, caps.Section80DParents)
	caps.Section24 = orDefault(cfg.Caps.Section24, caps.Section24)
	caps.NPS80CCD1B = orDefault(cfg.Caps.NPS80CCD1B, caps.NPS80CCD1B)

	return &IncomeTaxCalculator{
		AssessmentYear: orDefaultString(cfg.AssessmentYear, "2025-26"),
		Old: RegimeRules{
			Regime:            domain.RegimeOld,
			StandardDeduction: orDefault(cfg.Old.StandardDeduction, decimal.NewFromInt(50000)),
			RebateLimit:       orDefault(cfg.Old.RebateLimit, decimal.NewFromInt(500000)),
			Brackets:          BracketsFromSlabs(oldSlabs),
		},
		New: RegimeRules{
			Regime:            domain.RegimeNew,
			StandardDeduction: orDefault(cfg.New.StandardDeduction, decimal.NewFromInt(75000)),
			RebateLimit:       orDefault(cfg.New.RebateLimit, decimal.NewFromInt(700000)),
			Brackets:          BracketsFromSlabs(newSlabs),
		},
		CessRate: finmath.AnnualRate(orDefault(cfg.CessPct, decimal.NewFromInt(4))),
		Caps:     caps,
	}
}

// BracketsFromSlabs turns cumulative "up to" slabs into Min/Max brackets.
func BracketsFromSlabs(slabs []domain.TaxSlab) []TaxBracket {
	brackets := make([]TaxBracket, 0, len(slabs))
	lower := decimal.Zero
	for _, s := range slabs {
		brackets = append(brackets, TaxBracket{Min: lower, Max: s.UpTo, Rate: finmath.AnnualRate(s.RatePct)})
		if s.UpTo.IsZero() {
			break
		}
		lower = s.UpTo
	}
	return brackets
}

// SlabTax applies progressive brackets to taxable income.
func SlabTax(taxable decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	var total decimal.Decimal
	for _, bracket := range brackets {
		if taxable.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := taxable
		if !bracket.Max.IsZero() {
			upper = decimal.Min(taxable, bracket.Max)
		}
		incomeInBracket := upper.Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			total = total.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}
	return total
}

// OldRegimeDeductions sums the capped old-regime deductions, excluding the
// standard deduction. Health insurance may be given as a single 80D amount,
// as self and parents amounts, or both; the total is capped at the 80D limit.
func (tc *IncomeTaxCalculator) OldRegimeDeductions(in domain.TaxInput) decimal.Decimal {
	health := in.Section80D.
		Add(decimal.Min(in.Section80DSelf, tc.Caps.Section80DSelf)).
		Add(decimal.Min(in.Section80DParents, tc.Caps.Section80DParents))

	return in.HRA.
		Add(decimal.Min(in.Section80C, tc.Caps.Section80C)).
		Add(decimal.Min(health, tc.Caps.Section80D)).
		Add(decimal.Min(in.Section24, tc.Caps.Section24)).
		Add(decimal.Min(in.NPS80CCD1B, tc.Caps.NPS80CCD1B))
}

// Calculate computes both regimes and recommends the old one only when it is
// strictly cheaper.
func (tc *IncomeTaxCalculator) Calculate(in domain.TaxInput) (*domain.TaxResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	oldTax := tc.regimeTax(tc.Old, in.GrossIncome, tc.Old.StandardDeduction.Add(tc.OldRegimeDeductions(in)))
	newTax := tc.regimeTax(tc.New, in.GrossIncome, tc.New.StandardDeduction)

	res := &domain.TaxResult{
		Old:         oldTax,
		New:         newTax,
		Recommended: domain.RegimeNew,
		Savings:     oldTax.TotalTax.Sub(newTax.TotalTax).Abs(),
	}
	if oldTax.TotalTax.LessThan(newTax.TotalTax) {
		res.Recommended = domain.RegimeOld
	}
	return res, nil
}

func (tc *IncomeTaxCalculator) regimeTax(rules RegimeRules, gross, deductions decimal.Decimal) domain.RegimeTax {
	taxable := finmath.Max(gross.Sub(deductions), decimal.Zero)
	slabTax := SlabTax(taxable, rules.Brackets)

	rt := domain.RegimeTax{
		Regime:        rules.Regime,
		Deductions:    deductions,
		TaxableIncome: taxable,
		SlabTax:       slabTax,
		BaseTax:       slabTax,
	}
	if taxable.LessThanOrEqual(rules.RebateLimit) {
		rt.BaseTax = decimal.Zero
		rt.RebateApplied = slabTax.IsPositive()
	}
	rt.Cess = rt.BaseTax.Mul(tc.CessRate)
	rt.TotalTax = rt.BaseTax.Add(rt.Cess)
	if gross.IsPositive() {
		rt.EffectiveRatePct = finmath.Div(rt.TotalTax.Mul(hundred), gross)
	}
	return rt
}
