package calculation

import (
	"testing"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeTaxCalculator_Scenario(t *testing.T) {
	tc := NewIncomeTaxCalculatorFY2024()
	res, err := tc.Calculate(domain.TaxInput{
		GrossIncome: dec("1200000"),
		HRA:         dec("25000"),
		Section80C:  dec("150000"),
		Section80D:  dec("25000"),
		Section24:   dec("200000"),
	})
	require.NoError(t, err)

	assert.True(t, res.Old.Deductions.Equal(dec("450000")))
	assert.True(t, res.Old.TaxableIncome.Equal(dec("750000")))
	assert.True(t, res.Old.BaseTax.Equal(dec("62500")))
	assert.True(t, res.Old.Cess.Equal(dec("2500")))
	assert.True(t, res.Old.TotalTax.Equal(dec("65000")))

	assert.True(t, res.New.TaxableIncome.Equal(dec("1125000")))
	assert.True(t, res.New.TotalTax.Equal(dec("71500")))

	assert.Equal(t, domain.RegimeOld, res.Recommended)
	assert.True(t, res.Savings.Equal(dec("6500")))
}

func TestIncomeTaxCalculator_RebateBoundaries(t *testing.T) {
	tc := NewIncomeTaxCalculatorFY2024()

	tests := []struct {
		name    string
		gross   string
		regime  domain.Regime
		total   string
		rebate  bool
		taxable string
	}{
		{"new regime at limit", "775000", domain.RegimeNew, "0", true, "700000"},
		{"new regime one rupee above", "775001", domain.RegimeNew, "20800.104", false, "700001"},
		{"old regime at limit", "550000", domain.RegimeOld, "0", true, "500000"},
		{"old regime one rupee above", "550001", domain.RegimeOld, "13000.052", false, "500001"},
		{"below every slab", "250000", domain.RegimeOld, "0", false, "200000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tc.Calculate(domain.TaxInput{GrossIncome: dec(tt.gross)})
			require.NoError(t, err)
			rt := res.New
			if tt.regime == domain.RegimeOld {
				rt = res.Old
			}
			assert.True(t, rt.TaxableIncome.Equal(dec(tt.taxable)), "taxable %s", rt.TaxableIncome)
			assert.True(t, rt.TotalTax.Equal(dec(tt.total)), "total %s", rt.TotalTax)
			assert.Equal(t, tt.rebate, rt.RebateApplied)
		})
	}
}

func TestIncomeTaxCalculator_TiesFavourNewRegime(t *testing.T) {
	tc := NewIncomeTaxCalculatorFY2024()
	for _, gross := range []string{"0", "300000", "550000"} {
		res, err := tc.Calculate(domain.TaxInput{GrossIncome: dec(gross)})
		require.NoError(t, err)
		assert.True(t, res.Old.TotalTax.Equal(res.New.TotalTax), "gross %s", gross)
		assert.Equal(t, domain.RegimeNew, res.Recommended)
		assert.True(t, res.Savings.IsZero())
	}
}

func TestIncomeTaxCalculator_Monotonic(t *testing.T) {
	tc := NewIncomeTaxCalculatorFY2024()
	prevOld, prevNew := decimal.Zero, decimal.Zero
	for gross := int64(0); gross <= 5000000; gross += 25000 {
		res, err := tc.Calculate(domain.TaxInput{GrossIncome: decimal.NewFromInt(gross), Section80C: dec("150000")})
		require.NoError(t, err)
		assert.False(t, res.Old.TotalTax.LessThan(prevOld), "old regime tax fell at %d", gross)
		assert.False(t, res.New.TotalTax.LessThan(prevNew), "new regime tax fell at %d", gross)
		assert.False(t, res.Old.TotalTax.IsNegative())
		prevOld, prevNew = res.Old.TotalTax, res.New.TotalTax
	}
}

func TestIncomeTaxCalculator_DeductionCaps(t *testing.T) {
	tc := NewIncomeTaxCalculatorFY2024()

	tests := []struct {
		name     string
		input    domain.TaxInput
		expected string
	}{
		{"80C capped", domain.TaxInput{Section80C: dec("300000")}, "150000"},
		{"self and parents capped separately", domain.TaxInput{Section80DSelf: dec("40000"), Section80DParents: dec("60000")}, "75000"},
		{"health total capped", domain.TaxInput{Section80D: dec("10000"), Section80DSelf: dec("25000"), Section80DParents: dec("50000")}, "75000"},
		{"home loan capped", domain.TaxInput{Section24: dec("350000")}, "200000"},
		{"NPS capped", domain.TaxInput{NPS80CCD1B: dec("80000")}, "50000"},
		{"HRA uncapped", domain.TaxInput{HRA: dec("400000")}, "400000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tc.OldRegimeDeductions(tt.input)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s", got)
		})
	}
}

func TestIncomeTaxCalculator_NegativeInput(t *testing.T) {
	tc := NewIncomeTaxCalculatorFY2024()
	_, err := tc.Calculate(domain.TaxInput{GrossIncome: dec("-1")})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "gross_income", ve.Field)
}

func TestNewIncomeTaxCalculator_ConfiguredSlabs(t *testing.T) {
	tc := NewIncomeTaxCalculator(domain.TaxConfig{
		AssessmentYear: "2026-27",
		New: domain.RegimeConfig{
			StandardDeduction: dec("75000"),
			RebateLimit:       dec("1200000"),
			Slabs: []domain.TaxSlab{
				{UpTo: dec("400000"), RatePct: dec("0")},
				{UpTo: dec("800000"), RatePct: dec("5")},
				{RatePct: dec("10")},
			},
		},
	})
	assert.Equal(t, "2026-27", tc.AssessmentYear)
	require.Len(t, tc.New.Brackets, 3)
	assert.True(t, tc.New.Brackets[2].Max.IsZero())
	assert.Len(t, tc.Old.Brackets, 4, "old regime keeps the defaults")

	res, err := tc.Calculate(domain.TaxInput{GrossIncome: dec("1275000")})
	require.NoError(t, err)
	assert.True(t, res.New.TotalTax.IsZero())
	assert.True(t, res.New.RebateApplied)
}

func TestSlabTax(t *testing.T) {
	brackets := BracketsFromSlabs(defaultOldSlabs())
	tests := []struct {
		taxable  string
		expected string
	}{
		{"0", "0"},
		{"250000", "0"},
		{"500000", "12500"},
		{"1000000", "112500"},
		{"1500000", "262500"},
	}
	for _, tt := range tests {
		t.Run(tt.taxable, func(t *testing.T) {
			got := SlabTax(dec(tt.taxable), brackets)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s", got)
		})
	}
}
