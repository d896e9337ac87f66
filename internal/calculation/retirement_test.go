package calculation

import (
	"testing"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestCalculateNPS(t *testing.T) {
	rc := NewRetirementCalculatorDefaults()
	res, err := rc.CalculateNPS(domain.NPSInput{
		CurrentAge:          30,
		RetirementAge:       60,
		MonthlyContribution: dec("5000"),
		ExpectedReturnPct:   dec("10"),
		AnnuityPct:          dec("40"),
		AnnuityReturnPct:    dec("6"),
	})
	require.NoError(t, err)

	assert.True(t, res.TotalContribution.Equal(dec("1800000")))
	assert.InDelta(t, 11396626.62, res.Corpus.InexactFloat64(), 0.01)
	assert.True(t, res.AnnuityAmount.Add(res.LumpSum).Equal(res.Corpus))
	assert.InDelta(t, res.Corpus.InexactFloat64()*0.4, res.AnnuityAmount.InexactFloat64(), 1e-6)
	assert.InDelta(t, 22793.25, res.MonthlyPension.InexactFloat64(), 0.01)

	require.Len(t, res.Yearly, 30)
	assert.Equal(t, 31, res.Yearly[0].Age)
	assert.Equal(t, 60, res.Yearly[29].Age)
	assert.True(t, res.Yearly[29].Value.Equal(res.Corpus))
}

func TestCalculateNPS_AgeOrder(t *testing.T) {
	rc := NewRetirementCalculatorDefaults()
	_, err := rc.CalculateNPS(domain.NPSInput{
		CurrentAge:          60,
		RetirementAge:       60,
		MonthlyContribution: dec("5000"),
		ExpectedReturnPct:   dec("10"),
		AnnuityPct:          dec("40"),
		AnnuityReturnPct:    dec("6"),
	})
	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "retirement_age", ve.Field)
}

func TestCalculatePF(t *testing.T) {
	rc := NewRetirementCalculatorDefaults()

	t.Run("single year", func(t *testing.T) {
		res, err := rc.CalculatePF(domain.PFInput{
			BasicSalary:     dec("10000"),
			CurrentAge:      57,
			RetirementAge:   58,
			InterestRatePct: dec("8"),
		})
		require.NoError(t, err)
		require.Len(t, res.Yearly, 1)

		assert.True(t, res.EmployeeContribution.Equal(dec("14400")))
		assert.True(t, res.EmployerContribution.Equal(dec("4404")))
		// Half of the year's contributions earn interest.
		assert.True(t, res.TotalInterest.Equal(dec("752.16")), "interest %s", res.TotalInterest)
		assert.True(t, res.Corpus.Equal(dec("19556.16")), "corpus %s", res.Corpus)
		assert.Equal(t, 58, res.Yearly[0].Age)
	})

	t.Run("salary grows each year", func(t *testing.T) {
		res, err := rc.CalculatePF(domain.PFInput{
			BasicSalary:        dec("30000"),
			CurrentAge:         30,
			RetirementAge:      58,
			AnnualIncrementPct: dec("5"),
			InterestRatePct:    dec("8.15"),
			CurrentBalance:     dec("100000"),
		})
		require.NoError(t, err)
		require.Len(t, res.Yearly, 28)

		assert.True(t, res.Yearly[1].BasicSalary.Equal(dec("31500")))
		last := res.Yearly[27]
		assert.True(t, last.Balance.Equal(res.Corpus))
		assert.True(t, last.CumulativeContribution.Equal(res.EmployeeContribution.Add(res.EmployerContribution)))
		assert.True(t, res.Corpus.Equal(dec("100000").Add(last.CumulativeContribution).Add(res.TotalInterest)))
	})
}

func TestCalculateGratuity(t *testing.T) {
	rc := NewRetirementCalculatorDefaults()

	tests := []struct {
		name     string
		years    string
		covered  *bool
		eligible bool
		amount   float64
		divisor  int
	}{
		{"covered ten years", "10", nil, true, 288461.54, 26},
		{"exactly five years", "5", boolPtr(true), true, 144230.77, 26},
		{"just under five years", "4.99", nil, false, 0, 26},
		{"not covered", "10", boolPtr(false), true, 250000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := rc.CalculateGratuity(domain.GratuityInput{
				BasicSalary:    dec("50000"),
				YearsOfService: dec(tt.years),
				Covered:        tt.covered,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, res.Eligible)
			assert.InDelta(t, tt.amount, res.Amount.InexactFloat64(), 0.01)
			assert.Equal(t, tt.divisor, res.Divisor)
		})
	}
}

func TestNewRetirementCalculator_Overrides(t *testing.T) {
	rc := NewRetirementCalculator(domain.RetirementConfig{PFEmployerPct: dec("12")})
	assert.True(t, rc.PFEmployerPct.Equal(dec("12")))
	assert.True(t, rc.PFEmployeePct.Equal(dec("12")))
	assert.True(t, rc.GratuityDivisorCovered.Equal(dec("26")))
}
