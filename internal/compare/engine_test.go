package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageProfile(provider string) domain.CloudUsageInput {
	return domain.CloudUsageInput{
		Provider: provider,
		Compute: domain.ComputeUsage{
			Instances:     decimal.NewFromInt(2),
			HoursPerMonth: decimal.NewFromInt(730),
		},
		Storage:       domain.StorageUsage{GB: decimal.NewFromInt(100)},
		Database:      domain.DatabaseUsage{Instances: decimal.NewFromInt(1), StorageGB: decimal.NewFromInt(20)},
		TransferOutGB: decimal.NewFromInt(50),
	}
}

func TestCompareCloud(t *testing.T) {
	calc := calculation.NewCalculationEngine()
	engine := NewCompareEngine(calc)

	compSet, err := engine.CompareCloud(context.Background(), usageProfile("azure"))
	require.NoError(t, err)

	assert.Equal(t, SubjectCloud, compSet.Subject)
	assert.True(t, compSet.LowerIsBetter)
	assert.Equal(t, "azure", compSet.BaseName)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "azure", compSet.BaseResult.Name)
	require.Len(t, compSet.AlternativeResults, 2)

	// Every alternative matches a direct calculation on its provider.
	cheapest := ""
	lowest := decimal.Zero
	for _, r := range compSet.All() {
		direct, err := calc.CloudCalc.Calculate(usageProfile(r.Name))
		require.NoError(t, err)
		assert.True(t, direct.TotalAnnual.Equal(r.Annual), "%s annual", r.Name)
		assert.True(t, direct.TotalMonthly.Equal(r.Monthly), "%s monthly", r.Name)
		assert.Len(t, r.Lines, 5)
		if cheapest == "" || r.Annual.LessThan(lowest) {
			cheapest, lowest = r.Name, r.Annual
		}
	}
	assert.Equal(t, cheapest, compSet.Best().Name)
	assert.Equal(t, 1, compSet.Best().Rank)

	for _, alt := range compSet.AlternativeResults {
		assert.True(t, alt.DiffFromBase.Equal(alt.Annual.Sub(compSet.BaseResult.Annual)))
	}
	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompareCloud_DefaultBase(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.CompareCloud(context.Background(), usageProfile(""))
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderAWS, compSet.BaseName)
}

func TestCompareCloud_DegradedNotes(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	usage := usageProfile("aws")
	usage.Compute.InstanceType = "quantum.huge"

	compSet, err := engine.CompareCloud(context.Background(), usage)
	require.NoError(t, err)

	for _, r := range compSet.All() {
		assert.Len(t, r.Notes, 1, r.Name)
	}
	assert.Contains(t, compSet.Recommendations[len(compSet.Recommendations)-1], "used default rates")
}

func TestCompareCloud_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	_, err := engine.CompareCloud(context.Background(), usageProfile("oracle"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	bad := usageProfile("aws")
	bad.TransferOutGB = decimal.NewFromInt(-1)
	_, err = engine.CompareCloud(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.CompareCloud(ctx, usageProfile("aws"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareCloud_ConfiguredProvider(t *testing.T) {
	calc := calculation.NewCalculationEngineWithConfig(domain.EngineConfig{
		Cloud: domain.CloudConfig{
			Providers: map[string]domain.ProviderPricing{
				"budget": {
					Services:            domain.ServiceNames{Compute: "VM", Storage: "Blob", Database: "SQL", Transfer: "Egress", Functions: "Fn"},
					ComputeHourly:       map[string]decimal.Decimal{"tiny": decimal.NewFromFloat(0.001)},
					DefaultComputeType:  "tiny",
					DatabaseHourly:      map[string]decimal.Decimal{"tiny": decimal.NewFromFloat(0.001)},
					DefaultDatabaseTier: "tiny",
					DatabaseHours:       decimal.NewFromInt(730),
				},
			},
		},
	})
	engine := NewCompareEngine(calc)

	compSet, err := engine.CompareCloud(context.Background(), usageProfile("aws"))
	require.NoError(t, err)

	assert.Len(t, compSet.All(), 4)
	assert.Equal(t, "budget", compSet.Best().Name)
}

func TestCompareCards(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.CompareCards(context.Background(), domain.RewardsInput{})
	require.NoError(t, err)

	assert.Equal(t, SubjectCards, compSet.Subject)
	assert.False(t, compSet.LowerIsBetter)
	assert.Equal(t, "finwise-infinity", compSet.BaseName)
	assert.Equal(t, 1, compSet.BaseResult.Rank)
	assert.True(t, compSet.BaseResult.Annual.Equal(decimal.NewFromInt(36100)))

	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, "traveler-select", compSet.AlternativeResults[0].Name)
	assert.Equal(t, 2, compSet.AlternativeResults[0].Rank)
	assert.True(t, compSet.AlternativeResults[0].Annual.Equal(decimal.NewFromInt(24380)))
	assert.True(t, compSet.AlternativeResults[0].DiffFromBase.Equal(decimal.NewFromInt(-11720)))
	assert.Equal(t, "reward-max-pro", compSet.AlternativeResults[1].Name)
	assert.True(t, compSet.AlternativeResults[1].Annual.Equal(decimal.NewFromInt(2870)))

	assert.Equal(t, []string{
		"FinWise Infinity already gives the best net benefit",
		"FinWise Infinity reaches 1 of 3 travel goals in a year",
	}, compSet.Recommendations)
}

func TestCompareCards_BaseByID(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.CompareCards(context.Background(), domain.RewardsInput{CardID: "reward-max-pro"})
	require.NoError(t, err)

	assert.Equal(t, 3, compSet.BaseResult.Rank)
	assert.Equal(t, "finwise-infinity", compSet.Best().Name)
	assert.Equal(t, "Best value: FinWise Infinity earns ₹33230 more per year than Reward Max Pro", compSet.Recommendations[0])
}

func TestCompareCards_InlineCard(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.CompareCards(context.Background(), domain.RewardsInput{
		Card: &domain.CreditCardProfile{
			ID:         "cashback",
			Name:       "Flat Cashback",
			RewardRate: decimal.NewFromInt(100),
			PointValue: decimal.NewFromFloat(0.015),
		},
		Spend: map[string]decimal.Decimal{"shopping": decimal.NewFromInt(10000)},
	})
	require.NoError(t, err)

	assert.Equal(t, "cashback", compSet.BaseName)
	assert.Len(t, compSet.All(), 4)
	// 10000 spend at 1.5% is 150 a month, 1800 a year with no fee.
	assert.True(t, compSet.BaseResult.Annual.Equal(decimal.NewFromInt(1800)), compSet.BaseResult.Annual.String())
}

func TestCompareCards_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	_, err := engine.CompareCards(context.Background(), domain.RewardsInput{CardID: "platinum-unicorn"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = engine.CompareCards(context.Background(), domain.RewardsInput{
		Spend: map[string]decimal.Decimal{"dining": decimal.NewFromInt(-5)},
	})
	require.Error(t, err)
}

func TestCompare_StartsFromDefaults(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), SubjectCloud, calculation.BuildInputNode(map[string]string{
		"provider": "gcp",
	}).Decode)
	require.NoError(t, err)
	assert.Equal(t, "gcp", compSet.BaseName)
	assert.Len(t, compSet.All(), 3)

	compSet, err = engine.Compare(context.Background(), SubjectCards, nil)
	require.NoError(t, err)
	assert.Equal(t, "finwise-infinity", compSet.BaseName)
	assert.True(t, compSet.BaseResult.Annual.Equal(decimal.NewFromInt(36100)))

	_, err = engine.Compare(context.Background(), SubjectCloud, calculation.BuildInputNode(map[string]string{
		"compute.instances": "lots",
	}).Decode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode cloud input")
}
