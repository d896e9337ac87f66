package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/config"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/output"
)

const (
	ratesFile    = "../testdata/finwise_rates.yaml"
	requestsDir  = "../testdata/requests/"
	housingFile  = requestsDir + "housing_loan.yaml"
	taxFile      = requestsDir + "tax.yaml"
	sipFile      = requestsDir + "sip.json"
	currencyFile = requestsDir + "currency.yaml"
	usageFile    = requestsDir + "cloud_usage.yaml"
	invalidFile  = requestsDir + "marriage_invalid.yaml"
)

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("Basic_Integration", TestBasicIntegration)
	t.Run("Error_Handling", TestErrorHandling)
	t.Run("Performance", TestPerformance)
	t.Run("Data_Consistency", TestDataConsistency)
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("basic_calculation", func(t *testing.T) {
		engine := calculation.NewCalculationEngine()
		report, err := engine.CalculateFrom(domain.KindEMI, nil)
		require.NoError(t, err)
		require.NotNil(t, report)

		loan, ok := report.(*domain.LoanResult)
		require.True(t, ok, "emi should produce a loan result")
		assert.Equal(t, "12398.57", loan.EMI.StringFixed(2))
	})

	t.Run("basic_output_generation", func(t *testing.T) {
		engine := calculation.NewCalculationEngine()
		report, err := engine.CalculateFrom(domain.KindSIP, nil)
		require.NoError(t, err)

		data, err := output.GetFormatterByName("console").Format(&output.Result{Kind: domain.KindSIP, Report: report})
		require.NoError(t, err)
		assert.Contains(t, string(data), "SIP CALCULATOR")
	})
}

// TestIntegrationRegression pins results that must not drift between releases
func TestIntegrationRegression(t *testing.T) {
	setupTestEnvironment(t)
	engine := loadEngine(t, "")

	t.Run("tax_regime_comparison", func(t *testing.T) {
		report := calculateRequest(t, engine, taxFile)
		tax := report.(*domain.TaxResult)

		assertDecimal(t, "450000", tax.Old.Deductions)
		assertDecimal(t, "750000", tax.Old.TaxableIncome)
		assertDecimal(t, "65000", tax.Old.TotalTax)
		assertDecimal(t, "1125000", tax.New.TaxableIncome)
		assertDecimal(t, "71500", tax.New.TotalTax)
		assert.Equal(t, domain.RegimeOld, tax.Recommended)
		assertDecimal(t, "6500", tax.Savings)
	})

	t.Run("sip_invested_amount", func(t *testing.T) {
		sip := calculateRequest(t, engine, sipFile).(*domain.SIPResult)

		assertDecimal(t, "600000", sip.Invested)
		assert.True(t, sip.FutureValue.GreaterThan(sip.Invested), "returns should be positive")
		assert.Len(t, sip.Yearly, 10)
	})

	t.Run("currency_built_in_rates", func(t *testing.T) {
		cur := calculateRequest(t, engine, currencyFile).(*domain.CurrencyResult)

		assertDecimal(t, "83.5", cur.Rate)
		assertDecimal(t, "8350", cur.Converted)
	})

	t.Run("currency_configured_rates", func(t *testing.T) {
		cur := calculateRequest(t, loadEngine(t, ratesFile), currencyFile).(*domain.CurrencyResult)

		assertDecimal(t, "84.1", cur.Rate)
		assertDecimal(t, "8410", cur.Converted)
	})
}

// TestIntegrationBenchmarks runs performance benchmarks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}
	setupTestEnvironment(t)

	engine := loadEngine(t, "")

	t.Run("calculation_performance", func(t *testing.T) {
		start := time.Now()
		for _, kind := range engine.Kinds() {
			_, err := engine.CalculateFrom(kind, nil)
			require.NoError(t, err, "Should calculate %s", kind)
		}
		duration := time.Since(start)

		assert.Less(t, duration, 5*time.Second, "All calculators should finish within 5 seconds")
		t.Logf("Ran %d calculators in %v", len(engine.Kinds()), duration)
	})

	t.Run("output_generation_performance", func(t *testing.T) {
		report, err := engine.CalculateFrom(domain.KindHousingLoan, nil)
		require.NoError(t, err)
		res := &output.Result{Kind: domain.KindHousingLoan, Report: report}

		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("output_%s", format), func(t *testing.T) {
				start := time.Now()
				_, err := output.GetFormatterByName(format).Format(res)
				duration := time.Since(start)

				require.NoError(t, err, "Should generate %s output", format)
				assert.Less(t, duration, 5*time.Second, "%s output should generate within 5 seconds", format)
				t.Logf("%s output generated in %v", format, duration)
			})
		}
	})
}

// TestIntegrationDataValidation tests data validation across the system
func TestIntegrationDataValidation(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("configuration_data_validation", func(t *testing.T) {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(ratesFile)
		require.NoError(t, err, "Should load config file: %s", ratesFile)
		require.NoError(t, parser.ValidateConfiguration(cfg))

		assert.Equal(t, "2025.1", cfg.Metadata.Version)
		assertDecimal(t, "4", cfg.Tax.CessPct)
		require.Len(t, cfg.Rewards.Cards, 1)
		assert.Equal(t, "everyday", cfg.Rewards.Cards[0].ID)
		assertDecimal(t, "2500000", cfg.Ranges["emi"]["principal"].Default)
	})

	t.Run("calculation_result_validation", func(t *testing.T) {
		engine := loadEngine(t, ratesFile)

		for _, kind := range engine.Kinds() {
			t.Run(string(kind), func(t *testing.T) {
				report, err := engine.CalculateFrom(kind, nil)
				require.NoError(t, err)

				summary := report.Summary()
				require.NotEmpty(t, summary, "%s should report summary metrics", kind)
				for _, m := range summary {
					assert.NotEmpty(t, m.Label, "metric labels should be set")
				}
			})
		}
	})
}

func setupTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("FINWISE_LOG_LEVEL", "error")
	t.Setenv("FINWISE_OUTPUT", "console")
}

func loadEngine(t *testing.T, path string) *calculation.CalculationEngine {
	t.Helper()
	engine, err := config.NewInputParser().LoadEngine(path)
	require.NoError(t, err, "Should load engine from %q", path)
	return engine
}

func calculateRequest(t *testing.T, engine *calculation.CalculationEngine, path string) domain.Report {
	t.Helper()
	req, err := config.NewInputParser().LoadRequest(path)
	require.NoError(t, err, "Should load request %s", path)
	report, err := engine.CalculateFrom(req.Kind, req.Decoder(nil))
	require.NoError(t, err, "Should calculate request %s", path)
	return report
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}
