package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func housingResult(t *testing.T) *Result {
	t.Helper()
	report, err := calculation.CalculateHousingLoan(domain.LoanInput{
		Principal:        decimal.NewFromInt(1000000),
		AnnualRatePct:    decimal.NewFromFloat(8.5),
		Tenure:           10,
		TenureUnit:       domain.TenureYears,
		ProcessingFeePct: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	return &Result{Kind: domain.KindHousingLoan, Report: report}
}

func degradedResult() *Result {
	return &Result{
		Kind: domain.KindCloudCost,
		Report: &domain.CloudCostResult{
			Provider:     "aws",
			Lines:        []domain.CostLine{{Service: "Compute", Monthly: decimal.NewFromInt(1000)}},
			TotalMonthly: decimal.NewFromInt(1000),
			TotalAnnual:  decimal.NewFromInt(12000),
			Degraded:     []string{"unknown instance type \"m9.huge\", using default rate"},
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	var received *Result
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(res *Result) ([]byte, error) {
			received = res
			return []byte("test output"), nil
		},
	}
	res := housingResult(t)

	out, err := formatter.Format(res)

	require.NoError(t, err)
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Same(t, res, received)
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F:  func(*Result) ([]byte, error) { return []byte("test output content"), nil },
	}

	filename, err := WriteFormatted(formatter, housingResult(t), "txt")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "housing_loan_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))
	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F:  func(*Result) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}

	filename, err := WriteFormatted(formatter, housingResult(t), "txt")

	require.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestWriteFormattedTo_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "loan.csv")

	err := WriteFormattedTo(CSVFormatter{}, housingResult(t), path)

	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Metric,Value\n"))
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"summary", "summary"},
		{"JSON", "json"},
		{" csv ", "csv"},
		{"excel", "xlsx"},
		{"text", "console"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json", "summary", "xlsx"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "excel")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "xlsx", Extension("excel"))
	assert.Equal(t, "csv", Extension("csv"))
	assert.Equal(t, "txt", Extension("console"))
	assert.True(t, IsBinary("xlsx"))
	assert.False(t, IsBinary("json"))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(housingResult(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "HOUSING LOAN")
	assert.Contains(t, content, "₹12,398.57")
	assert.Contains(t, content, "₹10,000.00")
	assert.Contains(t, content, "Amortization Schedule")
	assert.Contains(t, content, "Balance")
}

func TestConsoleFormatter_SummaryOnly(t *testing.T) {
	out, err := ConsoleFormatter{SummaryOnly: true}.Format(housingResult(t))
	require.NoError(t, err)

	assert.Contains(t, string(out), "Monthly EMI")
	assert.NotContains(t, string(out), "Amortization Schedule")
}

func TestConsoleFormatter_Notes(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(degradedResult())
	require.NoError(t, err)

	assert.Contains(t, string(out), "note: unknown instance type")
	assert.Contains(t, string(out), "aws")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(degradedResult())
	require.NoError(t, err)

	var decoded struct {
		Kind   string                 `json:"kind"`
		Title  string                 `json:"title"`
		Result map[string]interface{} `json:"result"`
		Notes  []string               `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "cloud_cost", decoded.Kind)
	assert.Equal(t, "Cloud Cost Estimator", decoded.Title)
	assert.Equal(t, "aws", decoded.Result["provider"])
	assert.Equal(t, "12000", decoded.Result["total_annual"])
	assert.Len(t, decoded.Notes, 1)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(housingResult(t))
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Metric", "Value"}, records[0])
	assert.Equal(t, []string{"Monthly EMI", "12398.57"}, records[1])
	assert.Equal(t, []string{"Months", "120"}, records[2])

	var header, last []string
	for i, rec := range records {
		if len(rec) == 1 && rec[0] == "Amortization Schedule" {
			header = records[i+1]
		}
	}
	last = records[len(records)-1]
	assert.Equal(t, []string{"Period", "Principal", "Interest", "Balance"}, header)
	assert.Equal(t, "10", last[0])
	assert.Equal(t, "0.00", last[3])
}

func TestXLSXFormatter(t *testing.T) {
	out, err := XLSXFormatter{}.Format(housingResult(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "Amortization Schedule"}, f.GetSheetList())

	title, err := f.GetCellValue(SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Housing Loan", title)
	label, err := f.GetCellValue(SummarySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Monthly EMI", label)

	rows, err := f.GetRows("Amortization Schedule")
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, []string{"Period", "Principal", "Interest", "Balance"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(housingResult(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Housing Loan | finwise</title>")
	assert.Contains(t, content, "₹12,398.57")
	assert.Contains(t, content, "<h2>Amortization Schedule</h2>")
	assert.Contains(t, content, "<h2>Assumptions</h2>")
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{SummarySheet: true}

	assert.Equal(t, "Monthly-Yearly", sheetName("Monthly/Yearly", used))
	assert.Equal(t, "Monthly-Yearly (2)", sheetName("Monthly/Yearly", used))

	long := sheetName(strings.Repeat("x", 40), used)
	assert.Len(t, long, maxSheetName)
	again := sheetName(strings.Repeat("x", 40), used)
	assert.Len(t, again, maxSheetName)
	assert.True(t, strings.HasSuffix(again, " (2)"))
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name   string
		value  decimal.Decimal
		format domain.ValueFormat
		want   string
	}{
		{"currency", decimal.NewFromFloat(1239857.5), domain.FormatCurrency, "₹1,239,857.50"},
		{"negative currency", decimal.NewFromFloat(-1234.5), domain.FormatCurrency, "-₹1,234.50"},
		{"zero currency", decimal.Zero, domain.FormatCurrency, "₹0.00"},
		{"percent", decimal.NewFromFloat(8.5), domain.FormatPercent, "8.50%"},
		{"integer", decimal.NewFromInt(1234567), domain.FormatInteger, "1,234,567"},
		{"number", decimal.NewFromFloat(1848.004), domain.FormatNumber, "1,848.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value, tt.format))
		})
	}

	assert.Equal(t, "aws", FormatMetric(domain.Label("Provider", "aws")))
	assert.Equal(t, "120", RawValue(decimal.NewFromInt(120), domain.FormatInteger))
	assert.Equal(t, "12398.57", RawMetric(domain.Money("EMI", decimal.RequireFromString("12398.5725"))))
}

func TestAssumptions(t *testing.T) {
	for _, kind := range domain.AllKinds() {
		assert.NotEmpty(t, Assumptions(kind), kind)
	}
}

func carbonResult(t *testing.T) *Result {
	t.Helper()
	report, err := calculation.NewCarbonFootprintCalculator(domain.CarbonConfig{}).Calculate(domain.CarbonFootprintInput{
		Energy: domain.EnergyUsage{ElectricityKwhPerMonth: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)
	return &Result{Kind: domain.KindCarbon, Report: report}
}

func TestFormatters_RowLabels(t *testing.T) {
	res := carbonResult(t)

	t.Run("console", func(t *testing.T) {
		out, err := ConsoleFormatter{}.Format(res)
		require.NoError(t, err)
		assert.Contains(t, string(out), "Month")
		assert.Contains(t, string(out), "Jan")
		assert.Contains(t, string(out), "Dec")
	})

	t.Run("csv", func(t *testing.T) {
		out, err := CSVFormatter{}.Format(res)
		require.NoError(t, err)

		r := csv.NewReader(bytes.NewReader(out))
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		require.NoError(t, err)

		var header, first []string
		for i, rec := range records {
			if len(rec) == 1 && rec[0] == "Monthly Emissions (kg CO2)" {
				header, first = records[i+1], records[i+2]
			}
		}
		assert.Equal(t, []string{"Month", "CO2"}, header)
		require.Len(t, first, 2)
		assert.Equal(t, "Jan", first[0])
		assert.Equal(t, "Dec", records[len(records)-1][0])
	})

	t.Run("xlsx", func(t *testing.T) {
		out, err := XLSXFormatter{}.Format(res)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(out))
		require.NoError(t, err)
		defer f.Close()

		sheets := f.GetSheetList()
		require.Len(t, sheets, 2)
		rows, err := f.GetRows(sheets[1])
		require.NoError(t, err)
		require.Len(t, rows, 13)
		assert.Equal(t, []string{"Month", "CO2"}, rows[0])
		assert.Equal(t, "Jan", rows[1][0])
		assert.Equal(t, "Dec", rows[12][0])
	})

	t.Run("html", func(t *testing.T) {
		out, err := HTMLFormatter{}.Format(res)
		require.NoError(t, err)
		assert.Contains(t, string(out), "<th>Month</th>")
		assert.Contains(t, string(out), ">Jan</td>")
	})
}
