package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleCloudSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}
	for _, want := range []string{
		"CLOUD PROVIDER COMPARISON",
		"Base: aws",
		"Configuration: /path/to/finwise.yaml",
		"₹15,000.00",
		"base",
		"-₹60000",
		"+₹60000",
		"EC2",
		"note: unknown instance type",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}

	// Rows are printed in rank order.
	if strings.Index(result, "gcp") > strings.Index(result, "azure") {
		t.Error("Expected gcp before azure")
	}
}

func TestTableFormatter_Format_NoAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := &ComparisonSet{
		Subject:      SubjectCards,
		Title:        "Credit Card Comparison",
		MonthlyLabel: "Monthly Cash Value",
		AnnualLabel:  "Net Annual Benefit",
		BaseName:     "solo",
		BaseResult: &ComparisonResult{
			Name: "solo", Description: "Solo Card", Rank: 1,
			Monthly: decimal.NewFromInt(500), Annual: decimal.NewFromInt(6000),
		},
		AlternativeResults: []ComparisonResult{},
		Recommendations:    []string{},
	}

	result := formatter.Format(compSet)

	if !strings.Contains(result, "Solo Card") {
		t.Error("Expected base card in table")
	}
	if strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("Should not print an empty recommendations section")
	}
	if strings.Contains(result, "Configuration:") {
		t.Error("Should not print an empty configuration path")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.FormatCompact(sampleCloudSet())

	want := "Base: aws | gcp: -₹60000 | azure: +₹60000"
	if result != want {
		t.Errorf("FormatCompact = %q, want %q", result, want)
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := formatter.truncate("a very long card name indeed", 10); got != "a very ..." {
		t.Errorf("Expected truncated string, got %q", got)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(950), "₹950"},
		{decimal.NewFromInt(250000), "₹2.50L"},
		{decimal.NewFromInt(-250000), "-₹2.50L"},
		{decimal.NewFromInt(32500000), "₹3.25Cr"},
	}
	for _, tt := range tests {
		if got := formatCompact(tt.in); got != tt.want {
			t.Errorf("formatCompact(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleCloudSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(records))
	}
	if records[0][4] != "Monthly Cost" || records[0][5] != "Annual Cost" {
		t.Errorf("Expected labels from the comparison, got %v", records[0])
	}
	if records[1][1] != "gcp" || records[1][0] != "1" || records[1][3] != "alternative" {
		t.Errorf("Unexpected first row: %v", records[1])
	}
	if records[2][1] != "aws" || records[2][3] != "base" {
		t.Errorf("Expected base in second row: %v", records[2])
	}
	if records[1][6] != "-60000.00" || records[1][7] != "-25.00" {
		t.Errorf("Unexpected diff columns: %v", records[1])
	}
	if !strings.Contains(records[3][8], "unknown instance type") {
		t.Errorf("Expected notes column, got %v", records[3])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(sampleCloudSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["best"] != "gcp" {
			t.Errorf("Expected best gcp, got %v", decoded["best"])
		}
		if decoded["baseName"] != "aws" || decoded["subject"] != "cloud" {
			t.Errorf("Unexpected envelope: %v", decoded)
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("Pretty=%v but indentation mismatch", pretty)
		}
	}
}
