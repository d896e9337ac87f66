package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleCloudSet() *ComparisonSet {
	compSet := &ComparisonSet{
		Subject:       SubjectCloud,
		Title:         "Cloud Provider Comparison",
		MonthlyLabel:  "Monthly Cost",
		AnnualLabel:   "Annual Cost",
		LowerIsBetter: true,
		BaseName:      "aws",
		ConfigPath:    "/path/to/finwise.yaml",
		BaseResult: &ComparisonResult{
			Name:    "aws",
			Rank:    2,
			Monthly: decimal.NewFromInt(20000),
			Annual:  decimal.NewFromInt(240000),
			Lines: []domain.CostLine{
				{Service: "EC2", Monthly: decimal.NewFromInt(15000)},
				{Service: "S3", Monthly: decimal.NewFromInt(5000)},
			},
		},
		AlternativeResults: []ComparisonResult{
			{
				Name:         "gcp",
				Rank:         1,
				Monthly:      decimal.NewFromInt(15000),
				Annual:       decimal.NewFromInt(180000),
				DiffFromBase: decimal.NewFromInt(-60000),
				PctFromBase:  decimal.NewFromInt(-25),
			},
			{
				Name:         "azure",
				Rank:         3,
				Monthly:      decimal.NewFromInt(25000),
				Annual:       decimal.NewFromInt(300000),
				DiffFromBase: decimal.NewFromInt(60000),
				PctFromBase:  decimal.NewFromInt(25),
				Notes:        []string{"unknown instance type \"x\", priced as B2s"},
			},
		},
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func TestParseSubject(t *testing.T) {
	tests := []struct {
		in   string
		want Subject
		kind domain.Kind
	}{
		{"cloud", SubjectCloud, domain.KindCloudCost},
		{"providers", SubjectCloud, domain.KindCloudCost},
		{"cards", SubjectCards, domain.KindRewards},
		{"rewards", SubjectCards, domain.KindRewards},
	}
	for _, tt := range tests {
		got, err := ParseSubject(tt.in)
		if err != nil {
			t.Fatalf("ParseSubject(%q) error: %v", tt.in, err)
		}
		if got != tt.want || got.Kind() != tt.kind {
			t.Errorf("ParseSubject(%q) = %s/%s, want %s/%s", tt.in, got, got.Kind(), tt.want, tt.kind)
		}
	}

	if _, err := ParseSubject("loans"); err == nil {
		t.Error("Expected error for unknown subject")
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{Name: "aws", Annual: decimal.NewFromInt(200000)}
	alt := ComparisonResult{Name: "gcp", Annual: decimal.NewFromInt(150000)}

	result := calc.CalculateComparison(alt, base)

	if !result.DiffFromBase.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("Expected diff -50000, got %s", result.DiffFromBase)
	}
	if !result.PctFromBase.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("Expected -25%%, got %s", result.PctFromBase)
	}
}

func TestMetricsCalculator_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateComparison(
		ComparisonResult{Annual: decimal.NewFromInt(1000)},
		ComparisonResult{Annual: decimal.Zero},
	)

	if !result.PctFromBase.IsZero() {
		t.Errorf("Expected zero percentage for zero base, got %s", result.PctFromBase)
	}
}

func TestMetricsCalculator_NegativeBase(t *testing.T) {
	calc := NewMetricsCalculator()

	// A card whose fee exceeds its rewards; a better card is still a positive change.
	result := calc.CalculateComparison(
		ComparisonResult{Annual: decimal.NewFromInt(1000)},
		ComparisonResult{Annual: decimal.NewFromInt(-1000)},
	)

	if !result.PctFromBase.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected 200%%, got %s", result.PctFromBase)
	}
}

func TestComparisonSet_BestAndAll(t *testing.T) {
	compSet := sampleCloudSet()

	if best := compSet.Best(); best == nil || best.Name != "gcp" {
		t.Fatalf("Expected gcp to be best, got %+v", best)
	}
	all := compSet.All()
	if len(all) != 3 || all[0].Name != "aws" {
		t.Errorf("Expected base first in All, got %+v", all)
	}
	ranked := compSet.ranked()
	if ranked[0].Name != "gcp" || ranked[1].Name != "aws" || ranked[2].Name != "azure" {
		t.Errorf("Unexpected rank order: %s %s %s", ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}
}

func TestComparisonSet_Report(t *testing.T) {
	compSet := sampleCloudSet()

	summary := compSet.Summary()
	if summary[0].Text != "aws" || summary[1].Text != "gcp" {
		t.Errorf("Expected base and best labels first, got %+v", summary[:2])
	}

	tables := compSet.Tables()
	if len(tables) != 1 {
		t.Fatalf("Expected one table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(tables[0].Rows))
	}
	if !tables[0].Rows[0][2].Equal(decimal.NewFromInt(180000)) {
		t.Errorf("Expected cheapest annual cost first, got %s", tables[0].Rows[0][2])
	}
}

func TestGenerateRecommendations_Cloud(t *testing.T) {
	recs := sampleCloudSet().Recommendations

	if len(recs) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[0] != "Cheapest: gcp saves ₹60000 per year over aws" {
		t.Errorf("Unexpected cheapest recommendation: %s", recs[0])
	}
	if !strings.HasPrefix(recs[1], "azure used default rates") {
		t.Errorf("Expected degraded note for azure, got %s", recs[1])
	}
}

func TestGenerateRecommendations_BaseIsBest(t *testing.T) {
	compSet := &ComparisonSet{
		Subject:  SubjectCards,
		BaseName: "gold",
		BaseResult: &ComparisonResult{
			Name: "gold", Description: "Gold Card", Rank: 1, Annual: decimal.NewFromInt(5000),
		},
		AlternativeResults: []ComparisonResult{
			{Name: "basic", Description: "Basic Card", Rank: 2, Annual: decimal.NewFromInt(-500)},
		},
	}

	recs := GenerateRecommendations(compSet)

	if len(recs) != 2 {
		t.Fatalf("Expected 2 recommendations, got %v", recs)
	}
	if recs[0] != "Gold Card already gives the best net benefit" {
		t.Errorf("Unexpected recommendation: %s", recs[0])
	}
	if recs[1] != "Basic Card costs more in fees than it earns at this spend" {
		t.Errorf("Unexpected recommendation: %s", recs[1])
	}
}

func TestGenerateRecommendations_NoBase(t *testing.T) {
	recs := GenerateRecommendations(&ComparisonSet{Subject: SubjectCloud})
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}
