package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
)

// Subject is what a comparison ranks.
type Subject string

const (
	SubjectCloud Subject = "cloud"
	SubjectCards Subject = "cards"
)

// ParseSubject accepts the subject name or a common synonym.
func ParseSubject(s string) (Subject, error) {
	switch s {
	case "cloud", "providers", "cloud_cost":
		return SubjectCloud, nil
	case "cards", "card", "rewards":
		return SubjectCards, nil
	}
	return "", fmt.Errorf("unknown comparison %q (want cloud or cards)", s)
}

// Kind is the calculator that produces each alternative.
func (s Subject) Kind() domain.Kind {
	if s == SubjectCards {
		return domain.KindRewards
	}
	return domain.KindCloudCost
}

// ComparisonResult is one alternative with its metrics and its difference
// from the base.
type ComparisonResult struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rank        int    `json:"rank"`

	// Key Metrics
	Monthly decimal.Decimal   `json:"monthly"`
	Annual  decimal.Decimal   `json:"annual"`
	Lines   []domain.CostLine `json:"lines,omitempty"`
	Notes   []string          `json:"notes,omitempty"`

	// Comparison to Base
	DiffFromBase decimal.Decimal `json:"diffFromBase"`
	PctFromBase  decimal.Decimal `json:"pctFromBase"`

	Report domain.Report `json:"-"`
}

// ComparisonSet holds the base alternative, the others ordered by rank, and
// recommendations derived from them.
type ComparisonSet struct {
	Subject            Subject            `json:"subject"`
	Title              string             `json:"title"`
	MonthlyLabel       string             `json:"monthlyLabel"`
	AnnualLabel        string             `json:"annualLabel"`
	LowerIsBetter      bool               `json:"lowerIsBetter"`
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// All returns the base followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// Best returns the alternative ranked first, which may be the base.
func (cs *ComparisonSet) Best() *ComparisonResult {
	best := cs.BaseResult
	for i := range cs.AlternativeResults {
		if best == nil || cs.AlternativeResults[i].Rank < best.Rank {
			best = &cs.AlternativeResults[i]
		}
	}
	return best
}

// better reports whether a beats b on the annual metric.
func (cs *ComparisonSet) better(a, b decimal.Decimal) bool {
	if cs.LowerIsBetter {
		return a.LessThan(b)
	}
	return a.GreaterThan(b)
}

// Summary lets output formatters render the comparison like a calculator report.
func (cs *ComparisonSet) Summary() []domain.Metric {
	m := []domain.Metric{domain.Label("Base", cs.BaseName)}
	if best := cs.Best(); best != nil {
		m = append(m,
			domain.Label("Best", best.Name),
			domain.Money("Best "+cs.AnnualLabel, best.Annual),
		)
	}
	for _, r := range cs.ranked() {
		m = append(m, domain.Money(fmt.Sprintf("#%d %s", r.Rank, r.Name), r.Annual))
	}
	for _, rec := range cs.Recommendations {
		m = append(m, domain.Label("Recommendation", rec))
	}
	return m
}

func (cs *ComparisonSet) Tables() []domain.Table {
	t := domain.Table{
		Title:       cs.Title,
		LabelHeader: "Name",
		Columns: []domain.Column{
			{Name: "Rank", Format: domain.FormatInteger},
			{Name: cs.MonthlyLabel, Format: domain.FormatCurrency},
			{Name: cs.AnnualLabel, Format: domain.FormatCurrency},
			{Name: "Diff from Base", Format: domain.FormatCurrency},
			{Name: "% from Base", Format: domain.FormatPercent},
		},
	}
	for _, r := range cs.ranked() {
		t.Labels = append(t.Labels, r.Name)
		t.Rows = append(t.Rows, []decimal.Decimal{
			decimal.NewFromInt(int64(r.Rank)), r.Monthly, r.Annual, r.DiffFromBase, r.PctFromBase,
		})
	}
	return []domain.Table{t}
}

// ranked returns every alternative ordered by rank.
func (cs *ComparisonSet) ranked() []ComparisonResult {
	all := cs.All()
	out := make([]ComparisonResult, len(all))
	copy(out, all)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// MetricsCalculator fills in the differences from the base.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateComparison computes comparison metrics between a result and a base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.DiffFromBase = result.Annual.Sub(base.Annual)
	result.PctFromBase = decimal.Zero
	if !base.Annual.IsZero() {
		result.PctFromBase = result.DiffFromBase.
			Div(base.Annual.Abs()).
			Mul(decimal.NewFromInt(100))
	}
	return result
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil {
		return recommendations
	}
	best := compSet.Best()
	base := compSet.BaseResult

	switch compSet.Subject {
	case SubjectCloud:
		if best.Name != base.Name {
			recommendations = append(recommendations, fmt.Sprintf(
				"Cheapest: %s saves %s per year over %s", best.Name, formatCompact(base.Annual.Sub(best.Annual)), base.Name))
		} else if len(compSet.AlternativeResults) > 0 {
			recommendations = append(recommendations, fmt.Sprintf("%s is already the cheapest provider", base.Name))
		}
		for _, r := range compSet.All() {
			if len(r.Notes) > 0 {
				recommendations = append(recommendations, fmt.Sprintf(
					"%s used default rates for %d unknown item(s); check the usage profile", r.Name, len(r.Notes)))
			}
		}
	case SubjectCards:
		if best.Name != base.Name {
			recommendations = append(recommendations, fmt.Sprintf(
				"Best value: %s earns %s more per year than %s", best.Description, formatCompact(best.Annual.Sub(base.Annual)), base.Description))
		} else if len(compSet.AlternativeResults) > 0 {
			recommendations = append(recommendations, fmt.Sprintf("%s already gives the best net benefit", base.Description))
		}
		if rr, ok := best.Report.(*domain.RewardsResult); ok && len(rr.Goals) > 0 {
			reached := 0
			for _, g := range rr.Goals {
				if g.Achievable {
					reached++
				}
			}
			recommendations = append(recommendations, fmt.Sprintf(
				"%s reaches %d of %d travel goals in a year", best.Description, reached, len(rr.Goals)))
		}
		for _, r := range compSet.All() {
			if r.Annual.IsNegative() {
				recommendations = append(recommendations, fmt.Sprintf(
					"%s costs more in fees than it earns at this spend", r.Description))
			}
		}
	}
	return recommendations
}
