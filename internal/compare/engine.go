package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/domain"
)

// CompareEngine runs one input through every alternative and ranks them.
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare decodes the subject's input over the engine defaults and runs the
// matching comparison.
func (ce *CompareEngine) Compare(ctx context.Context, subject Subject, decode calculation.Decoder) (*ComparisonSet, error) {
	input, err := ce.CalcEngine.DefaultInput(subject.Kind())
	if err != nil {
		return nil, err
	}
	if decode != nil {
		if err := decode(input); err != nil {
			return nil, fmt.Errorf("failed to decode %s input: %w", subject, err)
		}
	}
	switch in := input.(type) {
	case *domain.CloudUsageInput:
		return ce.CompareCloud(ctx, *in)
	case *domain.RewardsInput:
		return ce.CompareCards(ctx, *in)
	}
	return nil, fmt.Errorf("no comparison for %s", subject)
}

// CompareCloud prices the same usage on every configured provider. The
// usage's own provider is the base; without one, the first provider is.
func (ce *CompareEngine) CompareCloud(ctx context.Context, usage domain.CloudUsageInput) (*ComparisonSet, error) {
	providers := ce.providers()
	baseName := usage.ProviderKey()
	if baseName == "" {
		baseName = providers[0]
	}
	if _, ok := ce.CalcEngine.CloudCalc.Providers[baseName]; !ok {
		return nil, domain.Invalid("provider", "no pricing for %q", usage.Provider)
	}

	compSet := &ComparisonSet{
		Subject:       SubjectCloud,
		Title:         "Cloud Provider Comparison",
		MonthlyLabel:  "Monthly Cost",
		AnnualLabel:   "Annual Cost",
		LowerIsBetter: true,
		BaseName:      baseName,
	}

	var results []ComparisonResult
	for _, name := range providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in := usage
		in.Provider = name
		res, err := ce.CalcEngine.CloudCalc.Calculate(in)
		if err != nil {
			return nil, fmt.Errorf("failed to price %s: %w", name, err)
		}
		for _, note := range res.Degraded {
			ce.CalcEngine.Logger.Warnf("compare cloud %s: %s", name, note)
		}
		results = append(results, ComparisonResult{
			Name:    name,
			Monthly: res.TotalMonthly,
			Annual:  res.TotalAnnual,
			Lines:   res.Lines,
			Notes:   res.Degraded,
			Report:  res,
		})
	}
	return ce.finish(compSet, results), nil
}

// CompareCards accrues the same spend on every catalogue card. An inline
// card joins the catalogue and becomes the base; otherwise the base is the
// card ID, or the first catalogue card. An empty spend uses the default spend.
func (ce *CompareEngine) CompareCards(ctx context.Context, in domain.RewardsInput) (*ComparisonSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	re := ce.CalcEngine.RewardsEngine
	spend := in.Spend
	if len(spend) == 0 {
		spend = re.DefaultSpend
	}
	goals := in.Goals
	if len(goals) == 0 {
		goals = re.Goals
	}

	cards := append([]domain.CreditCardProfile(nil), re.Cards...)
	var baseName string
	switch {
	case in.Card != nil:
		cards = append([]domain.CreditCardProfile{*in.Card}, cards...)
		baseName = in.Card.ID
	case in.CardID != "":
		if _, ok := re.Card(in.CardID); !ok {
			return nil, domain.Invalid("card_id", "no card %q in catalogue", in.CardID)
		}
		baseName = in.CardID
	case len(cards) > 0:
		baseName = cards[0].ID
	default:
		return nil, domain.Invalid("card_id", "is required")
	}

	compSet := &ComparisonSet{
		Subject:      SubjectCards,
		Title:        "Credit Card Comparison",
		MonthlyLabel: "Monthly Cash Value",
		AnnualLabel:  "Net Annual Benefit",
		BaseName:     baseName,
	}

	var results []ComparisonResult
	seen := map[string]bool{}
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if seen[card.ID] {
			continue
		}
		seen[card.ID] = true
		res := calculation.Accrue(card, spend, goals)
		results = append(results, ComparisonResult{
			Name:        card.ID,
			Description: card.Name,
			Monthly:     res.CashValue,
			Annual:      res.NetAnnualBenefit,
			Report:      res,
		})
	}
	return ce.finish(compSet, results), nil
}

// finish ranks the results, splits off the base and derives recommendations.
func (ce *CompareEngine) finish(compSet *ComparisonSet, results []ComparisonResult) *ComparisonSet {
	sort.SliceStable(results, func(i, j int) bool {
		return compSet.better(results[i].Annual, results[j].Annual)
	})
	var base ComparisonResult
	for i := range results {
		results[i].Rank = i + 1
		if results[i].Name == compSet.BaseName {
			base = results[i]
		}
	}

	alternatives := []ComparisonResult{}
	for _, r := range results {
		if r.Name == compSet.BaseName {
			continue
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(r, base))
	}
	compSet.BaseResult = &base
	compSet.AlternativeResults = alternatives
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

// providers lists the built-in providers first, then any configured extras.
func (ce *CompareEngine) providers() []string {
	names := domain.Providers()
	var extra []string
	for name := range ce.CalcEngine.CloudCalc.Providers {
		known := false
		for _, n := range names {
			if n == name {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
