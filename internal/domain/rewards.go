package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CreditCardProfile is a card's reward structure.
type CreditCardProfile struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	// RewardRate is points earned per 100 spent.
	RewardRate decimal.Decimal `yaml:"reward_rate" json:"reward_rate"`
	// PointValue is the cash value of one point.
	PointValue          decimal.Decimal            `yaml:"point_value" json:"point_value"`
	CategoryMultipliers map[string]decimal.Decimal `yaml:"category_multipliers,omitempty" json:"category_multipliers,omitempty"`
	AnnualFee           decimal.Decimal            `yaml:"annual_fee" json:"annual_fee"`
	LoungeAccess        string                     `yaml:"lounge_access,omitempty" json:"lounge_access,omitempty"`
	Benefits            []string                   `yaml:"benefits,omitempty" json:"benefits,omitempty"`
}

func (c CreditCardProfile) Validate() error {
	if err := firstError(
		CheckNonNegative("card.reward_rate", c.RewardRate),
		CheckNonNegative("card.point_value", c.PointValue),
		CheckNonNegative("card.annual_fee", c.AnnualFee),
	); err != nil {
		return err
	}
	for cat, mult := range c.CategoryMultipliers {
		if err := CheckNonNegative("card.category_multipliers."+cat, mult); err != nil {
			return err
		}
	}
	return nil
}

// TravelGoal is a redemption target priced in points.
type TravelGoal struct {
	Key            string          `yaml:"key" json:"key"`
	Name           string          `yaml:"name" json:"name"`
	PointsRequired decimal.Decimal `yaml:"points_required" json:"points_required"`
	EstimatedValue decimal.Decimal `yaml:"estimated_value" json:"estimated_value"`
}

// RewardsInput selects a card, by catalogue ID or inline, and a monthly spend by category.
type RewardsInput struct {
	CardID string                     `yaml:"card_id,omitempty" json:"card_id,omitempty"`
	Card   *CreditCardProfile         `yaml:"card,omitempty" json:"card,omitempty"`
	Spend  map[string]decimal.Decimal `yaml:"spend" json:"spend"`
	// Goals replaces the configured travel goals when set.
	Goals []TravelGoal `yaml:"goals,omitempty" json:"goals,omitempty"`
}

func (in RewardsInput) Validate() error {
	for _, cat := range SortedKeys(in.Spend) {
		if err := CheckNonNegative("spend."+cat, in.Spend[cat]); err != nil {
			return err
		}
	}
	for _, g := range in.Goals {
		if err := CheckPositive("goals."+g.Key+".points_required", g.PointsRequired); err != nil {
			return err
		}
	}
	if in.Card != nil {
		return in.Card.Validate()
	}
	return nil
}

// GoalProgress is how far a year of points gets towards a goal.
type GoalProgress struct {
	Key            string          `yaml:"key" json:"key"`
	Name           string          `yaml:"name" json:"name"`
	PointsRequired decimal.Decimal `yaml:"points_required" json:"points_required"`
	ProgressPct    decimal.Decimal `yaml:"progress_pct" json:"progress_pct"`
	Achievable     bool            `yaml:"achievable" json:"achievable"`
}

type RewardsResult struct {
	CardID           string          `yaml:"card_id" json:"card_id"`
	CardName         string          `yaml:"card_name" json:"card_name"`
	MonthlySpend     decimal.Decimal `yaml:"monthly_spend" json:"monthly_spend"`
	MonthlyPoints    decimal.Decimal `yaml:"monthly_points" json:"monthly_points"`
	AnnualPoints     decimal.Decimal `yaml:"annual_points" json:"annual_points"`
	CashValue        decimal.Decimal `yaml:"cash_value" json:"cash_value"`
	AnnualFee        decimal.Decimal `yaml:"annual_fee" json:"annual_fee"`
	NetAnnualBenefit decimal.Decimal `yaml:"net_annual_benefit" json:"net_annual_benefit"`
	Goals            []GoalProgress  `yaml:"goals" json:"goals"`
}

func (r *RewardsResult) Summary() []Metric {
	return []Metric{
		Label("Card", r.CardName),
		Money("Monthly Spend", r.MonthlySpend),
		Number("Monthly Points", r.MonthlyPoints),
		Number("Annual Points", r.AnnualPoints),
		Money("Monthly Cash Value", r.CashValue),
		Money("Annual Fee", r.AnnualFee),
		Money("Net Annual Benefit", r.NetAnnualBenefit),
	}
}

func (r *RewardsResult) Tables() []Table {
	if len(r.Goals) == 0 {
		return nil
	}
	t := Table{
		Title:       "Travel Goals",
		LabelHeader: "Goal",
		Columns: []Column{
			{Name: "Points Required", Format: FormatNumber},
			{Name: "Progress", Format: FormatPercent},
		},
	}
	for _, g := range r.Goals {
		t.Labels = append(t.Labels, g.Name)
		t.Rows = append(t.Rows, []decimal.Decimal{g.PointsRequired, g.ProgressPct})
	}
	return []Table{t}
}

// SortedKeys returns map keys in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
