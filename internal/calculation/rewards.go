package calculation

import (
	"sort"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

// DefaultCards is the built-in card catalogue.
func DefaultCards() []domain.CreditCardProfile {
	return []domain.CreditCardProfile{
		{
			ID:         "finwise-infinity",
			Name:       "FinWise Infinity",
			RewardRate: dec("5"),
			PointValue: dec("1"),
			CategoryMultipliers: map[string]decimal.Decimal{
				"dining": dec("2"), "travel": dec("3"), "shopping": dec("1"), "fuel": dec("1"), "groceries": dec("1.5"),
			},
			AnnualFee:    dec("5000"),
			LoungeAccess: "Unlimited domestic and international",
			Benefits:     []string{"Golf privileges", "Concierge service", "Travel insurance"},
		},
		{
			ID:         "reward-max-pro",
			Name:       "Reward Max Pro",
			RewardRate: dec("2"),
			PointValue: dec("0.25"),
			CategoryMultipliers: map[string]decimal.Decimal{
				"dining": dec("1.5"), "travel": dec("1"), "shopping": dec("2"), "fuel": dec("1"), "groceries": dec("2"),
			},
			AnnualFee:    dec("1000"),
			LoungeAccess: "4 domestic visits per year",
			Benefits:     []string{"Fuel surcharge waiver", "Movie ticket offers"},
		},
		{
			ID:         "traveler-select",
			Name:       "Traveler Select",
			RewardRate: dec("4"),
			PointValue: dec("0.7"),
			CategoryMultipliers: map[string]decimal.Decimal{
				"dining": dec("1"), "travel": dec("5"), "shopping": dec("1"), "fuel": dec("1"), "groceries": dec("1"),
			},
			AnnualFee:    dec("2500"),
			LoungeAccess: "8 international visits per year",
			Benefits:     []string{"Air miles transfer", "Zero forex markup"},
		},
	}
}

// DefaultTravelGoals are redemption targets shown against annual points.
func DefaultTravelGoals() []domain.TravelGoal {
	return []domain.TravelGoal{
		{Key: "dubai", Name: "Dubai Getaway", PointsRequired: dec("50000"), EstimatedValue: dec("45000")},
		{Key: "singapore", Name: "Singapore Holiday", PointsRequired: dec("75000"), EstimatedValue: dec("65000")},
		{Key: "thailand", Name: "Thailand Escape", PointsRequired: dec("40000"), EstimatedValue: dec("35000")},
	}
}

// DefaultMonthlySpend is a typical household's card spend.
func DefaultMonthlySpend() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"dining":    dec("5000"),
		"travel":    dec("10000"),
		"shopping":  dec("15000"),
		"fuel":      dec("3000"),
		"groceries": dec("7000"),
	}
}

// RewardsEngine accrues points for a card against a spend profile.
type RewardsEngine struct {
	Cards        []domain.CreditCardProfile
	Goals        []domain.TravelGoal
	DefaultSpend map[string]decimal.Decimal
}

// NewRewardsEngine loads the configured catalogue. Cards without a reward rate
// or point value get the catalogue defaults of 2 points per 100 and 0.25.
func NewRewardsEngine(cfg domain.RewardsConfig) *RewardsEngine {
	rate := orDefault(cfg.DefaultRewardRate, dec("2"))
	value := orDefault(cfg.DefaultPointValue, dec("0.25"))

	cards := cfg.Cards
	if len(cards) == 0 {
		cards = DefaultCards()
	}
	normalized := make([]domain.CreditCardProfile, len(cards))
	for i, c := range cards {
		c.RewardRate = orDefault(c.RewardRate, rate)
		c.PointValue = orDefault(c.PointValue, value)
		normalized[i] = c
	}

	goals := cfg.Goals
	if len(goals) == 0 {
		goals = DefaultTravelGoals()
	}
	spend := cfg.DefaultSpend
	if len(spend) == 0 {
		spend = DefaultMonthlySpend()
	}
	return &RewardsEngine{Cards: normalized, Goals: goals, DefaultSpend: spend}
}

// Card finds a catalogue card by ID.
func (re *RewardsEngine) Card(id string) (domain.CreditCardProfile, bool) {
	for _, c := range re.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return domain.CreditCardProfile{}, false
}

// CardIDs lists the catalogue in order.
func (re *RewardsEngine) CardIDs() []string {
	ids := make([]string, len(re.Cards))
	for i, c := range re.Cards {
		ids[i] = c.ID
	}
	return ids
}

// Calculate resolves the card (inline first, then by ID, then the first
// catalogue card) and accrues points on the spend.
func (re *RewardsEngine) Calculate(in domain.RewardsInput) (*domain.RewardsResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var card domain.CreditCardProfile
	switch {
	case in.Card != nil:
		card = *in.Card
	case in.CardID != "":
		c, ok := re.Card(in.CardID)
		if !ok {
			return nil, domain.Invalid("card_id", "no card %q in catalogue", in.CardID)
		}
		card = c
	case len(re.Cards) > 0:
		card = re.Cards[0]
	default:
		return nil, domain.Invalid("card_id", "is required")
	}

	goals := in.Goals
	if len(goals) == 0 {
		goals = re.Goals
	}
	return Accrue(card, in.Spend, goals), nil
}

// Accrue computes points, cash value and goal progress. Categories without a
// multiplier earn at 1x.
func Accrue(card domain.CreditCardProfile, spend map[string]decimal.Decimal, goals []domain.TravelGoal) *domain.RewardsResult {
	res := &domain.RewardsResult{
		CardID:    card.ID,
		CardName:  card.Name,
		AnnualFee: card.AnnualFee,
	}
	for _, category := range domain.SortedKeys(spend) {
		amount := spend[category]
		mult, ok := card.CategoryMultipliers[category]
		if !ok || mult.IsZero() {
			mult = one
		}
		res.MonthlySpend = res.MonthlySpend.Add(amount)
		res.MonthlyPoints = res.MonthlyPoints.Add(finmath.Div(amount, hundred).Mul(card.RewardRate).Mul(mult))
	}
	res.AnnualPoints = res.MonthlyPoints.Mul(twelve)
	res.CashValue = res.MonthlyPoints.Mul(card.PointValue)
	res.NetAnnualBenefit = res.CashValue.Mul(twelve).Sub(card.AnnualFee)

	for _, g := range goals {
		progress := decimal.Zero
		if g.PointsRequired.IsPositive() {
			progress = finmath.Min(hundred, finmath.Div(res.AnnualPoints.Mul(hundred), g.PointsRequired))
		}
		res.Goals = append(res.Goals, domain.GoalProgress{
			Key:            g.Key,
			Name:           g.Name,
			PointsRequired: g.PointsRequired,
			ProgressPct:    progress,
			Achievable:     progress.Equal(hundred),
		})
	}
	return res
}

// RankCards accrues every catalogue card on the same spend, best net benefit first.
func (re *RewardsEngine) RankCards(spend map[string]decimal.Decimal) []*domain.RewardsResult {
	results := make([]*domain.RewardsResult, 0, len(re.Cards))
	for _, c := range re.Cards {
		results = append(results, Accrue(c, spend, re.Goals))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NetAnnualBenefit.GreaterThan(results[j].NetAnnualBenefit)
	})
	return results
}
