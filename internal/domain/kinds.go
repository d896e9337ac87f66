package domain

import (
	"fmt"
	"strings"
)

// Kind names a calculator.
type Kind string

const (
	KindEMI          Kind = "emi"
	KindPersonalLoan Kind = "personal_loan"
	KindHousingLoan  Kind = "housing_loan"
	KindGoldLoan     Kind = "gold_loan"
	KindSIP          Kind = "sip"
	KindInflation    Kind = "inflation"
	KindMarriage     Kind = "marriage"
	KindSSY          Kind = "ssy"
	KindNPS          Kind = "nps"
	KindPF           Kind = "pf"
	KindGratuity     Kind = "gratuity"
	KindTax          Kind = "tax"
	KindCloudCost    Kind = "cloud_cost"
	KindCarbon       Kind = "carbon"
	KindRewards      Kind = "rewards"
	KindCurrency     Kind = "currency"
)

var kindTitles = map[Kind]string{
	KindEMI:          "EMI Calculator",
	KindPersonalLoan: "Personal Loan",
	KindHousingLoan:  "Housing Loan",
	KindGoldLoan:     "Gold Loan",
	KindSIP:          "SIP Calculator",
	KindInflation:    "Inflation Calculator",
	KindMarriage:     "Marriage Planning",
	KindSSY:          "Sukanya Samriddhi Yojana",
	KindNPS:          "National Pension System",
	KindPF:           "Provident Fund",
	KindGratuity:     "Gratuity",
	KindTax:          "Income Tax (Old vs New Regime)",
	KindCloudCost:    "Cloud Cost Estimator",
	KindCarbon:       "Carbon Footprint",
	KindRewards:      "Credit Card Rewards",
	KindCurrency:     "Currency Converter",
}

// AllKinds lists every calculator in display order.
func AllKinds() []Kind {
	return []Kind{
		KindEMI, KindPersonalLoan, KindHousingLoan, KindGoldLoan,
		KindSIP, KindInflation, KindMarriage, KindSSY,
		KindNPS, KindPF, KindGratuity,
		KindTax, KindCloudCost, KindCarbon, KindRewards, KindCurrency,
	}
}

// Title returns the human-readable calculator name.
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}

// ParseKind accepts the canonical name, with dashes or any letter case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := kindTitles[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}
