package output

import "github.com/rgehrsitz/finwise/internal/domain"

// kindAssumptions lists key modeling assumptions rendered in detailed outputs.
var kindAssumptions = map[domain.Kind][]string{
	domain.KindEMI: {
		"Interest is charged monthly on the reducing balance",
	},
	domain.KindPersonalLoan: {
		"Interest is charged monthly on the reducing balance",
		"Processing fee is informational and not added to the EMI",
	},
	domain.KindHousingLoan: {
		"Interest is charged monthly on the reducing balance",
		"Schedule rows aggregate twelve monthly payments",
	},
	domain.KindGoldLoan: {
		"Gold rate is quoted for 24 karat and scaled by purity",
		"Maximum loan is the gold value times the loan-to-value ratio",
	},
	domain.KindSIP: {
		"Contributions are made at the start of each month",
		"Returns compound monthly at a constant rate",
	},
	domain.KindInflation: {
		"Inflation compounds annually at a constant rate",
	},
	domain.KindMarriage: {
		"Cost inflates annually until the marriage age",
		"Lump sum is discounted at the expected investment return",
	},
	domain.KindSSY: {
		"Deposits are made for 15 years and the account matures after 21",
		"Interest compounds annually on the full balance",
	},
	domain.KindNPS: {
		"Contributions are made monthly until retirement",
		"Annuity portion is converted at a constant annuity return",
	},
	domain.KindPF: {
		"Interest is credited on the opening balance plus half the year's contributions",
		"Basic salary grows once a year by the increment rate",
	},
	domain.KindGratuity: {
		"Gratuity requires at least five years of service",
	},
	domain.KindTax: {
		"Slabs and caps follow the configured financial year",
		"Health and education cess applies after the rebate",
		"New regime is recommended when both regimes are equal",
	},
	domain.KindCloudCost: {
		"Prices are static list prices converted from USD",
		"Databases run for the whole month",
	},
	domain.KindCarbon: {
		"Emission factors are national averages",
		"Monthly breakdown spreads the annual total evenly",
	},
	domain.KindRewards: {
		"Points accrue on monthly spend by category multiplier",
		"Annual fee is deducted from the cash value",
	},
	domain.KindCurrency: {
		"Rates are static and crossed through INR",
	},
}

// Assumptions returns the modeling assumptions for kind.
func Assumptions(kind domain.Kind) []string {
	return kindAssumptions[kind]
}
