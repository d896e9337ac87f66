package calculation

import (
	"github.com/rgehrsitz/finwise/internal/domain"
)

// FieldRange is the slider for one input field, addressed by its dotted YAML path.
type FieldRange struct {
	domain.InputRange `yaml:",inline"`

	Field string `yaml:"field" json:"field"`
	Label string `yaml:"label" json:"label"`
}

func slider(field, label, min, max, def, step, unit string) FieldRange {
	return FieldRange{
		Field: field,
		Label: label,
		InputRange: domain.InputRange{
			Min: dec(min), Max: dec(max), Default: dec(def), Step: dec(step), Unit: unit,
		},
	}
}

func choice(field, label, def string, options ...string) FieldRange {
	return FieldRange{
		Field:      field,
		Label:      label,
		InputRange: domain.InputRange{Options: options, DefaultOption: def},
	}
}

// DefaultRanges returns the built-in sliders of every calculator.
func DefaultRanges() map[domain.Kind][]FieldRange {
	return map[domain.Kind][]FieldRange{
		domain.KindEMI: {
			slider("principal", "Loan Amount", "10000", "10000000", "1000000", "10000", "₹"),
			slider("annual_rate_pct", "Interest Rate", "1", "30", "8.5", "0.1", "%"),
			slider("tenure", "Tenure", "1", "30", "10", "1", "years"),
			choice("tenure_unit", "Tenure Unit", "years", "years", "months"),
		},
		domain.KindPersonalLoan: {
			slider("principal", "Loan Amount", "50000", "5000000", "500000", "10000", "₹"),
			slider("annual_rate_pct", "Interest Rate", "10", "24", "12", "0.1", "%"),
			slider("tenure", "Tenure", "1", "7", "3", "1", "years"),
			slider("processing_fee_pct", "Processing Fee", "0", "5", "2", "0.1", "%"),
		},
		domain.KindHousingLoan: {
			slider("principal", "Loan Amount", "500000", "50000000", "5000000", "100000", "₹"),
			slider("annual_rate_pct", "Interest Rate", "6", "15", "8.5", "0.05", "%"),
			slider("tenure", "Tenure", "5", "30", "20", "1", "years"),
			slider("processing_fee_pct", "Processing Fee", "0", "2", "0.5", "0.05", "%"),
		},
		domain.KindGoldLoan: {
			slider("weight_grams", "Gold Weight", "1", "1000", "50", "1", "g"),
			choice("purity_karat", "Purity", "22", "24", "22", "18"),
			slider("rate_per_gram", "Gold Rate (24K)", "1000", "20000", "7500", "50", "₹/g"),
			slider("ltv_pct", "Loan to Value", "25", "75", "75", "1", "%"),
			slider("annual_rate_pct", "Interest Rate", "7", "15", "9", "0.1", "%"),
			slider("tenure_months", "Tenure", "3", "36", "12", "1", "months"),
		},
		domain.KindSIP: {
			slider("monthly_investment", "Monthly Investment", "500", "100000", "5000", "500", "₹"),
			slider("annual_return_pct", "Expected Return", "1", "30", "12", "0.5", "%"),
			slider("years", "Duration", "1", "40", "10", "1", "years"),
		},
		domain.KindInflation: {
			slider("current_amount", "Current Cost", "1000", "10000000", "100000", "1000", "₹"),
			slider("annual_inflation_pct", "Inflation Rate", "1", "15", "6", "0.1", "%"),
			slider("years", "Years", "1", "30", "10", "1", "years"),
		},
		domain.KindMarriage: {
			slider("current_cost", "Wedding Cost Today", "100000", "50000000", "2000000", "100000", "₹"),
			slider("child_age", "Child's Age", "0", "20", "5", "1", "years"),
			slider("marriage_age", "Marriage Age", "18", "35", "25", "1", "years"),
			slider("inflation_pct", "Inflation", "4", "10", "6", "0.5", "%"),
			slider("expected_return_pct", "Expected Return", "8", "15", "12", "0.5", "%"),
		},
		domain.KindSSY: {
			slider("yearly_deposit", "Yearly Deposit", "250", "150000", "50000", "250", "₹"),
			slider("girl_age", "Girl's Age", "0", "10", "2", "1", "years"),
			slider("annual_rate_pct", "Interest Rate", "7", "10", "8.2", "0.1", "%"),
		},
		domain.KindNPS: {
			slider("current_age", "Current Age", "18", "60", "30", "1", "years"),
			slider("retirement_age", "Retirement Age", "60", "70", "60", "1", "years"),
			slider("monthly_contribution", "Monthly Contribution", "500", "200000", "5000", "500", "₹"),
			slider("expected_return_pct", "Expected Return", "5", "15", "10", "0.5", "%"),
			slider("annuity_pct", "Annuity Share", "40", "100", "40", "5", "%"),
			slider("annuity_return_pct", "Annuity Return", "4", "10", "6", "0.5", "%"),
		},
		domain.KindPF: {
			slider("basic_salary", "Monthly Basic + DA", "15000", "200000", "30000", "1000", "₹"),
			slider("current_age", "Current Age", "21", "57", "30", "1", "years"),
			slider("retirement_age", "Retirement Age", "58", "60", "58", "1", "years"),
			slider("annual_increment_pct", "Annual Increment", "0", "15", "5", "0.5", "%"),
			slider("interest_rate_pct", "PF Interest Rate", "7", "10", "8.15", "0.05", "%"),
		},
		domain.KindGratuity: {
			slider("basic_salary", "Last Basic + DA", "5000", "500000", "50000", "1000", "₹"),
			slider("years_of_service", "Years of Service", "1", "40", "10", "1", "years"),
			choice("covered", "Covered by Gratuity Act", "true", "true", "false"),
		},
		domain.KindTax: {
			slider("gross_income", "Gross Income", "300000", "5000000", "1200000", "10000", "₹"),
			slider("hra", "HRA Exemption", "0", "1000000", "0", "5000", "₹"),
			slider("section_80c", "Section 80C", "0", "150000", "150000", "5000", "₹"),
			slider("section_80d", "Section 80D", "0", "75000", "25000", "1000", "₹"),
			slider("section_24", "Home Loan Interest (24b)", "0", "200000", "0", "5000", "₹"),
			slider("nps_80ccd1b", "NPS 80CCD(1B)", "0", "50000", "0", "5000", "₹"),
		},
		domain.KindCloudCost: {
			choice("provider", "Provider", domain.ProviderAWS, domain.Providers()...),
			slider("compute.instances", "VM Instances", "0", "100", "2", "1", ""),
			slider("compute.hours_per_month", "VM Hours / Month", "0", "744", "730", "1", "h"),
			slider("storage.gb", "Object Storage", "0", "10000", "100", "10", "GB"),
			slider("storage.requests", "Storage Requests", "0", "10000000", "100000", "10000", ""),
			slider("database.instances", "DB Instances", "0", "10", "1", "1", ""),
			slider("database.storage_gb", "DB Storage", "0", "1000", "20", "5", "GB"),
			slider("transfer_out_gb", "Data Transfer Out", "0", "10000", "50", "10", "GB"),
			slider("functions.invocations", "Function Invocations", "0", "100000000", "1000000", "100000", ""),
			slider("functions.compute_gb_seconds", "Function GB-Seconds", "0", "10000000", "400000", "10000", ""),
		},
		domain.KindCarbon: {
			slider("transport.car_km_per_month", "Car Travel", "0", "5000", "1000", "50", "km"),
			slider("transport.car_efficiency_kmpl", "Car Mileage", "5", "30", "15", "1", "km/l"),
			choice("transport.car_fuel_type", "Fuel", domain.FuelPetrol, domain.FuelPetrol, domain.FuelDiesel, domain.FuelCNG),
			slider("transport.bike_km_per_month", "Two-wheeler", "0", "3000", "0", "50", "km"),
			slider("transport.public_transport_km_per_month", "Public Transport", "0", "3000", "200", "50", "km"),
			slider("transport.flight_hours_per_year", "Flights", "0", "200", "10", "1", "h/yr"),
			slider("energy.electricity_kwh_per_month", "Electricity", "0", "2000", "250", "10", "kWh"),
			slider("energy.lpg_cylinders_per_month", "LPG Cylinders", "0", "5", "1", "0.5", ""),
			slider("energy.cng_kg_per_month", "Piped Gas / CNG", "0", "100", "0", "1", "kg"),
			slider("lifestyle.meat_meals_per_week", "Meat Meals", "0", "21", "3", "1", "/week"),
			slider("lifestyle.shopping_amount_per_month", "Shopping", "0", "100000", "5000", "500", "₹"),
		},
		domain.KindRewards: {
			choice("card_id", "Card", "finwise-infinity", "finwise-infinity", "reward-max-pro", "traveler-select"),
			slider("spend.dining", "Dining", "0", "100000", "5000", "500", "₹"),
			slider("spend.travel", "Travel", "0", "100000", "10000", "500", "₹"),
			slider("spend.shopping", "Shopping", "0", "100000", "15000", "500", "₹"),
			slider("spend.fuel", "Fuel", "0", "50000", "3000", "500", "₹"),
			slider("spend.groceries", "Groceries", "0", "50000", "7000", "500", "₹"),
		},
		domain.KindCurrency: {
			slider("amount", "Amount", "0", "10000000", "1000", "100", ""),
			choice("from", "From", "USD"),
			choice("to", "To", domain.BaseCurrency),
		},
	}
}

// Ranges returns the sliders of kind with configured overrides applied.
func (ce *CalculationEngine) Ranges(kind domain.Kind) []FieldRange {
	return append([]FieldRange(nil), ce.ranges[kind]...)
}

func (ce *CalculationEngine) buildRanges(overrides map[string]map[string]domain.InputRange) map[domain.Kind][]FieldRange {
	all := DefaultRanges()

	// Choices that depend on the loaded catalogues.
	codes := ce.CurrencyConv.Codes()
	for i, r := range all[domain.KindCurrency] {
		if r.Field == "from" || r.Field == "to" {
			all[domain.KindCurrency][i].Options = codes
		}
	}
	if ids := ce.RewardsEngine.CardIDs(); len(ids) > 0 {
		cardField := &all[domain.KindRewards][0]
		cardField.Options = ids
		cardField.DefaultOption = ids[0]
	}
	for i, r := range all[domain.KindRewards] {
		if spend, ok := ce.RewardsEngine.DefaultSpend[fieldSuffix(r.Field, "spend.")]; ok {
			all[domain.KindRewards][i].Default = spend
		}
	}

	for kind, fields := range overrides {
		k, err := domain.ParseKind(kind)
		if err != nil {
			ce.Logger.Warnf("ignoring ranges for %v", err)
			continue
		}
		for i, r := range all[k] {
			o, ok := fields[r.Field]
			if !ok {
				continue
			}
			all[k][i].InputRange = mergeRange(r.InputRange, o)
		}
	}
	return all
}

func mergeRange(base, o domain.InputRange) domain.InputRange {
	base.Min = orDefault(o.Min, base.Min)
	base.Max = orDefault(o.Max, base.Max)
	base.Default = orDefault(o.Default, base.Default)
	base.Step = orDefault(o.Step, base.Step)
	base.Unit = orDefaultString(o.Unit, base.Unit)
	if len(o.Options) > 0 {
		base.Options = o.Options
	}
	base.DefaultOption = orDefaultString(o.DefaultOption, base.DefaultOption)
	return base
}

func fieldSuffix(field, prefix string) string {
	if len(field) > len(prefix) && field[:len(prefix)] == prefix {
		return field[len(prefix):]
	}
	return ""
}
