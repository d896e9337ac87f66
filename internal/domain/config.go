package domain

import "github.com/shopspring/decimal"

// EngineConfig carries the slowly-changing parameters exported from the
// content store. Every section is optional: zero values, empty maps and empty
// slices fall back to the built-in defaults field by field.
type EngineConfig struct {
	Metadata   ConfigMetadata                   `yaml:"metadata" json:"metadata"`
	Tax        TaxConfig                        `yaml:"tax" json:"tax"`
	Cloud      CloudConfig                      `yaml:"cloud" json:"cloud"`
	Carbon     CarbonConfig                     `yaml:"carbon" json:"carbon"`
	Rewards    RewardsConfig                    `yaml:"rewards" json:"rewards"`
	Retirement RetirementConfig                 `yaml:"retirement" json:"retirement"`
	Currency   CurrencyConfig                   `yaml:"currency" json:"currency"`
	Ranges     map[string]map[string]InputRange `yaml:"ranges,omitempty" json:"ranges,omitempty"`
}

// ConfigMetadata identifies a content-store export.
type ConfigMetadata struct {
	Version     string `yaml:"version" json:"version"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// TaxSlab taxes income up to UpTo at RatePct. A zero UpTo on the last slab
// leaves it open-ended.
type TaxSlab struct {
	UpTo    decimal.Decimal `yaml:"up_to" json:"up_to"`
	RatePct decimal.Decimal `yaml:"rate_pct" json:"rate_pct"`
}

// RegimeConfig is one regime's rule set.
type RegimeConfig struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	RebateLimit       decimal.Decimal `yaml:"rebate_limit" json:"rebate_limit"`
	Slabs             []TaxSlab       `yaml:"slabs" json:"slabs"`
}

// DeductionCaps are the old-regime section limits.
type DeductionCaps struct {
	Section80C        decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D        decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	Section80DSelf    decimal.Decimal `yaml:"section_80d_self" json:"section_80d_self"`
	Section80DParents decimal.Decimal `yaml:"section_80d_parents" json:"section_80d_parents"`
	Section24         decimal.Decimal `yaml:"section_24" json:"section_24"`
	NPS80CCD1B        decimal.Decimal `yaml:"nps_80ccd1b" json:"nps_80ccd1b"`
}

type TaxConfig struct {
	AssessmentYear string          `yaml:"assessment_year" json:"assessment_year"`
	Old            RegimeConfig    `yaml:"old_regime" json:"old_regime"`
	New            RegimeConfig    `yaml:"new_regime" json:"new_regime"`
	CessPct        decimal.Decimal `yaml:"cess_pct" json:"cess_pct"`
	Caps           DeductionCaps   `yaml:"deduction_caps" json:"deduction_caps"`
}

// ServiceNames labels the cost lines of a provider.
type ServiceNames struct {
	Compute   string `yaml:"compute" json:"compute"`
	Storage   string `yaml:"storage" json:"storage"`
	Database  string `yaml:"database" json:"database"`
	Transfer  string `yaml:"transfer" json:"transfer"`
	Functions string `yaml:"functions" json:"functions"`
}

// ProviderPricing is a flat USD unit-price table for one provider.
type ProviderPricing struct {
	Services             ServiceNames               `yaml:"services" json:"services"`
	ComputeHourly        map[string]decimal.Decimal `yaml:"compute_hourly" json:"compute_hourly"`
	DefaultComputeType   string                     `yaml:"default_compute_type" json:"default_compute_type"`
	DatabaseHourly       map[string]decimal.Decimal `yaml:"database_hourly" json:"database_hourly"`
	DefaultDatabaseTier  string                     `yaml:"default_database_tier" json:"default_database_tier"`
	DatabaseHours        decimal.Decimal            `yaml:"database_hours" json:"database_hours"`
	DatabaseStoragePerGB decimal.Decimal            `yaml:"database_storage_per_gb" json:"database_storage_per_gb"`
	StoragePerGB         decimal.Decimal            `yaml:"storage_per_gb" json:"storage_per_gb"`
	RequestBlock         decimal.Decimal            `yaml:"request_block" json:"request_block"`
	RequestBlockPrice    decimal.Decimal            `yaml:"request_block_price" json:"request_block_price"`
	EgressPerGB          decimal.Decimal            `yaml:"egress_per_gb" json:"egress_per_gb"`
	FunctionsPerMillion  decimal.Decimal            `yaml:"functions_per_million" json:"functions_per_million"`
	FunctionComputeBlock decimal.Decimal            `yaml:"function_compute_block" json:"function_compute_block"`
	FunctionComputePrice decimal.Decimal            `yaml:"function_compute_price" json:"function_compute_price"`
}

type CloudConfig struct {
	USDToLocal decimal.Decimal            `yaml:"usd_to_local" json:"usd_to_local"`
	Providers  map[string]ProviderPricing `yaml:"providers" json:"providers"`
}

// CarbonFactors are emission factors in kg CO2 per unit.
type CarbonFactors struct {
	Petrol          decimal.Decimal `yaml:"petrol" json:"petrol"`
	Diesel          decimal.Decimal `yaml:"diesel" json:"diesel"`
	CNG             decimal.Decimal `yaml:"cng" json:"cng"`
	LPG             decimal.Decimal `yaml:"lpg" json:"lpg"`
	Electricity     decimal.Decimal `yaml:"electricity" json:"electricity"`
	PublicTransport decimal.Decimal `yaml:"public_transport" json:"public_transport"`
	Bike            decimal.Decimal `yaml:"bike" json:"bike"`
	Flight          decimal.Decimal `yaml:"flight" json:"flight"`
	MeatMeal        decimal.Decimal `yaml:"meat_meal" json:"meat_meal"`
	Shopping        decimal.Decimal `yaml:"shopping" json:"shopping"`
}

type CarbonConfig struct {
	Factors                 CarbonFactors              `yaml:"factors" json:"factors"`
	LPGCylinderKg           decimal.Decimal            `yaml:"lpg_cylinder_kg" json:"lpg_cylinder_kg"`
	CO2PerTreeKg            decimal.Decimal            `yaml:"co2_per_tree_kg" json:"co2_per_tree_kg"`
	PUE                     decimal.Decimal            `yaml:"pue" json:"pue"`
	RegionIntensity         map[string]decimal.Decimal `yaml:"region_intensity" json:"region_intensity"`
	DefaultIntensity        decimal.Decimal            `yaml:"default_intensity" json:"default_intensity"`
	InstancePowerKwh        map[string]decimal.Decimal `yaml:"instance_power_kwh" json:"instance_power_kwh"`
	DefaultInstancePowerKwh decimal.Decimal            `yaml:"default_instance_power_kwh" json:"default_instance_power_kwh"`
	StorageKwhPerGBMonth    decimal.Decimal            `yaml:"storage_kwh_per_gb_month" json:"storage_kwh_per_gb_month"`
	TransferKwhPerGB        decimal.Decimal            `yaml:"transfer_kwh_per_gb" json:"transfer_kwh_per_gb"`
}

type RewardsConfig struct {
	Cards             []CreditCardProfile        `yaml:"cards" json:"cards"`
	Goals             []TravelGoal               `yaml:"goals" json:"goals"`
	DefaultSpend      map[string]decimal.Decimal `yaml:"default_spend" json:"default_spend"`
	DefaultRewardRate decimal.Decimal            `yaml:"default_reward_rate" json:"default_reward_rate"`
	DefaultPointValue decimal.Decimal            `yaml:"default_point_value" json:"default_point_value"`
}

type RetirementConfig struct {
	PFEmployeePct            decimal.Decimal `yaml:"pf_employee_pct" json:"pf_employee_pct"`
	PFEmployerPct            decimal.Decimal `yaml:"pf_employer_pct" json:"pf_employer_pct"`
	GratuityDaysWage         decimal.Decimal `yaml:"gratuity_days_wage" json:"gratuity_days_wage"`
	GratuityDivisorCovered   decimal.Decimal `yaml:"gratuity_divisor_covered" json:"gratuity_divisor_covered"`
	GratuityDivisorUncovered decimal.Decimal `yaml:"gratuity_divisor_uncovered" json:"gratuity_divisor_uncovered"`
}

// CurrencyConfig quotes each currency as units of BaseCurrency.
type CurrencyConfig struct {
	Rates map[string]decimal.Decimal `yaml:"rates" json:"rates"`
}

// InputRange bounds one slider. Options replaces the numeric range for choice fields.
type InputRange struct {
	Min           decimal.Decimal `yaml:"min" json:"min"`
	Max           decimal.Decimal `yaml:"max" json:"max"`
	Default       decimal.Decimal `yaml:"default" json:"default"`
	Step          decimal.Decimal `yaml:"step" json:"step"`
	Unit          string          `yaml:"unit,omitempty" json:"unit,omitempty"`
	Options       []string        `yaml:"options,omitempty" json:"options,omitempty"`
	DefaultOption string          `yaml:"default_option,omitempty" json:"default_option,omitempty"`
}

// IsChoice reports whether the range is a list of options.
func (r InputRange) IsChoice() bool {
	return len(r.Options) > 0
}

// Contains reports whether v lies within [Min, Max].
func (r InputRange) Contains(v decimal.Decimal) bool {
	return !v.LessThan(r.Min) && !v.GreaterThan(r.Max)
}
