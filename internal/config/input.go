package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of engine configuration and request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads the engine configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.EngineConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates an engine configuration. JSON is accepted as
// the YAML subset it is.
func (ip *InputParser) Parse(data []byte) (*domain.EngineConfig, error) {
	var config domain.EngineConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Every section is
// optional; zero values fall back to built-in defaults.
func (ip *InputParser) ValidateConfiguration(config *domain.EngineConfig) error {
	if err := ip.validateTax(&config.Tax); err != nil {
		return fmt.Errorf("tax: %w", err)
	}
	if err := ip.validateCloud(&config.Cloud); err != nil {
		return fmt.Errorf("cloud: %w", err)
	}
	if err := ip.validateCarbon(&config.Carbon); err != nil {
		return fmt.Errorf("carbon: %w", err)
	}
	if err := ip.validateRewards(&config.Rewards); err != nil {
		return fmt.Errorf("rewards: %w", err)
	}
	if err := ip.validateRetirement(&config.Retirement); err != nil {
		return fmt.Errorf("retirement: %w", err)
	}
	if err := ip.validateCurrency(&config.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if err := ip.validateRanges(config.Ranges); err != nil {
		return fmt.Errorf("ranges: %w", err)
	}
	return nil
}

func (ip *InputParser) validateTax(tax *domain.TaxConfig) error {
	if err := domain.CheckPercent("cess_pct", tax.CessPct); err != nil {
		return err
	}
	if err := ip.validateRegime(tax.Old); err != nil {
		return fmt.Errorf("old_regime: %w", err)
	}
	if err := ip.validateRegime(tax.New); err != nil {
		return fmt.Errorf("new_regime: %w", err)
	}
	caps := tax.Caps
	return firstError(
		domain.CheckNonNegative("deduction_caps.section_80c", caps.Section80C),
		domain.CheckNonNegative("deduction_caps.section_80d", caps.Section80D),
		domain.CheckNonNegative("deduction_caps.section_80d_self", caps.Section80DSelf),
		domain.CheckNonNegative("deduction_caps.section_80d_parents", caps.Section80DParents),
		domain.CheckNonNegative("deduction_caps.section_24", caps.Section24),
		domain.CheckNonNegative("deduction_caps.nps_80ccd1b", caps.NPS80CCD1B),
	)
}

// validateRegime requires ascending slab limits with only the last slab open.
func (ip *InputParser) validateRegime(regime domain.RegimeConfig) error {
	if err := firstError(
		domain.CheckNonNegative("standard_deduction", regime.StandardDeduction),
		domain.CheckNonNegative("rebate_limit", regime.RebateLimit),
	); err != nil {
		return err
	}
	previous := decimal.Zero
	for i, slab := range regime.Slabs {
		field := fmt.Sprintf("slabs[%d]", i)
		if err := domain.CheckPercent(field+".rate_pct", slab.RatePct); err != nil {
			return err
		}
		if slab.UpTo.IsZero() {
			if i != len(regime.Slabs)-1 {
				return domain.Invalid(field+".up_to", "only the last slab may be open-ended")
			}
			continue
		}
		if !slab.UpTo.GreaterThan(previous) {
			return domain.Invalid(field+".up_to", "must exceed the previous slab (%s), got %s", previous.String(), slab.UpTo.String())
		}
		previous = slab.UpTo
	}
	return nil
}

func (ip *InputParser) validateCloud(cloud *domain.CloudConfig) error {
	if err := domain.CheckNonNegative("usd_to_local", cloud.USDToLocal); err != nil {
		return err
	}
	for _, name := range domain.SortedKeys(cloud.Providers) {
		if err := ip.validatePricing(cloud.Providers[name]); err != nil {
			return fmt.Errorf("provider %s: %w", name, err)
		}
	}
	return nil
}

func (ip *InputParser) validatePricing(p domain.ProviderPricing) error {
	for name, rate := range p.ComputeHourly {
		if err := domain.CheckNonNegative("compute_hourly."+name, rate); err != nil {
			return err
		}
	}
	for name, rate := range p.DatabaseHourly {
		if err := domain.CheckNonNegative("database_hourly."+name, rate); err != nil {
			return err
		}
	}
	return firstError(
		domain.CheckRange("database_hours", p.DatabaseHours, decimal.Zero, decimal.NewFromInt(domain.MaxHoursPerMonth)),
		domain.CheckNonNegative("database_storage_per_gb", p.DatabaseStoragePerGB),
		domain.CheckNonNegative("storage_per_gb", p.StoragePerGB),
		domain.CheckNonNegative("request_block", p.RequestBlock),
		domain.CheckNonNegative("request_block_price", p.RequestBlockPrice),
		domain.CheckNonNegative("egress_per_gb", p.EgressPerGB),
		domain.CheckNonNegative("functions_per_million", p.FunctionsPerMillion),
		domain.CheckNonNegative("function_compute_block", p.FunctionComputeBlock),
		domain.CheckNonNegative("function_compute_price", p.FunctionComputePrice),
	)
}

func (ip *InputParser) validateCarbon(carbon *domain.CarbonConfig) error {
	f := carbon.Factors
	if err := firstError(
		domain.CheckNonNegative("factors.petrol", f.Petrol),
		domain.CheckNonNegative("factors.diesel", f.Diesel),
		domain.CheckNonNegative("factors.cng", f.CNG),
		domain.CheckNonNegative("factors.lpg", f.LPG),
		domain.CheckNonNegative("factors.electricity", f.Electricity),
		domain.CheckNonNegative("factors.public_transport", f.PublicTransport),
		domain.CheckNonNegative("factors.bike", f.Bike),
		domain.CheckNonNegative("factors.flight", f.Flight),
		domain.CheckNonNegative("factors.meat_meal", f.MeatMeal),
		domain.CheckNonNegative("factors.shopping", f.Shopping),
		domain.CheckNonNegative("lpg_cylinder_kg", carbon.LPGCylinderKg),
		domain.CheckNonNegative("co2_per_tree_kg", carbon.CO2PerTreeKg),
		domain.CheckNonNegative("default_intensity", carbon.DefaultIntensity),
		domain.CheckNonNegative("default_instance_power_kwh", carbon.DefaultInstancePowerKwh),
		domain.CheckNonNegative("storage_kwh_per_gb_month", carbon.StorageKwhPerGBMonth),
		domain.CheckNonNegative("transfer_kwh_per_gb", carbon.TransferKwhPerGB),
	); err != nil {
		return err
	}
	if err := domain.CheckPUE("pue", carbon.PUE); err != nil {
		return err
	}
	for region, v := range carbon.RegionIntensity {
		if err := domain.CheckNonNegative("region_intensity."+region, v); err != nil {
			return err
		}
	}
	for size, v := range carbon.InstancePowerKwh {
		if err := domain.CheckNonNegative("instance_power_kwh."+size, v); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateRewards(rewards *domain.RewardsConfig) error {
	seen := make(map[string]bool, len(rewards.Cards))
	for i, card := range rewards.Cards {
		if card.ID == "" {
			return domain.Invalid(fmt.Sprintf("cards[%d].id", i), "is required")
		}
		if seen[card.ID] {
			return domain.Invalid(fmt.Sprintf("cards[%d].id", i), "duplicate card %q", card.ID)
		}
		seen[card.ID] = true
		if err := card.Validate(); err != nil {
			return fmt.Errorf("card %s: %w", card.ID, err)
		}
	}
	for i, goal := range rewards.Goals {
		if goal.Key == "" {
			return domain.Invalid(fmt.Sprintf("goals[%d].key", i), "is required")
		}
		if err := domain.CheckPositive("goals."+goal.Key+".points_required", goal.PointsRequired); err != nil {
			return err
		}
	}
	for category, amount := range rewards.DefaultSpend {
		if err := domain.CheckNonNegative("default_spend."+category, amount); err != nil {
			return err
		}
	}
	return firstError(
		domain.CheckNonNegative("default_reward_rate", rewards.DefaultRewardRate),
		domain.CheckNonNegative("default_point_value", rewards.DefaultPointValue),
	)
}

func (ip *InputParser) validateRetirement(r *domain.RetirementConfig) error {
	return firstError(
		domain.CheckPercent("pf_employee_pct", r.PFEmployeePct),
		domain.CheckPercent("pf_employer_pct", r.PFEmployerPct),
		domain.CheckNonNegative("gratuity_days_wage", r.GratuityDaysWage),
		domain.CheckNonNegative("gratuity_divisor_covered", r.GratuityDivisorCovered),
		domain.CheckNonNegative("gratuity_divisor_uncovered", r.GratuityDivisorUncovered),
	)
}

func (ip *InputParser) validateCurrency(c *domain.CurrencyConfig) error {
	for _, code := range domain.SortedKeys(c.Rates) {
		if code == domain.BaseCurrency {
			return domain.Invalid("rates."+code, "the base currency has no rate")
		}
		if err := domain.CheckPositive("rates."+code, c.Rates[code]); err != nil {
			return err
		}
	}
	return nil
}

// validateRanges checks slider overrides. Bounds left at zero keep the
// built-in value, so only explicitly set pairs are compared.
func (ip *InputParser) validateRanges(ranges map[string]map[string]domain.InputRange) error {
	for _, kind := range domain.SortedKeys(ranges) {
		if _, err := domain.ParseKind(kind); err != nil {
			return err
		}
		for _, field := range domain.SortedKeys(ranges[kind]) {
			r := ranges[kind][field]
			name := kind + "." + field
			if !r.Max.IsZero() && r.Min.GreaterThan(r.Max) {
				return domain.Invalid(name, "min %s exceeds max %s", r.Min.String(), r.Max.String())
			}
			if r.Step.IsNegative() {
				return domain.Invalid(name+".step", "must not be negative, got %s", r.Step.String())
			}
			if r.DefaultOption != "" && len(r.Options) > 0 && !contains(r.Options, r.DefaultOption) {
				return domain.Invalid(name+".default_option", "%q is not one of the options", r.DefaultOption)
			}
		}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// LoadEngine builds a calculation engine from a configuration file. An empty
// path yields the built-in defaults.
func (ip *InputParser) LoadEngine(filename string) (*calculation.CalculationEngine, error) {
	if filename == "" {
		return calculation.NewCalculationEngine(), nil
	}
	config, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	return calculation.NewCalculationEngineWithConfig(*config), nil
}
