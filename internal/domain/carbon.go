package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Fuel types recognised by the transport factors.
const (
	FuelPetrol = "petrol"
	FuelDiesel = "diesel"
	FuelCNG    = "cng"
)

// TransportUsage is monthly travel plus yearly flying.
type TransportUsage struct {
	CarKmPerMonth             decimal.Decimal `yaml:"car_km_per_month" json:"car_km_per_month"`
	CarFuelType               string          `yaml:"car_fuel_type,omitempty" json:"car_fuel_type,omitempty"`
	CarEfficiencyKmpl         decimal.Decimal `yaml:"car_efficiency_kmpl" json:"car_efficiency_kmpl"`
	BikeKmPerMonth            decimal.Decimal `yaml:"bike_km_per_month" json:"bike_km_per_month"`
	PublicTransportKmPerMonth decimal.Decimal `yaml:"public_transport_km_per_month" json:"public_transport_km_per_month"`
	FlightHoursPerYear        decimal.Decimal `yaml:"flight_hours_per_year" json:"flight_hours_per_year"`
}

// FuelKey normalizes the fuel type. Empty means petrol.
func (t TransportUsage) FuelKey() string {
	f := strings.ToLower(strings.TrimSpace(t.CarFuelType))
	if f == "" {
		return FuelPetrol
	}
	return f
}

// EnergyUsage is monthly household energy.
type EnergyUsage struct {
	ElectricityKwhPerMonth decimal.Decimal `yaml:"electricity_kwh_per_month" json:"electricity_kwh_per_month"`
	LPGCylindersPerMonth   decimal.Decimal `yaml:"lpg_cylinders_per_month" json:"lpg_cylinders_per_month"`
	CNGKgPerMonth          decimal.Decimal `yaml:"cng_kg_per_month" json:"cng_kg_per_month"`
}

// LifestyleUsage covers diet and consumption.
type LifestyleUsage struct {
	MeatMealsPerWeek       decimal.Decimal `yaml:"meat_meals_per_week" json:"meat_meals_per_week"`
	ShoppingAmountPerMonth decimal.Decimal `yaml:"shopping_amount_per_month" json:"shopping_amount_per_month"`
}

// CloudCarbonUsage is the optional infrastructure block of a footprint.
type CloudCarbonUsage struct {
	Provider              string          `yaml:"provider,omitempty" json:"provider,omitempty"`
	Region                string          `yaml:"region" json:"region"`
	ComputeInstances      decimal.Decimal `yaml:"compute_instances" json:"compute_instances"`
	ComputeInstanceType   string          `yaml:"compute_instance_type,omitempty" json:"compute_instance_type,omitempty"`
	ComputeHoursPerMonth  decimal.Decimal `yaml:"compute_hours_per_month" json:"compute_hours_per_month"`
	StorageGB             decimal.Decimal `yaml:"storage_gb" json:"storage_gb"`
	DataTransferGB        decimal.Decimal `yaml:"data_transfer_gb" json:"data_transfer_gb"`
	DatabaseInstances     decimal.Decimal `yaml:"database_instances" json:"database_instances"`
	DatabaseInstanceType  string          `yaml:"database_instance_type,omitempty" json:"database_instance_type,omitempty"`
	DatabaseHoursPerMonth decimal.Decimal `yaml:"database_hours_per_month" json:"database_hours_per_month"`
	// RegionIntensity overrides every region table, in kg CO2 per kWh.
	RegionIntensity *decimal.Decimal `yaml:"region_intensity,omitempty" json:"region_intensity,omitempty"`
}

// CarbonFootprintInput is a household's usage. PUE zero means the configured default.
type CarbonFootprintInput struct {
	Transport TransportUsage    `yaml:"transport" json:"transport"`
	Energy    EnergyUsage       `yaml:"energy" json:"energy"`
	Lifestyle LifestyleUsage    `yaml:"lifestyle" json:"lifestyle"`
	Cloud     *CloudCarbonUsage `yaml:"cloud,omitempty" json:"cloud,omitempty"`
	PUE       decimal.Decimal   `yaml:"pue,omitempty" json:"pue,omitempty"`
}

func (in CarbonFootprintInput) Validate() error {
	t := in.Transport
	if t.CarKmPerMonth.IsPositive() {
		if err := CheckPositive("transport.car_efficiency_kmpl", t.CarEfficiencyKmpl); err != nil {
			return err
		}
	}
	err := firstError(
		CheckNonNegative("transport.car_km_per_month", t.CarKmPerMonth),
		CheckNonNegative("transport.car_efficiency_kmpl", t.CarEfficiencyKmpl),
		CheckNonNegative("transport.bike_km_per_month", t.BikeKmPerMonth),
		CheckNonNegative("transport.public_transport_km_per_month", t.PublicTransportKmPerMonth),
		CheckNonNegative("transport.flight_hours_per_year", t.FlightHoursPerYear),
		CheckNonNegative("energy.electricity_kwh_per_month", in.Energy.ElectricityKwhPerMonth),
		CheckNonNegative("energy.lpg_cylinders_per_month", in.Energy.LPGCylindersPerMonth),
		CheckNonNegative("energy.cng_kg_per_month", in.Energy.CNGKgPerMonth),
		CheckNonNegative("lifestyle.meat_meals_per_week", in.Lifestyle.MeatMealsPerWeek),
		CheckNonNegative("lifestyle.shopping_amount_per_month", in.Lifestyle.ShoppingAmountPerMonth),
		CheckPUE("pue", in.PUE),
	)
	if err != nil || in.Cloud == nil {
		return err
	}
	c := in.Cloud
	if c.RegionIntensity != nil {
		if err := CheckNonNegative("cloud.region_intensity", *c.RegionIntensity); err != nil {
			return err
		}
	}
	return firstError(
		CheckNonNegative("cloud.compute_instances", c.ComputeInstances),
		CheckRange("cloud.compute_hours_per_month", c.ComputeHoursPerMonth, decimal.Zero, decimal.NewFromInt(MaxHoursPerMonth)),
		CheckNonNegative("cloud.storage_gb", c.StorageGB),
		CheckNonNegative("cloud.data_transfer_gb", c.DataTransferGB),
		CheckNonNegative("cloud.database_instances", c.DatabaseInstances),
		CheckRange("cloud.database_hours_per_month", c.DatabaseHoursPerMonth, decimal.Zero, decimal.NewFromInt(MaxHoursPerMonth)),
	)
}

// Emission categories.
const (
	CategoryTransportation = "Transportation"
	CategoryEnergy         = "Energy"
	CategoryLifestyle      = "Lifestyle"
	CategoryCloud          = "Cloud"
)

// CategoryEmission is the annual kg CO2 of one category.
type CategoryEmission struct {
	Category  string          `yaml:"category" json:"category"`
	AnnualCO2 decimal.Decimal `yaml:"annual_co2" json:"annual_co2"`
}

// MonthlyEmission is one month of the even monthly breakdown.
type MonthlyEmission struct {
	Month string          `yaml:"month" json:"month"`
	CO2   decimal.Decimal `yaml:"co2" json:"co2"`
}

type CarbonFootprintResult struct {
	Breakdown          []CategoryEmission `yaml:"breakdown" json:"breakdown"`
	TotalAnnualCO2     decimal.Decimal    `yaml:"total_annual_co2" json:"total_annual_co2"`
	TotalAnnualCO2Tons decimal.Decimal    `yaml:"total_annual_co2_tons" json:"total_annual_co2_tons"`
	TreesNeeded        int64              `yaml:"trees_needed" json:"trees_needed"`
	Monthly            []MonthlyEmission  `yaml:"monthly" json:"monthly"`
	Degraded           []string           `yaml:"degraded,omitempty" json:"degraded,omitempty"`
}

func (r *CarbonFootprintResult) Summary() []Metric {
	var m []Metric
	for _, b := range r.Breakdown {
		m = append(m, Number(b.Category+" (kg CO2/yr)", b.AnnualCO2))
	}
	m = append(m,
		Number("Total (kg CO2/yr)", r.TotalAnnualCO2),
		Number("Total (t CO2/yr)", r.TotalAnnualCO2Tons),
		Metric{Label: "Trees to Offset", Value: decimal.NewFromInt(r.TreesNeeded), Format: FormatInteger},
	)
	return m
}

func (r *CarbonFootprintResult) Tables() []Table {
	t := Table{
		Title:       "Monthly Emissions (kg CO2)",
		LabelHeader: "Month",
		Columns:     []Column{{Name: "CO2", Format: FormatNumber}},
	}
	for _, row := range r.Monthly {
		t.Labels = append(t.Labels, row.Month)
		t.Rows = append(t.Rows, []decimal.Decimal{row.CO2})
	}
	return []Table{t}
}

func (r *CarbonFootprintResult) DegradedNotes() []string { return r.Degraded }
