package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

var (
	weeksPerYear = decimal.NewFromInt(52)
	thousand     = decimal.NewFromInt(1000)
	monthNames   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// DefaultCarbonFactors are emission factors for India in kg CO2 per unit:
// per litre of fuel, per kWh, per km, per flight hour, per meal and per rupee spent.
func DefaultCarbonFactors() domain.CarbonFactors {
	return domain.CarbonFactors{
		Petrol:          dec("2.31"),
		Diesel:          dec("2.68"),
		CNG:             dec("1.5"),
		LPG:             dec("1.5"),
		Electricity:     dec("0.82"),
		PublicTransport: dec("0.05"),
		Bike:            dec("0.12"),
		Flight:          dec("90"),
		MeatMeal:        dec("3.5"),
		Shopping:        dec("0.001"),
	}
}

// DefaultRegionIntensity is grid carbon intensity in kg CO2 per kWh by cloud region.
func DefaultRegionIntensity() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"ap-south-1":     dec("0.82"),
		"ap-southeast-1": dec("0.50"),
		"us-east-1":      dec("0.40"),
		"us-west-2":      dec("0.30"),
		"eu-west-1":      dec("0.30"),
		"central-india":  dec("0.82"),
		"east-us":        dec("0.40"),
		"west-europe":    dec("0.30"),
		"asia-south1":    dec("0.82"),
		"us-central1":    dec("0.40"),
		"europe-west1":   dec("0.30"),
	}
}

// DefaultInstancePower is average draw in kWh per hour by instance size.
func DefaultInstancePower() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"small":  dec("0.05"),
		"medium": dec("0.10"),
		"large":  dec("0.20"),
		"xlarge": dec("0.40"),
	}
}

// CarbonFootprintCalculator sums annual emissions across categories.
type CarbonFootprintCalculator struct {
	Factors                 domain.CarbonFactors
	LPGCylinderKg           decimal.Decimal
	CO2PerTreeKg            decimal.Decimal
	PUE                     decimal.Decimal
	RegionIntensity         map[string]decimal.Decimal
	DefaultIntensity        decimal.Decimal
	InstancePowerKwh        map[string]decimal.Decimal
	DefaultInstancePowerKwh decimal.Decimal
	StorageKwhPerGBMonth    decimal.Decimal
	TransferKwhPerGB        decimal.Decimal
}

// NewCarbonFootprintCalculator overlays configured factors on the defaults.
func NewCarbonFootprintCalculator(cfg domain.CarbonConfig) *CarbonFootprintCalculator {
	f := DefaultCarbonFactors()
	o := cfg.Factors
	f.Petrol = orDefault(o.Petrol, f.Petrol)
	f.Diesel = orDefault(o.Diesel, f.Diesel)
	f.CNG = orDefault(o.CNG, f.CNG)
	f.LPG = orDefault(o.LPG, f.LPG)
	f.Electricity = orDefault(o.Electricity, f.Electricity)
	f.PublicTransport = orDefault(o.PublicTransport, f.PublicTransport)
	f.Bike = orDefault(o.Bike, f.Bike)
	f.Flight = orDefault(o.Flight, f.Flight)
	f.MeatMeal = orDefault(o.MeatMeal, f.MeatMeal)
	f.Shopping = orDefault(o.Shopping, f.Shopping)

	return &CarbonFootprintCalculator{
		Factors:                 f,
		LPGCylinderKg:           orDefault(cfg.LPGCylinderKg, dec("14.2")),
		CO2PerTreeKg:            orDefault(cfg.CO2PerTreeKg, decimal.NewFromInt(20)),
		PUE:                     orDefault(cfg.PUE, dec("1.5")),
		RegionIntensity:         mergeRates(DefaultRegionIntensity(), lookupKeys(cfg.RegionIntensity)),
		DefaultIntensity:        orDefault(cfg.DefaultIntensity, dec("0.82")),
		InstancePowerKwh:        mergeRates(DefaultInstancePower(), lookupKeys(cfg.InstancePowerKwh)),
		DefaultInstancePowerKwh: orDefault(cfg.DefaultInstancePowerKwh, dec("0.10")),
		StorageKwhPerGBMonth:    orDefault(cfg.StorageKwhPerGBMonth, dec("0.0001")),
		TransferKwhPerGB:        orDefault(cfg.TransferKwhPerGB, dec("0.0005")),
	}
}

// Calculate returns the annual footprint and the trees needed to offset it.
func (cf *CarbonFootprintCalculator) Calculate(in domain.CarbonFootprintInput) (*domain.CarbonFootprintResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	res := &domain.CarbonFootprintResult{}

	transport, note := cf.transport(in.Transport)
	if note != "" {
		res.Degraded = append(res.Degraded, note)
	}
	res.Breakdown = []domain.CategoryEmission{
		{Category: domain.CategoryTransportation, AnnualCO2: transport},
		{Category: domain.CategoryEnergy, AnnualCO2: cf.energy(in.Energy)},
		{Category: domain.CategoryLifestyle, AnnualCO2: cf.lifestyle(in.Lifestyle)},
	}
	if in.Cloud != nil {
		pue := orDefault(in.PUE, cf.PUE)
		cloud, notes := cf.cloud(*in.Cloud, pue)
		res.Degraded = append(res.Degraded, notes...)
		res.Breakdown = append(res.Breakdown, domain.CategoryEmission{Category: domain.CategoryCloud, AnnualCO2: cloud})
	}

	for _, b := range res.Breakdown {
		res.TotalAnnualCO2 = res.TotalAnnualCO2.Add(b.AnnualCO2)
	}
	res.TotalAnnualCO2Tons = finmath.Div(res.TotalAnnualCO2, thousand)
	res.TreesNeeded = cf.TreesNeeded(res.TotalAnnualCO2)

	monthly := finmath.Div(res.TotalAnnualCO2, twelve)
	for _, name := range monthNames {
		res.Monthly = append(res.Monthly, domain.MonthlyEmission{Month: name, CO2: monthly})
	}
	return res, nil
}

// TreesNeeded is ceil(annual / CO2PerTreeKg); zero emissions need no trees.
func (cf *CarbonFootprintCalculator) TreesNeeded(annualCO2 decimal.Decimal) int64 {
	if !annualCO2.IsPositive() {
		return 0
	}
	return finmath.Div(annualCO2, cf.CO2PerTreeKg).Ceil().IntPart()
}

func (cf *CarbonFootprintCalculator) transport(t domain.TransportUsage) (decimal.Decimal, string) {
	var total decimal.Decimal
	var note string
	if t.CarKmPerMonth.IsPositive() {
		factor, n := cf.fuelFactor(t.FuelKey())
		note = n
		total = finmath.Div(t.CarKmPerMonth.Mul(factor).Mul(twelve), t.CarEfficiencyKmpl)
	}
	total = total.
		Add(t.BikeKmPerMonth.Mul(cf.Factors.Bike).Mul(twelve)).
		Add(t.PublicTransportKmPerMonth.Mul(cf.Factors.PublicTransport).Mul(twelve)).
		Add(t.FlightHoursPerYear.Mul(cf.Factors.Flight))
	return total, note
}

// fuelFactor treats any unrecognised fuel as diesel.
func (cf *CarbonFootprintCalculator) fuelFactor(fuel string) (decimal.Decimal, string) {
	switch fuel {
	case domain.FuelPetrol:
		return cf.Factors.Petrol, ""
	case domain.FuelDiesel:
		return cf.Factors.Diesel, ""
	case domain.FuelCNG:
		return cf.Factors.CNG, ""
	}
	return cf.Factors.Diesel, fmt.Sprintf("unknown fuel type %q, using diesel factor", fuel)
}

func (cf *CarbonFootprintCalculator) energy(e domain.EnergyUsage) decimal.Decimal {
	return e.ElectricityKwhPerMonth.Mul(cf.Factors.Electricity).Mul(twelve).
		Add(e.LPGCylindersPerMonth.Mul(cf.LPGCylinderKg).Mul(cf.Factors.LPG).Mul(twelve)).
		Add(e.CNGKgPerMonth.Mul(cf.Factors.CNG).Mul(twelve))
}

func (cf *CarbonFootprintCalculator) lifestyle(l domain.LifestyleUsage) decimal.Decimal {
	return l.MeatMealsPerWeek.Mul(cf.Factors.MeatMeal).Mul(weeksPerYear).
		Add(l.ShoppingAmountPerMonth.Mul(cf.Factors.Shopping).Mul(twelve))
}

// cloud converts infrastructure energy to emissions using the region's grid
// intensity scaled by PUE.
func (cf *CarbonFootprintCalculator) cloud(c domain.CloudCarbonUsage, pue decimal.Decimal) (decimal.Decimal, []string) {
	var notes []string

	intensity, note := cf.regionIntensity(c)
	if note != "" {
		notes = append(notes, note)
	}
	computePower, note := cf.instancePower(c.ComputeInstanceType)
	if note != "" {
		notes = append(notes, note)
	}
	dbPower := computePower
	if c.DatabaseInstanceType != "" {
		dbPower, note = cf.instancePower(c.DatabaseInstanceType)
		if note != "" {
			notes = append(notes, note)
		}
	}

	kwh := c.ComputeInstances.Mul(computePower).Mul(c.ComputeHoursPerMonth).
		Add(c.DatabaseInstances.Mul(dbPower).Mul(c.DatabaseHoursPerMonth)).
		Add(c.StorageGB.Mul(cf.StorageKwhPerGBMonth)).
		Add(c.DataTransferGB.Mul(cf.TransferKwhPerGB)).
		Mul(twelve)
	return kwh.Mul(intensity).Mul(pue), notes
}

// lookupKeys lowercases and trims keys so configured entries match the
// normalised region and size lookups.
func lookupKeys(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// regionIntensity prefers the caller's value, then the region table, then
// the grid-average default.
func (cf *CarbonFootprintCalculator) regionIntensity(c domain.CloudCarbonUsage) (decimal.Decimal, string) {
	if c.RegionIntensity != nil {
		return *c.RegionIntensity, ""
	}
	region := strings.ToLower(strings.TrimSpace(c.Region))
	if v, ok := cf.RegionIntensity[region]; ok {
		return v, ""
	}
	return cf.DefaultIntensity, fmt.Sprintf("unknown region %q, using default intensity %s kg/kWh", c.Region, cf.DefaultIntensity.String())
}

func (cf *CarbonFootprintCalculator) instancePower(size string) (decimal.Decimal, string) {
	key := strings.ToLower(strings.TrimSpace(size))
	if key == "" {
		return cf.DefaultInstancePowerKwh, ""
	}
	if v, ok := cf.InstancePowerKwh[key]; ok {
		return v, ""
	}
	return cf.DefaultInstancePowerKwh, fmt.Sprintf("unknown instance size %q, using %s kWh/h", size, cf.DefaultInstancePowerKwh.String())
}
