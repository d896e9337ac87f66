package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/finmath"
	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1000000)

// DefaultProviderPricing returns the built-in list prices in USD.
func DefaultProviderPricing() map[string]domain.ProviderPricing {
	return map[string]domain.ProviderPricing{
		domain.ProviderAWS: {
			Services: domain.ServiceNames{Compute: "EC2", Storage: "S3", Database: "RDS", Transfer: "Data Transfer", Functions: "Lambda"},
			ComputeHourly: map[string]decimal.Decimal{
				"t3.micro": dec("0.0104"), "t3.small": dec("0.0208"), "t3.medium": dec("0.0416"), "t3.large": dec("0.0832"),
				"m5.large": dec("0.096"), "m5.xlarge": dec("0.192"), "c5.large": dec("0.085"), "c5.xlarge": dec("0.17"),
			},
			DefaultComputeType: "t3.medium",
			DatabaseHourly: map[string]decimal.Decimal{
				"db.t3.micro": dec("0.017"), "db.t3.small": dec("0.034"), "db.t3.medium": dec("0.068"),
				"db.t3.large": dec("0.136"), "db.m5.large": dec("0.171"), "db.m5.xlarge": dec("0.342"),
			},
			DefaultDatabaseTier:  "db.t3.medium",
			DatabaseHours:        decimal.NewFromInt(730),
			DatabaseStoragePerGB: dec("0.115"),
			StoragePerGB:         dec("0.023"),
			RequestBlock:         decimal.NewFromInt(1000),
			RequestBlockPrice:    dec("0.0004"),
			EgressPerGB:          dec("0.09"),
			FunctionsPerMillion:  dec("0.20"),
			FunctionComputeBlock: million,
			FunctionComputePrice: dec("0.0000166667"),
		},
		domain.ProviderAzure: {
			Services: domain.ServiceNames{Compute: "Virtual Machines", Storage: "Blob Storage", Database: "SQL Database", Transfer: "Bandwidth", Functions: "Functions"},
			ComputeHourly: map[string]decimal.Decimal{
				"B1s": dec("0.0104"), "B1ms": dec("0.0208"), "B2s": dec("0.0416"), "B2ms": dec("0.0832"),
				"D2s_v3": dec("0.096"), "D4s_v3": dec("0.192"), "F2s_v2": dec("0.085"), "F4s_v2": dec("0.17"),
			},
			DefaultComputeType: "B2s",
			DatabaseHourly: map[string]decimal.Decimal{
				"S0": dec("0.015"), "S1": dec("0.03"), "S2": dec("0.06"), "S3": dec("0.12"), "P1": dec("0.465"), "P2": dec("0.93"),
			},
			DefaultDatabaseTier:  "S2",
			DatabaseHours:        decimal.NewFromInt(730),
			DatabaseStoragePerGB: dec("0.115"),
			StoragePerGB:         dec("0.018"),
			RequestBlock:         decimal.NewFromInt(10000),
			RequestBlockPrice:    dec("0.004"),
			EgressPerGB:          dec("0.087"),
			FunctionsPerMillion:  dec("0.20"),
			FunctionComputeBlock: million,
			FunctionComputePrice: dec("0.000016"),
		},
		domain.ProviderGCP: {
			Services: domain.ServiceNames{Compute: "Compute Engine", Storage: "Cloud Storage", Database: "Cloud SQL", Transfer: "Network Egress", Functions: "Cloud Functions"},
			ComputeHourly: map[string]decimal.Decimal{
				"f1-micro": dec("0.0076"), "g1-small": dec("0.0257"), "n1-standard-1": dec("0.0475"), "n1-standard-2": dec("0.095"),
				"n1-standard-4": dec("0.19"), "n1-highmem-2": dec("0.1184"), "n1-highmem-4": dec("0.2368"),
			},
			DefaultComputeType: "n1-standard-1",
			DatabaseHourly: map[string]decimal.Decimal{
				"db-f1-micro": dec("0.015"), "db-g1-small": dec("0.03"), "db-n1-standard-1": dec("0.06"),
				"db-n1-standard-2": dec("0.12"), "db-n1-standard-4": dec("0.24"),
			},
			DefaultDatabaseTier:  "db-n1-standard-1",
			DatabaseHours:        decimal.NewFromInt(730),
			DatabaseStoragePerGB: dec("0.17"),
			StoragePerGB:         dec("0.020"),
			RequestBlock:         decimal.NewFromInt(10000),
			RequestBlockPrice:    dec("0.005"),
			EgressPerGB:          dec("0.12"),
			FunctionsPerMillion:  dec("0.40"),
			FunctionComputeBlock: million,
			FunctionComputePrice: dec("0.0000025"),
		},
	}
}

// CloudCostCalculator prices a month of usage from flat unit-price tables.
// There is no tiered pricing and no free tier.
type CloudCostCalculator struct {
	USDToLocal decimal.Decimal
	Providers  map[string]domain.ProviderPricing
}

// NewCloudCostCalculator overlays configured pricing on the built-in tables.
// Providers absent from the built-ins must be configured in full.
func NewCloudCostCalculator(cfg domain.CloudConfig) *CloudCostCalculator {
	providers := DefaultProviderPricing()
	for name, override := range cfg.Providers {
		providers[name] = mergePricing(providers[name], override)
	}
	return &CloudCostCalculator{
		USDToLocal: orDefault(cfg.USDToLocal, decimal.NewFromInt(83)),
		Providers:  providers,
	}
}

func mergePricing(base, o domain.ProviderPricing) domain.ProviderPricing {
	base.Services.Compute = orDefaultString(o.Services.Compute, base.Services.Compute)
	base.Services.Storage = orDefaultString(o.Services.Storage, base.Services.Storage)
	base.Services.Database = orDefaultString(o.Services.Database, base.Services.Database)
	base.Services.Transfer = orDefaultString(o.Services.Transfer, base.Services.Transfer)
	base.Services.Functions = orDefaultString(o.Services.Functions, base.Services.Functions)
	base.ComputeHourly = mergeRates(base.ComputeHourly, o.ComputeHourly)
	base.DefaultComputeType = orDefaultString(o.DefaultComputeType, base.DefaultComputeType)
	base.DatabaseHourly = mergeRates(base.DatabaseHourly, o.DatabaseHourly)
	base.DefaultDatabaseTier = orDefaultString(o.DefaultDatabaseTier, base.DefaultDatabaseTier)
	base.DatabaseHours = orDefault(o.DatabaseHours, base.DatabaseHours)
	base.DatabaseStoragePerGB = orDefault(o.DatabaseStoragePerGB, base.DatabaseStoragePerGB)
	base.StoragePerGB = orDefault(o.StoragePerGB, base.StoragePerGB)
	base.RequestBlock = orDefault(o.RequestBlock, base.RequestBlock)
	base.RequestBlockPrice = orDefault(o.RequestBlockPrice, base.RequestBlockPrice)
	base.EgressPerGB = orDefault(o.EgressPerGB, base.EgressPerGB)
	base.FunctionsPerMillion = orDefault(o.FunctionsPerMillion, base.FunctionsPerMillion)
	base.FunctionComputeBlock = orDefault(o.FunctionComputeBlock, base.FunctionComputeBlock)
	base.FunctionComputePrice = orDefault(o.FunctionComputePrice, base.FunctionComputePrice)
	return base
}

// Calculate prices usage on its provider. Unknown instance types and tiers
// fall back to the provider default and are reported in Degraded.
func (cc *CloudCostCalculator) Calculate(in domain.CloudUsageInput) (*domain.CloudCostResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	provider := in.ProviderKey()
	p, ok := cc.Providers[provider]
	if !ok {
		return nil, domain.Invalid("provider", "no pricing for %q", in.Provider)
	}

	res := &domain.CloudCostResult{Provider: provider}

	computeRate, note := lookupRate(p.ComputeHourly, in.Compute.InstanceType, p.DefaultComputeType, "instance type")
	if note != "" {
		res.Degraded = append(res.Degraded, note)
	}
	dbRate, note := lookupRate(p.DatabaseHourly, in.Database.Tier, p.DefaultDatabaseTier, "database tier")
	if note != "" {
		res.Degraded = append(res.Degraded, note)
	}

	compute := in.Compute.Instances.Mul(computeRate).Mul(in.Compute.HoursPerMonth)
	storage := in.Storage.GB.Mul(p.StoragePerGB).
		Add(perBlock(in.Storage.Requests, p.RequestBlock, p.RequestBlockPrice))
	database := in.Database.Instances.Mul(dbRate).Mul(p.DatabaseHours).
		Add(in.Database.StorageGB.Mul(p.DatabaseStoragePerGB))
	transfer := in.TransferOutGB.Mul(p.EgressPerGB)
	functions := perBlock(in.Functions.Invocations, million, p.FunctionsPerMillion).
		Add(perBlock(in.Functions.ComputeGBSeconds, p.FunctionComputeBlock, p.FunctionComputePrice))

	for _, line := range []domain.CostLine{
		{Service: p.Services.Compute, Monthly: compute},
		{Service: p.Services.Storage, Monthly: storage},
		{Service: p.Services.Database, Monthly: database},
		{Service: p.Services.Transfer, Monthly: transfer},
		{Service: p.Services.Functions, Monthly: functions},
	} {
		line.Monthly = line.Monthly.Mul(cc.USDToLocal)
		res.Lines = append(res.Lines, line)
		res.TotalMonthly = res.TotalMonthly.Add(line.Monthly)
	}
	res.TotalAnnual = res.TotalMonthly.Mul(twelve)
	return res, nil
}

// lookupRate resolves key in rates. An empty key silently uses the default;
// an unknown key uses the default and returns a degraded note.
func lookupRate(rates map[string]decimal.Decimal, key, defaultKey, what string) (decimal.Decimal, string) {
	if key == "" {
		return rates[defaultKey], ""
	}
	if r, ok := rates[key]; ok {
		return r, ""
	}
	return rates[defaultKey], fmt.Sprintf("unknown %s %q, priced as %s", what, key, defaultKey)
}

// perBlock prices qty at price per block units. A zero block is free.
func perBlock(qty, block, price decimal.Decimal) decimal.Decimal {
	if block.IsZero() {
		return decimal.Zero
	}
	return finmath.Div(qty, block).Mul(price)
}
