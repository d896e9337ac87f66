package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cloud providers with built-in price tables.
const (
	ProviderAWS   = "aws"
	ProviderAzure = "azure"
	ProviderGCP   = "gcp"
)

// MaxHoursPerMonth is the longest calendar month in hours.
const MaxHoursPerMonth = 744

// Providers lists the providers in display order.
func Providers() []string {
	return []string{ProviderAWS, ProviderAzure, ProviderGCP}
}

// ComputeUsage is the virtual machine block of a usage profile.
type ComputeUsage struct {
	Instances     decimal.Decimal `yaml:"instances" json:"instances"`
	InstanceType  string          `yaml:"instance_type,omitempty" json:"instance_type,omitempty"`
	HoursPerMonth decimal.Decimal `yaml:"hours_per_month" json:"hours_per_month"`
}

// StorageUsage is object storage capacity and request volume.
type StorageUsage struct {
	GB       decimal.Decimal `yaml:"gb" json:"gb"`
	Requests decimal.Decimal `yaml:"requests,omitempty" json:"requests,omitempty"`
}

// DatabaseUsage is the managed database block. Instances run all month.
type DatabaseUsage struct {
	Instances decimal.Decimal `yaml:"instances" json:"instances"`
	Tier      string          `yaml:"tier,omitempty" json:"tier,omitempty"`
	StorageGB decimal.Decimal `yaml:"storage_gb,omitempty" json:"storage_gb,omitempty"`
}

// FunctionsUsage is serverless invocation volume.
type FunctionsUsage struct {
	Invocations      decimal.Decimal `yaml:"invocations" json:"invocations"`
	ComputeGBSeconds decimal.Decimal `yaml:"compute_gb_seconds,omitempty" json:"compute_gb_seconds,omitempty"`
}

// CloudUsageInput is one month of usage on a single provider.
type CloudUsageInput struct {
	Provider      string          `yaml:"provider" json:"provider"`
	Compute       ComputeUsage    `yaml:"compute" json:"compute"`
	Storage       StorageUsage    `yaml:"storage" json:"storage"`
	Database      DatabaseUsage   `yaml:"database" json:"database"`
	TransferOutGB decimal.Decimal `yaml:"transfer_out_gb" json:"transfer_out_gb"`
	Functions     FunctionsUsage  `yaml:"functions" json:"functions"`
}

// ProviderKey normalizes the provider name for table lookups.
func (in CloudUsageInput) ProviderKey() string {
	return strings.ToLower(strings.TrimSpace(in.Provider))
}

func (in CloudUsageInput) Validate() error {
	if in.ProviderKey() == "" {
		return Invalid("provider", "is required")
	}
	return firstError(
		CheckNonNegative("compute.instances", in.Compute.Instances),
		CheckRange("compute.hours_per_month", in.Compute.HoursPerMonth, decimal.Zero, decimal.NewFromInt(MaxHoursPerMonth)),
		CheckNonNegative("storage.gb", in.Storage.GB),
		CheckNonNegative("storage.requests", in.Storage.Requests),
		CheckNonNegative("database.instances", in.Database.Instances),
		CheckNonNegative("database.storage_gb", in.Database.StorageGB),
		CheckNonNegative("transfer_out_gb", in.TransferOutGB),
		CheckNonNegative("functions.invocations", in.Functions.Invocations),
		CheckNonNegative("functions.compute_gb_seconds", in.Functions.ComputeGBSeconds),
	)
}

// CostLine is the monthly cost of one service in local currency.
type CostLine struct {
	Service string          `yaml:"service" json:"service"`
	Monthly decimal.Decimal `yaml:"monthly" json:"monthly"`
}

type CloudCostResult struct {
	Provider     string          `yaml:"provider" json:"provider"`
	Lines        []CostLine      `yaml:"lines" json:"lines"`
	TotalMonthly decimal.Decimal `yaml:"total_monthly" json:"total_monthly"`
	TotalAnnual  decimal.Decimal `yaml:"total_annual" json:"total_annual"`
	Degraded     []string        `yaml:"degraded,omitempty" json:"degraded,omitempty"`
}

func (r *CloudCostResult) Summary() []Metric {
	m := []Metric{Label("Provider", r.Provider)}
	for _, line := range r.Lines {
		m = append(m, Money(line.Service, line.Monthly))
	}
	m = append(m,
		Money("Total Monthly", r.TotalMonthly),
		Money("Total Annual", r.TotalAnnual),
	)
	return m
}

func (r *CloudCostResult) Tables() []Table { return nil }

func (r *CloudCostResult) DegradedNotes() []string { return r.Degraded }
