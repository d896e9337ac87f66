package domain

import "github.com/shopspring/decimal"

// Regime is an income tax rule set a taxpayer may elect.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// TaxInput is gross annual income plus the deductions claimed under the old regime.
// The new regime ignores every deduction except its standard deduction.
type TaxInput struct {
	GrossIncome       decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	HRA               decimal.Decimal `yaml:"hra,omitempty" json:"hra,omitempty"`
	Section80C        decimal.Decimal `yaml:"section_80c,omitempty" json:"section_80c,omitempty"`
	Section80D        decimal.Decimal `yaml:"section_80d,omitempty" json:"section_80d,omitempty"`
	Section80DSelf    decimal.Decimal `yaml:"section_80d_self,omitempty" json:"section_80d_self,omitempty"`
	Section80DParents decimal.Decimal `yaml:"section_80d_parents,omitempty" json:"section_80d_parents,omitempty"`
	Section24         decimal.Decimal `yaml:"section_24,omitempty" json:"section_24,omitempty"`
	NPS80CCD1B        decimal.Decimal `yaml:"nps_80ccd1b,omitempty" json:"nps_80ccd1b,omitempty"`
}

func (in TaxInput) Validate() error {
	return firstError(
		CheckNonNegative("gross_income", in.GrossIncome),
		CheckNonNegative("hra", in.HRA),
		CheckNonNegative("section_80c", in.Section80C),
		CheckNonNegative("section_80d", in.Section80D),
		CheckNonNegative("section_80d_self", in.Section80DSelf),
		CheckNonNegative("section_80d_parents", in.Section80DParents),
		CheckNonNegative("section_24", in.Section24),
		CheckNonNegative("nps_80ccd1b", in.NPS80CCD1B),
	)
}

// RegimeTax is the liability under one regime.
type RegimeTax struct {
	Regime           Regime          `yaml:"regime" json:"regime"`
	Deductions       decimal.Decimal `yaml:"deductions" json:"deductions"`
	TaxableIncome    decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	SlabTax          decimal.Decimal `yaml:"slab_tax" json:"slab_tax"`
	RebateApplied    bool            `yaml:"rebate_applied" json:"rebate_applied"`
	BaseTax          decimal.Decimal `yaml:"base_tax" json:"base_tax"`
	Cess             decimal.Decimal `yaml:"cess" json:"cess"`
	TotalTax         decimal.Decimal `yaml:"total_tax" json:"total_tax"`
	EffectiveRatePct decimal.Decimal `yaml:"effective_rate_pct" json:"effective_rate_pct"`
}

type TaxResult struct {
	Old         RegimeTax       `yaml:"old" json:"old"`
	New         RegimeTax       `yaml:"new" json:"new"`
	Recommended Regime          `yaml:"recommended" json:"recommended"`
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
}

func (r *TaxResult) Summary() []Metric {
	return []Metric{
		Money("Old Regime Taxable Income", r.Old.TaxableIncome),
		Money("Old Regime Total Tax", r.Old.TotalTax),
		Percent("Old Regime Effective Rate", r.Old.EffectiveRatePct),
		Money("New Regime Taxable Income", r.New.TaxableIncome),
		Money("New Regime Total Tax", r.New.TotalTax),
		Percent("New Regime Effective Rate", r.New.EffectiveRatePct),
		Label("Recommended Regime", string(r.Recommended)),
		Money("Savings", r.Savings),
	}
}

func (r *TaxResult) Tables() []Table {
	t := Table{
		Title:       "Regime Comparison",
		LabelHeader: "Regime",
		Columns: []Column{
			{Name: "Deductions", Format: FormatCurrency},
			{Name: "Taxable Income", Format: FormatCurrency},
			{Name: "Base Tax", Format: FormatCurrency},
			{Name: "Cess", Format: FormatCurrency},
			{Name: "Total Tax", Format: FormatCurrency},
		},
	}
	for _, rt := range []RegimeTax{r.Old, r.New} {
		t.Labels = append(t.Labels, string(rt.Regime))
		t.Rows = append(t.Rows, []decimal.Decimal{rt.Deductions, rt.TaxableIncome, rt.BaseTax, rt.Cess, rt.TotalTax})
	}
	return []Table{t}
}
