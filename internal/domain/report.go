package domain

import "github.com/shopspring/decimal"

// ValueFormat tells formatters how to render a number.
type ValueFormat int

const (
	FormatCurrency ValueFormat = iota
	FormatPercent
	FormatNumber
	FormatInteger
	FormatText
)

// Metric is one labelled headline value of a result.
type Metric struct {
	Label  string
	Value  decimal.Decimal
	Format ValueFormat
	Text   string
}

// Column describes one column of a result table.
type Column struct {
	Name   string
	Format ValueFormat
}

// Table is a numeric series attached to a result, such as an amortization schedule.
// Labels, when set, name each row and are rendered ahead of the columns under
// LabelHeader.
type Table struct {
	Title       string
	LabelHeader string
	Labels      []string
	Columns     []Column
	Rows        [][]decimal.Decimal
}

// HasLabels reports whether rows carry a text label.
func (t Table) HasLabels() bool { return len(t.Labels) > 0 }

// Header returns the column names, led by LabelHeader for labelled tables.
func (t Table) Header() []string {
	var out []string
	if t.HasLabels() {
		out = append(out, t.LabelHeader)
	}
	for _, c := range t.Columns {
		out = append(out, c.Name)
	}
	return out
}

// Cells renders row r with format, led by the row's label for labelled tables.
func (t Table) Cells(r int, format func(decimal.Decimal, ValueFormat) string) []string {
	out := make([]string, 0, len(t.Columns)+1)
	if t.HasLabels() {
		label := ""
		if r < len(t.Labels) {
			label = t.Labels[r]
		}
		out = append(out, label)
	}
	row := t.Rows[r]
	for i, c := range t.Columns {
		cell := ""
		if i < len(row) {
			cell = format(row[i], c.Format)
		}
		out = append(out, cell)
	}
	return out
}

// Report is implemented by every calculator result so output formatters can
// render any kind without knowing its concrete type.
type Report interface {
	Summary() []Metric
	Tables() []Table
}

// Degradable is implemented by results that can fall back to default
// lookups instead of failing.
type Degradable interface {
	DegradedNotes() []string
}

// Money builds a currency metric.
func Money(label string, v decimal.Decimal) Metric {
	return Metric{Label: label, Value: v, Format: FormatCurrency}
}

// Percent builds a percentage metric. v is already in percent units.
func Percent(label string, v decimal.Decimal) Metric {
	return Metric{Label: label, Value: v, Format: FormatPercent}
}

// Number builds a plain numeric metric.
func Number(label string, v decimal.Decimal) Metric {
	return Metric{Label: label, Value: v, Format: FormatNumber}
}

// Integer builds an integer metric.
func Integer(label string, v int) Metric {
	return Metric{Label: label, Value: decimal.NewFromInt(int64(v)), Format: FormatInteger}
}

// Label builds a text-only metric.
func Label(label, text string) Metric {
	return Metric{Label: label, Format: FormatText, Text: text}
}

func intCell(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}
