package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTable_HeaderAndCells(t *testing.T) {
	plain := func(v decimal.Decimal, _ ValueFormat) string { return v.String() }
	cols := []Column{{Name: "Year", Format: FormatInteger}, {Name: "Value", Format: FormatCurrency}}
	rows := [][]decimal.Decimal{
		{decimal.NewFromInt(1), decimal.NewFromInt(100)},
		{decimal.NewFromInt(2)},
	}

	tests := []struct {
		name   string
		table  Table
		header []string
		first  []string
		short  []string
	}{
		{
			name:   "unlabelled",
			table:  Table{Columns: cols, Rows: rows},
			header: []string{"Year", "Value"},
			first:  []string{"1", "100"},
			short:  []string{"2", ""},
		},
		{
			name:   "labelled",
			table:  Table{LabelHeader: "Plan", Labels: []string{"Base", "Stretch"}, Columns: cols, Rows: rows},
			header: []string{"Plan", "Year", "Value"},
			first:  []string{"Base", "1", "100"},
			short:  []string{"Stretch", "2", ""},
		},
		{
			name:   "missing label",
			table:  Table{LabelHeader: "Plan", Labels: []string{"Base"}, Columns: cols, Rows: rows},
			header: []string{"Plan", "Year", "Value"},
			first:  []string{"Base", "1", "100"},
			short:  []string{"", "2", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.header, tt.table.Header())
			assert.Equal(t, tt.first, tt.table.Cells(0, plain))
			assert.Equal(t, tt.short, tt.table.Cells(1, plain))
		})
	}
}
