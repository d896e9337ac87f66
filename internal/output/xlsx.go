package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first worksheet of an XLSX export.
const SummarySheet = "Summary"

const maxSheetName = 31

// XLSXFormatter writes a workbook with the summary on the first sheet and
// one sheet per table.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(res *Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &[]interface{}{res.Kind.Title()}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", bold); err != nil {
		return nil, err
	}
	row := 3
	for _, m := range res.Report.Summary() {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{m.Label, metricCell(m)}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return nil, err
		}
		if m.Format == domain.FormatCurrency || m.Format == domain.FormatNumber {
			valueCell, _ := excelize.CoordinatesToCellName(2, row)
			if err := f.SetCellStyle(SummarySheet, valueCell, valueCell, money); err != nil {
				return nil, err
			}
		}
		row++
	}
	for _, n := range res.Notes() {
		row++
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SummarySheet, cell, &[]interface{}{"note", n}); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "B", 24); err != nil {
		return nil, err
	}

	used := map[string]bool{SummarySheet: true}
	for _, t := range res.Report.Tables() {
		name := sheetName(t.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
		if err := writeTableSheet(f, name, t, bold, money); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTableSheet(f *excelize.File, sheet string, t domain.Table, headerStyle, moneyStyle int) error {
	header := make([]interface{}, 0, len(t.Columns)+1)
	for _, name := range t.Header() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	// Labelled tables shift the numeric columns one to the right.
	offset := 0
	if t.HasLabels() {
		offset = 1
	}
	for r, values := range t.Rows {
		record := make([]interface{}, len(header))
		if offset == 1 && r < len(t.Labels) {
			record[0] = t.Labels[r]
		}
		for i, col := range t.Columns {
			if i < len(values) {
				record[i+offset] = valueCell(values[i], col.Format)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return err
		}
	}
	for i, col := range t.Columns {
		if col.Format != domain.FormatCurrency || len(t.Rows) == 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(i + offset + 1)
		if err := f.SetCellStyle(sheet, name+"2", fmt.Sprintf("%s%d", name, len(t.Rows)+1), moneyStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func metricCell(m domain.Metric) interface{} {
	if m.Format == domain.FormatText {
		return m.Text
	}
	return valueCell(m.Value, m.Format)
}

func valueCell(v decimal.Decimal, f domain.ValueFormat) interface{} {
	if f == domain.FormatInteger {
		return v.IntPart()
	}
	return v.Round(2).InexactFloat64()
}

// sheetName strips characters Excel rejects, truncates to the sheet name
// limit and keeps names unique within the workbook.
func sheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, title)
	if name == "" {
		name = "Table"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	base := name
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		if len(base)+len(suffix) > maxSheetName {
			name = base[:maxSheetName-len(suffix)] + suffix
		} else {
			name = base + suffix
		}
	}
	used[name] = true
	return name
}
