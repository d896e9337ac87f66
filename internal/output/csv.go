package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes the summary metrics followed by each table as its own
// block, separated by blank records.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(res *Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Value"}); err != nil {
		return nil, err
	}
	for _, m := range res.Report.Summary() {
		if err := w.Write([]string{m.Label, RawMetric(m)}); err != nil {
			return nil, err
		}
	}
	for _, t := range res.Report.Tables() {
		if err := w.WriteAll([][]string{{}, {t.Title}, t.Header()}); err != nil {
			return nil, err
		}
		for r := range t.Rows {
			if err := w.Write(t.Cells(r, RawValue)); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
