package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/finwise/internal/domain"
)

// HTMLFormatter produces a standalone HTML page for a result.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"metric": FormatMetric,
}).Parse(htmlTemplateSource))

type htmlTable struct {
	Title  string
	Header []string
	Rows   [][]string
}

func (h HTMLFormatter) Format(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	var tables []htmlTable
	for _, t := range res.Report.Tables() {
		ht := htmlTable{Title: t.Title, Header: t.Header()}
		for r := range t.Rows {
			ht.Rows = append(ht.Rows, t.Cells(r, FormatValue))
		}
		tables = append(tables, ht)
	}
	data := struct {
		Title       string
		Summary     []domain.Metric
		Notes       []string
		Tables      []htmlTable
		Assumptions []string
	}{res.Kind.Title(), res.Report.Summary(), res.Notes(), tables, Assumptions(res.Kind)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
