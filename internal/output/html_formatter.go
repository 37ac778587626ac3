package output

import (
	"bytes"
	"html/template"

	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

const htmlTemplateSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Investment Simulation Report{{with .Client.Name}} - {{.}}{{end}}</title>
<style>
body { font-family: Arial, sans-serif; color: #333; margin: 2em; }
h1, h2 { color: #003366; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Investment Simulation Report</h1>
<p>{{with .Company}}Prepared by {{.}}. {{end}}{{with .Client.Name}}Client: {{.}}. {{end}}Generated {{.GeneratedAt.Format "2 January 2006"}}.</p>
{{if .Assumptions}}<h2>Key Assumptions</h2>
<ul>{{range .Assumptions}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{range .Entries}}<h2>{{.Name}}</h2>
{{if .Error}}<p class="error">Not computed: {{.Error}}</p>{{else}}
<p><strong>{{.Result.Mode.Label}}:</strong> {{value .Result}}{{with .MaturityDate}} (maturity {{.Format "2 January 2006"}}){{end}}</p>
<table>{{range params .Result}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}</table>
{{with .Equivalents}}<table>
<tr><td>Monthly</td><td>{{curr .Monthly}}</td></tr>
<tr><td>Quarterly</td><td>{{curr .Quarterly}}</td></tr>
<tr><td>Yearly</td><td>{{curr .Yearly}}</td></tr>
</table>{{end}}
{{if .Yearly}}<table>
<tr><th>Month</th><th>Value</th><th>Invested</th><th>Interest</th><th>Real value</th></tr>
{{range .Yearly}}<tr><td>{{.Month}}</td><td>{{curr .Value}}</td><td>{{curr .Invested}}</td><td>{{curr .Interest}}</td><td>{{curr .RealValue}}</td></tr>
{{end}}</table>{{end}}{{end}}
{{end}}
{{range .Sweeps}}{{$kind := .Kind}}<h2>Sensitivity: {{.Kind}}</h2>
<table>{{range .Points}}<tr><td>{{input $kind .Input}}</td><td>{{curr .FutureValue}}</td></tr>{{end}}</table>
{{end}}
</body>
</html>
`

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	cur := report.Currency
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"curr":   func(v float64) string { return FormatCurrency(v, cur) },
		"value":  func(r *domain.Result) string { return FormatResultValue(r, cur) },
		"params": func(r *domain.Result) []parameterRow { return parameterRows(r, cur) },
		"input":  func(k domain.SweepKind, v float64) string { return FormatSweepInput(k, v, cur) },
	}).Parse(htmlTemplateSource)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
