// Package reporthtml renders model results and data-quality summaries as an
// HTML report using Django-style templates.
package reporthtml

import (
	"io"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-dataset/dataset"
	"github.com/goliatone/go-dataset/regress"
)

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th { background: #f0f0f0; }
td:first-child, th:first-child { text-align: left; }
</style>
</head>
<body>
<h1>{{ title }}</h1>
<p>Generated {{ generated_at }}</p>
{% if results %}
<h2>Model results</h2>
<table>
<tr><th>Variable</th><th>Estimate</th><th>p-value</th><th>t-value</th><th>VIF</th><th>Adj R-sq</th></tr>
{% for row in results %}
<tr>
<td>{{ row.Variable }}</td>
<td>{{ row.Estimate|floatformat:4 }}</td>
<td>{{ row.PValue|floatformat:4 }}</td>
<td>{{ row.TValue|floatformat:4 }}</td>
<td>{{ row.VIF|floatformat:2 }}</td>
<td>{{ row.AdjRSquared|floatformat:4 }}</td>
</tr>
{% endfor %}
</table>
{% endif %}
{% if missing %}
<h2>Missing values</h2>
<table>
<tr><th>Column</th><th>Missing</th><th>Percent</th></tr>
{% for stat in missing %}
<tr>
<td>{{ stat.Column }}</td>
<td>{{ stat.Missing }}</td>
<td>{{ stat.Percent|floatformat:2 }}</td>
</tr>
{% endfor %}
</table>
{% endif %}
</body>
</html>
`

// ReportData is the context passed to report templates.
type ReportData struct {
	Title       string
	GeneratedAt time.Time
	Results     []regress.ResultRow
	Missing     []dataset.MissingStat
}

// Renderer renders a ReportData document as HTML. Template overrides the
// built-in layout with Django-style template source.
type Renderer struct {
	Template string
}

// Render executes the template and writes the document to w.
func (r Renderer) Render(w io.Writer, data ReportData) error {
	if w == nil {
		return dataset.NewError(dataset.KindValidation, "report renderer requires a writer", nil)
	}

	source := r.Template
	if source == "" {
		source = defaultTemplate
	}
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return dataset.NewError(dataset.KindValidation, "parse report template failed", err)
	}

	title := data.Title
	if title == "" {
		title = "Model report"
	}
	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	ctx := pongo2.Context{
		"title":        title,
		"generated_at": generated.Format(time.RFC3339),
		"results":      data.Results,
		"missing":      data.Missing,
	}
	if err := tpl.ExecuteWriter(ctx, w); err != nil {
		return dataset.NewError(dataset.KindInternal, "render report failed", err)
	}
	return nil
}
