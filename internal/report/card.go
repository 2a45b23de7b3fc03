package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/abra-it/alert-triage/internal/core"
)

// Renderer renders triage report cards as HTML fragments suitable for
// embedding in a review dashboard or a summary email.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the built-in card template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("card").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(cardTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderCard writes one report card as HTML.
func (r *Renderer) RenderCard(w io.Writer, card *core.ReportCard) error {
	return r.tmpl.ExecuteTemplate(w, "card", card)
}

// RenderCards writes a set of report cards for one processed email.
func (r *Renderer) RenderCards(w io.Writer, cards []core.ReportCard) error {
	for i := range cards {
		if err := r.RenderCard(w, &cards[i]); err != nil {
			return err
		}
	}
	return nil
}

const cardTemplate = `<div class="report-card" style="border-left: 4px solid {{.Classification.LabelColor}}; padding: 12px; margin: 8px 0; font-family: sans-serif;">
  <div class="card-header">
    <span class="label" style="color: {{.Classification.LabelColor}}; font-weight: bold;">{{.Classification.Label}}</span>
    <span class="account">{{.Facts.AccountName}} ({{.Facts.AccountID}})</span>
  </div>
  <table class="facts">
    {{- if .Facts.Dates.Start}}
    <tr><td>Period</td><td>{{.Facts.Dates.Start}}{{if .Facts.Dates.End}} to {{.Facts.Dates.End}}{{end}}</td></tr>
    {{- end}}
    {{- if .Facts.Services}}
    <tr><td>Services</td><td>{{join .Facts.Services ", "}}</td></tr>
    {{- end}}
    {{- if .Facts.Regions}}
    <tr><td>Regions</td><td>{{join .Facts.Regions ", "}}</td></tr>
    {{- end}}
    {{- if .Facts.UsageTypes}}
    <tr><td>Usage types</td><td>{{join .Facts.UsageTypes ", "}}</td></tr>
    {{- end}}
    {{- if .Facts.Amounts.TotalImpact}}
    <tr><td>Total impact</td><td>{{.Facts.Amounts.TotalImpact}}</td></tr>
    {{- end}}
    {{- if .Facts.Amounts.Budgeted}}
    <tr><td>Budgeted</td><td>{{.Facts.Amounts.Budgeted}}</td></tr>
    {{- end}}
    {{- if .Facts.Amounts.Actual}}
    <tr><td>Actual</td><td>{{.Facts.Amounts.Actual}}</td></tr>
    {{- end}}
    {{- if .Facts.Amounts.Threshold}}
    <tr><td>Threshold</td><td>{{.Facts.Amounts.Threshold}}</td></tr>
    {{- end}}
    {{- if .Facts.Amounts.UtilizationPercent}}
    <tr><td>Utilization</td><td>{{.Facts.Amounts.UtilizationPercent}}%</td></tr>
    {{- end}}
  </table>
  {{- if .Draft.Products}}
  <table class="products">
    <tr><th>Free tier product</th><th>Usage</th><th>Limit</th><th>Used</th></tr>
    {{- range .Draft.Products}}
    <tr><td>{{.ProductName}}</td><td>{{.CurrentUsageValue}} {{.CurrentUsageUnit}}</td><td>{{.LimitValue}}</td><td>{{printf "%.1f" .UsagePercent}}%</td></tr>
    {{- end}}
  </table>
  {{- end}}
  {{- if .Draft.Summary}}
  <p class="summary">{{.Draft.Summary}}</p>
  {{- end}}
  {{- if .Draft.TeamMessage}}
  <pre class="team-message" style="white-space: pre-wrap;">{{.Draft.TeamMessage}}</pre>
  {{- end}}
  {{- if .Draft.Urgency}}
  <div class="footer">
    <span class="urgency">Urgency: {{.Draft.Urgency}}</span>
    {{- if .Draft.ConsoleLink}}
    <a href="{{.Draft.ConsoleLink}}">Open in console</a>
    {{- end}}
  </div>
  {{- end}}
</div>
`
