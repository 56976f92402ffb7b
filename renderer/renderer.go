// Package renderer formats advisor results as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/advisor"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"cell":  cell,
	"money": func(v decimal.Decimal, currency string) string { return advisor.M(v, currency).String() },
}

// cell escapes s so that it fits in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// RenderPlan renders an allocation plan to a markdown string.
func RenderPlan(p *Plan) string {
	return renderTemplate("plan", "plan.md", nil, p)
}

// RenderReview renders a portfolio review to a markdown string.
func RenderReview(r *Review) string {
	partials := map[string]string{
		"review_holdings": "review_holdings.md",
		"review_sectors":  "review_sectors.md",
		"review_pnl":      "review_pnl.md",
	}
	return renderTemplate("review", "review.md", partials, r)
}

// RenderQuote renders a stock summary to a markdown string.
func RenderQuote(q *Quote) string {
	return renderTemplate("quote", "quote.md", nil, q)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
