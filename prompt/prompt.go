// Package prompt builds the prompts sent to the model from the user's inputs.
//
// Builders are pure: they interpolate values as they are, without validation
// nor escaping. Validating a Profile is the caller's job.
package prompt

import (
	"embed"
	"strings"
	"text/template"

	"github.com/etnz/advisor"
)

//go:embed templates/*.tmpl
var templates embed.FS

// DefaultReviewRisk is the risk profile portfolio reviews are aligned with.
//
// Reviews do not know the user's declared risk tolerance, PortfolioReviewFor lets callers pass it.
const DefaultReviewRisk = advisor.Moderate

var funcs = template.FuncMap{
	"symbol": advisor.Symbol,
	"join":   strings.Join,
	"lower":  func(r advisor.RiskLevel) string { return strings.ToLower(string(r)) },
}

var tmpl = template.Must(template.New("prompts").Funcs(funcs).ParseFS(templates, "templates/*.tmpl"))

// allocation is the data of the allocation template.
type allocation struct {
	advisor.Profile
	Currency string
}

// Allocation returns a prompt asking for a percentage allocation of the profile's monthly investment
// across equity funds, index funds, gold, bonds and deposits.
func Allocation(p advisor.Profile) advisor.Prompt {
	return execute("allocation.tmpl", allocation{Profile: p, Currency: p.InvestmentCurrency()})
}

// review is the data of the review template.
type review struct {
	Table   string
	Tickers []string
	Risk    advisor.RiskLevel
}

// PortfolioReview returns a prompt asking for a review of the whole portfolio, aligned with DefaultReviewRisk.
func PortfolioReview(pf *advisor.Portfolio) advisor.Prompt {
	return PortfolioReviewFor(pf, DefaultReviewRisk)
}

// PortfolioReviewFor is like PortfolioReview with an explicit risk profile.
func PortfolioReviewFor(pf *advisor.Portfolio, risk advisor.RiskLevel) advisor.Prompt {
	return execute("review.tmpl", review{Table: pf.String(), Tickers: pf.Tickers(), Risk: risk})
}

// execute runs a template that is known to be valid for data.
func execute(name string, data any) advisor.Prompt {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		// templates are embedded and their data is typed, this is a programming error.
		panic(err)
	}
	return advisor.Prompt(strings.TrimSpace(b.String()))
}
