package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
	"github.com/etnz/advisor/prompt"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// toHTML converts a model's markdown answer to HTML.
func toHTML(text string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return ""
	}
	return buf.String()
}

type planResponse struct {
	Prompt   advisor.Prompt `json:"prompt"`
	Response string         `json:"response"`
	HTML     string         `json:"html"`
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	var p advisor.Profile
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeError(w, advisor.Errorf(advisor.InvalidInput, "plan", "invalid profile: %w", err))
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, err)
		return
	}
	p.Risk, _ = advisor.ParseRiskLevel(string(p.Risk))
	pr := prompt.Allocation(p)
	reply := s.gen.Reply(r.Context(), pr)
	if reply.Err != nil {
		writeError(w, reply.Err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Prompt: pr, Response: reply.Text, HTML: toHTML(reply.Text)})
}

type pnlPoint struct {
	advisor.PnL
	Color string `json:"color"`
}

type reviewResponse struct {
	Risk       advisor.RiskLevel     `json:"risk_level"`
	Columns    []string              `json:"columns"`
	Rows       [][]string            `json:"rows"`
	Response   string                `json:"response"`
	HTML       string                `json:"html"`
	Sectors    []advisor.SectorShare `json:"sectors,omitempty"`
	SectorHint string                `json:"sector_hint,omitempty"`
	PnL        []pnlPoint            `json:"pnl,omitempty"`
	PnLHint    string                `json:"pnl_hint,omitempty"`
}

func (s *Server) review(w http.ResponseWriter, r *http.Request) {
	risk := s.reviewRisk
	if q := r.URL.Query().Get("risk"); q != "" {
		var err error
		if risk, err = advisor.ParseRiskLevel(q); err != nil {
			writeError(w, err)
			return
		}
	}

	body, err := upload(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer body.Close()
	pf, err := advisor.DecodePortfolio(body)
	if err != nil {
		writeError(w, err)
		return
	}

	reply := s.gen.Reply(r.Context(), prompt.PortfolioReviewFor(pf, risk))
	if reply.Err != nil {
		writeError(w, reply.Err)
		return
	}

	resp := reviewResponse{
		Risk:     risk,
		Columns:  pf.Columns,
		Rows:     make([][]string, 0, len(pf.Holdings)),
		Response: reply.Text,
		HTML:     toHTML(reply.Text),
	}
	for _, h := range pf.Holdings {
		resp.Rows = append(resp.Rows, h.Cells())
	}
	if resp.Sectors, err = pf.SectorAllocation(); err != nil {
		resp.SectorHint = err.Error()
	}
	pnl, err := pf.ProfitAndLoss()
	if err != nil {
		resp.PnLHint = err.Error()
	}
	for _, l := range pnl {
		resp.PnL = append(resp.PnL, pnlPoint{PnL: l, Color: l.Color()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// upload returns the CSV content of a review request: the multipart "file" field or the raw body.
func upload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mt, "multipart/") {
		return r.Body, nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, advisor.Errorf(advisor.InvalidInput, "review", "missing 'file' field: %w", err)
	}
	return f, nil
}

type closePoint struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

type quoteResponse struct {
	Ticker    string          `json:"ticker"`
	Summary   string          `json:"summary"`
	Last      advisor.Money   `json:"last"`
	Converted advisor.Money   `json:"converted"`
	Rate      decimal.Decimal `json:"rate"`
	Change    advisor.Percent `json:"change"`
	Closes    []closePoint    `json:"closes"`
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	sum, err := s.quotes.Summary(r.Context(), ticker)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := quoteResponse{
		Ticker:    sum.Ticker,
		Summary:   sum.String(),
		Last:      sum.Last,
		Converted: sum.Converted,
		Rate:      sum.Rate,
		Change:    sum.Change,
		Closes:    []closePoint{},
	}
	for day, v := range sum.Closes.Values() {
		resp.Closes = append(resp.Closes, closePoint{Date: day, Close: v})
	}
	writeJSON(w, http.StatusOK, resp)
}
