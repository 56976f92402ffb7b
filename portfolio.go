package advisor

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

// Well known portfolio columns.
const (
	ColumnStock        = "Stock"
	ColumnSector       = "Sector"
	ColumnBuyPrice     = "Buy Price"
	ColumnCurrentPrice = "Current Price"
	ColumnQuantity     = "Quantity"
)

// Portfolio is an uploaded table of holdings, one row per holding, in file order.
type Portfolio struct {
	Columns  []string
	Holdings []Holding
}

// Holding is a single row of a Portfolio.
type Holding struct {
	columns []string // shared with the Portfolio
	cells   []string
}

// Cell returns the raw content of the given column, and false if there is no such column.
func (h Holding) Cell(column string) (string, bool) {
	i := slices.Index(h.columns, column)
	if i < 0 {
		return "", false
	}
	return h.cells[i], true
}

// Cells returns a copy of the row's raw cells, in column order.
func (h Holding) Cells() []string { return slices.Clone(h.cells) }

// Stock returns the holding's ticker.
func (h Holding) Stock() string {
	s, _ := h.Cell(ColumnStock)
	return s
}

// Sector returns the holding's sector, empty if unknown.
func (h Holding) Sector() string {
	s, _ := h.Cell(ColumnSector)
	return s
}

// NewPortfolio builds a Portfolio from a header and rows of cells.
//
// The header must contain a Stock column and every row must have as many cells as the header.
func NewPortfolio(columns []string, rows ...[]string) (*Portfolio, error) {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}
	if !slices.Contains(cols, ColumnStock) {
		return nil, Errorf(InvalidInput, "portfolio", "missing %q column in %q", ColumnStock, cols)
	}
	p := &Portfolio{Columns: cols, Holdings: make([]Holding, 0, len(rows))}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, Errorf(InvalidInput, "portfolio", "row %d has %d cells, want %d", i+1, len(row), len(cols))
		}
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = strings.TrimSpace(c)
		}
		p.Holdings = append(p.Holdings, Holding{columns: cols, cells: cells})
	}
	return p, nil
}

// bom is the UTF-8 byte order mark spreadsheets put at the start of CSV exports.
const bom = "\ufeff"

// DecodePortfolio reads a CSV portfolio: a header line followed by one line per holding.
// A leading byte order mark is skipped.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		br.Discard(len(bom))
	}
	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, Errorf(InvalidInput, "portfolio", "empty CSV file")
	}
	if err != nil {
		return nil, Errorf(InvalidInput, "portfolio", "reading CSV header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, Errorf(InvalidInput, "portfolio", "reading CSV: %w", err)
	}
	return NewPortfolio(header, rows...)
}

// Has reports whether all the columns are present in the portfolio.
func (p *Portfolio) Has(columns ...string) bool {
	for _, c := range columns {
		if !slices.Contains(p.Columns, c) {
			return false
		}
	}
	return true
}

// Tickers returns the Stock column, in order.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		tickers = append(tickers, h.Stock())
	}
	return tickers
}

// String renders the portfolio as a plain text table, with right aligned columns and no row index.
func (p *Portfolio) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeRow := func(cells []string) {
		for _, c := range cells {
			fmt.Fprint(w, c, "\t")
		}
		fmt.Fprintln(w)
	}
	writeRow(p.Columns)
	for _, h := range p.Holdings {
		writeRow(h.cells)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
