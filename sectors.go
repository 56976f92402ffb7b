package advisor

import (
	"errors"
	"slices"
)

// ErrNoSectorColumn is returned when the portfolio has no Sector column.
var ErrNoSectorColumn = errors.New("Add a 'Sector' column to your CSV to view sector allocation pie chart.")

// ErrNoSectors is returned when the Sector column has no value at all.
var ErrNoSectors = errors.New("The 'Sector' column is empty, fill it in to view sector allocation pie chart.")

// SectorShare is one slice of the sector allocation.
type SectorShare struct {
	Sector string  `json:"sector"`
	Count  int     `json:"count"`
	Share  Percent `json:"share"`
}

// SectorAllocation counts holdings per sector.
//
// Holdings with an empty sector are ignored, ErrNoSectors is returned if they all are.
// Sectors are sorted by decreasing count, ties keep their order of first appearance.
func (p *Portfolio) SectorAllocation() ([]SectorShare, error) {
	if !p.Has(ColumnSector) {
		return nil, ErrNoSectorColumn
	}
	var shares []SectorShare
	total := 0
	for _, h := range p.Holdings {
		sector := h.Sector()
		if sector == "" {
			continue
		}
		total++
		i := slices.IndexFunc(shares, func(s SectorShare) bool { return s.Sector == sector })
		if i < 0 {
			shares = append(shares, SectorShare{Sector: sector})
			i = len(shares) - 1
		}
		shares[i].Count++
	}
	if total == 0 {
		return nil, ErrNoSectors
	}
	for i := range shares {
		shares[i].Share = Percent(100 * float64(shares[i].Count) / float64(total))
	}
	slices.SortStableFunc(shares, func(a, b SectorShare) int { return b.Count - a.Count })
	return shares, nil
}
