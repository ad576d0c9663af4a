package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

const (
	comparisonCacheSize = 32
	comparisonBarWidth  = 12

	colModeWidth  = 16
	colKgWidth    = 12
	colShareWidth = comparisonBarWidth + 2
)

// comparisonCache memoizes comparison rows by distance.
type comparisonCache struct {
	rows *lru.Cache[float64, []table.Row]
}

func newComparisonCache() *comparisonCache {
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[float64, []table.Row](comparisonCacheSize)
	return &comparisonCache{rows: c}
}

// Rows returns the table rows for distanceKm, computing them on a miss.
func (c *comparisonCache) Rows(distanceKm float64) []table.Row {
	if rows, ok := c.rows.Get(distanceKm); ok {
		return rows
	}
	rows := comparisonRows(greenops.Compare(distanceKm))
	c.rows.Add(distanceKm, rows)
	return rows
}

// Len reports how many distances are cached.
func (c *comparisonCache) Len() int {
	return c.rows.Len()
}

func comparisonRows(cmp []greenops.Comparison) []table.Row {
	rows := make([]table.Row, 0, len(cmp))
	for _, r := range cmp {
		mode := r.Icon + " " + r.Label
		if r.Best {
			mode += " " + IconLeaf
		}
		rows = append(rows, table.Row{
			mode,
			greenops.FormatKg(r.EmissionKg),
			shareBar(r.Share),
		})
	}
	return rows
}

func shareBar(share float64) string {
	n := int(share*comparisonBarWidth + 0.5) //nolint:mnd // Round half up.
	return strings.Repeat(IconBar, max(0, min(n, comparisonBarWidth)))
}

// newComparisonTable builds a read-only table for rows.
func newComparisonTable(rows []table.Row) table.Model {
	columns := []table.Column{
		{Title: "Mode", Width: colModeWidth},
		{Title: "kg CO₂", Width: colKgWidth},
		{Title: "Share", Width: colShareWidth},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	return t
}
