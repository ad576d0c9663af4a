package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

func TestComparisonCache_ReusesRows(t *testing.T) {
	c := newComparisonCache()

	first := c.Rows(100)
	second := c.Rows(100)

	assert.Len(t, first, len(greenops.Entries()))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestComparisonRows_MarksBest(t *testing.T) {
	rows := comparisonRows(greenops.Compare(100))

	assert.Contains(t, rows[0][0], IconLeaf)
	assert.Equal(t, strings.Repeat(IconBar, comparisonBarWidth), rows[len(rows)-1][2])
}

func TestShareBar(t *testing.T) {
	tests := []struct {
		share float64
		want  int
	}{
		{0, 0},
		{0.5, comparisonBarWidth / 2},
		{1, comparisonBarWidth},
		{2, comparisonBarWidth},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, strings.Count(shareBar(tt.share), IconBar))
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 trees", plural(0, "tree"))
	assert.Equal(t, "1 tree", plural(1, "tree"))
	assert.Equal(t, "1,200 trees", plural(1200, "tree"))
	assert.Equal(t, "2 trips", plural(2, "trip"))
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, ColorZero, SeverityColor(greenops.SeverityZero))
	assert.Equal(t, ColorCritical, SeverityColor(greenops.SeverityVeryHigh))
	assert.Equal(t, ColorMuted, SeverityColor(greenops.Severity(99)))
}
