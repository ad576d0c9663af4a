// Package sorting parses --sort expressions and orders history entries for
// CLI listings.
package sorting

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/EHLuC/ecotrip/internal/history"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort fields accepted by EntrySorter.
const (
	FieldDate     = "date"
	FieldDistance = "distance"
	FieldEmission = "emission"
	FieldMode     = "mode"
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

var (
	ErrEmptySortField   = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField = errors.New("invalid sort field")
)

// ParseSort parses "field" or "field:order". A bare field sorts descending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(expr string) (field, order string, err error) {
	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order = OrderDesc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != OrderAsc && order != OrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// EntrySorter orders history entries by a named field.
type EntrySorter struct {
	validFields []string
}

// NewEntrySorter creates an EntrySorter.
func NewEntrySorter() *EntrySorter {
	return &EntrySorter{
		validFields: []string{FieldDate, FieldDistance, FieldEmission, FieldMode},
	}
}

// IsValidField reports whether field can be sorted on.
func (s *EntrySorter) IsValidField(field string) bool {
	return slices.Contains(s.validFields, field)
}

// ValidFields returns the sortable field names.
func (s *EntrySorter) ValidFields() []string {
	return slices.Clone(s.validFields)
}

// Sort returns a sorted copy of entries. Ties keep their log order.
func (s *EntrySorter) Sort(entries []history.Entry, field, order string) ([]history.Entry, error) {
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.validFields, ", "))
	}

	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == OrderDesc {
			i, j = j, i
		}

		switch field {
		case FieldDistance:
			return sorted[i].DistanceKm < sorted[j].DistanceKm
		case FieldEmission:
			return sorted[i].EmissionKg < sorted[j].EmissionKg
		case FieldMode:
			return sorted[i].Mode < sorted[j].Mode
		default:
			// ULIDs sort by creation time.
			return sorted[i].ID < sorted[j].ID
		}
	})

	return sorted, nil
}
