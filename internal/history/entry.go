package history

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

// Entry is one persisted calculation. Entries are immutable once created.
type Entry struct {
	// ID is a monotonic ULID; its timestamp is the calculation time.
	ID string `json:"id"`

	// DistanceKm is the trip distance, always > 0.
	DistanceKm float64 `json:"distance_km"`

	// Mode is the transport mode identifier.
	Mode greenops.TransportMode `json:"mode"`

	// EmissionKg is the computed emission rounded to 2 decimals.
	EmissionKg float64 `json:"emission_kg"`

	// Date is the display label captured at calculation time.
	Date string `json:"date"`
}

// Time returns the timestamp encoded in the entry ID, or the zero time when
// the ID is not a valid ULID.
func (e Entry) Time() time.Time {
	id, err := ulid.ParseStrict(e.ID)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(id.Time())
}

// TreesToOffset returns the tree count for the entry's emission.
func (e Entry) TreesToOffset() int {
	return greenops.TreesToOffset(e.EmissionKg)
}

// Totals summarises a history log.
type Totals struct {
	Count              int     `json:"count"`
	TotalEmissionKg    float64 `json:"total_emission_kg"`
	TotalTreesToOffset int     `json:"total_trees_to_offset"`
}

// Aggregate sums the emissions of entries. Trees are derived from the
// rounded total, not summed per entry.
func Aggregate(entries []Entry) Totals {
	var total float64
	for _, e := range entries {
		total += e.EmissionKg
	}
	total = greenops.RoundKg(total)
	return Totals{
		Count:              len(entries),
		TotalEmissionKg:    total,
		TotalTreesToOffset: greenops.TreesToOffset(total),
	}
}
