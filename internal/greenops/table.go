package greenops

import "strings"

// emissionTable is the fixed factor table in display order.
//
//nolint:gochecknoglobals // Immutable lookup table; only copies are handed out.
var emissionTable = []EmissionFactorEntry{
	{Mode: ModeCar, FactorKgPerKm: 0.12, Label: "Car", Icon: "🚗"},
	{Mode: ModeMotorcycle, FactorKgPerKm: 0.08, Label: "Motorcycle", Icon: "🏍️"},
	{Mode: ModeBus, FactorKgPerKm: 0.05, Label: "Bus", Icon: "🚌"},
	{Mode: ModeAirplane, FactorKgPerKm: 0.25, Label: "Airplane", Icon: "✈️"},
	{Mode: ModeTrain, FactorKgPerKm: 0.04, Label: "Train", Icon: "🚆"},
	{Mode: ModeBicycle, FactorKgPerKm: 0, Label: "Bicycle", Icon: "🚴"},
	{Mode: ModeWalking, FactorKgPerKm: 0, Label: "Walking", Icon: "🚶"},
}

// modeAliases maps accepted spellings to canonical modes. Includes the
// Portuguese mode names.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var modeAliases = map[string]TransportMode{
	"car":        ModeCar,
	"carro":      ModeCar,
	"motorcycle": ModeMotorcycle,
	"moto":       ModeMotorcycle,
	"bus":        ModeBus,
	"onibus":     ModeBus,
	"ônibus":     ModeBus,
	"airplane":   ModeAirplane,
	"plane":      ModeAirplane,
	"aviao":      ModeAirplane,
	"avião":      ModeAirplane,
	"train":      ModeTrain,
	"trem":       ModeTrain,
	"bicycle":    ModeBicycle,
	"bike":       ModeBicycle,
	"bicicleta":  ModeBicycle,
	"walking":    ModeWalking,
	"walk":       ModeWalking,
	"pe":         ModeWalking,
	"pé":         ModeWalking,
}

// Lookup returns the emission table entry for mode.
//
// An unrecognized mode yields an entry with a zero factor and empty display
// metadata rather than an error, so unknown modes silently report zero
// emission.
func Lookup(mode TransportMode) EmissionFactorEntry {
	for _, e := range emissionTable {
		if e.Mode == mode {
			return e
		}
	}
	return EmissionFactorEntry{Mode: mode}
}

// IsKnownMode reports whether mode has an entry in the emission table.
func IsKnownMode(mode TransportMode) bool {
	for _, e := range emissionTable {
		if e.Mode == mode {
			return true
		}
	}
	return false
}

// Modes returns every transport mode in table order.
func Modes() []TransportMode {
	modes := make([]TransportMode, len(emissionTable))
	for i, e := range emissionTable {
		modes[i] = e.Mode
	}
	return modes
}

// Entries returns a copy of the emission table in table order.
func Entries() []EmissionFactorEntry {
	entries := make([]EmissionFactorEntry, len(emissionTable))
	copy(entries, emissionTable)
	return entries
}

// ParseMode resolves user input to a TransportMode.
// Matching is case-insensitive and accepts the aliases in modeAliases.
// Returns ErrUnknownMode when nothing matches.
func ParseMode(s string) (TransportMode, error) {
	mode, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrUnknownMode
	}
	return mode, nil
}
