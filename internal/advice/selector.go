// Package advice picks the advisory message shown after a footprint
// calculation.
//
// Rules are evaluated in a fixed order and the first match wins; when no
// rule matches, a tip is drawn uniformly at random from a fixed pool. The
// random source is injected so callers can make the fallback deterministic.
package advice

import (
	"math/rand/v2"

	"golang.org/x/text/language"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

// Rule identifies which advice rule produced a message.
type Rule int

const (
	// RuleShortFlight matches flights shorter than ShortFlightLimitKm.
	RuleShortFlight Rule = iota
	// RuleShortCarTrip matches car trips shorter than ShortCarTripLimitKm.
	RuleShortCarTrip
	// RuleHighEmission matches emissions above HighEmissionLimitKg.
	RuleHighEmission
	// RuleZeroEmission matches trips that emit nothing.
	RuleZeroEmission
	// RuleGenericTip is the random fallback.
	RuleGenericTip
)

// String returns the rule identifier.
func (r Rule) String() string {
	switch r {
	case RuleShortFlight:
		return "short-flight"
	case RuleShortCarTrip:
		return "short-car-trip"
	case RuleHighEmission:
		return "high-emission"
	case RuleZeroEmission:
		return "zero-emission"
	case RuleGenericTip:
		return "generic-tip"
	default:
		return "unknown"
	}
}

// Rule thresholds.
const (
	ShortFlightLimitKm  = 500.0
	ShortCarTripLimitKm = 5.0
	HighEmissionLimitKg = 100.0
)

// Source supplies random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) } //nolint:gosec // Tip variety, not security.

// Option configures a Selector.
type Option func(*Selector)

// WithSource sets the random source for the generic-tip fallback.
func WithSource(src Source) Option {
	return func(s *Selector) {
		if src != nil {
			s.src = src
		}
	}
}

// WithLanguage selects the language messages are printed in. Unsupported
// languages fall back to English.
func WithLanguage(tag language.Tag) Option {
	return func(s *Selector) {
		s.tag = tag
	}
}

// Selector maps a trip to an advisory message.
type Selector struct {
	src Source
	tag language.Tag
	// pool holds the generic tips in the selector's language.
	pool     []string
	specific map[Rule]string
}

// NewSelector creates a Selector. Without options it prints English and
// draws tips from the global math/rand/v2 generator.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		src: globalSource{},
		tag: language.English,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tag = MatchLanguage(s.tag)

	p := newPrinter(s.tag)
	s.pool = make([]string, len(genericTipKeys))
	for i, key := range genericTipKeys {
		s.pool[i] = p.Sprintf(key)
	}
	s.specific = map[Rule]string{
		RuleShortFlight:  p.Sprintf(keyShortFlight),
		RuleShortCarTrip: p.Sprintf(keyShortCarTrip),
		RuleHighEmission: p.Sprintf(keyHighEmission),
		RuleZeroEmission: p.Sprintf(keyZeroEmission),
	}

	return s
}

// Rule returns the first rule that matches the trip:
//
//  1. airplane and distance < 500 km
//  2. car and distance < 5 km
//  3. emission > 100 kg
//  4. emission == 0
//  5. generic tip
//
// The rules overlap (a 300 km flight is also a high emitter at other
// factors), so the order is significant.
func (s *Selector) Rule(mode greenops.TransportMode, distanceKm, emissionKg float64) Rule {
	switch {
	case mode == greenops.ModeAirplane && distanceKm < ShortFlightLimitKm:
		return RuleShortFlight
	case mode == greenops.ModeCar && distanceKm < ShortCarTripLimitKm:
		return RuleShortCarTrip
	case emissionKg > HighEmissionLimitKg:
		return RuleHighEmission
	case emissionKg == 0:
		return RuleZeroEmission
	default:
		return RuleGenericTip
	}
}

// Select returns the advisory message for the trip. The generic-tip branch
// is random: repeated calls with the same input may return different tips.
func (s *Selector) Select(mode greenops.TransportMode, distanceKm, emissionKg float64) string {
	rule := s.Rule(mode, distanceKm, emissionKg)
	if rule != RuleGenericTip {
		return s.specific[rule]
	}
	return s.pool[s.src.IntN(len(s.pool))]
}

// Message returns the fixed message for a specific rule, or "" for
// RuleGenericTip.
func (s *Selector) Message(rule Rule) string {
	return s.specific[rule]
}

// Pool returns a copy of the generic tips.
func (s *Selector) Pool() []string {
	pool := make([]string, len(s.pool))
	copy(pool, s.pool)
	return pool
}

// Language returns the supported language messages are printed in.
func (s *Selector) Language() language.Tag {
	return s.tag
}
