package analytics

import "strings"

// PipSpec describes the pip conventions for an instrument class.
type PipSpec struct {
	// PipSize is the smallest standardized price increment.
	PipSize float64
	// DynamicValue marks pairs whose per-pip dollar value depends on the
	// live quote rate (JPY crosses). ValuePerLot is ignored when set.
	DynamicValue bool
	// ValuePerLot is the fixed dollar value of one pip for one standard lot.
	ValuePerLot float64
}

// PipInfo classifies a symbol into pip conventions. Matching runs against
// the uppercased, slash-stripped symbol: JPY crosses first, then gold, then
// the generic forex default. Unrecognized symbols fall through to the
// default silently; this is not a validated instrument registry.
func PipInfo(symbol string) PipSpec {
	s := strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))

	if strings.Contains(s, "JPY") {
		return PipSpec{PipSize: 0.01, DynamicValue: true}
	}
	if s == "XAUUSD" {
		return PipSpec{PipSize: 0.1, ValuePerLot: 10}
	}
	return PipSpec{PipSize: 0.0001, ValuePerLot: 10}
}

// PipValue returns the dollar value of one pip for the full position.
// Dynamic pairs derive it from the entry rate; a non-positive entry yields 0
// rather than a division blow-up.
func (s PipSpec) PipValue(entryPrice, lotSize float64) float64 {
	if s.DynamicValue {
		if entryPrice <= 0 {
			return 0
		}
		return s.PipSize / entryPrice * 100000 * lotSize
	}
	return s.ValuePerLot * lotSize
}
