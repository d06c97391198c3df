package dbc

import "fmt"

// ValueRange is an inclusive [Min,Max] range of raw switch values, one
// operand of a SG_MUL_VAL_ statement.
type ValueRange struct {
	Min, Max uint64
}

// Covers reports whether raw falls within the range.
func (r ValueRange) Covers(raw uint64) bool { return raw >= r.Min && raw <= r.Max }

// ExtendedMultiplexing is one SG_MUL_VAL_ entry: the message and signal it
// targets, the switch signal it's conditioned on, and the set of raw
// switch-value ranges that activate it (§3.1, §4.5).
type ExtendedMultiplexing struct {
	MessageID             uint32
	SignalName            string
	MultiplexerSwitchName string
	Ranges                []ValueRange
}

// MaxRangesPerEntry is the §3.1 cap on ranges per SG_MUL_VAL_ entry.
const MaxRangesPerEntry = 64

func (e ExtendedMultiplexing) validate() error {
	if len(e.Ranges) == 0 {
		return &ValidationError{Msg: fmt.Sprintf("extended multiplexing %q: at least one range required", e.SignalName)}
	}
	if len(e.Ranges) > MaxRangesPerEntry {
		return &ValidationError{Msg: fmt.Sprintf("extended multiplexing %q: range count exceeds limit %d", e.SignalName, MaxRangesPerEntry)}
	}
	for _, r := range e.Ranges {
		if r.Min > r.Max {
			return &ValidationError{Msg: fmt.Sprintf("extended multiplexing %q: range min %d greater than max %d", e.SignalName, r.Min, r.Max)}
		}
	}
	return nil
}
