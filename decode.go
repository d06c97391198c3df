package dbc

// DecodedSignal is one (name, physical value, unit) triple produced by
// decoding a CAN frame payload against a Message (§6.3).
type DecodedSignal struct {
	Name    string
	Value   float64
	Unit    string
	HasUnit bool
}

// Decode looks up the message for id and decodes payload against it,
// resolving basic and extended multiplexing (§4.5). id is the internal
// identifier: a standard ID as is, a 29-bit ID with ExtendedIDFlag OR'd in.
// Callers holding the wire ID can use FastLookup, whose
// Get/GetExtended/GetAny apply the flag for them.
func (d *Dbc) Decode(id uint32, payload []byte) ([]DecodedSignal, error) {
	m, ok := d.MessageByID(id)
	if !ok {
		return nil, &DecodeError{Msg: "message ID not found", Err: ErrUnknownMessage}
	}
	return d.decodeMessage(m, payload)
}

func (d *Dbc) decodeMessage(m Message, payload []byte) ([]DecodedSignal, error) {
	if len(payload) < int(m.DLC) {
		return nil, &DecodeError{Msg: "payload shorter than message dlc", Err: ErrPayloadTooShort}
	}
	extMux := d.extMuxFor(m.ID)

	switchRaw := make(map[string]uint64, 2)
	var switchOrder []string

	out := make([]DecodedSignal, 0, len(m.Signals))

	// Pass 1: multiplexer switches, per §4.5 step 3.
	for _, s := range m.Signals {
		if !s.IsMultiplexerSwitch {
			continue
		}
		raw, err := ExtractBits(payload, s.StartBit, s.Length, s.ByteOrder)
		if err != nil {
			return nil, &DecodeError{Msg: err.Error()}
		}
		switchRaw[s.Name] = raw
		switchOrder = append(switchOrder, s.Name)
		out = append(out, decodedFrom(s, raw))
	}

	// Pass 2: data signals, per §4.5 step 4.
	for _, s := range m.Signals {
		if s.IsMultiplexerSwitch {
			continue
		}
		if !s.IsMultiplexed() {
			raw, err := ExtractBits(payload, s.StartBit, s.Length, s.ByteOrder)
			if err != nil {
				return nil, &DecodeError{Msg: err.Error()}
			}
			out = append(out, decodedFrom(s, raw))
			continue
		}

		active, err := isSignalActive(m, s, extMux, switchRaw, switchOrder)
		if err != nil {
			return nil, err
		}
		if !active {
			continue
		}
		raw, err := ExtractBits(payload, s.StartBit, s.Length, s.ByteOrder)
		if err != nil {
			return nil, &DecodeError{Msg: err.Error()}
		}
		out = append(out, decodedFrom(s, raw))
	}

	return out, nil
}

func decodedFrom(s Signal, raw uint64) DecodedSignal {
	return DecodedSignal{
		Name:    s.Name,
		Value:   s.Physical(raw),
		Unit:    s.Unit,
		HasUnit: s.Unit != "",
	}
}

// Physical reinterprets rawBits per the signal's value type (integer,
// float32, or float64) and applies factor/offset (§4.3 "Physical
// conversion").
func (s Signal) Physical(rawBits uint64) float64 {
	switch s.ValueType {
	case ValueTypeFloat32:
		return Float32FromBits(rawBits)*s.Factor + s.Offset
	case ValueTypeFloat64:
		return Float64FromBits(rawBits)*s.Factor + s.Offset
	default:
		if s.IsUnsigned {
			return float64(rawBits)*s.Factor + s.Offset
		}
		return float64(SignExtend(rawBits, s.Length))*s.Factor + s.Offset
	}
}

// isSignalActive resolves whether a multiplexed signal is active for the
// currently decoded switch values, per §4.5 step 4's extended-then-basic
// precedence rule.
func isSignalActive(m Message, s Signal, extMux []ExtendedMultiplexing, switchRaw map[string]uint64, switchOrder []string) (bool, error) {
	own := extendedEntriesFor(extMux, s.Name)
	if len(own) > 0 {
		if !extendedConditionsPass(own, switchRaw) {
			return false, nil
		}
		// Conflict resolution: a higher-index signal sharing this one's
		// exact bit position that also passes its own extended-mux test
		// wins instead (§4.5 step 4, "conflict resolution").
		for _, other := range m.Signals {
			if other.Name == s.Name || !other.IsMultiplexed() {
				continue
			}
			if other.StartBit != s.StartBit || other.Length != s.Length {
				continue
			}
			if *other.MultiplexerSwitchValue <= *s.MultiplexerSwitchValue {
				continue
			}
			otherExt := extendedEntriesFor(extMux, other.Name)
			if len(otherExt) > 0 && extendedConditionsPass(otherExt, switchRaw) {
				return false, nil
			}
		}
		return true, nil
	}

	// Basic multiplexing: the message's (first declared) multiplexer
	// switch must carry exactly this signal's mN value. Real-world DBC
	// files declare a single `M` switch per basic-multiplexed message; in a
	// message with several switches and no SG_MUL_VAL_ entries, only the
	// first declared switch is consulted.
	if len(switchOrder) == 0 {
		return false, nil
	}
	raw, ok := switchRaw[switchOrder[0]]
	if !ok {
		return false, nil
	}
	return raw == *s.MultiplexerSwitchValue, nil
}

func extendedEntriesFor(extMux []ExtendedMultiplexing, signalName string) []ExtendedMultiplexing {
	var matches []ExtendedMultiplexing
	for _, e := range extMux {
		if e.SignalName == signalName {
			matches = append(matches, e)
		}
	}
	return matches
}

// extendedConditionsPass implements the Open Question resolution: ranges
// from entries targeting the SAME switch are OR-combined, distinct
// switches are AND-combined (§9, §4.5).
func extendedConditionsPass(entries []ExtendedMultiplexing, switchRaw map[string]uint64) bool {
	bySwitch := make(map[string][]ValueRange, len(entries))
	for _, e := range entries {
		bySwitch[e.MultiplexerSwitchName] = append(bySwitch[e.MultiplexerSwitchName], e.Ranges...)
	}
	for switchName, ranges := range bySwitch {
		raw, ok := switchRaw[switchName]
		if !ok {
			return false
		}
		covered := false
		for _, r := range ranges {
			if r.Covers(raw) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
