package dbc

// FastLookup is a pre-indexed view over a Dbc built for hot-path decoding:
// a flat hashmap from CAN ID to message index, plus signal counts for
// sizing the caller's output buffer (§4.9). It holds no scratch buffer of
// its own.
type FastLookup struct {
	dbc *Dbc

	byID map[uint32]int

	// MaxSignals is the largest Signals count across every message, used to
	// size the shared scratch buffer callers pass to DecodeInto.
	MaxSignals int
	// TotalSignals is the sum of Signals counts across every message.
	TotalSignals int
}

// NewFastLookup indexes every message in d for O(1) lookup.
func NewFastLookup(d *Dbc) *FastLookup {
	f := &FastLookup{
		dbc:  d,
		byID: make(map[uint32]int, len(d.Messages)),
	}
	for i, m := range d.Messages {
		f.byID[m.ID] = i
		if len(m.Signals) > f.MaxSignals {
			f.MaxSignals = len(m.Signals)
		}
		f.TotalSignals += len(m.Signals)
	}
	return f
}

// Get looks up a standard (11-bit) message ID.
func (f *FastLookup) Get(id uint32) (Message, bool) {
	return f.lookup(id &^ ExtendedIDFlag)
}

// GetExtended looks up a 29-bit extended message ID.
func (f *FastLookup) GetExtended(id uint32) (Message, bool) {
	return f.lookup((id &^ ExtendedIDFlag) | ExtendedIDFlag)
}

// GetAny tries id first as standard, then as extended.
func (f *FastLookup) GetAny(id uint32) (Message, bool) {
	if m, ok := f.Get(id); ok {
		return m, true
	}
	return f.GetExtended(id)
}

func (f *FastLookup) lookup(internalID uint32) (Message, bool) {
	idx, ok := f.byID[internalID]
	if !ok {
		return Message{}, false
	}
	return f.dbc.Messages[idx], true
}

// DecodeInto decodes id's payload into out, a caller-owned buffer sized at
// least MaxSignals. It runs the same decode path as Decode, which allocates
// its result slice and switch map on every call, and then copies the
// values into out. out[i] corresponds to the i-th entry Decode would have returned;
// the signal count actually written is returned as n. Multiplexed signals
// that are inactive are simply skipped, so n can be less than the message's
// total signal count.
func (f *FastLookup) DecodeInto(id uint32, payload []byte, out []float64) (n int, ok bool) {
	m, found := f.GetAny(id)
	if !found {
		return 0, false
	}
	if len(out) < len(m.Signals) {
		return 0, false
	}
	decoded, err := f.dbc.decodeMessage(m, payload)
	if err != nil {
		return 0, false
	}
	for i, ds := range decoded {
		out[i] = ds.Value
	}
	return len(decoded), true
}
