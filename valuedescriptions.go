package dbc

// valueDescriptionKey identifies a VAL_ table: either scoped to a specific
// message (messageID set, hasMessageID true) or global (VAL_ -1, applies to
// any signal with a matching name that has no message-scoped override).
type valueDescriptionKey struct {
	messageID    uint32
	hasMessageID bool
	signalName   string
}

// ValueDescriptions holds the VAL_ enum-style text descriptions for raw
// signal values, keyed by (optional message ID, signal name) per §3.1.
type ValueDescriptions struct {
	tables map[valueDescriptionKey]map[uint64]string
}

// NewValueDescriptions returns an empty table set.
func NewValueDescriptions() *ValueDescriptions {
	return &ValueDescriptions{tables: make(map[valueDescriptionKey]map[uint64]string)}
}

// SetGlobal adds a global (message_id = -1) value table entry for signalName.
func (v *ValueDescriptions) SetGlobal(signalName string, raw uint64, text string) {
	v.set(valueDescriptionKey{signalName: signalName}, raw, text)
}

// SetForMessage adds a message-scoped value table entry.
func (v *ValueDescriptions) SetForMessage(messageID uint32, signalName string, raw uint64, text string) {
	v.set(valueDescriptionKey{messageID: messageID, hasMessageID: true, signalName: signalName}, raw, text)
}

func (v *ValueDescriptions) set(key valueDescriptionKey, raw uint64, text string) {
	if v.tables == nil {
		v.tables = make(map[valueDescriptionKey]map[uint64]string)
	}
	table, ok := v.tables[key]
	if !ok {
		table = make(map[uint64]string)
		v.tables[key] = table
	}
	table[raw] = text
}

// Lookup resolves the description for a raw value, trying the
// message-scoped table first and falling back to the global table, per
// §3.1's "per-message entry wins" tie-break (see DESIGN.md Open Question).
func (v *ValueDescriptions) Lookup(messageID uint32, signalName string, raw uint64) (string, bool) {
	if v == nil || v.tables == nil {
		return "", false
	}
	if table, ok := v.tables[valueDescriptionKey{messageID: messageID, hasMessageID: true, signalName: signalName}]; ok {
		if text, ok := table[raw]; ok {
			return text, true
		}
	}
	if table, ok := v.tables[valueDescriptionKey{signalName: signalName}]; ok {
		if text, ok := table[raw]; ok {
			return text, true
		}
	}
	return "", false
}

// ForSignal returns all entries applicable to (messageID, signalName),
// message-scoped entries overriding global entries at the same raw value.
func (v *ValueDescriptions) ForSignal(messageID uint32, signalName string) map[uint64]string {
	result := make(map[uint64]string)
	if v == nil || v.tables == nil {
		return result
	}
	if table, ok := v.tables[valueDescriptionKey{signalName: signalName}]; ok {
		for raw, text := range table {
			result[raw] = text
		}
	}
	if table, ok := v.tables[valueDescriptionKey{messageID: messageID, hasMessageID: true, signalName: signalName}]; ok {
		for raw, text := range table {
			result[raw] = text
		}
	}
	return result
}
