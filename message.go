package dbc

import "fmt"

// ExtendedIDFlag marks a Message.ID as carrying a 29-bit extended CAN
// identifier. The flag lives in the otherwise-unused high bit of the
// internal uint32 so that extended and standard IDs can share a single
// hashmap key space without colliding (§9 "ID encoding").
const ExtendedIDFlag uint32 = 0x8000_0000

// MaxStandardID is the highest valid 11-bit standard CAN identifier.
const MaxStandardID uint32 = 0x7FF

// MaxExtendedID is the highest valid 29-bit extended CAN identifier
// (unflagged).
const MaxExtendedID uint32 = 0x1FFF_FFFF

// PseudoMessageID is the reserved ID ("VECTOR__INDEPENDENT_SIG_MSG") used
// as a container for signals not bound to any transmitted frame. It is
// exempt from DLC-fit and overlap validation.
const PseudoMessageID uint32 = 0xC000_0000

// IsExtendedID reports whether id carries the extended-ID flag.
func IsExtendedID(id uint32) bool { return id&ExtendedIDFlag != 0 }

// ExternalID masks off the internal extended-ID flag, returning the ID as
// it appears on the wire. In DBC text an extended ID keeps the flag bit set,
// and the parser stores that text value as the internal ID unchanged.
func ExternalID(id uint32) uint32 { return id &^ ExtendedIDFlag }

// Message is a CAN frame definition: its identifier, sender, length, and
// the signals packed into its payload (§3.1).
type Message struct {
	// ID is the internal identifier: ExtendedIDFlag OR'd in for 29-bit
	// IDs. Use ExternalID to recover the wire-visible value.
	ID      uint32
	Name    string
	DLC     uint8
	Sender  string
	Signals []Signal
	Comment string
}

// IsPseudo reports whether this is the VECTOR__INDEPENDENT_SIG_MSG
// container message, exempt from DLC-fit and overlap checks.
func (m Message) IsPseudo() bool { return m.ID == PseudoMessageID }

// SignalByName returns the signal with the given name, if present.
func (m Message) SignalByName(name string) (Signal, bool) {
	for _, s := range m.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return Signal{}, false
}

// validateMessageID enforces the §3.1 ID ranges: standard ≤0x7FF, extended-with-flag
// in [0x8000_0000, 0x9FFF_FFFF], or the reserved pseudo-ID.
func validateMessageID(id uint32) error {
	if id == PseudoMessageID {
		return nil
	}
	if IsExtendedID(id) {
		external := ExternalID(id)
		if external > MaxExtendedID {
			return &ValidationError{Msg: fmt.Sprintf("message id: extended id 0x%X exceeds 29-bit range", external)}
		}
		return nil
	}
	if id > MaxStandardID {
		return &ValidationError{Msg: fmt.Sprintf("message id: standard id 0x%X exceeds 11-bit range", id)}
	}
	return nil
}

// validate enforces §3.1's Message invariants plus the cross-signal checks
// of §4.4 items 3-5 that are scoped to a single message (DLC fit, overlap).
// Sender-in-nodes (item 2) and duplicate IDs (item 1) are cross-message and
// live in validate.go.
func (m Message) validate(limits Limits) error {
	if err := validateMessageID(m.ID); err != nil {
		return err
	}
	if m.Name == "" {
		return &ValidationError{Msg: "message: name must not be empty"}
	}
	if len(m.Name) > limits.MaxNameSize {
		return &ValidationError{Msg: fmt.Sprintf("message %q: name exceeds max length %d", m.Name, limits.MaxNameSize)}
	}
	if m.DLC > 64 {
		return &ValidationError{Msg: fmt.Sprintf("message %q: dlc %d exceeds CAN-FD max 64", m.Name, m.DLC)}
	}
	if len(m.Signals) > limits.MaxSignalsPerMessage {
		return &ValidationError{Msg: fmt.Sprintf("message %q: signal count %d exceeds limit %d", m.Name, len(m.Signals), limits.MaxSignalsPerMessage)}
	}

	for _, s := range m.Signals {
		if err := s.validate(limits); err != nil {
			return err
		}
	}
	if name, dup := duplicateSignalNames(m.Signals); dup {
		return &ValidationError{Msg: fmt.Sprintf("message %q: duplicate signal name %q", m.Name, name)}
	}

	if m.IsPseudo() {
		return nil
	}

	dlcBits := uint16(m.DLC) * 8
	for _, s := range m.Signals {
		lsb, msb := s.BitRange()
		if max(lsb, msb) >= dlcBits {
			return &ValidationError{Msg: fmt.Sprintf("message %q: signal %q bit range exceeds dlc*8=%d bits", m.Name, s.Name, dlcBits)}
		}
	}

	return checkSignalOverlap(m.Name, m.Signals)
}

// duplicateSignalNames reports the first duplicate signal name found, if any.
func duplicateSignalNames(signals []Signal) (string, bool) {
	seen := make(map[string]struct{}, len(signals))
	for _, s := range signals {
		if _, ok := seen[s.Name]; ok {
			return s.Name, true
		}
		seen[s.Name] = struct{}{}
	}
	return "", false
}

// checkSignalOverlap implements §4.4 item 5: signals that are neither
// multiplexer switches nor gated by a multiplexer switch value must not
// share bit positions.
func checkSignalOverlap(messageName string, signals []Signal) error {
	type span struct {
		name     string
		lsb, msb uint16
	}
	spans := make([]span, 0, len(signals))
	for _, s := range signals {
		if s.IsMultiplexerSwitch || s.IsMultiplexed() {
			continue
		}
		lsb, msb := s.BitRange()
		spans = append(spans, span{s.Name, lsb, msb})
	}
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.lsb <= b.msb && b.lsb <= a.msb {
				return &ValidationError{Msg: fmt.Sprintf("message %q: signal overlap between %q and %q", messageName, a.name, b.name)}
			}
		}
	}
	return nil
}
