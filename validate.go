package dbc

import "fmt"

// validateDbc runs the cross-entity invariants of §4.4 against an
// already-assembled Dbc: per-message/per-signal validation (item 3-5,
// delegated to Message.validate), duplicate message IDs (item 1), and
// sender-in-nodes (item 2), plus SG_MUL_VAL_ range sanity and attribute
// definitions. Extended-multiplexing reference integrity (item 6) is not
// checked here; CheckExtendedMultiplexingReferences reports it on request.
func validateDbc(d *Dbc) error {
	seenIDs := make(map[uint32]string, len(d.Messages))
	checkSender := len(d.Nodes) > 0

	for _, m := range d.Messages {
		if err := m.validate(d.limits); err != nil {
			return err
		}
		if existingName, dup := seenIDs[m.ID]; dup {
			return &ValidationError{Msg: fmt.Sprintf("duplicate message ID: %d (messages %q and %q)", ExternalID(m.ID), existingName, m.Name)}
		}
		seenIDs[m.ID] = m.Name

		if checkSender && !d.Nodes.Contains(m.Sender) {
			return &ValidationError{Msg: fmt.Sprintf("message %q: sender %q is not in nodes", m.Name, m.Sender)}
		}
	}

	for _, e := range d.ExtendedMultiplexing {
		if err := e.validate(); err != nil {
			return err
		}
	}

	for _, def := range d.AttributeDefinitions {
		if err := def.validate(d.limits); err != nil {
			return err
		}
	}

	return nil
}

// CheckExtendedMultiplexingReferences performs the best-effort reference
// integrity check from §4.4 item 6: every SG_MUL_VAL_ entry's message,
// signal, and switch name should exist. It is not invoked automatically by
// New/parse since the spec marks it optional/non-fatal; callers that want
// stricter checking call it explicitly.
func CheckExtendedMultiplexingReferences(d *Dbc) []error {
	var problems []error
	for _, e := range d.ExtendedMultiplexing {
		m, ok := d.MessageByID(e.MessageID)
		if !ok {
			problems = append(problems, fmt.Errorf("extended multiplexing: message id %d not found", ExternalID(e.MessageID)))
			continue
		}
		if _, ok := m.SignalByName(e.SignalName); !ok {
			problems = append(problems, fmt.Errorf("extended multiplexing: signal %q not found in message %q", e.SignalName, m.Name))
		}
		if _, ok := m.SignalByName(e.MultiplexerSwitchName); !ok {
			problems = append(problems, fmt.Errorf("extended multiplexing: switch %q not found in message %q", e.MultiplexerSwitchName, m.Name))
		}
	}
	return problems
}
