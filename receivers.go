package dbc

import "fmt"

// VectorNoSender is the pseudo-receiver token DBC files use to mean
// "no specific receiver". Both it and the non-standard "*" token parse to
// a Receivers zero value (NoReceivers()).
const VectorNoSender = "Vector__XXX"

// Receivers is the algebraic `None | Nodes(list)` variant from §3.1: either
// no specific receiver was named, or an explicit list of node names was.
// The zero value is None, matching a signal line with no receivers column.
type Receivers struct {
	names []string
}

// NoReceivers returns the None variant.
func NoReceivers() Receivers {
	return Receivers{}
}

// NewReceivers returns the Nodes(list) variant. Passing an empty slice is
// equivalent to NoReceivers.
func NewReceivers(names []string) Receivers {
	if len(names) == 0 {
		return Receivers{}
	}
	cp := make([]string, len(names))
	copy(cp, names)
	return Receivers{names: cp}
}

// IsNone reports whether no specific receiver was named.
func (r Receivers) IsNone() bool { return len(r.names) == 0 }

// Names returns the named receivers, or nil for the None variant.
func (r Receivers) Names() []string { return r.names }

// validate enforces the §4.2.1 cap of MaxNodes-1 named receivers.
func (r Receivers) validate(limits Limits) error {
	if len(r.names) > limits.MaxNodes-1 {
		return &ValidationError{Msg: fmt.Sprintf("receivers: count %d exceeds limit %d", len(r.names), limits.MaxNodes-1)}
	}
	return nil
}
