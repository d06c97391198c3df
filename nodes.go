package dbc

import "fmt"

// Nodes is the ordered list of network node (ECU) names declared by BU_.
// An empty Nodes disables the sender-must-be-a-node check on every Message.
type Nodes []string

// Contains reports whether name is present, case-sensitively.
func (n Nodes) Contains(name string) bool {
	for _, existing := range n {
		if existing == name {
			return true
		}
	}
	return false
}

// validate enforces §3.1's Nodes invariants: distinct names, name length
// bound, and node-count bound.
func (n Nodes) validate(limits Limits) error {
	if len(n) > limits.MaxNodes {
		return &ValidationError{Msg: fmt.Sprintf("nodes: count %d exceeds limit %d", len(n), limits.MaxNodes)}
	}
	seen := make(map[string]struct{}, len(n))
	for _, name := range n {
		if len(name) > limits.MaxNameSize {
			return &ValidationError{Msg: fmt.Sprintf("nodes: name %q exceeds max length %d", name, limits.MaxNameSize)}
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{Msg: fmt.Sprintf("nodes: duplicate node name %q", name)}
		}
		seen[name] = struct{}{}
	}
	return nil
}
