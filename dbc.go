package dbc

import "fmt"

// Dbc is the in-memory model of a parsed (or programmatically built) DBC
// network database (§3.1). All fields are populated at construction time
// and are immutable afterwards; see builder.DbcBuilder and the parser
// package for the two construction paths.
type Dbc struct {
	Version Version
	Nodes   Nodes
	// Messages is kept in insertion/declaration order.
	Messages []Message

	ValueDescriptions     *ValueDescriptions
	ExtendedMultiplexing  []ExtendedMultiplexing
	SignalTypes           []SignalType
	SignalTypeReferences  []SignalTypeReference
	SignalTypeValues      []SignalTypeValue
	AttributeDefinitions  []AttributeDefinition
	AttributeDefaults     []AttributeAssignment
	AttributeValues       []AttributeAssignment
	MessageComments       map[uint32]string
	NodeComments          map[string]string

	limits Limits

	// messageIndex maps internal ID (extended flag included) to the index
	// into Messages, giving O(1) decode lookup (§2, §4.5).
	messageIndex map[uint32]int
	// extMuxByMessage indexes ExtendedMultiplexing entries by message ID
	// for fast per-message lookup during decode (§3.1).
	extMuxByMessage map[uint32][]int
}

// New builds a Dbc from already-validated component parts and runs full
// cross-entity validation (§4.4). This is the single choke point both the
// parser and the builders funnel through, guaranteeing identical invariants
// regardless of construction path (§3.3).
func New(version Version, nodes Nodes, messages []Message, extra DbcExtras, limits Limits) (*Dbc, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if len(messages) > limits.MaxMessages {
		return nil, &ValidationError{Msg: fmt.Sprintf("messages: count %d exceeds limit %d", len(messages), limits.MaxMessages)}
	}
	if err := nodes.validate(limits); err != nil {
		return nil, err
	}

	d := &Dbc{
		Version:              version,
		Nodes:                nodes,
		Messages:              messages,
		ValueDescriptions:     extra.ValueDescriptions,
		ExtendedMultiplexing:  extra.ExtendedMultiplexing,
		SignalTypes:           extra.SignalTypes,
		SignalTypeReferences:  extra.SignalTypeReferences,
		SignalTypeValues:      extra.SignalTypeValues,
		AttributeDefinitions:  extra.AttributeDefinitions,
		AttributeDefaults:     extra.AttributeDefaults,
		AttributeValues:       extra.AttributeValues,
		MessageComments:       extra.MessageComments,
		NodeComments:          extra.NodeComments,
		limits:                limits,
	}
	if d.ValueDescriptions == nil {
		d.ValueDescriptions = NewValueDescriptions()
	}

	if err := validateDbc(d); err != nil {
		return nil, err
	}
	d.buildIndices()
	return d, nil
}

// DbcExtras bundles every Dbc field beyond version/nodes/messages, which
// are threaded through New's signature explicitly since they're universally
// required. Keeping the rest in a struct avoids an unwieldy positional
// parameter list as the model grows (SignalType*, attributes, ...).
type DbcExtras struct {
	ValueDescriptions    *ValueDescriptions
	ExtendedMultiplexing []ExtendedMultiplexing
	SignalTypes          []SignalType
	SignalTypeReferences []SignalTypeReference
	SignalTypeValues     []SignalTypeValue
	AttributeDefinitions []AttributeDefinition
	AttributeDefaults    []AttributeAssignment
	AttributeValues      []AttributeAssignment
	MessageComments      map[uint32]string
	NodeComments         map[string]string
}

func (d *Dbc) buildIndices() {
	d.messageIndex = make(map[uint32]int, len(d.Messages))
	for i, m := range d.Messages {
		d.messageIndex[m.ID] = i
	}
	d.extMuxByMessage = make(map[uint32][]int, len(d.ExtendedMultiplexing))
	for i, e := range d.ExtendedMultiplexing {
		d.extMuxByMessage[e.MessageID] = append(d.extMuxByMessage[e.MessageID], i)
	}
}

// Limits returns the capacity profile this Dbc was constructed with.
func (d *Dbc) Limits() Limits { return d.limits }

// MessageByID returns the message with the given internal ID (extended
// flag included), for O(1) lookup via the index built at construction.
func (d *Dbc) MessageByID(id uint32) (Message, bool) {
	idx, ok := d.messageIndex[id]
	if !ok {
		return Message{}, false
	}
	return d.Messages[idx], true
}

// MessageByStandardID looks up a standard (11-bit) message ID.
func (d *Dbc) MessageByStandardID(id uint32) (Message, bool) {
	return d.MessageByID(id &^ ExtendedIDFlag)
}

// MessageByExtendedID looks up a 29-bit extended message ID, applying the
// internal flag automatically.
func (d *Dbc) MessageByExtendedID(id uint32) (Message, bool) {
	return d.MessageByID((id &^ ExtendedIDFlag) | ExtendedIDFlag)
}

// MessageByAnyID tries the ID first as standard, then as extended.
func (d *Dbc) MessageByAnyID(id uint32) (Message, bool) {
	if m, ok := d.MessageByStandardID(id); ok {
		return m, true
	}
	return d.MessageByExtendedID(id)
}

func (d *Dbc) extMuxFor(messageID uint32) []ExtendedMultiplexing {
	idxs := d.extMuxByMessage[messageID]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]ExtendedMultiplexing, len(idxs))
	for i, idx := range idxs {
		out[i] = d.ExtendedMultiplexing[idx]
	}
	return out
}
