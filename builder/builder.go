// Package builder provides a chainable, programmatic alternative to the
// parser package for assembling a dbc.Dbc: one builder type per entity,
// each validated the same way the parser's output is (§3.3, §4.8).
package builder

import (
	"fmt"

	dbc "github.com/aldas/go-dbc"
)

// ExpectedError reports a required field that was never set before Build.
type ExpectedError struct {
	Field string
}

func (e *ExpectedError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// DbcBuilder assembles a dbc.Dbc from its component builders.
type DbcBuilder struct {
	version  string
	nodes    []string
	messages []*MessageBuilder
	limits   dbc.Limits

	valueDescriptions    *dbc.ValueDescriptions
	extendedMultiplexing []dbc.ExtendedMultiplexing
	signalTypes          []dbc.SignalType
	signalTypeReferences []dbc.SignalTypeReference
	signalTypeValues     []dbc.SignalTypeValue
	attributeDefinitions []dbc.AttributeDefinition
	attributeDefaults    []dbc.AttributeAssignment
	attributeValues      []dbc.AttributeAssignment
	messageComments      map[uint32]string
	nodeComments         map[string]string
}

// NewDbcBuilder starts an empty builder using the allocating-profile
// defaults. Call Limits to switch to a bounded profile.
func NewDbcBuilder() *DbcBuilder {
	return &DbcBuilder{limits: dbc.DefaultLimits()}
}

// Limits overrides the capacity profile used at Build time.
func (b *DbcBuilder) Limits(l dbc.Limits) *DbcBuilder {
	b.limits = l
	return b
}

// Version sets the VERSION text.
func (b *DbcBuilder) Version(v string) *DbcBuilder {
	b.version = v
	return b
}

// Nodes sets the BU_ node list, replacing any previous value.
func (b *DbcBuilder) Nodes(names ...string) *DbcBuilder {
	b.nodes = append([]string(nil), names...)
	return b
}

// AddMessage appends a message under construction.
func (b *DbcBuilder) AddMessage(m *MessageBuilder) *DbcBuilder {
	b.messages = append(b.messages, m)
	return b
}

// AddValueDescription attaches a VAL_ entry. messageID == 0 with global ==
// true targets the global (-1) table.
func (b *DbcBuilder) AddValueDescription(global bool, messageID uint32, signalName string, raw uint64, text string) *DbcBuilder {
	if b.valueDescriptions == nil {
		b.valueDescriptions = dbc.NewValueDescriptions()
	}
	if global {
		b.valueDescriptions.SetGlobal(signalName, raw, text)
	} else {
		b.valueDescriptions.SetForMessage(messageID, signalName, raw, text)
	}
	return b
}

// AddExtendedMultiplexing appends a SG_MUL_VAL_ entry.
func (b *DbcBuilder) AddExtendedMultiplexing(e dbc.ExtendedMultiplexing) *DbcBuilder {
	b.extendedMultiplexing = append(b.extendedMultiplexing, e)
	return b
}

// AddAttributeDefinition appends a BA_DEF_ declaration.
func (b *DbcBuilder) AddAttributeDefinition(d dbc.AttributeDefinition) *DbcBuilder {
	b.attributeDefinitions = append(b.attributeDefinitions, d)
	return b
}

// AddAttributeDefault appends a BA_DEF_DEF_ assignment.
func (b *DbcBuilder) AddAttributeDefault(a dbc.AttributeAssignment) *DbcBuilder {
	b.attributeDefaults = append(b.attributeDefaults, a)
	return b
}

// AddAttributeValue appends a BA_ assignment.
func (b *DbcBuilder) AddAttributeValue(a dbc.AttributeAssignment) *DbcBuilder {
	b.attributeValues = append(b.attributeValues, a)
	return b
}

// SetMessageComment attaches a CM_ BO_ comment.
func (b *DbcBuilder) SetMessageComment(messageID uint32, text string) *DbcBuilder {
	if b.messageComments == nil {
		b.messageComments = make(map[uint32]string)
	}
	b.messageComments[messageID] = text
	return b
}

// SetNodeComment attaches a CM_ BU_ comment.
func (b *DbcBuilder) SetNodeComment(nodeName, text string) *DbcBuilder {
	if b.nodeComments == nil {
		b.nodeComments = make(map[string]string)
	}
	b.nodeComments[nodeName] = text
	return b
}

// AddSignalType appends an SGTYPE_ declaration.
func (b *DbcBuilder) AddSignalType(t dbc.SignalType) *DbcBuilder {
	b.signalTypes = append(b.signalTypes, t)
	return b
}

// AddSignalTypeReference appends a SIG_TYPE_REF_ binding.
func (b *DbcBuilder) AddSignalTypeReference(r dbc.SignalTypeReference) *DbcBuilder {
	b.signalTypeReferences = append(b.signalTypeReferences, r)
	return b
}

// AddSignalTypeValue appends an SGTYPE_VAL_ entry.
func (b *DbcBuilder) AddSignalTypeValue(v dbc.SignalTypeValue) *DbcBuilder {
	b.signalTypeValues = append(b.signalTypeValues, v)
	return b
}

// Build assembles and validates the Dbc, running it through dbc.New so
// construction invariants are identical to the parser's (§3.3).
func (b *DbcBuilder) Build() (*dbc.Dbc, error) {
	messages := make([]dbc.Message, 0, len(b.messages))
	for _, mb := range b.messages {
		m, err := mb.build()
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	extras := dbc.DbcExtras{
		ValueDescriptions:    b.valueDescriptions,
		ExtendedMultiplexing: b.extendedMultiplexing,
		SignalTypes:          b.signalTypes,
		SignalTypeReferences: b.signalTypeReferences,
		SignalTypeValues:     b.signalTypeValues,
		AttributeDefinitions: b.attributeDefinitions,
		AttributeDefaults:    b.attributeDefaults,
		AttributeValues:      b.attributeValues,
		MessageComments:      b.messageComments,
		NodeComments:         b.nodeComments,
	}

	return dbc.New(dbc.Version(b.version), dbc.Nodes(b.nodes), messages, extras, b.limits)
}

// FromDbc seeds a builder from an already-built Dbc, so callers can take an
// existing network, tweak it with further builder calls, and Build again
// (§4.8 round-trip). The returned builder inherits d's storage profile.
func FromDbc(d *dbc.Dbc) *DbcBuilder {
	b := NewDbcBuilder().
		Limits(d.Limits()).
		Version(string(d.Version)).
		Nodes([]string(d.Nodes)...)

	for _, m := range d.Messages {
		mb := NewMessage(m.ID, m.Name).DLC(m.DLC).Sender(m.Sender).Comment(m.Comment)
		for _, s := range m.Signals {
			sb := NewSignal(s.Name).
				StartBit(s.StartBit).
				Length(s.Length).
				ByteOrder(s.ByteOrder).
				Factor(s.Factor).
				Offset(s.Offset).
				Range(s.Min, s.Max).
				Unit(s.Unit).
				Receivers(s.Receivers.Names()...).
				Comment(s.Comment).
				ValueType(s.ValueType)
			if s.IsUnsigned {
				sb.Unsigned()
			}
			if s.IsMultiplexerSwitch {
				sb.MultiplexerSwitch()
			}
			if s.IsMultiplexed() {
				sb.MultiplexedBy(*s.MultiplexerSwitchValue)
			}
			mb.AddSignal(sb)
		}
		b.AddMessage(mb)
	}

	b.valueDescriptions = d.ValueDescriptions
	b.extendedMultiplexing = append([]dbc.ExtendedMultiplexing(nil), d.ExtendedMultiplexing...)
	b.signalTypes = append([]dbc.SignalType(nil), d.SignalTypes...)
	b.signalTypeReferences = append([]dbc.SignalTypeReference(nil), d.SignalTypeReferences...)
	b.signalTypeValues = append([]dbc.SignalTypeValue(nil), d.SignalTypeValues...)
	b.attributeDefinitions = append([]dbc.AttributeDefinition(nil), d.AttributeDefinitions...)
	b.attributeDefaults = append([]dbc.AttributeAssignment(nil), d.AttributeDefaults...)
	b.attributeValues = append([]dbc.AttributeAssignment(nil), d.AttributeValues...)
	for k, v := range d.MessageComments {
		b.SetMessageComment(k, v)
	}
	for k, v := range d.NodeComments {
		b.SetNodeComment(k, v)
	}

	return b
}
