package builder

import dbc "github.com/aldas/go-dbc"

// MessageBuilder assembles a BO_ message and its SG_ signals.
type MessageBuilder struct {
	id      uint32
	name    string
	dlc     uint8
	sender  string
	comment string
	signals []*SignalBuilder
}

// NewMessage starts a message builder for a standard (11-bit) ID. Call
// Extended to mark it a 29-bit ID instead.
func NewMessage(id uint32, name string) *MessageBuilder {
	return &MessageBuilder{id: id, name: name}
}

// Extended marks the message ID as a 29-bit extended identifier.
func (b *MessageBuilder) Extended() *MessageBuilder {
	b.id |= dbc.ExtendedIDFlag
	return b
}

// DLC sets the payload length in bytes.
func (b *MessageBuilder) DLC(n uint8) *MessageBuilder {
	b.dlc = n
	return b
}

// Sender sets the transmitting node name.
func (b *MessageBuilder) Sender(name string) *MessageBuilder {
	b.sender = name
	return b
}

// Comment sets the CM_ BO_ comment text.
func (b *MessageBuilder) Comment(text string) *MessageBuilder {
	b.comment = text
	return b
}

// AddSignal appends a signal under construction.
func (b *MessageBuilder) AddSignal(s *SignalBuilder) *MessageBuilder {
	b.signals = append(b.signals, s)
	return b
}

func (b *MessageBuilder) build() (dbc.Message, error) {
	if b.name == "" {
		return dbc.Message{}, &ExpectedError{Field: "message name"}
	}
	signals := make([]dbc.Signal, 0, len(b.signals))
	for _, sb := range b.signals {
		s, err := sb.build()
		if err != nil {
			return dbc.Message{}, err
		}
		signals = append(signals, s)
	}
	return dbc.Message{
		ID:      b.id,
		Name:    b.name,
		DLC:     b.dlc,
		Sender:  b.sender,
		Signals: signals,
		Comment: b.comment,
	}, nil
}
