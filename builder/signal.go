package builder

import dbc "github.com/aldas/go-dbc"

// SignalBuilder assembles a single SG_ signal.
type SignalBuilder struct {
	name                   string
	startBit               uint16
	length                 uint16
	byteOrder              dbc.ByteOrder
	unsigned               bool
	factor                 float64
	offset                 float64
	min, max               float64
	unit                   string
	receivers              []string
	comment                string
	isMultiplexerSwitch    bool
	multiplexerSwitchValue *uint64
	valueType              dbc.SignalValueType

	lengthSet bool
}

// NewSignal starts a signal builder. Factor defaults to 1 since a factor of
// 0 would collapse every physical value to -offset.
func NewSignal(name string) *SignalBuilder {
	return &SignalBuilder{name: name, factor: 1, length: 1}
}

// StartBit sets the start-bit position (§4.3 meaning depends on ByteOrder).
func (b *SignalBuilder) StartBit(bit uint16) *SignalBuilder {
	b.startBit = bit
	return b
}

// Length sets the bit width.
func (b *SignalBuilder) Length(n uint16) *SignalBuilder {
	b.length = n
	b.lengthSet = true
	return b
}

// ByteOrder sets the Intel/Motorola bit-numbering convention.
func (b *SignalBuilder) ByteOrder(o dbc.ByteOrder) *SignalBuilder {
	b.byteOrder = o
	return b
}

// Unsigned marks the signal unsigned.
func (b *SignalBuilder) Unsigned() *SignalBuilder {
	b.unsigned = true
	return b
}

// Factor sets the physical-conversion scale factor.
func (b *SignalBuilder) Factor(f float64) *SignalBuilder {
	b.factor = f
	return b
}

// Offset sets the physical-conversion offset.
func (b *SignalBuilder) Offset(o float64) *SignalBuilder {
	b.offset = o
	return b
}

// Range sets the [min,max] physical bounds.
func (b *SignalBuilder) Range(min, max float64) *SignalBuilder {
	b.min, b.max = min, max
	return b
}

// Unit sets the physical unit string.
func (b *SignalBuilder) Unit(u string) *SignalBuilder {
	b.unit = u
	return b
}

// Receivers sets the named receiver list; an empty call means NoReceivers.
func (b *SignalBuilder) Receivers(names ...string) *SignalBuilder {
	b.receivers = names
	return b
}

// Comment sets the CM_ SG_ comment text.
func (b *SignalBuilder) Comment(text string) *SignalBuilder {
	b.comment = text
	return b
}

// MultiplexerSwitch marks this signal as the `M` switch.
func (b *SignalBuilder) MultiplexerSwitch() *SignalBuilder {
	b.isMultiplexerSwitch = true
	return b
}

// MultiplexedBy marks this signal active only when the message's switch
// carries value v (`mN`).
func (b *SignalBuilder) MultiplexedBy(v uint64) *SignalBuilder {
	b.multiplexerSwitchValue = &v
	return b
}

// ValueType sets the SIG_VALTYPE_-driven reinterpretation (integer by
// default).
func (b *SignalBuilder) ValueType(t dbc.SignalValueType) *SignalBuilder {
	b.valueType = t
	return b
}

func (b *SignalBuilder) build() (dbc.Signal, error) {
	if b.name == "" {
		return dbc.Signal{}, &ExpectedError{Field: "signal name"}
	}
	if !b.lengthSet {
		return dbc.Signal{}, &ExpectedError{Field: "signal length"}
	}
	return dbc.Signal{
		Name:                   b.name,
		StartBit:               b.startBit,
		Length:                 b.length,
		ByteOrder:              b.byteOrder,
		IsUnsigned:             b.unsigned,
		Factor:                 b.factor,
		Offset:                 b.offset,
		Min:                    b.min,
		Max:                    b.max,
		Unit:                   b.unit,
		Receivers:              dbc.NewReceivers(b.receivers),
		Comment:                b.comment,
		IsMultiplexerSwitch:    b.isMultiplexerSwitch,
		MultiplexerSwitchValue: b.multiplexerSwitchValue,
		ValueType:              b.valueType,
	}, nil
}
