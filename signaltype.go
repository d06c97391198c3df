package dbc

// SignalType is a named, reusable signal template declared by SGTYPE_,
// carrying the same numeric/byte-order/range/unit fields as Signal plus an
// optional default value and value-table reference (§3.1).
type SignalType struct {
	Name         string
	Length       uint16
	ByteOrder    ByteOrder
	IsUnsigned   bool
	Factor       float64
	Offset       float64
	Min          float64
	Max          float64
	Unit         string
	DefaultValue *float64
	ValueTable   string
}

// SignalTypeReference binds a (message, signal) pair to a named SignalType
// via SIG_TYPE_REF_.
type SignalTypeReference struct {
	MessageID  uint32
	SignalName string
	TypeName   string
}

// SignalTypeValue attaches an enum-style description to a raw value of a
// named SignalType via SGTYPE_VAL_.
type SignalTypeValue struct {
	TypeName    string
	Value       uint64
	Description string
}
