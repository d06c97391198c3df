package dbc

import "fmt"

// ObjectType is the kind of entity an AttributeDefinition applies to.
type ObjectType uint8

const (
	ObjectNetwork ObjectType = iota
	ObjectNode
	ObjectMessage
	ObjectSignal
)

// AttributeValueKind tags which branch of AttributeValueType is active.
type AttributeValueKind uint8

const (
	ValueKindInt AttributeValueKind = iota
	ValueKindHex
	ValueKindFloat
	ValueKindString
	ValueKindEnum
)

// AttributeValueType is the BA_DEF_ value-type descriptor: Int/Hex/Float
// carry a [Min,Max] range, Enum carries its allowed values, String carries
// neither (§3.1).
type AttributeValueType struct {
	Kind       AttributeValueKind
	Min, Max   float64
	EnumValues []string
}

// AttributeDefinition is a BA_DEF_ declaration: a named attribute, the
// object kind it applies to, and its value type.
type AttributeDefinition struct {
	Name       string
	ObjectType ObjectType
	ValueType  AttributeValueType
}

// AttributeValue is the BA_DEF_DEF_/BA_ tagged union of possible attribute
// values (§3.1).
type AttributeValue struct {
	Int      int64
	Float    float64
	String   string
	HasInt   bool
	HasFloat bool
}

// IntValue returns an AttributeValue carrying an integer.
func IntValue(v int64) AttributeValue { return AttributeValue{Int: v, HasInt: true} }

// FloatValue returns an AttributeValue carrying a float.
func FloatValue(v float64) AttributeValue { return AttributeValue{Float: v, HasFloat: true} }

// StringValue returns an AttributeValue carrying a string.
func StringValue(v string) AttributeValue { return AttributeValue{String: v} }

// AttributeTarget identifies what entity a BA_ value attaches to.
type AttributeTarget struct {
	Scope      ObjectType
	NodeName   string // set when Scope == ObjectNode
	MessageID  uint32 // set when Scope == ObjectMessage or ObjectSignal
	SignalName string // set when Scope == ObjectSignal
}

// AttributeAssignment is one BA_ statement: the attribute name, the target
// it applies to, and the value assigned.
type AttributeAssignment struct {
	AttributeName string
	Target        AttributeTarget
	Value         AttributeValue
}

func (d AttributeDefinition) validate(limits Limits) error {
	if d.Name == "" {
		return &ValidationError{Msg: "attribute definition: name must not be empty"}
	}
	if d.ValueType.Kind == ValueKindEnum && len(d.ValueType.EnumValues) > limits.MaxAttributeEnumValues {
		return &ValidationError{Msg: fmt.Sprintf("attribute definition %q: enum value count exceeds limit %d", d.Name, limits.MaxAttributeEnumValues)}
	}
	return nil
}
