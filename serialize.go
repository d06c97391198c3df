package dbc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ToDbcString renders the Dbc in canonical DBC text form (§4.7). Re-parsing
// the output must yield a semantically equal Dbc (§8.2), and serializing
// twice in a row must be byte-identical (§8.2 idempotence).
func (d *Dbc) ToDbcString() string {
	var b strings.Builder

	fmt.Fprintf(&b, "VERSION %q\n\n", string(d.Version))

	b.WriteString("BU_:")
	for _, n := range d.Nodes {
		b.WriteString(" ")
		b.WriteString(n)
	}
	b.WriteString("\n\n")

	for _, m := range d.Messages {
		fmt.Fprintf(&b, "BO_ %d %s : %d %s\n", ExternalID(m.ID), m.Name, m.DLC, m.Sender)
		for _, s := range m.Signals {
			b.WriteString(" ")
			writeSignalLine(&b, s)
		}
		b.WriteString("\n")
	}

	writeComments(&b, d)
	writeAttributeDefinitions(&b, d)
	writeAttributeDefaults(&b, d)
	writeAttributeValues(&b, d)
	writeValueDescriptions(&b, d)
	writeExtendedMultiplexing(&b, d)
	writeSignalTypes(&b, d)

	return b.String()
}

func writeSignalLine(b *strings.Builder, s Signal) {
	b.WriteString("SG_ ")
	b.WriteString(s.Name)
	if s.IsMultiplexed() {
		fmt.Fprintf(b, " m%d", *s.MultiplexerSwitchValue)
	}
	if s.IsMultiplexerSwitch {
		b.WriteString(" M")
	}
	b.WriteString(" : ")
	fmt.Fprintf(b, "%d|%d@%c", s.StartBit, s.Length, s.ByteOrder.dbcDigit())
	if s.IsUnsigned {
		b.WriteString("+")
	} else {
		b.WriteString("-")
	}
	fmt.Fprintf(b, " (%s,%s)", formatFloat(s.Factor), formatFloat(s.Offset))
	fmt.Fprintf(b, " [%s|%s]", formatFloat(s.Min), formatFloat(s.Max))
	fmt.Fprintf(b, " %q", s.Unit)
	b.WriteString(" ")
	b.WriteString(formatReceivers(s.Receivers))
	b.WriteString("\n")
}

func formatReceivers(r Receivers) string {
	if r.IsNone() {
		return VectorNoSender
	}
	return strings.Join(r.Names(), ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeComments(b *strings.Builder, d *Dbc) {
	hasAny := len(d.NodeComments) > 0 || len(d.MessageComments) > 0
	for _, m := range d.Messages {
		if m.Comment != "" {
			hasAny = true
		}
		for _, s := range m.Signals {
			if s.Comment != "" {
				hasAny = true
			}
		}
	}
	if !hasAny {
		return
	}
	for _, name := range sortedKeys(d.NodeComments) {
		fmt.Fprintf(b, "CM_ BU_ %s %q;\n", name, d.NodeComments[name])
	}
	for _, m := range d.Messages {
		// MessageComments (populated by CM_ BO_ while parsing) takes
		// precedence; m.Comment is the builder's direct-field equivalent,
		// used when a Dbc was assembled programmatically instead of parsed.
		c := d.MessageComments[m.ID]
		if c == "" {
			c = m.Comment
		}
		if c != "" {
			fmt.Fprintf(b, "CM_ BO_ %d %q;\n", ExternalID(m.ID), c)
		}
		for _, s := range m.Signals {
			if s.Comment != "" {
				fmt.Fprintf(b, "CM_ SG_ %d %s %q;\n", ExternalID(m.ID), s.Name, s.Comment)
			}
		}
	}
	b.WriteString("\n")
}

func writeAttributeDefinitions(b *strings.Builder, d *Dbc) {
	if len(d.AttributeDefinitions) == 0 {
		return
	}
	for _, def := range d.AttributeDefinitions {
		fmt.Fprintf(b, "BA_DEF_ %s %q %s;\n", objectTypePrefix(def.ObjectType), def.Name, formatValueType(def.ValueType))
	}
	b.WriteString("\n")
}

func objectTypePrefix(o ObjectType) string {
	switch o {
	case ObjectNode:
		return "BU_"
	case ObjectMessage:
		return "BO_"
	case ObjectSignal:
		return "SG_"
	default:
		return ""
	}
}

func formatValueType(v AttributeValueType) string {
	switch v.Kind {
	case ValueKindInt:
		return fmt.Sprintf("INT %s %s", formatFloat(v.Min), formatFloat(v.Max))
	case ValueKindHex:
		return fmt.Sprintf("HEX %s %s", formatFloat(v.Min), formatFloat(v.Max))
	case ValueKindFloat:
		return fmt.Sprintf("FLOAT %s %s", formatFloat(v.Min), formatFloat(v.Max))
	case ValueKindEnum:
		quoted := make([]string, len(v.EnumValues))
		for i, e := range v.EnumValues {
			quoted[i] = fmt.Sprintf("%q", e)
		}
		return "ENUM " + strings.Join(quoted, ",")
	default:
		return "STRING"
	}
}

func writeAttributeDefaults(b *strings.Builder, d *Dbc) {
	if len(d.AttributeDefaults) == 0 {
		return
	}
	for _, a := range d.AttributeDefaults {
		fmt.Fprintf(b, "BA_DEF_DEF_ %q %s;\n", a.AttributeName, formatAttributeValue(a.Value))
	}
	b.WriteString("\n")
}

func writeAttributeValues(b *strings.Builder, d *Dbc) {
	if len(d.AttributeValues) == 0 {
		return
	}
	for _, a := range d.AttributeValues {
		fmt.Fprintf(b, "BA_ %q %s;\n", a.AttributeName, formatAttributeTarget(a.Target, a.Value))
	}
	b.WriteString("\n")
}

func formatAttributeValue(v AttributeValue) string {
	switch {
	case v.HasInt:
		return strconv.FormatInt(v.Int, 10)
	case v.HasFloat:
		return formatFloat(v.Float)
	default:
		return fmt.Sprintf("%q", v.String)
	}
}

func formatAttributeTarget(t AttributeTarget, v AttributeValue) string {
	switch t.Scope {
	case ObjectNode:
		return fmt.Sprintf("BU_ %s %s", t.NodeName, formatAttributeValue(v))
	case ObjectMessage:
		return fmt.Sprintf("BO_ %d %s", t.MessageID, formatAttributeValue(v))
	case ObjectSignal:
		return fmt.Sprintf("SG_ %d %s %s", t.MessageID, t.SignalName, formatAttributeValue(v))
	default:
		return formatAttributeValue(v)
	}
}

func writeValueDescriptions(b *strings.Builder, d *Dbc) {
	if d.ValueDescriptions == nil || len(d.ValueDescriptions.tables) == 0 {
		return
	}
	keys := make([]valueDescriptionKey, 0, len(d.ValueDescriptions.tables))
	for k := range d.ValueDescriptions.tables {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].hasMessageID != keys[j].hasMessageID {
			return !keys[i].hasMessageID
		}
		if keys[i].messageID != keys[j].messageID {
			return keys[i].messageID < keys[j].messageID
		}
		return keys[i].signalName < keys[j].signalName
	})
	for _, k := range keys {
		id := -1
		if k.hasMessageID {
			id = int(ExternalID(k.messageID))
		}
		table := d.ValueDescriptions.tables[k]
		raws := make([]uint64, 0, len(table))
		for raw := range table {
			raws = append(raws, raw)
		}
		sort.Slice(raws, func(i, j int) bool { return raws[i] < raws[j] })

		fmt.Fprintf(b, "VAL_ %d %s", id, k.signalName)
		for _, raw := range raws {
			fmt.Fprintf(b, " %d %q", raw, table[raw])
		}
		b.WriteString(" ;\n")
	}
	b.WriteString("\n")
}

func writeExtendedMultiplexing(b *strings.Builder, d *Dbc) {
	if len(d.ExtendedMultiplexing) == 0 {
		return
	}
	for _, e := range d.ExtendedMultiplexing {
		ranges := make([]string, len(e.Ranges))
		for i, r := range e.Ranges {
			ranges[i] = fmt.Sprintf("%d-%d", r.Min, r.Max)
		}
		fmt.Fprintf(b, "SG_MUL_VAL_ %d %s %s %s ;\n", ExternalID(e.MessageID), e.SignalName, e.MultiplexerSwitchName, strings.Join(ranges, ","))
	}
	b.WriteString("\n")
}

func writeSignalTypes(b *strings.Builder, d *Dbc) {
	if len(d.SignalTypes) == 0 && len(d.SignalTypeReferences) == 0 && len(d.SignalTypeValues) == 0 {
		return
	}
	for _, t := range d.SignalTypes {
		sign := byte('-')
		if t.IsUnsigned {
			sign = '+'
		}
		fmt.Fprintf(b, "SGTYPE_ %s : %d@%c%c (%s,%s) [%s|%s] %q",
			t.Name, t.Length, t.ByteOrder.dbcDigit(), sign, formatFloat(t.Factor), formatFloat(t.Offset),
			formatFloat(t.Min), formatFloat(t.Max), t.Unit)
		if t.ValueTable != "" {
			fmt.Fprintf(b, ", %s", t.ValueTable)
		}
		b.WriteString(";\n")
	}
	for _, r := range d.SignalTypeReferences {
		fmt.Fprintf(b, "SIG_TYPE_REF_ %d %s : %s;\n", ExternalID(r.MessageID), r.SignalName, r.TypeName)
	}
	for _, v := range d.SignalTypeValues {
		fmt.Fprintf(b, "SGTYPE_VAL_ %s %d %q;\n", v.TypeName, v.Value, v.Description)
	}
	b.WriteString("\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
