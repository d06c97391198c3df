package parser

import (
	"strings"

	dbc "github.com/aldas/go-dbc"
)

func handleVersion(c *cursor, st *parseState) error {
	c.skipSpaces()
	v, err := c.parseQuoted(dbc.MaxVersionLength)
	if err != nil {
		return err
	}
	st.version = v
	st.sawVersion = true
	c.skipToEndOfLine()
	return nil
}

func handleNodes(c *cursor, st *parseState) error {
	c.skipSpaces()
	if err := c.expect(':'); err != nil {
		return err
	}
	var names []string
	for {
		c.skipSpaces()
		b, ok := c.peek()
		if !ok || isLineBreak(b) {
			break
		}
		name, err := c.parseIdentifier()
		if err != nil {
			break
		}
		names = append(names, name)
	}
	st.nodes = names
	st.sawNodes = true
	c.skipToEndOfLine()
	return nil
}

func handleMessage(c *cursor, st *parseState) {
	if err := func() error {
		if err := c.skipWhitespace(); err != nil {
			return err
		}
		id, err := c.parseU32()
		if err != nil {
			return err
		}
		if err := c.skipWhitespace(); err != nil {
			return err
		}
		name, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipSpaces()
		if err := c.expect(':'); err != nil {
			return err
		}
		c.skipSpaces()
		dlc, err := c.parseU8()
		if err != nil {
			return err
		}
		sender := ""
		if err := c.skipWhitespace(); err == nil {
			sender, _ = c.parseIdentifier()
		}
		st.messages = append(st.messages, dbc.Message{ID: id, Name: name, DLC: dlc, Sender: sender})
		st.currentMessageIdx = len(st.messages) - 1
		return nil
	}(); err != nil {
		st.currentMessageIdx = -1
	}
	c.skipToEndOfLine()
}

func handleSignal(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()

	m, ok := st.currentMessage()
	if !ok {
		return
	}

	sig, err := parseSignalLine(c, st.limits)
	if err != nil {
		return
	}
	m.Signals = append(m.Signals, sig)
}

func parseSignalLine(c *cursor, limits dbc.Limits) (dbc.Signal, error) {
	if err := c.skipWhitespace(); err != nil {
		return dbc.Signal{}, err
	}
	name, err := c.parseIdentifier()
	if err != nil {
		return dbc.Signal{}, err
	}
	c.skipSpaces()

	isSwitch := false
	var muxValue *uint64
	if b, ok := c.peek(); ok {
		switch {
		case b == 'M':
			c.pos++
			isSwitch = true
			c.skipSpaces()
		case b == 'm':
			mark := c.pos
			c.pos++
			if v, err := c.parseU64(); err == nil {
				muxValue = &v
				c.skipSpaces()
				if nb, ok := c.peek(); ok && nb == 'M' {
					c.pos++
					isSwitch = true
					c.skipSpaces()
				}
			} else {
				c.pos = mark
			}
		}
	}

	if err := c.expect(':'); err != nil {
		return dbc.Signal{}, err
	}
	c.skipSpaces()

	startBit, err := c.parseU64()
	if err != nil {
		return dbc.Signal{}, err
	}
	if err := c.expect('|'); err != nil {
		return dbc.Signal{}, err
	}
	length, err := c.parseU64()
	if err != nil {
		return dbc.Signal{}, err
	}
	if err := c.expect('@'); err != nil {
		return dbc.Signal{}, err
	}
	boDigit, ok := c.peek()
	if !ok {
		return dbc.Signal{}, &dbc.ParseError{Kind: dbc.KindUnexpectedEOF, Msg: "expected byte order digit", Line: c.line}
	}
	c.pos++
	byteOrder := dbc.LittleEndian
	if boDigit == '0' {
		byteOrder = dbc.BigEndian
	}
	signByte, ok := c.peek()
	if !ok {
		return dbc.Signal{}, &dbc.ParseError{Kind: dbc.KindUnexpectedEOF, Msg: "expected sign", Line: c.line}
	}
	c.pos++
	isUnsigned := signByte == '+'

	c.skipSpaces()
	if err := c.expect('('); err != nil {
		return dbc.Signal{}, err
	}
	factor := c.parseF64OrDefault(0)
	if err := c.expect(','); err != nil {
		return dbc.Signal{}, err
	}
	offset := c.parseF64OrDefault(0)
	if err := c.expect(')'); err != nil {
		return dbc.Signal{}, err
	}

	c.skipSpaces()
	if err := c.expect('['); err != nil {
		return dbc.Signal{}, err
	}
	min := c.parseF64OrDefault(0)
	if err := c.expect('|'); err != nil {
		return dbc.Signal{}, err
	}
	max := c.parseF64OrDefault(0)
	if err := c.expect(']'); err != nil {
		return dbc.Signal{}, err
	}

	c.skipSpaces()
	unit, err := c.parseQuoted(limits.MaxNameSize)
	if err != nil {
		return dbc.Signal{}, err
	}

	c.skipSpaces()
	receivers := parseReceivers(c, limits)

	return dbc.Signal{
		Name:                   name,
		StartBit:               uint16(startBit),
		Length:                 uint16(length),
		ByteOrder:              byteOrder,
		IsUnsigned:             isUnsigned,
		Factor:                 factor,
		Offset:                 offset,
		Min:                    min,
		Max:                    max,
		Unit:                   unit,
		Receivers:              receivers,
		IsMultiplexerSwitch:    isSwitch,
		MultiplexerSwitchValue: muxValue,
	}, nil
}

// parseReceivers reads the comma/space-separated receiver list to end of
// line, collapsing "*" and Vector__XXX to Receivers::None (§4.2.1, §8.3).
func parseReceivers(c *cursor, limits dbc.Limits) dbc.Receivers {
	var names []string
	for {
		c.skipSpaces()
		b, ok := c.peek()
		if !ok || isLineBreak(b) {
			break
		}
		if b == ',' {
			c.pos++
			continue
		}
		if b == '*' {
			c.pos++
			continue
		}
		name, err := c.parseIdentifier()
		if err != nil {
			break
		}
		if name == dbc.VectorNoSender {
			continue
		}
		names = append(names, name)
	}
	_ = limits
	return dbc.NewReceivers(names)
}

func handleComment(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		if err := c.skipWhitespace(); err != nil {
			return err
		}
		if b, ok := c.peek(); ok && b == '"' {
			_, err := c.parseQuoted(st.limits.MaxDescriptionLength)
			return err
		}
		scope, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		switch scope {
		case "BU_":
			c.skipWhitespace()
			name, err := c.parseIdentifier()
			if err != nil {
				return err
			}
			c.skipWhitespace()
			text, err := c.parseQuoted(st.limits.MaxDescriptionLength)
			if err != nil {
				return err
			}
			st.nodeComments[name] = text
		case "BO_":
			c.skipWhitespace()
			id, err := c.parseU32()
			if err != nil {
				return err
			}
			c.skipWhitespace()
			text, err := c.parseQuoted(st.limits.MaxDescriptionLength)
			if err != nil {
				return err
			}
			st.messageComments[id] = text
		case "SG_":
			c.skipWhitespace()
			id, err := c.parseU32()
			if err != nil {
				return err
			}
			c.skipWhitespace()
			name, err := c.parseIdentifier()
			if err != nil {
				return err
			}
			c.skipWhitespace()
			text, err := c.parseQuoted(st.limits.MaxDescriptionLength)
			if err != nil {
				return err
			}
			st.applySignalComment(id, name, text)
		}
		return nil
	}(); err != nil {
		return
	}
}

func handleValueDescription(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		c.skipWhitespace()
		idTok, err := c.parseI64()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		signalName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		if st.valueDescriptions == nil {
			st.valueDescriptions = dbc.NewValueDescriptions()
		}
		global := idTok == -1
		for {
			c.skipWhitespace()
			mark := c.pos
			raw, err := c.parseU64()
			if err != nil {
				c.pos = mark
				break
			}
			c.skipWhitespace()
			text, err := c.parseQuoted(st.limits.MaxDescriptionLength)
			if err != nil {
				return err
			}
			if global {
				st.valueDescriptions.SetGlobal(signalName, raw, text)
			} else {
				st.valueDescriptions.SetForMessage(uint32(idTok), signalName, raw, text)
			}
		}
		c.skipSpaces()
		return c.expect(';')
	}(); err != nil {
		return
	}
}

func handleExtendedMultiplexing(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		c.skipWhitespace()
		id, err := c.parseU32()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		signalName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		switchName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipWhitespace()

		var ranges []dbc.ValueRange
		for {
			// '-' is in the number alphabet, so "0-10" is read digit by digit.
			var bounds [2]uint64
			for i := range bounds {
				start := c.pos
				for b, ok := c.peek(); ok && b >= '0' && b <= '9'; b, ok = c.peek() {
					bounds[i] = bounds[i]*10 + uint64(b-'0')
					c.pos++
				}
				if c.pos == start || (i == 0 && c.expect('-') != nil) {
					return &dbc.ParseError{Kind: dbc.KindInvalidChar, Msg: "expected range lo-hi", Line: c.line}
				}
			}
			ranges = append(ranges, dbc.ValueRange{Min: bounds[0], Max: bounds[1]})
			c.skipSpaces()
			b, ok := c.peek()
			if !ok || b != ',' {
				break
			}
			c.pos++
			c.skipSpaces()
		}
		c.skipSpaces()
		if err := c.expect(';'); err != nil {
			return err
		}
		st.extendedMultiplexing = append(st.extendedMultiplexing, dbc.ExtendedMultiplexing{
			MessageID:             id,
			SignalName:            signalName,
			MultiplexerSwitchName: switchName,
			Ranges:                ranges,
		})
		return nil
	}(); err != nil {
		return
	}
}

func objectTypeFromScope(scope string) (dbc.ObjectType, bool) {
	switch scope {
	case "BU_":
		return dbc.ObjectNode, true
	case "BO_":
		return dbc.ObjectMessage, true
	case "SG_":
		return dbc.ObjectSignal, true
	default:
		return dbc.ObjectNetwork, false
	}
}

func handleAttributeDefinition(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	c.skipWhitespace()

	objType := dbc.ObjectNetwork
	if b, ok := c.peek(); ok && b != '"' {
		scope, err := c.parseIdentifier()
		if err != nil {
			return
		}
		if scope == "EV_" {
			return
		}
		ot, known := objectTypeFromScope(scope)
		if !known {
			return
		}
		objType = ot
		c.skipWhitespace()
	}

	name, err := c.parseQuoted(st.limits.MaxNameSize)
	if err != nil {
		return
	}
	c.skipWhitespace()
	kindTok, err := c.parseIdentifier()
	if err != nil {
		return
	}

	var vt dbc.AttributeValueType
	switch kindTok {
	case "INT":
		vt.Kind = dbc.ValueKindInt
		c.skipWhitespace()
		vt.Min = c.parseF64OrDefault(0)
		c.skipWhitespace()
		vt.Max = c.parseF64OrDefault(0)
	case "HEX":
		vt.Kind = dbc.ValueKindHex
		c.skipWhitespace()
		vt.Min = c.parseF64OrDefault(0)
		c.skipWhitespace()
		vt.Max = c.parseF64OrDefault(0)
	case "FLOAT":
		vt.Kind = dbc.ValueKindFloat
		c.skipWhitespace()
		vt.Min = c.parseF64OrDefault(0)
		c.skipWhitespace()
		vt.Max = c.parseF64OrDefault(0)
	case "STRING":
		vt.Kind = dbc.ValueKindString
	case "ENUM":
		vt.Kind = dbc.ValueKindEnum
		c.skipWhitespace()
		for {
			v, err := c.parseQuoted(st.limits.MaxNameSize)
			if err != nil {
				break
			}
			vt.EnumValues = append(vt.EnumValues, v)
			c.skipSpaces()
			b, ok := c.peek()
			if !ok || b != ',' {
				break
			}
			c.pos++
			c.skipSpaces()
		}
	default:
		return
	}

	if len(st.attributeDefinitions) >= st.limits.MaxAttributeDefinitions {
		return
	}
	st.attributeDefinitions = append(st.attributeDefinitions, dbc.AttributeDefinition{
		Name:       name,
		ObjectType: objType,
		ValueType:  vt,
	})
}

func parseAttributeValue(c *cursor) dbc.AttributeValue {
	c.skipSpaces()
	if b, ok := c.peek(); ok && b == '"' {
		s, err := c.parseQuoted(4096)
		if err != nil {
			return dbc.StringValue("")
		}
		return dbc.StringValue(s)
	}
	mark := c.pos
	tok, ok := c.scanNumber()
	if !ok {
		return dbc.StringValue("")
	}
	if strings.ContainsAny(tok, ".eE") {
		c.pos = mark
		return dbc.FloatValue(c.parseF64OrDefault(0))
	}
	c.pos = mark
	v, err := c.parseI64()
	if err != nil {
		return dbc.StringValue("")
	}
	return dbc.IntValue(v)
}

func handleAttributeDefault(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	c.skipWhitespace()
	name, err := c.parseQuoted(st.limits.MaxNameSize)
	if err != nil {
		return
	}
	value := parseAttributeValue(c)
	st.attributeDefaults = append(st.attributeDefaults, dbc.AttributeAssignment{AttributeName: name, Value: value})
}

func handleAttributeValue(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	c.skipWhitespace()
	name, err := c.parseQuoted(st.limits.MaxNameSize)
	if err != nil {
		return
	}
	c.skipWhitespace()

	target := dbc.AttributeTarget{Scope: dbc.ObjectNetwork}
	if b, ok := c.peek(); ok && isIdentStart(b) {
		mark := c.pos
		scope, err := c.parseIdentifier()
		if err == nil {
			switch scope {
			case "BU_":
				c.skipWhitespace()
				nodeName, err := c.parseIdentifier()
				if err == nil {
					target = dbc.AttributeTarget{Scope: dbc.ObjectNode, NodeName: nodeName}
					c.skipWhitespace()
				} else {
					c.pos = mark
				}
			case "BO_":
				c.skipWhitespace()
				id, err := c.parseU32()
				if err == nil {
					target = dbc.AttributeTarget{Scope: dbc.ObjectMessage, MessageID: id}
					c.skipWhitespace()
				} else {
					c.pos = mark
				}
			case "SG_":
				c.skipWhitespace()
				id, err := c.parseU32()
				if err == nil {
					c.skipWhitespace()
					sigName, err := c.parseIdentifier()
					if err == nil {
						target = dbc.AttributeTarget{Scope: dbc.ObjectSignal, MessageID: id, SignalName: sigName}
						c.skipWhitespace()
					} else {
						c.pos = mark
					}
				} else {
					c.pos = mark
				}
			default:
				c.pos = mark
			}
		}
	}

	value := parseAttributeValue(c)
	st.attributeValues = append(st.attributeValues, dbc.AttributeAssignment{AttributeName: name, Target: target, Value: value})
}

func handleSignalType(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		c.skipWhitespace()
		name, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipSpaces()
		if err := c.expect(':'); err != nil {
			return err
		}
		c.skipWhitespace()
		length, err := c.parseU64()
		if err != nil {
			return err
		}
		if err := c.expect('@'); err != nil {
			return err
		}
		boDigit, ok := c.peek()
		if !ok {
			return &dbc.ParseError{Kind: dbc.KindUnexpectedEOF, Msg: "expected byte order digit", Line: c.line}
		}
		c.pos++
		byteOrder := dbc.LittleEndian
		if boDigit == '0' {
			byteOrder = dbc.BigEndian
		}
		signByte, ok := c.peek()
		if !ok {
			return &dbc.ParseError{Kind: dbc.KindUnexpectedEOF, Msg: "expected sign", Line: c.line}
		}
		c.pos++
		isUnsigned := signByte == '+'

		c.skipSpaces()
		if err := c.expect('('); err != nil {
			return err
		}
		factor := c.parseF64OrDefault(0)
		if err := c.expect(','); err != nil {
			return err
		}
		offset := c.parseF64OrDefault(0)
		if err := c.expect(')'); err != nil {
			return err
		}
		c.skipSpaces()
		if err := c.expect('['); err != nil {
			return err
		}
		min := c.parseF64OrDefault(0)
		if err := c.expect('|'); err != nil {
			return err
		}
		max := c.parseF64OrDefault(0)
		if err := c.expect(']'); err != nil {
			return err
		}
		c.skipSpaces()
		unit, err := c.parseQuoted(st.limits.MaxNameSize)
		if err != nil {
			return err
		}

		valueTable := ""
		c.skipSpaces()
		if b, ok := c.peek(); ok && b == ',' {
			c.pos++
			c.skipSpaces()
			valueTable, _ = c.parseIdentifier()
		}

		st.signalTypes = append(st.signalTypes, dbc.SignalType{
			Name:       name,
			Length:     uint16(length),
			ByteOrder:  byteOrder,
			IsUnsigned: isUnsigned,
			Factor:     factor,
			Offset:     offset,
			Min:        min,
			Max:        max,
			Unit:       unit,
			ValueTable: valueTable,
		})
		return nil
	}(); err != nil {
		return
	}
}

func handleSignalTypeReference(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		c.skipWhitespace()
		id, err := c.parseU32()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		signalName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipSpaces()
		if err := c.expect(':'); err != nil {
			return err
		}
		c.skipWhitespace()
		typeName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		st.signalTypeReferences = append(st.signalTypeReferences, dbc.SignalTypeReference{
			MessageID: id, SignalName: signalName, TypeName: typeName,
		})
		return nil
	}(); err != nil {
		return
	}
}

func handleSignalTypeValue(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		c.skipWhitespace()
		typeName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		value, err := c.parseU64()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		desc, err := c.parseQuoted(st.limits.MaxDescriptionLength)
		if err != nil {
			return err
		}
		st.signalTypeValues = append(st.signalTypeValues, dbc.SignalTypeValue{TypeName: typeName, Value: value, Description: desc})
		return nil
	}(); err != nil {
		return
	}
}

func handleSignalValueType(c *cursor, st *parseState) {
	defer c.skipToEndOfLine()
	if err := func() error {
		c.skipWhitespace()
		id, err := c.parseU32()
		if err != nil {
			return err
		}
		c.skipWhitespace()
		signalName, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipSpaces()
		if err := c.expect(':'); err != nil {
			return err
		}
		c.skipWhitespace()
		n, err := c.parseU8()
		if err != nil {
			return err
		}
		vt := dbc.ValueTypeInteger
		switch n {
		case 1:
			vt = dbc.ValueTypeFloat32
		case 2:
			vt = dbc.ValueTypeFloat64
		}
		st.signalValueTypes[sigValueTypeKey{messageID: id, signalName: signalName}] = vt
		return nil
	}(); err != nil {
		return
	}
}
