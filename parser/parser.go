package parser

import dbc "github.com/aldas/go-dbc"

// Parse reads DBC text using the allocating-profile defaults.
func Parse(input []byte) (*dbc.Dbc, error) {
	return ParseWithLimits(input, dbc.DefaultLimits())
}

// ParseWithLimits reads DBC text and constructs a Dbc under the given
// capacity profile, dispatching one handler per top-level keyword (§4.2).
// Malformed individual records are skipped (soft-fail, §4.1's recovery
// policy); structural problems — empty input, missing VERSION, missing
// BU_ — and validation failures from dbc.New propagate as errors.
func ParseWithLimits(input []byte, limits dbc.Limits) (*dbc.Dbc, error) {
	if len(input) == 0 {
		return nil, &dbc.ParseError{Kind: dbc.KindUnexpectedEOF, Msg: "empty input"}
	}

	c := newCursor(input)
	st := newParseState(limits)

	for {
		c.skipNewlinesAndSpaces()
		if c.eof() {
			break
		}
		keyword, err := c.parseIdentifier()
		if err != nil {
			c.skipToEndOfLine()
			continue
		}
		dispatch(c, keyword, st)
	}

	return st.build()
}

func dispatch(c *cursor, keyword string, st *parseState) {
	switch keyword {
	case "VERSION":
		if err := handleVersion(c, st); err != nil {
			c.skipToEndOfLine()
		}
	case "BU_":
		if err := handleNodes(c, st); err != nil {
			c.skipToEndOfLine()
		}
	case "BO_":
		handleMessage(c, st)
	case "SG_":
		handleSignal(c, st)
	case "CM_":
		handleComment(c, st)
	case "VAL_":
		handleValueDescription(c, st)
	case "SG_MUL_VAL_":
		handleExtendedMultiplexing(c, st)
	case "BA_DEF_":
		handleAttributeDefinition(c, st)
	case "BA_DEF_DEF_":
		handleAttributeDefault(c, st)
	case "BA_":
		handleAttributeValue(c, st)
	case "SGTYPE_":
		handleSignalType(c, st)
	case "SIG_TYPE_REF_":
		handleSignalTypeReference(c, st)
	case "SGTYPE_VAL_":
		handleSignalTypeValue(c, st)
	case "SIG_VALTYPE_":
		handleSignalValueType(c, st)
	case "BS_", "EV_", "ENVVAR_DATA_", "BU_EV_REL_", "BO_TX_BU_", "SIG_GROUP_", "BA_DEF_SGTYPE_", "BA_SGTYPE_":
		c.skipToEndOfLine()
	default:
		c.skipToEndOfLine()
	}
}
