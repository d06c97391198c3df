package parser

import dbc "github.com/aldas/go-dbc"

type sigValueTypeKey struct {
	messageID  uint32
	signalName string
}

// parseState accumulates buffered records while the grammar is read,
// mirroring the "ParseState" described in §2's data-flow diagram: nothing is
// committed to a validated Dbc until the whole input has been consumed.
type parseState struct {
	limits dbc.Limits

	sawVersion bool
	sawNodes   bool

	version  string
	nodes    []string
	messages []dbc.Message

	currentMessageIdx int

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
	signalValueTypes     map[sigValueTypeKey]dbc.SignalValueType
}

func newParseState(limits dbc.Limits) *parseState {
	return &parseState{
		limits:            limits,
		currentMessageIdx: -1,
		messageComments:   make(map[uint32]string),
		nodeComments:      make(map[string]string),
		signalValueTypes:  make(map[sigValueTypeKey]dbc.SignalValueType),
	}
}

func (st *parseState) currentMessage() (*dbc.Message, bool) {
	if st.currentMessageIdx < 0 || st.currentMessageIdx >= len(st.messages) {
		return nil, false
	}
	return &st.messages[st.currentMessageIdx], true
}

// applySignalValueTypes pushes buffered SIG_VALTYPE_ entries onto their
// target signals; SIG_VALTYPE_ commonly trails the BO_/SG_ block it refers
// to, so this runs once after the whole input has been read rather than
// inline during dispatch.
func (st *parseState) applySignalValueTypes() {
	if len(st.signalValueTypes) == 0 {
		return
	}
	for i := range st.messages {
		m := &st.messages[i]
		for j := range m.Signals {
			key := sigValueTypeKey{messageID: m.ID, signalName: m.Signals[j].Name}
			if vt, ok := st.signalValueTypes[key]; ok {
				m.Signals[j].ValueType = vt
			}
		}
	}
}

func (st *parseState) applySignalComment(messageID uint32, signalName, text string) {
	for i := range st.messages {
		if st.messages[i].ID != messageID {
			continue
		}
		for j := range st.messages[i].Signals {
			if st.messages[i].Signals[j].Name == signalName {
				st.messages[i].Signals[j].Comment = text
				return
			}
		}
	}
}

// build funnels the buffered state through dbc.New, the single construction
// choke point shared with the builder package (§3.3).
func (st *parseState) build() (*dbc.Dbc, error) {
	if !st.sawVersion {
		return nil, &dbc.ParseError{Kind: dbc.KindVersion, Msg: "missing VERSION"}
	}
	if !st.sawNodes {
		return nil, &dbc.ParseError{Kind: dbc.KindNodes, Msg: "missing BU_"}
	}

	st.applySignalValueTypes()

	extras := dbc.DbcExtras{
		ValueDescriptions:    st.valueDescriptions,
		ExtendedMultiplexing: st.extendedMultiplexing,
		SignalTypes:          st.signalTypes,
		SignalTypeReferences: st.signalTypeReferences,
		SignalTypeValues:     st.signalTypeValues,
		AttributeDefinitions: st.attributeDefinitions,
		AttributeDefaults:    st.attributeDefaults,
		AttributeValues:      st.attributeValues,
		MessageComments:      st.messageComments,
		NodeComments:         st.nodeComments,
	}
	return dbc.New(dbc.Version(st.version), dbc.Nodes(st.nodes), st.messages, extras, st.limits)
}
