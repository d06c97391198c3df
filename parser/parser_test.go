package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbc "github.com/aldas/go-dbc"
)

const scenarioA = `VERSION "1.0"
BU_: ECM
BO_ 256 Engine : 8 ECM
 SG_ RPM : 0|16@1+ (0.25,0) [0|8000] "rpm"
 SG_ Temp : 16|8@1- (1,-40) [-40|215] "°C"
`

func TestParse_ScenarioA(t *testing.T) {
	d, err := Parse([]byte(scenarioA))
	require.NoError(t, err)

	assert.Equal(t, dbc.Version("1.0"), d.Version)
	assert.Equal(t, dbc.Nodes{"ECM"}, d.Nodes)
	require.Len(t, d.Messages, 1)

	msg := d.Messages[0]
	assert.Equal(t, "Engine", msg.Name)
	assert.Equal(t, uint8(8), msg.DLC)
	require.Len(t, msg.Signals, 2)

	rpm, ok := msg.SignalByName("RPM")
	require.True(t, ok)
	assert.Equal(t, uint16(16), rpm.Length)
	assert.True(t, rpm.IsUnsigned)
	assert.Equal(t, 0.25, rpm.Factor)

	out, err := d.Decode(256, []byte{0x40, 0x1F, 0x5A, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestParse_BasicMultiplexing(t *testing.T) {
	input := `VERSION ""
BU_: ECM
BO_ 300 MuxMsg : 8 ECM
 SG_ SensorID M : 0|8@1+ (1,0) [0|3] ""
 SG_ Temp m0 : 8|16@1- (0.1,-40) [-40|125] "°C"
 SG_ Pres m1 : 8|16@1+ (0.01,0) [0|655.35] "kPa"
`
	d, err := Parse([]byte(input))
	require.NoError(t, err)

	msg := d.Messages[0]
	require.Len(t, msg.Signals, 3)

	sensorID, _ := msg.SignalByName("SensorID")
	assert.True(t, sensorID.IsMultiplexerSwitch)

	temp, _ := msg.SignalByName("Temp")
	require.NotNil(t, temp.MultiplexerSwitchValue)
	assert.Equal(t, uint64(0), *temp.MultiplexerSwitchValue)

	pres, _ := msg.SignalByName("Pres")
	require.NotNil(t, pres.MultiplexerSwitchValue)
	assert.Equal(t, uint64(1), *pres.MultiplexerSwitchValue)
}

func TestParse_CommentsValueTablesAndExtendedMux(t *testing.T) {
	input := `VERSION "1.0"
BU_: ECM TCU
BO_ 400 ExtMux : 8 ECM
 SG_ Mode M : 0|8@1+ (1,0) [0|255] ""
 SG_ SubMode M : 8|8@1+ (1,0) [0|255] ""
 SG_ DataA m0 : 16|16@1+ (1,0) [0|65535] ""
 SG_ DataB m0 : 32|16@1+ (1,0) [0|65535] ""

CM_ BO_ 400 "extended mux demo" ;
CM_ SG_ 400 Mode "selects operating mode" ;
VAL_ 400 Mode 0 "Idle" 1 "Running" ;
SG_MUL_VAL_ 400 DataA Mode 0-10 ;
SG_MUL_VAL_ 400 DataA SubMode 0-5 ;
SG_MUL_VAL_ 400 DataB Mode 0-10 ;
SG_MUL_VAL_ 400 DataB SubMode 6-10 ;
`
	d, err := Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "extended mux demo", d.MessageComments[400])

	msg := d.Messages[0]
	mode, _ := msg.SignalByName("Mode")
	assert.Equal(t, "selects operating mode", mode.Comment)

	text, ok := d.ValueDescriptions.Lookup(400, "Mode", 0)
	require.True(t, ok)
	assert.Equal(t, "Idle", text)

	require.Len(t, d.ExtendedMultiplexing, 4)

	out, err := d.Decode(400, []byte{0x05, 0x03, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	names := make([]string, 0, len(out))
	for _, s := range out {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "DataA")
	assert.NotContains(t, names, "DataB")
}

func TestParse_MissingVersionIsHardError(t *testing.T) {
	_, err := Parse([]byte("BU_: ECM\n"))
	require.Error(t, err)
}

func TestParse_EmptyInputIsHardError(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
}

func TestParse_UnknownKeywordSkipped(t *testing.T) {
	input := `VERSION "1.0"
BU_: ECM
VENDOR_SPECIFIC_JUNK here and there
BO_ 1 M : 8 ECM
`
	d, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, d.Messages, 1)
}

func TestParse_ReceiversStarAndVectorXXXAreNone(t *testing.T) {
	input := `VERSION "1.0"
BU_: ECM
BO_ 1 M : 8 ECM
 SG_ A : 0|8@1+ (1,0) [0|0] "" *
 SG_ B : 8|8@1+ (1,0) [0|0] "" Vector__XXX
`
	d, err := Parse([]byte(input))
	require.NoError(t, err)
	a, _ := d.Messages[0].SignalByName("A")
	b, _ := d.Messages[0].SignalByName("B")
	assert.True(t, a.Receivers.IsNone())
	assert.True(t, b.Receivers.IsNone())
}

func TestParse_SerializeRoundTrip(t *testing.T) {
	d, err := Parse([]byte(scenarioA))
	require.NoError(t, err)

	out := d.ToDbcString()
	require.True(t, strings.Contains(out, "RPM"))

	reparsed, err := Parse([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, d.Version, reparsed.Version)
	assert.Equal(t, d.Nodes, reparsed.Nodes)
	require.Len(t, reparsed.Messages, len(d.Messages))
	assert.Equal(t, d.Messages[0].Name, reparsed.Messages[0].Name)
	assert.Equal(t, d.Messages[0].Signals[0].Name, reparsed.Messages[0].Signals[0].Name)

	assert.Equal(t, out, reparsed.ToDbcString())
}
