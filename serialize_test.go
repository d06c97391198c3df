package dbc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDbcString_EmitsFixedSectionOrder(t *testing.T) {
	d := mustNew(t, []Message{
		{
			ID: 256, Name: "Engine", DLC: 8, Sender: "ECM",
			Signals: []Signal{
				{Name: "RPM", StartBit: 0, Length: 16, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 0.25, Unit: "rpm"},
			},
		},
	}, DbcExtras{})

	out := d.ToDbcString()
	versionIdx := strings.Index(out, "VERSION")
	nodesIdx := strings.Index(out, "BU_:")
	messageIdx := strings.Index(out, "BO_ 256")
	signalIdx := strings.Index(out, "SG_ RPM")

	require.NotEqual(t, -1, versionIdx)
	require.NotEqual(t, -1, nodesIdx)
	require.NotEqual(t, -1, messageIdx)
	require.NotEqual(t, -1, signalIdx)
	assert.Less(t, versionIdx, nodesIdx)
	assert.Less(t, nodesIdx, messageIdx)
	assert.Less(t, messageIdx, signalIdx)
}

func TestToDbcString_EmptyVersionStillEmitted(t *testing.T) {
	d := mustNew(t, nil, DbcExtras{})
	out := d.ToDbcString()
	assert.Contains(t, out, `VERSION ""`)
}

func TestToDbcString_NoneReceiversEmitVectorXXX(t *testing.T) {
	d := mustNew(t, []Message{
		{
			ID: 1, Name: "M", DLC: 8, Sender: "ECM",
			Signals: []Signal{
				{Name: "S", StartBit: 0, Length: 8, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 1},
			},
		},
	}, DbcExtras{})
	out := d.ToDbcString()
	assert.Contains(t, out, VectorNoSender)
}

func TestToDbcString_Idempotent(t *testing.T) {
	d := mustNew(t, []Message{
		{ID: 1, Name: "M", DLC: 8, Sender: "ECM", Signals: []Signal{
			{Name: "S", StartBit: 0, Length: 8, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 1},
		}},
	}, DbcExtras{})

	first := d.ToDbcString()
	second := d.ToDbcString()
	assert.Equal(t, first, second)
}
