package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbc "github.com/aldas/go-dbc"
)

func TestDbcBuilder_Build(t *testing.T) {
	d, err := NewDbcBuilder().
		Version("1.0").
		Nodes("ECM", "TCU").
		AddMessage(
			NewMessage(256, "Engine").
				DLC(8).
				Sender("ECM").
				AddSignal(
					NewSignal("RPM").
						StartBit(0).
						Length(16).
						ByteOrder(dbc.LittleEndian).
						Unsigned().
						Factor(0.25).
						Range(0, 8000).
						Unit("rpm"),
				),
		).
		Build()

	require.NoError(t, err)
	require.Len(t, d.Messages, 1)
	assert.Equal(t, "Engine", d.Messages[0].Name)
	require.Len(t, d.Messages[0].Signals, 1)
	assert.Equal(t, "RPM", d.Messages[0].Signals[0].Name)
}

func TestSignalBuilder_RequiresLength(t *testing.T) {
	_, err := NewDbcBuilder().
		Version("1.0").
		Nodes("ECM").
		AddMessage(
			NewMessage(1, "M").DLC(8).Sender("ECM").
				AddSignal(NewSignal("NoLength")),
		).
		Build()

	require.Error(t, err)
	var expected *ExpectedError
	assert.ErrorAs(t, err, &expected)
}

func TestMessageBuilder_RequiresName(t *testing.T) {
	_, err := NewDbcBuilder().
		Version("1.0").
		Nodes("ECM").
		AddMessage(NewMessage(1, "").DLC(8).Sender("ECM")).
		Build()

	require.Error(t, err)
	var expected *ExpectedError
	assert.ErrorAs(t, err, &expected)
}

func TestDbcBuilder_ExtendedMessage(t *testing.T) {
	d, err := NewDbcBuilder().
		Version("1.0").
		Nodes("ECM").
		AddMessage(NewMessage(0x123, "ExtMsg").Extended().DLC(8).Sender("ECM")).
		Build()

	require.NoError(t, err)
	assert.True(t, dbc.IsExtendedID(d.Messages[0].ID))
	assert.Equal(t, uint32(0x123), dbc.ExternalID(d.Messages[0].ID))
}

func TestFromDbc_RoundTrips(t *testing.T) {
	original, err := NewDbcBuilder().
		Version("2.0").
		Nodes("ECM", "TCU").
		AddMessage(
			NewMessage(1, "M1").DLC(8).Sender("ECM").
				AddSignal(NewSignal("S1").StartBit(0).Length(8).Unsigned().Factor(1).Receivers("TCU")),
		).
		Build()
	require.NoError(t, err)

	rebuilt, err := FromDbc(original).Version("2.1").Build()
	require.NoError(t, err)

	assert.Equal(t, dbc.Version("2.1"), rebuilt.Version)
	require.Len(t, rebuilt.Messages, 1)
	assert.Equal(t, "M1", rebuilt.Messages[0].Name)
	require.Len(t, rebuilt.Messages[0].Signals, 1)
	assert.Equal(t, "S1", rebuilt.Messages[0].Signals[0].Name)
	assert.Equal(t, []string{"TCU"}, rebuilt.Messages[0].Signals[0].Receivers.Names())
}
