package dbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastLookup_GetVariants(t *testing.T) {
	standard := Message{ID: 0x100, Name: "Std", DLC: 8, Sender: "ECM"}
	extended := Message{ID: 0x200 | ExtendedIDFlag, Name: "Ext", DLC: 8, Sender: "ECM"}
	d := mustNew(t, []Message{standard, extended}, DbcExtras{})

	f := NewFastLookup(d)

	got, ok := f.Get(0x100)
	require.True(t, ok)
	assert.Equal(t, "Std", got.Name)

	_, ok = f.Get(0x200)
	assert.False(t, ok)

	got, ok = f.GetExtended(0x200)
	require.True(t, ok)
	assert.Equal(t, "Ext", got.Name)

	got, ok = f.GetAny(0x100)
	require.True(t, ok)
	assert.Equal(t, "Std", got.Name)

	got, ok = f.GetAny(0x200)
	require.True(t, ok)
	assert.Equal(t, "Ext", got.Name)
}

func TestFastLookup_DecodeInto(t *testing.T) {
	msg := Message{
		ID: 256, Name: "Engine", DLC: 8, Sender: "ECM",
		Signals: []Signal{
			{Name: "RPM", StartBit: 0, Length: 16, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 0.25, Unit: "rpm"},
			{Name: "Temp", StartBit: 16, Length: 8, ByteOrder: LittleEndian, Factor: 1, Offset: -40, Unit: "°C"},
		},
	}
	d := mustNew(t, []Message{msg}, DbcExtras{})
	f := NewFastLookup(d)
	assert.Equal(t, 2, f.MaxSignals)
	assert.Equal(t, 2, f.TotalSignals)

	out := make([]float64, f.MaxSignals)
	n, ok := f.DecodeInto(256, []byte{0x40, 0x1F, 0x5A, 0, 0, 0, 0, 0}, out)
	require.True(t, ok)
	require.Equal(t, 2, n)
	assert.Equal(t, 2000.0, out[0])
	assert.Equal(t, 50.0, out[1])
}

func TestFastLookup_DecodeInto_UnknownID(t *testing.T) {
	d := mustNew(t, nil, DbcExtras{})
	f := NewFastLookup(d)
	_, ok := f.DecodeInto(999, []byte{0, 0, 0, 0, 0, 0, 0, 0}, make([]float64, 4))
	assert.False(t, ok)
}
