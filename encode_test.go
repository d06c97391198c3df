package dbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInto_RoundTripsWithPhysical(t *testing.T) {
	tests := []struct {
		name   string
		signal Signal
	}{
		{
			name:   "unsigned scaled",
			signal: Signal{Name: "RPM", StartBit: 0, Length: 16, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 0.25, Min: 0, Max: 8000},
		},
		{
			name:   "signed with offset",
			signal: Signal{Name: "Temp", StartBit: 16, Length: 8, ByteOrder: LittleEndian, Factor: 1, Offset: -40, Min: -40, Max: 215},
		},
		{
			name:   "big endian signed",
			signal: Signal{Name: "Accel", StartBit: 7, Length: 16, ByteOrder: BigEndian, Factor: 0.01, Min: -327.68, Max: 327.67},
		},
		{
			name:   "float32 value type",
			signal: Signal{Name: "Flt", StartBit: 0, Length: 32, ByteOrder: LittleEndian, Factor: 1, ValueType: ValueTypeFloat32, Min: -1000, Max: 1000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := make([]byte, 8)
			physical := (tt.signal.Min + tt.signal.Max) / 4
			require.NoError(t, tt.signal.EncodeInto(physical, payload))

			raw, err := ExtractBits(payload, tt.signal.StartBit, tt.signal.Length, tt.signal.ByteOrder)
			require.NoError(t, err)
			got := tt.signal.Physical(raw)
			assert.InDelta(t, physical, got, tt.signal.Factor+0.01)
		})
	}
}

func TestEncodeInto_RangeCheck(t *testing.T) {
	s := Signal{Name: "Bounded", StartBit: 0, Length: 8, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 1, Min: 0, Max: 100}
	payload := make([]byte, 8)
	err := s.EncodeInto(200, payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestEncodeInto_OverflowCheck(t *testing.T) {
	s := Signal{Name: "Narrow", StartBit: 0, Length: 4, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 1, Min: 0, Max: 1000}
	payload := make([]byte, 8)
	err := s.EncodeInto(20, payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValueOverflow)
}

func TestEncodeInto_SignalBeyondPayload(t *testing.T) {
	s := Signal{Name: "OOB", StartBit: 0, Length: 16, ByteOrder: LittleEndian, IsUnsigned: true, Factor: 1, Min: 0, Max: 100}
	payload := make([]byte, 1)
	err := s.EncodeInto(1, payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSignalOutOfBounds)
}

func TestRangeUnboundedConvention(t *testing.T) {
	s := Signal{Name: "Unconstrained", StartBit: 0, Length: 16, ByteOrder: LittleEndian, Factor: 1}
	payload := make([]byte, 8)
	assert.NoError(t, s.EncodeInto(12345, payload))
}
