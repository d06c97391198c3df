package dbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBits_LittleEndian(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		startBit uint16
		length   uint16
		expect   uint64
	}{
		{
			name:     "16 bit value spanning two bytes",
			data:     []byte{0x40, 0x1F, 0x5A, 0, 0, 0, 0, 0},
			startBit: 0,
			length:   16,
			expect:   0x1F40,
		},
		{
			name:     "8 bit value at byte offset",
			data:     []byte{0x40, 0x1F, 0x5A, 0, 0, 0, 0, 0},
			startBit: 16,
			length:   8,
			expect:   0x5A,
		},
		{
			name:     "single bit flag",
			data:     []byte{0b0000_0010},
			startBit: 1,
			length:   1,
			expect:   1,
		},
		{
			name:     "64 bit fills entire 8 byte payload",
			data:     []byte{1, 2, 3, 4, 5, 6, 7, 8},
			startBit: 0,
			length:   64,
			expect:   0x0807060504030201,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBits(tt.data, tt.startBit, tt.length, LittleEndian)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestExtractBits_BigEndian(t *testing.T) {
	given := []byte{0x01, 0x00, 0, 0, 0, 0, 0, 0}
	got, err := ExtractBits(given, 7, 16, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint64(256), got)
}

func TestExtractBits_OutOfRange(t *testing.T) {
	_, err := ExtractBits([]byte{0x00}, 0, 0, LittleEndian)
	assert.Error(t, err)

	_, err = ExtractBits([]byte{0x00}, 0, 65, LittleEndian)
	assert.Error(t, err)

	_, err = ExtractBits([]byte{0x00}, 8, 8, LittleEndian)
	assert.Error(t, err)
}

func TestInsertBits_RoundTripsWithExtract(t *testing.T) {
	tests := []struct {
		name      string
		order     ByteOrder
		startBit  uint16
		length    uint16
		value     uint64
		payloadLen int
	}{
		{"little endian 16 bit", LittleEndian, 0, 16, 0x1F40, 8},
		{"little endian single bit", LittleEndian, 3, 1, 1, 1},
		{"big endian 16 bit", BigEndian, 7, 16, 256, 8},
		{"big endian 11 bit can id style", BigEndian, 28, 11, 0x123, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := make([]byte, tt.payloadLen)
			require.NoError(t, InsertBits(payload, tt.startBit, tt.length, tt.order, tt.value))
			got, err := ExtractBits(payload, tt.startBit, tt.length, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestInsertBits_PreservesOtherBits(t *testing.T) {
	payload := []byte{0xFF, 0xFF}
	require.NoError(t, InsertBits(payload, 0, 4, LittleEndian, 0x0))
	assert.Equal(t, byte(0xF0), payload[0])
	assert.Equal(t, byte(0xFF), payload[1])
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		name   string
		raw    uint64
		length uint16
		expect int64
	}{
		{"positive fits unchanged", 0x0064, 16, 100},
		{"negative sign extends", 0xFF9C, 16, -100},
		{"negative single byte", 0x9C, 8, -100},
		{"64 bit passthrough", 0xFFFFFFFFFFFFFF9C, 64, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, SignExtend(tt.raw, tt.length))
		})
	}
}

func TestFloatBitsRoundTrip(t *testing.T) {
	v := 3.5
	assert.InDelta(t, v, Float32FromBits(Float32Bits(v)), 0.0001)
	assert.Equal(t, v, Float64FromBits(Float64Bits(v)))
}
