package dbc

import "math"

// EncodeInto writes a physical value into payload at this signal's bit
// position, performing range and overflow checks first (§4.6). payload
// must already be large enough to hold the message (callers typically pass
// a DLC-sized buffer); other bits are preserved (read-modify-write).
func (s Signal) EncodeInto(physical float64, payload []byte) error {
	if !s.rangeUnbounded() && (physical < s.Min || physical > s.Max) {
		return &EncodeError{Msg: "physical value out of [min,max] range", Err: ErrValueOutOfRange}
	}

	_, msb := s.BitRange()
	if len(payload)*8 <= int(msb) {
		return &EncodeError{Msg: "signal extends beyond destination payload", Err: ErrSignalOutOfBounds}
	}

	switch s.ValueType {
	case ValueTypeFloat32:
		return InsertBits(payload, s.StartBit, s.Length, s.ByteOrder, Float32Bits(scaleBack(physical, s)))
	case ValueTypeFloat64:
		return InsertBits(payload, s.StartBit, s.Length, s.ByteOrder, Float64Bits(scaleBack(physical, s)))
	default:
		raw, err := s.encodeRaw(physical)
		if err != nil {
			return err
		}
		return InsertBits(payload, s.StartBit, s.Length, s.ByteOrder, raw)
	}
}

// rangeUnbounded treats the conventional [0|0] declaration as "no range
// constraint", matching common DBC tooling rather than literally requiring
// physical == 0.
func (s Signal) rangeUnbounded() bool {
	return s.Min == 0 && s.Max == 0
}

func scaleBack(physical float64, s Signal) float64 {
	if s.Factor == 0 {
		return physical - s.Offset
	}
	return (physical - s.Offset) / s.Factor
}

// encodeRaw computes the two's-complement-masked raw integer for an
// Integer-valued signal, applying the overflow checks from §4.6 steps 2-4.
func (s Signal) encodeRaw(physical float64) (uint64, error) {
	scaled := scaleBack(physical, s)
	rounded := math.Round(scaled) // math.Round already rounds half away from zero

	if s.IsUnsigned {
		if rounded < 0 || rounded >= math.Exp2(float64(s.Length)) {
			return 0, &EncodeError{Msg: "raw value overflows unsigned signal width", Err: ErrValueOverflow}
		}
		return uint64(rounded), nil
	}

	limit := math.Exp2(float64(s.Length - 1))
	if rounded < -limit || rounded >= limit {
		return 0, &EncodeError{Msg: "raw value overflows signed signal width", Err: ErrValueOverflow}
	}
	raw := int64(rounded)
	mask := uint64(1)<<s.Length - 1
	return uint64(raw) & mask, nil
}

