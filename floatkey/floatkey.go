package floatkey

import "math"

const signBit = 0x80000000

// Encode maps a float32 to a uint32 whose unsigned order matches the numeric
// order of the float. Negative values have all bits flipped, everything else
// only has the sign bit flipped.
//
// NaNs go through the same transform: positive-sign NaNs land above +Inf,
// negative-sign NaNs below -Inf.
func Encode(f float32) uint32 {
	bits := math.Float32bits(f)
	if bits&signBit != 0 {
		return ^bits
	}
	return bits ^ signBit
}

// Decode reverses Encode.
func Decode(k uint32) float32 {
	if k&signBit != 0 {
		return math.Float32frombits(k ^ signBit)
	}
	return math.Float32frombits(^k)
}

// EncodeInto encodes src into dst. dst must be at least as long as src.
func EncodeInto(dst []uint32, src []float32) {
	dst = dst[:len(src)]
	for i, f := range src {
		dst[i] = Encode(f)
	}
}
