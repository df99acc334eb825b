package binary

// FixedPoint converts a raw unsigned integer to a fixed-point value with
// the given number of fractional bits: value / 2^fracBits.
func FixedPoint(v uint64, fracBits uint) float64 {
	return float64(v) / float64(uint64(1)<<fracBits)
}

// Fixed88 converts an 8.8 fixed-point value (used for track volume).
func Fixed88(v uint16) float64 {
	return FixedPoint(uint64(v), 8)
}

// Fixed1616 converts a 16.16 fixed-point value (used for track width,
// height and sample rate).
func Fixed1616(v uint32) float64 {
	return FixedPoint(uint64(v), 16)
}
