package sigwav

import "math"

// DecodeSample converts a 16-bit wire sample to a normalized float32.
// The most negative code decodes to exactly -1; every other value is
// scaled by 1/32767, so a full-scale sample round-trips unchanged.
func DecodeSample(s int16) float32 {
	if s == math.MinInt16 {
		return -1
	}

	return float32(s) / math.MaxInt16
}

// EncodeSample converts a normalized float32 sample to its 16-bit wire
// representation, rounding half away from zero. Out of range input is
// clipped, not reported.
func EncodeSample(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := int(math.Round(float64(x) * math.MaxInt16))
	if v > math.MaxInt16 {
		v = math.MaxInt16
	} else if v < math.MinInt16 {
		v = math.MinInt16
	}

	return int16(v)
}
