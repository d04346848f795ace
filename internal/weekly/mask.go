package weekly

// QA60 cloud bits of the Sentinel-2 bitmask band.
const (
	qa60CloudBit  = 1 << 10
	qa60CirrusBit = 1 << 11
)

// Scene classification values treated as contaminated: cloud shadow (3),
// cloud medium/high probability (8, 9) and snow (11).
var maskedSCL = map[int]struct{}{
	3:  {},
	8:  {},
	9:  {},
	11: {},
}

// CloudMasked reports whether a per-tank reduction must be dropped based
// on the scene's QA60 bitmask and SCL class.
func CloudMasked(qa60 uint32, scl int) bool {
	if qa60&qa60CloudBit != 0 || qa60&qa60CirrusBit != 0 {
		return true
	}
	_, masked := maskedSCL[scl]
	return masked
}
