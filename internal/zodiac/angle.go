package zodiac

import "math"

// FullCircle is 360 degrees.
const FullCircle = 360.0

// Normalize maps any finite angle into [0, 360).
func Normalize(deg float64) float64 {
	n := math.Mod(math.Mod(deg, FullCircle)+FullCircle, FullCircle)
	// math.Mod of a tiny negative value can round back up to exactly 360.
	if n >= FullCircle {
		return 0
	}
	return n
}

// SignOf returns the sign containing lon. A longitude on a boundary belongs
// to the sign that starts there.
func SignOf(lon float64) Sign {
	return Sign(int(math.Floor(Normalize(lon)/SignSpan)) % SignCount)
}

// DegreeInSign returns the offset of lon from the start of its sign, in [0,30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(Normalize(lon), SignSpan)
}

// ConstellationOf returns the constellation containing lon and the pada
// (quarter, 1..4) within it.
func ConstellationOf(lon float64) (Nakshatra, int) {
	lon = Normalize(lon)
	idx := int(math.Floor(lon / NakshatraSpan))
	if idx >= NakshatraCount {
		idx = NakshatraCount - 1
	}
	offset := lon - float64(idx)*NakshatraSpan
	pada := int(math.Floor(offset/PadaSpan)) + 1
	pada = max(1, min(pada, 4))
	return Nakshatra(idx), pada
}

// ConstellationFraction returns how far lon has travelled through its
// constellation, in [0,1).
func ConstellationFraction(lon float64) float64 {
	lon = Normalize(lon)
	f := math.Mod(lon, NakshatraSpan) / NakshatraSpan
	if f >= 1 {
		return 0
	}
	return f
}

// Separation returns the shortest arc between two longitudes, in [0,180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > FullCircle/2 {
		d = FullCircle - d
	}
	return d
}

// Arc returns the forward distance travelled from a to b, in [0,360).
func Arc(a, b float64) float64 {
	return Normalize(b - a)
}

// NavamsaLongitude maps lon onto the ninth-harmonic (D9) zodiac. Each sign is
// split into nine 3°20′ parts and each part is stretched across a full sign.
func NavamsaLongitude(lon float64) float64 {
	return Normalize(Normalize(lon) * 9)
}

// HouseOffset counts houses forward from from to to, inclusive of the
// starting house, so the same house is 1 and the opposite house is 7.
func HouseOffset(from, to int) int {
	return ((to-from)%12+12)%12 + 1
}
