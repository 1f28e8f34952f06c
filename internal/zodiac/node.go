package zodiac

// Position is a raw ecliptic observation of one body.
type Position struct {
	Longitude      float64 `json:"longitude" toml:"longitude"`
	Latitude       float64 `json:"latitude" toml:"latitude"`
	Distance       float64 `json:"distance" toml:"distance"`
	SpeedLongitude float64 `json:"speed_longitude" toml:"speed_longitude"`
	SpeedLatitude  float64 `json:"speed_latitude" toml:"speed_latitude"`
	SpeedDistance  float64 `json:"speed_distance" toml:"speed_distance"`
}

// Retrograde reports whether the body is moving backwards in longitude.
func (p Position) Retrograde() bool {
	return p.SpeedLongitude < 0
}

// DescendingNode derives Ketu from an observation of Rahu. The longitude is
// the exact opposite point and the latitude is mirrored. Distance and all
// speeds are carried over unchanged.
func DescendingNode(asc Position) Position {
	return Position{
		Longitude:      Normalize(asc.Longitude + 180),
		Latitude:       -asc.Latitude,
		Distance:       asc.Distance,
		SpeedLongitude: asc.SpeedLongitude,
		SpeedLatitude:  asc.SpeedLatitude,
		SpeedDistance:  asc.SpeedDistance,
	}
}
