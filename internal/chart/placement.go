package chart

import "github.com/papapumpkin/graha/internal/zodiac"

// Point is a longitude resolved into its zodiacal categories.
type Point struct {
	Longitude float64          `json:"longitude"`
	Sign      zodiac.Sign      `json:"sign"`
	Degree    float64          `json:"degree"`
	Nakshatra zodiac.Nakshatra `json:"nakshatra"`
	Pada      int              `json:"pada"`
}

// ResolvePoint normalizes lon and derives its sign, degree, constellation and
// pada.
func ResolvePoint(lon float64) Point {
	lon = zodiac.Normalize(lon)
	nak, pada := zodiac.ConstellationOf(lon)
	return Point{
		Longitude: lon,
		Sign:      zodiac.SignOf(lon),
		Degree:    zodiac.DegreeInSign(lon),
		Nakshatra: nak,
		Pada:      pada,
	}
}

// Placement is one body's resolved position in a chart.
type Placement struct {
	Body zodiac.Body `json:"body"`
	Point
	Latitude       float64 `json:"latitude"`
	Distance       float64 `json:"distance"`
	SpeedLongitude float64 `json:"speed_longitude"`
	SpeedLatitude  float64 `json:"speed_latitude"`
	SpeedDistance  float64 `json:"speed_distance"`
	House          int     `json:"house"`
	Retrograde     bool    `json:"retrograde"`
}

// NewPlacement resolves a raw observation into a placement in the given house.
func NewPlacement(body zodiac.Body, pos zodiac.Position, house int) Placement {
	return Placement{
		Body:           body,
		Point:          ResolvePoint(pos.Longitude),
		Latitude:       pos.Latitude,
		Distance:       pos.Distance,
		SpeedLongitude: pos.SpeedLongitude,
		SpeedLatitude:  pos.SpeedLatitude,
		SpeedDistance:  pos.SpeedDistance,
		House:          house,
		Retrograde:     pos.Retrograde(),
	}
}

// Position returns the raw observation the placement was resolved from.
func (p Placement) Position() zodiac.Position {
	return zodiac.Position{
		Longitude:      p.Longitude,
		Latitude:       p.Latitude,
		Distance:       p.Distance,
		SpeedLongitude: p.SpeedLongitude,
		SpeedLatitude:  p.SpeedLatitude,
		SpeedDistance:  p.SpeedDistance,
	}
}
