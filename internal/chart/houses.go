package chart

import (
	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// HouseCusp is the start of one house.
type HouseCusp struct {
	Number int `json:"number"`
	Point
}

// HouseOf returns the house (1..12) whose cusp interval contains lon. Each
// interval runs from a cusp up to, but not including, the next cusp and may
// wrap through 0°. If the cusps are degenerate the house is counted by whole
// signs from the first cusp.
func HouseOf(cusps [ephemeris.HouseCount]float64, lon float64) int {
	for i := range cusps {
		next := cusps[(i+1)%ephemeris.HouseCount]
		span := zodiac.Arc(cusps[i], next)
		if span == 0 {
			continue
		}
		if zodiac.Arc(cusps[i], lon) < span {
			return i + 1
		}
	}
	return zodiac.SignOf(cusps[0]).Distance(zodiac.SignOf(lon)) + 1
}

// WholeSignHouses returns houses whose cusps sit at the start of each sign,
// beginning with the sign that contains the ascendant.
func WholeSignHouses(ascendant float64) ephemeris.Houses {
	h := ephemeris.Houses{Ascendant: zodiac.Normalize(ascendant)}
	first := zodiac.SignOf(ascendant)
	for i := range h.Cusps {
		h.Cusps[i] = first.Add(i).Start()
	}
	h.Midheaven = h.Cusps[9]
	return h
}

// Bhava summarizes one house: its cusp, the lord of the cusp sign, and the
// bodies placed in it.
type Bhava struct {
	Number    int           `json:"number"`
	Cusp      Point         `json:"cusp"`
	Lord      zodiac.Body   `json:"lord"`
	Occupants []zodiac.Body `json:"occupants"`
}
