package chart

import (
	"github.com/papapumpkin/graha/internal/zodiac"
)

// NavamsaOf derives the D9 chart from a birth chart. Every longitude,
// including the ascendant, is mapped through zodiac.NavamsaLongitude and
// houses are counted by whole signs from the navamsa ascendant. Latitude,
// distance and speeds are carried over unchanged.
func NavamsaOf(rasi *Chart) (*Chart, error) {
	positions := make(map[zodiac.Body]zodiac.Position, zodiac.BodyCount)
	for _, body := range zodiac.Bodies {
		p, err := rasi.Placement(body)
		if err != nil {
			return nil, err
		}
		pos := p.Position()
		pos.Longitude = zodiac.NavamsaLongitude(pos.Longitude)
		positions[body] = pos
	}
	houses := WholeSignHouses(zodiac.NavamsaLongitude(rasi.Ascendant().Longitude))
	return New(Navamsa, houses, positions)
}
