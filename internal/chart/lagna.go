package chart

import (
	"github.com/papapumpkin/graha/internal/zodiac"
)

// SpecialLagna is a derived rising point computed from the ascendant, the
// Sun and the Moon.
type SpecialLagna struct {
	Name string `json:"name"`
	Point
}

// lagnaFormulas maps each special lagna to its longitude in terms of the
// ascendant, Sun and Moon. Results are normalized by the caller.
var lagnaFormulas = []struct {
	name string
	lon  func(asc, sun, moon float64) float64
}{
	{"bhava", func(asc, _, _ float64) float64 { return asc }},
	{"hora", func(asc, sun, moon float64) float64 { return asc + (sun - moon) }},
	{"ghati", func(asc, sun, _ float64) float64 { return asc + 15*(sun-asc)/360 }},
	{"vighati", func(asc, sun, _ float64) float64 { return asc + 4*(sun-asc)/360 }},
	{"pravesa", func(asc, sun, _ float64) float64 { return asc + 3*(sun-asc)/360 }},
	{"sree", func(asc, sun, moon float64) float64 { return moon + (asc - sun) }},
	{"indu", func(_, sun, moon float64) float64 { return moon + (moon - sun) }},
	{"nirayana", func(asc, sun, moon float64) float64 { return asc + (moon - sun) }},
	{"tri", func(asc, _, _ float64) float64 { return 3 * asc }},
	{"kala", func(asc, sun, moon float64) float64 { return sun + (moon - asc) }},
	{"varnada", func(asc, sun, moon float64) float64 { return asc + 2*(sun-moon) }},
	{"pada", func(asc, sun, moon float64) float64 { return asc + (sun-moon)/3 }},
	{"arka", func(asc, sun, moon float64) float64 { return sun + (asc - moon) }},
	{"sudasa", func(asc, _, _ float64) float64 { return 10 * asc }},
	{"sudarsa", func(asc, _, _ float64) float64 { return 11 * asc }},
	{"yogardha", func(asc, _, moon float64) float64 { return (asc + moon) / 2 }},
}

// SpecialLagnas returns the derived rising points of c in a fixed order.
// The Sun and Moon must be placed.
func (c *Chart) SpecialLagnas() ([]SpecialLagna, error) {
	lights, err := c.Lookup(zodiac.Sun, zodiac.Moon)
	if err != nil {
		return nil, err
	}
	asc, sun, moon := c.ascendant.Longitude, lights[0].Longitude, lights[1].Longitude

	out := make([]SpecialLagna, len(lagnaFormulas))
	for i, f := range lagnaFormulas {
		out[i] = SpecialLagna{Name: f.name, Point: ResolvePoint(f.lon(asc, sun, moon))}
	}
	return out, nil
}
