// Package chart holds the resolved chart model and assembles charts from an
// ephemeris oracle.
package chart

import (
	"fmt"

	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// Kind identifies which divisional chart a Chart represents.
type Kind string

const (
	// Rasi is the birth chart (D1).
	Rasi Kind = "rasi"
	// Navamsa is the ninth-harmonic chart (D9).
	Navamsa Kind = "navamsa"
)

// Chart is an immutable set of nine placements plus the ascendant and house
// cusps. The zero Chart has no placements and every lookup on it fails with
// a MissingPlacementError.
type Chart struct {
	kind       Kind
	ascendant  Point
	midheaven  Point
	cusps      [ephemeris.HouseCount]float64
	placements [zodiac.BodyCount]*Placement
}

// New resolves positions against houses into a chart. Every body must be
// present in positions.
func New(kind Kind, houses ephemeris.Houses, positions map[zodiac.Body]zodiac.Position) (*Chart, error) {
	c := &Chart{
		kind:      kind,
		ascendant: ResolvePoint(houses.Ascendant),
		midheaven: ResolvePoint(houses.Midheaven),
	}
	for i, cusp := range houses.Cusps {
		c.cusps[i] = zodiac.Normalize(cusp)
	}
	for _, body := range zodiac.Bodies {
		pos, ok := positions[body]
		if !ok {
			return nil, &MissingPlacementError{Body: body}
		}
		p := NewPlacement(body, pos, HouseOf(c.cusps, pos.Longitude))
		c.placements[body] = &p
	}
	return c, nil
}

// Kind returns the divisional chart kind.
func (c *Chart) Kind() Kind {
	return c.kind
}

// Ascendant returns the rising point.
func (c *Chart) Ascendant() Point {
	return c.ascendant
}

// Midheaven returns the culminating point.
func (c *Chart) Midheaven() Point {
	return c.midheaven
}

// Cusps returns the twelve house cusps.
func (c *Chart) Cusps() []HouseCusp {
	out := make([]HouseCusp, len(c.cusps))
	for i, lon := range c.cusps {
		out[i] = HouseCusp{Number: i + 1, Point: ResolvePoint(lon)}
	}
	return out
}

// Placement returns the placement of body.
func (c *Chart) Placement(body zodiac.Body) (Placement, error) {
	if !body.Valid() || c.placements[body] == nil {
		return Placement{}, &MissingPlacementError{Body: body}
	}
	return *c.placements[body], nil
}

// Placements returns every placement present, in body order.
func (c *Chart) Placements() []Placement {
	out := make([]Placement, 0, zodiac.BodyCount)
	for _, p := range c.placements {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Lookup returns placements for each of bodies, failing on the first absent
// one.
func (c *Chart) Lookup(bodies ...zodiac.Body) ([]Placement, error) {
	out := make([]Placement, len(bodies))
	for i, b := range bodies {
		p, err := c.Placement(b)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Occupants returns the bodies in house, in body order.
func (c *Chart) Occupants(house int) []zodiac.Body {
	var out []zodiac.Body
	for _, p := range c.placements {
		if p != nil && p.House == house {
			out = append(out, p.Body)
		}
	}
	return out
}

// Bhavas returns a summary of every house.
func (c *Chart) Bhavas() []Bhava {
	out := make([]Bhava, len(c.cusps))
	for i, lon := range c.cusps {
		cusp := ResolvePoint(lon)
		out[i] = Bhava{
			Number:    i + 1,
			Cusp:      cusp,
			Lord:      cusp.Sign.Lord(),
			Occupants: c.Occupants(i + 1),
		}
	}
	return out
}

// Houses returns the cusps and angles the chart was built from.
func (c *Chart) Houses() ephemeris.Houses {
	return ephemeris.Houses{
		Cusps:     c.cusps,
		Ascendant: c.ascendant.Longitude,
		Midheaven: c.midheaven.Longitude,
	}
}

func (c *Chart) String() string {
	return fmt.Sprintf("%s chart, ascendant %s %.2f°", c.kind, c.ascendant.Sign, c.ascendant.Degree)
}
