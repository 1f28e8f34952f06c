// Package strength measures how strongly each body acts in a chart: a
// six-part positional score, combustion by the Sun, and the remedies
// suggested for bodies found weak.
package strength

import (
	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/yoga"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// Points awarded by the positional components.
const (
	Strong  = 60.0
	Average = 30.0
	Weak    = 15.0

	// AspectPoints is added once for every aspect a body takes part in.
	AspectPoints = 10.0
)

// Bala is one body's shadbala broken down by component.
type Bala struct {
	Body       zodiac.Body `json:"body"`
	Sthana     float64     `json:"sthana"`
	Dig        float64     `json:"dig"`
	Kala       float64     `json:"kala"`
	Chesta     float64     `json:"chesta"`
	Naisargika float64     `json:"naisargika"`
	Drik       float64     `json:"drik"`
	Total      float64     `json:"total"`
}

// digHouse is the house in which each body gains directional strength.
var digHouse = map[zodiac.Body]int{
	zodiac.Sun:     10,
	zodiac.Mars:    10,
	zodiac.Jupiter: 1,
	zodiac.Mercury: 1,
	zodiac.Moon:    4,
	zodiac.Venus:   4,
	zodiac.Saturn:  7,
}

// naisargika is the fixed natural strength of each body. The nodes have
// none.
var naisargika = [zodiac.BodyCount]float64{
	zodiac.Saturn:  60,
	zodiac.Jupiter: 50,
	zodiac.Mars:    40,
	zodiac.Sun:     30,
	zodiac.Venus:   20,
	zodiac.Mercury: 10,
}

// Shadbala scores every body of c in body order.
func Shadbala(c *chart.Chart) ([]Bala, error) {
	placements, err := c.Lookup(zodiac.Bodies[:]...)
	if err != nil {
		return nil, err
	}
	aspects, err := yoga.Aspects(c)
	if err != nil {
		return nil, err
	}
	involved := make(map[zodiac.Body]int, zodiac.BodyCount)
	for _, a := range aspects {
		involved[a.A]++
		involved[a.B]++
	}

	out := make([]Bala, len(placements))
	for i, p := range placements {
		b := Bala{
			Body:       p.Body,
			Sthana:     sthana(p.House),
			Dig:        Average,
			Kala:       Average,
			Chesta:     Average,
			Naisargika: naisargika[p.Body],
			Drik:       float64(involved[p.Body]) * AspectPoints,
		}
		if h, ok := digHouse[p.Body]; ok && h == p.House {
			b.Dig = Strong
		}
		if p.Retrograde {
			b.Kala = Strong
		}
		if p.SpeedLongitude > 1 {
			b.Chesta = Strong
		}
		b.Total = b.Sthana + b.Dig + b.Kala + b.Chesta + b.Naisargika + b.Drik
		out[i] = b
	}
	return out, nil
}

// sthana scores angular houses highest, succedent houses next and cadent
// houses lowest.
func sthana(house int) float64 {
	switch house {
	case 1, 4, 7, 10:
		return Strong
	case 2, 5, 8, 11:
		return Average
	default:
		return Weak
	}
}
