package yoga

import (
	"math"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// AspectKind names an angular relationship between two bodies.
type AspectKind string

// The five major aspects.
const (
	Conjunction AspectKind = "conjunction"
	Sextile     AspectKind = "sextile"
	Square      AspectKind = "square"
	Trine       AspectKind = "trine"
	Opposition  AspectKind = "opposition"
)

// aspectWindows gives each aspect's exact angle and allowed deviation.
var aspectWindows = []struct {
	kind  AspectKind
	angle float64
	orb   float64
}{
	{Conjunction, 0, 10},
	{Sextile, 60, 5},
	{Square, 90, 5},
	{Trine, 120, 5},
	{Opposition, 180, 10},
}

// Aspect is an angular relationship between two placements.
type Aspect struct {
	A          zodiac.Body `json:"a"`
	B          zodiac.Body `json:"b"`
	Kind       AspectKind  `json:"kind"`
	Separation float64     `json:"separation"`
	Deviation  float64     `json:"deviation"`
}

// Aspects returns every aspect between pairs of bodies in c, in body order.
// The nodes are always opposed and that pair is skipped.
func Aspects(c *chart.Chart) ([]Aspect, error) {
	placements, err := c.Lookup(zodiac.Bodies[:]...)
	if err != nil {
		return nil, err
	}

	var out []Aspect
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if a.Body.Node() && b.Body.Node() {
				continue
			}
			sep := zodiac.Separation(a.Longitude, b.Longitude)
			for _, w := range aspectWindows {
				dev := math.Abs(sep - w.angle)
				if dev <= w.orb {
					out = append(out, Aspect{A: a.Body, B: b.Body, Kind: w.kind, Separation: sep, Deviation: dev})
					break
				}
			}
		}
	}
	return out, nil
}
