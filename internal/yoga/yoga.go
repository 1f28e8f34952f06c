// Package yoga detects named planetary combinations in a chart. Each rule is
// an independent predicate over the whole chart; every rule is evaluated and
// every match is kept.
package yoga

import (
	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// DefaultOrb is the conjunction orb, in degrees, used when none is given.
const DefaultOrb = 10.0

// Match is one detected combination.
type Match struct {
	Name        string        `json:"name"`
	Weight      float64       `json:"weight"`
	Bodies      []zodiac.Body `json:"bodies"`
	Description string        `json:"description"`
}

// Detect evaluates every rule against c. All nine placements must be present.
// orb is the conjunction orb for separation-based rules; a non-positive orb
// selects DefaultOrb.
func Detect(c *chart.Chart, orb float64) ([]Match, error) {
	if orb <= 0 {
		orb = DefaultOrb
	}
	placements, err := c.Lookup(zodiac.Bodies[:]...)
	if err != nil {
		return nil, err
	}

	s := &state{orb: orb}
	copy(s.p[:], placements)

	var out []Match
	for _, r := range rules {
		bodies, ok := r.detect(s)
		if !ok {
			continue
		}
		out = append(out, Match{
			Name:        r.name,
			Weight:      r.weight,
			Bodies:      bodies,
			Description: r.description,
		})
	}
	return out, nil
}

// Names returns the name of every rule, in evaluation order.
func Names() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.name
	}
	return out
}

// state is the read-only view a rule evaluates.
type state struct {
	p   [zodiac.BodyCount]chart.Placement
	orb float64
}

func (s *state) house(b zodiac.Body) int {
	return s.p[b].House
}

// fromMoon returns the house count of b from the Moon, 1..12.
func (s *state) fromMoon(b zodiac.Body) int {
	return zodiac.HouseOffset(s.house(zodiac.Moon), s.house(b))
}

// within returns the bodies among candidates whose house count from the
// Moon is one of offsets.
func (s *state) within(candidates []zodiac.Body, offsets ...int) []zodiac.Body {
	var out []zodiac.Body
	for _, b := range candidates {
		for _, o := range offsets {
			if s.fromMoon(b) == o {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func inSet(n int, set ...int) bool {
	for _, v := range set {
		if n == v {
			return true
		}
	}
	return false
}

func isKendra(house int) bool {
	return inSet(house, 1, 4, 7, 10)
}

func isUpachaya(house int) bool {
	return inSet(house, 3, 6, 10, 11)
}
