// Package dignity classifies how well placed a body is in its sign.
package dignity

import (
	"fmt"
	"math"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// State is the single dignity label assigned to a placement.
type State string

// Dignity states, in classification precedence order after the retrograde
// override.
const (
	DeepExaltation   State = "deep_exaltation"
	Exalted          State = "exalted"
	DeepDebilitation State = "deep_debilitation"
	Debilitated      State = "debilitated"
	OwnSign          State = "own_sign"
	Benefic          State = "benefic"
	Malefic          State = "malefic"
	Retrograde       State = "retrograde"
)

// DeepOrb is how close, in degrees, a body must be to its exact exaltation
// or debilitation degree to count as deep.
const DeepOrb = 1.0

// Point is an exact zodiacal degree inside a sign.
type Point struct {
	Sign   zodiac.Sign
	Degree float64
}

// exaltation lists each body's exaltation sign and exact degree. Debilitation
// is the opposite sign at the same degree.
var exaltation = [zodiac.BodyCount]Point{
	zodiac.Sun:     {zodiac.Aries, 10},
	zodiac.Moon:    {zodiac.Taurus, 3},
	zodiac.Mars:    {zodiac.Capricorn, 28},
	zodiac.Mercury: {zodiac.Virgo, 15},
	zodiac.Jupiter: {zodiac.Cancer, 5},
	zodiac.Venus:   {zodiac.Pisces, 27},
	zodiac.Saturn:  {zodiac.Libra, 20},
	zodiac.Rahu:    {zodiac.Gemini, 20},
	zodiac.Ketu:    {zodiac.Sagittarius, 20},
}

// ownSigns lists the signs each body rules. The nodes borrow Mercury's and
// Jupiter's signs.
var ownSigns = [zodiac.BodyCount][]zodiac.Sign{
	zodiac.Sun:     {zodiac.Leo},
	zodiac.Moon:    {zodiac.Cancer},
	zodiac.Mars:    {zodiac.Aries, zodiac.Scorpio},
	zodiac.Mercury: {zodiac.Gemini, zodiac.Virgo},
	zodiac.Jupiter: {zodiac.Sagittarius, zodiac.Pisces},
	zodiac.Venus:   {zodiac.Taurus, zodiac.Libra},
	zodiac.Saturn:  {zodiac.Capricorn, zodiac.Aquarius},
	zodiac.Rahu:    {zodiac.Gemini, zodiac.Virgo},
	zodiac.Ketu:    {zodiac.Sagittarius, zodiac.Pisces},
}

// moolatrikona lists the root-trine sign of each classical body. The nodes
// have none.
var moolatrikona = map[zodiac.Body]zodiac.Sign{
	zodiac.Sun:     zodiac.Leo,
	zodiac.Moon:    zodiac.Taurus,
	zodiac.Mars:    zodiac.Aries,
	zodiac.Mercury: zodiac.Virgo,
	zodiac.Jupiter: zodiac.Sagittarius,
	zodiac.Venus:   zodiac.Libra,
	zodiac.Saturn:  zodiac.Aquarius,
}

var benefic = [zodiac.BodyCount]bool{
	zodiac.Sun:     true,
	zodiac.Moon:    true,
	zodiac.Mercury: true,
	zodiac.Jupiter: true,
	zodiac.Venus:   true,
}

// Exaltation returns body's exaltation point.
func Exaltation(body zodiac.Body) Point {
	return exaltation[body]
}

// Debilitation returns body's debilitation point.
func Debilitation(body zodiac.Body) Point {
	ex := exaltation[body]
	return Point{Sign: ex.Sign.Add(6), Degree: ex.Degree}
}

// OwnSigns returns the signs body rules.
func OwnSigns(body zodiac.Body) []zodiac.Sign {
	return append([]zodiac.Sign(nil), ownSigns[body]...)
}

// IsBenefic reports whether body is naturally benefic.
func IsBenefic(body zodiac.Body) bool {
	return body.Valid() && benefic[body]
}

// Owns reports whether body rules sign.
func Owns(body zodiac.Body, sign zodiac.Sign) bool {
	for _, s := range ownSigns[body] {
		if s == sign {
			return true
		}
	}
	return false
}

// Classify returns the dignity of p. Rules are tried in order and the first
// match wins: deep exaltation, exaltation, deep debilitation, debilitation,
// own sign, then the natural benefic or malefic label. Retrograde motion
// overrides every other outcome.
func Classify(p chart.Placement) (State, error) {
	if !p.Body.Valid() {
		return "", fmt.Errorf("dignity: invalid body %d", int(p.Body))
	}
	if p.SpeedLongitude < 0 {
		return Retrograde, nil
	}

	ex := Exaltation(p.Body)
	deb := Debilitation(p.Body)
	switch {
	case p.Sign == ex.Sign && math.Abs(p.Degree-ex.Degree) < DeepOrb:
		return DeepExaltation, nil
	case p.Sign == ex.Sign:
		return Exalted, nil
	case p.Sign == deb.Sign && math.Abs(p.Degree-deb.Degree) < DeepOrb:
		return DeepDebilitation, nil
	case p.Sign == deb.Sign:
		return Debilitated, nil
	case Owns(p.Body, p.Sign):
		return OwnSign, nil
	case benefic[p.Body]:
		return Benefic, nil
	default:
		return Malefic, nil
	}
}

// Assessment holds independent dignity flags for one placement. Unlike
// Classify, several flags may be true at once.
type Assessment struct {
	Body         zodiac.Body `json:"body"`
	State        State       `json:"state"`
	Moolatrikona bool        `json:"moolatrikona"`
	OwnSign      bool        `json:"own_sign"`
	Exalted      bool        `json:"exalted"`
	Debilitated  bool        `json:"debilitated"`
	Retrograde   bool        `json:"retrograde"`
}

// Assess classifies p and records every dignity flag that applies.
func Assess(p chart.Placement) (Assessment, error) {
	state, err := Classify(p)
	if err != nil {
		return Assessment{}, err
	}
	mt, hasMT := moolatrikona[p.Body]
	return Assessment{
		Body:         p.Body,
		State:        state,
		Moolatrikona: hasMT && p.Sign == mt,
		OwnSign:      Owns(p.Body, p.Sign),
		Exalted:      p.Sign == Exaltation(p.Body).Sign,
		Debilitated:  p.Sign == Debilitation(p.Body).Sign,
		Retrograde:   p.Retrograde,
	}, nil
}

// AssessChart assesses all nine bodies of c, in body order.
func AssessChart(c *chart.Chart) ([]Assessment, error) {
	out := make([]Assessment, 0, zodiac.BodyCount)
	for _, body := range zodiac.Bodies {
		p, err := c.Placement(body)
		if err != nil {
			return nil, err
		}
		a, err := Assess(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
