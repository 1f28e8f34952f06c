package strength

import (
	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/dignity"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// combustionOrb is how close to the Sun each body must be to count as
// combust, in degrees. The Sun and the nodes are never combust.
var combustionOrb = map[zodiac.Body]float64{
	zodiac.Moon:    12,
	zodiac.Mars:    17,
	zodiac.Mercury: 14,
	zodiac.Jupiter: 11,
	zodiac.Venus:   10,
	zodiac.Saturn:  15,
}

// IsCombust reports whether p lies within its combustion orb of sun.
func IsCombust(sun, p chart.Placement) bool {
	orb, ok := combustionOrb[p.Body]
	return ok && zodiac.Separation(sun.Longitude, p.Longitude) <= orb
}

// Reasons a body is considered weak.
const (
	ReasonRetrograde  = "retrograde"
	ReasonDebilitated = "debilitated"
	ReasonCombust     = "combust"
)

// Remedy is the practice suggested for one weak body.
type Remedy struct {
	Body        zodiac.Body `json:"body"`
	Reasons     []string    `json:"reasons"`
	Description string      `json:"description"`
	Gemstone    string      `json:"gemstone"`
}

var remedies = [zodiac.BodyCount]struct{ description, gemstone string }{
	zodiac.Sun:     {"Offer water to the Sun every morning", "Ruby"},
	zodiac.Moon:    {"Wear white clothes on Mondays", "Pearl"},
	zodiac.Mars:    {"Recite the Mars mantra on Tuesdays", "Red Coral"},
	zodiac.Mercury: {"Feed green vegetables to cows on Wednesdays", "Emerald"},
	zodiac.Jupiter: {"Donate yellow items on Thursdays", "Yellow Sapphire"},
	zodiac.Venus:   {"Offer white flowers on Fridays", "Diamond"},
	zodiac.Saturn:  {"Feed black sesame seeds to birds on Saturdays", "Blue Sapphire"},
	zodiac.Rahu:    {"Donate to orphanages on Saturdays", "Hessonite"},
	zodiac.Ketu:    {"Perform fire rituals on Tuesdays", "Cat's Eye"},
}

// GeneralRemedies are suggested for every chart.
func GeneralRemedies() []string {
	return []string{
		"Practice meditation daily",
		"Perform charity on Saturdays",
	}
}

// Remedies returns a remedy for every weak body of c, in body order. A body
// is weak when it is retrograde, in its debilitation sign or combust.
func Remedies(c *chart.Chart) ([]Remedy, error) {
	placements, err := c.Lookup(zodiac.Bodies[:]...)
	if err != nil {
		return nil, err
	}
	sun := placements[zodiac.Sun]

	var out []Remedy
	for _, p := range placements {
		a, err := dignity.Assess(p)
		if err != nil {
			return nil, err
		}
		var reasons []string
		if p.Retrograde {
			reasons = append(reasons, ReasonRetrograde)
		}
		if a.Debilitated {
			reasons = append(reasons, ReasonDebilitated)
		}
		if IsCombust(sun, p) {
			reasons = append(reasons, ReasonCombust)
		}
		if len(reasons) == 0 {
			continue
		}
		r := remedies[p.Body]
		out = append(out, Remedy{Body: p.Body, Reasons: reasons, Description: r.description, Gemstone: r.gemstone})
	}
	return out, nil
}
