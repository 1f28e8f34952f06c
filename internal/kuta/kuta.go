// Package kuta scores the compatibility of two charts with the eight-factor,
// 36-point ashtakoota system.
package kuta

import (
	"errors"
	"fmt"
	"slices"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// MaxPoints is the highest possible total.
const MaxPoints = 36

// ErrInvalidProfile indicates a profile holds an out-of-range sign or
// nakshatra.
var ErrInvalidProfile = errors.New("invalid kuta profile")

// Profile holds the categorical values the factors compare.
type Profile struct {
	Ascendant     zodiac.Sign      `json:"ascendant"`
	MoonSign      zodiac.Sign      `json:"moon_sign"`
	MoonNakshatra zodiac.Nakshatra `json:"moon_nakshatra"`
}

// Validate reports whether every field is in range.
func (p Profile) Validate() error {
	switch {
	case !p.Ascendant.Valid():
		return fmt.Errorf("%w: ascendant %d", ErrInvalidProfile, p.Ascendant)
	case !p.MoonSign.Valid():
		return fmt.Errorf("%w: moon sign %d", ErrInvalidProfile, p.MoonSign)
	case !p.MoonNakshatra.Valid():
		return fmt.Errorf("%w: moon nakshatra %d", ErrInvalidProfile, p.MoonNakshatra)
	}
	return nil
}

// ProfileOf extracts a Profile from c.
func ProfileOf(c *chart.Chart) (Profile, error) {
	moon, err := c.Placement(zodiac.Moon)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Ascendant:     c.Ascendant().Sign,
		MoonSign:      moon.Sign,
		MoonNakshatra: moon.Nakshatra,
	}, nil
}

// Factor is one of the eight sub-scores.
type Factor struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}

// Result is the outcome of scoring two charts.
type Result struct {
	Factors    []Factor `json:"factors"`
	Total      int      `json:"total"`
	Max        int      `json:"max"`
	Percentage float64  `json:"percentage"`
}

type factor struct {
	name  string
	max   int
	score func(a, b Profile) int
}

var factors = []factor{
	{"varna", 1, scoreVarna},
	{"vasya", 2, scoreVasya},
	{"tara", 3, scoreTara},
	{"yoni", 4, scoreYoni},
	{"graha_maitri", 5, scoreMaitri},
	{"gana", 6, scoreGana},
	{"bhakut", 7, scoreBhakut},
	{"nadi", 8, scoreNadi},
}

// Score compares two charts. Both must carry a Moon placement.
func Score(a, b *chart.Chart) (Result, error) {
	pa, err := ProfileOf(a)
	if err != nil {
		return Result{}, err
	}
	pb, err := ProfileOf(b)
	if err != nil {
		return Result{}, err
	}
	return ScoreProfiles(pa, pb)
}

// ScoreProfiles compares two profiles. Both must pass Validate.
func ScoreProfiles(a, b Profile) (Result, error) {
	if err := a.Validate(); err != nil {
		return Result{}, err
	}
	if err := b.Validate(); err != nil {
		return Result{}, err
	}
	r := Result{Max: MaxPoints, Factors: make([]Factor, len(factors))}
	for i, f := range factors {
		pts := f.score(a, b)
		r.Factors[i] = Factor{Name: f.name, Points: pts, Max: f.max}
		r.Total += pts
	}
	r.Percentage = float64(r.Total) / MaxPoints * 100
	return r, nil
}

func award(ok bool, pts int) int {
	if ok {
		return pts
	}
	return 0
}

func scoreVarna(a, b Profile) int {
	return award(varna[a.Ascendant] >= varna[b.Ascendant], 1)
}

func scoreVasya(a, b Profile) int {
	return award(vasyaGroup[a.Ascendant] == vasyaGroup[b.Ascendant], 2)
}

// scoreTara counts constellations from a's Moon to b's Moon in groups of
// three; odd groups are auspicious.
func scoreTara(a, b Profile) int {
	dist := ((int(b.MoonNakshatra)-int(a.MoonNakshatra))%zodiac.NakshatraCount + zodiac.NakshatraCount) % zodiac.NakshatraCount
	return award((dist/3)%2 == 1, 3)
}

func scoreYoni(a, b Profile) int {
	ya, yb := yoni[a.MoonNakshatra], yoni[b.MoonNakshatra]
	switch {
	case ya == yb:
		return 4
	case yoniPairs[[2]Yoni{ya, yb}] || yoniPairs[[2]Yoni{yb, ya}]:
		return 2
	default:
		return 0
	}
}

func scoreMaitri(a, b Profile) int {
	switch RelationBetween(a.MoonSign.Lord(), b.MoonSign.Lord()) {
	case Friend:
		return 5
	case Neutral:
		return 3
	default:
		return 0
	}
}

// RelationBetween returns the closer of the two planets' views of each
// other. Neither table lists a planet against itself, so identical lords
// fall through to Enemy.
func RelationBetween(x, y zodiac.Body) Relation {
	switch {
	case slices.Contains(friends[x], y) || slices.Contains(friends[y], x):
		return Friend
	case slices.Contains(neutrals[x], y) || slices.Contains(neutrals[y], x):
		return Neutral
	default:
		return Enemy
	}
}

func scoreGana(a, b Profile) int {
	return award(ganaMatch[[2]Gana{gana[a.Ascendant], gana[b.Ascendant]}], 6)
}

func scoreBhakut(a, b Profile) int {
	return award(bhakutDistances[a.Ascendant.Distance(b.Ascendant)], 7)
}

func scoreNadi(a, b Profile) int {
	return award(nadi[a.Ascendant] != nadi[b.Ascendant], 8)
}

// YoniOf returns the animal symbol of n.
func YoniOf(n zodiac.Nakshatra) Yoni {
	return yoni[n]
}
