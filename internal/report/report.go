// Package report turns assembled charts and their derived analyses into a
// flat, serializable document.
package report

import (
	"time"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/dasha"
	"github.com/papapumpkin/graha/internal/dignity"
	"github.com/papapumpkin/graha/internal/kuta"
	"github.com/papapumpkin/graha/internal/yoga"
)

// Subject identifies the native a report is cast for.
type Subject struct {
	Name      string    `json:"name" toml:"name" yaml:"name"`
	Time      time.Time `json:"time" toml:"time" yaml:"time"`
	Latitude  float64   `json:"latitude" toml:"latitude" yaml:"latitude"`
	Longitude float64   `json:"longitude" toml:"longitude" yaml:"longitude"`
}

// Report is the complete analysis of one chart.
type Report struct {
	ID               string         `json:"id" toml:"id" yaml:"id"`
	GeneratedAt      time.Time      `json:"generated_at" toml:"generated_at" yaml:"generated_at"`
	EvaluatedAt      time.Time      `json:"evaluated_at" toml:"evaluated_at" yaml:"evaluated_at"`
	Subject          Subject        `json:"subject" toml:"subject" yaml:"subject"`
	CoordinateSystem string         `json:"coordinate_system" toml:"coordinate_system" yaml:"coordinate_system"`
	Ayanamsa         float64        `json:"ayanamsa" toml:"ayanamsa" yaml:"ayanamsa"`
	HouseSystem      string         `json:"house_system" toml:"house_system" yaml:"house_system"`
	Rasi             ChartSection   `json:"rasi" toml:"rasi" yaml:"rasi"`
	Navamsa          ChartSection   `json:"navamsa" toml:"navamsa" yaml:"navamsa"`
	Dasha            DashaSection   `json:"dasha" toml:"dasha" yaml:"dasha"`
	Yogas            []YogaRow      `json:"yogas" toml:"yogas" yaml:"yogas"`
	Aspects          []AspectRow    `json:"aspects" toml:"aspects" yaml:"aspects"`
	SpecialLagnas    []LagnaRow     `json:"special_lagnas" toml:"special_lagnas" yaml:"special_lagnas"`
	Strength         []StrengthRow  `json:"strength" toml:"strength" yaml:"strength"`
	Remedies         RemedySection  `json:"remedies" toml:"remedies" yaml:"remedies"`
	Compatibility    *Compatibility `json:"compatibility,omitempty" toml:"compatibility,omitempty" yaml:"compatibility,omitempty"`
}

// YogaNames lists the names of the detected yogas in report order.
func (r *Report) YogaNames() []string {
	out := make([]string, len(r.Yogas))
	for i, y := range r.Yogas {
		out[i] = y.Name
	}
	return out
}

// PointRow is a resolved longitude.
type PointRow struct {
	Longitude float64 `json:"longitude" toml:"longitude" yaml:"longitude"`
	Sign      string  `json:"sign" toml:"sign" yaml:"sign"`
	Degree    float64 `json:"degree" toml:"degree" yaml:"degree"`
	Nakshatra string  `json:"nakshatra" toml:"nakshatra" yaml:"nakshatra"`
	Pada      int     `json:"pada" toml:"pada" yaml:"pada"`
}

func pointRow(p chart.Point) PointRow {
	return PointRow{
		Longitude: p.Longitude,
		Sign:      p.Sign.String(),
		Degree:    p.Degree,
		Nakshatra: p.Nakshatra.String(),
		Pada:      p.Pada,
	}
}

// BodyRow is one placement with its dignity.
type BodyRow struct {
	Body           string  `json:"body" toml:"body" yaml:"body"`
	PointRow       `yaml:",inline"`
	House          int     `json:"house" toml:"house" yaml:"house"`
	SpeedLongitude float64 `json:"speed_longitude" toml:"speed_longitude" yaml:"speed_longitude"`
	Retrograde     bool    `json:"retrograde" toml:"retrograde" yaml:"retrograde"`
	Dignity        string  `json:"dignity" toml:"dignity" yaml:"dignity"`
	Moolatrikona   bool    `json:"moolatrikona" toml:"moolatrikona" yaml:"moolatrikona"`
	OwnSign        bool    `json:"own_sign" toml:"own_sign" yaml:"own_sign"`
}

// HouseRow is one bhava.
type HouseRow struct {
	Number    int      `json:"number" toml:"number" yaml:"number"`
	Cusp      PointRow `json:"cusp" toml:"cusp" yaml:"cusp"`
	Lord      string   `json:"lord" toml:"lord" yaml:"lord"`
	Occupants []string `json:"occupants" toml:"occupants" yaml:"occupants"`
}

// ChartSection is one divisional chart.
type ChartSection struct {
	Kind      string     `json:"kind" toml:"kind" yaml:"kind"`
	Ascendant PointRow   `json:"ascendant" toml:"ascendant" yaml:"ascendant"`
	Midheaven PointRow   `json:"midheaven" toml:"midheaven" yaml:"midheaven"`
	Bodies    []BodyRow  `json:"bodies" toml:"bodies" yaml:"bodies"`
	Houses    []HouseRow `json:"houses" toml:"houses" yaml:"houses"`
}

func chartSection(c *chart.Chart, assessments []dignity.Assessment) ChartSection {
	sec := ChartSection{
		Kind:      string(c.Kind()),
		Ascendant: pointRow(c.Ascendant()),
		Midheaven: pointRow(c.Midheaven()),
	}
	byBody := make(map[string]dignity.Assessment, len(assessments))
	for _, a := range assessments {
		byBody[a.Body.String()] = a
	}
	for _, p := range c.Placements() {
		row := BodyRow{
			Body:           p.Body.String(),
			PointRow:       pointRow(p.Point),
			House:          p.House,
			SpeedLongitude: p.SpeedLongitude,
			Retrograde:     p.Retrograde,
		}
		if a, ok := byBody[row.Body]; ok {
			row.Dignity = string(a.State)
			row.Moolatrikona = a.Moolatrikona
			row.OwnSign = a.OwnSign
		}
		sec.Bodies = append(sec.Bodies, row)
	}
	for _, b := range c.Bhavas() {
		occ := make([]string, len(b.Occupants))
		for i, o := range b.Occupants {
			occ[i] = o.String()
		}
		sec.Houses = append(sec.Houses, HouseRow{
			Number:    b.Number,
			Cusp:      pointRow(b.Cusp),
			Lord:      b.Lord.String(),
			Occupants: occ,
		})
	}
	return sec
}

// PeriodRow is one dasha period.
type PeriodRow struct {
	Lord  string    `json:"lord" toml:"lord" yaml:"lord"`
	Level string    `json:"level" toml:"level" yaml:"level"`
	Start time.Time `json:"start" toml:"start" yaml:"start"`
	End   time.Time `json:"end" toml:"end" yaml:"end"`
	Years float64   `json:"years" toml:"years" yaml:"years"`
}

func periodRow(p dasha.Period) PeriodRow {
	return PeriodRow{
		Lord:  p.Lord.String(),
		Level: string(p.Level),
		Start: p.Start,
		End:   p.End,
		Years: p.Years(),
	}
}

// TimelineRow is one maha period with its antar periods.
type TimelineRow struct {
	PeriodRow `yaml:",inline"`
	Antar     []PeriodRow `json:"antar" toml:"antar" yaml:"antar"`
}

// DashaSection holds the active periods and, when requested, the full
// timeline.
type DashaSection struct {
	BalanceLord     string        `json:"balance_lord" toml:"balance_lord" yaml:"balance_lord"`
	BalanceFraction float64       `json:"balance_fraction" toml:"balance_fraction" yaml:"balance_fraction"`
	BalanceYears    float64       `json:"balance_years" toml:"balance_years" yaml:"balance_years"`
	Maha            PeriodRow     `json:"maha" toml:"maha" yaml:"maha"`
	Antar           PeriodRow     `json:"antar" toml:"antar" yaml:"antar"`
	Pratyantar      PeriodRow     `json:"pratyantar" toml:"pratyantar" yaml:"pratyantar"`
	Timeline        []TimelineRow `json:"timeline,omitempty" toml:"timeline,omitempty" yaml:"timeline,omitempty"`
}

func dashaSection(sel dasha.Selection, timeline []dasha.TimelineEntry) DashaSection {
	sec := DashaSection{
		BalanceLord:     sel.Balance.Lord.String(),
		BalanceFraction: sel.Balance.Fraction,
		BalanceYears:    sel.Balance.Years,
		Maha:            periodRow(sel.Maha),
		Antar:           periodRow(sel.Antar),
		Pratyantar:      periodRow(sel.Pratyantar),
	}
	for _, e := range timeline {
		row := TimelineRow{PeriodRow: periodRow(e.Period)}
		for _, a := range e.Antar {
			row.Antar = append(row.Antar, periodRow(a))
		}
		sec.Timeline = append(sec.Timeline, row)
	}
	return sec
}

// YogaRow is one detected yoga.
type YogaRow struct {
	Name        string   `json:"name" toml:"name" yaml:"name"`
	Weight      float64  `json:"weight" toml:"weight" yaml:"weight"`
	Bodies      []string `json:"bodies" toml:"bodies" yaml:"bodies"`
	Description string   `json:"description" toml:"description" yaml:"description"`
}

func yogaRows(matches []yoga.Match) []YogaRow {
	out := make([]YogaRow, len(matches))
	for i, m := range matches {
		bodies := make([]string, len(m.Bodies))
		for j, b := range m.Bodies {
			bodies[j] = b.String()
		}
		out[i] = YogaRow{Name: m.Name, Weight: m.Weight, Bodies: bodies, Description: m.Description}
	}
	return out
}

// AspectRow is one aspect between two bodies.
type AspectRow struct {
	A          string  `json:"a" toml:"a" yaml:"a"`
	B          string  `json:"b" toml:"b" yaml:"b"`
	Kind       string  `json:"kind" toml:"kind" yaml:"kind"`
	Separation float64 `json:"separation" toml:"separation" yaml:"separation"`
	Deviation  float64 `json:"deviation" toml:"deviation" yaml:"deviation"`
}

func aspectRows(aspects []yoga.Aspect) []AspectRow {
	out := make([]AspectRow, len(aspects))
	for i, a := range aspects {
		out[i] = AspectRow{
			A:          a.A.String(),
			B:          a.B.String(),
			Kind:       string(a.Kind),
			Separation: a.Separation,
			Deviation:  a.Deviation,
		}
	}
	return out
}

// Compatibility is the kuta result against a partner chart.
type Compatibility struct {
	Partner    string      `json:"partner" toml:"partner" yaml:"partner"`
	Factors    []FactorRow `json:"factors" toml:"factors" yaml:"factors"`
	Total      int         `json:"total" toml:"total" yaml:"total"`
	Max        int         `json:"max" toml:"max" yaml:"max"`
	Percentage float64     `json:"percentage" toml:"percentage" yaml:"percentage"`
}

// FactorRow is one kuta sub-score.
type FactorRow struct {
	Name   string `json:"name" toml:"name" yaml:"name"`
	Points int    `json:"points" toml:"points" yaml:"points"`
	Max    int    `json:"max" toml:"max" yaml:"max"`
}

func compatibility(partner string, res kuta.Result) *Compatibility {
	c := &Compatibility{
		Partner:    partner,
		Total:      res.Total,
		Max:        res.Max,
		Percentage: res.Percentage,
	}
	for _, f := range res.Factors {
		c.Factors = append(c.Factors, FactorRow{Name: f.Name, Points: f.Points, Max: f.Max})
	}
	return c
}
