// Package dasha schedules Vimshottari rulership periods. A 120-year cycle of
// nine lords is anchored at birth by the Moon's constellation, and each
// period is divided proportionally into nine sub-periods, two levels deep.
package dasha

import (
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// ErrNoPeriods is returned when selecting from an empty sequence.
var ErrNoPeriods = errors.New("no periods to select from")

// TotalYears is the length of one full cycle.
const TotalYears = 120.0

// YearDays is the length of a dasha year in days.
const YearDays = 365.25

// Year is the length of a dasha year.
const Year = time.Duration(YearDays * 24 * float64(time.Hour))

// years is each lord's full allocation, indexed like zodiac.DashaLords.
var years = [zodiac.BodyCount]float64{7, 20, 6, 10, 7, 18, 16, 19, 17}

// Years returns lord's full allocation in years, or 0 for an invalid body.
func Years(lord zodiac.Body) float64 {
	if i := lordIndex(lord); i >= 0 {
		return years[i]
	}
	return 0
}

func lordIndex(lord zodiac.Body) int {
	for i, l := range zodiac.DashaLords {
		if l == lord {
			return i
		}
	}
	return -1
}

// Level is the depth of a period in the hierarchy.
type Level string

// Period levels, outermost first.
const (
	Maha       Level = "maha"
	Antar      Level = "antar"
	Pratyantar Level = "pratyantar"
)

// Child returns the level one step deeper, or "" below Pratyantar.
func (l Level) Child() Level {
	switch l {
	case Maha:
		return Antar
	case Antar:
		return Pratyantar
	default:
		return ""
	}
}

// Period is one lord's rule over the half-open interval [Start, End).
type Period struct {
	Lord  zodiac.Body `json:"lord"`
	Level Level       `json:"level"`
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
}

// Duration returns End - Start.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Years returns the duration in dasha years.
func (p Period) Years() float64 {
	return float64(p.Duration()) / float64(Year)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("%s %s %s → %s", p.Level, p.Lord,
		p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
}

// Balance describes the Moon's position within its constellation at birth.
type Balance struct {
	Lord     zodiac.Body `json:"lord"`
	Fraction float64     `json:"fraction"`
	Years    float64     `json:"years"`
}

// BalanceAt returns the lord of the constellation holding moonLon, how much
// of that constellation has been traversed, and the years of the lord's
// period left at that moment.
func BalanceAt(moonLon float64) Balance {
	nak, _ := zodiac.ConstellationOf(moonLon)
	lord := nak.Lord()
	frac := zodiac.ConstellationFraction(moonLon)
	return Balance{
		Lord:     lord,
		Fraction: frac,
		Years:    Years(lord) * (1 - frac),
	}
}

// Mahadashas returns the top-level sequence from birth. The first period is
// the balance remaining at birth; full periods follow in cyclic order until
// the sequence covers at least TotalYears.
func Mahadashas(birth time.Time, moonLon float64) []Period {
	bal := BalanceAt(moonLon)
	idx := lordIndex(bal.Lord)

	out := make([]Period, 0, zodiac.BodyCount+1)
	start := birth
	total := 0.0
	span := bal.Years
	for total < TotalYears {
		lord := zodiac.DashaLords[idx]
		total += span
		end := birth.Add(time.Duration(total * float64(Year)))
		if span > 0 {
			out = append(out, Period{Lord: lord, Level: Maha, Start: start, End: end})
		}
		start = end
		idx = (idx + 1) % zodiac.BodyCount
		span = years[idx]
	}
	return out
}

// Subdivide splits parent into nine children in the fixed lord order
// starting from Ketu. Each child lasts parent.Duration() × years/120. The
// last child ends exactly at parent.End. Pratyantar periods are not divided
// further and yield nil.
func Subdivide(parent Period) []Period {
	level := parent.Level.Child()
	if level == "" {
		return nil
	}

	d := float64(parent.Duration())
	out := make([]Period, zodiac.BodyCount)
	start := parent.Start
	cum := 0.0
	for i, lord := range zodiac.DashaLords {
		cum += years[i]
		end := parent.Start.Add(time.Duration(d * cum / TotalYears))
		if i == zodiac.BodyCount-1 {
			end = parent.End
		}
		out[i] = Period{Lord: lord, Level: level, Start: start, End: end}
		start = end
	}
	return out
}

// Select returns the first period containing at. When none does, the first
// period is returned.
func Select(periods []Period, at time.Time) (Period, error) {
	if len(periods) == 0 {
		return Period{}, ErrNoPeriods
	}
	for _, p := range periods {
		if p.Contains(at) {
			return p, nil
		}
	}
	return periods[0], nil
}

// Selection is the active period at each level.
type Selection struct {
	Balance    Balance `json:"balance"`
	Maha       Period  `json:"maha"`
	Antar      Period  `json:"antar"`
	Pratyantar Period  `json:"pratyantar"`
}

// Compute selects the maha, antar and pratyantar periods active at at for a
// native born at birth with the Moon at moonLon.
func Compute(birth time.Time, moonLon float64, at time.Time) (Selection, error) {
	maha, err := Select(Mahadashas(birth, moonLon), at)
	if err != nil {
		return Selection{}, fmt.Errorf("dasha: select maha: %w", err)
	}
	antar, err := Select(Subdivide(maha), at)
	if err != nil {
		return Selection{}, fmt.Errorf("dasha: select antar: %w", err)
	}
	praty, err := Select(Subdivide(antar), at)
	if err != nil {
		return Selection{}, fmt.Errorf("dasha: select pratyantar: %w", err)
	}
	return Selection{
		Balance:    BalanceAt(moonLon),
		Maha:       maha,
		Antar:      antar,
		Pratyantar: praty,
	}, nil
}

// ForChart runs Compute using the Moon of c.
func ForChart(c *chart.Chart, birth, at time.Time) (Selection, error) {
	moon, err := c.Placement(zodiac.Moon)
	if err != nil {
		return Selection{}, err
	}
	return Compute(birth, moon.Longitude, at)
}

// TimelineEntry is one maha period with its antar subdivision.
type TimelineEntry struct {
	Period
	Antar []Period `json:"antar"`
}

// Timeline returns every maha period from birth with its sub-periods.
func Timeline(birth time.Time, moonLon float64) []TimelineEntry {
	mahas := Mahadashas(birth, moonLon)
	out := make([]TimelineEntry, len(mahas))
	for i, m := range mahas {
		out[i] = TimelineEntry{Period: m, Antar: Subdivide(m)}
	}
	return out
}
