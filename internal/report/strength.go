package report

import (
	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/strength"
)

// StrengthRow is one body's shadbala.
type StrengthRow struct {
	Body       string  `json:"body" toml:"body" yaml:"body"`
	Sthana     float64 `json:"sthana" toml:"sthana" yaml:"sthana"`
	Dig        float64 `json:"dig" toml:"dig" yaml:"dig"`
	Kala       float64 `json:"kala" toml:"kala" yaml:"kala"`
	Chesta     float64 `json:"chesta" toml:"chesta" yaml:"chesta"`
	Naisargika float64 `json:"naisargika" toml:"naisargika" yaml:"naisargika"`
	Drik       float64 `json:"drik" toml:"drik" yaml:"drik"`
	Total      float64 `json:"total" toml:"total" yaml:"total"`
}

func strengthRows(balas []strength.Bala) []StrengthRow {
	out := make([]StrengthRow, len(balas))
	for i, b := range balas {
		out[i] = StrengthRow{
			Body:       b.Body.String(),
			Sthana:     b.Sthana,
			Dig:        b.Dig,
			Kala:       b.Kala,
			Chesta:     b.Chesta,
			Naisargika: b.Naisargika,
			Drik:       b.Drik,
			Total:      b.Total,
		}
	}
	return out
}

// RemedySection lists remedies for weak bodies plus the general practices.
type RemedySection struct {
	Bodies  []RemedyRow `json:"bodies" toml:"bodies" yaml:"bodies"`
	General []string    `json:"general" toml:"general" yaml:"general"`
}

// RemedyRow is the remedy for one weak body.
type RemedyRow struct {
	Body        string   `json:"body" toml:"body" yaml:"body"`
	Reasons     []string `json:"reasons" toml:"reasons" yaml:"reasons"`
	Description string   `json:"description" toml:"description" yaml:"description"`
	Gemstone    string   `json:"gemstone" toml:"gemstone" yaml:"gemstone"`
}

func remedySection(remedies []strength.Remedy) RemedySection {
	sec := RemedySection{General: strength.GeneralRemedies()}
	for _, r := range remedies {
		sec.Bodies = append(sec.Bodies, RemedyRow{
			Body:        r.Body.String(),
			Reasons:     r.Reasons,
			Description: r.Description,
			Gemstone:    r.Gemstone,
		})
	}
	return sec
}

// LagnaRow is one special lagna.
type LagnaRow struct {
	Name     string `json:"name" toml:"name" yaml:"name"`
	PointRow `yaml:",inline"`
}

func lagnaRows(lagnas []chart.SpecialLagna) []LagnaRow {
	out := make([]LagnaRow, len(lagnas))
	for i, l := range lagnas {
		out[i] = LagnaRow{Name: l.Name, PointRow: pointRow(l.Point)}
	}
	return out
}
