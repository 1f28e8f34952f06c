// Package ui renders reports and status lines for the terminal.
package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/graha/internal/report"
)

// Printer writes rendered reports to out and status lines to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// New returns a Printer writing to stdout and stderr.
func New() *Printer {
	return NewWithWriters(os.Stdout, os.Stderr)
}

// NewWithWriters returns a Printer writing to the given writers.
func NewWithWriters(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut, now: time.Now}
}

// Report renders a full chart report.
func (p *Printer) Report(r *report.Report) {
	var b strings.Builder
	p.header(&b, r)
	p.placements(&b, "Rasi", r.Rasi)
	p.placements(&b, "Navamsa", r.Navamsa)
	p.houses(&b, r.Rasi)
	p.dasha(&b, r.Dasha, r.EvaluatedAt)
	p.yogas(&b, r.Yogas)
	p.aspects(&b, r.Aspects)
	p.strength(&b, r.Strength)
	p.remedies(&b, r.Remedies)
	p.lagnas(&b, r.SpecialLagnas)
	if r.Compatibility != nil {
		p.compatibility(&b, r.Compatibility)
	}
	fmt.Fprint(p.out, b.String())
}

// Pair renders both reports of a match.
func (p *Printer) Pair(pair *report.Pair) {
	p.Report(pair.Native)
	fmt.Fprintln(p.out)
	p.Report(pair.Partner)
}

// Timeline renders the dasha selection and, when present, every maha period
// with its antar periods.
func (p *Printer) Timeline(r *report.Report) {
	var b strings.Builder
	p.header(&b, r)
	p.dasha(&b, r.Dasha, r.EvaluatedAt)
	if len(r.Dasha.Timeline) > 0 {
		b.WriteString(styleSection.Render("Timeline") + "\n")
		for _, m := range r.Dasha.Timeline {
			b.WriteString(periodLine(m.PeriodRow, r.EvaluatedAt, "") + "\n")
			for _, a := range m.Antar {
				b.WriteString(periodLine(a, r.EvaluatedAt, "    ") + "\n")
			}
		}
	}
	fmt.Fprint(p.out, b.String())
}

// Valid reports a successfully validated observation file.
func (p *Printer) Valid(path, name string, at time.Time) {
	fmt.Fprintf(p.errOut, "%s %s %s\n",
		styleGood.Render(iconOK),
		styleValue.Render(path),
		styleMuted.Render(fmt.Sprintf("(%s, %s)", name, at.UTC().Format(time.RFC3339))))
}

// Invalid reports an observation file that failed validation.
func (p *Printer) Invalid(path string, err error) {
	fmt.Fprintf(p.errOut, "%s %s\n  %s\n",
		styleBad.Render(iconFailed),
		styleValue.Render(path),
		strings.ReplaceAll(err.Error(), "\n", "\n  "))
}

// Reloaded reports a watched file change.
func (p *Printer) Reloaded(name, kind string) {
	fmt.Fprintf(p.errOut, "%s %s %s\n",
		styleActive.Render(iconActive),
		styleValue.Render(name),
		styleMuted.Render(kind))
}

// Info prints a muted status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", styleMuted.Render(iconWaiting), msg)
}

// Error prints an error status line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", styleError.Render("error:"), msg)
}

func (p *Printer) header(b *strings.Builder, r *report.Report) {
	s := r.Subject
	lines := []string{
		styleTitle.Render(fmt.Sprintf("graha · %s", s.Name)),
		fmt.Sprintf("%s %s %s",
			styleLabel.Render("born"),
			styleValue.Render(s.Time.UTC().Format("2006-01-02 15:04 MST")),
			styleMuted.Render("("+humanize.RelTime(s.Time, p.now(), "ago", "from now")+")")),
		fmt.Sprintf("%s %s",
			styleLabel.Render("at"),
			styleValue.Render(formatCoords(s.Latitude, s.Longitude))),
	}
	frame := r.CoordinateSystem
	if r.Ayanamsa != 0 {
		frame += fmt.Sprintf(" · ayanamsa %.3f°", r.Ayanamsa)
	}
	frame += " · houses " + r.HouseSystem
	lines = append(lines,
		styleMuted.Render(frame),
		fmt.Sprintf("%s %s", styleLabel.Render("ascendant"), styleValue.Render(formatPoint(r.Rasi.Ascendant))),
	)
	b.WriteString(styleBox.Render(strings.Join(lines, "\n")) + "\n")
}

func (p *Printer) placements(b *strings.Builder, title string, sec report.ChartSection) {
	b.WriteString(styleSection.Render(title) + "\n")
	b.WriteString(styleLabel.Render(fmt.Sprintf("  %-8s %-12s %-7s %-18s %-6s %s", "body", "sign", "deg", "nakshatra", "house", "dignity")) + "\n")
	for _, row := range sec.Bodies {
		retro := " "
		if row.Retrograde {
			retro = styleRetro.Render(iconRetro)
		}
		fmt.Fprintf(b, "%s %s %s %s %s %s %s\n",
			retro,
			styleValue.Render(fmt.Sprintf("%-8s", row.Body)),
			styleValue.Render(fmt.Sprintf("%-12s", row.Sign)),
			styleValue.Render(fmt.Sprintf("%-7s", formatDegree(row.Degree))),
			styleMuted.Render(fmt.Sprintf("%-18s", fmt.Sprintf("%s %d", row.Nakshatra, row.Pada))),
			styleValue.Render(fmt.Sprintf("%-6s", humanize.Ordinal(row.House))),
			dignityStyle(row.Dignity).Render(dignityLabel(row)))
	}
}

func (p *Printer) houses(b *strings.Builder, sec report.ChartSection) {
	b.WriteString(styleSection.Render("Houses") + "\n")
	for _, h := range sec.Houses {
		occ := styleMuted.Render("empty")
		if len(h.Occupants) > 0 {
			occ = styleValue.Render(strings.Join(h.Occupants, ", "))
		}
		fmt.Fprintf(b, "  %s %s %s %s\n",
			styleLabel.Render(fmt.Sprintf("%-5s", humanize.Ordinal(h.Number))),
			styleValue.Render(fmt.Sprintf("%-12s", h.Cusp.Sign)),
			styleMuted.Render(fmt.Sprintf("lord %-8s", h.Lord)),
			occ)
	}
}

func (p *Printer) dasha(b *strings.Builder, d report.DashaSection, at time.Time) {
	b.WriteString(styleSection.Render("Vimshottari") + "\n")
	fmt.Fprintf(b, "  %s %s\n",
		styleLabel.Render("balance at birth"),
		styleValue.Render(fmt.Sprintf("%s %.2f years (%.0f%% traversed)", d.BalanceLord, d.BalanceYears, d.BalanceFraction*100)))
	for _, row := range []report.PeriodRow{d.Maha, d.Antar, d.Pratyantar} {
		b.WriteString(periodLine(row, at, "") + "\n")
	}
}

func periodLine(row report.PeriodRow, at time.Time, indent string) string {
	active := !at.Before(row.Start) && at.Before(row.End)
	marker, style := " ", styleValue
	if active {
		marker, style = styleActive.Render(iconActive), styleActive
	}
	return fmt.Sprintf("%s%s %s %s %s",
		indent,
		marker,
		style.Render(fmt.Sprintf("%-10s %-8s", row.Level, row.Lord)),
		styleValue.Render(fmt.Sprintf("%s → %s", row.Start.Format("2006-01-02"), row.End.Format("2006-01-02"))),
		styleMuted.Render(fmt.Sprintf("%.2fy, ends %s", row.Years, humanize.RelTime(row.End, at, "ago", "from now"))))
}

func (p *Printer) yogas(b *strings.Builder, yogas []report.YogaRow) {
	b.WriteString(styleSection.Render(fmt.Sprintf("Yogas (%d)", len(yogas))) + "\n")
	if len(yogas) == 0 {
		b.WriteString("  " + styleMuted.Render("none") + "\n")
		return
	}
	for _, y := range yogas {
		fmt.Fprintf(b, "  %s %s %s\n",
			styleActive.Render(fmt.Sprintf("%-18s", y.Name)),
			styleMuted.Render(fmt.Sprintf("%.2f", y.Weight)),
			styleValue.Render(strings.Join(y.Bodies, ", ")))
	}
}

func (p *Printer) aspects(b *strings.Builder, aspects []report.AspectRow) {
	b.WriteString(styleSection.Render(fmt.Sprintf("Aspects (%d)", len(aspects))) + "\n")
	for _, a := range aspects {
		fmt.Fprintf(b, "  %s %s %s\n",
			styleValue.Render(fmt.Sprintf("%-8s %-8s", a.A, a.B)),
			styleLabel.Render(fmt.Sprintf("%-12s", a.Kind)),
			styleMuted.Render(fmt.Sprintf("%.2f° (off %.2f°)", a.Separation, a.Deviation)))
	}
}

func (p *Printer) strength(b *strings.Builder, rows []report.StrengthRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(styleSection.Render("Shadbala") + "\n")
	for _, s := range rows {
		fmt.Fprintf(b, "  %s %s %s\n",
			styleValue.Render(fmt.Sprintf("%-8s", s.Body)),
			styleActive.Render(fmt.Sprintf("%5.0f", s.Total)),
			styleMuted.Render(fmt.Sprintf("sthana %.0f dig %.0f kala %.0f chesta %.0f naisargika %.0f drik %.0f",
				s.Sthana, s.Dig, s.Kala, s.Chesta, s.Naisargika, s.Drik)))
	}
}

func (p *Printer) remedies(b *strings.Builder, sec report.RemedySection) {
	if len(sec.Bodies) == 0 && len(sec.General) == 0 {
		return
	}
	b.WriteString(styleSection.Render("Remedies") + "\n")
	for _, r := range sec.Bodies {
		fmt.Fprintf(b, "  %s %s %s %s\n",
			styleValue.Render(fmt.Sprintf("%-8s", r.Body)),
			styleBad.Render(strings.Join(r.Reasons, ", ")),
			r.Description,
			styleMuted.Render("("+r.Gemstone+")"))
	}
	for _, g := range sec.General {
		b.WriteString("  " + styleMuted.Render(g) + "\n")
	}
}

func (p *Printer) lagnas(b *strings.Builder, rows []report.LagnaRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(styleSection.Render("Special lagnas") + "\n")
	for _, l := range rows {
		fmt.Fprintf(b, "  %s %s\n",
			styleLabel.Render(fmt.Sprintf("%-9s", l.Name)),
			styleValue.Render(formatPoint(l.PointRow)))
	}
}

func (p *Printer) compatibility(b *strings.Builder, c *report.Compatibility) {
	b.WriteString(styleSection.Render("Compatibility with "+c.Partner) + "\n")
	for _, f := range c.Factors {
		style := styleValue
		switch {
		case f.Points == f.Max:
			style = styleGood
		case f.Points == 0:
			style = styleBad
		}
		fmt.Fprintf(b, "  %s %s\n",
			styleLabel.Render(fmt.Sprintf("%-13s", f.Name)),
			style.Render(fmt.Sprintf("%d/%d", f.Points, f.Max)))
	}
	fmt.Fprintf(b, "  %s %s\n",
		styleLabel.Render(fmt.Sprintf("%-13s", "total")),
		styleActive.Render(fmt.Sprintf("%d/%d (%.1f%%)", c.Total, c.Max, c.Percentage)))
}

func dignityLabel(row report.BodyRow) string {
	label := strings.ReplaceAll(row.Dignity, "_", " ")
	if row.Moolatrikona {
		label += ", moolatrikona"
	}
	return label
}

// formatDegree renders decimal degrees as degrees and minutes.
func formatDegree(deg float64) string {
	d := math.Floor(deg)
	m := math.Round((deg - d) * 60)
	if m == 60 {
		d++
		m = 0
	}
	return fmt.Sprintf("%02.0f°%02.0f'", d, m)
}

func formatPoint(pt report.PointRow) string {
	return fmt.Sprintf("%s %s, %s %d", pt.Sign, formatDegree(pt.Degree), pt.Nakshatra, pt.Pada)
}

func formatCoords(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", lat, ns, lon, ew)
}
