// Package zodiac resolves ecliptic longitudes into signs, lunar constellations
// and padas, and holds the fixed rulership tables that every other package
// shares.
package zodiac

import (
	"fmt"
	"strings"
)

// Body is one of the nine chart bodies.
type Body int

// The nine bodies in their conventional weekday-then-node order.
const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// BodyCount is the number of bodies in every chart.
const BodyCount = 9

// Bodies lists every body in declaration order.
var Bodies = [BodyCount]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// ObservedBodies are the bodies queried from an ephemeris. Ketu is absent
// because it is always derived from Rahu.
var ObservedBodies = [BodyCount - 1]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu}

var bodyNames = [BodyCount]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

// Valid reports whether b is one of the nine known bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Ketu
}

// Node reports whether b is one of the lunar nodes.
func (b Body) Node() bool {
	return b == Rahu || b == Ketu
}

func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// MarshalText encodes the body by name.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("zodiac: invalid body %d", int(b))
	}
	return []byte(bodyNames[b]), nil
}

// UnmarshalText decodes a body name, case-insensitively.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody returns the body with the given name. Matching ignores case and
// surrounding whitespace.
func ParseBody(name string) (Body, error) {
	name = strings.TrimSpace(name)
	for i, n := range bodyNames {
		if strings.EqualFold(n, name) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("zodiac: unknown body %q", name)
}
