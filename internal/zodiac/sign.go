package zodiac

import (
	"fmt"
	"strings"
)

// Sign is one of the twelve 30° zodiac divisions, starting at Aries.
type Sign int

// The twelve signs in zodiacal order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of zodiac signs.
const SignCount = 12

// SignSpan is the arc covered by one sign, in degrees.
const SignSpan = 30.0

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signLords maps each sign to its classical ruler.
var signLords = [SignCount]Body{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Lord returns the body that rules s.
func (s Sign) Lord() Body {
	return signLords[s.mod()]
}

// Add returns the sign n steps after s, wrapping around Pisces.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%SignCount + SignCount) % SignCount)
}

// Distance returns how many signs forward to is from s, in [0,12).
func (s Sign) Distance(to Sign) int {
	return ((int(to)-int(s))%SignCount + SignCount) % SignCount
}

// Start returns the longitude at which s begins.
func (s Sign) Start() float64 {
	return float64(s.mod()) * SignSpan
}

func (s Sign) mod() Sign {
	return Sign((int(s)%SignCount + SignCount) % SignCount)
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("zodiac: invalid sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText decodes a sign name, case-insensitively.
func (s *Sign) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	for i, n := range signNames {
		if strings.EqualFold(n, name) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("zodiac: unknown sign %q", name)
}
