package zodiac

import "fmt"

// Nakshatra is one of the 27 lunar constellations of 13°20′ each.
type Nakshatra int

// NakshatraCount is the number of lunar constellations.
const NakshatraCount = 27

// NakshatraSpan is the arc covered by one constellation, in degrees.
const NakshatraSpan = 360.0 / NakshatraCount

// PadaSpan is the arc covered by one quarter of a constellation.
const PadaSpan = NakshatraSpan / 4

// The 27 constellations in zodiacal order.
const (
	Ashwini Nakshatra = iota
	Bharani
	Krittika
	Rohini
	Mrigashira
	Ardra
	Punarvasu
	Pushya
	Ashlesha
	Magha
	PurvaPhalguni
	UttaraPhalguni
	Hasta
	Chitra
	Swati
	Vishakha
	Anuradha
	Jyeshtha
	Moola
	PurvaAshadha
	UttaraAshadha
	Shravana
	Dhanishta
	Shatabhisha
	PurvaBhadrapada
	UttaraBhadrapada
	Revati
)

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Moola", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// DashaLords is the nine-body cycle shared by constellation rulership and the
// Vimshottari period sequence. Constellation i is ruled by DashaLords[i%9].
var DashaLords = [BodyCount]Body{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// Valid reports whether n is one of the 27 constellations.
func (n Nakshatra) Valid() bool {
	return n >= Ashwini && n <= Revati
}

func (n Nakshatra) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return nakshatraNames[n]
}

// Lord returns the ruling body of n.
func (n Nakshatra) Lord() Body {
	return DashaLords[(int(n)%BodyCount+BodyCount)%BodyCount]
}

// Start returns the longitude at which n begins.
func (n Nakshatra) Start() float64 {
	return float64(n) * NakshatraSpan
}

// MarshalText encodes the constellation by name.
func (n Nakshatra) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("zodiac: invalid nakshatra %d", int(n))
	}
	return []byte(nakshatraNames[n]), nil
}

// UnmarshalText decodes a constellation name as produced by MarshalText.
func (n *Nakshatra) UnmarshalText(text []byte) error {
	for i, name := range nakshatraNames {
		if name == string(text) {
			*n = Nakshatra(i)
			return nil
		}
	}
	return fmt.Errorf("zodiac: unknown nakshatra %q", string(text))
}
