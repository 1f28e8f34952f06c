package yoga

import (
	"github.com/papapumpkin/graha/internal/dignity"
	"github.com/papapumpkin/graha/internal/zodiac"
)

type rule struct {
	name        string
	weight      float64
	description string
	detect      func(*state) ([]zodiac.Body, bool)
}

var rules = []rule{
	{"Gajakesari", 1.0, "Jupiter in a kendra from the Moon", gajakesari},
	{"Budhaditya", 0.9, "Sun and Mercury share a house", sameHouse(zodiac.Sun, zodiac.Mercury)},
	{"ChandraMangala", 1.0, "Moon and Mars share a house", sameHouse(zodiac.Moon, zodiac.Mars)},
	{"Ruchaka", 1.0, "Mars in a kendra in its own or exaltation sign", mahapurusha(zodiac.Mars)},
	{"Bhadra", 1.0, "Mercury in a kendra in its own or exaltation sign", mahapurusha(zodiac.Mercury)},
	{"Hamsa", 0.85, "Jupiter in a kendra in its own or exaltation sign", mahapurusha(zodiac.Jupiter)},
	{"Malavya", 0.75, "Venus in a kendra in its own or exaltation sign", mahapurusha(zodiac.Venus)},
	{"Shasha", 1.0, "Saturn in a kendra in its own or exaltation sign", mahapurusha(zodiac.Saturn)},
	{"Raja", 1.0, "Jupiter conjunct Saturn within the orb", raja},
	{"Dhana", 0.8, "Jupiter in the 2nd, 5th, 9th or 11th house", dhana},
	{"Adhi", 1.0, "benefics in the 6th, 7th or 8th from the Moon", adhi},
	{"Sunapha", 1.0, "bodies other than the Sun in the 2nd from the Moon", sunapha},
	{"Anapha", 1.0, "bodies other than the Sun in the 12th from the Moon", anapha},
	{"Durudhara", 1.0, "bodies other than the Sun on both sides of the Moon", durudhara},
	{"Kemadruma", 1.0, "no planet in the 2nd or 12th from the Moon", kemadruma},
	{"Parvata", 1.0, "benefics in kendras and malefics in upachayas", parvata},
	{"NeechabhangaRaja", 1.0, "debilitation cancelled by its sign lord in a kendra", neechabhanga},
}

var (
	adhiBenefics    = []zodiac.Body{zodiac.Jupiter, zodiac.Venus, zodiac.Mercury}
	parvataMalefics = []zodiac.Body{zodiac.Saturn, zodiac.Mars, zodiac.Sun}
	flankingBodies  = []zodiac.Body{
		zodiac.Mars, zodiac.Mercury, zodiac.Jupiter, zodiac.Venus,
		zodiac.Saturn, zodiac.Rahu, zodiac.Ketu,
	}
	kemadrumaBodies = []zodiac.Body{
		zodiac.Mars, zodiac.Mercury, zodiac.Jupiter, zodiac.Venus, zodiac.Saturn,
	}
	classicalBodies = []zodiac.Body{
		zodiac.Sun, zodiac.Moon, zodiac.Mars, zodiac.Mercury,
		zodiac.Jupiter, zodiac.Venus, zodiac.Saturn,
	}
)

func gajakesari(s *state) ([]zodiac.Body, bool) {
	if isKendra(s.fromMoon(zodiac.Jupiter)) {
		return []zodiac.Body{zodiac.Jupiter, zodiac.Moon}, true
	}
	return nil, false
}

func sameHouse(a, b zodiac.Body) func(*state) ([]zodiac.Body, bool) {
	return func(s *state) ([]zodiac.Body, bool) {
		if s.house(a) == s.house(b) {
			return []zodiac.Body{a, b}, true
		}
		return nil, false
	}
}

func mahapurusha(b zodiac.Body) func(*state) ([]zodiac.Body, bool) {
	return func(s *state) ([]zodiac.Body, bool) {
		p := s.p[b]
		strong := dignity.Owns(b, p.Sign) || dignity.Exaltation(b).Sign == p.Sign
		if isKendra(p.House) && strong {
			return []zodiac.Body{b}, true
		}
		return nil, false
	}
}

func raja(s *state) ([]zodiac.Body, bool) {
	sep := zodiac.Separation(s.p[zodiac.Jupiter].Longitude, s.p[zodiac.Saturn].Longitude)
	if sep < s.orb {
		return []zodiac.Body{zodiac.Jupiter, zodiac.Saturn}, true
	}
	return nil, false
}

func dhana(s *state) ([]zodiac.Body, bool) {
	if inSet(s.house(zodiac.Jupiter), 2, 5, 9, 11) {
		return []zodiac.Body{zodiac.Jupiter}, true
	}
	return nil, false
}

func adhi(s *state) ([]zodiac.Body, bool) {
	found := s.within(adhiBenefics, 6, 7, 8)
	return found, len(found) > 0
}

func sunapha(s *state) ([]zodiac.Body, bool) {
	found := s.within(flankingBodies, 2)
	return found, len(found) > 0
}

func anapha(s *state) ([]zodiac.Body, bool) {
	found := s.within(flankingBodies, 12)
	return found, len(found) > 0
}

func durudhara(s *state) ([]zodiac.Body, bool) {
	second := s.within(flankingBodies, 2)
	twelfth := s.within(flankingBodies, 12)
	if len(second) == 0 || len(twelfth) == 0 {
		return nil, false
	}
	return append(second, twelfth...), true
}

func kemadruma(s *state) ([]zodiac.Body, bool) {
	if len(s.within(kemadrumaBodies, 2, 12)) == 0 {
		return []zodiac.Body{zodiac.Moon}, true
	}
	return nil, false
}

func parvata(s *state) ([]zodiac.Body, bool) {
	var benefics, malefics []zodiac.Body
	for _, b := range adhiBenefics {
		if isKendra(s.house(b)) {
			benefics = append(benefics, b)
		}
	}
	for _, b := range parvataMalefics {
		if isUpachaya(s.house(b)) {
			malefics = append(malefics, b)
		}
	}
	if len(benefics) == 0 || len(malefics) == 0 {
		return nil, false
	}
	return append(benefics, malefics...), true
}

func neechabhanga(s *state) ([]zodiac.Body, bool) {
	var out []zodiac.Body
	for _, b := range classicalBodies {
		p := s.p[b]
		if p.Sign != dignity.Debilitation(b).Sign {
			continue
		}
		lord := p.Sign.Lord()
		if isKendra(s.house(lord)) {
			out = append(out, b, lord)
		}
	}
	return out, len(out) > 0
}
