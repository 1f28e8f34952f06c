package kuta

import "github.com/papapumpkin/graha/internal/zodiac"

// varna ranks each sign in the four-fold hierarchy, highest first.
var varna = [zodiac.SignCount]int{
	zodiac.Aries: 4, zodiac.Leo: 4, zodiac.Sagittarius: 4,
	zodiac.Cancer: 3, zodiac.Scorpio: 3, zodiac.Pisces: 3,
	zodiac.Gemini: 2, zodiac.Libra: 2, zodiac.Aquarius: 2,
	zodiac.Taurus: 1, zodiac.Virgo: 1, zodiac.Capricorn: 1,
}

// vasyaGroup assigns each sign to a mutual-attraction group.
var vasyaGroup = [zodiac.SignCount]int{
	zodiac.Leo: 0, zodiac.Aries: 0,
	zodiac.Cancer: 1, zodiac.Scorpio: 1,
	zodiac.Gemini: 2, zodiac.Libra: 2, zodiac.Aquarius: 2,
	zodiac.Taurus: 3, zodiac.Capricorn: 3,
	zodiac.Virgo: 4, zodiac.Pisces: 4,
	zodiac.Sagittarius: 5,
}

// Yoni is the animal symbol of a constellation.
type Yoni string

// Animal symbols.
const (
	Horse    Yoni = "horse"
	Elephant Yoni = "elephant"
	Goat     Yoni = "goat"
	Snake    Yoni = "snake"
	Dog      Yoni = "dog"
	Cat      Yoni = "cat"
	Ram      Yoni = "ram"
	Mongoose Yoni = "mongoose"
	Rat      Yoni = "rat"
	Buffalo  Yoni = "buffalo"
	Tiger    Yoni = "tiger"
	Deer     Yoni = "deer"
	Monkey   Yoni = "monkey"
	Lion     Yoni = "lion"
)

var yoni = [zodiac.NakshatraCount]Yoni{
	zodiac.Ashwini: Horse, zodiac.Shatabhisha: Horse,
	zodiac.Bharani: Elephant, zodiac.Revati: Elephant,
	zodiac.Krittika: Goat, zodiac.Punarvasu: Goat,
	zodiac.Rohini: Snake, zodiac.UttaraPhalguni: Snake,
	zodiac.Mrigashira: Dog, zodiac.Chitra: Dog,
	zodiac.Ardra: Cat, zodiac.Shravana: Cat,
	zodiac.Pushya: Ram, zodiac.UttaraAshadha: Ram,
	zodiac.Ashlesha: Mongoose, zodiac.Jyeshtha: Mongoose,
	zodiac.Magha: Rat, zodiac.PurvaPhalguni: Rat,
	zodiac.Hasta: Buffalo, zodiac.Anuradha: Buffalo,
	zodiac.Swati: Tiger, zodiac.Dhanishta: Tiger,
	zodiac.Vishakha: Deer, zodiac.PurvaAshadha: Deer,
	zodiac.Moola: Monkey, zodiac.PurvaBhadrapada: Monkey,
	zodiac.UttaraBhadrapada: Lion,
}

// yoniPairs lists distinct animals that are still compatible. Lookups try
// both orders.
var yoniPairs = map[[2]Yoni]bool{
	{Tiger, Deer}: true,
}

// Relation is how one planet regards another.
type Relation int

// Relations, weakest first.
const (
	Enemy Relation = iota
	Neutral
	Friend
)

// friends and neutrals are the natural relationship tables. A pair is
// friendly or neutral if either side lists the other.
var friends = map[zodiac.Body][]zodiac.Body{
	zodiac.Sun:     {zodiac.Moon, zodiac.Mars, zodiac.Jupiter},
	zodiac.Moon:    {zodiac.Sun, zodiac.Mercury},
	zodiac.Mars:    {zodiac.Sun, zodiac.Moon, zodiac.Jupiter},
	zodiac.Mercury: {zodiac.Sun, zodiac.Venus},
	zodiac.Jupiter: {zodiac.Sun, zodiac.Moon, zodiac.Mars},
	zodiac.Venus:   {zodiac.Mercury, zodiac.Saturn},
	zodiac.Saturn:  {zodiac.Mercury, zodiac.Venus},
}

var neutrals = map[zodiac.Body][]zodiac.Body{
	zodiac.Sun:     {zodiac.Mercury},
	zodiac.Moon:    {zodiac.Mars, zodiac.Jupiter, zodiac.Venus, zodiac.Saturn},
	zodiac.Mars:    {zodiac.Mercury, zodiac.Venus, zodiac.Saturn},
	zodiac.Mercury: {zodiac.Mars, zodiac.Jupiter, zodiac.Saturn},
	zodiac.Jupiter: {zodiac.Mercury, zodiac.Venus, zodiac.Saturn},
	zodiac.Venus:   {zodiac.Mars, zodiac.Jupiter},
	zodiac.Saturn:  {zodiac.Mars, zodiac.Jupiter},
}

// Gana is a temperament group.
type Gana string

// Temperaments.
const (
	Deva     Gana = "deva"
	Manushya Gana = "manushya"
	Rakshasa Gana = "rakshasa"
)

var gana = [zodiac.SignCount]Gana{
	zodiac.Aries: Deva, zodiac.Leo: Deva, zodiac.Sagittarius: Deva,
	zodiac.Gemini: Deva, zodiac.Libra: Deva, zodiac.Aquarius: Deva,
	zodiac.Taurus: Manushya, zodiac.Virgo: Manushya, zodiac.Capricorn: Manushya,
	zodiac.Cancer: Rakshasa, zodiac.Scorpio: Rakshasa, zodiac.Pisces: Rakshasa,
}

// ganaMatch lists compatible temperament pairs, in both orders.
var ganaMatch = map[[2]Gana]bool{
	{Deva, Deva}:         true,
	{Manushya, Manushya}: true,
	{Rakshasa, Rakshasa}: true,
	{Deva, Manushya}:     true,
	{Manushya, Deva}:     true,
}

// bhakutDistances are the forward sign distances that earn bhakut points.
var bhakutDistances = map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 7: true, 9: true, 11: true}

// Nadi is one of the three constitutional channels.
type Nadi string

// Channels.
const (
	Aadi   Nadi = "aadi"
	Madhya Nadi = "madhya"
	Antya  Nadi = "antya"
)

var nadi = [zodiac.SignCount]Nadi{
	zodiac.Aries: Aadi, zodiac.Cancer: Aadi, zodiac.Libra: Aadi, zodiac.Capricorn: Aadi,
	zodiac.Taurus: Madhya, zodiac.Leo: Madhya, zodiac.Scorpio: Madhya, zodiac.Aquarius: Madhya,
	zodiac.Gemini: Antya, zodiac.Virgo: Antya, zodiac.Sagittarius: Antya, zodiac.Pisces: Antya,
}
