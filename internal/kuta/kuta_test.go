package kuta

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/zodiac"
)

func TestFactorCapsSumTo36(t *testing.T) {
	t.Parallel()
	sum := 0
	for i, f := range factors {
		if f.max != i+1 {
			t.Errorf("factor %s max = %d, want %d", f.name, f.max, i+1)
		}
		sum += f.max
	}
	if sum != MaxPoints {
		t.Errorf("sum of caps = %d, want %d", sum, MaxPoints)
	}
}

func TestScoreProfiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Profile
		want map[string]int
	}{
		{
			name: "identical profiles",
			a:    Profile{Ascendant: zodiac.Aries, MoonSign: zodiac.Taurus, MoonNakshatra: zodiac.Rohini},
			b:    Profile{Ascendant: zodiac.Aries, MoonSign: zodiac.Taurus, MoonNakshatra: zodiac.Rohini},
			want: map[string]int{
				"varna": 1, "vasya": 2, "tara": 0, "yoni": 4,
				"graha_maitri": 0, "gana": 6, "bhakut": 0, "nadi": 0,
			},
		},
		{
			name: "mixed profiles",
			a:    Profile{Ascendant: zodiac.Taurus, MoonSign: zodiac.Leo, MoonNakshatra: zodiac.Swati},
			b:    Profile{Ascendant: zodiac.Leo, MoonSign: zodiac.Aries, MoonNakshatra: zodiac.Vishakha},
			want: map[string]int{
				"varna": 0, "vasya": 0, "tara": 0, "yoni": 2,
				"graha_maitri": 5, "gana": 6, "bhakut": 7, "nadi": 0,
			},
		},
		{
			name: "hostile profiles",
			a:    Profile{Ascendant: zodiac.Cancer, MoonSign: zodiac.Leo, MoonNakshatra: zodiac.Ashwini},
			b:    Profile{Ascendant: zodiac.Capricorn, MoonSign: zodiac.Aquarius, MoonNakshatra: zodiac.Krittika},
			want: map[string]int{
				"varna": 1, "vasya": 0, "tara": 0, "yoni": 0,
				"graha_maitri": 0, "gana": 0, "bhakut": 0, "nadi": 0,
			},
		},
		{
			name: "tara in second group",
			a:    Profile{Ascendant: zodiac.Gemini, MoonSign: zodiac.Gemini, MoonNakshatra: zodiac.Ashwini},
			b:    Profile{Ascendant: zodiac.Leo, MoonSign: zodiac.Virgo, MoonNakshatra: zodiac.Ardra},
			want: map[string]int{
				"varna": 0, "vasya": 0, "tara": 3, "yoni": 0,
				"graha_maitri": 0, "gana": 6, "bhakut": 7, "nadi": 8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := ScoreProfiles(tt.a, tt.b)
			if err != nil {
				t.Fatalf("ScoreProfiles: %v", err)
			}

			got := make(map[string]int, len(r.Factors))
			total := 0
			for _, f := range r.Factors {
				got[f.Name] = f.Points
				total += f.Points
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("factors (-want +got):\n%s", diff)
			}
			if r.Total != total {
				t.Errorf("Total = %d, want %d", r.Total, total)
			}
			if want := float64(total) / 36 * 100; r.Percentage != want {
				t.Errorf("Percentage = %v, want %v", r.Percentage, want)
			}
		})
	}
}

func TestScoreProfiles_Bounds(t *testing.T) {
	t.Parallel()
	for asc := zodiac.Aries; asc <= zodiac.Pisces; asc++ {
		for n := zodiac.Ashwini; n <= zodiac.Revati; n += 4 {
			a := Profile{Ascendant: asc, MoonSign: asc.Add(3), MoonNakshatra: n}
			b := Profile{Ascendant: asc.Add(int(n)), MoonSign: asc.Add(5), MoonNakshatra: zodiac.Nakshatra((int(n) * 7) % 27)}
			r, err := ScoreProfiles(a, b)
			if err != nil {
				t.Fatalf("ScoreProfiles(%+v, %+v): %v", a, b, err)
			}
			if r.Total < 0 || r.Total > MaxPoints || r.Percentage < 0 || r.Percentage > 100 {
				t.Fatalf("out of bounds: %+v", r)
			}
			for _, f := range r.Factors {
				if f.Points < 0 || f.Points > f.Max {
					t.Fatalf("factor %s = %d exceeds cap %d", f.Name, f.Points, f.Max)
				}
			}
		}
	}
}

func TestScoreProfiles_RejectsOutOfRange(t *testing.T) {
	t.Parallel()
	good := Profile{Ascendant: zodiac.Aries, MoonSign: zodiac.Taurus, MoonNakshatra: zodiac.Rohini}

	tests := []struct {
		name string
		bad  Profile
	}{
		{"negative sign", Profile{Ascendant: -1, MoonSign: zodiac.Taurus, MoonNakshatra: zodiac.Rohini}},
		{"moon sign past pisces", Profile{Ascendant: zodiac.Aries, MoonSign: 12, MoonNakshatra: zodiac.Rohini}},
		{"nakshatra past revati", Profile{Ascendant: zodiac.Aries, MoonSign: zodiac.Taurus, MoonNakshatra: 27}},
		{"negative nakshatra", Profile{Ascendant: zodiac.Aries, MoonSign: zodiac.Taurus, MoonNakshatra: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ScoreProfiles(good, tt.bad); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("ScoreProfiles(good, bad) error = %v, want ErrInvalidProfile", err)
			}
			if _, err := ScoreProfiles(tt.bad, good); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("ScoreProfiles(bad, good) error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestRelationBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y zodiac.Body
		want Relation
	}{
		{zodiac.Sun, zodiac.Moon, Friend},
		{zodiac.Moon, zodiac.Sun, Friend},
		{zodiac.Sun, zodiac.Mercury, Friend}, // Mercury lists the Sun as a friend
		{zodiac.Moon, zodiac.Saturn, Neutral},
		{zodiac.Sun, zodiac.Saturn, Enemy},
		{zodiac.Venus, zodiac.Venus, Enemy}, // neither table lists a self pair
		{zodiac.Mars, zodiac.Mars, Enemy},
	}
	for _, tt := range tests {
		if got := RelationBetween(tt.x, tt.y); got != tt.want {
			t.Errorf("RelationBetween(%s, %s) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestYoniOf_EveryNakshatraMapped(t *testing.T) {
	t.Parallel()
	for n := zodiac.Ashwini; n <= zodiac.Revati; n++ {
		if YoniOf(n) == "" {
			t.Errorf("%s has no yoni", n)
		}
	}
}

func TestScore_MissingMoon(t *testing.T) {
	t.Parallel()
	_, err := Score(&chart.Chart{}, &chart.Chart{})
	var mp *chart.MissingPlacementError
	if !errors.As(err, &mp) || mp.Body != zodiac.Moon {
		t.Errorf("Score(zero) = %v, want MissingPlacementError for Moon", err)
	}
}
