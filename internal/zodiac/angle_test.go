package zodiac

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 123.5, 123.5},
		{"full circle", 360, 0},
		{"negative", -30, 330},
		{"large positive", 725, 5},
		{"large negative", -725, 355},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.in); !approx(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Periodic(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{0, 1.25, 89.9, 180, 271.5, 359.999} {
		for _, k := range []float64{-3, -1, 1, 2, 7} {
			got := Normalize(x + k*360)
			if math.Abs(got-Normalize(x)) > 1e-7 {
				t.Errorf("Normalize(%v + %v*360) = %v, want %v", x, k, got, Normalize(x))
			}
			if got < 0 || got >= 360 {
				t.Errorf("Normalize(%v + %v*360) = %v out of [0,360)", x, k, got)
			}
		}
	}
}

func TestSignOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lon  float64
		want Sign
	}{
		{0, Aries},
		{29.999, Aries},
		{30.0, Taurus},
		{45, Taurus},
		{179.9, Virgo},
		{180, Libra},
		{359.9, Pisces},
		{-1, Pisces},
		{390, Taurus},
	}

	for _, tt := range tests {
		if got := SignOf(tt.lon); got != tt.want {
			t.Errorf("SignOf(%v) = %v, want %v", tt.lon, got, tt.want)
		}
	}
}

func TestDegreeInSign(t *testing.T) {
	t.Parallel()

	if got := DegreeInSign(45); !approx(got, 15) {
		t.Errorf("DegreeInSign(45) = %v, want 15", got)
	}
	if got := DegreeInSign(30); !approx(got, 0) {
		t.Errorf("DegreeInSign(30) = %v, want 0", got)
	}
}

func TestConstellationOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lon      float64
		wantNak  Nakshatra
		wantPada int
	}{
		{"origin", 0.0, Ashwini, 1},
		{"just past first boundary", 13.333334, Bharani, 1},
		{"second pada of Ashwini", 3.4, Ashwini, 2},
		{"last pada of Ashwini", 13.3, Ashwini, 4},
		{"moon example", 45, Rohini, 2},
		{"end of zodiac", 359.99, Revati, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nak, pada := ConstellationOf(tt.lon)
			if nak != tt.wantNak || pada != tt.wantPada {
				t.Errorf("ConstellationOf(%v) = (%v, %d), want (%v, %d)",
					tt.lon, nak, pada, tt.wantNak, tt.wantPada)
			}
		})
	}
}

func TestConstellationOf_PadaRange(t *testing.T) {
	t.Parallel()

	for lon := 0.0; lon < 360; lon += 0.37 {
		nak, pada := ConstellationOf(lon)
		if !nak.Valid() {
			t.Fatalf("ConstellationOf(%v) returned invalid nakshatra %d", lon, nak)
		}
		if pada < 1 || pada > 4 {
			t.Fatalf("ConstellationOf(%v) pada = %d, want 1..4", lon, pada)
		}
	}
}

func TestConstellationFraction(t *testing.T) {
	t.Parallel()

	if got := ConstellationFraction(45); math.Abs(got-0.375) > 1e-9 {
		t.Errorf("ConstellationFraction(45) = %v, want 0.375", got)
	}
	if got := ConstellationFraction(0); got != 0 {
		t.Errorf("ConstellationFraction(0) = %v, want 0", got)
	}
}

func TestSeparation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b, want float64
	}{
		{10, 20, 10},
		{355, 5, 10},
		{5, 355, 10},
		{0, 180, 180},
		{90, 300, 150},
	}

	for _, tt := range tests {
		if got := Separation(tt.a, tt.b); !approx(got, tt.want) {
			t.Errorf("Separation(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNavamsaLongitude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lon  float64
		want Sign
	}{
		{"Aries starts in Aries", 1, Aries},
		{"Taurus starts in Capricorn", 31, Capricorn},
		{"Gemini starts in Libra", 61, Libra},
		{"Cancer starts in Cancer", 91, Cancer},
		{"last part of Aries is Sagittarius", 29.5, Sagittarius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SignOf(NavamsaLongitude(tt.lon)); got != tt.want {
				t.Errorf("SignOf(NavamsaLongitude(%v)) = %v, want %v", tt.lon, got, tt.want)
			}
		})
	}
}

func TestHouseOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to, want int
	}{
		{1, 1, 1},
		{1, 4, 4},
		{10, 1, 4},
		{12, 6, 7},
		{5, 4, 12},
	}

	for _, tt := range tests {
		if got := HouseOffset(tt.from, tt.to); got != tt.want {
			t.Errorf("HouseOffset(%d, %d) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}
