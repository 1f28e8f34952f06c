package ephemeris

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/papapumpkin/graha/internal/zodiac"
)

var sampleTime = time.Date(1990, 4, 12, 6, 30, 0, 0, time.UTC)

func loadSample(t *testing.T) *Observations {
	t.Helper()
	obs, err := LoadObservations(filepath.Join("testdata", "sample.toml"))
	if err != nil {
		t.Fatalf("LoadObservations: %v", err)
	}
	return obs
}

func TestLoadObservations(t *testing.T) {
	t.Parallel()
	obs := loadSample(t)

	if !obs.Birth.Time.Equal(sampleTime) {
		t.Errorf("Birth.Time = %v, want %v", obs.Birth.Time, sampleTime)
	}
	if obs.Birth.CoordinateSystem != Tropical {
		t.Errorf("CoordinateSystem = %q, want tropical", obs.Birth.CoordinateSystem)
	}
	if obs.Houses.Cusps[11] != 4.0 {
		t.Errorf("Cusps[11] = %v, want 4", obs.Houses.Cusps[11])
	}
	moon, ok := obs.Position(zodiac.Moon)
	if !ok || moon.SpeedLongitude != 13.2 {
		t.Errorf("Position(Moon) = %+v, %v", moon, ok)
	}
}

func TestParseObservations_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "no birth time",
			input:   "[birth]\nlatitude = 10.0\n",
			wantErr: ErrNoBirthTime,
		},
		{
			name:    "missing bodies",
			input:   "[birth]\ntime = 2000-01-01T00:00:00Z\n",
			wantErr: ErrMissingBody,
		},
		{
			name:    "bad latitude",
			input:   "[birth]\ntime = 2000-01-01T00:00:00Z\nlatitude = 120.0\n",
			wantErr: ErrBadLatitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseObservations([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseObservations error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseObservations_RejectsAmbiguousOrNonFinite(t *testing.T) {
	t.Parallel()
	sample, err := os.ReadFile(filepath.Join("testdata", "sample.toml"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		edit    func(string) string
		wantErr error
	}{
		{
			name: "body listed under two spellings",
			edit: func(s string) string {
				return s + "\n[bodies.Sun]\nlongitude = 112.1\n"
			},
			wantErr: ErrDuplicateBody,
		},
		{
			name:    "nan longitude",
			edit:    func(s string) string { return strings.Replace(s, "longitude = 22.1", "longitude = nan", 1) },
			wantErr: ErrNonFinite,
		},
		{
			name:    "infinite moon longitude",
			edit:    func(s string) string { return strings.Replace(s, "longitude = 68.856", "longitude = -inf", 1) },
			wantErr: ErrNonFinite,
		},
		{
			name:    "infinite ascendant",
			edit:    func(s string) string { return strings.Replace(s, "ascendant = 34.0", "ascendant = inf", 1) },
			wantErr: ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseObservations([]byte(tt.edit(string(sample))))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseObservations error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveObservations_RoundTrip(t *testing.T) {
	t.Parallel()
	obs := loadSample(t)
	path := filepath.Join(t.TempDir(), "nested", "copy.toml")

	if err := SaveObservations(path, obs); err != nil {
		t.Fatalf("SaveObservations: %v", err)
	}
	back, err := LoadObservations(path)
	if err != nil {
		t.Fatalf("LoadObservations: %v", err)
	}
	if !back.Birth.Time.Equal(obs.Birth.Time) || back.Houses != obs.Houses {
		t.Errorf("round trip changed data: %+v", back.Birth)
	}
}

func TestSession_InitOnce(t *testing.T) {
	t.Parallel()
	first := t.TempDir()
	second := t.TempDir()

	sess := NewSession()
	if _, err := sess.Dir(); !errors.Is(err, ErrSessionNotInitialized) {
		t.Fatalf("Dir before Init = %v, want ErrSessionNotInitialized", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sess.Init(first); err != nil {
				t.Errorf("Init: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := sess.Init(second); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	dir, err := sess.Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if dir != first {
		t.Errorf("Dir = %q, want first directory %q", dir, first)
	}
}

func TestSession_InitMissingDir(t *testing.T) {
	t.Parallel()
	sess := NewSession()
	err := sess.Init(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, dirErr := sess.Dir(); dirErr == nil {
		t.Error("Dir should report the failed Init")
	}
}

func TestTableOracle_Position(t *testing.T) {
	t.Parallel()
	oracle := NewTableOracleFrom(loadSample(t), DefaultAyanamsa)
	ctx := context.Background()

	trop, err := oracle.Position(ctx, sampleTime, zodiac.Sun, Tropical, DefaultFlags)
	if err != nil {
		t.Fatalf("Position tropical: %v", err)
	}
	if trop.Longitude != 22.1 {
		t.Errorf("tropical longitude = %v, want 22.1", trop.Longitude)
	}

	sid, err := oracle.Position(ctx, sampleTime, zodiac.Sun, Sidereal, DefaultFlags)
	if err != nil {
		t.Fatalf("Position sidereal: %v", err)
	}
	if want := zodiac.Normalize(22.1 - DefaultAyanamsa); math.Abs(sid.Longitude-want) > 1e-9 {
		t.Errorf("sidereal longitude = %v, want %v", sid.Longitude, want)
	}

	noSpeed, err := oracle.Position(ctx, sampleTime, zodiac.Mercury, Tropical, 0)
	if err != nil {
		t.Fatalf("Position without speed: %v", err)
	}
	if noSpeed.SpeedLongitude != 0 {
		t.Errorf("SpeedLongitude = %v, want 0 without FlagSpeed", noSpeed.SpeedLongitude)
	}
}

func TestTableOracle_Errors(t *testing.T) {
	t.Parallel()
	oracle := NewTableOracleFrom(loadSample(t), DefaultAyanamsa)
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		at       time.Time
		body     zodiac.Body
		system   CoordinateSystem
		wantCode int
	}{
		{"ketu is derived", context.Background(), sampleTime, zodiac.Ketu, Sidereal, CodeUnknownBody},
		{"other instant", context.Background(), sampleTime.Add(time.Hour), zodiac.Sun, Sidereal, CodeNoObservation},
		{"bad system", context.Background(), sampleTime, zodiac.Sun, "galactic", CodeBadSystem},
		{"canceled", canceled, sampleTime, zodiac.Sun, Sidereal, CodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := oracle.Position(tt.ctx, tt.at, tt.body, tt.system, DefaultFlags)
			var oe *OracleError
			if !errors.As(err, &oe) {
				t.Fatalf("error = %v, want *OracleError", err)
			}
			if oe.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", oe.Code, tt.wantCode)
			}
			if !strings.Contains(err.Error(), "oracle error") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestTableOracle_HouseFrame(t *testing.T) {
	t.Parallel()
	oracle := NewTableOracleFrom(loadSample(t), DefaultAyanamsa)
	ctx := context.Background()

	sid, err := oracle.Houses(ctx, sampleTime, 28.6, 77.2, 'P')
	if err != nil {
		t.Fatalf("Houses: %v", err)
	}
	if want := 34.0 - DefaultAyanamsa; math.Abs(sid.Ascendant-want) > 1e-9 {
		t.Errorf("sidereal Ascendant = %v, want %v", sid.Ascendant, want)
	}

	trop, err := oracle.WithHouseFrame(Tropical).Houses(ctx, sampleTime, 28.6, 77.2, 'P')
	if err != nil {
		t.Fatalf("Houses tropical: %v", err)
	}
	if trop.Ascendant != 34.0 {
		t.Errorf("tropical Ascendant = %v, want 34", trop.Ascendant)
	}
}

func TestNewTableOracle_ThroughSession(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", "sample.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "chart.toml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTableOracle(NewSession(), "chart.toml", DefaultAyanamsa); err == nil {
		t.Error("expected error from uninitialized session")
	}

	sess := NewSession()
	if err := sess.Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	oracle, err := NewTableOracle(sess, "chart.toml", DefaultAyanamsa)
	if err != nil {
		t.Fatalf("NewTableOracle: %v", err)
	}
	if oracle.Observations().Birth.Name != "sample" {
		t.Errorf("Birth.Name = %q", oracle.Observations().Birth.Name)
	}
}
